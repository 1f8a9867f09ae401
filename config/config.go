// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var (
	validLogLevels   = []string{"debug", "info", "warn", "error", "fatal"}
	validDrivers     = []string{"sqlite", "postgres"}
	validSigningAlgs = []string{"HS256", "HS384", "HS512"}
)

func genSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")

	v.BindEnv("database.driver", "database_driver")
	v.BindEnv("database.dsn", "database_dsn")

	v.BindEnv("jwt.secret", "jwt_secret")
	v.BindEnv("jwt.algorithm", "jwt_algorithm")
	v.BindEnv("jwt.expire_minutes", "jwt_expire_minutes")

	v.BindEnv("openai.api_key", "openai_api_key")
	v.BindEnv("openai.base_url", "openai_base_url")
	v.BindEnv("openai.model", "openai_model")
	v.BindEnv("openai.timeout_seconds", "openai_timeout_seconds")

	v.BindEnv("argon.memory", "argon_memory")
	v.BindEnv("argon.iterations", "argon_iterations")
	v.BindEnv("argon.parallelism", "argon_parallelism")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "database.db")

	v.SetDefault("jwt.algorithm", "HS256")
	v.SetDefault("jwt.expire_minutes", 30)

	v.SetDefault("openai.base_url", "https://api.openai.com")
	v.SetDefault("openai.model", "gpt-3.5-turbo")
	v.SetDefault("openai.timeout_seconds", 30)

	v.SetDefault("argon.memory", 64*1024)
	v.SetDefault("argon.iterations", 3)
	v.SetDefault("argon.parallelism", 2)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file, %w", err)
		}
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if !slices.Contains(validDrivers, v.GetString("database.driver")) {
		return errors.New("invalid database driver provided")
	}

	if v.GetString("database.dsn") == "" {
		return errors.New("database dsn can't be empty")
	}

	if v.GetString("jwt.secret") == "" {
		fmt.Println("WARNING: You haven't set a JWT secret, so it has been generated for you. Please set it as an environment variable or in the config.toml file.\nYour random JWT secret:\n\n" + genSecret() + "\n\nPaste it into your config.toml file.")
		os.Exit(0)
	}

	if !slices.Contains(validSigningAlgs, strings.ToUpper(v.GetString("jwt.algorithm"))) {
		return errors.New("invalid jwt signing algorithm provided")
	}

	if v.GetInt("jwt.expire_minutes") <= 0 {
		return errors.New("jwt.expire_minutes must be bigger than 0")
	}

	if v.GetString("openai.api_key") == "" {
		return errors.New("openai api key can't be empty")
	}

	if v.GetInt("openai.timeout_seconds") <= 0 {
		return errors.New("openai.timeout_seconds must be bigger than 0")
	}

	if v.GetInt("argon.memory") <= 0 || v.GetInt("argon.iterations") <= 0 || v.GetInt("argon.parallelism") <= 0 {
		return errors.New("argon cost factors must be bigger than 0")
	}

	v.Set("jwt.algorithm", strings.ToUpper(v.GetString("jwt.algorithm")))
	return nil
}
