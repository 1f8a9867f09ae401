// Package auth issues and verifies the signed session tokens used to
// authenticate requests. Tokens are stateless, validity is determined by
// the signature and expiry alone, so they can't be revoked early.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

type TokenService struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

// New builds a TokenService from the jwt.* config keys. The secret and
// algorithm are validated in config.Setup before this runs
func New() *TokenService {
	return &TokenService{
		secret: []byte(viper.GetString("jwt.secret")),
		method: jwt.GetSigningMethod(viper.GetString("jwt.algorithm")),
		ttl:    time.Duration(viper.GetInt("jwt.expire_minutes")) * time.Minute,
	}
}

// Issue signs a token with the default lifetime from the config
func (t *TokenService) Issue(username string) (string, error) {
	return t.IssueWithTTL(username, t.ttl)
}

func (t *TokenService) IssueWithTTL(username string, ttl time.Duration) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(t.method, jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	return token.SignedString(t.secret)
}

// Verify checks the signature and expiry of a token and returns the subject
// username. Anything wrong with the token besides expiry comes back as
// ErrTokenInvalid so callers can't tell a forged token from a malformed one
func (t *TokenService) Verify(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(tok *jwt.Token) (any, error) {
		if tok.Method.Alg() != t.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", tok.Method.Alg())
		}

		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}

		return "", ErrTokenInvalid
	}

	if !token.Valid || claims.Subject == "" {
		return "", ErrTokenInvalid
	}

	return claims.Subject, nil
}
