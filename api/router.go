// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"studydeck/study-api/auth"
	"studydeck/study-api/db"
	"studydeck/study-api/middleware"
	"studydeck/study-api/openai"
	"studydeck/study-api/pkg/security"

	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

type API struct {
	DB     *gorm.DB
	Router *gin.Engine
	Argon  *security.ArgonHash
	Tokens *auth.TokenService
	AI     *openai.Client
}

func NewRouter() (*API, error) {
	a := &API{
		Argon:  security.New(),
		Tokens: auth.New(),
		AI:     openai.NewClient(),
	}

	db, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	a.DB = db

	makeLogger()

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:5173"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if id, ok := c.Get("userID"); ok {
					fields = append(fields, zap.Any("userID", id))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	bearer := middleware.NewAuthMiddleware(db, a.Tokens)
	jsonBody := middleware.BodySizeLimiter(1 << 20)

	// HEAD /heartbeat		-> Used to check if the server is alive
	router.HEAD("/heartbeat", a.Heartbeat)

	authGroup := router.Group("/auth", jsonBody, middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: 5,
		Burst:             10,
	}))
	{
		// POST /auth/register		-> Registers a new user
		authGroup.POST("/register", a.UserRegister)

		// POST /auth/token		-> Logs in a user and returns a bearer token
		authGroup.POST("/token", a.UserLogin)

		// GET /auth/me			-> Returns the identity behind a token
		authGroup.GET("/me", bearer, a.UserMe)
	}

	documents := router.Group("/documents", bearer, jsonBody)
	{
		// POST /documents		-> Uploads a new document
		documents.POST("", a.DocumentCreate)

		// GET /documents		-> Lists the caller's documents, newest first
		documents.GET("", a.DocumentFetchBulk)

		// GET /documents/:id		-> Fetches a single document
		documents.GET("/:id", a.DocumentFetch)

		// PUT /documents/:id		-> Partially updates a document
		documents.PUT("/:id", a.DocumentUpdate)

		// DELETE /documents/:id	-> Deletes a document owned by a user
		documents.DELETE("/:id", a.DocumentDelete)
	}

	ai := router.Group("/ai", bearer, jsonBody)
	{
		// POST /ai/summarize		-> Generates and stores a summary
		ai.POST("/summarize", a.AISummarize)
	}

	return a, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}
