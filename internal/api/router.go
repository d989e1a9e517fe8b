package api

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nc-news-api/internal/apperr"
	"github.com/nc-news-api/internal/config"
	"github.com/nc-news-api/internal/repository"
	"github.com/nc-news-api/internal/service"
)

// Pinger reports database liveness and pool statistics for the health and
// metrics endpoints
type Pinger interface {
	HealthCheck(ctx context.Context) error
	Stats() sql.DBStats
}

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, repos *repository.Repositories, db Pinger, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())
	router.Use(errorMiddleware(log))

	// Handlers
	articleHandler := NewArticleHandler(services, cfg, log)
	commentHandler := NewCommentHandler(services, log)
	topicHandler := NewTopicHandler(services, log)
	userHandler := NewUserHandler(services, log)

	router.GET("/health", healthCheck(db))
	router.GET("/metrics", metricsHandler(repos, db))

	api := router.Group("/api")
	{
		api.GET("", endpointsHandler)

		api.GET("/topics", topicHandler.GetTopics)

		articles := api.Group("/articles")
		{
			articles.GET("", articleHandler.GetArticles)
			articles.GET("/:article_id", articleHandler.GetArticleByID)
			articles.PATCH("/:article_id", articleHandler.PatchArticle)
			articles.GET("/:article_id/comments", commentHandler.GetArticleComments)
			articles.POST("/:article_id/comments", commentHandler.PostComment)
		}

		api.DELETE("/comments/:comment_id", commentHandler.DeleteComment)
		api.GET("/comment/:comment_id", commentHandler.GetCommentByID)
		api.PATCH("/comment/:comment_id", commentHandler.PatchComment)

		api.GET("/users", userHandler.GetUsers)
		api.GET("/users/:username", userHandler.GetUserByUsername)
	}

	// Unmatched GET paths are Not Found; unmatched mutating methods are
	// Method Not Allowed.
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": apperr.KindMethodNotAllowed})
	})
	router.NoRoute(func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			c.JSON(http.StatusNotFound, gin.H{"error": apperr.KindNotFound})
			return
		}
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": apperr.KindMethodNotAllowed})
	})

	return router
}

// healthCheck reports service and database health
func healthCheck(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			if err := db.HealthCheck(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":    "unhealthy",
					"timestamp": time.Now().Format(time.RFC3339),
					"service":   "nc-news-api",
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "nc-news-api",
		})
	}
}

// metricsHandler returns table counts and connection pool statistics
func metricsHandler(repos *repository.Repositories, db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		articlesCount, _ := repos.Article.Count(ctx)
		commentsCount, _ := repos.Comment.Count(ctx)
		topicsCount, _ := repos.Topic.Count(ctx)
		usersCount, _ := repos.User.Count(ctx)

		body := gin.H{
			"database": gin.H{
				"articles": articlesCount,
				"comments": commentsCount,
				"topics":   topicsCount,
				"users":    usersCount,
			},
			"timestamp": time.Now().Format(time.RFC3339),
		}
		if db != nil {
			stats := db.Stats()
			body["pool"] = gin.H{
				"open_connections": stats.OpenConnections,
				"in_use":           stats.InUse,
				"idle":             stats.Idle,
			}
		}

		c.JSON(http.StatusOK, body)
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": apperr.KindInternal,
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// requestIDMiddleware tags every request with an ID for log correlation
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Str("request_id", c.GetString("request_id")).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
