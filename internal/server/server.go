package server

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/factfeed/backend/internal/auth"
	"github.com/emilythestrangee/factfeed/backend/internal/config"
	"github.com/emilythestrangee/factfeed/backend/internal/database"
	"github.com/emilythestrangee/factfeed/backend/internal/handlers"
	"github.com/emilythestrangee/factfeed/backend/internal/middleware"
)

type Server struct {
	cfg     config.Config
	db      database.Service
	tokens  *auth.Tokens
	handler *handlers.Handler
}

// New builds the server around an open database.
func New(cfg config.Config, db database.Service) *Server {
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	return &Server{
		cfg:     cfg,
		db:      db,
		tokens:  tokens,
		handler: handlers.NewHandler(db.GetDB(), tokens),
	}
}

// HTTPServer returns the listener configuration for the router.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         "0.0.0.0:" + s.cfg.Port,
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	if s.cfg.GinMode != "" {
		gin.SetMode(s.cfg.GinMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.WithLogging())

	r.Use(cors.New(corsConfig(s.cfg.AllowOrigins)))

	r.GET("/health", s.healthHandler)

	h := s.handler
	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/signup", h.Auth.Signup)
		api.POST("/login", h.Auth.Login)
		api.DELETE("/logout", h.Auth.Logout)

		api.GET("/articles", h.Article.GetArticles)
		api.GET("/articles/:id", h.Article.GetArticle)
		api.GET("/articles/:id/comments", h.Comment.GetComments)

		api.GET("/votes/:type/:id", h.Vote.GetVotes)

		api.GET("/users/:id", h.User.GetUserProfile)

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(s.tokens))
		{
			protected.GET("/check_session", h.Auth.CheckSession)

			protected.POST("/articles", h.Article.CreateArticle)
			protected.PATCH("/articles/:id", h.Article.UpdateArticle)
			protected.DELETE("/articles/:id", h.Article.DeleteArticle)

			protected.POST("/articles/:id/comments", h.Comment.CreateComment)
			protected.PATCH("/comments/:id", h.Comment.UpdateComment)
			protected.DELETE("/comments/:id", h.Comment.DeleteComment)

			protected.POST("/articles/:id/fact_checks", h.FactCheck.CreateFactCheck)
			protected.PATCH("/fact_checks/:id", h.FactCheck.UpdateFactCheck)
			protected.DELETE("/fact_checks/:id", h.FactCheck.DeleteFactCheck)

			protected.POST("/votes/:type/:id", h.Vote.CastVote)
			protected.GET("/votes/:type/:id/mine", h.Vote.GetMyVote)
		}
	}

	return r
}

// corsConfig allows credentials only for an explicit origin list; browsers
// refuse credentialed responses carrying a wildcard origin.
func corsConfig(origins []string) cors.Config {
	wildcard := len(origins) == 0 || slices.Contains(origins, "*")
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: !wildcard,
		MaxAge:           12 * time.Hour,
	}
	if wildcard {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func (s *Server) healthHandler(c *gin.Context) {
	stats := s.db.Health()
	status := http.StatusOK
	if stats["status"] != "up" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, stats)
}
