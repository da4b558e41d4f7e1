package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/emilythestrangee/factfeed/backend/internal/auth"
	"github.com/emilythestrangee/factfeed/backend/internal/content"
	"github.com/emilythestrangee/factfeed/backend/internal/feed"
	"github.com/emilythestrangee/factfeed/backend/internal/middleware"
	"github.com/emilythestrangee/factfeed/backend/internal/ranking"
	"github.com/emilythestrangee/factfeed/backend/internal/votes"
)

// Handler combines all handler types
type Handler struct {
	Auth      *AuthHandler
	Article   *ArticleHandler
	Comment   *CommentHandler
	FactCheck *FactCheckHandler
	Vote      *VoteHandler
	User      *UserHandler
}

// NewHandler wires every handler to the same database and token issuer.
func NewHandler(db *gorm.DB, tokens *auth.Tokens) *Handler {
	store := content.NewStore(db)
	scores := votes.NewAggregator(db)
	ledger := votes.NewLedger(db, store)
	feeds := feed.NewService(store, scores)

	return &Handler{
		Auth:      NewAuthHandler(db, tokens),
		Article:   NewArticleHandler(store, feeds),
		Comment:   NewCommentHandler(store, feeds),
		FactCheck: NewFactCheckHandler(store),
		Vote:      NewVoteHandler(ledger, scores),
		User:      NewUserHandler(db, feeds, store),
	}
}

func now() time.Time {
	return time.Now().UTC()
}

// extractUserID returns the authenticated caller set by the auth middleware.
func extractUserID(c *gin.Context) (int, bool) {
	v, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return 0, false
	}
	id, ok := v.(int)
	if !ok || id <= 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return 0, false
	}
	return id, true
}

// paramID parses a positive integer path parameter.
func paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

// queryInt parses an optional integer query parameter.
func queryInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return n, true
}

// statusFor maps domain errors to HTTP statuses. Unknown errors are 500s and
// their details stay in the log.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, votes.ErrInvalidTargetKind),
		errors.Is(err, votes.ErrInvalidVoteValue),
		errors.Is(err, ranking.ErrUnsupportedSortType),
		errors.Is(err, content.ErrInvalidLevel),
		errors.Is(err, auth.ErrWeakPassword):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, votes.ErrTargetNotFound), errors.Is(err, content.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, votes.ErrPersistenceConflict):
		return http.StatusConflict, "The vote could not be recorded, please retry"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return http.StatusConflict, "Resource already exists"
	}
	return http.StatusInternalServerError, "Internal server error"
}

func respondError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	_ = c.Error(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", c.GetString(middleware.RequestIDKey),
			"error", err,
		)
	}
	c.JSON(status, gin.H{"error": msg})
}
