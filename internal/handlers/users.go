package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/emilythestrangee/factfeed/backend/internal/content"
	"github.com/emilythestrangee/factfeed/backend/internal/feed"
	"github.com/emilythestrangee/factfeed/backend/internal/models"
	"github.com/emilythestrangee/factfeed/backend/internal/ranking"
)

type UserHandler struct {
	db    *gorm.DB
	feed  *feed.Service
	store *content.Store
}

func NewUserHandler(db *gorm.DB, feeds *feed.Service, store *content.Store) *UserHandler {
	return &UserHandler{db: db, feed: feeds, store: store}
}

// GetUserProfile returns a user's public profile and submitted articles,
// newest first.
func (h *UserHandler) GetUserProfile(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		respondError(c, err)
		return
	}

	articles, err := h.store.ListArticlesBySubmitter(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	items, err := h.feed.Rank(c.Request.Context(), articles, ranking.SortNew, now())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":         user.ID,
			"username":   user.Username,
			"created_at": user.CreatedAt,
		},
		"articles":      items,
		"article_count": len(items),
	})
}
