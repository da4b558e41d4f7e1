package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/factfeed/backend/internal/content"
	"github.com/emilythestrangee/factfeed/backend/internal/feed"
	"github.com/emilythestrangee/factfeed/backend/internal/models"
	"github.com/emilythestrangee/factfeed/backend/internal/ranking"
)

type CommentHandler struct {
	store *content.Store
	feed  *feed.Service
}

func NewCommentHandler(store *content.Store, feeds *feed.Service) *CommentHandler {
	return &CommentHandler{store: store, feed: feeds}
}

// GetComments returns the ranked comments of an article.
func (h *CommentHandler) GetComments(c *gin.Context) {
	articleID, ok := paramID(c, "id")
	if !ok {
		return
	}
	sort, err := ranking.ParseSort(c.Query("sort"))
	if err != nil {
		respondError(c, err)
		return
	}

	comments, err := h.feed.Comments(c.Request.Context(), articleID, sort, now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	articleID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input models.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment := models.Comment{Content: input.Content, UserID: &userID, ArticleID: articleID}
	if err := h.store.CreateComment(c.Request.Context(), &comment); err != nil {
		respondError(c, err)
		return
	}

	created, err := h.store.GetComment(c.Request.Context(), comment.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input models.UpdateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.store.GetComment(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !comment.OwnedBy(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own comments"})
		return
	}

	updated, err := h.store.UpdateComment(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteComment removes a comment and the votes on it.
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	comment, err := h.store.GetComment(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !comment.OwnedBy(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own comments"})
		return
	}

	if err := h.store.DeleteComment(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
