package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/factfeed/backend/internal/content"
	"github.com/emilythestrangee/factfeed/backend/internal/models"
)

type FactCheckHandler struct {
	store *content.Store
}

func NewFactCheckHandler(store *content.Store) *FactCheckHandler {
	return &FactCheckHandler{store: store}
}

func (h *FactCheckHandler) CreateFactCheck(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	articleID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input models.CreateFactCheckRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fc := models.FactCheck{
		Level:        models.FactCheckLevel(*input.Level),
		Content:      input.Content,
		Source:       input.Source,
		FactCheckURL: input.FactCheckURL,
		UserID:       &userID,
		ArticleID:    articleID,
	}
	if err := h.store.CreateFactCheck(c.Request.Context(), &fc); err != nil {
		respondError(c, err)
		return
	}

	created, err := h.store.GetFactCheck(c.Request.Context(), fc.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *FactCheckHandler) UpdateFactCheck(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input models.UpdateFactCheckRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fc, err := h.store.GetFactCheck(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !fc.OwnedBy(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own fact checks"})
		return
	}

	updated, err := h.store.UpdateFactCheck(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *FactCheckHandler) DeleteFactCheck(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	fc, err := h.store.GetFactCheck(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !fc.OwnedBy(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own fact checks"})
		return
	}

	if err := h.store.DeleteFactCheck(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fact check deleted successfully"})
}
