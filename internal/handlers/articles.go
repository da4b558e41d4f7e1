package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/factfeed/backend/internal/content"
	"github.com/emilythestrangee/factfeed/backend/internal/feed"
	"github.com/emilythestrangee/factfeed/backend/internal/models"
	"github.com/emilythestrangee/factfeed/backend/internal/ranking"
)

type ArticleHandler struct {
	store *content.Store
	feed  *feed.Service
}

func NewArticleHandler(store *content.Store, feeds *feed.Service) *ArticleHandler {
	return &ArticleHandler{store: store, feed: feeds}
}

// GetArticles returns one page of the ranked article feed.
func (h *ArticleHandler) GetArticles(c *gin.Context) {
	sort, err := ranking.ParseSort(c.Query("sort"))
	if err != nil {
		respondError(c, err)
		return
	}
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}
	offset, ok := queryInt(c, "offset")
	if !ok {
		return
	}

	page, err := h.feed.Articles(c.Request.Context(), feed.Query{Sort: sort, Limit: limit, Offset: offset}, now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetArticle returns a single article with its comments and fact checks
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	detail, err := h.feed.Article(c.Request.Context(), id, now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// CreateArticle creates a new article (PROTECTED - requires authentication)
func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var input models.CreateArticleRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article := models.Article{
		Title:         input.Title,
		URL:           input.URL,
		ImageURL:      input.ImageURL,
		SubmittedByID: &userID,
	}
	if err := h.store.CreateArticle(c.Request.Context(), &article); err != nil {
		respondError(c, err)
		return
	}

	detail, err := h.feed.Article(c.Request.Context(), article.ID, now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, detail)
}

// UpdateArticle updates an existing article (PROTECTED - requires ownership)
func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input models.UpdateArticleRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article, err := h.store.GetArticle(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !article.OwnedBy(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own articles"})
		return
	}

	updated, err := h.store.UpdateArticle(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteArticle deletes an article with its comments, fact checks and votes
// (PROTECTED - requires ownership)
func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	article, err := h.store.GetArticle(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !article.OwnedBy(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own articles"})
		return
	}

	if err := h.store.DeleteArticle(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Article deleted successfully"})
}
