package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"blogmedia/internal/domain"
	"blogmedia/internal/service"
)

// ArticleRequest is the body of article create and update requests.
type ArticleRequest struct {
	Title    *string `json:"title"`
	Abstract *string `json:"abstract"`
	Body     *string `json:"body"`
}

// ArticleHandler handles article endpoints.
type ArticleHandler struct {
	articleService service.ArticleService
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(articleService service.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

// Create handles POST /api/v1/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req ArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	article, err := h.articleService.Create(c.Request.Context(), &service.CreateArticleInput{
		CreatedBy: userID,
		Title:     valueOf(req.Title),
		Abstract:  valueOf(req.Abstract),
		Body:      valueOf(req.Body),
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/articles/"+strconv.FormatInt(article.ID, 10))
	c.JSON(http.StatusCreated, article)
}

// List handles GET /api/v1/articles
func (h *ArticleHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)
	ordering := domain.ArticleOrdering(c.Query("ordering"))

	articles, total, err := h.articleService.List(c.Request.Context(), ordering, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPage(c, articles, total, offset, limit)
}

// GetByID handles GET /api/v1/articles/:id
func (h *ArticleHandler) GetByID(c *gin.Context) {
	id, ok := parseArticleID(c)
	if !ok {
		return
	}

	article, err := h.articleService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, article)
}

// Update handles PUT /api/v1/articles/:id
func (h *ArticleHandler) Update(c *gin.Context) {
	h.update(c, h.articleService.Update)
}

// PartialUpdate handles PATCH /api/v1/articles/:id
func (h *ArticleHandler) PartialUpdate(c *gin.Context) {
	h.update(c, h.articleService.PartialUpdate)
}

// Delete handles DELETE /api/v1/articles/:id
func (h *ArticleHandler) Delete(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseArticleID(c)
	if !ok {
		return
	}

	if err := h.articleService.Delete(c.Request.Context(), id, userID); err != nil {
		HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type articleUpdateFunc func(ctx context.Context, input *service.UpdateArticleInput) (*domain.Article, error)

func (h *ArticleHandler) update(c *gin.Context, apply articleUpdateFunc) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseArticleID(c)
	if !ok {
		return
	}

	var req ArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	article, err := apply(c.Request.Context(), &service.UpdateArticleInput{
		ArticleID: id,
		UserID:    userID,
		Title:     req.Title,
		Abstract:  req.Abstract,
		Body:      req.Body,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, article)
}

func parseArticleID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid article ID")
		return 0, false
	}
	return id, true
}

func valueOf(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
