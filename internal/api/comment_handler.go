package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/Uwaks/frontity/internal/models"
	"github.com/Uwaks/frontity/internal/service"
	"github.com/Uwaks/frontity/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CommentHandler handles the per-article comment form endpoints
type CommentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// GetForm handles GET /v1/articles/:article_id/comment
func (h *CommentHandler) GetForm(c *gin.Context) {
	articleID, ok := articleIDParam(c)
	if !ok {
		return
	}

	form := h.services.Comment.GetForm(articleID)
	if form == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no comment form for this article"})
		return
	}

	c.JSON(http.StatusOK, form)
}

// UpdateFields handles PATCH /v1/articles/:article_id/comment
// Merges the provided field values into the article's form; an empty body
// creates the form with its defaults.
func (h *CommentHandler) UpdateFields(c *gin.Context) {
	articleID, ok := articleIDParam(c)
	if !ok {
		return
	}

	patch, ok := bindPatch(c)
	if !ok {
		return
	}

	form := h.services.Comment.UpdateFields(articleID, patch)
	c.JSON(http.StatusOK, form)
}

// Submit handles POST /v1/articles/:article_id/comment
// Field values in the body are merged before the submission is dispatched.
func (h *CommentHandler) Submit(c *gin.Context) {
	articleID, ok := articleIDParam(c)
	if !ok {
		return
	}

	patch, ok := bindPatch(c)
	if !ok {
		return
	}

	form, err := h.services.Comment.Submit(c.Request.Context(), articleID, patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWritesUnsupported):
			c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
		case errors.Is(err, store.ErrSubmissionInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			h.log.Error().Err(err).Int64("article_id", int64(articleID)).Msg("Submission failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit comment"})
		}
		return
	}

	// Remote rejections are recorded state, not gateway errors: the form is
	// returned with the terminal outcome embedded.
	c.JSON(http.StatusOK, form)
}

// articleIDParam parses the :article_id path parameter, answering 400 itself
// on a malformed id.
func articleIDParam(c *gin.Context) (models.ArticleID, bool) {
	raw := c.Param("article_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "article_id must be a positive integer"})
		return 0, false
	}
	return models.ArticleID(id), true
}

// bindPatch decodes an optional JSON FieldPatch body. An empty body yields a
// nil patch.
func bindPatch(c *gin.Context) (*models.FieldPatch, bool) {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil, true
	}

	var patch models.FieldPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, true
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return nil, false
	}
	return &patch, true
}
