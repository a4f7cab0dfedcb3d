package service

import (
	"context"
	"net/http"

	"github.com/Uwaks/frontity/internal/config"
	"github.com/Uwaks/frontity/internal/models"
	"github.com/Uwaks/frontity/internal/store"
	"github.com/rs/zerolog"
)

// Transport performs one HTTP request against the content source. It must
// not follow redirects: the 302 acceptance response has to reach the
// classifier intact. http.Client with CheckRedirect returning
// http.ErrUseLastResponse satisfies this.
type Transport interface {
	Do(req *http.Request) (*http.Response, error)
}

// CommentService defines the comment form operations exposed to the HTTP
// layer.
type CommentService interface {
	UpdateFields(articleID models.ArticleID, patch *models.FieldPatch) *models.Form
	GetForm(articleID models.ArticleID) *models.Form
	Submit(ctx context.Context, articleID models.ArticleID, patch *models.FieldPatch) (*models.Form, error)
}

// Services holds all service interfaces.
type Services struct {
	Comment CommentService
	Forms   *store.FormStore
}

// NewServices creates all services.
func NewServices(forms *store.FormStore, transport Transport, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Comment: newCommentService(forms, transport, cfg, log),
		Forms:   forms,
	}
}
