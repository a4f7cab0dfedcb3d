package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Uwaks/frontity/internal/config"
	"github.com/Uwaks/frontity/internal/models"
	"github.com/Uwaks/frontity/internal/store"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrWritesUnsupported is returned when the connected content source is a
// hosted variant that rejects comment write operations.
var ErrWritesUnsupported = errors.New("the content source does not support comment submissions")

// commentService is the concrete implementation of CommentService. It owns
// the submission state machine: guard checks, the pending transition, the
// wire request and the terminal write-back.
type commentService struct {
	forms     *store.FormStore
	transport Transport
	cfg       *config.Config
	log       zerolog.Logger
}

// newCommentService creates a new CommentService
func newCommentService(forms *store.FormStore, transport Transport, cfg *config.Config, log zerolog.Logger) *commentService {
	return &commentService{
		forms:     forms,
		transport: transport,
		cfg:       cfg,
		log:       log.With().Str("service", "comment").Logger(),
	}
}

// UpdateFields merges the patch into the article's form, creating it when
// absent, and returns the updated form.
func (s *commentService) UpdateFields(articleID models.ArticleID, patch *models.FieldPatch) *models.Form {
	s.forms.UpdateFields(articleID, patch)
	return s.forms.Get(articleID)
}

// GetForm returns a copy of the article's form, or nil when none exists yet.
func (s *commentService) GetForm(articleID models.ArticleID) *models.Form {
	return s.forms.Get(articleID)
}

// Submit runs one submission attempt for the article. Guard rejections
// (unsupported source, submission already in flight) are returned as errors
// and leave the form untouched. Every other result, including remote
// rejections and transport failures, is recorded into the form's submission
// status; the returned form carries the terminal outcome. No retries are
// performed: a new attempt requires a fresh call, gated by the same guards.
func (s *commentService) Submit(ctx context.Context, articleID models.ArticleID, patch *models.FieldPatch) (*models.Form, error) {
	if !s.cfg.Source.SupportsWrites {
		s.log.Warn().
			Int64("article_id", int64(articleID)).
			Msg("Submission rejected: source does not support comment writes")
		return nil, ErrWritesUnsupported
	}

	attemptID := uuid.New().String()
	fields, err := s.forms.BeginSubmission(articleID, patch, attemptID)
	if err != nil {
		s.log.Warn().
			Int64("article_id", int64(articleID)).
			Msg("Submission rejected: previous attempt still in flight")
		return nil, err
	}

	log := s.log.With().
		Int64("article_id", int64(articleID)).
		Str("attempt_id", attemptID).
		Logger()
	log.Info().Msg("Submitting comment")

	outcome := s.dispatch(ctx, articleID, fields, log)
	s.forms.FinishSubmission(articleID, resolve(outcome))

	switch outcome.Kind {
	case OutcomeAccepted:
		log.Info().
			Int64("comment_id", outcome.CommentID).
			Bool("on_hold", outcome.OnHold).
			Msg("Comment accepted")
	case OutcomeMalformed:
		log.Error().Msg("Acceptance redirect is missing the comment id fragment")
	default:
		log.Warn().Str("reason", resolve(outcome).ErrorMessage).Msg("Comment not accepted")
	}

	return s.forms.Get(articleID), nil
}

// dispatch builds the wire request, performs it and classifies the response.
func (s *commentService) dispatch(ctx context.Context, articleID models.ArticleID, fields models.CommentFields, log zerolog.Logger) Outcome {
	body := encodeFields(articleID, fields)
	endpoint := strings.TrimSuffix(s.cfg.Source.APIBase, "/") + "/wp/v2/comments"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body))
	if err != nil {
		log.Error().Err(err).Str("endpoint", endpoint).Msg("Failed to build request")
		return Outcome{Kind: OutcomeNetworkError}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.transport.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("Transport failure")
		return Outcome{Kind: OutcomeNetworkError}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read response body")
		return Outcome{Kind: OutcomeNetworkError}
	}

	return Classify(resp.StatusCode, resp.Header.Get("Location"), respBody)
}

// encodeFields builds the form-urlencoded request body. Only truthy values
// are sent, plus the target article id as `post`.
func encodeFields(articleID models.ArticleID, fields models.CommentFields) string {
	values := url.Values{}
	values.Set("post", strconv.FormatInt(int64(articleID), 10))
	if fields.Content != "" {
		values.Set("content", fields.Content)
	}
	if fields.Author > 0 {
		values.Set("author", strconv.FormatInt(fields.Author, 10))
	}
	if fields.AuthorName != "" {
		values.Set("author_name", fields.AuthorName)
	}
	if fields.AuthorEmail != "" {
		values.Set("author_email", fields.AuthorEmail)
	}
	if fields.AuthorURL != "" {
		values.Set("author_url", fields.AuthorURL)
	}
	if fields.Parent > 0 {
		values.Set("parent", strconv.FormatInt(fields.Parent, 10))
	}
	return values.Encode()
}

// resolve converts a classified outcome into the terminal form resolution.
func resolve(outcome Outcome) store.Resolution {
	switch outcome.Kind {
	case OutcomeAccepted:
		return store.Resolution{
			IsOnHold:   outcome.OnHold,
			IsApproved: !outcome.OnHold,
			CommentID:  outcome.CommentID,
		}
	case OutcomeNetworkError:
		return store.Resolution{IsError: true, ErrorMessage: msgNetworkError}
	case OutcomeMalformed:
		return store.Resolution{IsError: true, ErrorMessage: msgMalformed}
	default:
		return store.Resolution{IsError: true, ErrorMessage: outcome.Reason}
	}
}
