package store

import (
	"errors"
	"sync"
	"time"

	"github.com/Uwaks/frontity/internal/models"
)

// ErrSubmissionInFlight is returned by BeginSubmission while a previous
// submission for the same article has not reached a terminal state yet.
var ErrSubmissionInFlight = errors.New("a submission is already in flight for this article")

// Resolution is the terminal outcome written back into a form's submission
// status once a dispatched attempt finishes.
type Resolution struct {
	IsError      bool
	ErrorMessage string
	IsOnHold     bool
	IsApproved   bool
	CommentID    int64
}

// FormStore keeps the per-article comment forms. Entries are created lazily
// on first field update or first submission and live for the process
// lifetime; nothing deletes them. The submission engine is the only writer of
// the Submitted record; readers get copies and must not write back.
type FormStore struct {
	mu    sync.Mutex
	forms map[models.ArticleID]*models.Form
}

// New creates an empty form store.
func New() *FormStore {
	return &FormStore{
		forms: make(map[models.ArticleID]*models.Form),
	}
}

// UpdateFields merges the patch into the form for articleID, creating the
// form with a default empty content first if it does not exist. A nil or
// empty patch never resets an existing form. Repeated identical merges are
// idempotent, and keys absent from the patch are retained.
func (s *FormStore) UpdateFields(articleID models.ArticleID, patch *models.FieldPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	form := s.ensure(articleID)
	patch.Apply(&form.Fields)
}

// Get returns a copy of the form for articleID, or nil when no form has been
// created yet.
func (s *FormStore) Get(articleID models.ArticleID) *models.Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.forms[articleID].Clone()
}

// BeginSubmission atomically runs the in-flight guard and, if it passes,
// merges the patch, snapshots the merged fields and transitions the form to
// pending. It returns the snapshot to be sent on the wire. When the previous
// attempt is still pending it returns ErrSubmissionInFlight and the form is
// left byte-for-byte unchanged.
func (s *FormStore) BeginSubmission(articleID models.ArticleID, patch *models.FieldPatch, attemptID string) (models.CommentFields, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if form, ok := s.forms[articleID]; ok && form.Submitted != nil && form.Submitted.IsPending {
		return models.CommentFields{}, ErrSubmissionInFlight
	}

	form := s.ensure(articleID)
	patch.Apply(&form.Fields)
	form.Submitted = &models.SubmissionStatus{
		AttemptID: attemptID,
		IsPending: true,
		Timestamp: time.Now(),
		Fields:    form.Fields,
	}
	return form.Fields, nil
}

// FinishSubmission records the terminal outcome of the pending attempt for
// articleID. The attempt's timestamp and field snapshot are preserved. It is
// a no-op when no submission was begun, which cannot happen through the
// engine.
func (s *FormStore) FinishSubmission(articleID models.ArticleID, res Resolution) {
	s.mu.Lock()
	defer s.mu.Unlock()

	form, ok := s.forms[articleID]
	if !ok || form.Submitted == nil {
		return
	}
	st := form.Submitted
	st.IsPending = false
	st.IsError = res.IsError
	st.ErrorMessage = res.ErrorMessage
	st.IsOnHold = res.IsOnHold
	st.IsApproved = res.IsApproved
	st.CommentID = res.CommentID
}

// Len returns the number of forms created so far.
func (s *FormStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.forms)
}

// PendingCount returns how many forms currently have a submission in flight.
func (s *FormStore) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, form := range s.forms {
		if form.Submitted != nil && form.Submitted.IsPending {
			n++
		}
	}
	return n
}

// ensure returns the form for articleID, creating it with the default empty
// content when absent. Callers must hold the lock.
func (s *FormStore) ensure(articleID models.ArticleID) *models.Form {
	form, ok := s.forms[articleID]
	if !ok {
		form = &models.Form{
			ArticleID: articleID,
			Fields:    models.CommentFields{Content: ""},
		}
		s.forms[articleID] = form
	}
	return form
}
