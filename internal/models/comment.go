package models

import (
	"time"
)

// ArticleID identifies the article a comment form belongs to. It doubles as
// the `post` field of the remote comments endpoint.
type ArticleID int64

// CommentFields holds the user-editable payload of a comment form. Only
// `content` is expected; every other field is optional and a zero value means
// "not set". No field is validated locally — the remote endpoint is the only
// authority on field content.
type CommentFields struct {
	Content     string `json:"content"`
	Author      int64  `json:"author,omitempty"`
	AuthorName  string `json:"author_name,omitempty"`
	AuthorEmail string `json:"author_email,omitempty"`
	AuthorURL   string `json:"author_url,omitempty"`
	Parent      int64  `json:"parent,omitempty"`
}

// FieldPatch is a partial update of CommentFields. Nil pointers leave the
// existing value untouched; non-nil pointers overwrite it.
type FieldPatch struct {
	Content     *string `json:"content,omitempty"`
	Author      *int64  `json:"author,omitempty"`
	AuthorName  *string `json:"author_name,omitempty"`
	AuthorEmail *string `json:"author_email,omitempty"`
	AuthorURL   *string `json:"author_url,omitempty"`
	Parent      *int64  `json:"parent,omitempty"`
}

// Apply merges the patch into fields, overwriting only the keys present in
// the patch. A nil patch is a no-op.
func (p *FieldPatch) Apply(fields *CommentFields) {
	if p == nil {
		return
	}
	if p.Content != nil {
		fields.Content = *p.Content
	}
	if p.Author != nil {
		fields.Author = *p.Author
	}
	if p.AuthorName != nil {
		fields.AuthorName = *p.AuthorName
	}
	if p.AuthorEmail != nil {
		fields.AuthorEmail = *p.AuthorEmail
	}
	if p.AuthorURL != nil {
		fields.AuthorURL = *p.AuthorURL
	}
	if p.Parent != nil {
		fields.Parent = *p.Parent
	}
}

// SubmissionStatus describes the outcome of the most recent submission
// attempt for an article. Exactly one of IsPending or a terminal state holds
// at any time; a terminal state is either IsError or one of IsOnHold /
// IsApproved, never both error and accepted.
type SubmissionStatus struct {
	AttemptID    string        `json:"attempt_id"`
	IsPending    bool          `json:"is_pending"`
	IsError      bool          `json:"is_error"`
	ErrorMessage string        `json:"error_message"`
	IsOnHold     bool          `json:"is_on_hold"`
	IsApproved   bool          `json:"is_approved"`
	CommentID    int64         `json:"id,omitempty"`
	Timestamp    time.Time     `json:"timestamp"`
	Fields       CommentFields `json:"fields"` // snapshot of what was sent
}

// Form is the per-article record of field values and last submission status.
// Submitted is nil until a first submission is attempted.
type Form struct {
	ArticleID ArticleID         `json:"article_id"`
	Fields    CommentFields     `json:"fields"`
	Submitted *SubmissionStatus `json:"submitted,omitempty"`
}

// Clone returns a deep copy of the form so store readers never hold
// references into the store's own record.
func (f *Form) Clone() *Form {
	if f == nil {
		return nil
	}
	out := *f
	if f.Submitted != nil {
		st := *f.Submitted
		out.Submitted = &st
	}
	return &out
}
