package service

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
)

// OutcomeKind tags the classification of a submission response.
type OutcomeKind int

const (
	// OutcomeNetworkError: the transport failed and no response was received.
	OutcomeNetworkError OutcomeKind = iota
	// OutcomeRejected: the remote endpoint refused the comment.
	OutcomeRejected
	// OutcomeAccepted: the comment was created, published or held for
	// moderation.
	OutcomeAccepted
	// OutcomeMalformed: a 302 acceptance whose Location header is missing
	// the expected comment id fragment.
	OutcomeMalformed
)

// Outcome is the classified result of one submission attempt.
type Outcome struct {
	Kind      OutcomeKind
	Reason    string // rejection message, set for OutcomeRejected
	CommentID int64  // remotely assigned id, set for OutcomeAccepted
	OnHold    bool   // accepted but queued for moderation
}

const (
	msgNetworkError  = "Network error"
	msgInvalidPostID = "The post ID is invalid"
	msgInvalidAuthor = "Author or email are empty, or email has an invalid format"
	msgDuplicate     = "The comment was already submitted"
	msgMalformed     = "Malformed acceptance: missing comment id in Location header"
)

// The comments endpoint redirects to the created comment on success, with
// the new id in the URL fragment.
var commentFragmentRE = regexp.MustCompile(`^comment-(\d+)$`)

// Classify maps a raw HTTP response from the comments endpoint to a
// submission outcome. The endpoint overloads its status codes: 200 is a
// rejection carrying an informative body, 409 a server-side duplicate check,
// and 302 the only acceptance signal, with the comment id and moderation
// state encoded in the Location header.
func Classify(status int, location string, body []byte) Outcome {
	switch status {
	case 200:
		// The endpoint does not disambiguate further than body emptiness.
		if len(body) == 0 {
			return Outcome{Kind: OutcomeRejected, Reason: msgInvalidPostID}
		}
		return Outcome{Kind: OutcomeRejected, Reason: msgInvalidAuthor}
	case 409:
		return Outcome{Kind: OutcomeRejected, Reason: msgDuplicate}
	case 302:
		id, ok := parseCommentID(location)
		if !ok {
			return Outcome{Kind: OutcomeMalformed}
		}
		return Outcome{
			Kind:      OutcomeAccepted,
			CommentID: id,
			OnHold:    isUnapproved(location),
		}
	default:
		return Outcome{Kind: OutcomeRejected, Reason: fmt.Sprintf("Unexpected error: %d", status)}
	}
}

// parseCommentID extracts the comment id from the `#comment-<digits>`
// fragment of an acceptance redirect URL.
func parseCommentID(location string) (int64, bool) {
	u, err := url.Parse(location)
	if err != nil {
		return 0, false
	}
	m := commentFragmentRE.FindStringSubmatch(u.Fragment)
	if m == nil {
		return 0, false
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// isUnapproved reports whether the redirect URL carries the `unapproved`
// moderation marker. Only presence matters, not the value.
func isUnapproved(location string) bool {
	u, err := url.Parse(location)
	if err != nil {
		return false
	}
	return u.Query().Has("unapproved")
}
