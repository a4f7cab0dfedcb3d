package service_test

import (
	"strconv"
	"testing"

	"github.com/Uwaks/frontity/internal/service"
)

func TestClassify_AcceptedApproved(t *testing.T) {
	outcome := service.Classify(302, "https://example.com/2024/some-post#comment-42", nil)

	if outcome.Kind != service.OutcomeAccepted {
		t.Fatalf("Expected OutcomeAccepted, got %v", outcome.Kind)
	}
	if outcome.CommentID != 42 {
		t.Errorf("Expected comment id 42, got %d", outcome.CommentID)
	}
	if outcome.OnHold {
		t.Error("Expected approved, got on hold")
	}
}

func TestClassify_AcceptedOnHold(t *testing.T) {
	outcome := service.Classify(302, "https://example.com/2024/some-post?unapproved=108#comment-108", nil)

	if outcome.Kind != service.OutcomeAccepted {
		t.Fatalf("Expected OutcomeAccepted, got %v", outcome.Kind)
	}
	if outcome.CommentID != 108 {
		t.Errorf("Expected comment id 108, got %d", outcome.CommentID)
	}
	if !outcome.OnHold {
		t.Error("Expected on hold for an unapproved redirect")
	}
}

func TestClassify_UnapprovedPresenceOnly(t *testing.T) {
	// The marker's value is irrelevant, only its presence counts.
	outcome := service.Classify(302, "https://example.com/post?unapproved=#comment-9", nil)

	if outcome.Kind != service.OutcomeAccepted || !outcome.OnHold {
		t.Errorf("Expected on-hold acceptance, got %+v", outcome)
	}
}

func TestClassify_MalformedAcceptance(t *testing.T) {
	cases := []struct {
		name     string
		location string
	}{
		{"missing header", ""},
		{"no fragment", "https://example.com/2024/some-post"},
		{"wrong fragment", "https://example.com/2024/some-post#respond"},
		{"non-numeric id", "https://example.com/post#comment-abc"},
		{"unparsable url", "https://example.com/%zz#comment-1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			outcome := service.Classify(302, tc.location, nil)
			if outcome.Kind != service.OutcomeMalformed {
				t.Errorf("Expected OutcomeMalformed for %q, got %+v", tc.location, outcome)
			}
		})
	}
}

func TestClassify_Duplicate(t *testing.T) {
	outcome := service.Classify(409, "", []byte("ignored"))

	if outcome.Kind != service.OutcomeRejected {
		t.Fatalf("Expected OutcomeRejected, got %v", outcome.Kind)
	}
	if outcome.Reason != "The comment was already submitted" {
		t.Errorf("Unexpected reason %q", outcome.Reason)
	}
}

func TestClassify_RejectedEmptyBody(t *testing.T) {
	outcome := service.Classify(200, "", nil)

	if outcome.Kind != service.OutcomeRejected {
		t.Fatalf("Expected OutcomeRejected, got %v", outcome.Kind)
	}
	if outcome.Reason != "The post ID is invalid" {
		t.Errorf("Unexpected reason %q", outcome.Reason)
	}
}

func TestClassify_RejectedNonEmptyBody(t *testing.T) {
	outcome := service.Classify(200, "", []byte("<p>Error: please enter a valid email address.</p>"))

	if outcome.Kind != service.OutcomeRejected {
		t.Fatalf("Expected OutcomeRejected, got %v", outcome.Kind)
	}
	if outcome.Reason != "Author or email are empty, or email has an invalid format" {
		t.Errorf("Unexpected reason %q", outcome.Reason)
	}
}

func TestClassify_UnexpectedStatuses(t *testing.T) {
	for _, status := range []int{400, 401, 403, 404, 500, 503} {
		outcome := service.Classify(status, "", nil)
		if outcome.Kind != service.OutcomeRejected {
			t.Errorf("Status %d: expected OutcomeRejected, got %v", status, outcome.Kind)
		}
		want := "Unexpected error: " + strconv.Itoa(status)
		if outcome.Reason != want {
			t.Errorf("Status %d: expected %q, got %q", status, want, outcome.Reason)
		}
	}
}
