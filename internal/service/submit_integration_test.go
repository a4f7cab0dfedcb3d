package service_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Uwaks/frontity/internal/config"
	"github.com/Uwaks/frontity/internal/models"
	"github.com/Uwaks/frontity/internal/service"
	"github.com/Uwaks/frontity/internal/store"
	"github.com/rs/zerolog"
)

// fakeWordPress stands in for the remote comments endpoint, answering with
// the quirky status-code contract the engine has to interpret.
func fakeWordPress(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/wp-json/wp/v2/comments", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("Unexpected content type %q", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm failed: %v", err)
		}

		switch r.PostFormValue("content") {
		case "duplicate":
			w.WriteHeader(http.StatusConflict)
		case "":
			// WordPress answers field rejections with a 200 and a body.
			fmt.Fprint(w, "<p>Error: please fill the required fields.</p>")
		case "moderate me":
			w.Header().Set("Location",
				fmt.Sprintf("https://example.com/post-%s?unapproved=77#comment-77", r.PostFormValue("post")))
			w.WriteHeader(http.StatusFound)
		default:
			w.Header().Set("Location",
				fmt.Sprintf("https://example.com/post-%s#comment-1203", r.PostFormValue("post")))
			w.WriteHeader(http.StatusFound)
		}
	})
	return httptest.NewServer(mux)
}

func newIntegrationHarness(t *testing.T, upstream *httptest.Server) *service.Services {
	t.Helper()

	cfg := &config.Config{
		Source: config.SourceConfig{
			APIBase:        upstream.URL + "/wp-json",
			SupportsWrites: true,
		},
	}
	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return service.NewServices(store.New(), client, cfg, zerolog.Nop())
}

func TestIntegration_SubmitApproved(t *testing.T) {
	upstream := fakeWordPress(t)
	defer upstream.Close()
	services := newIntegrationHarness(t, upstream)

	form, err := services.Comment.Submit(context.Background(), 60, &models.FieldPatch{
		Content:     strPtr("What a great article"),
		AuthorName:  strPtr("Jane"),
		AuthorEmail: strPtr("jane@example.com"),
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	st := form.Submitted
	if !st.IsApproved || st.IsOnHold || st.IsError || st.IsPending {
		t.Fatalf("Expected approved, got %+v", st)
	}
	if st.CommentID != 1203 {
		t.Errorf("Expected comment id 1203, got %d", st.CommentID)
	}
}

func TestIntegration_SubmitOnHold(t *testing.T) {
	upstream := fakeWordPress(t)
	defer upstream.Close()
	services := newIntegrationHarness(t, upstream)

	form, err := services.Comment.Submit(context.Background(), 60, &models.FieldPatch{
		Content: strPtr("moderate me"),
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	st := form.Submitted
	if !st.IsOnHold || st.IsApproved {
		t.Fatalf("Expected on hold, got %+v", st)
	}
	if st.CommentID != 77 {
		t.Errorf("Expected comment id 77, got %d", st.CommentID)
	}
}

func TestIntegration_SubmitRejected(t *testing.T) {
	upstream := fakeWordPress(t)
	defer upstream.Close()
	services := newIntegrationHarness(t, upstream)

	form, err := services.Comment.Submit(context.Background(), 60, nil)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	st := form.Submitted
	if !st.IsError {
		t.Fatalf("Expected error state, got %+v", st)
	}
	if st.ErrorMessage != "Author or email are empty, or email has an invalid format" {
		t.Errorf("Unexpected message %q", st.ErrorMessage)
	}
}

func TestIntegration_SubmitDuplicate(t *testing.T) {
	upstream := fakeWordPress(t)
	defer upstream.Close()
	services := newIntegrationHarness(t, upstream)

	form, err := services.Comment.Submit(context.Background(), 60, &models.FieldPatch{
		Content: strPtr("duplicate"),
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if msg := form.Submitted.ErrorMessage; msg != "The comment was already submitted" {
		t.Errorf("Unexpected message %q", msg)
	}
}

func TestIntegration_UpstreamDown(t *testing.T) {
	upstream := fakeWordPress(t)
	services := newIntegrationHarness(t, upstream)
	upstream.Close()

	form, err := services.Comment.Submit(context.Background(), 60, &models.FieldPatch{
		Content: strPtr("anyone there?"),
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	st := form.Submitted
	if !st.IsError || st.ErrorMessage != "Network error" {
		t.Errorf("Expected network error, got %+v", st)
	}
}
