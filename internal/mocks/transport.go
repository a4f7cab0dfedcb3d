package mocks

import (
	"bytes"
	"io"
	"net/http"
)

// MockTransport is a mock implementation of service.Transport. Configure it
// with either a canned response or an error; it records the last request it
// saw so tests can assert on the wire format.
type MockTransport struct {
	StatusCode int
	Location   string
	Body       string
	Err        error

	// DoFunc overrides the canned behavior when set.
	DoFunc func(req *http.Request) (*http.Response, error)

	Calls       int
	LastRequest *http.Request
	LastBody    string
}

// NewMockTransport returns a transport answering every request with the
// given status.
func NewMockTransport(statusCode int) *MockTransport {
	return &MockTransport{StatusCode: statusCode}
}

func (m *MockTransport) Do(req *http.Request) (*http.Response, error) {
	m.Calls++
	m.LastRequest = req
	if req.Body != nil {
		b, _ := io.ReadAll(req.Body)
		m.LastBody = string(b)
	}

	if m.DoFunc != nil {
		return m.DoFunc(req)
	}
	if m.Err != nil {
		return nil, m.Err
	}

	header := http.Header{}
	if m.Location != "" {
		header.Set("Location", m.Location)
	}
	return &http.Response{
		StatusCode: m.StatusCode,
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader([]byte(m.Body))),
	}, nil
}
