// Package discotest provides testing helpers for disco-based API
// clients. A Server records every request it receives and replays
// canned responses, so tests can assert exactly what a generated
// client put on the wire without a real API endpoint.
package discotest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// Recorded is one request captured by a Server.
type Recorded struct {
	Method      string
	Path        string
	Query       url.Values
	Header      http.Header
	Body        []byte
	ContentType string
}

// Response is a canned reply keyed by request path.
type Response struct {
	Status int
	Body   string
	Header map[string]string
}

// Server is a fake API endpoint backed by httptest.Server.
// Create with NewServer and configure with method chaining.
type Server struct {
	t  *testing.T
	ts *httptest.Server

	mu        sync.Mutex
	recorded  []Recorded
	responses map[string]Response
	fallback  Response
}

// NewServer starts a fake API server. It is shut down automatically
// when the test finishes.
func NewServer(t *testing.T) *Server {
	t.Helper()
	s := &Server{
		t:         t,
		responses: make(map[string]Response),
		fallback:  Response{Status: http.StatusOK, Body: "{}"},
	}
	s.ts = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.ts.Close)
	return s
}

// BaseURL returns the server's base URL, suitable as the BasePath of a
// generated service or the base of disco.NewRequest.
func (s *Server) BaseURL() string {
	return s.ts.URL
}

// Respond sets the canned response for requests to path (the URL path
// without query string, e.g. "/animals/lion").
func (s *Server) Respond(path string, status int, body string) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[path] = Response{Status: status, Body: body}
	return s
}

// RespondAll sets the response used for any path without a canned
// response. The default is 200 with an empty JSON object.
func (s *Server) RespondAll(status int, body string) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallback = Response{Status: status, Body: body}
	return s
}

// Requests returns a copy of all requests received so far.
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Recorded, len(s.recorded))
	copy(out, s.recorded)
	return out
}

// Last returns the most recent request. It fails the test if the
// server has not received any.
func (s *Server) Last() Recorded {
	s.t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.recorded) == 0 {
		s.t.Fatal("discotest: no requests recorded")
	}
	return s.recorded[len(s.recorded)-1]
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.mu.Lock()
	s.recorded = append(s.recorded, Recorded{
		Method:      r.Method,
		Path:        r.URL.Path,
		Query:       r.URL.Query(),
		Header:      r.Header.Clone(),
		Body:        body,
		ContentType: r.Header.Get("Content-Type"),
	})
	resp, ok := s.responses[r.URL.Path]
	if !ok {
		resp = s.fallback
	}
	s.mu.Unlock()

	for k, v := range resp.Header {
		w.Header().Set(k, v)
	}
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(resp.Status)
	io.WriteString(w, resp.Body)
}
