package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/leofalp/llmsdk/providers/observability"
)

// ---- DoSync tests -----------------------------------------------------------

// TestDoSync_Success verifies that a 200 response body is returned verbatim
// together with the response.
func TestDoSync_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"value":42}`)
	}))
	defer server.Close()

	req, err := http.NewRequest(http.MethodPost, server.URL, strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	res, body, err := DoSync(context.Background(), server.Client(), req)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", res.StatusCode)
	}
	if string(body) != `{"value":42}` {
		t.Errorf("unexpected body: %s", body)
	}
}

// TestDoSync_Non2xxStatus verifies that a non-2xx status produces an error
// naming the status code while still returning the body.
func TestDoSync_Non2xxStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, "bad request")
	}))
	defer server.Close()

	req, _ := http.NewRequest(http.MethodPost, server.URL, nil)

	res, body, err := DoSync(context.Background(), server.Client(), req)
	if err == nil {
		t.Fatal("expected error for 400 response, got nil")
	}
	if !strings.Contains(err.Error(), "400") {
		t.Errorf("expected error to contain status code 400, got: %v", err)
	}
	if res == nil || res.StatusCode != http.StatusBadRequest {
		t.Errorf("expected response with status 400, got %v", res)
	}
	if string(body) != "bad request" {
		t.Errorf("expected body to be returned, got %q", body)
	}
}

// TestDoSync_NilClient_UsesDefault verifies that a nil client falls back to
// http.DefaultClient.
func TestDoSync_NilClient_UsesDefault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `ok`)
	}))
	defer server.Close()

	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)

	_, body, err := DoSync(context.Background(), nil, req)
	if err != nil {
		t.Fatalf("expected no error with nil client, got %v", err)
	}
	if string(body) != "ok" {
		t.Errorf("expected body 'ok', got %q", body)
	}
}

// TestDoSync_ContextCancelled verifies that the context passed to DoSync is
// the one governing the request, not the one the request was built with.
func TestDoSync_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, _, err := DoSync(ctx, server.Client(), req)
	if err == nil {
		t.Fatal("expected error from cancelled context, got nil")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded in chain, got %v", err)
	}
}

// recordingSpan captures event names emitted on it.
type recordingSpan struct {
	events []string
}

func (s *recordingSpan) End() {}
func (s *recordingSpan) SetAttributes(...observability.Attribute) {}
func (s *recordingSpan) SetStatus(observability.StatusCode, string) {}
func (s *recordingSpan) RecordError(error) {}
func (s *recordingSpan) AddEvent(name string, _ ...observability.Attribute) { s.events = append(s.events, name) }

// TestDoSync_SpanEvents verifies that a span found in the context receives
// the prepared and received events.
func TestDoSync_SpanEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	span := &recordingSpan{}
	ctx := observability.ContextWithSpan(context.Background(), span)
	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)

	if _, _, err := DoSync(ctx, server.Client(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"http.request.prepared", "http.response.received"}
	if len(span.events) != len(want) {
		t.Fatalf("expected events %v, got %v", want, span.events)
	}
	for i := range want {
		if span.events[i] != want[i] {
			t.Errorf("event %d: expected %q, got %q", i, want[i], span.events[i])
		}
	}
}

// ---- DoGet tests ------------------------------------------------------------

// TestDoGet_Success verifies a plain download without authorization.
func TestDoGet_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.Header.Get("Authorization") != "" {
			t.Errorf("expected no Authorization header, got %q", r.Header.Get("Authorization"))
		}
		fmt.Fprint(w, "PNGDATA")
	}))
	defer server.Close()

	body, err := DoGet(context.Background(), server.Client(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != "PNGDATA" {
		t.Errorf("expected PNGDATA, got %q", body)
	}
}

// TestDoGet_BadURL verifies that an unparsable URL fails before sending.
func TestDoGet_BadURL(t *testing.T) {
	if _, err := DoGet(context.Background(), nil, " bad url"); err == nil {
		t.Fatal("expected request creation error, got nil")
	}
}

// ---- CloseWithLog tests -----------------------------------------------------

// errCloser is a mock io.Closer that always returns the configured error.
type errCloser struct {
	closeErr error
}

func (ec *errCloser) Close() error {
	return ec.closeErr
}

// TestCloseWithLog_ErrorPath verifies that CloseWithLog does not panic when
// the underlying closer returns an error.
func TestCloseWithLog_ErrorPath(t *testing.T) {
	CloseWithLog(&errCloser{closeErr: errors.New("close error")})
}

// ---- TruncateString tests ---------------------------------------------------

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{name: "shorter than limit", input: "abc", maxLen: 10, want: "abc"},
		{name: "exactly at limit", input: "abcde", maxLen: 5, want: "abcde"},
		{name: "longer than limit", input: "abcdef", maxLen: 3, want: "abc... (truncated, total: 6 chars)"},
		{name: "non-positive limit uses default", input: "short", maxLen: 0, want: "short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateString(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}
