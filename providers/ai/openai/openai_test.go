package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"

	slogobs "github.com/leofalp/llmsdk/providers/observability/slog"
)

func TestNew_ReadsEnvironment(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")
	t.Setenv("OPENAI_API_BASE_URL", "http://localhost:9999/v1")

	c := New()
	if c.apiKey != "env-key" {
		t.Errorf("expected API key from env, got %q", c.apiKey)
	}
	if c.BaseURL() != "http://localhost:9999/v1" {
		t.Errorf("expected base URL from env, got %q", c.BaseURL())
	}
}

func TestNew_DefaultBaseURL(t *testing.T) {
	t.Setenv("OPENAI_API_BASE_URL", "")

	if got := New().BaseURL(); got != DefaultBaseURL {
		t.Errorf("expected %q, got %q", DefaultBaseURL, got)
	}
}

func TestBuilderPatternChaining(t *testing.T) {
	httpClient := &http.Client{}
	c := New().
		WithAPIKey("custom-key").
		WithBaseURL("https://custom.api.com/v1").
		WithHttpClient(httpClient)

	if c.apiKey != "custom-key" || c.baseURL != "https://custom.api.com/v1" || c.client != httpClient {
		t.Errorf("builder setters not applied: %+v", c)
	}
}

func TestCreateImage_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/v1/images/generations" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("expected Authorization header 'Bearer test-key', got %s", r.Header.Get("Authorization"))
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected Content-Type 'application/json', got %s", r.Header.Get("Content-Type"))
		}
		if _, err := uuid.Parse(r.Header.Get(RequestIDHeader)); err != nil {
			t.Errorf("expected a UUID request id, got %q", r.Header.Get(RequestIDHeader))
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatal("failed to decode request body: " + err.Error())
		}
		if body["prompt"] != "draw a cute caterpillar" || body["style"] != "natural" {
			t.Errorf("unexpected request body: %v", body)
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"created":1700000000,"data":[{"url":"https://img.example/1.png","revised_prompt":"a cute caterpillar"}]}`)
	}))
	defer server.Close()

	req, err := NewCreateImageRequestBuilder().Prompt("draw a cute caterpillar").Style(ImageStyleNatural).Build()
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	c := New().WithAPIKey("test-key").WithBaseURL(server.URL + "/v1").WithHttpClient(server.Client())
	resp, err := c.CreateImage(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resp.Data) != 1 {
		t.Fatalf("expected 1 image, got %d", len(resp.Data))
	}
	if resp.Data[0].URL == nil || *resp.Data[0].URL != "https://img.example/1.png" {
		t.Errorf("unexpected image url: %v", resp.Data[0].URL)
	}
	if resp.Data[0].B64JSON != nil {
		t.Error("expected nil b64_json")
	}
}

func TestCreateImage_MissingAPIKey(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	req, _ := NewCreateImageRequest("p")
	_, err := New().WithAPIKey("").WithBaseURL(server.URL).CreateImage(context.Background(), req)

	if !errors.Is(err, ErrAPIKeyNotSet) {
		t.Errorf("expected ErrAPIKeyNotSet, got %v", err)
	}
	if hits.Load() != 0 {
		t.Errorf("expected no request to reach the server, got %d", hits.Load())
	}
}

func TestCreateImage_InvalidRequestNeverReachesNetwork(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	c := New().WithAPIKey("test-key").WithBaseURL(server.URL)
	_, err := c.CreateImage(context.Background(), CreateImageRequest{})

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	if hits.Load() != 0 {
		t.Errorf("expected no request to reach the server, got %d", hits.Load())
	}
}

func TestCreateImage_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"Incorrect API key provided"}}`)
	}))
	defer server.Close()

	req, _ := NewCreateImageRequest("p")
	_, err := New().WithAPIKey("bad").WithBaseURL(server.URL).CreateImage(context.Background(), req)

	if err == nil {
		t.Fatal("expected error for 401 response, got nil")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("expected error to contain status 401, got: %v", err)
	}
	var codecErr *CodecError
	if errors.As(err, &codecErr) {
		t.Errorf("did not expect a codec error for a status failure: %v", err)
	}
}

func TestCreateImage_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"created":1,"data":[{"url":"http://x"}]}`)
	}))
	defer server.Close()

	req, _ := NewCreateImageRequest("p")
	_, err := New().WithAPIKey("k").WithBaseURL(server.URL).CreateImage(context.Background(), req)

	var codecErr *CodecError
	if !errors.As(err, &codecErr) {
		t.Fatalf("expected *CodecError, got %T: %v", err, err)
	}
}

func TestCreateImage_WithObserver(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"created":1,"data":[{"b64_json":"aGk=","revised_prompt":"p"}]}`)
	}))
	defer server.Close()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	req, _ := NewCreateImageRequestBuilder().Prompt("p").ResponseFormat(ImageResponseFormatB64JSON).Build()
	c := New().WithAPIKey("k").WithBaseURL(server.URL).WithObserver(slogobs.New(logger))

	if _, err := c.CreateImage(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"llm.request",
		"llm.endpoint.type=images.generations",
		"image.response_format=b64_json",
		"image.returned=1",
		"http.response.received",
		"status=ok",
		"llmsdk.client.request.count",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in observer output, got:\n%s", want, output)
		}
	}
}

func TestChatCompletion_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"id":"chatcmpl-1","object":"chat.completion"}`)
	}))
	defer server.Close()

	resp, err := New().WithAPIKey("k").WithBaseURL(server.URL).ChatCompletion(context.Background(), ChatCompletionRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp == nil {
		t.Fatal("expected non-nil response")
	}
}
