package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const (
	// DefaultBaseURL is the OpenAI API root used when no base URL is given.
	DefaultBaseURL = "https://api.openai.com/v1"

	ImageGenerationsEndpoint = "/images/generations"
	ChatCompletionsEndpoint  = "/chat/completions"
)

// IntoRequest is implemented by every request type. IntoRequest returns a POST
// request against baseURL (or [DefaultBaseURL] when empty) carrying the value
// as a JSON body. It performs no I/O.
type IntoRequest interface {
	IntoRequest(ctx context.Context, baseURL string) (*http.Request, error)
}

// newJSONRequest marshals body and wraps it into a POST request for endpoint.
func newJSONRequest(ctx context.Context, baseURL, endpoint, target string, body any) (*http.Request, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, asCodecError(opEncode, target, err)
	}

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	url := strings.TrimRight(baseURL, "/") + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// decodeJSON unmarshals data into a fresh Out, normalizing every failure into
// a *CodecError.
func decodeJSON[Out any](target string, data []byte) (*Out, error) {
	var out Out
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, asCodecError(opDecode, target, err)
	}
	return &out, nil
}
