package openai

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/leofalp/llmsdk/internal/utils"
	"github.com/leofalp/llmsdk/providers/observability"
)

const (
	providerName = "openai"

	// RequestIDHeader carries the client generated id of each call.
	RequestIDHeader = "X-Client-Request-Id"
)

// Client sends typed requests to the OpenAI API. It owns the HTTP transport,
// attaches credentials, and decodes responses. A Client holds no per-request
// state and can be shared between goroutines once configured.
type Client struct {
	apiKey   string
	baseURL  string
	client   *http.Client
	observer observability.Provider
}

// New creates a client configured from OPENAI_API_KEY and OPENAI_API_BASE_URL.
func New() *Client {
	baseURL := os.Getenv("OPENAI_API_BASE_URL")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		apiKey:  os.Getenv("OPENAI_API_KEY"),
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// WithAPIKey sets the API key sent as a Bearer token
func (c *Client) WithAPIKey(apiKey string) *Client {
	c.apiKey = apiKey
	return c
}

// WithBaseURL sets the base URL for the API
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// WithHttpClient sets a custom HTTP client. Timeouts and transport-level
// cancellation are configured there.
func (c *Client) WithHttpClient(httpClient *http.Client) *Client {
	c.client = httpClient
	return c
}

// WithObserver enables spans, metrics and logs for every call.
func (c *Client) WithObserver(observer observability.Provider) *Client {
	c.observer = observer
	return c
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CreateImage generates images from a prompt.
func (c *Client) CreateImage(ctx context.Context, request CreateImageRequest) (*CreateImageResponse, error) {
	return send(ctx, c, request, "images.generations", ParseCreateImageResponse,
		func(resp *CreateImageResponse) []observability.Attribute {
			return []observability.Attribute{observability.Int(observability.AttrImagesReturned, len(resp.Data))}
		},
		observability.String(observability.AttrLLMModel, request.Model().String()),
		observability.Int(observability.AttrImageCount, request.N()),
		observability.String(observability.AttrImageSize, request.Size().String()),
		observability.String(observability.AttrImageResponseFormat, request.ResponseFormat().String()),
	)
}

// ChatCompletion sends a chat completion request.
func (c *Client) ChatCompletion(ctx context.Context, request ChatCompletionRequest) (*ChatCompletionResponse, error) {
	return send(ctx, c, request, "chat.completions", ParseChatCompletionResponse, nil)
}

// send builds, dispatches and decodes one call. Validation and encoding
// failures are returned before any network I/O. summarize, when non-nil,
// contributes span attributes describing a successful result.
func send[Out any](
	ctx context.Context,
	c *Client,
	request IntoRequest,
	endpointType string,
	parse func([]byte) (*Out, error),
	summarize func(*Out) []observability.Attribute,
	attrs ...observability.Attribute,
) (*Out, error) {
	if c.apiKey == "" {
		return nil, ErrAPIKeyNotSet
	}

	httpRequest, err := request.IntoRequest(ctx, c.baseURL)
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	httpRequest.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpRequest.Header.Set(RequestIDHeader, requestID)

	var span observability.Span
	if c.observer != nil {
		attrs = append([]observability.Attribute{
			observability.String(observability.AttrLLMProvider, providerName),
			observability.String(observability.AttrLLMEndpoint, httpRequest.URL.String()),
			observability.String(observability.AttrLLMEndpointType, endpointType),
			observability.String(observability.AttrLLMRequestID, requestID),
		}, attrs...)
		ctx, span = c.observer.StartSpan(ctx, observability.SpanLLMRequest, attrs...)
		defer span.End()
	}

	start := time.Now()
	_, body, err := utils.DoSync(ctx, c.client, httpRequest)
	if err == nil {
		var out *Out
		out, err = parse(body)
		if err == nil {
			if span != nil && summarize != nil {
				span.SetAttributes(summarize(out)...)
			}
			c.record(ctx, span, endpointType, time.Since(start), nil)
			return out, nil
		}
	}

	c.record(ctx, span, endpointType, time.Since(start), err)
	return nil, fmt.Errorf("%s %s: %w", providerName, endpointType, err)
}

// record closes out the observation of one call.
func (c *Client) record(ctx context.Context, span observability.Span, endpointType string, elapsed time.Duration, err error) {
	if c.observer == nil {
		return
	}

	status := observability.StatusOK
	if err != nil {
		status = observability.StatusError
		c.observer.Error(ctx, "request failed",
			observability.String(observability.AttrLLMEndpointType, endpointType),
			observability.Error(err),
		)
	}
	if span != nil {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(status, err.Error())
		} else {
			span.SetStatus(status, "")
		}
	}

	statusAttr := observability.String(observability.AttrStatus, status.String())
	endpointAttr := observability.String(observability.AttrLLMEndpointType, endpointType)
	c.observer.Counter(observability.MetricClientRequestCount).Add(ctx, 1, endpointAttr, statusAttr)
	c.observer.Histogram(observability.MetricClientRequestDuration).Record(ctx, elapsed.Seconds(), endpointAttr, statusAttr)
}
