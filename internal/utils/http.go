package utils

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/leofalp/llmsdk/providers/observability"
)

// DoSync sends a fully prepared request and returns the response together with
// its body. The body is always read and closed; close failures are logged and
// never override the primary error.
//
// Error Handling Strategy:
//   - Context errors (timeout, cancellation) surface through the transport error
//   - Non-2xx responses return the response, the body and an error carrying the
//     status code and a bounded body preview
//   - Decoding the body is left to the caller
func DoSync(ctx context.Context, client *http.Client, req *http.Request) (*http.Response, []byte, error) {
	span := observability.SpanFromContext(ctx)

	httpClient := client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	req = req.WithContext(ctx)

	if span != nil {
		span.AddEvent("http.request.prepared",
			observability.String(observability.AttrHTTPMethod, req.Method),
			observability.String(observability.AttrHTTPURL, req.URL.String()),
			observability.Int64(observability.AttrHTTPRequestBodySize, req.ContentLength),
		)
	}

	requestStart := time.Now()
	res, err := httpClient.Do(req)
	requestDuration := time.Since(requestStart)

	if err != nil {
		if span != nil {
			span.AddEvent("http.request.error",
				observability.Error(err),
				observability.Duration(observability.AttrHTTPRequestDuration, requestDuration),
			)
		}
		return nil, nil, fmt.Errorf("error sending request: %w", err)
	}
	defer CloseWithLog(res.Body)

	respBody, err := io.ReadAll(res.Body)
	if err != nil {
		return res, nil, fmt.Errorf("error reading response body: %w", err)
	}

	if span != nil {
		span.AddEvent("http.response.received",
			observability.Int(observability.AttrHTTPStatusCode, res.StatusCode),
			observability.Int(observability.AttrHTTPResponseBodySize, len(respBody)),
			observability.Duration(observability.AttrHTTPRequestDuration, requestDuration),
		)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return res, respBody, fmt.Errorf("non-2xx status %d: %s", res.StatusCode, TruncateString(string(respBody), DefaultMaxStringLength))
	}

	return res, respBody, nil
}

// DoGet fetches url with a plain GET and returns the body. It is used to
// download assets referenced by API responses, so no authorization is attached.
func DoGet(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	_, body, err := DoSync(ctx, client, req)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// CloseWithLog closes c and logs a warning on failure.
func CloseWithLog(c io.Closer) {
	if closeErr := c.Close(); closeErr != nil {
		slog.Warn("failed to close response body", "error", closeErr.Error())
	}
}
