package openai

import (
	"context"
	"net/http"
)

// ChatCompletionRequest is the /v1/chat/completions request body. The schema
// (messages, roles, tools) is not modelled yet, so it encodes as {}.
type ChatCompletionRequest struct{}

// IntoRequest implements [IntoRequest].
func (r ChatCompletionRequest) IntoRequest(ctx context.Context, baseURL string) (*http.Request, error) {
	return newJSONRequest(ctx, baseURL, ChatCompletionsEndpoint, "ChatCompletionRequest", r)
}

// ChatCompletionResponse is the decoded /v1/chat/completions response. It
// accepts any JSON object.
type ChatCompletionResponse struct{}

// ParseChatCompletionResponse decodes a /v1/chat/completions response body.
func ParseChatCompletionResponse(data []byte) (*ChatCompletionResponse, error) {
	return decodeJSON[ChatCompletionResponse]("ChatCompletionResponse", data)
}
