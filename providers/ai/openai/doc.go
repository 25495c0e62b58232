// Package openai is a typed client for the OpenAI HTTP API.
//
// Requests are immutable values assembled through builders
// ([NewCreateImageRequestBuilder], [NewCreateImageRequest]) and validated
// locally before anything touches the network. Every request implements
// [IntoRequest], turning itself into a ready-to-send POST *http.Request
// against a base URL. Responses are decoded strictly: required keys must be
// present, enum tokens must be known, and unknown keys are ignored.
//
// [Client] is the dispatching collaborator. [New] reads OPENAI_API_KEY and
// OPENAI_API_BASE_URL from the environment; [Client.WithAPIKey],
// [Client.WithBaseURL], [Client.WithHttpClient] and [Client.WithObserver]
// override them.
//
// Two error kinds are produced by this package: [*ValidationError] for
// requests that fail local checks and [*CodecError] for JSON encoding and
// decoding failures. Neither is retried.
package openai
