package observability

// Semantic conventions for observability attributes. Every component records
// with these names so log and metric backends can correlate calls.

// --- LLM Provider Attributes ---

const (
	// AttrLLMProvider is the name of the API vendor (e.g. "openai")
	AttrLLMProvider = "llm.provider"

	// AttrLLMModel is the model identifier (e.g. "dall-e-3")
	AttrLLMModel = "llm.model"

	// AttrLLMEndpoint is the API endpoint URL
	AttrLLMEndpoint = "llm.endpoint"

	// AttrLLMEndpointType names the operation (e.g. "images.generations")
	AttrLLMEndpointType = "llm.endpoint.type"

	// AttrLLMRequestID is the client generated request identifier
	AttrLLMRequestID = "llm.request.id"
)

// --- Image Generation Attributes ---

const (
	// AttrImageCount is the number of images requested
	AttrImageCount = "image.count"

	// AttrImageSize is the requested image size token
	AttrImageSize = "image.size"

	// AttrImageResponseFormat is the requested response format token
	AttrImageResponseFormat = "image.response_format"

	// AttrImagesReturned is the number of images in the response
	AttrImagesReturned = "image.returned"
)

// --- HTTP Attributes ---

const (
	AttrHTTPMethod           = "http.method"
	AttrHTTPStatusCode       = "http.status_code"
	AttrHTTPURL              = "http.url"
	AttrHTTPRequestBodySize  = "http.request.body.size"
	AttrHTTPResponseBodySize = "http.response.body.size"
	AttrHTTPRequestDuration  = "http.request.duration"
)

// --- General Attributes ---

const (
	AttrError             = "error"
	AttrErrorType         = "error.type"
	AttrDuration          = "duration"
	AttrStatus            = "status"
	AttrStatusDescription = "status_description"
)

// --- Span Names ---

const (
	// SpanLLMRequest is the span name for one API call
	SpanLLMRequest = "llm.request"
)

// --- Metric Names ---

const (
	// MetricClientRequestCount counts API calls, tagged with status
	MetricClientRequestCount = "llmsdk.client.request.count"

	// MetricClientRequestDuration records API call latency in seconds
	MetricClientRequestDuration = "llmsdk.client.request.duration"
)
