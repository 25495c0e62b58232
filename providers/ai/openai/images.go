package openai

import (
	"context"
	"encoding/json"
	"net/http"
)

/*
	IMAGES API - INPUT
*/

// CreateImageRequest is an immutable /v1/images/generations request. Build it
// with [NewCreateImageRequestBuilder] or [NewCreateImageRequest]; unset
// optional fields are left out of the JSON body entirely.
type CreateImageRequest struct {
	prompt         string
	model          ImageModel
	n              *int
	quality        *ImageQuality
	responseFormat *ImageResponseFormat
	size           *ImageSize
	style          *ImageStyle
	user           *string
}

// createImageRequestJSON is the wire form of CreateImageRequest.
type createImageRequestJSON struct {
	Prompt         string               `json:"prompt" validate:"required"`
	Model          ImageModel           `json:"model" validate:"required,token"`
	N              *int                 `json:"n,omitempty" validate:"omitempty,min=1,max=10"`
	Quality        *ImageQuality        `json:"quality,omitempty" validate:"omitempty,token"`
	ResponseFormat *ImageResponseFormat `json:"response_format,omitempty" validate:"omitempty,token"`
	Size           *ImageSize           `json:"size,omitempty" validate:"omitempty,token"`
	Style          *ImageStyle          `json:"style,omitempty" validate:"omitempty,token"`
	User           *string              `json:"user,omitempty"`
}

// NewCreateImageRequest builds a request for prompt with every other field at
// its default.
func NewCreateImageRequest(prompt string) (CreateImageRequest, error) {
	return NewCreateImageRequestBuilder().Prompt(prompt).Build()
}

// Prompt returns the text description of the desired image.
func (r CreateImageRequest) Prompt() string { return r.prompt }

// Model returns the configured model, or [DefaultImageModel].
func (r CreateImageRequest) Model() ImageModel {
	if r.model == "" {
		return DefaultImageModel
	}
	return r.model
}

// N returns the number of images requested. The API generates one when unset.
func (r CreateImageRequest) N() int {
	if r.n == nil {
		return 1
	}
	return *r.n
}

// Quality returns the configured quality, or [DefaultImageQuality].
func (r CreateImageRequest) Quality() ImageQuality {
	if r.quality == nil {
		return DefaultImageQuality
	}
	return *r.quality
}

// ResponseFormat returns the configured format, or [DefaultImageResponseFormat].
func (r CreateImageRequest) ResponseFormat() ImageResponseFormat {
	if r.responseFormat == nil {
		return DefaultImageResponseFormat
	}
	return *r.responseFormat
}

// Size returns the configured size, or [DefaultImageSize].
func (r CreateImageRequest) Size() ImageSize {
	if r.size == nil {
		return DefaultImageSize
	}
	return *r.size
}

// Style returns the configured style, or [DefaultImageStyle].
func (r CreateImageRequest) Style() ImageStyle {
	if r.style == nil {
		return DefaultImageStyle
	}
	return *r.style
}

// User returns the end-user identifier, or "" when unset.
func (r CreateImageRequest) User() string {
	if r.user == nil {
		return ""
	}
	return *r.user
}

func (r CreateImageRequest) toJSON() createImageRequestJSON {
	return createImageRequestJSON{
		Prompt:         r.prompt,
		Model:          r.Model(),
		N:              r.n,
		Quality:        r.quality,
		ResponseFormat: r.responseFormat,
		Size:           r.size,
		Style:          r.style,
		User:           r.user,
	}
}

// MarshalJSON encodes the request, emitting only the optional fields that
// were set. A request that was not produced by Build fails validation here.
func (r CreateImageRequest) MarshalJSON() ([]byte, error) {
	wire := r.toJSON()
	if err := validateRequest(wire); err != nil {
		return nil, err
	}
	return json.Marshal(wire)
}

// UnmarshalJSON decodes a stored request, applying the same rules as Build.
func (r *CreateImageRequest) UnmarshalJSON(data []byte) error {
	var wire createImageRequestJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return asCodecError(opDecode, "CreateImageRequest", err)
	}
	if wire.Model == "" {
		wire.Model = DefaultImageModel
	}
	if err := validateRequest(wire); err != nil {
		return &CodecError{Op: opDecode, Target: "CreateImageRequest", Err: err}
	}

	*r = CreateImageRequest{
		prompt:         wire.Prompt,
		model:          wire.Model,
		n:              wire.N,
		quality:        wire.Quality,
		responseFormat: wire.ResponseFormat,
		size:           wire.Size,
		style:          wire.Style,
		user:           wire.User,
	}
	return nil
}

// IntoRequest implements [IntoRequest].
func (r CreateImageRequest) IntoRequest(ctx context.Context, baseURL string) (*http.Request, error) {
	return newJSONRequest(ctx, baseURL, ImageGenerationsEndpoint, "CreateImageRequest", r)
}

// CreateImageRequestBuilder accumulates optional settings for a
// CreateImageRequest. Setters return the builder for chaining; values set
// after Build do not affect requests already built.
type CreateImageRequestBuilder struct {
	req CreateImageRequest
}

// NewCreateImageRequestBuilder returns an empty builder. Prompt must be set
// before Build succeeds.
func NewCreateImageRequestBuilder() *CreateImageRequestBuilder {
	return &CreateImageRequestBuilder{}
}

func (b *CreateImageRequestBuilder) Prompt(prompt string) *CreateImageRequestBuilder {
	b.req.prompt = prompt
	return b
}

func (b *CreateImageRequestBuilder) Model(model ImageModel) *CreateImageRequestBuilder {
	b.req.model = model
	return b
}

// N sets the number of images to generate.
func (b *CreateImageRequestBuilder) N(n int) *CreateImageRequestBuilder {
	b.req.n = &n
	return b
}

func (b *CreateImageRequestBuilder) Quality(quality ImageQuality) *CreateImageRequestBuilder {
	b.req.quality = &quality
	return b
}

func (b *CreateImageRequestBuilder) ResponseFormat(format ImageResponseFormat) *CreateImageRequestBuilder {
	b.req.responseFormat = &format
	return b
}

func (b *CreateImageRequestBuilder) Size(size ImageSize) *CreateImageRequestBuilder {
	b.req.size = &size
	return b
}

func (b *CreateImageRequestBuilder) Style(style ImageStyle) *CreateImageRequestBuilder {
	b.req.style = &style
	return b
}

// User sets a unique identifier for the end-user, used by OpenAI for abuse
// monitoring.
func (b *CreateImageRequestBuilder) User(user string) *CreateImageRequestBuilder {
	b.req.user = &user
	return b
}

// Build validates the accumulated settings and returns the request. It fails
// with a *ValidationError when the prompt is empty, n is outside 1..10 or an
// enum field holds an unknown value.
func (b *CreateImageRequestBuilder) Build() (CreateImageRequest, error) {
	req := b.req
	req.model = req.Model()

	if err := validateRequest(req.toJSON()); err != nil {
		return CreateImageRequest{}, err
	}
	return req, nil
}

/*
	IMAGES API - OUTPUT
*/

// CreateImageResponse is the decoded /v1/images/generations response.
type CreateImageResponse struct {
	// Created is the Unix timestamp of the generation.
	Created int64 `json:"created"`
	// Data holds the generated images in order.
	Data []ImageObject `json:"data"`
}

// ImageObject is one generated image. Depending on the requested response
// format either B64JSON or URL is populated.
type ImageObject struct {
	B64JSON       *string `json:"b64_json,omitempty"`
	URL           *string `json:"url,omitempty"`
	RevisedPrompt string  `json:"revised_prompt"`
}

type createImageResponseJSON struct {
	Created *int64            `json:"created" validate:"required"`
	Data    []imageObjectJSON `json:"data" validate:"required,dive"`
}

type imageObjectJSON struct {
	B64JSON       *string `json:"b64_json"`
	URL           *string `json:"url"`
	RevisedPrompt *string `json:"revised_prompt" validate:"required"`
}

// UnmarshalJSON decodes strictly: created, data and every revised_prompt
// must be present. Unknown keys are ignored.
func (r *CreateImageResponse) UnmarshalJSON(data []byte) error {
	var wire createImageResponseJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return asCodecError(opDecode, "CreateImageResponse", err)
	}
	if err := validateShape("CreateImageResponse", wire); err != nil {
		return err
	}

	images := make([]ImageObject, 0, len(wire.Data))
	for _, item := range wire.Data {
		images = append(images, ImageObject{
			B64JSON:       item.B64JSON,
			URL:           item.URL,
			RevisedPrompt: *item.RevisedPrompt,
		})
	}

	*r = CreateImageResponse{Created: *wire.Created, Data: images}
	return nil
}

// ParseCreateImageResponse decodes a /v1/images/generations response body.
func ParseCreateImageResponse(data []byte) (*CreateImageResponse, error) {
	return decodeJSON[CreateImageResponse]("CreateImageResponse", data)
}
