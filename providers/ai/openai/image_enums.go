package openai

import (
	"fmt"
	"slices"
)

// ImageModel selects the image generation model.
type ImageModel string

const (
	ImageModelDallE3 ImageModel = "dall-e-3"

	DefaultImageModel = ImageModelDallE3
)

var imageModels = []ImageModel{ImageModelDallE3}

// ImageQuality controls the level of detail of generated images.
type ImageQuality string

const (
	ImageQualityStandard ImageQuality = "standard"
	ImageQualityHD       ImageQuality = "hd"

	DefaultImageQuality = ImageQualityStandard
)

var imageQualities = []ImageQuality{ImageQualityStandard, ImageQualityHD}

// ImageResponseFormat selects how generated images are returned.
type ImageResponseFormat string

const (
	ImageResponseFormatURL     ImageResponseFormat = "url"
	ImageResponseFormatB64JSON ImageResponseFormat = "b64_json"

	DefaultImageResponseFormat = ImageResponseFormatURL
)

var imageResponseFormats = []ImageResponseFormat{ImageResponseFormatURL, ImageResponseFormatB64JSON}

// ImageSize is the resolution of generated images.
type ImageSize string

const (
	ImageSizeLarge     ImageSize = "1024x1024"
	ImageSizeLargeWide ImageSize = "1792x1024"
	ImageSizeLargeTall ImageSize = "1024*1792"

	DefaultImageSize = ImageSizeLarge
)

var imageSizes = []ImageSize{ImageSizeLarge, ImageSizeLargeWide, ImageSizeLargeTall}

// ImageStyle steers generated images towards hyper-real or natural looks.
type ImageStyle string

const (
	ImageStyleVivid   ImageStyle = "vivid"
	ImageStyleNatural ImageStyle = "natural"

	DefaultImageStyle = ImageStyleVivid
)

var imageStyles = []ImageStyle{ImageStyleVivid, ImageStyleNatural}

// encodeToken and decodeToken implement the closed-set text codec shared by
// all enums: exactly one token per variant, case-sensitive, no fallback.
func encodeToken[T ~string](v T, target string, known []T) ([]byte, error) {
	if !slices.Contains(known, v) {
		return nil, &CodecError{Op: opEncode, Target: target, Err: fmt.Errorf("unknown value %q", string(v))}
	}
	return []byte(v), nil
}

func decodeToken[T ~string](token, target string, known []T) (T, error) {
	v := T(token)
	if !slices.Contains(known, v) {
		return "", &CodecError{Op: opDecode, Target: target, Err: fmt.Errorf("unknown token %q", token)}
	}
	return v, nil
}

func (m ImageModel) String() string { return string(m) }

// IsValid reports whether m is a known model.
func (m ImageModel) IsValid() bool { return slices.Contains(imageModels, m) }

func (m ImageModel) MarshalText() ([]byte, error) {
	return encodeToken(m, "ImageModel", imageModels)
}

func (m *ImageModel) UnmarshalText(text []byte) error {
	v, err := decodeToken(string(text), "ImageModel", imageModels)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseImageModel converts a wire token into an ImageModel.
func ParseImageModel(s string) (ImageModel, error) {
	return decodeToken(s, "ImageModel", imageModels)
}

func (q ImageQuality) String() string { return string(q) }

// IsValid reports whether q is a known quality.
func (q ImageQuality) IsValid() bool { return slices.Contains(imageQualities, q) }

func (q ImageQuality) MarshalText() ([]byte, error) {
	return encodeToken(q, "ImageQuality", imageQualities)
}

func (q *ImageQuality) UnmarshalText(text []byte) error {
	v, err := decodeToken(string(text), "ImageQuality", imageQualities)
	if err != nil {
		return err
	}
	*q = v
	return nil
}

// ParseImageQuality converts a wire token into an ImageQuality.
func ParseImageQuality(s string) (ImageQuality, error) {
	return decodeToken(s, "ImageQuality", imageQualities)
}

func (f ImageResponseFormat) String() string { return string(f) }

// IsValid reports whether f is a known response format.
func (f ImageResponseFormat) IsValid() bool { return slices.Contains(imageResponseFormats, f) }

func (f ImageResponseFormat) MarshalText() ([]byte, error) {
	return encodeToken(f, "ImageResponseFormat", imageResponseFormats)
}

func (f *ImageResponseFormat) UnmarshalText(text []byte) error {
	v, err := decodeToken(string(text), "ImageResponseFormat", imageResponseFormats)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// ParseImageResponseFormat converts a wire token into an ImageResponseFormat.
func ParseImageResponseFormat(s string) (ImageResponseFormat, error) {
	return decodeToken(s, "ImageResponseFormat", imageResponseFormats)
}

func (s ImageSize) String() string { return string(s) }

// IsValid reports whether s is a known size.
func (s ImageSize) IsValid() bool { return slices.Contains(imageSizes, s) }

func (s ImageSize) MarshalText() ([]byte, error) {
	return encodeToken(s, "ImageSize", imageSizes)
}

func (s *ImageSize) UnmarshalText(text []byte) error {
	v, err := decodeToken(string(text), "ImageSize", imageSizes)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseImageSize converts a wire token into an ImageSize.
func ParseImageSize(s string) (ImageSize, error) {
	return decodeToken(s, "ImageSize", imageSizes)
}

func (s ImageStyle) String() string { return string(s) }

// IsValid reports whether s is a known style.
func (s ImageStyle) IsValid() bool { return slices.Contains(imageStyles, s) }

func (s ImageStyle) MarshalText() ([]byte, error) {
	return encodeToken(s, "ImageStyle", imageStyles)
}

func (s *ImageStyle) UnmarshalText(text []byte) error {
	v, err := decodeToken(string(text), "ImageStyle", imageStyles)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseImageStyle converts a wire token into an ImageStyle.
func ParseImageStyle(s string) (ImageStyle, error) {
	return decodeToken(s, "ImageStyle", imageStyles)
}
