package openrouter

import (
	"fmt"

	"github.com/42apps/nanobanana"
)

// Content block types used on the wire.
const (
	BlockTypeText     = "text"
	BlockTypeImageURL = "image_url"
	BlockTypeImage    = "image"
)

// DefaultImageSize is sent when a resolution has no pixel mapping.
const DefaultImageSize = "2048x2048"

// Resolution to OpenRouter image_size mapping.
var imageSizes = map[nanobanana.ImageSize]string{
	nanobanana.ImageSize1K: "1024x1024",
	nanobanana.ImageSize2K: "2048x2048",
	nanobanana.ImageSize4K: "4096x4096",
}

// ChatRequest is the chat completions request body.
type ChatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`

	// OpenRouter extension fields
	Modalities  []string     `json:"modalities,omitempty"`
	ImageConfig *ImageConfig `json:"image_config,omitempty"`
}

// ChatMessage is one message of a chat request.
type ChatMessage struct {
	Role    string         `json:"role"`
	Content []RequestBlock `json:"content"`
}

// RequestBlock is a typed content block of a request message.
type RequestBlock struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL carries an image reference; here always a base64 data URI.
type ImageURL struct {
	URL string `json:"url"`
}

// ImageConfig is the image shape requested from the model.
type ImageConfig struct {
	AspectRatio string `json:"aspect_ratio"`
	ImageSize   string `json:"image_size"`
}

// ImageSizeFor maps a resolution to explicit pixel dimensions.
func ImageSizeFor(size nanobanana.ImageSize) string {
	if s, ok := imageSizes[size]; ok {
		return s
	}
	return DefaultImageSize
}

// TechnicalPrompt appends the aspect ratio and resolution hint to prompt.
func TechnicalPrompt(prompt string, ar nanobanana.AspectRatio, size nanobanana.ImageSize) string {
	return fmt.Sprintf("%s\n\n[Technical: aspect ratio %s, %s resolution]", prompt, ar, size)
}

// BuildRequest converts a normalized request into a chat completions body.
// Each reference image becomes a data-URI image block; the prompt, with the
// technical hint appended, is the last block.
func BuildRequest(model string, req *nanobanana.GenerationRequest, refs []nanobanana.EncodedImage) *ChatRequest {
	content := make([]RequestBlock, 0, len(refs)+1)
	for _, img := range refs {
		content = append(content, RequestBlock{
			Type:     BlockTypeImageURL,
			ImageURL: &ImageURL{URL: img.DataURI()},
		})
	}
	content = append(content, RequestBlock{
		Type: BlockTypeText,
		Text: TechnicalPrompt(req.Prompt, req.AspectRatio, req.Resolution),
	})

	return &ChatRequest{
		Model: model,
		Messages: []ChatMessage{
			{Role: "user", Content: content},
		},
		Modalities: []string{"text", "image"},
		ImageConfig: &ImageConfig{
			AspectRatio: req.AspectRatio.String(),
			ImageSize:   ImageSizeFor(req.Resolution),
		},
	}
}
