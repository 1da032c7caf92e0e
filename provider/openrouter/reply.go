package openrouter

import (
	"errors"
	"fmt"

	"github.com/42apps/nanobanana"
	"github.com/tidwall/gjson"
)

// ErrInvalidReply is returned when a response body is not valid JSON.
var ErrInvalidReply = errors.New("invalid reply body")

// ContentBlock is one normalized block of a reply message:
// an ImageURLBlock, an ImageBlock or a TextBlock.
type ContentBlock interface {
	blockType() string
}

// ImageURLBlock is an "image_url" block. URL is usually a data URI.
type ImageURLBlock struct {
	URL string
}

// ImageBlock is an "image" block carrying base64 data either directly or in
// a nested image object.
type ImageBlock struct {
	Data       string
	NestedData string
	MIMEType   string
}

// TextBlock is a "text" block.
type TextBlock struct {
	Text string
}

func (ImageURLBlock) blockType() string { return BlockTypeImageURL }
func (ImageBlock) blockType() string    { return BlockTypeImage }
func (TextBlock) blockType() string     { return BlockTypeText }

// MessageContent is the content of the first choice's message. Exactly one
// of Blocks or Text is meaningful, depending on IsString.
type MessageContent struct {
	Blocks   []ContentBlock
	Text     string
	IsString bool
}

// Reply is a chat completions response normalized for image extraction.
type Reply struct {
	ID           string
	Model        string
	HasMessage   bool
	Content      MessageContent
	Images       []ImageURLBlock // message.images
	FinishReason string
	Usage        *nanobanana.UsageMetadata
}

// APIError is an error object returned in a response body.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("openrouter api error %s: %s", e.Code, e.Message)
	}
	return "openrouter api error: " + e.Message
}

// DecodeReply parses a response body. Blocks are read by field presence, so
// block objects with missing fields, image_url given as a bare string and
// plain strings inside a content array are all accepted. Blocks of unknown
// type are dropped. A top-level error object is returned as *APIError.
func DecodeReply(body []byte) (*Reply, error) {
	if !gjson.ValidBytes(body) {
		return nil, ErrInvalidReply
	}
	root := gjson.ParseBytes(body)

	if apiErr := decodeAPIError(root.Get("error")); apiErr != nil {
		return nil, apiErr
	}

	reply := &Reply{
		ID:    root.Get("id").String(),
		Model: root.Get("model").String(),
	}

	if usage := root.Get("usage"); usage.IsObject() {
		reply.Usage = &nanobanana.UsageMetadata{
			PromptTokens:     int(usage.Get("prompt_tokens").Int()),
			CandidatesTokens: int(usage.Get("completion_tokens").Int()),
			TotalTokens:      int(usage.Get("total_tokens").Int()),
		}
	}

	choice := root.Get("choices.0")
	reply.FinishReason = choice.Get("finish_reason").String()

	message := choice.Get("message")
	if !message.IsObject() {
		return reply, nil
	}
	reply.HasMessage = true

	content := message.Get("content")
	switch {
	case content.IsArray():
		for _, elem := range content.Array() {
			if block := decodeBlock(elem); block != nil {
				reply.Content.Blocks = append(reply.Content.Blocks, block)
			}
		}
	case content.Type == gjson.String:
		reply.Content.IsString = true
		reply.Content.Text = content.String()
	}

	for _, elem := range message.Get("images").Array() {
		if url := imageURLOf(elem); url != "" {
			reply.Images = append(reply.Images, ImageURLBlock{URL: url})
		}
	}

	return reply, nil
}

func decodeBlock(r gjson.Result) ContentBlock {
	if r.Type == gjson.String {
		return TextBlock{Text: r.String()}
	}
	if !r.IsObject() {
		return nil
	}

	switch r.Get("type").String() {
	case BlockTypeImageURL:
		return ImageURLBlock{URL: imageURLOf(r)}
	case BlockTypeImage:
		return ImageBlock{
			Data:       r.Get("data").String(),
			NestedData: r.Get("image.data").String(),
			MIMEType:   firstString(r, "mime_type", "media_type", "image.mime_type", "image.media_type"),
		}
	case BlockTypeText:
		return TextBlock{Text: r.Get("text").String()}
	default:
		return nil
	}
}

// imageURLOf reads image_url.url, or image_url itself when it is a string.
func imageURLOf(r gjson.Result) string {
	u := r.Get("image_url")
	if u.Type == gjson.String {
		return u.String()
	}
	return u.Get("url").String()
}

func firstString(r gjson.Result, paths ...string) string {
	for _, p := range paths {
		if v := r.Get(p); v.Type == gjson.String && v.String() != "" {
			return v.String()
		}
	}
	return ""
}

func decodeAPIError(r gjson.Result) *APIError {
	switch {
	case r.IsObject():
		msg := r.Get("message").String()
		if msg == "" {
			msg = r.Raw
		}
		return &APIError{Code: r.Get("code").String(), Message: msg}
	case r.Type == gjson.String && r.String() != "":
		return &APIError{Message: r.String()}
	default:
		return nil
	}
}
