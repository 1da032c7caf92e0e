package openrouter

import (
	"encoding/base64"
	"strings"
	"unicode"

	"github.com/42apps/nanobanana"
)

const (
	dataImagePrefix = "data:image"
	base64Marker    = "base64,"
)

// ExtractImage returns the first image found in a reply. Content blocks are
// scanned in order; text blocks are collected and do not stop the scan. A
// string content is either a data URI or a text reply. When the content
// holds no image, message.images is scanned. A reply without an image yields
// a result with a nil Image.
func ExtractImage(reply *Reply) *nanobanana.GenerateResult {
	result := &nanobanana.GenerateResult{
		Provider: nanobanana.ProviderOpenRouter,
	}
	if reply == nil {
		result.Reason = "empty response from model"
		return result
	}
	result.Model = reply.Model
	result.UsageMetadata = reply.Usage

	if !reply.HasMessage {
		result.Reason = "no message in response"
		return result
	}

	if reply.Content.IsString {
		if img, ok := decodeDataURI(reply.Content.Text); ok {
			result.Image = img
			return result
		}
		if reply.Content.Text != "" {
			result.Text = append(result.Text, reply.Content.Text)
		}
	} else {
		for _, block := range reply.Content.Blocks {
			switch b := block.(type) {
			case ImageURLBlock:
				if img, ok := decodeDataURI(b.URL); ok {
					result.Image = img
					return result
				}
			case ImageBlock:
				data := b.Data
				if data == "" {
					data = b.NestedData
				}
				if decoded, ok := decodeBase64(data); ok {
					result.Image = &nanobanana.GeneratedImage{Data: decoded, MIMEType: b.MIMEType}
					return result
				}
			case TextBlock:
				if b.Text != "" {
					result.Text = append(result.Text, b.Text)
				}
			}
		}
	}

	for _, b := range reply.Images {
		if img, ok := decodeDataURI(b.URL); ok {
			result.Image = img
			return result
		}
	}

	switch {
	case reply.FinishReason != "" && reply.FinishReason != "stop":
		result.Reason = "finish reason: " + reply.FinishReason
	case len(result.Text) > 0:
		result.Reason = "model returned text instead of an image"
	default:
		result.Reason = "no image in response"
	}
	return result
}

// decodeDataURI decodes "data:image/...;base64,<payload>".
func decodeDataURI(uri string) (*nanobanana.GeneratedImage, bool) {
	if !strings.HasPrefix(uri, dataImagePrefix) {
		return nil, false
	}
	idx := strings.Index(uri, base64Marker)
	if idx < 0 {
		return nil, false
	}

	data, ok := decodeBase64(uri[idx+len(base64Marker):])
	if !ok {
		return nil, false
	}

	// "data:image/png;base64," -> "image/png"
	mime := strings.TrimSuffix(uri[len("data:"):idx], ";")
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return &nanobanana.GeneratedImage{Data: data, MIMEType: mime}, true
}

// decodeBase64 accepts standard or URL-safe alphabets, with or without
// padding, ignoring whitespace. Empty payloads do not decode.
func decodeBase64(s string) ([]byte, bool) {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return nil, false
	}

	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		if data, err := enc.DecodeString(s); err == nil && len(data) > 0 {
			return data, true
		}
	}
	return nil, false
}
