package openrouter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/42apps/nanobanana"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageSizeFor(t *testing.T) {
	tests := []struct {
		size nanobanana.ImageSize
		want string
	}{
		{nanobanana.ImageSize1K, "1024x1024"},
		{nanobanana.ImageSize2K, "2048x2048"},
		{nanobanana.ImageSize4K, "4096x4096"},
		{nanobanana.ImageSize("8K"), DefaultImageSize},
	}

	for _, tt := range tests {
		t.Run(string(tt.size), func(t *testing.T) {
			assert.Equal(t, tt.want, ImageSizeFor(tt.size))
		})
	}
}

func TestBuildRequest(t *testing.T) {
	req := &nanobanana.GenerationRequest{
		Prompt:      "Cozy cabin",
		AspectRatio: nanobanana.AspectRatio3x4,
		Resolution:  nanobanana.ImageSize1K,
		Provider:    nanobanana.ProviderOpenRouter,
	}
	refs := []nanobanana.EncodedImage{
		{Data: []byte{0, 0, 0}, MIMEType: "image/png"},
		{Data: []byte("jpg"), MIMEType: "image/jpeg"},
	}

	body := BuildRequest(DefaultModel, req, refs)

	assert.Equal(t, DefaultModel, body.Model)
	assert.Equal(t, []string{"text", "image"}, body.Modalities)
	require.NotNil(t, body.ImageConfig)
	assert.Equal(t, "3:4", body.ImageConfig.AspectRatio)
	assert.Equal(t, "1024x1024", body.ImageConfig.ImageSize)

	require.Len(t, body.Messages, 1)
	msg := body.Messages[0]
	assert.Equal(t, "user", msg.Role)
	require.Len(t, msg.Content, 3)

	assert.Equal(t, BlockTypeImageURL, msg.Content[0].Type)
	assert.Equal(t, "data:image/png;base64,AAAA", msg.Content[0].ImageURL.URL)
	assert.Equal(t, BlockTypeImageURL, msg.Content[1].Type)
	assert.True(t, strings.HasPrefix(msg.Content[1].ImageURL.URL, "data:image/jpeg;base64,"))

	last := msg.Content[2]
	assert.Equal(t, BlockTypeText, last.Type)
	assert.Equal(t, "Cozy cabin\n\n[Technical: aspect ratio 3:4, 1K resolution]", last.Text)
	assert.Nil(t, last.ImageURL)

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"image_config":{"aspect_ratio":"3:4","image_size":"1024x1024"}`)
	assert.NotContains(t, string(raw), `"text":""`)
}
