package gemini

import (
	"testing"

	"github.com/42apps/nanobanana"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRequest(t *testing.T) {
	req := &nanobanana.GenerationRequest{
		Prompt:      "A serene mountain landscape at sunset",
		AspectRatio: nanobanana.AspectRatio16x9,
		Resolution:  nanobanana.ImageSize4K,
		Provider:    nanobanana.ProviderGoogle,
	}

	t.Run("prompt only", func(t *testing.T) {
		contents, cfg := BuildRequest(req, nil)

		require.Len(t, contents, 1)
		assert.Equal(t, "user", contents[0].Role)
		require.Len(t, contents[0].Parts, 1)
		assert.Equal(t, req.Prompt, contents[0].Parts[0].Text)

		assert.Equal(t, []string{"TEXT", "IMAGE"}, cfg.ResponseModalities)
		require.NotNil(t, cfg.ImageConfig)
		assert.Equal(t, "16:9", cfg.ImageConfig.AspectRatio)
		assert.Equal(t, "4K", cfg.ImageConfig.ImageSize)
	})

	t.Run("reference images precede the prompt in order", func(t *testing.T) {
		refs := []nanobanana.EncodedImage{
			{Data: []byte("first"), MIMEType: "image/png"},
			{Data: []byte("second"), MIMEType: "image/jpeg"},
		}

		contents, _ := BuildRequest(req, refs)

		parts := contents[0].Parts
		require.Len(t, parts, 3)
		require.NotNil(t, parts[0].InlineData)
		assert.Equal(t, []byte("first"), parts[0].InlineData.Data)
		assert.Equal(t, "image/png", parts[0].InlineData.MIMEType)
		require.NotNil(t, parts[1].InlineData)
		assert.Equal(t, []byte("second"), parts[1].InlineData.Data)
		assert.Equal(t, "image/jpeg", parts[1].InlineData.MIMEType)
		assert.Nil(t, parts[2].InlineData)
		assert.Equal(t, req.Prompt, parts[2].Text)
	})
}
