package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func responseWithParts(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content:      &genai.Content{Role: "model", Parts: parts},
				FinishReason: genai.FinishReasonStop,
			},
		},
	}
}

func TestExtractImage(t *testing.T) {
	t.Run("inline data before text wins", func(t *testing.T) {
		resp := responseWithParts(
			&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("png-data")}},
			&genai.Part{Text: "Here is your image"},
		)

		result := ExtractImage(resp)

		require.True(t, result.HasImage())
		assert.Equal(t, []byte("png-data"), result.Image.Data)
		assert.Equal(t, "image/png", result.Image.MIMEType)
		assert.Empty(t, result.Text, "scanning must stop at the first data-bearing part")
	})

	t.Run("first of several images wins", func(t *testing.T) {
		resp := responseWithParts(
			&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("first")}},
			&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("second")}},
		)

		result := ExtractImage(resp)

		require.True(t, result.HasImage())
		assert.Equal(t, []byte("first"), result.Image.Data)
	})

	t.Run("text before image is surfaced and scanning continues", func(t *testing.T) {
		resp := responseWithParts(
			&genai.Part{Text: "Generating a mountain"},
			&genai.Part{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: []byte("jpeg-data")}},
		)

		result := ExtractImage(resp)

		require.True(t, result.HasImage())
		assert.Equal(t, []byte("jpeg-data"), result.Image.Data)
		assert.Equal(t, []string{"Generating a mountain"}, result.Text)
	})

	t.Run("thought parts are not surfaced", func(t *testing.T) {
		resp := responseWithParts(
			&genai.Part{Text: "thinking...", Thought: true},
			&genai.Part{Text: "final answer"},
		)

		result := ExtractImage(resp)

		assert.False(t, result.HasImage())
		assert.Equal(t, []string{"final answer"}, result.Text)
	})

	t.Run("text only reply is a no image outcome", func(t *testing.T) {
		resp := responseWithParts(&genai.Part{Text: "I cannot draw that"})

		result := ExtractImage(resp)

		assert.False(t, result.HasImage())
		assert.Nil(t, result.Image)
		assert.Equal(t, []string{"I cannot draw that"}, result.Text)
		assert.NotEmpty(t, result.Reason)
	})

	t.Run("empty inline data is skipped", func(t *testing.T) {
		resp := responseWithParts(
			&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png"}},
			&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("real")}},
		)

		result := ExtractImage(resp)

		require.True(t, result.HasImage())
		assert.Equal(t, []byte("real"), result.Image.Data)
	})

	t.Run("safety finish reason is reported", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
		}

		result := ExtractImage(resp)

		assert.False(t, result.HasImage())
		assert.Contains(t, result.Reason, "SAFETY")
	})

	t.Run("blocked prompt without candidates", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			PromptFeedback: &genai.GenerateContentResponsePromptFeedback{
				BlockReason: "SAFETY",
			},
		}

		result := ExtractImage(resp)

		assert.False(t, result.HasImage())
		assert.Contains(t, result.Reason, "prompt blocked")
	})

	t.Run("nil response", func(t *testing.T) {
		result := ExtractImage(nil)
		assert.False(t, result.HasImage())
	})

	t.Run("usage metadata is copied", func(t *testing.T) {
		resp := responseWithParts(&genai.Part{InlineData: &genai.Blob{Data: []byte("x")}})
		resp.UsageMetadata = &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     10,
			CandidatesTokenCount: 1290,
			TotalTokenCount:      1300,
		}

		result := ExtractImage(resp)

		require.NotNil(t, result.UsageMetadata)
		assert.Equal(t, 10, result.UsageMetadata.PromptTokens)
		assert.Equal(t, 1290, result.UsageMetadata.CandidatesTokens)
		assert.Equal(t, 1300, result.UsageMetadata.TotalTokens)
	})
}
