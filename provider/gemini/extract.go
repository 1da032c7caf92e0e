package gemini

import (
	"fmt"

	"github.com/42apps/nanobanana"
	"google.golang.org/genai"
)

// ExtractImage scans the parts of the first candidate in order and returns
// the first inline image. Text parts are collected as informational messages
// and do not stop the scan. A reply without image data yields a result with
// a nil Image; Reason carries the finish or block reason when one was given.
func ExtractImage(resp *genai.GenerateContentResponse) *nanobanana.GenerateResult {
	result := &nanobanana.GenerateResult{
		Provider: nanobanana.ProviderGoogle,
	}
	if resp == nil {
		result.Reason = "empty response from model"
		return result
	}

	if resp.UsageMetadata != nil {
		result.UsageMetadata = &nanobanana.UsageMetadata{
			PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
			CandidatesTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
		}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		result.Reason = blockReason(resp.PromptFeedback)
		return result
	}

	// Only the first candidate is considered.
	candidate := resp.Candidates[0]
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				result.Image = &nanobanana.GeneratedImage{
					Data:     part.InlineData.Data,
					MIMEType: part.InlineData.MIMEType,
				}
				return result
			}
			if part.Text != "" && !part.Thought {
				result.Text = append(result.Text, part.Text)
			}
		}
	}

	if candidate.FinishReason != "" &&
		candidate.FinishReason != genai.FinishReasonUnspecified &&
		candidate.FinishReason != genai.FinishReasonStop {
		result.Reason = fmt.Sprintf("finish reason: %s", candidate.FinishReason)
	} else if len(result.Text) > 0 {
		result.Reason = "model returned text instead of an image"
	}
	return result
}

func blockReason(feedback *genai.GenerateContentResponsePromptFeedback) string {
	if feedback == nil || feedback.BlockReason == "" {
		return "no candidates in response"
	}
	if feedback.BlockReasonMessage != "" {
		return fmt.Sprintf("prompt blocked: %s (%s)", feedback.BlockReason, feedback.BlockReasonMessage)
	}
	return fmt.Sprintf("prompt blocked: %s", feedback.BlockReason)
}
