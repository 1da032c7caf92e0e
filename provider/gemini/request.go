package gemini

import (
	"github.com/42apps/nanobanana"
	"google.golang.org/genai"
)

// Response modalities requested from the model.
var responseModalities = []string{"TEXT", "IMAGE"}

// BuildRequest converts a normalized request into generateContent arguments.
// Reference images come first, in order, as inline blobs, followed by the prompt.
func BuildRequest(req *nanobanana.GenerationRequest, refs []nanobanana.EncodedImage) ([]*genai.Content, *genai.GenerateContentConfig) {
	parts := make([]*genai.Part, 0, len(refs)+1)
	for _, img := range refs {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				Data:     img.Data,
				MIMEType: img.MIMEType,
			},
		})
	}
	parts = append(parts, &genai.Part{Text: req.Prompt})

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: parts,
		},
	}

	genConfig := &genai.GenerateContentConfig{
		ResponseModalities: append([]string(nil), responseModalities...),
		ImageConfig: &genai.ImageConfig{
			AspectRatio: req.AspectRatio.String(),
			ImageSize:   req.Resolution.String(),
		},
	}

	return contents, genConfig
}
