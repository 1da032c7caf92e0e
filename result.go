package nanobanana

// WarningKind classifies a recovered, non-fatal problem.
type WarningKind string

const (
	WarningAspectRatio WarningKind = "aspect_ratio"
	WarningResolution  WarningKind = "resolution"
	WarningProvider    WarningKind = "provider"
	WarningReference   WarningKind = "reference"
)

// Warning describes input that was corrected or skipped during a run.
type Warning struct {
	Kind    WarningKind
	Message string

	// Path is set for reference image warnings
	Path string
}

func (w Warning) String() string {
	return w.Message
}

// GeneratedImage represents the image extracted from a provider reply.
type GeneratedImage struct {
	// Data contains the raw image bytes
	Data []byte

	// MIMEType of the generated image, empty when the provider did not declare one
	MIMEType string
}

// GenerateResult holds the outcome of a generation request.
//
// A result with a nil Image is the "no image" outcome: the provider answered
// normally but produced no binary content (safety filter, quota, text-only reply).
type GenerateResult struct {
	// Image is the first image found in the reply, or nil
	Image *GeneratedImage

	// Text collects informational text parts returned by the model
	Text []string

	// Reason explains a missing image when the provider said why (finish or block reason)
	Reason string

	// Warnings raised while normalizing inputs and loading references
	Warnings []Warning

	// Provider and Model that served the request
	Provider ProviderName
	Model    string

	// ReferenceCount is the number of reference images actually sent
	ReferenceCount int

	// UsageMetadata contains token/billing information
	UsageMetadata *UsageMetadata
}

// HasImage reports whether the reply carried an image.
func (r *GenerateResult) HasImage() bool {
	return r != nil && r.Image != nil && len(r.Image.Data) > 0
}

// UsageMetadata contains usage information for billing and monitoring.
type UsageMetadata struct {
	PromptTokens     int
	CandidatesTokens int
	TotalTokens      int
}
