package cli

import (
	"fmt"

	"github.com/42apps/nanobanana"
)

const noImageHint = `This might happen if:
  - The prompt was blocked by safety filters
  - The API quota was exceeded
  - The model doesn't support image generation
  - There was a temporary API issue
`

// setupHint explains how to obtain the credential of provider.
func setupHint(provider nanobanana.ProviderName) string {
	variable := nanobanana.CredentialVariable(provider)

	var steps string
	switch provider {
	case nanobanana.ProviderGoogle:
		steps = `1. Go to https://aistudio.google.com
2. Sign in with your Google account
3. Click 'Get API Key' and create an API key
`
	case nanobanana.ProviderOpenRouter:
		steps = `1. Go to https://openrouter.ai
2. Sign in and go to Keys section
3. Create a new API key
`
	default:
		return ""
	}

	return fmt.Sprintf(`
To get an API key:
%s4. Add to ~/.zshrc or ~/.bashrc, or to a .env file:
   export %s="your-key-here"
5. Restart terminal or run: source ~/.zshrc
`, steps, variable)
}
