package prompt

import "fmt"

// BuildImageCritiquePrompt builds the vision prompt for roasting a profile
// photo.
func BuildImageCritiquePrompt(vars CritiquePromptVars) string {
	return fmt.Sprintf("Roast this X profile photo for @%s. Keep it under 80 words, spicy but PG-13, and end with a short mic-drop.", vars.Handle)
}
