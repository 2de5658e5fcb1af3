package assessment

import "strings"

const DefaultPrompt = "Transform this space into a vertical garden. Include modern planters, proper lighting, and efficient irrigation systems."

// FinalPrompt is the prompt actually transmitted. Urban assessments get the
// selected preferences appended as "with a, b"; field assessments are sent
// verbatim whatever is selected.
func FinalPrompt(f Form) string {
	if f.Context != ContextUrban {
		return f.Prompt
	}
	return f.Prompt + " " + preferencesText(f.preferences)
}

func preferencesText(prefs []string) string {
	if len(prefs) == 0 {
		return ""
	}
	return "with " + strings.ToLower(strings.Join(prefs, ", "))
}
