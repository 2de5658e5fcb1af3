package assessment

import "strings"

// Recommendations is the fixed advice shown after a successful transformation.
// It does not depend on the model output.
func Recommendations() []string {
	return []string{
		"Install vertical planters",
		"Use LED grow lights",
		"Set up irrigation system",
		"Monitor humidity levels",
	}
}

// RecommendationsMarkdown renders Recommendations as a markdown section.
func RecommendationsMarkdown() string {
	var sb strings.Builder
	sb.WriteString("## Recommendations\n\nBased on your space analysis, we recommend:\n\n")
	for _, r := range Recommendations() {
		sb.WriteString("- " + r + "\n")
	}
	return sb.String()
}

// Option describes one growing context on the home screen.
type Option struct {
	Tag         ContextTag
	Title       string
	Description string
	// Action and ActionDescription label the card that starts the assessment.
	Action            string
	ActionDescription string
	SectionTitle      string
}

// Options lists the home screen choices in display order.
func Options() []Option {
	return []Option{
		{
			Tag:               ContextField,
			Title:             "Field",
			Description:       "Open agricultural spaces and farmland",
			SectionTitle:      "Field Assessment",
			Action:            "Analyze Field Space",
			ActionDescription: "Upload photos of your field to get detailed agricultural recommendations",
		},
		{
			Tag:               ContextUrban,
			Title:             "Urban Space",
			Description:       "Indoor and urban growing environments",
			SectionTitle:      "Growing Preferences",
			Action:            "Start Space Assessment",
			ActionDescription: "Upload a photo of your space and get personalized recommendations",
		},
	}
}
