package assistant

import (
	"fmt"
	"strings"
)

// Mode selects the prompt template used for the primary provider. It is a
// closed set; BuildPrompt matches it exhaustively so a new mode cannot be
// added without a builder.
type Mode string

const (
	ModeGeneral    Mode = "general"
	ModeSymptoms   Mode = "symptoms"
	ModeHealthTips Mode = "health-tips"
	ModeSummary    Mode = "summary"
)

// ParseMode maps the wire value to a Mode. An empty string means general.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.TrimSpace(s)) {
	case "", ModeGeneral:
		return ModeGeneral, nil
	case ModeSymptoms:
		return ModeSymptoms, nil
	case ModeHealthTips:
		return ModeHealthTips, nil
	case ModeSummary:
		return ModeSummary, nil
	default:
		return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidRequest, s)
	}
}

const (
	symptomsPreamble = "You are a health information assistant. The user will describe symptoms. " +
		"Explain possible common causes, sensible self-care steps, and warning signs that warrant " +
		"seeing a doctor. Do not give a diagnosis or prescribe medication."

	healthTipsPreamble = "You are a health information assistant. Based on the following user profile, " +
		"give practical, personalized health and lifestyle tips. Keep the advice general and safe."

	summaryPreamble = "Summarize the following health information in plain, non-technical language, " +
		"keeping all medically relevant details."
)

// BuildPrompt renders the primary-provider prompt for a query. For
// health-tips the profile substitutes for the question; every other mode
// requires a question. Context, when present, is prepended.
func BuildPrompt(mode Mode, question, context, profile string) (string, error) {
	question = strings.TrimSpace(question)
	context = strings.TrimSpace(context)
	profile = strings.TrimSpace(profile)

	switch mode {
	case ModeGeneral:
		if context != "" {
			return context + "\n\n" + question, nil
		}
		return question, nil
	case ModeSymptoms:
		return symptomsPreamble + "\n\nSymptoms: " + question, nil
	case ModeHealthTips:
		return healthTipsPreamble + "\n\nProfile:\n" + profile, nil
	case ModeSummary:
		return summaryPreamble + "\n\n" + question, nil
	default:
		return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidRequest, mode)
	}
}
