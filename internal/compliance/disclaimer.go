package compliance

import (
	"strings"
)

// DisclaimerLevel represents the verbosity of the disclaimer.
type DisclaimerLevel string

const (
	// DisclaimerShort is the shortest disclaimer.
	DisclaimerShort DisclaimerLevel = "short"
	// DisclaimerMedium is a moderate disclaimer.
	DisclaimerMedium DisclaimerLevel = "medium"
	// DisclaimerFull is the most comprehensive disclaimer.
	DisclaimerFull DisclaimerLevel = "full"
)

const (
	disclaimerShortText = "Informational only. Not medical advice."

	disclaimerMediumText = "This information is generated automatically and is not medical advice. For medical concerns, please consult your doctor."

	disclaimerFullText = "This response was generated by an automated assistant. The information provided is general in nature and not a substitute for professional medical advice, diagnosis, or treatment. Always consult a licensed healthcare provider with any questions about a medical condition."
)

// ParseDisclaimerLevel maps a config string to a level, defaulting to medium.
func ParseDisclaimerLevel(s string) DisclaimerLevel {
	switch DisclaimerLevel(strings.ToLower(strings.TrimSpace(s))) {
	case DisclaimerShort:
		return DisclaimerShort
	case DisclaimerFull:
		return DisclaimerFull
	default:
		return DisclaimerMedium
	}
}

// Disclaimer appends a medical disclaimer to assistant responses.
type Disclaimer struct {
	level   DisclaimerLevel
	enabled bool
}

// NewDisclaimer creates a disclaimer appender.
func NewDisclaimer(level DisclaimerLevel, enabled bool) *Disclaimer {
	return &Disclaimer{level: level, enabled: enabled}
}

// Text returns the disclaimer text for the configured level.
func (d *Disclaimer) Text() string {
	switch d.level {
	case DisclaimerShort:
		return disclaimerShortText
	case DisclaimerFull:
		return disclaimerFullText
	default:
		return disclaimerMediumText
	}
}

// Append adds the disclaimer to the end of a message, separated by a blank
// line. It is nil-safe, skips empty messages, and never appends twice.
func (d *Disclaimer) Append(message string) string {
	if d == nil || !d.enabled {
		return message
	}
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return message
	}
	text := d.Text()
	if strings.Contains(trimmed, text) {
		return trimmed
	}
	return trimmed + "\n\n" + text
}
