package render

import "strings"

// Language labels offered by the header toggle. Switching only changes the
// label; page copy is not translated.
const (
	LanguageEN = "EN"
	LanguageBN = "BN"
)

// NormalizeLanguage maps raw onto a supported label, defaulting to EN.
func NormalizeLanguage(raw string) string {
	if strings.EqualFold(strings.TrimSpace(raw), LanguageBN) {
		return LanguageBN
	}
	return LanguageEN
}

// ToggleLanguage returns the label the toggle switches to.
func ToggleLanguage(current string) string {
	if NormalizeLanguage(current) == LanguageEN {
		return LanguageBN
	}
	return LanguageEN
}
