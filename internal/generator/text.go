package generator

import "strings"

// cleanCompletion normalizes a raw LLM completion: markdown fences and
// surrounding quotes are stripped, whitespace runs collapse to single
// spaces. An empty result means the completion was unusable.
func cleanCompletion(raw string) string {
	text := strings.TrimSpace(raw)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if i := strings.Index(text, "\n"); i >= 0 && !strings.ContainsAny(text[:i], " \t") {
			text = text[i+1:] // drop language tag line
		}
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}

	text = strings.Join(strings.Fields(text), " ")

	for _, pair := range [][2]string{{`"`, `"`}, {"'", "'"}, {"“", "”"}} {
		if len(text) >= 2 && strings.HasPrefix(text, pair[0]) && strings.HasSuffix(text, pair[1]) {
			text = strings.TrimSpace(text[len(pair[0]) : len(text)-len(pair[1])])
		}
	}

	return text
}

// truncate cuts text to maxLength runes, ending with an ellipsis when
// anything was removed.
func truncate(text string, maxLength int) string {
	const suffix = "..."
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	if maxLength <= len(suffix) {
		return string(runes[:maxLength])
	}
	return string(runes[:maxLength-len(suffix)]) + suffix
}
