package generator

import "fmt"

// Style selects the voice a generated artifact is written in. The set is
// closed; each style maps to a fragment spliced into the prompt template.
type Style string

const (
	StyleProfessional  Style = "professional"
	StyleCasual        Style = "casual"
	StyleTechnical     Style = "technical"
	StyleInspirational Style = "inspirational"
	StyleEducational   Style = "educational"
)

// DefaultStyles is the cycle used when generating a batch of posts.
func DefaultStyles() []Style {
	return []Style{
		StyleProfessional,
		StyleCasual,
		StyleTechnical,
		StyleInspirational,
		StyleEducational,
	}
}

// ParseStyle validates a user-supplied style name.
func ParseStyle(name string) (Style, error) {
	for _, s := range DefaultStyles() {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown style %q (valid: professional, casual, technical, inspirational, educational)", name)
}

func (s Style) promptFragment() string {
	switch s {
	case StyleProfessional:
		return "a polished, professional voice aimed at industry peers"
	case StyleCasual:
		return "a relaxed, conversational voice with an approachable tone"
	case StyleTechnical:
		return "a precise, technical voice that assumes an expert audience"
	case StyleInspirational:
		return "an uplifting voice that motivates and energizes readers"
	case StyleEducational:
		return "a clear, explanatory voice that teaches one concrete idea"
	default:
		return "a neutral voice"
	}
}
