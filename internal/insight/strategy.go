package insight

import "strings"

// Approach is the messaging approach.
type Approach string

const (
	Rational  Approach = "rational"
	Emotional Approach = "emotional"
)

// Ratio strings as shown to users and sent in generated documents.
const (
	RationalRatio  = "70% Rational, 30% Emotional"
	EmotionalRatio = "30% Rational, 70% Emotional"
)

// Strategy is the selected messaging strategy.
type Strategy struct {
	Approach  Approach
	Ratio     string
	Rationale string
}

var (
	rationalStrategy = Strategy{
		Approach:  Rational,
		Ratio:     RationalRatio,
		Rationale: "Detailed proof-based messaging that engages deliberate System 2 thinking with evidence, comparisons and specifics",
	}
	emotionalStrategy = Strategy{
		Approach:  Emotional,
		Ratio:     EmotionalRatio,
		Rationale: "Emotional storytelling that triggers fast System 1 responses through imagery, feeling and social proof",
	}
)

// SelectStrategy maps involvement to a strategy. It depends on involvement only.
func SelectStrategy(s Signals) Strategy {
	if s.HighInvolvement {
		return rationalStrategy
	}
	return emotionalStrategy
}

// Psychology describes how the strategy uses the extracted triggers.
func Psychology(st Strategy, s Signals) string {
	return st.Rationale + " with " + strings.Join(s.TriggerNames(), ", ") + " triggers"
}
