package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/apresai/adgenius/internal/answers"
)

func TestSelectStrategy(t *testing.T) {
	tests := []struct {
		involvement string
		approach    Approach
		ratio       string
	}{
		{"Customers do extensive research before buying", Rational, "70% Rational, 30% Emotional"},
		{"High involvement - they compare carefully", Rational, RationalRatio},
		{"high_involvement", Rational, RationalRatio},
		{"Mostly impulse purchases", Emotional, "30% Rational, 70% Emotional"},
		{"", Emotional, EmotionalRatio},
	}
	for _, tt := range tests {
		t.Run(tt.involvement, func(t *testing.T) {
			r := answers.New(map[answers.Question]string{answers.PurchaseInvolvement: tt.involvement})
			st := SelectStrategy(Extract(r))
			assert.Equal(t, tt.approach, st.Approach)
			assert.Equal(t, tt.ratio, st.Ratio)
			assert.NotEmpty(t, st.Rationale)
		})
	}
}

func TestSelectStrategyIgnoresOtherSignals(t *testing.T) {
	a := Signals{HighInvolvement: true, Category: CategoryFood, Triggers: []Trigger{TriggerTrust}}
	b := Signals{HighInvolvement: true, Category: CategoryBeauty}
	assert.Equal(t, SelectStrategy(a), SelectStrategy(b))
}

func TestPsychologyNamesTriggers(t *testing.T) {
	s := Signals{Triggers: []Trigger{TriggerTrust, TriggerAchievement}}
	got := Psychology(SelectStrategy(s), s)
	assert.Contains(t, got, "Emotional storytelling")
	assert.Contains(t, got, "with Trust, Achievement triggers")
}
