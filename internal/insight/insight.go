// Package insight turns a questionnaire answer record into marketing signals
// and a messaging strategy. Everything here is pure: no I/O, no randomness,
// and every input (including an empty record) produces a complete result.
package insight

import (
	"slices"
	"strings"

	"github.com/apresai/adgenius/internal/answers"
)

// Signals are the structured insights derived from an answer record.
type Signals struct {
	HighInvolvement    bool
	Triggers           []Trigger
	Category           Category
	Setting            string
	Audience           string
	Demographics       string
	ProductName        string
	Benefit            string
	TransformationArea string
	Action             string

	// Enhanced is set when the record names its product through enhanced data.
	Enhanced bool
}

// Extract derives Signals from r. It never fails.
func Extract(r answers.Record) Signals {
	problem := r.Lower(answers.ProblemSolution)
	story := r.Lower(answers.CustomerStories)
	context := r.Lower(answers.CustomerContext)
	journey := r.Lower(answers.EmotionalJourney)

	category := CategoryTable.Match(strings.TrimSpace(problem + " " + r.ProductCategory()))
	profile := ProfileFor(category)

	setting := profile.Setting
	if override, ok := SettingOverrides.Lookup(context); ok {
		setting = override
	}

	audience := profile.Audience
	if d, ok := AudienceDescriptors.Lookup(story); ok {
		audience += ", " + d
	}

	action := profile.Action
	if a, ok := ProblemActions.Lookup(problem); ok {
		action = a
	}

	name := r.ProductName()
	enhanced := name != ""
	if !enhanced {
		name = ProductNouns.Match(problem)
	}

	return Signals{
		HighInvolvement:    Involved(r.Text(answers.PurchaseInvolvement)),
		Triggers:           extractTriggers(journey, strings.ToLower(strings.Join(r.CoreValues(), " ")), problem),
		Category:           category,
		Setting:            setting,
		Audience:           audience,
		Demographics:       demographics(r),
		ProductName:        name,
		Benefit:            BenefitTable.Match(problem),
		TransformationArea: TransformationTable.Match(problem),
		Action:             action,
		Enhanced:           enhanced,
	}
}

// Involved reports whether an involvement answer signals a high-involvement,
// research-driven purchase.
func Involved(answer string) bool {
	a := strings.ToLower(answer)
	return strings.Contains(a, "high") || strings.Contains(a, "research")
}

// HasTrigger reports whether t is among the extracted triggers.
func (s Signals) HasTrigger(t Trigger) bool {
	return slices.Contains(s.Triggers, t)
}

// TriggerNames returns the triggers as plain strings.
func (s Signals) TriggerNames() []string {
	out := make([]string, len(s.Triggers))
	for i, t := range s.Triggers {
		out[i] = string(t)
	}
	return out
}

// Subject describes the on-screen person for video and image prompts.
func (s Signals) Subject() string {
	if s.Demographics != "" {
		return s.Audience + " (" + s.Demographics + ")"
	}
	return s.Audience
}

func extractTriggers(journey, values, problem string) []Trigger {
	found := map[Trigger]bool{}
	for _, r := range JourneyTriggers {
		if containsAny(journey, r.Keywords) || containsAny(values, r.Keywords) {
			found[r.Result] = true
		}
	}
	for _, r := range ProblemTriggers {
		if containsAny(problem, r.Keywords) {
			found[r.Result] = true
		}
	}
	if len(found) == 0 {
		return slices.Clone(DefaultTriggers)
	}

	var out []Trigger
	for _, t := range vocabulary {
		if found[t] {
			out = append(out, t)
		}
	}
	return out
}

var vocabulary = []Trigger{
	TriggerTrust,
	TriggerSecurity,
	TriggerAchievement,
	TriggerBelonging,
	TriggerEfficiency,
	TriggerTransformation,
	TriggerConfidence,
	TriggerInnovation,
	TriggerQuality,
	TriggerSuccess,
}

func demographics(r answers.Record) string {
	if r.Enhanced == nil {
		return ""
	}
	d := r.Enhanced.AudienceIntelligence.Demographics
	var parts []string
	if ages := answers.Humanize(d.AgeRanges); ages != "" {
		parts = append(parts, "ages "+ages)
	}
	if income := answers.Humanize(d.IncomeLevels); income != "" {
		parts = append(parts, income+" income")
	}
	return strings.Join(parts, ", ")
}
