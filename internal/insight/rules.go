package insight

import (
	"slices"
	"strings"
)

// Rule maps a set of keywords to a result. A rule matches when any keyword
// occurs in the lowercased input.
type Rule[T any] struct {
	Keywords []string
	Result   T
}

// Table is an ordered rule list with an explicit default.
type Table[T any] struct {
	Rules   []Rule[T]
	Default T
}

// Match returns the result of the first matching rule, or the default.
func (t Table[T]) Match(text string) T {
	if r, ok := t.Lookup(text); ok {
		return r
	}
	return t.Default
}

// Lookup returns the first matching result and whether any rule matched.
func (t Table[T]) Lookup(text string) (T, bool) {
	for _, r := range t.Rules {
		if containsAny(text, r.Keywords) {
			return r.Result, true
		}
	}
	var zero T
	return zero, false
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// Category is the product category inferred from the answers.
type Category string

const (
	CategoryBeauty     Category = "beauty/personal care"
	CategoryHealth     Category = "health/fitness"
	CategoryFood       Category = "food/kitchen"
	CategoryTechnology Category = "technology"
	CategoryHome       Category = "home/lifestyle"
	CategoryGeneral    Category = "general product"
)

// Trigger is a psychological purchase trigger.
type Trigger string

const (
	TriggerTrust          Trigger = "Trust"
	TriggerSecurity       Trigger = "Security"
	TriggerAchievement    Trigger = "Achievement"
	TriggerBelonging      Trigger = "Belonging"
	TriggerEfficiency     Trigger = "Efficiency"
	TriggerTransformation Trigger = "Transformation"
	TriggerConfidence     Trigger = "Confidence"
	TriggerInnovation     Trigger = "Innovation"
	TriggerQuality        Trigger = "Quality"
	TriggerSuccess        Trigger = "Success"
)

// DefaultTriggers is used when no trigger keyword is present.
var DefaultTriggers = []Trigger{TriggerInnovation, TriggerQuality, TriggerSuccess}

// CategoryTable classifies the product. Order is priority.
var CategoryTable = Table[Category]{
	Rules: []Rule[Category]{
		{Keywords: []string{"skin", "hair", "beauty"}, Result: CategoryBeauty},
		{Keywords: []string{"health", "fitness"}, Result: CategoryHealth},
		{Keywords: []string{"food", "cooking"}, Result: CategoryFood},
		{Keywords: []string{"tech", "software"}, Result: CategoryTechnology},
		{Keywords: []string{"home", "clean"}, Result: CategoryHome},
	},
	Default: CategoryGeneral,
}

// Profile holds the per-category descriptors shared by the request builder and
// the fallback builder.
type Profile struct {
	Setting  string
	Audience string
	Action   string
	Music    string
	Effects  string
}

var profiles = map[Category]Profile{
	CategoryBeauty: {
		Setting:  "bathroom or vanity area with natural lighting",
		Audience: "person focused on personal appearance and self-care",
		Action:   "applying product and experiencing visible transformation with genuine delight",
		Music:    "Elegant, aspirational music with soft instrumental tones",
		Effects:  "Subtle beauty product sounds, gentle application effects",
	},
	CategoryHealth: {
		Setting:  "gym or home workout space",
		Audience: "health-conscious individual",
		Action:   "using product during activity, showing increased energy and confidence",
		Music:    "Energetic, motivational music building to achievement",
		Effects:  "Gym ambiance, equipment sounds, energy-building effects",
	},
	CategoryFood: {
		Setting:  "modern kitchen or dining area",
		Audience: "cooking enthusiast",
		Action:   "preparing and enjoying food, showing satisfaction with taste and quality",
		Music:    "Warm, inviting music suggesting comfort and satisfaction",
		Effects:  "Kitchen sounds, sizzling, chopping, satisfaction expressions",
	},
	CategoryTechnology: {
		Setting:  "modern office or workspace with tech setup",
		Audience: "tech-savvy professional",
		Action:   "interacting with product interface, showing ease of use and positive results",
		Music:    "Modern, clean electronic score suggesting innovation",
		Effects:  "Tech interface sounds, notification chimes, success audio cues",
	},
	CategoryHome: {
		Setting:  "well-organized home environment",
		Audience: "homeowner focused on comfort and efficiency",
		Action:   defaultAction,
		Music:    defaultMusic,
		Effects:  defaultEffects,
	},
	CategoryGeneral: {
		Setting:  "professional environment",
		Audience: "professional individual",
		Action:   defaultAction,
		Music:    defaultMusic,
		Effects:  defaultEffects,
	},
}

const (
	defaultAction  = "demonstrating product benefits with visible satisfaction"
	defaultMusic   = "Professional background score"
	defaultEffects = "Natural environmental sounds"
)

// ProfileFor returns the descriptors for c, falling back to the general profile.
func ProfileFor(c Category) Profile {
	if p, ok := profiles[c]; ok {
		return p
	}
	return profiles[CategoryGeneral]
}

// SettingOverrides replace the category setting when the customer context
// names a place.
var SettingOverrides = Table[string]{
	Rules: []Rule[string]{
		{Keywords: []string{"home"}, Result: "comfortable home environment"},
		{Keywords: []string{"office"}, Result: "professional office space"},
		{Keywords: []string{"outdoor"}, Result: "outdoor environment with natural beauty"},
	},
}

// AudienceDescriptors refine the audience from the customer stories.
var AudienceDescriptors = Table[string]{
	Rules: []Rule[string]{
		{Keywords: []string{"professional"}, Result: "professionally dressed"},
		{Keywords: []string{"family"}, Result: "family-oriented"},
		{Keywords: []string{"young"}, Result: "youthful and energetic"},
		{Keywords: []string{"busy"}, Result: "showing time-pressed demeanor"},
	},
}

// JourneyTriggers are matched against the emotional journey and the
// audience core values. Every matching rule contributes.
var JourneyTriggers = []Rule[Trigger]{
	{Keywords: []string{"trust", "reliable"}, Result: TriggerTrust},
	{Keywords: []string{"fear", "worry", "secur", "safe"}, Result: TriggerSecurity},
	{Keywords: []string{"success", "achieve", "career"}, Result: TriggerAchievement},
	{Keywords: []string{"belong", "community", "family"}, Result: TriggerBelonging},
	{Keywords: []string{"save time", "efficien", "control", "convenience"}, Result: TriggerEfficiency},
	{Keywords: []string{"transform", "improve"}, Result: TriggerTransformation},
	{Keywords: []string{"confiden"}, Result: TriggerConfidence},
	{Keywords: []string{"innovat"}, Result: TriggerInnovation},
}

// ProblemTriggers are matched against the problem statement.
var ProblemTriggers = []Rule[Trigger]{
	{Keywords: []string{"reliable"}, Result: TriggerTrust},
	{Keywords: []string{"efficient"}, Result: TriggerEfficiency},
	{Keywords: []string{"improve"}, Result: TriggerTransformation},
}

// BenefitTable names the main benefit from the problem statement.
var BenefitTable = Table[string]{
	Rules: []Rule[string]{
		{Keywords: []string{"save time"}, Result: "time-saving efficiency"},
		{Keywords: []string{"improve", "better"}, Result: "improvement"},
		{Keywords: []string{"reduce", "eliminate"}, Result: "problem reduction"},
		{Keywords: []string{"increase", "boost"}, Result: "performance enhancement"},
	},
	Default: "quality results",
}

// TransformationTable names the area of life the product changes.
var TransformationTable = Table[string]{
	Rules: []Rule[string]{
		{Keywords: []string{"skin", "hair"}, Result: "appearance"},
		{Keywords: []string{"health", "fitness"}, Result: "wellness"},
		{Keywords: []string{"work", "business"}, Result: "productivity"},
		{Keywords: []string{"home", "life"}, Result: "lifestyle"},
	},
	Default: "experience",
}

// ProductNouns guesses a product noun when no product name was given.
var ProductNouns = Table[string]{
	Rules: []Rule[string]{
		{Keywords: []string{"serum"}, Result: "serum"},
		{Keywords: []string{"cream"}, Result: "cream"},
		{Keywords: []string{"app"}, Result: "app"},
		{Keywords: []string{"supplement"}, Result: "supplement"},
		{Keywords: []string{"tool"}, Result: "tool"},
	},
	Default: "product",
}

// ProblemActions override the category action when the problem statement
// names a time or quality concern.
var ProblemActions = Table[string]{
	Rules: []Rule[string]{
		{Keywords: []string{"save time", "time"}, Result: "efficiently completing a task with visible relief and satisfaction"},
		{Keywords: []string{"quality"}, Result: "examining the product with appreciation for its craftsmanship"},
	},
}

// lightingOrder picks the lighting from the strongest trigger present.
var lightingOrder = []struct {
	trigger  Trigger
	lighting string
}{
	{TriggerTrust, "even, professional lighting creating reliability and transparency"},
	{TriggerTransformation, "dramatic before/after lighting showing clear transformation"},
	{TriggerConfidence, "bright, uplifting lighting enhancing subject confidence"},
	{TriggerEfficiency, "crisp, clean lighting emphasizing precision and efficiency"},
}

// DefaultLighting applies when none of the lighting triggers are present.
const DefaultLighting = "warm, professional lighting creating trustworthy atmosphere"

// Lighting returns the lighting for the given trigger set.
func Lighting(triggers []Trigger) string {
	for _, l := range lightingOrder {
		if slices.Contains(triggers, l.trigger) {
			return l.lighting
		}
	}
	return DefaultLighting
}
