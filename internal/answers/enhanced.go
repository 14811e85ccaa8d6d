package answers

import "strings"

// Brand color defaults applied when the enhanced questionnaire leaves them blank.
const (
	DefaultPrimaryColor   = "#000000"
	DefaultSecondaryColor = "#FFFFFF"
	DefaultAccentColor    = "#D4AF37"
)

// NotSpecified is rendered in place of empty enhanced fields.
const NotSpecified = "Not specified"

// Enhanced is the optional enhanced_data block sent by the extended questionnaire.
type Enhanced struct {
	ProductAssets        ProductAssets        `json:"product_assets"`
	AudienceIntelligence AudienceIntelligence `json:"audience_intelligence"`
	BrandStrategy        BrandStrategy        `json:"brand_strategy"`
	PsychologyInsights   PsychologyInsights   `json:"psychology_insights"`
}

type ProductAssets struct {
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Image       *string     `json:"image,omitempty"`
	BrandColors BrandColors `json:"brand_colors"`
	Typography  string      `json:"typography"`
}

type BrandColors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
}

type AudienceIntelligence struct {
	Demographics   Demographics   `json:"demographics"`
	Psychographics Psychographics `json:"psychographics"`
	Behavioral     Behavioral     `json:"behavioral"`
}

type Demographics struct {
	AgeRanges        []string `json:"age_ranges"`
	IncomeLevels     []string `json:"income_levels"`
	LifestyleProfile string   `json:"lifestyle_profile"`
}

type Psychographics struct {
	CoreValues     []string `json:"core_values"`
	LifestyleStage string   `json:"lifestyle_stage"`
}

type Behavioral struct {
	ResearchBehavior string   `json:"research_behavior"`
	MediaConsumption []string `json:"media_consumption"`
}

type BrandStrategy struct {
	Personality         string `json:"personality"`
	CompetitivePosition string `json:"competitive_position"`
	VisualStyle         string `json:"visual_style"`
	CampaignObjective   string `json:"campaign_objective"`
}

type PsychologyInsights struct {
	PurchaseProcess  string `json:"purchase_process"`
	ValueProposition string `json:"value_proposition"`
}

// ProductName returns the trimmed product name, or "" when the enhanced
// questionnaire was not used or the name was left blank.
func (r Record) ProductName() string {
	if r.Enhanced == nil {
		return ""
	}
	return strings.TrimSpace(r.Enhanced.ProductAssets.Name)
}

// HasProductImage reports whether an uploaded product image accompanies the record.
func (r Record) HasProductImage() bool {
	return r.Enhanced != nil && r.Enhanced.ProductAssets.Image != nil && *r.Enhanced.ProductAssets.Image != ""
}

// Colors returns the brand colors with defaults filled in.
func (r Record) Colors() BrandColors {
	c := BrandColors{}
	if r.Enhanced != nil {
		c = r.Enhanced.ProductAssets.BrandColors
	}
	if c.Primary == "" {
		c.Primary = DefaultPrimaryColor
	}
	if c.Secondary == "" {
		c.Secondary = DefaultSecondaryColor
	}
	if c.Accent == "" {
		c.Accent = DefaultAccentColor
	}
	return c
}

// CoreValues returns the audience core values, nil without enhanced data.
func (r Record) CoreValues() []string {
	if r.Enhanced == nil {
		return nil
	}
	return r.Enhanced.AudienceIntelligence.Psychographics.CoreValues
}

// ProductCategory is the enhanced product category and description, lowercased.
func (r Record) ProductCategory() string {
	if r.Enhanced == nil {
		return ""
	}
	p := r.Enhanced.ProductAssets
	return strings.ToLower(strings.TrimSpace(p.Category + " " + p.Description))
}

// OrDefault returns s, or NotSpecified when s is blank.
func OrDefault(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotSpecified
	}
	return s
}

// Humanize turns option tokens such as "career_success" into "career success".
func Humanize(tokens []string) string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		t = strings.TrimSpace(strings.ReplaceAll(t, "_", " "))
		if t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, ", ")
}
