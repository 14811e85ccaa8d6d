package answers

import (
	"fmt"
	"strings"
)

// FormatQuestionnaire renders every answered question as "Label: answer",
// one per line, in question order.
func FormatQuestionnaire(r Record) string {
	var lines []string
	for _, q := range r.Questions() {
		text := strings.TrimSpace(r.Text(q))
		if text == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", q.Label(), text))
	}
	return strings.Join(lines, "\n")
}

// FormatEnhanced renders the enhanced questionnaire block for the model, or ""
// when the record carries no enhanced data.
func FormatEnhanced(r Record) string {
	e := r.Enhanced
	if e == nil {
		return ""
	}
	colors := r.Colors()
	image := "No"
	if r.HasProductImage() {
		image = "Yes"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "PRODUCT ASSETS:\n")
	fmt.Fprintf(&b, "- Product Name: %s\n", OrDefault(e.ProductAssets.Name))
	fmt.Fprintf(&b, "- Category: %s\n", OrDefault(e.ProductAssets.Category))
	fmt.Fprintf(&b, "- Description: %s\n", OrDefault(e.ProductAssets.Description))
	fmt.Fprintf(&b, "- Product Image Provided: %s\n", image)
	fmt.Fprintf(&b, "- Brand Colors: primary %s, secondary %s, accent %s\n", colors.Primary, colors.Secondary, colors.Accent)
	fmt.Fprintf(&b, "- Typography: %s\n", OrDefault(e.ProductAssets.Typography))

	a := e.AudienceIntelligence
	fmt.Fprintf(&b, "\nAUDIENCE INTELLIGENCE:\n")
	fmt.Fprintf(&b, "- Age Ranges: %s\n", OrDefault(Humanize(a.Demographics.AgeRanges)))
	fmt.Fprintf(&b, "- Income Levels: %s\n", OrDefault(Humanize(a.Demographics.IncomeLevels)))
	fmt.Fprintf(&b, "- Lifestyle: %s\n", OrDefault(a.Demographics.LifestyleProfile))
	fmt.Fprintf(&b, "- Core Values: %s\n", OrDefault(Humanize(a.Psychographics.CoreValues)))
	fmt.Fprintf(&b, "- Research Behavior: %s\n", OrDefault(a.Behavioral.ResearchBehavior))
	fmt.Fprintf(&b, "- Media Consumption: %s\n", OrDefault(Humanize(a.Behavioral.MediaConsumption)))

	s := e.BrandStrategy
	fmt.Fprintf(&b, "\nBRAND STRATEGY:\n")
	fmt.Fprintf(&b, "- Personality: %s\n", OrDefault(s.Personality))
	fmt.Fprintf(&b, "- Competitive Position: %s\n", OrDefault(s.CompetitivePosition))
	fmt.Fprintf(&b, "- Visual Style: %s\n", OrDefault(s.VisualStyle))
	fmt.Fprintf(&b, "- Campaign Objective: %s", OrDefault(s.CampaignObjective))
	return b.String()
}
