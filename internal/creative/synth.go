package creative

import (
	"fmt"
	"strings"

	"github.com/apresai/adgenius/internal/insight"
)

type shotPlan struct {
	composition string
	camera      string
	style       string
}

var (
	researchShot = shotPlan{
		composition: "Medium shot with professional framing, showing clear product details and user interaction",
		camera:      "Steady, controlled camera movement building trust through consistent framing",
		style:       "Clean, professional aesthetic with sharp focus on product and results",
	}
	impulseShot = shotPlan{
		composition: "Dynamic wide shot with emotional framing, focusing on transformation and satisfaction",
		camera:      "Smooth, engaging camera movement following the emotional journey",
		style:       "Cinematic style with warm color grading emphasizing emotional connection",
	}
)

// BuildVideo composes the short-video spec.
func BuildVideo(s insight.Signals) VideoSpec {
	shot := impulseShot
	if s.HighInvolvement {
		shot = researchShot
	}
	p := insight.ProfileFor(s.Category)
	return VideoSpec{
		Context:     s.Setting + " with thoughtfully designed lighting that enhances the product experience",
		Subject:     s.Subject() + ", showing genuine expressions and natural body language",
		Action:      s.Action,
		Composition: shot.composition,
		Camera:      shot.camera,
		Lighting:    insight.Lighting(s.Triggers),
		Style:       shot.style,
		Audio:       fmt.Sprintf("%s. %s. Mixed at professional broadcast standards.", p.Music, p.Effects),
	}
}

// BuildImages composes the hero, lifestyle and social image prompts.
func BuildImages(s insight.Signals) ImageSet {
	appeal := "emotional appeal"
	if s.HighInvolvement {
		appeal = "technical precision"
	}
	return ImageSet{
		Hero: ImageSpec{
			Prompt: fmt.Sprintf("Professional %s product photography of %s in %s, emphasizing key product features and benefits", s.Category, s.ProductName, s.Setting),
			Style:  fmt.Sprintf("Hyperrealistic product photography with %s and perfect composition", appeal),
		},
		Lifestyle: ImageSpec{
			Prompt: fmt.Sprintf("%s naturally using %s in %s, showing genuine %s moments", capitalize(s.Subject()), s.ProductName, s.Setting, strings.ToLower(strings.Join(s.TriggerNames(), " and "))),
			Style:  "Authentic lifestyle photography capturing real moments and genuine emotions",
		},
		Social: ImageSpec{
			Prompt: fmt.Sprintf("Satisfied customer sharing authentic testimonial about %s, showing genuine %s and trust", s.ProductName, strings.ToLower(leadTrigger(s, "satisfaction"))),
			Style:  "Genuine testimonial photography with natural, trustworthy feel",
		},
	}
}

var (
	rationalCTAs  = []string{"See the Data", "View Research", "Calculate Benefits", "Request Analysis", "Get Proof"}
	emotionalCTAs = []string{"Start Today", "Transform Now", "Experience More", "Join Thousands", "Begin Your Journey"}
)

// BuildCopy writes headlines, body copy and calls to action for the strategy.
func BuildCopy(s insight.Signals, st insight.Strategy) AdCopy {
	benefit := s.Benefit
	if st.Approach == insight.Rational {
		return AdCopy{
			Headlines: []string{
				fmt.Sprintf("The Science Behind %s", benefit),
				fmt.Sprintf("Proven Results: %s That Works", benefit),
				"Why Experts Choose This Solution",
				fmt.Sprintf("Data-Driven %s for Serious Results", benefit),
				fmt.Sprintf("The Intelligent Choice for %s", benefit),
			},
			BodyCopy: BodyCopy{
				Opening: fmt.Sprintf("When you need reliable %s, the details matter.", benefit),
				Middle:  "Our systematically tested approach delivers measurable results.",
				Closing: "See the evidence that drives smart decisions.",
			},
			CTAs: append([]string(nil), rationalCTAs...),
		}
	}
	return AdCopy{
		Headlines: []string{
			fmt.Sprintf("Transform Your %s", s.TransformationArea),
			fmt.Sprintf("Experience %s Like Never Before", benefit),
			fmt.Sprintf("Join Thousands Who Discovered %s", benefit),
			fmt.Sprintf("Your %s Solution Awaits", leadTrigger(s, "Perfect")),
			fmt.Sprintf("Where %s Meets Results", leadTrigger(s, "Quality")),
		},
		BodyCopy: BodyCopy{
			Opening: fmt.Sprintf("Imagine finally having the %s you've been looking for.", benefit),
			Middle:  "That's exactly what thousands of customers experience every day.",
			Closing: "Your transformation story begins with a single step.",
		},
		CTAs: append([]string(nil), emotionalCTAs...),
	}
}

// leadTrigger returns the first trigger, or def for an empty trigger list.
func leadTrigger(s insight.Signals, def string) string {
	if len(s.Triggers) == 0 {
		return def
	}
	return string(s.Triggers[0])
}

// Synthesize builds a complete result from signals and strategy alone.
func Synthesize(s insight.Signals, st insight.Strategy) *Result {
	return &Result{
		Strategy: StrategyDoc{
			Approach:   string(st.Approach),
			Ratio:      st.Ratio,
			Psychology: insight.Psychology(st, s),
		},
		Video:  BuildVideo(s),
		Images: BuildImages(s),
		Copy:   BuildCopy(s, st),
	}
}

// FormatVideoPrompt renders a video spec as a labeled prompt ready to paste
// into a video model.
func FormatVideoPrompt(v VideoSpec) string {
	sections := []struct{ label, value string }{
		{"Context/Setting", v.Context},
		{"Subject", v.Subject},
		{"Action", v.Action},
		{"Composition", v.Composition},
		{"Camera Motion", v.Camera},
		{"Lighting", v.Lighting},
		{"Style", v.Style},
		{"Audio", v.Audio},
	}
	var parts []string
	for _, sec := range sections {
		parts = append(parts, fmt.Sprintf("**%s:** %s", sec.label, sec.value))
	}
	return strings.Join(parts, "\n\n")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
