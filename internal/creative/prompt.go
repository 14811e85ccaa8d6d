package creative

import (
	"fmt"
	"strings"

	"github.com/apresai/adgenius/internal/answers"
	"github.com/apresai/adgenius/internal/insight"
)

const (
	DefaultModel       = "claude-sonnet-4-20250514"
	DefaultMaxTokens   = 4000
	DefaultTemperature = 0.7
)

// Request is one outbound generation call.
type Request struct {
	System      string
	User        string
	Model       string
	MaxTokens   int64
	Temperature float64
}

// RequestOptions override the model parameters. Empty fields select defaults;
// a nil Temperature means unset, so an explicit 0 is honored.
type RequestOptions struct {
	Model       string
	MaxTokens   int64
	Temperature *float64
}

const systemPrompt = `You are an expert advertising strategist and creative director. You combine consumer psychology (System 1 and System 2 thinking, purchase involvement, emotional triggers) with hands-on production knowledge of AI video and image models.

Given a completed marketing questionnaire, you produce a campaign package:
- a messaging strategy grounded in the buyer's purchase involvement
- one 8-second video prompt broken into context, subject, action, composition, camera, lighting, style and audio
- three still-image prompts (hero product shot, lifestyle scene, square social post)
- ad copy: five headlines, three-part body copy and five calls to action

Rules:
- High-involvement purchases get a rational approach (70% rational, 30% emotional); impulse or low-involvement purchases get an emotional approach (30% rational, 70% emotional).
- Keep every prompt concrete and visual. Describe one focal action per video.
- Respond with JSON only, matching the requested schema exactly. No commentary.`

const resultSchema = `{
  "strategy": {
    "approach": "rational or emotional",
    "ratio": "70% Rational, 30% Emotional or 30% Rational, 70% Emotional",
    "psychology": "how the creative uses the buyer's psychological triggers"
  },
  "veo3": {
    "context": "setting and environment",
    "subject": "who appears on screen",
    "action": "the single focal action",
    "composition": "framing",
    "camera": "camera movement",
    "lighting": "lighting design",
    "style": "visual style",
    "audio": "music, sound effects and mix"
  },
  "nanoBanana": {
    "hero": {"prompt": "hero product image prompt", "style": "style notes"},
    "lifestyle": {"prompt": "lifestyle image prompt", "style": "style notes"},
    "social": {"prompt": "social media image prompt", "style": "style notes"}
  },
  "copy": {
    "headlines": ["five headlines"],
    "bodyCopy": {"opening": "hook", "middle": "benefit", "closing": "close"},
    "ctas": ["five calls to action"]
  }
}`

// BuildRequest assembles the outbound request from the answer record and the
// derived insights.
func BuildRequest(r answers.Record, s insight.Signals, st insight.Strategy, opts RequestOptions) Request {
	req := Request{
		System:      systemPrompt,
		User:        buildUserPrompt(r, s, st),
		Model:       opts.Model,
		MaxTokens:   opts.MaxTokens,
		Temperature: DefaultTemperature,
	}
	if req.Model == "" {
		req.Model = DefaultModel
	}
	if req.MaxTokens <= 0 {
		req.MaxTokens = DefaultMaxTokens
	}
	if opts.Temperature != nil {
		req.Temperature = *opts.Temperature
	}
	return req
}

func buildUserPrompt(r answers.Record, s insight.Signals, st insight.Strategy) string {
	var b strings.Builder

	b.WriteString("Create a complete ad campaign package from this marketing questionnaire.\n\n")

	b.WriteString("QUESTIONNAIRE ANSWERS:\n")
	if q := answers.FormatQuestionnaire(r); q != "" {
		b.WriteString(q)
	} else {
		b.WriteString("(no answers provided)")
	}
	b.WriteString("\n\n")

	if e := answers.FormatEnhanced(r); e != "" {
		b.WriteString(e)
		b.WriteString("\n\n")
	}

	involvement := "low (impulse or emotional purchase)"
	if s.HighInvolvement {
		involvement = "high (researched, considered purchase)"
	}
	fmt.Fprintf(&b, "EXTRACTED INSIGHTS:\n")
	fmt.Fprintf(&b, "- Category: %s\n", s.Category)
	fmt.Fprintf(&b, "- Purchase involvement: %s\n", involvement)
	fmt.Fprintf(&b, "- Recommended approach: %s (%s)\n", st.Approach, st.Ratio)
	fmt.Fprintf(&b, "- Psychological triggers: %s\n", strings.Join(s.TriggerNames(), ", "))
	fmt.Fprintf(&b, "- Target audience: %s\n", s.Subject())
	fmt.Fprintf(&b, "- Suggested setting: %s\n", s.Setting)
	fmt.Fprintf(&b, "- Suggested focal action: %s\n", s.Action)
	fmt.Fprintf(&b, "- Suggested lighting: %s\n", insight.Lighting(s.Triggers))
	fmt.Fprintf(&b, "- Main benefit: %s\n\n", s.Benefit)

	if s.Enhanced {
		fmt.Fprintf(&b, "IMPORTANT: The product is called %q. Use this exact product name in every image prompt, the video prompt and the ad copy.\n\n", s.ProductName)
	}

	b.WriteString("Return a JSON object with exactly this structure:\n")
	b.WriteString(resultSchema)
	return b.String()
}
