package creative

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apresai/adgenius/internal/answers"
	"github.com/apresai/adgenius/internal/insight"
)

const remoteDoc = `{
  "strategy": {"approach": "rational", "ratio": "70% Rational, 30% Emotional", "psychology": "proof"},
  "veo3": {"context": "c", "subject": "s", "action": "a", "composition": "co", "camera": "ca", "lighting": "l", "style": "st", "audio": "au"},
  "nanoBanana": {
    "hero": {"prompt": "h", "style": "hs"},
    "lifestyle": {"prompt": "l", "style": "ls"},
    "social": {"prompt": "s", "style": "ss"}
  },
  "copy": {
    "headlines": ["one", "two"],
    "bodyCopy": {"opening": "o", "middle": "m", "closing": "c"},
    "ctas": ["Go"]
  }
}`

func fallbackFor(t *testing.T, values map[answers.Question]string) *Result {
	t.Helper()
	s := insight.Extract(answers.New(values))
	return Fallback(s, insight.SelectStrategy(s))
}

// shape flattens a JSON document into its sorted set of key paths.
func shape(t *testing.T, v any) []string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	var paths []string
	var walk func(prefix string, m map[string]any)
	walk = func(prefix string, m map[string]any) {
		for k, v := range m {
			p := prefix + "." + k
			paths = append(paths, p)
			if child, ok := v.(map[string]any); ok {
				walk(p, child)
			}
		}
	}
	walk("", doc)
	sort.Strings(paths)
	return paths
}

func TestFallbackMatchesRemoteShape(t *testing.T) {
	_, err := ParseResult(remoteDoc)
	require.NoError(t, err)

	fb := fallbackFor(t, nil)
	assert.Equal(t, shape(t, json.RawMessage(remoteDoc)), shape(t, fb))
}

func TestFallbackIsDeterministic(t *testing.T) {
	values := map[answers.Question]string{
		answers.ProblemSolution:     "A serum that helps improve dry skin",
		answers.PurchaseInvolvement: "extensive research",
		answers.EmotionalJourney:    "from worry to confidence",
	}
	first, err := json.Marshal(fallbackFor(t, values))
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := json.Marshal(fallbackFor(t, values))
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}

func TestFallbackEmptyRecordIsComplete(t *testing.T) {
	r := fallbackFor(t, nil)

	assert.Equal(t, "emotional", r.Strategy.Approach)
	assert.Equal(t, insight.EmotionalRatio, r.Strategy.Ratio)
	for name, v := range map[string]string{
		"context": r.Video.Context, "subject": r.Video.Subject, "action": r.Video.Action,
		"composition": r.Video.Composition, "camera": r.Video.Camera, "lighting": r.Video.Lighting,
		"style": r.Video.Style, "audio": r.Video.Audio,
		"hero": r.Images.Hero.Prompt, "lifestyle": r.Images.Lifestyle.Prompt, "social": r.Images.Social.Prompt,
		"opening": r.Copy.BodyCopy.Opening, "middle": r.Copy.BodyCopy.Middle, "closing": r.Copy.BodyCopy.Closing,
	} {
		assert.NotEmpty(t, v, name)
	}
	assert.Len(t, r.Copy.Headlines, 5)
	assert.Equal(t, emotionalCTAs, r.Copy.CTAs)
}

func TestFallbackStrategyBranches(t *testing.T) {
	rational := fallbackFor(t, map[answers.Question]string{answers.PurchaseInvolvement: "They do extensive research"})
	assert.Equal(t, "rational", rational.Strategy.Approach)
	assert.Equal(t, "70% Rational, 30% Emotional", rational.Strategy.Ratio)
	assert.Equal(t, rationalCTAs, rational.Copy.CTAs)
	assert.Equal(t, researchShot.camera, rational.Video.Camera)

	emotional := fallbackFor(t, map[answers.Question]string{answers.PurchaseInvolvement: "impulse"})
	assert.Equal(t, "emotional", emotional.Strategy.Approach)
	assert.Equal(t, "30% Rational, 70% Emotional", emotional.Strategy.Ratio)
	assert.Equal(t, impulseShot.camera, emotional.Video.Camera)
}

func TestFallbackCTAsAreCopies(t *testing.T) {
	r := fallbackFor(t, nil)
	r.Copy.CTAs[0] = "mutated"
	assert.Equal(t, "Start Today", fallbackFor(t, nil).Copy.CTAs[0])
}

func TestBuildVideoUsesSharedTables(t *testing.T) {
	s := insight.Extract(answers.New(map[answers.Question]string{
		answers.ProblemSolution:  "skin that looks tired",
		answers.EmotionalJourney: "they want to feel transformed",
	}))
	v := BuildVideo(s)
	assert.Contains(t, v.Context, "vanity")
	assert.Contains(t, v.Lighting, "before/after")
	assert.Contains(t, v.Action, "visible transformation")
	assert.Contains(t, v.Audio, "Mixed at professional broadcast standards.")
}

func TestBuildImagesUseProductName(t *testing.T) {
	r, err := answers.Parse([]byte(`{"1":"tech","enhanced_data":{"product_assets":{"name":"Orbit"}}}`))
	require.NoError(t, err)
	imgs := BuildImages(insight.Extract(r))
	assert.Contains(t, imgs.Hero.Prompt, "Orbit")
	assert.Contains(t, imgs.Lifestyle.Prompt, "Orbit")
	assert.Contains(t, imgs.Social.Prompt, "Orbit")
}

func TestFormatVideoPrompt(t *testing.T) {
	got := FormatVideoPrompt(VideoSpec{Context: "kitchen", Audio: "jazz"})
	assert.Contains(t, got, "**Context/Setting:** kitchen")
	assert.Contains(t, got, "**Audio:** jazz")
}

func TestFallbackCopyTables(t *testing.T) {
	tests := []struct {
		name      string
		values    map[answers.Question]string
		headlines []string
		body      BodyCopy
		ctas      []string
	}{
		{
			name: "rational",
			values: map[answers.Question]string{
				answers.ProblemSolution:     "A serum that helps improve dry skin",
				answers.PurchaseInvolvement: "extensive research",
			},
			headlines: []string{
				"The Science Behind improvement",
				"Proven Results: improvement That Works",
				"Why Experts Choose This Solution",
				"Data-Driven improvement for Serious Results",
				"The Intelligent Choice for improvement",
			},
			body: BodyCopy{
				Opening: "When you need reliable improvement, the details matter.",
				Middle:  "Our systematically tested approach delivers measurable results.",
				Closing: "See the evidence that drives smart decisions.",
			},
			ctas: []string{"See the Data", "View Research", "Calculate Benefits", "Request Analysis", "Get Proof"},
		},
		{
			name: "emotional",
			values: map[answers.Question]string{
				answers.ProblemSolution:     "Software to save time on invoices",
				answers.PurchaseInvolvement: "impulse",
			},
			headlines: []string{
				"Transform Your experience",
				"Experience time-saving efficiency Like Never Before",
				"Join Thousands Who Discovered time-saving efficiency",
				"Your Innovation Solution Awaits",
				"Where Innovation Meets Results",
			},
			body: BodyCopy{
				Opening: "Imagine finally having the time-saving efficiency you've been looking for.",
				Middle:  "That's exactly what thousands of customers experience every day.",
				Closing: "Your transformation story begins with a single step.",
			},
			ctas: []string{"Start Today", "Transform Now", "Experience More", "Join Thousands", "Begin Your Journey"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := fallbackFor(t, tt.values).Copy
			assert.Equal(t, tt.headlines, c.Headlines)
			assert.Equal(t, tt.body, c.BodyCopy)
			assert.Equal(t, tt.ctas, c.CTAs)
		})
	}
}

func TestFallbackVideoAndImageTables(t *testing.T) {
	high := fallbackFor(t, map[answers.Question]string{
		answers.ProblemSolution:     "A serum that helps improve dry skin",
		answers.PurchaseInvolvement: "extensive research",
	})
	assert.Equal(t, "Medium shot with professional framing, showing clear product details and user interaction", high.Video.Composition)
	assert.Equal(t, "Steady, controlled camera movement building trust through consistent framing", high.Video.Camera)
	assert.Equal(t, "Clean, professional aesthetic with sharp focus on product and results", high.Video.Style)
	assert.Equal(t, "Elegant, aspirational music with soft instrumental tones. Subtle beauty product sounds, gentle application effects. Mixed at professional broadcast standards.", high.Video.Audio)
	assert.Equal(t, ImageSet{
		Hero: ImageSpec{
			Prompt: "Professional beauty/personal care product photography of serum in bathroom or vanity area with natural lighting, emphasizing key product features and benefits",
			Style:  "Hyperrealistic product photography with technical precision and perfect composition",
		},
		Lifestyle: ImageSpec{
			Prompt: "Person focused on personal appearance and self-care naturally using serum in bathroom or vanity area with natural lighting, showing genuine transformation moments",
			Style:  "Authentic lifestyle photography capturing real moments and genuine emotions",
		},
		Social: ImageSpec{
			Prompt: "Satisfied customer sharing authentic testimonial about serum, showing genuine transformation and trust",
			Style:  "Genuine testimonial photography with natural, trustworthy feel",
		},
	}, high.Images)

	low := fallbackFor(t, map[answers.Question]string{
		answers.ProblemSolution:     "Software to save time on invoices",
		answers.PurchaseInvolvement: "impulse",
	})
	assert.Equal(t, "Dynamic wide shot with emotional framing, focusing on transformation and satisfaction", low.Video.Composition)
	assert.Equal(t, "Smooth, engaging camera movement following the emotional journey", low.Video.Camera)
	assert.Equal(t, "Cinematic style with warm color grading emphasizing emotional connection", low.Video.Style)
	assert.Equal(t, "Modern, clean electronic score suggesting innovation. Tech interface sounds, notification chimes, success audio cues. Mixed at professional broadcast standards.", low.Video.Audio)
	assert.Equal(t, "Hyperrealistic product photography with emotional appeal and perfect composition", low.Images.Hero.Style)

	general := fallbackFor(t, nil)
	assert.Equal(t, "Professional background score. Natural environmental sounds. Mixed at professional broadcast standards.", general.Video.Audio)
	assert.Equal(t, "demonstrating product benefits with visible satisfaction", general.Video.Action)
}
