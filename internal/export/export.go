// Package export renders generated campaigns as plain-text documents.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/apresai/adgenius/internal/creative"
	"github.com/apresai/adgenius/internal/insight"
)

// Kind names an export document.
type Kind string

const (
	KindBrief Kind = "brief"
	KindCopy  Kind = "copy"
)

// ParseKind validates an export kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindBrief, KindCopy:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("invalid export kind %q: must be brief or copy", s)
	}
}

// Filename is the suggested download name.
func (k Kind) Filename() string {
	return "adgenius-" + string(k) + ".txt"
}

// Brief is the input to a creative brief export.
type Brief struct {
	Signals   insight.Signals
	Result    *creative.Result
	Source    string
	Generated time.Time
}

// Render produces the document for kind.
func Render(kind Kind, b Brief) string {
	if kind == KindCopy {
		return CopyText(b.Result.Copy)
	}
	return BriefText(b)
}

// BriefText renders the full creative brief.
func BriefText(b Brief) string {
	var sb strings.Builder
	r := b.Result

	heading(&sb, "ADGENIUS AI - CREATIVE BRIEF", "=")
	fmt.Fprintf(&sb, "Generated: %s\n", b.Generated.UTC().Format(time.RFC1123))
	if b.Source != "" {
		fmt.Fprintf(&sb, "Source: %s\n", b.Source)
	}
	fmt.Fprintf(&sb, "Product: %s\n", b.Signals.ProductName)
	fmt.Fprintf(&sb, "Category: %s\n\n", b.Signals.Category)

	heading(&sb, "STRATEGY", "-")
	fmt.Fprintf(&sb, "Approach: %s\n", r.Strategy.Approach)
	fmt.Fprintf(&sb, "Ratio: %s\n", r.Strategy.Ratio)
	fmt.Fprintf(&sb, "Psychology: %s\n\n", r.Strategy.Psychology)

	heading(&sb, "AUDIENCE INSIGHTS", "-")
	fmt.Fprintf(&sb, "Target Audience: %s\n", b.Signals.Subject())
	fmt.Fprintf(&sb, "Setting: %s\n", b.Signals.Setting)
	fmt.Fprintf(&sb, "Psychological Triggers: %s\n", strings.Join(b.Signals.TriggerNames(), ", "))
	fmt.Fprintf(&sb, "Main Benefit: %s\n\n", b.Signals.Benefit)

	heading(&sb, "VIDEO PROMPT", "-")
	sb.WriteString(creative.FormatVideoPrompt(r.Video))
	sb.WriteString("\n\n")

	heading(&sb, "IMAGE PROMPTS", "-")
	for _, img := range []struct {
		label string
		spec  creative.ImageSpec
	}{
		{"Hero", r.Images.Hero},
		{"Lifestyle", r.Images.Lifestyle},
		{"Social", r.Images.Social},
	} {
		fmt.Fprintf(&sb, "%s: %s\n  Style: %s\n", img.label, img.spec.Prompt, img.spec.Style)
	}
	sb.WriteString("\n")

	sb.WriteString(CopyText(r.Copy))
	return sb.String()
}

// CopyText renders the ad copy alone.
func CopyText(c creative.AdCopy) string {
	var sb strings.Builder
	heading(&sb, "ADGENIUS AI - GENERATED COPY", "=")

	heading(&sb, "HEADLINES", "-")
	for i, h := range c.Headlines {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, h)
	}
	sb.WriteString("\n")

	heading(&sb, "BODY COPY", "-")
	fmt.Fprintf(&sb, "Opening: %s\n", c.BodyCopy.Opening)
	fmt.Fprintf(&sb, "Middle: %s\n", c.BodyCopy.Middle)
	fmt.Fprintf(&sb, "Closing: %s\n\n", c.BodyCopy.Closing)

	heading(&sb, "CTA OPTIONS", "-")
	for _, cta := range c.CTAs {
		fmt.Fprintf(&sb, "- %s\n", cta)
	}
	return sb.String()
}

func heading(sb *strings.Builder, title, rule string) {
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(rule, len(title)))
	sb.WriteString("\n")
}
