package creative

import (
	"encoding/json"
	"fmt"
	"os"
)

// Origin records which path produced a Result.
type Origin string

const (
	OriginClaude   Origin = "claude"
	OriginFallback Origin = "fallback"
)

// Result is the generated creative document. Remote and fallback results share
// this exact shape.
type Result struct {
	Strategy StrategyDoc `json:"strategy"`
	Video    VideoSpec   `json:"veo3"`
	Images   ImageSet    `json:"nanoBanana"`
	Copy     AdCopy      `json:"copy"`
}

type StrategyDoc struct {
	Approach   string `json:"approach"`
	Ratio      string `json:"ratio"`
	Psychology string `json:"psychology"`
}

// VideoSpec is the eight-field short-video prompt.
type VideoSpec struct {
	Context     string `json:"context"`
	Subject     string `json:"subject"`
	Action      string `json:"action"`
	Composition string `json:"composition"`
	Camera      string `json:"camera"`
	Lighting    string `json:"lighting"`
	Style       string `json:"style"`
	Audio       string `json:"audio"`
}

type ImageSet struct {
	Hero      ImageSpec `json:"hero"`
	Lifestyle ImageSpec `json:"lifestyle"`
	Social    ImageSpec `json:"social"`
}

type ImageSpec struct {
	Prompt string `json:"prompt"`
	Style  string `json:"style"`
}

type AdCopy struct {
	Headlines []string `json:"headlines"`
	BodyCopy  BodyCopy `json:"bodyCopy"`
	CTAs      []string `json:"ctas"`
}

type BodyCopy struct {
	Opening string `json:"opening"`
	Middle  string `json:"middle"`
	Closing string `json:"closing"`
}

// TopLevelKeys are the keys every result document must carry.
var TopLevelKeys = []string{"strategy", "veo3", "nanoBanana", "copy"}

// Save writes a result as indented JSON.
func Save(r *Result, path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a result from a JSON file.
func Load(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read result: %w", err)
	}
	return ParseResult(string(data))
}
