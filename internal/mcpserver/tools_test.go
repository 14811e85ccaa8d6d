package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apresai/adgenius/internal/creative"
	"github.com/apresai/adgenius/internal/generation"
)

type failGenerator struct{}

func (failGenerator) Generate(ctx context.Context, req creative.Request) (*creative.Result, error) {
	return nil, errors.New("unreachable")
}

func newHandlers() *Handlers {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandlers(generation.NewService(failGenerator{}, logger, generation.Options{}), logger)
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	switch c := res.Content[0].(type) {
	case mcp.TextContent:
		return c.Text
	case *mcp.TextContent:
		return c.Text
	default:
		t.Fatalf("unexpected content type %T", c)
		return ""
	}
}

func TestToolDefs(t *testing.T) {
	tools := ToolDefs()
	require.Len(t, tools, 3)
	assert.Equal(t, "generate_ad_prompts", tools[0].Name)
	assert.Contains(t, tools[0].InputSchema.Properties, "answers")
	assert.Equal(t, "derive_insights", tools[1].Name)
	assert.Equal(t, "export_creative", tools[2].Name)
}

func TestGenerateAdPromptsFallsBack(t *testing.T) {
	h := newHandlers()
	res, err := h.HandleGenerateAdPrompts(context.Background(), callRequest("generate_ad_prompts", map[string]any{
		"answers": map[string]any{
			"1": "Noise-cancelling headphones for the office",
			"3": []any{"extensive research", "compare reviews"},
		},
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var resp map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &resp))
	assert.Equal(t, true, resp["fallback"])
	assert.Equal(t, "fallback", resp["source"])
	data := resp["data"].(map[string]any)
	strategy := data["strategy"].(map[string]any)
	assert.Equal(t, "70% Rational, 30% Emotional", strategy["ratio"])
}

func TestGenerateAdPromptsAnswersJSON(t *testing.T) {
	h := newHandlers()
	res, err := h.HandleGenerateAdPrompts(context.Background(), callRequest("generate_ad_prompts", map[string]any{
		"answers_json": `{"1":"skin cream","enhanced_data":{"product_assets":{"name":"GlowUp"}}}`,
	}))
	require.NoError(t, err)

	var resp map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &resp))
	assert.Equal(t, "enhanced_fallback_with_product_name", resp["source"])
	gc := resp["generation_context"].(map[string]any)
	assert.Equal(t, "GlowUp", gc["product_name"])
}

func TestGenerateAdPromptsInvalidAnswers(t *testing.T) {
	h := newHandlers()
	res, err := h.HandleGenerateAdPrompts(context.Background(), callRequest("generate_ad_prompts", map[string]any{
		"answers_json": "[1,2,3]",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "invalid answers_json")
}

func TestDeriveInsights(t *testing.T) {
	h := newHandlers()
	res, err := h.HandleDeriveInsights(context.Background(), callRequest("derive_insights", map[string]any{
		"answers": map[string]any{"1": "dry skin serum", "3": "impulse buy"},
	}))
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	assert.Equal(t, "beauty/personal care", out["category"])
	assert.Equal(t, false, out["high_involvement"])
	assert.Contains(t, out["setting"], "bathroom or vanity area")
	strategy := out["strategy"].(map[string]any)
	assert.Equal(t, "emotional", strategy["approach"])
}

func TestExportCreative(t *testing.T) {
	h := newHandlers()

	res, err := h.HandleExportCreative(context.Background(), callRequest("export_creative", map[string]any{
		"kind":    "copy",
		"answers": map[string]any{"1": "coffee grinder"},
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.True(t, strings.HasPrefix(resultText(t, res), "ADGENIUS AI - GENERATED COPY"))

	res, err = h.HandleExportCreative(context.Background(), callRequest("export_creative", map[string]any{
		"kind": "slides",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = h.HandleExportCreative(context.Background(), callRequest("export_creative", map[string]any{
		"result": map[string]any{"strategy": map[string]any{}},
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "invalid result")
}
