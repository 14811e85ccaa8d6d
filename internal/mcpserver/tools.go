package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/apresai/adgenius/internal/answers"
	"github.com/apresai/adgenius/internal/creative"
	"github.com/apresai/adgenius/internal/export"
	"github.com/apresai/adgenius/internal/insight"
)

var tracer = otel.Tracer("adgenius-mcp")

var answersProperty = map[string]any{
	"type":        "object",
	"description": `Questionnaire answers keyed by question number ("1"-"10"). Values may be strings, lists, or objects. An optional "enhanced_data" key carries product assets and brand data.`,
}

var answersJSONProperty = map[string]any{
	"type":        "string",
	"description": "The same answers as a JSON string (alternative to answers)",
}

// ToolDefs returns the MCP tool definitions.
func ToolDefs() []mcp.Tool {
	return []mcp.Tool{
		{
			Name:        "generate_ad_prompts",
			Description: "Turn questionnaire answers into an ad creative package: strategy, video prompt, image prompts, and copy. Always returns a complete result; a rule-based fallback is used when the model is unavailable.",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"answers":      answersProperty,
					"answers_json": answersJSONProperty,
				},
			},
		},
		{
			Name:        "derive_insights",
			Description: "Derive the marketing insights and persuasion strategy from questionnaire answers without generating creative.",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"answers":      answersProperty,
					"answers_json": answersJSONProperty,
				},
			},
		},
		{
			Name:        "export_creative",
			Description: "Render a plain-text creative brief or copy sheet. Uses the rule-based creative when no result is given.",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"kind": map[string]any{
						"type":        "string",
						"description": "Document to render: brief, copy",
						"default":     "brief",
					},
					"answers":      answersProperty,
					"answers_json": answersJSONProperty,
					"result": map[string]any{
						"type":        "object",
						"description": "A result document previously returned by generate_ad_prompts (the data field)",
					},
				},
			},
		},
	}
}

// Handlers contains tool handler implementations.
type Handlers struct {
	gen Generator
	log *slog.Logger
}

// NewHandlers creates tool handlers.
func NewHandlers(gen Generator, logger *slog.Logger) *Handlers {
	return &Handlers{gen: gen, log: logger}
}

// HandleGenerateAdPrompts runs one generation attempt.
func (h *Handlers) HandleGenerateAdPrompts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx, span := tracer.Start(ctx, "tool.generate_ad_prompts")
	defer span.End()

	record, err := parseAnswers(req)
	if err != nil {
		span.SetStatus(codes.Error, "invalid answers")
		return mcp.NewToolResultError(err.Error()), nil
	}
	span.SetAttributes(attribute.Int("answers.count", record.Len()))

	resp := h.gen.Generate(ctx, record)
	span.SetAttributes(
		attribute.String("attempt.id", resp.AttemptID),
		attribute.String("source", string(resp.Source)),
		attribute.Bool("fallback", resp.Fallback),
	)
	h.log.InfoContext(ctx, "Ad prompts generated", "attempt_id", resp.AttemptID, "source", resp.Source)

	result, err := jsonResult(resp)
	if rerr := resp.MarkRendered(); rerr != nil {
		h.log.WarnContext(ctx, "Attempt state", "error", rerr)
	}
	return result, err
}

// HandleDeriveInsights returns the extracted signals and chosen strategy.
func (h *Handlers) HandleDeriveInsights(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, span := tracer.Start(ctx, "tool.derive_insights")
	defer span.End()

	record, err := parseAnswers(req)
	if err != nil {
		span.SetStatus(codes.Error, "invalid answers")
		return mcp.NewToolResultError(err.Error()), nil
	}

	s := insight.Extract(record)
	st := insight.SelectStrategy(s)
	span.SetAttributes(
		attribute.String("insight.category", string(s.Category)),
		attribute.String("strategy.approach", string(st.Approach)),
	)

	return jsonResult(map[string]any{
		"category":         s.Category,
		"high_involvement": s.HighInvolvement,
		"triggers":         s.TriggerNames(),
		"setting":          s.Setting,
		"audience":         s.Subject(),
		"product_name":     s.ProductName,
		"benefit":          s.Benefit,
		"lighting":         insight.Lighting(s.Triggers),
		"strategy": map[string]any{
			"approach":   st.Approach,
			"ratio":      st.Ratio,
			"psychology": insight.Psychology(st, s),
		},
	})
}

// HandleExportCreative renders a text export.
func (h *Handlers) HandleExportCreative(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx, span := tracer.Start(ctx, "tool.export_creative")
	defer span.End()

	kind, err := export.ParseKind(mcp.ParseString(req, "kind", string(export.KindBrief)))
	if err != nil {
		span.SetStatus(codes.Error, "invalid kind")
		return mcp.NewToolResultError(err.Error()), nil
	}
	record, err := parseAnswers(req)
	if err != nil {
		span.SetStatus(codes.Error, "invalid answers")
		return mcp.NewToolResultError(err.Error()), nil
	}

	s := insight.Extract(record)
	source := "claude"
	result, err := parseResult(req)
	if err != nil {
		span.SetStatus(codes.Error, "invalid result")
		return mcp.NewToolResultError(err.Error()), nil
	}
	if result == nil {
		result = creative.Fallback(s, insight.SelectStrategy(s))
		source = "fallback"
	}

	span.SetAttributes(attribute.String("export.kind", string(kind)))
	h.log.InfoContext(ctx, "Creative exported", "kind", kind, "source", source)

	return mcp.NewToolResultText(export.Render(kind, export.Brief{
		Signals:   s,
		Result:    result,
		Source:    source,
		Generated: time.Now(),
	})), nil
}

// parseAnswers accepts answers as an object or as a JSON string. Neither
// present is an empty record.
func parseAnswers(req mcp.CallToolRequest) (answers.Record, error) {
	args := req.GetArguments()
	if raw, ok := args["answers"]; ok && raw != nil {
		data, err := json.Marshal(raw)
		if err != nil {
			return answers.Record{}, fmt.Errorf("encode answers: %w", err)
		}
		r, err := answers.Parse(data)
		if err != nil {
			return answers.Record{}, fmt.Errorf("invalid answers: %w", err)
		}
		return r, nil
	}
	if s := mcp.ParseString(req, "answers_json", ""); s != "" {
		r, err := answers.Parse([]byte(s))
		if err != nil {
			return answers.Record{}, fmt.Errorf("invalid answers_json: %w", err)
		}
		return r, nil
	}
	return answers.Record{}, nil
}

func parseResult(req mcp.CallToolRequest) (*creative.Result, error) {
	raw, ok := req.GetArguments()["result"]
	if !ok || raw == nil {
		return nil, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	r, err := creative.ParseResult(string(data))
	if err != nil {
		return nil, fmt.Errorf("invalid result: %w", err)
	}
	return r, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
