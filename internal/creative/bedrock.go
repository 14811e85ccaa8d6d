package creative

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

// DefaultBedrockModel is the cross-region inference profile for Claude Sonnet 4.
const DefaultBedrockModel = "us.anthropic.claude-sonnet-4-20250514-v1:0"

// BedrockGenerator sends the same request through Bedrock Converse.
type BedrockGenerator struct {
	client   *bedrockruntime.Client
	modelID  string
	attempts int
	backoff  time.Duration
}

func NewBedrockGenerator(cfg aws.Config, modelID string, attempts int) *BedrockGenerator {
	if modelID == "" {
		modelID = DefaultBedrockModel
	}
	return &BedrockGenerator{
		client:   bedrockruntime.NewFromConfig(cfg),
		modelID:  modelID,
		attempts: attempts,
		backoff:  defaultBackoff,
	}
}

// Generate ignores req.Model; Bedrock needs its own model identifier.
func (g *BedrockGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	input := &bedrockruntime.ConverseInput{
		ModelId: aws.String(g.modelID),
		System: []types.SystemContentBlock{
			&types.SystemContentBlockMemberText{Value: req.System},
		},
		Messages: []types.Message{
			{
				Role: types.ConversationRoleUser,
				Content: []types.ContentBlock{
					&types.ContentBlockMemberText{Value: req.User},
				},
			},
		},
		InferenceConfig: &types.InferenceConfiguration{
			MaxTokens:   aws.Int32(int32(req.MaxTokens)),
			Temperature: aws.Float32(float32(req.Temperature)),
		},
	}

	return retry(ctx, g.attempts, g.backoff, func() (*Result, error) {
		resp, err := g.client.Converse(ctx, input)
		if err != nil {
			return nil, bedrockTransportError(err)
		}
		text := extractBedrockText(resp)
		if text == "" {
			return nil, ErrNoText
		}
		return ParseResult(text)
	})
}

func bedrockTransportError(err error) error {
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		return &TransportError{StatusCode: respErr.HTTPStatusCode(), Err: err}
	}
	return &TransportError{Err: err}
}

func extractBedrockText(resp *bedrockruntime.ConverseOutput) string {
	if resp == nil || resp.Output == nil {
		return ""
	}
	msg, ok := resp.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return ""
	}
	for _, block := range msg.Value.Content {
		if tb, ok := block.(*types.ContentBlockMemberText); ok {
			return tb.Value
		}
	}
	return ""
}
