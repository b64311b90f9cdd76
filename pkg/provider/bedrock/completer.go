package bedrock

import (
	"context"
	"errors"
	"strings"

	"github.com/adrianliechti/prism/pkg/provider"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/google/uuid"
)

var _ provider.Completer = (*Completer)(nil)

type Completer struct {
	*Config
	client *bedrockruntime.Client
}

func NewCompleter(model string, options ...Option) (*Completer, error) {
	cfg := &Config{
		model: model,
	}

	for _, option := range options {
		option(cfg)
	}

	if cfg.model == "" {
		return nil, errors.New("invalid model")
	}

	loaders := []func(*config.LoadOptions) error{
		config.WithRetryer(func() aws.Retryer {
			return aws.NopRetryer{}
		}),
	}

	if cfg.region != "" {
		loaders = append(loaders, config.WithRegion(cfg.region))
	}

	awscfg, err := config.LoadDefaultConfig(context.Background(), loaders...)

	if err != nil {
		return nil, err
	}

	return &Completer{
		Config: cfg,
		client: bedrockruntime.NewFromConfig(awscfg, func(o *bedrockruntime.Options) {
			if cfg.url != "" {
				o.BaseEndpoint = aws.String(cfg.url)
			}
		}),
	}, nil
}

func (c *Completer) Complete(ctx context.Context, messages []provider.Message, options *provider.CompleteOptions) (*provider.Completion, error) {
	if options == nil {
		options = new(provider.CompleteOptions)
	}

	system, history := provider.SplitSystem(messages)

	req := &bedrockruntime.ConverseInput{
		ModelId: aws.String(c.model),
	}

	if system != "" {
		req.System = []types.SystemContentBlock{
			&types.SystemContentBlockMemberText{Value: system},
		}
	}

	for _, m := range history {
		role := types.ConversationRoleUser

		if m.Role == provider.MessageRoleAssistant {
			role = types.ConversationRoleAssistant
		}

		req.Messages = append(req.Messages, types.Message{
			Role: role,

			Content: []types.ContentBlock{
				&types.ContentBlockMemberText{Value: m.Content},
			},
		})
	}

	if options.MaxTokens != nil || options.Temperature != nil {
		req.InferenceConfig = &types.InferenceConfiguration{}

		if options.MaxTokens != nil {
			req.InferenceConfig.MaxTokens = aws.Int32(int32(*options.MaxTokens))
		}

		if options.Temperature != nil {
			req.InferenceConfig.Temperature = options.Temperature
		}
	}

	resp, err := c.client.Converse(ctx, req)

	if err != nil {
		return nil, err
	}

	output, ok := resp.Output.(*types.ConverseOutputMemberMessage)

	if !ok {
		return nil, errors.New("unexpected converse output")
	}

	var parts []string

	for _, block := range output.Value.Content {
		if text, ok := block.(*types.ContentBlockMemberText); ok {
			parts = append(parts, text.Value)
		}
	}

	result := &provider.Completion{
		ID:    uuid.New().String(),
		Model: c.model,

		Message: &provider.Message{
			Role:    provider.MessageRoleAssistant,
			Content: strings.Join(parts, ""),
		},
	}

	if resp.Usage != nil {
		result.Usage = &provider.Usage{
			InputTokens:  int(aws.ToInt32(resp.Usage.InputTokens)),
			OutputTokens: int(aws.ToInt32(resp.Usage.OutputTokens)),
		}
	}

	return result, nil
}
