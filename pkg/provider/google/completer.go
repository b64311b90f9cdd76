package google

import (
	"context"
	"errors"

	"github.com/adrianliechti/prism/pkg/provider"

	"github.com/google/uuid"
	"google.golang.org/genai"
)

var _ provider.Completer = (*Completer)(nil)

type Completer struct {
	*Config
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

	return &Completer{
		Config: cfg,
	}, nil
}

func (c *Completer) Complete(ctx context.Context, messages []provider.Message, options *provider.CompleteOptions) (*provider.Completion, error) {
	if options == nil {
		options = new(provider.CompleteOptions)
	}

	client, err := c.newClient(ctx)

	if err != nil {
		return nil, err
	}

	system, history := provider.SplitSystem(messages)

	if len(history) == 0 {
		return nil, errors.New("no messages to complete")
	}

	config := &genai.GenerateContentConfig{}

	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	if options.MaxTokens != nil {
		config.MaxOutputTokens = int32(*options.MaxTokens)
	}

	if options.Temperature != nil {
		config.Temperature = options.Temperature
	}

	resp, err := client.Models.GenerateContent(ctx, c.model, convertContents(history), config)

	if err != nil {
		return nil, err
	}

	if len(resp.Candidates) == 0 {
		return nil, errors.New("no candidates returned")
	}

	return &provider.Completion{
		ID:    uuid.New().String(),
		Model: c.model,

		Message: &provider.Message{
			Role:    provider.MessageRoleAssistant,
			Content: resp.Text(),
		},

		Usage: toUsage(resp.UsageMetadata),
	}, nil
}

func convertContents(messages []provider.Message) []*genai.Content {
	var result []*genai.Content

	for _, m := range messages {
		role := genai.Role(genai.RoleUser)

		if m.Role == provider.MessageRoleAssistant {
			role = genai.RoleModel
		}

		result = append(result, genai.NewContentFromText(m.Content, role))
	}

	return result
}

func toUsage(metadata *genai.GenerateContentResponseUsageMetadata) *provider.Usage {
	if metadata == nil {
		return nil
	}

	return &provider.Usage{
		InputTokens:  int(metadata.PromptTokenCount),
		OutputTokens: int(metadata.CandidatesTokenCount),
	}
}
