package anthropic

import (
	"context"
	"errors"
	"strings"

	"github.com/adrianliechti/prism/pkg/provider"

	"github.com/anthropics/anthropic-sdk-go"
)

var _ provider.Completer = (*Completer)(nil)

type Completer struct {
	*Config
	messages anthropic.MessageService
}

func NewCompleter(url, model string, options ...Option) (*Completer, error) {
	cfg := &Config{
		url:   url,
		model: model,
	}

	for _, option := range options {
		option(cfg)
	}

	if cfg.model == "" {
		return nil, errors.New("invalid model")
	}

	return &Completer{
		Config:   cfg,
		messages: anthropic.NewMessageService(cfg.Options()...),
	}, nil
}

func (c *Completer) Complete(ctx context.Context, messages []provider.Message, options *provider.CompleteOptions) (*provider.Completion, error) {
	if options == nil {
		options = new(provider.CompleteOptions)
	}

	system, history := provider.SplitSystem(messages)

	req := anthropic.MessageNewParams{
		Model: anthropic.Model(c.model),

		MaxTokens: 4096,
	}

	if system != "" {
		req.System = []anthropic.TextBlockParam{
			{Text: system},
		}
	}

	for _, m := range history {
		block := anthropic.NewTextBlock(m.Content)

		if m.Role == provider.MessageRoleAssistant {
			req.Messages = append(req.Messages, anthropic.NewAssistantMessage(block))
			continue
		}

		req.Messages = append(req.Messages, anthropic.NewUserMessage(block))
	}

	if options.MaxTokens != nil {
		req.MaxTokens = int64(*options.MaxTokens)
	}

	if options.Temperature != nil {
		req.Temperature = anthropic.Float(float64(*options.Temperature))
	}

	message, err := c.messages.New(ctx, req)

	if err != nil {
		return nil, err
	}

	var parts []string

	for _, block := range message.Content {
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}

	return &provider.Completion{
		ID:    message.ID,
		Model: string(message.Model),

		Message: &provider.Message{
			Role:    provider.MessageRoleAssistant,
			Content: strings.Join(parts, ""),
		},

		Usage: &provider.Usage{
			InputTokens:  int(message.Usage.InputTokens),
			OutputTokens: int(message.Usage.OutputTokens),
		},
	}, nil
}
