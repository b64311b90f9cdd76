package openai

import (
	"context"
	"errors"

	"github.com/adrianliechti/prism/pkg/provider"

	"github.com/openai/openai-go/v3"
)

var _ provider.Completer = (*Completer)(nil)

type Completer struct {
	*Config
	completions openai.ChatCompletionService
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
		Config:      cfg,
		completions: openai.NewChatCompletionService(cfg.Options()...),
	}, nil
}

func (c *Completer) Complete(ctx context.Context, messages []provider.Message, options *provider.CompleteOptions) (*provider.Completion, error) {
	if options == nil {
		options = new(provider.CompleteOptions)
	}

	req := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
	}

	for _, m := range messages {
		switch m.Role {
		case provider.MessageRoleSystem:
			req.Messages = append(req.Messages, openai.SystemMessage(m.Content))

		case provider.MessageRoleUser:
			req.Messages = append(req.Messages, openai.UserMessage(m.Content))

		case provider.MessageRoleAssistant:
			req.Messages = append(req.Messages, openai.AssistantMessage(m.Content))
		}
	}

	if options.MaxTokens != nil {
		req.MaxCompletionTokens = openai.Int(int64(*options.MaxTokens))
	}

	if options.Temperature != nil {
		req.Temperature = openai.Float(float64(*options.Temperature))
	}

	completion, err := c.completions.New(ctx, req)

	if err != nil {
		return nil, convertError(err)
	}

	if len(completion.Choices) == 0 {
		return nil, errors.New("no choices returned")
	}

	choice := completion.Choices[0]

	if choice.Message.Refusal != "" {
		return nil, errors.New("refused: " + choice.Message.Refusal)
	}

	return &provider.Completion{
		ID:    completion.ID,
		Model: completion.Model,

		Message: &provider.Message{
			Role:    provider.MessageRoleAssistant,
			Content: choice.Message.Content,
		},

		Usage: &provider.Usage{
			InputTokens:  int(completion.Usage.PromptTokens),
			OutputTokens: int(completion.Usage.CompletionTokens),
		},
	}, nil
}

func convertError(err error) error {
	var apierr *openai.Error

	if errors.As(err, &apierr) {
		if apierr.Message != "" {
			return errors.New(apierr.Message)
		}
	}

	return err
}
