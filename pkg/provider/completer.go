package provider

import (
	"context"
	"strings"
)

type Completer interface {
	Complete(ctx context.Context, messages []Message, options *CompleteOptions) (*Completion, error)
}

type Message struct {
	Role MessageRole

	Content string
}

type MessageRole string

const (
	MessageRoleSystem    MessageRole = "system"
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

func SystemMessage(content string) Message {
	return Message{
		Role:    MessageRoleSystem,
		Content: content,
	}
}

func UserMessage(content string) Message {
	return Message{
		Role:    MessageRoleUser,
		Content: content,
	}
}

type CompleteOptions struct {
	MaxTokens   *int
	Temperature *float32
}

type Completion struct {
	ID    string
	Model string

	Message *Message

	Usage *Usage
}

// Text returns the completion's message content, if any.
func (c *Completion) Text() string {
	if c == nil || c.Message == nil {
		return ""
	}

	return c.Message.Content
}

// SplitSystem separates system instructions from the conversation.
func SplitSystem(messages []Message) (string, []Message) {
	var system []string
	var result []Message

	for _, m := range messages {
		if m.Role == MessageRoleSystem {
			system = append(system, m.Content)
			continue
		}

		result = append(result, m)
	}

	return strings.Join(system, "\n\n"), result
}
