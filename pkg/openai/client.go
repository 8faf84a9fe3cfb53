package openai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sashabaranov/go-openai"

	"github.com/chetanya04/Copilot-Clone/pkg/domain"
	"github.com/chetanya04/Copilot-Clone/pkg/logger"
)

const textModel = "gpt-4o-mini"

type client struct {
	api *openai.Client
}

func NewClient(token string) (*client, error) {
	if token == "" {
		return nil, fmt.Errorf("openai token is empty")
	}
	return &client{api: openai.NewClient(token)}, nil
}

// GenerateText follows the same two-step contract as the gemini client:
// a history-aware attempt, then one without history.
func (c *client) GenerateText(ctx context.Context, prompt string, history []domain.Message) (string, error) {
	if len(history) > 0 {
		text, err := c.createChatCompletion(ctx, prompt, history)
		if err == nil {
			return text, nil
		}
		slog.WarnContext(ctx, "History-aware completion failed, retrying without history", logger.Err(err))
	}

	return c.createChatCompletion(ctx, prompt, nil)
}

func (c *client) createChatCompletion(ctx context.Context, prompt string, history []domain.Message) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	for _, m := range history {
		role := openai.ChatMessageRoleUser
		if m.Role == domain.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       textModel,
		Messages:    messages,
		MaxTokens:   1024,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("creating chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return resp.Choices[0].Message.Content, nil
}

// GenerateImage returns the hosted URL of the generated image.
func (c *client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		return "", fmt.Errorf("creating image: %w", err)
	}

	if len(resp.Data) == 0 {
		return "", fmt.Errorf("no image data in response")
	}

	return resp.Data[0].URL, nil
}
