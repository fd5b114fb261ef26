package openai

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sashabaranov/go-openai"
)

type IChatGPT interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	Provider() string
}

type chatGPTService struct {
	client *openai.Client
	model  string
}

func NewChatGPT() (IChatGPT, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("openai API key is required")
	}

	model := os.Getenv("OPENAI_CHAT_MODEL")
	if model == "" {
		model = openai.GPT4o
	}

	return &chatGPTService{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

func (c *chatGPTService) GenerateText(ctx context.Context, prompt string) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: "Eres un nutricionista clínico y deportivo. Responde SOLO con JSON válido, sin texto adicional.",
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		},
	}

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       c.model,
			Messages:    messages,
			Temperature: 0.4,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		},
	)

	if err != nil {
		return "", fmt.Errorf("ChatGPT API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from ChatGPT")
	}

	return resp.Choices[0].Message.Content, nil
}

func (c *chatGPTService) Provider() string {
	return "openai:" + c.model
}
