package services

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"mirrormirror/internal/models/db_models"
)

// OracleClient is the optional generative fortune backend. It is experimental
// and off unless the force-rule-based toggle is disabled; its output still has
// to pass the same validator as the rule-based composer.
type OracleClient interface {
	Fortune(ctx context.Context, name, zodiac, element, tone string, profile db_models.Profile) (string, error)
}

type openAIOracle struct {
	client *openai.Client
}

func NewOpenAIOracle(apiKey string) OracleClient {
	if apiKey == "" {
		return nil
	}
	return &openAIOracle{client: openai.NewClient(apiKey)}
}

func (o *openAIOracle) Fortune(ctx context.Context, name, zodiac, element, tone string, profile db_models.Profile) (string, error) {
	var traits []string
	for trait, answer := range profile {
		traits = append(traits, fmt.Sprintf("%s: %s", trait, answer.String()))
	}

	prompt := fmt.Sprintf(
		"You are an artistic poetic oracle. Write a gentle, original fortune for %s.\n"+
			"Keep it short (1-3 sentences). Use evocative language.\n"+
			"Zodiac: %s (element: %s). Tone: %s.\nProfile: %s\nFortune:",
		name, zodiac, element, tone, strings.Join(traits, ", "))

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       openai.GPT4oMini,
		MaxTokens:   180,
		Temperature: 0.85,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("oracle returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
