package repository

import (
	"context"
	"dotyield/internal/domain"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ayush6624/go-chatgpt"
)

type GptRepository interface {
	SuggestAllocations(ctx context.Context, riskProfile string, assets []string) ([]domain.AllocationSpec, error)
}

type gptRepositoryHandler struct {
	GptClient *chatgpt.Client
}

func NewGptRepository(apiKey string) (GptRepository, error) {
	client, err := chatgpt.NewClient(apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to construct gpt client: %w", err)
	}

	return gptRepositoryHandler{
		GptClient: client,
	}, nil
}

const suggestionPrompt = `
You are helping a user split capital across liquid-staking and yield-farming pools on Polkadot parachains. Given a risk profile and a list of available assets, output a JSON array of allocations. Each entry must have:

- "protocol": the parachain or protocol identifier (e.g. "bifrost", "acala", "parallel")
- "asset": the yield-bearing asset identifier (e.g. "vDOT", "LDOT", "sDOT")
- "percentage": share of capital, a number between 0 and 100
- "category": one of "staking", "farming", "lp", "lending"

The percentages must sum to 100. Conservative profiles should favor plain staking derivatives; aggressive profiles may weight farming and LP pools more heavily. Output only the JSON array, no prose.
`

func (h gptRepositoryHandler) SuggestAllocations(ctx context.Context, riskProfile string, assets []string) ([]domain.AllocationSpec, error) {
	res, err := h.GptClient.Send(ctx, &chatgpt.ChatCompletionRequest{
		Model: chatgpt.GPT35Turbo,
		Messages: []chatgpt.ChatMessage{
			{
				Role:    chatgpt.ChatGPTModelRoleSystem,
				Content: suggestionPrompt,
			},
			{
				Role:    chatgpt.ChatGPTModelRoleUser,
				Content: fmt.Sprintf("risk profile: %s\navailable assets: %s", riskProfile, strings.Join(assets, ", ")),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get allocation suggestion: %w", err)
	}
	if len(res.Choices) == 0 {
		return nil, fmt.Errorf("gpt returned no choices")
	}

	content := res.Choices[0].Message.Content
	// the model occasionally wraps output in a fenced block
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	allocations := []domain.AllocationSpec{}
	err = json.Unmarshal([]byte(content), &allocations)
	if err != nil {
		return nil, fmt.Errorf("failed to parse allocation suggestion: %w", err)
	}

	return allocations, nil
}
