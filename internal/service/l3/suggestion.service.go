package l3_service

import (
	"context"
	"fmt"
	"math"

	"dotyield/internal/domain"
	"dotyield/internal/repository"
)

// SuggestionService wraps the LLM allocation suggestion and cleans its
// arithmetic. Unlike the backtest path, rounding drift here is silently
// absorbed - the model produces approximate numbers and the caller expects
// a set that sums to exactly 100.
type SuggestionService interface {
	SuggestAllocations(ctx context.Context, riskProfile string, assets []string) ([]domain.AllocationSpec, error)
}

type suggestionServiceHandler struct {
	GptRepository repository.GptRepository
}

func NewSuggestionService(gptRepository repository.GptRepository) SuggestionService {
	return suggestionServiceHandler{
		GptRepository: gptRepository,
	}
}

func (h suggestionServiceHandler) SuggestAllocations(ctx context.Context, riskProfile string, assets []string) ([]domain.AllocationSpec, error) {
	allocations, err := h.GptRepository.SuggestAllocations(ctx, riskProfile, assets)
	if err != nil {
		return nil, err
	}
	if len(allocations) == 0 {
		return nil, fmt.Errorf("suggestion produced no allocations")
	}

	return normalizeAllocations(allocations), nil
}

// normalizeAllocations rounds each percentage to two decimals and lets the
// last allocation absorb the remaining drift, so the set sums to exactly
// 100 before it reaches the caller.
func normalizeAllocations(allocations []domain.AllocationSpec) []domain.AllocationSpec {
	out := make([]domain.AllocationSpec, len(allocations))
	copy(out, allocations)

	sum := 0.0
	for i := range out {
		out[i].Percentage = math.Round(out[i].Percentage*100) / 100
		if i < len(out)-1 {
			sum += out[i].Percentage
		}
	}
	out[len(out)-1].Percentage = math.Round((100-sum)*100) / 100

	return out
}
