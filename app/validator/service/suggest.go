package service

import (
	"context"

	"github.com/TrustWeave/proofdao/app/validator/model"
)

// SuggestTaskImprovements asks the model for suggestions that would make the
// task requirements clearer for contributors.
func (svc *ValidatorService) SuggestTaskImprovements(ctx context.Context, task model.Task) ([]string, error) {
	raw, err := svc.inference.Complete(ctx, suggestionsInstructions, buildSuggestionsPrompt(task))
	if err != nil {
		return nil, err
	}
	suggestions, _ := ParseModelResponse(ctx, raw, fallbackSuggestions())
	return suggestions, nil
}
