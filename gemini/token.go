// Package gemini provides an exact token counter backed by the local
// Gemini tokenizer. It replaces the character-class estimator when
// --tokenizer gemini is selected.
package gemini

import (
	"context"
	"fmt"
	"sync"

	"github.com/fwojciec/jsxcorpus"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

// DefaultModel is the tokenizer model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

var _ jsxcorpus.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts tokens using the Gemini tokenizer.
type TokenCounter struct {
	mu  sync.Mutex
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a new TokenCounter for the given model.
// An empty model selects DefaultModel.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = DefaultModel
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer %s: %w", model, err)
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens counts the tokens of text sent as a single user turn.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if text == "" {
		return 0, nil
	}

	contents := []*genai.Content{
		genai.NewContentFromText(text, "user"),
	}

	tc.mu.Lock()
	result, err := tc.tok.CountTokens(contents, nil)
	tc.mu.Unlock()
	if err != nil {
		return 0, err
	}

	return int(result.TotalTokens), nil
}
