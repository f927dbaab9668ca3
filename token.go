package jsxcorpus

import "context"

// TokenCounter counts or estimates tokens in text.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
