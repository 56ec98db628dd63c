// Package llm wraps the Claude API behind a small text-generation interface.
package llm

import "context"

// Client generates text from a prompt. A failed call returns an error rather
// than an error message disguised as output, so callers can tell genuine
// analysis text from a failure.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
