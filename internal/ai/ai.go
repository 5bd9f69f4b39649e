// Package ai defines the generative-text collaborator contract. Backends
// live in subpackages; the rest of the system only sees Generator.
package ai

import (
	"context"
	"errors"
)

// ErrUnavailable means no generation backend is configured. The decision is
// made once when the backend is constructed, not re-read from the
// environment per call.
var ErrUnavailable = errors.New("text generation unavailable")

// ErrEmptyResponse means the backend answered but returned no content.
var ErrEmptyResponse = errors.New("empty model response")

// Generator produces free text from a prompt. No determinism is guaranteed;
// callers must treat replies as best-effort prose and parse defensively.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Disabled is the Generator wired in when no backend is configured. Every
// call fails with ErrUnavailable so composite callers can degrade.
type Disabled struct{}

func (Disabled) Generate(context.Context, string) (string, error) {
	return "", ErrUnavailable
}
