// Package ocr defines the receipt text-extraction collaborator and the
// lexical heuristics that turn raw receipt text into probable item names.
package ocr

import (
	"context"
	"errors"
	"io"
)

// ErrUnavailable means no extraction backend is configured.
var ErrUnavailable = errors.New("text extraction unavailable")

// TextExtractor turns a photographed receipt into raw text. Engines are
// external; this package only consumes their output.
type TextExtractor interface {
	ExtractText(ctx context.Context, r io.Reader, mimeType string) (string, error)
}

// Disabled is the TextExtractor wired in when no backend is configured.
type Disabled struct{}

func (Disabled) ExtractText(context.Context, io.Reader, string) (string, error) {
	return "", ErrUnavailable
}
