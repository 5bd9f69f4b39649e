package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"larder/internal/ai"
	"larder/internal/ocr"
)

// ScanResult is the outcome of a receipt scan: candidate item names ready
// to be added to the pantry. Source records which stage produced the list.
type ScanResult struct {
	Items  []string
	Source string // "ai" or "heuristic"
	Raw    []string
}

// ScanService chains receipt extraction, lexical filtering and the AI item
// filter. Only the extraction stage can fail the scan; every later stage
// degrades to the previous stage's output. Scanning never touches pantry
// state.
type ScanService struct {
	extractor ocr.TextExtractor
	generator ai.Generator
	logger    *slog.Logger
}

func NewScanService(extractor ocr.TextExtractor, generator ai.Generator, logger *slog.Logger) *ScanService {
	return &ScanService{extractor: extractor, generator: generator, logger: logger}
}

func (s *ScanService) Scan(ctx context.Context, image []byte, mimeType string) (*ScanResult, error) {
	s.logger.Info("receipt scan started", "mime_type", mimeType, "bytes", len(image))

	text, err := s.extractor.ExtractText(ctx, bytes.NewReader(image), mimeType)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}

	lines := ocr.Lines(text)
	probable := ocr.ProbableItemNames(lines)
	if len(probable) == 0 {
		probable = lines
	}
	s.logger.Debug("receipt text extracted", "lines", len(lines), "probable_items", len(probable))

	result := &ScanResult{Items: probable, Source: "heuristic", Raw: lines}
	if len(probable) == 0 {
		return result, nil
	}

	reply, err := s.generator.Generate(ctx, ai.ScannedItemFilterPrompt(probable))
	if err != nil {
		s.logger.Warn("ai item filter unavailable, using lexical candidates", "error", err)
		return result, nil
	}
	filtered := ai.ExtractJSONArray(reply)
	if len(filtered) == 0 {
		s.logger.Warn("ai item filter returned nothing parseable, using lexical candidates")
		return result, nil
	}

	result.Items = filtered
	result.Source = "ai"
	s.logger.Info("receipt scan complete", "items", len(filtered), "source", result.Source)
	return result, nil
}
