// Package ocrspace backs ocr.TextExtractor with the OCR.space hosted API.
package ocrspace

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

const defaultAPIURL = "https://api.ocr.space/parse/image"

type Extractor struct {
	apiKey  string
	client  *http.Client
	baseURL string
}

func New(apiKey string) *Extractor {
	return &Extractor{
		apiKey:  apiKey,
		client:  &http.Client{},
		baseURL: defaultAPIURL,
	}
}

// NewWithURL points the extractor at a non-default endpoint (self-hosted
// deployments, tests).
func NewWithURL(apiKey, baseURL string) *Extractor {
	e := New(apiKey)
	if baseURL != "" {
		e.baseURL = baseURL
	}
	return e
}

type parseResponse struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
	IsErroredOnProcessing bool `json:"IsErroredOnProcessing"`
	OCRExitCode           int  `json:"OCRExitCode"`
}

func (e *Extractor) ExtractText(ctx context.Context, r io.Reader, mimeType string) (string, error) {
	imageData, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	form := url.Values{}
	form.Set("base64Image", fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(imageData)))
	form.Set("scale", "true")
	form.Set("isTable", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("apikey", e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call ocr service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Error("failed to close ocr response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ocr service returned status %d: %s", resp.StatusCode, errBody)
	}

	var respBody parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if respBody.IsErroredOnProcessing {
		return "", fmt.Errorf("ocr service failed to process image (exit code %d)", respBody.OCRExitCode)
	}

	var text strings.Builder
	for _, result := range respBody.ParsedResults {
		text.WriteString(result.ParsedText)
		text.WriteString("\n")
	}
	return text.String(), nil
}
