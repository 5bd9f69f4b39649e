package web

import (
	"io"
	"log/slog"
	"net/http"

	"larder/internal/domain"
)

const maxScanSize = 20 * 1024 * 1024 // 20 MB

// allowedImageTypes is the set of MIME types accepted for scanned receipts.
// net/http.DetectContentType handles JPEG, PNG, and GIF via magic-byte
// sniffing. WebP is detected separately because the WHATWG sniff spec (and
// therefore the stdlib) does not include a WebP signature.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// isWebP reports whether data is a WebP image (RIFF container with "WEBP" at
// offset 8).
func isWebP(data []byte) bool {
	return len(data) >= 12 &&
		string(data[0:4]) == "RIFF" &&
		string(data[8:12]) == "WEBP"
}

// allowedImageMIME returns the detected MIME type and true if the data is an
// accepted image format, or ("", false) otherwise.
func allowedImageMIME(data []byte) (string, bool) {
	if isWebP(data) {
		return "image/webp", true
	}
	mime := http.DetectContentType(data)
	if allowedImageTypes[mime] {
		return mime, true
	}
	return "", false
}

type scanResponse struct {
	Items  []string `json:"items"`
	Source string   `json:"source"`
	Raw    []string `json:"raw"`
}

// handleScan runs a receipt image through text extraction and the item
// filter. Nothing is written to the pantry; the caller decides which of the
// returned names to add.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxScanSize); err != nil {
		s.writeError(w, domain.Validationf("failed to parse multipart form"))
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		s.writeError(w, domain.Validationf("image file required"))
		return
	}
	defer closeWithLog(file, "scan upload", s.logger)

	imageData, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, err)
		return
	}

	mimeType, ok := allowedImageMIME(imageData)
	if !ok {
		s.writeError(w, domain.Validationf("unsupported image format"))
		return
	}

	result, err := s.scans.Scan(r.Context(), imageData, mimeType)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, scanResponse{
		Items:  result.Items,
		Source: result.Source,
		Raw:    result.Raw,
	})
}

// closeWithLog closes c and logs any error, using label to identify the resource.
func closeWithLog(c io.Closer, label string, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Error("failed to close resource", "label", label, "error", err)
	}
}
