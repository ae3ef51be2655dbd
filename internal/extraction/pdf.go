package extraction

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF pulls the embedded text layer out of a PDF. A scanned
// image-only PDF has no text layer and fails with EmptyContentError; adding
// an OCR fallback is a known gap.
func (e *Extractor) extractPDF(file UploadedFile, data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read PDF %s: %w", file.DisplayName, err)
	}

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract text from PDF %s: %w", file.DisplayName, err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(content); err != nil {
		return "", fmt.Errorf("failed to extract text from PDF %s: %w", file.DisplayName, err)
	}

	text := buf.String()
	if strings.TrimSpace(text) == "" {
		return "", &EmptyContentError{DisplayName: file.DisplayName, Reason: "PDF has no extractable text layer"}
	}
	return text, nil
}
