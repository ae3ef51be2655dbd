// Package extraction turns uploaded quote files into plain text, with
// content-addressed caching so byte-identical re-uploads skip the expensive
// extraction path.
package extraction

import (
	"context"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/mathieu/devis-analyzer/internal/cache"
	"github.com/mathieu/devis-analyzer/internal/llm"
	"github.com/mathieu/devis-analyzer/internal/prompts"
)

// MediaTypePDF is the only non-prefix media type the extractor dispatches on.
const MediaTypePDF = "application/pdf"

// minUsableTextLength is the post-extraction validation threshold.
const minUsableTextLength = 10

// Result is the outcome of extracting one uploaded file. Immutable once
// created; the cache stores it minus the display name.
type Result struct {
	DisplayName     string `json:"name"`
	MediaType       string `json:"mimeType"`
	ByteSize        int64  `json:"size"`
	Text            string `json:"-"`
	TextLength      int    `json:"textLength"`
	ContentDigest   string `json:"-"`
	ServedFromCache bool   `json:"fromCache"`
}

// Extractor dispatches by media type to a PDF text reader, a vision-based
// image transcriber or a raw UTF-8 read, and consults the shared cache
// before doing any work.
type Extractor struct {
	cache  *cache.Store
	client llm.Client
	tier   llm.ModelTier
}

// NewExtractor creates an extractor backed by the given cache and vision
// client. A nil cache disables the short-circuit (every file is extracted).
func NewExtractor(store *cache.Store, client llm.Client) *Extractor {
	return &Extractor{cache: store, client: client, tier: llm.TierLite}
}

// Extract reads the file, checks the cache by content digest, and extracts
// text on a miss. Cache hits keep the caller-supplied display name since the
// same bytes may be re-uploaded under a different name.
func (e *Extractor) Extract(ctx context.Context, file UploadedFile) (*Result, error) {
	data, err := os.ReadFile(file.Path)
	if err != nil {
		return nil, err
	}

	digest := cache.Digest(data)
	if e.cache != nil {
		if entry, ok := e.cache.Get(digest); ok {
			return &Result{
				DisplayName:     file.DisplayName,
				MediaType:       entry.MediaType,
				ByteSize:        entry.ByteSize,
				Text:            entry.Text,
				TextLength:      entry.TextLength,
				ContentDigest:   digest,
				ServedFromCache: true,
			}, nil
		}
	}

	text, err := e.extractText(ctx, file, data)
	if err != nil {
		return nil, err
	}

	if trimmed := strings.TrimSpace(text); utf8.RuneCountInString(trimmed) < minUsableTextLength {
		return nil, &InsufficientContentError{DisplayName: file.DisplayName, Length: utf8.RuneCountInString(trimmed)}
	}

	result := &Result{
		DisplayName:   file.DisplayName,
		MediaType:     file.MediaType,
		ByteSize:      int64(len(data)),
		Text:          text,
		TextLength:    utf8.RuneCountInString(text),
		ContentDigest: digest,
	}

	if e.cache != nil {
		e.cache.Put(digest, cache.Entry{
			MediaType:  result.MediaType,
			ByteSize:   result.ByteSize,
			Text:       result.Text,
			TextLength: result.TextLength,
		})
	}

	return result, nil
}

// extractText dispatches on the declared media type.
func (e *Extractor) extractText(ctx context.Context, file UploadedFile, data []byte) (string, error) {
	switch {
	case file.MediaType == MediaTypePDF:
		return e.extractPDF(file, data)
	case strings.HasPrefix(file.MediaType, "image/"):
		return e.extractImage(ctx, file, data)
	case strings.HasPrefix(file.MediaType, "text/"):
		return e.extractPlainText(file, data)
	default:
		return "", &UnsupportedTypeError{MediaType: file.MediaType}
	}
}

func (e *Extractor) extractPlainText(file UploadedFile, data []byte) (string, error) {
	text := string(data)
	if strings.TrimSpace(text) == "" {
		return "", &EmptyContentError{DisplayName: file.DisplayName, Reason: "text file is empty"}
	}
	return text, nil
}

// extractImage delegates to the vision model with a fixed transcription
// instruction covering prices, dates, terms and supplier identity.
func (e *Extractor) extractImage(ctx context.Context, file UploadedFile, data []byte) (string, error) {
	resp, err := e.client.GenerateFromImage(ctx, data, file.MediaType, prompts.TranscriptionPrompt(), e.tier)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(resp.Text) == "" {
		return "", &EmptyContentError{DisplayName: file.DisplayName, Reason: "no text detected in image"}
	}
	return resp.Text, nil
}
