package extraction

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathieu/devis-analyzer/internal/cache"
	"github.com/mathieu/devis-analyzer/internal/llm"
)

// fakeVisionClient returns a canned transcription for image files.
type fakeVisionClient struct {
	text  string
	err   error
	calls int
}

func (f *fakeVisionClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (*llm.Response, error) {
	return &llm.Response{Text: f.text}, f.err
}

func (f *fakeVisionClient) GenerateFromImage(ctx context.Context, image []byte, mimeType string, prompt string, tier llm.ModelTier) (*llm.Response, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &llm.Response{Text: f.text}, nil
}

func (f *fakeVisionClient) Close() error { return nil }

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func textUpload(t *testing.T, name, content string) UploadedFile {
	t.Helper()
	path := writeTempFile(t, name, content)
	return UploadedFile{Path: path, DisplayName: name, MediaType: "text/plain", ByteSize: int64(len(content))}
}

func TestExtract_PlainText(t *testing.T) {
	e := NewExtractor(cache.NewStore(10), &fakeVisionClient{})

	content := "Devis n°42 - Maçonnerie générale - Total HT 45 000 EUR"
	res, err := e.Extract(context.Background(), textUpload(t, "devis.txt", content))
	require.NoError(t, err)

	assert.Equal(t, "devis.txt", res.DisplayName)
	assert.Equal(t, content, res.Text)
	assert.False(t, res.ServedFromCache)
	assert.NotEmpty(t, res.ContentDigest)
	assert.Equal(t, int64(len(content)), res.ByteSize)
}

func TestExtract_EmptyTextFile(t *testing.T) {
	e := NewExtractor(cache.NewStore(10), &fakeVisionClient{})

	_, err := e.Extract(context.Background(), textUpload(t, "vide.txt", ""))
	var emptyErr *EmptyContentError
	require.ErrorAs(t, err, &emptyErr)
	assert.Equal(t, "vide.txt", emptyErr.DisplayName)
}

func TestExtract_WhitespaceOnlyTextFile(t *testing.T) {
	e := NewExtractor(cache.NewStore(10), &fakeVisionClient{})

	_, err := e.Extract(context.Background(), textUpload(t, "blanc.txt", "   \n\t  \n"))
	var emptyErr *EmptyContentError
	require.ErrorAs(t, err, &emptyErr)
}

func TestExtract_InsufficientContent(t *testing.T) {
	e := NewExtractor(cache.NewStore(10), &fakeVisionClient{})

	_, err := e.Extract(context.Background(), textUpload(t, "court.txt", "abc"))
	var shortErr *InsufficientContentError
	require.ErrorAs(t, err, &shortErr)
	assert.Equal(t, 3, shortErr.Length)
}

func TestExtract_UnsupportedType(t *testing.T) {
	e := NewExtractor(cache.NewStore(10), &fakeVisionClient{})

	file := textUpload(t, "devis.zip", "PK\x03\x04 fake archive content here")
	file.MediaType = "application/zip"

	_, err := e.Extract(context.Background(), file)
	var typeErr *UnsupportedTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "application/zip", typeErr.MediaType)
}

func TestExtract_CacheHitKeepsCallerDisplayName(t *testing.T) {
	e := NewExtractor(cache.NewStore(10), &fakeVisionClient{})
	ctx := context.Background()

	content := "Devis plomberie - remplacement chaudière - 8 500 EUR TTC"
	first, err := e.Extract(ctx, textUpload(t, "original.txt", content))
	require.NoError(t, err)
	require.False(t, first.ServedFromCache)

	// Same bytes, different display name.
	second, err := e.Extract(ctx, textUpload(t, "copie.txt", content))
	require.NoError(t, err)

	assert.True(t, second.ServedFromCache)
	assert.Equal(t, "copie.txt", second.DisplayName)
	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, first.ContentDigest, second.ContentDigest)
}

func TestExtract_NilCacheAlwaysExtracts(t *testing.T) {
	e := NewExtractor(nil, &fakeVisionClient{})
	ctx := context.Background()

	content := "Devis électricité - mise aux normes tableau - 3 200 EUR"
	first, err := e.Extract(ctx, textUpload(t, "a.txt", content))
	require.NoError(t, err)
	second, err := e.Extract(ctx, textUpload(t, "b.txt", content))
	require.NoError(t, err)

	assert.False(t, first.ServedFromCache)
	assert.False(t, second.ServedFromCache)
}

func TestExtract_ImageDelegatesToVisionModel(t *testing.T) {
	client := &fakeVisionClient{text: "DEVIS - Couverture toiture - Total 18 000 EUR HT"}
	e := NewExtractor(cache.NewStore(10), client)

	file := textUpload(t, "devis.jpg", "\xff\xd8\xff fake jpeg bytes")
	file.MediaType = "image/jpeg"

	res, err := e.Extract(context.Background(), file)
	require.NoError(t, err)
	assert.Equal(t, 1, client.calls)
	assert.Equal(t, client.text, res.Text)
}

func TestExtract_ImageWithNoDetectedText(t *testing.T) {
	client := &fakeVisionClient{text: "   "}
	e := NewExtractor(cache.NewStore(10), client)

	file := textUpload(t, "photo.png", "\x89PNG fake image bytes")
	file.MediaType = "image/png"

	_, err := e.Extract(context.Background(), file)
	var emptyErr *EmptyContentError
	require.ErrorAs(t, err, &emptyErr)
}

func TestExtract_ImageModelError(t *testing.T) {
	client := &fakeVisionClient{err: errors.New("vision unavailable")}
	e := NewExtractor(cache.NewStore(10), client)

	file := textUpload(t, "photo.png", "\x89PNG fake image bytes")
	file.MediaType = "image/png"

	_, err := e.Extract(context.Background(), file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vision unavailable")
}

func TestExtract_ImageTranscriptionIsCached(t *testing.T) {
	client := &fakeVisionClient{text: "DEVIS - Isolation combles - 6 400 EUR HT"}
	e := NewExtractor(cache.NewStore(10), client)
	ctx := context.Background()

	imageBytes := "\x89PNG same image bytes"
	fileA := textUpload(t, "scan-a.png", imageBytes)
	fileA.MediaType = "image/png"
	fileB := textUpload(t, "scan-b.png", imageBytes)
	fileB.MediaType = "image/png"

	_, err := e.Extract(ctx, fileA)
	require.NoError(t, err)
	res, err := e.Extract(ctx, fileB)
	require.NoError(t, err)

	assert.Equal(t, 1, client.calls, "second extraction must be served from cache")
	assert.True(t, res.ServedFromCache)
}

func TestCleanupFiles_BestEffort(t *testing.T) {
	existing := textUpload(t, "todelete.txt", "contenu temporaire du devis")

	// A missing path and an empty path must not panic or fail.
	CleanupFiles([]UploadedFile{
		existing,
		{Path: filepath.Join(t.TempDir(), "already-gone.txt")},
		{},
	})

	_, err := os.Stat(existing.Path)
	assert.True(t, os.IsNotExist(err))
}
