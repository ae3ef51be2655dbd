package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresPipelineDependencies(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, &fakeAnalyzer{record: analyzedRecord()}, &fakeExtractor{})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestStatus(t *testing.T) {
	s := newTestServer(t, &fakeAnalyzer{record: analyzedRecord()}, &fakeExtractor{})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "devis-analyzer")
	assert.Contains(t, rec.Body.String(), `"gemini":"configured"`)
	assert.Contains(t, rec.Body.String(), `"siretVerification":"enabled"`)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, &fakeAnalyzer{record: analyzedRecord()}, &fakeExtractor{})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/analyze", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestRateLimit_AnalyzeBurstExhausted(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")

	s, err := New(Config{
		UploadDir: t.TempDir(),
		Extractor: &fakeExtractor{},
		Analyzer:  &fakeAnalyzer{record: analyzedRecord()},
	})
	require.NoError(t, err)

	// Default analyze burst is 3 per client.
	var last *httptest.ResponseRecorder
	for i := 0; i < 4; i++ {
		last = httptest.NewRecorder()
		req := twoQuoteRequest(t, "/api/analyze")
		req.RemoteAddr = "10.0.0.1:12345"
		s.Handler().ServeHTTP(last, req)
	}

	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.NotEmpty(t, last.Header().Get("Retry-After"))
	assert.Contains(t, last.Body.String(), "Trop de requêtes")
}
