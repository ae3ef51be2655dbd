package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathieu/devis-analyzer/internal/llm"
	"github.com/mathieu/devis-analyzer/internal/retry"
	"github.com/mathieu/devis-analyzer/internal/types"
)

// scriptedClient fails a set number of times before answering.
type scriptedClient struct {
	failures int
	err      error
	text     string
	usage    *types.Usage
	calls    int
}

func (s *scriptedClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (*llm.Response, error) {
	s.calls++
	if s.calls <= s.failures {
		return nil, s.err
	}
	return &llm.Response{Text: s.text, Usage: s.usage}, nil
}

func (s *scriptedClient) GenerateFromImage(ctx context.Context, image []byte, mimeType string, prompt string, tier llm.ModelTier) (*llm.Response, error) {
	return nil, errors.New("not used")
}

func (s *scriptedClient) Close() error { return nil }

func fastPolicy() retry.Policy {
	return retry.Policy{MaxAttempts: 3, BaseDelay: time.Millisecond}
}

func TestAnalyze_RequiresTwoTexts(t *testing.T) {
	a := NewAnalyzer(&scriptedClient{}, fastPolicy())

	_, _, err := a.Analyze(context.Background(), []string{"un seul devis"})
	require.Error(t, err)
}

func TestAnalyze_Success(t *testing.T) {
	client := &scriptedClient{
		text:  `{"resume_executif": "Devis 1 recommandé"}`,
		usage: &types.Usage{PromptTokens: 1200, CandidateTokens: 450, TotalTokens: 1650},
	}
	a := NewAnalyzer(client, fastPolicy())

	record, usage, err := a.Analyze(context.Background(), []string{"devis un", "devis deux"})
	require.NoError(t, err)
	assert.Equal(t, 1, client.calls)
	assert.Equal(t, "Devis 1 recommandé", record.ResumeExecutif)
	require.NotNil(t, usage)
	assert.Equal(t, int32(1650), usage.TotalTokens)
}

func TestAnalyze_RetriesTransientFailures(t *testing.T) {
	client := &scriptedClient{
		failures: 2,
		err:      errors.New("transient backend hiccup"),
		text:     `{"resume_executif": "ok"}`,
	}
	a := NewAnalyzer(client, fastPolicy())

	record, _, err := a.Analyze(context.Background(), []string{"devis un", "devis deux"})
	require.NoError(t, err)
	assert.Equal(t, 3, client.calls)
	assert.False(t, record.ParseFailed())
}

func TestAnalyze_ExhaustedRetriesTranslated(t *testing.T) {
	tests := []struct {
		name   string
		errMsg string
		target any
	}{
		{"credentials", "invalid API key provided", new(*InvalidCredentialsError)},
		{"quota", "resource quota exceeded for project", new(*QuotaExceededError)},
		{"model", "requested model not found", new(*ModelUnavailableError)},
		{"generic", "connection reset by peer", new(*AnalysisError)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &scriptedClient{failures: 10, err: errors.New(tt.errMsg)}
			a := NewAnalyzer(client, fastPolicy())

			_, _, err := a.Analyze(context.Background(), []string{"devis un", "devis deux"})
			require.Error(t, err)
			assert.Equal(t, 3, client.calls)

			switch target := tt.target.(type) {
			case **InvalidCredentialsError:
				assert.ErrorAs(t, err, target)
			case **QuotaExceededError:
				assert.ErrorAs(t, err, target)
			case **ModelUnavailableError:
				assert.ErrorAs(t, err, target)
			case **AnalysisError:
				assert.ErrorAs(t, err, target)
			}
			assert.EqualError(t, errors.Unwrap(err), tt.errMsg, "original cause must be preserved")
		})
	}
}

func TestAnalyze_MalformedReplyIsNotAnError(t *testing.T) {
	client := &scriptedClient{text: "Je ne trouve pas de montants dans ces documents."}
	a := NewAnalyzer(client, fastPolicy())

	record, _, err := a.Analyze(context.Background(), []string{"devis un", "devis deux"})
	require.NoError(t, err)
	assert.True(t, record.ParseFailed())
	assert.Equal(t, client.text, record.AnalyseBrute)
}

func TestTranslateError(t *testing.T) {
	assert.Nil(t, TranslateError(nil))

	var cred *InvalidCredentialsError
	require.ErrorAs(t, TranslateError(errors.New("API key not valid")), &cred)
	assert.Contains(t, cred.Error(), "GEMINI_API_KEY")

	var quota *QuotaExceededError
	require.ErrorAs(t, TranslateError(errors.New("quota exhausted")), &quota)

	var model *ModelUnavailableError
	require.ErrorAs(t, TranslateError(errors.New("no such model: gemini-9")), &model)

	var generic *AnalysisError
	require.ErrorAs(t, TranslateError(errors.New("timeout")), &generic)
	assert.Contains(t, generic.Error(), "timeout")
}
