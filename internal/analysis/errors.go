package analysis

import (
	"fmt"
	"strings"
)

// InvalidCredentialsError indicates a missing or rejected inference API key.
type InvalidCredentialsError struct {
	Cause error
}

func (e *InvalidCredentialsError) Error() string {
	return "Clé API Gemini invalide ou manquante. Vérifiez la variable GEMINI_API_KEY."
}

func (e *InvalidCredentialsError) Unwrap() error { return e.Cause }

// QuotaExceededError indicates the inference quota was exhausted.
type QuotaExceededError struct {
	Cause error
}

func (e *QuotaExceededError) Error() string {
	return "Quota API Gemini dépassé. Veuillez réessayer plus tard."
}

func (e *QuotaExceededError) Unwrap() error { return e.Cause }

// ModelUnavailableError indicates the configured model cannot be used.
type ModelUnavailableError struct {
	Cause error
}

func (e *ModelUnavailableError) Error() string {
	return "Modèle Gemini non disponible. Vérifiez la configuration."
}

func (e *ModelUnavailableError) Unwrap() error { return e.Cause }

// AnalysisError is the generic failure for an exhausted or unclassified
// inference error, carrying the original message.
type AnalysisError struct {
	Cause error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("Erreur d'analyse Gemini: %v", e.Cause)
}

func (e *AnalysisError) Unwrap() error { return e.Cause }

// TranslateError classifies an inference failure by inspecting its message
// for known substrings. The provider does not expose typed errors for these
// conditions, so message inspection is the only signal available.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "API key"):
		return &InvalidCredentialsError{Cause: err}
	case strings.Contains(msg, "quota"):
		return &QuotaExceededError{Cause: err}
	case strings.Contains(msg, "model"):
		return &ModelUnavailableError{Cause: err}
	default:
		return &AnalysisError{Cause: err}
	}
}
