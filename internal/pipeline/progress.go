package pipeline

import (
	"time"
)

// Pipeline step names as they appear on the wire.
const (
	StepUpload   = "upload"
	StepExtract  = "extract"
	StepAnalyze  = "analyze"
	StepVerify   = "verify"
	StepCleanup  = "cleanup"
	StepComplete = "complete"
)

// ProgressEvent is one frame of pipeline progress.
type ProgressEvent struct {
	Step                      string `json:"step"`
	Progress                  int    `json:"progress"`
	Message                   string `json:"message"`
	EstimatedSecondsRemaining *int   `json:"estimatedSecondsRemaining,omitempty"`
	Timestamp                 string `json:"timestamp"`
}

// Reporter emits progress events with two guarantees the UI relies on:
// the percentage never goes backwards and the remaining-time estimate never
// goes up. A nil emit function makes every call a no-op.
type Reporter struct {
	emit    func(ProgressEvent)
	now     func() time.Time
	started time.Time

	lastPercent int
	lastETA     int
}

// NewReporter starts the progress clock at the time of the call.
func NewReporter(emit func(ProgressEvent)) *Reporter {
	return newReporter(emit, time.Now)
}

func newReporter(emit func(ProgressEvent), now func() time.Time) *Reporter {
	return &Reporter{
		emit:    emit,
		now:     now,
		started: now(),
		lastETA: -1,
	}
}

// Report emits one frame. The percentage is clamped to [lastPercent, 100];
// the ETA is extrapolated from elapsed time and clamped so it never rises.
// The completed frame (100%) always reports zero seconds remaining.
func (r *Reporter) Report(step string, percent int, message string) {
	if r.emit == nil {
		return
	}

	if percent < r.lastPercent {
		percent = r.lastPercent
	}
	if percent > 100 {
		percent = 100
	}
	r.lastPercent = percent

	event := ProgressEvent{
		Step:      step,
		Progress:  percent,
		Message:   message,
		Timestamp: r.now().UTC().Format(time.RFC3339),
	}
	if eta := r.estimate(percent); eta >= 0 {
		event.EstimatedSecondsRemaining = &eta
	}

	r.emit(event)
}

func (r *Reporter) estimate(percent int) int {
	if percent >= 100 {
		r.lastETA = 0
		return 0
	}
	if percent <= 0 {
		return -1
	}

	elapsed := r.now().Sub(r.started).Seconds()
	eta := int(elapsed * float64(100-percent) / float64(percent))
	if r.lastETA >= 0 && eta > r.lastETA {
		eta = r.lastETA
	}
	r.lastETA = eta
	return eta
}
