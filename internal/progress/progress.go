package progress

import "time"

// Stage identifies the state of a generation attempt.
type Stage string

const (
	StageIdle       Stage = "idle"
	StageRequesting Stage = "requesting"
	StageSucceeded  Stage = "succeeded"
	StageFallenBack Stage = "fallen_back"
	StageRendered   Stage = "rendered"
)

// Event carries an attempt state change to the renderer.
type Event struct {
	Stage     Stage
	AttemptID string
	Message   string
	Percent   float64 // 0.0–1.0
	Elapsed   time.Duration
	Error     error
	// Source is the response source label, set once the attempt has an outcome.
	Source string
}

// Callback is the function signature for progress event handlers.
type Callback func(Event)

// NopCallback is a no-op progress callback for tests and silent mode.
func NopCallback(Event) {}

// NewEvent creates an Event with common fields populated.
func NewEvent(stage Stage, msg string, pct float64, start time.Time) Event {
	return Event{
		Stage:   stage,
		Message: msg,
		Percent: pct,
		Elapsed: time.Since(start),
	}
}

// Terminal reports whether the stage ends the remote part of an attempt.
func (s Stage) Terminal() bool {
	return s == StageSucceeded || s == StageFallenBack || s == StageRendered
}
