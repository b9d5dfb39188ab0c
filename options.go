package tally

import "time"

// Option defines a function that configures an Engine.
type Option func(*Engine)

// WithHistory attaches a history store. Completed evaluations are recorded
// there when the history setting is enabled.
func WithHistory(h *History) Option {
	return func(e *Engine) {
		e.history = h
	}
}

// WithSettings attaches a settings store. The engine consults it for the
// history toggle and routes ToggleSetting through it.
func WithSettings(s *Settings) Option {
	return func(e *Engine) {
		e.settings = s
	}
}

// WithFeedback sets the collaborator receiving a semantic feedback tag per
// command.
func WithFeedback(f FeedbackFunc) Option {
	return func(e *Engine) {
		e.feedback = f
	}
}

// WithNowFunc sets the time source used for history timestamps.
// This is primarily useful for testing with deterministic timestamps.
func WithNowFunc(now NowFunc) Option {
	return func(e *Engine) {
		e.nowFunc = now
	}
}

// WithClearDelay sets how long the error marker stays visible before the
// automatic reset. This is primarily useful for testing.
func WithClearDelay(d time.Duration) Option {
	return func(e *Engine) {
		e.clearDelay = d
	}
}
