package tally

// Feedback is the semantic tag the engine emits once per processed command.
// A sound or vibration collaborator may map tags to audible or haptic
// feedback; the engine does not depend on whether any feedback fires.
type Feedback string

// The feedback tags, one per command family.
const (
	FeedbackNumber   Feedback = "number"
	FeedbackOperator Feedback = "operator"
	FeedbackEquals   Feedback = "equals"
	FeedbackClear    Feedback = "clear"
	FeedbackClick    Feedback = "click"
)

// FeedbackFunc receives the semantic tag for each processed command.
type FeedbackFunc func(Feedback)
