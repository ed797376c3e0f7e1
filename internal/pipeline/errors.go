package pipeline

import "fmt"

type FailureCode string

const (
	TranscriptionFailed FailureCode = "TRANSCRIPTION_FAILED"
	GenerationFailed    FailureCode = "GENERATION_FAILED"
	SynthesisFailed     FailureCode = "SYNTHESIS_FAILED"
	DeliveryFailed      FailureCode = "DELIVERY_FAILED"
)

// Error labels a pipeline failure with the step that produced it.
type Error struct {
	Code FailureCode
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("pipeline: %s", e.Code)
	}
	return fmt.Sprintf("pipeline: %s: %v", e.Code, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func failure(code FailureCode, err error) *Error {
	return &Error{Code: code, Err: err}
}
