package rag

import (
	"errors"
	"fmt"
)

var errNoGenerator = errors.New("generation model not configured")

// Kind classifies a turn failure so the orchestrator can decide between
// degrading and aborting.
type Kind int

const (
	// KindRetrieval marks similarity index failures. An empty result set is
	// not an error.
	KindRetrieval Kind = iota + 1
	// KindGeneration marks model call failures (auth, timeout, rate limit).
	KindGeneration
	// KindTransport marks client disconnects and malformed inbound frames.
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindRetrieval:
		return "retrieval"
	case KindGeneration:
		return "generation"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// Error tags an underlying failure with its kind.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func retrievalError(err error) *Error {
	return &Error{Kind: KindRetrieval, Err: err}
}

func generationError(err error) *Error {
	return &Error{Kind: KindGeneration, Err: err}
}
