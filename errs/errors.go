// Package errs defines the sentinel errors returned by the fleece encoder.
//
// All errors are recoverable by abandoning the in-progress document; none
// are process-fatal. Callers match them with errors.Is since call sites
// wrap them with additional context.
package errs

import "errors"

var (
	// ErrCollectionFull indicates a value or key write on a scope whose
	// declared count is already exhausted.
	ErrCollectionFull = errors.New("collection already has its declared number of values")

	// ErrKeyExpected indicates a value write on a dictionary scope that is
	// still waiting for its key.
	ErrKeyExpected = errors.New("dictionary key expected before value")

	// ErrValueExpected indicates a WriteKey call while the previous key's
	// value is still outstanding.
	ErrValueExpected = errors.New("dictionary value expected before next key")

	// ErrNotDictionary indicates a WriteKey call on a scope that is not a
	// dictionary.
	ErrNotDictionary = errors.New("key written outside a dictionary")

	// ErrPointerOutOfRange indicates a relative pointer whose delta exceeds
	// what the scope's fixed slot width can encode. The width cannot be
	// renegotiated mid-collection, so the write fails.
	ErrPointerOutOfRange = errors.New("pointer delta exceeds slot width range")

	// ErrIncompleteCollection indicates a scope ended with unfilled slots.
	ErrIncompleteCollection = errors.New("collection ended with unwritten values")

	// ErrInvalidValue indicates a value with no representation in the
	// format, such as a NaN float.
	ErrInvalidValue = errors.New("value cannot be represented")

	// ErrInvalidReset indicates a Reset on a root scope that still has live
	// child scopes.
	ErrInvalidReset = errors.New("reset requires an idle root scope")

	// ErrInvalidCount indicates a negative declared collection count.
	ErrInvalidCount = errors.New("invalid collection count")

	// ErrEncoderFinished indicates use of an encoder after Finish released
	// its buffer.
	ErrEncoderFinished = errors.New("encoder already finished")
)
