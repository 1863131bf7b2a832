package generator

import "errors"

var (
	// ErrInvalidNamespace is returned when UUID v3/v5 lacks a well-formed namespace.
	ErrInvalidNamespace = errors.New("invalid namespace")
	// ErrMissingName is returned when UUID v3/v5 lacks a name.
	ErrMissingName = errors.New("missing name")
	// ErrInvalidLength is returned for a NanoID or CUID2 length outside its bound.
	ErrInvalidLength = errors.New("invalid length")
	// ErrInvalidAlphabet is returned for an unusable NanoID alphabet.
	ErrInvalidAlphabet = errors.New("invalid alphabet")
	// ErrUnsupportedType is returned for an unknown type or version.
	ErrUnsupportedType = errors.New("unsupported id type")
	// ErrInvalidFormat is returned for an unknown textual format.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrInvalidCount is returned when a batch asks for fewer than one id.
	ErrInvalidCount = errors.New("invalid count")
	// ErrRandomSource is returned when the random source cannot be read.
	ErrRandomSource = errors.New("random source failure")
	// ErrClockRegression marks a backwards clock step seen while generating
	// UUID v1. It is logged, never returned: the clock sequence absorbs it.
	ErrClockRegression = errors.New("clock regression")
)

// IsInvalidArgument reports whether err was caused by the caller's spec
// rather than by the engine.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidNamespace) ||
		errors.Is(err, ErrMissingName) ||
		errors.Is(err, ErrInvalidLength) ||
		errors.Is(err, ErrInvalidAlphabet) ||
		errors.Is(err, ErrUnsupportedType) ||
		errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, ErrInvalidCount)
}
