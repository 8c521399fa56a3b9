package urh

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the sentinel every bad_override error wraps,
// so callers can test errors.Is(err, ErrInvalidArgument) without
// caring which specific override was rejected.
var ErrInvalidArgument = errors.New("urh: invalid argument")

// ErrInvalidModulation is returned (wrapped) by AnalyzeIQ when a
// WithModulation value is not one of ASK, FSK, or PSK.
var ErrInvalidModulation = fmt.Errorf("urh: invalid modulation override: %w", ErrInvalidArgument)

// ErrInvalidNoise is returned (wrapped) by AnalyzeIQ when a WithNoise
// value is not strictly positive.
var ErrInvalidNoise = fmt.Errorf("urh: invalid noise override: %w", ErrInvalidArgument)

// DecoderErrorKind names one of the three decoder failure modes spec
// section 6 reserves for Decoder implementations (file-format codecs
// are out of scope for this package; it only defines the interface
// and this error shape).
type DecoderErrorKind string

const (
	DecoderErrorUnknownFormat      DecoderErrorKind = "unknown_format"
	DecoderErrorCorruptHeader      DecoderErrorKind = "corrupt_header"
	DecoderErrorUnsupportedVariant DecoderErrorKind = "unsupported_variant"
)

// DecoderError is the error shape a Decoder implementation should
// return so AnalyzeFromSource can report which of the three kinds of
// decode failure occurred.
type DecoderError struct {
	Kind    DecoderErrorKind
	Source  string
	Wrapped error
}

func (e *DecoderError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("urh: decoder: %s (%s): %v", e.Source, e.Kind, e.Wrapped)
	}
	return fmt.Sprintf("urh: decoder: %s (%s)", e.Source, e.Kind)
}

func (e *DecoderError) Unwrap() error { return e.Wrapped }
