package urh

import (
	"fmt"
)

// InputKind tags which of the three shapes an Input buffer carries,
// per the spec's IqInput variant design note (section 9): Complex,
// InterleavedReal, or ScalarReal.
type InputKind int

const (
	KindComplex InputKind = iota
	KindInterleavedReal
	KindScalarReal
)

// Input is the tagged union the IQ Container (component A) accepts at
// the boundary. Exactly one of Complex or Real is populated,
// according to Kind.
type Input struct {
	Kind    InputKind
	Complex []complex128 // KindComplex: one sample per entry
	Real    []float32    // KindInterleavedReal: I,Q,I,Q,...; KindScalarReal: already-demodulated values
}

// FromComplex builds an Input from a sequence of complex IQ samples.
func FromComplex(samples []complex128) Input {
	return Input{Kind: KindComplex, Complex: samples}
}

// FromInterleaved builds an Input from a real-valued buffer of length
// 2N, alternating I and Q.
func FromInterleaved(samples []float32) Input {
	return Input{Kind: KindInterleavedReal, Real: samples}
}

// FromScalar builds an Input from an already-demodulated real-valued
// buffer of length N. Per spec section 4.A, the pipeline shortcuts
// straight to the Demodulator using this buffer as a demod stream,
// assuming ASK unless the caller overrides the modulation.
func FromScalar(samples []float32) Input {
	return Input{Kind: KindScalarReal, Real: samples}
}

// Sample is one time-indexed IQ pair, stored as float32 to match the
// N*2*4 byte memory-footprint note in spec section 5.
type Sample struct {
	I, Q float32
}

// Buffer is the normalized shape-(N,2) float buffer every downstream
// stage operates on.
type Buffer struct {
	Samples []Sample
}

func (b Buffer) Len() int { return len(b.Samples) }

// Normalize converts Input into the pipeline's canonical Buffer. When
// the input is KindScalarReal, realOnly is true and Buffer is left
// empty: the caller should treat scalar as a demod stream directly
// (component A's documented shortcut) rather than run the IQ
// preprocessor over it.
func (in Input) Normalize() (buf Buffer, scalar []float32, realOnly bool, err error) {
	switch in.Kind {
	case KindComplex:
		samples := make([]Sample, len(in.Complex))
		for i, c := range in.Complex {
			samples[i] = Sample{I: float32(real(c)), Q: float32(imag(c))}
		}
		return Buffer{Samples: samples}, nil, false, nil

	case KindInterleavedReal:
		if len(in.Real)%2 != 0 {
			return Buffer{}, nil, false, fmt.Errorf("urh: interleaved-real input must have even length, got %d", len(in.Real))
		}
		n := len(in.Real) / 2
		samples := make([]Sample, n)
		for i := 0; i < n; i++ {
			samples[i] = Sample{I: in.Real[2*i], Q: in.Real[2*i+1]}
		}
		return Buffer{Samples: samples}, nil, false, nil

	case KindScalarReal:
		return Buffer{}, in.Real, true, nil

	default:
		return Buffer{}, nil, false, fmt.Errorf("urh: unknown input kind %d", in.Kind)
	}
}
