package urh

import (
	"sync"

	"github.com/chewxy/math32"
)

// Streams is the lazily-computed set of derived arrays the
// preprocessor (component B) produces from an IQ Buffer: magnitude,
// unwrapped phase, and instantaneous frequency. Each array is computed
// at most once (sync.Once-guarded) and cached, so repeated reads never
// show visible side effects and never redo the work, per spec
// section 9's "forbids visible side effects from re-reading."
//
// Streams is single-threaded per call the way the rest of the
// pipeline is (spec section 5); sync.Once here guards against a
// stage calling e.g. Magnitude() more than once, not against
// concurrent access from multiple goroutines.
type Streams struct {
	buf Buffer

	magOnce sync.Once
	mag     []float32

	phaseOnce sync.Once
	phase     []float32

	freqOnce sync.Once
	freq     []float32
}

// NewStreams wraps an IQ Buffer for lazy derived-stream computation.
func NewStreams(buf Buffer) *Streams {
	return &Streams{buf: buf}
}

// Magnitude returns m[n] = sqrt(I[n]^2 + Q[n]^2) for every sample.
func (s *Streams) Magnitude() []float32 {
	s.magOnce.Do(func() {
		s.mag = make([]float32, len(s.buf.Samples))
		for i, samp := range s.buf.Samples {
			s.mag[i] = math32.Sqrt(samp.I*samp.I + samp.Q*samp.Q)
		}
	})
	return s.mag
}

// Phase returns the unwrapped instantaneous phase phi[n] = atan2(Q,I),
// corrected so that consecutive samples never jump by more than pi.
func (s *Streams) Phase() []float32 {
	s.phaseOnce.Do(func() {
		n := len(s.buf.Samples)
		s.phase = make([]float32, n)
		if n == 0 {
			return
		}
		prevRaw := math32.Atan2(s.buf.Samples[0].Q, s.buf.Samples[0].I)
		s.phase[0] = prevRaw
		var accum float32
		for i := 1; i < n; i++ {
			raw := math32.Atan2(s.buf.Samples[i].Q, s.buf.Samples[i].I)
			delta := raw - prevRaw
			for delta > math32.Pi {
				delta -= 2 * math32.Pi
			}
			for delta < -math32.Pi {
				delta += 2 * math32.Pi
			}
			accum += delta
			s.phase[i] = s.phase[0] + accum
			prevRaw = raw
		}
	})
	return s.phase
}

// Frequency returns f[n] = phi[n+1] - phi[n] on [0, N-1), the
// instantaneous frequency. It is computed as the phase of each
// sample's product with the conjugate of its predecessor
// (cmplx.Phase(z[n]*conj(z[n-1]))) rather than by differencing the
// unwrapped Phase() array directly: the two are mathematically
// equivalent but the conjugate-product form (the formula
// hztools-go-fm's FM demodulator uses) needs no running phase
// accumulator and can't drift.
func (s *Streams) Frequency() []float32 {
	s.freqOnce.Do(func() {
		n := len(s.buf.Samples)
		if n < 2 {
			s.freq = []float32{}
			return
		}
		s.freq = make([]float32, n-1)
		for i := 1; i < n; i++ {
			a, b := s.buf.Samples[i], s.buf.Samples[i-1]
			// (a) * conj(b) = (aI*bI + aQ*bQ) + j(aQ*bI - aI*bQ)
			re := a.I*b.I + a.Q*b.Q
			im := a.Q*b.I - a.I*b.Q
			s.freq[i-1] = math32.Atan2(im, re)
		}
	})
	return s.freq
}
