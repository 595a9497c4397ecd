package gem

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource abstracts the draws made by the sampler and by Apply.
// The engine never samples; it only averages.
type RandomSource interface {
	Float64() float64 // [0, 1)
}

// cryptoRNG backs live offers. It falls back to the runtime generator only
// if the OS source fails.
type cryptoRNG struct{}

func (cryptoRNG) Float64() float64 {
	var b [8]byte
	if _, err := cryptoRand.Read(b[:]); err != nil {
		return rand.Float64()
	}
	// top 53 bits fill the mantissa exactly
	return float64(binary.LittleEndian.Uint64(b[:])>>11) / (1 << 53)
}

// DefaultRNG is the source used when a caller passes nil.
func DefaultRNG() RandomSource { return cryptoRNG{} }

type pcgRNG struct{ *rand.Rand }

// NewSeededRNG returns a PCG stream; equal seeds replay equal offers.
func NewSeededRNG(seed uint64) RandomSource {
	return pcgRNG{rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// pickUniform returns an index in [0, n).
func pickUniform(n int, rng RandomSource) int {
	i := int(rng.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// pickWeighted returns an index with probability proportional to ws[i],
// skipping non-positive weights, or -1 when nothing is positive.
func pickWeighted(ws []float64, rng RandomSource) int {
	var total float64
	for _, w := range ws {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}
	r := rng.Float64() * total
	last := -1
	for i, w := range ws {
		if w <= 0 {
			continue
		}
		if r < w {
			return i
		}
		r -= w
		last = i
	}
	// float drift past the final bucket
	return last
}
