package gem

import (
	"fmt"
	"strings"
)

// OfferSize is how many effects a single attempt presents.
const OfferSize = 4

// Offer is the set of effects currently on screen.
type Offer [OfferSize]EffectID

// Distinct reports whether all four entries differ.
func (o Offer) Distinct() bool {
	for i := 0; i < len(o); i++ {
		for j := i + 1; j < len(o); j++ {
			if o[i] == o[j] {
				return false
			}
		}
	}
	return true
}

func (o Offer) String() string {
	parts := make([]string, len(o))
	for i, id := range o {
		parts[i] = string(id)
	}
	return strings.Join(parts, ",")
}

// ParseOffer reads a comma separated list of exactly four catalog IDs.
func ParseOffer(c Catalog, s string) (Offer, error) {
	var o Offer
	parts := strings.Split(s, ",")
	if len(parts) != OfferSize {
		return o, fmt.Errorf("%w: offer needs %d ids, got %d", ErrUnknownEffect, OfferSize, len(parts))
	}
	for i, p := range parts {
		id := EffectID(strings.TrimSpace(p))
		if _, _, err := c.Lookup(id); err != nil {
			return o, err
		}
		o[i] = id
	}
	return o, nil
}

// SampleOffer draws four effects without replacement, each draw
// proportional to eligible weight among those not yet chosen.
//
// With fewer than four eligible effects the offer is padded: first with any
// remaining eligible effect in catalog order, then by repeating the last
// pick. Callers can detect this with Offer.Distinct.
func SampleOffer(c Catalog, s State, attemptsLeft int, rng RandomSource) (Offer, error) {
	if err := s.ValidateEntry(); err != nil {
		return Offer{}, err
	}
	return sampleOffer(c, s, attemptsLeft, rng)
}

// SampleNextOffer is SampleOffer for a state reached by processing; both
// slots may hold the same category there.
func SampleNextOffer(c Catalog, s State, attemptsLeft int, rng RandomSource) (Offer, error) {
	if err := s.Validate(); err != nil {
		return Offer{}, err
	}
	return sampleOffer(c, s, attemptsLeft, rng)
}

func sampleOffer(c Catalog, s State, attemptsLeft int, rng RandomSource) (Offer, error) {
	var o Offer
	if attemptsLeft < 0 {
		return o, fmt.Errorf("%w: attempts=%d must be >= 0", ErrInvalidBudget, attemptsLeft)
	}
	if len(c) == 0 {
		return o, fmt.Errorf("%w: empty catalog", ErrUnknownEffect)
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	weights := c.EligibleWeights(s, attemptsLeft)
	remaining := append([]float64(nil), weights...)

	picks := make([]int, 0, OfferSize)
	for len(picks) < OfferSize {
		i := pickWeighted(remaining, rng)
		if i < 0 {
			break
		}
		picks = append(picks, i)
		remaining[i] = 0
	}
	for i, w := range weights {
		if len(picks) == OfferSize {
			break
		}
		if w > 0 && !containsIndex(picks, i) {
			picks = append(picks, i)
		}
	}
	if len(picks) == 0 {
		// nothing eligible at all; fall back to the head of the table
		picks = append(picks, 0)
	}
	for len(picks) < OfferSize {
		picks = append(picks, picks[len(picks)-1])
	}
	for k, i := range picks {
		o[k] = c[i].ID
	}
	return o, nil
}

func containsIndex(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
