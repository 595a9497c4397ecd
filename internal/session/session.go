package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/xtding233/gemcalc/internal/gem"
	"github.com/xtding233/gemcalc/internal/logger"
)

var (
	ErrNoAttempts   = errors.New("no processing attempts left")
	ErrNoTokens     = errors.New("no redraw tokens left")
	ErrRedrawLocked = errors.New("redraw is locked until the first attempt")
)

// Session replays processing of one gem: it holds the state, the remaining
// budget and the four effects currently offered.
type Session struct {
	ID       uuid.UUID
	State    gem.State
	Attempts int
	Tokens   int
	Rolled   bool // at least one attempt taken; unlocks redraw

	catalog gem.Catalog
	offer   gem.Offer
	rng     gem.RandomSource
	log     *logger.Logger
}

// New starts a session and draws the first offer.
func New(c gem.Catalog, s gem.State, b gem.Budget, rng gem.RandomSource, log *logger.Logger) (*Session, error) {
	if err := s.ValidateEntry(); err != nil {
		return nil, err
	}
	if b.Attempts < 0 || b.Tokens < 0 {
		return nil, fmt.Errorf("%w: attempts=%d tokens=%d", gem.ErrInvalidBudget, b.Attempts, b.Tokens)
	}
	if rng == nil {
		rng = gem.DefaultRNG()
	}
	id := uuid.New()
	ss := &Session{
		ID:       id,
		State:    s,
		Attempts: b.Attempts,
		Tokens:   b.Tokens,
		Rolled:   !b.Locked,
		catalog:  c,
		rng:      rng,
		log:      logger.OrNop(log).With("session_id", id.String()),
	}
	if err := ss.redrawOffer(); err != nil {
		return nil, err
	}
	return ss, nil
}

// Fresh starts a new gem with a rarity's budget. The first offer cannot be
// redrawn.
func Fresh(c gem.Catalog, rarity gem.Budget, rng gem.RandomSource, log *logger.Logger) (*Session, error) {
	rarity.Locked = true
	return New(c, gem.FreshState(), rarity, rng, log)
}

// Budget is the remaining budget in the form the engine takes.
func (s *Session) Budget() gem.Budget {
	return gem.Budget{Attempts: s.Attempts, Tokens: s.Tokens, Locked: !s.Rolled}
}

// Offer returns the effects currently on screen.
func (s *Session) Offer() gem.Offer { return s.offer }

// SetOffer replaces the shown effects, e.g. with what the game client shows.
func (s *Session) SetOffer(o gem.Offer) error {
	for _, id := range o {
		if _, _, err := s.catalog.Lookup(id); err != nil {
			return err
		}
	}
	s.offer = o
	return nil
}

// Process spends one attempt: one of the four shown effects is applied,
// each with equal chance. It returns the effect that landed.
func (s *Session) Process() (gem.EffectID, error) {
	if s.Attempts <= 0 {
		return "", ErrNoAttempts
	}
	i := int(s.rng.Float64() * gem.OfferSize)
	if i >= gem.OfferSize {
		i = gem.OfferSize - 1
	}
	id := s.offer[i]
	if err := s.Apply(id); err != nil {
		return "", err
	}
	return id, nil
}

// Apply spends one attempt on a known effect, as reported by the game.
func (s *Session) Apply(id gem.EffectID) error {
	if s.Attempts <= 0 {
		return ErrNoAttempts
	}
	next, gained, err := gem.ApplyChosen(s.catalog, s.State, id, s.rng)
	if err != nil {
		return err
	}
	s.State = next
	s.Attempts--
	s.Tokens += gained
	s.Rolled = true
	s.log.Debug("effect applied", "effect", id, "state", next.String(), "attempts", s.Attempts, "tokens", s.Tokens)
	if s.Attempts == 0 {
		return nil
	}
	return s.redrawOffer()
}

// Redraw spends a token to replace the offer without using an attempt.
func (s *Session) Redraw() error {
	if !s.Rolled {
		return ErrRedrawLocked
	}
	if s.Tokens <= 0 {
		return ErrNoTokens
	}
	s.Tokens--
	s.log.Debug("offer redrawn", "tokens", s.Tokens)
	return s.redrawOffer()
}

// Done reports whether goal is reached or the attempts are used up.
func (s *Session) Done(goal gem.Goal) bool {
	return goal.Reached(s.State) || s.Attempts <= 0
}

func (s *Session) redrawOffer() error {
	o, err := gem.SampleNextOffer(s.catalog, s.State, s.Attempts, s.rng)
	if err != nil {
		return err
	}
	s.offer = o
	return nil
}
