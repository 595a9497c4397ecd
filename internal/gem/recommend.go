package gem

import "fmt"

// Budget is what a gem has left to spend.
type Budget struct {
	Attempts int  `yaml:"attempts"`
	Tokens   int  `yaml:"tokens"`
	Locked   bool `yaml:"locked"` // true until the first attempt is taken
}

// Action is what the recommendation says to do with the current offer.
type Action string

const (
	ActionRoll   Action = "roll"
	ActionRedraw Action = "redraw"
)

// Recommendation compares the three numbers a player looks at.
type Recommendation struct {
	RollNow     float64 // take one of the four shown effects
	RedrawNow   float64 // spend a token on a new offer; 0 when not allowed
	FromScratch float64 // expectation over a yet unseen offer
	CanRedraw   bool
	Action      Action
}

// Best is the value of the recommended action.
func (r Recommendation) Best() float64 {
	if r.Action == ActionRedraw {
		return r.RedrawNow
	}
	return r.RollNow
}

// Recommend evaluates the shown offer against redrawing it. It never
// changes state; applying the decision is up to the caller.
func (e *Engine) Recommend(s State, b Budget, shown Offer) (Recommendation, error) {
	return e.recommend(s, b, shown, true)
}

// RecommendInPlay is Recommend for a state reached by processing, where a
// change may have left both slots on the same category.
func (e *Engine) RecommendInPlay(s State, b Budget, shown Offer) (Recommendation, error) {
	return e.recommend(s, b, shown, false)
}

func (e *Engine) recommend(s State, b Budget, shown Offer, entry bool) (Recommendation, error) {
	var r Recommendation
	var err error
	if r.RollNow, err = e.evaluateOffer(s, b.Attempts, b.Tokens, shown, entry); err != nil {
		return Recommendation{}, fmt.Errorf("evaluate offer: %w", err)
	}
	// evaluateOffer validated the inputs
	r.FromScratch = e.value(s, b.Attempts, b.Tokens, b.Locked)
	r.CanRedraw = b.Tokens > 0 && !b.Locked
	if r.CanRedraw {
		if r.RedrawNow, err = e.redrawSpent(s, b.Attempts, b.Tokens, entry); err != nil {
			return Recommendation{}, fmt.Errorf("compute redraw: %w", err)
		}
	}
	r.Action = ActionRoll
	if r.CanRedraw && r.RedrawNow > r.RollNow {
		r.Action = ActionRedraw
	}
	return r, nil
}
