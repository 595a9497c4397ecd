package gem

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidState  = errors.New("invalid gem state")
	ErrInvalidBudget = errors.New("invalid attempt/token budget")
	ErrInvalidGoal   = errors.New("invalid goal configuration")
	ErrUnknownEffect = errors.New("unknown effect id")
)

var validate = validator.New()

// MarshalText lets categories round-trip through YAML and flags by name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	v, err := ParseCategory(strings.TrimSpace(string(b)))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Validate rejects states outside the modelled ranges. Both slots holding
// the same category passes here; a change effect can produce it mid-gem.
func (s State) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidState, describe(err))
	}
	if s.CostAdj%CostAdjStep != 0 {
		return fmt.Errorf("%w: cost_adj=%d is not a multiple of %d", ErrInvalidState, s.CostAdj, CostAdjStep)
	}
	return nil
}

// ValidateEntry is Validate for a gem as the player enters it, which must
// hold two different categories.
func (s State) ValidateEntry() error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.Slot1 == s.Slot2 {
		return fmt.Errorf("%w: both slots hold %s", ErrInvalidState, s.Slot1)
	}
	return nil
}

// Limits bounds the inputs an engine accepts so recursion depth stays small.
type Limits struct {
	MaxAttempts int `yaml:"max_attempts" validate:"min=1"`
	MaxTokens   int `yaml:"max_tokens" validate:"min=0"`
}

// DefaultLimits comfortably covers the largest rarity budget (9 attempts, 2 tokens).
func DefaultLimits() Limits {
	return Limits{MaxAttempts: 20, MaxTokens: 20}
}

func (l Limits) check(attempts, tokens int) error {
	if attempts < 0 || tokens < 0 {
		return fmt.Errorf("%w: attempts=%d tokens=%d must be >= 0", ErrInvalidBudget, attempts, tokens)
	}
	if attempts > l.MaxAttempts {
		return fmt.Errorf("%w: attempts=%d exceeds limit %d", ErrInvalidBudget, attempts, l.MaxAttempts)
	}
	if tokens > l.MaxTokens {
		return fmt.Errorf("%w: tokens=%d exceeds limit %d", ErrInvalidBudget, tokens, l.MaxTokens)
	}
	return nil
}

// describe flattens validator output into "field rule" pairs.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s (got %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed %s (got %v)", fe.Field(), fe.Tag(), fe.Value()))
		}
	}
	return strings.Join(parts, "; ")
}
