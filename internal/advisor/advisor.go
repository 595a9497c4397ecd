package advisor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/xtding233/gemcalc/internal/config"
	"github.com/xtding233/gemcalc/internal/gem"
	"github.com/xtding233/gemcalc/internal/logger"
	"github.com/xtding233/gemcalc/internal/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("gemcalc.advisor")

// Advice is the bottom line of a report.
type Advice string

const (
	AdviceRoll   Advice = "roll"
	AdviceReroll Advice = "reroll"
	AdviceStop   Advice = "stop"
)

// Request is one question about a gem in progress.
type Request struct {
	State  gem.State
	Budget gem.Budget
	Rarity string     // picks the fresh-gem budget to compare against
	Offer  *gem.Offer // the four shown effects; nil when not known yet
	Goal   gem.Goal
}

// GoalReport holds the numbers for one goal.
type GoalReport struct {
	Key string
	gem.Recommendation
	Optimal     float64 // max(RollNow, RedrawNow)
	FreshGem    float64 // same goal on a brand new gem of the request's rarity
	CostCurrent float64 // expected gold to finish from here
	CostNew     float64 // expected gold starting over
	Advice      Advice
}

// Report is the answer to a Request. Primary is the requested goal; Sums
// are the two standard sum thresholds.
type Report struct {
	State   gem.State
	Budget  gem.Budget
	Rarity  string
	Primary GoalReport
	Sums    []GoalReport
	Took    time.Duration
}

// Advice is the primary goal's advice.
func (r Report) Advice() Advice { return r.Primary.Advice }

// slot serializes access to one engine; engines are not safe for concurrent use.
type slot struct {
	mu     sync.Mutex
	engine *gem.Engine
}

// Advisor answers requests against cached engines, one per goal.
type Advisor struct {
	log     *logger.Logger
	metrics *metrics.Metrics

	mu       sync.Mutex
	settings config.Settings
	engines  map[string]*slot
}

func New(settings config.Settings, log *logger.Logger, m *metrics.Metrics) *Advisor {
	return &Advisor{
		log:      logger.OrNop(log),
		metrics:  m,
		settings: settings,
		engines:  make(map[string]*slot),
	}
}

// Settings returns the settings engines are currently built from.
func (a *Advisor) Settings() config.Settings {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.settings
}

// SetSettings swaps the settings and drops every cached engine.
func (a *Advisor) SetSettings(s config.Settings) {
	a.mu.Lock()
	a.settings = s
	a.mu.Unlock()
	a.Invalidate()
}

// Invalidate discards cached engines; the next request rebuilds them.
func (a *Advisor) Invalidate() {
	a.mu.Lock()
	n := len(a.engines)
	a.engines = make(map[string]*slot)
	a.mu.Unlock()
	a.metrics.ObserveInvalidation()
	a.log.Debug("engine cache invalidated", "dropped", n)
}

// CachedEngines is the number of engines currently held.
func (a *Advisor) CachedEngines() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.engines)
}

func (a *Advisor) slotFor(g gem.Goal) (*slot, config.Settings, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	key := g.Key()
	if sl, ok := a.engines[key]; ok {
		return sl, a.settings, nil
	}
	e, err := gem.NewEngine(g,
		gem.WithCatalog(a.settings.Catalog),
		gem.WithPruning(a.settings.Pruning),
		gem.WithLimits(a.settings.Limits),
	)
	if err != nil {
		return nil, a.settings, err
	}
	sl := &slot{engine: e}
	a.engines[key] = sl
	return sl, a.settings, nil
}

// Advise evaluates the request's goal and both sum thresholds concurrently.
func (a *Advisor) Advise(ctx context.Context, req Request) (Report, error) {
	ctx, span := tracer.Start(ctx, "advisor.Advise")
	defer span.End()
	start := time.Now()

	if req.Goal == nil {
		err := fmt.Errorf("%w: no goal", gem.ErrInvalidGoal)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Report{}, err
	}
	span.SetAttributes(
		attribute.String("goal", req.Goal.Key()),
		attribute.String("rarity", req.Rarity),
		attribute.Int("attempts", req.Budget.Attempts),
		attribute.Int("tokens", req.Budget.Tokens),
		attribute.Bool("locked", req.Budget.Locked),
		attribute.Bool("offer_known", req.Offer != nil),
	)

	if err := req.State.ValidateEntry(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Report{}, err
	}
	fresh, err := a.Settings().Rarity(req.Rarity)
	if err != nil {
		err = fmt.Errorf("%w: %v", gem.ErrInvalidBudget, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Report{}, err
	}

	goals := []gem.Goal{
		req.Goal,
		gem.SumGoal{Threshold: gem.SumThresholdLow},
		gem.SumGoal{Threshold: gem.SumThresholdHigh},
	}
	reports := make([]GoalReport, len(goals))

	g, gctx := errgroup.WithContext(ctx)
	for i, goal := range goals {
		g.Go(func() error {
			r, err := a.evaluate(gctx, goal, req, fresh)
			if err != nil {
				return fmt.Errorf("goal %s: %w", goal.Key(), err)
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Report{}, err
	}

	rep := Report{
		State:   req.State,
		Budget:  req.Budget,
		Rarity:  req.Rarity,
		Primary: reports[0],
		Sums:    reports[1:],
		Took:    time.Since(start),
	}
	a.metrics.ObserveAdvise(string(rep.Advice()), rep.Took)
	a.log.Info("advise",
		"goal", rep.Primary.Key,
		"state", req.State.String(),
		"optimal", rep.Primary.Optimal,
		"advice", rep.Advice(),
		"took", rep.Took,
	)
	span.SetAttributes(attribute.String("advice", string(rep.Advice())))
	span.SetStatus(codes.Ok, "")
	return rep, nil
}

// evaluate runs one goal. The slot lock covers every engine call, so the
// same goal requested twice in one Advise simply waits its turn.
func (a *Advisor) evaluate(ctx context.Context, goal gem.Goal, req Request, fresh gem.Budget) (GoalReport, error) {
	_, span := tracer.Start(ctx, "advisor.evaluate",
		trace.WithAttributes(attribute.String("goal", goal.Key())))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return GoalReport{}, err
	}
	sl, settings, err := a.slotFor(goal)
	if err != nil {
		return GoalReport{}, err
	}

	sl.mu.Lock()
	defer sl.mu.Unlock()
	e := sl.engine

	out := GoalReport{Key: goal.Key()}
	if req.Offer != nil {
		out.Recommendation, err = e.Recommend(req.State, req.Budget, *req.Offer)
		if err != nil {
			return GoalReport{}, err
		}
	} else {
		// nothing shown yet: rolling means taking whatever comes
		p, err := e.Compute(req.State, req.Budget.Attempts, req.Budget.Tokens, req.Budget.Locked)
		if err != nil {
			return GoalReport{}, err
		}
		out.Recommendation = gem.Recommendation{RollNow: p, FromScratch: p, Action: gem.ActionRoll}
	}
	out.Optimal = max(out.RollNow, out.RedrawNow)

	out.FreshGem, err = e.Compute(gem.FreshState(), fresh.Attempts, fresh.Tokens, true)
	if err != nil {
		return GoalReport{}, fmt.Errorf("fresh gem: %w", err)
	}

	out.CostCurrent = settings.Pricing.ExpectedCost(out.Optimal, req.Budget.Attempts, req.State.CostAdj)
	out.CostNew = settings.Pricing.ExpectedCost(out.FreshGem, fresh.Attempts, 0)
	out.Advice = decide(out)

	a.metrics.ObserveEngine(out.Key, e.Stats())
	span.SetAttributes(
		attribute.Float64("optimal", out.Optimal),
		attribute.Float64("fresh", out.FreshGem),
	)
	return out, nil
}

// decide keeps processing only while finishing this gem is expected to be
// cheaper than starting a new one.
func decide(r GoalReport) Advice {
	if !(r.CostCurrent < r.CostNew) {
		return AdviceStop
	}
	if r.CanRedraw && r.RedrawNow > r.RollNow {
		return AdviceReroll
	}
	return AdviceRoll
}
