package quota

import (
	"errors"
	"fmt"
	"time"
)

// Scope names a rate-limit window class.
type Scope string

const (
	// ScopeMinute is the short burst-control window.
	ScopeMinute Scope = "minute"
	// ScopeDay is the long quota-control window.
	ScopeDay Scope = "day"
)

// Limits holds the per-plan ceilings for each window class.
type Limits struct {
	PerMinute int64
	PerDay    int64
}

// PlanResolver maps a plan name to its limits. Implemented by the plan
// catalog; the gate treats it as a pure lookup.
type PlanResolver interface {
	LimitsFor(plan string) (Limits, bool)
}

var (
	// ErrNoPrincipal is returned when Admit is called without a principal.
	// The gate fails safe rather than silently admitting.
	ErrNoPrincipal = errors.New("quota: missing principal")

	// ErrUnknownPlan is returned when the plan cannot be resolved to limits.
	// This is a configuration problem upstream, not a quota decision.
	ErrUnknownPlan = errors.New("quota: unknown plan")
)

// Result is a single authoritative admission decision. When Allowed is true
// the fields reflect the minute window (the only one surfaced to callers);
// when false they reflect the window that denied.
type Result struct {
	Allowed    bool
	Scope      Scope
	Limit      int64
	Remaining  int64
	ResetAt    time.Time
	RetryAfter time.Duration
}

type gateStep struct {
	scope    Scope
	checker  *Checker
	limitFor func(Limits) int64
}

// Gate is the per-principal admission decision combining the minute window
// (burst control) and the day window (quota control). Checks run in order;
// when a later window denies, every grant already taken in the same call is
// released so a rejected request leaves no trace in the earlier windows.
type Gate struct {
	resolver PlanResolver
	steps    []gateStep
}

// NewGate creates a gate over the two window checkers.
func NewGate(resolver PlanResolver, minute, day *Checker) *Gate {
	return &Gate{
		resolver: resolver,
		steps: []gateStep{
			{scope: ScopeMinute, checker: minute, limitFor: func(l Limits) int64 { return l.PerMinute }},
			{scope: ScopeDay, checker: day, limitFor: func(l Limits) int64 { return l.PerDay }},
		},
	}
}

// Admit decides whether one request from principal on plan may proceed at now.
// Each call is a fresh evaluation; there is no session state beyond the window
// entries themselves. Denials are returned as values, never as errors.
func (g *Gate) Admit(principal, plan string, now time.Time) (Result, error) {
	if principal == "" {
		return Result{}, ErrNoPrincipal
	}

	limits, ok := g.resolver.LimitsFor(plan)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownPlan, plan)
	}

	decisions := make([]Decision, 0, len(g.steps))

	for i, step := range g.steps {
		limit := step.limitFor(limits)

		d := step.checker.Check(g.key(principal, step.scope), limit, now)
		if !d.Allowed {
			// Compensating rollback: the grants taken by earlier windows must
			// not count against the principal since the request is rejected.
			for j := i - 1; j >= 0; j-- {
				g.steps[j].checker.Release(g.key(principal, g.steps[j].scope), now)
			}

			return Result{
				Scope:      step.scope,
				Limit:      limit,
				Remaining:  0,
				ResetAt:    d.ResetAt,
				RetryAfter: d.ResetAt.Sub(now),
			}, nil
		}

		decisions = append(decisions, d)
	}

	first := decisions[0]

	return Result{
		Allowed:   true,
		Scope:     g.steps[0].scope,
		Limit:     g.steps[0].limitFor(limits),
		Remaining: first.Remaining,
		ResetAt:   first.ResetAt,
	}, nil
}

func (g *Gate) key(principal string, scope Scope) string {
	return principal + ":" + string(scope)
}
