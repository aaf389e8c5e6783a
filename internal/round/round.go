package round

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/mathwhiz/internal/problemgen"
	"github.com/abhisek/mathwhiz/internal/verify"
	"github.com/google/uuid"
)

var (
	// ErrInFlight is returned by Submit while a verification is pending.
	ErrInFlight = errors.New("a verification is already in flight")

	// ErrStale is returned when an outcome arrives for a round or attempt
	// that has since been replaced.
	ErrStale = errors.New("stale verification outcome")
)

// Phase is where a round is in its lifecycle.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseSubmitted Phase = "submitted"
	PhaseResolved  Phase = "resolved"
	PhaseFailed    Phase = "failed"
)

// Notice is the user-visible message shown when verification fails.
type Notice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// FailureNotice is the only failure message learners ever see.
var FailureNotice = Notice{
	Title:       "Oh no! Something went wrong.",
	Description: "There was a problem with the AI verification. Please try again.",
}

// Ticket identifies one submitted attempt.
type Ticket struct {
	RoundID string `json:"roundId"`
	Attempt int    `json:"attempt"`
}

// Round is one problem and everything that has happened to it.
// A Round is owned by a single presentation layer and is not safe for
// concurrent use.
type Round struct {
	ID          string             `json:"id"`
	Problem     problemgen.Problem `json:"problem"`
	Phase       Phase              `json:"phase"`
	Attempts    int                `json:"attempts"`
	LastAttempt *verify.Attempt    `json:"lastAttempt,omitempty"`
	Result      *verify.Result     `json:"result,omitempty"`
	Notice      *Notice            `json:"notice,omitempty"`
}

// New starts an idle round with a fresh problem.
func New(gen problemgen.Generator) *Round {
	r := &Round{}
	r.NewProblem(gen)
	return r
}

// NewProblem replaces the problem and discards any result, notice or
// pending verification.
func (r *Round) NewProblem(gen problemgen.Generator) {
	*r = Round{
		ID:      uuid.NewString(),
		Problem: gen.Generate(),
		Phase:   PhaseIdle,
	}
}

// Submit records an attempt and moves to Submitted. The returned ticket
// must accompany the outcome passed to Resolve or Fail.
func (r *Round) Submit(userSum int) (Ticket, verify.Attempt, error) {
	if r.Phase == PhaseSubmitted {
		return Ticket{}, verify.Attempt{}, ErrInFlight
	}

	a := verify.Attempt{Num1: r.Problem.Num1, Num2: r.Problem.Num2, UserSum: userSum}
	r.Attempts++
	r.LastAttempt = &a
	r.Result = nil
	r.Notice = nil
	r.Phase = PhaseSubmitted

	return Ticket{RoundID: r.ID, Attempt: r.Attempts}, a, nil
}

// Resolve stores a verification result for the ticket's attempt.
func (r *Round) Resolve(t Ticket, res *verify.Result) error {
	if !r.current(t) {
		return ErrStale
	}
	if res == nil {
		return fmt.Errorf("resolve round %s: nil result", r.ID)
	}
	r.Result = res
	r.Phase = PhaseResolved
	return nil
}

// Fail marks the ticket's attempt as failed and raises FailureNotice.
// The problem and last attempt are kept so the learner can resubmit.
func (r *Round) Fail(t Ticket, _ error) error {
	if !r.current(t) {
		return ErrStale
	}
	n := FailureNotice
	r.Notice = &n
	r.Phase = PhaseFailed
	return nil
}

// Verify submits userSum and verifies it synchronously.
// Any error other than ErrInFlight leaves the round in PhaseFailed.
func (r *Round) Verify(ctx context.Context, v verify.Verifier, userSum int) error {
	t, a, err := r.Submit(userSum)
	if err != nil {
		return err
	}

	res, err := v.Verify(ctx, a)
	if err != nil {
		_ = r.Fail(t, err)
		return err
	}
	if err := r.Resolve(t, res); err != nil {
		_ = r.Fail(t, err)
		return err
	}
	return nil
}

func (r *Round) current(t Ticket) bool {
	return r.Phase == PhaseSubmitted && t.RoundID == r.ID && t.Attempt == r.Attempts
}
