package workflow

import (
	"context"
	"sync"

	"github.com/nakhudarahma/AccessNX/internal/models"
	"github.com/nakhudarahma/AccessNX/internal/scanner"
	"github.com/nakhudarahma/AccessNX/internal/validator"
)

// State is the workflow position of the scan controller. Exactly one
// state holds at any time; the result/error pair is cleared on every
// pass through StateValidating, so "at most one of error, result is
// populated" holds by construction.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateScanning
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateScanning:
		return "scanning"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Transition records one state change. The announcement coordinator
// consumes each transition exactly once.
type Transition struct {
	From State
	To   State
}

// ScanRequest identifies one accepted scan. Token invalidates stale
// completions: a Complete call whose token no longer matches the
// controller's current sequence is ignored rather than raced.
type ScanRequest struct {
	Target string
	Token  uint64
}

// Snapshot is the read-only triple exposed to the presentation layer.
type Snapshot struct {
	State  State
	Target string
	Result *models.ScanResult
	Err    error
}

// Controller is the scan workflow state machine. All transitions run
// under a single mutex so the machine behaves the same whether the
// completion arrives on the UI event loop or another goroutine.
type Controller struct {
	mu      sync.Mutex
	scanner scanner.Scanner

	state  State
	target string
	result *models.ScanResult
	err    error
	seq    uint64
}

// New creates a controller in StateIdle.
func New(s scanner.Scanner) *Controller {
	return &Controller{scanner: s, state: StateIdle}
}

// Scanner returns the scan collaborator for callers that run the scan
// themselves (the TUI issues it as an async command).
func (c *Controller) Scanner() scanner.Scanner {
	return c.scanner
}

// Submit drives the machine through Validating for the given raw
// input. It returns every transition taken, plus a ScanRequest when
// the input validated and a scan should start.
//
// While a scan is in flight Submit is a no-op: the returned slice is
// empty and no request is issued, preserving single in-flight
// semantics.
func (c *Controller) Submit(raw string) ([]Transition, *ScanRequest) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateScanning {
		return nil, nil
	}

	var transitions []Transition

	// Entering Validating discards the previous outcome, whichever
	// kind it was.
	transitions = append(transitions, c.moveTo(StateValidating))
	c.result = nil
	c.err = nil
	c.target = ""

	normalized, err := validator.Validate(raw)
	if err != nil {
		c.err = err
		transitions = append(transitions, c.moveTo(StateFailed))
		return transitions, nil
	}

	// Target is locked in now; later edits to the input cannot affect
	// the in-flight scan.
	c.target = normalized
	c.seq++
	transitions = append(transitions, c.moveTo(StateScanning))

	return transitions, &ScanRequest{Target: normalized, Token: c.seq}
}

// Complete delivers the scan outcome for a previously issued request.
// Stale tokens are dropped: if a newer Submit superseded the request,
// nothing changes and ok is false.
func (c *Controller) Complete(token uint64, result *models.ScanResult, err error) (Transition, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateScanning || token != c.seq {
		return Transition{}, false
	}

	if err != nil {
		c.err = asScanError(c.target, err)
		return c.moveTo(StateFailed), true
	}

	c.result = result
	return c.moveTo(StateSucceeded), true
}

// Run executes a scan request to completion. This is the headless
// path used by the one-shot CLI command.
func (c *Controller) Run(ctx context.Context, req *ScanRequest) (Transition, bool) {
	result, err := c.scanner.Scan(ctx, req.Target)
	return c.Complete(req.Token, result, err)
}

// Snapshot returns the current state triple. Presentation reads it
// and dispatches Submit back; it never mutates controller state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		State:  c.state,
		Target: c.target,
		Result: c.result,
		Err:    c.err,
	}
}

func (c *Controller) moveTo(to State) Transition {
	t := Transition{From: c.state, To: to}
	c.state = to
	return t
}

// asScanError keeps the unified error-display channel: anything the
// collaborator returns surfaces as a single user-facing scan error.
func asScanError(target string, err error) error {
	if _, ok := err.(*scanner.ScanError); ok {
		return err
	}
	return &scanner.ScanError{URL: target, Reason: "the scan failed, please try again", Err: err}
}
