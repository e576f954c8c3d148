// Package announce decides what assistive technology perceives on
// each workflow transition: where keyboard focus lands and what is
// announced. It is pure planning; applying the cue is the
// presentation layer's job.
package announce

import (
	"fmt"

	"github.com/nakhudarahma/AccessNX/internal/workflow"
)

// FocusTarget names the region that should receive keyboard focus.
type FocusTarget int

const (
	FocusNone FocusTarget = iota
	FocusInput
	FocusError
	FocusResults
)

// Politeness mirrors live-region semantics: polite announcements wait
// for the reader to pause, assertive ones interrupt immediately.
type Politeness int

const (
	Polite Politeness = iota
	Assertive
)

// Cue is the perceivable signal for one state entry.
type Cue struct {
	Focus            FocusTarget
	Message          string
	Politeness       Politeness
	Busy             bool   // the submit control exposes a busy state
	MarkInputInvalid bool   // the input is flagged invalid, error linked as its description
	ScrollToResults  bool   // bring the results region into view
	RegionLabel      string // label for the results region (the scanned URL)
}

// Coordinator plans cues and guarantees each transition produces at
// most one: replaying the same transition (a re-render) yields
// nothing, as does a self-transition.
type Coordinator struct {
	last    workflow.Transition
	hasLast bool
}

// New creates a coordinator with no transition history.
func New() *Coordinator {
	return &Coordinator{}
}

// Mount is the cue for entering Idle at startup: the primary input
// receives initial keyboard focus.
func Mount() Cue {
	return Cue{
		Focus:      FocusInput,
		Message:    "Enter a website URL to scan for accessibility issues",
		Politeness: Polite,
	}
}

// Plan maps a state entry to its cue. The boolean is false when the
// transition warrants no signal: self-transitions, replays, and the
// transient pass through Validating.
func (c *Coordinator) Plan(t workflow.Transition, target string, err error) (Cue, bool) {
	if t.From == t.To {
		return Cue{}, false
	}
	if c.hasLast && c.last == t {
		return Cue{}, false
	}
	c.last = t
	c.hasLast = true

	switch t.To {
	case workflow.StateScanning:
		return Cue{
			Focus:      FocusNone,
			Message:    fmt.Sprintf("Scanning %s, please wait", target),
			Politeness: Polite,
			Busy:       true,
		}, true

	case workflow.StateFailed:
		msg := "the scan failed"
		if err != nil {
			msg = err.Error()
		}
		return Cue{
			Focus:            FocusError,
			Message:          msg,
			Politeness:       Assertive,
			MarkInputInvalid: true,
		}, true

	case workflow.StateSucceeded:
		return Cue{
			Focus:           FocusResults,
			Message:         fmt.Sprintf("Scan complete for %s", target),
			Politeness:      Polite,
			ScrollToResults: true,
			RegionLabel:     target,
		}, true

	case workflow.StateIdle:
		return Cue{
			Focus:      FocusInput,
			Politeness: Polite,
		}, true
	}

	return Cue{}, false
}
