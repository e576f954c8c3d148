package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nakhudarahma/AccessNX/internal/models"
	"github.com/nakhudarahma/AccessNX/internal/scanner"
	"github.com/nakhudarahma/AccessNX/internal/validator"
)

// fakeScanner records calls and returns a canned outcome.
type fakeScanner struct {
	calls  []string
	result *models.ScanResult
	err    error
}

func (f *fakeScanner) Scan(ctx context.Context, url string) (*models.ScanResult, error) {
	f.calls = append(f.calls, url)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func okResult(url string) *models.ScanResult {
	return &models.ScanResult{
		URL:      url,
		ScanDate: time.Now(),
		Score:    90,
		Category: models.CategoryGood,
	}
}

func checkInvariant(t *testing.T, c *Controller) {
	t.Helper()
	snap := c.Snapshot()
	if snap.Err != nil && snap.Result != nil {
		t.Fatalf("invariant broken in state %s: both error and result populated", snap.State)
	}
}

func TestSubmitInvalidInputFailsWithoutScanning(t *testing.T) {
	fake := &fakeScanner{}
	c := New(fake)

	transitions, req := c.Submit("notaurl")
	if req != nil {
		t.Fatal("invalid input must not produce a scan request")
	}
	if len(fake.calls) != 0 {
		t.Fatal("scan collaborator must not be called on validation failure")
	}

	snap := c.Snapshot()
	if snap.State != StateFailed {
		t.Errorf("state = %s, want failed", snap.State)
	}
	var verr *validator.ValidationError
	if !errors.As(snap.Err, &verr) {
		t.Errorf("expected validation error, got %T", snap.Err)
	}
	checkInvariant(t, c)

	last := transitions[len(transitions)-1]
	if last.To != StateFailed || transitions[0].To != StateValidating {
		t.Errorf("unexpected transitions: %v", transitions)
	}
}

func TestSubmitNormalizesTarget(t *testing.T) {
	fake := &fakeScanner{result: okResult("https://example.com")}
	c := New(fake)

	_, req := c.Submit("example.com")
	if req == nil {
		t.Fatal("expected scan request")
	}
	if req.Target != "https://example.com" {
		t.Errorf("target = %s, want https://example.com", req.Target)
	}
	if c.Snapshot().State != StateScanning {
		t.Errorf("state = %s, want scanning", c.Snapshot().State)
	}

	c.Run(context.Background(), req)
	if len(fake.calls) != 1 || fake.calls[0] != "https://example.com" {
		t.Errorf("collaborator called with %v", fake.calls)
	}
}

func TestScanSuccessDeliversResult(t *testing.T) {
	fake := &fakeScanner{result: okResult("https://example.com")}
	c := New(fake)

	_, req := c.Submit("example.com")
	transition, ok := c.Run(context.Background(), req)
	if !ok {
		t.Fatal("completion was dropped")
	}
	if transition.From != StateScanning || transition.To != StateSucceeded {
		t.Errorf("transition = %v", transition)
	}

	snap := c.Snapshot()
	if snap.Result == nil || snap.Result.URL != "https://example.com" {
		t.Errorf("result not delivered: %+v", snap.Result)
	}
	if snap.Err != nil {
		t.Errorf("error should be nil, got %v", snap.Err)
	}
	checkInvariant(t, c)
}

func TestScanFailureKeepsResultNilAndAllowsRetry(t *testing.T) {
	fake := &fakeScanner{err: &scanner.ScanError{Reason: "the site could not be reached"}}
	c := New(fake)

	_, req := c.Submit("example.com")
	transition, ok := c.Run(context.Background(), req)
	if !ok || transition.To != StateFailed {
		t.Fatalf("expected failed transition, got %v ok=%v", transition, ok)
	}

	snap := c.Snapshot()
	if snap.Result != nil {
		t.Error("result must stay nil on scan failure")
	}
	var serr *scanner.ScanError
	if !errors.As(snap.Err, &serr) {
		t.Errorf("expected scan error, got %T", snap.Err)
	}
	checkInvariant(t, c)

	// Resubmitting the same URL re-enters Scanning.
	fake.err = nil
	fake.result = okResult("https://example.com")
	transitions, req2 := c.Submit("example.com")
	if req2 == nil {
		t.Fatal("resubmit after failure must be accepted")
	}
	if transitions[len(transitions)-1].To != StateScanning {
		t.Errorf("resubmit transitions: %v", transitions)
	}
	if c.Snapshot().Err != nil {
		t.Error("previous error must be cleared on resubmit")
	}
}

func TestSubmitWhileScanningIsNoOp(t *testing.T) {
	fake := &fakeScanner{result: okResult("https://first.com")}
	c := New(fake)

	_, first := c.Submit("first.com")
	if first == nil {
		t.Fatal("first submit rejected")
	}

	transitions, second := c.Submit("second.com")
	if second != nil || len(transitions) != 0 {
		t.Fatal("submit while scanning must be a no-op")
	}
	if got := c.Snapshot().Target; got != "https://first.com" {
		t.Errorf("in-flight target changed to %s", got)
	}

	// First scan still completes normally.
	if _, ok := c.Run(context.Background(), first); !ok {
		t.Fatal("original completion dropped")
	}
	if c.Snapshot().State != StateSucceeded {
		t.Errorf("state = %s", c.Snapshot().State)
	}
}

func TestStaleCompletionIgnored(t *testing.T) {
	fake := &fakeScanner{result: okResult("https://old.com")}
	c := New(fake)

	_, oldReq := c.Submit("old.com")

	// The old scan fails out of band; controller moves on to a new one.
	c.Complete(oldReq.Token, nil, errors.New("timeout"))
	_, newReq := c.Submit("new.com")
	if newReq == nil {
		t.Fatal("new submit rejected")
	}

	// Late delivery for the superseded token must change nothing.
	if _, ok := c.Complete(oldReq.Token, okResult("https://old.com"), nil); ok {
		t.Fatal("stale completion was applied")
	}
	snap := c.Snapshot()
	if snap.State != StateScanning || snap.Target != "https://new.com" {
		t.Errorf("stale completion disturbed state: %+v", snap)
	}
	if snap.Result != nil {
		t.Error("stale result leaked into snapshot")
	}
}

func TestCompleteInWrongStateIgnored(t *testing.T) {
	c := New(&fakeScanner{})
	if _, ok := c.Complete(1, okResult("https://x.com"), nil); ok {
		t.Fatal("completion accepted outside Scanning")
	}
	if c.Snapshot().State != StateIdle {
		t.Errorf("state = %s", c.Snapshot().State)
	}
}

func TestNewSubmitDiscardsPriorResult(t *testing.T) {
	fake := &fakeScanner{result: okResult("https://example.com")}
	c := New(fake)

	_, req := c.Submit("example.com")
	c.Run(context.Background(), req)
	if c.Snapshot().Result == nil {
		t.Fatal("first scan should have succeeded")
	}

	c.Submit("other.org")
	snap := c.Snapshot()
	if snap.Result != nil {
		t.Error("prior result must be discarded when a new scan starts")
	}
	checkInvariant(t, c)
}

func TestCollaboratorErrorWrappedAsScanError(t *testing.T) {
	fake := &fakeScanner{err: errors.New("raw transport failure")}
	c := New(fake)

	_, req := c.Submit("example.com")
	c.Run(context.Background(), req)

	var serr *scanner.ScanError
	if !errors.As(c.Snapshot().Err, &serr) {
		t.Fatalf("expected wrapped scan error, got %T", c.Snapshot().Err)
	}
	if serr.Reason == "" {
		t.Error("wrapped error has no user-facing reason")
	}
}

func TestStateStrings(t *testing.T) {
	states := map[State]string{
		StateIdle:       "idle",
		StateValidating: "validating",
		StateScanning:   "scanning",
		StateSucceeded:  "succeeded",
		StateFailed:     "failed",
		State(99):       "unknown",
	}
	for s, want := range states {
		if s.String() != want {
			t.Errorf("State(%d).String() = %s, want %s", s, s.String(), want)
		}
	}
}
