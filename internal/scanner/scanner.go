package scanner

import (
	"context"
	"fmt"

	"github.com/nakhudarahma/AccessNX/internal/models"
)

// Scanner runs an accessibility scan against a normalized URL and
// produces exactly one outcome: a complete ScanResult or an error.
// The workflow controller is agnostic to the implementation behind
// this interface.
type Scanner interface {
	Scan(ctx context.Context, url string) (*models.ScanResult, error)
}

// ScanError reports a failed scan. Every Scanner failure is wrapped
// in one so the workflow can surface a single user-facing reason.
type ScanError struct {
	URL    string
	Reason string
	Err    error
}

func (e *ScanError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("scan of %s failed", e.URL)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}
