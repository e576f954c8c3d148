package scanner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nakhudarahma/AccessNX/internal/models"
)

// Remote submits scans to a hosted scanning engine over HTTP. It
// implements the same Scanner contract as Simulated, so the workflow
// cannot tell them apart.
type Remote struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewRemote creates a remote scanner client.
func NewRemote(baseURL, apiKey string) *Remote {
	return &Remote{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// scanRequest is the body for POST /v1/scans.
type scanRequest struct {
	URL string `json:"url"`
}

// Scan requests a scan from the remote engine and decodes the result.
func (r *Remote) Scan(ctx context.Context, target string) (*models.ScanResult, error) {
	body, err := json.Marshal(scanRequest{URL: target})
	if err != nil {
		return nil, &ScanError{URL: target, Reason: "the scan could not be started", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/v1/scans", bytes.NewReader(body))
	if err != nil {
		return nil, &ScanError{URL: target, Reason: "the scan could not be started", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, &ScanError{URL: target, Reason: "the scan service could not be reached", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errResp map[string]string
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		msg := errResp["error"]
		if msg == "" {
			msg = resp.Status
		}
		return nil, &ScanError{URL: target, Reason: fmt.Sprintf("scan service error: %s", msg)}
	}

	var result models.ScanResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ScanError{URL: target, Reason: "the scan service returned an unreadable result", Err: err}
	}

	if errs := result.Validate(); len(errs) > 0 {
		return nil, &ScanError{URL: target, Reason: "the scan service returned an invalid result"}
	}

	return &result, nil
}
