package scanner

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nakhudarahma/AccessNX/internal/models"
	"github.com/nakhudarahma/AccessNX/internal/rules"
)

func testCatalog(t *testing.T) *rules.Catalog {
	t.Helper()
	c, err := rules.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return c
}

func TestSimulatedScanProducesValidResult(t *testing.T) {
	s := NewSimulated(testCatalog(t), 0)

	result, err := s.Scan(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if result.URL != "https://example.com" {
		t.Errorf("result URL = %s", result.URL)
	}
	if result.ScanDate.IsZero() {
		t.Error("scan date not set")
	}
	if result.Category != models.CategoryForScore(result.Score) {
		t.Errorf("category %s does not match score %.1f", result.Category, result.Score)
	}
	if len(result.ComplianceBadges) != 3 {
		t.Errorf("expected 3 badges, got %d", len(result.ComplianceBadges))
	}
	if errs := result.Validate(); len(errs) > 0 {
		t.Errorf("result fails invariants: %v", errs)
	}
}

func TestSimulatedScanDeterministic(t *testing.T) {
	s := NewSimulated(testCatalog(t), 0)

	first, err := s.Scan(context.Background(), "https://example.com")
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Scan(context.Background(), "https://example.com")
	if err != nil {
		t.Fatal(err)
	}

	if len(first.Issues) != len(second.Issues) {
		t.Fatalf("issue count differs: %d vs %d", len(first.Issues), len(second.Issues))
	}
	for i := range first.Issues {
		if first.Issues[i].ID != second.Issues[i].ID {
			t.Errorf("issue %d differs: %s vs %s", i, first.Issues[i].ID, second.Issues[i].ID)
		}
	}
	if first.Score != second.Score {
		t.Errorf("score differs: %.1f vs %.1f", first.Score, second.Score)
	}
}

func TestSimulatedScanInvalidTLDFails(t *testing.T) {
	s := NewSimulated(testCatalog(t), 0)

	_, err := s.Scan(context.Background(), "https://broken.invalid")
	var serr *ScanError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *ScanError, got %T", err)
	}
	if serr.Reason == "" {
		t.Error("scan error has no user-facing reason")
	}
}

func TestSimulatedScanCancellation(t *testing.T) {
	s := NewSimulated(testCatalog(t), 5*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := s.Scan(ctx, "https://example.com")
	if err == nil {
		t.Fatal("expected cancellation error")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("cancelled scan blocked for %v", elapsed)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled in chain, got %v", err)
	}
}

func TestBadgesCumulativeConformance(t *testing.T) {
	issues := []models.Issue{
		{ID: "x", Severity: models.SeverityModerate, WCAGRule: "1.4.3", WCAGLevel: "AA"},
	}
	badges := badgesFor(issues)

	byID := make(map[string]bool, len(badges))
	for _, b := range badges {
		byID[b.ID] = b.Passed
	}
	if !byID["wcag-a"] {
		t.Error("level A should pass with only an AA violation")
	}
	if byID["wcag-aa"] {
		t.Error("level AA should fail")
	}
	if byID["wcag-aaa"] {
		t.Error("level AAA should fail once AA fails")
	}
}

func TestBadgesAllPassWhenClean(t *testing.T) {
	for _, b := range badgesFor(nil) {
		if !b.Passed {
			t.Errorf("badge %s should pass with no issues", b.ID)
		}
	}
}

func TestRemoteScanSuccess(t *testing.T) {
	want := &models.ScanResult{
		URL:      "https://example.com",
		ScanDate: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Score:    78,
		Category: models.CategoryFair,
		Issues: []models.Issue{
			{ID: "img-alt-missing", Severity: models.SeverityCritical, WCAGRule: "1.1.1", WCAGLevel: "A", Title: "Images missing alternative text"},
		},
	}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/v1/scans" {
			t.Errorf("expected /v1/scans, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer ax_test_key" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}

		var req scanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if req.URL != "https://example.com" {
			t.Errorf("unexpected target: %s", req.URL)
		}

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer ts.Close()

	r := NewRemote(ts.URL, "ax_test_key")
	got, err := r.Scan(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if got.Score != want.Score || len(got.Issues) != 1 {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestRemoteScanServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "engine unavailable"})
	}))
	defer ts.Close()

	r := NewRemote(ts.URL, "")
	_, err := r.Scan(context.Background(), "https://example.com")
	var serr *ScanError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *ScanError, got %T", err)
	}
	if serr.Reason != "scan service error: engine unavailable" {
		t.Errorf("unexpected reason: %q", serr.Reason)
	}
}

func TestRemoteScanUnreachable(t *testing.T) {
	r := NewRemote("http://127.0.0.1:1", "")
	_, err := r.Scan(context.Background(), "https://example.com")
	var serr *ScanError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *ScanError, got %T", err)
	}
}
