package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/searchspace/pkg/experiment"
)

func testHandler() http.Handler {
	runner := experiment.NewRunner(nil, nil, log.New(io.Discard))
	return newAPIHandler(runner)
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	testHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestVersionEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	testHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["version"] == "" {
		t.Error("version endpoint returned no version")
	}
}

func TestSweepEndpoint(t *testing.T) {
	payload := `{
		"problem": {"kind": "assignment", "size": 4, "seed": 3},
		"algorithms": [{"name": "hill-climbing"}]
	}`

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/sweeps", strings.NewReader(payload))
	testHandler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	var report experiment.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if len(report.Results) != 1 {
		t.Errorf("got %d results, want 1", len(report.Results))
	}
	if report.Baseline == nil {
		t.Error("assignment sweep response has no baseline")
	}
}

func TestSweepEndpointBadJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/sweeps", strings.NewReader("{not json"))
	testHandler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSweepEndpointInvalidConfig(t *testing.T) {
	payload := `{
		"problem": {"kind": "partition", "size": 6},
		"algorithms": [{"name": "best-first"}]
	}`

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/sweeps", strings.NewReader(payload))
	testHandler().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422 (body: %s)", rec.Code, rec.Body.String())
	}
}
