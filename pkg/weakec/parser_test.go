package weakec

import (
	"os"
	"path/filepath"
	"testing"
)

func writeRequest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "request.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestParseAnalysisRequest(t *testing.T) {
	path := writeRequest(t, `{
		"p": 233, "a": 1, "b": 1,
		"gx": "0", "gy": "1",
		"qx": "0xa6", "qy": "48",
		"order_search_bound": 500,
		"dlog_bound": 5000
	}`)

	req, err := ParseAnalysisRequest(path)
	if err != nil {
		t.Fatalf("ParseAnalysisRequest: %v", err)
	}

	if req.P.Int64() != 233 || req.A.Int64() != 1 || req.B.Int64() != 1 {
		t.Errorf("curve params: p=%s a=%s b=%s", req.P, req.A, req.B)
	}
	if req.Qx.Int64() != 0xa6 || req.Qy.Int64() != 48 {
		t.Errorf("Q = (%s, %s), want (166, 48)", req.Qx, req.Qy)
	}
	if req.OrderSearchBound != 500 || req.DlogBound != 5000 {
		t.Errorf("bounds = (%d, %d)", req.OrderSearchBound, req.DlogBound)
	}

	// the parsed request must be directly analyzable
	report, err := NewAnalyzer().Analyze(req.Curve(), req.G(), req.Q(), req.OrderSearchBound, req.DlogBound)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.BruteForce == nil || !report.BruteForce.Found || report.BruteForce.K != 7 {
		t.Errorf("expected k=7 from the parsed request, got %+v", report.BruteForce)
	}
}

func TestParseAnalysisRequest_Defaults(t *testing.T) {
	path := writeRequest(t, `{"p": 233, "a": 1, "b": 1, "gx": 0, "gy": 1, "qx": 166, "qy": 48}`)

	req, err := ParseAnalysisRequest(path)
	if err != nil {
		t.Fatalf("ParseAnalysisRequest: %v", err)
	}
	if req.OrderSearchBound != 5000 || req.DlogBound != 100000 {
		t.Errorf("defaults = (%d, %d), want (5000, 100000)", req.OrderSearchBound, req.DlogBound)
	}
}

func TestParseAnalysisRequest_MissingField(t *testing.T) {
	path := writeRequest(t, `{"p": 233, "a": 1, "b": 1}`)
	if _, err := ParseAnalysisRequest(path); err == nil {
		t.Error("missing point fields should fail")
	}
}

func TestParseAnalysisRequest_BadNumber(t *testing.T) {
	path := writeRequest(t, `{"p": "not-a-number", "a": 1, "b": 1, "gx": 0, "gy": 1, "qx": 166, "qy": 48}`)
	if _, err := ParseAnalysisRequest(path); err == nil {
		t.Error("malformed number should fail")
	}
}
