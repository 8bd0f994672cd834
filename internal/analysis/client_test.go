package analysis

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSubmitTextNormalizesResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/analyze" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"prediction": "scam",
			"risk_score": 140,
			"confidence": {"safe": 4.2, "scam": 95.8},
			"language": "English",
			"language_code": "en",
			"url_scans": [{"url": "http://bad.example", "risk_level": "high", "risk_score": -3}]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	result, err := client.SubmitText(context.Background(), "free money, act now")
	if err != nil {
		t.Fatalf("SubmitText: %v", err)
	}

	if result.Prediction != PredictionScam {
		t.Fatalf("prediction not upper-cased: %q", result.Prediction)
	}
	if result.RiskScore != 100 {
		t.Fatalf("risk score not clamped, got %d", result.RiskScore)
	}
	if result.SuspiciousKeywords == nil || result.URLsFound == nil || result.PhoneNumbersFound == nil {
		t.Fatal("optional slices should default to empty, not nil")
	}
	if got := result.URLScans[0]; got.RiskLevel != RiskHigh || got.RiskScore != 0 || got.Warnings == nil {
		t.Fatalf("url scan not normalized: %+v", got)
	}
}

func TestSubmitImageErrorCarriesInstallationGuide(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analyze-image" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("expected multipart form: %v", err)
		}
		if _, _, err := r.FormFile("image"); err != nil {
			t.Errorf("missing image field: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "OCR unavailable", "installation_guide": "Install tesseract"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.SubmitImage(context.Background(), "shot.png", []byte{0x89, 0x50})
	if err == nil {
		t.Fatal("expected an error")
	}

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected *ServiceError, got %T: %v", err, err)
	}
	msg := svcErr.Error()
	if !strings.Contains(msg, "OCR unavailable") || !strings.Contains(msg, "Install tesseract") {
		t.Fatalf("error message missing parts: %q", msg)
	}
}

func TestDoAnalysisMalformedBodies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"non-json error", http.StatusBadGateway, "<html>oops</html>", "status 502"},
		{"error without message", http.StatusInternalServerError, `{}`, "status 500"},
		{"non-json success", http.StatusOK, "not json", "decode analysis response"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, time.Second)
			_, err := client.SubmitText(context.Background(), "hello")
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestSubmitTextTransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing is listening anymore

	client := NewClient(server.URL, time.Second)
	_, err := client.SubmitText(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected a transport error")
	}
	if !strings.Contains(err.Error(), "contact analysis service") {
		t.Fatalf("transport errors should be wrapped, got %q", err.Error())
	}
}

func TestRecentReports(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/recent-reports" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "5" {
			t.Errorf("limit query = %q, want 5", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"language": "English", "language_code": "en", "risk_level": "Scam", "source": "text", "timestamp": "2026-08-31 10:15:00"},
			{"language": "Spanish", "language_code": "es", "risk_level": "Safe", "source": "image", "timestamp": "2026-08-31 10:05:00"}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	entries, err := client.RecentReports(context.Background(), 5)
	if err != nil {
		t.Fatalf("RecentReports: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Language != "English" || entries[0].Source != "text" {
		t.Fatalf("first entry mismatch: %+v", entries[0])
	}
}

func TestRecentReportsEmptyArray(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	entries, err := client.RecentReports(context.Background(), 5)
	if err != nil {
		t.Fatalf("RecentReports: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}
