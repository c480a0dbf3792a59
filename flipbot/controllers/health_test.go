package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthCheck(t *testing.T) {
	hc := NewHealthController(map[string]bool{"history": false, "archive": true})
	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()

	hc.HealthCheck(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	if rr.Header().Get("Content-Type") != "application/json" {
		t.Errorf("expected Content-Type application/json, got %v", rr.Header().Get("Content-Type"))
	}

	var body healthResponse
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Status != "ok" {
		t.Errorf("expected status ok, got %q", body.Status)
	}
	if !body.Components["archive"] || body.Components["history"] {
		t.Errorf("unexpected components %v", body.Components)
	}
}

func TestHealthCheckNoComponents(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHealthController(nil).HealthCheck(rr, httptest.NewRequest("GET", "/", nil))

	if rr.Body.String() != "{\"status\":\"ok\",\"components\":{}}\n" {
		t.Errorf("unexpected body %q", rr.Body.String())
	}
}
