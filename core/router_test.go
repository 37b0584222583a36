package core

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	deps := RouterDeps{
		Supervisor: NewSupervisor(100),
		Config:     Config{DeadlineMs: 2000, MemoryHintMB: 256},
		StartedAt:  time.Now(),
	}
	return NewRouter(deps)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRouterHealthz(t *testing.T) {
	r := newTestRouter()
	rec := doJSON(t, r, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouterValidateRejectsMalformedSource(t *testing.T) {
	r := newTestRouter()
	rec := doJSON(t, r, http.MethodPost, "/validate", map[string]string{"source": "def broken(:\n"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if out["valid"] != false {
		t.Fatalf("expected valid=false, got %+v", out)
	}
}

func TestRouterValidateAcceptsWellFormedSource(t *testing.T) {
	r := newTestRouter()
	rec := doJSON(t, r, http.MethodPost, "/validate", map[string]string{"source": "def solution(x):\n    return x\n"})
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if out["valid"] != true {
		t.Fatalf("expected valid=true, got %+v", out)
	}
}

func TestRouterRunSuiteAllPass(t *testing.T) {
	r := newTestRouter()
	body := map[string]interface{}{
		"source":      "def solution(a, b):\n    return a + b\n",
		"entry_point": "solution",
		"deadline_ms": 2000,
		"cases": []map[string]interface{}{
			{"input": map[string]interface{}{"a": 2, "b": 3}, "expected": 5},
		},
	}
	rec := doJSON(t, r, http.MethodPost, "/run-suite", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if out["success"] != true {
		t.Fatalf("expected success=true, got %+v", out)
	}
}

func TestRouterStatusReportsMemoryHint(t *testing.T) {
	r := newTestRouter()
	rec := doJSON(t, r, http.MethodGet, "/status", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var out SystemStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if out.Memory.HintMB != 256 {
		t.Fatalf("expected memory hint 256, got %d", out.Memory.HintMB)
	}
}
