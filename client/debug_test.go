package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDebugConfigUpdate(t *testing.T) {
	t.Parallel()

	cfg := DefaultRenderConfig()
	d := &DebugServer{Cfg: cfg, Metrics: &SessionMetrics{}}
	srv := httptest.NewServer(d.Routes())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/debug/config", "application/json",
		strings.NewReader(`{"baseSize":96}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if cfg.BaseSize != 96 {
		t.Fatalf("expected baseSize updated to 96, got %v", cfg.BaseSize)
	}
	if cfg.CullMargin != 50 {
		t.Fatalf("expected untouched cullMargin, got %v", cfg.CullMargin)
	}

	resp, err = http.Get(srv.URL + "/debug/config")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	var got struct {
		BaseSize   float64 `json:"baseSize"`
		CullMargin float64 `json:"cullMargin"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.BaseSize != 96 || got.CullMargin != 50 {
		t.Fatalf("unexpected config %+v", got)
	}
}

func TestDebugMetricsSnapshot(t *testing.T) {
	t.Parallel()

	m := &SessionMetrics{}
	m.IncUnknownEvent()
	m.AddApply(1000)
	d := &DebugServer{Cfg: DefaultRenderConfig(), Metrics: m}
	srv := httptest.NewServer(d.Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/debug/metrics")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	var got struct {
		Metrics map[string]any `json:"metrics"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Metrics["unknown_events"].(float64) != 1 {
		t.Fatalf("expected unknown_events=1, got %v", got.Metrics["unknown_events"])
	}
	if got.Metrics["events_applied"].(float64) != 1 {
		t.Fatalf("expected events_applied=1, got %v", got.Metrics["events_applied"])
	}
}
