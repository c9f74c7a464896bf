package client

import (
	"encoding/json"
	"net/http"
)

// DebugServer 本地调试接口:指标输出与渲染参数热更新
type DebugServer struct {
	Cfg     *RenderConfig
	Metrics *SessionMetrics
}

// Routes 注册调试路由
func (d *DebugServer) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/config", d.handleConfig)
	mux.HandleFunc("/debug/metrics", d.handleMetrics)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// handleConfig 渲染参数的读取与更新
// GET /debug/config 返回当前参数
// POST /debug/config 以 JSON 载荷更新部分字段
func (d *DebugServer) handleConfig(w http.ResponseWriter, r *http.Request) {
	type cfg struct {
		BaseSize   *float64 `json:"baseSize,omitempty"`
		CullMargin *float64 `json:"cullMargin,omitempty"`
	}

	switch r.Method {
	case http.MethodGet:
		cur := cfg{
			BaseSize:   &d.Cfg.BaseSize,
			CullMargin: &d.Cfg.CullMargin,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(cur)
	case http.MethodPost:
		var body cfg
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if body.BaseSize != nil {
			d.Cfg.BaseSize = *body.BaseSize
		}
		if body.CullMargin != nil {
			d.Cfg.CullMargin = *body.CullMargin
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
		Log.Infof("render config updated: baseSize=%.1f cullMargin=%.1f",
			d.Cfg.BaseSize, d.Cfg.CullMargin)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleMetrics 输出会话运行指标
// GET /debug/metrics
func (d *DebugServer) handleMetrics(w http.ResponseWriter, r *http.Request) {
	payload := map[string]any{
		"metrics": d.Metrics.Snapshot(),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
