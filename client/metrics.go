package client

import (
	"sync/atomic"
)

// SessionMetrics 会话运行期指标(供 /debug/metrics 输出与排查)
type SessionMetrics struct {
	EventsApplied  int64 // 成功应用的入站事件数
	UnknownEvents  int64 // 因类型未识别被忽略的事件数
	DecodeErrors   int64 // 因载荷非法被丢弃的消息数
	IntentsDropped int64 // 因发送队列满被丢弃的出站意图数
	FramesRendered int64 // 渲染帧数
	EntitiesCulled int64 // 因在视口外被跳过的实体绘制次数
	EffectsExpired int64 // 清理掉的到期特效数
	TotalApplyNs   int64 // 事件应用累计耗时(纳秒)
}

func (m *SessionMetrics) IncUnknownEvent()  { atomic.AddInt64(&m.UnknownEvents, 1) }
func (m *SessionMetrics) IncDecodeError()   { atomic.AddInt64(&m.DecodeErrors, 1) }
func (m *SessionMetrics) IncIntentDropped() { atomic.AddInt64(&m.IntentsDropped, 1) }
func (m *SessionMetrics) IncFrame()         { atomic.AddInt64(&m.FramesRendered, 1) }
func (m *SessionMetrics) IncCulled()        { atomic.AddInt64(&m.EntitiesCulled, 1) }

func (m *SessionMetrics) AddExpired(n int) { atomic.AddInt64(&m.EffectsExpired, int64(n)) }

func (m *SessionMetrics) AddApply(ns int64) {
	atomic.AddInt64(&m.EventsApplied, 1)
	atomic.AddInt64(&m.TotalApplyNs, ns)
}

// Snapshot 返回只读副本,便于 HTTP 输出
func (m *SessionMetrics) Snapshot() map[string]any {
	applied := atomic.LoadInt64(&m.EventsApplied)
	total := atomic.LoadInt64(&m.TotalApplyNs)
	var avgUs float64
	if applied > 0 {
		avgUs = float64(total) / float64(applied) / 1e3
	}
	return map[string]any{
		"events_applied":  applied,
		"unknown_events":  atomic.LoadInt64(&m.UnknownEvents),
		"decode_errors":   atomic.LoadInt64(&m.DecodeErrors),
		"intents_dropped": atomic.LoadInt64(&m.IntentsDropped),
		"frames_rendered": atomic.LoadInt64(&m.FramesRendered),
		"entities_culled": atomic.LoadInt64(&m.EntitiesCulled),
		"effects_expired": atomic.LoadInt64(&m.EffectsExpired),
		"avg_apply_us":    avgUs,
	}
}
