package client

import "time"

// EffectKind 短时叠加特效类型
type EffectKind string

const (
	// EffectJump 表情:原地弹跳
	EffectJump EffectKind = "jump"
)

const (
	// EmoteDuration 表情固定时长:事件本身不携带时长,客户端统一 1500ms
	EmoteDuration = 1500 * time.Millisecond

	// defaultJumpBounces 一次表情内的弹跳次数,纯表现参数
	defaultJumpBounces = 2
)

// Effect 时间有界的叠加特效,只由 EffectTracker 持有
// 到期即消失,外部不保留引用
type Effect struct {
	Entity   PlayerID
	Kind     EffectKind
	Start    time.Time
	Duration time.Duration
	Bounces  int
}

// ExpiresAt 到期时刻
func (e *Effect) ExpiresAt() time.Time {
	return e.Start.Add(e.Duration)
}

// Fraction 已经过时长占比,夹取到 [0,1]
func (e *Effect) Fraction(now time.Time) float64 {
	if e.Duration <= 0 {
		return 1
	}
	f := float64(now.Sub(e.Start)) / float64(e.Duration)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

type effectKey struct {
	entity PlayerID
	kind   EffectKind
}

// EffectTracker 按 (entity, kind) 追踪进行中的特效
// 同键新 Start 直接覆盖旧特效;生命周期与实体注册表互相独立
type EffectTracker struct {
	effects map[effectKey]*Effect
}

// NewEffectTracker 创建空追踪器
func NewEffectTracker() *EffectTracker {
	return &EffectTracker{effects: make(map[effectKey]*Effect)}
}

// Start 启动(或重置)一条特效,到期时刻为 now+duration
func (t *EffectTracker) Start(id PlayerID, kind EffectKind, duration time.Duration, now time.Time) {
	t.effects[effectKey{id, kind}] = &Effect{
		Entity:   id,
		Kind:     kind,
		Start:    now,
		Duration: duration,
		Bounces:  defaultJumpBounces,
	}
}

// IsActive 特效是否仍在进行:now 严格早于到期时刻才算活跃
func (t *EffectTracker) IsActive(id PlayerID, kind EffectKind, now time.Time) bool {
	_, ok := t.Get(id, kind, now)
	return ok
}

// Get 返回仍活跃的特效
func (t *EffectTracker) Get(id PlayerID, kind EffectKind, now time.Time) (*Effect, bool) {
	e, ok := t.effects[effectKey{id, kind}]
	if !ok || !now.Before(e.ExpiresAt()) {
		return nil, false
	}
	return e, true
}

// Sweep 清除全部已到期特效,返回清除条数;幂等,每次渲染前至少调用一次
// 到期检查基于当前表内状态,对已被覆盖或实体已离场的条目天然是 no-op
func (t *EffectTracker) Sweep(now time.Time) int {
	removed := 0
	for k, e := range t.effects {
		if !now.Before(e.ExpiresAt()) {
			delete(t.effects, k)
			removed++
		}
	}
	return removed
}

// Drop 实体离场时移除其全部特效
func (t *EffectTracker) Drop(id PlayerID) {
	for k := range t.effects {
		if k.entity == id {
			delete(t.effects, k)
		}
	}
}

// Len 当前活跃与待清理的条目总数
func (t *EffectTracker) Len() int {
	return len(t.effects)
}
