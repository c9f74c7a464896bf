package client

import (
	"testing"
	"time"
)

func TestEffectExpiryBoundary(t *testing.T) {
	t.Parallel()

	t0 := time.UnixMilli(1_700_000_000_000)
	tr := NewEffectTracker()
	tr.Start("p1", EffectJump, 1500*time.Millisecond, t0)

	if !tr.IsActive("p1", EffectJump, t0.Add(1499*time.Millisecond)) {
		t.Fatalf("expected active at t0+1499ms")
	}
	if tr.IsActive("p1", EffectJump, t0.Add(1500*time.Millisecond)) {
		t.Fatalf("expected inactive at t0+1500ms")
	}
}

func TestEffectStartOverwritesAndRestarts(t *testing.T) {
	t.Parallel()

	t0 := time.UnixMilli(1_700_000_000_000)
	tr := NewEffectTracker()
	tr.Start("p1", EffectJump, 1500*time.Millisecond, t0)
	tr.Start("p1", EffectJump, 1500*time.Millisecond, t0.Add(1*time.Second))

	// 同键至多一条,且按新的起点计时
	if tr.Len() != 1 {
		t.Fatalf("expected single effect per (entity,kind), got %d", tr.Len())
	}
	if !tr.IsActive("p1", EffectJump, t0.Add(2400*time.Millisecond)) {
		t.Fatalf("expected effect active against restarted clock")
	}
}

func TestEffectSweepIdempotent(t *testing.T) {
	t.Parallel()

	t0 := time.UnixMilli(1_700_000_000_000)
	tr := NewEffectTracker()
	tr.Start("p1", EffectJump, time.Second, t0)
	tr.Start("p2", EffectJump, 3*time.Second, t0)

	now := t0.Add(2 * time.Second)
	if n := tr.Sweep(now); n != 1 {
		t.Fatalf("expected 1 removed, got %d", n)
	}
	if n := tr.Sweep(now); n != 0 {
		t.Fatalf("second sweep removed %d, expected 0", n)
	}
	if !tr.IsActive("p2", EffectJump, now) {
		t.Fatalf("expected p2 effect to survive sweep")
	}
}

func TestEffectDropOnDeparture(t *testing.T) {
	t.Parallel()

	t0 := time.UnixMilli(1_700_000_000_000)
	tr := NewEffectTracker()
	tr.Start("p1", EffectJump, time.Minute, t0)
	tr.Drop("p1")

	if tr.IsActive("p1", EffectJump, t0) {
		t.Fatalf("expected no effect after Drop")
	}
	// 实体已离场后的到期清理必须是 no-op
	if n := tr.Sweep(t0.Add(time.Hour)); n != 0 {
		t.Fatalf("expected nothing to sweep, got %d", n)
	}
}

func TestEffectFractionClamped(t *testing.T) {
	t.Parallel()

	t0 := time.UnixMilli(1_700_000_000_000)
	e := &Effect{Start: t0, Duration: time.Second}
	if f := e.Fraction(t0.Add(-time.Second)); f != 0 {
		t.Fatalf("expected 0 before start, got %v", f)
	}
	if f := e.Fraction(t0.Add(500 * time.Millisecond)); f != 0.5 {
		t.Fatalf("expected 0.5 at midpoint, got %v", f)
	}
	if f := e.Fraction(t0.Add(time.Minute)); f != 1 {
		t.Fatalf("expected clamp to 1, got %v", f)
	}
}
