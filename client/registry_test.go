package client

import "testing"

func TestRegistryUpsertReplacesByID(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Upsert(&Player{ID: "p1", Username: "alice", X: 10})
	r.Upsert(&Player{ID: "p1", Username: "alice", X: 20})

	if r.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", r.Len())
	}
	p, ok := r.Get("p1")
	if !ok {
		t.Fatalf("p1 missing after upsert")
	}
	if p.X != 20 {
		t.Fatalf("expected latest x=20, got %v", p.X)
	}
}

func TestRegistryRemoveThenGet(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Upsert(&Player{ID: "p1"})
	r.Remove("p1")

	if _, ok := r.Get("p1"); ok {
		t.Fatalf("expected p1 absent after remove")
	}
	if r.Len() != 0 {
		t.Fatalf("expected empty registry, got %d", r.Len())
	}
	r.Remove("p1") // 再删一次应当无事发生
}

func TestRegistryAllKeepsInsertionOrder(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Upsert(&Player{ID: "c"})
	r.Upsert(&Player{ID: "a"})
	r.Upsert(&Player{ID: "b"})
	r.Upsert(&Player{ID: "a", X: 5}) // 替换不应改变位置

	all := r.All()
	want := []PlayerID{"c", "a", "b"}
	if len(all) != len(want) {
		t.Fatalf("expected %d players, got %d", len(want), len(all))
	}
	for i, id := range want {
		if all[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, all[i].ID)
		}
	}
}

func TestAvatarSetEnsureCreatesOnce(t *testing.T) {
	t.Parallel()

	s := NewAvatarSet()
	a := s.Ensure("hero")
	b := s.Ensure("hero")
	if a != b {
		t.Fatalf("expected same asset for same name")
	}
	if _, ok := s.Get("villain"); ok {
		t.Fatalf("unexpected asset for unseen name")
	}
}
