package session

import "testing"

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	e := newEngine()

	a, _ := New(e, Options{ID: "b", Player: "bob", Seed: 1})
	b, _ := New(e, Options{ID: "a", Player: "amy", Seed: 2})

	r.Register(a)
	r.Register(b)

	if r.Count() != 2 {
		t.Errorf("Count() = %d, expected 2", r.Count())
	}

	got, ok := r.Get("b")
	if !ok || got != a {
		t.Error("Get(b) did not return the registered session")
	}

	if s, ok := r.ByPlayer("amy"); !ok || s != b {
		t.Error("ByPlayer(amy) did not find the session")
	}
	if _, ok := r.ByPlayer("nobody"); ok {
		t.Error("ByPlayer should miss unknown players")
	}

	list := r.List()
	if len(list) != 2 || list[0].ID() != "a" || list[1].ID() != "b" {
		t.Errorf("List() not ordered by ID")
	}

	r.Unregister("b")
	if _, ok := r.Get("b"); ok {
		t.Error("session still present after Unregister")
	}
	if r.Count() != 1 {
		t.Errorf("Count() = %d, expected 1", r.Count())
	}
}
