package core

import (
	"reflect"
	"testing"
	"time"
)

func TestRosterOrderAndRemoval(t *testing.T) {
	r := newRoster()
	r.add("c1", "Alice")
	r.add("c2", "Bob")
	r.add("c3", "Carol")

	if got := r.list(); !reflect.DeepEqual(got, []string{"Alice", "Bob", "Carol"}) {
		t.Fatalf("unexpected roster order: %v", got)
	}

	if !r.remove("c2") {
		t.Fatal("expected removal of known entry")
	}
	if r.remove("c2") {
		t.Fatal("removing an absent entry must be a no-op")
	}
	if got := r.list(); !reflect.DeepEqual(got, []string{"Alice", "Carol"}) {
		t.Fatalf("unexpected roster after removal: %v", got)
	}
}

func TestRosterFindByNameFirstMatch(t *testing.T) {
	r := newRoster()
	r.add("c1", "Alice")
	r.add("c2", "Bob")
	r.add("c3", "Bob") // duplicate names are not enforced unique

	id, ok := r.findByName("Bob")
	if !ok || id != "c2" {
		t.Fatalf("expected first Bob in join order, got %q ok=%v", id, ok)
	}

	if _, ok := r.findByName("Ghost"); ok {
		t.Fatal("unknown name must not be found")
	}
}

func TestCooldownWindow(t *testing.T) {
	now := time.Unix(1000, 0)
	c := cooldowns{"Bob": now}

	if !c.active("Bob", now.Add(KickCooldown-time.Second)) {
		t.Fatal("cooldown should still be active inside the window")
	}
	if c.active("Bob", now.Add(KickCooldown)) {
		t.Fatal("cooldown should expire exactly at the boundary")
	}
	if c.active("Alice", now) {
		t.Fatal("unknown name has no cooldown")
	}
}
