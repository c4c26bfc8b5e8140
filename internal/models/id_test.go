package models

import (
	"strings"
	"testing"
)

func TestNewIDFormat(t *testing.T) {
	id := NewID("FB")
	if !strings.HasPrefix(id, "FB_") {
		t.Fatalf("unexpected id %q", id)
	}
}

func TestNewIDUniqueUnderBurst(t *testing.T) {
	seen := make(map[string]bool, 1000)
	prev := ""
	for i := 0; i < 1000; i++ {
		id := NewID("RES")
		if seen[id] {
			t.Fatalf("duplicate id %q minted", id)
		}
		seen[id] = true
		if id <= prev {
			t.Fatalf("ids not increasing: %q after %q", id, prev)
		}
		prev = id
	}
}
