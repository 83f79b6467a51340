package env_test

import (
	"testing"

	"github.com/arc-language/core-cast/env"
)

func TestHandleAccessors(t *testing.T) {
	h := env.New(3, "block")
	if h.ScopeID() != 3 {
		t.Errorf("ScopeID() = %d, want 3", h.ScopeID())
	}
	if h.Name() != "block" {
		t.Errorf("Name() = %q, want %q", h.Name(), "block")
	}
	if h.String() != "block" {
		t.Errorf("String() = %q, want %q", h.String(), "block")
	}
}

func TestZeroHandleStringFallback(t *testing.T) {
	if env.Zero.String() != "scope#0" {
		t.Errorf("Zero.String() = %q, want %q", env.Zero.String(), "scope#0")
	}
}

func TestHandleComparable(t *testing.T) {
	a := env.New(1, "a")
	b := env.New(1, "a")
	if a != b {
		t.Errorf("expected identically-built handles to compare equal")
	}
}
