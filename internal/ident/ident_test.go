package ident_test

import (
	"testing"

	"github.com/nvc-hdl/nvccore/internal/ident"
)

func TestInternIsCaseInsensitive(t *testing.T) {
	a := ident.Intern("MyState")
	b := ident.Intern("mystate")
	c := ident.Intern("MYSTATE")

	if a != b || b != c {
		t.Fatalf("expected case-insensitive interning, got %v %v %v", a, b, c)
	}
	if a.String() != "MyState" {
		t.Fatalf("expected first-seen spelling preserved, got %q", a.String())
	}
}

func TestInternDistinctNames(t *testing.T) {
	a := ident.Intern("clk")
	b := ident.Intern("reset")
	if a == b {
		t.Fatalf("distinct names must intern to distinct IDs")
	}
}

func TestPrefix(t *testing.T) {
	a := ident.Intern("state")
	b := ident.Intern("idle")
	p := ident.Prefix(a, b, "_")
	if p.String() != "state_idle" {
		t.Fatalf("expected %q, got %q", "state_idle", p.String())
	}
}

func TestNilID(t *testing.T) {
	if !ident.Nil.IsNil() {
		t.Fatalf("Nil.IsNil() must be true")
	}
	if ident.Nil.String() != "" {
		t.Fatalf("Nil.String() must be empty")
	}
}

func TestEqualWithoutInterning(t *testing.T) {
	if !ident.Equal("Foo", "foo") {
		t.Fatalf("Equal must be case-insensitive")
	}
	if ident.Equal("Foo", "bar") {
		t.Fatalf("Equal must distinguish different names")
	}
}
