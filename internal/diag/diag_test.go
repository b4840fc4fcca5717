package diag_test

import (
	"testing"

	"github.com/nvc-hdl/nvccore/internal/diag"
	"github.com/nvc-hdl/nvccore/internal/tree"
)

type recorder struct {
	messages []string
}

func (r *recorder) Report(sev diag.Severity, loc tree.Position, message string) {
	r.messages = append(r.messages, sev.String()+": "+message)
}

func TestErrorfIncrementsCounter(t *testing.T) {
	rec := &recorder{}
	ctx := diag.NewContext(rec, false)

	ctx.Errorf(tree.Position{Line: 1, Column: 1}, "bad %s", "thing")
	ctx.Errorf(tree.Position{Line: 2, Column: 1}, "worse")

	if ctx.Errors() != 2 {
		t.Fatalf("expected 2 errors, got %d", ctx.Errors())
	}
	if len(rec.messages) != 2 || rec.messages[0] != "error: bad thing" {
		t.Fatalf("unexpected messages: %v", rec.messages)
	}
}

func TestWarnfGatedByDebug(t *testing.T) {
	rec := &recorder{}
	ctx := diag.NewContext(rec, false)
	ctx.Warnf(tree.Position{}, "should not appear")
	if len(rec.messages) != 0 {
		t.Fatalf("expected no messages with debug off, got %v", rec.messages)
	}
	if ctx.Errors() != 0 {
		t.Fatalf("warnings must never increment the error counter")
	}

	ctx.Debug = true
	ctx.Warnf(tree.Position{}, "now it shows")
	if len(rec.messages) != 1 {
		t.Fatalf("expected 1 message with debug on, got %v", rec.messages)
	}
	if ctx.Errors() != 0 {
		t.Fatalf("warnings must never increment the error counter")
	}
}

func TestReset(t *testing.T) {
	ctx := diag.NewContext(nil, false)
	ctx.Errorf(tree.Position{}, "x")
	ctx.Reset()
	if ctx.Errors() != 0 {
		t.Fatalf("expected 0 after Reset, got %d", ctx.Errors())
	}
}
