// Package diag carries the diagnostic sink and the options registry (debug
// toggle, error counter) as an explicit value threaded through eval and
// bounds_check, per spec §9's design note against process-wide singletons.
package diag

import (
	"fmt"

	"github.com/nvc-hdl/nvccore/internal/tree"
)

// Severity classifies a diagnostic. Only Error increments the bounds-check
// error counter; Warning is used for the evaluator's debug-gated,
// best-effort "what blocked folding" notes (spec §4.2).
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Reporter receives formatted diagnostics. The host compiler supplies the
// implementation (spec §6: "the host provides a reporter callback").
type Reporter interface {
	Report(sev Severity, loc tree.Position, message string)
}

// ReporterFunc adapts a plain function to Reporter.
type ReporterFunc func(sev Severity, loc tree.Position, message string)

func (f ReporterFunc) Report(sev Severity, loc tree.Position, message string) {
	f(sev, loc, message)
}

// Context threads the shared, explicit state both eval and bounds_check
// need: where diagnostics go, whether debug-gated warnings are enabled, and
// the accumulated error count. A zero Context is usable; with a nil
// Reporter, diagnostics are simply dropped after being counted.
type Context struct {
	Reporter Reporter
	Debug    bool

	errors int
}

// NewContext builds a Context reporting through r, with debug warnings
// enabled or not.
func NewContext(r Reporter, debug bool) *Context {
	return &Context{Reporter: r, Debug: debug}
}

// Errorf reports an error at loc, formats message, and increments the
// error counter. This is the only way the error counter advances — it is
// the sole signal spec §7 gives the surrounding driver that a compilation
// unit must be rejected.
func (c *Context) Errorf(loc tree.Position, format string, args ...any) {
	c.errors++
	if c.Reporter != nil {
		c.Reporter.Report(SeverityError, loc, fmt.Sprintf(format, args...))
	}
}

// Warnf reports a debug-gated warning; it never affects Errors() (spec
// §4.2: "it never affects the returned tree", and by extension never the
// error count — a fold refusal is not a compile error).
func (c *Context) Warnf(loc tree.Position, format string, args ...any) {
	if !c.Debug || c.Reporter == nil {
		return
	}
	c.Reporter.Report(SeverityWarning, loc, fmt.Sprintf(format, args...))
}

// Errors returns the accumulated error count since the last Reset (spec §6,
// bounds_errors()).
func (c *Context) Errors() int {
	return c.errors
}

// Reset zeroes the error counter. Reset semantics (when to call it) are the
// host's responsibility, per spec §6.
func (c *Context) Reset() {
	c.errors = 0
}
