// Package srcpos carries source locations through the tree and diagnostics
// packages. The parser (out of scope for this module) is responsible for
// populating these from the lexer's token stream.
package srcpos

import "fmt"

// Position identifies a point in a source file, following the same
// Line/Column/Offset shape the teacher's lexer.Position uses.
type Position struct {
	File   string
	Line   int
	Column int
	Offset int
}

// String renders "file:line:column", or "line:column" when File is empty.
func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// IsZero reports whether p carries no location information.
func (p Position) IsZero() bool {
	return p == Position{}
}
