package lexer

import "fmt"

// Position identifies the location of a token within a source text, by line
// and column (both one-indexed, matching common editor conventions).
type Position struct {
	Line int
	Col  int
}

// String renders a position as "line:col".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}
