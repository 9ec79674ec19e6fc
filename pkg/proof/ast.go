// Package proof defines the data model for a parsed Alethe proof: the
// commands (assume/step/subproof), their arguments, and function
// definitions (spec.md §3).
package proof

import (
	"github.com/ashgrove/alethecheck/pkg/lexer"
	"github.com/ashgrove/alethecheck/pkg/term"
)

// FunctionDef is a `define-fun` binding: its formal parameters and body.
type FunctionDef struct {
	Params []term.SortedVar
	Body   term.TermRef
}

// ArgKind tags the variant of a ProofArg.
type ArgKind int

// The two proof-argument kinds.
const (
	ArgTerm ArgKind = iota
	ArgAssign
)

// Arg is a single element of a step's `:args` list: either a bare term or
// a `(:= name term)` assignment.
type Arg struct {
	Kind  ArgKind
	Term  term.TermRef // ArgTerm
	Name  string       // ArgAssign
	Value term.TermRef // ArgAssign
}

// Premise identifies a prior command by how many enclosing scopes up it
// lives (Depth, 0 = the current scope) and its position within that
// scope's command list. This is what the parser records instead of the
// premise's name, so the checker can navigate subproof nesting without
// re-resolving symbols (spec.md §4.3/§9).
type Premise struct {
	Depth    int
	Position int
}

// AnchorAssignment is a subproof's `(:= x sort value)` argument: it
// introduces x:sort into the subproof's scope, bound to value.
type AnchorAssignment struct {
	Var   term.SortedVar
	Value term.TermRef
}

// CommandKind tags the variant of a Command.
type CommandKind int

// The three proof-command kinds (spec.md §3).
const (
	KindAssume CommandKind = iota
	KindStep
	KindSubproof
)

// Command is one of the three ProofCommand variants.
type Command struct {
	Kind CommandKind

	// Pos is the source position of the command's keyword (the token
	// right after its opening "("; for a Subproof, that of its closing
	// command), used to attribute checker rejections (spec.md §7).
	Pos lexer.Position

	// Assume
	Index string
	Term  term.TermRef

	// Step
	Clause    []term.TermRef
	Rule      string
	Premises  []Premise
	Args      []Arg
	Discharge []string

	// Subproof: the final entry of Commands is always a Step, whose Index
	// equals the enclosing anchor's declared end-step index.
	Commands       []Command
	AssignmentArgs []AnchorAssignment
	VariableArgs   []term.SortedVar
}

// Proof is a fully parsed Alethe proof: the problem's premises and the
// top-level sequence of commands.
type Proof struct {
	Premises map[term.TermRef]struct{}
	Commands []Command
}
