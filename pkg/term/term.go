package term

import "math/big"

// TermRef is a stable handle into the pool. Two terms are equal iff their
// handles are equal — this identity is the pool's central invariant
// (spec.md §3).
type TermRef int

// Quantifier distinguishes universal from existential quantification.
type Quantifier int

// The two quantifier kinds.
const (
	Forall Quantifier = iota
	Exists
)

// TerminalKind tags the variant of a Terminal value.
type TerminalKind int

// The four terminal kinds (spec.md §3).
const (
	IntLit TerminalKind = iota
	RealLit
	StringLit
	VarLit
)

// Terminal is a leaf term: a literal or a variable.
type Terminal struct {
	Kind TerminalKind
	Int  *big.Int // IntLit
	Real *big.Rat // RealLit
	Str  string   // StringLit
	Name string   // VarLit: the variable's simple-symbol identifier
}

// SortedVar is a (name, sort) pair, as used for quantifier/choice bindings
// and function parameters.
type SortedVar struct {
	Name string
	Sort Sort
}

// Binding is a single `let` binding: a name paired with the TermRef of its
// (already sort-checked) value.
type Binding struct {
	Name  string
	Value TermRef
}

// Kind tags the variant of a Term value. spec.md §3 describes Term as "a
// tagged variant"; this enum plus the fields below are the direct Go
// rendering of that description, rather than an interface with one
// concrete type per variant, since every variant needs a uniformly
// memoized Sort and a uniform hash-consing key.
type Kind int

// The seven term kinds.
const (
	KindTerminal Kind = iota
	KindSort
	KindOp
	KindApp
	KindQuant
	KindChoice
	KindLet
)

// Term is one node of the hash-consed term DAG. Only the fields relevant to
// Kind are meaningful for any given value.
type Term struct {
	Kind Kind

	Terminal Terminal // KindTerminal

	SortValue Sort // KindSort: the sort this term denotes

	Op   Operator  // KindOp
	Args []TermRef // KindOp, KindApp (the argument list)
	Fn   TermRef   // KindApp: the function being applied

	Quantifier Quantifier  // KindQuant
	Bindings   []SortedVar // KindQuant (all bound vars), KindChoice (exactly one)
	LetBinds   []Binding   // KindLet

	Body TermRef // KindQuant, KindChoice, KindLet: the body/inner term

	sort Sort // the memoized result of Sort(), for every kind except KindSort
}

// Sort returns this term's sort. It is total on well-formed terms and
// O(1), since every term's sort is computed and cached at construction
// time by the Pool methods that build it (spec.md §4.2).
func (t Term) Sort() Sort {
	if t.Kind == KindSort {
		return Sort{Kind: SortSort}
	}

	return t.sort
}

// SortSort is a pseudo-kind used only as the Kind returned by Sort() for a
// KindSort term itself (a sort term has no sort of its own; callers that
// need the sort it denotes should use Pool.SortOf instead).
const SortSort SortKind = -1
