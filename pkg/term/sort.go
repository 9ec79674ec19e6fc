package term

import "fmt"

// SortKind tags the variant of a Sort value (spec.md §3).
type SortKind int

// The closed set of sort kinds.
const (
	SortBool SortKind = iota
	SortInt
	SortReal
	SortString
	SortArray
	SortFunction
	SortAtom
)

// Sort is the tagged variant spec.md §3 describes. Array and Function (and
// user-declared Atom) sorts carry Params: SortRefs (TermRefs into the pool
// entry holding that nested sort). Because every such nested sort is
// interned before it is referenced, two structurally equal Sorts always
// share the same Params handles — so SortsEqual below never needs to
// recurse through the pool.
type Sort struct {
	Kind SortKind
	// Name holds the declared-sort name, for SortAtom only.
	Name string
	// Params holds: [index, value] for SortArray; [arg1..argn, return] for
	// SortFunction; the type arguments for SortAtom. Unused otherwise.
	Params []TermRef
}

// SortsEqual implements the structural equality spec.md §3 requires for
// parameterized sorts.
func SortsEqual(a, b Sort) bool {
	if a.Kind != b.Kind {
		return false
	}

	if a.Kind == SortAtom && a.Name != b.Name {
		return false
	}

	if len(a.Params) != len(b.Params) {
		return false
	}

	for i := range a.Params {
		if a.Params[i] != b.Params[i] {
			return false
		}
	}

	return true
}

// IsArith reports whether a sort is Int or Real, the two sorts the
// arithmetic operators accept.
func (s Sort) IsArith() bool {
	return s.Kind == SortInt || s.Kind == SortReal
}

func (s Sort) key() string {
	k := fmt.Sprintf("sort:%d:%s", s.Kind, s.Name)
	for _, p := range s.Params {
		k += fmt.Sprintf(":%d", p)
	}

	return k
}

// Describe renders a sort as SMT-LIB-ish syntax for error messages,
// resolving nested SortRefs through the pool.
func Describe(p *Pool, s Sort) string {
	switch s.Kind {
	case SortBool:
		return "Bool"
	case SortInt:
		return "Int"
	case SortReal:
		return "Real"
	case SortString:
		return "String"
	case SortArray:
		return fmt.Sprintf("(Array %s %s)", Describe(p, p.SortOf(s.Params[0])), Describe(p, p.SortOf(s.Params[1])))
	case SortFunction:
		s2 := "(" // arg sorts, with the trailing entry being the return sort
		for i, ref := range s.Params {
			if i > 0 {
				s2 += " "
			}

			s2 += Describe(p, p.SortOf(ref))
		}

		return s2 + ")"
	case SortAtom:
		if len(s.Params) == 0 {
			return s.Name
		}

		d := "(" + s.Name

		for _, ref := range s.Params {
			d += " " + Describe(p, p.SortOf(ref))
		}

		return d + ")"
	default:
		return "<invalid-sort>"
	}
}
