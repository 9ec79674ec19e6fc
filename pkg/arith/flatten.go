// Package arith implements the three linear-arithmetic proof rules
// (spec.md §5): la_rw_eq, la_disequality, and la_generic. The algorithms
// are ported term-for-term from the reference Carcara checker's
// linear_arithmetic module, operating on pool-interned TermRefs instead
// of reference-counted ASTs.
package arith

import (
	"math/big"

	"github.com/ashgrove/alethecheck/pkg/term"
)

// simpleOperationToRational evaluates a term built only from division and
// unary negation down to a rational constant, e.g. "(/ (- 5) 2)" becomes
// -2.5. It returns false if the term is not of this restricted shape.
func simpleOperationToRational(pool *term.Pool, ref term.TermRef) (*big.Rat, bool) {
	t := pool.Get(ref)

	if t.Kind == term.KindOp {
		switch t.Op {
		case term.RealDiv, term.IntDiv:
			if len(t.Args) != 2 {
				return nil, false
			}

			n, ok := simpleOperationToRational(pool, t.Args[0])
			if !ok {
				return nil, false
			}

			d, ok := simpleOperationToRational(pool, t.Args[1])
			if !ok || d.Sign() == 0 {
				return nil, false
			}

			return new(big.Rat).Quo(n, d), true
		case term.Sub:
			if len(t.Args) != 1 {
				return nil, false
			}

			inner, ok := simpleOperationToRational(pool, t.Args[0])
			if !ok {
				return nil, false
			}

			return new(big.Rat).Neg(inner), true
		}
	}

	return termAsRational(pool, ref)
}

// termAsRational extracts the rational value of a literal terminal.
func termAsRational(pool *term.Pool, ref term.TermRef) (*big.Rat, bool) {
	t := pool.Get(ref)
	if t.Kind != term.KindTerminal {
		return nil, false
	}

	switch t.Terminal.Kind {
	case term.IntLit:
		return new(big.Rat).SetInt(t.Terminal.Int), true
	case term.RealLit:
		return t.Terminal.Real, true
	default:
		return nil, false
	}
}

// signedTerm pairs a term with the polarity it occurs in within a
// flattened sum: true for positive, false for negated.
type signedTerm struct {
	Term     term.TermRef
	Positive bool
}

// flattenSum walks a nested chain of +, binary -, and unary - and returns
// the flat list of leaf terms together with their accumulated polarity,
// e.g. "(+ (- x y) (+ (- z) w))" becomes [(x,+) (y,-) (z,-) (w,+)].
func flattenSum(pool *term.Pool, ref term.TermRef) []signedTerm {
	t := pool.Get(ref)

	if t.Kind == term.KindOp {
		switch t.Op {
		case term.Add:
			var out []signedTerm

			for _, a := range t.Args {
				out = append(out, flattenSum(pool, a)...)
			}

			return out
		case term.Sub:
			if len(t.Args) == 1 {
				inner := flattenSum(pool, t.Args[0])
				for i := range inner {
					inner[i].Positive = !inner[i].Positive
				}

				return inner
			}

			out := flattenSum(pool, t.Args[0])

			for _, a := range t.Args[1:] {
				for _, st := range flattenSum(pool, a) {
					out = append(out, signedTerm{Term: st.Term, Positive: !st.Positive})
				}
			}

			return out
		}
	}

	return []signedTerm{{Term: ref, Positive: true}}
}

// negateDisequality takes a disequality term — an application of <, >,
// <=, >=, or the negation of any of those or of = — and returns the
// negated operator together with its operands. Negating "<" or "<="
// flips to ">=" or ">" respectively; negating "(not (<= t u))" strips the
// "not" and keeps the inner operator as-is, since double negation
// cancels.
func negateDisequality(pool *term.Pool, ref term.TermRef) (term.Operator, []term.TermRef, bool) {
	t := pool.Get(ref)
	if t.Kind != term.KindOp {
		return 0, nil, false
	}

	if t.Op == term.Not {
		if len(t.Args) != 1 {
			return 0, nil, false
		}

		inner := pool.Get(t.Args[0])
		if inner.Kind != term.KindOp {
			return 0, nil, false
		}

		switch inner.Op {
		case term.GreaterEq, term.LessEq, term.GreaterThan, term.LessThan, term.Equals:
			return inner.Op, inner.Args, true
		default:
			return 0, nil, false
		}
	}

	negated, ok := negateComparisonOperator(t.Op)
	if !ok {
		return 0, nil, false
	}

	return negated, t.Args, true
}

func negateComparisonOperator(op term.Operator) (term.Operator, bool) {
	switch op {
	case term.LessThan:
		return term.GreaterEq, true
	case term.GreaterThan:
		return term.LessEq, true
	case term.LessEq:
		return term.GreaterThan, true
	case term.GreaterEq:
		return term.LessThan, true
	default:
		return 0, false
	}
}
