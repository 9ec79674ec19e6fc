package arith

import (
	"math/big"

	"github.com/ashgrove/alethecheck/pkg/term"
)

// LinearComb represents a linear combination of terms as a map from each
// non-constant term to its rational coefficient, plus a separate
// constant. It is also used to represent a normalized disequality, where
// Coeffs is its left side and Const its right side (spec.md §5).
type LinearComb struct {
	Coeffs map[term.TermRef]*big.Rat
	Const  *big.Rat
}

// newLinearComb returns the zero linear combination.
func newLinearComb() *LinearComb {
	return &LinearComb{Coeffs: make(map[term.TermRef]*big.Rat), Const: new(big.Rat)}
}

// insert accumulates value into key's coefficient, dropping the entry
// entirely if the result is zero (so an empty Coeffs map means "equal to
// the constant", the form la_generic's final check relies on).
func (l *LinearComb) insert(key term.TermRef, value *big.Rat) {
	if existing, ok := l.Coeffs[key]; ok {
		sum := new(big.Rat).Add(existing, value)
		if sum.Sign() == 0 {
			delete(l.Coeffs, key)
		} else {
			l.Coeffs[key] = sum
		}

		return
	}

	l.Coeffs[key] = new(big.Rat).Set(value)
}

// linearCombFromTerm builds a LinearComb from an arithmetic term, per
// spec.md §5: flattens the term's top-level sum structure, and for each
// leaf recognizes a "coefficient * variable" product (in either argument
// order, so long as only one side is a constant), folds bare constants
// into the running total, and otherwise treats the leaf itself as a
// unit-coefficient variable.
func linearCombFromTerm(pool *term.Pool, ref term.TermRef) (*LinearComb, bool) {
	result := newLinearComb()

	for _, item := range flattenSum(pool, ref) {
		polarityCoeff := big.NewRat(1, 1)
		if !item.Positive {
			polarityCoeff = big.NewRat(-1, 1)
		}

		t := pool.Get(item.Term)

		if t.Kind == term.KindOp && t.Op == term.Mult && len(t.Args) == 2 {
			aRat, aOk := simpleOperationToRational(pool, t.Args[0])
			bRat, bOk := simpleOperationToRational(pool, t.Args[1])

			var (
				varTerm term.TermRef
				coeff   *big.Rat
			)

			switch {
			case !aOk && !bOk:
				varTerm, coeff = item.Term, big.NewRat(1, 1)
			case !aOk && bOk:
				varTerm, coeff = t.Args[0], bRat
			case aOk && !bOk:
				varTerm, coeff = t.Args[1], aRat
			default:
				// Both sides are constants: not a linear term at all.
				return nil, false
			}

			result.insert(varTerm, new(big.Rat).Mul(coeff, polarityCoeff))

			continue
		}

		if r, ok := simpleOperationToRational(pool, item.Term); ok {
			result.Const = new(big.Rat).Add(result.Const, new(big.Rat).Mul(r, polarityCoeff))
		} else {
			result.insert(item.Term, polarityCoeff)
		}
	}

	return result, true
}

// add merges other into l in place and returns l, for chaining.
func (l *LinearComb) add(other *LinearComb) *LinearComb {
	for v, coeff := range other.Coeffs {
		l.insert(v, coeff)
	}

	l.Const = new(big.Rat).Add(l.Const, other.Const)

	return l
}

// mul scales every coefficient and the constant by scalar, in place.
func (l *LinearComb) mul(scalar *big.Rat) {
	for v, coeff := range l.Coeffs {
		l.Coeffs[v] = new(big.Rat).Mul(coeff, scalar)
	}

	l.Const = new(big.Rat).Mul(l.Const, scalar)
}

func (l *LinearComb) neg() {
	l.mul(big.NewRat(-1, 1))
}

// sub returns l - other, consuming other (which is negated in place).
func (l *LinearComb) sub(other *LinearComb) *LinearComb {
	other.neg()
	return l.add(other)
}

// floorRat returns the floor of a rational, using the fact that
// big.Rat's denominator is always normalized positive, so Euclidean
// integer division by it coincides with floor division.
func floorRat(r *big.Rat) *big.Rat {
	q := new(big.Int).Div(r.Num(), r.Denom())
	return new(big.Rat).SetInt(q)
}

// strengthen applies the strengthening rules to a disequality already
// oriented as "Coeffs > Const" or "Coeffs >= Const", per spec.md §5's
// strengthening step. When the constant scaled by a is an integer, ">="
// is left unchanged and a strict ">" becomes ">=" with its constant
// rounded down plus the smallest coefficient magnitude (1 if there are
// no coefficients). Otherwise either operator becomes ">=" with its
// constant rounded down plus one. The sorts of the terms are not
// consulted, and "=" passes through unchanged.
func strengthen(op term.Operator, d *LinearComb, a *big.Rat) term.Operator {
	scaled := new(big.Rat).Mul(d.Const, a)
	isInteger := scaled.IsInt()

	switch {
	case op == term.GreaterEq && isInteger:
		return op
	case op == term.GreaterThan && isInteger:
		min := big.NewRat(1, 1)
		first := true

		for _, coeff := range d.Coeffs {
			abs := new(big.Rat).Abs(coeff)
			if first || abs.Cmp(min) < 0 {
				min = abs
				first = false
			}
		}

		d.Const = new(big.Rat).Add(floorRat(d.Const), min)

		return term.GreaterEq
	case op == term.GreaterThan || op == term.GreaterEq:
		d.Const = new(big.Rat).Add(floorRat(d.Const), big.NewRat(1, 1))
		return term.GreaterEq
	case op == term.LessThan || op == term.LessEq:
		panic("strengthen: disequality must already be oriented as > or >=")
	default:
		return op
	}
}
