package arith

import (
	"math/big"

	"github.com/ashgrove/alethecheck/pkg/proof"
	"github.com/ashgrove/alethecheck/pkg/term"
)

// LaRwEq checks the la_rw_eq rule: the single conclusion literal must be
// "(= (= t u) (and (<= t u) (<= u t)))" for the same t and u on both
// sides (spec.md §5).
func LaRwEq(pool *term.Pool, conclusion []term.TermRef) bool {
	if len(conclusion) != 1 {
		return false
	}

	top := pool.Get(conclusion[0])
	if !isOp(top, term.Equals, 2) {
		return false
	}

	left := pool.Get(top.Args[0])
	if !isOp(left, term.Equals, 2) {
		return false
	}

	t1, u1 := left.Args[0], left.Args[1]

	right := pool.Get(top.Args[1])
	if !isOp(right, term.And, 2) {
		return false
	}

	le1 := pool.Get(right.Args[0])
	if !isOp(le1, term.LessEq, 2) {
		return false
	}

	t2, u2 := le1.Args[0], le1.Args[1]

	le2 := pool.Get(right.Args[1])
	if !isOp(le2, term.LessEq, 2) {
		return false
	}

	u3, t3 := le2.Args[0], le2.Args[1]

	return t1 == t2 && t2 == t3 && u1 == u2 && u2 == u3
}

// LaDisequality checks the la_disequality rule: the single conclusion
// literal must be "(or (= t1 t2) (not (<= t1 t2)) (not (<= t2 t1)))" for
// consistent t1/t2 throughout (spec.md §5).
func LaDisequality(pool *term.Pool, conclusion []term.TermRef) bool {
	if len(conclusion) != 1 {
		return false
	}

	top := pool.Get(conclusion[0])
	if !isOp(top, term.Or, 3) {
		return false
	}

	eq := pool.Get(top.Args[0])
	if !isOp(eq, term.Equals, 2) {
		return false
	}

	t1a, t2a := eq.Args[0], eq.Args[1]

	not1 := pool.Get(top.Args[1])
	if !isOp(not1, term.Not, 1) {
		return false
	}

	le1 := pool.Get(not1.Args[0])
	if !isOp(le1, term.LessEq, 2) {
		return false
	}

	t1b, t2b := le1.Args[0], le1.Args[1]

	not2 := pool.Get(top.Args[2])
	if !isOp(not2, term.Not, 1) {
		return false
	}

	le2 := pool.Get(not2.Args[0])
	if !isOp(le2, term.LessEq, 2) {
		return false
	}

	t2c, t1c := le2.Args[0], le2.Args[1]

	return t1a == t1b && t1b == t1c && t2a == t2b && t2b == t2c
}

// LaGeneric checks the la_generic rule: each conclusion literal, negated,
// scaled by its corresponding argument, and summed together, must yield
// a contradictory disequality — i.e. the linear combination of the
// negated literals is unsatisfiable (spec.md §5, the rule underlying
// Farkas'-lemma-style linear arithmetic refutations).
func LaGeneric(pool *term.Pool, conclusion []term.TermRef, args []proof.Arg) bool {
	if len(conclusion) != len(args) {
		return false
	}

	accOp := term.Equals
	acc := newLinearComb()

	for i, phi := range conclusion {
		a, ok := coefficientOf(pool, args[i])
		if !ok {
			return false
		}

		op, operands, ok := negateDisequality(pool, phi)
		if !ok || len(operands) != 2 {
			return false
		}

		s1, ok1 := linearCombFromTerm(pool, operands[0])
		s2, ok2 := linearCombFromTerm(pool, operands[1])

		if !ok1 || !ok2 {
			return false
		}

		d := s1.sub(s2)
		d.Const = new(big.Rat).Neg(d.Const)

		switch op {
		case term.LessThan:
			d.neg()
			op = term.GreaterThan
		case term.LessEq:
			d.neg()
			op = term.GreaterEq
		}

		op = strengthen(op, d, a)

		scale := new(big.Rat).Abs(a)
		if op == term.Equals {
			scale = a
		}

		d.mul(scale)

		acc.add(d)

		switch {
		case op == term.GreaterEq:
			accOp = term.GreaterEq
		case accOp == term.Equals && op == term.GreaterThan:
			accOp = term.GreaterThan
		}
	}

	if len(acc.Coeffs) != 0 {
		return false
	}

	return !disequalityHolds(accOp, acc.Const)
}

// coefficientOf reads a step argument as the rational scaling factor
// la_generic applies to its corresponding conclusion literal. Assignment
// arguments are never valid here.
func coefficientOf(pool *term.Pool, a proof.Arg) (*big.Rat, bool) {
	if a.Kind != proof.ArgTerm {
		return nil, false
	}

	return simpleOperationToRational(pool, a.Term)
}

// disequalityHolds reports whether "0 op right" is satisfied, i.e.
// whether the final folded disequality is NOT a contradiction.
func disequalityHolds(op term.Operator, right *big.Rat) bool {
	switch right.Sign() {
	case -1:
		return op == term.GreaterThan || op == term.GreaterEq
	case 0:
		return op == term.LessEq || op == term.GreaterEq || op == term.Equals
	default:
		return op == term.LessThan || op == term.LessEq
	}
}

func isOp(t term.Term, op term.Operator, arity int) bool {
	return t.Kind == term.KindOp && t.Op == op && len(t.Args) == arity
}
