package term

// MakeOp constructs and sort-checks an operator application, per the table
// in spec.md §4.2.
func (p *Pool) MakeOp(op Operator, args []TermRef) (TermRef, error) {
	sorts := make([]Sort, len(args))
	for i, a := range args {
		sorts[i] = p.terms[a].Sort()
	}

	switch op {
	case Not:
		if err := assertNumArgs(args, 1); err != nil {
			return 0, err
		}

		if err := assertEq(p, boolSort, sorts[0]); err != nil {
			return 0, err
		}
	case Implies:
		if err := assertNumArgsAtLeast(args, 2); err != nil {
			return 0, err
		}

		for _, s := range sorts {
			if err := assertEq(p, boolSort, s); err != nil {
				return 0, err
			}
		}
	case Or, And, Xor:
		if err := assertNumArgsAtLeast(args, 1); err != nil {
			return 0, err
		}

		for _, s := range sorts {
			if err := assertEq(p, boolSort, s); err != nil {
				return 0, err
			}
		}
	case Equals, Distinct:
		if err := assertNumArgsAtLeast(args, 2); err != nil {
			return 0, err
		}

		if err := assertAllEq(p, sorts); err != nil {
			return 0, err
		}
	case Ite:
		if err := assertNumArgs(args, 3); err != nil {
			return 0, err
		}

		if err := assertEq(p, boolSort, sorts[0]); err != nil {
			return 0, err
		}

		if err := assertEq(p, sorts[1], sorts[2]); err != nil {
			return 0, err
		}
	case Add, Mult, IntDiv, RealDiv:
		if err := assertNumArgsAtLeast(args, 2); err != nil {
			return 0, err
		}

		if err := assertOneOf(p, []Sort{intSort, realSort}, sorts[0]); err != nil {
			return 0, err
		}

		if err := assertAllEq(p, sorts); err != nil {
			return 0, err
		}
	case Sub:
		// Sub can be called with only one argument, meaning negation rather
		// than subtraction.
		if err := assertNumArgsAtLeast(args, 1); err != nil {
			return 0, err
		}

		if err := assertOneOf(p, []Sort{intSort, realSort}, sorts[0]); err != nil {
			return 0, err
		}

		if err := assertAllEq(p, sorts); err != nil {
			return 0, err
		}
	case LessThan, GreaterThan, LessEq, GreaterEq:
		if err := assertNumArgsAtLeast(args, 2); err != nil {
			return 0, err
		}
		// Arguments need not all have the same sort, just each be Int or
		// Real — mixed comparisons are allowed.
		for _, s := range sorts {
			if err := assertOneOf(p, []Sort{intSort, realSort}, s); err != nil {
				return 0, err
			}
		}
	case Select:
		if err := assertNumArgs(args, 2); err != nil {
			return 0, err
		}

		if sorts[0].Kind != SortArray {
			y := p.MakeSort(sorts[1])
			element := p.MakeSort(Sort{Kind: SortAtom, Name: "Y"})

			return 0, &SortError{
				Pool:     p,
				Expected: []Sort{{Kind: SortArray, Params: []TermRef{y, element}}},
				Got:      sorts[0],
			}
		}
	case Store:
		if err := assertNumArgs(args, 3); err != nil {
			return 0, err
		}

		if sorts[0].Kind != SortArray {
			x := p.MakeSort(sorts[0])
			y := p.MakeSort(sorts[1])

			return 0, &SortError{
				Pool:     p,
				Expected: []Sort{{Kind: SortArray, Params: []TermRef{x, y}}},
				Got:      sorts[0],
			}
		}

		x, y := p.SortOf(sorts[0].Params[0]), p.SortOf(sorts[0].Params[1])

		if err := assertEq(p, x, sorts[1]); err != nil {
			return 0, err
		}

		if err := assertEq(p, y, sorts[2]); err != nil {
			return 0, err
		}
	}

	return p.add(Term{Kind: KindOp, Op: op, Args: args, sort: opResultSort(p, op, sorts)}), nil
}

func opResultSort(p *Pool, op Operator, sorts []Sort) Sort {
	switch op {
	case Not, Implies, Or, And, Xor, Equals, Distinct, LessThan, GreaterThan, LessEq, GreaterEq:
		return boolSort
	case Ite:
		return sorts[1]
	case Add, Sub, Mult, IntDiv, RealDiv:
		return sorts[0]
	case Select:
		return p.SortOf(sorts[0].Params[1])
	case Store:
		return sorts[0]
	default:
		panic("opResultSort: unknown operator")
	}
}

// MakeApp constructs and sort-checks a generic function application.
func (p *Pool) MakeApp(fn TermRef, args []TermRef) (TermRef, error) {
	fnSort := p.terms[fn].Sort()
	if fnSort.Kind != SortFunction {
		return 0, &NotAFunctionError{Pool: p, Got: fnSort}
	}

	if err := assertNumArgs(args, len(fnSort.Params)-1); err != nil {
		return 0, err
	}

	for i, a := range args {
		paramSort := p.SortOf(fnSort.Params[i])
		if err := assertEq(p, paramSort, p.terms[a].Sort()); err != nil {
			return 0, err
		}
	}

	ret := p.SortOf(fnSort.Params[len(fnSort.Params)-1])

	return p.add(Term{Kind: KindApp, Fn: fn, Args: args, sort: ret}), nil
}

// MakeQuant interns a quantifier term. body must already have Bool sort;
// the caller is responsible for that check (it must happen while the
// binder scope is still open, see pkg/parser).
func (p *Pool) MakeQuant(q Quantifier, bindings []SortedVar, body TermRef) TermRef {
	return p.add(Term{Kind: KindQuant, Quantifier: q, Bindings: bindings, Body: body, sort: boolSort})
}

// MakeChoice interns a choice (Hilbert epsilon) term, whose sort is that of
// the bound variable.
func (p *Pool) MakeChoice(v SortedVar, body TermRef) TermRef {
	return p.add(Term{Kind: KindChoice, Bindings: []SortedVar{v}, Body: body, sort: v.Sort})
}

// MakeLet interns a `let` term, whose sort is that of its inner body.
func (p *Pool) MakeLet(bindings []Binding, body TermRef) TermRef {
	return p.add(Term{Kind: KindLet, LetBinds: bindings, Body: body, sort: p.terms[body].Sort()})
}
