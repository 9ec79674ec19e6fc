package parser

import (
	"math/big"

	"github.com/ashgrove/alethecheck/pkg/lexer"
	"github.com/ashgrove/alethecheck/pkg/term"
)

// parseTerm parses a single term (spec.md §4.1/§4.2): a numeral, decimal,
// string, symbol (variable or nullary function-def reference), or a
// parenthesized application.
func (p *Parser) parseTerm() (term.TermRef, error) {
	tok, pos, err := p.take()
	if err != nil {
		return 0, err
	}

	switch tok.Kind {
	case lexer.KindNumeral:
		if p.interpretIntegersAsReals {
			return p.state.Pool.MakeReal(new(big.Rat).SetInt(tok.Numeral)), nil
		}

		return p.state.Pool.MakeInt(tok.Numeral), nil
	case lexer.KindDecimal:
		return p.state.Pool.MakeReal(tok.Decimal), nil
	case lexer.KindString:
		return p.state.Pool.MakeString(tok.Str), nil
	case lexer.KindSymbol:
		if def, ok := p.state.FunctionDefs[tok.Symbol]; ok {
			if len(def.Params) != 0 {
				return 0, p.errorf(WrongNumberOfArgs, pos, "function %q expects %d argument(s), got 0", tok.Symbol, len(def.Params))
			}

			return def.Body, nil
		}

		return p.makeVar(tok.Symbol, pos)
	case lexer.KindOpenParen:
		return p.parseApplication()
	default:
		return 0, p.errorf(UnexpectedToken, pos, "expected a term, found %s", tok)
	}
}

func (p *Parser) makeVar(name string, pos lexer.Position) (term.TermRef, error) {
	sort, ok := p.state.Sorts.Get(name)
	if !ok {
		return 0, p.errorf(UndefinedIden, pos, "undefined identifier %q", name)
	}

	return p.state.Pool.MakeVar(name, sort), nil
}

// parseTermExpectingSort parses a term and checks its sort matches
// expected, as required at assumption/assertion/step-conclusion sites.
func (p *Parser) parseTermExpectingSort(expected term.Sort) (term.TermRef, error) {
	pos := p.curPos

	t, err := p.parseTerm()
	if err != nil {
		return 0, err
	}

	got := p.state.Pool.Get(t).Sort()
	if !term.SortsEqual(expected, got) {
		return 0, p.sortError(pos, &term.SortError{Pool: p.state.Pool, Expected: []term.Sort{expected}, Got: got})
	}

	return t, nil
}

// parseClause parses "(cl <term>*)", where every term must be Bool-sorted.
func (p *Parser) parseClause() ([]term.TermRef, error) {
	if err := p.expectOpenParen(); err != nil {
		return nil, err
	}

	if err := p.expectReserved(lexer.Cl); err != nil {
		return nil, err
	}

	return parseSeq(p, false, func(p *Parser) (term.TermRef, error) {
		return p.parseTermExpectingSort(term.Sort{Kind: term.SortBool})
	})
}

func (p *Parser) parseQuantifier(q term.Quantifier) (term.TermRef, error) {
	if err := p.expectOpenParen(); err != nil {
		return 0, err
	}

	p.state.Sorts.PushScope()

	bindings, err := parseSeq(p, true, func(p *Parser) (term.SortedVar, error) {
		v, err := p.parseSortedVar()
		if err != nil {
			return term.SortedVar{}, err
		}

		p.insertSortedVar(v)

		return v, nil
	})
	if err != nil {
		return 0, err
	}

	body, err := p.parseTermExpectingSort(term.Sort{Kind: term.SortBool})
	if err != nil {
		return 0, err
	}

	p.state.Sorts.PopScope()

	if err := p.expectCloseParen(); err != nil {
		return 0, err
	}

	return p.state.Pool.MakeQuant(q, bindings, body), nil
}

func (p *Parser) parseChoiceTerm() (term.TermRef, error) {
	if err := p.expectOpenParen(); err != nil {
		return 0, err
	}

	v, err := p.parseSortedVar()
	if err != nil {
		return 0, err
	}

	p.insertSortedVar(v)

	if err := p.expectCloseParen(); err != nil {
		return 0, err
	}

	inner, err := p.parseTerm()
	if err != nil {
		return 0, err
	}

	if err := p.expectCloseParen(); err != nil {
		return 0, err
	}

	return p.state.Pool.MakeChoice(v, inner), nil
}

func (p *Parser) parseLetTerm() (term.TermRef, error) {
	if err := p.expectOpenParen(); err != nil {
		return 0, err
	}

	p.state.Sorts.PushScope()

	binds, err := parseSeq(p, true, func(p *Parser) (term.Binding, error) {
		if err := p.expectOpenParen(); err != nil {
			return term.Binding{}, err
		}

		name, err := p.expectSymbol()
		if err != nil {
			return term.Binding{}, err
		}

		value, err := p.parseTerm()
		if err != nil {
			return term.Binding{}, err
		}

		p.insertSortedVar(term.SortedVar{Name: name, Sort: p.state.Pool.Get(value).Sort()})

		if err := p.expectCloseParen(); err != nil {
			return term.Binding{}, err
		}

		return term.Binding{Name: name, Value: value}, nil
	})
	if err != nil {
		return 0, err
	}

	inner, err := p.parseTerm()
	if err != nil {
		return 0, err
	}

	if err := p.expectCloseParen(); err != nil {
		return 0, err
	}

	p.state.Sorts.PopScope()

	return p.state.Pool.MakeLet(binds, inner), nil
}

// parseAnnotatedTerm parses a "(! <term> <attr>*)" form. It supports the
// ":named" attribute (registering a nullary function definition for the
// term) and discards ":pattern" attributes; any other attribute is an
// error (matching the reference implementation rather than the full
// SMT-LIB attribute set).
func (p *Parser) parseAnnotatedTerm() (term.TermRef, error) {
	inner, err := p.parseTerm()
	if err != nil {
		return 0, err
	}

	_, err = parseSeq(p, true, func(p *Parser) (struct{}, error) {
		attrPos := p.curPos

		attr, err := p.expectKeyword()
		if err != nil {
			return struct{}{}, err
		}

		switch attr {
		case "named":
			name, err := p.expectSymbol()
			if err != nil {
				return struct{}{}, err
			}

			p.state.FunctionDefs[name] = funcDef{Body: inner}

			return struct{}{}, nil
		case "pattern":
			if err := p.expectOpenParen(); err != nil {
				return struct{}{}, err
			}

			_, err := parseSeq(p, true, (*Parser).parseTerm)

			return struct{}{}, err
		default:
			return struct{}{}, p.errorf(UnknownAttribute, attrPos, "unknown attribute %q", attr)
		}
	})
	if err != nil {
		return 0, err
	}

	return inner, nil
}

// parseApplication parses the body of a parenthesized term, the "(" of
// which has already been consumed: a reserved-word form (quantifier,
// choice, let, annotation), a built-in operator application, a
// user-defined-function application (inlined by substitution), or a
// generic function application.
func (p *Parser) parseApplication() (term.TermRef, error) {
	headPos := p.curPos

	if p.cur.Kind == lexer.KindReserved {
		r := p.cur.Reserved
		if err := p.advance(); err != nil {
			return 0, err
		}

		switch r {
		case lexer.Exists:
			return p.parseQuantifier(term.Exists)
		case lexer.Forall:
			return p.parseQuantifier(term.Forall)
		case lexer.Choice:
			return p.parseChoiceTerm()
		case lexer.Bang:
			return p.parseAnnotatedTerm()
		case lexer.Let:
			return p.parseLetTerm()
		default:
			return 0, p.errorf(UnexpectedToken, headPos, "unexpected reserved word %s", r)
		}
	}

	if p.cur.Kind == lexer.KindSymbol {
		if op, ok := term.OperatorFromSymbol(p.cur.Symbol); ok {
			if err := p.advance(); err != nil {
				return 0, err
			}

			args, err := parseSeq(p, true, (*Parser).parseTerm)
			if err != nil {
				return 0, err
			}

			result, err := p.state.Pool.MakeOp(op, args)
			if err != nil {
				return 0, p.sortError(headPos, err)
			}

			return result, nil
		}

		if def, ok := p.state.FunctionDefs[p.cur.Symbol]; ok {
			return p.parseDefinedApplication(def, headPos)
		}
	}

	fn, err := p.parseTerm()
	if err != nil {
		return 0, err
	}

	args, err := parseSeq(p, true, (*Parser).parseTerm)
	if err != nil {
		return 0, err
	}

	result, err := p.state.Pool.MakeApp(fn, args)
	if err != nil {
		return 0, p.sortError(headPos, err)
	}

	return result, nil
}

// parseDefinedApplication inlines a call to a user `define-fun`: it
// sort-checks the arguments against the definition's parameters, then
// beta-reduces by substituting each parameter variable for its argument
// in the definition body (spec.md §4.1).
func (p *Parser) parseDefinedApplication(def funcDef, headPos lexer.Position) (term.TermRef, error) {
	if _, err := p.expectSymbol(); err != nil { // consume the function name
		return 0, err
	}

	args, err := parseSeq(p, true, (*Parser).parseTerm)
	if err != nil {
		return 0, err
	}

	if len(args) != len(def.Params) {
		return 0, p.errorf(WrongNumberOfArgs, headPos, "function expects %d argument(s), got %d", len(def.Params), len(args))
	}

	subst := make(term.Substitution, len(args))

	for i, param := range def.Params {
		got := p.state.Pool.Get(args[i]).Sort()
		if !term.SortsEqual(param.Sort, got) {
			return 0, p.sortError(headPos, &term.SortError{Pool: p.state.Pool, Expected: []term.Sort{param.Sort}, Got: got})
		}

		subst[p.state.Pool.MakeVar(param.Name, param.Sort)] = args[i]
	}

	return p.state.Pool.ApplySubstitution(subst, def.Body), nil
}
