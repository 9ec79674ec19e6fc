package parser

import (
	"github.com/ashgrove/alethecheck/pkg/lexer"
	"github.com/ashgrove/alethecheck/pkg/term"
)

// parseSort parses an SMT-LIB sort expression, interning it and returning
// its SortRef. A bare symbol names Bool/Int/Real/String or a nullary
// user-declared sort; a parenthesized form names Array or an n-ary
// user-declared sort (spec.md §4.2).
func (p *Parser) parseSort() (term.TermRef, error) {
	pos := p.curPos

	var name string

	var argRefs []term.TermRef

	switch p.cur.Kind {
	case lexer.KindSymbol:
		sym, err := p.expectSymbol()
		if err != nil {
			return 0, err
		}

		name = sym
	case lexer.KindOpenParen:
		if err := p.advance(); err != nil {
			return 0, err
		}

		sym, err := p.expectSymbol()
		if err != nil {
			return 0, err
		}

		name = sym

		args, err := parseSeq(p, true, (*Parser).parseSort)
		if err != nil {
			return 0, err
		}

		argRefs = args
	default:
		return 0, p.errorf(UnexpectedToken, pos, "expected a sort, found %s", p.cur)
	}

	var sort term.Sort

	switch name {
	case "Bool", "Int", "Real", "String":
		if len(argRefs) != 0 {
			return 0, p.errorf(WrongNumberOfArgs, pos, "sort %q takes no arguments, got %d", name, len(argRefs))
		}

		switch name {
		case "Bool":
			sort = term.Sort{Kind: term.SortBool}
		case "Int":
			sort = term.Sort{Kind: term.SortInt}
		case "Real":
			sort = term.Sort{Kind: term.SortReal}
		case "String":
			sort = term.Sort{Kind: term.SortString}
		}
	case "Array":
		if len(argRefs) != 2 {
			return 0, p.errorf(WrongNumberOfArgs, pos, "Array takes 2 arguments, got %d", len(argRefs))
		}

		sort = term.Sort{Kind: term.SortArray, Params: argRefs}
	default:
		arity, ok := p.state.SortDeclarations[name]
		if !ok {
			return 0, p.errorf(UndefinedSort, pos, "undefined sort %q", name)
		}

		if arity != len(argRefs) {
			return 0, p.errorf(WrongNumberOfArgs, pos, "sort %q takes %d argument(s), got %d", name, arity, len(argRefs))
		}

		sort = term.Sort{Kind: term.SortAtom, Name: name, Params: argRefs}
	}

	return p.state.Pool.MakeSort(sort), nil
}

// parseSortedVar parses a "(<symbol> <sort>)" pair, as used for quantifier
// bindings, function parameters, and anchor variable arguments.
func (p *Parser) parseSortedVar() (term.SortedVar, error) {
	if err := p.expectOpenParen(); err != nil {
		return term.SortedVar{}, err
	}

	name, err := p.expectSymbol()
	if err != nil {
		return term.SortedVar{}, err
	}

	sortRef, err := p.parseSort()
	if err != nil {
		return term.SortedVar{}, err
	}

	if err := p.expectCloseParen(); err != nil {
		return term.SortedVar{}, err
	}

	return term.SortedVar{Name: name, Sort: p.state.Pool.SortOf(sortRef)}, nil
}

func (p *Parser) insertSortedVar(v term.SortedVar) {
	p.state.Sorts.Insert(v.Name, v.Sort)
}
