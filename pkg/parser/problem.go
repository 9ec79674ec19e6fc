package parser

import (
	"fmt"

	"github.com/ashgrove/alethecheck/pkg/lexer"
	"github.com/ashgrove/alethecheck/pkg/term"
	log "github.com/sirupsen/logrus"
)

// logicPromotesIntegersToReals lists the logics under which bare integer
// numerals in terms are interpreted as reals (spec.md §4.4): the Real
// arithmetic logics never mix in an integer sort, so "1" there means 1.0.
var logicPromotesIntegersToReals = map[string]bool{
	"LRA": true, "QF_LRA": true, "QF_NRA": true, "QF_RDL": true,
	"QF_UFLRA": true, "QF_UFNRA": true, "UFLRA": true,
}

var knownIntegerLogics = map[string]bool{
	"AUFLIA": true, "AUFLIRA": true, "AUFNIRA": true, "LIA": true,
	"QF_ABV": true, "QF_AUFBV": true, "QF_AUFLIA": true, "QF_AX": true,
	"QF_BV": true, "QF_IDL": true, "QF_LIA": true, "QF_NIA": true,
	"QF_UF": true, "QF_UFBV": true, "QF_UFIDL": true, "QF_UFLIA": true,
	"UFNIA": true,
}

// ForceLogic sets the integer-vs-real promotion ahead of parsing, for
// callers that know the intended logic (the --logic flag of
// cmd/alethecheck). It does not override the problem text: a set-logic
// command read later by ParseProblem replaces the forced setting.
func (p *Parser) ForceLogic(logic string) error {
	switch {
	case logicPromotesIntegersToReals[logic]:
		p.interpretIntegersAsReals = true
	case knownIntegerLogics[logic]:
		p.interpretIntegersAsReals = false
	default:
		return fmt.Errorf("unknown logic %q", logic)
	}

	return nil
}

// ParseProblem reads an SMT-LIB script, recording declarations and
// definitions into the shared parser State and returning the set of
// asserted premises. Script commands it doesn't need are skipped by
// reading tokens until their enclosing parenthesis balances shut
// (spec.md §4.4).
func (p *Parser) ParseProblem() (map[term.TermRef]struct{}, error) {
	premises := make(map[term.TermRef]struct{})

	for p.cur.Kind != lexer.KindEOF {
		if err := p.expectOpenParen(); err != nil {
			return nil, err
		}

		tok, _, err := p.take()
		if err != nil {
			return nil, err
		}

		switch {
		case tok.Kind == lexer.KindReserved && tok.Reserved == lexer.DeclareFun:
			name, sort, err := p.parseDeclareFun()
			if err != nil {
				return nil, err
			}

			p.insertSortedVar(term.SortedVar{Name: name, Sort: sort})
		case tok.Kind == lexer.KindReserved && tok.Reserved == lexer.DeclareConst:
			name, err := p.expectSymbol()
			if err != nil {
				return nil, err
			}

			sortRef, err := p.parseSort()
			if err != nil {
				return nil, err
			}

			if err := p.expectCloseParen(); err != nil {
				return nil, err
			}

			p.insertSortedVar(term.SortedVar{Name: name, Sort: p.state.Pool.SortOf(sortRef)})
		case tok.Kind == lexer.KindReserved && tok.Reserved == lexer.DeclareSort:
			name, arity, err := p.parseDeclareSort()
			if err != nil {
				return nil, err
			}

			p.state.SortDeclarations[name] = arity
		case tok.Kind == lexer.KindReserved && tok.Reserved == lexer.DefineFun:
			name, def, err := p.parseDefineFun()
			if err != nil {
				return nil, err
			}

			p.state.FunctionDefs[name] = def
		case tok.Kind == lexer.KindReserved && tok.Reserved == lexer.Assert:
			t, err := p.parseTerm()
			if err != nil {
				return nil, err
			}

			if err := p.expectCloseParen(); err != nil {
				return nil, err
			}

			premises[t] = struct{}{}
		case tok.Kind == lexer.KindSymbol && tok.Symbol == "set-logic":
			logic, err := p.expectSymbol()
			if err != nil {
				return nil, err
			}

			switch {
			case logicPromotesIntegersToReals[logic]:
				p.interpretIntegersAsReals = true
			case knownIntegerLogics[logic]:
				p.interpretIntegersAsReals = false
			default:
				log.WithField("logic", logic).Warn("unknown logic")
				p.interpretIntegersAsReals = false
			}

			if err := p.expectCloseParen(); err != nil {
				return nil, err
			}
		default:
			if err := p.readUntilCloseParens(); err != nil {
				return nil, err
			}
		}
	}

	return premises, nil
}

// parseDeclareFun parses "(declare-fun <symbol> (<sort>*) <sort>)".
func (p *Parser) parseDeclareFun() (string, term.Sort, error) {
	name, err := p.expectSymbol()
	if err != nil {
		return "", term.Sort{}, err
	}

	if err := p.expectOpenParen(); err != nil {
		return "", term.Sort{}, err
	}

	paramRefs, err := parseSeq(p, false, (*Parser).parseSort)
	if err != nil {
		return "", term.Sort{}, err
	}

	retRef, err := p.parseSort()
	if err != nil {
		return "", term.Sort{}, err
	}

	if err := p.expectCloseParen(); err != nil {
		return "", term.Sort{}, err
	}

	all := append(paramRefs, retRef)

	var sort term.Sort
	if len(all) == 1 {
		sort = p.state.Pool.SortOf(all[0])
	} else {
		sort = term.Sort{Kind: term.SortFunction, Params: all}
	}

	return name, sort, nil
}

// parseDeclareSort parses "(declare-sort <symbol> <numeral>)".
func (p *Parser) parseDeclareSort() (string, int, error) {
	name, err := p.expectSymbol()
	if err != nil {
		return "", 0, err
	}

	arityPos := p.curPos

	arity, err := p.expectNumeral()
	if err != nil {
		return "", 0, err
	}

	if err := p.expectCloseParen(); err != nil {
		return "", 0, err
	}

	if !arity.IsInt64() || arity.Sign() < 0 {
		return "", 0, p.errorf(InvalidSortArity, arityPos, "invalid sort arity %s", arity)
	}

	return name, int(arity.Int64()), nil
}

// parseDefineFun parses "(define-fun <symbol> (<sorted-var>*) <sort>
// <term>)", pushing a scope to make the parameters visible while parsing
// the body.
func (p *Parser) parseDefineFun() (string, funcDef, error) {
	name, err := p.expectSymbol()
	if err != nil {
		return "", funcDef{}, err
	}

	if err := p.expectOpenParen(); err != nil {
		return "", funcDef{}, err
	}

	params, err := parseSeq(p, false, (*Parser).parseSortedVar)
	if err != nil {
		return "", funcDef{}, err
	}

	retRef, err := p.parseSort()
	if err != nil {
		return "", funcDef{}, err
	}

	retSort := p.state.Pool.SortOf(retRef)

	p.state.Sorts.PushScope()

	for _, param := range params {
		p.insertSortedVar(param)
	}

	body, err := p.parseTermExpectingSort(retSort)
	if err != nil {
		return "", funcDef{}, err
	}

	p.state.Sorts.PopScope()

	if err := p.expectCloseParen(); err != nil {
		return "", funcDef{}, err
	}

	return name, funcDef{Params: params, Body: body}, nil
}
