package parser

import (
	"github.com/ashgrove/alethecheck/pkg/lexer"
	"github.com/ashgrove/alethecheck/pkg/proof"
	"github.com/ashgrove/alethecheck/pkg/stack"
	"github.com/ashgrove/alethecheck/pkg/term"
)

// subproofFrame holds the anchor data for one open subproof: the index of
// the step that will close it, and its assignment/variable arguments.
type subproofFrame struct {
	endStepIndex string
	assignments  []proof.AnchorAssignment
	variables    []term.SortedVar
}

// ParseProof parses a sequence of proof commands. Subproofs are assembled
// iteratively rather than by recursive descent, so that a proof with many
// nested subproofs cannot overflow the Go call stack (spec.md §4.3): each
// "anchor" pushes a fresh command buffer and its closing data onto
// explicit stacks, and each command whose index matches the innermost
// open anchor's end-step index pops them back off and folds the buffered
// commands into a single Subproof command in the enclosing scope.
func (p *Parser) ParseProof() ([]proof.Command, error) {
	commandsStack := stack.New[[]proof.Command]()
	commandsStack.Push(nil)

	endStepStack := stack.New[string]()
	frameStack := stack.New[subproofFrame]()

	for p.cur.Kind != lexer.KindEOF {
		if err := p.expectOpenParen(); err != nil {
			return nil, err
		}

		tok, pos, err := p.take()
		if err != nil {
			return nil, err
		}

		var index string

		var cmd proof.Command

		switch {
		case tok.Kind == lexer.KindReserved && tok.Reserved == lexer.Assume:
			idx, t, err := p.parseAssumeCommand()
			if err != nil {
				return nil, err
			}

			index, cmd = idx, proof.Command{Kind: proof.KindAssume, Index: idx, Term: t, Pos: pos}
		case tok.Kind == lexer.KindReserved && tok.Reserved == lexer.Step:
			step, err := p.parseStepCommand(pos)
			if err != nil {
				return nil, err
			}

			step.Pos = pos
			index, cmd = step.Index, step
		case tok.Kind == lexer.KindReserved && tok.Reserved == lexer.DefineFun:
			name, def, err := p.parseDefineFun()
			if err != nil {
				return nil, err
			}

			p.state.FunctionDefs[name] = def

			continue
		case tok.Kind == lexer.KindReserved && tok.Reserved == lexer.Anchor:
			frame, err := p.parseAnchorCommand()
			if err != nil {
				return nil, err
			}

			p.state.StepIndices.PushScope()
			commandsStack.Push(nil)
			endStepStack.Push(frame.endStepIndex)
			frameStack.Push(frame)

			continue
		default:
			return nil, p.errorf(UnexpectedToken, pos, "expected a proof command, found %s", tok)
		}

		if _, ok := p.state.StepIndices.Get(index); ok {
			return nil, p.errorf(RepeatedStepIndex, pos, "repeated step index %q", index)
		}

		*commandsStack.PeekPtr(0) = append(*commandsStack.PeekPtr(0), cmd)

		if !endStepStack.IsEmpty() && endStepStack.Top() == index {
			p.state.Sorts.PopScope()
			p.state.StepIndices.PopScope()

			commands := commandsStack.Pop()
			endStepStack.Pop()
			frame := frameStack.Pop()

			if len(commands) == 0 || commands[len(commands)-1].Kind != proof.KindStep {
				return nil, p.errorf(LastSubproofStepIsNotStep, pos, "last command of subproof ending at %q is not a step", index)
			}

			sub := proof.Command{
				Kind:           proof.KindSubproof,
				Pos:            pos,
				Commands:       commands,
				AssignmentArgs: frame.assignments,
				VariableArgs:   frame.variables,
			}

			*commandsStack.PeekPtr(0) = append(*commandsStack.PeekPtr(0), sub)
		}

		p.state.StepIndices.Insert(index, len(*commandsStack.PeekPtr(0))-1)
	}

	if commandsStack.Len() != 1 {
		return nil, p.errorf(UnclosedSubproof, p.curPos, "unclosed subproof ending at %q", endStepStack.Top())
	}

	return commandsStack.Pop(), nil
}

// parseAssumeCommand parses "(assume <symbol> <term>)", past the "(" and
// "assume" tokens.
func (p *Parser) parseAssumeCommand() (string, term.TermRef, error) {
	index, err := p.expectSymbol()
	if err != nil {
		return "", 0, err
	}

	t, err := p.parseTermExpectingSort(term.Sort{Kind: term.SortBool})
	if err != nil {
		return "", 0, err
	}

	if err := p.expectCloseParen(); err != nil {
		return "", 0, err
	}

	return index, t, nil
}

// parseStepCommand parses "(step <symbol> <clause> :rule <symbol> [:premises
// (...)] [:args (...)] [:discharge (...)])", past the "(" and "step"
// tokens. A "trust" rule discards the remainder of the command unchecked,
// matching the reference checker's escape hatch for unverified steps.
func (p *Parser) parseStepCommand(stepPos lexer.Position) (proof.Command, error) {
	index, err := p.expectSymbol()
	if err != nil {
		return proof.Command{}, err
	}

	clause, err := p.parseClause()
	if err != nil {
		return proof.Command{}, err
	}

	if err := p.expectKeywordNamed("rule"); err != nil {
		return proof.Command{}, err
	}

	rule, rulePos, err := p.parseRuleName()
	if err != nil {
		return proof.Command{}, err
	}

	if rule == "trust" {
		if err := p.readUntilCloseParens(); err != nil {
			return proof.Command{}, err
		}

		return proof.Command{Kind: proof.KindStep, Index: index, Clause: clause, Rule: rule}, nil
	}

	var premiseNames []string
	if p.currentIsKeyword("premises") {
		if err := p.advance(); err != nil {
			return proof.Command{}, err
		}

		if err := p.expectOpenParen(); err != nil {
			return proof.Command{}, err
		}

		premiseNames, err = parseSeq(p, true, (*Parser).expectSymbol)
		if err != nil {
			return proof.Command{}, err
		}
	}

	var args []proof.Arg
	if p.currentIsKeyword("args") {
		if err := p.advance(); err != nil {
			return proof.Command{}, err
		}

		if err := p.expectOpenParen(); err != nil {
			return proof.Command{}, err
		}

		args, err = parseSeq(p, true, (*Parser).parseProofArg)
		if err != nil {
			return proof.Command{}, err
		}
	}

	var discharge []string
	if p.currentIsKeyword("discharge") {
		if err := p.advance(); err != nil {
			return proof.Command{}, err
		}

		if err := p.expectOpenParen(); err != nil {
			return proof.Command{}, err
		}

		discharge, err = parseSeq(p, true, (*Parser).expectSymbol)
		if err != nil {
			return proof.Command{}, err
		}
	}

	if err := p.expectCloseParen(); err != nil {
		return proof.Command{}, err
	}

	premises := make([]proof.Premise, len(premiseNames))

	for i, name := range premiseNames {
		depth, position, ok := p.state.StepIndices.GetWithDepth(name)
		if !ok {
			return proof.Command{}, p.errorf(UndefinedStepIndex, rulePos, "undefined step index %q", name)
		}

		premises[i] = proof.Premise{Depth: depth, Position: position}
	}

	return proof.Command{
		Kind:      proof.KindStep,
		Index:     index,
		Clause:    clause,
		Rule:      rule,
		Premises:  premises,
		Args:      args,
		Discharge: discharge,
	}, nil
}

// expectKeywordNamed consumes the current token as the keyword named
// name, erroring if it is anything else.
func (p *Parser) expectKeywordNamed(name string) error {
	kw, err := p.expectKeyword()
	if err != nil {
		return err
	}

	if kw != name {
		return p.errorf(UnexpectedToken, p.curPos, "expected keyword %q, found %q", name, kw)
	}

	return nil
}

// parseRuleName accepts either a plain symbol or a reserved word spelled
// out as the rule name (the reference grammar allows both, since some
// rule names collide with reserved words like "let").
func (p *Parser) parseRuleName() (string, lexer.Position, error) {
	tok, pos, err := p.take()
	if err != nil {
		return "", pos, err
	}

	switch tok.Kind {
	case lexer.KindSymbol:
		return tok.Symbol, pos, nil
	case lexer.KindReserved:
		return tok.Reserved.String(), pos, nil
	default:
		return "", pos, p.errorf(UnexpectedToken, pos, "expected a rule name, found %s", tok)
	}
}

// parseProofArg parses one element of a step's ":args" list: either
// "(:= <symbol> <term>)" or a bare term.
func (p *Parser) parseProofArg() (proof.Arg, error) {
	if p.cur.Kind != lexer.KindOpenParen {
		t, err := p.parseTerm()
		if err != nil {
			return proof.Arg{}, err
		}

		return proof.Arg{Kind: proof.ArgTerm, Term: t}, nil
	}

	if err := p.advance(); err != nil {
		return proof.Arg{}, err
	}

	// The lexer reads ":=" as the keyword "=".
	if p.currentIsKeyword("=") {
		if err := p.advance(); err != nil {
			return proof.Arg{}, err
		}

		name, err := p.expectSymbol()
		if err != nil {
			return proof.Arg{}, err
		}

		value, err := p.parseTerm()
		if err != nil {
			return proof.Arg{}, err
		}

		if err := p.expectCloseParen(); err != nil {
			return proof.Arg{}, err
		}

		return proof.Arg{Kind: proof.ArgAssign, Name: name, Value: value}, nil
	}

	// The opening "(" was already consumed, so this is the body of a
	// parenthesized term rather than a fresh parseTerm call.
	t, err := p.parseApplication()
	if err != nil {
		return proof.Arg{}, err
	}

	return proof.Arg{Kind: proof.ArgTerm, Term: t}, nil
}

// parseAnchorCommand parses "(anchor :step <symbol> [:args (...)])", past
// the "(" and "anchor" tokens. It opens a fresh sorts scope for the
// subproof's arguments; the caller is responsible for popping it once the
// subproof's closing step is reached.
func (p *Parser) parseAnchorCommand() (subproofFrame, error) {
	if err := p.expectKeywordNamed("step"); err != nil {
		return subproofFrame{}, err
	}

	endStepIndex, err := p.expectSymbol()
	if err != nil {
		return subproofFrame{}, err
	}

	p.state.Sorts.PushScope()

	var assignments []proof.AnchorAssignment

	var variables []term.SortedVar

	if p.currentIsKeyword("args") {
		if err := p.advance(); err != nil {
			return subproofFrame{}, err
		}

		if err := p.expectOpenParen(); err != nil {
			return subproofFrame{}, err
		}

		_, err := parseSeq(p, true, func(p *Parser) (struct{}, error) {
			assign, isAssign, err := p.parseAnchorArgument()
			if err != nil {
				return struct{}{}, err
			}

			if isAssign {
				assignments = append(assignments, assign)
			} else {
				variables = append(variables, assign.Var)
			}

			return struct{}{}, nil
		})
		if err != nil {
			return subproofFrame{}, err
		}
	}

	if err := p.expectCloseParen(); err != nil {
		return subproofFrame{}, err
	}

	return subproofFrame{endStepIndex: endStepIndex, assignments: assignments, variables: variables}, nil
}

// parseAnchorArgument parses one anchor argument: either an assignment
// "(:= <sorted-var> <value>)" (isAssign true) or a plain variable
// "(<symbol> <sort>)" (isAssign false, returned via assign.Var). If an
// assignment's value is a bare symbol that does not name a function
// definition, it is treated as introducing a second new variable rather
// than referencing a term (the reference parser's special case for
// "(:= (x Int) y)"-style alpha-renaming arguments).
func (p *Parser) parseAnchorArgument() (proof.AnchorAssignment, bool, error) {
	if err := p.expectOpenParen(); err != nil {
		return proof.AnchorAssignment{}, false, err
	}

	if p.currentIsKeyword("=") {
		if err := p.advance(); err != nil {
			return proof.AnchorAssignment{}, false, err
		}

		v, err := p.parseSortedVar()
		if err != nil {
			return proof.AnchorAssignment{}, false, err
		}

		p.insertSortedVar(v)

		var value term.TermRef

		if p.cur.Kind == lexer.KindSymbol {
			if _, isFuncDef := p.state.FunctionDefs[p.cur.Symbol]; !isFuncDef {
				name, err := p.expectSymbol()
				if err != nil {
					return proof.AnchorAssignment{}, false, err
				}

				p.insertSortedVar(term.SortedVar{Name: name, Sort: v.Sort})
				value = p.state.Pool.MakeVar(name, v.Sort)

				if err := p.expectCloseParen(); err != nil {
					return proof.AnchorAssignment{}, false, err
				}

				return proof.AnchorAssignment{Var: v, Value: value}, true, nil
			}
		}

		value, err = p.parseTermExpectingSort(v.Sort)
		if err != nil {
			return proof.AnchorAssignment{}, false, err
		}

		if err := p.expectCloseParen(); err != nil {
			return proof.AnchorAssignment{}, false, err
		}

		return proof.AnchorAssignment{Var: v, Value: value}, true, nil
	}

	name, err := p.expectSymbol()
	if err != nil {
		return proof.AnchorAssignment{}, false, err
	}

	sortRef, err := p.parseSort()
	if err != nil {
		return proof.AnchorAssignment{}, false, err
	}

	v := term.SortedVar{Name: name, Sort: p.state.Pool.SortOf(sortRef)}
	p.insertSortedVar(v)

	if err := p.expectCloseParen(); err != nil {
		return proof.AnchorAssignment{}, false, err
	}

	return proof.AnchorAssignment{Var: v}, false, nil
}
