// Package parser implements the SMT-LIB problem parser and the Alethe
// proof parser described in spec.md §4.4: sort inference and checking
// during construction, scoped symbol tables, iterative (non-recursive)
// subproof assembly, integer-as-real promotion, and function-definition
// inlining via capture-avoiding substitution.
package parser

import (
	"github.com/ashgrove/alethecheck/pkg/lexer"
	"github.com/ashgrove/alethecheck/pkg/symtab"
	"github.com/ashgrove/alethecheck/pkg/term"
	log "github.com/sirupsen/logrus"
)

// State is the parser state shared between the problem parser and the
// proof parser, so that declarations, function definitions, and the term
// pool made while reading the problem remain visible while reading the
// proof (spec.md §4.4).
type State struct {
	Sorts            *symtab.Table[string, term.Sort]
	FunctionDefs     map[string]funcDef
	Pool             *term.Pool
	SortDeclarations map[string]int
	StepIndices      *symtab.Table[string, int]
}

// funcDef mirrors proof.FunctionDef but is kept internal to avoid an
// import cycle, since pkg/proof depends on pkg/term only.
type funcDef struct {
	Params []term.SortedVar
	Body   term.TermRef
}

// NewState constructs a fresh parser state, seeding "true" and "false" as
// pre-bound Bool-sorted symbols the way the reference implementation does
// (see SPEC_FULL.md's supplemented-features note 2).
func NewState() *State {
	pool := term.NewPool()
	sorts := symtab.New[string, term.Sort]()
	sorts.Insert("true", term.Sort{Kind: term.SortBool})
	sorts.Insert("false", term.Sort{Kind: term.SortBool})

	return &State{
		Sorts:            sorts,
		FunctionDefs:      make(map[string]funcDef),
		Pool:             pool,
		SortDeclarations: make(map[string]int),
		StepIndices:      symtab.New[string, int](),
	}
}

// Parser holds one lexer's worth of one-token lookahead plus the shared
// State. A Parser is constructed once for the problem text, and a second
// time (sharing the same State) for the proof text.
type Parser struct {
	lex    *lexer.Lexer
	cur    lexer.Token
	curPos lexer.Position

	state *State

	// InterpretIntegersAsReals is set by `set-logic` per spec.md §4.4; once
	// true, bare numerals are parsed as rational terminals.
	interpretIntegersAsReals bool

	log *log.Entry
}

// New constructs a parser over source text with a fresh State.
func New(text string) (*Parser, error) {
	return NewWithState(text, NewState())
}

// NewWithState constructs a parser over source text, reusing an existing
// State (as when moving from the problem parser to the proof parser).
func NewWithState(text string, state *State) (*Parser, error) {
	p := &Parser{
		lex:   lexer.New(text),
		state: state,
		log:   log.WithField("component", "parser"),
	}

	if err := p.advance(); err != nil {
		return nil, err
	}

	return p, nil
}

// State returns the parser's shared state, for handing off to a second
// Parser instance (problem -> proof).
func (p *Parser) State() *State {
	return p.state
}

// advance reads the next token from the lexer into p.cur/p.curPos.
func (p *Parser) advance() error {
	tok, pos, err := p.lex.Next()
	if err != nil {
		lerr := err.(*lexer.Error)
		return &Error{Pos: lerr.Pos, Reason: LexErr, Msg: lerr.Msg}
	}

	p.cur, p.curPos = tok, pos

	return nil
}
