package parser

import (
	"fmt"

	"github.com/ashgrove/alethecheck/pkg/lexer"
	"github.com/ashgrove/alethecheck/pkg/term"
)

// Reason enumerates the parser error taxonomy from spec.md §4.4/§7.
type Reason int

// The enumerated parser error reasons.
const (
	UnexpectedToken Reason = iota
	EmptySequence
	UndefinedIden
	UndefinedStepIndex
	RepeatedStepIndex
	UndefinedSort
	WrongNumberOfArgs
	NotAFunction
	InvalidSortArity
	UnclosedSubproof
	LastSubproofStepIsNotStep
	UnknownAttribute
	SortErr
	LexErr
)

// Error is a structured parser error; every instance carries the Position
// of the token that triggered it, per spec.md §7.
type Error struct {
	Pos    lexer.Position
	Reason Reason
	Msg    string
	Sort   *term.SortError
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

func (p *Parser) errorf(reason Reason, pos lexer.Position, format string, args ...any) error {
	return &Error{Pos: pos, Reason: reason, Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) sortError(pos lexer.Position, err error) error {
	var se *term.SortError
	if ok := asSortError(err, &se); ok {
		return &Error{Pos: pos, Reason: SortErr, Msg: se.Error(), Sort: se}
	}

	var ae *term.ArityError
	if ok := asArityError(err, &ae); ok {
		return &Error{Pos: pos, Reason: WrongNumberOfArgs, Msg: ae.Error()}
	}

	var nf *term.NotAFunctionError
	if ok := asNotAFunctionError(err, &nf); ok {
		return &Error{Pos: pos, Reason: NotAFunction, Msg: nf.Error()}
	}

	return &Error{Pos: pos, Reason: UnexpectedToken, Msg: err.Error()}
}

func asSortError(err error, out **term.SortError) bool {
	se, ok := err.(*term.SortError)
	if ok {
		*out = se
	}

	return ok
}

func asArityError(err error, out **term.ArityError) bool {
	ae, ok := err.(*term.ArityError)
	if ok {
		*out = ae
	}

	return ok
}

func asNotAFunctionError(err error, out **term.NotAFunctionError) bool {
	nf, ok := err.(*term.NotAFunctionError)
	if ok {
		*out = nf
	}

	return ok
}
