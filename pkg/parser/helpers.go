package parser

import (
	"math/big"

	"github.com/ashgrove/alethecheck/pkg/lexer"
)

// take returns the current token/position pair and advances past it.
func (p *Parser) take() (lexer.Token, lexer.Position, error) {
	tok, pos := p.cur, p.curPos
	if err := p.advance(); err != nil {
		return lexer.Token{}, pos, err
	}

	return tok, pos, nil
}

func (p *Parser) expectOpenParen() error {
	tok, pos, err := p.take()
	if err != nil {
		return err
	}

	if tok.Kind != lexer.KindOpenParen {
		return p.errorf(UnexpectedToken, pos, "expected '(', found %s", tok)
	}

	return nil
}

func (p *Parser) expectCloseParen() error {
	tok, pos, err := p.take()
	if err != nil {
		return err
	}

	if tok.Kind != lexer.KindCloseParen {
		return p.errorf(UnexpectedToken, pos, "expected ')', found %s", tok)
	}

	return nil
}

func (p *Parser) expectReserved(r lexer.Reserved) error {
	tok, pos, err := p.take()
	if err != nil {
		return err
	}

	if tok.Kind != lexer.KindReserved || tok.Reserved != r {
		return p.errorf(UnexpectedToken, pos, "expected '%s', found %s", r, tok)
	}

	return nil
}

func (p *Parser) expectSymbol() (string, error) {
	tok, pos, err := p.take()
	if err != nil {
		return "", err
	}

	if tok.Kind != lexer.KindSymbol {
		return "", p.errorf(UnexpectedToken, pos, "expected a symbol, found %s", tok)
	}

	return tok.Symbol, nil
}

func (p *Parser) expectKeyword() (string, error) {
	tok, pos, err := p.take()
	if err != nil {
		return "", err
	}

	if tok.Kind != lexer.KindKeyword {
		return "", p.errorf(UnexpectedToken, pos, "expected a keyword, found %s", tok)
	}

	return tok.Keyword, nil
}

// currentIsKeyword reports whether the lookahead token is the keyword
// named name, without consuming it — used for the handful of optional
// `:xxx` attributes a step/anchor command may or may not carry.
func (p *Parser) currentIsKeyword(name string) bool {
	return p.cur.Kind == lexer.KindKeyword && p.cur.Keyword == name
}

func (p *Parser) expectNumeral() (*big.Int, error) {
	tok, pos, err := p.take()
	if err != nil {
		return nil, err
	}

	if tok.Kind != lexer.KindNumeral {
		return nil, p.errorf(UnexpectedToken, pos, "expected a numeral, found %s", tok)
	}

	return tok.Numeral, nil
}

// readUntilCloseParens skips tokens until the parenthesis that was already
// opened (by the caller, one level deep) is balanced shut. Used to ignore
// SMT-LIB script commands the checker doesn't care about, and to discard
// the remainder of a `trust`-rule step.
func (p *Parser) readUntilCloseParens() error {
	depth := 1

	for depth > 0 {
		tok, pos, err := p.take()
		if err != nil {
			return err
		}

		switch tok.Kind {
		case lexer.KindOpenParen:
			depth++
		case lexer.KindCloseParen:
			depth--
		case lexer.KindEOF:
			return p.errorf(UnexpectedToken, pos, "unexpected end of input")
		}
	}

	return nil
}

// parseSeq repeatedly calls parseOne until the current token is a closing
// parenthesis, which it consumes. If nonEmpty, an empty sequence is an
// error. This is the Go rendering of the reference parser's iterative
// `parse_sequence` helper (spec.md §4.4), kept as a free function rather
// than a method so it can be instantiated at whatever element type each
// call site needs.
func parseSeq[T any](p *Parser, nonEmpty bool, parseOne func(*Parser) (T, error)) ([]T, error) {
	var result []T

	for p.cur.Kind != lexer.KindCloseParen {
		item, err := parseOne(p)
		if err != nil {
			return nil, err
		}

		result = append(result, item)
	}

	if nonEmpty && len(result) == 0 {
		err := p.errorf(EmptySequence, p.curPos, "expected a non-empty sequence")
		return nil, err
	}

	if err := p.advance(); err != nil { // consume ")"
		return nil, err
	}

	return result, nil
}
