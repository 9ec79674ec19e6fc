package lexer

import "testing"

func collectTokens(t *testing.T, src string) []Token {
	t.Helper()

	l := New(src)

	var toks []Token
	for {
		tok, _, err := l.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}

		if tok.Kind == KindEOF {
			return toks
		}

		toks = append(toks, tok)
	}
}

func TestNextTokenizesBasicForms(t *testing.T) {
	toks := collectTokens(t, `(assert (= x 1))`)

	wantKinds := []Kind{
		KindOpenParen, KindReserved, KindOpenParen, KindSymbol, KindSymbol, KindNumeral, KindCloseParen, KindCloseParen,
	}

	if len(toks) != len(wantKinds) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(wantKinds), toks)
	}

	for i, k := range wantKinds {
		if toks[i].Kind != k {
			t.Errorf("token %d: kind = %v, want %v (%v)", i, toks[i].Kind, k, toks[i])
		}
	}

	if toks[1].Reserved != Assert {
		t.Errorf("token 1: reserved = %v, want Assert", toks[1].Reserved)
	}
	if toks[4].Symbol != "x" {
		t.Errorf("token 4: symbol = %q, want %q", toks[4].Symbol, "x")
	}
}

func TestNextTokenizesKeywordAndDecimal(t *testing.T) {
	toks := collectTokens(t, `:premises 3.14`)

	if len(toks) != 2 {
		t.Fatalf("got %d tokens, want 2: %v", len(toks), toks)
	}

	if toks[0].Kind != KindKeyword || toks[0].Keyword != "premises" {
		t.Errorf("token 0 = %v, want keyword \"premises\"", toks[0])
	}

	if toks[1].Kind != KindDecimal || toks[1].Decimal.RatString() != "157/50" {
		t.Errorf("token 1 = %v, want decimal 157/50", toks[1])
	}
}

func TestNextTokenizesNegativeNumeralAsSymbolMinus(t *testing.T) {
	// SMT-LIB numerals are never signed lexically: "-1" is the symbol "-"
	// immediately followed by the numeral "1", as two separate tokens.
	toks := collectTokens(t, `-1`)

	if len(toks) != 2 {
		t.Fatalf("got %d tokens, want 2: %v", len(toks), toks)
	}

	if toks[0].Kind != KindSymbol || toks[0].Symbol != "-" {
		t.Errorf("token 0 = %v, want symbol \"-\"", toks[0])
	}
	if toks[1].Kind != KindNumeral || toks[1].Numeral.String() != "1" {
		t.Errorf("token 1 = %v, want numeral 1", toks[1])
	}
}

func TestNextScansEscapedStringQuotes(t *testing.T) {
	toks := collectTokens(t, `"a""b"`)

	if len(toks) != 1 {
		t.Fatalf("got %d tokens, want 1: %v", len(toks), toks)
	}

	if toks[0].Kind != KindString || toks[0].Str != `a"b` {
		t.Errorf("token 0 = %v, want string %q", toks[0], `a"b`)
	}
}

func TestNextReportsUnterminatedString(t *testing.T) {
	l := New(`"abc`)

	if _, _, err := l.Next(); err == nil {
		t.Fatal("expected an error scanning an unterminated string literal")
	}
}

func TestNextTracksLineAndColumn(t *testing.T) {
	l := New("(a\n  b)")

	_, pos0, _ := l.Next() // "("
	if pos0 != (Position{Line: 1, Col: 1}) {
		t.Fatalf("pos0 = %v, want 1:1", pos0)
	}

	_, pos1, _ := l.Next() // "a"
	if pos1 != (Position{Line: 1, Col: 2}) {
		t.Fatalf("pos1 = %v, want 1:2", pos1)
	}

	_, pos2, _ := l.Next() // "b"
	if pos2 != (Position{Line: 2, Col: 3}) {
		t.Fatalf("pos2 = %v, want 2:3", pos2)
	}
}

func TestNextReturnsEOFForever(t *testing.T) {
	l := New("")

	for i := 0; i < 3; i++ {
		tok, _, err := l.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if tok.Kind != KindEOF {
			t.Fatalf("call %d: kind = %v, want KindEOF", i, tok.Kind)
		}
	}
}
