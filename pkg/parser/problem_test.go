package parser

import (
	"testing"

	"github.com/ashgrove/alethecheck/pkg/term"
)

func TestParseProblemCollectsAssertedPremises(t *testing.T) {
	p, err := New(`
		(declare-fun a () Int)
		(declare-fun b () Int)
		(assert (= a b))
		(assert (> a 0))
	`)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	premises, err := p.ParseProblem()
	if err != nil {
		t.Fatalf("ParseProblem: %v", err)
	}

	if len(premises) != 2 {
		t.Fatalf("got %d premises, want 2", len(premises))
	}
}

func TestParseProblemSkipsUnknownCommands(t *testing.T) {
	p, err := New(`
		(set-info :smt-lib-version 2.6)
		(declare-fun a () Bool)
		(check-sat)
		(assert a)
	`)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	premises, err := p.ParseProblem()
	if err != nil {
		t.Fatalf("ParseProblem: %v", err)
	}

	if len(premises) != 1 {
		t.Fatalf("got %d premises, want 1", len(premises))
	}
}

func TestQFLRAPromotesBareIntegersToReal(t *testing.T) {
	p, err := New(`
		(set-logic QF_LRA)
		(declare-fun x () Real)
		(assert (= x 1))
	`)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	premises, err := p.ParseProblem()
	if err != nil {
		t.Fatalf("ParseProblem: %v", err)
	}

	if len(premises) != 1 {
		t.Fatalf("got %d premises, want 1", len(premises))
	}

	var assertion term.TermRef
	for a := range premises {
		assertion = a
	}

	eq := p.state.Pool.Get(assertion)
	if eq.Kind != term.KindOp || eq.Op != term.Equals {
		t.Fatalf("assertion is not an equality: %+v", eq)
	}

	rhs := p.state.Pool.Get(eq.Args[1])
	if rhs.Kind != term.KindTerminal || rhs.Terminal.Kind != term.RealLit {
		t.Fatalf("bare numeral under QF_LRA was not promoted to a real literal: %+v", rhs)
	}
}

func TestQFLIAKeepsBareIntegersAsInt(t *testing.T) {
	p, err := New(`
		(set-logic QF_LIA)
		(declare-fun x () Int)
		(assert (= x 1))
	`)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	premises, err := p.ParseProblem()
	if err != nil {
		t.Fatalf("ParseProblem: %v", err)
	}

	var assertion term.TermRef
	for a := range premises {
		assertion = a
	}

	eq := p.state.Pool.Get(assertion)
	rhs := p.state.Pool.Get(eq.Args[1])
	if rhs.Kind != term.KindTerminal || rhs.Terminal.Kind != term.IntLit {
		t.Fatalf("bare numeral under QF_LIA was promoted to real: %+v", rhs)
	}
}
