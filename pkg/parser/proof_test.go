package parser

import (
	"testing"

	"github.com/ashgrove/alethecheck/pkg/proof"
)

func newProofParser(t *testing.T, defs, proofText string) *Parser {
	t.Helper()

	problemParser, err := New(defs)
	if err != nil {
		t.Fatalf("New(problem): %v", err)
	}

	if _, err := problemParser.ParseProblem(); err != nil {
		t.Fatalf("ParseProblem: %v", err)
	}

	proofParser, err := NewWithState(proofText, problemParser.State())
	if err != nil {
		t.Fatalf("NewWithState: %v", err)
	}

	return proofParser
}

func TestParseProofAssemblesNestedSubproof(t *testing.T) {
	p := newProofParser(t, `(declare-fun a () Bool)`, `
		(assume h1 a)
		(anchor :step t2)
		(step t1 (cl a) :rule hole)
		(step t2 (cl a) :rule resolution :premises (t1))
		(step t3 (cl a) :rule resolution :premises (h1))
	`)

	commands, err := p.ParseProof()
	if err != nil {
		t.Fatalf("ParseProof: %v", err)
	}

	if len(commands) != 3 {
		t.Fatalf("got %d top-level commands, want 3 (assume, subproof, step)", len(commands))
	}

	if commands[1].Kind != proof.KindSubproof {
		t.Fatalf("commands[1].Kind = %v, want KindSubproof", commands[1].Kind)
	}

	if len(commands[1].Commands) != 2 {
		t.Fatalf("subproof has %d commands, want 2", len(commands[1].Commands))
	}

	last := commands[1].Commands[len(commands[1].Commands)-1]
	if last.Index != "t2" {
		t.Fatalf("last command of subproof has index %q, want %q", last.Index, "t2")
	}
}

func TestParseProofRejectsRepeatedStepIndex(t *testing.T) {
	p := newProofParser(t, `(declare-fun a () Bool)`, `
		(assume h1 a)
		(step h1 (cl a) :rule resolution)
	`)

	if _, err := p.ParseProof(); err == nil {
		t.Fatal("expected an error for a repeated step index")
	} else if perr, ok := err.(*Error); !ok || perr.Reason != RepeatedStepIndex {
		t.Fatalf("got error %v, want Reason=RepeatedStepIndex", err)
	}
}

func TestParseProofRejectsSubproofNotEndingInStep(t *testing.T) {
	p := newProofParser(t, `(declare-fun a () Bool)`, `
		(anchor :step t2)
		(assume t2 a)
	`)

	if _, err := p.ParseProof(); err == nil {
		t.Fatal("expected an error when a subproof's last command is not a step")
	} else if perr, ok := err.(*Error); !ok || perr.Reason != LastSubproofStepIsNotStep {
		t.Fatalf("got error %v, want Reason=LastSubproofStepIsNotStep", err)
	}
}

func TestParseProofRejectsUndefinedStepIndex(t *testing.T) {
	p := newProofParser(t, `(declare-fun a () Bool)`, `
		(step t1 (cl a) :rule resolution :premises (nope))
	`)

	if _, err := p.ParseProof(); err == nil {
		t.Fatal("expected an error referencing an undefined step index")
	} else if perr, ok := err.(*Error); !ok || perr.Reason != UndefinedStepIndex {
		t.Fatalf("got error %v, want Reason=UndefinedStepIndex", err)
	}
}

func TestParseProofRejectsUnclosedSubproof(t *testing.T) {
	p := newProofParser(t, `(declare-fun a () Bool)`, `
		(anchor :step t2)
		(step t1 (cl a) :rule hole)
	`)

	if _, err := p.ParseProof(); err == nil {
		t.Fatal("expected an error for a subproof whose anchor never closes")
	} else if perr, ok := err.(*Error); !ok || perr.Reason != UnclosedSubproof {
		t.Fatalf("got error %v, want Reason=UnclosedSubproof", err)
	}
}
