package term

import (
	"math/big"
	"testing"
)

func TestApplySubstitutionReplacesFreeOccurrences(t *testing.T) {
	p := NewPool()

	x := p.MakeVar("x", Sort{Kind: SortInt})
	y := p.MakeVar("y", Sort{Kind: SortInt})
	two := p.MakeInt(big.NewInt(2))

	sum, err := p.MakeOp(Add, []TermRef{x, two})
	if err != nil {
		t.Fatalf("MakeOp: %v", err)
	}

	result := p.ApplySubstitution(Substitution{x: y}, sum)

	want, err := p.MakeOp(Add, []TermRef{y, two})
	if err != nil {
		t.Fatalf("MakeOp: %v", err)
	}

	if result != want {
		t.Fatalf("substitution result = %d, want %d", result, want)
	}
}

func TestApplySubstitutionShadowsBoundVariable(t *testing.T) {
	p := NewPool()

	x := p.MakeVar("x", Sort{Kind: SortInt})
	y := p.MakeVar("y", Sort{Kind: SortInt})

	body, err := p.MakeOp(GreaterEq, []TermRef{x, x})
	if err != nil {
		t.Fatalf("MakeOp: %v", err)
	}

	quant := p.MakeQuant(Forall, []SortedVar{{Name: "x", Sort: Sort{Kind: SortInt}}}, body)

	// Substituting x -> y must NOT touch the bound x inside the quantifier.
	result := p.ApplySubstitution(Substitution{x: y}, quant)

	if result != quant {
		t.Fatalf("substitution through a binder that shadows x changed the term: got %d, want unchanged %d", result, quant)
	}
}

func TestFreeVarsExcludesBoundVariables(t *testing.T) {
	p := NewPool()

	x := p.MakeVar("x", Sort{Kind: SortInt})
	y := p.MakeVar("y", Sort{Kind: SortInt})

	body, err := p.MakeOp(GreaterEq, []TermRef{x, y})
	if err != nil {
		t.Fatalf("MakeOp: %v", err)
	}

	quant := p.MakeQuant(Forall, []SortedVar{{Name: "x", Sort: Sort{Kind: SortInt}}}, body)

	fv := p.FreeVars(quant)
	if _, ok := fv[x]; ok {
		t.Fatal("FreeVars included the bound variable x")
	}
	if _, ok := fv[y]; !ok {
		t.Fatal("FreeVars did not include the free variable y")
	}
}
