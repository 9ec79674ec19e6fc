package term

import (
	"math/big"
	"testing"
)

func TestHashConsingDedupesStructurallyEqualTerms(t *testing.T) {
	p := NewPool()

	a := p.MakeInt(big.NewInt(42))
	b := p.MakeInt(big.NewInt(42))

	if a != b {
		t.Fatalf("two interned int literals with equal value got different handles: %d != %d", a, b)
	}

	c := p.MakeInt(big.NewInt(43))
	if a == c {
		t.Fatalf("int literals with different values got the same handle")
	}
}

func TestHashConsingDistinguishesVarsBySort(t *testing.T) {
	p := NewPool()

	x1 := p.MakeVar("x", Sort{Kind: SortInt})
	x2 := p.MakeVar("x", Sort{Kind: SortReal})

	if x1 == x2 {
		t.Fatalf("variables with the same name but different sorts got the same handle")
	}

	x3 := p.MakeVar("x", Sort{Kind: SortInt})
	if x1 != x3 {
		t.Fatalf("two identical variable declarations got different handles")
	}
}

func TestMakeOpDedupesByArgsAndOperator(t *testing.T) {
	p := NewPool()

	one := p.MakeInt(big.NewInt(1))
	two := p.MakeInt(big.NewInt(2))

	sum1, err := p.MakeOp(Add, []TermRef{one, two})
	if err != nil {
		t.Fatalf("MakeOp: %v", err)
	}

	sum2, err := p.MakeOp(Add, []TermRef{one, two})
	if err != nil {
		t.Fatalf("MakeOp: %v", err)
	}

	if sum1 != sum2 {
		t.Fatalf("identical Add applications got different handles")
	}

	diff, err := p.MakeOp(Sub, []TermRef{one, two})
	if err != nil {
		t.Fatalf("MakeOp: %v", err)
	}

	if diff == sum1 {
		t.Fatalf("Add and Sub over the same operands got the same handle")
	}
}

func TestMakeOpRejectsSortMismatch(t *testing.T) {
	p := NewPool()

	n := p.MakeInt(big.NewInt(1))
	s := p.MakeString("hi")

	if _, err := p.MakeOp(Add, []TermRef{n, s}); err == nil {
		t.Fatal("expected a sort error adding an Int to a String, got nil")
	}
}

func TestMakeOpIteReturnsBranchSort(t *testing.T) {
	p := NewPool()

	cond := p.MakeVar("c", Sort{Kind: SortBool})
	a := p.MakeInt(big.NewInt(1))
	b := p.MakeInt(big.NewInt(2))

	ite, err := p.MakeOp(Ite, []TermRef{cond, a, b})
	if err != nil {
		t.Fatalf("MakeOp(Ite): %v", err)
	}

	if got := p.Get(ite).Sort(); got.Kind != SortInt {
		t.Fatalf("Ite result sort = %v, want Int", got.Kind)
	}
}

func TestMakeAppRejectsWrongArity(t *testing.T) {
	p := NewPool()

	intSortRef := p.MakeSort(Sort{Kind: SortInt})
	fnSort := Sort{Kind: SortFunction, Params: []TermRef{intSortRef, intSortRef}}
	f := p.MakeVar("f", fnSort)

	one := p.MakeInt(big.NewInt(1))
	two := p.MakeInt(big.NewInt(2))

	if _, err := p.MakeApp(f, []TermRef{one, two}); err == nil {
		t.Fatal("expected an arity error calling a 1-ary function with 2 arguments")
	}
}
