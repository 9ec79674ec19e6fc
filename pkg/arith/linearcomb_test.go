package arith

import (
	"math/big"
	"testing"

	"github.com/ashgrove/alethecheck/pkg/term"
)

func TestFlattenSumDistributesSubtractionAndNegation(t *testing.T) {
	p := term.NewPool()

	x := p.MakeVar("x", term.Sort{Kind: term.SortReal})
	y := p.MakeVar("y", term.Sort{Kind: term.SortReal})
	z := p.MakeVar("z", term.Sort{Kind: term.SortReal})

	// (+ (- x y) (- z))
	xy, err := p.MakeOp(term.Sub, []term.TermRef{x, y})
	if err != nil {
		t.Fatalf("MakeOp(Sub): %v", err)
	}

	negZ, err := p.MakeOp(term.Sub, []term.TermRef{z})
	if err != nil {
		t.Fatalf("MakeOp(Sub, unary): %v", err)
	}

	sum, err := p.MakeOp(term.Add, []term.TermRef{xy, negZ})
	if err != nil {
		t.Fatalf("MakeOp(Add): %v", err)
	}

	got := flattenSum(p, sum)
	if len(got) != 3 {
		t.Fatalf("flattenSum returned %d leaves, want 3: %+v", len(got), got)
	}

	want := map[term.TermRef]bool{x: true, y: false, z: false}
	for _, leaf := range got {
		wantPositive, ok := want[leaf.Term]
		if !ok {
			t.Fatalf("unexpected leaf %d in flattened sum", leaf.Term)
		}
		if leaf.Positive != wantPositive {
			t.Errorf("leaf %d: positive = %v, want %v", leaf.Term, leaf.Positive, wantPositive)
		}
	}
}

func TestLinearCombFromTermFoldsConstantAndScaledVariable(t *testing.T) {
	p := term.NewPool()

	x := p.MakeVar("x", term.Sort{Kind: term.SortReal})
	two := p.MakeReal(big.NewRat(2, 1))
	five := p.MakeReal(big.NewRat(5, 1))

	// (+ (* 2 x) 5)
	twoX, err := p.MakeOp(term.Mult, []term.TermRef{two, x})
	if err != nil {
		t.Fatalf("MakeOp(Mult): %v", err)
	}

	sum, err := p.MakeOp(term.Add, []term.TermRef{twoX, five})
	if err != nil {
		t.Fatalf("MakeOp(Add): %v", err)
	}

	lc, ok := linearCombFromTerm(p, sum)
	if !ok {
		t.Fatal("linearCombFromTerm reported false for a well-formed linear term")
	}

	if lc.Const.Cmp(big.NewRat(5, 1)) != 0 {
		t.Errorf("Const = %v, want 5", lc.Const)
	}

	coeff, ok := lc.Coeffs[x]
	if !ok || coeff.Cmp(big.NewRat(2, 1)) != 0 {
		t.Errorf("coefficient of x = %v, want 2", coeff)
	}
}

func TestLinearCombInsertDropsZeroCoefficients(t *testing.T) {
	p := term.NewPool()
	x := p.MakeVar("x", term.Sort{Kind: term.SortReal})

	lc := newLinearComb()
	lc.insert(x, big.NewRat(3, 1))
	lc.insert(x, big.NewRat(-3, 1))

	if _, ok := lc.Coeffs[x]; ok {
		t.Fatal("coefficient summing to zero was not removed from the map")
	}
}

func TestFloorRatRoundsTowardNegativeInfinity(t *testing.T) {
	cases := []struct {
		in   *big.Rat
		want *big.Rat
	}{
		{big.NewRat(7, 2), big.NewRat(3, 1)},
		{big.NewRat(-7, 2), big.NewRat(-4, 1)},
		{big.NewRat(4, 1), big.NewRat(4, 1)},
	}

	for _, c := range cases {
		if got := floorRat(c.in); got.Cmp(c.want) != 0 {
			t.Errorf("floorRat(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
