package term

import (
	"fmt"
	"math/big"
	"strings"
)

// Pool is a hash-consing store: it interns Terms so that structurally equal
// terms always share a single TermRef handle, giving rule checkers
// constant-time term equality (spec.md §4.1). It also implements the sort
// system (§4.2), since sort computation is itself entangled with how terms
// are constructed: a term's sort is computed and validated once, at the
// moment it is interned, and cached on the pool entry from then on.
type Pool struct {
	terms   []Term
	byKey   map[string]TermRef
	freeVar map[TermRef]map[TermRef]struct{} // memoized per handle; see FreeVars
}

// NewPool constructs an empty term pool.
func NewPool() *Pool {
	return &Pool{byKey: make(map[string]TermRef), freeVar: make(map[TermRef]map[TermRef]struct{})}
}

// Get returns the Term a handle refers to.
func (p *Pool) Get(ref TermRef) Term {
	return p.terms[ref]
}

// SortOf returns the sort denoted by a KindSort term. Panics if ref does
// not refer to a KindSort term, which would indicate an internal bug (a
// SortRef was built from something other than Pool.MakeSort).
func (p *Pool) SortOf(ref TermRef) Sort {
	t := p.terms[ref]
	if t.Kind != KindSort {
		panic("SortOf: handle does not refer to a sort term")
	}

	return t.SortValue
}

// add interns a fully-built Term (with its sort and key already implied by
// its fields) and returns its handle. Structurally equal terms yield the
// same handle; this is the pool's one mutation path.
func (p *Pool) add(t Term) TermRef {
	k := p.key(t)
	if ref, ok := p.byKey[k]; ok {
		return ref
	}

	ref := TermRef(len(p.terms))
	p.terms = append(p.terms, t)
	p.byKey[k] = ref

	return ref
}

// AddAll is a convenience for interning a sequence of already-built terms.
func (p *Pool) AddAll(terms []Term) []TermRef {
	refs := make([]TermRef, len(terms))
	for i, t := range terms {
		refs[i] = p.add(t)
	}

	return refs
}

func (p *Pool) key(t Term) string {
	switch t.Kind {
	case KindTerminal:
		switch t.Terminal.Kind {
		case IntLit:
			return "int:" + t.Terminal.Int.String()
		case RealLit:
			return "real:" + t.Terminal.Real.RatString()
		case StringLit:
			return "str:" + t.Terminal.Str
		default: // VarLit
			return "var:" + t.Terminal.Name + ":" + t.sort.key()
		}
	case KindSort:
		return "sortterm:" + t.SortValue.key()
	case KindOp:
		var sb strings.Builder

		fmt.Fprintf(&sb, "op:%d", t.Op)

		for _, a := range t.Args {
			fmt.Fprintf(&sb, ":%d", a)
		}

		return sb.String()
	case KindApp:
		var sb strings.Builder

		fmt.Fprintf(&sb, "app:%d", t.Fn)

		for _, a := range t.Args {
			fmt.Fprintf(&sb, ":%d", a)
		}

		return sb.String()
	case KindQuant:
		var sb strings.Builder

		fmt.Fprintf(&sb, "quant:%d", t.Quantifier)

		for _, b := range t.Bindings {
			fmt.Fprintf(&sb, ":%s/%s", b.Name, b.Sort.key())
		}

		fmt.Fprintf(&sb, ":%d", t.Body)

		return sb.String()
	case KindChoice:
		return fmt.Sprintf("choice:%s/%s:%d", t.Bindings[0].Name, t.Bindings[0].Sort.key(), t.Body)
	case KindLet:
		var sb strings.Builder

		sb.WriteString("let")

		for _, b := range t.LetBinds {
			fmt.Fprintf(&sb, ":%s=%d", b.Name, b.Value)
		}

		fmt.Fprintf(&sb, ":%d", t.Body)

		return sb.String()
	default:
		panic("key: unknown term kind")
	}
}

// MakeSort interns a sort as a KindSort term and returns its SortRef.
func (p *Pool) MakeSort(s Sort) TermRef {
	return p.add(Term{Kind: KindSort, SortValue: s})
}

var boolSort = Sort{Kind: SortBool}
var intSort = Sort{Kind: SortInt}
var realSort = Sort{Kind: SortReal}
var stringSort = Sort{Kind: SortString}

// MakeInt interns an integer literal.
func (p *Pool) MakeInt(n *big.Int) TermRef {
	return p.add(Term{Kind: KindTerminal, Terminal: Terminal{Kind: IntLit, Int: n}, sort: intSort})
}

// MakeReal interns a rational literal.
func (p *Pool) MakeReal(r *big.Rat) TermRef {
	return p.add(Term{Kind: KindTerminal, Terminal: Terminal{Kind: RealLit, Real: r}, sort: realSort})
}

// MakeString interns a string literal.
func (p *Pool) MakeString(s string) TermRef {
	return p.add(Term{Kind: KindTerminal, Terminal: Terminal{Kind: StringLit, Str: s}, sort: stringSort})
}

// MakeVar interns a variable term of the given sort.
func (p *Pool) MakeVar(name string, sort Sort) TermRef {
	return p.add(Term{Kind: KindTerminal, Terminal: Terminal{Kind: VarLit, Name: name}, sort: sort})
}
