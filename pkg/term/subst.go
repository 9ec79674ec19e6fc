package term

// FreeVars returns the set of variable handles occurring free in root,
// computed on demand and cached per handle (spec.md §4.1).
func (p *Pool) FreeVars(root TermRef) map[TermRef]struct{} {
	if fv, ok := p.freeVar[root]; ok {
		return fv
	}

	t := p.terms[root]

	var fv map[TermRef]struct{}

	switch t.Kind {
	case KindTerminal:
		fv = map[TermRef]struct{}{}

		if t.Terminal.Kind == VarLit {
			fv[root] = struct{}{}
		}
	case KindSort:
		fv = map[TermRef]struct{}{}
	case KindOp:
		fv = p.unionFreeVars(t.Args)
	case KindApp:
		fv = p.unionFreeVars(append([]TermRef{t.Fn}, t.Args...))
	case KindQuant, KindChoice:
		fv = cloneFVSet(p.FreeVars(t.Body))
		for _, b := range t.Bindings {
			delete(fv, p.MakeVar(b.Name, b.Sort))
		}
	case KindLet:
		fv = map[TermRef]struct{}{}

		for _, b := range t.LetBinds {
			for v := range p.FreeVars(b.Value) {
				fv[v] = struct{}{}
			}
		}

		bound := make(map[string]bool, len(t.LetBinds))
		for _, b := range t.LetBinds {
			bound[b.Name] = true
		}

		for v := range p.FreeVars(t.Body) {
			vt := p.terms[v]
			if vt.Kind == KindTerminal && vt.Terminal.Kind == VarLit && bound[vt.Terminal.Name] {
				continue
			}

			fv[v] = struct{}{}
		}
	default:
		panic("FreeVars: unknown term kind")
	}

	p.freeVar[root] = fv

	return fv
}

func (p *Pool) unionFreeVars(refs []TermRef) map[TermRef]struct{} {
	fv := map[TermRef]struct{}{}

	for _, r := range refs {
		for v := range p.FreeVars(r) {
			fv[v] = struct{}{}
		}
	}

	return fv
}

func cloneFVSet(s map[TermRef]struct{}) map[TermRef]struct{} {
	c := make(map[TermRef]struct{}, len(s))
	for k := range s {
		c[k] = struct{}{}
	}

	return c
}

// Substitution maps variable handles to their replacement terms.
type Substitution map[TermRef]TermRef

// ApplySubstitution performs a capture-avoiding substitution of root under
// the given mapping (spec.md §4.1). Binders (Quant, Choice, Let) shadow any
// substitution entry for a variable they rebind, exactly as a name
// reference resolves to its innermost binding. The traversal memoizes
// per (sub-term, substitution) so shared structure in the DAG is not
// recomputed, and the result retains sharing via the pool's own
// hash-consing.
func (p *Pool) ApplySubstitution(subst Substitution, root TermRef) TermRef {
	if len(subst) == 0 {
		return root
	}

	return p.substitute(subst, root, make(map[TermRef]TermRef))
}

func (p *Pool) substitute(subst Substitution, root TermRef, memo map[TermRef]TermRef) TermRef {
	if r, ok := memo[root]; ok {
		return r
	}

	t := p.terms[root]

	var result TermRef

	switch t.Kind {
	case KindTerminal:
		if rep, ok := subst[root]; ok {
			result = rep
		} else {
			result = root
		}
	case KindSort:
		result = root
	case KindOp:
		args, changed := p.substituteAll(subst, t.Args, memo)
		if !changed {
			result = root
		} else {
			r, err := p.MakeOp(t.Op, args)
			if err != nil {
				panic("ApplySubstitution: substitution produced an ill-sorted term: " + err.Error())
			}

			result = r
		}
	case KindApp:
		fn := p.substitute(subst, t.Fn, memo)
		args, argsChanged := p.substituteAll(subst, t.Args, memo)

		if fn == t.Fn && !argsChanged {
			result = root
		} else {
			r, err := p.MakeApp(fn, args)
			if err != nil {
				panic("ApplySubstitution: substitution produced an ill-sorted term: " + err.Error())
			}

			result = r
		}
	case KindQuant, KindChoice:
		inner := shadow(subst, p, t.Bindings)
		body := p.substitute(inner, t.Body, make(map[TermRef]TermRef))

		if body == t.Body {
			result = root
		} else if t.Kind == KindQuant {
			result = p.MakeQuant(t.Quantifier, t.Bindings, body)
		} else {
			result = p.MakeChoice(t.Bindings[0], body)
		}
	case KindLet:
		changed := false
		newBinds := make([]Binding, len(t.LetBinds))

		for i, b := range t.LetBinds {
			v := p.substitute(subst, b.Value, memo)
			newBinds[i] = Binding{Name: b.Name, Value: v}

			if v != b.Value {
				changed = true
			}
		}

		inner := shadowNames(subst, p, t.LetBinds)
		body := p.substitute(inner, t.Body, make(map[TermRef]TermRef))

		if body != t.Body {
			changed = true
		}

		if !changed {
			result = root
		} else {
			result = p.MakeLet(newBinds, body)
		}
	default:
		panic("ApplySubstitution: unknown term kind")
	}

	memo[root] = result

	return result
}

func (p *Pool) substituteAll(subst Substitution, refs []TermRef, memo map[TermRef]TermRef) ([]TermRef, bool) {
	out := make([]TermRef, len(refs))
	changed := false

	for i, r := range refs {
		out[i] = p.substitute(subst, r, memo)
		if out[i] != r {
			changed = true
		}
	}

	return out, changed
}

func shadow(subst Substitution, p *Pool, bindings []SortedVar) Substitution {
	if len(subst) == 0 {
		return subst
	}

	inner := make(Substitution, len(subst))
	for k, v := range subst {
		inner[k] = v
	}

	for _, b := range bindings {
		delete(inner, p.MakeVar(b.Name, b.Sort))
	}

	return inner
}

func shadowNames(subst Substitution, p *Pool, binds []Binding) Substitution {
	if len(subst) == 0 {
		return subst
	}

	bound := make(map[string]bool, len(binds))
	for _, b := range binds {
		bound[b.Name] = true
	}

	inner := make(Substitution, len(subst))

	for k, v := range subst {
		kt := p.terms[k]
		if kt.Kind == KindTerminal && kt.Terminal.Kind == VarLit && bound[kt.Terminal.Name] {
			continue
		}

		inner[k] = v
	}

	return inner
}
