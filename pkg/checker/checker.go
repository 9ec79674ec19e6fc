// Package checker walks a parsed proof and validates each step against
// its rule. Only the linear-arithmetic rules (pkg/arith) are implemented
// here; the broader rule library (resolution, equality, quantifier,
// clausal rewrites) is out of scope for this core and is represented
// only by the RuleArgs ABI a future checker would plug into (spec.md §6).
package checker

import (
	"fmt"

	"github.com/ashgrove/alethecheck/pkg/arith"
	"github.com/ashgrove/alethecheck/pkg/lexer"
	"github.com/ashgrove/alethecheck/pkg/proof"
	"github.com/ashgrove/alethecheck/pkg/stack"
	"github.com/ashgrove/alethecheck/pkg/term"
)

// RuleArgs is the read-only bundle every rule checker receives: a step's
// conclusion clause, its resolved premise commands, its arguments, and a
// handle to the term pool they all reference (spec.md §6).
type RuleArgs struct {
	Conclusion []term.TermRef
	Premises   []*proof.Command
	Args       []proof.Arg
	Pool       *term.Pool
}

// RuleFunc is a pure predicate over a RuleArgs bundle: true means
// accepted, false means rejected.
type RuleFunc func(RuleArgs) bool

// Registry is the set of rule checkers this package implements.
var Registry = map[string]RuleFunc{
	"la_rw_eq": func(a RuleArgs) bool {
		return arith.LaRwEq(a.Pool, a.Conclusion)
	},
	"la_disequality": func(a RuleArgs) bool {
		return arith.LaDisequality(a.Pool, a.Conclusion)
	},
	"la_generic": func(a RuleArgs) bool {
		return arith.LaGeneric(a.Pool, a.Conclusion, a.Args)
	},
}

// Outcome classifies how a step's rule was resolved.
type Outcome int

// The three possible step outcomes.
const (
	Accepted Outcome = iota
	Rejected
	Unsupported
)

// Verdict records the outcome of checking one Step command.
type Verdict struct {
	Index   string
	Pos     lexer.Position
	Rule    string
	Outcome Outcome
}

// RejectedError reports the first rejected step found, which aborts the
// checking job per spec.md §7 ("a single checker rejection aborts the
// job").
type RejectedError struct {
	Verdict Verdict
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s: step %q: rule %q rejected", e.Verdict.Pos, e.Verdict.Index, e.Verdict.Rule)
}

// Checker validates the steps of a parsed Proof against the pool that
// produced its terms.
type Checker struct {
	Pool *term.Pool
}

// New constructs a Checker bound to a term pool.
func New(pool *term.Pool) *Checker {
	return &Checker{Pool: pool}
}

// CheckProof walks every command of a proof, in the order the parser
// emitted them, verifying every Step whose rule is in Registry. It
// descends into subproofs using explicit stacks rather than recursion,
// matching the parser's non-recursive discipline for deeply nested
// proofs (spec.md §4.4/§9). It stops and returns a *RejectedError at the
// first rejected step.
func (c *Checker) CheckProof(pr *proof.Proof) ([]Verdict, error) {
	var verdicts []Verdict

	scopes := stack.New[[]proof.Command]()
	scopes.Push(pr.Commands)

	cursors := stack.New[int]()
	cursors.Push(0)

	for !scopes.IsEmpty() {
		cmds := scopes.Top()
		i := cursors.Top()

		if i >= len(cmds) {
			scopes.Pop()
			cursors.Pop()

			continue
		}

		*cursors.PeekPtr(0) = i + 1
		cmd := cmds[i]

		switch cmd.Kind {
		case proof.KindStep:
			verdict := c.checkStep(cmd, scopes)
			verdicts = append(verdicts, verdict)

			if verdict.Outcome == Rejected {
				return verdicts, &RejectedError{Verdict: verdict}
			}
		case proof.KindSubproof:
			scopes.Push(cmd.Commands)
			cursors.Push(0)
		}
	}

	return verdicts, nil
}

func (c *Checker) checkStep(cmd proof.Command, scopes *stack.Stack[[]proof.Command]) Verdict {
	rule, ok := Registry[cmd.Rule]
	if !ok {
		return Verdict{Index: cmd.Index, Pos: cmd.Pos, Rule: cmd.Rule, Outcome: Unsupported}
	}

	premises := make([]*proof.Command, len(cmd.Premises))

	for i, ref := range cmd.Premises {
		scope := scopes.Peek(ref.Depth)
		premises[i] = &scope[ref.Position]
	}

	args := RuleArgs{Conclusion: cmd.Clause, Premises: premises, Args: cmd.Args, Pool: c.Pool}

	outcome := Rejected
	if rule(args) {
		outcome = Accepted
	}

	return Verdict{Index: cmd.Index, Pos: cmd.Pos, Rule: cmd.Rule, Outcome: outcome}
}
