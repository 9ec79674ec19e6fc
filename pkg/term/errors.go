package term

import "fmt"

// SortError reports that a term had the wrong sort, naming the sort(s)
// that would have been accepted (spec.md §4.2/§7).
type SortError struct {
	Pool     *Pool
	Expected []Sort
	Got      Sort
}

func (e *SortError) Error() string {
	names := make([]string, len(e.Expected))
	for i, s := range e.Expected {
		names[i] = Describe(e.Pool, s)
	}

	got := Describe(e.Pool, e.Got)

	if len(names) == 1 {
		return fmt.Sprintf("got sort %s, expected %s", got, names[0])
	}

	return fmt.Sprintf("got sort %s, expected one of {%s}", got, joinStrings(names, ", "))
}

func joinStrings(ss []string, sep string) string {
	out := ""

	for i, s := range ss {
		if i > 0 {
			out += sep
		}

		out += s
	}

	return out
}

func assertEq(p *Pool, expected, got Sort) error {
	if !SortsEqual(expected, got) {
		return &SortError{Pool: p, Expected: []Sort{expected}, Got: got}
	}

	return nil
}

func assertOneOf(p *Pool, expected []Sort, got Sort) error {
	for _, e := range expected {
		if SortsEqual(e, got) {
			return nil
		}
	}

	return &SortError{Pool: p, Expected: expected, Got: got}
}

func assertAllEq(p *Pool, sorts []Sort) error {
	if len(sorts) == 0 {
		return nil
	}

	for _, s := range sorts[1:] {
		if !SortsEqual(sorts[0], s) {
			return &SortError{Pool: p, Expected: []Sort{sorts[0]}, Got: s}
		}
	}

	return nil
}

// ArityError reports that an operator or function was applied to the wrong
// number of arguments.
type ArityError struct {
	Expected int
	Got      int
	AtLeast  bool
}

func (e *ArityError) Error() string {
	if e.AtLeast {
		return fmt.Sprintf("expected at least %d argument(s), got %d", e.Expected, e.Got)
	}

	return fmt.Sprintf("expected %d argument(s), got %d", e.Expected, e.Got)
}

func assertNumArgs(args []TermRef, n int) error {
	if len(args) != n {
		return &ArityError{Expected: n, Got: len(args)}
	}

	return nil
}

func assertNumArgsAtLeast(args []TermRef, n int) error {
	if len(args) < n {
		return &ArityError{Expected: n, Got: len(args), AtLeast: true}
	}

	return nil
}

// NotAFunctionError reports that App's head term does not have a Function
// sort.
type NotAFunctionError struct {
	Pool *Pool
	Got  Sort
}

func (e *NotAFunctionError) Error() string {
	return fmt.Sprintf("term of sort %s is not a function", Describe(e.Pool, e.Got))
}
