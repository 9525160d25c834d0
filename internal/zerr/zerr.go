// Package zerr defines the closed taxonomy of diagnostics the concept
// store can raise. Every error the dispatcher and writer produce is a
// *E with one of the Kind values below; there is no open-ended error
// type in this codebase, so callers can switch on Kind instead of
// matching strings.
package zerr

import "fmt"

// Kind identifies one of the named error conditions a command can
// fail with. The zero Kind is never produced.
type Kind int

const (
	_ Kind = iota

	// EmptyParentheses is raised when the tokenizer yields zero tokens
	// for a parenthesized group.
	EmptyParentheses
	// AmbiguousExpression is raised when a level has more than two
	// tokens and no precedence rule resolves the grouping.
	AmbiguousExpression
	// NotAProgram is raised when an AST cannot be interpreted as a
	// meta-command and has no further reductions or expansions.
	NotAProgram
	// BadDefinition is raised when "X := Y" is attempted with X, the
	// name being defined, a composite phrase rather than a single symbol.
	BadDefinition
	// RedundantRefactor is raised when "X := Y" names X after a Y that
	// has never been seen and has no structure to give a name to.
	RedundantRefactor
	// RedundantDefinition is raised when the definition being added
	// already holds.
	RedundantDefinition
	// DefinitionCollision is raised when "X := Y" would force two
	// distinct concepts to merge.
	DefinitionCollision
	// InfiniteDefinition is raised when a definition would make a
	// concept contain itself.
	InfiniteDefinition
	// CyclicReduction is raised when a reduction rule would create a
	// cycle in the reduction chain.
	CyclicReduction
	// ExpandingReduction is raised when a reduction or definition
	// would make a concept reduce to, or be defined as, a phrase that
	// structurally contains it.
	ExpandingReduction
	// RedundantReduction is raised when the reduction rule being added
	// or removed is already in the requested state.
	RedundantReduction
)

// messages gives the stable, one-line human text for each Kind. These
// strings are part of the external contract (spec.md §7/§8): callers
// match on them, so wording changes here are breaking changes.
var messages = map[Kind]string{
	EmptyParentheses:    "Parentheses need to contain a symbol or expression.",
	AmbiguousExpression: "Ambiguity due to lack of precedence or associativity defined for the symbols in that expression.",
	NotAProgram:         "Not a program and has no further reductions or expansions.",
	BadDefinition:       "The left-hand side of a definition must be a single symbol, not an expression.",
	RedundantRefactor:   "Cannot refactor a concept that has never been used and has no structure to name.",
	RedundantDefinition: "That definition already exists.",
	DefinitionCollision: "Cannot define a used symbol as another used symbol or expression.",
	InfiniteDefinition:  "Cannot define a concept as an expression containing itself.",
	CyclicReduction:     "Cannot allow a chain of reduction rules to loop.",
	ExpandingReduction:  "Cannot reduce a concept to an expression containing itself.",
	RedundantReduction:  "That reduction rule is already in the requested state.",
}

// E is the concrete error type raised by the concept store and
// dispatcher. Detail carries the rendered text of the concepts
// involved, for callers that want richer diagnostics than the stable
// one-line message; Error() never includes it, so the public string
// table in messages stays stable regardless of which concepts were
// involved.
type E struct {
	kind   Kind
	Detail string
}

// New creates an *E of the given kind. detail, if non-empty, is
// recorded for formatting with %+v but never appears in Error().
func New(kind Kind, detail string) *E {
	return &E{kind: kind, Detail: detail}
}

// Kind reports which named condition this error represents.
func (e *E) Kind() Kind { return e.kind }

// Error reports the stable, position-free one-line message for this
// error's kind.
func (e *E) Error() string {
	msg, ok := messages[e.kind]
	if !ok {
		return "unknown error"
	}
	return msg
}

// Is reports whether target is a *E of the same Kind, so that
// errors.Is(err, zerr.New(zerr.CyclicReduction, "")) works without
// comparing Detail.
func (e *E) Is(target error) bool {
	t, ok := target.(*E)
	return ok && t.kind == e.kind
}

// Format supports "%+v" to render Detail alongside the message,
// without changing what Error() returns.
func (e *E) Format(f fmt.State, verb rune) {
	switch {
	case verb == 'v' && f.Flag('+') && e.Detail != "":
		fmt.Fprintf(f, "%s (%s)", e.Error(), e.Detail)
	default:
		fmt.Fprint(f, e.Error())
	}
}
