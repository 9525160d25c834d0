// Package dispatch implements spec.md §4.6-§4.7: the recursive
// decision of whether a parsed syntax tree is a program (a rewrite or
// definition request, or a query whose head is a built-in) or an
// inert phrase, and the two meta-commands — reduce and define — that
// mutate the concept graph in response.
package dispatch

import (
	"fmt"
	"strings"

	"github.com/ziacorp/zia/internal/concept"
	"github.com/ziacorp/zia/internal/reduce"
	"github.com/ziacorp/zia/internal/syntax"
	"github.com/ziacorp/zia/internal/zerr"
)

// Builtins names the two reserved concepts the dispatcher consults
// to recognize the ":="/"->' vocabulary, as allocated by the Context
// façade (spec.md §3 "Built-in concepts", §4.8). The third built-in,
// LABEL, is held by the arena itself (concept.Arena.Bootstrap).
type Builtins struct {
	Define    concept.ID
	Reduction concept.ID
}

func isNotAProgram(err error) bool {
	e, ok := err.(*zerr.E)
	return ok && e.Kind() == zerr.NotAProgram
}

// Call decides whether node is a program and, if so, runs it,
// returning the rendered result (possibly empty) or a propagated
// error. It is the dispatcher's entry point (spec.md §4.6).
func Call(a *concept.Arena, b Builtins, node syntax.Node) (string, error) {
	if pair, ok := node.(*syntax.Pair); ok {
		return callPair(a, b, pair.Left, pair.Right)
	}

	if expanded := reduce.Expand(a, node); !syntax.Equal(expanded, node) {
		result, err := Call(a, b, expanded)
		if err == nil || !isNotAProgram(err) {
			return result, err
		}
	}

	if reduced := reduce.RecursivelyReduce(a, node); !syntax.Equal(reduced, node) {
		return Call(a, b, reduced)
	}

	return "", zerr.New(zerr.NotAProgram, node.Text())
}

// callPair implements spec.md §4.6's call_pair: left is the phrase the
// command or query applies to, right is what decides whether this is
// a reduction query, a definition query, a generic aliased operator,
// or a command recognized one level deeper (call_as_right).
func callPair(a *concept.Arena, b Builtins, left, right syntax.Node) (string, error) {
	if rid, ok := right.Concept(); ok {
		switch rid {
		case b.Reduction:
			return reduce.RecursivelyReduce(a, left).Text(), nil
		case b.Define:
			return reduce.Expand(a, left).Text(), nil
		}
		if nf, ok := a.NormalForm(rid); ok {
			return callPair(a, b, left, reduce.ToAST(a, nf))
		}
	}
	return callAsRight(a, b, left, right)
}

// callAsRight inspects right's own expansion: only a pair can carry a
// recognizable operator as its left child.
func callAsRight(a *concept.Arena, b Builtins, left, right syntax.Node) (string, error) {
	rp, ok := right.(*syntax.Pair)
	if !ok {
		return "", zerr.New(zerr.NotAProgram, right.Text())
	}
	return matchRight(a, b, left, rp.Left, rp.Right)
}

// matchRight implements spec.md §4.6's match_right: rl names the
// operator, rr is its operand.
func matchRight(a *concept.Arena, b Builtins, left, rl, rr syntax.Node) (string, error) {
	rlid, ok := rl.Concept()
	if !ok {
		return "", zerr.New(zerr.NotAProgram, rl.Text())
	}
	switch rlid {
	case b.Reduction:
		return reductionCommand(a, left, rr)
	case b.Define:
		return definitionCommand(a, left, rr)
	}
	if nf, ok := a.NormalForm(rlid); ok {
		return matchRight(a, b, left, reduce.ToAST(a, nf), rr)
	}
	return "", zerr.New(zerr.NotAProgram, rl.Text())
}

// reductionCommand executes "left -> rr": reduce left to rr (spec.md
// §4.6's literal, unswapped roles — confirmed against the reference
// implementation's ExecuteReduction, where syntax=left and
// normal_form=rr).
func reductionCommand(a *concept.Arena, left, rr syntax.Node) (string, error) {
	if syntax.Contains(rr, left) {
		return "", zerr.New(zerr.ExpandingReduction, fmt.Sprintf("%s -> %s", left.Text(), rr.Text()))
	}
	if syntax.Equal(left, rr) {
		id, ok := left.Concept()
		if !ok {
			return "", zerr.New(zerr.RedundantReduction, left.Text())
		}
		if _, has := a.Reduction(id); !has {
			return "", zerr.New(zerr.RedundantReduction, left.Text())
		}
		a.RemoveReduction(id)
		return "", nil
	}
	leftID, err := conceptFromAST(a, left)
	if err != nil {
		return "", err
	}
	rrID, err := conceptFromAST(a, rr)
	if err != nil {
		return "", err
	}
	if err := a.SetReduction(leftID, rrID); err != nil {
		return "", err
	}
	return "", nil
}

// definitionCommand executes "left := rr": give left a meaning drawn
// from rr.
//
// spec.md §4.6's prose names the two preconditions and the case-split
// table in terms of "left" and "rr" directly, but read literally
// against this same section's own worked examples (§8 scenarios 1, 5,
// 6 and 7) that prose does not hold — e.g. scenario 1's
// "a (:= (b c))" has rr as a composite pair, which the literal
// "rr is a pair -> BadDefinition" precondition would reject, yet the
// scenario succeeds. The reference implementation's Definer::define
// resolves the roles the other way around: the operand being named
// (left here) plays "after", the existing structure or symbol it is
// named from (rr here) plays "before", and InfiniteDefinition/
// BadDefinition and the case-split below are checked against those
// roles, not the surface left/rr order.
func definitionCommand(a *concept.Arena, left, rr syntax.Node) (string, error) {
	if syntax.Contains(rr, left) {
		return "", zerr.New(zerr.InfiniteDefinition, fmt.Sprintf("%s := %s", left.Text(), rr.Text()))
	}
	if syntax.IsPair(left) {
		return "", zerr.New(zerr.BadDefinition, fmt.Sprintf("%s := %s", left.Text(), rr.Text()))
	}

	afterID, afterBound := left.Concept()
	beforeID, beforeBound := rr.Concept()
	rrPair, rrIsPair := rr.(*syntax.Pair)

	switch {
	case !beforeBound && !rrIsPair:
		return "", zerr.New(zerr.RedundantRefactor, rr.Text())

	case afterBound && beforeBound && !rrIsPair:
		if afterID == beforeID {
			a.DeleteDefinitionGC(afterID)
			return "", nil
		}
		return "", zerr.New(zerr.DefinitionCollision, fmt.Sprintf("%s := %s", left.Text(), rr.Text()))

	case !afterBound && beforeBound && !rrIsPair:
		if err := a.Relabel(beforeID, left.Text()); err != nil {
			return "", err
		}
		return "", nil

	case afterBound && beforeBound && rrIsPair:
		if afterID == beforeID {
			return "", zerr.New(zerr.RedundantDefinition, left.Text())
		}
		return "", zerr.New(zerr.DefinitionCollision, fmt.Sprintf("%s := %s", left.Text(), rr.Text()))

	case !afterBound && beforeBound && rrIsPair:
		if err := labelOrRelabel(a, beforeID, left.Text()); err != nil {
			return "", err
		}
		return "", nil

	case afterBound && !beforeBound && rrIsPair:
		return redefine(a, afterID, rrPair)

	case !afterBound && !beforeBound && rrIsPair:
		return defineNewSyntax(a, left.Text(), rrPair)
	}

	panic("dispatch: definitionCommand reached an impossible binding combination")
}

// labelOrRelabel gives id the label text, whether or not it already
// carries one: Arena.Relabel requires an existing label to drop first
// (Unlabel is fatal on an unlabeled concept, per spec.md §4.3's
// "callers check first" contract), so this checks which primitive
// applies rather than assuming id was already named.
func labelOrRelabel(a *concept.Arena, id concept.ID, text string) error {
	if a.IsLabeled(id) {
		return a.Relabel(id, text)
	}
	return a.Label(id, text)
}

// redefine gives an existing concept new child structure: if it is
// already a pair, relabel its children to match rr's rendered forms —
// a child concept reached this way need not already carry a label of
// its own (e.g. an unlabeled multi-word pair), so labelOrRelabel
// rather than a bare Relabel is required here too; otherwise
// materialize rr's children as fresh concepts and attach them as id's
// definition.
func redefine(a *concept.Arena, id concept.ID, rr *syntax.Pair) (string, error) {
	if l, r, ok := a.Definition(id); ok {
		if err := labelOrRelabel(a, l, rr.Left.Text()); err != nil {
			return "", err
		}
		if err := labelOrRelabel(a, r, rr.Right.Text()); err != nil {
			return "", err
		}
		return "", nil
	}
	lc, err := conceptFromAST(a, rr.Left)
	if err != nil {
		return "", err
	}
	rc, err := conceptFromAST(a, rr.Right)
	if err != nil {
		return "", err
	}
	if err := a.SetDefinition(id, lc, rc); err != nil {
		return "", err
	}
	return "", nil
}

// defineNewSyntax materializes rr's structure into the graph and
// labels the resulting concept with text — the name being introduced,
// not rr's own rendered form.
func defineNewSyntax(a *concept.Arena, text string, rr *syntax.Pair) (string, error) {
	lc, err := conceptFromAST(a, rr.Left)
	if err != nil {
		return "", err
	}
	rc, err := conceptFromAST(a, rr.Right)
	if err != nil {
		return "", err
	}
	id := a.FindOrInsertDefinition(lc, rc)
	if err := a.Label(id, text); err != nil {
		return "", err
	}
	return "", nil
}

// conceptFromAST materializes node into the graph, per spec.md §4.7:
// an already-bound node returns its id directly; an unbound symbol
// becomes a fresh labeled concept; an unbound pair recurses on its
// children and finds-or-inserts their definition, additionally
// labeling the result when its rendered text is a single word.
func conceptFromAST(a *concept.Arena, node syntax.Node) (concept.ID, error) {
	if id, ok := node.Concept(); ok {
		return id, nil
	}
	switch n := node.(type) {
	case *syntax.Symbol:
		id := a.Allocate(concept.Abstract)
		if err := a.Label(id, n.Text()); err != nil {
			return 0, err
		}
		return id, nil
	case *syntax.Pair:
		lc, err := conceptFromAST(a, n.Left)
		if err != nil {
			return 0, err
		}
		rc, err := conceptFromAST(a, n.Right)
		if err != nil {
			return 0, err
		}
		id := a.FindOrInsertDefinition(lc, rc)
		if !strings.Contains(n.Text(), " ") {
			if err := a.Label(id, n.Text()); err != nil {
				return 0, err
			}
		}
		return id, nil
	default:
		panic("dispatch: unknown syntax node type")
	}
}
