// Package reduce implements spec.md §4.5: turning a syntax tree into
// its normal form (Reduce/RecursivelyReduce), rebuilding a concept's
// syntax tree from the graph (ToAST), and unfolding labels back into
// the structure they name (Expand). None of these raise errors — they
// are pure graph-to-tree and tree-to-tree transformations; only the
// dispatcher's meta-commands (internal/dispatch) can fail.
package reduce

import (
	"github.com/ziacorp/zia/internal/concept"
	"github.com/ziacorp/zia/internal/syntax"
)

// ToAST rebuilds the syntax tree a concept represents: its label if it
// has one, otherwise the recursive combination of its definition's two
// sides, bound to id (a concept's own definition always resolves back
// to itself, by construction of FindOrInsertDefinition).
func ToAST(a *concept.Arena, id concept.ID) syntax.Node {
	if text, ok := a.LabelOf(id); ok {
		return syntax.NewSymbol(text, id, true)
	}
	l, r, ok := a.Definition(id)
	if !ok {
		panic("reduce: concept has neither label nor definition")
	}
	left := ToAST(a, l)
	right := ToAST(a, r)
	return syntax.NewPair(left, right, id, true)
}

// Reduce performs one rewrite step on node, per spec.md §4.5. If node
// is bound to a concept at all — whether structurally a Symbol or a
// Pair — the concept's own relations decide the step (reduceConcept):
// a direct normal form wins outright, otherwise its definition's two
// sides are reduced analogously. Only an unbound pair falls back to
// reducing its own children directly. It reports whether anything
// changed, so RecursivelyReduce knows when to stop.
func Reduce(a *concept.Arena, node syntax.Node) (syntax.Node, bool) {
	if id, ok := node.Concept(); ok {
		if result, changed := reduceConcept(a, id); changed {
			return result, true
		}
		return node, false
	}
	pair, ok := node.(*syntax.Pair)
	if !ok {
		return node, false
	}
	newLeft, changedLeft := Reduce(a, pair.Left)
	newRight, changedRight := Reduce(a, pair.Right)
	if !changedLeft && !changedRight {
		return node, false
	}
	return contractPair(a, newLeft, newRight), true
}

// reduceConcept is spec.md §4.5's reduce_concept: id's normal form if
// it has one directly, else its definition's two sides reduced
// recursively and recombined — using the reduced result for a side
// that changed and ToAST of the original id for a side that didn't,
// exactly as the contract-pair rule expects.
func reduceConcept(a *concept.Arena, id concept.ID) (syntax.Node, bool) {
	if nf, ok := a.NormalForm(id); ok {
		return ToAST(a, nf), true
	}
	l, r, ok := a.Definition(id)
	if !ok {
		return nil, false
	}
	leftResult, changedLeft := reduceConcept(a, l)
	rightResult, changedRight := reduceConcept(a, r)
	if !changedLeft && !changedRight {
		return nil, false
	}
	left := leftResult
	if !changedLeft {
		left = ToAST(a, l)
	}
	right := rightResult
	if !changedRight {
		right = ToAST(a, r)
	}
	return contractPair(a, left, right), true
}

// contractPair rebuilds left and right into a single node, collapsing
// to a bound Symbol carrying the result's label when both children are
// themselves bound, their definition already exists, and that
// definition is labeled — spec.md §4.5's "contract-pair rule", the one
// place a reduction step can shrink a pair back down to a word instead
// of leaving two rewritten children standing next to each other.
func contractPair(a *concept.Arena, left, right syntax.Node) syntax.Node {
	lid, lok := left.Concept()
	rid, rok := right.Concept()
	if lok && rok {
		if def, ok := a.FindDefinition(lid, rid); ok {
			if text, ok := a.LabelOf(def); ok {
				return syntax.NewSymbol(text, def, true)
			}
			return syntax.NewPair(left, right, def, true)
		}
	}
	return syntax.Combine(a, left, right)
}

// RecursivelyReduce applies Reduce until it reaches a fixed point,
// i.e. the node's full normal form.
func RecursivelyReduce(a *concept.Arena, node syntax.Node) syntax.Node {
	for {
		next, changed := Reduce(a, node)
		if !changed {
			return node
		}
		node = next
	}
}

// Expand unfolds every labeled symbol in node down into the structure
// its concept is defined as, recursively — the inverse of the
// contract-pair rule above. A symbol with no definition, or that isn't
// bound to any concept at all, has nothing to unfold and is returned
// unchanged.
func Expand(a *concept.Arena, node syntax.Node) syntax.Node {
	if pair, ok := node.(*syntax.Pair); ok {
		return syntax.Combine(a, Expand(a, pair.Left), Expand(a, pair.Right))
	}
	id, ok := node.Concept()
	if !ok {
		return node
	}
	l, r, ok := a.Definition(id)
	if !ok {
		return node
	}
	return syntax.Combine(a, Expand(a, ToAST(a, l)), Expand(a, ToAST(a, r)))
}
