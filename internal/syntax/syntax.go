// Package syntax implements the AST of spec.md §3 "Syntax tree" and
// §4.4: a tree parallel to the concept graph, where every node is
// either a bare symbol or a (left right) pair, optionally bound to a
// concept id. Syntax trees are immutable value types; equality is by
// rendered text, documented explicitly here because the same
// sub-phrase can be materialized independently by different calls
// (spec.md §9 "Polymorphism over syntax nodes").
package syntax

import (
	"fmt"

	"github.com/ziacorp/zia/internal/concept"
)

// Node is the sum type over Zia's two AST variants, modeled the way
// cue/ast.go models Expr/Decl: a marker method plus the handful of
// accessors every variant shares.
type Node interface {
	node()
	// Text returns this node's rendered surface form.
	Text() string
	// Concept returns the concept this node is bound to, if any.
	Concept() (concept.ID, bool)
}

// Symbol is a leaf: a bare token, optionally bound to the concept its
// label resolves to.
type Symbol struct {
	text  string
	id    concept.ID
	bound bool
}

func (*Symbol) node() {}

// Text returns the symbol's literal token text.
func (s *Symbol) Text() string { return s.text }

// Concept returns the concept this symbol is bound to, if its text is
// a known label.
func (s *Symbol) Concept() (concept.ID, bool) { return s.id, s.bound }

func (s *Symbol) String() string { return s.text }

// GoString renders a debug form, per SPEC_FULL.md's supplemented
// String/GoString pair.
func (s *Symbol) GoString() string {
	if s.bound {
		return fmt.Sprintf("Symbol(%q, #%d)", s.text, s.id)
	}
	return fmt.Sprintf("Symbol(%q)", s.text)
}

// Pair is a branch: two children joined by a space, optionally bound
// to the concept that is their (left, right) definition.
type Pair struct {
	text  string
	id    concept.ID
	bound bool
	Left  Node
	Right Node
}

func (*Pair) node() {}

// Text returns the pair's rendered surface form: its children's joint
// text, space-separated, with any child that is itself a Pair
// parenthesized.
func (p *Pair) Text() string { return p.text }

// Concept returns the concept this pair is bound to, if its children
// are both bound and their (left, right) definition already exists.
func (p *Pair) Concept() (concept.ID, bool) { return p.id, p.bound }

func (p *Pair) String() string { return p.text }

// GoString renders a debug form showing both children.
func (p *Pair) GoString() string {
	if p.bound {
		return fmt.Sprintf("Pair(%q, #%d, %#v, %#v)", p.text, p.id, p.Left, p.Right)
	}
	return fmt.Sprintf("Pair(%q, %#v, %#v)", p.text, p.Left, p.Right)
}

// NewSymbol builds a Symbol, bound to id if bound is true.
func NewSymbol(text string, id concept.ID, bound bool) Node {
	return &Symbol{text: text, id: id, bound: bound}
}

// NewUnboundSymbol builds a Symbol with no concept binding.
func NewUnboundSymbol(text string) Node {
	return &Symbol{text: text}
}

// jointText is a node's rendered form as it appears when it is a
// child of a larger pair: a Pair's own text gets parenthesized, a
// Symbol's does not (spec.md §4.4's display_joint).
func jointText(n Node) string {
	if _, ok := n.(*Pair); ok {
		return "(" + n.Text() + ")"
	}
	return n.Text()
}

// Combine joins left and right into a Pair, per spec.md §4.4: the
// rendered text is their joint forms space-separated, and the new
// pair is bound iff both children are bound and a concept already
// exists. Combine never collapses a bound pair down to the label of
// an already-known concept — that contraction is the reducer's job
// (internal/reduce's contract-pair rule, spec.md §4.5), kept separate
// so the parser's output is always structural.
func Combine(a *concept.Arena, left, right Node) Node {
	text := jointText(left) + " " + jointText(right)
	var id concept.ID
	bound := false
	if lid, lok := left.Concept(); lok {
		if rid, rok := right.Concept(); rok {
			if found, ok := a.FindDefinition(lid, rid); ok {
				id, bound = found, true
			}
		}
	}
	return &Pair{text: text, id: id, bound: bound, Left: left, Right: right}
}

// NewPair builds a Pair directly from an already-known (id, bound)
// binding, without consulting the arena. Used by the reducer's
// contract-pair rule once it has already looked up the definition.
func NewPair(left, right Node, id concept.ID, bound bool) Node {
	return &Pair{text: jointText(left) + " " + jointText(right), id: id, bound: bound, Left: left, Right: right}
}

// Equal reports whether a and b have the same rendered text — the
// documented equality for syntax trees (spec.md §3).
func Equal(a, b Node) bool {
	return a.Text() == b.Text()
}

// Contains reports whether inner appears strictly inside outer's own
// AST structure — as one of outer's descendants, never outer itself.
// This mirrors the original source's Container::contains exactly (it
// only recurses into an expansion's two sides, with no self-check at
// the top), which matters: the dispatcher's ExpandingReduction and
// InfiniteDefinition checks run Contains before a separate Equal
// check for the "reduce/define a concept as itself" case, and a
// reflexive Contains would make Equal(outer, inner) always be
// preempted by Contains(outer, inner) reporting true first. Contains
// never consults a bound concept's definition, only the tree as
// parsed.
func Contains(outer, inner Node) bool {
	p, ok := outer.(*Pair)
	if !ok {
		return false
	}
	if Equal(p.Left, inner) || Equal(p.Right, inner) {
		return true
	}
	return Contains(p.Left, inner) || Contains(p.Right, inner)
}

// IsPair reports whether n is a composite (Pair) node as opposed to a
// bare Symbol.
func IsPair(n Node) bool {
	_, ok := n.(*Pair)
	return ok
}
