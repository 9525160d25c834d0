package concept

import (
	"fmt"

	"github.com/ziacorp/zia/internal/zerr"
)

// SetDefinition links id to the ordered pair (l, r). It is the sole
// primitive that creates a definition; every higher-level command
// goes through it so invariants 4 and 6 are checked in one place. It
// does not check invariant 1: whether another concept already has the
// definition (l, r) is left to the caller (FindOrInsertDefinition looks
// it up first).
func (a *Arena) SetDefinition(id, l, r ID) error {
	n := a.get(id)
	if n.def != nil {
		panic(fmt.Sprintf("concept: %d already has a definition", id))
	}
	if a.Contains(l, id) || a.Contains(r, id) {
		return zerr.New(zerr.InfiniteDefinition, fmt.Sprintf("%d in (%d %d)", id, l, r))
	}
	if a.reductionAncestorContains(l, id) || a.reductionAncestorContains(r, id) {
		return zerr.New(zerr.ExpandingReduction, fmt.Sprintf("%d in (%d %d)", id, l, r))
	}
	n.def = &definition{left: l, right: r}
	a.get(l).lefthandOf[id] = struct{}{}
	a.get(r).righthandOf[id] = struct{}{}
	return nil
}

// reductionAncestorContains reports whether any concept that x
// reduces to (directly or transitively) structurally contains target,
// per invariant 6 (reduction-composition coherence).
func (a *Arena) reductionAncestorContains(x, target ID) bool {
	cur := x
	for {
		next, ok := a.Reduction(cur)
		if !ok {
			return false
		}
		if a.Contains(next, target) {
			return true
		}
		cur = next
	}
}

// RemoveDefinition clears id's definition and its two back-refs. Fatal
// if id has no definition: callers (delete_definition_gc) always check
// first.
func (a *Arena) RemoveDefinition(id ID) {
	n := a.get(id)
	if n.def == nil {
		panic(fmt.Sprintf("concept: %d has no definition to remove", id))
	}
	delete(a.get(n.def.left).lefthandOf, id)
	delete(a.get(n.def.right).righthandOf, id)
	n.def = nil
}

// SetReduction links id to reduce to target, replacing any existing
// reduction. Checked against invariants 5 (no cycle) and 6. String
// concepts never reduce (invariant 7): calling it with a String id is a
// programmer error.
func (a *Arena) SetReduction(id, target ID) error {
	n := a.get(id)
	if n.kind == String {
		panic(fmt.Sprintf("concept: string concept %d cannot be given a reduction", id))
	}
	for cur, ok := a.Reduction(target); ok; cur, ok = a.Reduction(cur) {
		if cur == id {
			return zerr.New(zerr.CyclicReduction, fmt.Sprintf("%d -> %d", id, target))
		}
	}
	if n.reduction != nil && *n.reduction == target {
		return zerr.New(zerr.RedundantReduction, fmt.Sprintf("%d -> %d", id, target))
	}
	if a.Contains(target, id) {
		return zerr.New(zerr.ExpandingReduction, fmt.Sprintf("%d -> %d", id, target))
	}
	if n.reduction != nil {
		a.RemoveReduction(id)
	}
	n.reduction = &target
	a.get(target).reducesFrom[id] = struct{}{}
	return nil
}

// RemoveReduction drops id's reduction link and the corresponding
// back-ref. Fatal if id has no reduction.
func (a *Arena) RemoveReduction(id ID) {
	n := a.get(id)
	if n.reduction == nil {
		panic(fmt.Sprintf("concept: %d has no reduction to remove", id))
	}
	delete(a.get(*n.reduction).reducesFrom, id)
	n.reduction = nil
}

// FindOrInsertDefinition returns the existing concept whose definition
// is (l, r), or allocates a fresh abstract concept and assigns it that
// definition.
func (a *Arena) FindOrInsertDefinition(l, r ID) ID {
	if id, ok := a.FindDefinition(l, r); ok {
		return id
	}
	id := a.Allocate(Abstract)
	if err := a.SetDefinition(id, l, r); err != nil {
		// A fresh concept cannot already contain itself or be reached
		// by a reduction ancestor of l or r that didn't already exist
		// before id was allocated, so this can only mean a caller
		// passed ids that already violate an invariant elsewhere.
		panic(fmt.Sprintf("concept: unexpected error defining fresh concept: %v", err))
	}
	return id
}

// Label attaches text to id as its name: find_or_insert_definition(LABEL, id)
// then set_reduction(pair, intern_string(text)). Fails RedundantReduction
// if id is already labeled with exactly this text.
func (a *Arena) Label(id ID, text string) error {
	if !a.hasLAB {
		panic("concept: arena not bootstrapped with a LABEL concept")
	}
	pair := a.FindOrInsertDefinition(a.labelID, id)
	strID := a.InternString(text)
	return a.SetReduction(pair, strID)
}

// Unlabel removes id's label. Missing label is a programmer error at
// this layer; callers (the dispatcher) check IsLabeled first.
func (a *Arena) Unlabel(id ID) {
	pair, ok := a.labelPairFor(id)
	if !ok {
		panic(fmt.Sprintf("concept: %d has no label to remove", id))
	}
	a.RemoveReduction(pair)
}

// Relabel replaces id's label with newText. The two sub-steps run in
// an order that leaves the graph consistent even if Label below fails:
// Unlabel only ever drops a reduction edge, which can't itself violate
// an invariant, so there is no partially-applied state to roll back.
func (a *Arena) Relabel(id ID, newText string) error {
	a.Unlabel(id)
	return a.Label(id, newText)
}

// IsLabeled reports whether id currently has a label.
func (a *Arena) IsLabeled(id ID) bool {
	_, ok := a.labelPairFor(id)
	return ok
}

// DeleteDefinitionGC removes id's definition and then releases id and
// each former child that has become disconnected, unlabeling first
// where necessary.
//
// Unlabeling a concept being released only drops its label pair's
// reduction, not the label pair's own definition (LABEL, id). The label
// pair is not one of the concepts checked for collection here, so it
// stays live with a definition that mentions the now-released id.
func (a *Arena) DeleteDefinitionGC(id ID) {
	l, r, ok := a.Definition(id)
	if !ok {
		panic(fmt.Sprintf("concept: %d has no definition to delete", id))
	}
	a.RemoveDefinition(id)
	seen := make(map[ID]struct{}, 3)
	for _, candidate := range []ID{id, l, r} {
		if _, dup := seen[candidate]; dup {
			continue
		}
		seen[candidate] = struct{}{}
		a.collectIfDisconnected(candidate)
	}
}

func (a *Arena) collectIfDisconnected(id ID) {
	if !a.IsLive(id) || !a.IsDisconnected(id) {
		return
	}
	if a.IsLabeled(id) {
		a.Unlabel(id)
	}
	a.Release(id)
}
