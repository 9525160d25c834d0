package concept

import "fmt"

// Definition returns the (left, right) pair id is defined as, if any.
func (a *Arena) Definition(id ID) (left, right ID, ok bool) {
	n := a.get(id)
	if n.def == nil {
		return 0, 0, false
	}
	return n.def.left, n.def.right, true
}

// Reduction returns the concept id directly reduces to, if any.
func (a *Arena) Reduction(id ID) (target ID, ok bool) {
	n := a.get(id)
	if n.reduction == nil {
		return 0, false
	}
	return *n.reduction, true
}

// NormalForm follows reduction links to their fixed point. Invariant 5
// (acyclic reduction) bounds the recursion; it returns ok == false if
// id has no reduction at all, and otherwise the final concept in the
// chain (which may itself still be one hop, if that target has no
// further reduction).
func (a *Arena) NormalForm(id ID) (ID, bool) {
	cur := id
	moved := false
	for {
		next, ok := a.Reduction(cur)
		if !ok {
			break
		}
		cur = next
		moved = true
	}
	if !moved {
		return 0, false
	}
	return cur, true
}

// FindDefinition returns the unique concept whose definition is
// (l, r), by intersecting l's lefthandOf with r's righthandOf.
// Invariant 1 guarantees at most one hit; a second hit is a
// programmer error (the invariant was already violated elsewhere).
func (a *Arena) FindDefinition(l, r ID) (ID, bool) {
	left := a.get(l)
	right := a.get(r)
	var found ID
	hits := 0
	for id := range left.lefthandOf {
		if _, ok := right.righthandOf[id]; ok {
			found = id
			hits++
		}
	}
	switch hits {
	case 0:
		return 0, false
	case 1:
		return found, true
	default:
		panic(fmt.Sprintf("concept: definition uniqueness violated for (%d, %d)", l, r))
	}
}

// labelPairFor returns the unique concept c with Definition(c) ==
// (LABEL, id), i.e. the labeling pair itself — not id's label text.
func (a *Arena) labelPairFor(id ID) (ID, bool) {
	if !a.hasLAB {
		panic("concept: arena not bootstrapped with a LABEL concept")
	}
	return a.FindDefinition(a.labelID, id)
}

// ConceptOfLabel returns the label pair concept for id, if id is
// labeled.
func (a *Arena) ConceptOfLabel(id ID) (ID, bool) {
	return a.labelPairFor(id)
}

// LabelOf returns the label text of id, if any.
func (a *Arena) LabelOf(id ID) (string, bool) {
	pair, ok := a.labelPairFor(id)
	if !ok {
		return "", false
	}
	strID, ok := a.NormalForm(pair)
	if !ok {
		return "", false
	}
	return a.StringText(strID), true
}

// IDOfLabel looks up the concept labeled with text, if any: it finds
// the string concept for text, then searches the set of concepts that
// reduce (directly or transitively) to it for the one whose
// definition is (LABEL, x), yielding x.
func (a *Arena) IDOfLabel(text string) (ID, bool) {
	strID, ok := a.strings[text]
	if !ok {
		return 0, false
	}
	seen := map[ID]struct{}{strID: {}}
	queue := []ID{strID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if l, r, ok := a.Definition(cur); ok && l == a.labelID {
			return r, true
		}
		for from := range a.get(cur).reducesFrom {
			if _, dup := seen[from]; dup {
				continue
			}
			seen[from] = struct{}{}
			queue = append(queue, from)
		}
	}
	return 0, false
}

// Contains reports whether inner appears anywhere in outer's
// definition subtree, including outer itself.
func (a *Arena) Contains(outer, inner ID) bool {
	if outer == inner {
		return true
	}
	l, r, ok := a.Definition(outer)
	if !ok {
		return false
	}
	return a.Contains(l, inner) || a.Contains(r, inner)
}

// IsDisconnected reports whether id participates in no relation other
// than, at most, its own label — making it eligible for garbage
// collection (spec.md §4.2, §4.3 delete_definition_gc).
func (a *Arena) IsDisconnected(id ID) bool {
	n := a.get(id)
	if n.reduction != nil || n.def != nil {
		return false
	}
	if len(n.lefthandOf) != 0 || len(n.reducesFrom) != 0 {
		return false
	}
	for p := range n.righthandOf {
		l, _, ok := a.Definition(p)
		if !ok || l != a.labelID {
			return false
		}
	}
	return true
}

// Display renders id as surface text: the quoted literal if id is a
// string concept, else its label if it has one, else the recursive
// "display(l) display(r)" of its definition, with parentheses around
// any child whose own rendering contains a space. An unlabeled
// concept with no definition cannot be displayed and is a programmer
// error — the writer never produces one (every concept is either
// interned as a string, labeled, or given a definition at creation).
func (a *Arena) Display(id ID) string {
	n := a.get(id)
	if n.kind == String {
		return fmt.Sprintf("%q", n.text)
	}
	if text, ok := a.LabelOf(id); ok {
		return text
	}
	l, r, ok := a.Definition(id)
	if !ok {
		panic(fmt.Sprintf("concept: %d has neither a label nor a definition", id))
	}
	return a.displayChild(l) + " " + a.displayChild(r)
}

func (a *Arena) displayChild(id ID) string {
	s := a.Display(id)
	for _, r := range s {
		if r == ' ' {
			return "(" + s + ")"
		}
	}
	return s
}
