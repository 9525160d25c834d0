package concept

import "fmt"

// Arena owns the set of live concepts. The zero value is not usable;
// construct one with NewArena.
type Arena struct {
	nodes []*node // nodes[id] == nil means id is released or never allocated
	gaps  []ID

	strings map[string]ID // string literal -> its string concept id

	labelID ID // the reserved LABEL concept; see Bootstrap
	hasLAB  bool
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{strings: make(map[string]ID)}
}

// Bootstrap records which concept is the reserved LABEL concept used
// by the labeling machinery (spec.md §3 "Built-in concepts"). It must
// be called exactly once, by the Context façade, immediately after
// allocating LABEL.
func (a *Arena) Bootstrap(labelID ID) {
	if a.hasLAB {
		panic("concept: Bootstrap called more than once")
	}
	a.labelID = labelID
	a.hasLAB = true
}

// Allocate reserves a fresh id for a concept of the given kind,
// reusing a released id if one is available.
func (a *Arena) Allocate(kind Kind) ID {
	n := newNode(kind)
	if len(a.gaps) > 0 {
		id := a.gaps[len(a.gaps)-1]
		a.gaps = a.gaps[:len(a.gaps)-1]
		a.nodes[id] = n
		return id
	}
	id := ID(len(a.nodes))
	a.nodes = append(a.nodes, n)
	return id
}

// Release frees id for future reuse. The caller (delete_definition_gc)
// is responsible for having already unlinked every relation id
// participated in; Release only clears the slot.
func (a *Arena) Release(id ID) {
	a.get(id) // panics if id is not live
	a.nodes[id] = nil
	a.gaps = append(a.gaps, id)
}

// get returns the live node for id, or panics. Reading or mutating a
// released id is a programmer error, per spec.md §4.1.
func (a *Arena) get(id ID) *node {
	if int(id) < 0 || int(id) >= len(a.nodes) || a.nodes[id] == nil {
		panic(fmt.Sprintf("concept: use of released or unknown id %d", id))
	}
	return a.nodes[id]
}

// IterIDs returns every live concept id in ascending order. Used by
// diagnostic tooling (zia inspect); never used by the reader's query
// operations or the garbage collector, which are all keyed off
// back-ref sets instead of scans.
func (a *Arena) IterIDs() []ID {
	out := make([]ID, 0, len(a.nodes))
	for id, n := range a.nodes {
		if n != nil {
			out = append(out, ID(id))
		}
	}
	return out
}

// IsLive reports whether id currently refers to an allocated,
// unreleased concept.
func (a *Arena) IsLive(id ID) bool {
	return int(id) >= 0 && int(id) < len(a.nodes) && a.nodes[id] != nil
}

// Kind reports the kind of a live concept.
func (a *Arena) Kind(id ID) Kind {
	return a.get(id).kind
}

// InternString returns the id of the string concept holding text,
// allocating and registering a fresh one if this is the first time
// text has been seen. Idempotent: calling it twice with equal text
// returns the same id (spec.md §4.1, §4.3).
func (a *Arena) InternString(text string) ID {
	if id, ok := a.strings[text]; ok {
		return id
	}
	id := a.Allocate(String)
	a.get(id).text = text
	a.strings[text] = id
	return id
}

// StringText returns the literal text of a String concept. Panics if
// id is not a String concept.
func (a *Arena) StringText(id ID) string {
	n := a.get(id)
	if n.kind != String {
		panic(fmt.Sprintf("concept: %d is not a string concept", id))
	}
	return n.text
}
