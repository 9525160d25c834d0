// Package zia is the public façade over the concept store: it owns
// the arena, initializes the three built-in concepts, and exposes a
// single Execute method that runs one command to completion, mirroring
// cuecontext.New's "one constructor, one façade" shape (spec.md §4.8).
package zia

import (
	"github.com/google/uuid"

	"github.com/ziacorp/zia/internal/concept"
	"github.com/ziacorp/zia/internal/dispatch"
	"github.com/ziacorp/zia/internal/syntax"
	"github.com/ziacorp/zia/internal/zerr"
)

// Context holds one independent concept graph. The zero value is not
// usable; construct one with New. A Context is not safe for concurrent
// use — spec.md §5 makes the whole Context the unit of exclusion, so
// concurrent callers must serialize their own access.
type Context struct {
	arena *concept.Arena
	b     dispatch.Builtins

	// ID identifies this session for logging and diagnostics; it plays
	// no role in command evaluation.
	ID uuid.UUID
}

// New allocates a fresh Context: the arena, and the three built-in
// concepts in their fixed order (LABEL, DEFINE, REDUCTION), with
// DEFINE and REDUCTION labeled ":=" and "->". LABEL itself is left
// unlabeled, per spec.md §3.
func New() *Context {
	a := concept.NewArena()
	label := a.Allocate(concept.Abstract)
	a.Bootstrap(label)

	define := a.Allocate(concept.Abstract)
	if err := a.Label(define, ":="); err != nil {
		panic("zia: unexpected error labeling DEFINE at bootstrap: " + err.Error())
	}
	reduction := a.Allocate(concept.Abstract)
	if err := a.Label(reduction, "->"); err != nil {
		panic("zia: unexpected error labeling REDUCTION at bootstrap: " + err.Error())
	}

	return &Context{
		arena: a,
		b:     dispatch.Builtins{Define: define, Reduction: reduction},
		ID:    uuid.New(),
	}
}

// Execute runs one command to completion: parse, dispatch, and render
// either the result or the error's stable one-line diagnostic
// (spec.md §6's entry point). Lines are processed independently; a
// failing command leaves the graph unchanged except where the
// dispatcher itself already mutated state before detecting failure
// deeper in a composite step (spec.md §5).
func (c *Context) Execute(command string) string {
	node, err := syntax.Parse(command, c.arena)
	if err != nil {
		return errorText(err)
	}
	result, err := dispatch.Call(c.arena, c.b, node)
	if err != nil {
		return errorText(err)
	}
	return result
}

func errorText(err error) string {
	if e, ok := err.(*zerr.E); ok {
		return e.Error()
	}
	return err.Error()
}

// Inspect returns every live concept id, for diagnostic tooling (the
// "zia inspect" subcommand) that wants to dump the graph's current
// shape without adding a persistence layer to the core itself.
func (c *Context) Inspect() []ConceptSnapshot {
	ids := c.arena.IterIDs()
	snapshots := make([]ConceptSnapshot, 0, len(ids))
	for _, id := range ids {
		s := ConceptSnapshot{ID: int(id)}
		if text, ok := c.arena.LabelOf(id); ok {
			s.Label = text
		}
		if l, r, ok := c.arena.Definition(id); ok {
			li, ri := int(l), int(r)
			s.DefinitionLeft = &li
			s.DefinitionRight = &ri
		}
		if target, ok := c.arena.Reduction(id); ok {
			ti := int(target)
			s.Reduction = &ti
		}
		if c.arena.Kind(id) == concept.String {
			s.String = c.arena.StringText(id)
			s.IsString = true
		}
		snapshots = append(snapshots, s)
	}
	return snapshots
}

// ConceptSnapshot is a flattened, serialization-friendly view of one
// concept, used by "zia inspect" to render the graph as YAML.
type ConceptSnapshot struct {
	ID              int    `yaml:"id"`
	Label           string `yaml:"label,omitempty"`
	DefinitionLeft  *int   `yaml:"definition_left,omitempty"`
	DefinitionRight *int   `yaml:"definition_right,omitempty"`
	Reduction       *int   `yaml:"reduction,omitempty"`
	IsString        bool   `yaml:"is_string,omitempty"`
	String          string `yaml:"string,omitempty"`
}
