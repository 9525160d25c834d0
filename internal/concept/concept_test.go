package concept_test

import (
	"errors"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/ziacorp/zia/internal/concept"
	"github.com/ziacorp/zia/internal/zerr"
)

func newBootstrapped(t *testing.T) (*concept.Arena, concept.ID) {
	t.Helper()
	a := concept.NewArena()
	label := a.Allocate(concept.Abstract)
	a.Bootstrap(label)
	return a, label
}

func TestInternStringIsIdempotent(t *testing.T) {
	a, _ := newBootstrapped(t)
	id1 := a.InternString("hello")
	id2 := a.InternString("hello")
	qt.Assert(t, qt.Equals(id1, id2))
	qt.Assert(t, qt.Equals(a.StringText(id1), "hello"))
}

func TestLabelRoundTrip(t *testing.T) {
	a, _ := newBootstrapped(t)
	x := a.Allocate(concept.Abstract)
	qt.Assert(t, qt.IsNil(a.Label(x, "foo")))

	got, ok := a.IDOfLabel("foo")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(got, x))

	text, ok := a.LabelOf(x)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(text, "foo"))
}

func TestRelabelReplacesOldLabel(t *testing.T) {
	a, _ := newBootstrapped(t)
	x := a.Allocate(concept.Abstract)
	qt.Assert(t, qt.IsNil(a.Label(x, "foo")))
	qt.Assert(t, qt.IsNil(a.Relabel(x, "bar")))

	_, ok := a.IDOfLabel("foo")
	qt.Assert(t, qt.IsFalse(ok))

	got, ok := a.IDOfLabel("bar")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(got, x))
}

func TestSetDefinitionRejectsSelfContainment(t *testing.T) {
	a, _ := newBootstrapped(t)
	x := a.Allocate(concept.Abstract)
	y := a.Allocate(concept.Abstract)
	err := a.SetDefinition(x, x, y)
	qt.Assert(t, qt.ErrorIs(err, zerr.New(zerr.InfiniteDefinition, "")))
}

func TestSetDefinitionUniqueness(t *testing.T) {
	a, _ := newBootstrapped(t)
	l := a.Allocate(concept.Abstract)
	r := a.Allocate(concept.Abstract)
	id := a.FindOrInsertDefinition(l, r)
	again := a.FindOrInsertDefinition(l, r)
	qt.Assert(t, qt.Equals(id, again))
}

func TestSetReductionRejectsCycle(t *testing.T) {
	a, _ := newBootstrapped(t)
	x := a.Allocate(concept.Abstract)
	y := a.Allocate(concept.Abstract)
	qt.Assert(t, qt.IsNil(a.SetReduction(x, y)))
	err := a.SetReduction(y, x)
	qt.Assert(t, qt.ErrorIs(err, zerr.New(zerr.CyclicReduction, "")))
}

func TestSetReductionRedundant(t *testing.T) {
	a, _ := newBootstrapped(t)
	x := a.Allocate(concept.Abstract)
	y := a.Allocate(concept.Abstract)
	qt.Assert(t, qt.IsNil(a.SetReduction(x, y)))
	err := a.SetReduction(x, y)
	qt.Assert(t, qt.ErrorIs(err, zerr.New(zerr.RedundantReduction, "")))
}

func TestNormalFormFollowsChain(t *testing.T) {
	a, _ := newBootstrapped(t)
	x := a.Allocate(concept.Abstract)
	y := a.Allocate(concept.Abstract)
	z := a.Allocate(concept.Abstract)
	qt.Assert(t, qt.IsNil(a.SetReduction(x, y)))
	qt.Assert(t, qt.IsNil(a.SetReduction(y, z)))

	nf, ok := a.NormalForm(x)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(nf, z))

	_, ok = a.NormalForm(z)
	qt.Assert(t, qt.IsFalse(ok))
}

func TestDeleteDefinitionGCReleasesDisconnectedChildren(t *testing.T) {
	a, _ := newBootstrapped(t)
	b := a.Allocate(concept.Abstract)
	c := a.Allocate(concept.Abstract)
	top := a.FindOrInsertDefinition(b, c)

	a.DeleteDefinitionGC(top)

	qt.Assert(t, qt.IsFalse(a.IsLive(top)))
	qt.Assert(t, qt.IsFalse(a.IsLive(b)))
	qt.Assert(t, qt.IsFalse(a.IsLive(c)))
}

// A child whose only remaining relation is its own label counts as
// disconnected, so it is unlabeled and released like any other.
func TestDeleteDefinitionGCReleasesLabelOnlyChild(t *testing.T) {
	a, _ := newBootstrapped(t)
	b := a.Allocate(concept.Abstract)
	qt.Assert(t, qt.IsNil(a.Label(b, "b")))
	c := a.Allocate(concept.Abstract)
	top := a.FindOrInsertDefinition(b, c)

	a.DeleteDefinitionGC(top)

	qt.Assert(t, qt.IsFalse(a.IsLive(b)))
	qt.Assert(t, qt.IsFalse(a.IsLive(c)))
}

func TestDisplayRendersNestedPairsWithParens(t *testing.T) {
	a, _ := newBootstrapped(t)
	x := a.Allocate(concept.Abstract)
	qt.Assert(t, qt.IsNil(a.Label(x, "x")))
	y := a.Allocate(concept.Abstract)
	qt.Assert(t, qt.IsNil(a.Label(y, "y")))
	z := a.Allocate(concept.Abstract)
	qt.Assert(t, qt.IsNil(a.Label(z, "z")))

	inner := a.FindOrInsertDefinition(y, z)
	outer := a.FindOrInsertDefinition(x, inner)

	qt.Assert(t, qt.Equals(a.Display(outer), "x (y z)"))
}

func TestErrorsIsWorksThroughStdlib(t *testing.T) {
	a, _ := newBootstrapped(t)
	x := a.Allocate(concept.Abstract)
	y := a.Allocate(concept.Abstract)
	qt.Assert(t, qt.IsNil(a.SetReduction(x, y)))
	err := a.SetReduction(y, x)
	qt.Assert(t, qt.IsTrue(errors.Is(err, zerr.New(zerr.CyclicReduction, ""))))
}
