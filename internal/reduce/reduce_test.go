package reduce_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/ziacorp/zia/internal/concept"
	"github.com/ziacorp/zia/internal/reduce"
	"github.com/ziacorp/zia/internal/syntax"
)

func newBootstrapped(t *testing.T) *concept.Arena {
	t.Helper()
	a := concept.NewArena()
	label := a.Allocate(concept.Abstract)
	a.Bootstrap(label)
	return a
}

func TestToASTRebuildsLabeledLeaf(t *testing.T) {
	a := newBootstrapped(t)
	x := a.Allocate(concept.Abstract)
	qt.Assert(t, qt.IsNil(a.Label(x, "foo")))

	n := reduce.ToAST(a, x)
	qt.Assert(t, qt.Equals(n.Text(), "foo"))
	id, ok := n.Concept()
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(id, x))
}

func TestToASTRebuildsDefinedPair(t *testing.T) {
	a := newBootstrapped(t)
	x := a.Allocate(concept.Abstract)
	qt.Assert(t, qt.IsNil(a.Label(x, "x")))
	y := a.Allocate(concept.Abstract)
	qt.Assert(t, qt.IsNil(a.Label(y, "y")))
	def := a.FindOrInsertDefinition(x, y)

	n := reduce.ToAST(a, def)
	qt.Assert(t, qt.Equals(n.Text(), "x y"))
}

func TestReduceFollowsSymbolReduction(t *testing.T) {
	a := newBootstrapped(t)
	x := a.Allocate(concept.Abstract)
	qt.Assert(t, qt.IsNil(a.Label(x, "x")))
	y := a.Allocate(concept.Abstract)
	qt.Assert(t, qt.IsNil(a.Label(y, "y")))
	qt.Assert(t, qt.IsNil(a.SetReduction(x, y)))

	n, err := syntax.Parse("x", a)
	qt.Assert(t, qt.IsNil(err))

	reduced, changed := reduce.Reduce(a, n)
	qt.Assert(t, qt.IsTrue(changed))
	qt.Assert(t, qt.Equals(reduced.Text(), "y"))
}

func TestReduceLeavesUnboundSymbolUnchanged(t *testing.T) {
	a := newBootstrapped(t)
	n, err := syntax.Parse("foo", a)
	qt.Assert(t, qt.IsNil(err))

	_, changed := reduce.Reduce(a, n)
	qt.Assert(t, qt.IsFalse(changed))
}

func TestRecursivelyReduceChasesChain(t *testing.T) {
	a := newBootstrapped(t)
	x := a.Allocate(concept.Abstract)
	qt.Assert(t, qt.IsNil(a.Label(x, "x")))
	y := a.Allocate(concept.Abstract)
	qt.Assert(t, qt.IsNil(a.Label(y, "y")))
	z := a.Allocate(concept.Abstract)
	qt.Assert(t, qt.IsNil(a.Label(z, "z")))
	qt.Assert(t, qt.IsNil(a.SetReduction(x, y)))
	qt.Assert(t, qt.IsNil(a.SetReduction(y, z)))

	n, err := syntax.Parse("x", a)
	qt.Assert(t, qt.IsNil(err))

	final := reduce.RecursivelyReduce(a, n)
	qt.Assert(t, qt.Equals(final.Text(), "z"))
}

func TestReduceContractsPairToLabelWhenChildReduces(t *testing.T) {
	a := newBootstrapped(t)
	x := a.Allocate(concept.Abstract)
	qt.Assert(t, qt.IsNil(a.Label(x, "x")))
	y := a.Allocate(concept.Abstract)
	qt.Assert(t, qt.IsNil(a.Label(y, "y")))
	z := a.Allocate(concept.Abstract)
	qt.Assert(t, qt.IsNil(a.Label(z, "z")))
	def := a.FindOrInsertDefinition(x, y)
	qt.Assert(t, qt.IsNil(a.Label(def, "xy")))
	qt.Assert(t, qt.IsNil(a.SetReduction(z, x)))

	n, err := syntax.Parse("z y", a)
	qt.Assert(t, qt.IsNil(err))

	final := reduce.RecursivelyReduce(a, n)
	qt.Assert(t, qt.Equals(final.Text(), "xy"))
}

func TestExpandUnfoldsLabeledDefinition(t *testing.T) {
	a := newBootstrapped(t)
	x := a.Allocate(concept.Abstract)
	qt.Assert(t, qt.IsNil(a.Label(x, "x")))
	y := a.Allocate(concept.Abstract)
	qt.Assert(t, qt.IsNil(a.Label(y, "y")))
	def := a.FindOrInsertDefinition(x, y)
	qt.Assert(t, qt.IsNil(a.Label(def, "xy")))

	n, err := syntax.Parse("xy", a)
	qt.Assert(t, qt.IsNil(err))

	expanded := reduce.Expand(a, n)
	qt.Assert(t, qt.Equals(expanded.Text(), "x y"))
}

func TestExpandLeavesUndefinedLabelUnchanged(t *testing.T) {
	a := newBootstrapped(t)
	x := a.Allocate(concept.Abstract)
	qt.Assert(t, qt.IsNil(a.Label(x, "x")))

	n, err := syntax.Parse("x", a)
	qt.Assert(t, qt.IsNil(err))

	expanded := reduce.Expand(a, n)
	qt.Assert(t, qt.Equals(expanded.Text(), "x"))
}
