package zerr_test

import (
	"errors"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/ziacorp/zia/internal/zerr"
)

func TestErrorMessagesAreStable(t *testing.T) {
	cases := []struct {
		kind zerr.Kind
		want string
	}{
		{zerr.EmptyParentheses, "Parentheses need to contain a symbol or expression."},
		{zerr.AmbiguousExpression, "Ambiguity due to lack of precedence or associativity defined for the symbols in that expression."},
		{zerr.InfiniteDefinition, "Cannot define a concept as an expression containing itself."},
		{zerr.CyclicReduction, "Cannot allow a chain of reduction rules to loop."},
		{zerr.DefinitionCollision, "Cannot define a used symbol as another used symbol or expression."},
	}
	for _, c := range cases {
		err := zerr.New(c.kind, "irrelevant detail")
		qt.Assert(t, qt.Equals(err.Error(), c.want))
	}
}

func TestDetailNeverLeaksIntoError(t *testing.T) {
	err := zerr.New(zerr.CyclicReduction, "a -> b -> a")
	qt.Assert(t, qt.Not(qt.StringContains(err.Error(), "a -> b -> a")))
}

func TestIsMatchesByKindOnly(t *testing.T) {
	a := zerr.New(zerr.RedundantReduction, "x")
	b := zerr.New(zerr.RedundantReduction, "y")
	qt.Assert(t, qt.IsTrue(errors.Is(a, b)))

	c := zerr.New(zerr.RedundantDefinition, "x")
	qt.Assert(t, qt.IsFalse(errors.Is(a, c)))
}
