package syntax

import (
	"strings"

	"github.com/ziacorp/zia/internal/concept"
	"github.com/ziacorp/zia/internal/lexer"
	"github.com/ziacorp/zia/internal/zerr"
)

// Parse turns line into a syntax tree, per spec.md §4.4: tokenize at
// the top level, then recurse per token count. A single token is
// looked up against the arena's labels and becomes a bound Symbol if
// found, an unbound one otherwise — no implicit concept creation
// happens during parsing; that is the dispatcher's job (spec.md §4.7).
// Two tokens combine into a Pair. Any other count is an ambiguity this
// grammar has no precedence or associativity rule to resolve, and zero
// tokens means an empty set of parentheses.
func Parse(line string, a *concept.Arena) (Node, error) {
	tokens := lexer.Tokenize(line)
	return parseTokens(tokens, a)
}

func parseTokens(tokens []string, a *concept.Arena) (Node, error) {
	switch len(tokens) {
	case 0:
		return nil, zerr.New(zerr.EmptyParentheses, "")
	case 1:
		// The lexer strips one layer of parens from a wholly-parenthesized
		// token, so "()" arrives here as a single empty token — that is
		// the zero-token case, not a symbol named "". A token that still
		// contains a space is itself a parenthesized sub-expression
		// ("(a b c)" arrives as one token "a b c"); re-tokenize it rather
		// than treating the whole thing as one symbol's name.
		if tokens[0] == "" {
			return nil, zerr.New(zerr.EmptyParentheses, "")
		}
		if strings.ContainsRune(tokens[0], ' ') {
			return Parse(tokens[0], a)
		}
		return parseSymbol(tokens[0], a)
	case 2:
		left, err := Parse(tokens[0], a)
		if err != nil {
			return nil, err
		}
		right, err := Parse(tokens[1], a)
		if err != nil {
			return nil, err
		}
		return Combine(a, left, right), nil
	default:
		return nil, zerr.New(zerr.AmbiguousExpression, joinTokens(tokens))
	}
}

func parseSymbol(text string, a *concept.Arena) (Node, error) {
	if id, ok := a.IDOfLabel(text); ok {
		return NewSymbol(text, id, true), nil
	}
	return NewUnboundSymbol(text), nil
}

// joinTokens renders tokens as the detail string for AmbiguousExpression.
func joinTokens(tokens []string) string {
	s := ""
	for i, t := range tokens {
		if i > 0 {
			s += " "
		}
		s += t
	}
	return s
}
