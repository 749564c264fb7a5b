package rules

import (
	"github.com/gnolang/qcheck/internal/types"
	"github.com/gnolang/qcheck/query"
)

// DetectUnbalancedParentheses walks the group delimiters outside quotes.
// Depth must never go below zero and must end at zero. The violation points
// at the stray ')' or at the innermost '(' left open.
func DetectUnbalancedParentheses(tokens []query.Token) *types.Violation {
	var open []int
	for _, tok := range tokens {
		switch tok.Type {
		case query.TokenLParen:
			open = append(open, tok.Position)
		case query.TokenRParen:
			if len(open) == 0 {
				return &types.Violation{
					Rule:     types.RuleParentheses,
					Message:  types.MsgUnbalancedParentheses,
					Position: tok.Position,
					Detail:   "closing parenthesis without a matching opening one",
				}
			}
			open = open[:len(open)-1]
		}
	}

	if len(open) > 0 {
		return &types.Violation{
			Rule:     types.RuleParentheses,
			Message:  types.MsgUnbalancedParentheses,
			Position: open[len(open)-1],
			Detail:   "opening parenthesis is never closed",
		}
	}
	return nil
}

// DetectUnbalancedQuotes reports a phrase that runs to the end of input.
// Only the last phrase can be unterminated, since a quote always toggles.
func DetectUnbalancedQuotes(tokens []query.Token) *types.Violation {
	for _, tok := range tokens {
		if tok.Type == query.TokenPhrase && !tok.Closed {
			return &types.Violation{
				Rule:     types.RuleQuotes,
				Message:  types.MsgUnbalancedQuotes,
				Position: tok.Position,
				Detail:   "quote is never closed",
			}
		}
	}
	return nil
}
