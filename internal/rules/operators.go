package rules

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/gnolang/qcheck/internal/types"
	"github.com/gnolang/qcheck/query"
)

// DetectMisplacedOperators requires every operator to sit between two
// operands. The nearest token before it must end with a letter, a digit,
// ')' or '"', and the nearest token after it must start with a letter, a
// digit, '(' or '"'. Another operator is never an operand.
func DetectMisplacedOperators(tokens []query.Token) *types.Violation {
	for i, tok := range tokens {
		if tok.Type != query.TokenOperator {
			continue
		}

		if i == 0 || !isOperandBefore(tokens[i-1]) {
			return misplaced(tok, "has no operand before it")
		}
		if i+1 >= len(tokens) || !isOperandAfter(tokens[i+1]) {
			return misplaced(tok, "has no operand after it")
		}
	}
	return nil
}

func misplaced(tok query.Token, reason string) *types.Violation {
	return &types.Violation{
		Rule:     types.RuleOperators,
		Message:  types.MsgInvalidOperator,
		Position: tok.Position,
		Detail:   fmt.Sprintf("operator %s %s", tok.Value, reason),
	}
}

func isOperandBefore(tok query.Token) bool {
	switch tok.Type {
	case query.TokenOperator, query.TokenEOF:
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(tok.Raw)
	return isLetterOrDigit(r) || r == ')' || r == '"'
}

func isOperandAfter(tok query.Token) bool {
	switch tok.Type {
	case query.TokenOperator, query.TokenEOF:
		return false
	}
	r, _ := utf8.DecodeRuneInString(tok.Raw)
	return isLetterOrDigit(r) || r == '(' || r == '"'
}

func isLetterOrDigit(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
