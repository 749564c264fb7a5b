package qcheck

import (
	"github.com/gnolang/qcheck/internal/render"
	"github.com/gnolang/qcheck/internal/rules"
	"github.com/gnolang/qcheck/query"
)

// CheckParentheses reports whether the parentheses outside quotes are balanced.
func CheckParentheses(q string) bool {
	return rules.DetectUnbalancedParentheses(query.Tokenize(q)) == nil
}

// CheckQuotes reports whether every quote is closed.
func CheckQuotes(q string) bool {
	return rules.DetectUnbalancedQuotes(query.Tokenize(q)) == nil
}

// CheckFields reports whether every field:value pair uses a name in allowed
// and every quoted value is closed.
func CheckFields(q string, allowed FieldSet) bool {
	return rules.DetectInvalidFields(query.Tokenize(q), allowed) == nil
}

// CheckOperators reports whether every operator sits between two operands.
func CheckOperators(q string) bool {
	return rules.DetectMisplacedOperators(query.Tokenize(q)) == nil
}

// Render returns the structure trace of q without validating it. Field names
// are written as "name:" prefixes when fieldAware is set.
func Render(q string, fieldAware bool) string {
	return render.Render(query.Tokenize(q), fieldAware)
}
