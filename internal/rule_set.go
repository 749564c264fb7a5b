package internal

import (
	"github.com/gnolang/qcheck/internal/rules"
	"github.com/gnolang/qcheck/internal/types"
	"github.com/gnolang/qcheck/query"
)

/*
* Implement each check as a separate struct
 */

// Rule defines the interface for all query checks.
type Rule interface {
	// Check inspects the token stream and returns the first violation, or nil.
	Check(tokens []query.Token) *types.Violation

	// Name returns the name of the rule.
	Name() string
}

type ParenthesesRule struct{}

func (r *ParenthesesRule) Check(tokens []query.Token) *types.Violation {
	return rules.DetectUnbalancedParentheses(tokens)
}

func (r *ParenthesesRule) Name() string {
	return types.RuleParentheses
}

type QuotesRule struct{}

func (r *QuotesRule) Check(tokens []query.Token) *types.Violation {
	return rules.DetectUnbalancedQuotes(tokens)
}

func (r *QuotesRule) Name() string {
	return types.RuleQuotes
}

// FieldsRule only runs when an allow-list is configured.
type FieldsRule struct {
	Allowed types.FieldSet
}

func (r *FieldsRule) Check(tokens []query.Token) *types.Violation {
	return rules.DetectInvalidFields(tokens, r.Allowed)
}

func (r *FieldsRule) Name() string {
	return types.RuleFields
}

type OperatorsRule struct{}

func (r *OperatorsRule) Check(tokens []query.Token) *types.Violation {
	return rules.DetectMisplacedOperators(tokens)
}

func (r *OperatorsRule) Name() string {
	return types.RuleOperators
}
