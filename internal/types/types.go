package types

// Rule names, in pipeline order.
const (
	RuleParentheses = "parentheses"
	RuleQuotes      = "quotes"
	RuleFields      = "fields"
	RuleOperators   = "operators"
)

// IsRule reports whether name is one of the rule names above.
func IsRule(name string) bool {
	switch name {
	case RuleParentheses, RuleQuotes, RuleFields, RuleOperators:
		return true
	}
	return false
}

// Fixed failure messages reported for each rule.
const (
	MsgUnbalancedParentheses = "Unbalanced parentheses."
	MsgUnbalancedQuotes      = "Unbalanced quotes."
	MsgInvalidField          = "Invalid field or value syntax."
	MsgInvalidOperator       = "Invalid use of Boolean operators."
)

// Violation describes the first problem a rule found in a query.
type Violation struct {
	Rule     string
	Message  string
	Position int // byte offset of the offending token, -1 when unknown
	Detail   string
}

// FieldSet is a case-sensitive set of permitted field names.
type FieldSet map[string]struct{}

// NewFieldSet builds a FieldSet from names.
func NewFieldSet(names ...string) FieldSet {
	set := make(FieldSet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// Contains reports whether name is in the set, comparing exactly.
func (s FieldSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}
