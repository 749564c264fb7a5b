package qcheck

import (
	"fmt"

	"github.com/gnolang/qcheck/internal/types"
)

// Rule names reported in Result.Rule.
const (
	RuleParentheses = types.RuleParentheses
	RuleQuotes      = types.RuleQuotes
	RuleFields      = types.RuleFields
	RuleOperators   = types.RuleOperators
)

// Failure messages reported in Result.ErrorMessage.
const (
	MsgUnbalancedParentheses = types.MsgUnbalancedParentheses
	MsgUnbalancedQuotes      = types.MsgUnbalancedQuotes
	MsgInvalidField          = types.MsgInvalidField
	MsgInvalidOperator       = types.MsgInvalidOperator
)

// Result is the outcome of validating one query.
//
// ProcessedText is only set when IsValid is true, and ErrorMessage, Rule and
// Detail only when it is false.
type Result struct {
	IsValid       bool   `json:"is_valid"`
	ErrorMessage  string `json:"error_message,omitempty"`
	ProcessedText string `json:"processed_text,omitempty"`

	// Rule names the failing check.
	Rule string `json:"rule,omitempty"`
	// Position is the byte offset of the offending token, or -1.
	Position int `json:"position"`
	// Detail is a longer, lower-case explanation for logs and reports.
	Detail string `json:"detail,omitempty"`
}

// Err returns nil for a valid result and an *Error otherwise.
func (r Result) Err() error {
	if r.IsValid {
		return nil
	}
	return &Error{Rule: r.Rule, Message: r.ErrorMessage, Position: r.Position}
}

// Error is the error form of an invalid Result.
type Error struct {
	Rule     string
	Message  string
	Position int
}

func (e *Error) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("%s: %s", e.Rule, e.Message)
	}
	return fmt.Sprintf("%s: %s (at position %d)", e.Rule, e.Message, e.Position)
}

func failure(v *types.Violation) Result {
	return Result{
		IsValid:      false,
		ErrorMessage: v.Message,
		Rule:         v.Rule,
		Position:     v.Position,
		Detail:       v.Detail,
	}
}
