// Package internal provides the validation engine behind package qcheck.
//
// Key components:
//
// Engine: tokenizes a query once, applies the checks in order and renders
// the trace when all of them pass.
//
// Rule: the interface each check implements. A rule inspects the token
// stream and returns the first violation it finds, or nil.
//
// Usage:
//
//	engine := internal.NewEngine(types.NewFieldSet("COMPANY", "TITLE"), logger)
//	engine.IgnoreRule(types.RuleOperators)
//
//	rendered, violation := engine.Run(`COMPANY:"Acme" AND (TITLE:Engineer OR TITLE:Manager)`)
//	if violation != nil {
//	    fmt.Printf("%s at %d: %s\n", violation.Rule, violation.Position, violation.Detail)
//	}
//
// This package is intended for internal use within qcheck and should not be
// imported by external packages.
package internal
