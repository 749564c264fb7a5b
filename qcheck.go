// Package qcheck validates free-text boolean search queries and renders an
// indented trace of their structure.
//
// A query is checked for balanced parentheses, balanced quotes, permitted
// field names (when an allow-list is given) and the placement of the AND,
// OR and ANDNOT operators, in that order. The first failing check decides
// the result. Only a valid query is rendered.
package qcheck

import (
	"go.uber.org/zap"

	"github.com/gnolang/qcheck/internal"
	"github.com/gnolang/qcheck/internal/types"
)

// FieldSet is a case-sensitive set of permitted field names.
type FieldSet = types.FieldSet

// NewFieldSet builds a FieldSet from names.
func NewFieldSet(names ...string) FieldSet {
	return types.NewFieldSet(names...)
}

// Validator validates queries against a fixed configuration. It is safe for
// concurrent use once constructed, provided the FieldSet passed to
// WithFields is not modified afterwards.
type Validator struct {
	engine *internal.Engine
}

// Option configures a Validator.
type Option func(*options)

type options struct {
	fields  FieldSet
	logger  *zap.Logger
	ignored []string
}

// WithFields enables the field check and field-aware rendering. A nil set
// leaves both disabled.
func WithFields(fields FieldSet) Option {
	return func(o *options) { o.fields = fields }
}

// WithLogger sets the logger used for per-check debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithIgnoredRules disables the named checks ("parentheses", "quotes",
// "fields", "operators").
func WithIgnoredRules(rules ...string) Option {
	return func(o *options) { o.ignored = append(o.ignored, rules...) }
}

// New creates a Validator.
func New(opts ...Option) *Validator {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	engine := internal.NewEngine(o.fields, o.logger)
	for _, rule := range o.ignored {
		engine.IgnoreRule(rule)
	}
	return &Validator{engine: engine}
}

// Rules returns the names of the checks v runs, in order.
func (v *Validator) Rules() []string {
	return v.engine.Rules()
}

// Validate checks query and, when it is valid, renders it.
func (v *Validator) Validate(query string) Result {
	rendered, violation := v.engine.Run(query)
	if violation != nil {
		return failure(violation)
	}
	return Result{
		IsValid:       true,
		ProcessedText: rendered,
		Position:      -1,
	}
}

// Validate checks query without a field allow-list.
func Validate(query string) Result {
	return New().Validate(query)
}

// ValidateFields checks query and additionally requires every field:value
// pair to use a name from allowed. A nil allowed behaves like Validate.
func ValidateFields(query string, allowed FieldSet) Result {
	return New(WithFields(allowed)).Validate(query)
}
