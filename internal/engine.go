package internal

import (
	"go.uber.org/zap"

	"github.com/gnolang/qcheck/internal/render"
	"github.com/gnolang/qcheck/internal/types"
	"github.com/gnolang/qcheck/query"
)

// Engine runs the checks in a fixed order and renders the query once all of
// them pass. It holds no per-query state, so one Engine may serve many
// goroutines.
type Engine struct {
	ignoredRules map[string]bool
	rules        []Rule
	fieldAware   bool
	logger       *zap.Logger
}

// NewEngine creates a new engine. A nil allowed set disables the field check
// and field-aware rendering. A nil logger discards log output.
func NewEngine(allowed types.FieldSet, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	engine := &Engine{
		ignoredRules: make(map[string]bool),
		fieldAware:   allowed != nil,
		logger:       logger,
	}
	engine.registerRules(allowed)
	return engine
}

func (e *Engine) registerRules(allowed types.FieldSet) {
	e.rules = []Rule{&ParenthesesRule{}, &QuotesRule{}}
	if allowed != nil {
		e.rules = append(e.rules, &FieldsRule{Allowed: allowed})
	}
	e.rules = append(e.rules, &OperatorsRule{})
}

// IgnoreRule skips the named rule on every later Run. Unknown names are
// logged and reported as false. It must be called before the engine is
// shared between goroutines.
func (e *Engine) IgnoreRule(rule string) bool {
	if !types.IsRule(rule) {
		e.logger.Warn("Unknown rule cannot be ignored", zap.String("rule", rule))
		return false
	}
	e.ignoredRules[rule] = true
	return true
}

// Rules returns the names of the active rules in the order they run.
func (e *Engine) Rules() []string {
	names := make([]string, 0, len(e.rules))
	for _, r := range e.rules {
		if !e.ignoredRules[r.Name()] {
			names = append(names, r.Name())
		}
	}
	return names
}

// Run tokenizes input once and applies every rule in order. The first
// violation stops the pipeline; otherwise the rendered trace is returned.
func (e *Engine) Run(input string) (string, *types.Violation) {
	tokens := query.Tokenize(input)
	e.logger.Debug("Starting validation",
		zap.Int("length", len(input)),
		zap.Int("tokens", len(tokens)-1),
		zap.Bool("fieldAware", e.fieldAware),
	)

	for _, rule := range e.rules {
		if e.ignoredRules[rule.Name()] {
			continue
		}
		if v := rule.Check(tokens); v != nil {
			e.logger.Debug("Check failed",
				zap.String("rule", v.Rule),
				zap.Int("position", v.Position),
				zap.String("detail", v.Detail),
			)
			return "", v
		}
		e.logger.Debug("Check passed", zap.String("rule", rule.Name()))
	}

	return render.Render(tokens, e.fieldAware), nil
}
