// Package render produces the indented, line-oriented trace of a query's
// groups, fields, phrases and terms.
package render

import (
	"strings"

	"github.com/gnolang/qcheck/query"
)

const (
	indentUnit = "  "

	startGroup = "Start Group:"
	endGroup   = "End Group"
)

// Render traces tokens of an already validated query.
//
// Words are buffered and flushed as one indented line when whitespace, a
// phrase or a parenthesis follows. Indentation is two spaces per nesting
// level, computed for every piece of text at the moment it is written. With
// fieldAware set, a field name is written with its colon and no line break,
// and its value follows as a separately indented unit on the same line, so
// "(COMPANY:Acme)" renders "  COMPANY:  Acme" inside the group. Otherwise
// "name:" is ordinary word text. The last buffered text is written without a
// trailing line break.
func Render(tokens []query.Token, fieldAware bool) string {
	r := &renderer{fieldAware: fieldAware}
	prevEnd := -1

	for _, tok := range tokens {
		if tok.Type == query.TokenEOF {
			break
		}
		if prevEnd >= 0 && tok.Position > prevEnd {
			r.flush()
		}

		switch tok.Type {
		case query.TokenPhrase:
			r.flush()
			r.out.WriteString(r.prefix() + tok.Raw + "\n")
			r.lineOpen = false

		case query.TokenLParen:
			r.flush()
			r.line(startGroup)
			r.depth++

		case query.TokenRParen:
			if r.depth > 0 {
				r.depth--
			}
			r.flush()
			r.line(endGroup)

		case query.TokenField:
			if !r.fieldAware {
				r.pending.WriteString(tok.Raw)
				break
			}
			r.out.WriteString(r.prefix() + r.pending.String() + tok.Value + ":")
			r.pending.Reset()
			r.lineOpen = true

		default:
			r.pending.WriteString(tok.Raw)
		}
		prevEnd = tok.End()
	}

	if r.pending.Len() > 0 {
		r.out.WriteString(r.prefix() + r.pending.String())
	}
	return r.out.String()
}

type renderer struct {
	out        strings.Builder
	pending    strings.Builder
	depth      int
	fieldAware bool

	// lineOpen is set after a field name was written without a line break.
	lineOpen bool
}

func (r *renderer) prefix() string {
	return strings.Repeat(indentUnit, r.depth)
}

// flush writes buffered word text as its own line.
func (r *renderer) flush() {
	if r.pending.Len() == 0 {
		return
	}
	r.out.WriteString(r.prefix() + r.pending.String() + "\n")
	r.pending.Reset()
	r.lineOpen = false
}

// line writes a group marker on a line of its own.
func (r *renderer) line(marker string) {
	if r.lineOpen {
		r.out.WriteString("\n")
		r.lineOpen = false
	}
	r.out.WriteString(strings.Repeat(indentUnit, r.depth) + marker + "\n")
}
