package rules

import (
	"fmt"
	"unicode/utf8"

	"github.com/gnolang/qcheck/internal/types"
	"github.com/gnolang/qcheck/query"
)

// FieldValue is a recognised name:value pair.
type FieldValue struct {
	Name     string
	Value    string
	Quoted   bool
	Closed   bool
	Position int
}

// FieldValues extracts every name:value pair outside quotes. The name is the
// trailing run of word characters before the colon, and the value must start
// right after the colon as either a phrase or a word. Fields that do not have
// this shape are skipped.
//
// In a chain such as BOGUS:TITLE:x the first name owns the value TITLE, and a
// value that spans the whole next field token is not checked as a name again.
func FieldValues(tokens []query.Token) []FieldValue {
	var pairs []FieldValue
	consumed := -1
	for i, tok := range tokens {
		if i == consumed || tok.Type != query.TokenField || i+1 >= len(tokens) {
			continue
		}

		name := trailingWord(tok.Value)
		if name == "" {
			continue
		}

		next := tokens[i+1]
		if next.Position != tok.End() {
			continue
		}

		pair := FieldValue{
			Name:     name,
			Position: tok.Position + len(tok.Value) - len(name),
		}
		switch next.Type {
		case query.TokenPhrase:
			pair.Value = next.Value
			pair.Quoted = true
			pair.Closed = next.Closed
		case query.TokenTerm, query.TokenField:
			value := leadingWord(next.Value)
			if value == "" {
				continue
			}
			pair.Value = value
			pair.Closed = true
			if next.Type == query.TokenField && value == next.Value {
				consumed = i + 1
			}
		default:
			continue
		}
		pairs = append(pairs, pair)
	}
	return pairs
}

// DetectInvalidFields checks every name:value pair against allowed. An unknown
// name or a quoted value without its closing quote fails the query.
func DetectInvalidFields(tokens []query.Token, allowed types.FieldSet) *types.Violation {
	for _, pair := range FieldValues(tokens) {
		if !allowed.Contains(pair.Name) {
			return &types.Violation{
				Rule:     types.RuleFields,
				Message:  types.MsgInvalidField,
				Position: pair.Position,
				Detail:   fmt.Sprintf("unknown field %q", pair.Name),
			}
		}
		if pair.Quoted && !pair.Closed {
			return &types.Violation{
				Rule:     types.RuleFields,
				Message:  types.MsgInvalidField,
				Position: pair.Position,
				Detail:   fmt.Sprintf("unterminated quoted value for field %q", pair.Name),
			}
		}
	}
	return nil
}

func trailingWord(s string) string {
	end := len(s)
	start := end
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(s[:start])
		if !query.IsWordRune(r) {
			break
		}
		start -= size
	}
	return s[start:end]
}

func leadingWord(s string) string {
	end := 0
	for end < len(s) {
		r, size := utf8.DecodeRuneInString(s[end:])
		if !query.IsWordRune(r) {
			break
		}
		end += size
	}
	return s[:end]
}
