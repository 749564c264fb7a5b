package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/qcheck/internal/types"
	"github.com/gnolang/qcheck/query"
)

func TestFieldValues(t *testing.T) {
	t.Parallel()
	pairs := FieldValues(query.Tokenize(`(COMPANY:BrandA or COMPANY:"Some Company") AND -TITLE:Dev.Ops x: y`))
	require.Len(t, pairs, 3)

	assert.Equal(t, FieldValue{Name: "COMPANY", Value: "BrandA", Closed: true, Position: 1}, pairs[0])
	assert.Equal(t, FieldValue{Name: "COMPANY", Value: "Some Company", Quoted: true, Closed: true, Position: 19}, pairs[1])
	// the leading '-' is not part of the name and the value stops at the first non-word character
	assert.Equal(t, FieldValue{Name: "TITLE", Value: "Dev", Closed: true, Position: 48}, pairs[2])
}

func TestDetectInvalidFields(t *testing.T) {
	t.Parallel()
	allowed := types.NewFieldSet("COMPANY", "TITLE")

	tests := []struct {
		name    string
		input   string
		valid   bool
		wantPos int
		detail  string
	}{
		{name: "allowed fields", input: "COMPANY:Acme AND TITLE:Engineer", valid: true},
		{name: "no fields", input: "(A AND B)", valid: true},
		{name: "quoted value", input: `COMPANY:"Acme Corp"`, valid: true},
		{name: "unknown field", input: "COMPANY:Acme AND BOGUS:X", wantPos: 17, detail: `unknown field "BOGUS"`},
		{name: "case sensitive", input: "company:acme", wantPos: 0, detail: `unknown field "company"`},
		{name: "field inside quotes ignored", input: `"BOGUS:X"`, valid: true},
		{name: "value not adjacent", input: "BOGUS: X", valid: true},
		{name: "value is a group", input: "BOGUS:(X)", valid: true},
		{name: "unterminated quoted value", input: `TITLE:"Dev`, wantPos: 0, detail: `unterminated quoted value for field "TITLE"`},
		{name: "chained field owns the next name", input: "BOGUS:TITLE:x", wantPos: 0, detail: `unknown field "BOGUS"`},
		{name: "chained field after valid pair", input: "COMPANY:Acme AND BOGUS:TITLE:Engineer", wantPos: 17, detail: `unknown field "BOGUS"`},
		{name: "colon after value", input: "TITLE:x:y", valid: true},
		{name: "chain of allowed names", input: "COMPANY:TITLE:x", valid: true},
		{name: "third link of a chain", input: "COMPANY:TITLE:BOGUS:x", wantPos: 14, detail: `unknown field "BOGUS"`},
		{name: "partial value leaves next name", input: "TITLE:x-BOGUS:y", wantPos: 8, detail: `unknown field "BOGUS"`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v := DetectInvalidFields(query.Tokenize(tt.input), allowed)
			if tt.valid {
				assert.Nil(t, v)
				return
			}
			require.NotNil(t, v)
			assert.Equal(t, types.RuleFields, v.Rule)
			assert.Equal(t, types.MsgInvalidField, v.Message)
			assert.Equal(t, tt.wantPos, v.Position)
			assert.Equal(t, tt.detail, v.Detail)
		})
	}
}

func TestFieldValuesChain(t *testing.T) {
	t.Parallel()
	pairs := FieldValues(query.Tokenize("BOGUS:TITLE:x"))
	require.Len(t, pairs, 1)
	assert.Equal(t, FieldValue{Name: "BOGUS", Value: "TITLE", Closed: true, Position: 0}, pairs[0])

	pairs = FieldValues(query.Tokenize("TITLE:x-BOGUS:y"))
	require.Len(t, pairs, 2)
	assert.Equal(t, FieldValue{Name: "TITLE", Value: "x", Closed: true, Position: 0}, pairs[0])
	assert.Equal(t, FieldValue{Name: "BOGUS", Value: "y", Closed: true, Position: 8}, pairs[1])
}

func TestDetectInvalidFieldsEmptySet(t *testing.T) {
	t.Parallel()
	assert.NotNil(t, DetectInvalidFields(query.Tokenize("A:b"), types.NewFieldSet()))
	assert.Nil(t, DetectInvalidFields(query.Tokenize("a b"), types.NewFieldSet()))
}

func TestWordHelpers(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "COMPANY", trailingWord("x-COMPANY"))
	assert.Equal(t, "", trailingWord("a-"))
	assert.Equal(t, "naïve", trailingWord("naïve"))
	assert.Equal(t, "Dev", leadingWord("Dev.Ops"))
	assert.Equal(t, "", leadingWord("-x"))
}
