package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/qcheck/internal/types"
	"github.com/gnolang/qcheck/query"
)

func TestDetectMisplacedOperators(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		valid   bool
		wantPos int
		detail  string
	}{
		{name: "simple", input: "A AND B", valid: true},
		{name: "all keywords", input: "A AND B OR C ANDNOT D", valid: true},
		{name: "lower case", input: "a and b", valid: true},
		{name: "groups", input: "(A OR B) AND (C)", valid: true},
		{name: "phrases", input: `"A B" OR "C"`, valid: true},
		{name: "fields", input: `COMPANY:Acme AND TITLE:"Dev"`, valid: true},
		{name: "no spaces around groups", input: "(A)AND(B)", valid: true},
		{name: "operator only inside quotes", input: `"A AND B"`, valid: true},
		{name: "keyword inside word", input: "BRAND OR ORACLE", valid: true},
		{name: "keyword as field value", input: "TITLE:AND", valid: true},
		{name: "at start", input: "AND something", wantPos: 0, detail: "operator AND has no operand before it"},
		{name: "at end", input: "something or", wantPos: 10, detail: "operator OR has no operand after it"},
		{name: "alone", input: "ANDNOT", wantPos: 0, detail: "operator ANDNOT has no operand before it"},
		{name: "after open group", input: "(AND B)", wantPos: 1, detail: "operator AND has no operand before it"},
		{name: "before close group", input: "(A OR)", wantPos: 3, detail: "operator OR has no operand after it"},
		{name: "doubled", input: "A AND OR B", wantPos: 2, detail: "operator AND has no operand after it"},
		{name: "after field colon", input: "TITLE: AND B", wantPos: 7, detail: "operator AND has no operand before it"},
		{name: "before punctuation", input: "A AND -B", wantPos: 2, detail: "operator AND has no operand after it"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v := DetectMisplacedOperators(query.Tokenize(tt.input))
			if tt.valid {
				assert.Nil(t, v)
				return
			}
			require.NotNil(t, v)
			assert.Equal(t, types.RuleOperators, v.Rule)
			assert.Equal(t, types.MsgInvalidOperator, v.Message)
			assert.Equal(t, tt.wantPos, v.Position)
			assert.Equal(t, tt.detail, v.Detail)
		})
	}
}
