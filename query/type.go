package query

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenType defines different types of tokens that can be produced by the lexer.
type TokenType int

const (
	TokenTerm     TokenType = iota // bare word
	TokenPhrase                    // "quoted text"
	TokenField                     // name: (the colon is consumed)
	TokenOperator                  // AND, OR, ANDNOT
	TokenLParen                    // '('
	TokenRParen                    // ')'
	TokenEOF                       // End of input
)

func (t TokenType) String() string {
	switch t {
	case TokenTerm:
		return "TERM"
	case TokenPhrase:
		return "PHRASE"
	case TokenField:
		return "FIELD"
	case TokenOperator:
		return "OPERATOR"
	case TokenLParen:
		return "LPAREN"
	case TokenRParen:
		return "RPAREN"
	case TokenEOF:
		return "EOF"
	default:
		return "UNKNOWN"
	}
}

// Token represents a single lexical token with type, value, and position.
//
// Value holds the meaningful text: the word for terms and operators, the
// field name without its colon, and the phrase content without quotes.
// Raw is the exact slice of the input the token was read from.
type Token struct {
	Type     TokenType
	Value    string
	Raw      string
	Position int  // byte offset of the first character in the input
	Closed   bool // phrases only: false when the input ended inside the quotes
}

// End returns the byte offset just after the token.
func (t Token) End() int { return t.Position + len(t.Raw) }

func (t Token) String() string {
	return fmt.Sprintf("%s(%s)@%d", t.Type, strconv.Quote(t.Raw), t.Position)
}

// NodeType defines different node types of the query tree.
type NodeType int

const (
	NodeQuery NodeType = iota
	NodeGroup
	NodePhrase
	NodeFieldValue
	NodeTerm
	NodeOperator
)

// Node is an interface that any tree node must implement.
type Node interface {
	Type() NodeType // returns the node type
	String() string // debugging or printing purpose
	Position() int  // where the node starts in the input
}

var (
	_ Node = (*QueryNode)(nil)
	_ Node = (*GroupNode)(nil)
	_ Node = (*PhraseNode)(nil)
	_ Node = (*FieldValueNode)(nil)
	_ Node = (*TermNode)(nil)
	_ Node = (*OperatorNode)(nil)
)

// QueryNode is the root of the tree.
type QueryNode struct {
	Children []Node
}

func (q *QueryNode) Type() NodeType { return NodeQuery }
func (q *QueryNode) String() string { return childrenString("QueryNode", q.Children) }
func (q *QueryNode) Position() int  { return 0 }

// GroupNode is a parenthesised sub-query.
type GroupNode struct {
	Children []Node
	pos      int
}

func (g *GroupNode) Type() NodeType { return NodeGroup }
func (g *GroupNode) String() string { return childrenString("GroupNode", g.Children) }
func (g *GroupNode) Position() int  { return g.pos }

// PhraseNode is a quoted phrase.
type PhraseNode struct {
	Text string
	pos  int
}

func (p *PhraseNode) Type() NodeType { return NodePhrase }
func (p *PhraseNode) String() string { return fmt.Sprintf("PhraseNode(%s)", strconv.Quote(p.Text)) }
func (p *PhraseNode) Position() int  { return p.pos }

// FieldValueNode binds a field name to its value. Value is a *PhraseNode,
// a *TermNode, a *GroupNode, or nil when nothing follows the colon.
type FieldValueNode struct {
	Field string
	Value Node
	pos   int
}

func (f *FieldValueNode) Type() NodeType { return NodeFieldValue }
func (f *FieldValueNode) String() string {
	if f.Value == nil {
		return fmt.Sprintf("FieldValueNode(%s: <empty>)", f.Field)
	}
	value := strings.ReplaceAll(f.Value.String(), "\n", "\n  ")
	return fmt.Sprintf("FieldValueNode(%s: %s)", f.Field, value)
}
func (f *FieldValueNode) Position() int { return f.pos }

// TermNode is a bare search term.
type TermNode struct {
	Text string
	pos  int
}

func (t *TermNode) Type() NodeType { return NodeTerm }
func (t *TermNode) String() string { return fmt.Sprintf("TermNode(%s)", t.Text) }
func (t *TermNode) Position() int  { return t.pos }

// OperatorNode is a boolean keyword. Op is upper-cased.
type OperatorNode struct {
	Op  string
	pos int
}

func (o *OperatorNode) Type() NodeType { return NodeOperator }
func (o *OperatorNode) String() string { return fmt.Sprintf("OperatorNode(%s)", o.Op) }
func (o *OperatorNode) Position() int  { return o.pos }

func childrenString(name string, children []Node) string {
	result := fmt.Sprintf("%s(%d children):\n", name, len(children))
	for i, child := range children {
		// apply indentation for children node
		childStr := strings.ReplaceAll(child.String(), "\n", "\n  ")
		result += fmt.Sprintf("  %d: %s\n", i, childStr)
	}
	return strings.TrimRight(result, "\n")
}
