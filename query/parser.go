package query

import "fmt"

// Parser consumes tokens produced by the lexer and builds a query tree.
// It documents structure only; operators stay in source order and no
// precedence is applied.
type Parser struct {
	tokens  []Token
	current int
}

// NewParser creates a new Parser instance
func NewParser(tokens []Token) *Parser {
	return &Parser{
		tokens:  tokens,
		current: 0,
	}
}

// Parse tokenizes and parses input in one step.
func Parse(input string) (*QueryNode, error) {
	return NewParser(Tokenize(input)).Parse()
}

// Parse processes all tokens and builds the tree. It fails on a closing
// parenthesis without an opener and on a group left open at end of input.
func (p *Parser) Parse() (*QueryNode, error) {
	root := &QueryNode{}

	for !p.atEOF() {
		tok := p.tokens[p.current]
		if tok.Type == TokenRParen {
			return nil, fmt.Errorf("unexpected ')' at position %d", tok.Position)
		}

		node, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		root.Children = append(root.Children, node)
	}

	return root, nil
}

// parseNode parses a single node based on the current token
func (p *Parser) parseNode() (Node, error) {
	tok := p.tokens[p.current]

	switch tok.Type {
	case TokenLParen:
		return p.parseGroup()
	case TokenPhrase:
		p.current++
		return &PhraseNode{Text: tok.Value, pos: tok.Position}, nil
	case TokenField:
		return p.parseFieldValue()
	case TokenOperator:
		p.current++
		return &OperatorNode{Op: tok.Value, pos: tok.Position}, nil
	case TokenTerm:
		p.current++
		return &TermNode{Text: tok.Value, pos: tok.Position}, nil
	default:
		return nil, fmt.Errorf("unexpected %s at position %d", tok.Type, tok.Position)
	}
}

// parseGroup parses a group enclosed by '(' and ')'
func (p *Parser) parseGroup() (Node, error) {
	openPos := p.tokens[p.current].Position
	p.current++

	group := &GroupNode{pos: openPos}

	// parse nodes until we find the matching ')'
	for !p.atEOF() {
		if p.tokens[p.current].Type == TokenRParen {
			p.current++
			return group, nil
		}

		node, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		group.Children = append(group.Children, node)
	}

	return nil, fmt.Errorf("group opened at position %d is never closed", openPos)
}

// parseFieldValue binds a field token to the value written directly after
// its colon, if any.
func (p *Parser) parseFieldValue() (Node, error) {
	field := p.tokens[p.current]
	p.current++

	node := &FieldValueNode{Field: field.Value, pos: field.Position}
	if p.atEOF() {
		return node, nil
	}

	next := p.tokens[p.current]
	if next.Position != field.End() {
		return node, nil
	}

	switch next.Type {
	case TokenPhrase, TokenTerm, TokenLParen:
		value, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		node.Value = value
	}
	return node, nil
}

func (p *Parser) atEOF() bool {
	return p.current >= len(p.tokens) || p.tokens[p.current].Type == TokenEOF
}
