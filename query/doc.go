/*
Package query provides a lexer and parser for free-text boolean search queries
made of fielded terms, quoted phrases, nested groups and the operators AND, OR
and ANDNOT.

# Token Types

The lexer recognizes the following token types:

  - TokenTerm: a bare word
    Example: Engineer, B.S.

  - TokenPhrase: double-quoted text, quotes excluded from Value
    Example: "Some Company"

  - TokenField: a word immediately followed by ':'
    Example: COMPANY: in COMPANY:Acme

  - TokenOperator: AND, OR or ANDNOT as a whole word, any case

  - TokenLParen / TokenRParen: group delimiters outside quotes

  - TokenEOF: End of input marker

Whitespace outside quotes separates tokens and is not emitted. Every token
records its byte offset, so adjacency (for example a field and its value)
can be recovered by comparing Token.End with the next Token.Position.

# Tree Node Types

The parser produces a tree with the following node types:

  - QueryNode: root
  - GroupNode: parenthesised sub-query
  - FieldValueNode: field name bound to the value written right after the colon
  - PhraseNode, TermNode, OperatorNode: leaves

# Usage Example

	tokens := query.Tokenize(`COMPANY:"Some Company" AND (A OR B)`)
	tree, err := query.NewParser(tokens).Parse()

The tree documents structure in source order. Operator precedence is not
resolved.
*/
package query
