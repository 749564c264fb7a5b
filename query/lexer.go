package query

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Keywords lists the boolean operators in the order they are documented.
var Keywords = []string{"AND", "OR", "ANDNOT"}

// Lexer is responsible for scanning the input string and producing tokens.
type Lexer struct {
	input    string // the entire input to tokenize
	position int    // current reading position in input
	tokens   []Token
}

// NewLexer returns a new Lexer with the given input and initializes state.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:    input,
		position: 0,
		tokens:   make([]Token, 0),
	}
}

// Tokenize is a shorthand for NewLexer(input).Tokenize().
func Tokenize(input string) []Token {
	return NewLexer(input).Tokenize()
}

// Tokenize processes the entire input and produces the list of tokens.
// The last token is always TokenEOF.
//
// A double quote always toggles quote context; there is no escape syntax.
// Parentheses, colons and keywords inside quotes are literal phrase text.
func (l *Lexer) Tokenize() []Token {
	for l.position < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.position:])
		switch {
		case r == '"':
			l.lexPhrase()

		case r == '(':
			l.addToken(TokenLParen, "(", "(", l.position)
			l.position++

		case r == ')':
			l.addToken(TokenRParen, ")", ")", l.position)
			l.position++

		case unicode.IsSpace(r):
			l.position += size

		default:
			// position incrementing is handled inside `lexWord`
			l.lexWord()
		}
	}

	// At the end, add an EOF token to indicate we're done.
	l.addToken(TokenEOF, "", "", l.position)
	return l.tokens
}

// lexPhrase scans from an opening quote to the matching closing quote.
// When no closing quote exists the phrase runs to the end of input and is
// marked as not closed.
func (l *Lexer) lexPhrase() {
	start := l.position
	end := strings.IndexByte(l.input[start+1:], '"')
	if end < 0 {
		l.tokens = append(l.tokens, Token{
			Type:     TokenPhrase,
			Value:    l.input[start+1:],
			Raw:      l.input[start:],
			Position: start,
		})
		l.position = len(l.input)
		return
	}

	closing := start + 1 + end
	l.tokens = append(l.tokens, Token{
		Type:     TokenPhrase,
		Value:    l.input[start+1 : closing],
		Raw:      l.input[start : closing+1],
		Position: start,
		Closed:   true,
	})
	l.position = closing + 1
}

// lexWord scans consecutive non-special, non-whitespace characters. A word
// ending in ':' becomes a field token; a word directly after a field token
// is always a term, even if it spells a keyword.
func (l *Lexer) lexWord() {
	start := l.position
	for l.position < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.position:])
		if isDelimiter(r) {
			break
		}
		l.position += size
	}
	word := l.input[start:l.position]

	if l.position < len(l.input) && l.input[l.position] == ':' {
		l.position++
		l.addToken(TokenField, word, l.input[start:l.position], start)
		return
	}

	if !l.followsField(start) {
		if op, ok := keyword(word); ok {
			l.addToken(TokenOperator, op, word, start)
			return
		}
	}
	l.addToken(TokenTerm, word, word, start)
}

// followsField reports whether the previous token is a field token ending
// exactly at pos.
func (l *Lexer) followsField(pos int) bool {
	if len(l.tokens) == 0 {
		return false
	}
	prev := l.tokens[len(l.tokens)-1]
	return prev.Type == TokenField && prev.End() == pos
}

// addToken is a helper to append a new token to the lexer's token list.
func (l *Lexer) addToken(tokenType TokenType, value, raw string, pos int) {
	l.tokens = append(l.tokens, Token{
		Type:     tokenType,
		Value:    value,
		Raw:      raw,
		Position: pos,
	})
}

func isDelimiter(r rune) bool {
	return r == '"' || r == '(' || r == ')' || r == ':' || unicode.IsSpace(r)
}

// keyword returns the upper-cased operator when word is one of Keywords,
// compared case-insensitively.
func keyword(word string) (string, bool) {
	for _, kw := range Keywords {
		if strings.EqualFold(word, kw) {
			return kw, true
		}
	}
	return "", false
}

// IsWordRune reports whether r belongs to a word-character run: a letter,
// a digit, or an underscore.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
