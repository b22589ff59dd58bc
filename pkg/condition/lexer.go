package condition

// tokenType identifies a lexical token in a condition expression.
type tokenType int

const (
	tokenEOF tokenType = iota
	tokenIllegal
	tokenIdent  // key names and the all/any/not markers
	tokenString // "quoted value"
	tokenEq     // =
	tokenComma  // ,
	tokenLParen // (
	tokenRParen // )
)

func (t tokenType) String() string {
	switch t {
	case tokenEOF:
		return "end of expression"
	case tokenIdent:
		return "identifier"
	case tokenString:
		return "quoted string"
	case tokenEq:
		return `"="`
	case tokenComma:
		return `","`
	case tokenLParen:
		return `"("`
	case tokenRParen:
		return `")"`
	default:
		return "illegal token"
	}
}

// token is one lexical unit with its source position.
type token struct {
	typ     tokenType
	literal string
	pos     int // byte offset in the expression (0-based)
}

// lexer tokenizes a condition expression.
type lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
}

func newLexer(input string) *lexer {
	l := &lexer{input: input}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // NUL = end of input
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

// next returns the next token.
func (l *lexer) next() (token, error) {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}

	pos := l.pos
	switch {
	case l.ch == 0:
		return token{typ: tokenEOF, pos: pos}, nil
	case l.ch == '=':
		l.readChar()
		return token{typ: tokenEq, literal: "=", pos: pos}, nil
	case l.ch == ',':
		l.readChar()
		return token{typ: tokenComma, literal: ",", pos: pos}, nil
	case l.ch == '(':
		l.readChar()
		return token{typ: tokenLParen, literal: "(", pos: pos}, nil
	case l.ch == ')':
		l.readChar()
		return token{typ: tokenRParen, literal: ")", pos: pos}, nil
	case l.ch == '"':
		lit, ok := l.readString()
		if !ok {
			return token{}, &ParseError{Pos: pos, Message: "unterminated string literal"}
		}
		return token{typ: tokenString, literal: lit, pos: pos}, nil
	case isIdentChar(l.ch):
		return token{typ: tokenIdent, literal: l.readIdent(), pos: pos}, nil
	default:
		ch := l.ch
		l.readChar()
		return token{}, &ParseError{Pos: pos, Message: "unexpected character " + string(rune(ch))}
	}
}

// readString consumes a double-quoted string and returns its contents.
// The second return is false when the closing quote is missing.
func (l *lexer) readString() (string, bool) {
	l.readChar() // consume opening quote
	start := l.pos
	for l.ch != '"' {
		if l.ch == 0 {
			return "", false
		}
		l.readChar()
	}
	lit := l.input[start:l.pos]
	l.readChar() // consume closing quote
	return lit, true
}

func (l *lexer) readIdent() string {
	start := l.pos
	for isIdentChar(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func isIdentChar(ch byte) bool {
	return ch == '_' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9'
}
