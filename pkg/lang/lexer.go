package lang

import (
	"strconv"
	"unicode"
)

// keywords maps source text to its keyword TokenType.
var keywords = map[string]TokenType{
	"true":  BOOL,
	"false": BOOL,
	"and":   AND,
	"or":    OR,
	"print": PRINT,
	"dup":   DUP,
	"swap":  SWAP,
	"drop":  DROP,
	"bind":  BIND,
	"if":    IF,
	"elif":  ELIF,
	"else":  ELSE,
	"while": WHILE,
	"proc":  PROC,
	"call":  CALL,
	"do":    DO,
	"end":   END,
}

// Lexer holds all mutable state for a single scanning pass over src.
type Lexer struct {
	src  []rune
	pos  int // index of the next rune to consume
	line int // current 1-based source line
}

func newLexer(src string) *Lexer {
	return &Lexer{src: []rune(src), pos: 0, line: 1}
}

// peek returns the rune at the current position without advancing.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

// peek2 returns the rune one position ahead of the current position.
func (l *Lexer) peek2() rune {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

func (l *Lexer) atEnd() bool { return l.pos >= len(l.src) }

// advance consumes one rune and returns it.
func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
	}
	return r
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) && unicode.IsSpace(l.peek()) {
		l.advance()
	}
}

// skipLineComment discards everything from the current position to end-of-line.
// The opening "//" must already have been consumed.
func (l *Lexer) skipLineComment() {
	for l.pos < len(l.src) && l.peek() != '\n' {
		l.advance()
	}
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// scanIdent collects an identifier or keyword.
// The first letter must still be at l.peek().
func (l *Lexer) scanIdent() Token {
	line, start := l.line, l.pos
	for l.pos < len(l.src) {
		r := l.peek()
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}
		l.advance()
	}
	lexeme := string(l.src[start:l.pos])
	tok := Token{Type: IDENTIFIER, Lexeme: lexeme, Pos: start, Line: line}
	if kw, ok := keywords[lexeme]; ok {
		tok.Type = kw
	}
	if tok.Type == BOOL {
		v := Bool(lexeme == "true")
		tok.Literal = &v
	}
	return tok
}

// scanNumber collects digits with an optional fractional part.
// The first digit must still be at l.peek().
func (l *Lexer) scanNumber() Token {
	line, start := l.line, l.pos
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	lexeme := string(l.src[start:l.pos])
	// The lexeme is always well formed; a range error still yields ±Inf.
	f, _ := strconv.ParseFloat(lexeme, 32)
	v := Number(float32(f))
	return Token{Type: NUMBER, Lexeme: lexeme, Literal: &v, Pos: start, Line: line}
}

// scanString collects a string literal "...". Contents are taken verbatim.
func (l *Lexer) scanString() (Token, error) {
	line, start := l.line, l.pos
	l.advance() // consume opening "
	bodyStart := l.pos
	for l.pos < len(l.src) && l.peek() != '"' {
		l.advance()
	}
	if l.atEnd() {
		return Token{}, &Error{Kind: StringNotTerminated, Pos: start}
	}
	v := String(string(l.src[bodyStart:l.pos]))
	l.advance() // consume closing "
	return Token{Type: STRING, Lexeme: string(l.src[start:l.pos]), Literal: &v, Pos: start, Line: line}, nil
}

// invalid builds an InvalidString error for the fragment starting at start.
func (l *Lexer) invalid(start int) *Error {
	end := l.pos + 1
	if end > len(l.src) {
		end = len(l.src)
	}
	return &Error{Kind: InvalidString, Fragment: string(l.src[start:end]), Pos: start}
}

// nextToken skips whitespace/comments and returns the next Token.
func (l *Lexer) nextToken() (Token, error) {
	for {
		l.skipWhitespace()
		if l.atEnd() {
			return Token{Type: EOF, Lexeme: "", Pos: l.pos, Line: l.line}, nil
		}
		if l.peek() == '/' && l.peek2() == '/' {
			l.advance()
			l.advance()
			l.skipLineComment()
			continue
		}
		break
	}

	ch := l.peek()
	line, start := l.line, l.pos

	switch {
	case isLetter(ch):
		return l.scanIdent(), nil
	case isDigit(ch):
		return l.scanNumber(), nil
	case ch == '"':
		return l.scanString()
	}

	l.advance() // consume the character before the switch
	tok := func(tt TokenType, lexeme string) (Token, error) {
		return Token{Type: tt, Lexeme: lexeme, Pos: start, Line: line}, nil
	}
	switch ch {
	case '+':
		return tok(PLUS, "+")
	case '-':
		return tok(MINUS, "-")
	case '*':
		return tok(STAR, "*")
	case '/':
		return tok(SLASH, "/")
	case '%':
		return tok(PERCENT, "%")
	case '>', '<':
		if l.peek() == '=' {
			l.advance()
			if ch == '>' {
				return tok(GREATER_EQ, ">=")
			}
			return tok(LESS_EQ, "<=")
		}
		// A bare comparison must stand alone.
		if !l.atEnd() && !unicode.IsSpace(l.peek()) {
			return Token{}, l.invalid(start)
		}
		if ch == '>' {
			return tok(GREATER, ">")
		}
		return tok(LESS, "<")
	case '=', '!':
		if l.peek() != '=' {
			return Token{}, l.invalid(start)
		}
		l.advance()
		if ch == '=' {
			return tok(EQUALS, "==")
		}
		return tok(NOT_EQ, "!=")
	}
	return Token{}, &Error{Kind: InvalidString, Fragment: string(ch), Pos: start}
}

// Lex tokenises src and returns all tokens including the final EOF token.
// It stops at the first lexical error.
func Lex(src string) ([]Token, error) {
	l := newLexer(src)
	var tokens []Token
	for {
		tok, err := l.nextToken()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}
