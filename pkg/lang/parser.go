package lang

// Parser consumes the flat token slice produced by the Lexer and builds the
// statement tree.
//
// Grammar:
//
//	program    = statement* EOF
//	statement  = literal | IDENTIFIER | unary-op | binary-op
//	           | bind | if | while | proc | call
//	bind       = "bind" IDENTIFIER
//	if         = "if" cond "do" body ("elif" cond "do" body)* ("else" "do" body)? "end"
//	while      = "while" cond "do" body "end"
//	proc       = "proc" IDENTIFIER "do" body "end"
//	call       = "call" IDENTIFIER
//	cond, body = statement*
type Parser struct {
	tokens []Token
	pos    int
}

func NewParser(tokens []Token) *Parser {
	if n := len(tokens); n == 0 || tokens[n-1].Type != EOF {
		eof := Token{Type: EOF}
		if n > 0 {
			last := tokens[n-1]
			eof.Pos, eof.Line = last.Pos+len([]rune(last.Lexeme)), last.Line
		}
		tokens = append(tokens[:n:n], eof)
	}
	return &Parser{tokens: tokens}
}

var unaryOps = map[TokenType]UnaryOp{
	PRINT: Print,
	DUP:   Duplicate,
	DROP:  Drop,
}

var binaryOps = map[TokenType]BinaryOp{
	PLUS:       Add,
	MINUS:      Sub,
	STAR:       Mul,
	SLASH:      Div,
	PERCENT:    Mod,
	GREATER:    GT,
	GREATER_EQ: GTEq,
	LESS:       LT,
	LESS_EQ:    LTEq,
	EQUALS:     Eq,
	NOT_EQ:     NotEq,
	AND:        And,
	OR:         Or,
	SWAP:       Swap,
}

// blockKeywords only ever close or continue a block.
var blockKeywords = []TokenType{DO, ELIF, ELSE, END}

// peek returns the current token without consuming it.
func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

// advance consumes and returns the current token.
func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func unexpected(tok Token, expected ...TokenType) *Error {
	return &Error{Kind: UnexpectedToken, Found: tok, Expected: expected}
}

// expect consumes the current token if it matches tt, otherwise returns an error.
func (p *Parser) expect(tt TokenType) (Token, error) {
	tok := p.peek()
	if tok.Type != tt {
		return tok, unexpected(tok, tt)
	}
	return p.advance(), nil
}

func isOneOf(tt TokenType, set []TokenType) bool {
	for _, t := range set {
		if t == tt {
			return true
		}
	}
	return false
}

// parseUntil parses statements until the cursor rests on one of the
// terminators, which is left unconsumed.
func (p *Parser) parseUntil(terminators ...TokenType) ([]Stmt, error) {
	var stmts []Stmt
	for {
		tok := p.peek()
		if isOneOf(tok.Type, terminators) {
			return stmts, nil
		}
		if tok.Type == EOF || isOneOf(tok.Type, blockKeywords) {
			return nil, unexpected(tok, terminators...)
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
}

// parseStatement dispatches on the current token.
func (p *Parser) parseStatement() (Stmt, error) {
	tok := p.advance()
	switch tok.Type {
	case NUMBER, STRING, BOOL:
		return &PushStmt{Value: *tok.Literal}, nil
	case IDENTIFIER:
		return &PushStmt{Ident: tok.Lexeme}, nil
	case BIND:
		name, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, err
		}
		return &BindStmt{Name: name.Lexeme}, nil
	case CALL:
		name, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, err
		}
		return &CallStmt{Name: name.Lexeme}, nil
	case IF:
		return p.parseIf()
	case WHILE:
		return p.parseWhile()
	case PROC:
		return p.parseProc()
	}
	if op, ok := unaryOps[tok.Type]; ok {
		return &UnaryStmt{Op: op}, nil
	}
	if op, ok := binaryOps[tok.Type]; ok {
		return &BinaryStmt{Op: op}, nil
	}
	return nil, unexpected(tok)
}

// parseIf parses the rest of an if statement.
// The leading IF token has already been consumed by parseStatement.
func (p *Parser) parseIf() (Stmt, error) {
	cond, err := p.parseUntil(DO)
	if err != nil {
		return nil, err
	}
	p.advance() // do
	then, err := p.parseUntil(ELIF, ELSE, END)
	if err != nil {
		return nil, err
	}
	stmt := &IfStmt{Cond: cond, Then: then}

	for p.peek().Type == ELIF {
		p.advance()
		elifCond, err := p.parseUntil(DO)
		if err != nil {
			return nil, err
		}
		p.advance() // do
		body, err := p.parseUntil(ELIF, ELSE, END)
		if err != nil {
			return nil, err
		}
		stmt.Elifs = append(stmt.Elifs, ElifClause{Cond: elifCond, Body: body})
	}

	if p.peek().Type == ELSE {
		p.advance()
		if _, err := p.expect(DO); err != nil {
			return nil, err
		}
		stmt.Else, err = p.parseUntil(END)
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(END); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseWhile parses the rest of a while loop.
// The leading WHILE token has already been consumed by parseStatement.
func (p *Parser) parseWhile() (Stmt, error) {
	cond, err := p.parseUntil(DO)
	if err != nil {
		return nil, err
	}
	p.advance() // do
	body, err := p.parseUntil(END)
	if err != nil {
		return nil, err
	}
	p.advance() // end
	return &WhileStmt{Cond: cond, Body: body}, nil
}

// parseProc parses the rest of a procedure definition.
// The leading PROC token has already been consumed by parseStatement.
func (p *Parser) parseProc() (Stmt, error) {
	name, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(DO); err != nil {
		return nil, err
	}
	body, err := p.parseUntil(END)
	if err != nil {
		return nil, err
	}
	p.advance() // end
	return &ProcStmt{Name: name.Lexeme, Body: body}, nil
}

// Parse builds the statement list for a whole program. The result always ends
// with an EmptyStmt.
func Parse(tokens []Token) ([]Stmt, error) {
	p := NewParser(tokens)
	var stmts []Stmt
	for p.peek().Type != EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return append(stmts, &EmptyStmt{}), nil
}
