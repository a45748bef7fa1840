package parser

import (
	"github.com/deepnoodle-ai/retrograde/ast"
	"github.com/deepnoodle-ai/retrograde/internal/token"
)

// parseStatement parses the statement beginning at curToken. On return,
// curToken is the last token of the statement. Returns nil if an error was
// recorded.
func (p *Parser) parseStatement() ast.Stmt {
	switch p.curToken.Type {
	case token.VAR, token.LET, token.CONST:
		return p.parseVarDecl()
	case token.FUNCTION:
		return p.parseFuncDecl()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.RETURN:
		return p.parseReturn()
	case token.BREAK:
		return &ast.Break{Break: p.curToken.StartPosition}
	case token.CONTINUE:
		return &ast.Continue{Continue: p.curToken.StartPosition}
	case token.THROW:
		return p.parseThrow()
	case token.TRY:
		return p.parseTry()
	case token.LBRACE:
		return p.parseBlock()
	case token.SEMICOLON:
		return &ast.Empty{Semicolon: p.curToken.StartPosition}
	default:
		return p.parseExprStatement()
	}
}

// parseBlock parses a braced statement list. curToken must be "{"; on
// return, curToken is the closing "}".
func (p *Parser) parseBlock() *ast.Block {
	block := &ast.Block{Lbrace: p.curToken.StartPosition}
	p.nextToken()
	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.EOF) || p.tooManyErrors() {
			p.peekError("block", token.RBRACE, p.curToken)
			return block
		}
		if p.curTokenIs(token.NEWLINE) || p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
		if p.hadNewError() {
			p.synchronize()
			if p.curTokenIs(token.RBRACE) {
				break
			}
		}
		p.nextToken()
	}
	block.Rbrace = p.curToken.StartPosition
	return block
}

// parseVarDecl parses a variable declaration starting at the var/let/const
// keyword. It does not consume the statement terminator, which lets
// parseFor reuse it for loop headers.
func (p *Parser) parseVarDecl() *ast.VarDecl {
	decl := &ast.VarDecl{
		KeywordPos: p.curToken.StartPosition,
		Keyword:    p.curToken.Literal,
	}
	for {
		if !p.expectPeek("variable declaration", token.IDENT) {
			return nil
		}
		d := &ast.Declarator{Name: p.parseIdentName()}
		if p.peekTokenIs(token.ASSIGN) {
			p.nextToken() // the "="
			p.eatPeekNewlines()
			p.nextToken() // first token of the value
			d.Value = p.parseExpression(LOWEST)
			if d.Value == nil {
				return nil
			}
		}
		decl.Decls = append(decl.Decls, d)
		if !p.peekTokenIs(token.COMMA) {
			return decl
		}
		p.nextToken() // the ","
		p.eatPeekNewlines()
	}
}

func (p *Parser) parseFuncDecl() ast.Stmt {
	fn := p.parseFuncLit()
	if fn == nil {
		return nil
	}
	lit, ok := fn.(*ast.FuncLit)
	if !ok {
		return nil
	}
	if lit.Name == nil {
		p.addError(NewParserError(ErrorOpts{
			ErrType:       "parse error",
			Message:       "function declarations require a name",
			File:          p.l.Filename(),
			StartPosition: lit.Func,
			EndPosition:   lit.Func,
		}))
		return nil
	}
	return &ast.FuncDecl{
		Func:   lit.Func,
		Name:   lit.Name,
		Params: lit.Params,
		Body:   lit.Body,
	}
}

func (p *Parser) parseIf() ast.Stmt {
	stmt := &ast.If{If: p.curToken.StartPosition}
	if !p.expectPeek("if statement", token.LPAREN) {
		return nil
	}
	p.eatPeekNewlines()
	p.nextToken()
	stmt.Cond = p.parseExpression(LOWEST)
	if stmt.Cond == nil {
		return nil
	}
	p.eatPeekNewlines()
	if !p.expectPeek("if statement", token.RPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Then = p.parseStatement()
	if stmt.Then == nil {
		return nil
	}
	// "else" may follow a semicolon after an unbraced then-branch, or
	// sit on its own line
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	p.eatPeekNewlines()
	if p.peekTokenIs(token.ELSE) {
		p.nextToken() // the "else"
		p.nextToken()
		stmt.Else = p.parseStatement()
		if stmt.Else == nil {
			return nil
		}
	}
	return stmt
}

func (p *Parser) parseWhile() ast.Stmt {
	stmt := &ast.While{While: p.curToken.StartPosition}
	if !p.expectPeek("while statement", token.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Cond = p.parseExpression(LOWEST)
	if stmt.Cond == nil {
		return nil
	}
	if !p.expectPeek("while statement", token.RPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Body = p.parseStatement()
	if stmt.Body == nil {
		return nil
	}
	return stmt
}

// parseFor parses both classic counted loops and for-in enumeration loops.
// The two are distinguished after the loop header's first clause is parsed.
func (p *Parser) parseFor() ast.Stmt {
	forPos := p.curToken.StartPosition
	if !p.expectPeek("for statement", token.LPAREN) {
		return nil
	}
	var init ast.Stmt
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken() // the ";"
	} else {
		p.nextToken()
		switch p.curToken.Type {
		case token.VAR, token.LET, token.CONST:
			decl := p.parseVarDecl()
			if decl == nil {
				return nil
			}
			if p.peekTokenIs(token.IN) {
				return p.parseForIn(forPos, decl)
			}
			init = decl
		default:
			expr := p.parseExpression(LOWEST)
			if expr == nil {
				return nil
			}
			// "k in obj" parses as an infix expression; split it back
			// apart to recover the enumeration header.
			if infix, ok := expr.(*ast.Infix); ok && infix.Op == "in" {
				return p.parseForInTail(forPos, &ast.ExprStmt{X: infix.X}, infix.Y)
			}
			init = &ast.ExprStmt{X: expr}
		}
		if !p.expectPeek("for statement", token.SEMICOLON) {
			return nil
		}
	}
	stmt := &ast.For{For: forPos, Init: init}
	if !p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
		stmt.Cond = p.parseExpression(LOWEST)
		if stmt.Cond == nil {
			return nil
		}
	}
	if !p.expectPeek("for statement", token.SEMICOLON) {
		return nil
	}
	if !p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		stmt.Post = p.parseExpression(LOWEST)
		if stmt.Post == nil {
			return nil
		}
	}
	if !p.expectPeek("for statement", token.RPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Body = p.parseStatement()
	if stmt.Body == nil {
		return nil
	}
	return stmt
}

// parseForIn handles "for (var k in obj)" where the declaration has already
// been parsed and the peek token is "in".
func (p *Parser) parseForIn(forPos token.Position, decl *ast.VarDecl) ast.Stmt {
	p.nextToken() // the "in"
	p.nextToken()
	x := p.parseExpression(LOWEST)
	if x == nil {
		return nil
	}
	return p.parseForInTail(forPos, decl, x)
}

func (p *Parser) parseForInTail(forPos token.Position, left ast.Stmt, x ast.Expr) ast.Stmt {
	stmt := &ast.ForIn{For: forPos, Left: left, X: x}
	if !p.expectPeek("for-in statement", token.RPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Body = p.parseStatement()
	if stmt.Body == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseReturn() ast.Stmt {
	stmt := &ast.Return{Return: p.curToken.StartPosition}
	if statementTerminators[p.peekToken.Type] {
		return stmt
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseThrow() ast.Stmt {
	stmt := &ast.Throw{Throw: p.curToken.StartPosition}
	if statementTerminators[p.peekToken.Type] {
		p.peekError("throw statement", token.IDENT, p.peekToken)
		return nil
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseTry() ast.Stmt {
	stmt := &ast.Try{Try: p.curToken.StartPosition}
	if !p.expectPeek("try statement", token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlock()
	p.eatPeekNewlines()
	if p.peekTokenIs(token.CATCH) {
		p.nextToken()
		stmt.Catch = p.parseCatch()
		if stmt.Catch == nil {
			return nil
		}
		p.eatPeekNewlines()
	}
	if p.peekTokenIs(token.FINALLY) {
		p.nextToken()
		if !p.expectPeek("finally clause", token.LBRACE) {
			return nil
		}
		stmt.Finally = p.parseBlock()
	}
	if stmt.Catch == nil && stmt.Finally == nil {
		p.addError(NewParserError(ErrorOpts{
			ErrType:       "parse error",
			Message:       "try statement requires a catch or finally clause",
			File:          p.l.Filename(),
			StartPosition: stmt.Try,
			EndPosition:   stmt.Body.End(),
		}))
		return nil
	}
	return stmt
}

// parseCatch parses a catch clause starting at the "catch" keyword.
func (p *Parser) parseCatch() *ast.Catch {
	clause := &ast.Catch{Catch: p.curToken.StartPosition}
	if p.peekTokenIs(token.LPAREN) {
		p.nextToken() // the "("
		p.nextToken()
		clause.Param = p.parseCatchParam()
		if clause.Param == nil {
			return nil
		}
		if !p.expectPeek("catch clause", token.RPAREN) {
			return nil
		}
	}
	if !p.expectPeek("catch clause", token.LBRACE) {
		return nil
	}
	clause.Body = p.parseBlock()
	return clause
}

// parseCatchParam parses the binding in catch parameter position: either a
// plain identifier or a shorthand object destructuring pattern.
func (p *Parser) parseCatchParam() ast.Pattern {
	switch p.curToken.Type {
	case token.IDENT:
		return p.parseIdentName()
	case token.LBRACE:
		pattern := &ast.ObjectPattern{Lbrace: p.curToken.StartPosition}
		for {
			if !p.expectPeek("catch pattern", token.IDENT) {
				return nil
			}
			pattern.Props = append(pattern.Props, p.parseIdentName())
			if !p.peekTokenIs(token.COMMA) {
				break
			}
			p.nextToken()
		}
		if !p.expectPeek("catch pattern", token.RBRACE) {
			return nil
		}
		pattern.Rbrace = p.curToken.StartPosition
		return pattern
	default:
		p.peekError("catch clause", token.IDENT, p.curToken)
		return nil
	}
}

func (p *Parser) parseExprStatement() ast.Stmt {
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if !statementTerminators[p.peekToken.Type] {
		p.peekError("expression statement", token.SEMICOLON, p.peekToken)
		return nil
	}
	return &ast.ExprStmt{X: expr}
}

// parseIdentName converts the current IDENT token to an Ident node.
func (p *Parser) parseIdentName() *ast.Ident {
	return &ast.Ident{
		NamePos: p.curToken.StartPosition,
		Name:    p.curToken.Literal,
	}
}
