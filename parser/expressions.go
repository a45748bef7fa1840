package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/deepnoodle-ai/retrograde/ast"
	"github.com/deepnoodle-ai/retrograde/internal/token"
)

// parseExpression parses the expression beginning at curToken using
// precedence climbing. On return, curToken is the last token of the
// expression. Returns nil if an error was recorded.
func (p *Parser) parseExpression(precedence int) ast.Expr {
	if !p.enterExpr(p.curToken) {
		return nil
	}
	defer p.exitExpr()

	if p.cancelled() {
		return nil
	}
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
	left := prefix()
	if left == nil {
		return nil
	}
	for !statementTerminators[p.peekToken.Type] && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
		if left == nil {
			return nil
		}
	}
	return left
}

// cancelled checks if the parsing context has been cancelled.
// Returns true if cancelled, in which case parsing should stop.
func (p *Parser) cancelled() bool {
	if p.ctx == nil {
		return false
	}
	select {
	case <-p.ctx.Done():
		p.addError(NewParserError(ErrorOpts{
			ErrType: "parse error",
			Cause:   p.ctx.Err(),
			File:    p.l.Filename(),
		}))
		return true
	default:
		return false
	}
}

func (p *Parser) illegalToken() ast.Expr {
	p.noPrefixParseFnError(p.curToken)
	return nil
}

func (p *Parser) parseIdent() ast.Expr {
	return p.parseIdentName()
}

func (p *Parser) parseThis() ast.Expr {
	return &ast.This{ThisPos: p.curToken.StartPosition}
}

func (p *Parser) parseNull() ast.Expr {
	return &ast.Null{NullPos: p.curToken.StartPosition}
}

func (p *Parser) parseBoolean() ast.Expr {
	return &ast.Bool{
		ValuePos: p.curToken.StartPosition,
		Literal:  p.curToken.Literal,
		Value:    p.curTokenIs(token.TRUE),
	}
}

func (p *Parser) parseNumber() ast.Expr {
	lit := p.curToken.Literal
	var value float64
	var err error
	if strings.HasPrefix(lit, "0x") || strings.HasPrefix(lit, "0X") {
		var n uint64
		n, err = strconv.ParseUint(lit[2:], 16, 64)
		value = float64(n)
	} else {
		value, err = strconv.ParseFloat(lit, 64)
	}
	if err != nil {
		p.addError(NewSyntaxError(ErrorOpts{
			Message:       fmt.Sprintf("invalid number literal %q", lit),
			File:          p.l.Filename(),
			StartPosition: p.curToken.StartPosition,
			EndPosition:   p.curToken.EndPosition,
			SourceCode:    p.l.GetLineText(p.curToken),
		}))
		return nil
	}
	return &ast.Number{
		ValuePos: p.curToken.StartPosition,
		Literal:  lit,
		Value:    value,
	}
}

func (p *Parser) parseString() ast.Expr {
	return &ast.String{
		ValuePos: p.curToken.StartPosition,
		Literal:  p.curToken.Literal,
		Value:    unquote(p.curToken.Literal),
	}
}

// unquote strips the surrounding quotes from a string literal and resolves
// escape sequences. The lexer guarantees the literal is well formed.
func unquote(literal string) string {
	if len(literal) < 2 {
		return ""
	}
	body := literal[1 : len(literal)-1]
	if !strings.ContainsRune(body, '\\') {
		return body
	}
	var out strings.Builder
	for i := 0; i < len(body); i++ {
		ch := body[i]
		if ch != '\\' || i+1 >= len(body) {
			out.WriteByte(ch)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			out.WriteByte('\n')
		case 't':
			out.WriteByte('\t')
		case 'r':
			out.WriteByte('\r')
		case '0':
			out.WriteByte(0)
		default:
			out.WriteByte(body[i])
		}
	}
	return out.String()
}

func (p *Parser) parsePrefixExpr() ast.Expr {
	expr := &ast.Prefix{
		OpPos: p.curToken.StartPosition,
		Op:    p.curToken.Literal,
	}
	p.nextToken()
	expr.X = p.parseExpression(PREFIX)
	if expr.X == nil {
		return nil
	}
	return expr
}

func (p *Parser) parsePrefixUpdate() ast.Expr {
	expr := &ast.Update{
		OpPos:  p.curToken.StartPosition,
		Op:     p.curToken.Literal,
		Prefix: true,
	}
	p.nextToken()
	expr.X = p.parseExpression(PREFIX)
	if expr.X == nil {
		return nil
	}
	if !ast.IsAssignable(expr.X) {
		p.addError(NewParserError(ErrorOpts{
			ErrType:       "parse error",
			Message:       fmt.Sprintf("invalid operand for %q", expr.Op),
			File:          p.l.Filename(),
			StartPosition: expr.OpPos,
			EndPosition:   expr.X.End(),
		}))
		return nil
	}
	return expr
}

func (p *Parser) parsePostfixUpdate(left ast.Expr) ast.Expr {
	if !ast.IsAssignable(left) {
		p.addError(NewParserError(ErrorOpts{
			ErrType:       "parse error",
			Message:       fmt.Sprintf("invalid operand for %q", p.curToken.Literal),
			File:          p.l.Filename(),
			StartPosition: left.Pos(),
			EndPosition:   p.curToken.EndPosition,
		}))
		return nil
	}
	return &ast.Update{
		OpPos: p.curToken.StartPosition,
		Op:    p.curToken.Literal,
		X:     left,
	}
}

func (p *Parser) parseInfixExpr(left ast.Expr) ast.Expr {
	expr := &ast.Infix{
		X:     left,
		OpPos: p.curToken.StartPosition,
		Op:    p.curToken.Literal,
	}
	precedence := p.curPrecedence()
	p.eatPeekNewlines()
	p.nextToken()
	expr.Y = p.parseExpression(precedence)
	if expr.Y == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseAssign(left ast.Expr) ast.Expr {
	if !ast.IsAssignable(left) {
		p.addError(NewParserError(ErrorOpts{
			ErrType:       "parse error",
			Message:       "invalid assignment target",
			File:          p.l.Filename(),
			StartPosition: left.Pos(),
			EndPosition:   p.curToken.EndPosition,
			SourceCode:    p.l.GetLineText(p.curToken),
		}))
		return nil
	}
	expr := &ast.Assign{
		X:     left,
		OpPos: p.curToken.StartPosition,
		Op:    p.curToken.Literal,
	}
	p.eatPeekNewlines()
	p.nextToken()
	expr.Value = p.parseExpression(LOWEST)
	if expr.Value == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseTernary(cond ast.Expr) ast.Expr {
	expr := &ast.Ternary{
		Cond:     cond,
		Question: p.curToken.StartPosition,
	}
	p.eatPeekNewlines()
	p.nextToken()
	expr.IfTrue = p.parseExpression(LOWEST)
	if expr.IfTrue == nil {
		return nil
	}
	if !p.expectPeek("ternary expression", token.COLON) {
		return nil
	}
	expr.Colon = p.curToken.StartPosition
	p.eatPeekNewlines()
	p.nextToken()
	expr.IfFalse = p.parseExpression(LOWEST)
	if expr.IfFalse == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseGroupedExpr() ast.Expr {
	p.eatPeekNewlines()
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	p.eatPeekNewlines()
	if !p.expectPeek("grouped expression", token.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseCall(fun ast.Expr) ast.Expr {
	call := &ast.Call{
		Fun:    fun,
		Lparen: p.curToken.StartPosition,
	}
	args, rparen := p.parseExprList(token.RPAREN, "call arguments")
	if args == nil && p.hadNewError() {
		return nil
	}
	call.Args = args
	call.Rparen = rparen
	return call
}

func (p *Parser) parseNew() ast.Expr {
	expr := &ast.New{NewPos: p.curToken.StartPosition}
	p.nextToken()
	// Parse the constructor at CALL precedence so that member accesses
	// bind to the constructor but an argument list does not.
	expr.Fun = p.parseExpression(CALL)
	if expr.Fun == nil {
		return nil
	}
	if !p.expectPeek("new expression", token.LPAREN) {
		return nil
	}
	expr.Lparen = p.curToken.StartPosition
	args, rparen := p.parseExprList(token.RPAREN, "constructor arguments")
	if args == nil && p.hadNewError() {
		return nil
	}
	expr.Args = args
	expr.Rparen = rparen
	return expr
}

// parseExprList parses a comma separated expression list. curToken must be
// the opening delimiter; on return curToken is the closing delimiter, whose
// position is returned.
func (p *Parser) parseExprList(closer token.Type, context string) ([]ast.Expr, token.Position) {
	var list []ast.Expr
	p.eatPeekNewlines()
	if p.peekTokenIs(closer) {
		p.nextToken()
		return list, p.curToken.StartPosition
	}
	p.nextToken()
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil, token.NoPos
	}
	list = append(list, first)
	p.eatPeekNewlines()
	for p.peekTokenIs(token.COMMA) {
		p.nextToken() // the ","
		p.eatPeekNewlines()
		if p.peekTokenIs(closer) {
			// trailing comma
			break
		}
		p.nextToken()
		item := p.parseExpression(LOWEST)
		if item == nil {
			return nil, token.NoPos
		}
		list = append(list, item)
		p.eatPeekNewlines()
	}
	if !p.expectPeek(context, closer) {
		return nil, token.NoPos
	}
	return list, p.curToken.StartPosition
}

func (p *Parser) parseGetAttr(x ast.Expr) ast.Expr {
	expr := &ast.GetAttr{
		X:      x,
		Period: p.curToken.StartPosition,
	}
	if !p.expectPeek("attribute access", token.IDENT) {
		return nil
	}
	expr.Attr = p.parseIdentName()
	return expr
}

func (p *Parser) parseIndex(x ast.Expr) ast.Expr {
	expr := &ast.Index{
		X:      x,
		Lbrack: p.curToken.StartPosition,
	}
	p.eatPeekNewlines()
	p.nextToken()
	expr.Index = p.parseExpression(LOWEST)
	if expr.Index == nil {
		return nil
	}
	p.eatPeekNewlines()
	if !p.expectPeek("index expression", token.RBRACKET) {
		return nil
	}
	expr.Rbrack = p.curToken.StartPosition
	return expr
}

func (p *Parser) parseArray() ast.Expr {
	array := &ast.Array{Lbrack: p.curToken.StartPosition}
	items, rbrack := p.parseExprList(token.RBRACKET, "array literal")
	if items == nil && p.hadNewError() {
		return nil
	}
	array.Items = items
	array.Rbrack = rbrack
	return array
}

func (p *Parser) parseObject() ast.Expr {
	obj := &ast.Object{Lbrace: p.curToken.StartPosition}
	p.eatPeekNewlines()
	for !p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		prop := p.parseProperty()
		if prop == nil {
			return nil
		}
		obj.Props = append(obj.Props, prop)
		p.eatPeekNewlines()
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken() // the ","
		p.eatPeekNewlines()
	}
	if !p.expectPeek("object literal", token.RBRACE) {
		return nil
	}
	obj.Rbrace = p.curToken.StartPosition
	return obj
}

// parseProperty parses one key-value pair of an object literal. curToken
// must be the key token.
func (p *Parser) parseProperty() *ast.Property {
	var key ast.Expr
	switch p.curToken.Type {
	case token.IDENT:
		key = p.parseIdentName()
	case token.STRING:
		key = p.parseString()
	case token.NUMBER:
		key = p.parseNumber()
	default:
		p.peekError("object literal", token.IDENT, p.curToken)
		return nil
	}
	if key == nil {
		return nil
	}
	if !p.expectPeek("object literal", token.COLON) {
		return nil
	}
	p.eatPeekNewlines()
	p.nextToken()
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	return &ast.Property{Key: key, Value: value}
}

func (p *Parser) parseFuncLit() ast.Expr {
	fn := &ast.FuncLit{Func: p.curToken.StartPosition}
	if p.peekTokenIs(token.IDENT) {
		p.nextToken()
		fn.Name = p.parseIdentName()
	}
	if !p.expectPeek("function literal", token.LPAREN) {
		return nil
	}
	params, ok := p.parseFuncParams()
	if !ok {
		return nil
	}
	fn.Params = params
	if !p.expectPeek("function literal", token.LBRACE) {
		return nil
	}
	fn.Body = p.parseBlock()
	return fn
}

// parseFuncParams parses a parenthesized parameter name list. curToken must
// be "("; on return curToken is ")".
func (p *Parser) parseFuncParams() ([]*ast.Ident, bool) {
	var params []*ast.Ident
	p.eatPeekNewlines()
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params, true
	}
	for {
		if !p.expectPeek("function parameters", token.IDENT) {
			return nil, false
		}
		params = append(params, p.parseIdentName())
		p.eatPeekNewlines()
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken() // the ","
		p.eatPeekNewlines()
	}
	if !p.expectPeek("function parameters", token.RPAREN) {
		return nil, false
	}
	return params, true
}
