// Package parser is used to generate the abstract syntax tree (AST) for a
// program.
//
// A parser is created by calling New() with a lexer as input. The parser
// should then be used only once, by calling parser.Parse() to produce the
// AST.
package parser

import (
	"context"
	"fmt"

	"github.com/deepnoodle-ai/retrograde/ast"
	"github.com/deepnoodle-ai/retrograde/internal/lexer"
	"github.com/deepnoodle-ai/retrograde/internal/token"
)

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

// statementTerminators defines tokens that can end a statement.
var statementTerminators = map[token.Type]bool{
	token.SEMICOLON: true,
	token.NEWLINE:   true,
	token.RBRACE:    true,
	token.EOF:       true,
}

// Parse the provided input as source code and return the AST. This is a
// shorthand way to create a Lexer and Parser and then call Parse on that.
func Parse(ctx context.Context, input string, options ...Option) (*ast.Program, error) {
	l := lexer.New(input)
	p := New(l, options...)
	if p.filename != "" {
		l.SetFilename(p.filename)
	}
	return p.Parse(ctx)
}

// ParseExpression parses source text containing a single expression. The
// contextLabel names the caller's purpose and is included in any error, which
// matters because callers typically feed in developer-authored text whose
// origin is otherwise invisible in the message.
func ParseExpression(text string, contextLabel string) (ast.Expr, error) {
	l := lexer.New(text)
	p := New(l)
	p.ctx = context.Background()
	p.eatNewlines()
	expr := p.parseExpression(LOWEST)
	if expr == nil || p.hasErrors() {
		return nil, fmt.Errorf("%s: %w", contextLabel, NewErrors(p.errors))
	}
	p.nextToken()
	p.eatNewlines()
	if !p.curTokenIs(token.EOF) && !p.curTokenIs(token.SEMICOLON) {
		return nil, fmt.Errorf("%s: syntax error: unexpected %q after expression",
			contextLabel, p.curToken.Literal)
	}
	return expr, nil
}

// Option is a configuration function for a Parser.
type Option func(*Parser)

// WithFilename sets the file name used in positions and error messages.
func WithFilename(filename string) Option {
	return func(p *Parser) {
		p.filename = filename
	}
}

// WithMaxDepth sets the maximum nesting depth for the parser.
// This prevents stack overflow on deeply nested input.
// The default is 500.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// DefaultMaxDepth is the default maximum nesting depth for parsing.
const DefaultMaxDepth = 500

// Parser object
type Parser struct {
	// the Context supplied in the Parse() call
	ctx context.Context

	// l is our lexer
	l *lexer.Lexer

	// curToken holds the current token from the lexer.
	curToken token.Token

	// peekToken holds the next token from the lexer.
	peekToken token.Token

	// parsing errors collected during parsing
	errors []ParserError

	// stmtErrorCount tracks error count at start of current statement.
	// Used by inner methods to detect if an error was added during this
	// statement.
	stmtErrorCount int

	// prefixParseFns holds a map of parsing methods for
	// prefix-based syntax.
	prefixParseFns map[token.Type]prefixParseFn

	// infixParseFns holds a map of parsing methods for
	// infix-based syntax.
	infixParseFns map[token.Type]infixParseFn

	// The filename of the input
	filename string

	// Current recursion depth
	depth int

	// Maximum allowed recursion depth
	maxDepth int
}

// New returns a Parser for the program provided by the given Lexer.
func New(l *lexer.Lexer, options ...Option) *Parser {
	// Create the parser and apply any provided options
	p := &Parser{
		l:              l,
		prefixParseFns: map[token.Type]prefixParseFn{},
		infixParseFns:  map[token.Type]infixParseFn{},
		maxDepth:       DefaultMaxDepth,
	}
	for _, opt := range options {
		opt(p)
	}

	// Prime the token pump
	p.nextToken() // makes curToken=<empty>, peekToken=token[0]
	p.nextToken() // makes curToken=token[0], peekToken=token[1]

	// Register prefix-functions
	p.registerPrefix(token.BANG, p.parsePrefixExpr)
	p.registerPrefix(token.DELETE, p.parsePrefixExpr)
	p.registerPrefix(token.EOF, p.illegalToken)
	p.registerPrefix(token.FALSE, p.parseBoolean)
	p.registerPrefix(token.FUNCTION, p.parseFuncLit)
	p.registerPrefix(token.IDENT, p.parseIdent)
	p.registerPrefix(token.ILLEGAL, p.illegalToken)
	p.registerPrefix(token.LBRACE, p.parseObject)
	p.registerPrefix(token.LBRACKET, p.parseArray)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpr)
	p.registerPrefix(token.MINUS, p.parsePrefixExpr)
	p.registerPrefix(token.MINUS_MINUS, p.parsePrefixUpdate)
	p.registerPrefix(token.NEW, p.parseNew)
	p.registerPrefix(token.NULL, p.parseNull)
	p.registerPrefix(token.NUMBER, p.parseNumber)
	p.registerPrefix(token.PLUS, p.parsePrefixExpr)
	p.registerPrefix(token.PLUS_PLUS, p.parsePrefixUpdate)
	p.registerPrefix(token.STRING, p.parseString)
	p.registerPrefix(token.THIS, p.parseThis)
	p.registerPrefix(token.TRUE, p.parseBoolean)
	p.registerPrefix(token.TYPEOF, p.parsePrefixExpr)
	p.registerPrefix(token.VOID, p.parsePrefixExpr)

	// Register infix functions
	p.registerInfix(token.AND, p.parseInfixExpr)
	p.registerInfix(token.ASSIGN, p.parseAssign)
	p.registerInfix(token.ASTERISK, p.parseInfixExpr)
	p.registerInfix(token.ASTERISK_EQUALS, p.parseAssign)
	p.registerInfix(token.EQ, p.parseInfixExpr)
	p.registerInfix(token.EQ_STRICT, p.parseInfixExpr)
	p.registerInfix(token.GT, p.parseInfixExpr)
	p.registerInfix(token.GT_EQUALS, p.parseInfixExpr)
	p.registerInfix(token.IN, p.parseInfixExpr)
	p.registerInfix(token.INSTANCEOF, p.parseInfixExpr)
	p.registerInfix(token.LBRACKET, p.parseIndex)
	p.registerInfix(token.LPAREN, p.parseCall)
	p.registerInfix(token.LT, p.parseInfixExpr)
	p.registerInfix(token.LT_EQUALS, p.parseInfixExpr)
	p.registerInfix(token.MINUS, p.parseInfixExpr)
	p.registerInfix(token.MINUS_EQUALS, p.parseAssign)
	p.registerInfix(token.MINUS_MINUS, p.parsePostfixUpdate)
	p.registerInfix(token.MOD, p.parseInfixExpr)
	p.registerInfix(token.NOT_EQ, p.parseInfixExpr)
	p.registerInfix(token.NOT_EQ_STRICT, p.parseInfixExpr)
	p.registerInfix(token.OR, p.parseInfixExpr)
	p.registerInfix(token.PERIOD, p.parseGetAttr)
	p.registerInfix(token.PLUS, p.parseInfixExpr)
	p.registerInfix(token.PLUS_EQUALS, p.parseAssign)
	p.registerInfix(token.PLUS_PLUS, p.parsePostfixUpdate)
	p.registerInfix(token.QUESTION, p.parseTernary)
	p.registerInfix(token.SLASH, p.parseInfixExpr)
	p.registerInfix(token.SLASH_EQUALS, p.parseAssign)

	return p
}

// nextToken moves to the next token from the lexer, updating both curToken
// and peekToken.
func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	var err error
	p.peekToken, err = p.l.Next()
	if err != nil {
		// The lexer encountered an error. We consider all lexer errors
		// "syntax errors" and parsing will now be considered broken.
		p.addError(NewSyntaxError(ErrorOpts{
			Cause:         err,
			File:          p.l.Filename(),
			StartPosition: p.peekToken.StartPosition,
			EndPosition:   p.peekToken.EndPosition,
			SourceCode:    p.l.GetLineText(p.peekToken),
		}))
	}
}

// eatNewlines advances past any newline tokens so that curToken is
// meaningful. Used at statement boundaries and inside bracketed lists, where
// newlines are insignificant.
func (p *Parser) eatNewlines() {
	for p.curTokenIs(token.NEWLINE) {
		p.nextToken()
	}
}

// eatPeekNewlines discards newline tokens in the peek position. Used where a
// construct is known to continue on a following line.
func (p *Parser) eatPeekNewlines() {
	for p.peekTokenIs(token.NEWLINE) {
		p.nextToken()
	}
}

// Parse the program that is provided via the lexer.
// Returns the AST and any errors encountered. If there are errors, the AST
// may be partial (containing only successfully parsed statements).
func (p *Parser) Parse(ctx context.Context) (*ast.Program, error) {
	p.ctx = ctx
	// It's possible for errors to already exist because we read tokens from
	// the lexer in the constructor.
	if p.hasErrors() {
		return nil, NewErrors(p.errors)
	}
	// Parse the entire input program as a series of statements.
	// When a statement fails, we synchronize and continue to collect more
	// errors.
	var statements []ast.Stmt
	for !p.curTokenIs(token.EOF) {
		// Check for context timeout
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		// Stop if we've collected too many errors
		if p.tooManyErrors() {
			break
		}
		if p.curTokenIs(token.NEWLINE) {
			p.nextToken()
			continue
		}
		// Track error count for this statement so inner methods can detect
		// new errors
		p.stmtErrorCount = len(p.errors)
		stmt := p.parseStatement()
		if stmt != nil {
			statements = append(statements, stmt)
			// Swallow the terminating semicolon so it doesn't read as an
			// empty statement. A bare ";" still produces an Empty node.
			if _, ok := stmt.(*ast.Empty); !ok && p.peekTokenIs(token.SEMICOLON) {
				p.nextToken()
			}
		}
		if p.hadNewError() {
			// Statement failed - synchronize and continue
			p.synchronize()
		}
		p.nextToken()
	}
	program := &ast.Program{Stmts: statements}
	if p.hasErrors() {
		return program, NewErrors(p.errors)
	}
	return program, nil
}

// registerPrefix registers a function for handling a prefix-based expression.
func (p *Parser) registerPrefix(tokenType token.Type, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

// registerInfix registers a function for handling an infix-based expression.
func (p *Parser) registerInfix(tokenType token.Type, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

// MaxErrors is the maximum number of errors to collect before stopping.
const MaxErrors = 10

// addError appends an error to the errors slice.
func (p *Parser) addError(err ParserError) {
	p.errors = append(p.errors, err)
}

// hasErrors returns true if any errors have been recorded.
func (p *Parser) hasErrors() bool {
	return len(p.errors) > 0
}

// tooManyErrors returns true if error limit has been reached.
func (p *Parser) tooManyErrors() bool {
	return len(p.errors) >= MaxErrors
}

// hadNewError returns true if an error was added during the current statement.
func (p *Parser) hadNewError() bool {
	return len(p.errors) > p.stmtErrorCount
}

// synchronize skips tokens until a statement boundary is reached.
// This is used for error recovery to continue parsing after an error.
func (p *Parser) synchronize() {
	for !p.curTokenIs(token.EOF) {
		// Stop at statement terminators
		if statementTerminators[p.curToken.Type] {
			return
		}
		// Stop at statement-starting keywords
		switch p.curToken.Type {
		case token.VAR, token.LET, token.CONST, token.RETURN, token.IF,
			token.FOR, token.WHILE, token.FUNCTION, token.TRY, token.THROW:
			return
		}
		prevPos := p.curToken.StartPosition
		p.nextToken()
		// Safety: if we didn't advance (lexer stuck), bail out
		if p.curToken.StartPosition == prevPos {
			return
		}
	}
}

func (p *Parser) noPrefixParseFnError(t token.Token) {
	p.addError(NewParserError(ErrorOpts{
		ErrType:       "parse error",
		Message:       fmt.Sprintf("invalid syntax (unexpected %q)", t.Literal),
		File:          p.l.Filename(),
		StartPosition: t.StartPosition,
		EndPosition:   t.EndPosition,
		SourceCode:    p.l.GetLineText(t),
	}))
}

// peekError raises an error if the next token is not the expected type.
func (p *Parser) peekError(context string, expected token.Type, got token.Token) {
	p.addError(NewParserError(ErrorOpts{
		ErrType: "parse error",
		Message: fmt.Sprintf("unexpected %q while parsing %s (expected %q)",
			got.Literal, context, string(expected)),
		File:          p.l.Filename(),
		StartPosition: got.StartPosition,
		EndPosition:   got.EndPosition,
		SourceCode:    p.l.GetLineText(got),
	}))
}

func (p *Parser) curTokenIs(t token.Type) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.Type) bool {
	return p.peekToken.Type == t
}

// expectPeek advances to the next token if it has the expected type, and
// otherwise records an error and stays put. Returns true on a match.
func (p *Parser) expectPeek(context string, t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(context, t, p.peekToken)
	return false
}

// enterExpr guards against parse recursion that is too deep. The caller must
// call exitExpr if enterExpr returns true.
func (p *Parser) enterExpr(t token.Token) bool {
	p.depth++
	if p.depth > p.maxDepth {
		p.addError(NewSyntaxError(ErrorOpts{
			Message:       "maximum expression nesting depth exceeded",
			File:          p.l.Filename(),
			StartPosition: t.StartPosition,
			EndPosition:   t.EndPosition,
			SourceCode:    p.l.GetLineText(t),
		}))
		p.depth--
		return false
	}
	return true
}

func (p *Parser) exitExpr() {
	p.depth--
}
