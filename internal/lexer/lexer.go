// Package lexer converts source text into a stream of tokens.
package lexer

import (
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/retrograde/internal/token"
)

// Lexer tokenizes source text. Create one with New and then repeatedly call
// Next until an EOF token is returned.
type Lexer struct {
	// input is the full source text being tokenized
	input string

	// position is the byte offset of the next character to read
	position int

	// line is the 0-indexed current line number
	line int

	// lineStart is the byte offset of the start of the current line
	lineStart int

	// filename is an optional name for the input, used in positions
	filename string
}

// New returns a Lexer for the given source text.
func New(input string) *Lexer {
	return &Lexer{input: input}
}

// SetFilename sets the file name used in token positions.
func (l *Lexer) SetFilename(filename string) {
	l.filename = filename
}

// Filename returns the file name used in token positions.
func (l *Lexer) Filename() string {
	return l.filename
}

// GetLineText returns the full line of source text containing the token.
func (l *Lexer) GetLineText(tok token.Token) string {
	start := tok.StartPosition.LineStart
	if start < 0 || start > len(l.input) {
		return ""
	}
	end := strings.IndexByte(l.input[start:], '\n')
	if end < 0 {
		return l.input[start:]
	}
	return l.input[start : start+end]
}

func (l *Lexer) pos() token.Position {
	return token.Position{
		Char:      l.position,
		LineStart: l.lineStart,
		Line:      l.line,
		Column:    l.position - l.lineStart,
		File:      l.filename,
	}
}

func (l *Lexer) peek() byte {
	if l.position >= len(l.input) {
		return 0
	}
	return l.input[l.position]
}

func (l *Lexer) peekAt(offset int) byte {
	if l.position+offset >= len(l.input) {
		return 0
	}
	return l.input[l.position+offset]
}

func (l *Lexer) newline() {
	l.position++
	l.line++
	l.lineStart = l.position
}

// Next returns the next token from the input. Newlines are significant and
// are returned as NEWLINE tokens; it is up to the parser to decide where
// they terminate statements. After the input is exhausted, Next returns EOF
// tokens indefinitely.
func (l *Lexer) Next() (token.Token, error) {
	if err := l.skipSpaceAndComments(); err != nil {
		return l.illegal(l.pos(), err.Error()), err
	}
	start := l.pos()
	ch := l.peek()
	switch {
	case ch == 0:
		return l.emit(token.EOF, "", start), nil
	case ch == '\n':
		l.newline()
		return token.Token{
			Type:          token.NEWLINE,
			Literal:       "\n",
			StartPosition: start,
			EndPosition:   start,
		}, nil
	case isLetter(ch):
		return l.readIdentifier(start), nil
	case isDigit(ch):
		return l.readNumber(start)
	case ch == '"' || ch == '\'':
		return l.readString(start)
	}
	return l.readOperator(start)
}

func (l *Lexer) emit(typ token.Type, literal string, start token.Position) token.Token {
	return token.Token{
		Type:          typ,
		Literal:       literal,
		StartPosition: start,
		EndPosition:   l.pos(),
	}
}

func (l *Lexer) illegal(start token.Position, literal string) token.Token {
	return l.emit(token.ILLEGAL, literal, start)
}

// skipSpaceAndComments consumes whitespace (except newlines) and comments.
// Newlines inside block comments still advance the line counter.
func (l *Lexer) skipSpaceAndComments() error {
	for {
		switch {
		case l.peek() == ' ' || l.peek() == '\t' || l.peek() == '\r':
			l.position++
		case l.peek() == '/' && l.peekAt(1) == '/':
			for l.peek() != 0 && l.peek() != '\n' {
				l.position++
			}
		case l.peek() == '/' && l.peekAt(1) == '*':
			l.position += 2
			for {
				if l.peek() == 0 {
					return fmt.Errorf("unterminated comment")
				}
				if l.peek() == '*' && l.peekAt(1) == '/' {
					l.position += 2
					break
				}
				if l.peek() == '\n' {
					l.newline()
				} else {
					l.position++
				}
			}
		default:
			return nil
		}
	}
}

func (l *Lexer) readIdentifier(start token.Position) token.Token {
	begin := l.position
	for isLetter(l.peek()) || isDigit(l.peek()) {
		l.position++
	}
	literal := l.input[begin:l.position]
	return l.emit(token.LookupIdentifier(literal), literal, start)
}

func (l *Lexer) readNumber(start token.Position) (token.Token, error) {
	begin := l.position
	if l.peek() == '0' && (l.peekAt(1) == 'x' || l.peekAt(1) == 'X') {
		l.position += 2
		for isHexDigit(l.peek()) {
			l.position++
		}
		return l.emit(token.NUMBER, l.input[begin:l.position], start), nil
	}
	for isDigit(l.peek()) {
		l.position++
	}
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		l.position++
		for isDigit(l.peek()) {
			l.position++
		}
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		offset := 1
		if l.peekAt(1) == '+' || l.peekAt(1) == '-' {
			offset = 2
		}
		if isDigit(l.peekAt(offset)) {
			l.position += offset
			for isDigit(l.peek()) {
				l.position++
			}
		}
	}
	return l.emit(token.NUMBER, l.input[begin:l.position], start), nil
}

func (l *Lexer) readString(start token.Position) (token.Token, error) {
	quote := l.peek()
	begin := l.position
	l.position++
	for {
		ch := l.peek()
		switch ch {
		case 0, '\n':
			err := fmt.Errorf("unterminated string literal")
			return l.illegal(start, l.input[begin:l.position]), err
		case quote:
			l.position++
			// The raw literal includes the quotes; unescaping is the
			// parser's concern.
			return token.Token{
				Type:          token.STRING,
				Literal:       l.input[begin:l.position],
				StartPosition: start,
				EndPosition:   l.pos(),
			}, nil
		case '\\':
			l.position++
			if l.peek() == 0 {
				err := fmt.Errorf("unterminated string literal")
				return l.illegal(start, l.input[begin:l.position]), err
			}
			l.position++
		default:
			l.position++
		}
	}
}

// operator tokens ordered longest-first so maximal munch works
var operators = []struct {
	literal string
	typ     token.Type
}{
	{"===", token.EQ_STRICT},
	{"!==", token.NOT_EQ_STRICT},
	{"==", token.EQ},
	{"!=", token.NOT_EQ},
	{"<=", token.LT_EQUALS},
	{">=", token.GT_EQUALS},
	{"&&", token.AND},
	{"||", token.OR},
	{"++", token.PLUS_PLUS},
	{"--", token.MINUS_MINUS},
	{"+=", token.PLUS_EQUALS},
	{"-=", token.MINUS_EQUALS},
	{"*=", token.ASTERISK_EQUALS},
	{"/=", token.SLASH_EQUALS},
	{"=", token.ASSIGN},
	{"+", token.PLUS},
	{"-", token.MINUS},
	{"*", token.ASTERISK},
	{"/", token.SLASH},
	{"%", token.MOD},
	{"<", token.LT},
	{">", token.GT},
	{"!", token.BANG},
	{"?", token.QUESTION},
	{":", token.COLON},
	{";", token.SEMICOLON},
	{",", token.COMMA},
	{".", token.PERIOD},
	{"(", token.LPAREN},
	{")", token.RPAREN},
	{"{", token.LBRACE},
	{"}", token.RBRACE},
	{"[", token.LBRACKET},
	{"]", token.RBRACKET},
}

func (l *Lexer) readOperator(start token.Position) (token.Token, error) {
	rest := l.input[l.position:]
	for _, op := range operators {
		if strings.HasPrefix(rest, op.literal) {
			l.position += len(op.literal)
			return l.emit(op.typ, op.literal, start), nil
		}
	}
	ch := l.peek()
	l.position++
	err := fmt.Errorf("unexpected character %q", string(ch))
	return l.illegal(start, string(ch)), err
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || ch == '$'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}
