package parser

import "github.com/deepnoodle-ai/retrograde/internal/token"

// Operator precedence levels, lowest to highest.
const (
	LOWEST  int = iota + 1
	ASSIGN      // = += -= *= /=
	TERNARY     // ? :
	OR          // ||
	AND         // &&
	EQUALS      // == != === !==
	COMPARE     // < > <= >= in instanceof
	SUM         // + -
	PRODUCT     // * / %
	PREFIX      // !x -x typeof x
	POSTFIX     // x++ x--
	CALL        // fn(x)
	MEMBER      // obj.attr obj[x]
)

// precedences maps token types to their infix precedence level.
var precedences = map[token.Type]int{
	token.ASSIGN:          ASSIGN,
	token.PLUS_EQUALS:     ASSIGN,
	token.MINUS_EQUALS:    ASSIGN,
	token.ASTERISK_EQUALS: ASSIGN,
	token.SLASH_EQUALS:    ASSIGN,
	token.QUESTION:        TERNARY,
	token.OR:              OR,
	token.AND:             AND,
	token.EQ:              EQUALS,
	token.NOT_EQ:          EQUALS,
	token.EQ_STRICT:       EQUALS,
	token.NOT_EQ_STRICT:   EQUALS,
	token.LT:              COMPARE,
	token.GT:              COMPARE,
	token.LT_EQUALS:       COMPARE,
	token.GT_EQUALS:       COMPARE,
	token.IN:              COMPARE,
	token.INSTANCEOF:      COMPARE,
	token.PLUS:            SUM,
	token.MINUS:           SUM,
	token.ASTERISK:        PRODUCT,
	token.SLASH:           PRODUCT,
	token.MOD:             PRODUCT,
	token.PLUS_PLUS:       POSTFIX,
	token.MINUS_MINUS:     POSTFIX,
	token.LPAREN:          CALL,
	token.PERIOD:          MEMBER,
	token.LBRACKET:        MEMBER,
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}
