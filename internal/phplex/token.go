// Package phplex tokenizes PHP source text into a flat stream of spanned
// tokens for phpparse to consume. Grounded on the token-kind/keyword-table
// layout used by PHP lexers in the example pack, adapted to carry
// source.Span instead of a standalone line/column position.
package phplex

import "github.com/phpray/phpray/internal/source"

// Kind identifies a token's lexical category.
type Kind int

const (
	ILLEGAL Kind = iota
	EOF

	INT_LIT
	FLOAT_LIT
	STRING_LIT
	IDENT
	VARIABLE // $name, Text excludes the '$'

	// keywords
	KW_ABSTRACT
	KW_AND
	KW_ARRAY
	KW_AS
	KW_BREAK
	KW_CASE
	KW_CATCH
	KW_CLASS
	KW_CLONE
	KW_CONST
	KW_CONTINUE
	KW_DEFAULT
	KW_ECHO
	KW_ELSE
	KW_ELSEIF
	KW_ENUM
	KW_EXTENDS
	KW_FINAL
	KW_FOR
	KW_FOREACH
	KW_FUNCTION
	KW_GLOBAL
	KW_IF
	KW_IMPLEMENTS
	KW_INSTANCEOF
	KW_INTERFACE
	KW_ISSET
	KW_NAMESPACE
	KW_NEW
	KW_NULL
	KW_OR
	KW_PRIVATE
	KW_PROTECTED
	KW_PUBLIC
	KW_READONLY
	KW_RETURN
	KW_STATIC
	KW_THROW
	KW_TRAIT
	KW_TRUE
	KW_FALSE
	KW_TRY
	KW_USE
	KW_WHILE
	KW_XOR

	// punctuation / operators
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	POW
	DOT
	ASSIGN
	PLUS_ASSIGN
	MINUS_ASSIGN
	STAR_ASSIGN
	SLASH_ASSIGN
	DOT_ASSIGN
	COALESCE_ASSIGN
	EQ
	IDENTICAL
	NEQ
	NOT_IDENTICAL
	LT
	LE
	GT
	GE
	SPACESHIP
	AND_AND
	OR_OR
	NOT
	AMP
	PIPE
	CARET
	TILDE
	QUESTION
	COLON
	COALESCE
	SEMI
	COMMA
	ARROW        // ->
	NULLSAFE_ARROW // ?->
	DOUBLE_COLON // ::
	FAT_ARROW    // =>
	ELLIPSIS
	INC
	DEC
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	BACKSLASH
	DOLLAR

	OPEN_TAG  // <?php or <?=
	CLOSE_TAG // ?>
	INLINE_HTML
)

var keywords = map[string]Kind{
	"abstract":   KW_ABSTRACT,
	"and":        KW_AND,
	"array":      KW_ARRAY,
	"as":         KW_AS,
	"break":      KW_BREAK,
	"case":       KW_CASE,
	"catch":      KW_CATCH,
	"class":      KW_CLASS,
	"clone":      KW_CLONE,
	"const":      KW_CONST,
	"continue":   KW_CONTINUE,
	"default":    KW_DEFAULT,
	"echo":       KW_ECHO,
	"else":       KW_ELSE,
	"elseif":     KW_ELSEIF,
	"enum":       KW_ENUM,
	"extends":    KW_EXTENDS,
	"final":      KW_FINAL,
	"for":        KW_FOR,
	"foreach":    KW_FOREACH,
	"function":   KW_FUNCTION,
	"global":     KW_GLOBAL,
	"if":         KW_IF,
	"implements": KW_IMPLEMENTS,
	"instanceof": KW_INSTANCEOF,
	"interface":  KW_INTERFACE,
	"isset":      KW_ISSET,
	"namespace":  KW_NAMESPACE,
	"new":        KW_NEW,
	"null":       KW_NULL,
	"or":         KW_OR,
	"private":    KW_PRIVATE,
	"protected":  KW_PROTECTED,
	"public":     KW_PUBLIC,
	"readonly":   KW_READONLY,
	"return":     KW_RETURN,
	"static":     KW_STATIC,
	"throw":      KW_THROW,
	"trait":      KW_TRAIT,
	"true":       KW_TRUE,
	"false":      KW_FALSE,
	"try":        KW_TRY,
	"use":        KW_USE,
	"while":      KW_WHILE,
	"xor":        KW_XOR,
}

// LookupIdent returns ident's keyword Kind, or IDENT if it's not one.
// PHP keywords are case-insensitive; the caller passes the lowercased text.
func LookupIdent(lower string) Kind {
	if k, ok := keywords[lower]; ok {
		return k
	}
	return IDENT
}

// Token is one lexeme with its source span.
type Token struct {
	Kind Kind
	Text string
	Span source.Span
}
