package phplex

import (
	"strings"

	"github.com/phpray/phpray/internal/source"
)

// Lexer scans one file's content into a Token stream. It is not
// concurrency-safe; the engine allocates one Lexer per file per pass
// (spec §5: parsing is embarrassingly parallel across files).
type Lexer struct {
	file    source.FileID
	src     []byte
	pos     int
	inPHP   bool
}

// New returns a Lexer over src, which starts outside a `<?php` block
// exactly like real PHP source (anything before the first open tag is
// inline HTML).
func New(file source.FileID, src []byte) *Lexer {
	return &Lexer{file: file, src: src}
}

func (l *Lexer) span(start, end int) source.Span {
	return source.Span{File: l.file, Start: uint32(start), End: uint32(end)}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

// Next returns the next token, terminating with an EOF token once the
// input is exhausted. Callers should stop after receiving EOF.
func (l *Lexer) Next() Token {
	if !l.inPHP {
		return l.lexInlineHTML()
	}
	l.skipWhitespaceAndComments()
	start := l.pos
	if l.pos >= len(l.src) {
		return Token{Kind: EOF, Span: l.span(start, start)}
	}
	c := l.peek()
	switch {
	case c == '?' && l.peekAt(1) == '>':
		l.pos += 2
		l.inPHP = false
		return Token{Kind: CLOSE_TAG, Text: "?>", Span: l.span(start, l.pos)}
	case c == '$':
		return l.lexVariable()
	case isDigit(c):
		return l.lexNumber()
	case c == '\'' || c == '"':
		return l.lexString(c)
	case isIdentStart(c):
		return l.lexIdentOrKeyword()
	default:
		return l.lexOperator()
	}
}

func (l *Lexer) lexInlineHTML() Token {
	start := l.pos
	for l.pos < len(l.src) {
		if l.peek() == '<' && l.peekAt(1) == '?' {
			break
		}
		l.pos++
	}
	if l.pos > start {
		return Token{Kind: INLINE_HTML, Text: string(l.src[start:l.pos]), Span: l.span(start, l.pos)}
	}
	// at an open tag (or EOF with no inline html)
	if l.pos >= len(l.src) {
		return Token{Kind: EOF, Span: l.span(l.pos, l.pos)}
	}
	openStart := l.pos
	if strings.HasPrefix(string(l.src[l.pos:min(l.pos+5, len(l.src))]), "<?php") {
		l.pos += 5
	} else if strings.HasPrefix(string(l.src[l.pos:min(l.pos+3, len(l.src))]), "<?=") {
		l.pos += 3
	} else {
		l.pos += 2
	}
	l.inPHP = true
	return Token{Kind: OPEN_TAG, Text: string(l.src[openStart:l.pos]), Span: l.span(openStart, l.pos)}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.src) {
		c := l.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.pos++
		case c == '/' && l.peekAt(1) == '/':
			for l.pos < len(l.src) && l.peek() != '\n' {
				if l.peek() == '?' && l.peekAt(1) == '>' {
					return
				}
				l.pos++
			}
		case c == '#' && l.peekAt(1) != '[':
			for l.pos < len(l.src) && l.peek() != '\n' {
				l.pos++
			}
		case c == '/' && l.peekAt(1) == '*':
			l.pos += 2
			for l.pos < len(l.src) && !(l.peek() == '*' && l.peekAt(1) == '/') {
				l.pos++
			}
			if l.pos < len(l.src) {
				l.pos += 2
			}
		default:
			return
		}
	}
}

func (l *Lexer) lexVariable() Token {
	start := l.pos
	l.pos++ // consume '$'
	nameStart := l.pos
	for l.pos < len(l.src) && isIdentPart(l.peek()) {
		l.pos++
	}
	return Token{Kind: VARIABLE, Text: string(l.src[nameStart:l.pos]), Span: l.span(start, l.pos)}
}

func (l *Lexer) lexNumber() Token {
	start := l.pos
	isFloat := false
	for l.pos < len(l.src) && (isDigit(l.peek()) || l.peek() == '_') {
		l.pos++
	}
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		isFloat = true
		l.pos++
		for l.pos < len(l.src) && (isDigit(l.peek()) || l.peek() == '_') {
			l.pos++
		}
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		isFloat = true
		l.pos++
		if l.peek() == '+' || l.peek() == '-' {
			l.pos++
		}
		for l.pos < len(l.src) && isDigit(l.peek()) {
			l.pos++
		}
	}
	kind := INT_LIT
	if isFloat {
		kind = FLOAT_LIT
	}
	return Token{Kind: kind, Text: string(l.src[start:l.pos]), Span: l.span(start, l.pos)}
}

func (l *Lexer) lexString(quote byte) Token {
	start := l.pos
	l.pos++
	for l.pos < len(l.src) && l.peek() != quote {
		if l.peek() == '\\' && l.pos+1 < len(l.src) {
			l.pos += 2
			continue
		}
		l.pos++
	}
	if l.pos < len(l.src) {
		l.pos++ // consume closing quote
	}
	return Token{Kind: STRING_LIT, Text: string(l.src[start:l.pos]), Span: l.span(start, l.pos)}
}

func (l *Lexer) lexIdentOrKeyword() Token {
	start := l.pos
	for l.pos < len(l.src) && isIdentPart(l.peek()) {
		l.pos++
	}
	text := string(l.src[start:l.pos])
	kind := LookupIdent(strings.ToLower(text))
	return Token{Kind: kind, Text: text, Span: l.span(start, l.pos)}
}

func (l *Lexer) lexOperator() Token {
	start := l.pos
	three := l.take3()
	if k, ok := threeCharOps[three]; ok {
		l.pos += 3
		return Token{Kind: k, Text: three, Span: l.span(start, l.pos)}
	}
	two := l.take2()
	if k, ok := twoCharOps[two]; ok {
		l.pos += 2
		return Token{Kind: k, Text: two, Span: l.span(start, l.pos)}
	}
	c := l.peek()
	if k, ok := oneCharOps[c]; ok {
		l.pos++
		return Token{Kind: k, Text: string(c), Span: l.span(start, l.pos)}
	}
	l.pos++
	return Token{Kind: ILLEGAL, Text: string(c), Span: l.span(start, l.pos)}
}

func (l *Lexer) take2() string {
	if l.pos+2 > len(l.src) {
		return string(l.src[l.pos:])
	}
	return string(l.src[l.pos : l.pos+2])
}

func (l *Lexer) take3() string {
	if l.pos+3 > len(l.src) {
		return ""
	}
	return string(l.src[l.pos : l.pos+3])
}

var threeCharOps = map[string]Kind{
	"===":  IDENTICAL,
	"!==":  NOT_IDENTICAL,
	"<=>":  SPACESHIP,
	"??=":  COALESCE_ASSIGN,
	"...":  ELLIPSIS,
	"?->":  NULLSAFE_ARROW,
}

var twoCharOps = map[string]Kind{
	"+=": PLUS_ASSIGN,
	"-=": MINUS_ASSIGN,
	"*=": STAR_ASSIGN,
	"/=": SLASH_ASSIGN,
	".=": DOT_ASSIGN,
	"==": EQ,
	"!=": NEQ,
	"<>": NEQ,
	"<=": LE,
	">=": GE,
	"&&": AND_AND,
	"||": OR_OR,
	"->": ARROW,
	"::": DOUBLE_COLON,
	"=>": FAT_ARROW,
	"??": COALESCE,
	"++": INC,
	"--": DEC,
	"**": POW,
}

var oneCharOps = map[byte]Kind{
	'+': PLUS,
	'-': MINUS,
	'*': STAR,
	'/': SLASH,
	'%': PERCENT,
	'.': DOT,
	'=': ASSIGN,
	'<': LT,
	'>': GT,
	'!': NOT,
	'&': AMP,
	'|': PIPE,
	'^': CARET,
	'~': TILDE,
	'?': QUESTION,
	':': COLON,
	';': SEMI,
	',': COMMA,
	'(': LPAREN,
	')': RPAREN,
	'{': LBRACE,
	'}': RBRACE,
	'[': LBRACKET,
	']': RBRACKET,
	'\\': BACKSLASH,
	'$':  DOLLAR,
}

func isDigit(c byte) bool      { return c >= '0' && c <= '9' }
func isIdentStart(c byte) bool { return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80 }
func isIdentPart(c byte) bool  { return isIdentStart(c) || isDigit(c) }

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
