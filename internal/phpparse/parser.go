// Package phpparse builds a phpast.File from a phplex.Token stream using
// recursive descent with precedence climbing for expressions, in the
// structure PHP implementations commonly use (statement dispatch by
// leading keyword, expression precedence table for the rest).
package phpparse

import (
	"fmt"

	"github.com/phpray/phpray/internal/diag"
	"github.com/phpray/phpray/internal/phpast"
	"github.com/phpray/phpray/internal/phplex"
	"github.com/phpray/phpray/internal/source"
)

// Parser consumes a token stream for a single file and builds its CST.
// A Parser is single-use: create one per file per parse.
type Parser struct {
	file   source.FileID
	lex    *phplex.Lexer
	tok    phplex.Token
	peeked *phplex.Token
	errs   []diag.Diagnostic
}

// New creates a Parser over src for the given file ID.
func New(file source.FileID, src []byte) *Parser {
	p := &Parser{file: file, lex: phplex.New(file, src)}
	p.advance()
	return p
}

// Errors returns the parse-error diagnostics accumulated during Parse.
// A syntax error does not abort parsing (spec §4.2: a malformed file still
// yields partial diagnostics for the statements that did parse).
func (p *Parser) Errors() []diag.Diagnostic { return p.errs }

// Parse consumes the whole token stream and returns the resulting file.
func (p *Parser) Parse() *phpast.File {
	start := p.tok.Span
	var stmts []phpast.Stmt
	for p.tok.Kind != phplex.EOF {
		if p.tok.Kind == phplex.INLINE_HTML || p.tok.Kind == phplex.OPEN_TAG || p.tok.Kind == phplex.CLOSE_TAG {
			p.advance()
			continue
		}
		s := p.parseStmt()
		if s != nil {
			stmts = append(stmts, s)
		}
	}
	end := p.tok.Span
	return &phpast.File{Span_: start.Cover(end), File: p.file, Statements: stmts}
}

func (p *Parser) advance() {
	if p.peeked != nil {
		p.tok = *p.peeked
		p.peeked = nil
		return
	}
	p.tok = p.lex.Next()
}

func (p *Parser) peekNext() phplex.Token {
	if p.peeked == nil {
		t := p.lex.Next()
		p.peeked = &t
	}
	return *p.peeked
}

func (p *Parser) errorf(sp source.Span, format string, args ...any) {
	p.errs = append(p.errs, diag.Diagnostic{
		Location:   diag.Location{Span: sp},
		Severity:   diag.SevError,
		Identifier: diag.CodeParseError,
		Message:    fmt.Sprintf(format, args...),
	})
}

func (p *Parser) expect(k phplex.Kind, what string) source.Span {
	sp := p.tok.Span
	if p.tok.Kind != k {
		p.errorf(p.tok.Span, "expected %s, found %q", what, p.tok.Text)
		return sp
	}
	p.advance()
	return sp
}

// syncTo advances past tokens until it sees one of the given kinds (or
// EOF), so a single malformed statement doesn't cascade into endless
// spurious errors for the rest of the file.
func (p *Parser) syncTo(kinds ...phplex.Kind) {
	for p.tok.Kind != phplex.EOF {
		for _, k := range kinds {
			if p.tok.Kind == k {
				return
			}
		}
		p.advance()
	}
}
