package phpparse

import (
	"strings"

	"github.com/phpray/phpray/internal/phpast"
	"github.com/phpray/phpray/internal/phplex"
	"github.com/phpray/phpray/internal/source"
)

func (p *Parser) parseStmt() phpast.Stmt {
	switch p.tok.Kind {
	case phplex.SEMI:
		sp := p.tok.Span
		p.advance()
		return &phpast.NopStmt{Span_: sp}
	case phplex.LBRACE:
		return p.parseBlock()
	case phplex.KW_ECHO:
		return p.parseEcho()
	case phplex.KW_RETURN:
		return p.parseReturn()
	case phplex.KW_IF:
		return p.parseIf()
	case phplex.KW_WHILE:
		return p.parseWhile()
	case phplex.KW_FOREACH:
		return p.parseForeach()
	case phplex.KW_FUNCTION:
		return p.parseFuncDecl(false)
	case phplex.KW_ABSTRACT, phplex.KW_FINAL, phplex.KW_CLASS, phplex.KW_INTERFACE, phplex.KW_TRAIT, phplex.KW_ENUM:
		return p.parseClassDecl()
	case phplex.KW_THROW:
		return p.parseThrow()
	case phplex.KW_BREAK:
		return p.parseBreakContinue(true)
	case phplex.KW_CONTINUE:
		return p.parseBreakContinue(false)
	case phplex.KW_GLOBAL:
		return p.parseGlobal()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseBlock() *phpast.BlockStmt {
	start := p.expect(phplex.LBRACE, "'{'")
	var stmts []phpast.Stmt
	for p.tok.Kind != phplex.RBRACE && p.tok.Kind != phplex.EOF {
		s := p.parseStmt()
		if s != nil {
			stmts = append(stmts, s)
		}
	}
	end := p.tok.Span
	p.expect(phplex.RBRACE, "'}'")
	return &phpast.BlockStmt{Span_: start.Cover(end), Stmts: stmts}
}

// stmtOrBlock parses either a brace block or a single statement, the way
// PHP allows `if (cond) stmt;` without braces.
func (p *Parser) stmtOrBlock() phpast.Stmt {
	if p.tok.Kind == phplex.LBRACE {
		return p.parseBlock()
	}
	return p.parseStmt()
}

func (p *Parser) parseEcho() *phpast.EchoStmt {
	start := p.tok.Span
	p.advance()
	exprs := []phpast.Expr{p.parseExpr()}
	for p.tok.Kind == phplex.COMMA {
		p.advance()
		exprs = append(exprs, p.parseExpr())
	}
	end := p.tok.Span
	p.expect(phplex.SEMI, "';'")
	return &phpast.EchoStmt{Span_: start.Cover(end), Exprs: exprs}
}

func (p *Parser) parseReturn() *phpast.ReturnStmt {
	start := p.tok.Span
	p.advance()
	var val phpast.Expr
	if p.tok.Kind != phplex.SEMI {
		val = p.parseExpr()
	}
	end := p.tok.Span
	p.expect(phplex.SEMI, "';'")
	return &phpast.ReturnStmt{Span_: start.Cover(end), Value: val}
}

func (p *Parser) parseIf() *phpast.IfStmt {
	start := p.tok.Span
	p.advance()
	p.expect(phplex.LPAREN, "'('")
	cond := p.parseExpr()
	p.expect(phplex.RPAREN, "')'")
	then := p.stmtOrBlock()
	stmt := &phpast.IfStmt{Cond: cond, Then: then}
	for p.tok.Kind == phplex.KW_ELSEIF {
		eiStart := p.tok.Span
		p.advance()
		p.expect(phplex.LPAREN, "'('")
		eiCond := p.parseExpr()
		p.expect(phplex.RPAREN, "')'")
		eiThen := p.stmtOrBlock()
		stmt.ElseIfs = append(stmt.ElseIfs, phpast.ElseIf{Span_: eiStart.Cover(eiThen.Span()), Cond: eiCond, Then: eiThen})
	}
	end := then.Span()
	if len(stmt.ElseIfs) > 0 {
		end = stmt.ElseIfs[len(stmt.ElseIfs)-1].Span()
	}
	if p.tok.Kind == phplex.KW_ELSE {
		p.advance()
		stmt.Else = p.stmtOrBlock()
		end = stmt.Else.Span()
	}
	stmt.Span_ = start.Cover(end)
	return stmt
}

func (p *Parser) parseWhile() *phpast.WhileStmt {
	start := p.tok.Span
	p.advance()
	p.expect(phplex.LPAREN, "'('")
	cond := p.parseExpr()
	p.expect(phplex.RPAREN, "')'")
	body := p.stmtOrBlock()
	return &phpast.WhileStmt{Span_: start.Cover(body.Span()), Cond: cond, Body: body}
}

func (p *Parser) parseForeach() *phpast.ForeachStmt {
	start := p.tok.Span
	p.advance()
	p.expect(phplex.LPAREN, "'('")
	expr := p.parseExpr()
	p.expect(phplex.KW_AS, "'as'")
	byRef := false
	if p.tok.Kind == phplex.AMP {
		byRef = true
		p.advance()
	}
	first := p.parseExpr()
	var key, value phpast.Expr
	if p.tok.Kind == phplex.FAT_ARROW {
		p.advance()
		if p.tok.Kind == phplex.AMP {
			byRef = true
			p.advance()
		}
		key = first
		value = p.parseExpr()
	} else {
		value = first
	}
	p.expect(phplex.RPAREN, "')'")
	body := p.stmtOrBlock()
	return &phpast.ForeachStmt{Span_: start.Cover(body.Span()), Expr: expr, Key: key, Value: value, ByRef: byRef, Body: body}
}

func (p *Parser) parseThrow() *phpast.ThrowStmt {
	start := p.tok.Span
	p.advance()
	val := p.parseExpr()
	end := p.tok.Span
	p.expect(phplex.SEMI, "';'")
	return &phpast.ThrowStmt{Span_: start.Cover(end), Value: val}
}

func (p *Parser) parseBreakContinue(isBreak bool) phpast.Stmt {
	start := p.tok.Span
	p.advance()
	level := 1
	if p.tok.Kind == phplex.INT_LIT {
		level = atoiSafe(p.tok.Text)
		p.advance()
	}
	end := p.tok.Span
	p.expect(phplex.SEMI, "';'")
	sp := start.Cover(end)
	if isBreak {
		return &phpast.BreakStmt{Span_: sp, Level: level}
	}
	return &phpast.ContinueStmt{Span_: sp, Level: level}
}

func (p *Parser) parseGlobal() *phpast.GlobalStmt {
	start := p.tok.Span
	p.advance()
	var names []string
	names = append(names, p.tok.Text)
	p.expect(phplex.VARIABLE, "variable")
	for p.tok.Kind == phplex.COMMA {
		p.advance()
		names = append(names, p.tok.Text)
		p.expect(phplex.VARIABLE, "variable")
	}
	end := p.tok.Span
	p.expect(phplex.SEMI, "';'")
	return &phpast.GlobalStmt{Span_: start.Cover(end), Names: names}
}

func (p *Parser) parseExprStmt() *phpast.ExprStmt {
	start := p.tok.Span
	x := p.parseExpr()
	end := p.tok.Span
	p.expect(phplex.SEMI, "';'")
	return &phpast.ExprStmt{Span_: start.Cover(end), X: x}
}

func (p *Parser) parseFuncDecl(isMethod bool) *phpast.FuncDecl {
	start := p.tok.Span
	p.advance() // 'function'
	byRefReturn := false
	if p.tok.Kind == phplex.AMP {
		byRefReturn = true
		p.advance()
	}
	name := p.tok.Text
	p.advance()
	p.expect(phplex.LPAREN, "'('")
	var params []phpast.Param
	for p.tok.Kind != phplex.RPAREN && p.tok.Kind != phplex.EOF {
		params = append(params, p.parseParam())
		if p.tok.Kind == phplex.COMMA {
			p.advance()
		} else {
			break
		}
	}
	p.expect(phplex.RPAREN, "')'")
	var retType phpast.TypeExpr
	if p.tok.Kind == phplex.COLON {
		p.advance()
		retType = p.parseType()
	}
	var body *phpast.BlockStmt
	end := p.tok.Span
	if p.tok.Kind == phplex.LBRACE {
		body = p.parseBlock()
		end = body.Span()
	} else {
		p.expect(phplex.SEMI, "';'")
	}
	return &phpast.FuncDecl{
		Span_:       start.Cover(end),
		Name:        name,
		Params:      params,
		ReturnType:  retType,
		Body:        body,
		ByRefReturn: byRefReturn,
		IsMethod:    isMethod,
	}
}

func (p *Parser) parseParam() phpast.Param {
	start := p.tok.Span
	promoted := ""
	for p.tok.Kind == phplex.KW_PUBLIC || p.tok.Kind == phplex.KW_PROTECTED || p.tok.Kind == phplex.KW_PRIVATE || p.tok.Kind == phplex.KW_READONLY {
		if p.tok.Kind != phplex.KW_READONLY {
			promoted = p.tok.Text
		}
		p.advance()
	}
	var typ phpast.TypeExpr
	if p.tok.Kind != phplex.VARIABLE && p.tok.Kind != phplex.AMP && p.tok.Kind != phplex.ELLIPSIS {
		typ = p.parseType()
	}
	byRef := false
	if p.tok.Kind == phplex.AMP {
		byRef = true
		p.advance()
	}
	variadic := false
	if p.tok.Kind == phplex.ELLIPSIS {
		variadic = true
		p.advance()
	}
	name := p.tok.Text
	p.expect(phplex.VARIABLE, "variable")
	var def phpast.Expr
	if p.tok.Kind == phplex.ASSIGN {
		p.advance()
		def = p.parseExpr()
	}
	end := p.tok.Span
	return phpast.Param{Span_: start.Cover(end), Name: name, Type: typ, Default: def, ByRef: byRef, Variadic: variadic, Promoted: promoted}
}

func (p *Parser) parseType() phpast.TypeExpr {
	start := p.tok.Span
	nullable := false
	if p.tok.Kind == phplex.QUESTION {
		nullable = true
		p.advance()
	}
	first := p.parseSimpleType()
	var t phpast.TypeExpr = first
	if p.tok.Kind == phplex.PIPE {
		members := []phpast.TypeExpr{first}
		for p.tok.Kind == phplex.PIPE {
			p.advance()
			members = append(members, p.parseSimpleType())
		}
		t = &phpast.UnionType{Span_: start.Cover(members[len(members)-1].Span()), Members: members}
	} else if p.tok.Kind == phplex.AMP && p.peekNext().Kind != phplex.VARIABLE && p.peekNext().Kind != phplex.ELLIPSIS {
		members := []phpast.TypeExpr{first}
		for p.tok.Kind == phplex.AMP {
			p.advance()
			members = append(members, p.parseSimpleType())
		}
		t = &phpast.IntersectionType{Span_: start.Cover(members[len(members)-1].Span()), Members: members}
	}
	if nullable {
		return &phpast.NullableType{Span_: start.Cover(t.Span()), Inner: t}
	}
	return t
}

func (p *Parser) parseSimpleType() *phpast.SimpleType {
	start := p.tok.Span
	n := p.parseName()
	return &phpast.SimpleType{Span_: start.Cover(n.Span()), Name: n}
}

func (p *Parser) parseName() *phpast.Name {
	start := p.tok.Span
	qualified := false
	if p.tok.Kind == phplex.BACKSLASH {
		qualified = true
		p.advance()
	}
	var parts []string
	parts = append(parts, p.tok.Text)
	end := p.tok.Span
	p.advance()
	for p.tok.Kind == phplex.BACKSLASH {
		p.advance()
		parts = append(parts, p.tok.Text)
		end = p.tok.Span
		p.advance()
	}
	return &phpast.Name{Span_: start.Cover(end), Parts: parts, Qualified: qualified}
}

func (p *Parser) parseClassDecl() *phpast.ClassDecl {
	start := p.tok.Span
	abstract, final := false, false
	for p.tok.Kind == phplex.KW_ABSTRACT || p.tok.Kind == phplex.KW_FINAL {
		if p.tok.Kind == phplex.KW_ABSTRACT {
			abstract = true
		} else {
			final = true
		}
		p.advance()
	}
	kind := "class"
	switch p.tok.Kind {
	case phplex.KW_INTERFACE:
		kind = "interface"
	case phplex.KW_TRAIT:
		kind = "trait"
	case phplex.KW_ENUM:
		kind = "enum"
	}
	p.advance()
	name := p.tok.Text
	p.advance()
	decl := &phpast.ClassDecl{Kind: kind, Name: name, Abstract: abstract, Final: final}
	if p.tok.Kind == phplex.KW_EXTENDS {
		p.advance()
		decl.Extends = append(decl.Extends, p.parseName())
		for p.tok.Kind == phplex.COMMA {
			p.advance()
			decl.Extends = append(decl.Extends, p.parseName())
		}
	}
	if p.tok.Kind == phplex.KW_IMPLEMENTS {
		p.advance()
		decl.Implements = append(decl.Implements, p.parseName())
		for p.tok.Kind == phplex.COMMA {
			p.advance()
			decl.Implements = append(decl.Implements, p.parseName())
		}
	}
	p.expect(phplex.LBRACE, "'{'")
	for p.tok.Kind != phplex.RBRACE && p.tok.Kind != phplex.EOF {
		p.parseClassMember(decl)
	}
	end := p.tok.Span
	p.expect(phplex.RBRACE, "'}'")
	decl.Span_ = start.Cover(end)
	return decl
}

func (p *Parser) parseClassMember(decl *phpast.ClassDecl) {
	start := p.tok.Span
	var mods []string
	for isMemberModifier(p.tok.Kind) {
		mods = append(mods, strings.ToLower(p.tok.Text))
		p.advance()
	}
	switch p.tok.Kind {
	case phplex.KW_FUNCTION:
		m := p.parseFuncDecl(true)
		m.Modifiers = mods
		m.Span_ = start.Cover(m.Span_)
		decl.Methods = append(decl.Methods, m)
	case phplex.KW_CONST:
		p.advance()
		for {
			cStart := p.tok.Span
			cname := p.tok.Text
			p.advance()
			p.expect(phplex.ASSIGN, "'='")
			val := p.parseExpr()
			decl.Consts = append(decl.Consts, phpast.ClassConst{Span_: cStart.Cover(val.Span()), Name: cname, Value: val})
			if p.tok.Kind == phplex.COMMA {
				p.advance()
				continue
			}
			break
		}
		p.expect(phplex.SEMI, "';'")
	default:
		var typ phpast.TypeExpr
		if p.tok.Kind != phplex.VARIABLE {
			typ = p.parseType()
		}
		for {
			pname := p.tok.Text
			pstart := p.tok.Span
			p.expect(phplex.VARIABLE, "variable")
			var def phpast.Expr
			end := p.tok.Span
			if p.tok.Kind == phplex.ASSIGN {
				p.advance()
				def = p.parseExpr()
				end = def.Span()
			}
			decl.Properties = append(decl.Properties, &phpast.PropertyDecl{
				Span_: pstart.Cover(end), Name: pname, Type: typ, Default: def, Modifiers: mods,
			})
			if p.tok.Kind == phplex.COMMA {
				p.advance()
				continue
			}
			break
		}
		p.expect(phplex.SEMI, "';'")
	}
}

func isMemberModifier(k phplex.Kind) bool {
	switch k {
	case phplex.KW_PUBLIC, phplex.KW_PROTECTED, phplex.KW_PRIVATE, phplex.KW_STATIC, phplex.KW_ABSTRACT, phplex.KW_FINAL, phplex.KW_READONLY:
		return true
	}
	return false
}

func atoiSafe(s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
	}
	if n == 0 {
		return 1
	}
	return n
}
