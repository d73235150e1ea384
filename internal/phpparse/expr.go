package phpparse

import (
	"strconv"
	"strings"

	"github.com/phpray/phpray/internal/phpast"
	"github.com/phpray/phpray/internal/phplex"
	"github.com/phpray/phpray/internal/source"
)

// precedence levels, lowest to highest. PHP's `and`/`or` bind looser than
// `=` but are rare enough in modern code that we give them the same tiers
// as `&&`/`||` rather than modeling the full legacy table; `xor` is not
// parsed as an operator.
const (
	precNone = iota
	precAssign
	precCoalesce
	precTernary
	precLogicalOr
	precLogicalAnd
	precBitwiseOr
	precBitwiseXor
	precBitwiseAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precInstanceof
	precUnary
	precPow
	precPostfix
)

var binPrec = map[phplex.Kind]int{
	phplex.OR_OR:     precLogicalOr,
	phplex.KW_OR:     precLogicalOr,
	phplex.AND_AND:   precLogicalAnd,
	phplex.KW_AND:    precLogicalAnd,
	phplex.PIPE:      precBitwiseOr,
	phplex.CARET:     precBitwiseXor,
	phplex.AMP:       precBitwiseAnd,
	phplex.EQ:        precEquality,
	phplex.NEQ:       precEquality,
	phplex.IDENTICAL: precEquality,
	phplex.NOT_IDENTICAL: precEquality,
	phplex.SPACESHIP: precEquality,
	phplex.LT:        precRelational,
	phplex.LE:        precRelational,
	phplex.GT:        precRelational,
	phplex.GE:        precRelational,
	phplex.PLUS:      precAdditive,
	phplex.MINUS:     precAdditive,
	phplex.DOT:       precAdditive,
	phplex.STAR:      precMultiplicative,
	phplex.SLASH:     precMultiplicative,
	phplex.PERCENT:   precMultiplicative,
}

var assignOps = map[phplex.Kind]string{
	phplex.ASSIGN:          "=",
	phplex.PLUS_ASSIGN:     "+",
	phplex.MINUS_ASSIGN:    "-",
	phplex.STAR_ASSIGN:     "*",
	phplex.SLASH_ASSIGN:    "/",
	phplex.DOT_ASSIGN:      ".",
	phplex.COALESCE_ASSIGN: "??",
}

func (p *Parser) parseExpr() phpast.Expr {
	return p.parseAssign()
}

func (p *Parser) parseAssign() phpast.Expr {
	left := p.parseTernary()
	if op, ok := assignOps[p.tok.Kind]; ok {
		p.advance()
		byRef := false
		if p.tok.Kind == phplex.AMP {
			byRef = true
			p.advance()
		}
		rhs := p.parseAssign()
		return &phpast.Assign{Span_: left.Span().Cover(rhs.Span()), Op: op, Lhs: left, Rhs: rhs, ByRef: byRef}
	}
	return left
}

func (p *Parser) parseTernary() phpast.Expr {
	cond := p.parseCoalesce()
	if p.tok.Kind == phplex.QUESTION {
		p.advance()
		var then phpast.Expr
		if p.tok.Kind != phplex.COLON {
			then = p.parseExpr()
		}
		p.expect(phplex.COLON, "':'")
		els := p.parseAssign()
		return &phpast.Ternary{Span_: cond.Span().Cover(els.Span()), Cond: cond, Then: then, Else: els}
	}
	return cond
}

func (p *Parser) parseCoalesce() phpast.Expr {
	left := p.parseBinary(precLogicalOr)
	if p.tok.Kind == phplex.COALESCE {
		p.advance()
		right := p.parseCoalesce() // right-associative
		return &phpast.Binary{Span_: left.Span().Cover(right.Span()), Op: "??", Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseBinary(minPrec int) phpast.Expr {
	left := p.parseInstanceofExpr()
	for {
		prec, ok := binPrec[p.tok.Kind]
		if !ok || prec < minPrec {
			return left
		}
		op := p.tok.Text
		p.advance()
		right := p.parseBinaryAtLeast(prec + 1)
		left = &phpast.Binary{Span_: left.Span().Cover(right.Span()), Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseBinaryAtLeast(minPrec int) phpast.Expr {
	return p.parseBinary(minPrec)
}

func (p *Parser) parseInstanceofExpr() phpast.Expr {
	left := p.parseUnary()
	for p.tok.Kind == phplex.KW_INSTANCEOF {
		p.advance()
		class := p.parseUnary()
		left = &phpast.InstanceOf{Span_: left.Span().Cover(class.Span()), Expr: left, Class: class}
	}
	return left
}

func (p *Parser) parseUnary() phpast.Expr {
	switch p.tok.Kind {
	case phplex.NOT, phplex.MINUS, phplex.PLUS, phplex.TILDE, phplex.INC, phplex.DEC, phplex.AMP:
		start := p.tok.Span
		op := p.tok.Text
		p.advance()
		operand := p.parseUnary()
		return &phpast.Unary{Span_: start.Cover(operand.Span()), Op: op, Prefix: true, Operand: operand}
	default:
		return p.parsePow()
	}
}

func (p *Parser) parsePow() phpast.Expr {
	base := p.parsePostfix()
	if p.tok.Kind == phplex.POW {
		p.advance()
		exp := p.parseUnary() // right-associative
		return &phpast.Binary{Span_: base.Span().Cover(exp.Span()), Op: "**", Left: base, Right: exp}
	}
	return base
}

func (p *Parser) parsePostfix() phpast.Expr {
	expr := p.parsePrimary()
	for {
		switch p.tok.Kind {
		case phplex.ARROW:
			p.advance()
			name := p.tok.Text
			nameSpan := p.tok.Span
			p.advance()
			if p.tok.Kind == phplex.LPAREN {
				args, end := p.parseArgs()
				expr = &phpast.MethodCall{Span_: expr.Span().Cover(end), Object: expr, Method: name, Args: args}
			} else {
				expr = &phpast.PropertyFetch{Span_: expr.Span().Cover(nameSpan), Object: expr, Property: name}
			}
		case phplex.NULLSAFE_ARROW:
			p.advance()
			name := p.tok.Text
			nameSpan := p.tok.Span
			p.advance()
			if p.tok.Kind == phplex.LPAREN {
				args, end := p.parseArgs()
				expr = &phpast.MethodCall{Span_: expr.Span().Cover(end), Object: expr, Method: name, Nullsafe: true, Args: args}
			} else {
				expr = &phpast.NullsafePropertyFetch{Span_: expr.Span().Cover(nameSpan), Object: expr, Property: name}
			}
		case phplex.DOUBLE_COLON:
			p.advance()
			switch p.tok.Kind {
			case phplex.VARIABLE:
				name := p.tok.Text
				nameSpan := p.tok.Span
				p.advance()
				expr = &phpast.StaticPropertyFetch{Span_: expr.Span().Cover(nameSpan), Class: expr, Property: name}
			default:
				name := p.tok.Text
				nameSpan := p.tok.Span
				p.advance()
				if p.tok.Kind == phplex.LPAREN {
					args, end := p.parseArgs()
					expr = &phpast.StaticCall{Span_: expr.Span().Cover(end), Class: expr, Method: name, Args: args}
				} else {
					expr = &phpast.ClassConstFetch{Span_: expr.Span().Cover(nameSpan), Class: expr, Const: name}
				}
			}
		case phplex.LBRACKET:
			p.advance()
			var key phpast.Expr
			if p.tok.Kind != phplex.RBRACKET {
				key = p.parseExpr()
			}
			end := p.tok.Span
			p.expect(phplex.RBRACKET, "']'")
			expr = &phpast.Index{Span_: expr.Span().Cover(end), Array: expr, Key: key}
		case phplex.LPAREN:
			args, end := p.parseArgs()
			expr = &phpast.Call{Span_: expr.Span().Cover(end), Callee: expr, Args: args}
		case phplex.INC, phplex.DEC:
			op := p.tok.Text
			end := p.tok.Span
			p.advance()
			expr = &phpast.Unary{Span_: expr.Span().Cover(end), Op: op, Prefix: false, Operand: expr}
		default:
			return expr
		}
	}
}

func (p *Parser) parseArgs() ([]phpast.Arg, source.Span) {
	p.expect(phplex.LPAREN, "'('")
	var args []phpast.Arg
	for p.tok.Kind != phplex.RPAREN && p.tok.Kind != phplex.EOF {
		start := p.tok.Span
		spread := false
		if p.tok.Kind == phplex.ELLIPSIS {
			spread = true
			p.advance()
		}
		name := ""
		if p.tok.Kind == phplex.IDENT && p.peekNext().Kind == phplex.COLON {
			name = p.tok.Text
			p.advance()
			p.advance()
		}
		val := p.parseExpr()
		args = append(args, phpast.Arg{Span_: start.Cover(val.Span()), Name: name, Value: val, Spread: spread})
		if p.tok.Kind == phplex.COMMA {
			p.advance()
		} else {
			break
		}
	}
	end := p.tok.Span
	p.expect(phplex.RPAREN, "')'")
	return args, end
}

func (p *Parser) parsePrimary() phpast.Expr {
	start := p.tok.Span
	switch p.tok.Kind {
	case phplex.VARIABLE:
		name := p.tok.Text
		p.advance()
		return &phpast.Variable{Span_: start, Name: name}
	case phplex.INT_LIT:
		text := p.tok.Text
		p.advance()
		v, _ := strconv.ParseInt(strings.ReplaceAll(text, "_", ""), 0, 64)
		return &phpast.IntLit{Span_: start, Text: text, Value: v}
	case phplex.FLOAT_LIT:
		text := p.tok.Text
		p.advance()
		v, _ := strconv.ParseFloat(strings.ReplaceAll(text, "_", ""), 64)
		return &phpast.FloatLit{Span_: start, Text: text, Value: v}
	case phplex.STRING_LIT:
		raw := p.tok.Text
		p.advance()
		return &phpast.StringLit{Span_: start, Raw: raw, Value: unquote(raw)}
	case phplex.KW_TRUE:
		p.advance()
		return &phpast.BoolLit{Span_: start, Value: true}
	case phplex.KW_FALSE:
		p.advance()
		return &phpast.BoolLit{Span_: start, Value: false}
	case phplex.KW_NULL:
		p.advance()
		return &phpast.NullLit{Span_: start}
	case phplex.LPAREN:
		p.advance()
		inner := p.parseExpr()
		p.expect(phplex.RPAREN, "')'")
		return inner
	case phplex.LBRACKET:
		return p.parseArrayLit(phplex.LBRACKET, phplex.RBRACKET)
	case phplex.KW_ARRAY:
		p.advance()
		return p.parseArrayLit(phplex.LPAREN, phplex.RPAREN)
	case phplex.KW_ISSET:
		p.advance()
		p.expect(phplex.LPAREN, "'('")
		var exprs []phpast.Expr
		exprs = append(exprs, p.parseExpr())
		for p.tok.Kind == phplex.COMMA {
			p.advance()
			exprs = append(exprs, p.parseExpr())
		}
		end := p.tok.Span
		p.expect(phplex.RPAREN, "')'")
		return &phpast.Isset{Span_: start.Cover(end), Exprs: exprs}
	case phplex.KW_NEW:
		p.advance()
		class := p.parseNewClassRef()
		var args []phpast.Arg
		end := class.Span()
		if p.tok.Kind == phplex.LPAREN {
			var e source.Span
			args, e = p.parseArgs()
			end = e
		}
		return &phpast.New{Span_: start.Cover(end), Class: class, Args: args}
	case phplex.IDENT, phplex.BACKSLASH, phplex.KW_STATIC:
		n := p.parseName()
		return n
	default:
		p.errorf(p.tok.Span, "unexpected token %q in expression", p.tok.Text)
		p.advance()
		return &phpast.NullLit{Span_: start}
	}
}

func (p *Parser) parseNewClassRef() phpast.Expr {
	if p.tok.Kind == phplex.VARIABLE {
		return p.parsePostfix()
	}
	return p.parseName()
}

func (p *Parser) parseArrayLit(open, close phplex.Kind) *phpast.ArrayLit {
	start := p.tok.Span
	p.expect(open, "array opener")
	var items []phpast.ArrayItem
	for p.tok.Kind != close && p.tok.Kind != phplex.EOF {
		itemStart := p.tok.Span
		spread := false
		if p.tok.Kind == phplex.ELLIPSIS {
			spread = true
			p.advance()
		}
		byRef := false
		if p.tok.Kind == phplex.AMP {
			byRef = true
			p.advance()
		}
		first := p.parseExpr()
		var key, value phpast.Expr
		if p.tok.Kind == phplex.FAT_ARROW {
			p.advance()
			key = first
			if p.tok.Kind == phplex.AMP {
				byRef = true
				p.advance()
			}
			value = p.parseExpr()
		} else {
			value = first
		}
		items = append(items, phpast.ArrayItem{Span_: itemStart.Cover(value.Span()), Key: key, Value: value, Spread: spread, ByRef: byRef})
		if p.tok.Kind == phplex.COMMA {
			p.advance()
		} else {
			break
		}
	}
	end := p.tok.Span
	p.expect(close, "array closer")
	return &phpast.ArrayLit{Span_: start.Cover(end), Items: items}
}

func unquote(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	inner := raw[1 : len(raw)-1]
	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) {
			i++
			switch inner[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(inner[i])
			}
			continue
		}
		b.WriteByte(inner[i])
	}
	return b.String()
}
