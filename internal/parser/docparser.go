package parser

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/scadlang/dslcad/internal/ast"
	"github.com/scadlang/dslcad/internal/errors"
	"github.com/scadlang/dslcad/internal/lexer"
	"github.com/scadlang/dslcad/internal/library"
	"github.com/scadlang/dslcad/internal/resources"
)

// docParser parses a single document's token stream into statements,
// tracking declared names for identifier validation and collecting any
// document calls it discovers so the owning Parser can enqueue them.
type docParser struct {
	docID     ast.DocID
	dir       string
	reader    Reader
	library   *library.Library
	resources *resources.Registry

	lex *lexer.Lexer
	cur lexer.Token

	declared scopeStack
	errs     []*errors.ParseError
	calls    []pendingDoc
}

func (p *docParser) advance() { p.cur = p.lex.NextToken() }

func (p *docParser) recordError(e *errors.ParseError) { p.errs = append(p.errs, e) }

func (p *docParser) expect(tt lexer.TokenType) {
	if p.cur.Type != tt {
		p.recordError(errors.NewExpected(string(p.docID), p.cur.Span, tt.String()))
		return
	}
	p.advance()
}

func (p *docParser) expectIdentLiteral() string {
	if p.cur.Type != lexer.Identifier {
		p.recordError(errors.NewExpected(string(p.docID), p.cur.Span, "an identifier"))
		return ""
	}
	lit := p.cur.Literal
	p.advance()
	return lit
}

// --- statements -----------------------------------------------------------

// parseStatement parses one `var name [= init];` or `expr;` statement.
// allowParams controls whether a `var name;` with no initializer (a
// parameter declaration) is accepted here; it is rejected inside a plain
// Scope block, which may only declare fully-initialized variables.
func (p *docParser) parseStatement(allowParams bool) ast.Statement {
	if p.cur.Type == lexer.Var {
		start := p.cur.Span
		p.advance()

		nameTok := p.cur
		if nameTok.Type != lexer.Identifier {
			p.recordError(errors.NewExpected(string(p.docID), nameTok.Span, "an identifier"))
		}
		name := nameTok.Literal
		p.advance()

		if p.declared.declaredInCurrent(name) {
			p.recordError(errors.NewDuplicateVariableName(string(p.docID), nameTok.Span, name))
		}
		p.declared.declare(name)

		var init ast.Expression
		if p.cur.Type == lexer.Equal {
			p.advance()
			init = p.parseExpr()
		} else if !allowParams {
			p.recordError(errors.NewParametersNotAllowedInScope(string(p.docID), nameTok.Span, name))
		}

		end := p.cur.Span
		p.expect(lexer.Semicolon)
		return ast.NewVariableDecl(name, init, ast.Span{Start: start.Start, End: end.End})
	}

	start := p.cur.Span
	expr := p.parseExpr()
	end := p.cur.Span
	p.expect(lexer.Semicolon)
	return ast.NewReturnExpr(expr, ast.Span{Start: start.Start, End: end.End})
}

// --- expressions: precedence ladder ---------------------------------------
//
// or < and < equality < relational < additive < multiplicative < power <
// inject < unary < spanning (call/property/index) < primary
//
// Every binary arithmetic, comparison and logic operator desugars at parse
// time into a call to its named library function, taking "left" and
// "right" arguments.

func (p *docParser) parseExpr() ast.Expression { return p.parseOr() }

func (p *docParser) parseOr() ast.Expression {
	left := p.parseAnd()
	for p.cur.Type == lexer.Or {
		p.advance()
		right := p.parseAnd()
		left = desugarBinary("or", left, right)
	}
	return left
}

func (p *docParser) parseAnd() ast.Expression {
	left := p.parseEquality()
	for p.cur.Type == lexer.And {
		p.advance()
		right := p.parseEquality()
		left = desugarBinary("and", left, right)
	}
	return left
}

func (p *docParser) parseEquality() ast.Expression {
	left := p.parseRelational()
	for p.cur.Type == lexer.EqualEqual || p.cur.Type == lexer.NotEqual {
		name := "equals"
		if p.cur.Type == lexer.NotEqual {
			name = "not_equals"
		}
		p.advance()
		right := p.parseRelational()
		left = desugarBinary(name, left, right)
	}
	return left
}

func (p *docParser) parseRelational() ast.Expression {
	left := p.parseAdditive()
	for {
		var name string
		switch p.cur.Type {
		case lexer.Less:
			name = "less"
		case lexer.LessEqual:
			name = "less_or_equal"
		case lexer.Greater:
			name = "greater"
		case lexer.GreaterEqual:
			name = "greater_or_equal"
		default:
			return left
		}
		p.advance()
		right := p.parseAdditive()
		left = desugarBinary(name, left, right)
	}
}

func (p *docParser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for p.cur.Type == lexer.Plus || p.cur.Type == lexer.Minus {
		name := "add"
		if p.cur.Type == lexer.Minus {
			name = "subtract"
		}
		p.advance()
		right := p.parseMultiplicative()
		left = desugarBinary(name, left, right)
	}
	return left
}

func (p *docParser) parseMultiplicative() ast.Expression {
	left := p.parsePower()
	for {
		var name string
		switch p.cur.Type {
		case lexer.Star:
			name = "multiply"
		case lexer.Slash:
			name = "divide"
		case lexer.Percent:
			name = "modulo"
		default:
			return left
		}
		p.advance()
		right := p.parsePower()
		left = desugarBinary(name, left, right)
	}
}

// parsePower is right-associative: `a ^ b ^ c` is `a ^ (b ^ c)`.
func (p *docParser) parsePower() ast.Expression {
	left := p.parseInject()
	if p.cur.Type == lexer.Caret {
		p.advance()
		right := p.parsePower()
		return desugarBinary("power", left, right)
	}
	return left
}

// parseInject handles `left -> name callee(...)` and `left -> callee(...)`,
// prepending left as the named (or, with no name, first positional)
// argument of the invocation on the right.
func (p *docParser) parseInject() ast.Expression {
	left := p.parseUnary()
	for p.cur.Type == lexer.Inject {
		p.advance()

		argName := ""
		if p.cur.Type == lexer.Identifier {
			mark := p.lex.Mark()
			candidate := p.cur
			p.advance()
			if p.cur.Type == lexer.Identifier || p.cur.Type == lexer.Path {
				argName = candidate.Literal
			} else {
				p.lex.Reset(mark)
				p.cur = candidate
			}
		}

		target := p.parseUnary()
		inv, ok := target.(*ast.Invocation)
		if !ok {
			p.recordError(errors.NewExpected(string(p.docID), target.Span(), "a function call after ->"))
			left = target
			continue
		}
		inv.Arguments = append([]ast.Argument{{Name: argName, Value: left}}, inv.Arguments...)
		left = inv
	}
	return left
}

func (p *docParser) parseUnary() ast.Expression {
	switch p.cur.Type {
	case lexer.Minus:
		start := p.cur.Span
		p.advance()
		operand := p.parseUnary()
		zero := ast.NewNumberLiteral(0, start)
		return desugarBinary("subtract", zero, operand)
	case lexer.Not:
		p.advance()
		operand := p.parseUnary()
		return desugarUnary("not", operand)
	default:
		return p.parseSpanning()
	}
}

func desugarBinary(name string, left, right ast.Expression) ast.Expression {
	span := ast.Span{Start: left.Span().Start, End: right.Span().End}
	return ast.NewInvocation(ast.FunctionCallPath{Callee: ast.NewReference(name, span)},
		[]ast.Argument{{Name: "left", Value: left}, {Name: "right", Value: right}}, span)
}

func desugarUnary(name string, operand ast.Expression) ast.Expression {
	return ast.NewInvocation(ast.FunctionCallPath{Callee: ast.NewReference(name, operand.Span())},
		[]ast.Argument{{Name: "value", Value: operand}}, operand.Span())
}

// unescapeString decodes the backslash escapes \r \n \t \" \\ inside a
// string literal's quoted body. An unrecognized escape passes both
// characters through unchanged.
func unescapeString(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'r':
			b.WriteByte('\r')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// --- spanning: call / property / index -------------------------------------

func (p *docParser) parseSpanning() ast.Expression {
	if p.cur.Type == lexer.Path {
		return p.parseDocumentCall()
	}
	return p.parseSpanningSuffixes(p.parsePrimary())
}

func (p *docParser) parseSpanningSuffixes(expr ast.Expression) ast.Expression {
	for {
		switch p.cur.Type {
		case lexer.OpenParen:
			start := expr.Span()
			args, closeSpan := p.parseArgList()
			expr = ast.NewInvocation(ast.FunctionCallPath{Callee: expr}, args, ast.Span{Start: start.Start, End: closeSpan.End})
		case lexer.Period:
			p.advance()
			name := p.expectIdentLiteral()
			start := expr.Span()
			expr = ast.NewProperty(expr, name, ast.Span{Start: start.Start, End: p.prevEnd()})
		case lexer.OpenBracket:
			p.advance()
			idx := p.parseExpr()
			closeSpan := p.cur.Span
			p.expect(lexer.CloseBracket)
			start := expr.Span()
			expr = ast.NewIndex(expr, idx, ast.Span{Start: start.Start, End: closeSpan.End})
		default:
			return expr
		}
	}
}

// prevEnd approximates the end of the token just consumed, for suffixes
// that don't otherwise capture an explicit closing span.
func (p *docParser) prevEnd() int { return p.cur.Span.Start }

func (p *docParser) parseArgList() ([]ast.Argument, ast.Span) {
	p.expect(lexer.OpenParen)
	var args []ast.Argument
	for p.cur.Type != lexer.CloseParen && p.cur.Type != lexer.EOF {
		args = append(args, p.parseArgument())
		if p.cur.Type == lexer.Comma {
			p.advance()
		} else {
			break
		}
	}
	closeSpan := p.cur.Span
	p.expect(lexer.CloseParen)
	return args, closeSpan
}

func (p *docParser) parseArgument() ast.Argument {
	if p.cur.Type == lexer.Identifier {
		mark := p.lex.Mark()
		nameTok := p.cur
		p.advance()
		if p.cur.Type == lexer.Equal {
			p.advance()
			val := p.parseExpr()
			return ast.Argument{Name: nameTok.Literal, Value: val}
		}
		p.lex.Reset(mark)
		p.cur = nameTok
	}
	return ast.Argument{Value: p.parseExpr()}
}

func (p *docParser) parseDocumentCall() ast.Expression {
	tok := p.cur
	start := tok.Span
	literal := tok.Literal
	p.advance()
	// A Path token ends at its last segment; a following `.name` is the
	// file's extension.
	if p.cur.Type == lexer.Period {
		mark, dot := p.lex.Mark(), p.cur
		p.advance()
		if p.cur.Type == lexer.Identifier {
			literal += "." + p.cur.Literal
			start.End = p.cur.Span.End
			p.advance()
		} else {
			p.lex.Reset(mark)
			p.cur = dot
		}
	}
	fullPath := filepath.Join(p.dir, literal)
	ext := p.resources.Extension(literal)

	if p.resources.Contains(ext) {
		text, err := p.reader.Read(fullPath)
		if err != nil {
			p.recordError(errors.NewNoSuchFile(fullPath))
			return ast.NewNumberLiteral(0, start)
		}
		val, err := p.resources.Load(fullPath, text)
		if err != nil {
			p.recordError(errors.NewUnknownResourceType(string(p.docID), start, ext))
			return ast.NewNumberLiteral(0, start)
		}
		return p.parseSpanningSuffixes(ast.NewResourceLiteral(val, start))
	}

	id, err := p.reader.Normalize(fullPath)
	if err != nil {
		p.recordError(errors.NewNoSuchFile(fullPath))
		return ast.NewNumberLiteral(0, start)
	}
	p.calls = append(p.calls, pendingDoc{path: fullPath, dir: filepath.Dir(fullPath)})

	if p.cur.Type != lexer.OpenParen {
		p.recordError(errors.NewExpected(string(p.docID), p.cur.Span, "("))
		return ast.NewInvocation(ast.DocumentCallPath{Doc: id}, nil, start)
	}
	args, closeSpan := p.parseArgList()
	expr := ast.Expression(ast.NewInvocation(ast.DocumentCallPath{Doc: id}, args, ast.Span{Start: start.Start, End: closeSpan.End}))
	return p.parseSpanningSuffixes(expr)
}

// --- primary ----------------------------------------------------------------

func (p *docParser) parsePrimary() ast.Expression {
	tok := p.cur
	switch tok.Type {
	case lexer.Number:
		p.advance()
		n, _ := strconv.ParseFloat(tok.Literal, 64)
		return ast.NewNumberLiteral(n, tok.Span)
	case lexer.Bool:
		p.advance()
		return ast.NewBoolLiteral(tok.Literal == "true", tok.Span)
	case lexer.String:
		p.advance()
		return ast.NewTextLiteral(unescapeString(tok.Literal[1:len(tok.Literal)-1]), tok.Span)
	case lexer.Identifier:
		p.advance()
		if !p.declared.contains(tok.Literal) && !p.library.Contains(tok.Literal) {
			p.recordError(errors.NewUndeclaredIdentifier(string(p.docID), tok.Span, tok.Literal))
		}
		return ast.NewReference(tok.Literal, tok.Span)
	case lexer.OpenBracket:
		return p.parseListLiteral()
	case lexer.OpenParen:
		return p.parseGroup()
	case lexer.OpenBrace:
		return p.parseScope()
	case lexer.Func:
		return p.parseFunctionLiteral()
	case lexer.If:
		return p.parseIf()
	case lexer.Map:
		return p.parseMap()
	case lexer.Reduce:
		return p.parseReduce()
	default:
		p.recordError(errors.NewExpected(string(p.docID), tok.Span, "an expression"))
		p.advance()
		return ast.NewNumberLiteral(0, tok.Span)
	}
}

func (p *docParser) parseListLiteral() ast.Expression {
	start := p.cur.Span
	p.advance()
	var elems []ast.Expression
	for p.cur.Type != lexer.CloseBracket && p.cur.Type != lexer.EOF {
		elems = append(elems, p.parseExpr())
		if p.cur.Type == lexer.Comma {
			p.advance()
		} else {
			break
		}
	}
	end := p.cur.Span
	p.expect(lexer.CloseBracket)
	return ast.NewListLiteral(elems, ast.Span{Start: start.Start, End: end.End})
}

// parseGroup parses a plain `(expr)` grouping, which evaluates to expr
// itself; it carries no scope of its own.
func (p *docParser) parseGroup() ast.Expression {
	p.advance()
	expr := p.parseExpr()
	p.expect(lexer.CloseParen)
	return expr
}

// parseScope parses `{ stmt; ...; }`, a nested statement block evaluated in
// a fresh child scope. Variables declared inside must have initializers; no
// bare parameter declarations are allowed here (that is only legal in a
// func literal's body).
func (p *docParser) parseScope() ast.Expression {
	start := p.cur.Span
	p.advance()
	p.declared.push()
	defer p.declared.pop()
	var stmts []ast.Statement
	for p.cur.Type != lexer.CloseBrace && p.cur.Type != lexer.EOF {
		stmts = append(stmts, p.parseStatement(false))
	}
	end := p.cur.Span
	p.expect(lexer.CloseBrace)
	return ast.NewScope(stmts, ast.Span{Start: start.Start, End: end.End})
}

// parseFunctionLiteral parses `func { stmt; ...; }`. Its body is a scope
// that, unlike a bare `{ ... }`, does allow parameter declarations.
func (p *docParser) parseFunctionLiteral() ast.Expression {
	start := p.cur.Span
	p.advance()
	p.expect(lexer.OpenBrace)
	p.declared.push()
	defer p.declared.pop()
	var stmts []ast.Statement
	for p.cur.Type != lexer.CloseBrace && p.cur.Type != lexer.EOF {
		stmts = append(stmts, p.parseStatement(true))
	}
	end := p.cur.Span
	p.expect(lexer.CloseBrace)
	return ast.NewFunctionLiteral(stmts, ast.Span{Start: start.Start, End: end.End})
}

// parseIf parses `if cond: thenExpr else: elseExpr` or, for chained
// conditionals, `if cond: thenExpr else if cond2: ...`.
func (p *docParser) parseIf() ast.Expression {
	start := p.cur.Span
	p.advance()
	cond := p.parseExpr()
	p.expect(lexer.Colon)
	thenExpr := p.parseExpr()
	p.expect(lexer.Else)

	var elseExpr ast.Expression
	if p.cur.Type == lexer.If {
		elseExpr = p.parseIf()
	} else {
		p.expect(lexer.Colon)
		elseExpr = p.parseExpr()
	}
	return ast.NewIf(cond, thenExpr, elseExpr, ast.Span{Start: start.Start, End: elseExpr.Span().End})
}

// parseMap parses `map rangeExpr as name: body`.
func (p *docParser) parseMap() ast.Expression {
	start := p.cur.Span
	p.advance()
	rng := p.parseExpr()
	p.expect(lexer.As)
	name := p.expectIdentLiteral()
	p.expect(lexer.Colon)
	p.declared.push()
	p.declared.declare(name)
	body := p.parseExpr()
	p.declared.pop()
	return ast.NewMap(name, rng, body, ast.Span{Start: start.Start, End: body.Span().End})
}

// parseReduce parses `reduce rangeExpr [from seedExpr] as left, right: body`.
func (p *docParser) parseReduce() ast.Expression {
	start := p.cur.Span
	p.advance()
	rng := p.parseExpr()

	var seed ast.Expression
	if p.cur.Type == lexer.From {
		p.advance()
		seed = p.parseExpr()
	}

	p.expect(lexer.As)
	left := p.expectIdentLiteral()
	p.expect(lexer.Comma)
	right := p.expectIdentLiteral()
	p.expect(lexer.Colon)

	p.declared.push()
	p.declared.declare(left)
	p.declared.declare(right)
	body := p.parseExpr()
	p.declared.pop()
	return ast.NewReduce(left, right, seed, rng, body, ast.Span{Start: start.Start, End: body.Span().End})
}
