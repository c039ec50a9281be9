package lexer

import (
	"regexp"
	"strings"
)

// matcher tries to recognize a token class at the very start of its input.
type matcher struct {
	re  *regexp.Regexp
	typ TokenType // ignored when fn is set
	fn  func(lit string) TokenType
}

// Fixed multi-character operators must be tried before their single-character
// prefixes (LessEqual before Less, Inject before Minus) and Path must be tried
// before Identifier/Slash since "./x" would otherwise lex as Period Slash x.
var matchers = []matcher{
	{re: regexp.MustCompile(`^[ \t\r\n\f]+`), fn: func(string) TokenType { return -1 }},
	{re: regexp.MustCompile(`^//[^\n]*`), fn: func(string) TokenType { return -1 }},
	{re: regexp.MustCompile(`^(\.\.?)(/[a-zA-Z0-9_]+)+`), typ: Path},
	{re: regexp.MustCompile(`^<=`), typ: LessEqual},
	{re: regexp.MustCompile(`^==`), typ: EqualEqual},
	{re: regexp.MustCompile(`^!=`), typ: NotEqual},
	{re: regexp.MustCompile(`^>=`), typ: GreaterEqual},
	{re: regexp.MustCompile(`^->`), typ: Inject},
	{re: regexp.MustCompile(`^=`), typ: Equal},
	{re: regexp.MustCompile(`^\(`), typ: OpenParen},
	{re: regexp.MustCompile(`^\)`), typ: CloseParen},
	{re: regexp.MustCompile(`^\[`), typ: OpenBracket},
	{re: regexp.MustCompile(`^\]`), typ: CloseBracket},
	{re: regexp.MustCompile(`^\{`), typ: OpenBrace},
	{re: regexp.MustCompile(`^\}`), typ: CloseBrace},
	{re: regexp.MustCompile(`^:`), typ: Colon},
	{re: regexp.MustCompile(`^,`), typ: Comma},
	{re: regexp.MustCompile(`^;`), typ: Semicolon},
	{re: regexp.MustCompile(`^\.`), typ: Period},
	{re: regexp.MustCompile(`^\+`), typ: Plus},
	{re: regexp.MustCompile(`^-`), typ: Minus},
	{re: regexp.MustCompile(`^\*`), typ: Star},
	{re: regexp.MustCompile(`^/`), typ: Slash},
	{re: regexp.MustCompile(`^%`), typ: Percent},
	{re: regexp.MustCompile(`^\^`), typ: Caret},
	{re: regexp.MustCompile(`^<`), typ: Less},
	{re: regexp.MustCompile(`^>`), typ: Greater},
	{re: regexp.MustCompile(`^\d+(\.\d*)?`), typ: Number},
	{re: regexp.MustCompile(`^"(\\.|[^"\\])*"`), typ: String},
	{re: regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*`), fn: func(lit string) TokenType {
		if tt, ok := keywords[lit]; ok {
			return tt
		}
		return Identifier
	}},
}

// Option configures a Lexer at construction time.
type Option func(*Lexer)

// WithTracing makes the Lexer call the given function once per token
// produced, in addition to returning it normally. Useful for CLI debugging
// output.
func WithTracing(fn func(Token)) Option {
	return func(l *Lexer) { l.trace = fn }
}

// Lexer tokenizes a single source document on demand. It is cheap to copy
// its State and restore it later, which the parser relies on to
// backtrack when trying a named-argument parse before falling back to a
// positional one.
type Lexer struct {
	input string
	pos   int
	trace func(Token)
}

// New creates a Lexer over input.
func New(input string, opts ...Option) *Lexer {
	l := &Lexer{input: input}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// State is an opaque snapshot of lexing progress.
type State struct {
	pos int
}

// Mark captures the current position.
func (l *Lexer) Mark() State { return State{pos: l.pos} }

// Reset rewinds the lexer to a previously captured State.
func (l *Lexer) Reset(s State) { l.pos = s.pos }

// NextToken scans and returns the next token, skipping whitespace and
// line comments. It returns an EOF token (repeatedly) once the input is
// exhausted, and an ILLEGAL token if no pattern matches at the current
// position.
func (l *Lexer) NextToken() Token {
	for {
		if l.pos >= len(l.input) {
			tok := Token{Type: EOF, Span: Span{Start: l.pos, End: l.pos}}
			l.emit(tok)
			return tok
		}

		rest := l.input[l.pos:]
		matched := false
		for _, m := range matchers {
			loc := m.re.FindStringIndex(rest)
			if loc == nil || loc[0] != 0 {
				continue
			}
			lit := rest[:loc[1]]
			start := l.pos
			l.pos += loc[1]
			matched = true

			var typ TokenType
			if m.fn != nil {
				typ = m.fn(lit)
			} else {
				typ = m.typ
			}
			if typ == -1 {
				// whitespace or comment: keep scanning, don't emit
				break
			}
			tok := Token{Type: typ, Literal: lit, Span: Span{Start: start, End: l.pos}}
			l.emit(tok)
			return tok
		}
		if matched {
			continue
		}

		// nothing matched: consume one byte as illegal so callers can make
		// forward progress while reporting the bad input.
		start := l.pos
		l.pos++
		tok := Token{Type: ILLEGAL, Literal: rest[:1], Span: Span{Start: start, End: l.pos}}
		l.emit(tok)
		return tok
	}
}

func (l *Lexer) emit(t Token) {
	if l.trace != nil {
		l.trace(t)
	}
}

// LineCol converts a byte Span into a 1-indexed source line and a column
// range within that line, by scanning src and subtracting consumed line
// lengths until the span's start falls inside the remaining line. Columns
// are 1-indexed byte offsets within the line.
func LineCol(src string, span Span) (line int, col Span) {
	lineStart := 0
	lineNo := 1
	for {
		nl := strings.IndexByte(src[lineStart:], '\n')
		var lineEnd int
		if nl == -1 {
			lineEnd = len(src)
		} else {
			lineEnd = lineStart + nl
		}
		if span.Start <= lineEnd || nl == -1 {
			return lineNo, Span{
				Start: span.Start - lineStart + 1,
				End:   span.End - lineStart + 1,
			}
		}
		lineStart = lineEnd + 1
		lineNo++
	}
}

// SourceLine returns the text of the 1-indexed line n in src, without its
// trailing newline.
func SourceLine(src string, n int) string {
	lines := strings.Split(src, "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}
