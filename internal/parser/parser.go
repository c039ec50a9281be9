package parser

import (
	"path/filepath"

	"github.com/scadlang/dslcad/internal/ast"
	"github.com/scadlang/dslcad/internal/errors"
	"github.com/scadlang/dslcad/internal/lexer"
	"github.com/scadlang/dslcad/internal/library"
	"github.com/scadlang/dslcad/internal/resources"
)

type pendingDoc struct {
	path string // path as written, joined against its caller's directory
	dir  string // directory to resolve this document's own relative paths against
}

// Parser parses an entry document and every document it transitively calls
// via a worklist, so each reachable document is parsed exactly once keyed
// by its reader-normalized DocID.
type Parser struct {
	reader    Reader
	library   *library.Library
	resources *resources.Registry

	parsed  map[ast.DocID]*ast.Document
	toParse []pendingDoc
	errs    []*errors.ParseError
}

func New(reader Reader, lib *library.Library, res *resources.Registry) *Parser {
	return &Parser{
		reader:    reader,
		library:   lib,
		resources: res,
		parsed:    map[ast.DocID]*ast.Document{},
	}
}

// Parse parses entryPath and everything it reaches, returning every parsed
// Document keyed by DocID and the entry document's own id. On any parse
// failure it returns an Aggregate ParseError collecting every failure
// across every document.
func (p *Parser) Parse(entryPath string) (map[ast.DocID]*ast.Document, ast.DocID, *errors.ParseError) {
	entryID, err := p.reader.Normalize(entryPath)
	if err != nil {
		return nil, "", errors.NewNoSuchFile(entryPath)
	}
	p.toParse = append(p.toParse, pendingDoc{path: entryPath, dir: filepath.Dir(entryPath)})

	for len(p.toParse) > 0 {
		next := p.toParse[0]
		p.toParse = p.toParse[1:]

		id, err := p.reader.Normalize(next.path)
		if err != nil {
			p.errs = append(p.errs, errors.NewNoSuchFile(next.path))
			continue
		}
		if _, done := p.parsed[id]; done {
			continue
		}
		p.parseOne(id, next.path, next.dir)
	}

	if len(p.errs) > 0 {
		return nil, "", errors.NewAggregate(p.errs)
	}
	return p.parsed, entryID, nil
}

func (p *Parser) parseOne(id ast.DocID, path, dir string) {
	source, err := p.reader.Read(path)
	if err != nil {
		p.errs = append(p.errs, errors.NewNoSuchFile(path))
		return
	}

	dp := &docParser{
		docID:     id,
		dir:       dir,
		reader:    p.reader,
		library:   p.library,
		resources: p.resources,
		lex:       lexer.New(source),
	}
	dp.advance()
	dp.declared.push()
	var stmts []ast.Statement
	for dp.cur.Type != lexer.EOF {
		stmts = append(stmts, dp.parseStatement(true))
	}
	dp.declared.pop()

	declared := map[string]bool{}
	for _, s := range stmts {
		if vd, ok := s.(*ast.VariableDecl); ok {
			declared[vd.Name] = true
		}
	}
	p.parsed[id] = &ast.Document{ID: id, Source: source, Dir: dir, Stmts: stmts, Declared: declared}

	for _, e := range dp.errs {
		p.errs = append(p.errs, e.WithSource(source))
	}
	p.toParse = append(p.toParse, dp.calls...)
}
