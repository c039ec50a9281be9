package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scadlang/dslcad/internal/ast"
	"github.com/scadlang/dslcad/internal/geom"
	"github.com/scadlang/dslcad/pkg/dslcad"
)

var parseDumpDeclared bool

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a document and every document it calls, printing the AST",
	Long: `Parse a document (and everything it transitively calls) and print its
statements, one per line, for debugging the parser.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseDumpDeclared, "show-declared", false, "also list each document's declared top-level names")
}

func runParse(_ *cobra.Command, args []string) error {
	prog, err := dslcad.Parse(args[0], geom.NewReference())
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return fmt.Errorf("parsing failed")
	}

	fmt.Printf("entry: %s\n", prog.Entry)
	fmt.Printf("documents: %d\n\n", len(prog.Documents))
	for id, doc := range prog.Documents {
		fmt.Printf("=== %s ===\n", id)
		for _, stmt := range doc.Stmts {
			dumpStatement(stmt, 0)
		}
		if parseDumpDeclared {
			fmt.Printf("declared: %v\n", declaredNames(doc))
		}
		fmt.Println()
	}
	return nil
}

func declaredNames(doc *ast.Document) []string {
	names := make([]string, 0, len(doc.Declared))
	for name := range doc.Declared {
		names = append(names, name)
	}
	return names
}

func dumpStatement(stmt ast.Statement, indent int) {
	prefix := indentString(indent)
	switch s := stmt.(type) {
	case *ast.VariableDecl:
		if s.Init == nil {
			fmt.Printf("%svar %s (required)\n", prefix, s.Name)
		} else {
			fmt.Printf("%svar %s =\n", prefix, s.Name)
			dumpExpr(s.Init, indent+1)
		}
	case *ast.ReturnExpr:
		fmt.Printf("%sreturn\n", prefix)
		dumpExpr(s.Value, indent+1)
	}
}

func dumpExpr(expr ast.Expression, indent int) {
	prefix := indentString(indent)
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		fmt.Printf("%sNumber %g\n", prefix, e.Value)
	case *ast.BoolLiteral:
		fmt.Printf("%sBool %t\n", prefix, e.Value)
	case *ast.TextLiteral:
		fmt.Printf("%sText %q\n", prefix, e.Value)
	case *ast.ListLiteral:
		fmt.Printf("%sList (%d elements)\n", prefix, len(e.Elements))
		for _, el := range e.Elements {
			dumpExpr(el, indent+1)
		}
	case *ast.ResourceLiteral:
		fmt.Printf("%sResource %v\n", prefix, e.Value)
	case *ast.Reference:
		fmt.Printf("%sReference %s\n", prefix, e.Name)
	case *ast.Invocation:
		fmt.Printf("%sInvocation (%d args)\n", prefix, len(e.Arguments))
		for _, arg := range e.Arguments {
			label := arg.Name
			if label == "" {
				label = "(positional)"
			}
			fmt.Printf("%s  %s:\n", prefix, label)
			dumpExpr(arg.Value, indent+2)
		}
	case *ast.Property:
		fmt.Printf("%sProperty .%s\n", prefix, e.Name)
		dumpExpr(e.Target, indent+1)
	case *ast.Index:
		fmt.Printf("%sIndex\n", prefix)
		dumpExpr(e.Target, indent+1)
		dumpExpr(e.Idx, indent+1)
	case *ast.If:
		fmt.Printf("%sIf\n", prefix)
		dumpExpr(e.Condition, indent+1)
		dumpExpr(e.Then, indent+1)
		dumpExpr(e.Else, indent+1)
	case *ast.Map:
		fmt.Printf("%sMap %s\n", prefix, e.IterName)
		dumpExpr(e.Range, indent+1)
		dumpExpr(e.Body, indent+1)
	case *ast.Reduce:
		fmt.Printf("%sReduce %s, %s\n", prefix, e.Left, e.Right)
		dumpExpr(e.Range, indent+1)
		dumpExpr(e.Body, indent+1)
	case *ast.Scope:
		fmt.Printf("%sScope\n", prefix)
		for _, stmt := range e.Body {
			dumpStatement(stmt, indent+1)
		}
	case *ast.FunctionLiteral:
		fmt.Printf("%sFunctionLiteral\n", prefix)
		for _, stmt := range e.Body {
			dumpStatement(stmt, indent+1)
		}
	default:
		fmt.Printf("%s%T\n", prefix, expr)
	}
}

func indentString(n int) string {
	out := make([]byte, n*2)
	for i := range out {
		out[i] = ' '
	}
	return string(out)
}
