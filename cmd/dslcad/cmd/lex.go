package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scadlang/dslcad/internal/lexer"
)

var (
	lexEvalExpr string
	showPos     bool
	showType    bool
	onlyErrors  bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a document and print the resulting tokens",
	Long: `Tokenize (lex) a document and print the resulting tokens.

Examples:
  # Tokenize a script file
  dslcad lex part.ds

  # Tokenize an inline expression
  dslcad lex -e "1 + 2;"

  # Show token types and byte positions
  dslcad lex --show-type --show-pos part.ds

  # Show only illegal tokens
  dslcad lex --only-errors part.ds`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token source line:column")
	lexCmd.Flags().BoolVar(&showType, "show-type", false, "show token type names")
	lexCmd.Flags().BoolVar(&onlyErrors, "only-errors", false, "show only illegal tokens")
}

func lexScript(cmd *cobra.Command, args []string) error {
	var input string
	var filename string

	if lexEvalExpr != "" {
		input = lexEvalExpr
		filename = "<eval>"
	} else if len(args) == 1 {
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		input = string(content)
	} else {
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Printf("Tokenizing: %s\n", filename)
		fmt.Printf("Input length: %d bytes\n", len(input))
		fmt.Println("---")
	}

	l := lexer.New(input)
	tokenCount := 0
	errorCount := 0

	for {
		tok := l.NextToken()

		if onlyErrors && tok.Type != lexer.ILLEGAL {
			if tok.Type == lexer.EOF {
				break
			}
			continue
		}

		tokenCount++
		if tok.Type == lexer.ILLEGAL {
			errorCount++
		}

		printToken(input, tok)

		if tok.Type == lexer.EOF {
			break
		}
	}

	if verbose {
		fmt.Println("---")
		fmt.Printf("Total tokens: %d\n", tokenCount)
		if errorCount > 0 {
			fmt.Printf("Errors: %d\n", errorCount)
		}
	}

	if onlyErrors && errorCount > 0 {
		return fmt.Errorf("found %d illegal token(s)", errorCount)
	}

	return nil
}

func printToken(src string, tok lexer.Token) {
	var output string

	if showType {
		output = fmt.Sprintf("[%-12s]", tok.Type)
	}

	switch {
	case tok.Type == lexer.EOF:
		output += " EOF"
	case tok.Type == lexer.ILLEGAL:
		output += fmt.Sprintf(" ILLEGAL: %q", tok.Literal)
	case tok.Literal == "":
		output += fmt.Sprintf(" %s", tok.Type)
	default:
		output += fmt.Sprintf(" %q", tok.Literal)
	}

	if showPos {
		line, col := lexer.LineCol(src, tok.Span)
		output += fmt.Sprintf(" @%d:%d", line, col.Start)
	}

	fmt.Println(output)
}
