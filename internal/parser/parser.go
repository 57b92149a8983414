package parser

import (
	"fmt"

	"github.com/KimNorgaard/go-hconf/ast"
	"github.com/KimNorgaard/go-hconf/errors"
	"github.com/KimNorgaard/go-hconf/internal/lexer"
	"github.com/KimNorgaard/go-hconf/internal/token"
)

// Parser holds the state of the parser.
//
// The lexer is the only cursor. Every nesting level reads from the same
// lexer, so when a nested block returns, its caller resumes on the line after
// the block's closing brace.
type Parser struct {
	l           *lexer.Lexer
	diagnostics errors.ParseErrors
}

// New creates a new parser.
func New(l *lexer.Lexer) *Parser {
	return &Parser{l: l}
}

// Diagnostics returns the problems noticed during parsing. None of them stop
// the parse.
func (p *Parser) Diagnostics() errors.ParseErrors {
	return p.diagnostics
}

// Parse consumes the whole input and returns the document. It never fails:
// lines that match no rule are skipped and unbalanced braces are resolved by
// ending or ignoring scopes.
func (p *Parser) Parse() *ast.Document {
	return &ast.Document{Nodes: p.parseBlock(nil)}
}

// parseBlock reads nodes until the closing brace of parent, or until EOF.
// parent is nil at the top level.
func (p *Parser) parseBlock(parent *ast.Section) []ast.Node {
	var nodes []ast.Node
	for {
		tok := p.l.NextToken()
		switch tok.Type {
		case token.EOF:
			if parent != nil {
				p.report(parent.Line, "section %q is never closed", parent.Key)
			}
			return nodes

		case token.BLANK, token.COMMENT:
			continue

		case token.OPEN:
			if tok.Key == "" {
				p.report(tok.Line, "section has no name")
			}
			section := &ast.Section{Key: tok.Key, Line: tok.Line}
			section.Children = p.parseBlock(section)
			nodes = append(nodes, section)

		case token.CLOSE:
			if parent == nil {
				p.report(tok.Line, "unexpected '}' outside of any section")
				continue
			}
			return nodes

		case token.ASSIGN:
			if tok.Key == "" {
				p.report(tok.Line, "assignment has no key")
			}
			nodes = append(nodes, &ast.Leaf{Key: tok.Key, Value: tok.Value, Line: tok.Line})

		default:
			p.report(tok.Line, "skipping unrecognized line %q", tok.Literal)
		}
	}
}

func (p *Parser) report(line int, format string, args ...any) {
	p.diagnostics = append(p.diagnostics, errors.ParseError{
		Message: fmt.Sprintf(format, args...),
		Line:    line,
	})
}
