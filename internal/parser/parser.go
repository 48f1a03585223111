// Package parser builds the declaration-level tree the expansion engine
// works on. It fully understands attributes, modules, and function
// signatures; everything else (bodies, where clauses, unfamiliar items)
// is captured as raw text and re-emitted untouched.
package parser

import (
	"slices"

	"gentests/internal/ast"
	"gentests/internal/diag"
	"gentests/internal/lexer"
	"gentests/internal/source"
	"gentests/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error limit has been reached.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File *ast.File
	Bag  *diag.Bag
}

// Parser holds per-file state.
type Parser struct {
	lx       *lexer.Lexer
	file     *source.File
	opts     Options
	lastSpan source.Span
}

// ParseFile parses one file into a declaration tree. Unknown items never
// fail parsing; only malformed modules, attributes, and function
// signatures produce diagnostics.
func ParseFile(file *source.File, opts Options) Result {
	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter})
	p := Parser{
		lx:       lx,
		file:     file,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	out := &ast.File{}
	out.InnerAttrs = p.parseInnerAttrs()
	out.Items = p.parseItems(token.EOF)
	out.FileSpan = source.Span{File: file.ID, Start: 0, End: uint32(len(file.Content))}

	var bag *diag.Bag
	if br, ok := opts.Reporter.(diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{File: out, Bag: bag}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// parseItems consumes declarations until the terminator (EOF at file
// scope, RBrace inside a module body). The terminator is not consumed.
func (p *Parser) parseItems(until token.Kind) []ast.Item {
	var items []ast.Item
	for !p.at(until) && !p.at(token.EOF) {
		item, ok := p.parseItem()
		if !ok {
			p.resyncItem(until)
			continue
		}
		items = append(items, item)
	}
	return items
}

// resyncItem recovers from a malformed declaration: skip to the next
// plausible item start, a semicolon, or the enclosing terminator.
func (p *Parser) resyncItem(until token.Kind) {
	depth := 0
	for {
		kind := p.lx.Peek().Kind
		if kind == token.EOF {
			return
		}
		if depth == 0 {
			switch kind {
			case until, token.Pound, token.KwMod, token.KwFn, token.KwPub:
				return
			case token.Semicolon:
				p.advance()
				return
			}
		}
		switch kind {
		case token.LBrace, token.LParen, token.LBracket:
			depth++
		case token.RBrace, token.RParen, token.RBracket:
			if depth > 0 {
				depth--
			}
		}
		p.advance()
	}
}
