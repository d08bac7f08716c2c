// Package yaml implements a hand-written, backtracking PEG parser for YAML
// 1.2 documents together with the in-memory document model (Yaml, Node,
// Map, Array, AnchorTable) that the parser builds. It is grounded on
// Rulexec/yaml-peg-rs's cursor/parser design, translated into Go's
// error-return idiom, and on willabides/yaml's package layout and testing
// conventions for everything outside the grammar itself.
package yaml

import (
	"bytes"
	"io"

	"github.com/yaml-peg/yaml-peg-go/internal/cursor"
)

// Document pairs a parsed root Node with the AnchorTable built while
// parsing it. Anchors are scoped to one document, so each Document carries
// its own table rather than sharing one across a multi-document stream.
type Document struct {
	Root    Node
	Anchors AnchorTable
}

// Parser holds the state for one Parse call: the byte cursor, the current
// document's tag table and anchor table, whether a %YAML directive has
// already been seen in this document, and a recursion-depth counter
// guarded by Config.MaxDepth.
type Parser struct {
	c              *cursor.Cursor
	cfg            Config
	tags           map[string]string
	anchors        AnchorTable
	versionChecked bool
	depth          int
}

// Parse parses doc, a complete UTF-8 byte stream, into its constituent
// documents. A byte-order mark at the start is consumed and ignored; CRLF
// and bare-CR line endings are normalized to LF before parsing.
func Parse(doc []byte, opts ...Option) ([]Document, error) {
	cfg := newConfig(opts...)
	normalized := stripBOM(normalizeNewlines(doc))
	c := cursor.New(normalized)
	c.SetIndentWidth(cfg.Indent)
	if cfg.Pos > 0 {
		c.SetPos(cfg.Pos)
	}
	p := &Parser{c: c, cfg: cfg}
	return p.parseStream()
}

// ParseReader reads r to completion and parses the result; see Parse.
func ParseReader(r io.Reader, opts ...Option) ([]Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data, opts...)
}

func stripBOM(b []byte) []byte {
	const bom = "\xef\xbb\xbf"
	if bytes.HasPrefix(b, []byte(bom)) {
		return b[len(bom):]
	}
	return b
}

func normalizeNewlines(b []byte) []byte {
	b = bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
	b = bytes.ReplaceAll(b, []byte("\r"), []byte("\n"))
	return b
}

// parseStream runs the document loop: reset per-document state, consume
// directives, an optional "---", the root node, and any trailing "..." or
// inter-document gap, until the cursor is exhausted.
func (p *Parser) parseStream() ([]Document, error) {
	var docs []Document
	for {
		p.skipLeadingGap()
		if p.c.AtEOF() {
			return docs, nil
		}
		doc, err := p.parseOneDocument()
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
}

func (p *Parser) skipLeadingGap() {
	for blankLine(p.c) == nil {
	}
}

func (p *Parser) parseOneDocument() (Document, error) {
	p.tags = defaultTagTable()
	p.anchors = NewAnchorTable()
	p.versionChecked = false
	p.depth = 0

	if err := p.parseDirectives(); err != nil {
		return Document{}, err
	}

	p.tryDocumentStartMarker()

	root, err := p.parseBlockNode(0)
	if err != nil {
		if _, ok := err.(*TerminateError); ok {
			return Document{}, err
		}
		// An empty document (bare "---" with nothing following, or an
		// empty stream after stripping directives) resolves to Null.
		root = NewNode(Null(), p.c.Indicator(), "", "")
	}

	p.consumeDocumentEnd()
	return Document{Root: root, Anchors: p.anchors}, nil
}

func (p *Parser) tryDocumentStartMarker() bool {
	c := p.c
	pos, eaten := c.Snapshot()
	if err := c.SymSeq([]byte("---")); err != nil {
		c.Restore(pos, eaten)
		return false
	}
	next := c.Food()
	if len(next) > 0 && !isSpaceTab(next[0]) && next[0] != '\n' {
		c.Restore(pos, eaten)
		return false
	}
	_ = inlineGap(c)
	for blankLine(c) == nil {
	}
	c.Forward()
	return true
}

func (p *Parser) consumeDocumentEnd() {
	c := p.c
	_ = inlineGap(c)
	pos, eaten := c.Snapshot()
	if err := c.SymSeq([]byte("...")); err == nil {
		next := c.Food()
		if len(next) == 0 || isSpaceTab(next[0]) || next[0] == '\n' {
			_ = inlineGap(c)
			c.Forward()
		} else {
			c.Restore(pos, eaten)
		}
	}
	for blankLine(c) == nil {
	}
	c.Consume()
}

func (p *Parser) enterDepth() error {
	p.depth++
	if p.cfg.MaxDepth >= 0 && p.depth > p.cfg.MaxDepth {
		return p.c.Terminatef("exceeded max nesting depth %d", p.cfg.MaxDepth)
	}
	return nil
}

func (p *Parser) leaveDepth() {
	p.depth--
}

func (p *Parser) defineAnchor(name string, n Node) {
	p.anchors.Define(name, n)
}
