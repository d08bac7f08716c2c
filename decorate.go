package yaml

import (
	"github.com/yaml-peg/yaml-peg-go/internal/cursor"
)

// decorations collects the anchor and/or tag that may precede a node, in
// either order, per spec.md §4.6.
type decorations struct {
	anchor string
	tag    string
}

// parseDecorations greedily consumes an optional &anchor and an optional
// !tag, in any order, separated by inline gaps. Either, both, or neither
// may be present.
func (p *Parser) parseDecorations() (decorations, error) {
	var d decorations
	for i := 0; i < 2; i++ {
		_ = inlineGap(p.c)
		if d.anchor == "" {
			if name, ok := p.tryParseAnchorName(); ok {
				d.anchor = name
				continue
			}
		}
		if d.tag == "" {
			tag, matched, err := p.tryParseTag()
			if err != nil {
				return decorations{}, err
			}
			if matched {
				d.tag = tag
				continue
			}
		}
		break
	}
	return d, nil
}

func (p *Parser) tryParseAnchorName() (string, bool) {
	c := p.c
	pos, eaten := c.Snapshot()
	if err := c.Sym('&'); err != nil {
		return "", false
	}
	start := c.Pos()
	if err := c.TakeWhile(isAnchorChar, cursor.AtLeast(1)); err != nil {
		c.Restore(pos, eaten)
		return "", false
	}
	return c.Slice(start, c.Pos()), true
}

func isAnchorChar(b byte) bool {
	return !isSpaceTab(b) && b != '\n' && !cursor.IsIn([]byte(",[]{}"))(b)
}

// tryParseTag matches one of: "!<verbatim-uri>", "!handle!suffix",
// "!!suffix", or the bare primary "!suffix", resolving the handle form
// against the current tag table immediately (so a later %TAG redefinition
// cannot retroactively change an already-parsed tag, matching how the
// reference implementation resolves eagerly).
func (p *Parser) tryParseTag() (string, bool, error) {
	c := p.c
	pos, eaten := c.Snapshot()
	if err := c.Sym('!'); err != nil {
		return "", false, nil
	}

	food := c.Food()
	if len(food) > 0 && food[0] == '<' {
		_ = c.Sym('<')
		start := c.Pos()
		if err := c.TakeWhile(func(b byte) bool { return b != '>' }, cursor.AtLeast(1)); err != nil {
			c.Restore(pos, eaten)
			return "", false, nil
		}
		uri := c.Slice(start, c.Pos())
		if err := c.Sym('>'); err != nil {
			return "", false, c.Terminatef("unterminated verbatim tag")
		}
		return uri, true, nil
	}

	if len(food) > 0 && food[0] == '!' {
		_ = c.Sym('!')
		start := c.Pos()
		_ = c.TakeWhile(isTagSuffixChar, cursor.AtLeast(0))
		suffix := c.Slice(start, c.Pos())
		resolved, err := p.resolveTag("!!", suffix)
		if err != nil {
			return "", false, err
		}
		return resolved, true, nil
	}

	// Either "!handle!suffix" (handle is letters/digits/-) or bare "!suffix".
	nameStart := c.Pos()
	_ = c.TakeWhile(func(b byte) bool { return cursor.IsLetter(b) || cursor.IsDigit(b) || b == '-' }, cursor.AtLeast(0))
	afterName := c.Food()
	if len(afterName) > 0 && afterName[0] == '!' {
		_ = c.Sym('!')
		handle := "!" + c.Slice(nameStart, c.Pos()-1) + "!"
		start := c.Pos()
		_ = c.TakeWhile(isTagSuffixChar, cursor.AtLeast(0))
		suffix := c.Slice(start, c.Pos())
		resolved, err := p.resolveTag(handle, suffix)
		if err != nil {
			return "", false, err
		}
		return resolved, true, nil
	}
	// Bare "!suffix": rewind to right after the leading '!' and take the
	// primary-handle suffix.
	c.Restore(pos, eaten)
	_ = c.Sym('!')
	start := c.Pos()
	_ = c.TakeWhile(isTagSuffixChar, cursor.AtLeast(0))
	suffix := c.Slice(start, c.Pos())
	resolved, err := p.resolveTag("!", suffix)
	if err != nil {
		return "", false, err
	}
	return resolved, true, nil
}

func isTagSuffixChar(b byte) bool {
	return !isSpaceTab(b) && b != '\n' && !cursor.IsIn([]byte(",[]{}"))(b)
}

// tryParseAlias matches "*name", producing an unresolved Anchor reference.
// It does not consult p.anchors: resolution happens later, explicitly,
// via Node.AsAnchor.
func (p *Parser) tryParseAlias() (Node, bool) {
	c := p.c
	pos, eaten := c.Snapshot()
	indicator := c.Indicator()
	if err := c.Sym('*'); err != nil {
		return Node{}, false
	}
	start := c.Pos()
	if err := c.TakeWhile(isAnchorChar, cursor.AtLeast(1)); err != nil {
		c.Restore(pos, eaten)
		return Node{}, false
	}
	name := c.Slice(start, c.Pos())
	c.Forward()
	return NewNode(AnchorRef(name), indicator, "", ""), true
}
