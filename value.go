package yaml

import "github.com/yaml-peg/yaml-peg-go/internal/cursor"

// parseBlockNode is the top-level entry point for a node in block
// context: the document root, or a value reached by descending to a fresh
// indentation level. level's indent has not yet been matched by the
// caller; parseBlockNode matches it itself (once, as part of whichever
// alternative succeeds).
func (p *Parser) parseBlockNode(level int) (Node, error) {
	if err := p.enterDepth(); err != nil {
		return Node{}, err
	}
	defer p.leaveDepth()

	indicator := p.c.Indicator()
	if y, ok, err := p.tryBlockMapping(level, false); err != nil {
		return Node{}, err
	} else if ok {
		return NewNode(y, indicator, "", ""), nil
	}
	if y, ok, err := p.tryBlockSequence(level, false); err != nil {
		return Node{}, err
	} else if ok {
		return NewNode(y, indicator, "", ""), nil
	}

	c := p.c
	if err := c.Indent(level); err != nil {
		return Node{}, err
	}
	return p.parseDecoratedCompactNode(level)
}

// parseDecoratedCompactNode parses a single node at the cursor's current
// position (indent already accounted for): optional anchor/tag
// decoration, then an alias, a nested block collection positioned exactly
// here (the "already indented" case), a flow collection, a block scalar,
// a quoted scalar, or finally a plain scalar.
func (p *Parser) parseDecoratedCompactNode(level int) (Node, error) {
	c := p.c
	indicator := c.Indicator()

	if n, ok := p.tryParseAlias(); ok {
		return n, nil
	}

	d, err := p.parseDecorations()
	if err != nil {
		return Node{}, err
	}
	if d.anchor != "" || d.tag != "" {
		_ = inlineGap(c)
	}

	if y, ok, err := p.tryBlockMapping(level, true); err != nil {
		return Node{}, err
	} else if ok {
		return p.finishDecorated(y, indicator, d), nil
	}
	if y, ok, err := p.tryBlockSequence(level, true); err != nil {
		return Node{}, err
	} else if ok {
		return p.finishDecorated(y, indicator, d), nil
	}

	food := c.Food()
	if len(food) > 0 && (food[0] == '[' || food[0] == '{') {
		y, err := p.parseFlowNode(level)
		if err != nil {
			return Node{}, err
		}
		return p.finishDecorated(y, indicator, d), nil
	}
	if len(food) > 0 && (food[0] == '|' || food[0] == '>') {
		s, err := p.parseBlockScalar(level)
		if err != nil {
			return Node{}, err
		}
		return p.finishDecorated(Str(s), indicator, d), nil
	}
	if len(food) > 0 && food[0] == '\'' {
		s, err := p.parseSingleQuoted()
		if err != nil {
			return Node{}, err
		}
		return p.finishDecorated(Str(s), indicator, d), nil
	}
	if len(food) > 0 && food[0] == '"' {
		s, err := p.parseDoubleQuoted()
		if err != nil {
			return Node{}, err
		}
		return p.finishDecorated(Str(s), indicator, d), nil
	}
	if len(food) == 0 || food[0] == '\n' {
		return p.finishDecorated(Null(), indicator, d), nil
	}
	s, err := p.parsePlainScalar(level, false)
	if err != nil {
		if err == cursor.ErrMismatch {
			return p.finishDecorated(Null(), indicator, d), nil
		}
		return Node{}, err
	}
	return p.finishDecorated(classifyScalar(s), indicator, d), nil
}

func (p *Parser) finishDecorated(y Yaml, indicator uint64, d decorations) Node {
	n := NewNode(y, indicator, d.tag, d.anchor)
	if d.anchor != "" {
		p.defineAnchor(d.anchor, n)
	}
	return n
}
