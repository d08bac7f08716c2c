package yaml

import "github.com/yaml-peg/yaml-peg-go/internal/cursor"

// parseFlowNode parses a single node in flow context: a nested flow
// collection, a quoted scalar, an alias, or a plain scalar bounded by
// flowStopSet. Decorations (anchor/tag) are handled by the caller via
// parseDecoratedFlowNode (flow context) or parseDecoratedCompactNode (block
// context), both of which use parseDecorations.
func (p *Parser) parseFlowNode(level int) (Yaml, error) {
	c := p.c

	if y, ok, err := p.tryFlowSequence(level); ok || err != nil {
		return y, err
	}
	if y, ok, err := p.tryFlowMapping(level); ok || err != nil {
		return y, err
	}
	if food := c.Food(); len(food) > 0 && food[0] == '\'' {
		s, err := p.parseSingleQuoted()
		if err != nil {
			return Yaml{}, err
		}
		return Str(s), nil
	}
	if food := c.Food(); len(food) > 0 && food[0] == '"' {
		s, err := p.parseDoubleQuoted()
		if err != nil {
			return Yaml{}, err
		}
		return Str(s), nil
	}
	s, err := p.parsePlainScalar(level, true)
	if err != nil {
		return Yaml{}, err
	}
	return classifyScalar(s), nil
}

func (p *Parser) tryFlowSequence(level int) (Yaml, bool, error) {
	c := p.c
	pos, eaten := c.Snapshot()
	if err := c.Sym('['); err != nil {
		return Yaml{}, false, nil
	}
	var arr Array
	_ = inlineGapMulti(c)
	if food := c.Food(); len(food) > 0 && food[0] == ']' {
		_ = c.Sym(']')
		c.Forward()
		return ArrayVal(arr), true, nil
	}
	for {
		_ = inlineGapMulti(c)
		if food := c.Food(); len(food) > 0 && (food[0] == ',' || food[0] == ']') {
			arr = append(arr, NewNode(Null(), c.Indicator(), "", ""))
		} else {
			n, err := p.parseDecoratedFlowNode(level)
			if err != nil {
				c.Restore(pos, eaten)
				return Yaml{}, false, err
			}
			arr = append(arr, n)
		}
		_ = inlineGapMulti(c)
		food := c.Food()
		if len(food) > 0 && food[0] == ',' {
			_ = c.Sym(',')
			_ = inlineGapMulti(c)
			if food := c.Food(); len(food) > 0 && food[0] == ']' {
				_ = c.Sym(']')
				break
			}
			continue
		}
		if len(food) > 0 && food[0] == ']' {
			_ = c.Sym(']')
			break
		}
		return Yaml{}, false, c.Terminatef("expected ',' or ']' in flow sequence")
	}
	c.Forward()
	return ArrayVal(arr), true, nil
}

func (p *Parser) tryFlowMapping(level int) (Yaml, bool, error) {
	c := p.c
	pos, eaten := c.Snapshot()
	if err := c.Sym('{'); err != nil {
		return Yaml{}, false, nil
	}
	m := NewMap()
	_ = inlineGapMulti(c)
	if food := c.Food(); len(food) > 0 && food[0] == '}' {
		_ = c.Sym('}')
		c.Forward()
		return MapVal(m), true, nil
	}
	for {
		_ = inlineGapMulti(c)
		key, value, err := p.parseFlowPair(level)
		if err != nil {
			c.Restore(pos, eaten)
			return Yaml{}, false, err
		}
		if err := m.Insert(key, value); err != nil {
			return Yaml{}, false, c.Terminatef("duplicate key in flow mapping")
		}
		_ = inlineGapMulti(c)
		food := c.Food()
		if len(food) > 0 && food[0] == ',' {
			_ = c.Sym(',')
			_ = inlineGapMulti(c)
			if food := c.Food(); len(food) > 0 && food[0] == '}' {
				_ = c.Sym('}')
				break
			}
			continue
		}
		if len(food) > 0 && food[0] == '}' {
			_ = c.Sym('}')
			break
		}
		return Yaml{}, false, c.Terminatef("expected ',' or '}' in flow mapping")
	}
	c.Forward()
	return MapVal(m), true, nil
}

// parseFlowPair parses one "k: v", "k" alone (value Null), ": v" (key
// Null), or "? k : v" entry of a flow mapping.
func (p *Parser) parseFlowPair(level int) (Node, Node, error) {
	c := p.c
	if food := c.Food(); len(food) > 0 && food[0] == '?' {
		_ = c.Sym('?')
		_ = inlineGapMulti(c)
		key, err := p.parseDecoratedFlowNode(level)
		if err != nil {
			return Node{}, Node{}, err
		}
		_ = inlineGapMulti(c)
		value, err := p.parseFlowValueTail(level)
		if err != nil {
			return Node{}, Node{}, err
		}
		return key, value, nil
	}
	if food := c.Food(); len(food) > 0 && food[0] == ':' {
		key := NewNode(Null(), c.Indicator(), "", "")
		value, err := p.parseFlowValueTail(level)
		if err != nil {
			return Node{}, Node{}, err
		}
		return key, value, nil
	}
	key, err := p.parseDecoratedFlowNode(level)
	if err != nil {
		return Node{}, Node{}, err
	}
	_ = inlineGapMulti(c)
	food := c.Food()
	if len(food) == 0 || food[0] == ',' || food[0] == '}' || food[0] == ']' {
		return key, NewNode(Null(), c.Indicator(), "", ""), nil
	}
	value, err := p.parseFlowValueTail(level)
	if err != nil {
		return Node{}, Node{}, err
	}
	return key, value, nil
}

func (p *Parser) parseFlowValueTail(level int) (Node, error) {
	c := p.c
	if err := c.Sym(':'); err != nil {
		return Node{}, c.Terminatef("expected ':' in flow mapping entry")
	}
	_ = inlineGapMulti(c)
	food := c.Food()
	if len(food) == 0 || food[0] == ',' || food[0] == '}' || food[0] == ']' {
		return NewNode(Null(), c.Indicator(), "", ""), nil
	}
	return p.parseDecoratedFlowNode(level)
}

// parseDecoratedFlowNode handles an optional alias or anchor/tag
// decoration around a flow node, mirroring parseDecoratedCompactNode for
// block context.
func (p *Parser) parseDecoratedFlowNode(level int) (Node, error) {
	c := p.c
	indicator := c.Indicator()
	if n, ok := p.tryParseAlias(); ok {
		return n, nil
	}
	d, err := p.parseDecorations()
	if err != nil {
		return Node{}, err
	}
	_ = inlineGapMulti(c)
	y, err := p.parseFlowNode(level)
	if err != nil {
		return Node{}, err
	}
	n := NewNode(y, indicator, d.tag, d.anchor)
	if d.anchor != "" {
		p.defineAnchor(d.anchor, n)
	}
	return n, nil
}

// inlineGapMulti is inlineGap extended across line breaks, which flow
// collections permit freely between tokens.
func inlineGapMulti(c *cursor.Cursor) error {
	for {
		_ = inlineGap(c)
		pos, eaten := c.Snapshot()
		if newline(c) != nil {
			c.Restore(pos, eaten)
			return nil
		}
	}
}
