package yaml

import "github.com/yaml-peg/yaml-peg-go/internal/cursor"

// tryBlockMapping parses one or more "key: value" entries at level,
// returning (value, false, nil) if the first entry doesn't match (so the
// caller can try block sequence or a bare scalar instead). If
// firstIndentDone is true, the caller has already matched level's indent
// for the first entry (used when a value was already positioned at a
// deeper level by its enclosing mapping/sequence entry).
func (p *Parser) tryBlockMapping(level int, firstIndentDone bool) (Yaml, bool, error) {
	c := p.c
	outerPos, outerEaten := c.Snapshot()
	m := NewMap()
	first := true
	for {
		entryPos, entryEaten := c.Snapshot()
		if !first {
			if err := matchBlockGapThenIndent(c, level); err != nil {
				c.Restore(entryPos, entryEaten)
				break
			}
		} else if !firstIndentDone && c.Indent(level) != nil {
			c.Restore(outerPos, outerEaten)
			return Yaml{}, false, nil
		}

		key, value, err := p.parseBlockMappingEntry(level)
		if err != nil {
			if !first {
				c.Restore(entryPos, entryEaten)
				break
			}
			c.Restore(outerPos, outerEaten)
			return Yaml{}, false, nil
		}
		if err := m.Insert(key, value); err != nil {
			return Yaml{}, false, c.Terminatef("duplicate key in block mapping")
		}
		first = false
	}
	if m.Len() == 0 {
		c.Restore(outerPos, outerEaten)
		return Yaml{}, false, nil
	}
	c.Forward()
	return MapVal(m), true, nil
}

// parseBlockMappingEntry parses one "? key : value" / "key: value" pair,
// assuming the entry's indent has already been matched by the caller.
func (p *Parser) parseBlockMappingEntry(level int) (Node, Node, error) {
	c := p.c
	var key Node
	food := c.Food()
	if len(food) > 1 && food[0] == '?' && (isSpaceTab(food[1]) || food[1] == '\n') {
		_ = c.Sym('?')
		_ = inlineGap(c)
		k, err := p.parseBlockValueAfterIndicator(level)
		if err != nil {
			return Node{}, Node{}, err
		}
		key = k
		if err := matchBlockGapThenIndent(c, level); err != nil {
			return Node{}, Node{}, cursor.ErrMismatch
		}
		if err := c.Sym(':'); err != nil {
			return Node{}, Node{}, cursor.ErrMismatch
		}
	} else {
		k, ok, err := p.tryPlainMappingKey()
		if err != nil {
			return Node{}, Node{}, err
		}
		if !ok {
			return Node{}, Node{}, cursor.ErrMismatch
		}
		key = k
	}
	_ = inlineGap(c)
	value, err := p.parseBlockValueAfterIndicator(level)
	if err != nil {
		return Node{}, Node{}, err
	}
	return key, value, nil
}

// tryPlainMappingKey matches a scalar map key (plain or quoted, no
// decorations, no line folding) immediately followed by ':' and a
// space/newline/EOF.
func (p *Parser) tryPlainMappingKey() (Node, bool, error) {
	c := p.c
	pos, eaten := c.Snapshot()
	indicator := c.Indicator()

	var yamlVal Yaml
	food := c.Food()
	switch {
	case len(food) > 0 && food[0] == '\'':
		s, err := p.parseSingleQuoted()
		if err != nil {
			c.Restore(pos, eaten)
			return Node{}, false, nil
		}
		yamlVal = Str(s)
	case len(food) > 0 && food[0] == '"':
		s, err := p.parseDoubleQuoted()
		if err != nil {
			c.Restore(pos, eaten)
			return Node{}, false, nil
		}
		yamlVal = Str(s)
	default:
		if len(food) == 0 || !isPlainScalarStart(food) {
			c.Restore(pos, eaten)
			return Node{}, false, nil
		}
		line, err := p.scanPlainLine(false)
		if err != nil {
			c.Restore(pos, eaten)
			return Node{}, false, nil
		}
		yamlVal = classifyScalar(trimTrailingSpace(line))
	}
	if !p.atMappingColon() {
		c.Restore(pos, eaten)
		return Node{}, false, nil
	}
	_ = c.Sym(':')
	return NewNode(yamlVal, indicator, "", ""), true, nil
}

func trimTrailingSpace(s string) string {
	i := len(s)
	for i > 0 && (s[i-1] == ' ' || s[i-1] == '\t') {
		i--
	}
	return s[:i]
}

// tryBlockSequence parses one or more "- item" entries at level. See
// tryBlockMapping for firstIndentDone.
func (p *Parser) tryBlockSequence(level int, firstIndentDone bool) (Yaml, bool, error) {
	c := p.c
	outerPos, outerEaten := c.Snapshot()
	var arr Array
	first := true
	for {
		entryPos, entryEaten := c.Snapshot()
		if !first {
			if err := matchBlockGapThenIndent(c, level); err != nil {
				c.Restore(entryPos, entryEaten)
				break
			}
		} else if !firstIndentDone && c.Indent(level) != nil {
			c.Restore(outerPos, outerEaten)
			return Yaml{}, false, nil
		}
		food := c.Food()
		if len(food) == 0 || food[0] != '-' || (len(food) > 1 && !isSpaceTab(food[1]) && food[1] != '\n') {
			if first {
				c.Restore(outerPos, outerEaten)
				return Yaml{}, false, nil
			}
			c.Restore(entryPos, entryEaten)
			break
		}
		_ = c.Sym('-')
		_ = inlineGap(c)
		item, err := p.parseBlockValueAfterIndicator(level)
		if err != nil {
			return Yaml{}, false, err
		}
		arr = append(arr, item)
		first = false
	}
	if len(arr) == 0 {
		c.Restore(outerPos, outerEaten)
		return Yaml{}, false, nil
	}
	c.Forward()
	return ArrayVal(arr), true, nil
}

// parseBlockValueAfterIndicator parses the value that follows a mapping
// ':' or sequence '-' indicator: either a compact node on the same line,
// or a node on subsequent lines at a deeper indent.
func (p *Parser) parseBlockValueAfterIndicator(level int) (Node, error) {
	c := p.c
	food := c.Food()
	if len(food) == 0 || food[0] == '\n' {
		pos, eaten := c.Snapshot()
		if matchBlockGapThenIndentLevel(c, level+1) {
			return p.parseDecoratedCompactNode(level + 1)
		}
		c.Restore(pos, eaten)
		return NewNode(Null(), c.Indicator(), "", ""), nil
	}
	return p.parseDecoratedCompactNode(level)
}

// matchBlockGapThenIndent requires at least one block gap (newline, plus
// blank/comment lines) followed by exactly the indent recorded for level.
func matchBlockGapThenIndent(c *cursor.Cursor, level int) error {
	if err := blockGap(c); err != nil {
		return err
	}
	return c.Indent(level)
}

// matchBlockGapThenIndentLevel is matchBlockGapThenIndent's boolean cousin
// used where the caller wants to decide whether to descend a level without
// an error-typed return. It does not restore the cursor on failure; the
// caller takes and restores its own snapshot.
func matchBlockGapThenIndentLevel(c *cursor.Cursor, level int) bool {
	return matchBlockGapThenIndent(c, level) == nil
}
