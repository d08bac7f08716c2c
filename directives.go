package yaml

import (
	"strconv"

	"github.com/yaml-peg/yaml-peg-go/internal/cursor"
)

// defaultTagTable returns the per-document tag-handle defaults: "!" expands
// to the empty (local) prefix and "!!" expands to the standard YAML tag
// repository.
func defaultTagTable() map[string]string {
	return map[string]string{
		"!":  "",
		"!!": "tag:yaml.org,2002:",
	}
}

// parseDirectives consumes zero or more "%YAML ..." / "%TAG ..." lines at
// the start of a document, updating p.tags and p.versionChecked in place.
// Directives do not cross document boundaries: the caller resets
// p.tags/p.versionChecked before calling this for each new document.
func (p *Parser) parseDirectives() error {
	for {
		matched, err := p.tryDirectiveLine()
		if err != nil {
			return err
		}
		if !matched {
			return nil
		}
	}
}

func (p *Parser) tryDirectiveLine() (bool, error) {
	c := p.c
	pos, eaten := c.Snapshot()
	if err := c.Sym('%'); err != nil {
		c.Restore(pos, eaten)
		return false, nil
	}
	nameStart := c.Pos()
	_ = c.TakeWhile(func(b byte) bool { return cursor.IsLetter(b) }, cursor.AtLeast(1))
	name := c.Slice(nameStart, c.Pos())

	var err error
	switch name {
	case "YAML":
		err = p.parseYAMLDirectiveTail()
	case "TAG":
		err = p.parseTagDirectiveTail()
	default:
		_ = c.TakeWhile(func(b byte) bool { return b != '\n' }, cursor.AtLeast(0))
	}
	if err != nil {
		return false, err
	}

	_ = inlineGap(c)
	if c.AtEOF() {
		c.Forward()
		return true, nil
	}
	if err := newline(c); err != nil {
		return false, c.Terminatef("malformed directive line")
	}
	c.Forward()
	return true, nil
}

func (p *Parser) parseYAMLDirectiveTail() error {
	c := p.c
	if err := c.TakeWhile(isSpaceTab, cursor.AtLeast(1)); err != nil {
		return c.Terminatef("expected version after %%YAML")
	}
	majorStart := c.Pos()
	if err := c.TakeWhile(cursor.IsDigit, cursor.AtLeast(1)); err != nil {
		return c.Terminatef("expected major version number")
	}
	major := c.Slice(majorStart, c.Pos())
	if err := c.Sym('.'); err != nil {
		return c.Terminatef("expected '.' in %%YAML version")
	}
	minorStart := c.Pos()
	if err := c.TakeWhile(cursor.IsDigit, cursor.AtLeast(1)); err != nil {
		return c.Terminatef("expected minor version number")
	}
	_ = c.Slice(minorStart, c.Pos())

	majorN, convErr := strconv.Atoi(major)
	if convErr != nil {
		return c.Terminatef("malformed %%YAML version")
	}
	if majorN >= 2 {
		return c.Terminatef("unsupported YAML version %d.x", majorN)
	}
	p.versionChecked = true
	return nil
}

func (p *Parser) parseTagDirectiveTail() error {
	c := p.c
	if err := c.TakeWhile(isSpaceTab, cursor.AtLeast(1)); err != nil {
		return c.Terminatef("expected handle after %%TAG")
	}
	handle, err := p.parseTagHandleLiteral()
	if err != nil {
		return c.Terminatef("malformed tag handle")
	}
	if err := c.TakeWhile(isSpaceTab, cursor.AtLeast(1)); err != nil {
		return c.Terminatef("expected prefix after tag handle")
	}
	prefixStart := c.Pos()
	if err := c.TakeWhile(func(b byte) bool { return b != ' ' && b != '\t' && b != '\n' }, cursor.AtLeast(1)); err != nil {
		return c.Terminatef("expected tag prefix")
	}
	p.tags[handle] = c.Slice(prefixStart, c.Pos())
	return nil
}

// parseTagHandleLiteral matches "!", "!!", or "!name!" and returns the
// matched handle text, including both '!' delimiters for the named form.
func (p *Parser) parseTagHandleLiteral() (string, error) {
	c := p.c
	start := c.Pos()
	if err := c.Sym('!'); err != nil {
		return "", err
	}
	_ = c.TakeWhile(func(b byte) bool {
		return cursor.IsLetter(b) || cursor.IsDigit(b) || b == '-'
	}, cursor.AtLeast(0))
	pos, eaten := c.Snapshot()
	if err := c.Sym('!'); err != nil {
		c.Restore(pos, eaten)
	}
	return c.Slice(start, c.Pos()), nil
}

// resolveTag expands a raw tag token (as produced by decorate.go's tag
// parser) against p.tags, concatenating the handle's prefix with the
// suffix. An unresolvable handle is fatal.
func (p *Parser) resolveTag(handle, suffix string) (string, error) {
	prefix, ok := p.tags[handle]
	if !ok {
		return "", p.c.Terminatef("unknown tag handle %q", handle)
	}
	return prefix + suffix, nil
}
