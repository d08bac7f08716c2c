package yaml

import "github.com/yaml-peg/yaml-peg-go/internal/cursor"

// Low-level grammar productions that compose internal/cursor's byte
// predicates into the whitespace/newline/comment vocabulary spec.md §4.2
// describes. These live in the root package, not internal/cursor, because
// several of them (comment-to-EOL in particular) are reused directly by
// the scalar and structure parsers below as part of the same grammar
// derivation, not as cursor-internal plumbing.

func isSpaceTab(b byte) bool { return cursor.IsSpaceOrTab(b) }

func isLineBreak(b byte) bool { return b == '\n' }

// newline matches one normalized line break. The driver normalizes \r\n and
// bare \r to \n before parsing begins (see normalizeNewlines), so by the
// time grammar productions run, a line break is always a single '\n' byte.
func newline(c *cursor.Cursor) error {
	return c.Sym('\n')
}

// commentToEOL matches an optional '#' comment running to (but excluding)
// the next line break or EOF.
func commentToEOL(c *cursor.Cursor) error {
	if err := c.Sym('#'); err != nil {
		return err
	}
	_ = c.TakeWhile(func(b byte) bool { return b != '\n' }, cursor.AtLeast(0))
	return nil
}

// inlineGap matches zero or more runs of horizontal whitespace, optionally
// followed by a trailing comment, all on the current line.
func inlineGap(c *cursor.Cursor) error {
	_ = c.TakeWhile(isSpaceTab, cursor.AtLeast(0))
	_ = commentToEOL(c)
	return nil
}

// blankLine matches a line containing only an inline gap, terminated by a
// newline.
func blankLine(c *cursor.Cursor) error {
	return cursor.Context(c, func(c *cursor.Cursor) error {
		_ = inlineGap(c)
		return newline(c)
	})
}

// blockGap matches one or more newlines, optionally interspersed with
// blank/comment-only lines -- the gap allowed between block-level
// constructs.
func blockGap(c *cursor.Cursor) error {
	if err := newline(c); err != nil {
		return err
	}
	for blankLine(c) == nil {
	}
	return nil
}

