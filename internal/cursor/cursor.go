// Package cursor implements the byte-level, backtracking PEG primitives that
// the rest of the parser is built from. It knows nothing about YAML syntax:
// it only knows how to match bytes, remember a commit point, and report an
// absolute offset for diagnostics.
//
// Grounded on Rulexec/yaml-peg-rs's Parser<'a> (src/parser/base/mod.rs): the
// same pos/eaten/consumed bookkeeping and sym/sym_set/sym_seq/take_while/
// context vocabulary, translated from Rust's Result<(), PError> into Go
// sentinel errors.
package cursor

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrMismatch is returned by any matcher that failed to match the input at
// the current position. It is always recoverable: the cursor has already
// been rewound to the position at which the failing matcher started, and
// the caller should try an alternative production. It must
// never escape a full Parse call.
var ErrMismatch = errors.New("cursor: mismatch")

// TerminateError is a fatal parse error: a production committed to a
// choice and then found the input syntactically or semantically invalid.
// It aborts the entire parse. Offset is the absolute byte offset (see
// Cursor.Indicator) at which the problem was detected.
type TerminateError struct {
	Offset  uint64
	Message string
}

func (e *TerminateError) Error() string {
	return fmt.Sprintf("yaml: %s (offset %d)", e.Message, e.Offset)
}

// Cursor owns the input slice and the indices needed to backtrack over it.
//
//   - pos is the advancing read position.
//   - eaten is the last commit point: the caller calls Forward to move it up
//     to pos once a production is definitely the right one, or Backward to
//     rewind pos back down to it on mismatch.
//   - consumed is the total number of bytes folded away by previous calls to
//     Consume, so Indicator stays an absolute offset across document
//     boundaries in a multi-document stream.
//   - indent is the block-context indent stack; see Indent.
type Cursor struct {
	doc         []byte
	pos         int
	eaten       int
	consumed    uint64
	indent      []int
	indentWidth int
}

// New creates a cursor over doc starting at offset 0 with the default
// 2-space indent width.
func New(doc []byte) *Cursor {
	return &Cursor{doc: doc, indent: []int{0}, indentWidth: 2}
}

// SetIndentWidth overrides the width used when the indent stack grows a new
// level (see Indent). Must be called before parsing begins.
func (c *Cursor) SetIndentWidth(n int) {
	if n > 0 {
		c.indentWidth = n
	}
}

// SetPos moves the starting point of the cursor, as when resuming a parse
// over a sub-slice of a larger buffer.
func (c *Cursor) SetPos(pos int) {
	if pos < 0 || pos > len(c.doc) {
		return
	}
	c.pos = pos
	c.eaten = pos
}

// Len reports the length of the underlying document.
func (c *Cursor) Len() int { return len(c.doc) }

// Pos reports the current read position.
func (c *Cursor) Pos() int { return c.pos }

// AtEOF reports whether the cursor has reached the end of the input.
func (c *Cursor) AtEOF() bool { return c.pos >= len(c.doc) }

// Food returns the unconsumed slice from pos to the end of input.
func (c *Cursor) Food() []byte { return c.doc[c.pos:] }

// Text decodes the window between the last commit point and the current
// position as UTF-8, lossily substituting the replacement character for
// invalid sequences rather than failing.
func (c *Cursor) Text() string {
	if c.eaten < c.pos {
		return lossyUTF8(c.doc[c.eaten:c.pos])
	}
	return ""
}

// Slice decodes an arbitrary [start, end) byte range of the current
// document window as UTF-8, lossily. Grammar productions that match a
// token in several separate TakeWhile calls (so the token isn't one
// contiguous eaten-to-pos run) use this to recover the matched text by
// position rather than threading a builder through every call.
func (c *Cursor) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(c.doc) {
		end = len(c.doc)
	}
	if start >= end {
		return ""
	}
	return lossyUTF8(c.doc[start:end])
}

// Forward commits: the text between the previous commit point and pos is
// accepted, and eaten catches up to pos.
func (c *Cursor) Forward() { c.eaten = c.pos }

// Backward rewinds: pos is restored to the last commit point, discarding
// any speculative advancement.
func (c *Cursor) Backward() { c.pos = c.eaten }

// Snapshot captures (pos, eaten) so the caller can restore them later with
// Restore. This is the primitive behind every backtracking alternative:
// save, try, restore on failure.
func (c *Cursor) Snapshot() (pos, eaten int) { return c.pos, c.eaten }

// Restore resets pos and eaten to a previously captured Snapshot.
func (c *Cursor) Restore(pos, eaten int) {
	c.pos = pos
	c.eaten = eaten
}

// Consume folds the eaten prefix into the running consumed total and resets
// the (pos, eaten) window to zero, keeping Indicator an absolute offset
// across document boundaries without the next document's cursor needing to
// know how long the previous ones were.
func (c *Cursor) Consume() {
	c.Forward()
	c.consumed += uint64(c.eaten)
	c.doc = c.doc[c.eaten:]
	c.pos = 0
	c.eaten = 0
}

// Indicator returns the absolute byte offset of the current position,
// suitable for error messages and Node.Pos.
func (c *Cursor) Indicator() uint64 {
	return c.consumed + uint64(c.pos)
}

// Terminatef builds a TerminateError pinned to the current indicator.
func (c *Cursor) Terminatef(format string, args ...any) error {
	return &TerminateError{Offset: c.Indicator(), Message: fmt.Sprintf(format, args...)}
}

// Peek runs f with pos and eaten both restored afterwards regardless of
// outcome -- a pure non-consuming lookahead. Unlike Context (which keeps a
// successful f's advancement of pos), Peek is for "does the input ahead
// look like X" questions that must never move the cursor, such as
// disambiguating a block-mapping key from a plain scalar.
func (c *Cursor) Peek(f func(*Cursor) bool) bool {
	pos, eaten := c.Snapshot()
	ok := f(c)
	c.Restore(pos, eaten)
	return ok
}

// Context runs f in a scope whose commit point (eaten) is local to the
// call: on entry the current eaten position is saved and forward() is
// called, so f's own Forward/Backward calls operate against a fresh
// baseline; on return the outer eaten is restored. Any advancement of pos
// that f made is kept only if f succeeds: when Ret is an error type and f
// returns a non-nil error, pos is restored to where it was on entry. This
// is what lets a sub-production (e.g. a single escape sequence) manage its
// own commit/rewind without disturbing the enclosing production's commit
// point.
func Context[Ret any](c *Cursor, f func(*Cursor) Ret) Ret {
	pos, eaten := c.pos, c.eaten
	c.Forward()
	r := f(c)
	if err, ok := any(r).(error); ok && err != nil {
		c.pos = pos
	}
	c.eaten = eaten
	return r
}

// Sym matches a single byte.
func (c *Cursor) Sym(b byte) error {
	return c.SymSet([]byte{b})
}

// SymSet matches a single byte belonging to set.
func (c *Cursor) SymSet(set []byte) error {
	return c.TakeWhile(IsIn(set), One())
}

// SymSeq matches an exact byte sequence, one byte at a time so a partial
// match rewinds on the byte that actually mismatched.
func (c *Cursor) SymSeq(seq []byte) error {
	for _, b := range seq {
		if err := c.Sym(b); err != nil {
			return err
		}
	}
	return nil
}

// TakeOpt selects the quantifier TakeWhile applies.
type TakeOpt struct {
	kind takeKind
	lo   int
	hi   int
}

type takeKind int

const (
	kindOne takeKind = iota
	kindRange
	kindMore
)

// One matches exactly one byte satisfying the predicate.
func One() TakeOpt { return TakeOpt{kind: kindOne} }

// InRange matches between lo and hi (inclusive) bytes, greedily. InRange(0, 1)
// is the regex `?`.
func InRange(lo, hi int) TakeOpt { return TakeOpt{kind: kindRange, lo: lo, hi: hi} }

// AtLeast matches greedily until the predicate fails, then requires at
// least lo matches. AtLeast(0) is regex `*`, AtLeast(1) is regex `+`.
func AtLeast(lo int) TakeOpt { return TakeOpt{kind: kindMore, lo: lo} }

// TakeWhile is the core quantified matcher: it greedily consumes bytes
// satisfying pred according to opt, advancing pos on success. On
// under-match it rewinds pos to where this call started and returns
// ErrMismatch.
func (c *Cursor) TakeWhile(pred func(byte) bool, opt TakeOpt) error {
	start := c.pos
	count := 0
	for _, b := range c.Food() {
		if !pred(b) {
			break
		}
		c.pos++
		count++
		if opt.kind == kindOne {
			break
		}
		if opt.kind == kindRange && count == opt.hi {
			break
		}
	}
	if c.pos == start {
		if (opt.kind == kindMore || opt.kind == kindRange) && opt.lo == 0 {
			return nil
		}
		c.pos = start
		return ErrMismatch
	}
	if (opt.kind == kindMore || opt.kind == kindRange) && count < opt.lo {
		c.pos = start
		return ErrMismatch
	}
	return nil
}

// IsIn returns a predicate matching any byte in set.
func IsIn(set []byte) func(byte) bool {
	return func(b byte) bool {
		for _, s := range set {
			if b == s {
				return true
			}
		}
		return false
	}
}

// NotIn returns a predicate matching any byte absent from set.
func NotIn(set []byte) func(byte) bool {
	in := IsIn(set)
	return func(b byte) bool { return !in(b) }
}

// Indent matches the indentation expected at the given nesting level.
//
// The indent stack records, per level, the column width committed the
// first time that level was entered; matching the same level again must
// consume exactly that many space bytes. Descending to a deeper level than
// has ever been seen extends the stack (each newly introduced level gets
// the cursor's configured indent width); returning to a shallower level
// trims the stack back down, so a later re-entry to a deeper level picks a
// fresh width rather than reusing a stale one.
//
// Grounded on yaml-peg-rs's Parser::ind (src/parser/base/mod.rs), with one
// deliberate divergence: the original hardcodes a width of 2 for newly
// introduced levels; this port uses the cursor's configured indentWidth
// instead, so Config.Indent is actually honored. See DESIGN.md.
func (c *Cursor) Indent(level int) error {
	if level >= len(c.indent) {
		for i := len(c.indent); i <= level; i++ {
			c.indent = append(c.indent, c.indentWidth)
		}
	} else {
		c.indent = c.indent[:level+1]
	}
	total := 0
	for _, w := range c.indent[:level+1] {
		total += w
	}
	for i := 0; i < total; i++ {
		if err := c.Sym(' '); err != nil {
			return err
		}
	}
	return nil
}

// IndentWidth reports the configured per-level indent width.
func (c *Cursor) IndentWidth() int { return c.indentWidth }

func lossyUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return strings.ToValidUTF8(string(b), string(utf8.RuneError))
}
