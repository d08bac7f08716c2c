package cursor_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yaml-peg/yaml-peg-go/internal/cursor"
)

func TestSymMatchesAndAdvances(t *testing.T) {
	c := cursor.New([]byte("abc"))
	require.NoError(t, c.Sym('a'))
	require.Equal(t, 1, c.Pos())
	require.NoError(t, c.Sym('b'))
	require.Equal(t, 2, c.Pos())
}

func TestSymMismatchRewindsToCheckpoint(t *testing.T) {
	c := cursor.New([]byte("abc"))
	pos, eaten := c.Snapshot()
	err := c.Sym('x')
	require.ErrorIs(t, err, cursor.ErrMismatch)
	gotPos, gotEaten := c.Snapshot()
	require.Equal(t, pos, gotPos)
	require.Equal(t, eaten, gotEaten)
}

func TestTakeWhileNeverAdvancesPastInputLength(t *testing.T) {
	c := cursor.New([]byte("aaa"))
	err := c.TakeWhile(func(b byte) bool { return b == 'a' }, cursor.AtLeast(0))
	require.NoError(t, err)
	require.LessOrEqual(t, c.Pos(), c.Len())
	require.Equal(t, 3, c.Pos())
}

func TestTakeWhileRangeRespectsUpperBound(t *testing.T) {
	c := cursor.New([]byte("aaaaa"))
	err := c.TakeWhile(func(b byte) bool { return b == 'a' }, cursor.InRange(1, 2))
	require.NoError(t, err)
	require.Equal(t, 2, c.Pos())
}

func TestTakeWhileAtLeastRejectsUnderMatch(t *testing.T) {
	c := cursor.New([]byte("a"))
	err := c.TakeWhile(func(b byte) bool { return b == 'a' }, cursor.AtLeast(2))
	require.ErrorIs(t, err, cursor.ErrMismatch)
	require.Equal(t, 0, c.Pos())
}

func TestForwardBackward(t *testing.T) {
	c := cursor.New([]byte("hello"))
	require.NoError(t, c.SymSeq([]byte("he")))
	c.Forward()
	require.NoError(t, c.SymSeq([]byte("ll")))
	c.Backward()
	require.Equal(t, 2, c.Pos())
	require.Equal(t, "", c.Text())
}

func TestIndicatorMonotonicAcrossConsume(t *testing.T) {
	c := cursor.New([]byte("abcdef"))
	require.NoError(t, c.SymSeq([]byte("abc")))
	c.Forward()
	before := c.Indicator()
	c.Consume()
	require.Equal(t, before, c.Indicator())
	require.NoError(t, c.SymSeq([]byte("def")))
	c.Forward()
	after := c.Indicator()
	require.GreaterOrEqual(t, after, before)
}

func TestPeekNeverMutatesCursor(t *testing.T) {
	c := cursor.New([]byte("abc"))
	before, _ := c.Snapshot()
	ok := c.Peek(func(c *cursor.Cursor) bool {
		_ = c.SymSeq([]byte("ab"))
		return true
	})
	require.True(t, ok)
	after, _ := c.Snapshot()
	require.Equal(t, before, after)
}

func TestContextKeepsPosOnSuccessAndRestoresEaten(t *testing.T) {
	c := cursor.New([]byte("abc"))
	require.NoError(t, c.Sym('a'))
	c.Forward()
	outerEaten := c.Pos()
	ret := cursor.Context(c, func(c *cursor.Cursor) error {
		return c.SymSeq([]byte("bc"))
	})
	require.NoError(t, ret)
	require.Equal(t, 3, c.Pos())
	_, gotEaten := c.Snapshot()
	require.Equal(t, outerEaten, gotEaten)
}

func TestIndentExtendsAndTrimsStack(t *testing.T) {
	c := cursor.New([]byte("    item"))
	c.SetIndentWidth(2)
	require.NoError(t, c.Indent(1))
	require.Equal(t, 2, c.Pos())

	c2 := cursor.New([]byte("  item"))
	c2.SetIndentWidth(2)
	require.NoError(t, c2.Indent(0))
	require.Error(t, c2.Indent(2))
}

func TestTerminateErrorCarriesOffset(t *testing.T) {
	c := cursor.New([]byte("abcdef"))
	require.NoError(t, c.SymSeq([]byte("abc")))
	err := c.Terminatef("bad thing")
	var te *cursor.TerminateError
	require.True(t, errors.As(err, &te))
	require.Equal(t, uint64(3), te.Offset)
}
