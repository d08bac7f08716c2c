package yaml_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	yaml "github.com/yaml-peg/yaml-peg-go"
)

// Invariant 4: Node equality ignores pos/ty/anchor.
func TestNodeEqualityIgnoresDecoration(t *testing.T) {
	a := yaml.NewNode(yaml.Str("x"), 0, "", "")
	b := yaml.NewNode(yaml.Str("x"), 7, "my-type", "my-anchor")
	require.True(t, a.Equal(b))
}

// Invariant 5 / S7 at the Map level.
func TestMapInsertRejectsDuplicateKey(t *testing.T) {
	m := yaml.NewMap()
	key := yaml.NewNode(yaml.Str("a"), 0, "", "")
	require.NoError(t, m.Insert(key, yaml.NewNode(yaml.Int("1"), 0, "", "")))
	require.Error(t, m.Insert(key, yaml.NewNode(yaml.Int("2"), 0, "", "")))
}

func TestStrEmptyAndNullAreDistinct(t *testing.T) {
	empty := yaml.Str("")
	null := yaml.Null()
	require.False(t, empty.Equal(null))
}

func TestIndexInfallibleReturnsSelfOnMiss(t *testing.T) {
	n := yaml.NewNode(yaml.Null(), 0, "", "")
	got := n.Index(0).IndexStr("a").Index(3)
	require.True(t, got.Equal(n))
}

func TestGetDescendsMapChain(t *testing.T) {
	inner := yaml.NewMap()
	require.NoError(t, inner.Insert(yaml.NewNode(yaml.Str("b"), 0, "", ""), yaml.NewNode(yaml.Int("30"), 0, "", "")))
	outer := yaml.NewMap()
	require.NoError(t, outer.Insert(yaml.NewNode(yaml.Str("a"), 0, "", ""), yaml.NewNode(yaml.MapVal(inner), 0, "", "")))
	root := yaml.NewNode(yaml.MapVal(outer), 0, "", "")

	got, err := root.Get("a", "b")
	require.NoError(t, err)
	v, err := got.AsInt()
	require.NoError(t, err)
	require.EqualValues(t, 30, v)
}

func TestGetMissingKeyErrors(t *testing.T) {
	outer := yaml.NewMap()
	root := yaml.NewNode(yaml.MapVal(outer), 5, "", "")
	_, err := root.Get("missing")
	require.Error(t, err)
	var accessErr *yaml.AccessError
	require.ErrorAs(t, err, &accessErr)
	require.EqualValues(t, 5, accessErr.Pos)
}

func TestGetDefaultReturnsDefaultOnlyForMissingFinalKey(t *testing.T) {
	inner := yaml.NewMap()
	require.NoError(t, inner.Insert(yaml.NewNode(yaml.Str("b"), 0, "", ""), yaml.NewNode(yaml.Str("c"), 0, "", "")))
	a := yaml.NewMap()
	require.NoError(t, a.Insert(yaml.NewNode(yaml.Str("a"), 0, "", ""), yaml.NewNode(yaml.MapVal(inner), 0, "", "")))
	rootA := yaml.NewNode(yaml.MapVal(a), 0, "", "")

	got, err := yaml.GetDefault(rootA, []string{"a", "b"}, "d", yaml.Node.AsStr)
	require.NoError(t, err)
	require.Equal(t, "c", got)

	emptyInner := yaml.NewMap()
	b := yaml.NewMap()
	require.NoError(t, b.Insert(yaml.NewNode(yaml.Str("a"), 0, "", ""), yaml.NewNode(yaml.MapVal(emptyInner), 0, "", "")))
	rootB := yaml.NewNode(yaml.MapVal(b), 0, "", "")

	got, err = yaml.GetDefault(rootB, []string{"a", "b"}, "d", yaml.Node.AsStr)
	require.NoError(t, err)
	require.Equal(t, "d", got)

	wrongType := yaml.NewMap()
	require.NoError(t, wrongType.Insert(yaml.NewNode(yaml.Str("b"), 0, "", ""), yaml.NewNode(yaml.Float("20.0"), 0, "", "")))
	c := yaml.NewMap()
	require.NoError(t, c.Insert(yaml.NewNode(yaml.Str("a"), 0, "", ""), yaml.NewNode(yaml.MapVal(wrongType), 0, "", "")))
	rootC := yaml.NewNode(yaml.MapVal(c), 0, "", "")

	_, err = yaml.GetDefault(rootC, []string{"a", "b"}, "d", yaml.Node.AsStr)
	require.Error(t, err)
}

func TestAsValueStringyView(t *testing.T) {
	cases := []struct {
		y    yaml.Yaml
		want string
	}{
		{yaml.Str("abc"), "abc"},
		{yaml.Int("123"), "123"},
		{yaml.Float("12.04"), "12.04"},
		{yaml.Bool(true), "true"},
		{yaml.Bool(false), "false"},
		{yaml.Null(), ""},
	}
	for _, tc := range cases {
		n := yaml.NewNode(tc.y, 0, "", "")
		got, err := n.AsValue()
		require.NoError(t, err)
		require.Equal(t, tc.want, got)
	}
}

func TestAsAnchorReturnsSelfWhenUnbound(t *testing.T) {
	n := yaml.NewNode(yaml.AnchorRef("missing"), 0, "", "")
	table := yaml.NewAnchorTable()
	require.True(t, n.AsAnchor(table).Equal(n))
}
