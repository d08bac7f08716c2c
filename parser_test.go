package yaml_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	yaml "github.com/yaml-peg/yaml-peg-go"
)

func mustOne(t *testing.T, src string) yaml.Document {
	t.Helper()
	docs, err := yaml.Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	return docs[0]
}

// S1.
func TestBlockMappingPreservesInsertionOrder(t *testing.T) {
	doc := mustOne(t, "a: 1\nb: 2\n")
	m, err := doc.Root.AsMap()
	require.NoError(t, err)
	require.Equal(t, 2, m.Len())
	entries := m.Entries()
	aKey, err := entries[0].Key.AsStr()
	require.NoError(t, err)
	require.Equal(t, "a", aKey)
	bKey, err := entries[1].Key.AsStr()
	require.NoError(t, err)
	require.Equal(t, "b", bKey)

	v, err := doc.Root.IndexStr("a").AsInt()
	require.NoError(t, err)
	require.EqualValues(t, 1, v)
}

// S2.
func TestBlockSequence(t *testing.T) {
	doc := mustOne(t, "- 1\n- 2\n- 3\n")
	arr, err := doc.Root.AsArray()
	require.NoError(t, err)
	require.Len(t, arr, 3)
	for i, want := range []int64{1, 2, 3} {
		got, err := arr[i].AsInt()
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

// S3.
func TestAnchorOnRootScalar(t *testing.T) {
	doc := mustOne(t, "&x 42\n")
	require.Equal(t, "x", doc.Root.Anchor())
	v, err := doc.Root.AsInt()
	require.NoError(t, err)
	require.EqualValues(t, 42, v)
	bound, ok := doc.Anchors.Lookup("x")
	require.True(t, ok)
	require.True(t, bound.Equal(doc.Root))
}

// S4.
func TestAliasResolvesToAnchoredNode(t *testing.T) {
	doc := mustOne(t, "a: &id [1, 2]\nb: *id\n")
	a := doc.Root.IndexStr("a")
	b := doc.Root.IndexStr("b")
	resolved := b.AsAnchor(doc.Anchors)
	require.True(t, resolved.Equal(a))
}

// S5.
func TestDoubleQuotedFolding(t *testing.T) {
	doc := mustOne(t, "\"line 1\n  line 2\"\n")
	s, err := doc.Root.AsStr()
	require.NoError(t, err)
	require.Equal(t, "line 1 line 2", s)
}

// S6.
func TestUnsupportedYAMLVersionTerminates(t *testing.T) {
	_, err := yaml.Parse([]byte("%YAML 2.0\n---\nx: 1\n"))
	require.Error(t, err)
	var term *yaml.TerminateError
	require.ErrorAs(t, err, &term)
}

// S7.
func TestDuplicateFlowMappingKeyTerminates(t *testing.T) {
	_, err := yaml.Parse([]byte("{a: 1, a: 2}\n"))
	require.Error(t, err)
	var term *yaml.TerminateError
	require.ErrorAs(t, err, &term)
}

func TestEmptyInputYieldsZeroDocuments(t *testing.T) {
	docs, err := yaml.Parse([]byte(""))
	require.NoError(t, err)
	require.Len(t, docs, 0)
}

func TestBareDocumentMarkerYieldsNullRoot(t *testing.T) {
	doc := mustOne(t, "---\n")
	require.True(t, doc.Root.IsNull())
}

func TestPlainScalarColonSpaceBeginsMapping(t *testing.T) {
	doc := mustOne(t, "a: 1\n")
	_, err := doc.Root.AsMap()
	require.NoError(t, err)
}

func TestPlainScalarColonNoSpaceIsNotMapping(t *testing.T) {
	doc := mustOne(t, "a:b\n")
	s, err := doc.Root.AsStr()
	require.NoError(t, err)
	require.Equal(t, "a:b", s)
}

func TestFlowSequenceWithEmptyElements(t *testing.T) {
	doc := mustOne(t, "[1, , 3]\n")
	arr, err := doc.Root.AsArray()
	require.NoError(t, err)
	require.Len(t, arr, 3)
	require.True(t, arr[1].IsNull())
}

func TestMultiDocumentStream(t *testing.T) {
	docs, err := yaml.Parse([]byte("---\na: 1\n---\nb: 2\n"))
	require.NoError(t, err)
	require.Len(t, docs, 2)
	v, err := docs[0].Root.IndexStr("a").AsInt()
	require.NoError(t, err)
	require.EqualValues(t, 1, v)
	v, err = docs[1].Root.IndexStr("b").AsInt()
	require.NoError(t, err)
	require.EqualValues(t, 2, v)
}

func TestNestedBlockMappingValue(t *testing.T) {
	doc := mustOne(t, "a:\n  b: 1\n  c: 2\n")
	nested := doc.Root.IndexStr("a")
	v, err := nested.IndexStr("b").AsInt()
	require.NoError(t, err)
	require.EqualValues(t, 1, v)
}

func TestBlockLiteralScalar(t *testing.T) {
	doc := mustOne(t, "a: |\n  line one\n  line two\n")
	s, err := doc.Root.IndexStr("a").AsStr()
	require.NoError(t, err)
	require.Equal(t, "line one\nline two\n", s)
}

func TestBlockFoldedScalar(t *testing.T) {
	doc := mustOne(t, "a: >\n  line one\n  line two\n")
	s, err := doc.Root.IndexStr("a").AsStr()
	require.NoError(t, err)
	require.Equal(t, "line one line two\n", s)
}
