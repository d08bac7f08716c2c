package fuzz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	yaml "github.com/yaml-peg/yaml-peg-go"
	yamlv3 "gopkg.in/yaml.v3"
)

// seedCorpus mirrors the shapes the teacher's own fuzz corpus exercises:
// scalars of every core kind, flow and block collections, anchors/aliases,
// tags, directives, and a handful of malformed/edge inputs.
var seedCorpus = []string{
	`{}`,
	`v: hi`,
	`v: true`,
	`v: 10`,
	`v: 0xA`,
	`v: 0.1`,
	`v: .1`,
	`v: .inf`,
	`v: -.inf`,
	`v: .nan`,
	`v: -10`,
	`v: -.1`,
	`123`,
	`canonical: 6.8523e+5`,
	`fixed: 685230.15`,
	`empty:`,
	`canonical: ~`,
	`english: null`,
	`seq: [A,B]`,
	`seq: [A,B,C,]`,
	"seq:\n - A\n - B",
	"seq:\n - A\n - B\n - C",
	"a: {b: c}",
	"a: {b: c, 1: d}",
	"a: [b,c,d]",
	"int_max: 2147483647",
	"int_min: -2147483648",
	"'1': '\"2\"'",
	"v:\n- A\n- 'B\n\n  C'\n",
	"foo: ''",
	"foo: null",
	"a: &x 1\nb: &y 2\nc: *x\nd: *y\n",
	"a: &a {c: 1}\nb: *a",
	"a: &a [1, 2]\nb: *a",
	"a: 1:1\n",
	"a: b\r\nc:\r\n- d\r\n- e\r\n",
	"---\na: 1\n---\nb: 2\n",
	"%YAML 1.2\n---\nv: 1\n",
	"{a: 1, a: 2}",
	"a: |\n  line one\n  line two\n",
	"a: >\n  line one\n  line two\n",
}

func FuzzParseAcceptance(f *testing.F) {
	for _, s := range seedCorpus {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, data string) {
		checkAcceptance(t, data)
	})
}

func FuzzScalarClassification(f *testing.F) {
	for _, s := range seedCorpus {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, data string) {
		checkScalarClassification(t, data)
	})
}

// checkAcceptance asserts that this parser never panics. When Parse
// accepts the input, the input is also decoded with gopkg.in/yaml.v3 (the
// reference implementation fuzzed by the teacher), but whether yaml.v3
// accepts or rejects it is not asserted.
func checkAcceptance(t *testing.T, data string) {
	t.Helper()
	var recovered any
	func() {
		defer func() { recovered = recover() }()
		_, _ = yaml.Parse([]byte(data))
	}()
	require.Nil(t, recovered, "Parse must never panic")

	_, ourErr := yaml.Parse([]byte(data))
	if ourErr != nil {
		return
	}
	var dec []yamlv3.Node
	d := yamlv3.NewDecoder(strings.NewReader(data))
	for {
		var n yamlv3.Node
		err := d.Decode(&n)
		if err != nil {
			break
		}
		dec = append(dec, n)
	}
	_ = dec // presence of a v3 parse failure is not itself asserted; see doc comment
}

// checkScalarClassification compares this parser's root-scalar Kind against
// yaml.v3's resolved tag for single-document, single-scalar inputs, the one
// shape where "what kind of scalar is this" is unambiguous between a
// core-schema parser and yaml.v3's more permissive resolver.
func checkScalarClassification(t *testing.T, data string) {
	t.Helper()
	trimmed := strings.TrimSpace(data)
	if trimmed == "" || strings.ContainsAny(trimmed, "\n:{}[]-") {
		return
	}

	docs, err := yaml.Parse([]byte(data))
	if err != nil || len(docs) != 1 {
		return
	}
	root := docs[0].Root
	if root.Value().Kind() == yaml.KindArray || root.Value().Kind() == yaml.KindMap {
		return
	}

	var v3node yamlv3.Node
	if err := yamlv3.Unmarshal([]byte(data), &v3node); err != nil {
		return
	}
	if v3node.Kind != yamlv3.ScalarNode {
		return
	}

	switch v3node.Tag {
	case "!!null":
		require.Equal(t, yaml.KindNull, root.Value().Kind())
	case "!!bool":
		require.Equal(t, yaml.KindBool, root.Value().Kind())
	case "!!int":
		require.Equal(t, yaml.KindInt, root.Value().Kind())
	case "!!float":
		require.Equal(t, yaml.KindFloat, root.Value().Kind())
	}
}
