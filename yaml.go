package yaml

import "fmt"

// Kind discriminates the Yaml sum type. Go has no tagged unions, so Yaml is
// a struct carrying Kind plus whichever fields that Kind uses; Kind is what
// a Rust `match` on the original `YamlBase` enum becomes here.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindStr
	KindArray
	KindMap
	// KindAnchor is an unresolved alias reference carrying the anchor
	// name; see Node.AsAnchor.
	KindAnchor
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindStr:
		return "str"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindAnchor:
		return "anchor"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Yaml is the value half of a Node: a tagged union of the YAML 1.2 core
// data model. Int and Float store the lexical digit sequence exactly as it
// appeared in the source, not a parsed numeric value -- this preserves the
// author's radix, precision, and leading zeros, and lets Node.AsInt /
// Node.AsFloat parse on demand. Str holds decoded text (escapes resolved,
// folding applied).
type Yaml struct {
	kind Kind
	b    bool
	text string // Int/Float lexeme, Str contents, or Anchor name
	arr  Array
	m    *Map
}

// Null returns the Yaml null value.
func Null() Yaml { return Yaml{kind: KindNull} }

// Bool wraps a boolean value.
func Bool(v bool) Yaml { return Yaml{kind: KindBool, b: v} }

// Int wraps the lexical form of an integer literal.
func Int(lexeme string) Yaml { return Yaml{kind: KindInt, text: lexeme} }

// Float wraps the lexical form of a float literal.
func Float(lexeme string) Yaml { return Yaml{kind: KindFloat, text: lexeme} }

// Str wraps a decoded string value.
func Str(s string) Yaml { return Yaml{kind: KindStr, text: s} }

// ArrayVal wraps an ordered sequence of nodes.
func ArrayVal(a Array) Yaml { return Yaml{kind: KindArray, arr: a} }

// MapVal wraps an ordered mapping. m must not be nil.
func MapVal(m *Map) Yaml { return Yaml{kind: KindMap, m: m} }

// AnchorRef wraps an unresolved alias reference to the named anchor.
func AnchorRef(name string) Yaml { return Yaml{kind: KindAnchor, text: name} }

// Kind reports which variant this value holds.
func (y Yaml) Kind() Kind { return y.kind }

// Equal reports structural equality: the comparison YAML's data model uses
// for map key uniqueness and Node equality. Two Array or Map values are
// equal when their elements/entries are (recursively structurally) equal;
// Map equality ignores entry order, since a mapping is a set of pairs, not
// a sequence of them.
func (y Yaml) Equal(o Yaml) bool {
	if y.kind != o.kind {
		return false
	}
	switch y.kind {
	case KindNull:
		return true
	case KindBool:
		return y.b == o.b
	case KindInt, KindFloat, KindStr, KindAnchor:
		return y.text == o.text
	case KindArray:
		return y.arr.equal(o.arr)
	case KindMap:
		return y.m.equal(o.m)
	default:
		return false
	}
}

// fingerprint returns a canonical string such that two Yaml values are
// Equal iff their fingerprints match. Used internally for map key indexing
// and duplicate-key detection; never exposed, since it is an
// implementation detail of how Map achieves near-O(1) lookup rather than a
// promise about node hashing.
func (y Yaml) fingerprint() string {
	switch y.kind {
	case KindNull:
		return "~"
	case KindBool:
		if y.b {
			return "b:t"
		}
		return "b:f"
	case KindInt:
		return "i:" + y.text
	case KindFloat:
		return "f:" + y.text
	case KindStr:
		return "s:" + y.text
	case KindAnchor:
		return "a:" + y.text
	case KindArray:
		return y.arr.fingerprint()
	case KindMap:
		return y.m.fingerprint()
	default:
		return ""
	}
}
