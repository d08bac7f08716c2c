package yaml

import (
	"math"
	"strconv"
	"strings"
)

// Node is an immutable, position- and type-decorated wrapper around a Yaml
// value: (yaml, pos, ty, anchor). Two nodes compare Equal (and fingerprint
// identically for map-key purposes) when their yaml payloads are
// structurally equal; pos, ty, and anchor are ignored, which is what lets
// the same logical key appear in a map regardless of where it was first
// written or whether it carries a tag or anchor.
//
// Node is cheap to copy: Array and Map store their children by value/
// pointer respectively, so copying a Node never deep-copies the subtree it
// roots.
type Node struct {
	yaml   Yaml
	pos    uint64
	ty     string
	anchor string
}

// NewNode builds a Node from its four parts. ty and anchor are the empty
// string when absent.
func NewNode(y Yaml, pos uint64, ty, anchor string) Node {
	return Node{yaml: y, pos: pos, ty: ty, anchor: anchor}
}

// Pos is the byte offset, in the original input, of the first character
// that produced this node.
func (n Node) Pos() uint64 { return n.pos }

// Ty is the node's fully resolved type tag URI (after handle expansion),
// or the empty string if untagged.
func (n Node) Ty() string { return n.ty }

// Anchor is the node's anchor name, or the empty string if it has none.
func (n Node) Anchor() string { return n.anchor }

// Value returns the underlying Yaml payload.
func (n Node) Value() Yaml { return n.yaml }

// Equal is structural equality over the Yaml payload only; see the Node
// doc comment.
func (n Node) Equal(o Node) bool { return n.yaml.Equal(o.yaml) }

// IsNull reports whether this node's value is Null.
func (n Node) IsNull() bool { return n.yaml.kind == KindNull }

// AsBool returns the boolean value, or an AccessError at n.Pos if the node
// is not a Bool.
func (n Node) AsBool() (bool, error) {
	if n.yaml.kind != KindBool {
		return false, accessErr(n.pos)
	}
	return n.yaml.b, nil
}

// AsInt parses the stored lexical integer form (handling the 0o/0x radix
// prefixes classification recognizes) to an int64. Returns an AccessError
// at n.Pos if the node is not an Int or the lexeme does not parse.
func (n Node) AsInt() (int64, error) {
	if n.yaml.kind != KindInt {
		return 0, accessErr(n.pos)
	}
	v, err := parseIntLexeme(n.yaml.text)
	if err != nil {
		return 0, accessErr(n.pos)
	}
	return v, nil
}

// AsFloat parses the stored lexical float form to a float64. Returns an
// AccessError at n.Pos if the node is not a Float or the lexeme does not
// parse.
func (n Node) AsFloat() (float64, error) {
	if n.yaml.kind != KindFloat {
		return 0, accessErr(n.pos)
	}
	v, err := parseFloatLexeme(n.yaml.text)
	if err != nil {
		return 0, accessErr(n.pos)
	}
	return v, nil
}

// AsNumber parses either an Int or a Float lexeme to a float64, so callers
// that accept either numeric variant don't need two call sites.
func (n Node) AsNumber() (float64, error) {
	switch n.yaml.kind {
	case KindInt:
		v, err := parseIntLexeme(n.yaml.text)
		if err != nil {
			return 0, accessErr(n.pos)
		}
		return float64(v), nil
	case KindFloat:
		v, err := parseFloatLexeme(n.yaml.text)
		if err != nil {
			return 0, accessErr(n.pos)
		}
		return v, nil
	default:
		return 0, accessErr(n.pos)
	}
}

// AsStr returns the inner string for a Str node, or the empty string for a
// Null node (so a caller can distinguish "absent" from "error" by checking
// IsNull separately if that matters). Any other variant is an AccessError.
func (n Node) AsStr() (string, error) {
	switch n.yaml.kind {
	case KindStr:
		return n.yaml.text, nil
	case KindNull:
		return "", nil
	default:
		return "", accessErr(n.pos)
	}
}

// AsValue is a stringy view across the scalar variants: Str and Int/Float
// return their lexeme, Bool returns "true"/"false", Null returns "". Any
// other variant is an AccessError.
func (n Node) AsValue() (string, error) {
	switch n.yaml.kind {
	case KindStr, KindInt, KindFloat:
		return n.yaml.text, nil
	case KindBool:
		if n.yaml.b {
			return "true", nil
		}
		return "false", nil
	case KindNull:
		return "", nil
	default:
		return "", accessErr(n.pos)
	}
}

// AsArray returns the inner Array, or an AccessError if the node is not an
// Array.
func (n Node) AsArray() (Array, error) {
	if n.yaml.kind != KindArray {
		return nil, accessErr(n.pos)
	}
	return n.yaml.arr, nil
}

// AsMap returns the inner Map, or an AccessError if the node is not a Map.
func (n Node) AsMap() (*Map, error) {
	if n.yaml.kind != KindMap {
		return nil, accessErr(n.pos)
	}
	return n.yaml.m, nil
}

// AsAnchor resolves an Anchor-variant node against table. If n is not an
// Anchor, or the anchor name is not bound, n itself is returned -- anchor
// resolution is explicit (callers opt in by calling this), never implicit
// during parsing.
func (n Node) AsAnchor(table AnchorTable) Node {
	if n.yaml.kind != KindAnchor {
		return n
	}
	if bound, ok := table[n.yaml.text]; ok {
		return bound
	}
	return n
}

// Index performs infallible positional navigation: for an Array it returns
// the element at i; for a Map it looks up the entry whose key is the
// integer i written as a decimal string (matching how a block-sequence
// style index would appear as a map key); for anything else, or an
// out-of-range/missing index, it returns n itself. This lets chained
// navigation like n.Index(0).IndexStr("b") collapse to a self-referential
// sink instead of panicking or requiring an error check at every step.
func (n Node) Index(i int) Node {
	switch n.yaml.kind {
	case KindArray:
		if i >= 0 && i < len(n.yaml.arr) {
			return n.yaml.arr[i]
		}
		return n
	case KindMap:
		if v, ok := n.yaml.m.Get(Node{yaml: Int(strconv.Itoa(i))}); ok {
			return v
		}
		return n
	default:
		return n
	}
}

// IndexStr performs infallible keyed navigation: for a Map it returns the
// entry at key k, or n itself if absent or if n is not a Map.
func (n Node) IndexStr(k string) Node {
	if n.yaml.kind != KindMap {
		return n
	}
	if v, ok := n.yaml.m.GetStr(k); ok {
		return v
	}
	return n
}

// Get descends a chain of string map keys, returning an AccessError at the
// position of the node where the chain broke (missing key, or a
// non-Map encountered before the path is exhausted).
func (n Node) Get(path ...string) (Node, error) {
	cur := n
	for _, key := range path {
		m, err := cur.AsMap()
		if err != nil {
			return Node{}, err
		}
		v, ok := m.GetStr(key)
		if !ok {
			return Node{}, accessErr(cur.pos)
		}
		cur = v
	}
	return cur, nil
}

// GetDefault is Get, but a missing key anywhere along path yields def
// instead of an error; a present-but-wrong-variant value, or a non-Map
// encountered while a key still remains, still errors via the map-descent
// or project. project turns the located Node into the caller's desired
// type, e.g. Node.AsStr.
func GetDefault[T any](n Node, path []string, def T, project func(Node) (T, error)) (T, error) {
	if len(path) == 0 {
		return project(n)
	}
	cur := n
	for i, key := range path {
		m, err := cur.AsMap()
		if err != nil {
			var zero T
			return zero, err
		}
		v, ok := m.GetStr(key)
		if !ok {
			return def, nil
		}
		if i == len(path)-1 {
			cur = v
			break
		}
		cur = v
	}
	return project(cur)
}

func parseIntLexeme(lexeme string) (int64, error) {
	s := lexeme
	neg := false
	if strings.HasPrefix(s, "+") {
		s = s[1:]
	} else if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var v int64
	var err error
	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		v, err = strconv.ParseInt(s[2:], 16, 64)
	case strings.HasPrefix(s, "0o"), strings.HasPrefix(s, "0O"):
		v, err = strconv.ParseInt(s[2:], 8, 64)
	default:
		v, err = strconv.ParseInt(s, 10, 64)
	}
	if err != nil {
		return 0, err
	}
	if neg {
		v = -v
	}
	return v, nil
}

func parseFloatLexeme(lexeme string) (float64, error) {
	switch lexeme {
	case ".inf", ".Inf", ".INF", "+.inf", "+.Inf", "+.INF":
		return math.Inf(1), nil
	case "-.inf", "-.Inf", "-.INF":
		return math.Inf(-1), nil
	case ".nan", ".NaN", ".NAN":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(lexeme, 64)
}
