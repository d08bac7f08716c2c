package yaml

import (
	"sort"
	"strconv"
	"strings"
)

// entry is one key/value pair of a Map, in insertion order.
type entry struct {
	Key   Node
	Value Node
}

// Map is an ordered mapping of Node to Node: insertion order is preserved
// for iteration, but keys are a set under Node/Yaml structural equality
// (spec invariant: "a map's keys form a set under structural equality;
// duplicate keys during parsing are a parse error"). A secondary index
// keyed by the fingerprint of every key gives O(1) lookup for keys of any
// variant.
type Map struct {
	entries []entry
	index   map[string]int // Yaml.fingerprint() -> index into entries
}

// NewMap returns an empty Map ready for Insert.
func NewMap() *Map {
	return &Map{index: make(map[string]int)}
}

// NewMapWithCapacity is NewMap with a size hint, mirroring the teacher's
// convention of pre-sizing maps built during parsing.
func NewMapWithCapacity(n int) *Map {
	return &Map{entries: make([]entry, 0, n), index: make(map[string]int, n)}
}

// Len reports the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Insert adds key => value. It returns an error without mutating the map
// if key already exists, per the uniqueness invariant. Map has no method
// that replaces an existing entry.
func (m *Map) Insert(key, value Node) error {
	fp := key.yaml.fingerprint()
	if _, exists := m.index[fp]; exists {
		return accessErr(key.pos)
	}
	m.index[fp] = len(m.entries)
	m.entries = append(m.entries, entry{Key: key, Value: value})
	return nil
}

// Get looks up the value bound to a key under structural equality.
func (m *Map) Get(key Node) (Node, bool) {
	if m == nil {
		return Node{}, false
	}
	idx, ok := m.index[key.yaml.fingerprint()]
	if !ok {
		return Node{}, false
	}
	return m.entries[idx].Value, true
}

// GetStr is the common-case fast path: look up a plain string key.
func (m *Map) GetStr(s string) (Node, bool) {
	return m.Get(Node{yaml: Str(s)})
}

// Entries returns the map's key/value pairs in insertion order. The slice
// is a fresh copy; mutating it does not affect the Map.
func (m *Map) Entries() []struct{ Key, Value Node } {
	if m == nil {
		return nil
	}
	out := make([]struct{ Key, Value Node }, len(m.entries))
	for i, e := range m.entries {
		out[i] = struct{ Key, Value Node }{Key: e.Key, Value: e.Value}
	}
	return out
}

// Range calls f for each entry in insertion order, stopping early if f
// returns false.
func (m *Map) Range(f func(key, value Node) bool) {
	if m == nil {
		return
	}
	for _, e := range m.entries {
		if !f(e.Key, e.Value) {
			return
		}
	}
}

func (m *Map) equal(o *Map) bool {
	if m == nil || o == nil {
		return m.Len() == o.Len()
	}
	if m.Len() != o.Len() {
		return false
	}
	for _, e := range m.entries {
		v, ok := o.Get(e.Key)
		if !ok || !v.Equal(e.Value) {
			return false
		}
	}
	return true
}

// fingerprint is order-independent: entries are sorted by their own
// fingerprint before joining, so two maps built in different insertion
// orders but holding the same pairs fingerprint identically.
func (m *Map) fingerprint() string {
	if m == nil {
		return "{}"
	}
	parts := make([]string, len(m.entries))
	for i, e := range m.entries {
		kfp := e.Key.yaml.fingerprint()
		parts[i] = strconv.Itoa(len(kfp)) + ":" + kfp + "=>" + e.Value.yaml.fingerprint()
	}
	sort.Strings(parts)
	var sb strings.Builder
	sb.WriteByte('{')
	for i, p := range parts {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(len(p)))
		sb.WriteByte(':')
		sb.WriteString(p)
	}
	sb.WriteByte('}')
	return sb.String()
}
