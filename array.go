package yaml

import (
	"strconv"
	"strings"
)

// Array is an ordered sequence of nodes, the payload of a KindArray Yaml
// value.
type Array []Node

func (a Array) equal(o Array) bool {
	if len(a) != len(o) {
		return false
	}
	for i := range a {
		if !a[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

func (a Array) fingerprint() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, n := range a {
		if i > 0 {
			sb.WriteByte(',')
		}
		fp := n.yaml.fingerprint()
		sb.WriteString(strconv.Itoa(len(fp)))
		sb.WriteByte(':')
		sb.WriteString(fp)
	}
	sb.WriteByte(']')
	return sb.String()
}
