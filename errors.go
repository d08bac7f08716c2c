package yaml

import (
	"fmt"

	"github.com/yaml-peg/yaml-peg-go/internal/cursor"
)

// ErrMismatch is re-exported from internal/cursor so callers that wrap our
// parser functions can still recognize a recoverable backtrack failure with
// errors.Is, though in practice it never escapes Parse/ParseReader: every
// Mismatch is either resolved by trying an alternative production or
// promoted to a TerminateError by the production that required a match.
var ErrMismatch = cursor.ErrMismatch

// TerminateError is a fatal parse error: a committed production found the
// input syntactically or semantically invalid (an unclosed quote, a bad
// escape, a duplicate map key, an unknown tag handle, a bad indent, or an
// unsupported %YAML version). Offset is the absolute byte offset at which
// the problem was detected.
type TerminateError = cursor.TerminateError

// AccessError is returned by Node accessors when the node's Yaml variant or
// a Get/GetDefault path does not match what was requested. Pos is the
// offending node's byte offset, so callers can locate it in the source.
type AccessError struct {
	Pos uint64
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("yaml: invalid access at offset %d", e.Pos)
}

func accessErr(pos uint64) error { return &AccessError{Pos: pos} }
