// Package yaml is a hand-written, backtracking PEG parser for YAML 1.2
// together with its in-memory document model.
//
// Parse (or ParseReader) turns a UTF-8 byte stream containing one or more
// YAML documents into a slice of Document values, each carrying a root Node
// and the AnchorTable resolved against it. Every Node carries its source
// byte offset, an optional resolved type tag, and an optional anchor name.
//
// This package implements the core grammar only: directives, flow and
// block styles, scalar folding, anchors/aliases, tags, and multi-document
// streams. It does not offer struct (de)serialization, a textual emitter,
// or streaming event emission -- those are layered concerns for a
// collaborator built on top of this document model, not part of it.
package yaml
