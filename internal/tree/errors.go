package tree

import (
	"errors"
	"fmt"
)

// ErrEmptyDiagram is wrapped by MalformedDiagramError when the input has no non-blank lines.
var ErrEmptyDiagram = errors.New("diagram has no entries")

// MalformedDiagramError indicates a diagram the parser cannot turn into a tree.
// Line is 1-based and zero when the error is not tied to a line.
type MalformedDiagramError struct {
	Line   int
	Text   string
	Reason string
	Err    error
}

func (e *MalformedDiagramError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("malformed diagram: %s", e.Reason)
	}
	return fmt.Sprintf("malformed diagram: line %d: %s: %q", e.Line, e.Reason, e.Text)
}

func (e *MalformedDiagramError) Unwrap() error { return e.Err }

// AmbiguousEntryError indicates two siblings with the same name in strict mode.
type AmbiguousEntryError struct {
	Line int
	Name string
}

func (e *AmbiguousEntryError) Error() string {
	return fmt.Sprintf("ambiguous diagram: line %d: duplicate entry %q", e.Line, e.Name)
}

// DecodeError indicates a structure document that does not describe a tree.
type DecodeError struct {
	Path    string
	Message string
	Err     error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return "invalid structure document: " + e.Message
	}
	return fmt.Sprintf("invalid structure document at %q: %s", e.Path, e.Message)
}

func (e *DecodeError) Unwrap() error { return e.Err }
