package tree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SourceFormat identifies how a structure is written down.
type SourceFormat string

const (
	// SourceAuto picks JSON, YAML or diagram from the name and content.
	SourceAuto SourceFormat = "auto"
	// SourceJSON is a nested JSON object; files are empty strings.
	SourceJSON SourceFormat = "json"
	// SourceYAML is a nested YAML mapping; files are empty strings or null.
	SourceYAML SourceFormat = "yaml"
	// SourceDiagram is an ASCII tree diagram.
	SourceDiagram SourceFormat = "diagram"
)

// ParseSourceFormat converts a flag value to a SourceFormat. Empty means auto.
func ParseSourceFormat(s string) (SourceFormat, error) {
	switch SourceFormat(strings.ToLower(strings.TrimSpace(s))) {
	case SourceAuto, "":
		return SourceAuto, nil
	case SourceJSON:
		return SourceJSON, nil
	case SourceYAML, "yml":
		return SourceYAML, nil
	case SourceDiagram, "tree", "text":
		return SourceDiagram, nil
	default:
		return "", fmt.Errorf("invalid source format %q (expected auto|json|yaml|diagram)", s)
	}
}

// DetectSourceFormat guesses the format of data read from name.
// Content that is a valid JSON object wins; otherwise a .yaml/.yml name means YAML
// and anything else is treated as a diagram.
func DetectSourceFormat(name string, data []byte) SourceFormat {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' && json.Valid(trimmed) {
		return SourceJSON
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return SourceJSON
	case ".yaml", ".yml":
		return SourceYAML
	}
	return SourceDiagram
}

// Decode reads a structure written in the given format. Parse options only
// apply to diagrams.
func Decode(name string, data []byte, format SourceFormat, opts ...ParseOption) (Tree, error) {
	if format == SourceAuto || format == "" {
		format = DetectSourceFormat(name, data)
	}

	var t Tree
	switch format {
	case SourceJSON:
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, err
		}
	case SourceYAML:
		if err := yaml.Unmarshal(data, &t); err != nil {
			var decodeErr *DecodeError
			if errors.As(err, &decodeErr) {
				return nil, err
			}
			return nil, &DecodeError{Message: err.Error(), Err: err}
		}
	case SourceDiagram:
		return Parse(string(data), opts...)
	default:
		return nil, fmt.Errorf("unsupported source format: %s", format)
	}
	if t == nil {
		return nil, &DecodeError{Message: "document is empty"}
	}
	return t, nil
}

// Map returns the tree as a generic document: directories are
// map[string]any and files are empty strings.
func (t Tree) Map() map[string]any {
	doc := make(map[string]any, len(t))
	for name, entry := range t {
		if entry.IsDir() {
			doc[name] = entry.Children.Map()
			continue
		}
		doc[name] = ""
	}
	return doc
}

// FromMap builds a tree from a generic document. Strings and nulls are
// files, mappings are directories; an empty mapping stays an empty directory.
func FromMap(doc map[string]any) (Tree, error) {
	return fromMap(doc, "")
}

func fromMap(doc map[string]any, prefix string) (Tree, error) {
	t := make(Tree, len(doc))
	for name, value := range doc {
		p := joinPath(prefix, name)
		entry, err := entryFromValue(value, p)
		if err != nil {
			return nil, err
		}
		t[name] = entry
	}
	return t, nil
}

func entryFromValue(value any, p string) (Entry, error) {
	switch v := value.(type) {
	case nil, string:
		return NewFile(), nil
	case map[string]any:
		children, err := fromMap(v, p)
		if err != nil {
			return Entry{}, err
		}
		return NewDir(children), nil
	case map[any]any:
		converted := make(map[string]any, len(v))
		for k, val := range v {
			converted[fmt.Sprint(k)] = val
		}
		children, err := fromMap(converted, p)
		if err != nil {
			return Entry{}, err
		}
		return NewDir(children), nil
	default:
		return Entry{}, &DecodeError{Path: p, Message: fmt.Sprintf("unsupported value of type %T", value)}
	}
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

// MarshalJSON encodes the tree as a nested object with empty-string files.
func (t Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Map())
}

// UnmarshalJSON decodes a nested object into the tree.
func (t *Tree) UnmarshalJSON(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	m, ok := doc.(map[string]any)
	if !ok {
		return &DecodeError{Message: "document must be an object"}
	}
	decoded, err := FromMap(m)
	if err != nil {
		return err
	}
	*t = decoded
	return nil
}

// MarshalYAML encodes the tree as a nested mapping with empty-string files.
func (t Tree) MarshalYAML() (interface{}, error) {
	return t.Map(), nil
}

// UnmarshalYAML decodes a nested mapping into the tree.
func (t *Tree) UnmarshalYAML(value *yaml.Node) error {
	var doc any
	if err := value.Decode(&doc); err != nil {
		return err
	}
	entry, err := entryFromValue(doc, "")
	if err != nil {
		return err
	}
	if !entry.IsDir() {
		return &DecodeError{Message: "document must be a mapping"}
	}
	*t = entry.Children
	return nil
}

// IsDecodeError reports whether err comes from reading a malformed diagram or document.
func IsDecodeError(err error) bool {
	var malformed *MalformedDiagramError
	var ambiguous *AmbiguousEntryError
	var decode *DecodeError
	var syntax *json.SyntaxError
	var typeErr *yaml.TypeError
	return errors.As(err, &malformed) || errors.As(err, &ambiguous) ||
		errors.As(err, &decode) || errors.As(err, &syntax) || errors.As(err, &typeErr)
}
