package tree

import (
	"strings"
	"unicode"
)

// Diagram tokens. Each is four runes wide.
const (
	branchConnector = "├── "
	lastConnector   = "└── "
	pipeIndent      = "│   "
	blankIndent     = "    "
)

// ParseOption configures Parse and ParseRaw.
type ParseOption func(*parser)

// WithStrict rejects duplicate sibling names and lines that skip an indentation level.
// Without it duplicates silently replace the earlier entry.
func WithStrict() ParseOption {
	return func(p *parser) {
		p.strict = true
	}
}

// Parse reads a tree diagram and returns its normalized structure.
func Parse(text string, opts ...ParseOption) (Tree, error) {
	raw, err := ParseRaw(text, opts...)
	if err != nil {
		return nil, err
	}
	return Normalize(raw), nil
}

// ParseRaw reads a tree diagram into the raw nested-mapping shape, where
// every entry is still a mapping.
func ParseRaw(text string, opts ...ParseOption) (Raw, error) {
	p := &parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p.parse(text)
}

type parser struct {
	strict bool
}

// sourceLine is a non-blank input line with its 1-based position.
type sourceLine struct {
	num  int
	text string
}

// frame is one open ancestor on the parse stack.
type frame struct {
	depth    int
	children Raw
}

func (p *parser) parse(text string) (Raw, error) {
	lines := diagramLines(text)
	if len(lines) == 0 {
		return nil, &MalformedDiagramError{Reason: "no entries", Err: ErrEmptyDiagram}
	}

	root := Raw{}
	stack := []frame{{depth: -1, children: root}}

	for _, line := range lines {
		depth, name, last := classifyLine(line.text)
		if name == "" {
			return nil, &MalformedDiagramError{Line: line.num, Text: line.text, Reason: "empty entry name"}
		}

		for len(stack) > 0 && stack[len(stack)-1].depth >= depth {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			return nil, &MalformedDiagramError{Line: line.num, Text: line.text, Reason: "entry has no open parent"}
		}
		top := stack[len(stack)-1]

		if p.strict {
			if depth > top.depth+1 {
				return nil, &MalformedDiagramError{Line: line.num, Text: line.text, Reason: "indentation skips a level"}
			}
			if _, exists := top.children[name]; exists {
				return nil, &AmbiguousEntryError{Line: line.num, Name: name}
			}
		}

		child := Raw{}
		top.children[name] = child

		// Nothing can follow a last child under the same parent.
		if last {
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, frame{depth: depth, children: child})
	}

	return root, nil
}

// diagramLines drops blank lines, removes the first line's leading
// indentation from every line and strips trailing slashes. Other trailing
// whitespace is part of the name.
func diagramLines(text string) []sourceLine {
	var lines []sourceLine
	for i, l := range strings.Split(text, "\n") {
		l = strings.TrimSuffix(l, "\r")
		if strings.TrimSpace(l) == "" {
			continue
		}
		lines = append(lines, sourceLine{num: i + 1, text: l})
	}
	if len(lines) == 0 {
		return nil
	}

	first := lines[0].text
	base := first[:len(first)-len(strings.TrimLeftFunc(first, unicode.IsSpace))]
	for i := range lines {
		l := strings.TrimPrefix(lines[i].text, base)
		lines[i].text = strings.TrimRight(l, "/")
	}
	return lines
}

// classifyLine returns the depth of a line, its entry name and whether it
// carries the last-child connector.
func classifyLine(line string) (depth int, name string, last bool) {
	for {
		if rest, ok := strings.CutPrefix(line, pipeIndent); ok {
			line = rest
		} else if rest, ok := strings.CutPrefix(line, blankIndent); ok {
			line = rest
		} else {
			break
		}
		depth++
	}

	if rest, ok := strings.CutPrefix(line, branchConnector); ok {
		return depth + 1, rest, false
	}
	if rest, ok := strings.CutPrefix(line, lastConnector); ok {
		return depth + 1, rest, true
	}
	return depth, line, false
}
