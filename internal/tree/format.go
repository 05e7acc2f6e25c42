package tree

import "strings"

// Format renders the tree as a canonical diagram, one line per entry.
// Names are sorted at every level; top-level entries carry no connector.
func Format(t Tree) []string {
	var lines []string
	formatLevel(&lines, t, "", true)
	return lines
}

// FormatString renders the tree as a newline-joined diagram.
func FormatString(t Tree) string {
	return strings.Join(Format(t), "\n")
}

func formatLevel(lines *[]string, t Tree, prefix string, top bool) {
	names := t.Names()
	for i, name := range names {
		last := i == len(names)-1

		connector, childPrefix := "", prefix
		if !top {
			if last {
				connector = lastConnector
				childPrefix = prefix + blankIndent
			} else {
				connector = branchConnector
				childPrefix = prefix + pipeIndent
			}
		}

		entry := t[name]
		if !entry.IsDir() {
			*lines = append(*lines, prefix+connector+name)
			continue
		}
		*lines = append(*lines, prefix+connector+name+"/")
		formatLevel(lines, entry.Children, childPrefix, false)
	}
}
