package fsops

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SafeJoin joins root and parts and makes sure the result stays inside root.
func SafeJoin(root string, parts ...string) (string, error) {
	p := filepath.Join(append([]string{root}, parts...)...)
	cleanRoot := filepath.Clean(root)

	rel, err := filepath.Rel(cleanRoot, p)
	if err != nil {
		return "", err
	}
	relSl := filepath.ToSlash(rel)
	if relSl == ".." || strings.HasPrefix(relSl, "../") {
		return "", fmt.Errorf("path escapes base directory: %s", p)
	}
	return p, nil
}
