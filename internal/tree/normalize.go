package tree

// Normalize turns a raw mapping into a Tree. Empty mappings become files,
// non-empty ones become directories of normalized children.
func Normalize(raw Raw) Tree {
	t := make(Tree, len(raw))
	for name, children := range raw {
		if len(children) == 0 {
			t[name] = NewFile()
			continue
		}
		t[name] = NewDir(Normalize(children))
	}
	return t
}
