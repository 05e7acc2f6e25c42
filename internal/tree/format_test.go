package tree

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_NestedTree(t *testing.T) {
	s := Tree{
		"a": NewDir(Tree{
			"b.txt": NewFile(),
			"c":     NewDir(Tree{"d.txt": NewFile()}),
		}),
	}

	assert.Equal(t, []string{"a/", "├── b.txt", "└── c/", "    └── d.txt"}, Format(s))
}

func TestFormat_SortsNames(t *testing.T) {
	s := Tree{
		"file-structure-py": NewDir(Tree{
			"file_structure_py": NewDir(Tree{
				"__init__.py":             NewFile(),
				"main.py":                 NewFile(),
				"file_structure_utils.py": NewFile(),
			}),
			"tests": NewDir(Tree{
				"__init__.py":                  NewFile(),
				"test_file_structure_utils.py": NewFile(),
			}),
		}),
	}

	want := []string{
		"file-structure-py/",
		"├── file_structure_py/",
		"│   ├── __init__.py",
		"│   ├── file_structure_utils.py",
		"│   └── main.py",
		"└── tests/",
		"    ├── __init__.py",
		"    └── test_file_structure_utils.py",
	}
	assert.Equal(t, want, Format(s))
}

func TestFormat_UppercaseSortsFirst(t *testing.T) {
	s := Tree{
		"project": NewDir(Tree{
			"src":       NewDir(Tree{"main.py": NewFile(), "utils.py": NewFile()}),
			"README.md": NewFile(),
		}),
	}

	want := []string{
		"project/",
		"├── README.md",
		"└── src/",
		"    ├── main.py",
		"    └── utils.py",
	}
	assert.Equal(t, want, Format(s))
}

func TestFormat_TopLevelSiblingsHaveNoConnector(t *testing.T) {
	s := Tree{
		"src":       NewDir(Tree{"main.py": NewFile()}),
		"tests":     NewDir(nil),
		"README.md": NewFile(),
	}

	want := []string{
		"README.md",
		"src/",
		"└── main.py",
		"tests/",
	}
	assert.Equal(t, want, Format(s))
}

func TestFormat_Empty(t *testing.T) {
	assert.Empty(t, Format(Tree{}))
	assert.Equal(t, "", FormatString(nil))
}

func TestFormatString_JoinsLines(t *testing.T) {
	s := Tree{"a": NewDir(Tree{"b": NewFile()})}
	assert.Equal(t, "a/\n└── b", FormatString(s))
}

func TestRoundTrip_FixedTrees(t *testing.T) {
	trees := []Tree{
		{"solo.txt": NewFile()},
		{"a": NewDir(Tree{"b.txt": NewFile(), "c": NewDir(Tree{"d.txt": NewFile()})})},
		{
			"proj": NewDir(Tree{
				"src":       NewDir(Tree{"main.x": NewFile()}),
				"README.md": NewFile(),
			}),
			"other": NewFile(),
		},
		{"dir": NewDir(Tree{"note ": NewFile(), "b": NewFile(), " lead": NewDir(Tree{"x\t": NewFile()})})},
	}

	for i, s := range trees {
		t.Run(fmt.Sprintf("tree-%d", i), func(t *testing.T) {
			raw, err := ParseRaw(FormatString(s))
			require.NoError(t, err)
			assert.Equal(t, s, Normalize(raw))
		})
	}
}

func TestRoundTrip_GeneratedTrees(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		s := randomTree(rng, 0)
		raw, err := ParseRaw(FormatString(s), WithStrict())
		require.NoError(t, err, "diagram:\n%s", FormatString(s))
		require.Equal(t, s, Normalize(raw), "diagram:\n%s", FormatString(s))
	}
}

// randomTree builds a normalized tree: every directory has at least one child.
func randomTree(rng *rand.Rand, depth int) Tree {
	n := 1 + rng.Intn(4)
	t := make(Tree, n)
	for len(t) < n {
		name := fmt.Sprintf("n%d", rng.Intn(20))
		if depth < 4 && rng.Intn(3) == 0 {
			t[name] = NewDir(randomTree(rng, depth+1))
			continue
		}
		t[name+".txt"] = NewFile()
	}
	return t
}
