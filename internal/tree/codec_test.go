package tree

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestTreeJSON_Encode(t *testing.T) {
	s := Tree{
		"a": NewDir(Tree{
			"b.txt": NewFile(),
			"c":     NewDir(Tree{"d.txt": NewFile()}),
		}),
	}

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":{"b.txt":"","c":{"d.txt":""}}}`, string(data))
}

func TestTreeJSON_Decode(t *testing.T) {
	var got Tree
	err := json.Unmarshal([]byte(`{"proj":{"src":{"main.x":""},"README.md":"","empty":{}}}`), &got)
	require.NoError(t, err)

	want := Tree{
		"proj": NewDir(Tree{
			"src":       NewDir(Tree{"main.x": NewFile()}),
			"README.md": NewFile(),
			"empty":     NewDir(nil),
		}),
	}
	assert.Equal(t, want, got)
}

func TestTreeJSON_RejectsUnsupportedValues(t *testing.T) {
	var got Tree
	err := json.Unmarshal([]byte(`{"proj":{"count":3}}`), &got)
	require.Error(t, err)

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "proj/count", decodeErr.Path)

	err = json.Unmarshal([]byte(`["a"]`), &got)
	require.Error(t, err)
	assert.True(t, IsDecodeError(err))
}

func TestTreeYAML_RoundTrip(t *testing.T) {
	s := Tree{
		"proj": NewDir(Tree{
			"src":       NewDir(Tree{"main.x": NewFile()}),
			"README.md": NewFile(),
		}),
	}

	data, err := yaml.Marshal(s)
	require.NoError(t, err)

	var got Tree
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, s, got)
}

func TestTreeYAML_NullIsFile(t *testing.T) {
	var got Tree
	require.NoError(t, yaml.Unmarshal([]byte("proj:\n  README.md:\n  src:\n    main.x: \"\"\n"), &got))

	want := Tree{
		"proj": NewDir(Tree{
			"README.md": NewFile(),
			"src":       NewDir(Tree{"main.x": NewFile()}),
		}),
	}
	assert.Equal(t, want, got)
}

func TestDetectSourceFormat(t *testing.T) {
	tests := []struct {
		name string
		data string
		want SourceFormat
	}{
		{"in.txt", `{"a": ""}`, SourceJSON},
		{"in.json", `not json`, SourceJSON},
		{"in.yaml", "a:\n  b: \"\"", SourceYAML},
		{"in.yml", "a: \"\"", SourceYAML},
		{"-", "a/\n└── b", SourceDiagram},
		{"struct", "{broken", SourceDiagram},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectSourceFormat(tt.name, []byte(tt.data)))
		})
	}
}

func TestParseSourceFormat(t *testing.T) {
	for in, want := range map[string]SourceFormat{
		"":        SourceAuto,
		"AUTO":    SourceAuto,
		"json":    SourceJSON,
		"yml":     SourceYAML,
		"diagram": SourceDiagram,
		" tree ":  SourceDiagram,
	} {
		got, err := ParseSourceFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseSourceFormat("xml")
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	want := Tree{"a": NewDir(Tree{"b": NewFile()})}

	got, err := Decode("struct.json", []byte(`{"a":{"b":""}}`), SourceAuto)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = Decode("struct.yaml", []byte("a:\n  b: \"\"\n"), SourceAuto)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = Decode("struct", []byte("a/\n└── b\n"), SourceAuto)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = Decode("struct", []byte("a\n├── b\n└── b"), SourceDiagram, WithStrict())
	assert.True(t, IsDecodeError(err))

	_, err = Decode("struct.yaml", []byte(""), SourceYAML)
	var decodeErr *DecodeError
	assert.True(t, errors.As(err, &decodeErr))
}

func TestDecode_YAMLSyntaxError(t *testing.T) {
	_, err := Decode("x.yaml", []byte("a: [\n"), SourceYAML)
	require.Error(t, err)
	assert.True(t, IsDecodeError(err))

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.NotNil(t, errors.Unwrap(decodeErr))
	assert.Contains(t, err.Error(), "invalid structure document")
}

func TestDecode_YAMLKeepsPathOfBadValue(t *testing.T) {
	_, err := Decode("x.yaml", []byte("a:\n  b: 3\n"), SourceYAML)
	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "a/b", decodeErr.Path)
}

func TestTreeMap_RoundTripsThroughFromMap(t *testing.T) {
	s := Tree{"x": NewDir(Tree{"y": NewFile(), "z": NewDir(nil)})}
	got, err := FromMap(s.Map())
	require.NoError(t, err)
	assert.Equal(t, s, got)
}
