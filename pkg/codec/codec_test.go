package codec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/morph/pkg/value"
)

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = ParseFormat(" json ")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("toml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromPath("config.JSON"))
	assert.Equal(t, FormatYAML, FormatFromPath("config.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("config"))
}

func TestDecode_JSON(t *testing.T) {
	doc, err := Decode([]byte(`{
		"multiply": 12,
		"ratio": 3.14,
		"listData": [5, "hello", 3.14, -2, 10],
		"flag": true,
		"missing": null
	}`), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, value.Integer(12), doc["multiply"])
	assert.Equal(t, value.Float(3.14), doc["ratio"])
	assert.Equal(t, value.Other(true), doc["flag"])
	assert.Equal(t, value.Other(nil), doc["missing"])

	items, ok := doc["listData"].AsSequence()
	require.True(t, ok)
	assert.Equal(t, value.Integer(-2), items[3])
}

func TestDecode_YAML(t *testing.T) {
	doc, err := Decode([]byte(`
add: -20
textData: This might be an error message
nestedDict:
  innerInt: 5
  innerText: SUCCESS CASE
  ignored: 3.1415
`), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, value.Integer(-20), doc["add"])
	nested, ok := doc["nestedDict"].AsMapping()
	require.True(t, ok)
	assert.Equal(t, value.Integer(5), nested["innerInt"])
	assert.Equal(t, value.Float(3.1415), nested["ignored"])
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode([]byte(`[1, 2]`), FormatJSON)
	assert.ErrorIs(t, err, ErrNotMapping)

	_, err = Decode([]byte(`- a`), FormatYAML)
	assert.ErrorIs(t, err, ErrNotMapping)

	_, err = Decode([]byte(`{"a": 1} {"b": 2}`), FormatJSON)
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Decode([]byte(`{`), FormatJSON)
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Decode([]byte("a: [1"), FormatYAML)
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Decode([]byte(`a: 1`), Format("toml"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestDecode_Empty(t *testing.T) {
	doc, err := Decode([]byte("  \n"), FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, doc)

	doc, err = Decode([]byte("# only a comment\n"), FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, doc)
}

func TestEncode(t *testing.T) {
	m := value.Map{
		"b": value.Sequence(value.Integer(2), value.Text("x")),
		"a": value.Float(6.28),
	}

	data, err := Encode(m, FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 6.28, "b": [2, "x"]}`, string(data))

	data, err = Encode(m, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "a: 6.28\nb:\n  - 2\n  - x\n", string(data))

	_, err = Encode(value.Map{"ch": value.Other(make(chan int))}, FormatJSON)
	assert.Error(t, err)
}

func TestEncode_NonFiniteJSON(t *testing.T) {
	m, err := Decode([]byte("ratio: .nan\n"), FormatYAML)
	require.NoError(t, err)

	_, err = Encode(m, FormatJSON)
	assert.ErrorIs(t, err, value.ErrNonFinite)
	assert.Contains(t, err.Error(), `"ratio"`)

	data, err := Encode(m, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "ratio: .nan\n", string(data))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"add": 5}`), 0o644))

	doc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, value.Integer(5), doc["add"])

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
