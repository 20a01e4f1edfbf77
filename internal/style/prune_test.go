package style

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fittedStyle = `<?xml version="1.0" encoding="UTF-8"?>
<darktable_style version="1.0">
  <style>
    <info>
      <name>film</name>
      <description>fitted from Hald CLUT</description>
    </info>
    <plugin>
      <num>0</num>
      <operation>colorin</operation>
      <op_params>gz48eJzjYhgFo2AU0AsAAAKMAAE=</op_params>
    </plugin>
    <plugin>
      <num>1</num>
      <operation>colorchecker</operation>
      <op_params>gz02eJxjYBgFo2AU0AsAAAQkAAM=</op_params>
    </plugin>
    <plugin>
      <num>2</num>
      <operation>basecurve</operation>
      <op_params>gz09eJxjYBgFo2AU0AsAAAQkAAE=</op_params>
    </plugin>
    <plugin>
      <num>3</num>
      <operation>tonecurve</operation>
      <op_params>gz11eJxjYBgFo2AU0AsAAAQkAAU=</op_params>
    </plugin>
  </style>
</darktable_style>
`

func writeStyle(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "film.dtstyle")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// plugins reparses the pruned document and returns (operation, num) pairs in
// document order.
func plugins(t *testing.T, path string) [][2]string {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromFile(path))

	var out [][2]string
	for _, st := range doc.Root().SelectElements("style") {
		for _, p := range st.SelectElements("plugin") {
			op := p.SelectElement("operation")
			num := p.SelectElement("num")
			require.NotNil(t, op)
			require.NotNil(t, num)
			out = append(out, [2]string{op.Text(), num.Text()})
		}
	}
	return out
}

func TestPrune(t *testing.T) {
	path := writeStyle(t, fittedStyle)
	require.NoError(t, Prune(path, nil))

	assert.Equal(t, [][2]string{
		{"colorchecker", "0"},
		{"tonecurve", "1"},
	}, plugins(t, path))

	// Unknown plugin payloads survive untouched.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "gz02eJxjYBgF")
	assert.NotContains(t, string(data), "colorin")
}

func TestPruneIdempotent(t *testing.T) {
	path := writeStyle(t, fittedStyle)
	require.NoError(t, Prune(path, nil))

	once, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, Prune(path, nil))
	twice, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, string(once), string(twice))
}

func TestPruneMultipleStyles(t *testing.T) {
	path := writeStyle(t, `<darktable_style version="1.0">
  <style>
    <plugin><num>0</num><operation>basecurve</operation></plugin>
    <plugin><num>1</num><operation>tonecurve</operation></plugin>
  </style>
  <style>
    <plugin><num>0</num><operation>colorchecker</operation></plugin>
  </style>
</darktable_style>
`)
	require.NoError(t, Prune(path, nil))

	assert.Equal(t, [][2]string{
		{"tonecurve", "0"},
		{"colorchecker", "0"},
	}, plugins(t, path))
}

func TestPruneCustomAllowedSet(t *testing.T) {
	path := writeStyle(t, fittedStyle)
	require.NoError(t, Prune(path, map[string]bool{"basecurve": true}))

	assert.Equal(t, [][2]string{
		{"basecurve", "0"},
	}, plugins(t, path))
}

func TestPruneMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"plugin without operation", `<darktable_style><style><plugin><num>0</num></plugin></style></darktable_style>`},
		{"plugin without num", `<darktable_style><style><plugin><operation>tonecurve</operation></plugin></style></darktable_style>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeStyle(t, tt.content)
			err := Prune(path, nil)
			var styleErr *MalformedStyleError
			require.True(t, errors.As(err, &styleErr), "got %v", err)
		})
	}
}

func TestPruneUnreadable(t *testing.T) {
	err := Prune(filepath.Join(t.TempDir(), "missing.dtstyle"), nil)
	require.Error(t, err)
}
