package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heathj/marksoup/parser"
)

func TestConfigureAppliesPresets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[features]
report-warnings = false

[properties]
default-encoding = "windows-1252"
`), 0o644))

	o := &options{namespaces: true, balanceTags: true, featureFile: path}
	c, err := o.configure()
	require.NoError(t, err)

	on, err := c.Feature(parser.FeatureReportWarnings)
	require.NoError(t, err)
	assert.False(t, on)

	v, err := c.Property(parser.PropertyDefaultEncoding)
	require.NoError(t, err)
	assert.Equal(t, "windows-1252", v)
}

func TestConfigureFlagsWinOverPresets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.toml")
	require.NoError(t, os.WriteFile(path, []byte("[features]\nnamespaces = false\n"), 0o644))

	o := &options{namespaces: true, balanceTags: true, featureFile: path}
	c, err := o.configure()
	require.NoError(t, err)

	on, err := c.Feature(parser.FeatureNamespaces)
	require.NoError(t, err)
	assert.True(t, on)
}

func TestConfigureRejectsUnknownPresetFeature(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.toml")
	require.NoError(t, os.WriteFile(path, []byte("[features]\nbogus = true\n"), 0o644))

	o := &options{featureFile: path}
	_, err := o.configure()
	require.Error(t, err)
}
