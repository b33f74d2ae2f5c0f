package main

import (
	"path/filepath"
	"testing"

	"github.com/jingkaihe/skillsync/pkg/collector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewCollectConfigDefaults(t *testing.T) {
	config := NewCollectConfig()

	assert.Equal(t, ".", config.Root)
	assert.Equal(t, filepath.Join(".", ".claude", "skills"), config.Dest)
	assert.Equal(t, ".claude", config.Marker)
	assert.Equal(t, collector.DefaultExcludes, config.Excludes)
}

func TestGetCollectConfigFromFlags(t *testing.T) {
	cmd := collectCmd

	require.NoError(t, cmd.Flags().Set("root", "/srv/projects"))
	require.NoError(t, cmd.Flags().Set("dest", "/srv/skills"))
	require.NoError(t, cmd.Flags().Set("marker", ".assistant"))
	require.NoError(t, cmd.Flags().Set("exclude", "vendor"))

	config := getCollectConfigFromFlags(cmd)

	assert.Equal(t, "/srv/projects", config.Root)
	assert.Equal(t, "/srv/skills", config.Dest)
	assert.Equal(t, ".assistant", config.Marker)
	assert.Equal(t, []string{"vendor"}, config.Excludes)
}

func TestWatchConfigValidate(t *testing.T) {
	config := NewWatchConfig()
	assert.NoError(t, config.Validate())

	config.DebounceTime = -1
	assert.Error(t, config.Validate())
}

func TestDefaultFileConfigRoundTrip(t *testing.T) {
	defaults := DefaultFileConfig()

	content, err := yaml.Marshal(defaults)
	require.NoError(t, err)

	var decoded FileConfig
	require.NoError(t, yaml.Unmarshal(content, &decoded))
	assert.Equal(t, defaults, decoded)
}
