package freefall

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "conf.toml"), []byte("[general]\noutput_path = \"/var/freefall\"\n"), 0o644))
	conf, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "/var/freefall", conf.OutputDir)
}

func TestLoadConfigDefault(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "conf.toml"), []byte("[general]\n"), 0o644))
	conf, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, defaultOutputDir, conf.OutputDir)
}

func TestLoadConfigMissing(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}

// resetConfig forgets the cached configuration, before and after the test.
func resetConfig(t *testing.T) {
	reset := func() {
		cfgOnce = sync.Once{}
		settings = Settings{}
		cfgErr = nil
	}
	reset()
	t.Cleanup(reset)
}

func TestConfigFromEnv(t *testing.T) {
	resetConfig(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "conf.toml"), []byte("[general]\noutput_path = \"/tmp/ff\"\n"), 0o644))
	t.Setenv(ConfigEnv, dir)
	conf, err := Config()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/ff", conf.OutputDir)
}

func TestConfigWithoutEnv(t *testing.T) {
	resetConfig(t)
	t.Setenv(ConfigEnv, "")
	conf, err := Config()
	require.NoError(t, err)
	assert.Equal(t, defaultOutputDir, conf.OutputDir)
}

func TestConfigMissingFile(t *testing.T) {
	resetConfig(t)
	t.Setenv(ConfigEnv, t.TempDir())
	_, err := Config()
	assert.Error(t, err)
	_, err = Config()
	assert.Error(t, err, "the error is kept once loaded")
}
