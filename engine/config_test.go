package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/testpilot-dev/testpilot/filter"
	"github.com/testpilot-dev/testpilot/types"
)

func TestBuild_DefaultsWithoutPreConfig(t *testing.T) {
	cfg := Build(nil, "", filter.EffectiveTagFilter{}, types.VerbosityNormal)

	assert.Equal(t, DefaultTestRoot, cfg.Path)
	assert.Equal(t, "go", cfg.GoBinary)
	assert.True(t, cfg.PassThru)
	assert.Equal(t, types.VerbosityNormal, cfg.Verbosity)
	assert.Empty(t, cfg.IncludeTags)
	assert.Empty(t, cfg.ExcludeTags)
}

func TestBuild_ExplicitPathOverridesPreConfig(t *testing.T) {
	pre := &Config{Path: "./preconfigured"}

	cfg := Build(pre, "./explicit", filter.EffectiveTagFilter{}, types.VerbosityNone)

	assert.Equal(t, "./explicit", cfg.Path)
	// The pre-supplied config must not be mutated by the merge.
	assert.Equal(t, "./preconfigured", pre.Path)
}

func TestBuild_PreConfigPathKeptWhenNoExplicitPath(t *testing.T) {
	pre := &Config{Path: "./preconfigured"}

	cfg := Build(pre, "", filter.EffectiveTagFilter{}, types.VerbosityNone)

	assert.Equal(t, "./preconfigured", cfg.Path)
}

func TestBuild_EmptyFilterKeepsPreConfigTags(t *testing.T) {
	pre := &Config{
		IncludeTags: []string{"Smoke"},
		ExcludeTags: []string{"Slow"},
	}

	cfg := Build(pre, "", filter.EffectiveTagFilter{}, types.VerbosityNone)

	assert.Equal(t, []string{"Smoke"}, cfg.IncludeTags)
	assert.Equal(t, []string{"Slow"}, cfg.ExcludeTags)
}

func TestBuild_NonEmptyFilterOverridesPreConfigTags(t *testing.T) {
	pre := &Config{IncludeTags: []string{"Old"}}
	f := filter.Resolve([]string{"Smoke"}, nil)

	cfg := Build(pre, "", f, types.VerbosityDetailed)

	assert.Equal(t, []string{"Smoke"}, cfg.IncludeTags)
	assert.Contains(t, cfg.ExcludeTags, types.TagOptInOnly)
}

func TestBuild_AlwaysPassThru(t *testing.T) {
	pre := &Config{PassThru: false}

	cfg := Build(pre, "", filter.EffectiveTagFilter{}, types.VerbosityNone)

	assert.True(t, cfg.PassThru)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	content := []byte("path: ./suite\ninclude_tags: [Smoke]\ngo_binary: go1.24\ntimeout: 5m\n")
	require.NoError(t, os.WriteFile(path, content, 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "./suite", cfg.Path)
	assert.Equal(t, []string{"Smoke"}, cfg.IncludeTags)
	assert.Equal(t, "go1.24", cfg.GoBinary)
	assert.Equal(t, 5*time.Minute, cfg.Timeout)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("path: [unclosed"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}
