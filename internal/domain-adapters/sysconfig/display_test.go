package sysconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berrysetup/berrysetup/internal/domain/entities"
)

func displayCfg() entities.DisplayConfig {
	return entities.DisplayConfig{
		Overlay:  "piscreen",
		Rotation: 90,
		SpeedHz:  16000000,
	}
}

func TestDisplayWriter_WritesManagedBlock(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.txt")
	w := NewDisplayWriter(configPath, nil)

	require.NoError(t, w.Apply(displayCfg()))

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "dtoverlay=piscreen,rotate=90,speed=16000000")
	assert.Contains(t, string(content), displayBlockBegin)
	assert.Contains(t, string(content), displayBlockEnd)
}

func TestDisplayWriter_PreservesForeignLines(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.txt")
	require.NoError(t, os.WriteFile(configPath, []byte("arm_64bit=1\ngpu_mem=128\n"), 0644))

	w := NewDisplayWriter(configPath, nil)
	require.NoError(t, w.Apply(displayCfg()))

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "arm_64bit=1\ngpu_mem=128\n"))
}

func TestDisplayWriter_RewriteReplacesBlock(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.txt")
	w := NewDisplayWriter(configPath, nil)

	require.NoError(t, w.Apply(displayCfg()))

	second := displayCfg()
	second.Rotation = 180
	require.NoError(t, w.Apply(second))

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(content), displayBlockBegin), "block must be replaced, not appended")
	assert.Contains(t, string(content), "rotate=180")
	assert.NotContains(t, string(content), "rotate=90")
}

func TestDisplayWriter_ParamsAreDeterministic(t *testing.T) {
	cfg := displayCfg()
	cfg.Params = map[string]string{"touch": "on", "fps": "60"}

	block := renderDisplayBlock(cfg)
	assert.Contains(t, block, ",fps=60,touch=on")
}

func TestDisplayWriter_RejectsBadRotation(t *testing.T) {
	w := NewDisplayWriter(filepath.Join(t.TempDir(), "config.txt"), nil)

	cfg := displayCfg()
	cfg.Rotation = 45
	assert.Error(t, w.Apply(cfg))
}

func TestDisplayWriter_RejectsEmptyOverlay(t *testing.T) {
	w := NewDisplayWriter(filepath.Join(t.TempDir(), "config.txt"), nil)

	cfg := displayCfg()
	cfg.Overlay = ""
	assert.Error(t, w.Apply(cfg))
}

func TestDisplayWriter_RemoveDeletesBlockOnly(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.txt")
	require.NoError(t, os.WriteFile(configPath, []byte("gpu_mem=128\n"), 0644))

	w := NewDisplayWriter(configPath, nil)
	require.NoError(t, w.Apply(displayCfg()))
	require.NoError(t, w.Remove())

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, "gpu_mem=128\n", string(content))
}
