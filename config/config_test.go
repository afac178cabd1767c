package config

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(t *testing.T) (*Config, string) {
	dir := filepath.Join(t.TempDir(), "goditor")
	return NewConfig(log.New(io.Discard, "", 0), dir), dir
}

func TestInitWritesDefaults(t *testing.T) {
	cfg, dir := newTestConfig(t)
	require.NoError(t, cfg.Init())

	_, err := os.Stat(filepath.Join(dir, "config.json"))
	require.NoError(t, err)

	e := cfg.Editor()
	assert.Equal(t, LineAbsolute, e.LineNumbers)
	assert.Equal(t, "monokai", e.Theme)
	assert.True(t, e.ShowExplorer)
	assert.Equal(t, 30, e.ExplorerWidth)
	assert.Equal(t, []string{"target", "node_modules"}, e.ExplorerIgnore)
	assert.Equal(t, "save", e.Keybindings["Ctrl+S"])
}

func TestInitKeepsExistingFile(t *testing.T) {
	cfg, dir := newTestConfig(t)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"lineNumbers": "relative", "keybindings": {"F2": "save"}}`), 0644))
	require.NoError(t, cfg.Init())

	e := cfg.Editor()
	assert.Equal(t, LineRelative, e.LineNumbers)
	assert.Equal(t, "save", e.Keybindings["F2"])
	// defaults fill what the file leaves out
	assert.Equal(t, "quit", e.Keybindings["Ctrl+Q"])
	assert.Equal(t, "monokai", e.Theme)
}

func TestTomlOverlay(t *testing.T) {
	cfg, dir := newTestConfig(t)
	require.NoError(t, os.MkdirAll(dir, 0755))
	overlay := "theme = \"dracula\"\nshowExplorer = false\nlineNumbers = \"bogus\"\n\n[keybindings]\n\"Ctrl+K\" = \"close\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(overlay), 0644))
	require.NoError(t, cfg.Init())

	e := cfg.Editor()
	assert.Equal(t, "dracula", e.Theme)
	assert.False(t, e.ShowExplorer)
	assert.Equal(t, LineAbsolute, e.LineNumbers)
	assert.Equal(t, "close", e.Keybindings["Ctrl+K"])
	assert.Equal(t, "save", e.Keybindings["Ctrl+S"])
}

func TestInvalidConfig(t *testing.T) {
	cfg, dir := newTestConfig(t)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"theme": `), 0644))
	assert.Error(t, cfg.Init())
}

func TestEditorReturnsCopy(t *testing.T) {
	cfg, _ := newTestConfig(t)
	require.NoError(t, cfg.Init())
	e := cfg.Editor()
	e.Keybindings["Ctrl+S"] = "quit"
	e.ExplorerIgnore[0] = "changed"
	assert.Equal(t, "save", cfg.Editor().Keybindings["Ctrl+S"])
	assert.Equal(t, "target", cfg.Editor().ExplorerIgnore[0])
}

func TestWatchReloads(t *testing.T) {
	cfg, dir := newTestConfig(t)
	require.NoError(t, cfg.Init())

	changed := make(chan EditorConfig, 8)
	cfg.OnChange(func(e EditorConfig) { changed <- e })
	require.NoError(t, cfg.Watch())
	defer cfg.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`lineNumbers = "off"`), 0644))

	require.Eventually(t, func() bool {
		return cfg.Editor().LineNumbers == LineOff
	}, 5*time.Second, 10*time.Millisecond)

	select {
	case e := <-changed:
		assert.NotEmpty(t, e.Keybindings)
	case <-time.After(5 * time.Second):
		t.Fatal("OnChange was not called")
	}
}

func TestDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, "/xdg/goditor", Dir())
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/me")
	assert.Equal(t, "/home/me/.goditor", Dir())
}
