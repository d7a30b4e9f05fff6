package config

import (
	"image/color"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 50.0, cfg.Gesture.BreakThreshold)
	assert.Equal(t, time.Second, cfg.Gesture.Cooldown)
	assert.Equal(t, 2, cfg.Gesture.Subsample)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().RelayURL, cfg.RelayURL)
	assert.NotEmpty(t, cfg.ViewerID, "a viewer id is generated")
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "board.toml", `
viewer_id = "2"
relay_url = "ws://relay.lan:8080/ws"
reconnect_interval = "5s"

[gesture]
break_threshold = 75.5
cooldown = "1500ms"
subsample = 3
mirror = true

[render]
stroke_color = "#ff8800"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "2", cfg.ViewerID)
	assert.Equal(t, "ws://relay.lan:8080/ws", cfg.RelayURL)
	assert.Equal(t, 5*time.Second, cfg.ReconnectInterval)
	assert.Equal(t, 75.5, cfg.Gesture.BreakThreshold)
	assert.Equal(t, 1500*time.Millisecond, cfg.Gesture.Cooldown)
	assert.Equal(t, 3, cfg.Gesture.Subsample)
	assert.True(t, cfg.Gesture.Mirror)
	assert.Equal(t, 1280, cfg.Render.Width, "unset keys keep defaults")

	tun := cfg.Tunables()
	assert.Equal(t, 75.5, tun.BreakThreshold)
	assert.True(t, tun.Mirror)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0x88, A: 0xff}, cfg.Pen().Color)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "board.yaml", `
viewer_id: viewer-a
gesture:
  cooldown: 750ms
  subsample: 1
document:
  dir: /srv/slides
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "viewer-a", cfg.ViewerID)
	assert.Equal(t, 750*time.Millisecond, cfg.Gesture.Cooldown)
	assert.Equal(t, 1, cfg.Gesture.Subsample)
	assert.Equal(t, "/srv/slides", cfg.Document.Dir)
}

func TestLoad_Rejects(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(writeFile(t, dir, "bad.ini", "x=1"))
	assert.ErrorContains(t, err, "unsupported config format")

	_, err = Load(writeFile(t, dir, "broken.toml", "gesture = ["))
	assert.ErrorContains(t, err, "decode TOML")

	_, err = Load(writeFile(t, dir, "invalid.toml", "[gesture]\nsubsample = 0\nbreak_threshold = -1\n"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "gesture.subsample")
	assert.ErrorContains(t, err, "gesture.break_threshold")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvTextAPIKey, "text-key")
	t.Setenv(EnvImageAPIKey, "image-key")
	t.Setenv(EnvImageAccount, "acct")

	cfg := DefaultConfig()
	cfg.ViewerID = "keep"
	cfg.ApplyEnv()
	assert.Equal(t, "text-key", cfg.Generate.TextAPIKey)
	assert.Equal(t, "image-key", cfg.Generate.ImageAPIKey)
	assert.Equal(t, "acct", cfg.Generate.ImageAccount)
	assert.Equal(t, "keep", cfg.ViewerID)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#00ff0080")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{G: 0xff, A: 0x80}, c)

	c, err = ParseColor("ff0000")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0xff, A: 0xff}, c)

	for _, bad := range []string{"", "#fff", "#gggggg", "red"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestWatch_ReloadsTunables(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "board.toml", "[gesture]\nbreak_threshold = 50.0\n")
	initial, err := Load(path)
	require.NoError(t, err)

	changes := make(chan *Config, 4)
	w, err := Watch(path, initial, func(c *Config) { changes <- c })
	require.NoError(t, err)
	defer w.Close()

	writeFile(t, dir, "board.toml", "[gesture]\nbreak_threshold = 90.0\n")

	select {
	case cfg := <-changes:
		assert.Equal(t, 90.0, cfg.Gesture.BreakThreshold)
		assert.Equal(t, initial.ViewerID, cfg.ViewerID)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload observed")
	}
	assert.Equal(t, 90.0, w.Current().Gesture.BreakThreshold)
}

func TestWatch_CloseWaitsForRunningReload(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "board.toml", "[gesture]\nsubsample = 2\n")
	initial, err := Load(path)
	require.NoError(t, err)

	entered := make(chan struct{}, 4)
	release := make(chan struct{})
	var calls atomic.Int32
	w, err := Watch(path, initial, func(*Config) {
		calls.Add(1)
		entered <- struct{}{}
		<-release
	})
	require.NoError(t, err)

	writeFile(t, dir, "board.toml", "[gesture]\nsubsample = 3\n")
	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("no reload observed")
	}

	closed := make(chan error, 1)
	go func() { closed <- w.Close() }()
	select {
	case <-closed:
		t.Fatal("Close returned while onChange was running")
	case <-time.After(100 * time.Millisecond):
	}

	close(release)
	select {
	case err := <-closed:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not return")
	}

	writeFile(t, dir, "board.toml", "[gesture]\nsubsample = 4\n")
	time.Sleep(3 * debounceDelay)
	assert.Equal(t, int32(1), calls.Load(), "no reload after Close")
}
