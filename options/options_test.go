package options

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/richinsley/gotriangle/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	o := Default()
	assert.Equal(t, "3d", o.Variant)
	assert.Equal(t, 800, o.Width)
	assert.Equal(t, 600, o.Height)
	assert.Equal(t, ModeWindow, o.Mode)
	assert.Equal(t, 6.0, o.Duration)
	// a quarter turn, not a full one that matches frame 0
	assert.Equal(t, 1.5, o.SnapshotAt)
	assert.Equal(t, 60, o.FPS)
	assert.Equal(t, "libx264", o.Codec)
	assert.Equal(t, "game-surface", o.CanvasID)
	assert.False(t, o.Headless)
	require.NoError(t, o.Validate())
	assert.Equal(t, shader.Variant3D, o.ShaderVariant())
}

func TestParseFlags(t *testing.T) {
	o, f, err := Parse("gotriangle", []string{"-variant", "2d", "-mode=record", "-fps", "30", "-print-config"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "2d", o.Variant)
	assert.Equal(t, ModeRecord, o.Mode)
	assert.Equal(t, 30, o.FPS)
	assert.True(t, f.PrintConfig)
	assert.Equal(t, "triangle.mp4", o.OutputFile())
}

func TestParseConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "triangle.toml")
	require.NoError(t, os.WriteFile(path, []byte("variant = \"2d\"\nwidth = 320\nmode = \"snapshot\"\n"), 0o644))

	o, f, err := Parse("gotriangle", []string{"-width", "640", "-config", path}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, path, f.Config)
	assert.Equal(t, "2d", o.Variant)
	// the command line wins over the file
	assert.Equal(t, 640, o.Width)
	assert.Equal(t, 600, o.Height)
	assert.Equal(t, ModeSnapshot, o.Mode)
	assert.Equal(t, "triangle.png", o.OutputFile())
}

func TestParseSnapshotAt(t *testing.T) {
	o, _, err := Parse("gotriangle", []string{"-mode", "snapshot", "-at", "0.75"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 0.75, o.SnapshotAt)
	assert.Equal(t, 6.0, o.Duration)
	require.NoError(t, o.Validate())
}

func TestSetDefaultsReportsBadTag(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	bad := &struct {
		Width int `default:"wide"`
	}{}
	err := setDefaults(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid default")
	assert.Contains(t, buf.String(), "Width")

	require.NoError(t, setDefaults(&Options{}))
}

func TestParseErrors(t *testing.T) {
	_, _, err := Parse("gotriangle", []string{"-config"}, io.Discard)
	assert.Error(t, err)

	_, _, err = Parse("gotriangle", []string{"-config", filepath.Join(t.TempDir(), "missing.toml")}, io.Discard)
	assert.Error(t, err)

	_, _, err = Parse("gotriangle", []string{"-no-such-flag"}, io.Discard)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		modify func(o *Options)
	}{
		{"variant", func(o *Options) { o.Variant = "cube" }},
		{"mode", func(o *Options) { o.Mode = "stream" }},
		{"width", func(o *Options) { o.Width = 0 }},
		{"height", func(o *Options) { o.Height = -1 }},
		{"fps", func(o *Options) { o.Mode = ModeRecord; o.FPS = 0 }},
		{"duration", func(o *Options) { o.Mode = ModeRecord; o.Duration = 0 }},
		{"snapshot time", func(o *Options) { o.Mode = ModeSnapshot; o.SnapshotAt = -1 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			o := Default()
			c.modify(o)
			assert.Error(t, o.Validate())
		})
	}
}

func TestWriteTOMLLoadsBack(t *testing.T) {
	o := Default()
	o.Variant = "2d"
	o.Headless = true

	var buf bytes.Buffer
	require.NoError(t, o.WriteTOML(&buf))
	assert.Contains(t, buf.String(), "variant = ")
	assert.Contains(t, buf.String(), "2d")

	path := filepath.Join(t.TempDir(), "out.toml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	loaded := &Options{}
	require.NoError(t, loaded.Load(path))
	assert.Equal(t, o, loaded)
}
