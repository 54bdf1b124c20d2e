// Package options holds the settings of the desktop front end.
package options

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"cogentcore.org/core/base/iox/tomlx"
	"cogentcore.org/core/cli"
	"github.com/pelletier/go-toml/v2"
	"github.com/richinsley/gotriangle/shader"
)

// Modes accepted by Options.Mode.
const (
	ModeWindow   = "window"
	ModeRecord   = "record"
	ModeSnapshot = "snapshot"
)

// Options are the settings of one run. Zero values are replaced by the
// default tags in Default.
type Options struct {
	Variant string `toml:"variant" default:"3d"`
	Width   int    `toml:"width" default:"800"`
	Height  int    `toml:"height" default:"600"`
	Title   string `toml:"title" default:"gotriangle"`

	// Mode is window, record or snapshot.
	Mode     string  `toml:"mode" default:"window"`
	Duration float64 `toml:"duration" default:"6"` // seconds
	FPS      int     `toml:"fps" default:"60"`
	Output   string  `toml:"output"`

	// SnapshotAt is the elapsed time in seconds rendered by snapshot mode.
	// A whole turn takes 6s, so the default lands a quarter turn in.
	SnapshotAt float64 `toml:"snapshot_at" default:"1.5"`

	FFMPEGPath string `toml:"ffmpeg_path"`
	Codec      string `toml:"codec" default:"libx264"`

	// Headless renders record and snapshot output through EGL instead of
	// a hidden GLFW window.
	Headless bool `toml:"headless"`
	// CheckShaders runs the sources through the offline translator before
	// rendering.
	CheckShaders bool `toml:"check_shaders"`

	// CanvasID is the canvas element looked up by the browser build.
	CanvasID string `toml:"canvas_id" default:"game-surface"`
}

// Default returns Options with every default tag applied. A malformed tag
// is logged and leaves its field zero; Parse reports it as an error.
func Default() *Options {
	o := &Options{}
	setDefaults(o)
	return o
}

// setDefaults applies the default tags of the struct pointed to by v.
// cli logs the error as well as returning it.
func setDefaults(v any) error {
	if err := cli.SetFromDefaults(v); err != nil {
		return fmt.Errorf("invalid default: %w", err)
	}
	return nil
}

// Load overlays the TOML files onto o, later files winning.
func (o *Options) Load(files ...string) error {
	if len(files) == 0 {
		return nil
	}
	if err := tomlx.OpenFiles(o, files...); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// RegisterFlags binds every option to a flag in fs, using the current
// values as flag defaults.
func (o *Options) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&o.Variant, "variant", o.Variant, "Triangle variant: 2d or 3d")
	fs.IntVar(&o.Width, "width", o.Width, "Width of the surface")
	fs.IntVar(&o.Height, "height", o.Height, "Height of the surface")
	fs.StringVar(&o.Title, "title", o.Title, "Window title")
	fs.StringVar(&o.Mode, "mode", o.Mode, "Run mode: window, record or snapshot")
	fs.Float64Var(&o.Duration, "duration", o.Duration, "Seconds to record")
	fs.Float64Var(&o.SnapshotAt, "at", o.SnapshotAt, "Elapsed seconds rendered by snapshot mode")
	fs.IntVar(&o.FPS, "fps", o.FPS, "Frames per second for recording")
	fs.StringVar(&o.Output, "output", o.Output, "Output file for record or snapshot mode")
	fs.StringVar(&o.FFMPEGPath, "ffmpeg", o.FFMPEGPath, "Path to ffmpeg executable")
	fs.StringVar(&o.Codec, "codec", o.Codec, "Video codec for recording")
	fs.BoolVar(&o.Headless, "headless", o.Headless, "Render offscreen output through EGL")
	fs.BoolVar(&o.CheckShaders, "validate", o.CheckShaders, "Check the shaders with the offline translator first")
}

// Parse builds Options from defaults, an optional -config TOML file and
// the command line, in that order of precedence.
func Parse(name string, args []string, stderr io.Writer) (*Options, *Flags, error) {
	config, err := configFile(args)
	if err != nil {
		return nil, nil, err
	}

	o := &Options{}
	if err := setDefaults(o); err != nil {
		return nil, nil, err
	}
	if err := o.Load(config...); err != nil {
		return nil, nil, err
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "TOML file with default options")
	fs.BoolVar(&f.PrintConfig, "print-config", false, "Print the effective options as TOML and exit")
	fs.BoolVar(&f.Help, "help", false, "Show help message")
	o.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if f.Help {
		fs.PrintDefaults()
	}
	return o, f, nil
}

// Flags are command line switches that are not options themselves.
type Flags struct {
	Config      string
	PrintConfig bool
	Help        bool
}

// configFile finds -config in args without parsing the rest, so the file
// can seed the defaults of every other flag.
func configFile(args []string) ([]string, error) {
	for i, a := range args {
		if a == "--" {
			break
		}
		name := strings.TrimLeft(a, "-")
		if len(name) == len(a) || len(a)-len(name) > 2 {
			continue
		}
		if v, ok := strings.CutPrefix(name, "config="); ok {
			return []string{v}, nil
		}
		if name == "config" {
			if i+1 >= len(args) {
				return nil, fmt.Errorf("flag needs an argument: -config")
			}
			return []string{args[i+1]}, nil
		}
	}
	return nil, nil
}

// Validate reports the first setting that cannot be run.
func (o *Options) Validate() error {
	if _, err := shader.ParseVariant(o.Variant); err != nil {
		return err
	}
	switch o.Mode {
	case ModeWindow, ModeRecord, ModeSnapshot:
	default:
		return fmt.Errorf("unknown mode %q", o.Mode)
	}
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", o.Width, o.Height)
	}
	if o.Mode == ModeRecord {
		if o.FPS <= 0 {
			return fmt.Errorf("invalid fps %d", o.FPS)
		}
		if o.Duration <= 0 {
			return fmt.Errorf("invalid duration %v", o.Duration)
		}
	}
	if o.Mode == ModeSnapshot && o.SnapshotAt < 0 {
		return fmt.Errorf("invalid snapshot time %v", o.SnapshotAt)
	}
	return nil
}

// ShaderVariant returns the parsed Variant.
func (o *Options) ShaderVariant() shader.Variant {
	v, _ := shader.ParseVariant(o.Variant)
	return v
}

// OutputFile returns Output, or a name derived from the mode.
func (o *Options) OutputFile() string {
	if o.Output != "" {
		return o.Output
	}
	if o.Mode == ModeSnapshot {
		return "triangle.png"
	}
	return "triangle.mp4"
}

// WriteTOML writes o as TOML.
func (o *Options) WriteTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(o)
}
