package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"GestureBoard/internal/gesture"
	"GestureBoard/internal/state"
)

// Config is the full viewer and relay configuration.
type Config struct {
	// Identification
	ViewerID string `toml:"viewer_id" yaml:"viewer_id"`

	// Network
	RelayURL          string        `toml:"relay_url" yaml:"relay_url"`                   // empty: discover over mDNS
	RelayAddr         string        `toml:"relay_addr" yaml:"relay_addr"`                 // listen address in relay mode
	Advertise         bool          `toml:"advertise" yaml:"advertise"`                   // announce the relay over mDNS
	DiscoveryTimeout  time.Duration `toml:"discovery_timeout" yaml:"discovery_timeout"`   // mDNS browse window
	ReconnectInterval time.Duration `toml:"reconnect_interval" yaml:"reconnect_interval"` // 0 disables redialing

	Gesture  GestureConfig  `toml:"gesture" yaml:"gesture"`
	Render   RenderConfig   `toml:"render" yaml:"render"`
	Document DocumentConfig `toml:"document" yaml:"document"`
	Generate GenerateConfig `toml:"generate" yaml:"generate"`
}

// GestureConfig holds the pipeline tunables. All of them can be changed
// while the viewer runs.
type GestureConfig struct {
	BreakThreshold float64       `toml:"break_threshold" yaml:"break_threshold"` // px jump that lifts the pen
	Cooldown       time.Duration `toml:"cooldown" yaml:"cooldown"`               // gap between discrete gestures
	Subsample      int           `toml:"subsample" yaml:"subsample"`             // act on every n-th continuous sample
	Mirror         bool          `toml:"mirror" yaml:"mirror"`                   // flip x for mirrored cameras
}

type RenderConfig struct {
	Width       int     `toml:"width" yaml:"width"`
	Height      int     `toml:"height" yaml:"height"`
	StrokeColor string  `toml:"stroke_color" yaml:"stroke_color"`
	StrokeWidth float64 `toml:"stroke_width" yaml:"stroke_width"`
	EraserWidth float64 `toml:"eraser_width" yaml:"eraser_width"`
	LaserColor  string  `toml:"laser_color" yaml:"laser_color"`
	LaserRadius float64 `toml:"laser_radius" yaml:"laser_radius"`
}

type DocumentConfig struct {
	Dir       string `toml:"dir" yaml:"dir"`
	ExportDir string `toml:"export_dir" yaml:"export_dir"`
}

type GenerateConfig struct {
	TextURL      string        `toml:"text_url" yaml:"text_url"`
	TextAPIKey   string        `toml:"text_api_key" yaml:"text_api_key"`
	ImageURL     string        `toml:"image_url" yaml:"image_url"`
	ImageAccount string        `toml:"image_account" yaml:"image_account"`
	ImageAPIKey  string        `toml:"image_api_key" yaml:"image_api_key"`
	Timeout      time.Duration `toml:"timeout" yaml:"timeout"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		RelayURL:          "ws://localhost:8080/ws",
		RelayAddr:         ":8080",
		DiscoveryTimeout:  3 * time.Second,
		ReconnectInterval: 2 * time.Second,
		Gesture: GestureConfig{
			BreakThreshold: gesture.DefaultBreakThreshold,
			Cooldown:       gesture.DefaultCooldown,
			Subsample:      gesture.DefaultSubsample,
		},
		Render: RenderConfig{
			Width:       1280,
			Height:      960,
			StrokeColor: "#0000ff",
			StrokeWidth: 2,
			EraserWidth: 20,
			LaserColor:  "#ff0000",
			LaserRadius: 8,
		},
		Document: DocumentConfig{
			ExportDir: ".",
		},
		Generate: GenerateConfig{
			TextURL:  "https://generativelanguage.googleapis.com/v1beta/models/gemini-pro:generateContent",
			ImageURL: "https://api.cloudflare.com/client/v4/accounts/{account}/ai/run/@cf/stabilityai/stable-diffusion-xl-base-1.0",
			Timeout:  60 * time.Second,
		},
	}
}

// Environment variables that override secrets from the file.
const (
	EnvTextAPIKey   = "GESTUREBOARD_TEXT_API_KEY"
	EnvImageAPIKey  = "GESTUREBOARD_IMAGE_API_KEY"
	EnvImageAccount = "GESTUREBOARD_IMAGE_ACCOUNT"
)

// ApplyEnv copies secrets from the environment and fills a missing viewer id.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvTextAPIKey); v != "" {
		c.Generate.TextAPIKey = v
	}
	if v := os.Getenv(EnvImageAPIKey); v != "" {
		c.Generate.ImageAPIKey = v
	}
	if v := os.Getenv(EnvImageAccount); v != "" {
		c.Generate.ImageAccount = v
	}
	if c.ViewerID == "" {
		c.ViewerID = uuid.NewString()
	}
}

// Validate checks ranges that would make the pipeline misbehave.
func (c *Config) Validate() error {
	var errs []error
	if c.Gesture.BreakThreshold <= 0 {
		errs = append(errs, fmt.Errorf("gesture.break_threshold must be positive, got %v", c.Gesture.BreakThreshold))
	}
	if c.Gesture.Cooldown < 0 {
		errs = append(errs, fmt.Errorf("gesture.cooldown must not be negative, got %s", c.Gesture.Cooldown))
	}
	if c.Gesture.Subsample < 1 {
		errs = append(errs, fmt.Errorf("gesture.subsample must be at least 1, got %d", c.Gesture.Subsample))
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		errs = append(errs, fmt.Errorf("render size must be positive, got %dx%d", c.Render.Width, c.Render.Height))
	}
	if c.Render.StrokeWidth <= 0 || c.Render.EraserWidth <= 0 {
		errs = append(errs, errors.New("render stroke and eraser widths must be positive"))
	}
	if _, err := ParseColor(c.Render.StrokeColor); err != nil {
		errs = append(errs, fmt.Errorf("render.stroke_color: %w", err))
	}
	if _, err := ParseColor(c.Render.LaserColor); err != nil {
		errs = append(errs, fmt.Errorf("render.laser_color: %w", err))
	}
	if c.ReconnectInterval < 0 {
		errs = append(errs, fmt.Errorf("reconnect_interval must not be negative, got %s", c.ReconnectInterval))
	}
	return errors.Join(errs...)
}

// Tunables converts the gesture section for the dispatcher.
func (c *Config) Tunables() gesture.Tunables {
	return gesture.Tunables{
		BreakThreshold: c.Gesture.BreakThreshold,
		Cooldown:       c.Gesture.Cooldown,
		Subsample:      c.Gesture.Subsample,
		Mirror:         c.Gesture.Mirror,
	}
}

// Pen converts the render section for the stroke layer.
func (c *Config) Pen() state.Pen {
	pen := state.DefaultPen()
	if col, err := ParseColor(c.Render.StrokeColor); err == nil {
		pen.Color = col
	}
	if c.Render.StrokeWidth > 0 {
		pen.Width = c.Render.StrokeWidth
	}
	if c.Render.EraserWidth > 0 {
		pen.EraserWidth = c.Render.EraserWidth
	}
	return pen
}

// LaserColor returns the parsed laser colour, or nil for the default.
func (c *Config) LaserColor() color.Color {
	col, err := ParseColor(c.Render.LaserColor)
	if err != nil {
		return nil
	}
	return col
}

// ParseColor accepts "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
