package config

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

const DefaultFile = "lightswitch.yaml"

//go:embed lightswitch.yaml
var defaultYAML []byte

type Config struct {
	Window    WindowConfig    `yaml:"window"`
	LogLevel  string          `yaml:"log_level"`
	Page      PageConfig      `yaml:"page"`
	Indicator IndicatorConfig `yaml:"indicator"`
	Palettes  Palettes        `yaml:"palettes"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type PageConfig struct {
	Title           string  `yaml:"title"`
	Subtitle        string  `yaml:"subtitle"`
	Hint            string  `yaml:"hint"`
	ContentHeight   float64 `yaml:"content_height"`
	FooterHeight    float64 `yaml:"footer_height"`
	FooterText      string  `yaml:"footer_text"`
	FooterThreshold float64 `yaml:"footer_threshold"`
	Notes           int     `yaml:"notes"`
}

type IndicatorConfig struct {
	ShownOpacity float64 `yaml:"shown_opacity"`
	FadeRate     float64 `yaml:"fade_rate"`
}

type Palettes struct {
	Light Palette `yaml:"light"`
	Dark  Palette `yaml:"dark"`
}

type Palette struct {
	Background Hex `yaml:"background"`
	Scene      Hex `yaml:"scene"`
	Lamp       Hex `yaml:"lamp"`
	Text       Hex `yaml:"text"`
	Accent     Hex `yaml:"accent"`
}

// Hex is a "#rrggbb" or "#rrggbbaa" color.
type Hex string

func (h Hex) Color() (color.NRGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(string(h)), "#")
	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", string(h))
	}

	c, err := colorful.Hex("#" + s[:6])
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", string(h), err)
	}
	r, g, b := c.RGB255()

	alpha := uint64(0xff)
	if len(s) == 8 {
		alpha, err = strconv.ParseUint(s[6:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("color %q: alpha: %w", string(h), err)
		}
	}
	return color.NRGBA{R: r, G: g, B: b, A: uint8(alpha)}, nil
}

// MustColor returns the parsed color, or magenta when h does not parse.
// Configs are validated on load, so this only shows up for zero values.
func (h Hex) MustColor() color.NRGBA {
	c, err := h.Color()
	if err != nil {
		return color.NRGBA{R: 0xff, B: 0xff, A: 0xff}
	}
	return c
}

// Default returns the embedded configuration.
func Default() Config {
	cfg, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("config: embedded default: %v", err))
	}
	return cfg
}

// Load reads path over the embedded default. A missing file yields the
// default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	cfg, err := Parse(b)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data on top of the embedded default and validates the result.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode default: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window: size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Page.ContentHeight <= 0 {
		errs = append(errs, errors.New("page: content_height must be positive"))
	}
	if c.Page.FooterHeight <= 0 || c.Page.FooterHeight > c.Page.ContentHeight {
		errs = append(errs, errors.New("page: footer_height must be within content_height"))
	}
	if c.Page.FooterThreshold < 0 || c.Page.FooterThreshold > 1 {
		errs = append(errs, errors.New("page: footer_threshold must be within [0, 1]"))
	}
	if c.Page.Notes < 0 {
		errs = append(errs, errors.New("page: notes must not be negative"))
	}
	if c.Indicator.ShownOpacity < 0 || c.Indicator.ShownOpacity > 1 {
		errs = append(errs, errors.New("indicator: shown_opacity must be within [0, 1]"))
	}
	for name, p := range map[string]Palette{"light": c.Palettes.Light, "dark": c.Palettes.Dark} {
		for field, h := range map[string]Hex{
			"background": p.Background,
			"scene":      p.Scene,
			"lamp":       p.Lamp,
			"text":       p.Text,
			"accent":     p.Accent,
		} {
			if _, err := h.Color(); err != nil {
				errs = append(errs, fmt.Errorf("palettes.%s.%s: %w", name, field, err))
			}
		}
	}
	return errors.Join(errs...)
}
