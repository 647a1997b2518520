package config

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/iburimskiy/particle-field/internal/field"
	"github.com/spf13/pflag"
	"golang.org/x/image/colornames"
)

const (
	WindowWidth  = 1024
	WindowHeight = 512
	WindowTitle  = "Particle Field - Esc/Q: Quit, D: Debug overlay"

	// Drawing style
	DefaultColor      = "white"
	DefaultBackground = "#10131c"
	DefaultLineWidth  = 0.1

	DefaultGrowth  = "capped"
	DefaultPairs   = "all"
	DefaultReflect = "original"
)

// FieldConfig configures the particle field window.
type FieldConfig struct {
	ConfigFile string `mapstructure:"config-file"`

	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`

	Count     int     `mapstructure:"count"`
	Distance  float64 `mapstructure:"distance"`
	Influence float64 `mapstructure:"influence"`
	Rate      int     `mapstructure:"rate"`

	Color      string  `mapstructure:"color"`
	Background string  `mapstructure:"background"`
	LineWidth  float64 `mapstructure:"line-width"`

	Growth  string `mapstructure:"growth"`
	Pairs   string `mapstructure:"pairs"`
	Reflect string `mapstructure:"reflect"`

	// Seed fixes the random source; zero seeds from the clock.
	Seed  uint64 `mapstructure:"seed"`
	Debug bool   `mapstructure:"debug"`
}

func NewFieldConfig() *FieldConfig {
	return &FieldConfig{
		Width:      WindowWidth,
		Height:     WindowHeight,
		Title:      WindowTitle,
		Count:      field.DefaultCount,
		Distance:   field.DefaultDistance,
		Influence:  field.DefaultInfluence,
		Rate:       field.DefaultRate,
		Color:      DefaultColor,
		Background: DefaultBackground,
		LineWidth:  DefaultLineWidth,
		Growth:     DefaultGrowth,
		Pairs:      DefaultPairs,
		Reflect:    DefaultReflect,
	}
}

func (c *FieldConfig) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.ConfigFile, "config-file", "", "Config file to use")
	fs.IntVar(&c.Width, "width", c.Width, "Surface width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "Surface height in pixels")
	fs.StringVar(&c.Title, "title", c.Title, "Window title")
	fs.IntVar(&c.Count, "count", c.Count, "Number of particles")
	fs.Float64Var(&c.Distance, "distance", c.Distance, "Maximum distance between joined particles")
	fs.Float64Var(&c.Influence, "influence", c.Influence, "Pointer influence radius")
	fs.IntVar(&c.Rate, "rate", c.Rate, "Redraws per second")
	fs.StringVar(&c.Color, "color", c.Color, "Dot and line color (name or #rrggbb)")
	fs.StringVar(&c.Background, "background", c.Background, "Background color (name or #rrggbb)")
	fs.Float64Var(&c.LineWidth, "line-width", c.LineWidth, "Line width in pixels")
	fs.StringVar(&c.Growth, "growth", c.Growth, "Particle growth: capped or accumulate")
	fs.StringVar(&c.Pairs, "pairs", c.Pairs, "Line pairs: all or unique")
	fs.StringVar(&c.Reflect, "reflect", c.Reflect, "Side edge reflection: original or corrected")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "Random seed (0 seeds from the clock)")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "Show the debug overlay")
}

// LoadConfig applies the config file and the explicitly set flags in fs.
func (c *FieldConfig) LoadConfig(fs *pflag.FlagSet) error {
	loader := NewLoader(fs)
	loader.SetConfigFile(c.ConfigFile)
	loader.SetStrictMode(true)
	loader.SetDefaults(map[string]any{
		"width":      WindowWidth,
		"height":     WindowHeight,
		"title":      WindowTitle,
		"count":      field.DefaultCount,
		"distance":   field.DefaultDistance,
		"influence":  field.DefaultInfluence,
		"rate":       field.DefaultRate,
		"color":      DefaultColor,
		"background": DefaultBackground,
		"line-width": DefaultLineWidth,
		"growth":     DefaultGrowth,
		"pairs":      DefaultPairs,
		"reflect":    DefaultReflect,
	})

	if err := loader.Load(c); err != nil {
		return err
	}
	return c.Validate()
}

func (c *FieldConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: surface size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.LineWidth <= 0 {
		return fmt.Errorf("%w: line width must be positive", ErrInvalidConfig)
	}
	if _, err := ParseColor(c.Background); err != nil {
		return err
	}
	_, err := c.Options()
	return err
}

// Options builds the animator options described by the configuration.
func (c *FieldConfig) Options() (field.Options, error) {
	opts := field.DefaultOptions()
	opts.Count = c.Count
	opts.Distance = c.Distance
	opts.Influence = c.Influence
	opts.Rate = c.Rate

	if c.Count <= 0 || c.Rate <= 0 || c.Distance < 0 || c.Influence < 0 {
		return opts, fmt.Errorf("%w: count=%d rate=%d distance=%g influence=%g",
			ErrInvalidConfig, c.Count, c.Rate, c.Distance, c.Influence)
	}

	fg, err := ParseColor(c.Color)
	if err != nil {
		return opts, err
	}
	opts.Style = field.Style{Fill: fg, Stroke: fg, LineWidth: c.LineWidth}

	if opts.Growth, err = field.ParseGrowth(c.Growth); err != nil {
		return opts, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if opts.Pairs, err = field.ParsePairs(c.Pairs); err != nil {
		return opts, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if opts.Reflect, err = field.ParseReflect(c.Reflect); err != nil {
		return opts, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if c.Seed != 0 {
		opts.Rand = rand.New(rand.NewPCG(c.Seed, c.Seed^0x9e3779b97f4a7c15))
	}
	return opts, nil
}

// ParseColor accepts an SVG color name or a #rgb, #rrggbb or #rrggbbaa hex
// value.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[s]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}

	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
