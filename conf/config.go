// Package conf loads bamboo configuration files.
package conf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/safinsingh/bamboo/calc"
)

const (
	appName  = "bamboo"
	fileName = "bamboo.toml"
)

// Config is a whole configuration file.
type Config struct {
	Bars    map[string]Bar    `koanf:"bar"`
	Widgets map[string]Widget `koanf:"widgets"`
}

// Bar describes one bar window. Numeric fields hold either plain numbers or
// dimension expressions; horizontal ones are resolved against the screen
// width and vertical ones against the screen height.
type Bar struct {
	Width         calc.Numeric `koanf:"width"`
	Height        calc.Numeric `koanf:"height"`
	Center        bool         `koanf:"center"`
	Bottom        bool         `koanf:"bottom"`
	BorderWidth   calc.Numeric `koanf:"border-width"`
	OffsetX       calc.Numeric `koanf:"offset-x"`
	OffsetY       calc.Numeric `koanf:"offset-y"`
	Widgets       []string     `koanf:"widgets"`
	WidgetSpacing calc.Numeric `koanf:"widget-spacing"`

	BackgroundColor string `koanf:"background-color"` // default "#ffffff"
	ForegroundColor string `koanf:"foreground-color"` // default "#000000"
}

// Widget types.
const (
	WidgetText = "text"
	WidgetTime = "time"
)

// Widget is one entry of the widgets table. Which fields apply depends on
// Type.
type Widget struct {
	Type string `koanf:"type"` // "text" or "time"

	// text widgets
	Text      string    `koanf:"text"`
	Font      string    `koanf:"font"`
	FontSize  float64   `koanf:"font-size"`
	FontStyle FontStyle `koanf:"font-style"`
	Color     string    `koanf:"color"`

	// time widgets
	Format string `koanf:"format"` // strftime-style, default "%H:%M"
}

// FontStyle selects a font face.
type FontStyle struct {
	Weight string `koanf:"weight"`
	Slant  string `koanf:"slant"`
}

// ErrNotFound is returned by Find when no configuration file exists.
var ErrNotFound = errors.New("no configuration file found")

// ExpressionError annotates a dimension expression that failed to parse with
// its text. When it comes out of Load, it is wrapped in a
// *mapstructure.DecodeError naming the field.
type ExpressionError struct {
	Expr string
	Err  error
}

func (err *ExpressionError) Error() string {
	return fmt.Sprintf("invalid expression %q: %v", err.Expr, err.Err)
}

func (err *ExpressionError) Unwrap() error {
	return err.Err
}

// MissingError is returned when a bar lacks a required field.
type MissingError struct {
	Bar   string
	Field string
}

func (err *MissingError) Error() string {
	return fmt.Sprintf("bar %q: missing required field %q", err.Bar, err.Field)
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to read configuration file from %s: %w", path, err)
	}
	cfg, err := decode(k)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration %s: %w", path, err)
	}
	return cfg, nil
}

func decode(k *koanf.Koanf) (*Config, error) {
	cfg := &Config{}
	err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       numericHook(),
			WeaklyTypedInput: true,
			ErrorUnused:      true,
		},
	})
	if err != nil {
		return nil, err
	}

	for _, name := range sortedKeys(cfg.Bars) {
		for _, field := range []string{"width", "height"} {
			if !k.Exists("bar." + name + "." + field) {
				return nil, &MissingError{Bar: name, Field: field}
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var numericType = reflect.TypeOf(calc.Numeric{})

// numericHook bridges raw numbers and expression strings into calc.Numeric
// fields.
func numericHook() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data interface{}) (interface{}, error) {
		if to != numericType {
			return data, nil
		}
		n, err := calc.DecodeNumeric(data)
		if err != nil {
			var ie calc.InputError
			if s, ok := data.(string); ok && errors.As(err, &ie) {
				return nil, &ExpressionError{Expr: s, Err: err}
			}
			return nil, err
		}
		return n, nil
	}
}

func (c *Config) applyDefaults() {
	for name, b := range c.Bars {
		if b.BackgroundColor == "" {
			b.BackgroundColor = "#ffffff"
		}
		if b.ForegroundColor == "" {
			b.ForegroundColor = "#000000"
		}
		c.Bars[name] = b
	}
	for name, w := range c.Widgets {
		if w.Type == WidgetTime && w.Format == "" {
			w.Format = "%H:%M"
		}
		if w.Type == WidgetText && w.Color == "" {
			w.Color = "#000000"
		}
		c.Widgets[name] = w
	}
}

func (c *Config) validate() error {
	for _, name := range sortedKeys(c.Widgets) {
		w := c.Widgets[name]
		switch w.Type {
		case WidgetText, WidgetTime:
		case "":
			return fmt.Errorf("widget %q: missing type", name)
		default:
			return fmt.Errorf("widget %q: unknown type %q, expected %q or %q", name, w.Type, WidgetText, WidgetTime)
		}
		if w.Type == WidgetText {
			if _, err := colorful.Hex(w.Color); err != nil {
				return fmt.Errorf("widget %q: invalid color %q: %w", name, w.Color, err)
			}
		}
	}
	for _, name := range sortedKeys(c.Bars) {
		b := c.Bars[name]
		for _, w := range b.Widgets {
			if _, ok := c.Widgets[w]; !ok {
				return fmt.Errorf("bar %q: unknown widget %q", name, w)
			}
		}
		if _, err := colorful.Hex(b.BackgroundColor); err != nil {
			return fmt.Errorf("bar %q: invalid background-color %q: %w", name, b.BackgroundColor, err)
		}
		if _, err := colorful.Hex(b.ForegroundColor); err != nil {
			return fmt.Errorf("bar %q: invalid foreground-color %q: %w", name, b.ForegroundColor, err)
		}
	}
	return nil
}

// Bar returns the bar with the given name.
func (c *Config) Bar(name string) (*Bar, error) {
	b, ok := c.Bars[name]
	if !ok {
		return nil, fmt.Errorf("could not find bar %q (have %s)", name, strings.Join(sortedKeys(c.Bars), ", "))
	}
	return &b, nil
}

// Paths returns the places a configuration file is looked for, in order.
func Paths() []string {
	return []string{
		filepath.Join(xdg.ConfigHome, appName, fileName),
		fileName,
	}
}

// Find returns the first path from Paths that exists.
func Find() (string, error) {
	paths := Paths()
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w (looked in %s)", ErrNotFound, strings.Join(paths, ", "))
}

// Watch calls fn with the reloaded configuration, or the error loading it,
// every time the file at path changes. The returned function stops watching.
func Watch(path string, fn func(*Config, error)) (stop func() error, err error) {
	// The provider watches the parent directory, so it needs one.
	path, err = filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	f := file.Provider(path)
	err = f.Watch(func(_ interface{}, err error) {
		if err != nil {
			fn(nil, err)
			return
		}
		fn(Load(path))
	})
	if err != nil {
		return nil, err
	}
	return f.Unwatch, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
