package conf

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safinsingh/bamboo/calc"
)

const fullConfig = `
[bar.default]
width = "100%:-20px"
height = 28
center = true
bottom = true
border-width = 2
offset-x = 0
offset-y = "1%:-20"
widgets = ["clock", "hello"]
widget-spacing = "8px"
background-color = "#1d2021"
foreground-color = "#ebdbb2"

[bar.small]
width = 300.5
height = "3%"

[widgets.clock]
type = "time"

[widgets.hello]
type = "text"
text = "hi"
font = "monospace"
font-size = 12.0
font-style = { weight = "bold", slant = "italic" }
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bamboo.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, fullConfig))
	require.NoError(t, err)
	require.Len(t, cfg.Bars, 2)

	b, err := cfg.Bar("default")
	require.NoError(t, err)

	c, ok := b.Width.Calculation()
	require.True(t, ok, "width should be an expression")
	assert.Equal(t, "100%:-20px", c.String())
	assert.Equal(t, float32(1900), b.Width.Resolve(1920))

	_, ok = b.Height.Calculation()
	assert.False(t, ok, "height should be a plain number")
	assert.Equal(t, float32(28), b.Height.Resolve(1080))

	assert.True(t, b.Center)
	assert.True(t, b.Bottom)
	assert.Equal(t, float32(2), b.BorderWidth.Resolve(0))
	assert.Equal(t, float32(0), b.OffsetX.Resolve(1920))
	assert.Equal(t, float32(-10), b.OffsetY.Resolve(1000))
	assert.Equal(t, []string{"clock", "hello"}, b.Widgets)
	assert.Equal(t, float32(8), b.WidgetSpacing.Resolve(1920))
	assert.Equal(t, "#1d2021", b.BackgroundColor)
	assert.Equal(t, "#ebdbb2", b.ForegroundColor)

	clock := cfg.Widgets["clock"]
	assert.Equal(t, WidgetTime, clock.Type)
	assert.Equal(t, "%H:%M", clock.Format)

	hello := cfg.Widgets["hello"]
	assert.Equal(t, WidgetText, hello.Type)
	assert.Equal(t, "hi", hello.Text)
	assert.Equal(t, "monospace", hello.Font)
	assert.Equal(t, 12.0, hello.FontSize)
	assert.Equal(t, FontStyle{Weight: "bold", Slant: "italic"}, hello.FontStyle)
	assert.Equal(t, "#000000", hello.Color)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, fullConfig))
	require.NoError(t, err)

	b, err := cfg.Bar("small")
	require.NoError(t, err)
	assert.Equal(t, float32(300.5), b.Width.Resolve(1920))
	assert.Equal(t, float32(30), b.Height.Resolve(1000))
	assert.False(t, b.Center)
	assert.False(t, b.Bottom)
	assert.Equal(t, float32(0), b.BorderWidth.Resolve(1920))
	assert.Equal(t, float32(0), b.OffsetX.Resolve(1920))
	assert.Equal(t, float32(0), b.OffsetY.Resolve(1080))
	assert.Empty(t, b.Widgets)
	assert.Equal(t, "#ffffff", b.BackgroundColor)
	assert.Equal(t, "#000000", b.ForegroundColor)
}

func TestLoadBadExpression(t *testing.T) {
	tests := []struct {
		name   string
		field  string
		value  string
		target interface{}
	}{
		{name: "bad unit", field: "width", value: `"100xx"`, target: new(*calc.UnitError)},
		{name: "bad operator", field: "height", value: `"100%:?5px"`, target: new(*calc.OperatorError)},
		{name: "empty", field: "offset-x", value: `""`, target: new(*calc.SyntaxError)},
		{name: "letters", field: "offset-y", value: `"abc"`, target: new(*calc.SyntaxError)},
		{name: "bad segment", field: "border-width", value: `"1:+"`, target: new(*calc.SegmentError)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := "[bar.default]\n"
			for _, req := range []string{"width", "height"} {
				if req != tt.field {
					content += req + " = 10\n"
				}
			}
			content += tt.field + " = " + tt.value + "\n"

			_, err := Load(writeConfig(t, content))
			require.Error(t, err)

			assert.ErrorAs(t, err, tt.target)

			var ee *ExpressionError
			require.ErrorAs(t, err, &ee)
			assert.Equal(t, tt.value[1:len(tt.value)-1], ee.Expr)

			var de *mapstructure.DecodeError
			require.ErrorAs(t, err, &de)
			assert.Contains(t, de.Name(), tt.field)

			assert.Contains(t, err.Error(), tt.field)
			assert.Contains(t, err.Error(), tt.value)
		})
	}
}

func TestLoadWrongType(t *testing.T) {
	_, err := Load(writeConfig(t, "[bar.default]\nwidth = true\nheight = 10\n"))
	require.Error(t, err)
	var te *calc.TypeError
	assert.ErrorAs(t, err, &te)
	assert.Contains(t, err.Error(), "width")
}

func TestLoadMissingField(t *testing.T) {
	_, err := Load(writeConfig(t, "[bar.default]\nwidth = 10\n"))
	var me *MissingError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "default", me.Bar)
	assert.Equal(t, "height", me.Field)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "unknown widget",
			content: "[bar.default]\nwidth = 1\nheight = 1\nwidgets = [\"nope\"]\n",
			want:    `unknown widget "nope"`,
		},
		{
			name:    "unknown widget type",
			content: "[widgets.w]\ntype = \"image\"\n",
			want:    `unknown type "image"`,
		},
		{
			name:    "missing widget type",
			content: "[widgets.w]\ntext = \"x\"\n",
			want:    "missing type",
		},
		{
			name:    "bad background",
			content: "[bar.default]\nwidth = 1\nheight = 1\nbackground-color = \"white\"\n",
			want:    "background-color",
		},
		{
			name:    "bad widget color",
			content: "[widgets.w]\ntype = \"text\"\ncolor = \"#12\"\n",
			want:    "invalid color",
		},
		{
			name:    "unknown key",
			content: "[bar.default]\nwidth = 1\nheight = 1\nwdith = 2\n",
			want:    "wdith",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist), "got %v", err)
}

func TestLoadBadTOML(t *testing.T) {
	_, err := Load(writeConfig(t, "[bar.default\nwidth = 1\n"))
	require.Error(t, err)
}

func TestConfigBar(t *testing.T) {
	cfg, err := Load(writeConfig(t, fullConfig))
	require.NoError(t, err)

	_, err = cfg.Bar("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"missing"`)
	assert.Contains(t, err.Error(), "default, small")
}

func TestBarIsACopy(t *testing.T) {
	cfg, err := Load(writeConfig(t, fullConfig))
	require.NoError(t, err)

	b, err := cfg.Bar("default")
	require.NoError(t, err)
	b.Center = false
	assert.True(t, cfg.Bars["default"].Center)
}

func TestPaths(t *testing.T) {
	paths := Paths()
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join("bamboo", "bamboo.toml"), filepath.Join(filepath.Base(filepath.Dir(paths[0])), filepath.Base(paths[0])))
	assert.Equal(t, "bamboo.toml", paths[len(paths)-1])
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	if _, err := os.Stat(Paths()[0]); err == nil {
		t.Skip("a user configuration file exists")
	}

	_, err = Find()
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bamboo.toml"), []byte(fullConfig), 0o600))
	p, err := Find()
	require.NoError(t, err)
	assert.Equal(t, "bamboo.toml", p)
}

func TestWatch(t *testing.T) {
	path := writeConfig(t, fullConfig)

	var (
		mu   sync.Mutex
		got  *Config
		errs []error
	)
	stop, err := Watch(path, func(c *Config, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			errs = append(errs, err)
			return
		}
		got = c
	})
	require.NoError(t, err)
	defer stop()

	updated := "[bar.default]\nwidth = \"50%\"\nheight = 20\n"
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o600))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		if got == nil {
			return false
		}
		b, ok := got.Bars["default"]
		return ok && b.Width.Resolve(100) == 50
	}, 5*time.Second, 10*time.Millisecond)
}
