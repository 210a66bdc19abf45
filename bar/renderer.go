package bar

import (
	"fmt"
	"log/slog"

	"github.com/safinsingh/bamboo/conf"
)

// Renderer draws configured bars on a Display.
type Renderer struct {
	display Display
	log     *slog.Logger
}

// NewRenderer creates a renderer drawing on d.
func NewRenderer(d Display, log *slog.Logger) *Renderer {
	return &Renderer{display: d, log: log}
}

// Render lays out the named bar against the display's screen and draws it.
// Nothing is drawn unless the layout and colors are valid, so a failed
// Render leaves the previous bar on screen.
func (r *Renderer) Render(name string, b *conf.Bar) error {
	screen := r.display.Screen()
	g, err := Layout(b, screen)
	if err != nil {
		return fmt.Errorf("bar %q: %w", name, err)
	}
	bg, err := Color(b.BackgroundColor)
	if err != nil {
		return fmt.Errorf("bar %q: background-color: %w", name, err)
	}
	fg, err := Color(b.ForegroundColor)
	if err != nil {
		return fmt.Errorf("bar %q: foreground-color: %w", name, err)
	}
	r.log.Debug("laid out bar", "bar", name, "screen", fmt.Sprintf("%dx%d", screen.Width, screen.Height), "geometry", g.String())
	if err := r.display.Draw(g, Paint{Background: bg, Border: fg}); err != nil {
		return fmt.Errorf("bar %q: %w", name, err)
	}
	r.log.Info("drew bar", "bar", name, "geometry", g.String())
	return nil
}
