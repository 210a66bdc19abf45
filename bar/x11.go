package bar

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// X11 is a Display backed by an X server connection. It owns at most one bar
// window.
type X11 struct {
	xu  *xgbutil.XUtil
	win *xwindow.Window
}

var _ Display = (*X11)(nil)

// Connect opens a connection to the named X display. An empty name uses
// $DISPLAY.
func Connect(display string) (*X11, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}
	return &X11{xu: xu}, nil
}

// Screen returns the size of the default screen.
func (x *X11) Screen() Size {
	s := x.xu.Screen()
	return Size{Width: s.WidthInPixels, Height: s.HeightInPixels}
}

// Draw creates or reconfigures the bar window, then paints it.
func (x *X11) Draw(g Geometry, p Paint) error {
	if x.win == nil {
		if err := x.create(g, p); err != nil {
			return err
		}
	} else if err := x.configure(g, p); err != nil {
		return err
	}
	if err := x.paint(g, p.Background); err != nil {
		return err
	}
	x.xu.Sync()
	return nil
}

func (x *X11) create(g Geometry, p Paint) error {
	win, err := xwindow.Generate(x.xu)
	if err != nil {
		return fmt.Errorf("failed to allocate bar window: %w", err)
	}
	// The window manager must leave the bar alone.
	err = win.CreateChecked(
		x.xu.RootWin(),
		int(g.X), int(g.Y),
		int(g.Width), int(g.Height),
		xproto.CwBackPixel|xproto.CwBorderPixel|xproto.CwOverrideRedirect,
		p.Background,
		p.Border,
		1,
	)
	if err != nil {
		return fmt.Errorf("failed to create bar window: %w", err)
	}
	x.win = win
	// CreateChecked always makes a borderless window.
	err = xproto.ConfigureWindowChecked(x.xu.Conn(), win.Id,
		xproto.ConfigWindowBorderWidth, []uint32{uint32(g.Border)}).Check()
	if err != nil {
		return fmt.Errorf("failed to set bar border: %w", err)
	}
	if err := xproto.MapWindowChecked(x.xu.Conn(), win.Id).Check(); err != nil {
		return fmt.Errorf("failed to map bar window: %w", err)
	}
	return nil
}

func (x *X11) configure(g Geometry, p Paint) error {
	c := x.xu.Conn()
	flags := xproto.ConfigWindowX | xproto.ConfigWindowY |
		xproto.ConfigWindowWidth | xproto.ConfigWindowHeight |
		xproto.ConfigWindowBorderWidth
	vals := []uint32{
		uint32(g.X), uint32(g.Y),
		uint32(g.Width), uint32(g.Height),
		uint32(g.Border),
	}
	if err := xproto.ConfigureWindowChecked(c, x.win.Id, uint16(flags), vals).Check(); err != nil {
		return fmt.Errorf("failed to move bar window: %w", err)
	}
	err := xproto.ChangeWindowAttributesChecked(c, x.win.Id,
		xproto.CwBorderPixel, []uint32{p.Border}).Check()
	if err != nil {
		return fmt.Errorf("failed to set bar border color: %w", err)
	}
	return nil
}

// paint fills a pixmap the size of the bar and makes it the window
// background.
func (x *X11) paint(g Geometry, bg uint32) error {
	c := x.xu.Conn()
	screen := x.xu.Screen()
	root := xproto.Drawable(x.xu.RootWin())

	pix, err := xproto.NewPixmapId(c)
	if err != nil {
		return fmt.Errorf("failed to allocate bar pixmap: %w", err)
	}
	err = xproto.CreatePixmapChecked(c, screen.RootDepth, pix, root, g.Width, g.Height).Check()
	if err != nil {
		return fmt.Errorf("failed to create bar pixmap: %w", err)
	}
	defer xproto.FreePixmap(c, pix)

	gc, err := xproto.NewGcontextId(c)
	if err != nil {
		return fmt.Errorf("failed to allocate graphics context: %w", err)
	}
	err = xproto.CreateGCChecked(c, gc, root, xproto.GcForeground, []uint32{bg}).Check()
	if err != nil {
		return fmt.Errorf("failed to create graphics context: %w", err)
	}
	defer xproto.FreeGC(c, gc)

	rect := xproto.Rectangle{Width: g.Width, Height: g.Height}
	err = xproto.PolyFillRectangleChecked(c, xproto.Drawable(pix), gc, []xproto.Rectangle{rect}).Check()
	if err != nil {
		return fmt.Errorf("failed to fill bar background: %w", err)
	}
	err = xproto.ChangeWindowAttributesChecked(c, x.win.Id, xproto.CwBackPixmap, []uint32{uint32(pix)}).Check()
	if err != nil {
		return fmt.Errorf("failed to set bar background: %w", err)
	}
	if err := xproto.ClearAreaChecked(c, false, x.win.Id, 0, 0, 0, 0).Check(); err != nil {
		return fmt.Errorf("failed to clear bar window: %w", err)
	}
	return nil
}

// Close destroys the bar window, if any, and closes the connection.
func (x *X11) Close() error {
	if x.win != nil {
		x.win.Destroy()
		x.win = nil
	}
	x.xu.Conn().Close()
	return nil
}
