package bar

// Paint holds the pixels a bar is drawn with.
type Paint struct {
	Background uint32
	Border     uint32
}

// Display is a screen that bars are drawn on.
type Display interface {
	// Screen returns the size of the screen.
	Screen() Size
	// Draw places the bar window at g and fills it. The first call creates
	// the window; later calls move, resize and repaint it.
	Draw(g Geometry, p Paint) error
	// Close destroys the bar window and releases the display.
	Close() error
}
