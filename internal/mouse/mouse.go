// Package mouse wraps cursor control behind a small interface so the click
// engine can run headless in tests.
package mouse

// Controller moves the cursor and clicks. Implementations must be safe to
// call from a background goroutine.
type Controller interface {
	Move(x, y int)
	Click()
	Position() (int, int)
	ScreenSize() (int, int)
}

// Clamp keeps a coordinate pair inside a w by h screen.
func Clamp(x, y, w, h int) (int, int) {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if w > 0 && x >= w {
		x = w - 1
	}
	if h > 0 && y >= h {
		y = h - 1
	}
	return x, y
}
