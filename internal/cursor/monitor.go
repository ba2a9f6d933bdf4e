package cursor

// Rect is a monitor rectangle in device pixels.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Contains reports whether (x, y) lies inside r. The right and bottom
// edges are exclusive.
func (r Rect) Contains(x, y int) bool {
	return r.X <= x && x < r.X+r.Width && r.Y <= y && y < r.Y+r.Height
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// ResolveMonitor returns the first monitor containing (x, y), or fallback
// when none does.
func ResolveMonitor(x, y int, monitors []Rect, fallback Rect) Rect {
	for _, m := range monitors {
		if m.Contains(x, y) {
			return m
		}
	}
	return fallback
}
