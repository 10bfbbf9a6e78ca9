package component

// Camera maps world units to the screen. X and Y are the world point at the
// centre of the view.
type Camera struct {
	X             float64
	Y             float64
	PixelsPerUnit float64
	ViewWidth     float64
	ViewHeight    float64
	Smoothness    float64
	// MinY keeps the view from dropping below the start of the climb.
	MinY float64
}

var CameraComponent = NewComponent[Camera]()

// ViewBounds returns the visible world rectangle.
func (c Camera) ViewBounds() (minX, minY, maxX, maxY float64) {
	ppu := c.PixelsPerUnit
	if ppu <= 0 {
		ppu = 1
	}
	hw := c.ViewWidth / ppu / 2
	hh := c.ViewHeight / ppu / 2
	return c.X - hw, c.Y - hh, c.X + hw, c.Y + hh
}

// WorldToScreen converts a world point to screen pixels.
func (c Camera) WorldToScreen(x, y float64) (float64, float64) {
	ppu := c.PixelsPerUnit
	if ppu <= 0 {
		ppu = 1
	}
	sx := (x-c.X)*ppu + c.ViewWidth/2
	sy := c.ViewHeight/2 - (y-c.Y)*ppu
	return sx, sy
}

// ViewportToWorldX maps a viewport fraction (0 = left edge, 1 = right edge).
func (c Camera) ViewportToWorldX(f float64) float64 {
	minX, _, maxX, _ := c.ViewBounds()
	return minX + f*(maxX-minX)
}

// WorldToViewportX is the inverse of ViewportToWorldX.
func (c Camera) WorldToViewportX(x float64) float64 {
	minX, _, maxX, _ := c.ViewBounds()
	if maxX == minX {
		return 0
	}
	return (x - minX) / (maxX - minX)
}
