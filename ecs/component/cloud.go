package component

// Cloud drifts right and wraps around the view horizontally.
type Cloud struct {
	Speed float64
	// WrapAt is the viewport fraction past which the cloud re-enters at
	// ResetTo.
	WrapAt  float64
	ResetTo float64
	// Parallax is the fraction of the camera's vertical motion the cloud
	// scrolls by on screen; 0 pins it to the view.
	Parallax float64
	BaseY    float64
}

var CloudComponent = NewComponent[Cloud]()
