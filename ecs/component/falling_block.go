package component

// FallingBlock moves straight down at Speed world units per second.
type FallingBlock struct {
	Speed     float64
	Hazardous bool
}

var FallingBlockComponent = NewComponent[FallingBlock]()
