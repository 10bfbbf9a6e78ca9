package component

// Spawner drops blocks from above the view at a fixed interval.
type Spawner struct {
	Interval float64
	Elapsed  float64
	// MinViewportX and MaxViewportX bound the spawn column as fractions of
	// the view width.
	MinViewportX float64
	MaxViewportX float64
	// HazardChance is the percentage (0-100) of spawns that are hazardous.
	HazardChance float64
	MinFallSpeed float64
	MaxFallSpeed float64
	// Offset is how far above the top of the view blocks appear.
	Offset float64
	Script string
	Spawned int
}

var SpawnerComponent = NewComponent[Spawner]()
