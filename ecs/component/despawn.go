package component

// Despawn destroys the entity once its topmost point falls Margin below the
// bottom of the view.
type Despawn struct {
	Margin float64
}

var DespawnComponent = NewComponent[Despawn]()
