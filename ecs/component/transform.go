package component

// Transform is the world-space pose of an entity, in world units with Y up.
// X and Y locate the body centre.
type Transform struct {
	X        float64
	Y        float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
