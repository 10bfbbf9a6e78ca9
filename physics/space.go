// Package physics binds the character controller to the Chipmunk2D space.
package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/skyclimb/controller"
)

// Collision categories used by shape filters and ray probes.
const (
	CategorySolid controller.Category = 1 << iota
	CategoryCharacter
	CategoryHazard
)

// Collision types used to route cp collision handlers.
const (
	CollisionCharacter cp.CollisionType = iota + 1
	CollisionSolid
	CollisionHazard
)

const (
	defaultIterations    = 20
	defaultCollisionSlop = 0.01
)

// Surface is stored in shape.UserData and classifies level geometry for the
// ray probes.
type Surface struct {
	Class controller.Class
	Name  string
}

// SurfaceOf returns the surface attached to shape, if any.
func SurfaceOf(shape *cp.Shape) (*Surface, bool) {
	if shape == nil {
		return nil, false
	}
	s, ok := shape.UserData.(*Surface)
	return s, ok && s != nil
}

// NewSpace returns a space with the given gravity, tuned for world units.
func NewSpace(gravity cp.Vector) *cp.Space {
	space := cp.NewSpace()
	space.Iterations = defaultIterations
	space.SetGravity(gravity)
	space.SetCollisionSlop(defaultCollisionSlop)
	return space
}

// Filter builds the cp filter for a shape in category cat that collides with
// everything in mask.
func Filter(cat, mask controller.Category) cp.ShapeFilter {
	return cp.NewShapeFilter(cp.NO_GROUP, uint(cat), uint(mask))
}

// SolidFilter is the filter for standable, wallable geometry.
func SolidFilter() cp.ShapeFilter {
	return cp.NewShapeFilter(cp.NO_GROUP, uint(CategorySolid), cp.ALL_CATEGORIES)
}

// CharacterFilter is the filter for the character collider.
func CharacterFilter() cp.ShapeFilter {
	return cp.NewShapeFilter(cp.NO_GROUP, uint(CategoryCharacter), cp.ALL_CATEGORIES)
}

// HazardFilter is the filter for death boxes. Probes never look for it.
func HazardFilter() cp.ShapeFilter {
	return cp.NewShapeFilter(cp.NO_GROUP, uint(CategoryHazard), cp.ALL_CATEGORIES)
}

// CollisionTypeFor routes a collider to the collision handlers. Anything
// carrying the Hazard label hurts the character on contact.
func CollisionTypeFor(cat controller.Category, class controller.Class) cp.CollisionType {
	switch {
	case cat == CategoryCharacter:
		return CollisionCharacter
	case cat == CategoryHazard || class.Has(controller.ClassHazard):
		return CollisionHazard
	default:
		return CollisionSolid
	}
}

// MakeHazard turns a solid shape into a death box: a sensor in the hazard
// category that the ray probes no longer see.
func MakeHazard(shape *cp.Shape) {
	if shape == nil {
		return
	}
	shape.SetSensor(true)
	shape.SetFilter(HazardFilter())
	shape.SetCollisionType(CollisionHazard)
	if s, ok := SurfaceOf(shape); ok {
		s.Class = controller.ClassHazard
	}
}

// CategoryFilter places a shape in cat and lets it collide with everything.
func CategoryFilter(cat controller.Category) cp.ShapeFilter {
	return cp.NewShapeFilter(cp.NO_GROUP, uint(cat), cp.ALL_CATEGORIES)
}
