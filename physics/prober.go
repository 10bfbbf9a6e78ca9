package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/skyclimb/controller"
)

// DefaultSkin backs every ray origin out along the ray so a collider resting
// inside the collision slop still sees the surface it touches.
const DefaultSkin = 0.02

// Prober answers controller ray probes with cp segment queries.
type Prober struct {
	space *cp.Space
	Skin  float64
}

func NewProber(space *cp.Space) *Prober {
	return &Prober{space: space, Skin: DefaultSkin}
}

// Raycast returns the nearest non-sensor shape in the filter categories. A
// zero filter probes CategorySolid. Shapes without a Surface hit with no labels.
func (p *Prober) Raycast(origin, dir cp.Vector, maxLength float64, filter controller.Category) controller.RayHit {
	if p == nil || p.space == nil || maxLength <= 0 {
		return controller.RayHit{}
	}
	l := dir.Length()
	if l == 0 {
		return controller.RayHit{}
	}
	n := dir.Mult(1 / l)

	if filter == 0 {
		filter = CategorySolid
	}
	start := origin.Sub(n.Mult(p.Skin))
	end := origin.Add(n.Mult(maxLength))

	info := p.space.SegmentQueryFirst(start, end, 0, cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, uint(filter)))
	if info.Shape == nil {
		return controller.RayHit{}
	}
	hit := controller.RayHit{Hit: true}
	if s, ok := SurfaceOf(info.Shape); ok {
		hit.Class = s.Class
	}
	return hit
}
