package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Shape is a collider variant. Despawn and height logic only ask for the
// topmost point, so they never switch on the concrete shape.
type Shape interface {
	Attach(body *cp.Body) *cp.Shape
	TopmostWorldPoint(pos cp.Vector, angle float64) cp.Vector
	Size() cp.Vector
}

// Box is an axis aligned rectangle centred on the body.
type Box struct {
	W, H float64
}

func (b Box) Attach(body *cp.Body) *cp.Shape {
	return cp.NewBox(body, b.W, b.H, 0)
}

func (b Box) TopmostWorldPoint(pos cp.Vector, angle float64) cp.Vector {
	hw, hh := b.W/2, b.H/2
	return topmost([]cp.Vector{
		{X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: hw, Y: hh}, {X: -hw, Y: hh},
	}, pos, angle)
}

func (b Box) Size() cp.Vector { return cp.Vector{X: b.W, Y: b.H} }

// Polygon is a convex polygon in body-local coordinates.
type Polygon struct {
	Verts []cp.Vector
}

// Attach builds the cp shape, fixing clockwise input to counter-clockwise.
func (p Polygon) Attach(body *cp.Body) *cp.Shape {
	verts := append([]cp.Vector(nil), p.Verts...)
	if signedArea(verts) < 0 {
		for i, j := 0, len(verts)-1; i < j; i, j = i+1, j-1 {
			verts[i], verts[j] = verts[j], verts[i]
		}
	}
	return cp.NewPolyShapeRaw(body, len(verts), verts, 0)
}

func (p Polygon) TopmostWorldPoint(pos cp.Vector, angle float64) cp.Vector {
	return topmost(p.Verts, pos, angle)
}

func (p Polygon) Size() cp.Vector {
	if len(p.Verts) == 0 {
		return cp.Vector{}
	}
	bb := cp.BB{L: math.Inf(1), B: math.Inf(1), R: math.Inf(-1), T: math.Inf(-1)}
	for _, v := range p.Verts {
		bb.L = math.Min(bb.L, v.X)
		bb.R = math.Max(bb.R, v.X)
		bb.B = math.Min(bb.B, v.Y)
		bb.T = math.Max(bb.T, v.Y)
	}
	return cp.Vector{X: bb.R - bb.L, Y: bb.T - bb.B}
}

func topmost(local []cp.Vector, pos cp.Vector, angle float64) cp.Vector {
	if len(local) == 0 {
		return pos
	}
	sin, cos := math.Sincos(angle)
	best := cp.Vector{Y: math.Inf(-1)}
	for _, v := range local {
		w := cp.Vector{
			X: pos.X + v.X*cos - v.Y*sin,
			Y: pos.Y + v.X*sin + v.Y*cos,
		}
		if w.Y > best.Y {
			best = w
		}
	}
	return best
}

func signedArea(verts []cp.Vector) float64 {
	area := 0.0
	for i := range verts {
		a := verts[i]
		b := verts[(i+1)%len(verts)]
		area += a.X*b.Y - b.X*a.Y
	}
	return area / 2
}
