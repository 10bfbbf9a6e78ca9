package controller

import "github.com/jakecoffman/cp"

// ForceMode selects how AddForce is integrated by the physics substrate.
type ForceMode uint8

const (
	// ForceContinuous accumulates a force for the next physics step.
	ForceContinuous ForceMode = iota
	// ForceImpulse changes velocity immediately (delta-v = impulse / mass).
	ForceImpulse
)

// Category is a collision category bitmask used to filter ray probes.
type Category uint

// Class is a set of classification labels carried by a surface. The same
// geometry can be floor, wall, both, or neither depending on its labels.
type Class uint8

const (
	ClassGround Class = 1 << iota
	ClassWall
	ClassHazard
)

// Has reports whether every label in other is present on c.
func (c Class) Has(other Class) bool {
	return other != 0 && c&other == other
}

func (c Class) String() string {
	if c == 0 {
		return "none"
	}
	s := ""
	add := func(name string) {
		if s != "" {
			s += "|"
		}
		s += name
	}
	if c&ClassGround != 0 {
		add("ground")
	}
	if c&ClassWall != 0 {
		add("wall")
	}
	if c&ClassHazard != 0 {
		add("hazard")
	}
	return s
}

// Bounds is the world-space axis aligned box of the character collider.
type Bounds struct {
	Center cp.Vector
	Min    cp.Vector
	Max    cp.Vector
	Size   cp.Vector
}

// BoundsFromBB converts a Chipmunk bounding box.
func BoundsFromBB(bb cp.BB) Bounds {
	return Bounds{
		Center: cp.Vector{X: (bb.L + bb.R) / 2, Y: (bb.B + bb.T) / 2},
		Min:    cp.Vector{X: bb.L, Y: bb.B},
		Max:    cp.Vector{X: bb.R, Y: bb.T},
		Size:   cp.Vector{X: bb.R - bb.L, Y: bb.T - bb.B},
	}
}

// RayHit is the outcome of a single ray probe.
type RayHit struct {
	Hit   bool
	Class Class
}

// Body is the narrow view of the rigid body the controller drives.
// Implementations report Valid() == false when no body is bound, in which case
// every step that needs the body is skipped.
type Body interface {
	Valid() bool
	Velocity() cp.Vector
	SetVelocity(v cp.Vector)
	AddForce(v cp.Vector, mode ForceMode)
	Bounds() Bounds
}

// Prober answers ray queries against level geometry.
type Prober interface {
	Raycast(origin, dir cp.Vector, maxLength float64, filter Category) RayHit
}

// Platform is the starting support that becomes a hazard on the first jump.
type Platform interface {
	IsConverted() bool
	ConvertToHazard()
}

func bodyReady(b Body) bool {
	return b != nil && b.Valid()
}
