package controller

import "github.com/jakecoffman/cp"

const (
	DefaultGroundProbeLength = 0.05
	DefaultWallProbeLength   = 0.3
	DefaultProbeInset        = 0.05
)

var (
	down  = cp.Vector{X: 0, Y: -1}
	right = cp.Vector{X: 1, Y: 0}
	left  = cp.Vector{X: -1, Y: 0}
)

// Probe is one ray cast by the sensor and its outcome.
type Probe struct {
	Origin cp.Vector
	End    cp.Vector
	Hit    bool
	Class  Class
	// Qualifies is true when the hit surface carries the label the probe looks for.
	Qualifies bool
}

// ProbeResult holds the ground rays (center, left, right) and the wall rays
// (upper, middle, lower) of a single tick.
type ProbeResult struct {
	Ground [3]Probe
	Wall   [3]Probe
}

// Grounded reports whether any ground ray struck a Ground surface.
func (r ProbeResult) Grounded() bool {
	for _, p := range r.Ground {
		if p.Qualifies {
			return true
		}
	}
	return false
}

// WallSliding reports whether any wall ray struck a Wall surface.
func (r ProbeResult) WallSliding() bool {
	for _, p := range r.Wall {
		if p.Qualifies {
			return true
		}
	}
	return false
}

// Sensor casts the ground and wall rays around a collider.
type Sensor struct {
	GroundLength float64
	WallLength   float64
	// Inset pulls the outer ground rays and the upper/lower wall rays inside
	// the collider edges so they do not graze adjacent surfaces.
	Inset  float64
	Filter Category
}

// Sense probes below and beside bounds. A nil prober yields an empty result.
func (s Sensor) Sense(b Bounds, facingRight bool, prober Prober) ProbeResult {
	var res ProbeResult
	if prober == nil {
		return res
	}

	groundLen := s.GroundLength
	if groundLen <= 0 {
		groundLen = DefaultGroundProbeLength
	}
	wallLen := s.WallLength
	if wallLen <= 0 {
		wallLen = DefaultWallProbeLength
	}
	inset := clampInset(s.Inset, b.Size)

	groundOrigins := [3]cp.Vector{
		{X: b.Center.X, Y: b.Min.Y},
		{X: b.Min.X + inset, Y: b.Min.Y},
		{X: b.Max.X - inset, Y: b.Min.Y},
	}
	for i, origin := range groundOrigins {
		res.Ground[i] = s.cast(prober, origin, down, groundLen, ClassGround)
	}

	dir := left
	edgeX := b.Min.X
	if facingRight {
		dir = right
		edgeX = b.Max.X
	}
	wallOrigins := [3]cp.Vector{
		{X: edgeX, Y: b.Max.Y - inset},
		{X: edgeX, Y: b.Center.Y},
		{X: edgeX, Y: b.Min.Y + inset},
	}
	for i, origin := range wallOrigins {
		res.Wall[i] = s.cast(prober, origin, dir, wallLen, ClassWall)
	}

	return res
}

func (s Sensor) cast(prober Prober, origin, dir cp.Vector, length float64, want Class) Probe {
	hit := prober.Raycast(origin, dir, length, s.Filter)
	return Probe{
		Origin:    origin,
		End:       origin.Add(dir.Mult(length)),
		Hit:       hit.Hit,
		Class:     hit.Class,
		Qualifies: hit.Hit && hit.Class.Has(want),
	}
}

func clampInset(inset float64, size cp.Vector) float64 {
	if inset < 0 {
		return 0
	}
	limit := size.X / 2
	if size.Y/2 < limit {
		limit = size.Y / 2
	}
	if inset > limit {
		return limit
	}
	return inset
}
