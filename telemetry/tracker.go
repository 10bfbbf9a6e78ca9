// Package telemetry publishes the character's position, climb height and
// liveness to the rest of the game.
package telemetry

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/skyclimb/events"
)

const (
	DefaultDeathDepth = 1.0
	DefaultHealth     = 3
)

const (
	ReasonFell   = "fell"
	ReasonHazard = "hazard"
	ReasonDamage = "damage"
)

// Reader is the read-only view handed to HUD, camera and spawner.
type Reader interface {
	Position() cp.Vector
	Height() float64
	MaxHeight() float64
	Alive() bool
	Health() int
}

// Tracker owns the published character state. Only the character pipeline
// writes to it.
type Tracker struct {
	bus *events.Bus

	deathDepth float64
	maxHealth  int

	spawn     cp.Vector
	pos       cp.Vector
	height    float64
	maxHeight float64
	alive     bool
	health    int
	attempts  int
}

// NewTracker returns a live tracker anchored at spawn. Non-positive values
// select the defaults.
func NewTracker(bus *events.Bus, spawn cp.Vector, deathDepth float64, health int) *Tracker {
	if deathDepth <= 0 {
		deathDepth = DefaultDeathDepth
	}
	if health <= 0 {
		health = DefaultHealth
	}
	return &Tracker{
		bus:        bus,
		deathDepth: deathDepth,
		maxHealth:  health,
		spawn:      spawn,
		pos:        spawn,
		alive:      true,
		health:     health,
	}
}

func (t *Tracker) Position() cp.Vector { return t.pos }
func (t *Tracker) Height() float64     { return t.height }
func (t *Tracker) MaxHeight() float64  { return t.maxHeight }
func (t *Tracker) Alive() bool         { return t.alive }
func (t *Tracker) Health() int         { return t.health }
func (t *Tracker) Spawn() cp.Vector    { return t.spawn }
func (t *Tracker) DeathDepth() float64 { return t.deathDepth }

// Publish records the character position. Height is the vertical offset
// from spawn rounded to one decimal; falling deathDepth below spawn kills.
func (t *Tracker) Publish(pos cp.Vector) {
	t.pos = pos
	t.height = Round1(pos.Y - t.spawn.Y)
	if t.height > t.maxHeight {
		t.maxHeight = t.height
	}
	if t.height <= -t.deathDepth {
		t.Kill(ReasonFell)
	}
}

// Kill marks the character dead and raises PlayerDied. It does nothing while
// already dead.
func (t *Tracker) Kill(reason string) {
	if !t.alive {
		return
	}
	t.alive = false
	t.health = 0
	t.bus.Publish(events.PlayerDied, events.Died{Reason: reason, Height: t.height})
}

// Damage removes n health and kills at zero.
func (t *Tracker) Damage(n int) {
	if !t.alive || n <= 0 {
		return
	}
	t.health -= n
	if t.health <= 0 {
		t.Kill(ReasonDamage)
	}
}

// Respawn revives the character at spawn and raises PlayerRespawned.
func (t *Tracker) Respawn(spawn cp.Vector) {
	t.spawn = spawn
	t.pos = spawn
	t.height = 0
	t.maxHeight = 0
	t.alive = true
	t.health = t.maxHealth
	t.attempts++
	t.bus.Publish(events.PlayerRespawned, events.Respawned{Attempt: t.attempts})
}

// Round1 rounds v to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
