// Package controller converts directional input into forces on a rigid body
// and derives locomotion state from ray probes against level geometry.
//
// A Character is owned by exactly one simulation loop. Input events (SetInput,
// Jump, Dash, Knockback) are applied between ticks; Update runs once per
// simulation tick and FixedUpdate once per physics tick.
package controller

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

// State is the dominant locomotion state of a character.
type State uint8

const (
	StateAirborne State = iota
	StateGrounded
	StateWallSliding
	StateDashing
	StateKnockback
)

func (s State) String() string {
	switch s {
	case StateGrounded:
		return "grounded"
	case StateWallSliding:
		return "wall_sliding"
	case StateDashing:
		return "dashing"
	case StateKnockback:
		return "knockback"
	default:
		return "airborne"
	}
}

// Config is the author-supplied tuning of a character. It does not change
// for the lifetime of the character.
type Config struct {
	MoveSpeed        float64
	MaxVelocity      cp.Vector
	JumpStrength     float64
	WallJumpStrength float64
	DashStrength     float64
	DashCooldown     float64
	DashDuration     float64

	KnockbackStrength float64
	KnockbackDuration float64

	// JumpCharges and DashCharges are restored on ground or wall contact.
	// Values below 1 are treated as 1.
	JumpCharges int
	DashCharges int

	Sensor Sensor
}

func (c Config) jumpCharges() int {
	if c.JumpCharges < 1 {
		return 1
	}
	return c.JumpCharges
}

func (c Config) dashCharges() int {
	if c.DashCharges < 1 {
		return 1
	}
	return c.DashCharges
}

// Character is the locomotion state machine.
type Character struct {
	cfg Config

	MovementInput  cp.Vector
	StrongestInput cp.Vector
	Scheme         Scheme

	grounded    bool
	wallSliding bool
	facingRight bool

	jumpCharges int
	dashCharges int

	dash         Timer
	dashCooldown Timer
	knockback    Timer

	probes ProbeResult
}

// New returns a character facing right with every capability armed.
func New(cfg Config) *Character {
	return &Character{
		cfg:         cfg,
		facingRight: true,
		jumpCharges: cfg.jumpCharges(),
		dashCharges: cfg.dashCharges(),
	}
}

func (c *Character) Config() Config { return c.cfg }

func (c *Character) State() State {
	switch {
	case c.knockback.Running():
		return StateKnockback
	case c.dash.Running():
		return StateDashing
	case c.wallSliding:
		return StateWallSliding
	case c.grounded:
		return StateGrounded
	default:
		return StateAirborne
	}
}

func (c *Character) Grounded() bool       { return c.grounded }
func (c *Character) WallSliding() bool    { return c.wallSliding }
func (c *Character) FacingRight() bool    { return c.facingRight }
func (c *Character) CanJump() bool        { return c.jumpCharges > 0 }
func (c *Character) CanDash() bool        { return c.dashCharges > 0 }
func (c *Character) JumpCharges() int     { return c.jumpCharges }
func (c *Character) DashCharges() int     { return c.dashCharges }
func (c *Character) IsDashing() bool      { return c.dash.Running() }
func (c *Character) DashOnCooldown() bool { return c.dashCooldown.Running() }
func (c *Character) InKnockback() bool    { return c.knockback.Running() }

// CanMove is false while a dash or knockback owns the velocity.
func (c *Character) CanMove() bool {
	return !c.dash.Running() && !c.knockback.Running()
}

// LimitVelocityX reports whether the X clamp is active. A dash or knockback
// suspends it; whichever finishes last restores it.
func (c *Character) LimitVelocityX() bool {
	return !c.dash.Running() && !c.knockback.Running()
}

// LimitVelocityY reports whether the Y clamp is active.
func (c *Character) LimitVelocityY() bool {
	return !c.knockback.Running()
}

func (c *Character) DashDurationTimer() float64 { return c.dash.Elapsed() }
func (c *Character) DashCooldownTimer() float64 { return c.dashCooldown.Elapsed() }
func (c *Character) KnockbackTimer() float64    { return c.knockback.Elapsed() }

// Probes returns the ray probes of the most recent tick.
func (c *Character) Probes() ProbeResult { return c.probes }

// Yaw is the rotation of the visual representation around the vertical axis:
// 0 when facing right, pi when facing left.
func (c *Character) Yaw() float64 {
	if c.facingRight {
		return 0
	}
	return math.Pi
}

// SetInput handles a move event carrying the raw analog vector.
func (c *Character) SetInput(raw cp.Vector, scheme Scheme) {
	c.Scheme = scheme
	c.MovementInput = Flatten(raw)
	c.StrongestInput = StrongestIntent(raw, scheme)
}

// Update runs the simulation tick: timers, sensing, orientation.
func (c *Character) Update(dt float64, body Body, prober Prober) {
	c.advanceTimers(dt)
	if bodyReady(body) {
		c.sense(body.Bounds(), prober)
	}
	c.orient()
}

// FixedUpdate runs the physics tick: movement force, then velocity clamp.
func (c *Character) FixedUpdate(body Body) {
	if !bodyReady(body) {
		return
	}
	c.move(body)
	c.clamp(body)
}

// Jump performs a jump if one is available and reports whether it did.
func (c *Character) Jump(body Body, platform Platform) bool {
	if !c.CanJump() || !bodyReady(body) {
		return false
	}

	if platform != nil && !platform.IsConverted() {
		platform.ConvertToHazard()
	}

	if !c.grounded && !c.wallSliding {
		c.jumpCharges--
	}

	if c.wallSliding {
		away := 1.0
		if c.facingRight {
			away = -1.0
		}
		body.AddForce(cp.Vector{X: away * c.cfg.WallJumpStrength}, ForceImpulse)
	}

	v := body.Velocity()
	v.Y = 0
	body.SetVelocity(v)
	body.AddForce(cp.Vector{Y: c.cfg.JumpStrength}, ForceImpulse)
	return true
}

// Dash performs a horizontal dash in the current input direction and reports
// whether it did. A zero horizontal input produces a zero-magnitude dash that
// still starts the duration and cooldown.
func (c *Character) Dash(body Body) bool {
	if !c.CanDash() || c.DashOnCooldown() || !bodyReady(body) {
		return false
	}

	if !c.grounded && !c.wallSliding {
		c.dashCharges--
	}

	c.dash.Start()
	c.dashCooldown.Start()

	body.SetVelocity(cp.Vector{})
	body.AddForce(cp.Vector{X: c.cfg.DashStrength * c.MovementInput.X}, ForceImpulse)
	return true
}

// Knockback hands velocity control to an external push for KnockbackDuration.
// A zero direction pushes straight up.
func (c *Character) Knockback(body Body, dir cp.Vector) bool {
	if !bodyReady(body) {
		return false
	}
	n := cp.Vector{X: 0, Y: 1}
	if l := dir.Length(); l > 1e-9 {
		n = dir.Mult(1 / l)
	}

	c.knockback.Start()
	body.SetVelocity(cp.Vector{})
	body.AddForce(n.Mult(c.cfg.KnockbackStrength), ForceImpulse)
	return true
}

func (c *Character) advanceTimers(dt float64) {
	c.dash.Advance(dt, c.cfg.DashDuration)
	c.dashCooldown.Advance(dt, c.cfg.DashCooldown)
	c.knockback.Advance(dt, c.cfg.KnockbackDuration)
}

func (c *Character) sense(b Bounds, prober Prober) {
	c.probes = c.cfg.Sensor.Sense(b, c.facingRight, prober)

	grounded := c.probes.Grounded()
	walled := c.probes.WallSliding()
	if (grounded && !c.grounded) || (walled && !c.wallSliding) {
		c.jumpCharges = c.cfg.jumpCharges()
		c.dashCharges = c.cfg.dashCharges()
	}
	c.grounded = grounded
	c.wallSliding = walled
}

func (c *Character) orient() {
	switch {
	case c.MovementInput.X > 0 && !c.facingRight:
		c.facingRight = true
	case c.MovementInput.X < 0 && c.facingRight:
		c.facingRight = false
	}
}

func (c *Character) move(body Body) {
	if !c.CanMove() {
		return
	}
	v := body.Velocity()
	if c.MovementInput.X == 0 {
		if v.X != 0 {
			v.X = 0
			body.SetVelocity(v)
		}
		return
	}
	if math.Abs(v.X) < c.cfg.MaxVelocity.X {
		body.AddForce(cp.Vector{X: c.cfg.MoveSpeed * c.MovementInput.X}, ForceContinuous)
	}
}

func (c *Character) clamp(body Body) {
	v := body.Velocity()
	changed := false
	if c.LimitVelocityX() && math.Abs(v.X) > c.cfg.MaxVelocity.X {
		v.X = math.Copysign(c.cfg.MaxVelocity.X, v.X)
		changed = true
	}
	if c.LimitVelocityY() && math.Abs(v.Y) > c.cfg.MaxVelocity.Y {
		v.Y = math.Copysign(c.cfg.MaxVelocity.Y, v.Y)
		changed = true
	}
	if changed {
		body.SetVelocity(v)
	}
}

// Snapshot is a flat copy of the observable state, used for debug output.
type Snapshot struct {
	State             State
	MovementInput     cp.Vector
	StrongestInput    cp.Vector
	Scheme            Scheme
	Grounded          bool
	WallSliding       bool
	FacingRight       bool
	CanJump           bool
	CanDash           bool
	DashOnCooldown    bool
	IsDashing         bool
	InKnockback       bool
	CanMove           bool
	LimitVelocityX    bool
	LimitVelocityY    bool
	DashCooldownTimer float64
	DashDurationTimer float64
}

func (c *Character) Snapshot() Snapshot {
	return Snapshot{
		State:             c.State(),
		MovementInput:     c.MovementInput,
		StrongestInput:    c.StrongestInput,
		Scheme:            c.Scheme,
		Grounded:          c.grounded,
		WallSliding:       c.wallSliding,
		FacingRight:       c.facingRight,
		CanJump:           c.CanJump(),
		CanDash:           c.CanDash(),
		DashOnCooldown:    c.DashOnCooldown(),
		IsDashing:         c.IsDashing(),
		InKnockback:       c.InKnockback(),
		CanMove:           c.CanMove(),
		LimitVelocityX:    c.LimitVelocityX(),
		LimitVelocityY:    c.LimitVelocityY(),
		DashCooldownTimer: c.dashCooldown.Elapsed(),
		DashDurationTimer: c.dash.Elapsed(),
	}
}

func (s Snapshot) String() string {
	return fmt.Sprintf(
		"State: %s\nInput: (%.0f, %.0f) strongest (%.0f, %.0f) [%s]\nGrounded: %v  Wall: %v  FacingRight: %v\nCanJump: %v  CanDash: %v  CanMove: %v\nDashing: %v (%.2fs)  Cooldown: %v (%.2fs)  Knockback: %v\nLimitX: %v  LimitY: %v",
		s.State,
		s.MovementInput.X, s.MovementInput.Y, s.StrongestInput.X, s.StrongestInput.Y, s.Scheme,
		s.Grounded, s.WallSliding, s.FacingRight,
		s.CanJump, s.CanDash, s.CanMove,
		s.IsDashing, s.DashDurationTimer, s.DashOnCooldown, s.DashCooldownTimer, s.InKnockback,
		s.LimitVelocityX, s.LimitVelocityY,
	)
}
