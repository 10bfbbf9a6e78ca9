package controller

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

const tick = 1.0 / 60.0

func testConfig() Config {
	return Config{
		MoveSpeed:         40,
		MaxVelocity:       cp.Vector{X: 5, Y: 10},
		JumpStrength:      5,
		WallJumpStrength:  3,
		DashStrength:      12,
		DashCooldown:      0.5,
		DashDuration:      0.1,
		KnockbackStrength: 6,
		KnockbackDuration: 0.3,
		Sensor:            Sensor{GroundLength: 0.05, WallLength: 0.3, Inset: 0.05},
	}
}

// standingBody returns a unit body resting on y=0.
func standingBody() *fakeBody {
	b := newFakeBody()
	b.pos = cp.Vector{X: 0, Y: 0.5}
	return b
}

func groundLevel() *fakeLevel {
	return &fakeLevel{floor: ptr(0), floorClass: ClassGround}
}

func TestGroundedJumpKeepsCharge(t *testing.T) {
	ch := New(testConfig())
	body := standingBody()
	ch.Update(tick, body, groundLevel())
	if !ch.Grounded() {
		t.Fatalf("expected grounded after sensing floor")
	}

	body.vel = cp.Vector{X: 1, Y: -3}
	if !ch.Jump(body, nil) {
		t.Fatalf("grounded jump should succeed")
	}
	if body.vel.Y != 5 {
		t.Fatalf("vy = %v, want 5", body.vel.Y)
	}
	if body.vel.X != 1 {
		t.Fatalf("jump should not touch vx, got %v", body.vel.X)
	}
	if !ch.CanJump() {
		t.Fatalf("ground jump should not consume the jump charge")
	}
}

func TestAirborneJumpConsumesCharge(t *testing.T) {
	ch := New(testConfig())
	body := standingBody()
	ch.Update(tick, body, &fakeLevel{})
	if ch.Grounded() || ch.WallSliding() {
		t.Fatalf("expected airborne")
	}
	if !ch.CanJump() {
		t.Fatalf("new character should be able to jump")
	}

	if !ch.Jump(body, nil) {
		t.Fatalf("airborne jump with a charge should succeed")
	}
	if ch.CanJump() {
		t.Fatalf("airborne jump should consume the charge")
	}
	if ch.Jump(body, nil) {
		t.Fatalf("second airborne jump should be refused")
	}
}

func TestExtraChargesAllowMultipleAirJumps(t *testing.T) {
	cfg := testConfig()
	cfg.JumpCharges = 2
	ch := New(cfg)
	body := standingBody()
	ch.Update(tick, body, &fakeLevel{})

	for i := 0; i < 2; i++ {
		if !ch.Jump(body, nil) {
			t.Fatalf("air jump %d should succeed", i+1)
		}
	}
	if ch.Jump(body, nil) {
		t.Fatalf("charges exhausted, jump should be refused")
	}
}

func TestLandingRearmsCapabilities(t *testing.T) {
	ch := New(testConfig())
	body := standingBody()
	ch.Update(tick, body, &fakeLevel{})
	ch.SetInput(cp.Vector{X: 1}, SchemeKeyboardMouse)
	ch.Jump(body, nil)
	ch.Dash(body)
	if ch.CanJump() || ch.CanDash() {
		t.Fatalf("airborne actions should consume both charges")
	}

	ch.Update(tick, body, groundLevel())
	if !ch.CanJump() || !ch.CanDash() {
		t.Fatalf("landing should restore jump and dash")
	}
}

func TestStayingGroundedDoesNotRearm(t *testing.T) {
	ch := New(testConfig())
	body := standingBody()
	level := groundLevel()
	ch.Update(tick, body, level)

	// Force the counter down while grounded; only a rising edge restores it.
	ch.jumpCharges = 0
	ch.Update(tick, body, level)
	if ch.CanJump() {
		t.Fatalf("continuous contact should not re-arm")
	}
}

func TestWallContactRearms(t *testing.T) {
	ch := New(testConfig())
	body := standingBody()
	ch.Update(tick, body, &fakeLevel{})
	ch.Jump(body, nil)
	if ch.CanJump() {
		t.Fatalf("expected charge consumed")
	}

	ch.Update(tick, body, &fakeLevel{wallRight: ptr(0.7), wallsClass: ClassWall})
	if !ch.WallSliding() {
		t.Fatalf("expected wall contact")
	}
	if !ch.CanJump() {
		t.Fatalf("wall contact should re-arm jump")
	}
}

func TestWallJumpPushesAwayFromWall(t *testing.T) {
	cases := []struct {
		name   string
		level  *fakeLevel
		input  cp.Vector
		wantVX float64
	}{
		{"wall_on_right", &fakeLevel{wallRight: ptr(0.7), wallsClass: ClassWall}, cp.Vector{X: 1}, -3},
		{"wall_on_left", &fakeLevel{wallLeft: ptr(-0.7), wallsClass: ClassWall}, cp.Vector{X: -1}, 3},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ch := New(testConfig())
			body := standingBody()
			ch.SetInput(c.input, SchemeKeyboardMouse)
			// The first tick turns the character, the second senses the wall it now faces.
			ch.Update(tick, body, c.level)
			ch.Update(tick, body, c.level)
			if !ch.WallSliding() {
				t.Fatalf("expected wall sliding")
			}
			if ch.State() != StateWallSliding {
				t.Fatalf("state = %s, want wall_sliding", ch.State())
			}

			if !ch.Jump(body, nil) {
				t.Fatalf("wall jump should succeed")
			}
			if body.vel.X != c.wantVX {
				t.Fatalf("vx = %v, want %v", body.vel.X, c.wantVX)
			}
			if body.vel.Y != 5 {
				t.Fatalf("vy = %v, want 5", body.vel.Y)
			}
			if !ch.CanJump() {
				t.Fatalf("wall jump should not consume the charge")
			}
		})
	}
}

func TestJumpConvertsPlatformOnce(t *testing.T) {
	ch := New(testConfig())
	body := standingBody()
	platform := &fakePlatform{}
	ch.Update(tick, body, groundLevel())

	ch.Jump(body, platform)
	ch.Jump(body, platform)
	if !platform.converted {
		t.Fatalf("first jump should convert the starting platform")
	}
	if platform.conversions != 1 {
		t.Fatalf("platform converted %d times, want 1", platform.conversions)
	}
}

func TestDashZeroesVelocity(t *testing.T) {
	ch := New(testConfig())
	body := standingBody()
	ch.Update(tick, body, groundLevel())
	ch.SetInput(cp.Vector{X: 1}, SchemeKeyboardMouse)

	body.vel = cp.Vector{X: -2, Y: 4}
	if !ch.Dash(body) {
		t.Fatalf("dash should succeed")
	}
	if body.vel.X <= 0 || body.vel.Y != 0 {
		t.Fatalf("post-dash velocity = %v, want x>0 and y=0", body.vel)
	}
	if body.vel.X != 12 {
		t.Fatalf("vx = %v, want 12", body.vel.X)
	}
	if !ch.IsDashing() || ch.State() != StateDashing {
		t.Fatalf("expected dashing state")
	}
	if ch.CanMove() || ch.LimitVelocityX() {
		t.Fatalf("dash should suspend movement and the X clamp")
	}
	if !ch.LimitVelocityY() {
		t.Fatalf("dash should keep the Y clamp")
	}
	if !ch.CanDash() {
		t.Fatalf("grounded dash should keep the dash charge")
	}
}

func TestDashCooldownGates(t *testing.T) {
	ch := New(testConfig())
	body := standingBody()
	level := groundLevel()
	ch.Update(tick, body, level)
	ch.SetInput(cp.Vector{X: -1}, SchemeKeyboardMouse)

	if !ch.Dash(body) {
		t.Fatalf("first dash should succeed")
	}
	if ch.Dash(body) {
		t.Fatalf("dash during cooldown should be refused")
	}

	ch.Update(0.25, body, level)
	if !ch.DashOnCooldown() {
		t.Fatalf("cooldown should still be running")
	}
	if ch.IsDashing() {
		t.Fatalf("dash duration should have elapsed")
	}
	ch.Update(0.25, body, level)
	if ch.DashOnCooldown() {
		t.Fatalf("cooldown should have elapsed")
	}
	if !ch.Dash(body) {
		t.Fatalf("dash after cooldown should succeed")
	}
}

func TestAirborneDashConsumesCharge(t *testing.T) {
	ch := New(testConfig())
	body := standingBody()
	level := &fakeLevel{}
	ch.Update(tick, body, level)
	ch.SetInput(cp.Vector{X: 1}, SchemeKeyboardMouse)

	ch.Dash(body)
	if ch.CanDash() {
		t.Fatalf("airborne dash should consume the charge")
	}
	ch.Update(1, body, level)
	if ch.Dash(body) {
		t.Fatalf("no charge left, dash should be refused")
	}
}

func TestTimersStayWithinBounds(t *testing.T) {
	cfg := testConfig()
	ch := New(cfg)
	body := standingBody()
	level := groundLevel()
	ch.Update(tick, body, level)
	ch.SetInput(cp.Vector{X: 1}, SchemeKeyboardMouse)
	ch.Dash(body)
	ch.Knockback(body, cp.Vector{X: -1, Y: 1})

	for i := 0; i < 60; i++ {
		ch.Update(tick, body, level)
		if ch.DashDurationTimer() >= cfg.DashDuration {
			t.Fatalf("dash timer %v reached bound %v", ch.DashDurationTimer(), cfg.DashDuration)
		}
		if ch.DashCooldownTimer() >= cfg.DashCooldown {
			t.Fatalf("cooldown timer %v reached bound %v", ch.DashCooldownTimer(), cfg.DashCooldown)
		}
		if ch.KnockbackTimer() >= cfg.KnockbackDuration {
			t.Fatalf("knockback timer %v reached bound %v", ch.KnockbackTimer(), cfg.KnockbackDuration)
		}
	}
	if ch.IsDashing() || ch.DashOnCooldown() || ch.InKnockback() {
		t.Fatalf("all timers should have expired after one second")
	}
}

func TestKnockbackOutranksDashRecovery(t *testing.T) {
	ch := New(testConfig())
	body := standingBody()
	level := groundLevel()
	ch.Update(tick, body, level)
	ch.SetInput(cp.Vector{X: 1}, SchemeKeyboardMouse)

	ch.Dash(body)
	ch.Knockback(body, cp.Vector{X: -1})
	if ch.State() != StateKnockback {
		t.Fatalf("state = %s, want knockback", ch.State())
	}

	// Dash (0.1s) ends while knockback (0.3s) is still active.
	ch.Update(0.15, body, level)
	if ch.IsDashing() {
		t.Fatalf("dash should have ended")
	}
	if ch.CanMove() || ch.LimitVelocityX() || ch.LimitVelocityY() {
		t.Fatalf("knockback should still hold movement and clamps")
	}

	ch.Update(0.2, body, level)
	if ch.InKnockback() {
		t.Fatalf("knockback should have ended")
	}
	if !ch.CanMove() || !ch.LimitVelocityX() || !ch.LimitVelocityY() {
		t.Fatalf("control should be restored after knockback")
	}
	if ch.State() != StateGrounded {
		t.Fatalf("state = %s, want grounded", ch.State())
	}
}

func TestKnockbackImpulse(t *testing.T) {
	cases := []struct {
		name string
		dir  cp.Vector
		want cp.Vector
	}{
		{"zero_defaults_up", cp.Vector{}, cp.Vector{X: 0, Y: 6}},
		{"normalized", cp.Vector{X: 3, Y: 4}, cp.Vector{X: 3.6, Y: 4.8}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ch := New(testConfig())
			body := standingBody()
			body.vel = cp.Vector{X: 9, Y: 9}
			if !ch.Knockback(body, c.dir) {
				t.Fatalf("knockback should apply")
			}
			if !near(body.vel, c.want) {
				t.Fatalf("velocity = %v, want %v", body.vel, c.want)
			}
		})
	}
}

func TestFixedUpdateMovement(t *testing.T) {
	cases := []struct {
		name      string
		input     cp.Vector
		vel       cp.Vector
		wantVel   cp.Vector
		wantForce bool
	}{
		{"hard_stop_without_input", cp.Vector{}, cp.Vector{X: 3, Y: -1}, cp.Vector{X: 0, Y: -1}, false},
		{"force_below_max", cp.Vector{X: 1}, cp.Vector{X: 2}, cp.Vector{X: 2}, true},
		{"no_force_at_max", cp.Vector{X: 1}, cp.Vector{X: 5}, cp.Vector{X: 5}, false},
		{"clamp_keeps_sign", cp.Vector{X: -1}, cp.Vector{X: -8, Y: -20}, cp.Vector{X: -5, Y: -10}, false},
		{"clamp_positive_y", cp.Vector{X: 1}, cp.Vector{X: 1, Y: 15}, cp.Vector{X: 1, Y: 10}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ch := New(testConfig())
			body := standingBody()
			body.vel = c.vel
			ch.SetInput(c.input, SchemeKeyboardMouse)

			ch.FixedUpdate(body)
			if body.vel != c.wantVel {
				t.Fatalf("velocity = %v, want %v", body.vel, c.wantVel)
			}
			gotForce := false
			for _, f := range body.forces {
				if f.mode == ForceContinuous {
					gotForce = true
					if math.Signbit(f.v.X) != math.Signbit(c.input.X) {
						t.Fatalf("force %v opposes input %v", f.v, c.input)
					}
				}
			}
			if gotForce != c.wantForce {
				t.Fatalf("continuous force applied = %v, want %v", gotForce, c.wantForce)
			}
		})
	}
}

func TestFixedUpdateDuringKnockbackSkipsClamp(t *testing.T) {
	ch := New(testConfig())
	body := standingBody()
	ch.Knockback(body, cp.Vector{X: 1})
	body.vel = cp.Vector{X: 20, Y: 20}

	ch.FixedUpdate(body)
	if body.vel != (cp.Vector{X: 20, Y: 20}) {
		t.Fatalf("knockback velocity should not be clamped, got %v", body.vel)
	}
	if len(body.forces) != 1 {
		t.Fatalf("movement force should be suppressed during knockback")
	}
}

func TestMovementReachesMaxVelocity(t *testing.T) {
	ch := New(testConfig())
	body := standingBody()
	ch.SetInput(cp.Vector{X: 1}, SchemeKeyboardMouse)

	for i := 0; i < 120; i++ {
		ch.FixedUpdate(body)
		body.step(tick)
		if body.vel.X > 5+40*tick {
			t.Fatalf("vx %v overshot max by more than one step", body.vel.X)
		}
	}
	ch.FixedUpdate(body)
	if body.vel.X != 5 {
		t.Fatalf("vx = %v, want clamped to 5", body.vel.X)
	}
}

func TestOrientation(t *testing.T) {
	ch := New(testConfig())
	if !ch.FacingRight() || ch.Yaw() != 0 {
		t.Fatalf("new character should face right")
	}

	ch.SetInput(cp.Vector{X: -0.4}, SchemeGamepad)
	ch.Update(tick, nil, nil)
	if ch.FacingRight() || ch.Yaw() != math.Pi {
		t.Fatalf("negative input should face left")
	}

	ch.SetInput(cp.Vector{}, SchemeGamepad)
	ch.Update(tick, nil, nil)
	if ch.FacingRight() {
		t.Fatalf("zero input should keep facing")
	}

	ch.SetInput(cp.Vector{X: 1}, SchemeKeyboardMouse)
	ch.Update(tick, nil, nil)
	if !ch.FacingRight() {
		t.Fatalf("positive input should face right")
	}
}

func TestMissingBodyIsNoOp(t *testing.T) {
	bodies := map[string]Body{
		"nil":     nil,
		"invalid": &fakeBody{},
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			ch := New(testConfig())
			ch.SetInput(cp.Vector{X: 1}, SchemeKeyboardMouse)

			if ch.Jump(body, nil) || ch.Dash(body) || ch.Knockback(body, cp.Vector{}) {
				t.Fatalf("actions without a body should be refused")
			}
			ch.FixedUpdate(body)
			ch.Update(tick, body, groundLevel())
			if ch.Grounded() {
				t.Fatalf("sensing should be skipped without a body")
			}
			if !ch.CanJump() || !ch.CanDash() {
				t.Fatalf("refused actions should not consume charges")
			}
		})
	}
}

func TestStatePrecedence(t *testing.T) {
	ch := New(testConfig())
	if ch.State() != StateAirborne {
		t.Fatalf("state = %s, want airborne", ch.State())
	}

	body := standingBody()
	level := &fakeLevel{floor: ptr(0), floorClass: ClassGround | ClassWall, wallRight: ptr(0.6), wallsClass: ClassWall}
	ch.Update(tick, body, level)
	if ch.State() != StateWallSliding {
		t.Fatalf("wall contact should outrank ground, got %s", ch.State())
	}

	ch.SetInput(cp.Vector{X: 1}, SchemeKeyboardMouse)
	ch.Dash(body)
	if ch.State() != StateDashing {
		t.Fatalf("state = %s, want dashing", ch.State())
	}
	ch.Knockback(body, cp.Vector{})
	if ch.State() != StateKnockback {
		t.Fatalf("state = %s, want knockback", ch.State())
	}
}

func TestSnapshotString(t *testing.T) {
	ch := New(testConfig())
	s := ch.Snapshot()
	if s.State != StateAirborne || !s.CanJump || !s.FacingRight {
		t.Fatalf("unexpected snapshot %+v", s)
	}
	if s.String() == "" {
		t.Fatalf("snapshot string should not be empty")
	}
}
