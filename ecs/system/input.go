package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/skyclimb/controller"
	"github.com/milk9111/skyclimb/ecs"
	"github.com/milk9111/skyclimb/ecs/component"
)

const (
	stickDeadzone = 0.2
	// touchRadius is the drag distance in pixels that reads as full tilt.
	touchRadius = 60.0
)

// InputFrame is the device state for one tick.
type InputFrame struct {
	Move   cp.Vector
	Scheme controller.Scheme
	Jump   bool
	Dash   bool
}

// InputSystem samples keyboard, gamepad and touch and writes the result into
// every Input component. The scheme follows the device used last.
type InputSystem struct {
	// Sample reads the devices; tests replace it.
	Sample func() InputFrame

	lastMove   cp.Vector
	lastScheme controller.Scheme

	touchID     ebiten.TouchID
	touchActive bool
	touchStartX int
	touchStartY int
	touchIDs    []ebiten.TouchID
}

func NewInputSystem() *InputSystem {
	s := &InputSystem{lastScheme: controller.SchemeKeyboardMouse}
	s.Sample = s.sampleDevices
	return s
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil || i.Sample == nil {
		return
	}

	frame := i.Sample()
	if frame.Scheme == controller.SchemeNone {
		frame.Scheme = i.lastScheme
	}
	changed := frame.Move != i.lastMove || frame.Scheme != i.lastScheme
	i.lastMove = frame.Move
	i.lastScheme = frame.Scheme

	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		input.Move = frame.Move
		input.Scheme = frame.Scheme
		input.MoveChanged = changed
		input.JumpPressed = frame.Jump
		input.DashPressed = frame.Dash
	})
}

func (i *InputSystem) sampleDevices() InputFrame {
	var frame InputFrame

	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	up := ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp)
	down := ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown)
	if left {
		frame.Move.X -= 1
	}
	if right {
		frame.Move.X += 1
	}
	if up {
		frame.Move.Y += 1
	}
	if down {
		frame.Move.Y -= 1
	}
	frame.Jump = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	frame.Dash = inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft) ||
		inpututil.IsKeyJustPressed(ebiten.KeyShiftRight) ||
		inpututil.IsKeyJustPressed(ebiten.KeyK)
	if left || right || up || down || frame.Jump || frame.Dash {
		frame.Scheme = controller.SchemeKeyboardMouse
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		// Stick up is negative on the device; the world is Y-up.
		y := -ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(x, y) > stickDeadzone {
			frame.Move = cp.Vector{X: deadzone(x), Y: deadzone(y)}
			frame.Scheme = controller.SchemeGamepad
		}

		jump := inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		dash := inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft) ||
			inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
		if jump || dash {
			frame.Scheme = controller.SchemeGamepad
		}
		frame.Jump = frame.Jump || jump
		frame.Dash = frame.Dash || dash
	}

	if move, jump, ok := i.sampleTouch(); ok {
		frame.Move = move
		frame.Jump = frame.Jump || jump
		frame.Scheme = controller.SchemePointer
	}

	return frame
}

// sampleTouch treats the first finger as a virtual stick anchored where it
// landed. Any additional finger landing jumps.
func (i *InputSystem) sampleTouch() (cp.Vector, bool, bool) {
	i.touchIDs = ebiten.AppendTouchIDs(i.touchIDs[:0])
	if len(i.touchIDs) == 0 {
		i.touchActive = false
		return cp.Vector{}, false, false
	}

	jump := false
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		if !i.touchActive {
			i.touchID = id
			i.touchActive = true
			i.touchStartX, i.touchStartY = ebiten.TouchPosition(id)
			continue
		}
		if id != i.touchID {
			jump = true
		}
	}
	if !i.touchActive || inpututil.IsTouchJustReleased(i.touchID) {
		i.touchActive = false
		return cp.Vector{}, jump, jump
	}

	x, y := ebiten.TouchPosition(i.touchID)
	move := cp.Vector{
		X: float64(x-i.touchStartX) / touchRadius,
		Y: float64(i.touchStartY-y) / touchRadius,
	}
	if move.Length() < stickDeadzone {
		move = cp.Vector{}
	}
	return move.Clamp(1), jump, true
}

func deadzone(v float64) float64 {
	if math.Abs(v) < stickDeadzone {
		return 0
	}
	return v
}
