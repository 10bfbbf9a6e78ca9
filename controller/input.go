package controller

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Scheme identifies the control scheme that produced the latest input.
type Scheme uint8

const (
	SchemeNone Scheme = iota
	SchemeKeyboardMouse
	SchemeGamepad
	// SchemePointer covers analog pointing devices (touch drag, XR).
	SchemePointer
)

func (s Scheme) String() string {
	switch s {
	case SchemeKeyboardMouse:
		return "keyboard_mouse"
	case SchemeGamepad:
		return "gamepad"
	case SchemePointer:
		return "pointer"
	default:
		return "none"
	}
}

// Flatten projects each axis of raw onto {-1, 0, 1}.
func Flatten(raw cp.Vector) cp.Vector {
	return cp.Vector{X: axisSign(raw.X), Y: axisSign(raw.Y)}
}

// StrongestIntent reduces raw to the single dominant axis.
//
// Analog schemes compare magnitudes and favour X on ties. Keyboard axes carry
// no magnitude, so Y wins whenever it is held; that lets up/down actions combine
// with horizontal movement.
func StrongestIntent(raw cp.Vector, scheme Scheme) cp.Vector {
	var out cp.Vector
	if raw.X == 0 && raw.Y == 0 {
		return out
	}

	switch scheme {
	case SchemeGamepad, SchemePointer:
		if math.Abs(raw.Y) > math.Abs(raw.X) {
			out.Y = axisSign(raw.Y)
		} else {
			out.X = axisSign(raw.X)
		}
	case SchemeKeyboardMouse:
		if raw.Y != 0 {
			out.Y = axisSign(raw.Y)
		} else {
			out.X = axisSign(raw.X)
		}
	}
	return out
}

func axisSign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
