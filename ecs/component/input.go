package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/skyclimb/controller"
)

// Input stores the device state sampled for the current tick.
type Input struct {
	Move        cp.Vector
	Scheme      controller.Scheme
	MoveChanged bool
	JumpPressed bool
	DashPressed bool
}

var InputComponent = NewComponent[Input]()
