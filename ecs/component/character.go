package component

import "github.com/milk9111/skyclimb/controller"

// Character holds the locomotion state machine of a controllable entity.
type Character struct {
	Controller *controller.Character
}

var CharacterComponent = NewComponent[Character]()
