package component

import "image/color"

// StartingPlatform is the support under the spawn point. The first jump turns
// it into a death box.
type StartingPlatform struct {
	Converted   bool
	HazardColor color.Color
}

var StartingPlatformComponent = NewComponent[StartingPlatform]()
