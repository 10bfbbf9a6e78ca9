package component

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite draws an entity. With no Image the collider outline is filled with
// Color.
type Sprite struct {
	Image      *ebiten.Image
	Color      color.Color
	Width      float64
	Height     float64
	FacingLeft bool
	Hidden     bool
}

var SpriteComponent = NewComponent[Sprite]()
