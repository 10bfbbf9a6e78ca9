package system

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/skyclimb/ecs"
	"github.com/milk9111/skyclimb/telemetry"
	"golang.org/x/image/font/basicfont"
)

const (
	hudScale   = 3
	hudMargin  = 12
	pipSize    = 14
	pipSpacing = 6
)

// HUDSystem shows the current height and the remaining health.
type HUDSystem struct {
	tracker telemetry.Reader
	face    text.Face
}

func NewHUDSystem(tracker telemetry.Reader) *HUDSystem {
	return &HUDSystem{
		tracker: tracker,
		face:    text.NewGoXFace(basicfont.Face7x13),
	}
}

func (h *HUDSystem) Update(*ecs.World) {}

// HeightLabel formats a height the way the HUD shows it.
func HeightLabel(height float64) string {
	return fmt.Sprintf("%.1f M", height)
}

func (h *HUDSystem) Draw(_ *ecs.World, screen *ebiten.Image) {
	if h == nil || h.tracker == nil || screen == nil {
		return
	}
	sw := float64(screen.Bounds().Dx())

	label := HeightLabel(h.tracker.Height())
	tw, _ := text.Measure(label, h.face, 0)
	op := &text.DrawOptions{}
	op.GeoM.Scale(hudScale, hudScale)
	op.GeoM.Translate(sw-tw*hudScale-hudMargin, hudMargin)
	op.ColorScale.ScaleWithColor(color.Black)
	text.Draw(screen, label, h.face, op)

	for i := 0; i < h.tracker.Health(); i++ {
		x := float32(hudMargin + i*(pipSize+pipSpacing))
		vector.DrawFilledRect(screen, x, hudMargin, pipSize, pipSize, color.RGBA{R: 0xe5, G: 0x39, B: 0x35, A: 0xff}, false)
	}
}
