// Command blockview previews the falling block catalog one variant at a
// time, drawn the way the game draws it.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/skyclimb/ecs"
	"github.com/milk9111/skyclimb/ecs/component"
	"github.com/milk9111/skyclimb/ecs/entity"
	"github.com/milk9111/skyclimb/ecs/system"
	"github.com/milk9111/skyclimb/prefabs"
)

const (
	viewSize      = 512
	pixelsPerUnit = 64
)

type viewer struct {
	catalog *prefabs.BlockCatalogSpec
	world   *ecs.World
	render  *system.RenderSystem

	current     int
	hazardous   bool
	tick        int
	ticksPerVar int
	paused      bool
}

func newViewer(catalog *prefabs.BlockCatalogSpec, seconds float64) *viewer {
	ticks := int(seconds * 60)
	if ticks < 1 {
		ticks = 1
	}
	v := &viewer{catalog: catalog, render: system.NewRenderSystem(), ticksPerVar: ticks}
	v.rebuild()
	return v
}

// rebuild replaces the world with a camera and the current variant.
func (v *viewer) rebuild() {
	w := ecs.NewWorld()
	cam := ecs.CreateEntity(w)
	if err := ecs.Add(w, cam, component.CameraComponent.Kind(), &component.Camera{
		PixelsPerUnit: pixelsPerUnit,
		ViewWidth:     viewSize,
		ViewHeight:    viewSize,
	}); err != nil {
		log.Printf("blockview: camera: %v", err)
	}
	if _, err := entity.NewBlock(w, v.catalog, entity.BlockParams{Variant: v.current, Hazardous: v.hazardous}); err != nil {
		log.Printf("blockview: variant %d: %v", v.current, err)
	}
	v.world = w
}

func (v *viewer) step(delta int) {
	n := len(v.catalog.Variants)
	v.current = ((v.current+delta)%n + n) % n
	v.tick = 0
	v.rebuild()
}

func (v *viewer) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		v.step(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		v.step(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		v.hazardous = !v.hazardous
		v.rebuild()
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		v.paused = !v.paused
	}
	if v.paused || len(v.catalog.Variants) <= 1 {
		return nil
	}
	v.tick++
	if v.tick >= v.ticksPerVar {
		v.step(1)
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x20, 0x20, 0x28, 0xff})
	v.render.Draw(v.world, screen)

	spec := v.catalog.Variants[v.current]
	shape := fmt.Sprintf("box %.2f x %.2f", spec.Width, spec.Height)
	if spec.IsPolygon() {
		shape = fmt.Sprintf("polygon, %d points", len(spec.Points))
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("variant %d/%d: %s  hazardous=%v\n<- -> step, H hazard, Space pause",
		v.current+1, len(v.catalog.Variants), shape, v.hazardous))
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewSize, viewSize
}

func main() {
	path := flag.String("catalog", "blocks.yaml", "block catalog in prefabs/")
	seconds := flag.Float64("every", 1.5, "seconds per variant")
	flag.Parse()

	catalog, err := prefabs.LoadBlockCatalog(*path)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(viewSize, viewSize)
	ebiten.SetWindowTitle("Block Catalog")
	if err := ebiten.RunGame(newViewer(catalog, *seconds)); err != nil {
		log.Fatal(err)
	}
}
