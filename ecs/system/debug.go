package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/skyclimb/controller"
	"github.com/milk9111/skyclimb/ecs"
	"github.com/milk9111/skyclimb/ecs/component"
	"github.com/milk9111/skyclimb/physics"
	"golang.org/x/image/colornames"
)

const debugCircleSegments = 24

// DebugSystem draws collider outlines, the character's ray probes (green on
// a qualifying hit, red otherwise) and a dump of the controller state.
type DebugSystem struct {
	Enabled bool
	space   *cp.Space
}

func NewDebugSystem(space *cp.Space, enabled bool) *DebugSystem {
	return &DebugSystem{space: space, Enabled: enabled}
}

func (d *DebugSystem) Update(*ecs.World) {}

func (d *DebugSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if d == nil || !d.Enabled || w == nil || screen == nil {
		return
	}
	cam, ok := activeCamera(w)
	if !ok {
		return
	}

	if d.space != nil {
		cp.DrawSpace(d.space, &physicsDebugDrawer{screen: screen, cam: cam})
	}

	ecs.ForEach(w, component.CharacterComponent.Kind(), func(_ ecs.Entity, ch *component.Character) {
		if ch.Controller == nil {
			return
		}
		probes := ch.Controller.Probes()
		for _, p := range probes.Ground {
			drawProbe(screen, cam, p)
		}
		for _, p := range probes.Wall {
			drawProbe(screen, cam, p)
		}
	})

	if player, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		if ch, ok := ecs.Get(w, player, component.CharacterComponent.Kind()); ok && ch.Controller != nil {
			ebitenutil.DebugPrintAt(screen, ch.Controller.Snapshot().String(), 10, 40)
		}
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS: %0.1f", ebiten.ActualTPS()), 10, 10)
}

func drawProbe(screen *ebiten.Image, cam *component.Camera, p controller.Probe) {
	c := colornames.Red
	if p.Qualifies {
		c = colornames.Lime
	}
	x0, y0 := cam.WorldToScreen(p.Origin.X, p.Origin.Y)
	x1, y1 := cam.WorldToScreen(p.End.X, p.End.Y)
	vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 2, c, false)
}

// physicsDebugDrawer renders cp.DrawSpace output through the game camera.
type physicsDebugDrawer struct {
	screen *ebiten.Image
	cam    *component.Camera
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	x, y := d.cam.WorldToScreen(pos.X, pos.Y)
	vector.DrawFilledRect(d.screen, float32(x-1), float32(y-1), 3, 3, toNRGBA(fill), false)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if s, ok := physics.SurfaceOf(shape); ok && s.Class.Has(controller.ClassHazard) {
		return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.5}
	}
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	x1, y1 := d.cam.WorldToScreen(a.X, a.Y)
	x2, y2 := d.cam.WorldToScreen(b.X, b.Y)
	ebitenutil.DrawLine(d.screen, x1, y1, x2, y2, toNRGBA(c))
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, c cp.FColor) {
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, c)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
