package system

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/skyclimb/ecs"
	"github.com/milk9111/skyclimb/ecs/component"
	"github.com/milk9111/skyclimb/physics"
)

// RenderSystem draws sprites in render layer order. A sprite without an
// image is filled in the outline of its collider, or as a Width x Height box
// when the entity has no collider.
type RenderSystem struct {
	whiteImg *ebiten.Image
	verts    []ebiten.Vertex
	indices  []uint16
	ents     []ecs.Entity
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Update(*ecs.World) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	cam, ok := activeCamera(w)
	if !ok {
		return
	}

	r.ents = r.ents[:0]
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, _ *component.Transform, s *component.Sprite) {
		if !s.Hidden {
			r.ents = append(r.ents, e)
		}
	})
	sort.SliceStable(r.ents, func(i, j int) bool {
		li, lj := renderLayer(w, r.ents[i]), renderLayer(w, r.ents[j])
		if li != lj {
			return li < lj
		}
		return uint64(r.ents[i]) < uint64(r.ents[j])
	})

	for _, e := range r.ents {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		s, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
		if t == nil || s == nil {
			continue
		}

		if s.Image != nil {
			r.drawImage(screen, cam, t, s)
			continue
		}
		fill := s.Color
		if fill == nil {
			fill = color.White
		}
		pos := cp.Vector{X: t.X, Y: t.Y}
		if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && pb.Collider != nil {
			r.fillPolygon(screen, cam, localOutline(pb.Collider), pos, t.Rotation, fill)
			continue
		}
		r.fillPolygon(screen, cam, boxOutline(s.Width, s.Height), pos, t.Rotation, fill)
	}
}

func (r *RenderSystem) drawImage(screen *ebiten.Image, cam *component.Camera, t *component.Transform, s *component.Sprite) {
	b := s.Image.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw == 0 || ih == 0 {
		return
	}
	sx := s.Width * cam.PixelsPerUnit / iw
	sy := s.Height * cam.PixelsPerUnit / ih
	if s.FacingLeft {
		sx = -sx
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-iw/2, -ih/2)
	op.GeoM.Scale(sx, sy)
	// Screen rotation runs clockwise, world rotation counter-clockwise.
	op.GeoM.Rotate(-t.Rotation)
	x, y := cam.WorldToScreen(t.X, t.Y)
	op.GeoM.Translate(x, y)
	screen.DrawImage(s.Image, op)
}

func (r *RenderSystem) fillPolygon(screen *ebiten.Image, cam *component.Camera, local []cp.Vector, pos cp.Vector, angle float64, c color.Color) {
	if len(local) < 3 {
		return
	}
	if r.whiteImg == nil {
		r.whiteImg = ebiten.NewImage(3, 3)
		r.whiteImg.Fill(color.White)
	}

	rot := cp.ForAngle(angle)
	var path vector.Path
	for i, v := range local {
		world := pos.Add(rot.Rotate(v))
		x, y := cam.WorldToScreen(world.X, world.Y)
		if i == 0 {
			path.MoveTo(float32(x), float32(y))
			continue
		}
		path.LineTo(float32(x), float32(y))
	}
	path.Close()

	cr, cg, cb, ca := c.RGBA()
	r.verts, r.indices = path.AppendVerticesAndIndicesForFilling(r.verts[:0], r.indices[:0])
	for i := range r.verts {
		r.verts[i].SrcX = 1
		r.verts[i].SrcY = 1
		r.verts[i].ColorR = float32(cr) / 0xffff
		r.verts[i].ColorG = float32(cg) / 0xffff
		r.verts[i].ColorB = float32(cb) / 0xffff
		r.verts[i].ColorA = float32(ca) / 0xffff
	}
	screen.DrawTriangles(r.verts, r.indices, r.whiteImg, &ebiten.DrawTrianglesOptions{})
}

// localOutline returns the collider outline in body space.
func localOutline(shape physics.Shape) []cp.Vector {
	switch s := shape.(type) {
	case physics.Box:
		return boxOutline(s.W, s.H)
	case physics.Polygon:
		return s.Verts
	default:
		size := shape.Size()
		return boxOutline(size.X, size.Y)
	}
}

func boxOutline(w, h float64) []cp.Vector {
	hw, hh := w/2, h/2
	return []cp.Vector{{X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: hw, Y: hh}, {X: -hw, Y: hh}}
}

func renderLayer(w *ecs.World, e ecs.Entity) int {
	if layer, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
		return layer.Index
	}
	return 0
}

func activeCamera(w *ecs.World) (*component.Camera, bool) {
	e, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.CameraComponent.Kind())
}
