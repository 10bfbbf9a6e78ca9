package ecs

import "github.com/hajimehoshi/ebiten/v2"

// Renderer is implemented by systems that also draw.
type Renderer interface {
	Draw(w *World, screen *ebiten.Image)
}

// Draw calls every render-capable system in update order.
func (w *World) Draw(screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	for _, s := range w.scheduler.Systems() {
		if r, ok := s.(Renderer); ok {
			r.Draw(w, screen)
		}
	}
}
