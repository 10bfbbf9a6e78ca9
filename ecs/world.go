// Package ecs stores entities and their components in generational sparse sets.
package ecs

import "github.com/milk9111/skyclimb/ecs/component"

// World owns entities, component stores, the contact queue and system order.
type World struct {
	entities  entityStore
	stores    map[component.ComponentID]store
	scheduler *Scheduler
	contacts  ContactQueue
	tick      uint64
}

func NewWorld() *World {
	return &World{
		stores:    make(map[component.ComponentID]store),
		scheduler: NewScheduler(),
	}
}

func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes e and every component attached to it. It reports
// false when e was already dead.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e.id())
	}
	return w.entities.destroy(e)
}

func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	w.entities.each(func(e Entity) { out = append(out, e) })
	return out
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil {
		return
	}
	w.scheduler.Add(s)
}

func (w *World) Systems() []System {
	if w == nil {
		return nil
	}
	return w.scheduler.Systems()
}

// Update runs all systems once, then drops contacts nobody drained.
func (w *World) Update() {
	if w == nil {
		return
	}
	w.scheduler.Update(w)
	w.contacts.flush()
	w.tick++
}

// Tick is the number of completed Update calls.
func (w *World) Tick() uint64 {
	if w == nil {
		return 0
	}
	return w.tick
}

func (w *World) Contacts() *ContactQueue {
	if w == nil {
		return nil
	}
	return &w.contacts
}
