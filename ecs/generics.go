package ecs

import "github.com/milk9111/skyclimb/ecs/component"

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) *sparseSet[T] {
	if w == nil || !kind.Valid() {
		return nil
	}
	if s, ok := w.stores[kind.ID()]; ok {
		set, _ := s.(*sparseSet[T])
		return set
	}
	if !create {
		return nil
	}
	set := newSparseSet[T]()
	w.stores[kind.ID()] = set
	return set
}

// Add attaches value to e, replacing any previous value of the same kind.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}
	storeFor(w, kind, true).set(e, value)
	return nil
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !IsAlive(w, e) {
		return nil, false
	}
	s := storeFor(w, kind, false)
	if s == nil {
		return nil, false
	}
	return s.get(e.id())
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	_, ok := Get(w, e, kind)
	return ok
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	s := storeFor(w, kind, false)
	if s == nil {
		return false
	}
	return s.remove(e.id())
}

// Count returns the number of entities carrying kind.
func Count[T any](w *World, kind component.ComponentKind[T]) int {
	s := storeFor(w, kind, false)
	if s == nil {
		return 0
	}
	return s.len()
}

// First returns any entity carrying kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	s := storeFor(w, kind, false)
	if s == nil || s.len() == 0 {
		return 0, false
	}
	return s.dense[0], true
}

// ForEach visits every entity carrying kind. Callbacks may add, remove or
// destroy; entities destroyed earlier in the pass are skipped.
func ForEach[A any](w *World, ka component.ComponentKind[A], fn func(Entity, *A)) {
	sa := storeFor(w, ka, false)
	if sa == nil || fn == nil {
		return
	}
	ents, vals := sa.snapshot()
	for i, e := range ents {
		if !IsAlive(w, e) || !sa.has(e.id()) {
			continue
		}
		fn(e, vals[i])
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa := storeFor(w, ka, false)
	sb := storeFor(w, kb, false)
	if sa == nil || sb == nil || fn == nil {
		return
	}
	for _, e := range plan(sa, sb) {
		if !IsAlive(w, e) {
			continue
		}
		a, okA := sa.get(e.id())
		b, okB := sb.get(e.id())
		if okA && okB {
			fn(e, a, b)
		}
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sa := storeFor(w, ka, false)
	sb := storeFor(w, kb, false)
	sc := storeFor(w, kc, false)
	if sa == nil || sb == nil || sc == nil || fn == nil {
		return
	}
	for _, e := range plan(sa, sb, sc) {
		if !IsAlive(w, e) {
			continue
		}
		a, okA := sa.get(e.id())
		b, okB := sb.get(e.id())
		c, okC := sc.get(e.id())
		if okA && okB && okC {
			fn(e, a, b, c)
		}
	}
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	sa := storeFor(w, ka, false)
	sb := storeFor(w, kb, false)
	sc := storeFor(w, kc, false)
	sd := storeFor(w, kd, false)
	if sa == nil || sb == nil || sc == nil || sd == nil || fn == nil {
		return
	}
	for _, e := range plan(sa, sb, sc, sd) {
		if !IsAlive(w, e) {
			continue
		}
		a, okA := sa.get(e.id())
		b, okB := sb.get(e.id())
		c, okC := sc.get(e.id())
		d, okD := sd.get(e.id())
		if okA && okB && okC && okD {
			fn(e, a, b, c, d)
		}
	}
}

type denseStore interface {
	store
	entities() []Entity
}

func (s *sparseSet[T]) entities() []Entity { return s.dense }

// plan returns a copy of the entity list of the smallest store; the callers
// filter it against the others.
func plan(stores ...denseStore) []Entity {
	smallest := stores[0]
	for _, s := range stores[1:] {
		if s.len() < smallest.len() {
			smallest = s
		}
	}
	return append([]Entity(nil), smallest.entities()...)
}
