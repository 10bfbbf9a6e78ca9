package entity

import (
	"fmt"

	"github.com/milk9111/skyclimb/ecs"
	"github.com/milk9111/skyclimb/ecs/component"
)

// NewPlayerAt builds the player prefab on spawn. The prefab must carry a
// character controller and a collider; anything else is a level error.
func NewPlayerAt(w *ecs.World, prefabPath string, x, y float64) (ecs.Entity, error) {
	player, err := BuildEntity(w, prefabPath)
	if err != nil {
		return 0, err
	}
	fail := func(err error) (ecs.Entity, error) {
		ecs.DestroyEntity(w, player)
		return 0, err
	}

	if ch, ok := ecs.Get(w, player, component.CharacterComponent.Kind()); !ok || ch.Controller == nil {
		return fail(fmt.Errorf("player: %s has no character", prefabPath))
	}
	if !ecs.Has(w, player, component.PhysicsBodyComponent.Kind()) {
		return fail(fmt.Errorf("player: %s has no physics_body", prefabPath))
	}
	if !ecs.Has(w, player, component.PlayerTagComponent.Kind()) {
		if err := ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
			return fail(fmt.Errorf("player: tag: %w", err))
		}
	}
	if err := SetEntityTransform(w, player, x, y, 0); err != nil {
		return fail(fmt.Errorf("player: override transform: %w", err))
	}
	return player, nil
}
