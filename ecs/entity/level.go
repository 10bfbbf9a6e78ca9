package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/skyclimb/ecs"
	"github.com/milk9111/skyclimb/prefabs"
)

// Level is the set of entities and catalogs built from a world spec.
type Level struct {
	Spec   *prefabs.WorldSpec
	Blocks *prefabs.BlockCatalogSpec
	Clouds *prefabs.CloudFieldSpec

	Player   ecs.Entity
	Camera   ecs.Entity
	Platform ecs.Entity
	Spawner  ecs.Entity
	Walls    []ecs.Entity
}

func (l *Level) Spawn() cp.Vector {
	if l == nil || l.Spec == nil {
		return cp.Vector{}
	}
	return cp.Vector{X: l.Spec.Spawn.X, Y: l.Spec.Spawn.Y}
}

// BuildWorld loads the world spec at worldPath and populates w. Partially
// built worlds are not cleaned up; callers discard w on error.
func BuildWorld(w *ecs.World, worldPath string) (*Level, error) {
	spec, err := prefabs.LoadWorldSpec(worldPath)
	if err != nil {
		return nil, fmt.Errorf("level: %w", err)
	}
	blocks, err := prefabs.LoadBlockCatalog(spec.Blocks)
	if err != nil {
		return nil, fmt.Errorf("level: %w", err)
	}
	lvl := &Level{Spec: spec, Blocks: blocks}

	if spec.Clouds != "" {
		clouds, err := prefabs.LoadCloudField(spec.Clouds)
		if err != nil {
			return nil, fmt.Errorf("level: %w", err)
		}
		lvl.Clouds = clouds
		if _, err := NewClouds(w, clouds); err != nil {
			return nil, fmt.Errorf("level: %w", err)
		}
	}

	for i, wall := range spec.Walls {
		e, err := BuildEntity(w, wall.Prefab)
		if err != nil {
			return nil, fmt.Errorf("level: wall %d: %w", i, err)
		}
		if err := SetEntityTransform(w, e, wall.X, wall.Y, 0); err != nil {
			return nil, fmt.Errorf("level: wall %d: %w", i, err)
		}
		lvl.Walls = append(lvl.Walls, e)
	}

	if lvl.Platform, err = BuildEntity(w, spec.Platform); err != nil {
		return nil, fmt.Errorf("level: platform: %w", err)
	}
	if lvl.Player, err = NewPlayerAt(w, spec.Player, spec.Spawn.X, spec.Spawn.Y); err != nil {
		return nil, fmt.Errorf("level: player: %w", err)
	}
	if lvl.Camera, err = NewCamera(w, spec.Camera, spec); err != nil {
		return nil, fmt.Errorf("level: camera: %w", err)
	}
	if spec.Spawner != "" {
		if lvl.Spawner, err = BuildEntity(w, spec.Spawner); err != nil {
			return nil, fmt.Errorf("level: spawner: %w", err)
		}
	}
	return lvl, nil
}
