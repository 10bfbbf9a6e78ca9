package system

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/skyclimb/common"
	"github.com/milk9111/skyclimb/ecs"
	"github.com/milk9111/skyclimb/ecs/component"
	"github.com/milk9111/skyclimb/ecs/entity"
	"github.com/milk9111/skyclimb/prefabs"
	"github.com/milk9111/skyclimb/telemetry"
)

// SpawnDecision is what a spawn roll produced, before placement.
type SpawnDecision struct {
	Variant    int
	ViewportX  float64
	Speed      float64
	Hazardous  bool
	SpeedScale float64
}

// SpawnerSystem drops a block above the view every Interval seconds. A
// spawner with a Script lets the script override the hazard roll and scale
// the fall speed.
type SpawnerSystem struct {
	catalog *prefabs.BlockCatalogSpec
	tracker telemetry.Reader
	rng     *rand.Rand
	dt      float64

	scripts map[string]*spawnScript
}

func NewSpawnerSystem(catalog *prefabs.BlockCatalogSpec, tracker telemetry.Reader, seed int64) *SpawnerSystem {
	return &SpawnerSystem{
		catalog: catalog,
		tracker: tracker,
		rng:     rand.New(rand.NewSource(seed)),
		dt:      common.FixedDelta,
		scripts: make(map[string]*spawnScript),
	}
}

func (s *SpawnerSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.catalog == nil {
		return
	}
	camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return
	}
	cam, _ := ecs.Get(w, camEntity, component.CameraComponent.Kind())

	ecs.ForEach(w, component.SpawnerComponent.Kind(), func(_ ecs.Entity, sp *component.Spawner) {
		sp.Elapsed += s.dt
		for sp.Interval > 0 && sp.Elapsed >= sp.Interval {
			sp.Elapsed -= sp.Interval
			if err := s.spawn(w, sp, cam); err != nil {
				log.Printf("spawner: %v", err)
			}
		}
	})
}

func (s *SpawnerSystem) spawn(w *ecs.World, sp *component.Spawner, cam *component.Camera) error {
	d := s.Roll(sp)
	if sp.Script != "" {
		if err := s.applyScript(sp, &d); err != nil {
			// The roll stands on script errors.
			log.Printf("spawner: script %q: %v", sp.Script, err)
		}
	}

	size, err := s.variantSize(d.Variant)
	if err != nil {
		return err
	}
	minX, _, maxX, maxY := cam.ViewBounds()
	x := cam.ViewportToWorldX(d.ViewportX)
	x = common.Clamp(x, minX+size/2, maxX-size/2)

	_, err = entity.NewBlock(w, s.catalog, entity.BlockParams{
		Variant:   d.Variant,
		X:         x,
		Y:         maxY + sp.Offset,
		Speed:     d.Speed * d.SpeedScale,
		Hazardous: d.Hazardous,
	})
	if err != nil {
		return err
	}
	sp.Spawned++
	return nil
}

// Roll draws the shape, column, fall speed and hazard flag for one spawn.
func (s *SpawnerSystem) Roll(sp *component.Spawner) SpawnDecision {
	d := SpawnDecision{
		Variant:    s.rng.Intn(len(s.catalog.Variants)),
		ViewportX:  sp.MinViewportX + s.rng.Float64()*(sp.MaxViewportX-sp.MinViewportX),
		Speed:      sp.MinFallSpeed + s.rng.Float64()*(sp.MaxFallSpeed-sp.MinFallSpeed),
		SpeedScale: 1,
	}
	d.Hazardous = s.rng.Float64()*100 < sp.HazardChance
	return d
}

func (s *SpawnerSystem) variantSize(i int) (float64, error) {
	shape, err := entity.ShapeFromSpec(s.catalog.Variants[i])
	if err != nil {
		return 0, fmt.Errorf("variant %d: %w", i, err)
	}
	return shape.Size().X, nil
}

type spawnScript struct {
	compiled *tengo.Compiled
}

func compileSpawnScript(name string) (*spawnScript, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	script := tengo.NewScript(src)
	_ = script.Add("height", 0.0)
	_ = script.Add("spawned", 0)
	_ = script.Add("roll", 0.0)
	_ = script.Add("chance", 0.0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return &spawnScript{compiled: compiled}, nil
}

func (s *SpawnerSystem) applyScript(sp *component.Spawner, d *SpawnDecision) error {
	rt, ok := s.scripts[sp.Script]
	if !ok {
		var err error
		rt, err = compileSpawnScript(sp.Script)
		if err != nil {
			// Cache the failure so a broken script is reported once.
			s.scripts[sp.Script] = nil
			return err
		}
		s.scripts[sp.Script] = rt
	}
	if rt == nil {
		return nil
	}

	height := 0.0
	if s.tracker != nil {
		height = s.tracker.MaxHeight()
	}
	c := rt.compiled
	if err := c.Set("height", height); err != nil {
		return err
	}
	if err := c.Set("spawned", sp.Spawned); err != nil {
		return err
	}
	if err := c.Set("roll", s.rng.Float64()*100); err != nil {
		return err
	}
	if err := c.Set("chance", sp.HazardChance); err != nil {
		return err
	}
	if err := c.Run(); err != nil {
		return err
	}

	if c.IsDefined("hazardous") {
		d.Hazardous = c.Get("hazardous").Bool()
	}
	if c.IsDefined("speed_scale") {
		if scale := c.Get("speed_scale").Float(); scale > 0 {
			d.SpeedScale = scale
		}
	}
	return nil
}
