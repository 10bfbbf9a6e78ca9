package main

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/skyclimb/assets"
	"github.com/milk9111/skyclimb/config"
	"github.com/milk9111/skyclimb/ecs"
	"github.com/milk9111/skyclimb/ecs/entity"
	"github.com/milk9111/skyclimb/ecs/system"
	"github.com/milk9111/skyclimb/events"
	"github.com/milk9111/skyclimb/prefabs"
	"github.com/milk9111/skyclimb/telemetry"
)

var defaultBackground = color.RGBA{R: 0x87, G: 0xce, B: 0xeb, A: 0xff}

type Game struct {
	settings config.Settings

	world   *ecs.World
	level   *entity.Level
	physics *system.PhysicsSystem
	debug   *system.DebugSystem

	bus     *events.Bus
	tracker *telemetry.Tracker
	sfx     *assets.SFX
	watcher *prefabs.Watcher

	background color.Color
	viewW      int
	viewH      int

	dead      bool
	restart   bool
	deathUI   *ebitenui.UI
	clipboard debugClipboard
	subs      []events.Subscription
}

func NewGame(settings config.Settings) (*Game, error) {
	g := &Game{
		settings: settings,
		bus:      events.NewBus(),
	}

	if err := g.load(); err != nil {
		return nil, err
	}

	sfx, err := assets.NewSFX(audio.NewContext(assets.SampleRate), assets.Names()...)
	if err != nil {
		// The game stays playable without sound.
		log.Printf("audio: %v", err)
	}
	g.sfx = sfx

	g.subs = append(g.subs,
		g.bus.Subscribe(events.PlayerDied, g.onDied),
		g.bus.Subscribe(events.PlayerJumped, func(events.Event) { g.sfx.Play(assets.SoundJump) }),
		g.bus.Subscribe(events.PlayerDashed, func(events.Event) { g.sfx.Play(assets.SoundDash) }),
		g.bus.Subscribe(events.PlayerHurt, func(events.Event) { g.sfx.Play(assets.SoundHurt) }),
	)

	if settings.HotReload || settings.Debug {
		w, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			log.Printf("hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// load builds a fresh world from the configured level. The tracker survives
// restarts so the attempt count keeps running; a reload replaces it.
func (g *Game) load() error {
	w := ecs.NewWorld()
	lvl, err := entity.BuildWorld(w, g.settings.Level)
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	spec := lvl.Spec

	if g.tracker == nil {
		g.tracker = telemetry.NewTracker(g.bus, lvl.Spawn(), spec.DeathDepth, spec.Health)
	} else {
		g.tracker.Respawn(lvl.Spawn())
	}

	seed := g.settings.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ps := system.NewPhysicsSystem(cp.Vector{X: spec.Gravity.X, Y: spec.Gravity.Y})
	debugEnabled := g.settings.Debug
	if g.debug != nil {
		debugEnabled = g.debug.Enabled
	}
	debug := system.NewDebugSystem(ps.Space(), debugEnabled)

	w.AddSystem(system.NewInputSystem())
	w.AddSystem(system.NewCharacterSystem(ps.Prober(), g.bus))
	w.AddSystem(system.NewFallingBlockSystem())
	w.AddSystem(ps)
	w.AddSystem(system.NewHazardSystem(g.tracker, g.bus))
	w.AddSystem(system.NewTelemetrySystem(g.tracker))
	w.AddSystem(system.NewSpawnerSystem(lvl.Blocks, g.tracker, seed))
	w.AddSystem(system.NewDespawnSystem())
	w.AddSystem(system.NewCameraSystem(g.tracker))
	w.AddSystem(system.NewCloudSystem())
	w.AddSystem(system.NewRenderSystem())
	w.AddSystem(debug)
	w.AddSystem(system.NewHUDSystem(g.tracker))

	ps.Sync(w)

	g.world = w
	g.level = lvl
	g.physics = ps
	g.debug = debug
	g.background = spec.Background.ColorOr(defaultBackground)
	g.viewW, g.viewH = spec.ViewWidth, spec.ViewHeight
	g.dead = false
	g.deathUI = nil
	return nil
}

// reload rebuilds the world after a prefab edit. A broken edit keeps the
// running world.
func (g *Game) reload(changed string) {
	prev := g.tracker
	g.tracker = nil
	if err := g.load(); err != nil {
		g.tracker = prev
		log.Printf("hot reload %s: %v", changed, err)
		return
	}
	log.Printf("hot reload: %s", changed)
}

func (g *Game) onDied(evt events.Event) {
	g.dead = true
	g.sfx.Play(assets.SoundDeath)
	died, _ := evt.Payload.(events.Died)
	g.deathUI = NewDeathUI(g, died)
}

func (g *Game) Update() error {
	g.pollReload()

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) && g.debug != nil {
		g.debug.Enabled = !g.debug.Enabled
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF8) {
		g.copySnapshot()
	}

	if g.dead {
		if g.deathUI != nil {
			g.deathUI.Update()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.restart = true
		}
		if g.restart {
			g.restart = false
			if err := g.load(); err != nil {
				return err
			}
		}
		return nil
	}

	g.world.Update()
	return nil
}

func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	changed, ok := g.watcher.Poll()
	if !ok {
		return
	}
	// Collapse a burst of saves into one rebuild.
	for {
		if _, more := g.watcher.Poll(); !more {
			break
		}
	}
	g.reload(changed)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)
	g.world.Draw(screen)
	if g.dead && g.deathUI != nil {
		g.deathUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.viewW, g.viewH
}

// Close releases the watcher and the event subscriptions.
func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("hot reload: close: %v", err)
		}
	}
	for _, sub := range g.subs {
		g.bus.Unsubscribe(sub)
	}
	g.bus.Close()
}
