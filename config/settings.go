// Package config holds the runtime settings chosen on the command line.
package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/milk9111/skyclimb/common"
)

// Settings are read from flags first. Any SKYCLIMB_* variable that is set
// wins over its flag.
type Settings struct {
	Debug       bool   `env:"DEBUG"`
	Level       string `env:"LEVEL"`
	BaseMonitor bool   `env:"BASE_MONITOR"`
	// TPS only paces the loop; each tick still steps common.FixedDelta.
	TPS int `env:"TPS"`
	// HotReload is implied by Debug.
	HotReload bool `env:"HOT_RELOAD"`
	// Seed fixes the spawner's random stream. Zero picks one from the clock.
	Seed int64 `env:"SEED"`
}

const envPrefix = "SKYCLIMB_"

func Defaults() Settings {
	return Settings{
		Level: "world.yaml",
		TPS:   common.TPS,
	}
}

// Parse reads args into a copy of the defaults, then applies environment
// overrides.
func Parse(fs *flag.FlagSet, args []string) (Settings, error) {
	s := Defaults()
	fs.BoolVar(&s.Debug, "debug", s.Debug, "draw colliders, probes and the controller state")
	fs.StringVar(&s.Level, "level", s.Level, "world prefab in prefabs/")
	fs.BoolVar(&s.BaseMonitor, "m", s.BaseMonitor, "use base monitor instead of primary (for multi-monitor setups)")
	fs.IntVar(&s.TPS, "tps", s.TPS, "simulation ticks per second")
	fs.BoolVar(&s.HotReload, "hot-reload", s.HotReload, "rebuild the world when a prefab changes on disk")
	fs.Int64Var(&s.Seed, "seed", s.Seed, "spawner random seed")
	if err := fs.Parse(args); err != nil {
		return Settings{}, err
	}

	if err := env.ParseWithOptions(&s, env.Options{Prefix: envPrefix}); err != nil {
		return Settings{}, fmt.Errorf("config: parse env: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) Validate() error {
	if s.Level == "" {
		return fmt.Errorf("config: level must be set")
	}
	if s.TPS <= 0 {
		return fmt.Errorf("config: tps must be positive, got %d", s.TPS)
	}
	return nil
}
