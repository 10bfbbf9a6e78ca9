package assets

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SFX plays short one-shot effects. Each effect has one player; triggering
// an effect that is still playing restarts it.
type SFX struct {
	players map[string]*audio.Player
	Volume  float64
	Muted   bool
}

func NewSFX(ctx *audio.Context, names ...string) (*SFX, error) {
	s := &SFX{players: make(map[string]*audio.Player, len(names)), Volume: 0.6}
	for _, name := range names {
		p, err := LoadAudioPlayer(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("sfx %q: %w", name, err)
		}
		s.players[name] = p
	}
	return s, nil
}

func (s *SFX) Play(name string) {
	if s == nil || s.Muted {
		return
	}
	p, ok := s.players[name]
	if !ok {
		log.Printf("sfx: unknown effect %q", name)
		return
	}
	p.SetVolume(s.Volume)
	if err := p.Rewind(); err != nil {
		log.Printf("sfx: rewind %q: %v", name, err)
		return
	}
	p.Play()
}
