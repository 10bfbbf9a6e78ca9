// Package assets embeds the sound effects and builds audio players for them.
package assets

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

//go:embed *.wav
var assetsFS embed.FS

const SampleRate = 44100

// Sound effect names, matching the embedded file stems.
const (
	SoundJump  = "jump"
	SoundDash  = "dash"
	SoundHurt  = "hurt"
	SoundDeath = "death"
)

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(name string) ([]byte, error) {
	return assetsFS.ReadFile(cleanAssetPath(name))
}

// Names lists the embedded sound effects.
func Names() []string {
	entries, err := assetsFS.ReadDir(".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".wav"))
	}
	return names
}

// LoadAudioPlayer decodes an embedded wav into a player on ctx.
func LoadAudioPlayer(ctx *audio.Context, name string) (*audio.Player, error) {
	if ctx == nil {
		return nil, fmt.Errorf("assets: audio context is nil")
	}
	b, err := LoadFile(name)
	if err != nil {
		return nil, err
	}
	stream, err := wav.DecodeWithSampleRate(ctx.SampleRate(), bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode wav %q: %w", name, err)
	}
	return ctx.NewPlayer(stream)
}

func cleanAssetPath(name string) string {
	s := strings.TrimPrefix(path.Clean(strings.ReplaceAll(name, "\\", "/")), "assets/")
	if path.Ext(s) == "" {
		s += ".wav"
	}
	return s
}
