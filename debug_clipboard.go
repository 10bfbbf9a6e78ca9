package main

import (
	"log"

	"github.com/milk9111/skyclimb/ecs"
	"github.com/milk9111/skyclimb/ecs/component"
	"golang.design/x/clipboard"
)

// debugClipboard initialises the system clipboard on first use. Init fails
// on headless machines; the failure is reported once.
type debugClipboard struct {
	tried bool
	ok    bool
}

func (c *debugClipboard) write(text string) bool {
	if !c.tried {
		c.tried = true
		if err := clipboard.Init(); err != nil {
			log.Printf("clipboard: %v", err)
		} else {
			c.ok = true
		}
	}
	if !c.ok {
		return false
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return true
}

// copySnapshot puts the player controller's state dump on the clipboard.
func (g *Game) copySnapshot() {
	player, ok := ecs.First(g.world, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	ch, ok := ecs.Get(g.world, player, component.CharacterComponent.Kind())
	if !ok || ch.Controller == nil {
		return
	}
	if g.clipboard.write(ch.Controller.Snapshot().String()) {
		log.Printf("clipboard: copied controller state")
	}
}
