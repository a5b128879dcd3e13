package core

import (
	"fmt"
	"math/rand"

	"github.com/Mohor35/collaborative-canvas/internal/canvas"
)

// Participant is a room member as shown to other members. Created on join,
// destroyed on disconnect; Cursor tracks the last known pointer position.
type Participant struct {
	ID     string        `json:"id"`
	Color  string        `json:"color"`
	Name   string        `json:"name"`
	Cursor *canvas.Point `json:"cursor,omitempty"`
}

// displayPalette holds the colors assigned round-robin-by-chance to joiners.
var displayPalette = []string{
	"#ff6b6b", "#4ecdc4", "#45b7d1", "#96ceb4", "#feca57", "#ff9ff3",
}

// newParticipant builds a member record with a random display identity.
func newParticipant(id string) *Participant {
	return &Participant{
		ID:    id,
		Color: displayPalette[rand.Intn(len(displayPalette))],
		Name:  fmt.Sprintf("User%d", rand.Intn(1000)),
	}
}

func (p *Participant) clone() *Participant {
	cp := *p
	if p.Cursor != nil {
		c := *p.Cursor
		cp.Cursor = &c
	}
	return &cp
}
