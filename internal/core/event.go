package core

import "github.com/Mohor35/collaborative-canvas/internal/canvas"

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventDrawing relays a peer's stroke progress, author-stamped.
	EventDrawing EventKind = iota
	// EventCursor relays a peer's pointer position.
	EventCursor
	// EventUndo relays a peer's undo of their own stroke.
	EventUndo
	// EventRedo relays a peer's redo; carries the restored stroke so
	// members that joined after the undo can still reconstruct it.
	EventRedo
	// EventClear relays a wipe of the room's picture.
	EventClear
	// EventWelcome hands a joining connection its server-assigned identity.
	EventWelcome
	// EventSnapshot delivers the full ordered stroke history to a joiner.
	EventSnapshot
	// EventRoster delivers the full member list to a joiner.
	EventRoster
	// EventParticipantJoined announces a new member to the rest of the room.
	EventParticipantJoined
	// EventParticipantLeft announces a departure.
	EventParticipantLeft
	// EventError notifies the client about a domain error.
	EventError
)

// Event is sent to clients to describe what happened in the room. Only the
// fields relevant to the kind are populated.
type Event struct {
	Kind         EventKind
	Room         string
	Author       string
	StrokeID     string
	Drawing      *canvas.DrawingEvent
	Point        *canvas.Point
	Stroke       *canvas.Stroke
	Strokes      []*canvas.Stroke
	Participant  *Participant
	Participants []*Participant
	Error        *CoreError
}
