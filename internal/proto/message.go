package proto

import (
	"encoding/json"

	"github.com/Mohor35/collaborative-canvas/internal/canvas"
)

// Inbound is the envelope for messages coming from the client. Every
// client-originated message is implicitly scoped to the room the
// connection joined; identity is never part of the payload.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

const (
	ProtocolVersion = 1

	InboundTypeJoin    = "join"
	InboundTypeDrawing = "drawing-event"
	InboundTypeCursor  = "cursor-move"
	InboundTypeUndo    = "undo"
	InboundTypeRedo    = "redo"
	InboundTypeClear   = "clear"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"
)

// Server→client event names carried in Outbound.Event.
const (
	EventDrawing           = "drawing-event"
	EventCursor            = "cursor-move"
	EventUndo              = "undo-event"
	EventRedo              = "redo-event"
	EventClear             = "clear-event"
	EventWelcome           = "welcome"
	EventStateSnapshot     = "state-snapshot"
	EventRoster            = "roster"
	EventParticipantJoined = "participant-joined"
	EventParticipantLeft   = "participant-left"
)

// JoinData binds the connection to a room.
type JoinData struct {
	Room string `json:"roomId"`
}

// CursorData reports the local pointer position.
type CursorData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// CursorEvent relays a peer's pointer position.
type CursorEvent struct {
	AuthorID string       `json:"authorId"`
	Point    canvas.Point `json:"point"`
}

// StackEvent relays a peer's undo or redo. Redo additionally carries the
// restored stroke so participants that joined after the undo can
// reconstruct it.
type StackEvent struct {
	AuthorID string         `json:"authorId"`
	StrokeID string         `json:"strokeId"`
	Stroke   *canvas.Stroke `json:"stroke,omitempty"`
}

// ClearEvent relays a wipe of the room's picture.
type ClearEvent struct {
	AuthorID string `json:"authorId"`
}

// ParticipantData describes a room member.
type ParticipantData struct {
	ID     string        `json:"id"`
	Color  string        `json:"color"`
	Name   string        `json:"name"`
	Cursor *canvas.Point `json:"cursor,omitempty"`
}

// ParticipantLeft announces a departure.
type ParticipantLeft struct {
	ID string `json:"id"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
