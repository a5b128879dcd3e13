package core

import "github.com/Mohor35/collaborative-canvas/internal/canvas"

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoinRoom binds the connection to a room for its lifetime.
	CommandJoinRoom CommandKind = iota
	// CommandDrawing reports local stroke progress (start, move or end).
	CommandDrawing
	// CommandCursorMove reports the pointer position.
	CommandCursorMove
	// CommandUndo removes the sender's most recent stroke.
	CommandUndo
	// CommandRedo restores the sender's most recently undone stroke.
	CommandRedo
	// CommandClear wipes the room's picture.
	CommandClear
)

// Command represents an action requested by a client. Identity is never
// carried in the command payload; the hub stamps the sending client's ID.
type Command struct {
	Kind  CommandKind
	Room  string
	Event *canvas.DrawingEvent
	Point *canvas.Point
}
