package session

import (
	"github.com/Mohor35/collaborative-canvas/internal/canvas"
	"github.com/Mohor35/collaborative-canvas/internal/proto"
)

// Renderer turns stroke geometry into pixels. Implementations live outside
// this package; the session only promises to call RenderSegment for every
// incremental point before the matching event leaves the process.
type Renderer interface {
	// RenderSegment draws the segment ending at newPoint for an open stroke.
	RenderSegment(stroke *canvas.Stroke, newPoint canvas.Point)
	// RenderFull redraws the whole picture from scratch.
	RenderFull(strokes []*canvas.Stroke)
}

// Transport delivers protocol messages to the server. It owns connection
// setup, reconnection and backoff; sends here are best-effort and never
// block drawing.
type Transport interface {
	Send(msg proto.Inbound) error
}
