package session

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/Mohor35/collaborative-canvas/internal/canvas"
	"github.com/Mohor35/collaborative-canvas/internal/proto"
)

// Session turns raw pointer input into the start/move/end event lifecycle,
// holds the local user's undo/redo history, and renders every sample
// locally before the event is handed to the transport, so drawing never
// waits on a network round-trip.
type Session struct {
	picture   *Picture
	renderer  Renderer
	transport Transport
	log       zerolog.Logger

	color     string
	brushSize float64
	tool      canvas.Tool

	current *canvas.Stroke
	history []*canvas.Stroke
	redo    []*canvas.Stroke
}

// NewSession builds a draw session over a shared picture. A nil logger is
// replaced with a no-op one.
func NewSession(picture *Picture, renderer Renderer, transport Transport, logger *zerolog.Logger) *Session {
	lg := zerolog.Nop()
	if logger != nil {
		lg = *logger
	}
	return &Session{
		picture:   picture,
		renderer:  renderer,
		transport: transport,
		log:       lg,
		color:     "#000000",
		brushSize: 5,
		tool:      canvas.ToolBrush,
	}
}

// SetColor picks the color for subsequent strokes.
func (s *Session) SetColor(color string) { s.color = color }

// SetBrushSize picks the brush size for subsequent strokes.
func (s *Session) SetBrushSize(size float64) { s.brushSize = size }

// SetTool switches between brush and eraser.
func (s *Session) SetTool(tool canvas.Tool) { s.tool = tool }

// Drawing reports whether a stroke is currently open.
func (s *Session) Drawing() bool { return s.current != nil }

// PointerDown opens a new stroke at pt. An already-open stroke is
// force-closed first; losing a pointer-up is common with touch input.
func (s *Session) PointerDown(pt canvas.Point) {
	if s.current != nil {
		s.PointerUp()
	}
	s.current = &canvas.Stroke{
		ID:        canvas.NewStrokeID(),
		Points:    []canvas.Point{pt},
		Color:     s.color,
		BrushSize: s.brushSize,
		Tool:      s.tool,
		CreatedAt: time.Now(),
	}
	s.renderer.RenderSegment(s.current, pt)
	s.sendDrawing(canvas.EventStart, &pt)
}

// PointerMove reports the pointer position and, while a stroke is open,
// extends it by one point. The segment is rendered before the move event
// leaves the process.
func (s *Session) PointerMove(pt canvas.Point) {
	s.sendCursor(pt)
	if s.current == nil {
		return
	}
	s.current.Points = append(s.current.Points, pt)
	s.renderer.RenderSegment(s.current, pt)
	s.sendDrawing(canvas.EventMove, &pt)
}

// PointerUp finalizes the open stroke: it joins the picture and the undo
// history, and any pending redo is invalidated.
func (s *Session) PointerUp() {
	if s.current == nil {
		return
	}
	done := s.current
	s.current = nil
	s.picture.Append(done)
	s.history = append(s.history, done)
	s.redo = nil
	s.sendDrawing(canvas.EventEnd, nil)
}

// Undo removes the most recent locally-completed stroke from the picture,
// parks it for redo, and asks the server to replicate the change. Returns
// nil when there is nothing to undo; that is a quiet no-op.
func (s *Session) Undo() *canvas.Stroke {
	if len(s.history) == 0 {
		return nil
	}
	last := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.redo = append(s.redo, last)
	s.picture.Remove(last.ID)
	s.renderer.RenderFull(s.picture.Strokes())
	s.send(proto.Inbound{Type: proto.InboundTypeUndo})
	return last
}

// Redo is the mirror of Undo.
func (s *Session) Redo() *canvas.Stroke {
	if len(s.redo) == 0 {
		return nil
	}
	last := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.history = append(s.history, last)
	s.picture.Append(last)
	s.renderer.RenderFull(s.picture.Strokes())
	s.send(proto.Inbound{Type: proto.InboundTypeRedo})
	return last
}

// Clear wipes the picture for every participant.
func (s *Session) Clear() {
	s.picture.Clear()
	s.history = nil
	s.redo = nil
	s.renderer.RenderFull(s.picture.Strokes())
	s.send(proto.Inbound{Type: proto.InboundTypeClear})
}

// dropHistory invalidates the local undo/redo stacks after a remote clear;
// the strokes they reference no longer exist anywhere.
func (s *Session) dropHistory() {
	s.history = nil
	s.redo = nil
}

func (s *Session) sendDrawing(t canvas.EventType, pt *canvas.Point) {
	ev := canvas.DrawingEvent{
		Type:      t,
		Color:     s.color,
		BrushSize: s.brushSize,
		Tool:      s.tool,
		Timestamp: time.Now().UnixMilli(),
	}
	if pt != nil {
		ev.Points = []canvas.Point{*pt}
	} else {
		ev.Points = []canvas.Point{}
	}
	data, err := json.Marshal(ev)
	if err != nil {
		s.log.Error().Err(err).Msg("marshal drawing event")
		return
	}
	s.send(proto.Inbound{Type: proto.InboundTypeDrawing, Data: data})
}

func (s *Session) sendCursor(pt canvas.Point) {
	data, err := json.Marshal(proto.CursorData{X: pt.X, Y: pt.Y})
	if err != nil {
		s.log.Error().Err(err).Msg("marshal cursor")
		return
	}
	s.send(proto.Inbound{Type: proto.InboundTypeCursor, Data: data})
}

// send is best-effort: the transport owns reconnection, and local drawing
// must never stall on it.
func (s *Session) send(msg proto.Inbound) {
	if err := s.transport.Send(msg); err != nil {
		s.log.Warn().Str("type", msg.Type).Err(err).Msg("send failed")
	}
}
