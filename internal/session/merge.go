package session

import (
	"github.com/rs/zerolog"

	"github.com/Mohor35/collaborative-canvas/internal/canvas"
)

// Merge applies events received from the server into the local picture
// without disturbing the session's in-progress stroke. It never re-emits
// anything: the action already happened server-side, and echoing it back
// would loop forever.
type Merge struct {
	picture  *Picture
	renderer Renderer
	session  *Session
	log      zerolog.Logger

	selfID string
	// open tracks remote in-progress strokes keyed by author.
	open map[string]*canvas.Stroke
	// undone retains remote strokes removed by undo so a later redo can
	// restore them even when the event omits the stroke body.
	undone map[string]*canvas.Stroke
}

// NewMerge builds a merge layer over the shared picture.
func NewMerge(picture *Picture, renderer Renderer, logger *zerolog.Logger) *Merge {
	lg := zerolog.Nop()
	if logger != nil {
		lg = *logger
	}
	return &Merge{
		picture:  picture,
		renderer: renderer,
		log:      lg,
		open:     make(map[string]*canvas.Stroke),
		undone:   make(map[string]*canvas.Stroke),
	}
}

// SetSelf records the local participant id from the welcome message, so
// same-author echoes can be dropped. The server never relays to the
// sender, but the client stays defensive against transport anomalies.
func (m *Merge) SetSelf(id string) {
	m.selfID = id
}

// BindSession lets a remote clear invalidate the local undo/redo stacks.
func (m *Merge) BindSession(s *Session) {
	m.session = s
}

// ApplySnapshot replaces the picture with the server's stroke history.
func (m *Merge) ApplySnapshot(strokes []*canvas.Stroke) {
	m.picture.Replace(strokes)
	m.renderer.RenderFull(m.picture.Strokes())
}

// ApplyDrawing tracks a peer's stroke progress and renders it
// incrementally. Events stamped with the local participant's own id are
// dropped.
func (m *Merge) ApplyDrawing(ev *canvas.DrawingEvent) {
	if m.isSelf(ev.AuthorID) {
		return
	}

	switch ev.Type {
	case canvas.EventStart:
		if prior, ok := m.open[ev.AuthorID]; ok {
			// The peer's end event was lost; mirror the server's
			// force-close so the pictures stay aligned.
			m.picture.Append(prior)
		}
		s := &canvas.Stroke{
			ID:        ev.StrokeID,
			Points:    []canvas.Point{ev.Points[0]},
			Color:     ev.Color,
			BrushSize: ev.BrushSize,
			Tool:      ev.Tool,
			AuthorID:  ev.AuthorID,
		}
		m.open[ev.AuthorID] = s
		m.renderer.RenderSegment(s, ev.Points[0])

	case canvas.EventMove:
		s, ok := m.open[ev.AuthorID]
		if !ok {
			// Stroke opened before we joined; the final picture
			// arrives with the next snapshot.
			m.log.Debug().Str("author", ev.AuthorID).Msg("move for unknown stroke ignored")
			return
		}
		s.Points = append(s.Points, ev.Points[0])
		m.renderer.RenderSegment(s, ev.Points[0])

	case canvas.EventEnd:
		s, ok := m.open[ev.AuthorID]
		if !ok {
			m.log.Debug().Str("author", ev.AuthorID).Msg("end for unknown stroke ignored")
			return
		}
		delete(m.open, ev.AuthorID)
		m.picture.Append(s)
	}
}

// ApplyUndo removes the named stroke from the picture.
func (m *Merge) ApplyUndo(authorID, strokeID string) {
	if m.isSelf(authorID) {
		return
	}
	if s := m.picture.Remove(strokeID); s != nil {
		m.undone[strokeID] = s
		m.renderer.RenderFull(m.picture.Strokes())
	}
}

// ApplyRedo restores the named stroke. The event's stroke body wins when
// present; otherwise the locally retained copy is used.
func (m *Merge) ApplyRedo(authorID, strokeID string, stroke *canvas.Stroke) {
	if m.isSelf(authorID) {
		return
	}
	s := stroke
	if s == nil {
		s = m.undone[strokeID]
	}
	if s == nil {
		m.log.Debug().Str("stroke_id", strokeID).Msg("redo for unknown stroke ignored")
		return
	}
	delete(m.undone, strokeID)
	m.picture.Append(s)
	m.renderer.RenderFull(m.picture.Strokes())
}

// ApplyClear wipes the picture. Remote in-progress strokes stay open, as
// they do on the server, and the session's undo history is invalidated.
func (m *Merge) ApplyClear(authorID string) {
	if m.isSelf(authorID) {
		return
	}
	m.picture.Clear()
	m.undone = make(map[string]*canvas.Stroke)
	if m.session != nil {
		m.session.dropHistory()
	}
	m.renderer.RenderFull(m.picture.Strokes())
}

// ApplyParticipantLeft discards the departed peer's unterminated stroke;
// the server never finalizes it either.
func (m *Merge) ApplyParticipantLeft(id string) {
	if _, ok := m.open[id]; !ok {
		return
	}
	delete(m.open, id)
	m.renderer.RenderFull(m.picture.Strokes())
}

func (m *Merge) isSelf(authorID string) bool {
	return m.selfID != "" && authorID == m.selfID
}
