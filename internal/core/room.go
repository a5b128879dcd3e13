package core

import (
	"time"

	"github.com/Mohor35/collaborative-canvas/internal/canvas"
)

// undoneEntry remembers where an undone stroke sat so redo can restore it
// at its original relative position.
type undoneEntry struct {
	stroke *canvas.Stroke
	index  int
}

// Room is the single source of truth for one room's picture: the ordered
// completed-stroke log, the undo stack, open strokes keyed by author, and
// the membership table. All methods are called from the hub goroutine only;
// that serialization is what makes the snapshot-order invariant hold.
type Room struct {
	ID string

	strokes []*canvas.Stroke
	undone  []undoneEntry
	pending map[string]*canvas.Stroke

	members map[string]*Participant
	order   []string

	clients map[*Client]struct{}

	// emptySince is set when the last member leaves; the hub evicts the
	// room once it has been empty past the idle TTL.
	emptySince time.Time
}

// NewRoom constructs an empty room.
func NewRoom(id string) *Room {
	return &Room{
		ID:      id,
		pending: make(map[string]*canvas.Stroke),
		members: make(map[string]*Participant),
		clients: make(map[*Client]struct{}),
	}
}

// ApplyDrawingEvent advances the stroke lifecycle for the given author and
// returns the author- and stroke-id-stamped event to relay. A start while a
// stroke is already open force-closes the prior stroke first; pointer-up
// loss is common enough that rejecting would strand the author. A move or
// end with no open stroke returns ErrNoOpenStroke and mutates nothing.
func (r *Room) ApplyDrawingEvent(authorID string, ev *canvas.DrawingEvent) (*canvas.DrawingEvent, error) {
	stamped := ev.Clone()
	stamped.AuthorID = authorID

	switch ev.Type {
	case canvas.EventStart:
		if _, open := r.pending[authorID]; open {
			r.finalize(authorID)
		}
		s := &canvas.Stroke{
			ID:        canvas.NewStrokeID(),
			Points:    []canvas.Point{ev.Points[0]},
			Color:     ev.Color,
			BrushSize: ev.BrushSize,
			Tool:      ev.Tool,
			AuthorID:  authorID,
			CreatedAt: time.Now(),
		}
		r.pending[authorID] = s
		stamped.StrokeID = s.ID

	case canvas.EventMove:
		s, open := r.pending[authorID]
		if !open {
			return nil, ErrNoOpenStroke
		}
		s.Points = append(s.Points, ev.Points[0])
		stamped.StrokeID = s.ID

	case canvas.EventEnd:
		s, open := r.pending[authorID]
		if !open {
			return nil, ErrNoOpenStroke
		}
		stamped.StrokeID = s.ID
		r.finalize(authorID)
	}

	return stamped, nil
}

// finalize moves the author's open stroke into the completed log and clears
// that author's redo availability: a new stroke invalidates pending redo.
func (r *Room) finalize(authorID string) {
	s := r.pending[authorID]
	delete(r.pending, authorID)
	r.strokes = append(r.strokes, s)
	r.dropUndone(authorID)
}

func (r *Room) dropUndone(authorID string) {
	kept := r.undone[:0]
	for _, e := range r.undone {
		if e.stroke.AuthorID != authorID {
			kept = append(kept, e)
		}
	}
	r.undone = kept
}

// ApplyUndo removes the author's most recent completed stroke, never
// another participant's, and parks it for redo. Returns nil when the
// author has nothing to undo; that is a no-op, not an error.
func (r *Room) ApplyUndo(authorID string) *canvas.Stroke {
	for i := len(r.strokes) - 1; i >= 0; i-- {
		if r.strokes[i].AuthorID != authorID {
			continue
		}
		s := r.strokes[i]
		r.strokes = append(r.strokes[:i], r.strokes[i+1:]...)
		r.undone = append(r.undone, undoneEntry{stroke: s, index: i})
		return s
	}
	return nil
}

// ApplyRedo restores the author's most recently undone stroke at its
// original relative position. Returns nil when nothing is eligible.
func (r *Room) ApplyRedo(authorID string) *canvas.Stroke {
	for i := len(r.undone) - 1; i >= 0; i-- {
		if r.undone[i].stroke.AuthorID != authorID {
			continue
		}
		e := r.undone[i]
		r.undone = append(r.undone[:i], r.undone[i+1:]...)

		at := e.index
		if at > len(r.strokes) {
			at = len(r.strokes)
		}
		r.strokes = append(r.strokes, nil)
		copy(r.strokes[at+1:], r.strokes[at:])
		r.strokes[at] = e.stroke
		return e.stroke
	}
	return nil
}

// ApplyClear unconditionally empties the completed log and the undo stack.
// Open strokes stay open; they land in the fresh picture when they end.
func (r *Room) ApplyClear() {
	r.strokes = nil
	r.undone = nil
}

// Snapshot returns a deep copy of the ordered completed-stroke log for
// transmission to a newly joined participant.
func (r *Room) Snapshot() []*canvas.Stroke {
	out := make([]*canvas.Stroke, len(r.strokes))
	for i, s := range r.strokes {
		out[i] = s.Clone()
	}
	return out
}

// StrokeCount reports the size of the completed log.
func (r *Room) StrokeCount() int {
	return len(r.strokes)
}

// AddMember registers a participant in join order.
func (r *Room) AddMember(p *Participant) {
	r.members[p.ID] = p
	r.order = append(r.order, p.ID)
}

// RemoveMember drops a participant and discards their open stroke; a
// stroke is only durable once its end event lands.
func (r *Room) RemoveMember(id string) *Participant {
	p, ok := r.members[id]
	if !ok {
		return nil
	}
	delete(r.members, id)
	delete(r.pending, id)
	for i, mid := range r.order {
		if mid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return p
}

// SetCursor records the participant's last known pointer position.
func (r *Room) SetCursor(id string, pt canvas.Point) bool {
	p, ok := r.members[id]
	if !ok {
		return false
	}
	p.Cursor = &pt
	return true
}

// Roster returns the members in join order, deep-copied.
func (r *Room) Roster() []*Participant {
	out := make([]*Participant, 0, len(r.order))
	for _, id := range r.order {
		if p, ok := r.members[id]; ok {
			out = append(out, p.clone())
		}
	}
	return out
}

// MemberCount reports the number of connected participants.
func (r *Room) MemberCount() int {
	return len(r.members)
}

// AddClient inserts a client into the fan-out set. Returns true if newly added.
func (r *Room) AddClient(c *Client) bool {
	if _, exists := r.clients[c]; exists {
		return false
	}
	r.clients[c] = struct{}{}
	return true
}

// RemoveClient deletes a client from the fan-out set. Returns true if removed.
func (r *Room) RemoveClient(c *Client) bool {
	if _, exists := r.clients[c]; !exists {
		return false
	}
	delete(r.clients, c)
	return true
}

// Broadcast sends an event to every client in the room except the sender,
// which already has the optimistic local result. Slow consumers are
// dropped rather than awaited so one stalled connection cannot hold up
// the room.
func (r *Room) Broadcast(event *Event, except *Client) {
	for client := range r.clients {
		if client == except {
			continue
		}
		select {
		case client.Events <- event:
		default:
			// Drop if slow consumer.
		}
	}
}

// Empty returns true if no clients are in the room.
func (r *Room) Empty() bool {
	return len(r.clients) == 0
}
