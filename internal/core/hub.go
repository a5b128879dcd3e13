package core

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Mohor35/collaborative-canvas/internal/canvas"
)

// clientCommand pairs a command with the client that issued it, so the hub
// can stamp identity without trusting the payload.
type clientCommand struct {
	client *Client
	cmd    *Command
}

// RoomSummary is a read-only view of a room for the observation API.
type RoomSummary struct {
	ID      string `json:"id"`
	Members int    `json:"members"`
	Strokes int    `json:"strokes"`
}

// Hub owns the room registry and serializes every mutation on a single
// goroutine: registration, per-client commands, read-only queries, and the
// idle-room sweep all go through Run's select loop. Applying a command to
// room state and relaying the result is therefore atomic with respect to
// every other command, which is what keeps snapshots causally consistent
// with everything already broadcast.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	commands   chan clientCommand
	queries    chan func()
	done       chan struct{}

	rooms   map[string]*Room
	clients map[*Client]struct{}

	idleTTL time.Duration
	log     zerolog.Logger
}

// NewHub creates a hub. Rooms left empty longer than idleTTL are evicted;
// a non-positive TTL keeps empty rooms forever.
func NewHub(idleTTL time.Duration, logger *zerolog.Logger) *Hub {
	lg := zerolog.Nop()
	if logger != nil {
		lg = *logger
	}
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		commands:   make(chan clientCommand, 64),
		queries:    make(chan func()),
		done:       make(chan struct{}),
		rooms:      make(map[string]*Room),
		clients:    make(map[*Client]struct{}),
		idleTTL:    idleTTL,
		log:        lg,
	}
}

// RegisterClient hands a new connection to the hub loop.
func (h *Hub) RegisterClient(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

// UnregisterClient retires a connection. Safe to call more than once; the
// command pump drains any backlog before the departure is processed, so
// commands are never reordered against the disconnect.
func (h *Hub) UnregisterClient(c *Client) {
	c.closeCommands()
}

// Run processes hub traffic until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	var sweep <-chan time.Time
	if h.idleTTL > 0 {
		interval := h.idleTTL / 2
		if interval < 10*time.Millisecond {
			interval = 10 * time.Millisecond
		}
		if interval > 30*time.Second {
			interval = 30 * time.Second
		}
		t := time.NewTicker(interval)
		defer t.Stop()
		sweep = t.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
			go h.pump(c)
		case c := <-h.unregister:
			h.dropClient(c)
		case cc := <-h.commands:
			if _, ok := h.clients[cc.client]; ok {
				h.handleCommand(cc.client, cc.cmd)
			}
		case fn := <-h.queries:
			fn()
		case now := <-sweep:
			h.evictIdle(now)
		}
	}
}

// pump forwards one client's commands into the hub loop, preserving that
// client's FIFO order, then reports the disconnect.
func (h *Hub) pump(c *Client) {
	for cmd := range c.Commands {
		select {
		case h.commands <- clientCommand{client: c, cmd: cmd}:
		case <-h.done:
			return
		}
	}
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) handleCommand(c *Client, cmd *Command) {
	switch cmd.Kind {
	case CommandJoinRoom:
		h.handleJoin(c, cmd.Room)
	case CommandDrawing:
		h.handleDrawing(c, cmd.Event)
	case CommandCursorMove:
		h.handleCursor(c, cmd.Point)
	case CommandUndo:
		h.handleUndo(c)
	case CommandRedo:
		h.handleRedo(c)
	case CommandClear:
		h.handleClear(c)
	}
}

func (h *Hub) handleJoin(c *Client, roomID string) {
	if c.Room != "" {
		h.sendError(c, coreError(ErrCodeAlreadyJoined, "connection already joined a room"))
		return
	}
	if roomID == "" {
		h.sendError(c, coreError(ErrCodeBadRequest, "room is required"))
		return
	}

	room, ok := h.rooms[roomID]
	if !ok {
		room = NewRoom(roomID)
		h.rooms[roomID] = room
		h.log.Info().Str("room", roomID).Msg("room created")
	}
	room.emptySince = time.Time{}

	p := newParticipant(c.ID)
	room.AddMember(p)
	room.AddClient(c)
	c.Room = roomID

	h.send(c, &Event{Kind: EventWelcome, Room: roomID, Participant: p.clone()})
	h.send(c, &Event{Kind: EventSnapshot, Room: roomID, Strokes: room.Snapshot()})
	h.send(c, &Event{Kind: EventRoster, Room: roomID, Participants: room.Roster()})
	room.Broadcast(&Event{Kind: EventParticipantJoined, Room: roomID, Author: c.ID, Participant: p.clone()}, c)

	h.log.Info().Str("room", roomID).Str("client_id", c.ID).Int("members", room.MemberCount()).Msg("participant joined")
}

func (h *Hub) handleDrawing(c *Client, ev *canvas.DrawingEvent) {
	room, ok := h.roomOf(c)
	if !ok {
		h.sendError(c, coreError(ErrCodeNotInRoom, "join a room first"))
		return
	}

	stamped, err := room.ApplyDrawingEvent(c.ID, ev)
	if err != nil {
		// Lifecycle violation: logged and dropped, connection stays.
		h.log.Debug().Str("room", room.ID).Str("client_id", c.ID).Str("type", string(ev.Type)).Err(err).Msg("drawing event rejected")
		h.sendError(c, coreError(ErrCodeNoOpenStroke, err.Error()))
		return
	}

	room.Broadcast(&Event{
		Kind:     EventDrawing,
		Room:     room.ID,
		Author:   c.ID,
		StrokeID: stamped.StrokeID,
		Drawing:  stamped,
	}, c)
}

func (h *Hub) handleCursor(c *Client, pt *canvas.Point) {
	room, ok := h.roomOf(c)
	if !ok || pt == nil {
		return
	}
	room.SetCursor(c.ID, *pt)
	room.Broadcast(&Event{Kind: EventCursor, Room: room.ID, Author: c.ID, Point: pt}, c)
}

func (h *Hub) handleUndo(c *Client) {
	room, ok := h.roomOf(c)
	if !ok {
		h.sendError(c, coreError(ErrCodeNotInRoom, "join a room first"))
		return
	}
	s := room.ApplyUndo(c.ID)
	if s == nil {
		// Nothing eligible: a quiet no-op, not a failure.
		return
	}
	room.Broadcast(&Event{Kind: EventUndo, Room: room.ID, Author: c.ID, StrokeID: s.ID}, c)
}

func (h *Hub) handleRedo(c *Client) {
	room, ok := h.roomOf(c)
	if !ok {
		h.sendError(c, coreError(ErrCodeNotInRoom, "join a room first"))
		return
	}
	s := room.ApplyRedo(c.ID)
	if s == nil {
		return
	}
	room.Broadcast(&Event{Kind: EventRedo, Room: room.ID, Author: c.ID, StrokeID: s.ID, Stroke: s.Clone()}, c)
}

func (h *Hub) handleClear(c *Client) {
	room, ok := h.roomOf(c)
	if !ok {
		h.sendError(c, coreError(ErrCodeNotInRoom, "join a room first"))
		return
	}
	room.ApplyClear()
	room.Broadcast(&Event{Kind: EventClear, Room: room.ID, Author: c.ID}, c)
	h.log.Info().Str("room", room.ID).Str("client_id", c.ID).Msg("room cleared")
}

func (h *Hub) roomOf(c *Client) (*Room, bool) {
	if c.Room == "" {
		return nil, false
	}
	room, ok := h.rooms[c.Room]
	return room, ok
}

func (h *Hub) dropClient(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)

	if room, ok := h.roomOf(c); ok {
		room.RemoveClient(c)
		room.RemoveMember(c.ID)
		room.Broadcast(&Event{Kind: EventParticipantLeft, Room: room.ID, Author: c.ID}, c)
		if room.Empty() {
			room.emptySince = time.Now()
		}
		h.log.Info().Str("room", room.ID).Str("client_id", c.ID).Int("members", room.MemberCount()).Msg("participant left")
	}

	close(c.Events)
}

func (h *Hub) evictIdle(now time.Time) {
	for id, room := range h.rooms {
		if room.Empty() && !room.emptySince.IsZero() && now.Sub(room.emptySince) >= h.idleTTL {
			delete(h.rooms, id)
			h.log.Info().Str("room", id).Msg("idle room evicted")
		}
	}
}

// send delivers an event to one client without ever blocking the hub loop.
func (h *Hub) send(c *Client, event *Event) {
	select {
	case c.Events <- event:
	default:
		h.log.Warn().Str("client_id", c.ID).Msg("event dropped for slow consumer")
	}
}

func (h *Hub) sendError(c *Client, cerr *CoreError) {
	h.send(c, &Event{Kind: EventError, Error: cerr})
}

// inspect runs fn on the hub goroutine and waits for it, so the REST
// observation API reads room state without racing the command stream.
func (h *Hub) inspect(fn func()) bool {
	ran := make(chan struct{})
	select {
	case h.queries <- func() { fn(); close(ran) }:
	case <-h.done:
		return false
	}
	select {
	case <-ran:
		return true
	case <-h.done:
		return false
	}
}

// RoomSummaries lists the active rooms with member and stroke counts.
func (h *Hub) RoomSummaries() []RoomSummary {
	var out []RoomSummary
	h.inspect(func() {
		out = make([]RoomSummary, 0, len(h.rooms))
		for id, room := range h.rooms {
			out = append(out, RoomSummary{ID: id, Members: room.MemberCount(), Strokes: room.StrokeCount()})
		}
	})
	return out
}

// RoomRoster returns the member list of one room.
func (h *Hub) RoomRoster(roomID string) ([]*Participant, error) {
	var roster []*Participant
	err := ErrRoomNotFound
	h.inspect(func() {
		if room, ok := h.rooms[roomID]; ok {
			roster = room.Roster()
			err = nil
		}
	})
	return roster, err
}

// RoomSnapshot returns the ordered completed-stroke log of one room.
func (h *Hub) RoomSnapshot(roomID string) ([]*canvas.Stroke, error) {
	var strokes []*canvas.Stroke
	err := ErrRoomNotFound
	h.inspect(func() {
		if room, ok := h.rooms[roomID]; ok {
			strokes = room.Snapshot()
			err = nil
		}
	})
	return strokes, err
}
