package session

import (
	"encoding/json"
	"testing"

	"github.com/Mohor35/collaborative-canvas/internal/canvas"
	"github.com/Mohor35/collaborative-canvas/internal/proto"
)

// recorder captures renders and sends in one ordered log so tests can
// assert that local rendering happens before anything leaves the process.
type recorder struct {
	log  []string
	sent []proto.Inbound
	err  error
}

func (r *recorder) RenderSegment(stroke *canvas.Stroke, newPoint canvas.Point) {
	r.log = append(r.log, "render-segment")
}

func (r *recorder) RenderFull(strokes []*canvas.Stroke) {
	r.log = append(r.log, "render-full")
}

func (r *recorder) Send(msg proto.Inbound) error {
	r.log = append(r.log, "send:"+msg.Type)
	r.sent = append(r.sent, msg)
	return r.err
}

func (r *recorder) sentDrawingTypes(t *testing.T) []canvas.EventType {
	t.Helper()

	var out []canvas.EventType
	for _, msg := range r.sent {
		if msg.Type != proto.InboundTypeDrawing {
			continue
		}
		var ev canvas.DrawingEvent
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			t.Fatalf("unmarshal sent drawing event: %v", err)
		}
		out = append(out, ev.Type)
	}
	return out
}

func newTestSession() (*Session, *Picture, *recorder) {
	rec := &recorder{}
	pic := NewPicture()
	return NewSession(pic, rec, rec, nil), pic, rec
}

func drawSquare(s *Session) {
	s.PointerDown(canvas.Point{X: 0, Y: 0})
	s.PointerMove(canvas.Point{X: 10, Y: 0})
	s.PointerMove(canvas.Point{X: 10, Y: 10})
	s.PointerUp()
}

func TestPointerLifecycleEmitsEvents(t *testing.T) {
	s, pic, rec := newTestSession()

	drawSquare(s)

	types := rec.sentDrawingTypes(t)
	want := []canvas.EventType{canvas.EventStart, canvas.EventMove, canvas.EventMove, canvas.EventEnd}
	if len(types) != len(want) {
		t.Fatalf("expected %d drawing events, got %v", len(want), types)
	}
	for i, w := range want {
		if types[i] != w {
			t.Fatalf("event %d: expected %s, got %s", i, w, types[i])
		}
	}

	if pic.Len() != 1 {
		t.Fatalf("completed stroke not in picture: %d", pic.Len())
	}
	if got := pic.Strokes()[0]; len(got.Points) != 3 {
		t.Fatalf("points out of order: %+v", got.Points)
	}
}

func TestRenderPrecedesSend(t *testing.T) {
	s, _, rec := newTestSession()

	s.PointerDown(canvas.Point{X: 0, Y: 0})
	s.PointerMove(canvas.Point{X: 5, Y: 5})
	s.PointerUp()

	// Every render-segment must come before the send of the event that
	// carries the same sample; in the combined log that means no
	// drawing-event send ever precedes its render.
	sends := 0
	renders := 0
	for _, entry := range rec.log {
		switch entry {
		case "render-segment":
			renders++
		case "send:" + proto.InboundTypeDrawing:
			sends++
			if sends > renders {
				t.Fatalf("event sent before local render: %v", rec.log)
			}
		}
	}
	if renders != 2 {
		t.Fatalf("expected 2 rendered segments, got %d", renders)
	}
}

func TestPointerMoveEmitsCursorAlways(t *testing.T) {
	s, _, rec := newTestSession()

	s.PointerMove(canvas.Point{X: 1, Y: 1})
	if len(rec.sent) != 1 || rec.sent[0].Type != proto.InboundTypeCursor {
		t.Fatalf("expected lone cursor-move, got %+v", rec.sent)
	}
	if types := rec.sentDrawingTypes(t); len(types) != 0 {
		t.Fatalf("idle pointer move emitted drawing events: %v", types)
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	s, pic, rec := newTestSession()

	drawSquare(s)
	s.PointerDown(canvas.Point{X: 50, Y: 50})
	s.PointerUp()

	second := pic.Strokes()[1]

	undone := s.Undo()
	if undone == nil || undone.ID != second.ID {
		t.Fatalf("undo returned wrong stroke: %+v", undone)
	}
	if pic.Len() != 1 {
		t.Fatalf("undone stroke still visible: %d", pic.Len())
	}

	redone := s.Redo()
	if redone == nil || redone.ID != second.ID {
		t.Fatalf("redo returned wrong stroke: %+v", redone)
	}
	if pic.Len() != 2 {
		t.Fatalf("redone stroke not restored: %d", pic.Len())
	}

	var stackMsgs []string
	for _, msg := range rec.sent {
		if msg.Type == proto.InboundTypeUndo || msg.Type == proto.InboundTypeRedo {
			stackMsgs = append(stackMsgs, msg.Type)
		}
	}
	if len(stackMsgs) != 2 || stackMsgs[0] != proto.InboundTypeUndo || stackMsgs[1] != proto.InboundTypeRedo {
		t.Fatalf("stack operations not replicated: %v", stackMsgs)
	}
}

func TestUndoOnEmptyIsQuietNoop(t *testing.T) {
	s, _, rec := newTestSession()

	if s.Undo() != nil {
		t.Fatal("undo with empty history returned a stroke")
	}
	if s.Redo() != nil {
		t.Fatal("redo with empty history returned a stroke")
	}
	if len(rec.sent) != 0 {
		t.Fatalf("no-op emitted messages: %+v", rec.sent)
	}
}

func TestNewStrokeClearsRedo(t *testing.T) {
	s, _, _ := newTestSession()

	drawSquare(s)
	if s.Undo() == nil {
		t.Fatal("undo failed")
	}

	drawSquare(s)
	if s.Redo() != nil {
		t.Fatal("redo survived a new stroke")
	}
}

func TestSecondPointerDownForceClosesStroke(t *testing.T) {
	s, pic, rec := newTestSession()

	s.PointerDown(canvas.Point{X: 0, Y: 0})
	s.PointerDown(canvas.Point{X: 9, Y: 9})
	s.PointerUp()

	if pic.Len() != 2 {
		t.Fatalf("expected both strokes completed, got %d", pic.Len())
	}
	types := rec.sentDrawingTypes(t)
	want := []canvas.EventType{canvas.EventStart, canvas.EventEnd, canvas.EventStart, canvas.EventEnd}
	if len(types) != len(want) {
		t.Fatalf("unexpected event sequence: %v", types)
	}
	for i, w := range want {
		if types[i] != w {
			t.Fatalf("event %d: expected %s, got %s", i, w, types[i])
		}
	}
}

func TestClearWipesHistoryAndReplicates(t *testing.T) {
	s, pic, rec := newTestSession()

	drawSquare(s)
	s.Clear()

	if pic.Len() != 0 {
		t.Fatalf("picture survived clear: %d", pic.Len())
	}
	if s.Undo() != nil {
		t.Fatal("undo history survived clear")
	}
	last := rec.sent[len(rec.sent)-1]
	if last.Type != proto.InboundTypeClear {
		t.Fatalf("clear not replicated, last message: %+v", last)
	}
}
