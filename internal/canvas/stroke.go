package canvas

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Point is a single canvas coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Tool selects how a stroke's points are rendered.
type Tool string

const (
	ToolBrush  Tool = "brush"
	ToolEraser Tool = "eraser"
)

// Valid reports whether t is a known tool.
func (t Tool) Valid() bool {
	return t == ToolBrush || t == ToolEraser
}

// EventType discriminates the stroke lifecycle phases.
type EventType string

const (
	// EventStart opens a new stroke and carries its first point.
	EventStart EventType = "start"
	// EventMove appends exactly one incremental point to the open stroke.
	EventMove EventType = "move"
	// EventEnd finalizes the open stroke and carries no points.
	EventEnd EventType = "end"
)

// Stroke is one continuous pen-down-to-pen-up drawing action.
// Once finalized by an end event it is immutable; only a whole-stroke
// undo or redo may remove or restore it.
type Stroke struct {
	ID        string    `json:"id"`
	Points    []Point   `json:"points"`
	Color     string    `json:"color"`
	BrushSize float64   `json:"brushSize"`
	Tool      Tool      `json:"tool"`
	AuthorID  string    `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Clone returns a deep copy safe to hand across goroutine boundaries.
func (s *Stroke) Clone() *Stroke {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Points = make([]Point, len(s.Points))
	copy(cp.Points, s.Points)
	return &cp
}

// NewStrokeID returns a fresh stroke identifier.
func NewStrokeID() string {
	return uuid.NewString()
}

// DrawingEvent is one increment of stroke progress. The author and stroke
// identifiers are stamped by the server before relay; clients never assert
// their own identity.
type DrawingEvent struct {
	Type      EventType `json:"type"`
	Points    []Point   `json:"points"`
	Color     string    `json:"color"`
	BrushSize float64   `json:"brushSize"`
	Tool      Tool      `json:"tool"`
	AuthorID  string    `json:"authorId,omitempty"`
	StrokeID  string    `json:"strokeId,omitempty"`
	Timestamp int64     `json:"timestamp"`
}

// Validate enforces the per-variant field rules before an event may reach
// room state: start carries the first point, move exactly one point, end none.
func (e *DrawingEvent) Validate() error {
	switch e.Type {
	case EventStart:
		if len(e.Points) != 1 {
			return fmt.Errorf("start event must carry exactly one point, got %d", len(e.Points))
		}
		if !e.Tool.Valid() {
			return fmt.Errorf("unknown tool %q", e.Tool)
		}
		if e.BrushSize <= 0 {
			return fmt.Errorf("brush size must be positive, got %v", e.BrushSize)
		}
		if e.Color == "" {
			return fmt.Errorf("color is required")
		}
	case EventMove:
		if len(e.Points) != 1 {
			return fmt.Errorf("move event must carry exactly one point, got %d", len(e.Points))
		}
	case EventEnd:
		if len(e.Points) != 0 {
			return fmt.Errorf("end event must carry no points, got %d", len(e.Points))
		}
	default:
		return fmt.Errorf("unknown drawing event type %q", e.Type)
	}
	return nil
}

// Clone returns a deep copy of the event.
func (e *DrawingEvent) Clone() *DrawingEvent {
	if e == nil {
		return nil
	}
	cp := *e
	cp.Points = make([]Point, len(e.Points))
	copy(cp.Points, e.Points)
	return &cp
}
