package http

import (
	"encoding/json"
	"testing"

	"github.com/Mohor35/collaborative-canvas/internal/canvas"
	"github.com/Mohor35/collaborative-canvas/internal/core"
	"github.com/Mohor35/collaborative-canvas/internal/proto"
)

func mustCommand(t *testing.T, inbound proto.Inbound) *core.Command {
	t.Helper()

	cmd, protoErr, err := inboundToCommand(inbound)
	if err != nil {
		t.Fatalf("map inbound: %v", err)
	}
	if protoErr != nil {
		t.Fatalf("inbound refused: %+v", protoErr)
	}
	return cmd
}

func mustRefuse(t *testing.T, inbound proto.Inbound, code string) {
	t.Helper()

	cmd, protoErr, err := inboundToCommand(inbound)
	if err != nil {
		t.Fatalf("map inbound: %v", err)
	}
	if cmd != nil || protoErr == nil || protoErr.Code != code {
		t.Fatalf("expected %s refusal, got cmd=%+v err=%+v", code, cmd, protoErr)
	}
}

func TestMapJoin(t *testing.T) {
	data, _ := json.Marshal(proto.JoinData{Room: "default"})
	cmd := mustCommand(t, proto.Inbound{Type: proto.InboundTypeJoin, Data: data})
	if cmd.Kind != core.CommandJoinRoom || cmd.Room != "default" {
		t.Fatalf("unexpected command: %+v", cmd)
	}

	empty, _ := json.Marshal(proto.JoinData{})
	mustRefuse(t, proto.Inbound{Type: proto.InboundTypeJoin, Data: empty}, core.ErrCodeBadRequest)
}

func TestMapDrawingStripsAssertedIdentity(t *testing.T) {
	data, _ := json.Marshal(canvas.DrawingEvent{
		Type:      canvas.EventStart,
		Points:    []canvas.Point{{X: 1, Y: 2}},
		Color:     "#000000",
		BrushSize: 4,
		Tool:      canvas.ToolBrush,
		AuthorID:  "someone-else",
		StrokeID:  "forged",
	})
	cmd := mustCommand(t, proto.Inbound{Type: proto.InboundTypeDrawing, Data: data})
	if cmd.Event.AuthorID != "" || cmd.Event.StrokeID != "" {
		t.Fatalf("client-asserted identity survived mapping: %+v", cmd.Event)
	}
}

func TestMapDrawingValidatesVariant(t *testing.T) {
	noPoints, _ := json.Marshal(canvas.DrawingEvent{
		Type: canvas.EventStart, Color: "#000000", BrushSize: 4, Tool: canvas.ToolBrush,
	})
	mustRefuse(t, proto.Inbound{Type: proto.InboundTypeDrawing, Data: noPoints}, core.ErrCodeBadRequest)

	badTool, _ := json.Marshal(canvas.DrawingEvent{
		Type: canvas.EventStart, Points: []canvas.Point{{X: 1, Y: 1}},
		Color: "#000000", BrushSize: 4, Tool: "spray",
	})
	mustRefuse(t, proto.Inbound{Type: proto.InboundTypeDrawing, Data: badTool}, core.ErrCodeBadRequest)
}

func TestMapStackAndCursor(t *testing.T) {
	for _, tc := range []struct {
		typ  string
		kind core.CommandKind
	}{
		{proto.InboundTypeUndo, core.CommandUndo},
		{proto.InboundTypeRedo, core.CommandRedo},
		{proto.InboundTypeClear, core.CommandClear},
	} {
		cmd := mustCommand(t, proto.Inbound{Type: tc.typ})
		if cmd.Kind != tc.kind {
			t.Fatalf("%s mapped to %v", tc.typ, cmd.Kind)
		}
	}

	data, _ := json.Marshal(proto.CursorData{X: 3, Y: 4})
	cmd := mustCommand(t, proto.Inbound{Type: proto.InboundTypeCursor, Data: data})
	if cmd.Kind != core.CommandCursorMove || cmd.Point == nil || cmd.Point.Y != 4 {
		t.Fatalf("unexpected cursor command: %+v", cmd)
	}
}

func TestMapUnknownTypeRefused(t *testing.T) {
	mustRefuse(t, proto.Inbound{Type: "teleport"}, "invalid_message")
}

func TestOutboundFromDrawingEvent(t *testing.T) {
	ev := &core.Event{
		Kind:     core.EventDrawing,
		Author:   "a",
		StrokeID: "s1",
		Drawing: &canvas.DrawingEvent{
			Type: canvas.EventMove, Points: []canvas.Point{{X: 1, Y: 1}},
			AuthorID: "a", StrokeID: "s1",
		},
	}
	out := outboundFromEvent(ev)
	if out.Type != proto.OutboundTypeEvent || out.Event != proto.EventDrawing {
		t.Fatalf("unexpected outbound: %+v", out)
	}

	errOut := outboundFromEvent(&core.Event{
		Kind:  core.EventError,
		Error: &core.CoreError{Code: core.ErrCodeNotInRoom, Message: "join a room first"},
	})
	if errOut.Type != proto.OutboundTypeError || errOut.Error == nil || errOut.Error.Code != core.ErrCodeNotInRoom {
		t.Fatalf("unexpected error outbound: %+v", errOut)
	}
}
