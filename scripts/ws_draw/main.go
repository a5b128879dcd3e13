package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/Mohor35/collaborative-canvas/internal/canvas"
	"github.com/Mohor35/collaborative-canvas/internal/proto"
	"github.com/Mohor35/collaborative-canvas/internal/session"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_draw: %v", err)
		os.Exit(1)
	}
}

// consoleRenderer stands in for a pixel renderer and just narrates.
type consoleRenderer struct{}

func (consoleRenderer) RenderSegment(stroke *canvas.Stroke, newPoint canvas.Point) {
	fmt.Printf("segment %s -> (%.0f,%.0f)\n", stroke.ID[:8], newPoint.X, newPoint.Y)
}

func (consoleRenderer) RenderFull(strokes []*canvas.Stroke) {
	fmt.Printf("redraw: %d strokes\n", len(strokes))
}

// wsTransport adapts the websocket connection to session.Transport.
type wsTransport struct {
	ctx  context.Context
	conn *websocket.Conn
}

func (t *wsTransport) Send(msg proto.Inbound) error {
	return wsjson.Write(t.ctx, t.conn, msg)
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	room := flag.String("room", "default", "room to join")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	transport := &wsTransport{ctx: ctx, conn: conn}
	picture := session.NewPicture()
	renderer := consoleRenderer{}
	sess := session.NewSession(picture, renderer, transport, nil)
	merge := session.NewMerge(picture, renderer, nil)
	merge.BindSession(sess)

	joinPayload, err := json.Marshal(proto.JoinData{Room: *room})
	if err != nil {
		return fmt.Errorf("marshal join: %w", err)
	}
	if err := transport.Send(proto.Inbound{Type: proto.InboundTypeJoin, Data: joinPayload}); err != nil {
		return fmt.Errorf("join: %w", err)
	}

	// Draw a small square, then exercise the undo/redo path.
	sess.SetColor("#45b7d1")
	sess.PointerDown(canvas.Point{X: 10, Y: 10})
	for _, pt := range []canvas.Point{{X: 60, Y: 10}, {X: 60, Y: 60}, {X: 10, Y: 60}, {X: 10, Y: 10}} {
		sess.PointerMove(pt)
	}
	sess.PointerUp()
	if s := sess.Undo(); s != nil {
		fmt.Printf("undid stroke %s\n", s.ID[:8])
	}
	if s := sess.Redo(); s != nil {
		fmt.Printf("redid stroke %s\n", s.ID[:8])
	}

	for {
		var outbound proto.Outbound
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}

		if outbound.Error != nil {
			fmt.Printf("error: %s (%s)\n", outbound.Error.Msg, outbound.Error.Code)
			continue
		}

		raw, err := json.Marshal(outbound.Data)
		if err != nil {
			return fmt.Errorf("marshal outbound data: %w", err)
		}

		switch outbound.Event {
		case proto.EventWelcome:
			var p proto.ParticipantData
			if err := json.Unmarshal(raw, &p); err != nil {
				return fmt.Errorf("unmarshal welcome: %w", err)
			}
			merge.SetSelf(p.ID)
			fmt.Printf("welcome: %s (%s)\n", p.Name, p.Color)
		case proto.EventStateSnapshot:
			var strokes []*canvas.Stroke
			if err := json.Unmarshal(raw, &strokes); err != nil {
				return fmt.Errorf("unmarshal snapshot: %w", err)
			}
			merge.ApplySnapshot(strokes)
		case proto.EventDrawing:
			var ev canvas.DrawingEvent
			if err := json.Unmarshal(raw, &ev); err != nil {
				return fmt.Errorf("unmarshal drawing: %w", err)
			}
			merge.ApplyDrawing(&ev)
		case proto.EventUndo:
			var ev proto.StackEvent
			if err := json.Unmarshal(raw, &ev); err == nil {
				merge.ApplyUndo(ev.AuthorID, ev.StrokeID)
			}
		case proto.EventRedo:
			var ev proto.StackEvent
			if err := json.Unmarshal(raw, &ev); err == nil {
				merge.ApplyRedo(ev.AuthorID, ev.StrokeID, ev.Stroke)
			}
		case proto.EventClear:
			var ev proto.ClearEvent
			if err := json.Unmarshal(raw, &ev); err == nil {
				merge.ApplyClear(ev.AuthorID)
			}
		case proto.EventRoster:
			var roster []proto.ParticipantData
			if err := json.Unmarshal(raw, &roster); err == nil {
				fmt.Printf("roster: %d participants\n", len(roster))
			}
		case proto.EventParticipantJoined:
			var p proto.ParticipantData
			if err := json.Unmarshal(raw, &p); err == nil {
				fmt.Printf("%s joined\n", p.Name)
			}
		case proto.EventParticipantLeft:
			var p proto.ParticipantLeft
			if err := json.Unmarshal(raw, &p); err == nil {
				merge.ApplyParticipantLeft(p.ID)
				fmt.Printf("%s left\n", p.ID)
			}
		case proto.EventCursor:
			// High-volume; stay quiet.
		default:
			fmt.Printf("event=%s data=%v\n", outbound.Event, outbound.Data)
		}
	}
}
