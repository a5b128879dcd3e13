package core

import (
	"context"
	"fmt"
	"testing"

	"github.com/Mohor35/collaborative-canvas/internal/canvas"
)

func benchmarkDrawingBroadcast(b *testing.B, recipients int) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(0, nil)
	go hub.Run(ctx)

	sender := NewClient("sender", 0)
	hub.RegisterClient(sender)
	sender.Commands <- &Command{Kind: CommandJoinRoom, Room: "bench"}

	clients := make([]*Client, 0, recipients)
	for i := 0; i < recipients; i++ {
		c := NewClient(fmt.Sprintf("c%d", i), 0)
		hub.RegisterClient(c)
		c.Commands <- &Command{Kind: CommandJoinRoom, Room: "bench"}
		clients = append(clients, c)
	}

	// Drain events for all but the first recipient to avoid channel backpressure.
	target := clients[0]
	for _, c := range clients[1:] {
		go func(cl *Client) {
			for range cl.Events {
			}
		}(c)
	}
	go func() {
		for range sender.Events {
		}
	}()

	// Open one stroke and stream move events through it.
	sender.Commands <- &Command{Kind: CommandDrawing, Event: &canvas.DrawingEvent{
		Type: canvas.EventStart, Points: []canvas.Point{{X: 0, Y: 0}},
		Color: "#000000", BrushSize: 4, Tool: canvas.ToolBrush,
	}}
	for {
		ev := <-target.Events
		if ev.Kind == EventDrawing {
			break
		}
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		sender.Commands <- &Command{Kind: CommandDrawing, Event: &canvas.DrawingEvent{
			Type: canvas.EventMove, Points: []canvas.Point{{X: float64(i), Y: float64(i)}},
		}}
		for {
			ev := <-target.Events
			if ev.Kind == EventDrawing {
				break
			}
		}
	}
}

func BenchmarkDrawingBroadcast_10(b *testing.B)  { benchmarkDrawingBroadcast(b, 10) }
func BenchmarkDrawingBroadcast_100(b *testing.B) { benchmarkDrawingBroadcast(b, 100) }
func BenchmarkDrawingBroadcast_500(b *testing.B) { benchmarkDrawingBroadcast(b, 500) }
