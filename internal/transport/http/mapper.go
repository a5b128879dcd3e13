package http

import (
	"encoding/json"

	"github.com/Mohor35/collaborative-canvas/internal/canvas"
	"github.com/Mohor35/collaborative-canvas/internal/core"
	"github.com/Mohor35/collaborative-canvas/internal/proto"
)

// inboundToCommand validates an envelope at the boundary and converts it
// into a core command. A *proto.Error result means the message is refused
// but the connection stays; a non-nil error means the envelope itself is
// unreadable.
func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeJoin:
		var join proto.JoinData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, nil, err
		}
		if join.Room == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "roomId is required"}, nil
		}
		return &core.Command{
			Kind: core.CommandJoinRoom,
			Room: join.Room,
		}, nil, nil

	case proto.InboundTypeDrawing:
		var ev canvas.DrawingEvent
		if err := json.Unmarshal(inbound.Data, &ev); err != nil {
			return nil, nil, err
		}
		// Clients never assert identity; the hub stamps both ids.
		ev.AuthorID = ""
		ev.StrokeID = ""
		if err := ev.Validate(); err != nil {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: err.Error()}, nil
		}
		return &core.Command{
			Kind:  core.CommandDrawing,
			Event: &ev,
		}, nil, nil

	case proto.InboundTypeCursor:
		var cur proto.CursorData
		if err := json.Unmarshal(inbound.Data, &cur); err != nil {
			return nil, nil, err
		}
		return &core.Command{
			Kind:  core.CommandCursorMove,
			Point: &canvas.Point{X: cur.X, Y: cur.Y},
		}, nil, nil

	case proto.InboundTypeUndo:
		return &core.Command{Kind: core.CommandUndo}, nil, nil
	case proto.InboundTypeRedo:
		return &core.Command{Kind: core.CommandRedo}, nil, nil
	case proto.InboundTypeClear:
		return &core.Command{Kind: core.CommandClear}, nil, nil

	default:
		return nil, &proto.Error{Code: "invalid_message", Msg: "unknown message type"}, nil
	}
}

func participantData(p *core.Participant) proto.ParticipantData {
	return proto.ParticipantData{
		ID:     p.ID,
		Color:  p.Color,
		Name:   p.Name,
		Cursor: p.Cursor,
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventDrawing:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventDrawing,
			Data:  event.Drawing,
		}
	case core.EventCursor:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventCursor,
			Data: proto.CursorEvent{
				AuthorID: event.Author,
				Point:    *event.Point,
			},
		}
	case core.EventUndo:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventUndo,
			Data: proto.StackEvent{
				AuthorID: event.Author,
				StrokeID: event.StrokeID,
			},
		}
	case core.EventRedo:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventRedo,
			Data: proto.StackEvent{
				AuthorID: event.Author,
				StrokeID: event.StrokeID,
				Stroke:   event.Stroke,
			},
		}
	case core.EventClear:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventClear,
			Data:  proto.ClearEvent{AuthorID: event.Author},
		}
	case core.EventWelcome:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventWelcome,
			Data:  participantData(event.Participant),
		}
	case core.EventSnapshot:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventStateSnapshot,
			Data:  event.Strokes,
		}
	case core.EventRoster:
		roster := make([]proto.ParticipantData, 0, len(event.Participants))
		for _, p := range event.Participants {
			roster = append(roster, participantData(p))
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventRoster,
			Data:  roster,
		}
	case core.EventParticipantJoined:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventParticipantJoined,
			Data:  participantData(event.Participant),
		}
	case core.EventParticipantLeft:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventParticipantLeft,
			Data:  proto.ParticipantLeft{ID: event.Author},
		}
	case core.EventError:
		if event.Error == nil {
			return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown error"}}
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: event.Error.Code, Msg: event.Error.Message},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}
