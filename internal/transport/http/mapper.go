package http

import (
	"encoding/json"
	"time"

	"github.com/bblair321/TeamChat/internal/core"
	"github.com/bblair321/TeamChat/internal/proto"
)

// inboundToCommand decodes a wire event into a hub command. Field-presence
// validation (missing token, missing channel) belongs to the hub; only the
// envelope shape is checked here.
func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.ErrorData) {
	switch inbound.Type {
	case proto.InboundTypeJoinRoom:
		var data proto.JoinRoomData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return nil, malformed()
		}
		return &core.Command{
			Kind:      core.CommandJoinRoom,
			Token:     data.Token,
			ChannelID: data.ChannelID,
		}, nil
	case proto.InboundTypeLeaveRoom:
		var data proto.LeaveRoomData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return nil, malformed()
		}
		return &core.Command{
			Kind:      core.CommandLeaveRoom,
			Token:     data.Token,
			ChannelID: data.ChannelID,
		}, nil
	case proto.InboundTypeSendMessage:
		var data proto.SendMessageData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return nil, malformed()
		}
		return &core.Command{
			Kind:      core.CommandSendMessage,
			Token:     data.Token,
			ChannelID: data.ChannelID,
			Content:   data.Content,
		}, nil
	case proto.InboundTypeTyping:
		var data proto.TypingData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return nil, malformed()
		}
		return &core.Command{
			Kind:      core.CommandTyping,
			Token:     data.Token,
			ChannelID: data.ChannelID,
			IsTyping:  data.IsTyping,
		}, nil
	default:
		return nil, &proto.ErrorData{Code: core.ErrCodeBadRequest, Msg: "Unknown event type"}
	}
}

func malformed() *proto.ErrorData {
	return &proto.ErrorData{Code: core.ErrCodeBadRequest, Msg: "Malformed event payload"}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventStatus:
		return proto.Outbound{
			Type: proto.OutboundTypeStatus,
			Data: proto.StatusData{Msg: event.Msg},
		}
	case core.EventNewMessage:
		return proto.Outbound{
			Type: proto.OutboundTypeNewMessage,
			Data: proto.NewMessageData{
				ID:        event.Message.ID,
				Content:   event.Message.Content,
				User:      event.Message.User,
				Time:      event.Message.Time.Format(time.RFC3339),
				ChannelID: event.Message.ChannelID,
			},
		}
	case core.EventOnlineStatus:
		return proto.Outbound{
			Type: proto.OutboundTypeOnlineStatus,
			Data: proto.OnlineStatusData{
				ChannelID:   event.Online.ChannelID,
				OnlineCount: event.Online.OnlineCount,
				OnlineUsers: event.Online.OnlineUsers,
			},
		}
	case core.EventUserTyping:
		return proto.Outbound{
			Type: proto.OutboundTypeUserTyping,
			Data: proto.UserTypingData{
				User:     event.Typing.User,
				IsTyping: event.Typing.IsTyping,
			},
		}
	case core.EventError:
		if event.Err == nil {
			return proto.Outbound{
				Type: proto.OutboundTypeError,
				Data: proto.ErrorData{Code: "unknown", Msg: "unknown error"},
			}
		}
		return proto.Outbound{
			Type: proto.OutboundTypeError,
			Data: proto.ErrorData{Code: event.Err.Code, Msg: event.Err.Message},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeStatus}
	}
}
