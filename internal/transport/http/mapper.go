package http

import (
	"encoding/json"
	"time"

	"classpoll/internal/core"
	"classpoll/internal/proto"
)

func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeStudentJoined:
		var join proto.JoinData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, nil, err
		}
		if join.Name == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "name is required"}, nil
		}
		return &core.Command{Kind: core.CommandJoin, Name: join.Name}, nil, nil
	case proto.InboundTypeGetStudentList:
		return &core.Command{Kind: core.CommandStudentList}, nil, nil
	case proto.InboundTypeNewPoll:
		var poll proto.NewPollData
		if err := json.Unmarshal(inbound.Data, &poll); err != nil {
			return nil, nil, err
		}
		return &core.Command{
			Kind: core.CommandNewPoll,
			Poll: core.PollDefinition{
				Question: poll.Question,
				Options:  poll.Options,
				Duration: time.Duration(poll.Duration) * time.Second,
			},
		}, nil, nil
	case proto.InboundTypeSubmitAnswer:
		var answer proto.SubmitAnswerData
		if err := json.Unmarshal(inbound.Data, &answer); err != nil {
			return nil, nil, err
		}
		if answer.Name == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "name is required"}, nil
		}
		return &core.Command{
			Kind:   core.CommandSubmitAnswer,
			Name:   answer.Name,
			Answer: answer.Answer,
		}, nil, nil
	case proto.InboundTypeGetCurrentPoll:
		return &core.Command{Kind: core.CommandPollState}, nil, nil
	case proto.InboundTypeGetPastPolls:
		return &core.Command{Kind: core.CommandPastPolls}, nil, nil
	case proto.InboundTypeKickStudent:
		var kick proto.KickData
		if err := json.Unmarshal(inbound.Data, &kick); err != nil {
			return nil, nil, err
		}
		if kick.Name == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "name is required"}, nil
		}
		return &core.Command{Kind: core.CommandKick, Name: kick.Name}, nil, nil
	case proto.InboundTypeSendMessage:
		var chat proto.ChatData
		if err := json.Unmarshal(inbound.Data, &chat); err != nil {
			return nil, nil, err
		}
		return &core.Command{
			Kind: core.CommandChat,
			Chat: core.ChatMessage{
				Sender:  chat.Sender,
				Role:    chat.Role,
				Message: chat.Message,
			},
		}, nil, nil
	default:
		return nil, &proto.Error{Code: "invalid_message", Msg: "unknown message type"}, nil
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventJoined:
		return proto.Outbound{Type: proto.OutboundTypeEvent, Event: proto.EventJoined}
	case core.EventStudentList:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventStudentList,
			Data:  event.Students,
		}
	case core.EventPollQuestion:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventPollQuestion,
			Data: proto.PollQuestionData{
				Question:  event.Poll.Question,
				Options:   event.Poll.Options,
				Duration:  int(event.Poll.Duration / time.Second),
				StartedAt: event.Poll.StartedAt.UnixMilli(),
			},
		}
	case core.EventPollResults:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventPollResults,
			Data:  event.Results,
		}
	case core.EventPollAnswers:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventPollAnswersDetailed,
			Data:  event.Answers,
		}
	case core.EventPastPolls:
		past := make([]proto.PastPoll, 0, len(event.History))
		for _, closed := range event.History {
			past = append(past, proto.PastPoll{
				Question: closed.Question,
				Options:  closed.Options,
				Answers:  closed.Answers,
			})
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventPastPolls,
			Data:  past,
		}
	case core.EventKicked:
		return proto.Outbound{Type: proto.OutboundTypeEvent, Event: proto.EventKicked}
	case core.EventChat:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventReceiveMessage,
			Data: proto.ChatMessageData{
				Sender:    event.Chat.Sender,
				Role:      event.Chat.Role,
				Message:   event.Chat.Message,
				Timestamp: event.Chat.Timestamp.UnixMilli(),
			},
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
