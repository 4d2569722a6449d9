package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeStudentJoined  = "student_joined"
	InboundTypeGetStudentList = "get_student_list"
	InboundTypeNewPoll        = "new_poll"
	InboundTypeSubmitAnswer   = "submit_answer"
	InboundTypeGetCurrentPoll = "get_current_poll_state"
	InboundTypeGetPastPolls   = "get_past_polls"
	InboundTypeKickStudent    = "kick_student"
	InboundTypeSendMessage    = "send_message"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"

	EventJoined              = "joined"
	EventStudentList         = "student_list"
	EventPollQuestion        = "poll_question"
	EventPollResults         = "poll_results"
	EventPollAnswersDetailed = "poll_answers_detailed"
	EventPastPolls           = "past_polls"
	EventKicked              = "kicked"
	EventReceiveMessage      = "receive_message"
)

// JoinData is sent by a student to enter the roster.
type JoinData struct {
	Name string `json:"name"`
}

// NewPollData defines a poll to open. Duration is in seconds.
type NewPollData struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Duration int      `json:"duration"`
}

// SubmitAnswerData records one student's answer.
type SubmitAnswerData struct {
	Name   string `json:"name"`
	Answer string `json:"answer"`
}

// KickData names the student to force-disconnect.
type KickData struct {
	Name string `json:"name"`
}

// ChatData is a chat message from any connected party.
type ChatData struct {
	Sender  string `json:"sender"`
	Role    string `json:"role"`
	Message string `json:"message"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// PollQuestionData announces an open poll. Duration is in seconds, StartedAt
// is unix milliseconds.
type PollQuestionData struct {
	Question  string   `json:"question"`
	Options   []string `json:"options"`
	Duration  int      `json:"duration"`
	StartedAt int64    `json:"startTime"`
}

// PastPoll is one closed poll in the history.
type PastPoll struct {
	Question string            `json:"question"`
	Options  []string          `json:"options"`
	Answers  map[string]string `json:"answers"`
}

// ChatMessageData is the relayed chat message. Timestamp is unix milliseconds
// stamped by the server.
type ChatMessageData struct {
	Sender    string `json:"sender"`
	Role      string `json:"role"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
