package core

import "time"

// EventKind is a notification the session emits to clients.
type EventKind int

const (
	// EventJoined acknowledges an accepted join to the joining client.
	EventJoined EventKind = iota
	// EventStudentList carries a roster snapshot.
	EventStudentList
	// EventPollQuestion announces an open poll.
	EventPollQuestion
	// EventPollResults carries the per-option tally of the relevant poll.
	EventPollResults
	// EventPollAnswers carries the per-student raw answer map.
	EventPollAnswers
	// EventPastPolls carries the closed-poll history, oldest first.
	EventPastPolls
	// EventKicked tells a single client it was kicked or its rejoin refused.
	EventKicked
	// EventChat relays a chat message.
	EventChat
	// EventError notifies a single client about a rejected request.
	EventError
)

// Event is sent to clients to describe what happened in the session.
type Event struct {
	Kind     EventKind
	Poll     *PollView
	Results  map[string]int
	Answers  map[string]string
	Students []string
	History  []ClosedPoll
	Chat     ChatMessage
	Error    *CoreError
}

// PollView is the client-facing shape of an open poll.
type PollView struct {
	Question  string
	Options   []string
	Duration  time.Duration
	StartedAt time.Time
}

// ChatMessage is relayed to every connected party and never stored.
type ChatMessage struct {
	Sender    string
	Role      string
	Message   string
	Timestamp time.Time
}
