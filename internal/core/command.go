package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoin registers the sender in the roster under a student name.
	CommandJoin CommandKind = iota
	// CommandNewPoll opens a poll, superseding any poll still in flight.
	CommandNewPoll
	// CommandSubmitAnswer records a student's answer to the open poll.
	CommandSubmitAnswer
	// CommandStudentList requests a roster snapshot for the sender.
	CommandStudentList
	// CommandPollState requests the open poll plus its live tally (resync).
	CommandPollState
	// CommandPastPolls requests the closed-poll history for the sender.
	CommandPastPolls
	// CommandKick force-disconnects the first student with the given name.
	CommandKick
	// CommandChat relays a chat message to every connected party.
	CommandChat

	// Internal kinds, never produced by the transport.
	commandRegister
	commandUnregister
	commandClosePoll
	commandSnapshot
)

// Command represents an action requested by a client.
type Command struct {
	Kind   CommandKind
	Name   string // join: student name; submit_answer/kick: target name
	Answer string
	Poll   PollDefinition
	Chat   ChatMessage

	// closePoll: generation the timer was armed for.
	gen uint64
	// snapshot: reply channel for read-only state queries.
	reply chan Snapshot
}
