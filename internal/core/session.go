package core

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
)

// Session is the process-wide coordinator for one classroom: the active poll,
// the student roster, the kick cooldown set, and the closed-poll history. All
// state lives behind a single goroutine (Run); clients talk to it through
// their Commands channel and hear back on their Events channel, so no two
// operations ever interleave on the same field.
type Session struct {
	inbox chan envelope
	done  chan struct{}
	clock clock.Clock
	log   *zerolog.Logger

	// Owned by Run. Never touched from other goroutines.
	clients   map[*Client]struct{}
	roster    *roster
	cooldowns cooldowns
	current   *Poll
	pollTimer *clock.Timer
	gen       uint64
	history   []ClosedPoll
}

type envelope struct {
	client *Client
	cmd    *Command
}

// NewSession constructs a session coordinator. The clock is injectable so the
// poll countdown and the kick cooldown are testable without real sleeps.
func NewSession(clk clock.Clock, logger *zerolog.Logger) *Session {
	return &Session{
		inbox:     make(chan envelope, 32),
		done:      make(chan struct{}),
		clock:     clk,
		log:       logger,
		clients:   make(map[*Client]struct{}),
		roster:    newRoster(),
		cooldowns: make(cooldowns),
	}
}

// RegisterClient announces a new connection and starts forwarding its
// commands into the session inbox.
func (s *Session) RegisterClient(c *Client) {
	s.enqueue(envelope{client: c, cmd: &Command{Kind: commandRegister}})
	go func() {
		for cmd := range c.Commands {
			if !s.enqueue(envelope{client: c, cmd: cmd}) {
				return
			}
		}
	}()
}

// UnregisterClient removes a disconnected client. Safe to call more than once
// and for clients the session already dropped.
func (s *Session) UnregisterClient(c *Client) {
	c.closeCommands()
	s.enqueue(envelope{client: c, cmd: &Command{Kind: commandUnregister}})
}

// Snapshot returns a consistent read-only view of the session state. The
// query runs through the coordinator goroutine, so it never observes a
// half-applied mutation.
func (s *Session) Snapshot(ctx context.Context) (Snapshot, error) {
	reply := make(chan Snapshot, 1)
	select {
	case s.inbox <- envelope{cmd: &Command{Kind: commandSnapshot, reply: reply}}:
	case <-s.done:
		return Snapshot{}, ErrSessionClosed
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
	select {
	case snap := <-reply:
		return snap, nil
	case <-s.done:
		return Snapshot{}, ErrSessionClosed
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

// Snapshot is a point-in-time copy of the session state for read-only
// consumers.
type Snapshot struct {
	Students []string
	Current  *PollStatus // nil when no poll is open
	History  []ClosedPoll
}

// PollStatus describes the open poll together with its live tally.
type PollStatus struct {
	Question  string
	Options   []string
	Duration  time.Duration
	StartedAt time.Time
	Results   map[string]int
	Answers   map[string]string
}

func (s *Session) enqueue(env envelope) bool {
	select {
	case s.inbox <- env:
		return true
	case <-s.done:
		return false
	}
}

// Run processes commands until the context is cancelled. It must be running
// before any client is registered.
func (s *Session) Run(ctx context.Context) {
	defer close(s.done)
	defer s.stopTimer()

	for {
		select {
		case env := <-s.inbox:
			s.handle(env.client, env.cmd)
		case <-ctx.Done():
			return
		}
	}
}

func (s *Session) handle(c *Client, cmd *Command) {
	switch cmd.Kind {
	case commandRegister:
		s.clients[c] = struct{}{}
		s.log.Debug().Str("client_id", c.ID).Msg("client connected")
	case commandUnregister:
		s.dropClient(c, false)
	case commandClosePoll:
		s.closePoll(cmd.gen)
	case commandSnapshot:
		cmd.reply <- s.snapshot()
	default:
		if _, ok := s.clients[c]; !ok {
			// Command raced with a disconnect; the sender is gone.
			return
		}
		s.handleClient(c, cmd)
	}
}

func (s *Session) handleClient(c *Client, cmd *Command) {
	switch cmd.Kind {
	case CommandJoin:
		s.join(c, cmd.Name)
	case CommandNewPoll:
		s.openPoll(c, cmd.Poll)
	case CommandSubmitAnswer:
		s.submitAnswer(cmd.Name, cmd.Answer)
	case CommandStudentList:
		s.send(c, &Event{Kind: EventStudentList, Students: s.roster.list()})
	case CommandPollState:
		s.resync(c)
	case CommandPastPolls:
		s.send(c, &Event{Kind: EventPastPolls, History: s.historyCopy()})
	case CommandKick:
		s.kick(cmd.Name)
	case CommandChat:
		chat := cmd.Chat
		chat.Timestamp = s.clock.Now()
		s.broadcast(&Event{Kind: EventChat, Chat: chat})
	}
}

// join admits a student unless their name is still in kick cooldown. Accepted
// joins get an ack, a roster broadcast, and the open poll if they have not
// answered it yet.
func (s *Session) join(c *Client, name string) {
	if s.cooldowns.active(name, s.clock.Now()) {
		s.log.Info().Str("student", name).Msg("blocked rejoin during kick cooldown")
		s.send(c, &Event{Kind: EventKicked})
		s.dropClient(c, true)
		return
	}
	delete(s.cooldowns, name)

	s.roster.add(c.ID, name)
	s.log.Info().Str("student", name).Str("client_id", c.ID).Msg("student joined")
	s.broadcast(&Event{Kind: EventStudentList, Students: s.roster.list()})
	s.send(c, &Event{Kind: EventJoined})

	if s.current != nil {
		if _, answered := s.current.Answers[name]; !answered {
			s.send(c, &Event{Kind: EventPollQuestion, Poll: s.current.view()})
		}
	}
}

// openPoll validates the definition and opens a poll, silently discarding any
// poll still in flight together with its partial answers. The countdown is
// armed with the current generation so a superseded timer cannot close the
// wrong poll.
func (s *Session) openPoll(c *Client, def PollDefinition) {
	def, err := def.Normalize()
	if err != nil {
		s.log.Warn().Err(err).Str("question", def.Question).Msg("rejected poll definition")
		s.send(c, &Event{Kind: EventError, Error: coreError(ErrCodeInvalidPoll, err.Error())})
		return
	}

	s.stopTimer()
	s.gen++
	gen := s.gen
	s.current = newPoll(def, s.clock.Now())

	// Arm the countdown before announcing, so the poll is never observable
	// without a close scheduled.
	s.pollTimer = s.clock.AfterFunc(def.Duration, func() {
		s.enqueue(envelope{cmd: &Command{Kind: commandClosePoll, gen: gen}})
	})

	s.log.Info().Str("question", def.Question).Dur("duration", def.Duration).Msg("poll opened")
	s.broadcast(&Event{Kind: EventPollQuestion, Poll: s.current.view()})
}

// submitAnswer records the first answer per student name; later submissions
// and submissions outside an open poll change nothing.
func (s *Session) submitAnswer(name, answer string) {
	if s.current == nil {
		s.log.Debug().Str("student", name).Msg("answer without active poll")
		return
	}
	if _, ok := s.current.Answers[name]; ok {
		s.log.Debug().Str("student", name).Msg("duplicate answer dropped")
		return
	}
	s.current.Answers[name] = answer

	s.broadcast(&Event{Kind: EventPollResults, Results: s.current.tally()})
	s.broadcast(&Event{Kind: EventPollAnswers, Answers: s.current.answersCopy()})
}

// closePoll archives the active poll when its countdown fires. A stale
// generation means the poll was superseded before the timer went off; the
// fire is discarded.
func (s *Session) closePoll(gen uint64) {
	if s.current == nil || gen != s.gen {
		return
	}

	closed := ClosedPoll{
		Question: s.current.Question,
		Options:  s.current.Options,
		Answers:  s.current.answersCopy(),
	}
	s.history = append(s.history, closed)
	s.log.Info().Str("question", closed.Question).Int("answers", len(closed.Answers)).Msg("poll closed")

	s.broadcast(&Event{Kind: EventPollResults, Results: closed.Tally()})
	s.broadcast(&Event{Kind: EventPollAnswers, Answers: closed.Answers})
	s.broadcast(&Event{Kind: EventPastPolls, History: s.historyCopy()})

	s.current = nil
	s.pollTimer = nil
}

// resync replays the open poll plus its live tally to one client. With no
// poll open nothing is sent.
func (s *Session) resync(c *Client) {
	if s.current == nil {
		return
	}
	s.send(c, &Event{Kind: EventPollQuestion, Poll: s.current.view()})
	s.send(c, &Event{Kind: EventPollResults, Results: s.current.tally()})
	s.send(c, &Event{Kind: EventPollAnswers, Answers: s.current.answersCopy()})
}

// kick disconnects the first student with the given name and stamps the
// cooldown that blocks rejoining. Unknown names are a no-op.
func (s *Session) kick(name string) {
	clientID, ok := s.roster.findByName(name)
	if !ok {
		s.log.Debug().Str("student", name).Msg("kick target not found")
		return
	}
	s.cooldowns[name] = s.clock.Now()
	s.log.Info().Str("student", name).Msg("kicking student")

	for c := range s.clients {
		if c.ID == clientID {
			s.send(c, &Event{Kind: EventKicked})
			s.dropClient(c, true)
			break
		}
	}
}

// dropClient removes a client from the session and, when force is set, closes
// its Events channel so the transport tears the connection down. Idempotent.
func (s *Session) dropClient(c *Client, force bool) {
	if _, ok := s.clients[c]; !ok {
		return
	}
	delete(s.clients, c)
	if force {
		close(c.Events)
	}
	if s.roster.remove(c.ID) {
		s.log.Debug().Str("client_id", c.ID).Msg("client left roster")
		s.broadcast(&Event{Kind: EventStudentList, Students: s.roster.list()})
	}
}

func (s *Session) snapshot() Snapshot {
	snap := Snapshot{
		Students: s.roster.list(),
		History:  s.historyCopy(),
	}
	if s.current != nil {
		snap.Current = &PollStatus{
			Question:  s.current.Question,
			Options:   s.current.Options,
			Duration:  s.current.Duration,
			StartedAt: s.current.StartedAt,
			Results:   s.current.tally(),
			Answers:   s.current.answersCopy(),
		}
	}
	return snap
}

func (s *Session) historyCopy() []ClosedPoll {
	out := make([]ClosedPoll, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Session) stopTimer() {
	if s.pollTimer != nil {
		s.pollTimer.Stop()
		s.pollTimer = nil
	}
}

// broadcast fans an event out to every connected party.
func (s *Session) broadcast(ev *Event) {
	for c := range s.clients {
		s.send(c, ev)
	}
}

func (s *Session) send(c *Client, ev *Event) {
	select {
	case c.Events <- ev:
	default:
		// Drop if slow consumer.
	}
}
