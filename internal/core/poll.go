package core

import (
	"strings"
	"time"
)

// PollDefinition is what a teacher submits to open a poll.
type PollDefinition struct {
	Question string
	Options  []string
	Duration time.Duration
}

// Normalize trims the question and options, drops empty options, and
// validates the result. It returns the cleaned definition.
func (d PollDefinition) Normalize() (PollDefinition, error) {
	out := PollDefinition{
		Question: strings.TrimSpace(d.Question),
		Duration: d.Duration,
	}
	for _, opt := range d.Options {
		if trimmed := strings.TrimSpace(opt); trimmed != "" {
			out.Options = append(out.Options, trimmed)
		}
	}

	switch {
	case out.Question == "":
		return out, ErrEmptyQuestion
	case len(out.Options) < 2:
		return out, ErrTooFewOptions
	case out.Duration <= 0:
		return out, ErrInvalidDuration
	}
	return out, nil
}

// Poll is the single active poll with its in-progress answer map. Answers are
// keyed by student name; the first answer per name wins. Answer text is stored
// verbatim, even when it matches no option.
type Poll struct {
	PollDefinition
	StartedAt time.Time
	Answers   map[string]string
}

func newPoll(def PollDefinition, startedAt time.Time) *Poll {
	return &Poll{
		PollDefinition: def,
		StartedAt:      startedAt,
		Answers:        make(map[string]string),
	}
}

func (p *Poll) view() *PollView {
	return &PollView{
		Question:  p.Question,
		Options:   p.Options,
		Duration:  p.Duration,
		StartedAt: p.StartedAt,
	}
}

func (p *Poll) answersCopy() map[string]string {
	out := make(map[string]string, len(p.Answers))
	for name, answer := range p.Answers {
		out[name] = answer
	}
	return out
}

// ClosedPoll is an immutable snapshot appended to the history when a poll's
// timer fires.
type ClosedPoll struct {
	Question string
	Options  []string
	Answers  map[string]string
}

// Tally returns the recomputed per-option result. Tally counts the recorded
// answers that exactly equal a configured option; answers matching no option
// land in no bucket but stay visible in the detailed answer map.
func (c ClosedPoll) Tally() map[string]int {
	return tally(c.Options, c.Answers)
}

func (p *Poll) tally() map[string]int {
	return tally(p.Options, p.Answers)
}

func tally(options []string, answers map[string]string) map[string]int {
	counts := make(map[string]int, len(options))
	for _, opt := range options {
		counts[opt] = 0
	}
	for _, answer := range answers {
		if _, ok := counts[answer]; ok {
			counts[answer]++
		}
	}
	return counts
}
