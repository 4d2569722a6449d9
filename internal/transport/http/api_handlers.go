package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"classpoll/internal/core"
)

// APIHandlers provides read-only REST views over the session state.
type APIHandlers struct {
	session *core.Session
	log     *zerolog.Logger
}

// NewAPIHandlers creates a new API handlers instance.
func NewAPIHandlers(session *core.Session, logger *zerolog.Logger) *APIHandlers {
	return &APIHandlers{session: session, log: logger}
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StudentListResponse is the roster snapshot.
type StudentListResponse struct {
	Students []string `json:"students"`
}

// CurrentPollResponse is the open poll with its live tally.
type CurrentPollResponse struct {
	Question  string            `json:"question"`
	Options   []string          `json:"options"`
	Duration  int               `json:"duration"`
	StartedAt int64             `json:"startTime"`
	Results   map[string]int    `json:"results"`
	Answers   map[string]string `json:"answers"`
}

// HistoryEntry is one closed poll with its recomputed tally.
type HistoryEntry struct {
	Question string            `json:"question"`
	Options  []string          `json:"options"`
	Answers  map[string]string `json:"answers"`
	Results  map[string]int    `json:"results"`
}

// Students handles roster snapshot requests.
// GET /api/students
func (h *APIHandlers) Students(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, StudentListResponse{Students: snap.Students})
}

// CurrentPoll handles open-poll snapshot requests.
// GET /api/polls/current
func (h *APIHandlers) CurrentPoll(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	if snap.Current == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, CurrentPollResponse{
		Question:  snap.Current.Question,
		Options:   snap.Current.Options,
		Duration:  int(snap.Current.Duration / time.Second),
		StartedAt: snap.Current.StartedAt.UnixMilli(),
		Results:   snap.Current.Results,
		Answers:   snap.Current.Answers,
	})
}

// History handles closed-poll history requests, oldest first.
// GET /api/polls/history
func (h *APIHandlers) History(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	entries := make([]HistoryEntry, 0, len(snap.History))
	for _, closed := range snap.History {
		entries = append(entries, HistoryEntry{
			Question: closed.Question,
			Options:  closed.Options,
			Answers:  closed.Answers,
			Results:  closed.Tally(),
		})
	}
	c.JSON(http.StatusOK, entries)
}

func (h *APIHandlers) snapshot(c *gin.Context) (core.Snapshot, bool) {
	snap, err := h.session.Snapshot(c.Request.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, core.ErrSessionClosed) {
			status = http.StatusServiceUnavailable
		}
		h.log.Error().Err(err).Msg("session snapshot failed")
		c.JSON(status, ErrorResponse{Error: "session unavailable"})
		return core.Snapshot{}, false
	}
	return snap, true
}
