package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"classpoll/internal/core"
)

func getJSON(t *testing.T, ts *httptest.Server, path string, out any) int {
	t.Helper()

	resp, err := ts.Client().Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			t.Fatalf("unmarshal %s: %v (%s)", path, err, body)
		}
	}
	return resp.StatusCode
}

func TestHealthEndpoint(t *testing.T) {
	ts, _ := startTestServer(t)

	if status := getJSON(t, ts, "/healthz", nil); status != http.StatusOK {
		t.Fatalf("unexpected status: %d", status)
	}
}

func TestStudentsEndpoint(t *testing.T) {
	ts, session := startTestServer(t)

	var list StudentListResponse
	if status := getJSON(t, ts, "/api/students", &list); status != http.StatusOK {
		t.Fatalf("unexpected status: %d", status)
	}
	if len(list.Students) != 0 {
		t.Fatalf("expected empty roster, got %v", list.Students)
	}

	client := core.NewClient("c1")
	session.RegisterClient(client)
	client.Commands <- &core.Command{Kind: core.CommandJoin, Name: "alice"}

	waitFor(t, func() bool {
		var list StudentListResponse
		getJSON(t, ts, "/api/students", &list)
		return len(list.Students) == 1 && list.Students[0] == "alice"
	})
}

func TestCurrentPollEndpoint(t *testing.T) {
	ts, session := startTestServer(t)

	if status := getJSON(t, ts, "/api/polls/current", nil); status != http.StatusNoContent {
		t.Fatalf("expected 204 with no open poll, got %d", status)
	}

	client := core.NewClient("c1")
	session.RegisterClient(client)
	client.Commands <- &core.Command{Kind: core.CommandNewPoll, Poll: core.PollDefinition{
		Question: "Color?",
		Options:  []string{"Red", "Blue"},
		Duration: time.Minute,
	}}

	waitFor(t, func() bool {
		var poll CurrentPollResponse
		status := getJSON(t, ts, "/api/polls/current", &poll)
		return status == http.StatusOK && poll.Question == "Color?" && poll.Results["Red"] == 0
	})
}

func TestHistoryEndpoint(t *testing.T) {
	ts, session := startTestServer(t)

	var entries []HistoryEntry
	if status := getJSON(t, ts, "/api/polls/history", &entries); status != http.StatusOK {
		t.Fatalf("unexpected status: %d", status)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty history, got %v", entries)
	}

	client := core.NewClient("c1")
	session.RegisterClient(client)
	client.Commands <- &core.Command{Kind: core.CommandJoin, Name: "alice"}
	client.Commands <- &core.Command{Kind: core.CommandNewPoll, Poll: core.PollDefinition{
		Question: "Color?",
		Options:  []string{"Red", "Blue"},
		Duration: time.Second,
	}}
	client.Commands <- &core.Command{Kind: core.CommandSubmitAnswer, Name: "alice", Answer: "Red"}

	waitFor(t, func() bool {
		var entries []HistoryEntry
		getJSON(t, ts, "/api/polls/history", &entries)
		return len(entries) == 1 && entries[0].Results["Red"] == 1
	})
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(25 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
