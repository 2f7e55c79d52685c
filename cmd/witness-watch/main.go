// Command witness-watch tails new hook_events rows for a session and
// writes each as one JSON line to standard output, waking on fsnotify
// write events against the resolved store's directory rather than
// polling in a tight loop. It is a supplement to the pipeline proper —
// nothing about its latency is budgeted, since the host agent never
// blocks on it.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/anthropics/witness/internal/configwatch"
	"github.com/anthropics/witness/internal/hookrun"
	"github.com/anthropics/witness/internal/store"
)

type hookEventLine struct {
	T        int64  `json:"t"`
	Event    string `json:"event"`
	ToolName string `json:"tool_name,omitempty"`
	Action   string `json:"action"`
	Message  string `json:"message,omitempty"`
}

func main() {
	session := flag.String("session", "default", "session id to tail")
	flag.Parse()

	dbPath := hookrun.StorePath()
	s, err := store.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "witness-watch: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	lastSeen := int64(0)
	poll := func() { lastSeen = emitNewHookEvents(s, *session, lastSeen) }
	poll()

	dir := filepath.Dir(dbPath)
	if err := configwatch.Watch(ctx, dir, poll); err != nil {
		fmt.Fprintf(os.Stderr, "witness-watch: watch: %v\n", err)
	}

	<-ctx.Done()
}

func emitNewHookEvents(s *store.Store, sessionID string, since int64) int64 {
	rows, err := s.Query(`
		SELECT t, event, COALESCE(tool_name, ''), action, COALESCE(message, '')
		FROM hook_events
		WHERE session_id = ? AND t > ?
		ORDER BY t ASC
	`, sessionID, since)
	if err != nil {
		return since
	}
	defer rows.Close()

	last := since
	enc := json.NewEncoder(os.Stdout)
	for rows.Next() {
		var line hookEventLine
		if err := rows.Scan(&line.T, &line.Event, &line.ToolName, &line.Action, &line.Message); err != nil {
			continue
		}
		_ = enc.Encode(line)
		last = line.T
	}
	return last
}
