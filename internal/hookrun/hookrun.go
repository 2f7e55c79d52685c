// Package hookrun wires together store, config, parser, and rules into the
// two pipeline bodies (§6): RunPre evaluates rules against the pending
// tool call and may block or warn it; RunPost records whatever facts the
// completed call's output yields. Both are written to never let an
// internal failure propagate past a debug line on stderr — the host
// agent's hook protocol always expects exit 0.
package hookrun

import (
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/anthropics/witness/internal/config"
	"github.com/anthropics/witness/internal/fact"
	"github.com/anthropics/witness/internal/hookio"
	"github.com/anthropics/witness/internal/parser"
	"github.com/anthropics/witness/internal/rules"
	"github.com/anthropics/witness/internal/store"
)

const defaultDBPath = ".witness/witness.db"

// StorePath resolves WITNESS_DB, defaulting to .witness/witness.db
// relative to the working directory.
func StorePath() string {
	if p := os.Getenv("WITNESS_DB"); p != "" {
		return p
	}
	return defaultDBPath
}

// ResolveSessionID applies §6's precedence: an explicit argument (a CLI
// flag, when the caller has one) beats WITNESS_SESSION, which beats the
// input payload's session_id field, which beats the literal "default".
func ResolveSessionID(explicit string, in hookio.RawInput) string {
	if explicit != "" {
		return explicit
	}
	if v := os.Getenv("WITNESS_SESSION"); v != "" {
		return v
	}
	if in.SessionID != "" {
		return in.SessionID
	}
	return "default"
}

// RunPre decodes stdin, evaluates the rule table against the pending tool
// call, writes the Allow/Warn/Block decision to stdout, and logs a hook
// event. It recovers from any panic in the chain so the pipeline always
// completes normally; a decode failure or store-open failure logs to
// stderr and is otherwise a no-op (Allow).
func RunPre(stdin io.Reader, stdout, stderr io.Writer, explicitSession, workDir string) {
	defer func() { recover() }()

	in, err := hookio.Decode(stdin)
	if err != nil {
		io.WriteString(stderr, "witness: pre: decode: "+err.Error()+"\n")
		return
	}

	sessionID := ResolveSessionID(explicitSession, in)
	s, err := store.Open(StorePath())
	if err != nil {
		io.WriteString(stderr, "witness: pre: "+err.Error()+"\n")
		return
	}
	defer s.Close()

	cfg := config.Load(workDir)
	ruleInput := rules.FromToolCall(in.ToolName, in.StringToolInput())
	violations := rules.Evaluate(s, sessionID, ruleInput, cfg)
	selected := rules.SelectBlocking(violations)

	out := make([]hookio.Violation, 0, len(selected))
	action := "allow"
	for _, v := range selected {
		out = append(out, hookio.Violation{RuleName: v.RuleName, Message: v.Message, Action: string(v.Action)})
		if string(v.Action) == "block" {
			action = "block"
		} else if action != "block" {
			action = "warn"
		}
	}

	_ = hookio.WriteDecision(stdout, out)

	messages := ""
	for i, v := range out {
		if i > 0 {
			messages += "\n"
		}
		messages += v.RuleName + ": " + v.Message
	}
	_ = s.InsertHookEvent(sessionID, fact.HookLint, in.ToolName, action, messages, "", "", uuid.New().String())
}

// RunPost decodes stdin, records the tool call and whatever facts the
// router extracts from its output, and logs a hook event. It never writes
// to stdout; a decode or store failure is reported on stderr only.
func RunPost(stdin io.Reader, stderr io.Writer, explicitSession, _ string) {
	defer func() { recover() }()

	in, err := hookio.Decode(stdin)
	if err != nil {
		io.WriteString(stderr, "witness: post: decode: "+err.Error()+"\n")
		return
	}

	sessionID := ResolveSessionID(explicitSession, in)
	s, err := store.Open(StorePath())
	if err != nil {
		io.WriteString(stderr, "witness: post: "+err.Error()+"\n")
		return
	}
	defer s.Close()

	toolInput := in.StringToolInput()
	if _, err := s.InsertToolCall(sessionID, in.ToolName, string(in.ToolInput), in.ToolOutput); err != nil {
		io.WriteString(stderr, "witness: post: insert tool call: "+err.Error()+"\n")
	}

	facts := parser.Route(parser.Input{ToolName: in.ToolName, ToolInput: toolInput, ToolOutput: in.ToolOutput})
	for _, f := range facts {
		if err := s.InsertFact(sessionID, f); err != nil {
			io.WriteString(stderr, "witness: post: insert fact: "+err.Error()+"\n")
		}
	}

	_ = s.InsertHookEvent(sessionID, fact.HookRecord, in.ToolName, "recorded", "", "", "", uuid.New().String())
}
