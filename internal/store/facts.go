package store

import (
	"time"

	"github.com/anthropics/witness/internal/fact"
	"github.com/anthropics/witness/internal/wserr"
)

// InsertToolCall allocates a tick and appends a ToolCall row. One row is
// inserted per post-hook invocation regardless of whether a parser
// recognized the tool.
func (s *Store) InsertToolCall(sessionID, toolName, toolInput, toolOutput string) (fact.ToolCall, error) {
	t, err := s.Tick(sessionID)
	if err != nil {
		return fact.ToolCall{}, err
	}
	now := time.Now().UTC()
	_, err = s.Execute(`
		INSERT INTO tool_calls (session_id, t, tool_name, tool_input, tool_output, wall_clock)
		VALUES (?, ?, ?, ?, ?, ?)
	`, sessionID, t, toolName, toolInput, nullableString(toolOutput), now.Format(time.RFC3339Nano))
	if err != nil {
		return fact.ToolCall{}, err
	}
	return fact.ToolCall{
		Common:     fact.Common{SessionID: sessionID, T: t, WallClock: now},
		ToolName:   toolName,
		ToolInput:  toolInput,
		ToolOutput: toolOutput,
	}, nil
}

// InsertFact allocates a fresh tick and appends fc to its matching table.
// The tag-dispatch mirrors fact.Fact's closed set: FileEvent, TestResult,
// LintResult, TypeError, Import. ToolCall and HookEvent use their own
// dedicated insert methods because callers need their ticks for other
// purposes (correlating a ToolCall's tick, or logging after evaluation).
func (s *Store) InsertFact(sessionID string, fc fact.Fact) error {
	t, err := s.Tick(sessionID)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	wall := now.Format(time.RFC3339Nano)

	switch v := fc.(type) {
	case fact.FileEvent:
		_, err = s.Execute(`
			INSERT INTO file_events (session_id, t, event, file_path, wall_clock)
			VALUES (?, ?, ?, ?, ?)
		`, sessionID, t, string(v.Event), v.Path, wall)
	case fact.TestResult:
		_, err = s.Execute(`
			INSERT INTO test_results (session_id, t, test_name, outcome, message, wall_clock)
			VALUES (?, ?, ?, ?, ?, ?)
		`, sessionID, t, v.TestName, string(v.Outcome), nullableString(v.Message), wall)
	case fact.LintResult:
		_, err = s.Execute(`
			INSERT INTO lint_results (session_id, t, file_path, line, rule, severity, wall_clock)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, sessionID, t, v.FilePath, nullableInt(v.Line), v.Rule, string(v.Severity), wall)
	case fact.TypeError:
		_, err = s.Execute(`
			INSERT INTO type_errors (session_id, t, file_path, line, message, wall_clock)
			VALUES (?, ?, ?, ?, ?, ?)
		`, sessionID, t, v.FilePath, nullableInt(v.Line), v.Message, wall)
	case fact.Import:
		_, err = s.Execute(`
			INSERT INTO imports (session_id, t, source_file, imported_module, wall_clock)
			VALUES (?, ?, ?, ?, ?)
		`, sessionID, t, v.SourceFile, v.ImportedModule, wall)
	default:
		return wserr.Fatal("insert_fact", errUnhandledKind(fc))
	}
	return err
}

// InsertHookEvent appends a HookEvent row, used for post-facto tailing.
// Rules never query hook_events. correlationID identifies one hook
// invocation: callers generate a fresh one per invocation (see
// hookrun.RunPre/RunPost), so it does not link a pre-hook lint event to
// the post-hook record event of the same tool call.
func (s *Store) InsertHookEvent(sessionID string, ev fact.HookPipeline, toolName, action, message, payload, result, correlationID string) error {
	t, err := s.Tick(sessionID)
	if err != nil {
		return err
	}
	_, err = s.Execute(`
		INSERT INTO hook_events (session_id, t, event, tool_name, action, message, payload, result, correlation_id, wall_clock)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, sessionID, t, string(ev), nullableString(toolName), action, nullableString(message),
		nullableString(payload), nullableString(result), correlationID, time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableInt(i int) any {
	if i == 0 {
		return nil
	}
	return i
}

type unhandledKindError struct{ fc fact.Fact }

func (e unhandledKindError) Error() string {
	return "store: no table writer for fact kind"
}

func errUnhandledKind(fc fact.Fact) error { return unhandledKindError{fc: fc} }
