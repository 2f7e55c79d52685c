package hookrun

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anthropics/witness/internal/fact"
	"github.com/anthropics/witness/internal/hookio"
	"github.com/anthropics/witness/internal/store"
)

func withStore(t *testing.T) (*store.Store, func()) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "witness.db")
	require.NoError(t, os.Setenv("WITNESS_DB", dbPath))
	s, err := store.Open(dbPath)
	require.NoError(t, err)
	return s, func() {
		s.Close()
		os.Unsetenv("WITNESS_DB")
	}
}

func TestResolveSessionIDPrecedence(t *testing.T) {
	os.Unsetenv("WITNESS_SESSION")
	require.Equal(t, "explicit", ResolveSessionID("explicit", hookio.RawInput{SessionID: "payload"}))

	os.Setenv("WITNESS_SESSION", "fromenv")
	defer os.Unsetenv("WITNESS_SESSION")
	require.Equal(t, "fromenv", ResolveSessionID("", hookio.RawInput{SessionID: "payload"}))
}

func TestResolveSessionIDFallsBackToPayloadThenDefault(t *testing.T) {
	os.Unsetenv("WITNESS_SESSION")
	require.Equal(t, "payload", ResolveSessionID("", hookio.RawInput{SessionID: "payload"}))
	require.Equal(t, "default", ResolveSessionID("", hookio.RawInput{SessionID: ""}))
}

func TestRunPreBlocksCommitWhenTestsAreFailing(t *testing.T) {
	s, cleanup := withStore(t)
	defer cleanup()

	workDir := t.TempDir()
	cfgBody := `{"rules": {"no_commit_failing": "block"}}`
	require.NoError(t, os.WriteFile(filepath.Join(workDir, ".witness.json"), []byte(cfgBody), 0o644))

	require.NoError(t, s.InsertFact("sess", fact.NewTestResult("TestFoo", fact.TestFail, "boom")))

	stdin := bytes.NewBufferString(`{"tool_name":"Bash","session_id":"sess","tool_input":{"command":"git commit -m wip"}}`)
	var stdout, stderr bytes.Buffer
	RunPre(stdin, &stdout, &stderr, "sess", workDir)

	require.Contains(t, stdout.String(), `"permissionDecision":"deny"`)
	require.Contains(t, stdout.String(), "no_commit_failing")

	rows, err := s.Query(`SELECT action, correlation_id FROM hook_events WHERE session_id = ?`, "sess")
	require.NoError(t, err)
	defer rows.Close()
	found := false
	for rows.Next() {
		var action, corr string
		require.NoError(t, rows.Scan(&action, &corr))
		require.Equal(t, "block", action)
		require.NotEmpty(t, corr)
		found = true
	}
	require.True(t, found)
}

func TestRunPreAllowsWhenNoRulesConfigured(t *testing.T) {
	_, cleanup := withStore(t)
	defer cleanup()

	workDir := t.TempDir()

	stdin := bytes.NewBufferString(`{"tool_name":"Edit","session_id":"sess","tool_input":{"file_path":"a.go"}}`)
	var stdout, stderr bytes.Buffer
	RunPre(stdin, &stdout, &stderr, "sess", workDir)

	require.Empty(t, stdout.String())
}

func TestRunPostRecordsToolCallAndParsedFacts(t *testing.T) {
	s, cleanup := withStore(t)
	defer cleanup()

	stdin := bytes.NewBufferString(`{"tool_name":"Read","session_id":"sess","tool_input":{"path":"a.go"},"tool_output":"package main\n\nimport \"fmt\"\n"}`)
	var stderr bytes.Buffer
	RunPost(stdin, &stderr, "sess", "")

	var toolCalls int
	row := s.QueryRow(`SELECT COUNT(*) FROM tool_calls WHERE session_id = ?`, "sess")
	require.NoError(t, row.Scan(&toolCalls))
	require.Equal(t, 1, toolCalls)

	var imports int
	row = s.QueryRow(`SELECT COUNT(*) FROM imports WHERE session_id = ?`, "sess")
	require.NoError(t, row.Scan(&imports))
	require.Equal(t, 1, imports)

	var hookEvents int
	row = s.QueryRow(`SELECT COUNT(*) FROM hook_events WHERE session_id = ? AND event = 'record'`, "sess")
	require.NoError(t, row.Scan(&hookEvents))
	require.Equal(t, 1, hookEvents)
}
