package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anthropics/witness/internal/config"
	"github.com/anthropics/witness/internal/fact"
	"github.com/anthropics/witness/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func enableAll(threshold int) config.Config {
	opts := map[string]any{"threshold": float64(threshold)}
	return config.Config{Rules: map[string]config.RuleConfig{
		"no_edit_unread":         {Action: config.ActionWarn},
		"test_after_edits":       {Action: config.ActionWarn, Options: opts},
		"fix_regressions_first":  {Action: config.ActionWarn},
		"no_thrashing":           {Action: config.ActionBlock, Options: opts},
		"no_commit_failing":      {Action: config.ActionBlock},
		"no_pointless_rerun":     {Action: config.ActionWarn},
		"scope_check":            {Action: config.ActionWarn},
	}}
}

func TestNoEditUnreadFires(t *testing.T) {
	s := newTestStore(t)
	cfg := enableAll(3)

	// On an empty store a.go is also unread, never edited, and outside
	// every (empty) blast radius, so scope_check fires as well.
	violations := Evaluate(s, "sess", Input{ToolName: "Edit", Path: "a.go"}, cfg)
	require.Len(t, violations, 2)
	require.Equal(t, "no_edit_unread", violations[0].RuleName)
	require.Equal(t, "scope_check", violations[1].RuleName)
}

func TestNoEditUnreadDoesNotFireAfterRead(t *testing.T) {
	s := newTestStore(t)
	cfg := enableAll(3)

	require.NoError(t, s.InsertFact("sess", fact.NewFileEvent(fact.FileRead, "a.go")))
	violations := Evaluate(s, "sess", Input{ToolName: "Edit", Path: "a.go"}, cfg)
	for _, v := range violations {
		require.NotEqual(t, "no_edit_unread", v.RuleName)
	}
}

func TestTestAfterEditsFiresAtThreshold(t *testing.T) {
	s := newTestStore(t)
	cfg := enableAll(3)

	require.NoError(t, s.InsertFact("sess", fact.NewTestResult("t1", fact.TestPass, "")))
	require.NoError(t, s.InsertFact("sess", fact.NewFileEvent(fact.FileRead, "a.go")))
	require.NoError(t, s.InsertFact("sess", fact.NewFileEvent(fact.FileEdit, "a.go")))
	require.NoError(t, s.InsertFact("sess", fact.NewFileEvent(fact.FileEdit, "b.go")))
	require.NoError(t, s.InsertFact("sess", fact.NewFileEvent(fact.FileEdit, "c.go")))

	violations := Evaluate(s, "sess", Input{ToolName: "Edit", Path: "c.go"}, cfg)
	var names []string
	for _, v := range violations {
		names = append(names, v.RuleName)
	}
	require.Contains(t, names, "test_after_edits")
}

func TestNoCommitFailingBlocks(t *testing.T) {
	s := newTestStore(t)
	cfg := enableAll(3)

	require.NoError(t, s.InsertFact("sess", fact.NewTestResult("t1", fact.TestFail, "boom")))

	in := FromToolCall("Bash", map[string]string{"command": "git commit -m wip"})
	violations := Evaluate(s, "sess", in, cfg)
	require.Len(t, violations, 1)
	require.Equal(t, "no_commit_failing", violations[0].RuleName)

	selected := SelectBlocking(violations)
	require.Len(t, selected, 1)
	require.Equal(t, config.ActionBlock, selected[0].Action)
}

func TestNoPointlessRerunFiresWithoutNewEdits(t *testing.T) {
	s := newTestStore(t)
	cfg := enableAll(3)

	require.NoError(t, s.InsertFact("sess", fact.NewTestResult("t1", fact.TestPass, "")))

	in := FromToolCall("Bash", map[string]string{"command": "npm test"})
	violations := Evaluate(s, "sess", in, cfg)
	var names []string
	for _, v := range violations {
		names = append(names, v.RuleName)
	}
	require.Contains(t, names, "no_pointless_rerun")
}

func TestNoPointlessRerunDoesNotFireAfterEdit(t *testing.T) {
	s := newTestStore(t)
	cfg := enableAll(3)

	require.NoError(t, s.InsertFact("sess", fact.NewTestResult("t1", fact.TestPass, "")))
	require.NoError(t, s.InsertFact("sess", fact.NewFileEvent(fact.FileEdit, "a.go")))

	in := FromToolCall("Bash", map[string]string{"command": "npm test"})
	violations := Evaluate(s, "sess", in, cfg)
	for _, v := range violations {
		require.NotEqual(t, "no_pointless_rerun", v.RuleName)
	}
}

func TestRuleOffIsSkipped(t *testing.T) {
	s := newTestStore(t)
	cfg := config.Defaults()

	violations := Evaluate(s, "sess", Input{ToolName: "Edit", Path: "a.go"}, cfg)
	require.Empty(t, violations)
}

func TestFixRegressionsFirstFiresForOtherFiles(t *testing.T) {
	s := newTestStore(t)
	cfg := enableAll(3)

	require.NoError(t, s.InsertFact("sess", fact.NewTestResult("sum_test", fact.TestPass, "")))
	require.NoError(t, s.InsertFact("sess", fact.NewFileEvent(fact.FileEdit, "src/sum.go")))
	require.NoError(t, s.InsertFact("sess", fact.NewTestResult("sum_test", fact.TestFail, "boom")))
	require.NoError(t, s.InsertFact("sess", fact.NewFileEvent(fact.FileRead, "src/other.go")))

	violations := Evaluate(s, "sess", Input{ToolName: "Edit", Path: "src/other.go"}, cfg)
	var names []string
	for _, v := range violations {
		names = append(names, v.RuleName)
	}
	require.Contains(t, names, "fix_regressions_first")
}

func TestFixRegressionsFirstAllowsEditingCause(t *testing.T) {
	s := newTestStore(t)
	cfg := enableAll(3)

	require.NoError(t, s.InsertFact("sess", fact.NewTestResult("sum_test", fact.TestPass, "")))
	require.NoError(t, s.InsertFact("sess", fact.NewFileEvent(fact.FileEdit, "src/sum.go")))
	require.NoError(t, s.InsertFact("sess", fact.NewTestResult("sum_test", fact.TestFail, "boom")))
	require.NoError(t, s.InsertFact("sess", fact.NewFileEvent(fact.FileRead, "src/sum.go")))

	violations := Evaluate(s, "sess", Input{ToolName: "Edit", Path: "src/sum.go"}, cfg)
	for _, v := range violations {
		require.NotEqual(t, "fix_regressions_first", v.RuleName)
	}
}
