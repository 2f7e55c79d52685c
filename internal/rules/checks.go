package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/anthropics/witness/internal/config"
	"github.com/anthropics/witness/internal/store"
	"github.com/anthropics/witness/internal/view"
)

var (
	commitCommandRE     = regexp.MustCompile(`\b(?:git\s+commit|jj\s+(?:commit|describe|new))\b`)
	testRunnerCommandRE = regexp.MustCompile(`\b(?:jest|vitest|mocha|npm\s+test|yarn\s+test|pnpm\s+test|npx\s+jest|npx\s+vitest|bun\s+test|pytest|python\s+-m\s+pytest|py\.test|go\s+test|cargo\s+test)\b`)
)

func checkNoEditUnread(s *store.Store, sessionID string, in Input, _ config.RuleConfig) (string, bool) {
	var count int
	err := s.QueryRow(`
		SELECT COUNT(*) FROM file_events
		WHERE session_id = ? AND event = 'read' AND file_path = ?
	`, sessionID, in.Path).Scan(&count)
	if err != nil || count > 0 {
		return "", false
	}
	return fmt.Sprintf("%s has not been read this session. Read it first before editing.", in.Path), true
}

func checkTestAfterEdits(s *store.Store, sessionID string, _ Input, rc config.RuleConfig) (string, bool) {
	threshold := rc.Threshold(3)
	result, ok, err := view.EditsSinceLastTestForSession(s, sessionID)
	if err != nil || !ok {
		return "", false
	}
	if result.EditCount < threshold {
		return "", false
	}
	return fmt.Sprintf("%d edits since last test run. Run tests before continuing.", result.EditCount), true
}

func checkFixRegressionsFirst(s *store.Store, sessionID string, in Input, _ config.RuleConfig) (string, bool) {
	regs, err := view.Regressions(s, sessionID)
	if err != nil {
		return "", false
	}

	seen := map[string]bool{}
	var names []string
	for _, r := range regs {
		if r.LikelyCause == in.Path {
			continue
		}
		if seen[r.TestName] {
			continue
		}
		seen[r.TestName] = true
		names = append(names, r.TestName)
	}
	if len(names) == 0 {
		return "", false
	}
	return fmt.Sprintf("%d regression(s) detected: %s. Fix regressions before editing other files.",
		len(names), strings.Join(names, ", ")), true
}

func checkNoThrashing(s *store.Store, sessionID string, in Input, rc config.RuleConfig) (string, bool) {
	threshold := rc.Threshold(3)
	thrashing, err := view.Thrashings(s, sessionID)
	if err != nil {
		return "", false
	}
	for _, th := range thrashing {
		if th.FilePath == in.Path && th.EditCount >= threshold {
			return fmt.Sprintf("%s has been edited %d times with failures persisting. Stop and reconsider the approach.",
				in.Path, th.EditCount), true
		}
	}
	return "", false
}

func checkNoCommitFailing(s *store.Store, sessionID string, _ Input, _ config.RuleConfig) (string, bool) {
	failing, err := view.FailingTests(s, sessionID)
	if err != nil || len(failing) == 0 {
		return "", false
	}
	names := make([]string, 0, len(failing))
	for _, f := range failing {
		names = append(names, f.TestName)
	}
	return fmt.Sprintf("%d test(s) currently failing (%s). Fix tests before committing.",
		len(failing), strings.Join(names, ", ")), true
}

func checkNoPointlessRerun(s *store.Store, sessionID string, _ Input, _ config.RuleConfig) (string, bool) {
	var priorCount int
	if err := s.QueryRow(`SELECT COUNT(*) FROM test_results WHERE session_id = ?`, sessionID).Scan(&priorCount); err != nil {
		return "", false
	}
	if priorCount == 0 {
		return "", false
	}
	_, ok, err := view.EditsSinceLastTestForSession(s, sessionID)
	if err != nil {
		return "", false
	}
	if ok {
		// A row exists only when edit_count > 0; its presence means there
		// has been at least one edit since the last test run.
		return "", false
	}
	return "No edits since last test run. Change something before rerunning the same tests.", true
}

func checkScopeCheck(s *store.Store, sessionID string, in Input, _ config.RuleConfig) (string, bool) {
	var readCount, editCount int
	if err := s.QueryRow(`
		SELECT COUNT(*) FROM file_events WHERE session_id = ? AND event = 'read' AND file_path = ?
	`, sessionID, in.Path).Scan(&readCount); err != nil {
		return "", false
	}
	if readCount > 0 {
		return "", false
	}
	if err := s.QueryRow(`
		SELECT COUNT(*) FROM file_events WHERE session_id = ? AND event = 'edit' AND file_path = ?
	`, sessionID, in.Path).Scan(&editCount); err != nil {
		return "", false
	}
	if editCount > 0 {
		return "", false
	}

	radii, err := view.BlastRadiusAll(s, sessionID)
	if err != nil {
		return "", false
	}
	for _, r := range radii {
		if r.AffectedFile == in.Path {
			return "", false
		}
	}
	return fmt.Sprintf("%s is outside the blast radius of current edits and has not been read this session.", in.Path), true
}
