package view

import (
	"github.com/anthropics/witness/internal/store"
)

// CurrentTestStates returns the most recently recorded outcome for every
// test name the session has seen, one row per test_name.
func CurrentTestStates(s *store.Store, sessionID string) ([]CurrentTestState, error) {
	rows, err := s.Query(`
		SELECT tr.test_name, tr.outcome, COALESCE(tr.message, ''), tr.t
		FROM test_results tr
		JOIN (
			SELECT test_name, MAX(t) AS t
			FROM test_results
			WHERE session_id = ?
			GROUP BY test_name
		) latest ON latest.test_name = tr.test_name AND latest.t = tr.t
		WHERE tr.session_id = ?
	`, sessionID, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CurrentTestState
	for rows.Next() {
		var c CurrentTestState
		if err := rows.Scan(&c.TestName, &c.Outcome, &c.Message, &c.T); err != nil {
			continue
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// FailingTests filters CurrentTestStates to tests whose latest outcome is
// a failure.
func FailingTests(s *store.Store, sessionID string) ([]CurrentTestState, error) {
	all, err := CurrentTestStates(s, sessionID)
	if err != nil {
		return nil, err
	}
	var failing []CurrentTestState
	for _, c := range all {
		if c.Outcome == "fail" {
			failing = append(failing, c)
		}
	}
	return failing, nil
}

// ErrorClusters groups the currently-failing tests by shared failure
// message, keeping only groups with more than one member.
func ErrorClusters(s *store.Store, sessionID string) ([]ErrorCluster, error) {
	failing, err := FailingTests(s, sessionID)
	if err != nil {
		return nil, err
	}

	order := []string{}
	byMessage := map[string][]string{}
	for _, f := range failing {
		if f.Message == "" {
			continue
		}
		if _, ok := byMessage[f.Message]; !ok {
			order = append(order, f.Message)
		}
		byMessage[f.Message] = append(byMessage[f.Message], f.TestName)
	}

	var out []ErrorCluster
	for _, msg := range order {
		tests := byMessage[msg]
		if len(tests) > 1 {
			out = append(out, ErrorCluster{Message: msg, Tests: tests})
		}
	}
	return out, nil
}
