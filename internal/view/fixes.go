package view

import "github.com/anthropics/witness/internal/store"

// LikelyFixes finds, for every test, consecutive result pairs that go from
// fail to pass, attributing the fix to a single edit event that occurred
// strictly between the two results. If zero or more than one edit occurred
// in that window, the transition is ambiguous and is not reported.
func LikelyFixes(s *store.Store, sessionID string) ([]LikelyFix, error) {
	names, err := distinctTestNames(s, sessionID)
	if err != nil {
		return nil, err
	}

	edits, err := allEdits(s, sessionID)
	if err != nil {
		return nil, err
	}

	var out []LikelyFix
	for _, name := range names {
		history, err := testHistory(s, sessionID, name)
		if err != nil {
			return nil, err
		}
		for i := 1; i < len(history); i++ {
			prev, cur := history[i-1], history[i]
			if prev.Outcome != "fail" || cur.Outcome != "pass" {
				continue
			}
			candidates := editsInWindow(edits, prev.T, cur.T)
			if len(candidates) != 1 {
				continue
			}
			out = append(out, LikelyFix{
				FilePath: candidates[0].Path,
				EditT:    candidates[0].T,
				TestName: name,
				FromT:    prev.T,
				ToT:      cur.T,
			})
		}
	}
	return out, nil
}

func distinctTestNames(s *store.Store, sessionID string) ([]string, error) {
	rows, err := s.Query(`SELECT DISTINCT test_name FROM test_results WHERE session_id = ?`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			continue
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

func editsInWindow(edits []editRow, lo, hi int64) []editRow {
	var out []editRow
	for _, e := range edits {
		if e.T > lo && e.T < hi {
			out = append(out, e)
		}
	}
	return out
}
