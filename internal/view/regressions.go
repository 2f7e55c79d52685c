package view

import "github.com/anthropics/witness/internal/store"

type testResultRow struct {
	T       int64
	Outcome string
	Message string
}

type editRow struct {
	T    int64
	Path string
}

// Regressions finds, for every test currently failing, the file edits that
// plausibly caused the regression: the test passed at some point (pass_t),
// a file was edited strictly between that pass and the current failure
// (fail_t), and no failure for that same test occurred between the pass
// and the edit. One row is emitted per qualifying edit — a single
// regression can have more than one candidate cause.
func Regressions(s *store.Store, sessionID string) ([]Regression, error) {
	failing, err := FailingTests(s, sessionID)
	if err != nil {
		return nil, err
	}
	if len(failing) == 0 {
		return nil, nil
	}

	edits, err := allEdits(s, sessionID)
	if err != nil {
		return nil, err
	}

	var out []Regression
	for _, f := range failing {
		history, err := testHistory(s, sessionID, f.TestName)
		if err != nil {
			return nil, err
		}

		passT, ok := lastPassBefore(history, f.T)
		if !ok {
			continue
		}

		for _, e := range edits {
			if e.T <= passT || e.T >= f.T {
				continue
			}
			if failureBetween(history, passT, e.T) {
				continue
			}
			out = append(out, Regression{
				TestName:    f.TestName,
				Message:     f.Message,
				PassT:       passT,
				EditT:       e.T,
				FailT:       f.T,
				LikelyCause: e.Path,
			})
		}
	}
	return out, nil
}

func allEdits(s *store.Store, sessionID string) ([]editRow, error) {
	rows, err := s.Query(`
		SELECT t, file_path FROM file_events
		WHERE session_id = ? AND event = 'edit'
		ORDER BY t ASC
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []editRow
	for rows.Next() {
		var e editRow
		if err := rows.Scan(&e.T, &e.Path); err != nil {
			continue
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func testHistory(s *store.Store, sessionID, testName string) ([]testResultRow, error) {
	rows, err := s.Query(`
		SELECT t, outcome, COALESCE(message, '') FROM test_results
		WHERE session_id = ? AND test_name = ?
		ORDER BY t ASC
	`, sessionID, testName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []testResultRow
	for rows.Next() {
		var r testResultRow
		if err := rows.Scan(&r.T, &r.Outcome, &r.Message); err != nil {
			continue
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// lastPassBefore returns the latest t with outcome "pass" strictly before
// before, if one exists.
func lastPassBefore(history []testResultRow, before int64) (int64, bool) {
	var found int64
	ok := false
	for _, r := range history {
		if r.T >= before {
			break
		}
		if r.Outcome == "pass" {
			found = r.T
			ok = true
		}
	}
	return found, ok
}

// failureBetween reports whether history contains a "fail" outcome with t
// strictly between lo and hi.
func failureBetween(history []testResultRow, lo, hi int64) bool {
	for _, r := range history {
		if r.T > lo && r.T < hi && r.Outcome == "fail" {
			return true
		}
	}
	return false
}
