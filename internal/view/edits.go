package view

import "github.com/anthropics/witness/internal/store"

// EditsSinceLastTestForSession counts edit events after the most recent
// test result in the session, using 0 as the anchor when no test has run
// yet (so edits before any test ever ran still count). Returns ok=false
// only when that count is zero, per the view's "no row when count is
// zero" contract — not when test history happens to be empty.
func EditsSinceLastTestForSession(s *store.Store, sessionID string) (EditsSinceLastTest, bool, error) {
	var lastTestT int64
	row := s.QueryRow(`SELECT MAX(t) FROM test_results WHERE session_id = ?`, sessionID)
	var nullableT *int64
	if scanErr := row.Scan(&nullableT); scanErr != nil {
		return EditsSinceLastTest{}, false, scanErr
	}
	if nullableT != nil {
		lastTestT = *nullableT
	}

	var count int
	countRow := s.QueryRow(`
		SELECT COUNT(*) FROM file_events
		WHERE session_id = ? AND event = 'edit' AND t > ?
	`, sessionID, lastTestT)
	if scanErr := countRow.Scan(&count); scanErr != nil {
		return EditsSinceLastTest{}, false, scanErr
	}
	if count == 0 {
		return EditsSinceLastTest{}, false, nil
	}

	return EditsSinceLastTest{EditCount: count, LastTestT: lastTestT}, true, nil
}

// EditedButUnreadFiles returns, for every file with at least one edit event
// that had no prior read event in the same session, the earliest such edit.
func EditedButUnreadFiles(s *store.Store, sessionID string) ([]EditedButUnread, error) {
	rows, err := s.Query(`
		SELECT e.file_path, MIN(e.t) AS edit_t
		FROM file_events e
		WHERE e.session_id = ? AND e.event = 'edit'
		  AND NOT EXISTS (
			SELECT 1 FROM file_events r
			WHERE r.session_id = e.session_id
			  AND r.file_path = e.file_path
			  AND r.event = 'read'
			  AND r.t < e.t
		  )
		GROUP BY e.file_path
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EditedButUnread
	for rows.Next() {
		var u EditedButUnread
		if err := rows.Scan(&u.FilePath, &u.EditT); err != nil {
			continue
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UntestedEdits returns every file whose most recent edit has no test
// result recorded after it.
func UntestedEdits(s *store.Store, sessionID string) ([]UntestedEdit, error) {
	rows, err := s.Query(`
		SELECT e.file_path, MAX(e.t) AS last_edit_t
		FROM file_events e
		WHERE e.session_id = ? AND e.event = 'edit'
		GROUP BY e.file_path
		HAVING NOT EXISTS (
			SELECT 1 FROM test_results tr
			WHERE tr.session_id = e.session_id AND tr.t > MAX(e.t)
		)
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []UntestedEdit
	for rows.Next() {
		var u UntestedEdit
		if err := rows.Scan(&u.FilePath, &u.LastEditT); err != nil {
			continue
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
