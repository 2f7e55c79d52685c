package view

import "github.com/anthropics/witness/internal/store"

// Thrashings reports, for every file with at least one currently failing
// test in the session, the number of edits made to it since the last
// successful edit cycle — a cycle ends the moment any test passes in the
// window between one edit and the next. The view reports the raw count;
// callers (the no_thrashing rule) are responsible for comparing it against
// a threshold.
func Thrashings(s *store.Store, sessionID string) ([]Thrashing, error) {
	failing, err := FailingTests(s, sessionID)
	if err != nil {
		return nil, err
	}
	if len(failing) == 0 {
		return nil, nil
	}

	files, err := editedFiles(s, sessionID)
	if err != nil {
		return nil, err
	}

	var out []Thrashing
	for _, file := range files {
		edits, err := editsToFile(s, sessionID, file)
		if err != nil {
			return nil, err
		}
		if len(edits) == 0 {
			continue
		}

		count := 0
		for i, e := range edits {
			count++
			windowEnd := int64(1 << 62)
			if i+1 < len(edits) {
				windowEnd = edits[i+1].T
			}
			hasPass, err := passExistsBetween(s, sessionID, e.T, windowEnd)
			if err != nil {
				return nil, err
			}
			if hasPass {
				count = 0
			}
		}

		out = append(out, Thrashing{
			FilePath:  file,
			EditCount: count,
			LastEditT: edits[len(edits)-1].T,
		})
	}
	return out, nil
}

func editedFiles(s *store.Store, sessionID string) ([]string, error) {
	rows, err := s.Query(`
		SELECT DISTINCT file_path FROM file_events
		WHERE session_id = ? AND event = 'edit'
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			continue
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func editsToFile(s *store.Store, sessionID, filePath string) ([]editRow, error) {
	rows, err := s.Query(`
		SELECT t, file_path FROM file_events
		WHERE session_id = ? AND event = 'edit' AND file_path = ?
		ORDER BY t ASC
	`, sessionID, filePath)
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

func passExistsBetween(s *store.Store, sessionID string, lo, hi int64) (bool, error) {
	var count int
	err := s.QueryRow(`
		SELECT COUNT(*) FROM test_results
		WHERE session_id = ? AND outcome = 'pass' AND t > ? AND t < ?
	`, sessionID, lo, hi).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
