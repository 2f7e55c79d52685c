package store

import (
	"database/sql"
	"errors"

	"github.com/anthropics/witness/internal/wserr"
)

// Tick atomically allocates and returns the next monotonic value for
// session. If the session has no counter row yet, one is inserted with
// value 1. For a single-writer workload (the only one Witness assumes,
// since hook invocations are serialized by the host agent) an upsert
// followed by a read of the row just written is sufficient atomicity.
func (s *Store) Tick(sessionID string) (int64, error) {
	_, err := s.db.Exec(`
		INSERT INTO clock (session_id, current_t) VALUES (?, 1)
		ON CONFLICT(session_id) DO UPDATE SET current_t = current_t + 1
	`, sessionID)
	if err != nil {
		return 0, wserr.Store("tick", err)
	}

	var t int64
	if err := s.db.QueryRow(`SELECT current_t FROM clock WHERE session_id = ?`, sessionID).Scan(&t); err != nil {
		return 0, wserr.Store("tick: read back", err)
	}
	return t, nil
}

// Current returns session's current tick without advancing it, or 0 if the
// session has never ticked.
func (s *Store) Current(sessionID string) (int64, error) {
	var t int64
	err := s.db.QueryRow(`SELECT current_t FROM clock WHERE session_id = ?`, sessionID).Scan(&t)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, wserr.Store("current", err)
	}
	return t, nil
}
