package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anthropics/witness/internal/fact"
)

func TestOpenCreatesFileAndSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "witness.db")

	s, err := Open(dbPath)
	require.NoError(t, err)
	defer s.Close()

	require.Equal(t, dbPath, s.Path())

	tables := []string{"clock", "tool_calls", "hook_events", "file_events", "test_results", "lint_results", "type_errors", "imports"}
	for _, table := range tables {
		var name string
		err := s.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoErrorf(t, err, "table %s not found", table)
	}
}

func TestApplySchemaIsIdempotent(t *testing.T) {
	s, err := OpenInMemory()
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.applySchema())
	require.NoError(t, s.applySchema())
}

func TestTickMonotonic(t *testing.T) {
	s, err := OpenInMemory()
	require.NoError(t, err)
	defer s.Close()

	for want := int64(1); want <= 5; want++ {
		got, err := s.Tick("sess-a")
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	cur, err := s.Current("sess-a")
	require.NoError(t, err)
	require.Equal(t, int64(5), cur)
}

func TestCurrentWithoutTickIsZero(t *testing.T) {
	s, err := OpenInMemory()
	require.NoError(t, err)
	defer s.Close()

	cur, err := s.Current("never-ticked")
	require.NoError(t, err)
	require.Equal(t, int64(0), cur)
}

func TestSessionIsolationOfClock(t *testing.T) {
	s, err := OpenInMemory()
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Tick("a")
	require.NoError(t, err)
	_, err = s.Tick("a")
	require.NoError(t, err)
	_, err = s.Tick("b")
	require.NoError(t, err)

	a, err := s.Current("a")
	require.NoError(t, err)
	require.Equal(t, int64(2), a)

	b, err := s.Current("b")
	require.NoError(t, err)
	require.Equal(t, int64(1), b)
}

func TestInsertToolCallAndFileEvent(t *testing.T) {
	s, err := OpenInMemory()
	require.NoError(t, err)
	defer s.Close()

	_, err = s.InsertToolCall("sess", "Read", `{"path":"src/a.ts"}`, `import x from "y"`)
	require.NoError(t, err)

	require.NoError(t, s.InsertFact("sess", fact.NewFileEvent(fact.FileRead, "src/a.ts")))
	require.NoError(t, s.InsertFact("sess", fact.NewFileEvent(fact.FileEdit, "src/a.ts")))
	require.NoError(t, s.InsertFact("sess", fact.NewImport("src/a.ts", "y")))

	var readT, editT int64
	require.NoError(t, s.QueryRow(`SELECT t FROM file_events WHERE event='read' AND file_path='src/a.ts'`).Scan(&readT))
	require.NoError(t, s.QueryRow(`SELECT t FROM file_events WHERE event='edit' AND file_path='src/a.ts'`).Scan(&editT))
	require.Less(t, readT, editT)

	var importCount int
	require.NoError(t, s.QueryRow(`SELECT COUNT(*) FROM imports WHERE source_file='src/a.ts' AND imported_module='y'`).Scan(&importCount))
	require.Equal(t, 1, importCount)
}
