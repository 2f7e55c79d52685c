package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultsAreAllOff(t *testing.T) {
	c := Defaults()
	require.Equal(t, ActionOff, c.For("no_thrashing").Action)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	c := Load(t.TempDir())
	require.Equal(t, ActionOff, c.For("no_edit_unread").Action)
}

func TestLoadMalformedFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".witness.json"), []byte("{not json"), 0o644))
	c := Load(dir)
	require.Equal(t, ActionOff, c.For("no_edit_unread").Action)
}

func TestLoadBareActionString(t *testing.T) {
	dir := t.TempDir()
	body := `{"rules": {"no_edit_unread": "warn"}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".witness.json"), []byte(body), 0o644))

	c := Load(dir)
	require.Equal(t, ActionWarn, c.For("no_edit_unread").Action)
}

func TestLoadTupleWithOptions(t *testing.T) {
	dir := t.TempDir()
	body := `{"rules": {"no_thrashing": ["block", {"threshold": 5}]}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".witness.json"), []byte(body), 0o644))

	c := Load(dir)
	rc := c.For("no_thrashing")
	require.Equal(t, ActionBlock, rc.Action)
	require.Equal(t, 5, rc.Threshold(3))
}

func TestThresholdFallsBackWithoutOptions(t *testing.T) {
	rc := RuleConfig{Action: ActionWarn}
	require.Equal(t, 3, rc.Threshold(3))
}
