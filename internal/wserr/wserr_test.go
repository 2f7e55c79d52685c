package wserr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseWrapsWithKind(t *testing.T) {
	cause := errors.New("bad json")
	err := Parse("decode", cause)
	require.Error(t, err)
	require.True(t, Is(err, KindParse))
	require.False(t, Is(err, KindStore))
	require.Equal(t, "parse: decode: bad json", err.Error())
	require.ErrorIs(t, err, cause)
}

func TestStoreWrapsWithKind(t *testing.T) {
	cause := errors.New("disk full")
	err := Store("insert", cause)
	require.True(t, Is(err, KindStore))
	require.Equal(t, "store: insert: disk full", err.Error())
}

func TestConfigWrapsWithKind(t *testing.T) {
	cause := errors.New("malformed")
	err := Config("load", cause)
	require.True(t, Is(err, KindConfig))
	require.Equal(t, "config: load: malformed", err.Error())
}

func TestFatalWrapsWithKind(t *testing.T) {
	cause := errors.New("unreachable case")
	err := Fatal("dispatch", cause)
	require.True(t, Is(err, KindFatal))
	require.Equal(t, "fatal: dispatch: unreachable case", err.Error())
}

func TestWrappersReturnNilForNilCause(t *testing.T) {
	require.NoError(t, Parse("op", nil))
	require.NoError(t, Store("op", nil))
	require.NoError(t, Config("op", nil))
	require.NoError(t, Fatal("op", nil))
}

func TestErrorWithoutOpOmitsColon(t *testing.T) {
	err := Parse("", errors.New("boom"))
	require.Equal(t, "parse: boom", err.Error())
}

func TestIsFalseForPlainError(t *testing.T) {
	require.False(t, Is(errors.New("plain"), KindParse))
}

func TestIsFalseForNilError(t *testing.T) {
	require.False(t, Is(nil, KindParse))
}

func TestKindStringUnknown(t *testing.T) {
	require.Equal(t, "unknown", Kind(99).String())
}
