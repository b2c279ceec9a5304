package history

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")

	err := Save(path, func(w io.Writer) (int, error) {
		return io.WriteString(w, "1 + 2\nx = 3\n")
	})
	require.NoError(t, err)

	var b bytes.Buffer

	err = Load(path, func(r io.Reader) (int, error) {
		n, err := b.ReadFrom(r)

		return int(n), err
	})
	require.NoError(t, err)
	assert.Equal(t, "1 + 2\nx = 3\n", b.String())
}

func TestPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "tern", "history")

	err := Save(path, func(w io.Writer) (int, error) {
		return io.WriteString(w, "1\n")
	})
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestMissing(t *testing.T) {
	called := false

	err := Load(filepath.Join(t.TempDir(), "missing"), func(io.Reader) (int, error) {
		called = true

		return 0, nil
	})
	assert.NoError(t, err)
	assert.False(t, called)
}

func TestErrors(t *testing.T) {
	boom := errors.New("boom")

	path := filepath.Join(t.TempDir(), "history")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	err := Load(path, func(io.Reader) (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)

	err = Save(path, func(io.Writer) (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)

	err = Save(filepath.Join(path, "nested"), func(io.Writer) (int, error) {
		return 0, nil
	})
	assert.Error(t, err)
}
