package engine

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternlang/tern/internal/common/exception"
	"github.com/ternlang/tern/internal/engine/sys"
	"github.com/ternlang/tern/internal/reader/source"
	"github.com/ternlang/tern/internal/testutil"
)

func setup(t *testing.T) (*T, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	s, err := sys.New(sys.Options{
		Console: &bytes.Buffer{},
		Logger:  testutil.NewTestLogger(t),
	})
	require.NoError(t, err)
	t.Cleanup(s.Close)

	out, errs := &bytes.Buffer{}, &bytes.Buffer{}

	return New(s, out, errs), out, errs
}

func TestEvaluate(t *testing.T) {
	e, out, _ := setup(t)

	require.NoError(t, e.Evaluate(source.New("test", "1 + 2, \"x\"")))
	require.NoError(t, e.Evaluate(source.New("test", "a = 1, b = [a]")))

	assert.Equal(t, "3\n\"x\"\n{a:1,b:[1]}\n", out.String())

	err := e.Evaluate(source.New("test", "a"))
	assert.ErrorIs(t, err, exception.ErrName)
}

func TestFile(t *testing.T) {
	e, out, _ := setup(t)

	path := filepath.Join(t.TempDir(), "main.tern")
	require.NoError(t, os.WriteFile(path, []byte("sum(range(5))"), 0o600))

	require.NoError(t, e.File(path))
	assert.Equal(t, "10\n", out.String())

	assert.Error(t, e.File(path+".missing"))
}

func TestReport(t *testing.T) {
	var b bytes.Buffer

	Report(&b, exception.New(exception.Interrupted, nil, "interrupted"))
	Report(&b, errors.New("boom"))

	assert.Equal(t, "interrupted\nERROR: boom\n", b.String())
}

type buffer struct {
	sync.Mutex
	b bytes.Buffer
}

func (b *buffer) Write(p []byte) (int, error) {
	b.Lock()
	defer b.Unlock()

	return b.b.Write(p)
}

func (b *buffer) Contains(s string) bool {
	b.Lock()
	defer b.Unlock()

	return bytes.Contains(b.b.Bytes(), []byte(s))
}

func TestLive(t *testing.T) {
	s, err := sys.New(sys.Options{
		Console: &bytes.Buffer{},
		Logger:  testutil.NewTestLogger(t),
	})
	require.NoError(t, err)
	t.Cleanup(s.Close)

	out, errs := &buffer{}, &buffer{}
	e := New(s, out, errs)

	path := filepath.Join(t.TempDir(), "main.tern")
	require.NoError(t, os.WriteFile(path, []byte("1 + 1"), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	done := make(chan error, 1)

	go func() {
		done <- e.Live(ctx, path, "", 10*time.Millisecond)
	}()

	require.Eventually(t, func() bool {
		return out.Contains("2\n")
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("1 +"), 0o600))

	require.Eventually(t, func() bool {
		return errs.Contains("ERROR: ")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}
