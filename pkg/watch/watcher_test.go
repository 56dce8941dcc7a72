package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/aretw0/morph/pkg/value"
)

type recorder struct {
	mu   sync.Mutex
	docs []value.Map
	errs []error
}

func (r *recorder) onDoc(m value.Map) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs = append(r.docs, m)
}

func (r *recorder) onErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *recorder) count() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.docs), len(r.errs)
}

func (r *recorder) latest() value.Map {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.docs[len(r.docs)-1]
}

func TestWatcher_InitialLoadAndReload(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("n: 1\n"), 0o644))

	rec := &recorder{}
	w, err := NewWatcher(path, rec.onDoc,
		WithDebounceDelay(10*time.Millisecond),
		WithErrorCallback(rec.onErr),
	)
	require.NoError(t, err)

	require.NoError(t, w.Start(context.Background()))
	defer func() { assert.NoError(t, w.Stop()) }()

	docs, _ := rec.count()
	require.Equal(t, 1, docs, "start delivers the initial document")
	assert.Equal(t, value.Integer(1), w.Last()["n"])

	require.NoError(t, os.WriteFile(path, []byte("n: 2\n"), 0o644))

	require.Eventually(t, func() bool {
		return value.Equal(value.Integer(2), w.Last()["n"])
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, value.Integer(2), rec.latest()["n"])
}

func TestWatcher_ReportsBrokenDocument(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("n: 1\n"), 0o644))

	rec := &recorder{}
	w, err := NewWatcher(path, rec.onDoc,
		WithDebounceDelay(10*time.Millisecond),
		WithErrorCallback(rec.onErr),
	)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer func() { assert.NoError(t, w.Stop()) }()

	require.NoError(t, os.WriteFile(path, []byte("- not\n- a mapping\n"), 0o644))

	require.Eventually(t, func() bool {
		_, errs := rec.count()
		return errs > 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_StartFailsOnMissingFile(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := NewWatcher(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.NoError(t, err)

	assert.Error(t, w.Start(context.Background()))
	assert.NoError(t, w.Stop())
}

func TestWatcher_StopsOnContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a": "ok"}`), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	w, err := NewWatcher(path, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(ctx))

	cancel()
	assert.NoError(t, w.Stop())
	assert.Equal(t, value.Text("ok"), w.Last()["a"])
}
