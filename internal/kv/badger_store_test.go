package kv

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *BadgerStore {
	t.Helper()
	dir, err := os.MkdirTemp("", "vertexdb-kv-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	store, err := NewBadgerStore(dir)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPutAndGetRoundTrip(t *testing.T) {
	store := newTestStore(t)

	batch, err := store.NewBatch()
	require.NoError(t, err)
	batch.Put(Key("a"), []byte("1"))
	batch.Put(Key("b"), []byte("2"))
	require.NoError(t, batch.Commit())

	snap, err := store.Snapshot()
	require.NoError(t, err)
	defer snap.Close()

	val, ok, err := snap.Get(Key("a"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1", string(val))

	_, ok, err = snap.Get(Key("missing"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestScanCanonicalOrder(t *testing.T) {
	store := newTestStore(t)

	batch, err := store.NewBatch()
	require.NoError(t, err)
	for _, k := range []string{"x\x001", "x\x002", "x\x003", "y\x001"} {
		batch.Put(Key(k), []byte(k))
	}
	require.NoError(t, batch.Commit())

	snap, err := store.Snapshot()
	require.NoError(t, err)
	defer snap.Close()

	it, err := snap.Scan(Key("x\x00"), Key("x\x00\xff"), Canonical)
	require.NoError(t, err)
	defer it.Close()

	var got []string
	for it.Next() {
		got = append(got, string(it.Entry().Value))
	}
	require.Equal(t, []string{"x\x001", "x\x002", "x\x003"}, got)
}

func TestScanReverseOrder(t *testing.T) {
	store := newTestStore(t)

	batch, err := store.NewBatch()
	require.NoError(t, err)
	for _, k := range []string{"x\x001", "x\x002", "x\x003"} {
		batch.Put(Key(k), []byte(k))
	}
	require.NoError(t, batch.Commit())

	snap, err := store.Snapshot()
	require.NoError(t, err)
	defer snap.Close()

	it, err := snap.Scan(Key("x\x00"), Key("x\x00\xff"), Reverse)
	require.NoError(t, err)
	defer it.Close()

	var got []string
	for it.Next() {
		got = append(got, string(it.Entry().Value))
	}
	require.Equal(t, []string{"x\x003", "x\x002", "x\x001"}, got)
}

func TestCounterIncrAndGet(t *testing.T) {
	store := newTestStore(t)
	key := CounterKey{Namespace: "entity", Type: "person"}

	require.Equal(t, int64(0), store.GetCounter(key))
	require.NoError(t, store.IncrCounter(key, 3))
	require.NoError(t, store.IncrCounter(key, 4))
	require.Equal(t, int64(7), store.GetCounter(key))
}

func TestBatchDiscard(t *testing.T) {
	store := newTestStore(t)

	batch, err := store.NewBatch()
	require.NoError(t, err)
	batch.Put(Key("discarded"), []byte("v"))
	batch.Discard()

	snap, err := store.Snapshot()
	require.NoError(t, err)
	defer snap.Close()

	_, ok, err := snap.Get(Key("discarded"))
	require.NoError(t, err)
	require.False(t, ok)
}
