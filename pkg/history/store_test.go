package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veraison/scaffold/pkg/model"
	"github.com/veraison/scaffold/pkg/test"
)

func newTestStore(t *testing.T, options ...ConfigOption) *Store {
	store, err := OpenWithDB(context.Background(), test.NewTestDB(t), options...)
	require.NoError(t, err)

	return store
}

func TestOpen(t *testing.T) {
	_, err := Open(context.Background(), nil)
	assert.EqualError(t, err, "nil config")

	_, err = Open(context.Background(), NewConfig("foo", ""))
	assert.EqualError(t, err, "invalid DBMS: foo")

	store, err := Open(context.Background(), NewConfig("sqlite", "file::memory:"))
	require.NoError(t, err)
	store.DB.SetMaxOpenConns(1)
	defer func() { assert.NoError(t, store.Close()) }()

	require.NoError(t, store.Init())
	require.NoError(t, store.Migrate())

	gens, err := store.List(Filter{})
	assert.NoError(t, err)
	assert.Empty(t, gens)
}

func TestStore_roundtrip(t *testing.T) {
	store := newTestStore(t)

	first := model.NewGeneration("lockFirmware", "lock-firmware", false)
	first.Target = "/work/lock-firmware"
	first.TimeAdded = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, store.Add(first))

	second := model.NewGeneration("lock_firmware", "lock_firmware", false)
	second.Target = "/work/lock_firmware"
	require.NoError(t, store.Add(second))
	assert.False(t, second.TimeAdded.IsZero())

	got, err := store.Get(first.UUID)
	require.NoError(t, err)
	assert.Equal(t, "lockFirmware", got.RawName)
	assert.Equal(t, "lock-firmware", got.ProjectName)

	all, err := store.List(Filter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.UUID, all[0].UUID)
	assert.Equal(t, first.UUID, all[1].UUID)

	byName, err := store.List(Filter{ProjectName: "lock-firmware"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, first.UUID, byName[0].UUID)

	limited, err := store.List(Filter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	require.NoError(t, store.Delete(first.UUID))
	_, err = store.Get(first.UUID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = store.Delete(first.UUID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Clear())
	all, err = store.List(Filter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStore_Add_require_unique(t *testing.T) {
	store := newTestStore(t, OptionRequireUnique)

	gen := model.NewGeneration("lockFirmware", "lock-firmware", false)
	gen.Target = "/work/lock-firmware"
	require.NoError(t, store.Add(gen))

	again := model.NewGeneration("LockFirmware", "lock-firmware", false)
	again.Target = "/work/lock-firmware"
	assert.ErrorIs(t, store.Add(again), ErrDuplicate)

	elsewhere := model.NewGeneration("LockFirmware", "lock-firmware", false)
	elsewhere.Target = "/other/lock-firmware"
	assert.NoError(t, store.Add(elsewhere))
}

func TestStore_Add_invalid(t *testing.T) {
	store := newTestStore(t)

	err := store.Add(&model.Generation{ProjectName: "foo"})
	assert.ErrorContains(t, err, "UUID not set")
}

func TestStore_CheckUnique(t *testing.T) {
	gen := model.NewGeneration("lockFirmware", "lock-firmware", false)
	gen.Target = "/work/lock-firmware"

	lax := newTestStore(t)
	require.NoError(t, lax.Add(gen))
	assert.NoError(t, lax.CheckUnique(gen.ProjectName, gen.Target))

	strict := newTestStore(t, OptionRequireUnique)
	assert.NoError(t, strict.CheckUnique(gen.ProjectName, gen.Target))
	require.NoError(t, strict.Add(gen))
	assert.ErrorIs(t, strict.CheckUnique(gen.ProjectName, gen.Target), ErrDuplicate)
	assert.NoError(t, strict.CheckUnique(gen.ProjectName, "/elsewhere"))
}
