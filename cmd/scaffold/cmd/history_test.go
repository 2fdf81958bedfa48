package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veraison/scaffold/pkg/history"
	"github.com/veraison/scaffold/pkg/model"
	"github.com/veraison/scaffold/pkg/test"
)

func TestRenderGenerations(t *testing.T) {
	gen := model.NewGeneration("lockFirmware", "lock-firmware", false)
	gen.Target = "/work/lock-firmware"
	gen.FileCount = 4

	rendered := renderGenerations([]*model.Generation{gen})
	assert.Contains(t, rendered, gen.UUID)
	assert.Contains(t, rendered, "lock-firmware")
	assert.Contains(t, rendered, "lockFirmware")
	assert.Contains(t, rendered, "/work/lock-firmware")
}

func TestLoadFixtures(t *testing.T) {
	db := test.NewTestDB(t)

	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`- model: Generation
  rows:
    - uuid: 0b7e3a4c-1f62-4d1a-9d6e-2f3c5a8b9e10
      raw_name: lockFirmware
      project_name: lock-firmware
      forced: false
      template: /templates/firmware
      target: /work/lock-firmware
      file_count: 3
`), 0o644))

	require.NoError(t, loadFixtures(context.Background(), db, false, path))

	store, err := history.OpenWithDB(context.Background(), db)
	require.NoError(t, err)

	gen, err := store.Get("0b7e3a4c-1f62-4d1a-9d6e-2f3c5a8b9e10")
	require.NoError(t, err)
	assert.Equal(t, "lock-firmware", gen.ProjectName)
	assert.Equal(t, 3, gen.FileCount)
}

func TestRunHistoryClear(t *testing.T) {
	store, err := history.OpenWithDB(context.Background(), test.NewTestDB(t))
	require.NoError(t, err)

	gen := model.NewGeneration("lockFirmware", "lock-firmware", false)
	gen.Target = "/work/lock-firmware"
	require.NoError(t, store.Add(gen))

	var out bytes.Buffer
	require.NoError(t, runHistoryClear(store, &out))
	assert.Contains(t, out.String(), "ok")

	gens, err := store.List(history.Filter{})
	require.NoError(t, err)
	assert.Empty(t, gens)
}
