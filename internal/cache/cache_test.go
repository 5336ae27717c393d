package cache

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inovacc/fieldlog/internal/database"
	"github.com/inovacc/fieldlog/internal/migrate"
	"github.com/inovacc/fieldlog/internal/model"
)

type brokenStore struct {
	database.Store
}

func (brokenStore) Put(string, []byte) error {
	return errors.New("disk full")
}

func (brokenStore) Get(string) ([]byte, error) {
	return nil, errors.New("disk gone")
}

func TestLocal_ReadBeforeWrite(t *testing.T) {
	c := New(database.NewMemory())

	_, err := c.Read()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocal_RoundTrip(t *testing.T) {
	db, err := database.NewBolt(filepath.Join(t.TempDir(), "cache.bolt"))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	c := New(db)

	doc := model.DefaultDocument()
	doc.ConnectionConfig = `{"endpoint":"localhost:7070"}`
	doc.Reports = []model.WorkReport{{
		ID:         "r1",
		Technician: "Juan Pérez",
		ProjectNum: "10001",
		Vehicle:    "Furgoneta 1 (1234-BBC)",
		Expenses:   model.Expenses{Food: 9.5, OthersDesc: "peaje"},
		ImageNames: []string{"a.jpg"},
	}}

	require.NoError(t, c.Write(doc))

	raw, err := c.Read()
	require.NoError(t, err)

	if diff := cmp.Diff(doc, migrate.Migrate(raw)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLocal_Overwrite(t *testing.T) {
	c := New(database.NewMemory())

	first := model.DefaultDocument()
	second := model.DefaultDocument()
	second.Vehicles = []string{"Only van"}

	require.NoError(t, c.Write(first))
	require.NoError(t, c.Write(second))

	raw, err := c.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"Only van"}, migrate.Migrate(raw).Vehicles)
}

func TestLocal_StorageFailures(t *testing.T) {
	c := New(brokenStore{})

	err := c.Write(model.DefaultDocument())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	_, err = c.Read()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
