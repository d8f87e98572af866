package database

import (
	"Campus/internal/config"
	"Campus/internal/models"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestOpen_SQLite(t *testing.T) {
	cfg := &config.Configuration{Database: config.DatabaseConfig{
		Backend: config.BackendSQLite,
		Path:    filepath.Join(t.TempDir(), "campus.db"),
	}}

	store, err := Open(cfg, nil)
	require.NoError(t, err)
	defer store.Close()

	assert.NotNil(t, store.SQL)
	assert.True(t, store.SQL.Migrator().HasTable("courses"))
	assert.True(t, store.SQL.Migrator().HasTable("students"))
}

func TestOpen_Bolt(t *testing.T) {
	cfg := &config.Configuration{Database: config.DatabaseConfig{
		Backend: config.BackendBolt,
		Path:    filepath.Join(t.TempDir(), "nested", "campus.bolt"),
	}}

	store, err := Open(cfg, nil)
	require.NoError(t, err)
	defer store.Close()

	assert.NotNil(t, store.Bolt)
	assert.Nil(t, store.SQL)
}

func TestOpen_Memory(t *testing.T) {
	store, err := Open(&config.Configuration{Database: config.DatabaseConfig{Backend: config.BackendMemory}}, nil)
	require.NoError(t, err)
	assert.Nil(t, store.SQL)
	assert.Nil(t, store.Bolt)
	assert.Nil(t, store.Mongo)
	store.Close()
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(&config.Configuration{Database: config.DatabaseConfig{Backend: "cassandra"}}, nil)
	assert.ErrorContains(t, err, "cassandra")
}

func TestSetupDatabase_PostgresRequiresEnvironment(t *testing.T) {
	t.Setenv("DB_HOST", "")
	_, err := SetupDatabase(&config.Configuration{Database: config.DatabaseConfig{Backend: config.BackendPostgres}}, nil)
	assert.ErrorContains(t, err, "DB_HOST")
}

func TestProvideStore(t *testing.T) {
	cfg := &config.Configuration{Database: config.DatabaseConfig{
		Backend: config.BackendBolt,
		Path:    filepath.Join(t.TempDir(), "campus.bolt"),
	}}

	store, cleanup, err := ProvideStore(cfg, nil)
	require.NoError(t, err)
	assert.NotNil(t, store.Bolt)
	cleanup()
}

func TestSetupDatabase_MissingRecordIsNotLogged(t *testing.T) {
	log, hook := test.NewNullLogger()
	cfg := &config.Configuration{Database: config.DatabaseConfig{
		Backend: config.BackendSQLite,
		Path:    filepath.Join(t.TempDir(), "campus.db"),
	}}

	db, err := SetupDatabase(cfg, log)
	require.NoError(t, err)
	defer CloseDatabase(db)

	var course models.Course
	err = db.First(&course, "id = ?", 42).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Empty(t, hook.AllEntries())

	err = db.Exec("SELECT * FROM no_such_table").Error
	assert.Error(t, err)
	assert.NotEmpty(t, hook.AllEntries())
}
