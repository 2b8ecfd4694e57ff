package db_test

import (
	"context"
	"os"
	"testing"

	"github.com/matt-steen/pocket-calendar/pkg/db"
	"github.com/stretchr/testify/assert"
)

func getDB(assert *assert.Assertions) *db.Database {
	tempFile, err := os.CreateTemp("", "test_new_database*")
	assert.Nil(err)

	database, err := db.NewDatabase(context.Background(), tempFile.Name())
	assert.NotNil(database)
	assert.Nil(err)

	return database
}

func TestNewDatabaseBadFile(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database, err := db.NewDatabase(context.Background(), "/alwfkjasfd/asdflkjdsal.sqlite")
	assert.Nil(database)
	assert.NotNil(err)
	assert.Equal("error running base sql: unable to open database file: no such file or directory", err.Error())
}

func TestNewDatabaseIdempotent(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	tempFile, err := os.CreateTemp("", "test_new_database*")
	assert.Nil(err)

	database, err := db.NewDatabase(context.Background(), tempFile.Name())
	assert.NotNil(database)
	assert.Nil(err)

	err = database.Set(context.Background(), "events", "[]")
	assert.Nil(err)

	err = database.Close()
	assert.Nil(err)

	database2, err := db.NewDatabase(context.Background(), tempFile.Name())
	assert.NotNil(database2)
	assert.Nil(err)

	value, ok, err := database2.Get(context.Background(), "events")
	assert.Nil(err)
	assert.True(ok)
	assert.Equal("[]", value)
}

func TestGetMissingKey(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database := getDB(assert)

	value, ok, err := database.Get(context.Background(), "categories")
	assert.Nil(err)
	assert.False(ok)
	assert.Equal("", value)
}

func TestSetOverwrites(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database := getDB(assert)

	assert.Nil(database.Set(context.Background(), "eventDates", `{"2024-03-04":[0]}`))
	assert.Nil(database.Set(context.Background(), "eventDates", `{}`))

	value, ok, err := database.Get(context.Background(), "eventDates")
	assert.Nil(err)
	assert.True(ok)
	assert.Equal(`{}`, value)
}
