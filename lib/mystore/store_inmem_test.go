package mystore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type visit struct {
	UID        string
	Name       string
	VisitedAt  time.Time
	FinishedAt *time.Time
	Done       bool
}

var (
	baseTime = time.Date(2023, time.February, 27, 12, 0, 0, 0, time.UTC)
	visit1   = visit{UID: "123", Name: "first", VisitedAt: baseTime, Done: true}
	visit2   = visit{UID: "456", Name: "second", VisitedAt: baseTime.Add(time.Hour), FinishedAt: &baseTime}
)

func TestStore(t *testing.T) {
	c := context.TODO()
	store, cleanup, err := NewInMemoryStore[visit](c)
	assert.NoError(t, err)
	defer cleanup()

	t.Run("Get not found", func(t *testing.T) {
		_, found, err := store.Get(c, visit1.UID)
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Put", func(t *testing.T) {
		err = store.Put(c, visit1.UID, visit1)
		assert.NoError(t, err)
	})

	t.Run("Get found", func(t *testing.T) {
		v, found, err := store.Get(c, visit1.UID)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, visit1, v)
	})

	t.Run("List", func(t *testing.T) {
		all, err := store.List(c)
		assert.NoError(t, err)
		assert.Equal(t, []visit{visit1}, all)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Delete(c, visit1.UID)
		assert.NoError(t, err)

		_, found, err := store.Get(c, visit1.UID)
		assert.NoError(t, err)
		assert.False(t, found)
	})
}

func TestQuery(t *testing.T) {
	c := context.TODO()
	store, cleanup, err := NewInMemoryStore[visit](c)
	assert.NoError(t, err)
	defer cleanup()

	err = store.Put(c, visit1.UID, visit1)
	assert.NoError(t, err)
	err = store.Put(c, visit2.UID, visit2)
	assert.NoError(t, err)

	t.Run("Equality on bool", func(t *testing.T) {
		got, err := store.Query(c, []Filter{{Field: "Done", Compare: "=", Value: true}}, "")
		assert.NoError(t, err)
		assert.Equal(t, []visit{visit1}, got)
	})

	t.Run("Nil check on pointer field", func(t *testing.T) {
		got, err := store.Query(c, []Filter{{Field: "FinishedAt", Compare: "=", Value: nil}}, "")
		assert.NoError(t, err)
		assert.Equal(t, []visit{visit1}, got)

		got, err = store.Query(c, []Filter{{Field: "FinishedAt", Compare: "!=", Value: nil}}, "")
		assert.NoError(t, err)
		assert.Equal(t, []visit{visit2}, got)
	})

	t.Run("Timestamp boundaries are inclusive", func(t *testing.T) {
		got, err := store.Query(c, []Filter{{Field: "VisitedAt", Compare: "<=", Value: baseTime}}, "")
		assert.NoError(t, err)
		assert.Equal(t, []visit{visit1}, got)

		got, err = store.Query(c, []Filter{{Field: "VisitedAt", Compare: "<", Value: baseTime}}, "")
		assert.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Timestamp on dereferenced pointer field", func(t *testing.T) {
		got, err := store.Query(c, []Filter{{Field: "FinishedAt", Compare: "<=", Value: baseTime}}, "")
		assert.NoError(t, err)
		assert.Equal(t, []visit{visit2}, got)
	})

	t.Run("Order by timestamp", func(t *testing.T) {
		got, err := store.Query(c, []Filter{}, "VisitedAt")
		assert.NoError(t, err)
		assert.Equal(t, []visit{visit1, visit2}, got)
	})
}
