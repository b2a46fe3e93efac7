package storage

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/spicy-vs-sweet/internal/domain/entities"
)

var capital = &entities.Question{ID: "en-1", Locale: "en", CorrectAnswer: "Paris"}

// fixedClock returns a storage whose clock reads *now.
func fixedClock(now *time.Time) *RoomStorage {
	s := NewRoomStorage()
	s.now = func() time.Time { return *now }
	return s
}

func TestRoomStorageLifecycle(t *testing.T) {
	s := NewRoomStorage()

	_, ok := s.Current(1)
	assert.False(t, ok)
	assert.False(t, s.Reserve(1, time.Now(), 10))

	round := s.Open(1, capital)
	cur, ok := s.Current(1)
	require.True(t, ok)
	assert.Equal(t, "en-1", cur.Question.ID)
	assert.True(t, cur.AskedAt.Equal(round.AskedAt))
	assert.True(t, s.WasAsked(1, "en-1"))
	assert.False(t, s.WasAsked(2, "en-1"))

	assert.True(t, s.Reserve(1, round.AskedAt, 10))
	assert.False(t, s.Reserve(1, round.AskedAt, 10))
	assert.False(t, s.Reserve(1, round.AskedAt.Add(time.Second), 11))

	s.Release(1, round.AskedAt, 10)
	assert.True(t, s.Reserve(1, round.AskedAt, 10))

	assert.False(t, s.Close(1, round.AskedAt.Add(-time.Microsecond)), "only the open round closes")
	assert.True(t, s.Close(1, round.AskedAt))
	assert.False(t, s.Close(1, round.AskedAt))
	assert.True(t, s.WasAsked(1, "en-1"))

	s.Delete(1)
	assert.False(t, s.WasAsked(1, "en-1"))
}

func TestRoomStorageRoundsAreDistinct(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 123456789, time.UTC)
	s := fixedClock(&now)

	first := s.Open(1, capital)
	assert.Equal(t, now.Truncate(time.Microsecond), first.AskedAt, "stored precision")
	require.True(t, s.Reserve(1, first.AskedAt, 10))
	require.True(t, s.Close(1, first.AskedAt))

	// Same question, same clock reading: still a new round the player may answer.
	second := s.Open(1, capital)
	assert.True(t, second.AskedAt.After(first.AskedAt))
	assert.True(t, s.Reserve(1, second.AskedAt, 10))

	s.Release(1, first.AskedAt, 10)
	assert.False(t, s.Reserve(1, second.AskedAt, 10), "releasing a past round leaves the open one alone")
}

func TestRoomStorageLocale(t *testing.T) {
	s := NewRoomStorage()
	assert.Empty(t, s.Locale(1))

	s.SetLocale(1, "fr")
	assert.Equal(t, "fr", s.Locale(1))
}

func TestRoomStorageOpenedBefore(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 0, 0, 0, time.UTC)
	s := fixedClock(&now)

	old := s.Open(1, capital)
	now = now.Add(10 * time.Minute)
	s.Open(2, capital)
	s.SetLocale(3, "fr")

	rounds := s.OpenedBefore(now.Add(-5 * time.Minute))
	require.Len(t, rounds, 1)
	assert.Equal(t, int64(1), rounds[0].RoomID)
	assert.True(t, rounds[0].AskedAt.Equal(old.AskedAt))
}

func TestRoomStorageEvictIdle(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 0, 0, 0, time.UTC)
	s := fixedClock(&now)

	// Room 1 goes idle, room 2 has an open round, room 3 is recent.
	s.SetLocale(1, "fr")
	open := s.Open(2, capital)
	now = now.Add(time.Hour)
	s.SetLocale(3, "de")

	assert.Equal(t, 1, s.EvictIdle(now.Add(-30*time.Minute)))
	assert.Equal(t, 2, s.Len())
	assert.Empty(t, s.Locale(1))
	assert.Equal(t, "de", s.Locale(3))

	_, ok := s.Current(2)
	assert.True(t, ok)

	require.True(t, s.Close(2, open.AskedAt))
	now = now.Add(time.Hour)
	assert.Equal(t, 2, s.EvictIdle(now.Add(-30*time.Minute)))
	assert.Zero(t, s.Len())
}

func TestRoomStorageReserveConcurrent(t *testing.T) {
	s := NewRoomStorage()
	round := s.Open(1, capital)

	var (
		wg   sync.WaitGroup
		wins atomic.Int32
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.Reserve(1, round.AskedAt, 10) {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}
