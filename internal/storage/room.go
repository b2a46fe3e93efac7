package storage

import (
	"sync"
	"time"

	"github.com/aliskhannn/spicy-vs-sweet/internal/domain/entities"
)

// room is the in-memory state of one game room.
type room struct {
	locale    string
	question  *entities.Question  // open question, nil between questions
	openedAt  time.Time           // when the open question was asked, identifies the round
	touchedAt time.Time           // last change of the room
	answered  map[int64]struct{}  // players who answered the open question
	asked     map[string]struct{} // questions already asked in this room
}

// RoomStorage provides in-memory storage for game rooms by room ID.
type RoomStorage struct {
	mu    sync.RWMutex
	rooms map[int64]*room
	now   func() time.Time
}

// NewRoomStorage creates a new RoomStorage.
func NewRoomStorage() *RoomStorage {
	return &RoomStorage{
		rooms: make(map[int64]*room),
		now:   time.Now,
	}
}

// get returns the room, creating it if needed, and marks it as touched. Callers hold the write lock.
func (s *RoomStorage) get(roomID int64) *room {
	r, ok := s.rooms[roomID]
	if !ok {
		r = &room{
			answered: make(map[int64]struct{}),
			asked:    make(map[string]struct{}),
		}
		s.rooms[roomID] = r
	}
	r.touchedAt = s.now()
	return r
}

// Locale returns the room's content locale, or "" if none was set.
func (s *RoomStorage) Locale(roomID int64) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, ok := s.rooms[roomID]; ok {
		return r.locale
	}
	return ""
}

// SetLocale sets the room's content locale.
func (s *RoomStorage) SetLocale(roomID int64, locale string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(roomID).locale = locale
}

// Open starts a new round of q in the room, replacing any open one, and returns it.
// Round times are truncated to microseconds, the precision they are stored with,
// and strictly increase within a room.
func (s *RoomStorage) Open(roomID int64, q *entities.Question) entities.Round {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.get(roomID)

	askedAt := r.touchedAt.UTC().Truncate(time.Microsecond)
	if !askedAt.After(r.openedAt) {
		askedAt = r.openedAt.Add(time.Microsecond)
	}

	r.question = q
	r.openedAt = askedAt
	r.answered = make(map[int64]struct{})
	r.asked[q.ID] = struct{}{}

	return entities.Round{Question: q, AskedAt: askedAt}
}

// Current returns the room's open round.
func (s *RoomStorage) Current(roomID int64) (entities.Round, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rooms[roomID]
	if !ok || r.question == nil {
		return entities.Round{}, false
	}
	return entities.Round{Question: r.question, AskedAt: r.openedAt}, true
}

// WasAsked reports whether the question was already asked in the room.
func (s *RoomStorage) WasAsked(roomID int64, questionID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rooms[roomID]
	if !ok {
		return false
	}
	_, asked := r.asked[questionID]
	return asked
}

// isOpen reports whether the round asked at askedAt is the room's open one. Callers hold the lock.
func (r *room) isOpen(askedAt time.Time) bool {
	return r.question != nil && r.openedAt.Equal(askedAt)
}

// Reserve marks the player as having answered the round asked at askedAt.
// It returns false if that round is not open or the player already answered it.
func (s *RoomStorage) Reserve(roomID int64, askedAt time.Time, playerID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[roomID]
	if !ok || !r.isOpen(askedAt) {
		return false
	}
	if _, done := r.answered[playerID]; done {
		return false
	}
	r.answered[playerID] = struct{}{}
	r.touchedAt = s.now()
	return true
}

// Release undoes Reserve, so the player can answer again.
func (s *RoomStorage) Release(roomID int64, askedAt time.Time, playerID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[roomID]
	if !ok || !r.isOpen(askedAt) {
		return
	}
	delete(r.answered, playerID)
}

// Close closes the round asked at askedAt. It returns false if that round is not open.
func (s *RoomStorage) Close(roomID int64, askedAt time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[roomID]
	if !ok || !r.isOpen(askedAt) {
		return false
	}
	r.question = nil
	r.answered = make(map[int64]struct{})
	r.touchedAt = s.now()
	return true
}

// Delete removes all state of a room.
func (s *RoomStorage) Delete(roomID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, roomID)
}

// OpenRound is an open round together with its room.
type OpenRound struct {
	RoomID int64
	entities.Round
}

// OpenedBefore returns the open rounds asked before t.
func (s *RoomStorage) OpenedBefore(t time.Time) []OpenRound {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []OpenRound
	for id, r := range s.rooms {
		if r.question != nil && r.openedAt.Before(t) {
			out = append(out, OpenRound{RoomID: id, Round: entities.Round{Question: r.question, AskedAt: r.openedAt}})
		}
	}
	return out
}

// EvictIdle removes rooms without an open round that have not changed since t,
// and returns how many were removed. Their locale and asked questions are forgotten.
func (s *RoomStorage) EvictIdle(t time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, r := range s.rooms {
		if r.question == nil && r.touchedAt.Before(t) {
			delete(s.rooms, id)
			n++
		}
	}
	return n
}

// Len returns the number of rooms held.
func (s *RoomStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}
