package study

import (
	"errors"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ErrSessionNotFound is returned for unknown, expired or foreign sessions.
var ErrSessionNotFound = errors.New("study: session not found")

type entry struct {
	mu      sync.Mutex
	userID  string
	deckID  int64
	session *Session
}

// Store keeps live sessions in memory, bound to the user and deck that started
// them. Entries expire after ttl without use and the least recently used entry
// is evicted once size is reached. Operations on one session are serialized.
type Store struct {
	cache *expirable.LRU[string, *entry]
	newID func() (string, error)
}

// NewStore creates a Store holding at most size sessions.
func NewStore(size int, ttl time.Duration) *Store {
	return &Store{
		cache: expirable.NewLRU[string, *entry](size, nil, ttl),
		newID: func() (string, error) { return gonanoid.New() },
	}
}

// Create registers sess and returns its id.
func (s *Store) Create(userID string, deckID int64, sess *Session) (string, error) {
	id, err := s.newID()
	if err != nil {
		return "", err
	}
	s.cache.Add(id, &entry{userID: userID, deckID: deckID, session: sess})
	return id, nil
}

func (s *Store) lookup(id, userID string, deckID int64) (*entry, error) {
	e, ok := s.cache.Get(id)
	if !ok || e.userID != userID || e.deckID != deckID {
		return nil, ErrSessionNotFound
	}
	// Re-adding slides the expiry window.
	s.cache.Add(id, e)
	return e, nil
}

// Apply runs fn against the session while holding its lock and returns the
// resulting view.
func (s *Store) Apply(id, userID string, deckID int64, fn func(*Session) error) (View, error) {
	e, err := s.lookup(id, userID, deckID)
	if err != nil {
		return View{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := fn(e.session); err != nil {
		return View{}, err
	}
	return e.session.View(), nil
}

// View returns a snapshot of the session.
func (s *Store) View(id, userID string, deckID int64) (View, error) {
	return s.Apply(id, userID, deckID, func(*Session) error { return nil })
}

// Delete discards the session if it belongs to userID.
func (s *Store) Delete(id, userID string) bool {
	e, ok := s.cache.Peek(id)
	if !ok || e.userID != userID {
		return false
	}
	return s.cache.Remove(id)
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	return s.cache.Len()
}
