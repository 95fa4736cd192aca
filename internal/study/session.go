// Package study implements the flip-through study session for a deck: card
// ordering, question/answer visibility, which cards have been revealed, and
// completion. A Session is plain in-memory state with one owner; callers that
// share it across goroutines must serialize access (see Store).
package study

import (
	"errors"
	"math/rand/v2"
)

// ErrEmptyDeck is returned when a session is requested for a deck without cards.
var ErrEmptyDeck = errors.New("study: deck has no cards")

// Card is the immutable front/back pair shown during a session.
type Card struct {
	ID    int64
	Front string
	Back  string
}

// Shuffler permutes n elements by calling swap, like rand.Shuffle.
type Shuffler func(n int, swap func(i, j int))

// Session is the state of one study pass through a deck.
//
// InProgress is the initial state; Next on the last card moves to Completed,
// and Restart moves back. Flip, Previous and Shuffle do nothing once completed.
type Session struct {
	cards     []Card
	index     int
	revealed  bool
	studied   map[int64]struct{}
	completed bool
	shuffle   Shuffler
}

// Option configures a Session.
type Option func(*Session)

// WithShuffler replaces the random permutation source used by Shuffle.
func WithShuffler(s Shuffler) Option {
	return func(sess *Session) {
		if s != nil {
			sess.shuffle = s
		}
	}
}

// NewSession starts a session over a copy of cards in the given order.
func NewSession(cards []Card, opts ...Option) (*Session, error) {
	if len(cards) == 0 {
		return nil, ErrEmptyDeck
	}
	s := &Session{
		cards:   append([]Card(nil), cards...),
		studied: make(map[int64]struct{}, len(cards)),
		shuffle: rand.Shuffle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Session) setIndex(i int) {
	if i == s.index {
		return
	}
	s.index = i
	s.revealed = false
}

// Flip toggles between question and answer. Revealing a card marks it studied.
func (s *Session) Flip() {
	if s.completed {
		return
	}
	s.revealed = !s.revealed
	if s.revealed {
		s.studied[s.cards[s.index].ID] = struct{}{}
	}
}

// Next moves to the following card, or completes the session on the last one.
func (s *Session) Next() {
	if s.completed {
		return
	}
	if s.index < len(s.cards)-1 {
		s.setIndex(s.index + 1)
		return
	}
	s.completed = true
}

// Previous moves back one card; it does nothing on the first card.
func (s *Session) Previous() {
	if s.completed || s.index == 0 {
		return
	}
	s.setIndex(s.index - 1)
}

// Shuffle reorders the cards randomly and returns to the first one. The set of
// studied cards is kept.
func (s *Session) Shuffle() {
	if s.completed {
		return
	}
	s.shuffle(len(s.cards), func(i, j int) {
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	})
	s.index = 0
	s.revealed = false
}

// Restart returns to the first card with nothing studied. The current order is
// kept.
func (s *Session) Restart() {
	s.index = 0
	s.revealed = false
	s.completed = false
	clear(s.studied)
}

// ProgressFraction is (index+1)/total, in (0, 1].
func (s *Session) ProgressFraction() float64 {
	return float64(s.index+1) / float64(len(s.cards))
}

// Current returns the card at the current position.
func (s *Session) Current() Card { return s.cards[s.index] }

// Index is the zero-based position in the current order.
func (s *Session) Index() int { return s.index }

// Total is the number of cards in the session.
func (s *Session) Total() int { return len(s.cards) }

// Revealed reports whether the answer side is showing.
func (s *Session) Revealed() bool { return s.revealed }

// Completed reports whether the session has moved past the last card.
func (s *Session) Completed() bool { return s.completed }

// StudiedCount is the number of distinct cards revealed since the last restart.
func (s *Session) StudiedCount() int { return len(s.studied) }

// Studied reports whether the card with id has been revealed.
func (s *Session) Studied(id int64) bool {
	_, ok := s.studied[id]
	return ok
}

// Cards returns a copy of the current ordering.
func (s *Session) Cards() []Card {
	return append([]Card(nil), s.cards...)
}

// View is a read-only snapshot for rendering.
type View struct {
	Card      Card
	Text      string
	Position  int
	Total     int
	Studied   int
	Revealed  bool
	Completed bool
	Progress  float64
	IsFirst   bool
	IsLast    bool
}

// ProgressPercent is Progress scaled to 0..100 for display.
func (v View) ProgressPercent() int {
	return int(v.Progress*100 + 0.5)
}

// View snapshots the session.
func (s *Session) View() View {
	card := s.Current()
	text := card.Front
	if s.revealed {
		text = card.Back
	}
	return View{
		Card:      card,
		Text:      text,
		Position:  s.index + 1,
		Total:     len(s.cards),
		Studied:   len(s.studied),
		Revealed:  s.revealed,
		Completed: s.completed,
		Progress:  s.ProgressFraction(),
		IsFirst:   s.index == 0,
		IsLast:    s.index == len(s.cards)-1,
	}
}
