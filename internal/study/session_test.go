package study_test

import (
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashycardy/internal/study"
)

func deck(n int) []study.Card {
	cards := make([]study.Card, n)
	for i := range cards {
		cards[i] = study.Card{ID: int64(i + 1), Front: string(rune('A' + i)), Back: string(rune('a' + i))}
	}
	return cards
}

func ids(cards []study.Card) []int64 {
	out := make([]int64, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

// reverse is a deterministic shuffler for assertions on order.
func reverse(n int, swap func(i, j int)) {
	for i := 0; i < n/2; i++ {
		swap(i, n-1-i)
	}
}

func TestNewSession_EmptyDeck(t *testing.T) {
	s, err := study.NewSession(nil)
	assert.ErrorIs(t, err, study.ErrEmptyDeck)
	assert.Nil(t, s)
}

func TestNewSession_InitialState(t *testing.T) {
	s, err := study.NewSession(deck(3))
	require.NoError(t, err)

	assert.Equal(t, 0, s.Index())
	assert.Equal(t, 3, s.Total())
	assert.False(t, s.Revealed())
	assert.False(t, s.Completed())
	assert.Zero(t, s.StudiedCount())
	assert.InDelta(t, 1.0/3, s.ProgressFraction(), 1e-9)
}

func TestNewSession_CopiesInput(t *testing.T) {
	cards := deck(3)
	s, err := study.NewSession(cards, study.WithShuffler(reverse))
	require.NoError(t, err)

	s.Shuffle()
	assert.Equal(t, []int64{1, 2, 3}, ids(cards), "caller slice must not be reordered")
	assert.Equal(t, []int64{3, 2, 1}, ids(s.Cards()))
}

func TestNext_ReachesLastThenCompletes(t *testing.T) {
	for n := 1; n <= 6; n++ {
		s, err := study.NewSession(deck(n))
		require.NoError(t, err)

		for i := 0; i < n-1; i++ {
			s.Next()
		}
		assert.Equal(t, n-1, s.Index(), "n=%d", n)
		assert.False(t, s.Completed(), "n=%d", n)
		assert.InDelta(t, 1.0, s.ProgressFraction(), 1e-9)

		s.Next()
		assert.True(t, s.Completed(), "n=%d", n)
		assert.Equal(t, n-1, s.Index(), "index frozen on completion, n=%d", n)

		s.Next()
		assert.Equal(t, n-1, s.Index(), "next after completion is inert, n=%d", n)
	}
}

func TestFlip_IsSelfInverseAndMarksStudied(t *testing.T) {
	s, err := study.NewSession(deck(2))
	require.NoError(t, err)

	s.Flip()
	assert.True(t, s.Revealed())
	assert.True(t, s.Studied(1))
	assert.Equal(t, 1, s.StudiedCount())

	s.Flip()
	assert.False(t, s.Revealed())

	s.Flip()
	s.Flip()
	assert.Equal(t, 1, s.StudiedCount(), "flipping the same card again does not grow the set")
}

func TestIndexChangeResetsRevealed(t *testing.T) {
	s, err := study.NewSession(deck(3))
	require.NoError(t, err)

	s.Flip()
	s.Next()
	assert.False(t, s.Revealed())

	s.Flip()
	s.Previous()
	assert.False(t, s.Revealed())
	assert.Equal(t, 2, s.StudiedCount())
}

func TestPrevious_ClampsAtFirstCard(t *testing.T) {
	s, err := study.NewSession(deck(3))
	require.NoError(t, err)

	s.Flip()
	s.Previous()
	assert.Equal(t, 0, s.Index())
	assert.True(t, s.Revealed(), "no index change, so the card stays revealed")

	s.Next()
	s.Next()
	s.Previous()
	assert.Equal(t, 1, s.Index())
}

func TestShuffle_PermutesAndResetsPosition(t *testing.T) {
	s, err := study.NewSession(deck(10), study.WithShuffler(rand.New(rand.NewPCG(1, 2)).Shuffle))
	require.NoError(t, err)

	s.Next()
	s.Next()
	s.Flip()
	studied := s.StudiedCount()

	s.Shuffle()

	assert.Equal(t, 0, s.Index())
	assert.False(t, s.Revealed())
	assert.Equal(t, studied, s.StudiedCount(), "shuffle keeps studied cards")

	got := ids(s.Cards())
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	assert.Equal(t, ids(deck(10)), got, "shuffle is a permutation")
}

func TestShuffle_IsRoughlyUniform(t *testing.T) {
	const trials = 6000
	rng := rand.New(rand.NewPCG(7, 11))
	counts := map[[3]int64]int{}

	for i := 0; i < trials; i++ {
		s, err := study.NewSession(deck(3), study.WithShuffler(rng.Shuffle))
		require.NoError(t, err)
		s.Shuffle()
		c := s.Cards()
		counts[[3]int64{c[0].ID, c[1].ID, c[2].ID}]++
	}

	require.Len(t, counts, 6, "every ordering of three cards should appear")
	for order, n := range counts {
		assert.InDelta(t, trials/6, n, trials/6*0.2, "ordering %v", order)
	}
}

func TestRestart_ResetsProgressButKeepsOrder(t *testing.T) {
	s, err := study.NewSession(deck(3), study.WithShuffler(reverse))
	require.NoError(t, err)

	s.Shuffle()
	order := ids(s.Cards())
	s.Flip()
	s.Next()
	s.Next()
	s.Next()
	require.True(t, s.Completed())

	s.Restart()

	assert.Equal(t, 0, s.Index())
	assert.False(t, s.Revealed())
	assert.False(t, s.Completed())
	assert.Zero(t, s.StudiedCount())
	assert.Equal(t, order, ids(s.Cards()))
}

func TestCompleted_FlipPreviousShuffleAreInert(t *testing.T) {
	s, err := study.NewSession(deck(2), study.WithShuffler(reverse))
	require.NoError(t, err)

	s.Next()
	s.Next()
	require.True(t, s.Completed())
	before := s.View()

	s.Flip()
	s.Previous()
	s.Shuffle()

	assert.Equal(t, before, s.View())
	assert.Equal(t, []int64{1, 2}, ids(s.Cards()))
}

func TestScenario_ThreeCards(t *testing.T) {
	s, err := study.NewSession(deck(3))
	require.NoError(t, err)

	assert.Equal(t, 0, s.Index())
	assert.False(t, s.Revealed())

	s.Flip()
	assert.True(t, s.Revealed())
	assert.True(t, s.Studied(1))
	assert.Equal(t, 1, s.StudiedCount())

	s.Next()
	assert.Equal(t, 1, s.Index())
	assert.False(t, s.Revealed())

	s.Next()
	assert.False(t, s.Completed())
	s.Next()
	assert.True(t, s.Completed())

	s.Restart()
	assert.Equal(t, 0, s.Index())
	assert.False(t, s.Revealed())
	assert.False(t, s.Completed())
	assert.Zero(t, s.StudiedCount())
}

func TestView(t *testing.T) {
	s, err := study.NewSession(deck(4))
	require.NoError(t, err)

	v := s.View()
	assert.Equal(t, "A", v.Text)
	assert.Equal(t, 1, v.Position)
	assert.Equal(t, 4, v.Total)
	assert.True(t, v.IsFirst)
	assert.False(t, v.IsLast)
	assert.Equal(t, 25, v.ProgressPercent())

	s.Flip()
	v = s.View()
	assert.Equal(t, "a", v.Text)
	assert.Equal(t, 1, v.Studied)

	s.Next()
	s.Next()
	s.Next()
	v = s.View()
	assert.True(t, v.IsLast)
	assert.Equal(t, 100, v.ProgressPercent())
}

func TestApply(t *testing.T) {
	s, err := study.NewSession(deck(2))
	require.NoError(t, err)

	require.NoError(t, s.Apply(study.ActionFlip))
	assert.True(t, s.Revealed())
	require.NoError(t, s.Apply(study.ActionNext))
	assert.Equal(t, 1, s.Index())
	require.NoError(t, s.Apply(study.ActionPrevious))
	assert.Equal(t, 0, s.Index())
	require.NoError(t, s.Apply(study.ActionRestart))
	assert.Zero(t, s.StudiedCount())
	require.NoError(t, s.Apply(study.ActionShuffle))

	assert.ErrorIs(t, s.Apply(study.Action("jump")), study.ErrUnknownAction)
}

func TestParseAction(t *testing.T) {
	for _, name := range []string{"flip", "next", "previous", "shuffle", "restart"} {
		a, err := study.ParseAction(name)
		require.NoError(t, err)
		assert.Equal(t, study.Action(name), a)
	}
	_, err := study.ParseAction("FLIP")
	assert.ErrorIs(t, err, study.ErrUnknownAction)
}
