package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestActionRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	p := NewPosition()
	for ply := 0; ply < 120 && !p.Outcome().Ended(); ply++ {
		moves := p.LegalMoves()
		seen := make(map[Action]bool, len(moves))
		for _, m := range moves {
			a, err := MoveToAction(p, m)
			require.NoError(t, err)
			require.False(t, seen[a], "action %d used twice in %s", a, p.FEN())
			seen[a] = true
			require.True(t, a >= 0 && int(a) < MaxActions)

			back, err := ActionToMove(p, a)
			require.NoError(t, err)
			require.Equal(t, m, back)
		}
		var err error
		p, err = p.Apply(moves[r.Intn(len(moves))])
		require.NoError(t, err)
	}
}

func TestActionIsOrdinal(t *testing.T) {
	p := NewPosition()
	for i, m := range p.LegalMoves() {
		a, err := MoveToAction(p, m)
		require.NoError(t, err)
		assert.Equal(t, Action(i), a)
	}
}

func TestMoveToActionWithoutFlags(t *testing.T) {
	p := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	m, err := ParseMove("e1g1")
	require.NoError(t, err)
	a, err := MoveToAction(p, m)
	require.NoError(t, err)
	back, err := ActionToMove(p, a)
	require.NoError(t, err)
	assert.True(t, back.IsCastle())
}

func TestActionErrors(t *testing.T) {
	p := NewPosition()
	for _, a := range []Action{-1, 20, 21, MaxActions} {
		_, err := ActionToMove(p, a)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownAction), "action %d: %v", a, err)
	}

	m, err := ParseMove("e2e5")
	require.NoError(t, err)
	_, err = MoveToAction(p, m)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIllegalMove))
}

func TestActionMask(t *testing.T) {
	p := NewPosition()
	mask := ActionMask(p)
	require.Len(t, mask, MaxActions)
	var n int
	for i, ok := range mask {
		if ok {
			n++
			assert.Less(t, i, 20)
		}
	}
	assert.Equal(t, 20, n)
}
