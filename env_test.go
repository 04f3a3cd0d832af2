package gymchess

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gymchess/game"
)

func scripted(t *testing.T, moves ...string) *ScriptedPolicy {
	t.Helper()
	s, err := NewScriptedPolicy(moves...)
	require.NoError(t, err)
	return s
}

func newEnv(t *testing.T, conf Config, opponent Policy) *Env {
	t.Helper()
	e, err := New(conf, opponent)
	require.NoError(t, err)
	return e
}

func actionOf(t *testing.T, e *Env, uci string) game.Action {
	t.Helper()
	m, err := game.ParseMove(uci)
	require.NoError(t, err)
	a, err := e.MoveToAction(m)
	require.NoError(t, err)
	return a
}

func TestFoolsMate(t *testing.T) {
	e := newEnv(t, DefaultConfig(), scripted(t, "e7e5", "d8h4"))

	state, reward, done, info, err := e.Step(actionOf(t, e, "f2f3"))
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, float32(0), reward)
	assert.Equal(t, "f2f3", info.PlayerMove.String())
	require.NotNil(t, info.OpponentMove)
	assert.Equal(t, "e7e5", info.OpponentMove.String())
	assert.Equal(t, game.White, state.Turn())
	assert.Equal(t, 2, info.Ply)

	state, reward, done, info, err = e.Step(actionOf(t, e, "g2g4"))
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, float32(-1), reward)
	assert.Equal(t, "d8h4", info.OpponentMove.String())
	assert.Equal(t, game.Checkmate, info.Outcome.Status)
	assert.Equal(t, game.Black, info.Outcome.Winner)
	assert.True(t, state.InCheck())
	assert.True(t, e.Done())

	_, _, done, _, err = e.Step(0)
	assert.True(t, done)
	assert.True(t, errors.Is(err, ErrGameOver))

	pgn, err := e.PGN()
	require.NoError(t, err)
	assert.Contains(t, pgn, "Qh4")
	assert.Contains(t, pgn, "0-1")
	assert.Contains(t, pgn, `[White "agent"]`)
	assert.Len(t, e.Moves(), 4)
}

func TestPlayerWins(t *testing.T) {
	conf := DefaultConfig()
	conf.StartFEN = "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1"
	e := newEnv(t, conf, scripted(t))

	_, reward, done, info, err := e.Step(actionOf(t, e, "a1a8"))
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, float32(1), reward)
	assert.Nil(t, info.OpponentMove, "no reply after the game ended")
	assert.Equal(t, game.White, info.Outcome.Winner)
}

func TestStalemateIsDraw(t *testing.T) {
	conf := DefaultConfig()
	conf.StartFEN = "k7/8/1K6/2Q5/8/8/8/8 w - - 0 1"
	conf.Rewards.Draw = 0.25
	e := newEnv(t, conf, scripted(t))

	_, reward, done, info, err := e.Step(actionOf(t, e, "c5c7"))
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, float32(0.25), reward)
	assert.Equal(t, game.Stalemate, info.Outcome.Status)

	pgn, err := e.PGN()
	require.NoError(t, err)
	assert.Contains(t, pgn, "1/2-1/2")
}

func TestIllegalActionLeavesStateUnchanged(t *testing.T) {
	e := newEnv(t, DefaultConfig(), scripted(t, "e7e5"))
	before := e.State()
	n := len(e.LegalMoves())

	for _, a := range []game.Action{-1, game.Action(n), game.MaxActions} {
		state, reward, done, _, err := e.Step(a)
		assert.True(t, errors.Is(err, ErrIllegalAction), "action %d", a)
		assert.True(t, errors.Is(err, game.ErrUnknownAction), "action %d: %v", a, err)
		assert.Same(t, before, state)
		assert.Equal(t, float32(0), reward)
		assert.False(t, done)
	}
	assert.Same(t, before, e.State())
	assert.Empty(t, e.Moves())
}

func TestPlayerBlackOpponentMovesFirst(t *testing.T) {
	conf := DefaultConfig()
	conf.Player = game.Black
	e := newEnv(t, conf, scripted(t, "e2e4", "g1f3"))

	assert.Equal(t, game.Black, e.State().Turn())
	require.Len(t, e.Moves(), 1)
	assert.Equal(t, "e2e4", e.Moves()[0].String())
	assert.True(t, e.Moves()[0].Has(game.FlagDoublePush))

	state, _, _, info, err := e.Step(actionOf(t, e, "e7e5"))
	require.NoError(t, err)
	assert.Equal(t, "g1f3", info.OpponentMove.String())
	assert.Equal(t, game.Black, state.Turn())

	pgn, err := e.PGN()
	require.NoError(t, err)
	assert.Contains(t, pgn, `[Black "agent"]`)
}

func TestCaptureShaping(t *testing.T) {
	conf := DefaultConfig()
	conf.StartFEN = "4k3/8/8/3q4/8/8/8/3QK3 w - - 0 1"
	conf.Rewards.Capture = 0.5
	e := newEnv(t, conf, scripted(t, "e8e7"))

	_, reward, done, info, err := e.Step(actionOf(t, e, "d1d5"))
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, float32(9), info.Captured)
	assert.Equal(t, float32(4.5), reward)
}

func TestOpponentErrors(t *testing.T) {
	e := newEnv(t, DefaultConfig(), scripted(t, "e2e4"))

	state, _, done, info, err := e.Step(actionOf(t, e, "d2d4"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, game.ErrIllegalMove))
	assert.False(t, done)
	assert.Nil(t, info.OpponentMove)
	assert.Equal(t, game.Black, state.Turn(), "the player's move stays applied")

	_, _, _, _, err = e.Step(0)
	assert.True(t, errors.Is(err, ErrIllegalAction))

	_, err = e.Reset()
	require.NoError(t, err)
	assert.Empty(t, e.Moves())
	assert.Equal(t, game.InitialFEN, e.State().FEN())
}

func TestScriptExhausted(t *testing.T) {
	e := newEnv(t, DefaultConfig(), scripted(t))
	_, _, _, _, err := e.Step(0)
	assert.True(t, errors.Is(err, ErrScriptExhausted))
}

func TestDefaultOpponent(t *testing.T) {
	conf := DefaultConfig()
	conf.Search.Depth = 1
	e := newEnv(t, conf, nil)

	state, reward, done, info, err := e.Step(0)
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, float32(0), reward)
	require.NotNil(t, info.OpponentMove)
	assert.Equal(t, game.White, state.Turn())
	assert.Contains(t, e.Render(), "     a b c d e f g h")
}

func TestRandomOpponentPlaysToTheEnd(t *testing.T) {
	conf := DefaultConfig()
	conf.Opponent = "random"
	conf.Seed = 3
	e := newEnv(t, conf, nil)
	agent := NewRandomPolicy(4)

	done := false
	var reward float32
	for ply := 0; !done; ply++ {
		require.Less(t, ply, 2000)
		m, err := agent.Choose(e.State())
		require.NoError(t, err)
		a, err := e.MoveToAction(m)
		require.NoError(t, err)
		_, reward, done, _, err = e.Step(a)
		require.NoError(t, err)
	}
	o := e.Outcome()
	assert.True(t, o.Ended())
	switch {
	case o.IsDraw():
		assert.Equal(t, float32(0), reward)
	case o.Winner == game.White:
		assert.Equal(t, float32(1), reward)
	default:
		assert.Equal(t, float32(-1), reward)
	}
	_, err := e.PGN()
	assert.NoError(t, err)
}

func TestObservationAndMask(t *testing.T) {
	e := newEnv(t, DefaultConfig(), scripted(t))
	assert.Equal(t, []int{game.FeaturePlane, 8, 8}, []int(e.Observation().Shape()))

	mask := e.ActionMask()
	assert.Len(t, mask, game.MaxActions)
	var n int
	for _, ok := range mask {
		if ok {
			n++
		}
	}
	assert.Equal(t, 20, n)

	m, err := e.ActionToMove(19)
	require.NoError(t, err)
	assert.Equal(t, e.LegalMoves()[19], m)
}
