package game

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		InitialFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"k7/2Q5/1K6/8/8/8/8/8 b - - 12 47",
	}
	for _, fen := range fens {
		p := mustFEN(t, fen)
		assert.Equal(t, fen, p.FEN())
	}
}

func TestParseFENDefaultsClocks(t *testing.T) {
	p := mustFEN(t, "4k3/8/8/8/8/8/8/4K3 w - -")
	assert.Equal(t, 0, p.HalfMoveClock())
	assert.Equal(t, 1, p.FullMoveNumber())
}

func TestParseFENErrors(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"empty", ""},
		{"seven ranks", "8/8/8/8/8/8/8 w - - 0 1"},
		{"bad piece", "rnbqkbnr/ppppxppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"long rank", "rnbqkbnr/ppppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"short rank", "rnbqkbnr/ppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"bad side", "4k3/8/8/8/8/8/8/4K3 x - - 0 1"},
		{"bad castling", "4k3/8/8/8/8/8/8/4K3 w X - 0 1"},
		{"bad en passant", "4k3/8/8/8/8/8/8/4K3 w - e4 0 1"},
		{"two kings", "4k3/8/8/8/8/8/8/3KK3 w - - 0 1"},
		{"bad clock", "4k3/8/8/8/8/8/8/4K3 w - - x 1"},
		{"non-ascii piece", "4k3/8/8/8/8/8/8/4K2\u0170 w - - 0 1"},
		{"no white king", "4k3/8/8/8/8/8/8/7R w - - 0 1"},
		{"no kings", "8/8/8/8/8/8/8/8 w - - 0 1"},
		{"pawn on first rank", "4k3/8/8/8/8/8/8/P3K3 w - - 0 1"},
		{"pawn on last rank", "p3k3/8/8/8/8/8/8/4K3 b - - 0 1"},
		{"en passant behind own pawn", "4k3/8/8/8/8/8/3PP3/4K3 w - e3 0 1"},
		{"en passant without pawn", "4k3/8/8/8/8/8/8/4K3 w - e6 0 1"},
		{"en passant origin occupied", "4k3/4p3/8/4p3/8/8/8/4K3 w - e6 0 1"},
		{"side not to move in check", "4k3/8/8/8/8/8/8/4R1K1 w - - 0 1"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFEN(tt.fen)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidFEN), "got %v", err)
		})
	}
}

func TestParseFENDropsImpossibleCastling(t *testing.T) {
	p := mustFEN(t, "4k3/8/8/8/8/8/8/4K2R w KQkq - 0 1")
	assert.Equal(t, WhiteKingSide, p.Castling())
}

func TestApplyIllegalMove(t *testing.T) {
	p := NewPosition()
	before := p.FEN()
	for _, s := range []string{"e2e5", "e1e2", "a1a3", "e7e5", "g1g3"} {
		m, err := ParseMove(s)
		require.NoError(t, err)
		_, err = p.Apply(m)
		require.Error(t, err, s)
		assert.True(t, errors.Is(err, ErrIllegalMove), "got %v", err)
	}
	assert.Equal(t, before, p.FEN(), "position must not change")
}

func TestApplyDoesNotMutate(t *testing.T) {
	p := NewPosition()
	board := p.Board()
	next := mustPlay(t, p, "e2e4")
	if diff := cmp.Diff(board, p.Board()); diff != "" {
		t.Errorf("Apply mutated the original board (-before +after):\n%s", diff)
	}
	assert.Equal(t, White, p.Turn())
	assert.Equal(t, Black, next.Turn())
	assert.Equal(t, "e3", next.EnPassant().String())
}

func TestClocks(t *testing.T) {
	p := mustPlay(t, NewPosition(), "g1f3", "g8f6", "f3g1")
	assert.Equal(t, 3, p.HalfMoveClock())
	assert.Equal(t, 2, p.FullMoveNumber())
	assert.Equal(t, 3, p.Ply())

	p = mustPlay(t, p, "e7e5")
	assert.Equal(t, 0, p.HalfMoveClock(), "pawn moves reset the clock")
	assert.Equal(t, 3, p.FullMoveNumber())
}

func TestHashMatchesFreshParse(t *testing.T) {
	p := mustPlay(t, NewPosition(), "e2e4", "c7c5", "g1f3", "d7d6", "e1e2")
	q := mustFEN(t, p.FEN())
	assert.Equal(t, q.Hash(), p.Hash())
	assert.True(t, p.Eq(q))
	assert.False(t, p.Eq(NewPosition()))
}

func TestParseMove(t *testing.T) {
	m, err := ParseMove("e7e8q")
	require.NoError(t, err)
	assert.Equal(t, Move{From: NewSquare(4, 6), To: NewSquare(4, 7), Promotion: Queen}, m)
	assert.Equal(t, "e7e8q", m.String())

	for _, s := range []string{"", "e2", "e2e9", "i2i4", "e7e8k", "e7e8x"} {
		_, err := ParseMove(s)
		assert.Error(t, err, s)
	}
}

func TestInCheck(t *testing.T) {
	p := mustPlay(t, NewPosition(), "e2e4", "f7f6", "d1h5")
	assert.True(t, p.InCheck())
	assert.True(t, p.IsInCheck(Black))
	assert.False(t, p.IsInCheck(White))

	_, err := ParseFEN("8/8/8/8/8/8/8/4K2r w - - 0 1")
	assert.True(t, errors.Is(err, ErrInvalidFEN), "positions without a king are rejected")
}

func TestParseFENEnPassant(t *testing.T) {
	p := mustFEN(t, "k7/8/8/3pP3/8/8/8/7K w - d6 0 2")
	assert.Equal(t, "d6", p.EnPassant().String())

	p = mustFEN(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	assert.Equal(t, "e3", p.EnPassant().String())

	_, err := ParseFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e3 0 1")
	assert.True(t, errors.Is(err, ErrInvalidFEN), "e3 is only a target with black to move")
}

func TestZobristKeysDistinct(t *testing.T) {
	seen := make(map[uint64]bool)
	add := func(k uint64) {
		assert.NotZero(t, k)
		assert.False(t, seen[k], "duplicate key %x", k)
		seen[k] = true
	}
	for c := White; c <= Black; c++ {
		for k := Pawn; k <= King; k++ {
			for sq := 0; sq < 64; sq++ {
				add(zobristPiece[c][k][sq])
			}
		}
	}
	for _, k := range zobristCastling[1:] {
		add(k)
	}
	for _, k := range zobristEnPassant {
		add(k)
	}
	add(zobristBlack)
}

func TestDraw(t *testing.T) {
	p := mustPlay(t, NewPosition(), "e2e4", "e7e5", "d1h5")
	out := p.Draw()
	assert.Contains(t, out, " 8 | r n b q k b n r |")
	assert.Contains(t, out, " 1 | R N B . K B N R |")
	assert.Contains(t, out, "a b c d e f g h")
	assert.Contains(t, out, "black to move")

	bare := mustFEN(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1").Draw()
	assert.Contains(t, bare, " 8 | . . . . k . . . |")
}
