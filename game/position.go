package game

import (
	"sync"

	"github.com/pkg/errors"
)

// Position is an immutable board state: piece placement, side to move,
// castling rights, en-passant target and the move clocks. Every accepted move
// derives a new Position, so a *Position can be shared freely between
// goroutines.
type Position struct {
	board    [64]Piece
	turn     Color
	castling CastlingRights
	epSquare Square
	halfMove int
	fullMove int
	kings    [2]Square

	hash uint64
	// keys of the earlier positions since the last irreversible move, oldest first
	history []uint64

	once  sync.Once
	moves []Move
}

// NewPosition returns the standard starting position.
func NewPosition() *Position {
	p, err := ParseFEN(InitialFEN)
	if err != nil {
		panic(err)
	}
	return p
}

// Turn returns the side to move.
func (p *Position) Turn() Color { return p.turn }

// PieceAt returns the piece on sq, NoPiece when it is empty.
func (p *Position) PieceAt(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	return p.board[sq]
}

// Board returns a copy of the piece placement indexed by Square.
func (p *Position) Board() [64]Piece { return p.board }

func (p *Position) Castling() CastlingRights { return p.castling }

// EnPassant returns the en-passant target square, NoSquare if there is none.
func (p *Position) EnPassant() Square { return p.epSquare }

func (p *Position) HalfMoveClock() int  { return p.halfMove }
func (p *Position) FullMoveNumber() int { return p.fullMove }

// Hash returns the Zobrist key of the position.
func (p *Position) Hash() uint64 { return p.hash }

// King returns the square of the king of colour c, NoSquare if it is absent.
func (p *Position) King(c Color) Square { return p.kings[c] }

// Ply returns the number of half moves played since the first move of the game.
func (p *Position) Ply() int {
	ply := (p.fullMove - 1) * 2
	if p.turn == Black {
		ply++
	}
	return ply
}

// Repetitions counts how often the current position occurred, itself included.
func (p *Position) Repetitions() int {
	n := 1
	for _, h := range p.history {
		if h == p.hash {
			n++
		}
	}
	return n
}

// Eq reports whether two positions are identical for the rules of the game.
func (p *Position) Eq(other *Position) bool {
	return p.hash == other.hash &&
		p.board == other.board &&
		p.turn == other.turn &&
		p.castling == other.castling &&
		p.epSquare == other.epSquare &&
		p.halfMove == other.halfMove &&
		p.fullMove == other.fullMove
}

// Apply plays m and returns the resulting position. m must be one of the
// legal moves of p; flags are ignored for matching. A pawn reaching the last
// rank without a promotion kind becomes a queen.
func (p *Position) Apply(m Move) (*Position, error) {
	legal, ok := p.match(m)
	if !ok {
		return nil, errors.Wrapf(ErrIllegalMove, "%v in %s", m, p.FEN())
	}
	return p.play(legal), nil
}

// match finds the legal move a caller-built move refers to.
func (p *Position) match(m Move) (Move, bool) {
	if m.Promotion == NoKind && p.isPromotion(m) {
		m.Promotion = Queen
	}
	for _, lm := range p.legal() {
		if sameMove(lm, m) {
			return lm, true
		}
	}
	return Move{}, false
}

func (p *Position) isPromotion(m Move) bool {
	pc := p.PieceAt(m.From)
	if pc.Kind != Pawn || !m.To.Valid() {
		return false
	}
	return m.To.Rank() == lastRank(pc.Color)
}

// play makes a generated move without validating it.
func (p *Position) play(m Move) *Position {
	next := &Position{
		board:    p.board,
		turn:     p.turn.Other(),
		castling: p.castling,
		epSquare: NoSquare,
		halfMove: p.halfMove + 1,
		fullMove: p.fullMove,
		kings:    p.kings,
	}

	pc := p.board[m.From]
	next.board[m.From] = NoPiece
	if m.Has(FlagEnPassant) {
		next.board[m.To.offset(0, -pc.Color.Sign())] = NoPiece
	}
	if m.Has(FlagCastle) {
		rookFrom, rookTo := castleRookSquares(m)
		next.board[rookTo] = next.board[rookFrom]
		next.board[rookFrom] = NoPiece
	}
	placed := pc
	if m.Promotion != NoKind {
		placed.Kind = m.Promotion
	}
	next.board[m.To] = placed

	if pc.Kind == King {
		next.kings[pc.Color] = m.To
		next.castling &^= kingSide(pc.Color) | queenSide(pc.Color)
	}
	next.castling &^= cornerRights(m.From) | cornerRights(m.To)

	if pc.Kind == Pawn || m.IsCapture() {
		next.halfMove = 0
	}
	if m.Has(FlagDoublePush) {
		next.epSquare = m.From.offset(0, pc.Color.Sign())
	}
	if p.turn == Black {
		next.fullMove++
	}
	next.hash = next.computeHash()
	if next.halfMove > 0 {
		next.history = make([]uint64, len(p.history)+1)
		copy(next.history, p.history)
		next.history[len(p.history)] = p.hash
	}
	return next
}

// castleRookSquares returns where the rook comes from and goes to for a
// castling move.
func castleRookSquares(m Move) (from, to Square) {
	rank := m.From.Rank()
	if m.To.File() == 6 {
		return NewSquare(7, rank), NewSquare(5, rank)
	}
	return NewSquare(0, rank), NewSquare(3, rank)
}

// cornerRights returns the castling rights lost when anything moves from or
// to sq.
func cornerRights(sq Square) CastlingRights {
	switch sq {
	case NewSquare(0, 0):
		return WhiteQueenSide
	case NewSquare(7, 0):
		return WhiteKingSide
	case NewSquare(0, 7):
		return BlackQueenSide
	case NewSquare(7, 7):
		return BlackKingSide
	}
	return NoCastling
}

func lastRank(c Color) int {
	if c == White {
		return 7
	}
	return 0
}
