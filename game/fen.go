package game

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// InitialFEN is the FEN string of the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN builds a position from a FEN string. The clock fields may be
// omitted, in which case they default to "0 1". Besides the syntax, the
// position must hold one king per colour, no pawn on the first or last rank,
// an en-passant square behind a pawn that could just have double stepped,
// and the side not to move must not be in check.
func ParseFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 || len(parts) > 6 {
		return nil, errors.Wrapf(ErrInvalidFEN, "%q: expected 4 to 6 fields, got %d", fen, len(parts))
	}

	p := &Position{
		epSquare: NoSquare,
		fullMove: 1,
		kings:    [2]Square{NoSquare, NoSquare},
	}
	if err := p.parsePlacement(parts[0]); err != nil {
		return nil, errors.WithMessagef(err, "%q", fen)
	}

	switch parts[1] {
	case "w":
		p.turn = White
	case "b":
		p.turn = Black
	default:
		return nil, errors.Wrapf(ErrInvalidFEN, "%q: bad side to move %q", fen, parts[1])
	}
	if p.IsInCheck(p.turn.Other()) {
		return nil, errors.Wrapf(ErrInvalidFEN, "%q: %v is in check but not to move", fen, p.turn.Other())
	}

	if parts[2] != "-" {
		for _, c := range parts[2] {
			switch c {
			case 'K':
				p.castling |= WhiteKingSide
			case 'Q':
				p.castling |= WhiteQueenSide
			case 'k':
				p.castling |= BlackKingSide
			case 'q':
				p.castling |= BlackQueenSide
			default:
				return nil, errors.Wrapf(ErrInvalidFEN, "%q: bad castling field %q", fen, parts[2])
			}
		}
	}
	p.castling &= p.possibleCastling()

	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil || !p.validEnPassant(sq) {
			return nil, errors.Wrapf(ErrInvalidFEN, "%q: bad en-passant square %q", fen, parts[3])
		}
		p.epSquare = sq
	}

	if len(parts) > 4 {
		n, err := strconv.Atoi(parts[4])
		if err != nil || n < 0 {
			return nil, errors.Wrapf(ErrInvalidFEN, "%q: bad half-move clock %q", fen, parts[4])
		}
		p.halfMove = n
	}
	if len(parts) > 5 {
		n, err := strconv.Atoi(parts[5])
		if err != nil || n < 1 {
			return nil, errors.Wrapf(ErrInvalidFEN, "%q: bad full-move number %q", fen, parts[5])
		}
		p.fullMove = n
	}

	p.hash = p.computeHash()
	return p, nil
}

func (p *Position) parsePlacement(placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return errors.Wrapf(ErrInvalidFEN, "expected 8 ranks, got %d", len(ranks))
	}
	for i, row := range ranks {
		rank := 7 - i
		file := 0
		for _, c := range row {
			if c > unicode.MaxASCII {
				return errors.Wrapf(ErrInvalidFEN, "invalid piece character %q", c)
			}
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			k := kindFromLetter(byte(c))
			if k == NoKind {
				return errors.Wrapf(ErrInvalidFEN, "invalid piece character %q", c)
			}
			if file > 7 {
				return errors.Wrapf(ErrInvalidFEN, "rank %d overflows", rank+1)
			}
			col := White
			if unicode.IsLower(c) {
				col = Black
			}
			if k == Pawn && (rank == 0 || rank == 7) {
				return errors.Wrapf(ErrInvalidFEN, "pawn on rank %d", rank+1)
			}
			sq := NewSquare(file, rank)
			p.board[sq] = Piece{Kind: k, Color: col}
			if k == King {
				if p.kings[col] != NoSquare {
					return errors.Wrapf(ErrInvalidFEN, "more than one %v king", col)
				}
				p.kings[col] = sq
			}
			file++
		}
		if file != 8 {
			return errors.Wrapf(ErrInvalidFEN, "rank %d has %d files", rank+1, file)
		}
	}
	for _, c := range [2]Color{White, Black} {
		if p.kings[c] == NoSquare {
			return errors.Wrapf(ErrInvalidFEN, "no %v king", c)
		}
	}
	return nil
}

// validEnPassant reports whether sq can be the en-passant target with p.turn
// to move: it lies on the opponent's third rank, is empty like the square the
// pawn left, and the opponent's pawn stands in front of it.
func (p *Position) validEnPassant(sq Square) bool {
	rank := 5
	if p.turn == Black {
		rank = 2
	}
	if sq.Rank() != rank || !p.board[sq].IsEmpty() {
		return false
	}
	from := sq.offset(0, p.turn.Sign())
	victim := sq.offset(0, -p.turn.Sign())
	return p.board[from].IsEmpty() && p.board[victim] == Piece{Kind: Pawn, Color: p.turn.Other()}
}

// possibleCastling drops rights whose king or rook is not on its home square.
func (p *Position) possibleCastling() CastlingRights {
	var cr CastlingRights
	for _, c := range [2]Color{White, Black} {
		home := 0
		if c == Black {
			home = 7
		}
		if p.board[NewSquare(4, home)] != (Piece{Kind: King, Color: c}) {
			continue
		}
		rook := Piece{Kind: Rook, Color: c}
		if p.board[NewSquare(7, home)] == rook {
			cr |= kingSide(c)
		}
		if p.board[NewSquare(0, home)] == rook {
			cr |= queenSide(c)
		}
	}
	return cr
}

// FEN returns the position in Forsyth-Edwards Notation.
func (p *Position) FEN() string {
	var b strings.Builder
	b.WriteString(p.placement())
	b.WriteByte(' ')
	if p.turn == White {
		b.WriteByte('w')
	} else {
		b.WriteByte('b')
	}
	b.WriteByte(' ')
	b.WriteString(p.castling.String())
	b.WriteByte(' ')
	b.WriteString(p.epSquare.String())
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(p.halfMove))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(p.fullMove))
	return b.String()
}

func (p *Position) placement() string {
	var b strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc := p.board[NewSquare(file, rank)]
			if pc.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			b.WriteByte(pc.Letter())
		}
		if empty > 0 {
			b.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			b.WriteByte('/')
		}
	}
	return b.String()
}
