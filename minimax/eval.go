package minimax

import (
	"strings"

	"github.com/gymchess/game"
)

// Evaluator scores a non-terminal position from the point of view of the side
// to move. Evaluators must be deterministic.
type Evaluator func(p *game.Position) float32

// Piece values in centipawns. The king carries no material value.
var pieceValues = [...]float32{
	game.NoKind: 0,
	game.Pawn:   100,
	game.Knight: 300,
	game.Bishop: 325,
	game.Rook:   500,
	game.Queen:  900,
	game.King:   0,
}

// Value returns the material value of a piece kind in centipawns.
func Value(k game.PieceKind) float32 { return pieceValues[k] }

var evaluators = map[string]Evaluator{
	"material":   Material,
	"positional": Positional,
}

// EvaluatorByName returns the evaluator called name; unknown names and the
// empty string select Positional.
func EvaluatorByName(name string) Evaluator {
	if e, ok := evaluators[strings.ToLower(name)]; ok {
		return e
	}
	return Positional
}

// Material is the material balance for the side to move.
func Material(p *game.Position) float32 {
	var score float32
	us := p.Turn()
	for _, pc := range p.Board() {
		if pc.IsEmpty() {
			continue
		}
		if pc.Color == us {
			score += pieceValues[pc.Kind]
		} else {
			score -= pieceValues[pc.Kind]
		}
	}
	return score
}

const centreBonus = 10

// Positional adds to Material a bonus for advanced pawns, for pieces on the
// four centre squares and for the number of free or capturable squares around
// each piece.
func Positional(p *game.Position) float32 {
	score := Material(p)
	us := p.Turn()
	board := p.Board()
	for i, pc := range board {
		if pc.IsEmpty() {
			continue
		}
		sq := game.Square(i)
		var bonus float32
		if pc.Kind == game.Pawn {
			bonus += float32(advance(sq, pc.Color))
		}
		if f, r := sq.File(), sq.Rank(); (f == 3 || f == 4) && (r == 3 || r == 4) {
			bonus += centreBonus
		}
		bonus += float32(mobility(&board, sq, pc.Color))
		if pc.Color == us {
			score += bonus
		} else {
			score -= bonus
		}
	}
	return score
}

// advance is the number of ranks a pawn has moved from its starting rank.
func advance(sq game.Square, c game.Color) int {
	if c == game.White {
		return sq.Rank() - 1
	}
	return 6 - sq.Rank()
}

// mobility counts the neighbouring squares that are empty or hold an enemy
// piece.
func mobility(board *[64]game.Piece, sq game.Square, c game.Color) int {
	var n int
	for df := -1; df <= 1; df++ {
		for dr := -1; dr <= 1; dr++ {
			if df == 0 && dr == 0 {
				continue
			}
			f, r := sq.File()+df, sq.Rank()+dr
			if f < 0 || f > 7 || r < 0 || r > 7 {
				continue
			}
			if pc := board[game.NewSquare(f, r)]; pc.IsEmpty() || pc.Color != c {
				n++
			}
		}
	}
	return n
}
