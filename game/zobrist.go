package game

import "golang.org/x/exp/rand"

// Zobrist keys. The generator uses a fixed seed so keys, and therefore
// repetition detection, are reproducible between runs.
var (
	zobristPiece     [2][7][64]uint64
	zobristCastling  [16]uint64
	zobristEnPassant [8]uint64
	zobristBlack     uint64
)

const zobristSeed = 0x98F107A2BEEF1234

func init() {
	r := rand.New(rand.NewSource(zobristSeed))
	for c := White; c <= Black; c++ {
		for k := Pawn; k <= King; k++ {
			for sq := 0; sq < 64; sq++ {
				zobristPiece[c][k][sq] = r.Uint64()
			}
		}
	}
	for i := range zobristCastling {
		zobristCastling[i] = r.Uint64()
	}
	for i := range zobristEnPassant {
		zobristEnPassant[i] = r.Uint64()
	}
	zobristBlack = r.Uint64()
}

// computeHash builds the key from scratch.
func (p *Position) computeHash() uint64 {
	var h uint64
	for sq, pc := range p.board {
		if !pc.IsEmpty() {
			h ^= zobristPiece[pc.Color][pc.Kind][sq]
		}
	}
	h ^= zobristCastling[p.castling]
	if p.epSquare != NoSquare && p.epCapturable() {
		h ^= zobristEnPassant[p.epSquare.File()]
	}
	if p.turn == Black {
		h ^= zobristBlack
	}
	return h
}

// epCapturable reports whether a pawn of the side to move stands next to the
// pawn that just made a double step. Positions only differ for repetition
// purposes when the capture is actually available.
func (p *Position) epCapturable() bool {
	// the pawn that moved stands one rank behind the target square, seen from
	// the side to move
	victim := p.epSquare.offset(0, -p.turn.Sign())
	if victim == NoSquare {
		return false
	}
	own := Piece{Kind: Pawn, Color: p.turn}
	for _, df := range [2]int{-1, 1} {
		if sq := victim.offset(df, 0); sq != NoSquare && p.board[sq] == own {
			return true
		}
	}
	return false
}
