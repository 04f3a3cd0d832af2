package game

// Direction tables. Their order fixes the move generation order.
var (
	knightSteps   = [8][2]int{{-2, 1}, {-1, 2}, {1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}}
	kingSteps     = [8][2]int{{-1, 1}, {0, 1}, {1, 1}, {-1, 0}, {1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	diagonalSteps = [4][2]int{{-1, 1}, {1, 1}, {-1, -1}, {1, -1}}
	straightSteps = [4][2]int{{0, 1}, {-1, 0}, {1, 0}, {0, -1}}
)

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool { return p.IsInCheck(p.turn) }

// IsInCheck reports whether the king of colour c is attacked. A side without
// a king is never in check.
func (p *Position) IsInCheck(c Color) bool {
	k := p.kings[c]
	if k == NoSquare {
		return false
	}
	return p.isAttacked(k, c.Other())
}

// isAttacked reports whether any piece of colour by attacks sq.
func (p *Position) isAttacked(sq Square, by Color) bool {
	// pawns of colour by attack from the rank behind sq, seen from their side
	pawn := Piece{Kind: Pawn, Color: by}
	for _, df := range [2]int{-1, 1} {
		if from := sq.offset(df, -by.Sign()); from != NoSquare && p.board[from] == pawn {
			return true
		}
	}

	knight := Piece{Kind: Knight, Color: by}
	for _, s := range knightSteps {
		if from := sq.offset(s[0], s[1]); from != NoSquare && p.board[from] == knight {
			return true
		}
	}

	king := Piece{Kind: King, Color: by}
	for _, s := range kingSteps {
		if from := sq.offset(s[0], s[1]); from != NoSquare && p.board[from] == king {
			return true
		}
	}

	queen := Piece{Kind: Queen, Color: by}
	bishop := Piece{Kind: Bishop, Color: by}
	for _, s := range diagonalSteps {
		if pc := p.firstPiece(sq, s); pc == bishop || pc == queen {
			return true
		}
	}
	rook := Piece{Kind: Rook, Color: by}
	for _, s := range straightSteps {
		if pc := p.firstPiece(sq, s); pc == rook || pc == queen {
			return true
		}
	}
	return false
}

// firstPiece walks from sq along step and returns the first piece met.
func (p *Position) firstPiece(sq Square, step [2]int) Piece {
	for to := sq.offset(step[0], step[1]); to != NoSquare; to = to.offset(step[0], step[1]) {
		if pc := p.board[to]; !pc.IsEmpty() {
			return pc
		}
	}
	return NoPiece
}
