package game

var promotionKinds = [4]PieceKind{Queen, Rook, Bishop, Knight}

// LegalMoves returns the legal moves of p in generation order.
func LegalMoves(p *Position) []Move { return p.LegalMoves() }

// LegalMoves returns the legal moves of the side to move. The order is stable
// for a given position: squares are scanned from a8 to h1, rank by rank, and
// each piece kind follows a fixed direction table. The returned slice is a
// copy and may be modified by the caller.
func (p *Position) LegalMoves() []Move {
	legal := p.legal()
	retVal := make([]Move, len(legal))
	copy(retVal, legal)
	return retVal
}

// NumLegalMoves returns the size of the legal move set.
func (p *Position) NumLegalMoves() int { return len(p.legal()) }

// Check reports whether m is legal in p.
func (p *Position) Check(m Move) bool {
	_, ok := p.match(m)
	return ok
}

// legal returns the cached legal move list. Callers must not modify it.
func (p *Position) legal() []Move {
	p.once.Do(func() {
		pseudo := p.pseudoLegal(make([]Move, 0, 48))
		legal := pseudo[:0]
		for _, m := range pseudo {
			if p.keepsKingSafe(m) {
				legal = append(legal, m)
			}
		}
		p.moves = legal
	})
	return p.moves
}

// keepsKingSafe plays m on a scratch board and reports whether the mover's
// king is left out of check.
func (p *Position) keepsKingSafe(m Move) bool {
	tmp := Position{board: p.board, kings: p.kings}
	pc := tmp.board[m.From]
	tmp.board[m.From] = NoPiece
	if m.Has(FlagEnPassant) {
		tmp.board[m.To.offset(0, -pc.Color.Sign())] = NoPiece
	}
	if m.Has(FlagCastle) {
		rookFrom, rookTo := castleRookSquares(m)
		tmp.board[rookTo] = tmp.board[rookFrom]
		tmp.board[rookFrom] = NoPiece
	}
	tmp.board[m.To] = pc
	if pc.Kind == King {
		tmp.kings[pc.Color] = m.To
	}
	return !tmp.IsInCheck(pc.Color)
}

// pseudoLegal appends the moves that follow the piece movement rules but may
// leave the mover's king in check.
func (p *Position) pseudoLegal(moves []Move) []Move {
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			from := NewSquare(file, rank)
			pc := p.board[from]
			if pc.IsEmpty() || pc.Color != p.turn {
				continue
			}
			switch pc.Kind {
			case Pawn:
				moves = p.pawnMoves(moves, from)
			case Knight:
				moves = p.stepMoves(moves, from, knightSteps[:])
			case Bishop:
				moves = p.slideMoves(moves, from, diagonalSteps[:])
			case Rook:
				moves = p.slideMoves(moves, from, straightSteps[:])
			case Queen:
				moves = p.slideMoves(moves, from, straightSteps[:])
				moves = p.slideMoves(moves, from, diagonalSteps[:])
			case King:
				moves = p.stepMoves(moves, from, kingSteps[:])
				moves = p.castleMoves(moves, from)
			}
		}
	}
	return moves
}

func (p *Position) pawnMoves(moves []Move, from Square) []Move {
	dir := p.turn.Sign()
	if one := from.offset(0, dir); one != NoSquare && p.board[one].IsEmpty() {
		moves = appendPawnMove(moves, Move{From: from, To: one})
		startRank := 1
		if p.turn == Black {
			startRank = 6
		}
		if from.Rank() == startRank {
			if two := one.offset(0, dir); p.board[two].IsEmpty() {
				moves = append(moves, Move{From: from, To: two, Flags: FlagDoublePush})
			}
		}
	}
	for _, df := range [2]int{-1, 1} {
		to := from.offset(df, dir)
		if to == NoSquare {
			continue
		}
		if target := p.board[to]; !target.IsEmpty() && target.Color != p.turn {
			moves = appendPawnMove(moves, Move{From: from, To: to, Flags: FlagCapture})
		} else if to == p.epSquare {
			moves = append(moves, Move{From: from, To: to, Flags: FlagCapture | FlagEnPassant})
		}
	}
	return moves
}

// appendPawnMove expands a move to the last rank into its four promotions.
func appendPawnMove(moves []Move, m Move) []Move {
	if m.To.Rank() != 0 && m.To.Rank() != 7 {
		return append(moves, m)
	}
	for _, k := range promotionKinds {
		m.Promotion = k
		moves = append(moves, m)
	}
	return moves
}

func (p *Position) stepMoves(moves []Move, from Square, steps [][2]int) []Move {
	for _, s := range steps {
		to := from.offset(s[0], s[1])
		if to == NoSquare {
			continue
		}
		switch target := p.board[to]; {
		case target.IsEmpty():
			moves = append(moves, Move{From: from, To: to})
		case target.Color != p.turn:
			moves = append(moves, Move{From: from, To: to, Flags: FlagCapture})
		}
	}
	return moves
}

func (p *Position) slideMoves(moves []Move, from Square, steps [][2]int) []Move {
	for _, s := range steps {
		for to := from.offset(s[0], s[1]); to != NoSquare; to = to.offset(s[0], s[1]) {
			target := p.board[to]
			if target.IsEmpty() {
				moves = append(moves, Move{From: from, To: to})
				continue
			}
			if target.Color != p.turn {
				moves = append(moves, Move{From: from, To: to, Flags: FlagCapture})
			}
			break
		}
	}
	return moves
}

// castleMoves appends the castling moves of the king on from. The king must
// be on its home square with the rook in its corner, the squares between them
// empty, and neither the king's square nor the squares it crosses or lands on
// attacked.
func (p *Position) castleMoves(moves []Move, from Square) []Move {
	home := 0
	if p.turn == Black {
		home = 7
	}
	if from != NewSquare(4, home) {
		return moves
	}
	ks, qs := kingSide(p.turn), queenSide(p.turn)
	if !p.castling.Can(ks) && !p.castling.Can(qs) {
		return moves
	}
	enemy := p.turn.Other()
	if p.isAttacked(from, enemy) {
		return moves
	}
	rook := Piece{Kind: Rook, Color: p.turn}

	if p.castling.Can(ks) && p.board[NewSquare(7, home)] == rook &&
		p.emptyFiles(home, 5, 6) &&
		!p.isAttacked(NewSquare(5, home), enemy) && !p.isAttacked(NewSquare(6, home), enemy) {
		moves = append(moves, Move{From: from, To: NewSquare(6, home), Flags: FlagCastle})
	}
	if p.castling.Can(qs) && p.board[NewSquare(0, home)] == rook &&
		p.emptyFiles(home, 1, 2, 3) &&
		!p.isAttacked(NewSquare(3, home), enemy) && !p.isAttacked(NewSquare(2, home), enemy) {
		moves = append(moves, Move{From: from, To: NewSquare(2, home), Flags: FlagCastle})
	}
	return moves
}

func (p *Position) emptyFiles(rank int, files ...int) bool {
	for _, f := range files {
		if !p.board[NewSquare(f, rank)].IsEmpty() {
			return false
		}
	}
	return true
}

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft(p *Position, depth int) int {
	if depth <= 0 {
		return 1
	}
	legal := p.legal()
	if depth == 1 {
		return len(legal)
	}
	var n int
	for _, m := range legal {
		n += Perft(p.play(m), depth-1)
	}
	return n
}
