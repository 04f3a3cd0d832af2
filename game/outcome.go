package game

import "fmt"

// Status is the state of a game.
type Status int8

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
	Draw
)

func (s Status) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case Draw:
		return "draw"
	}
	return "UNKNOWN STATUS"
}

// DrawRule names the rule a drawn game ended by.
type DrawRule int8

const (
	NoDrawRule DrawRule = iota
	FiftyMoveRule
	ThreefoldRepetition
	InsufficientMaterial
)

func (r DrawRule) String() string {
	switch r {
	case FiftyMoveRule:
		return "fifty-move rule"
	case ThreefoldRepetition:
		return "threefold repetition"
	case InsufficientMaterial:
		return "insufficient material"
	}
	return "none"
}

// Outcome is the result of a position. Winner is only set for checkmates and
// Rule only for draws.
type Outcome struct {
	Status Status
	Winner Color
	Rule   DrawRule
}

// Ended reports whether the game is over.
func (o Outcome) Ended() bool { return o.Status != Ongoing }

// IsDraw reports whether the game ended without a winner.
func (o Outcome) IsDraw() bool { return o.Status == Stalemate || o.Status == Draw }

func (o Outcome) String() string {
	switch o.Status {
	case Checkmate:
		return fmt.Sprintf("checkmate, %v wins", o.Winner)
	case Draw:
		return fmt.Sprintf("draw by %v", o.Rule)
	}
	return o.Status.String()
}

// Result returns the PGN result token.
func (o Outcome) Result() string {
	switch {
	case o.Status == Checkmate && o.Winner == White:
		return "1-0"
	case o.Status == Checkmate && o.Winner == Black:
		return "0-1"
	case o.IsDraw():
		return "1/2-1/2"
	}
	return "*"
}

// Outcome evaluates the position: checkmate or stalemate when the side to
// move has no legal moves, otherwise a draw by insufficient material, the
// fifty-move rule or threefold repetition, otherwise Ongoing.
func (p *Position) Outcome() Outcome {
	if len(p.legal()) == 0 {
		if p.InCheck() {
			return Outcome{Status: Checkmate, Winner: p.turn.Other()}
		}
		return Outcome{Status: Stalemate, Winner: NoColor}
	}
	switch {
	case p.InsufficientMaterial():
		return Outcome{Status: Draw, Winner: NoColor, Rule: InsufficientMaterial}
	case p.halfMove >= 100:
		return Outcome{Status: Draw, Winner: NoColor, Rule: FiftyMoveRule}
	case p.Repetitions() >= 3:
		return Outcome{Status: Draw, Winner: NoColor, Rule: ThreefoldRepetition}
	}
	return Outcome{Status: Ongoing, Winner: NoColor}
}

// InsufficientMaterial reports whether neither side can possibly mate:
// K v K, K+B v K, K+N v K and K+B v K+B with bishops on the same colour.
func (p *Position) InsufficientMaterial() bool {
	var minors [2][]Square
	for sq, pc := range p.board {
		switch pc.Kind {
		case NoKind, King:
		case Pawn, Rook, Queen:
			return false
		default:
			minors[pc.Color] = append(minors[pc.Color], Square(sq))
		}
	}
	w, b := minors[White], minors[Black]
	switch {
	case len(w)+len(b) == 0:
		return true
	case len(w)+len(b) == 1:
		return true
	case len(w) == 1 && len(b) == 1:
		wb, bb := p.board[w[0]], p.board[b[0]]
		return wb.Kind == Bishop && bb.Kind == Bishop && lightSquare(w[0]) == lightSquare(b[0])
	}
	return false
}

func lightSquare(sq Square) bool { return (sq.File()+sq.Rank())%2 == 1 }
