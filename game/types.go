package game

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

const (
	RowNum = 8
	ColNum = 8

	// MaxActions bounds the action space. No legal chess position has more
	// than 218 moves.
	MaxActions = 256
)

// Color is the side a piece belongs to.
type Color int8

const (
	White Color = iota
	Black
	NoColor
)

// Other returns the opponent colour.
func (c Color) Other() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

// Sign is +1 for white and -1 for black.
func (c Color) Sign() int {
	if c == Black {
		return -1
	}
	return 1
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "none"
}

// MarshalText lets colours appear as "white"/"black" in JSON configs.
func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Color) UnmarshalText(text []byte) error {
	col, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = col
	return nil
}

// ParseColor accepts "white"/"black" (any case) and the FEN letters "w"/"b".
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(s) {
	case "white", "w":
		return White, nil
	case "black", "b":
		return Black, nil
	}
	return NoColor, errors.Errorf("invalid colour %q, must be white or black", s)
}

// PieceKind is the type of a piece, irrespective of colour.
type PieceKind int8

const (
	NoKind PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindLetters = [...]byte{NoKind: '.', Pawn: 'p', Knight: 'n', Bishop: 'b', Rook: 'r', Queen: 'q', King: 'k'}

// Letter returns the lower case letter of the kind ('.' for NoKind).
func (k PieceKind) Letter() byte {
	if k < NoKind || k > King {
		return '?'
	}
	return kindLetters[k]
}

func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return "none"
}

func kindFromLetter(c byte) PieceKind {
	switch c {
	case 'p', 'P':
		return Pawn
	case 'n', 'N':
		return Knight
	case 'b', 'B':
		return Bishop
	case 'r', 'R':
		return Rook
	case 'q', 'Q':
		return Queen
	case 'k', 'K':
		return King
	}
	return NoKind
}

// Piece is a coloured piece. The zero value is an empty square.
type Piece struct {
	Kind  PieceKind
	Color Color
}

// NoPiece marks an empty square.
var NoPiece = Piece{}

func (p Piece) IsEmpty() bool { return p.Kind == NoKind }

// Letter returns the FEN letter of the piece: upper case for white, lower
// case for black and '.' for an empty square.
func (p Piece) Letter() byte {
	l := p.Kind.Letter()
	if p.Kind != NoKind && p.Color == White {
		l -= 'a' - 'A'
	}
	return l
}

func (p Piece) String() string { return string(p.Letter()) }

// Square is a board coordinate, file + 8*rank, with a1 = 0 and h8 = 63.
type Square int8

const NoSquare Square = -1

// NewSquare returns the square at file and rank (both 0..7).
func NewSquare(file, rank int) Square { return Square(rank*8 + file) }

func (sq Square) File() int { return int(sq) % 8 }
func (sq Square) Rank() int { return int(sq) / 8 }

// Valid reports whether the square lies on the board.
func (sq Square) Valid() bool { return sq >= 0 && sq < 64 }

func (sq Square) String() string {
	if !sq.Valid() {
		return "-"
	}
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}

// ParseSquare parses algebraic coordinates such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, errors.Errorf("invalid square %q", s)
	}
	return NewSquare(int(s[0]-'a'), int(s[1]-'1')), nil
}

// offset returns the square shifted by df files and dr ranks, or NoSquare
// when that falls off the board.
func (sq Square) offset(df, dr int) Square {
	f, r := sq.File()+df, sq.Rank()+dr
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return NoSquare
	}
	return NewSquare(f, r)
}

// MoveFlag carries extra information about a generated move.
type MoveFlag uint8

const (
	FlagCapture MoveFlag = 1 << iota
	FlagEnPassant
	FlagCastle
	FlagDoublePush
)

// Move is a single ply. Moves produced by the generator carry flags; moves
// built by callers (for example from UCI text) may leave them empty.
type Move struct {
	From      Square
	To        Square
	Promotion PieceKind
	Flags     MoveFlag
}

func (m Move) Has(f MoveFlag) bool { return m.Flags&f != 0 }

func (m Move) IsCapture() bool   { return m.Has(FlagCapture) }
func (m Move) IsCastle() bool    { return m.Has(FlagCastle) }
func (m Move) IsEnPassant() bool { return m.Has(FlagEnPassant) }

// String returns the move in UCI notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != NoKind {
		s += string(m.Promotion.Letter())
	}
	return s
}

// Format prints the flags with %+v, which helps when logging search traces.
func (m Move) Format(s fmt.State, c rune) {
	if c == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "{%v flags:%04b}", m.String(), m.Flags)
		return
	}
	fmt.Fprint(s, m.String())
}

// ParseMove parses UCI notation. The result carries no flags.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) != 4 && len(s) != 5 {
		return Move{}, errors.Errorf("invalid move %q", s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return Move{}, errors.WithMessagef(err, "move %q", s)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return Move{}, errors.WithMessagef(err, "move %q", s)
	}
	m := Move{From: from, To: to}
	if len(s) == 5 {
		k := kindFromLetter(s[4])
		if k == NoKind || k == Pawn || k == King {
			return Move{}, errors.Errorf("invalid promotion in move %q", s)
		}
		m.Promotion = k
	}
	return m, nil
}

// sameMove compares the parts of a move a caller can specify.
func sameMove(a, b Move) bool {
	return a.From == b.From && a.To == b.To && a.Promotion == b.Promotion
}

// CastlingRights is a bit set of the remaining castling options.
type CastlingRights uint8

const (
	WhiteKingSide CastlingRights = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide

	NoCastling  CastlingRights = 0
	AllCastling                = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
)

func (cr CastlingRights) Can(side CastlingRights) bool { return cr&side != 0 }

// String returns the FEN castling field.
func (cr CastlingRights) String() string {
	var b strings.Builder
	if cr.Can(WhiteKingSide) {
		b.WriteByte('K')
	}
	if cr.Can(WhiteQueenSide) {
		b.WriteByte('Q')
	}
	if cr.Can(BlackKingSide) {
		b.WriteByte('k')
	}
	if cr.Can(BlackQueenSide) {
		b.WriteByte('q')
	}
	if b.Len() == 0 {
		return "-"
	}
	return b.String()
}

func kingSide(c Color) CastlingRights {
	if c == White {
		return WhiteKingSide
	}
	return BlackKingSide
}

func queenSide(c Color) CastlingRights {
	if c == White {
		return WhiteQueenSide
	}
	return BlackQueenSide
}
