package game

import "strings"

// Draw returns an ASCII grid of the board with white at the bottom, rank and
// file labels, and the side to move. Upper case letters are white pieces.
func (p *Position) Draw() string {
	var b strings.Builder
	b.WriteString("   +-----------------+\n")
	for rank := 7; rank >= 0; rank-- {
		b.WriteByte(' ')
		b.WriteByte(byte('1' + rank))
		b.WriteString(" |")
		for file := 0; file < 8; file++ {
			b.WriteByte(' ')
			b.WriteByte(p.board[NewSquare(file, rank)].Letter())
		}
		b.WriteString(" |\n")
	}
	b.WriteString("   +-----------------+\n")
	b.WriteString("     a b c d e f g h\n")
	b.WriteString(p.turn.String())
	b.WriteString(" to move")
	if p.InCheck() {
		b.WriteString(", in check")
	}
	b.WriteByte('\n')
	return b.String()
}

// String implements fmt.Stringer with the FEN of the position.
func (p *Position) String() string { return p.FEN() }
