package render

import (
	"fmt"
	"image/color"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/gymchess/game"
)

var svgFill = map[game.Color]string{
	game.White: "fill:#ffffff;stroke:#000000;stroke-width:1",
	game.Black: "fill:#000000",
}

// SVG writes p to w as an SVG document, white at the bottom, with file and
// rank coordinates and the last move highlighted when last is non-nil.
func SVG(p *game.Position, last *game.Move, w io.Writer) {
	size := SquareSize * game.ColNum
	canvas := svg.New(w)
	canvas.Start(size, size)
	for rank := 0; rank < game.RowNum; rank++ {
		for file := 0; file < game.ColNum; file++ {
			sq := game.NewSquare(file, rank)
			r := squareRect(sq)
			fill := colorHex(darkColor)
			if (file+rank)%2 == 1 {
				fill = colorHex(lightColor)
			}
			if last != nil && (sq == last.From || sq == last.To) {
				fill = "#cdd26a"
			}
			canvas.Rect(r.Min.X, r.Min.Y, SquareSize, SquareSize, "fill:"+fill)
			if rank == 0 {
				canvas.Text(r.Max.X-8, r.Max.Y-3, string(rune('a'+file)), "font-size:10px;fill:#333333")
			}
			if file == 0 {
				canvas.Text(r.Min.X+2, r.Min.Y+11, fmt.Sprint(rank+1), "font-size:10px;fill:#333333")
			}
		}
	}
	for i, pc := range p.Board() {
		if pc.IsEmpty() {
			continue
		}
		r := squareRect(game.Square(i))
		style := "text-anchor:middle;font-family:sans-serif;font-weight:bold;font-size:30px;" + svgFill[pc.Color]
		canvas.Text(r.Min.X+SquareSize/2, r.Min.Y+SquareSize*3/4, string(rune(pc.Kind.Letter()-'a'+'A')), style)
	}
	canvas.End()
}

func colorHex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
