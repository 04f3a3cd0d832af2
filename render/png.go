// Package render draws positions as images.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gymchess/game"
)

// SquareSize is the side of a square in pixels.
const SquareSize = 48

var (
	lightColor = color.RGBA{0xf0, 0xd9, 0xb5, 0xff}
	darkColor  = color.RGBA{0xb5, 0x88, 0x63, 0xff}
	whiteInk   = color.RGBA{0xff, 0xff, 0xff, 0xff}
	blackInk   = color.RGBA{0x00, 0x00, 0x00, 0xff}
	markColor  = color.RGBA{0xd0, 0x30, 0x30, 0xff}
)

var regular *truetype.Font

func init() {
	var err error
	if regular, err = freetype.ParseFont(goregular.TTF); err != nil {
		panic(err)
	}
}

// Image draws p with white at the bottom. Pieces are drawn as their FEN
// letters; the king in check is outlined.
func Image(p *game.Position) (*image.RGBA, error) {
	size := SquareSize * game.ColNum
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	checked := game.NoSquare
	if p.InCheck() {
		checked = p.King(p.Turn())
	}
	for rank := 0; rank < game.RowNum; rank++ {
		for file := 0; file < game.ColNum; file++ {
			sq := game.NewSquare(file, rank)
			bg := darkColor
			if (file+rank)%2 == 1 {
				bg = lightColor
			}
			draw.Draw(img, squareRect(sq), &image.Uniform{bg}, image.Point{}, draw.Src)
			if sq == checked {
				outline(img, squareRect(sq), markColor)
			}
		}
	}

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(regular)
	ctx.SetFontSize(SquareSize * 0.6)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	for i, pc := range p.Board() {
		if pc.IsEmpty() {
			continue
		}
		ink := blackInk
		if pc.Color == game.White {
			ink = whiteInk
		}
		ctx.SetSrc(&image.Uniform{ink})
		r := squareRect(game.Square(i))
		pt := freetype.Pt(r.Min.X+SquareSize/3, r.Min.Y+SquareSize*3/4)
		if _, err := ctx.DrawString(string(pc.Kind.Letter()-'a'+'A'), pt); err != nil {
			return nil, errors.Wrapf(err, "draw %v", pc)
		}
	}
	return img, nil
}

// PNG writes p to w as a PNG image.
func PNG(p *game.Position, w io.Writer) error {
	img, err := Image(p)
	if err != nil {
		return err
	}
	return errors.Wrap(png.Encode(w, img), "encode png")
}

// squareRect is the pixel rectangle of sq; rank 8 is at the top.
func squareRect(sq game.Square) image.Rectangle {
	x := sq.File() * SquareSize
	y := (game.RowNum - 1 - sq.Rank()) * SquareSize
	return image.Rect(x, y, x+SquareSize, y+SquareSize)
}

func outline(img *image.RGBA, r image.Rectangle, c color.Color) {
	for x := r.Min.X; x < r.Max.X; x++ {
		for _, y := range []int{r.Min.Y, r.Min.Y + 1, r.Max.Y - 2, r.Max.Y - 1} {
			img.Set(x, y, c)
		}
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for _, x := range []int{r.Min.X, r.Min.X + 1, r.Max.X - 2, r.Max.X - 1} {
			img.Set(x, y, c)
		}
	}
}
