package render

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gymchess/game"
)

func TestPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PNG(game.NewPosition(), &buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, SquareSize*8, img.Bounds().Dx())
	assert.Equal(t, SquareSize*8, img.Bounds().Dy())

	// a1 is dark, h1 is light
	a1 := squareRect(game.NewSquare(0, 0))
	h1 := squareRect(game.NewSquare(7, 0))
	assert.Equal(t, 0, a1.Min.X)
	assert.Equal(t, SquareSize*7, a1.Min.Y)
	r, g, b, _ := img.At(a1.Min.X+1, a1.Min.Y+1).RGBA()
	assert.Equal(t, [3]uint32{0xb5, 0x88, 0x63}, [3]uint32{r >> 8, g >> 8, b >> 8})
	r, g, b, _ = img.At(h1.Min.X+1, h1.Min.Y+1).RGBA()
	assert.Equal(t, [3]uint32{0xf0, 0xd9, 0xb5}, [3]uint32{r >> 8, g >> 8, b >> 8})
}

func TestImageMarksCheckedKing(t *testing.T) {
	p, err := game.ParseFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	require.NoError(t, err)
	img, err := Image(p)
	require.NoError(t, err)

	e1 := squareRect(game.NewSquare(4, 0))
	assert.Equal(t, markColor, img.RGBAAt(e1.Min.X, e1.Min.Y))
}

func TestSVG(t *testing.T) {
	p := game.NewPosition()
	m, err := game.ParseMove("e2e4")
	require.NoError(t, err)
	p, err = p.Apply(m)
	require.NoError(t, err)

	var buf bytes.Buffer
	SVG(p, &m, &buf)
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "</svg>"))
	assert.Equal(t, 64, strings.Count(out, "<rect"))
	assert.Equal(t, 2, strings.Count(out, "#cdd26a"))
	assert.Contains(t, out, ">K</text>")
}
