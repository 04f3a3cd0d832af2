package game

import "gorgonia.org/tensor"

// Observation planes: 12 piece planes (white pawn..king, black pawn..king),
// one side-to-move plane, four castling planes and one en-passant plane.
const (
	PiecePlanes  = 12
	turnPlane    = 12
	castlePlane  = 13
	epPlane      = 17
	FeaturePlane = 18
)

// InputEncoder encodes a position into a flat FeaturePlane*8*8 slice,
// indexed [plane][rank][file] with rank 0 being white's first rank.
func InputEncoder(p *Position) []float32 {
	const planeSize = RowNum * ColNum
	retVal := make([]float32, FeaturePlane*planeSize)
	for sq, pc := range p.board {
		if pc.IsEmpty() {
			continue
		}
		plane := int(pc.Kind) - 1
		if pc.Color == Black {
			plane += 6
		}
		retVal[plane*planeSize+sq] = 1
	}
	fill := func(plane int, v float32) {
		for i := 0; i < planeSize; i++ {
			retVal[plane*planeSize+i] = v
		}
	}
	if p.turn == White {
		fill(turnPlane, 1)
	}
	for i, cr := range [4]CastlingRights{WhiteKingSide, WhiteQueenSide, BlackKingSide, BlackQueenSide} {
		if p.castling.Can(cr) {
			fill(castlePlane+i, 1)
		}
	}
	if p.epSquare != NoSquare {
		retVal[epPlane*planeSize+int(p.epSquare)] = 1
	}
	return retVal
}

// Observe returns the encoded position as a (FeaturePlane, 8, 8) tensor.
func Observe(p *Position) *tensor.Dense {
	return tensor.New(
		tensor.WithShape(FeaturePlane, RowNum, ColNum),
		tensor.WithBacking(InputEncoder(p)),
	)
}
