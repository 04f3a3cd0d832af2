package minimax

import (
	"sync"
	"sync/atomic"

	"github.com/chewxy/math32"
	"github.com/gymchess/game"
	"github.com/pkg/errors"
)

// ErrNoMoves is returned when the search is asked to move in a position
// without legal moves. Callers should check the outcome first.
var ErrNoMoves = errors.New("no moves available")

// Mates are scored internally as mateScore minus the distance in plies, so
// a nearer mate is always preferred. Scores past mateBound are reported as
// infinities.
const (
	mateScore float32 = 1 << 20
	mateBound         = mateScore - 1<<10
)

// Result is the outcome of a root search.
type Result struct {
	Move   game.Move
	Score  float32     // score of Move for the side to move
	Moves  []game.Move // root moves in generation order
	Scores []float32   // exact score of each root move
	Nodes  int64       // positions visited
}

// Choose returns the move the searcher plays in p.
func (s *Searcher) Choose(p *game.Position) (game.Move, error) {
	res, err := s.Search(p)
	if err != nil {
		return game.Move{}, err
	}
	return res.Move, nil
}

// Search scores every root move of p to the configured depth and returns the best.
// Root moves are split over a pool of goroutines; each root move is searched
// with a full window so its score is exact, which makes the result
// independent of the number of workers. Ties go to the move generated first.
func (s *Searcher) Search(p *game.Position) (Result, error) {
	moves := p.LegalMoves()
	if len(moves) == 0 {
		return Result{}, errors.Wrapf(ErrNoMoves, "%s", p.FEN())
	}

	raw := make([]float32, len(moves))
	var nodes int64

	workers := s.conf.workers()
	if workers > len(moves) {
		workers = len(moves)
	}
	jobs := make(chan int, len(moves))
	for i := range moves {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				child, err := p.ApplyAction(game.Action(i))
				if err != nil {
					panic(err) // i is always inside the legal range
				}
				var n int64
				raw[i] = -s.negamax(child, s.conf.Depth-1, 1, -math32.MaxFloat32, math32.MaxFloat32, &n)
				atomic.AddInt64(&nodes, n)
			}
		}()
	}
	wg.Wait()

	scores := make([]float32, len(raw))
	for i, v := range raw {
		scores[i] = reported(v)
	}
	best := bestIndex(raw)
	res := Result{
		Move:   moves[best],
		Score:  scores[best],
		Moves:  moves,
		Scores: scores,
		Nodes:  nodes + 1,
	}
	s.log("%v to move, depth %d: best %v (%v), %d nodes", p.Turn(), s.conf.Depth, res.Move, res.Score, res.Nodes)
	return res, nil
}

// negamax returns the score of p, ply half moves below the root, for the side
// to move. Checkmated positions score -(mateScore-ply) and drawn ones 0
// whatever depth remains; other positions at depth 0 are scored by the
// evaluator.
func (s *Searcher) negamax(p *game.Position, depth, ply int, alpha, beta float32, nodes *int64) float32 {
	*nodes++
	switch p.Outcome().Status {
	case game.Checkmate:
		return -(mateScore - float32(ply))
	case game.Stalemate, game.Draw:
		return 0
	}
	if depth <= 0 {
		return s.eval(p)
	}

	var best float32 = -math32.MaxFloat32
	n := p.NumLegalMoves()
	for i := 0; i < n; i++ {
		child, err := p.ApplyAction(game.Action(i))
		if err != nil {
			panic(err)
		}
		score := -s.negamax(child, depth-1, ply+1, -beta, -alpha, nodes)
		if score > best {
			best = score
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// reported maps mate scores to infinities.
func reported(v float32) float32 {
	switch {
	case v >= mateBound:
		return math32.Inf(1)
	case v <= -mateBound:
		return math32.Inf(-1)
	}
	return v
}

// bestIndex returns the index of the first highest score. Among mates the
// nearest wins, and when every move loses to mate the longest defence does.
func bestIndex(scores []float32) int {
	best := 0
	for i, v := range scores[1:] {
		if v > scores[best] {
			best = i + 1
		}
	}
	return best
}
