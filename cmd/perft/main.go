// Command perft counts the leaf nodes of the move tree of a position and
// checks the move generator against github.com/notnil/chess, both on the
// perft counts and on the legal move sets met during random games.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/notnil/chess"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"github.com/gymchess/game"
)

var (
	fenFlag     = flag.String("fen", game.InitialFEN, "position to count from")
	depthFlag   = flag.Int("depth", 3, "perft depth")
	divideFlag  = flag.Bool("divide", false, "print the count below each root move")
	numGameFlag = flag.Int("num_game", 10, "number of random games to cross-check")
	seedFlag    = flag.Uint64("seed", 1, "random seed for the games")
)

func main() {
	flag.Parse()

	p, err := game.ParseFEN(*fenFlag)
	if err != nil {
		log.Fatal(err)
	}
	ref, err := refPosition(*fenFlag)
	if err != nil {
		log.Fatal(err)
	}

	failed := false
	for d := 1; d <= *depthFlag; d++ {
		got, want := game.Perft(p, d), refPerft(ref, d)
		status := "ok"
		if got != want {
			status = fmt.Sprintf("MISMATCH, notnil/chess counts %d", want)
			failed = true
		}
		fmt.Printf("perft(%d) = %d %s\n", d, got, status)
	}

	if *divideFlag && *depthFlag > 0 {
		for _, m := range p.LegalMoves() {
			child, err := p.Apply(m)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Printf("%v: %d\n", m, game.Perft(child, *depthFlag-1))
		}
	}

	r := rand.New(rand.NewSource(*seedFlag))
	for i := 0; i < *numGameFlag; i++ {
		n, err := crossCheck(r)
		if err != nil {
			log.Printf("game %d: %v", i, err)
			failed = true
			continue
		}
		log.Printf("game %d: %d positions agree", i, n)
	}
	if failed {
		os.Exit(1)
	}
}

func refPosition(fen string) (*chess.Position, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, err
	}
	return chess.NewGame(opt).Position(), nil
}

func refPerft(pos *chess.Position, depth int) int {
	if depth == 0 {
		return 1
	}
	moves := pos.ValidMoves()
	if depth == 1 {
		return len(moves)
	}
	var n int
	for _, m := range moves {
		n += refPerft(pos.Update(m), depth-1)
	}
	return n
}

// crossCheck plays a random game and compares the legal move sets of both
// generators in every position. It returns the number of positions checked.
func crossCheck(r *rand.Rand) (int, error) {
	p := game.NewPosition()
	g := chess.NewGame(chess.UseNotation(chess.UCINotation{}))
	var n int
	for !p.Outcome().Ended() && g.Outcome() == chess.NoOutcome {
		ours := moveSet(p.LegalMoves())
		var theirs []string
		for _, m := range g.ValidMoves() {
			theirs = append(theirs, chess.UCINotation{}.Encode(g.Position(), m))
		}
		sort.Strings(theirs)
		if fmt.Sprint(ours) != fmt.Sprint(theirs) {
			return n, errors.Errorf("%s: got %v, notnil/chess %v", p.FEN(), ours, theirs)
		}
		n++

		moves := p.LegalMoves()
		m := moves[r.Intn(len(moves))]
		var err error
		if p, err = p.Apply(m); err != nil {
			return n, err
		}
		if err = g.MoveStr(m.String()); err != nil {
			return n, err
		}
	}
	return n, nil
}

func moveSet(moves []game.Move) []string {
	retVal := make([]string, len(moves))
	for i, m := range moves {
		retVal[i] = m.String()
	}
	sort.Strings(retVal)
	return retVal
}
