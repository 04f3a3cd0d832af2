package gymchess

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"

	"github.com/gymchess/game"
)

// Arena pits two policies against each other over a series of games,
// alternating colours: A has white in even games and black in odd ones.
type Arena struct {
	A, B *Agent

	// MaxPlies ends a game as a draw after that many half moves; 0 means
	// the game runs until the rules end it.
	MaxPlies int

	conf       Config
	name       string
	gameNumber int

	// per game results, A's point of view
	scores  []float64
	lengths []float64
	records []string
}

// MakeArena seats a and b. conf supplies the start position, the logger and
// the event name.
func MakeArena(a, b Policy, conf Config) Arena {
	name := conf.Name
	if name == "" {
		name = "UNKNOWN GAME"
	}
	return Arena{
		A:    NewAgent("A", a),
		B:    NewAgent("B", b),
		conf: conf,
		name: name,
	}
}

// Name of the match.
func (ar *Arena) Name() string { return ar.name }

// GameNumber returns the number of games played so far.
func (ar *Arena) GameNumber() int { return ar.gameNumber }

// Records returns the PGN of every game played so far.
func (ar *Arena) Records() []string { return ar.records }

// Play plays one game and records its result. A game cut short by MaxPlies
// is recorded as a draw and returned with status Ongoing.
func (ar *Arena) Play() (game.Outcome, error) {
	white, black := ar.A, ar.B
	if ar.gameNumber%2 == 1 {
		white, black = black, white
	}
	white.Player, black.Player = game.White, game.Black
	logger := ar.conf.logger()

	pos, err := ar.conf.startPosition()
	if err != nil {
		return game.Outcome{}, err
	}
	start := pos
	var moves []game.Move
	outcome := pos.Outcome()
	for !outcome.Ended() && (ar.MaxPlies <= 0 || len(moves) < ar.MaxPlies) {
		current := white
		if pos.Turn() == game.Black {
			current = black
		}
		m, err := current.Choose(pos)
		if err != nil {
			return outcome, errors.WithMessagef(err, "game %d, agent %s", ar.gameNumber, current.Name())
		}
		a, err := game.MoveToAction(pos, m)
		if err != nil {
			return outcome, errors.WithMessagef(err, "game %d, agent %s", ar.gameNumber, current.Name())
		}
		m, _ = game.ActionToMove(pos, a)
		if pos, err = pos.ApplyAction(a); err != nil {
			return outcome, err
		}
		moves = append(moves, m)
		outcome = pos.Outcome()
	}

	pgn, err := Record(start, moves, outcome, map[string]string{
		"Event": ar.name,
		"Round": fmt.Sprint(ar.gameNumber + 1),
		"White": white.Name(),
		"Black": black.Name(),
	})
	if err != nil {
		return outcome, err
	}
	ar.records = append(ar.records, pgn)

	var score float64
	switch {
	case outcome.Status == game.Checkmate:
		white.record(outcome)
		black.record(outcome)
		if outcome.Winner == ar.A.Player {
			score = 1
		}
	default:
		ar.A.record(game.Outcome{Status: game.Draw})
		ar.B.record(game.Outcome{Status: game.Draw})
		score = 0.5
	}
	ar.scores = append(ar.scores, score)
	ar.lengths = append(ar.lengths, float64(len(moves)))

	logger.Printf("%s game %d: %v after %d plies", ar.name, ar.gameNumber, outcome, len(moves))
	ar.gameNumber++
	return outcome, nil
}

// Summary is the aggregate result of the games played in an Arena.
type Summary struct {
	Games      int
	AWins      float32
	BWins      float32
	Draws      float32
	ScoreMean  float64 // A's points per game, a win is 1 and a draw 0.5
	ScoreStd   float64
	LengthMean float64 // plies per game
	LengthStd  float64
}

// Run plays games more games and summarises every game played so far.
func (ar *Arena) Run(games int) (Summary, error) {
	for i := 0; i < games; i++ {
		if _, err := ar.Play(); err != nil {
			return ar.Summary(), err
		}
	}
	return ar.Summary(), nil
}

func (ar *Arena) Summary() Summary {
	s := Summary{
		Games: ar.gameNumber,
		AWins: ar.A.Wins,
		BWins: ar.B.Wins,
		Draws: ar.A.Draw,
	}
	if len(ar.scores) > 0 {
		s.ScoreMean = stat.Mean(ar.scores, nil)
		s.LengthMean = stat.Mean(ar.lengths, nil)
	}
	if len(ar.scores) > 1 {
		s.ScoreStd = stat.StdDev(ar.scores, nil)
		s.LengthStd = stat.StdDev(ar.lengths, nil)
	}
	return s
}

// Log writes the summary and the game records into w.
func (ar *Arena) Log(w io.Writer) {
	s := ar.Summary()
	fmt.Fprintf(w, "%s: %d games, A %v wins, B %v wins, %v draws\n", ar.name, s.Games, s.AWins, s.BWins, s.Draws)
	fmt.Fprintf(w, "A score %.3f ± %.3f, %.1f ± %.1f plies per game\n", s.ScoreMean, s.ScoreStd, s.LengthMean, s.LengthStd)
	for _, r := range ar.records {
		fmt.Fprintf(w, "\n%s\n", r)
	}
}

// Close closes both agents.
func (ar *Arena) Close() error {
	var errs error
	for _, a := range []*Agent{ar.A, ar.B} {
		if err := a.Close(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs
}
