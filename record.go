package gymchess

import (
	"sort"

	"github.com/notnil/chess"
	"github.com/pkg/errors"

	"github.com/gymchess/game"
)

// Record writes a game as PGN with standard algebraic moves. The moves are
// replayed from start and tags are written in key order.
func Record(start *game.Position, moves []game.Move, outcome game.Outcome, tags map[string]string) (string, error) {
	var opts []func(*chess.Game)
	if fen := start.FEN(); fen != game.InitialFEN {
		opt, err := chess.FEN(fen)
		if err != nil {
			return "", errors.Wrapf(err, "record from %s", fen)
		}
		opts = append(opts, opt)
	}
	g := chess.NewGame(opts...)

	var uci chess.UCINotation
	for i, m := range moves {
		mv, err := uci.Decode(g.Position(), m.String())
		if err != nil {
			return "", errors.Wrapf(err, "record move %d (%v)", i+1, m)
		}
		if err := g.Move(mv); err != nil {
			return "", errors.Wrapf(err, "record move %d (%v)", i+1, m)
		}
	}

	// checkmate, stalemate and dead positions are detected by the replay;
	// the other draws have to be claimed. notnil/chess keeps the en-passant
	// square after every double push, so it can count fewer repetitions and
	// refuse the claim; the Termination tag still carries the outcome.
	if outcome.Status == game.Draw && g.Outcome() == chess.NoOutcome {
		switch outcome.Rule {
		case game.FiftyMoveRule:
			_ = g.Draw(chess.FiftyMoveRule)
		case game.ThreefoldRepetition:
			_ = g.Draw(chess.ThreefoldRepetition)
		}
	}
	if outcome.Ended() {
		g.AddTagPair("Termination", outcome.String())
	}

	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		g.AddTagPair(k, tags[k])
	}
	return g.String(), nil
}
