package gymchess

import (
	"log"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"

	"github.com/gymchess/game"
)

var (
	// ErrIllegalAction is returned by Step for an action that does not name a
	// legal move of the current state. The state is left unchanged.
	ErrIllegalAction = errors.New("illegal action")
	// ErrGameOver is returned by Step once the game has ended.
	ErrGameOver = errors.New("game is over")
)

// illegalAction is ErrIllegalAction with the decoding error kept as its cause.
type illegalAction struct{ cause error }

func (e illegalAction) Error() string        { return ErrIllegalAction.Error() + ": " + e.cause.Error() }
func (e illegalAction) Is(target error) bool { return target == ErrIllegalAction }
func (e illegalAction) Unwrap() error        { return e.cause }

// Info describes what happened during a Step.
type Info struct {
	PlayerMove   game.Move
	OpponentMove *game.Move // nil when the game ended on the player's move
	Outcome      game.Outcome
	Ply          int
	Captured     float32 // material the player captured minus material it lost, in pawns
}

// Env is a chess environment for one agent playing Config.Player against an
// opponent Policy. The agent moves with Step; the opponent answers inside the
// same Step. An Env is not safe for concurrent use.
type Env struct {
	conf     Config
	opponent Policy
	logger   *log.Logger

	start   *game.Position
	pos     *game.Position
	moves   []game.Move
	outcome game.Outcome
}

// New creates an environment and resets it. A nil opponent is built from
// conf.Opponent.
func New(conf Config, opponent Policy) (*Env, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if opponent == nil {
		var err error
		if opponent, err = NewPolicy(conf.Opponent, conf); err != nil {
			return nil, err
		}
	}
	e := &Env{
		conf:     conf,
		opponent: opponent,
		logger:   conf.logger(),
	}
	if _, err := e.Reset(); err != nil {
		return nil, err
	}
	return e, nil
}

// Reset starts a new game from the configured start position. If the
// opponent has the move it plays before Reset returns.
func (e *Env) Reset() (*game.Position, error) {
	start, err := e.conf.startPosition()
	if err != nil {
		return nil, err
	}
	e.start = start
	e.pos = start
	e.moves = e.moves[:0]
	e.outcome = start.Outcome()
	e.logger.Printf("%s: new game, player %v, %s", e.conf.Name, e.conf.Player, start.FEN())

	if !e.outcome.Ended() && start.Turn() != e.conf.Player {
		if _, _, err := e.reply(); err != nil {
			return e.pos, err
		}
	}
	return e.pos, nil
}

// Step plays action a for the player, then lets the opponent reply unless the
// game is over. The reward is the configured terminal reward once the game
// ends, plus capture shaping when Rewards.Capture is set.
func (e *Env) Step(a game.Action) (state *game.Position, reward float32, done bool, info Info, err error) {
	info = Info{Outcome: e.outcome, Ply: e.pos.Ply()}
	if e.outcome.Ended() {
		return e.pos, 0, true, info, errors.Wrapf(ErrGameOver, "%v", e.outcome)
	}
	if e.pos.Turn() != e.conf.Player {
		return e.pos, 0, false, info, errors.Wrapf(ErrIllegalAction, "%v to move", e.pos.Turn())
	}
	m, err := game.ActionToMove(e.pos, a)
	if err != nil {
		return e.pos, 0, false, info, errors.WithStack(illegalAction{err})
	}

	info.PlayerMove = m
	info.Captured = e.play(m)
	if !e.outcome.Ended() {
		om, lost, err := e.reply()
		if err != nil {
			info.Outcome, info.Ply = e.outcome, e.pos.Ply()
			return e.pos, e.conf.Rewards.Capture * info.Captured, false, info, err
		}
		info.OpponentMove = &om
		info.Captured -= lost
	}

	info.Outcome, info.Ply = e.outcome, e.pos.Ply()
	reward = e.conf.Rewards.Capture*info.Captured + e.terminalReward()
	e.logger.Printf("ply %d: %v/%v, reward %v, %v", info.Ply, info.PlayerMove, info.OpponentMove, reward, e.outcome)
	return e.pos, reward, e.outcome.Ended(), info, nil
}

// reply asks the opponent for a move and plays it. A failing policy or an
// illegal move is returned as an error; no move is substituted.
func (e *Env) reply() (game.Move, float32, error) {
	m, err := e.opponent.Choose(e.pos)
	if err != nil {
		return game.Move{}, 0, errors.WithMessage(err, "opponent")
	}
	a, err := game.MoveToAction(e.pos, m)
	if err != nil {
		return game.Move{}, 0, errors.WithMessage(err, "opponent")
	}
	if m, err = game.ActionToMove(e.pos, a); err != nil {
		return game.Move{}, 0, err
	}
	return m, e.play(m), nil
}

// play applies a legal move and returns the value of the captured piece.
func (e *Env) play(m game.Move) float32 {
	captured := e.pos.PieceAt(m.To).Kind
	if m.IsEnPassant() {
		captured = game.Pawn
	}
	next, err := e.pos.Apply(m)
	if err != nil {
		panic(err) // m comes from the legal move list
	}
	e.pos = next
	e.moves = append(e.moves, m)
	e.outcome = next.Outcome()
	return captureValues[captured]
}

var captureValues = [...]float32{
	game.NoKind: 0,
	game.Pawn:   1,
	game.Knight: 3,
	game.Bishop: 3,
	game.Rook:   5,
	game.Queen:  9,
	game.King:   0,
}

func (e *Env) terminalReward() float32 {
	switch {
	case !e.outcome.Ended():
		return 0
	case e.outcome.IsDraw():
		return e.conf.Rewards.Draw
	case e.outcome.Winner == e.conf.Player:
		return e.conf.Rewards.Win
	}
	return e.conf.Rewards.Loss
}

// State returns the current position.
func (e *Env) State() *game.Position { return e.pos }

// Outcome returns the outcome of the current position.
func (e *Env) Outcome() game.Outcome { return e.outcome }

// Done reports whether the game is over.
func (e *Env) Done() bool { return e.outcome.Ended() }

// Player returns the colour the agent plays.
func (e *Env) Player() game.Color { return e.conf.Player }

// LegalMoves returns the legal moves of the current state, in action order.
func (e *Env) LegalMoves() []game.Move { return e.pos.LegalMoves() }

// ActionMask returns the valid actions of the current state.
func (e *Env) ActionMask() []bool { return game.ActionMask(e.pos) }

func (e *Env) MoveToAction(m game.Move) (game.Action, error) { return game.MoveToAction(e.pos, m) }

func (e *Env) ActionToMove(a game.Action) (game.Move, error) { return game.ActionToMove(e.pos, a) }

// Render returns a text drawing of the current state.
func (e *Env) Render() string { return e.pos.Draw() }

// Observation encodes the current state as feature planes.
func (e *Env) Observation() *tensor.Dense { return game.Observe(e.pos) }

// Moves returns the moves played since the last Reset, both sides included.
func (e *Env) Moves() []game.Move {
	retVal := make([]game.Move, len(e.moves))
	copy(retVal, e.moves)
	return retVal
}

// PGN returns the game so far in PGN.
func (e *Env) PGN() (string, error) {
	white, black := "agent", "opponent"
	if e.conf.Player == game.Black {
		white, black = black, white
	}
	tags := map[string]string{
		"Event": e.conf.Name,
		"White": white,
		"Black": black,
	}
	return Record(e.start, e.moves, e.outcome, tags)
}
