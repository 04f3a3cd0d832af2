package gymchess

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"github.com/gymchess/game"
	"github.com/gymchess/minimax"
)

// Policy picks a move for the side to move. Policies are given legal
// positions that are not over; the environment checks the returned move.
type Policy interface {
	Choose(p *game.Position) (game.Move, error)
}

// ErrScriptExhausted is returned by a ScriptedPolicy that has no moves left.
var ErrScriptExhausted = errors.New("script exhausted")

// NewPolicy builds the policy called kind ("minimax" or "random") from conf.
func NewPolicy(kind string, conf Config) (Policy, error) {
	switch strings.ToLower(kind) {
	case "", "minimax":
		s, err := minimax.New(conf.Search, nil)
		if err != nil {
			return nil, errors.Wrap(ErrInvalidConfig, err.Error())
		}
		s.SetLogger(conf.Logger)
		return s, nil
	case "random":
		return NewRandomPolicy(conf.Seed), nil
	}
	return nil, errors.Wrapf(ErrInvalidConfig, "unknown policy %q", kind)
}

// MinimaxPolicy returns a minimax searcher of the given depth using the
// positional evaluator.
func MinimaxPolicy(depth int) (Policy, error) {
	conf := minimax.DefaultConfig()
	conf.Depth = depth
	s, err := minimax.New(conf, nil)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// RandomPolicy plays a uniformly random legal move. A seeded RandomPolicy
// replays the same choices for the same sequence of positions.
type RandomPolicy struct {
	sync.Mutex
	r *rand.Rand
}

func NewRandomPolicy(seed uint64) *RandomPolicy {
	return &RandomPolicy{r: rand.New(rand.NewSource(seed))}
}

func (rp *RandomPolicy) Choose(p *game.Position) (game.Move, error) {
	moves := p.LegalMoves()
	if len(moves) == 0 {
		return game.Move{}, errors.WithStack(minimax.ErrNoMoves)
	}
	rp.Lock()
	i := rp.r.Intn(len(moves))
	rp.Unlock()
	return moves[i], nil
}

// HumanPolicy asks for moves on a line based reader. Either a UCI move
// ("e2e4", "e7e8n") or an action index is accepted; anything else is
// reported and asked for again.
type HumanPolicy struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewHumanPolicy(r io.Reader, w io.Writer) *HumanPolicy {
	return &HumanPolicy{in: bufio.NewScanner(r), out: w}
}

func (h *HumanPolicy) Choose(p *game.Position) (game.Move, error) {
	moves := p.LegalMoves()
	if len(moves) == 0 {
		return game.Move{}, errors.WithStack(minimax.ErrNoMoves)
	}
	for {
		fmt.Fprintf(h.out, "legal moves: %s\n", joinMoves(moves))
		fmt.Fprintf(h.out, "%v to move: ", p.Turn())
		if !h.in.Scan() {
			if err := h.in.Err(); err != nil {
				return game.Move{}, errors.Wrap(err, "read move")
			}
			return game.Move{}, errors.WithStack(io.ErrUnexpectedEOF)
		}
		m, err := parseInput(p, strings.TrimSpace(h.in.Text()))
		if err == nil {
			return m, nil
		}
		fmt.Fprintf(h.out, "%v, try again\n", err)
	}
}

func parseInput(p *game.Position, text string) (game.Move, error) {
	if n, err := strconv.Atoi(text); err == nil {
		return game.ActionToMove(p, game.Action(n))
	}
	m, err := game.ParseMove(text)
	if err != nil {
		return game.Move{}, err
	}
	a, err := game.MoveToAction(p, m)
	if err != nil {
		return game.Move{}, err
	}
	return game.ActionToMove(p, a)
}

func joinMoves(moves []game.Move) string {
	var buf strings.Builder
	for i, m := range moves {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(&buf, "%d:%v", i, m)
	}
	return buf.String()
}

// ScriptedPolicy replays a fixed line of moves, one per call.
type ScriptedPolicy struct {
	sync.Mutex
	moves []game.Move
	next  int
}

// NewScriptedPolicy parses a line of UCI moves.
func NewScriptedPolicy(uci ...string) (*ScriptedPolicy, error) {
	moves := make([]game.Move, 0, len(uci))
	for _, s := range uci {
		m, err := game.ParseMove(s)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return &ScriptedPolicy{moves: moves}, nil
}

func (s *ScriptedPolicy) Choose(p *game.Position) (game.Move, error) {
	s.Lock()
	defer s.Unlock()
	if s.next >= len(s.moves) {
		return game.Move{}, errors.Wrapf(ErrScriptExhausted, "after %d moves", len(s.moves))
	}
	m := s.moves[s.next]
	s.next++
	return m, nil
}

// An Agent is a policy seated at one colour in an Arena, with its results.
type Agent struct {
	Policy
	Player game.Color

	// Statistics
	Wins float32
	Loss float32
	Draw float32
	sync.Mutex

	name string
}

func NewAgent(name string, p Policy) *Agent {
	return &Agent{Policy: p, name: name, Player: game.NoColor}
}

func (a *Agent) Name() string { return a.name }

// Close releases the policy if it holds resources.
func (a *Agent) Close() error {
	if c, ok := a.Policy.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (a *Agent) record(o game.Outcome) {
	a.Lock()
	defer a.Unlock()
	switch {
	case o.IsDraw():
		a.Draw++
	case o.Winner == a.Player:
		a.Wins++
	default:
		a.Loss++
	}
}

func (a *Agent) resetStats() {
	a.Lock()
	a.Wins = 0
	a.Loss = 0
	a.Draw = 0
	a.Unlock()
}
