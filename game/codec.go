package game

import "github.com/pkg/errors"

// Action identifies a move by its ordinal in the legal move list of one
// particular position. An Action is only meaningful relative to the position
// it was produced from: reusing it against another position either fails
// with ErrUnknownAction or names an unrelated move.
type Action int

// MoveToAction returns the action of a legal move of p. Flags are ignored, so
// moves parsed from UCI text can be encoded directly.
func MoveToAction(p *Position, m Move) (Action, error) {
	legal := p.legal()
	if m.Promotion == NoKind && p.isPromotion(m) {
		m.Promotion = Queen
	}
	for i, lm := range legal {
		if sameMove(lm, m) {
			return Action(i), nil
		}
	}
	return -1, errors.Wrapf(ErrIllegalMove, "%v in %s", m, p.FEN())
}

// ActionToMove returns the legal move of p identified by a.
func ActionToMove(p *Position, a Action) (Move, error) {
	legal := p.legal()
	if a < 0 || int(a) >= len(legal) {
		return Move{}, errors.Wrapf(ErrUnknownAction, "action %d outside [0, %d)", a, len(legal))
	}
	return legal[a], nil
}

// ActionMask returns a MaxActions wide mask with the valid actions of p set.
func ActionMask(p *Position) []bool {
	mask := make([]bool, MaxActions)
	for i := range p.legal() {
		mask[i] = true
	}
	return mask
}

// ApplyAction plays the move identified by a. It is the cheap way to walk the
// move tree: no matching against caller-built moves is needed.
func (p *Position) ApplyAction(a Action) (*Position, error) {
	m, err := ActionToMove(p, a)
	if err != nil {
		return nil, err
	}
	return p.play(m), nil
}
