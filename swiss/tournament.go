/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"fmt"
)

// Tournament owns the roster and folds each round's results into it. It is
// not safe for concurrent use; callers must serialize access to one
// instance.
type Tournament struct {
	players []*Player
	byID    map[int]*Player
	round   int
}

func NewTournament() *Tournament {
	return &Tournament{
		byID: make(map[int]*Player),
	}
}

// AddPlayer appends p to the roster. Players can only be added before the
// first round is applied.
func (t *Tournament) AddPlayer(p *Player) error {
	if t.round > 0 {
		return fmt.Errorf("%w: player %d", ErrRoundStarted, p.id)
	}
	if p.id < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPlayerID, p.id)
	}
	if _, ok := t.byID[p.id]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicatePlayer, p.id)
	}
	t.players = append(t.players, p)
	t.byID[p.id] = p

	return nil
}

// Len returns the number of players on the roster, dropped included.
func (t *Tournament) Len() int {
	return len(t.players)
}

// Round returns the number of rounds applied so far.
func (t *Tournament) Round() int {
	return t.round
}

// Players returns the roster in insertion order.
func (t *Tournament) Players() []*Player {
	return append([]*Player(nil), t.players...)
}

func (t *Tournament) Player(id int) (*Player, bool) {
	p, ok := t.byID[id]
	return p, ok
}

// Drop withdraws a player from the event. Dropped players keep their
// history and standing but are never paired again.
func (t *Tournament) Drop(id int) error {
	p, ok := t.byID[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownPlayer, id)
	}
	p.Drop()
	return nil
}

// ApplyRound folds one round of results into the roster and recalculates
// every statistic. A two-player result need only be supplied from one side;
// its mirror is appended to the opponent. Nothing is changed if any result
// names an unknown player or gives a player a second result in the round.
func (t *Tournament) ApplyRound(matches []Match) error {
	seen := make(map[int]bool, len(t.players))
	for _, m := range matches {
		if _, ok := t.byID[m.playerID]; !ok {
			return fmt.Errorf("%w: %d in %v", ErrUnknownPlayer, m.playerID, m)
		}
		if m.IsReversible() {
			if _, ok := t.byID[m.opponentID]; !ok {
				return fmt.Errorf("%w: opponent %d in %v", ErrUnknownPlayer,
					m.opponentID, m)
			}
			if seen[m.opponentID] {
				return fmt.Errorf("%w: %v", ErrDuplicatePairing, m)
			}
			seen[m.opponentID] = true
		}
		if seen[m.playerID] {
			return fmt.Errorf("%w: %v", ErrDuplicatePairing, m)
		}
		seen[m.playerID] = true
	}

	for _, m := range matches {
		if m.IsReversible() {
			t.byID[m.opponentID].AddMatch(m.Reverse())
		}
		p := t.byID[m.playerID]
		p.AddMatch(m)
		if m.IsDrop() {
			p.Drop()
		}
	}
	t.round++
	t.recalculate()

	return nil
}

// recalculate refreshes every player's statistics. Each opponent-based
// pass reads a snapshot taken after the pass it depends on has finished
// for all players.
func (t *Tournament) recalculate() {
	for _, p := range t.players {
		p.ResetStats()
		p.CalculatePoints()
	}
	mwp := make(map[int]float64, len(t.players))
	for _, p := range t.players {
		p.CalculateMatchWinPct()
		mwp[p.id] = p.matchWinPct
	}
	for _, p := range t.players {
		p.CalculateOpponentMatchWinPct(mwp)
	}
	gwp := make(map[int]float64, len(t.players))
	for _, p := range t.players {
		p.CalculateGameWinPct()
		gwp[p.id] = p.gameWinPct
	}
	for _, p := range t.players {
		p.CalculateOpponentGameWinPct(gwp)
	}
}

// Standings returns the roster in rank order.
func (t *Tournament) Standings() []*Player {
	return Rank(t.players)
}

// PairOptimal computes the next round with OptimalPairing.
func (t *Tournament) PairOptimal() (Assignment, error) {
	return OptimalPairing(t.players)
}

// PairExhaustive computes the next round with ExhaustivePairing.
func (t *Tournament) PairExhaustive() (Assignment, error) {
	return ExhaustivePairing(t.players)
}

// Pair computes the next round with the named algorithm.
func (t *Tournament) Pair(algorithm string) (Assignment, error) {
	switch algorithm {
	case AlgorithmOptimal:
		return t.PairOptimal()
	case AlgorithmExhaustive:
		return t.PairExhaustive()
	default:
		return nil, fmt.Errorf("swiss: unknown pairing algorithm %q", algorithm)
	}
}
