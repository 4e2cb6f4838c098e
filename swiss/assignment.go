/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"fmt"
	"slices"
)

// Bye is the opponent recorded for a player who sits out the round.
const Bye = -1

// Assignment maps every active player's id to its opponent's id for one
// round, or to Bye. Dropped players do not appear.
type Assignment map[int]int

// ByeID returns the player receiving the bye, if any.
func (a Assignment) ByeID() (int, bool) {
	for id, opp := range a {
		if opp == Bye {
			return id, true
		}
	}
	return 0, false
}

// Pairs returns each pairing once as {lower id, higher id}, sorted by the
// lower id. The bye is not included.
func (a Assignment) Pairs() [][2]int {
	var pairs [][2]int
	for id, opp := range a {
		if opp != Bye && id < opp {
			pairs = append(pairs, [2]int{id, opp})
		}
	}
	slices.SortFunc(pairs, func(x, y [2]int) int {
		return x[0] - y[0]
	})
	return pairs
}

// Validate checks a against players: every active player is assigned, no
// dropped player is, pairings are symmetric, nobody meets a previous
// opponent or takes a second bye, and there is exactly one bye when the
// number of active players is odd.
func (a Assignment) Validate(players []*Player) error {
	byID := make(map[int]*Player, len(players))
	active := 0
	for _, p := range players {
		byID[p.id] = p
		if p.dropped {
			if _, ok := a[p.id]; ok {
				return fmt.Errorf("dropped player %d was paired", p.id)
			}
			continue
		}
		active++
		if _, ok := a[p.id]; !ok {
			return fmt.Errorf("player %d was not paired", p.id)
		}
	}

	byes := 0
	for id, opp := range a {
		p, ok := byID[id]
		if !ok {
			return fmt.Errorf("%w: %d", ErrUnknownPlayer, id)
		}
		if opp == Bye {
			if p.HasBye() {
				return fmt.Errorf("player %d received a second bye", id)
			}
			byes++
			continue
		}
		if back, ok := a[opp]; !ok || back != id {
			return fmt.Errorf("pairing %d-%d is not symmetric", id, opp)
		}
		if p.HasFaced(opp) {
			return fmt.Errorf("player %d already faced %d", id, opp)
		}
	}

	if byes != active%2 {
		return fmt.Errorf("%d byes for %d active players", byes, active)
	}

	return nil
}
