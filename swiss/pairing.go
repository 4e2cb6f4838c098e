/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"fmt"
	"log"
	"maps"
	"slices"
)

// Look-ahead bounds for OptimalPairing. A player may only be paired with one
// of the next window players in rank order.
const (
	MinWindow = 6
	MaxWindow = 25
)

const (
	AlgorithmOptimal    = "optimal"
	AlgorithmExhaustive = "exhaustive"
)

// dpCell is the best known way to reach one (layer, mask) state.
type dpCell struct {
	cost int
	prev uint32
	// offset of the opponent within the window, or -1 when the player had
	// already been consumed by an earlier pairing
	offset int
}

// OptimalPairing pairs the active players so that the total cost is
// minimal, where each pairing costs the points of its better-ranked player.
// This keeps pairings between players of similar standing and steers the
// bye toward the lowest-scoring player still eligible for one.
//
// The search only considers opponents within a sliding window of the next
// MinWindow players in rank order and widens the window one step at a time
// up to MaxWindow until a legal assignment exists. Memory and time grow
// with players * 2^window. A *NoPairingError is returned when no window
// yields a legal assignment.
func OptimalPairing(players []*Player) (Assignment, error) {
	if err := checkPlayerIDs(players); err != nil {
		return nil, err
	}
	order := pairingOrder(players)

	for w := MinWindow; w <= MaxWindow; w++ {
		a, ok := pairWithinWindow(order, w)
		if !ok {
			continue
		}
		if w > MinWindow {
			log.Printf("swiss.pair: widened window to %d for %d players", w,
				len(order))
		}
		return a, nil
	}

	return nil, &NoPairingError{
		Algorithm: AlgorithmOptimal,
		Players:   len(order),
		MaxWindow: MaxWindow,
	}
}

// pairingOrder returns the active players best first. A nil entry is
// appended as the bye slot when the count is odd.
func pairingOrder(players []*Player) []*Player {
	order := activeByRank(players)
	if len(order)%2 == 1 {
		order = append(order, nil)
	}
	return order
}

// canMeet reports whether p may be paired with q; a nil q is the bye slot.
func canMeet(p, q *Player) bool {
	if q == nil {
		return !p.HasBye()
	}
	return !p.HasFaced(q.id)
}

// pairingCost is the points of the better-ranked player p. The bye slot
// ranks last with no points, so a bye also costs p's own points.
func pairingCost(p, q *Player) int {
	return p.points
}

// checkPlayerIDs rejects active players whose id could be mistaken for Bye
// in an Assignment.
func checkPlayerIDs(players []*Player) error {
	for _, p := range players {
		if !p.dropped && p.id < 0 {
			return fmt.Errorf("%w: %d", ErrInvalidPlayerID, p.id)
		}
	}
	return nil
}

// pairWithinWindow runs the windowed DP. Layer i holds the states reached
// once order[:i] has been assigned; bit k of a state's mask means order[i+k]
// has already been taken by an earlier pairing.
func pairWithinWindow(order []*Player, w int) (Assignment, bool) {
	n := len(order)
	layers := make([]map[uint32]dpCell, n+1)
	layers[0] = map[uint32]dpCell{0: {offset: -1}}

	for i := 0; i < n; i++ {
		cur := layers[i]
		next := make(map[uint32]dpCell)
		// iterate in a fixed order so ties resolve the same way every time
		for _, mask := range slices.Sorted(maps.Keys(cur)) {
			cell := cur[mask]
			if mask&1 == 1 {
				relax(next, mask>>1, dpCell{cost: cell.cost, prev: mask,
					offset: -1})
				continue
			}
			for off := 0; off < w; off++ {
				j := i + 1 + off
				if j >= n {
					break
				}
				if (mask>>1)&(1<<off) != 0 {
					continue
				}
				if !canMeet(order[i], order[j]) {
					continue
				}
				relax(next, (mask>>1)|(1<<off), dpCell{
					cost:   cell.cost + pairingCost(order[i], order[j]),
					prev:   mask,
					offset: off,
				})
			}
		}
		if len(next) == 0 {
			return nil, false
		}
		layers[i+1] = next
	}

	if _, ok := layers[n][0]; !ok {
		return nil, false
	}

	a := make(Assignment, n)
	mask := uint32(0)
	for i := n; i > 0; i-- {
		cell := layers[i][mask]
		if cell.offset >= 0 {
			assign(a, order[i-1], order[i+cell.offset])
		}
		mask = cell.prev
	}

	return a, true
}

func relax(layer map[uint32]dpCell, mask uint32, c dpCell) {
	if old, ok := layer[mask]; ok && old.cost <= c.cost {
		return
	}
	layer[mask] = c
}

// assign records the pairing of p and q; a nil q gives p the bye.
func assign(a Assignment, p, q *Player) {
	if q == nil {
		a[p.id] = Bye
		return
	}
	a[p.id] = q.id
	a[q.id] = p.id
}

// ExhaustivePairing pairs the active players by depth-first search in rank
// order: each unassigned player tries every later unassigned player it has
// not met, and only when all of them fail does it take the bye (if the
// field is odd and it has not had one). The first legal assignment found
// is returned; there is no cost minimization and the worst case is
// exponential in the number of players.
func ExhaustivePairing(players []*Player) (Assignment, error) {
	if err := checkPlayerIDs(players); err != nil {
		return nil, err
	}
	order := activeByRank(players)
	n := len(order)

	const (
		unassigned = -1
		byeSlot    = -2
	)
	partner := make([]int, n)
	for i := range partner {
		partner[i] = unassigned
	}
	byes := n % 2

	var search func(i int) bool
	search = func(i int) bool {
		for i < n && partner[i] != unassigned {
			i++
		}
		if i == n {
			return true
		}
		p := order[i]
		for j := i + 1; j < n; j++ {
			if partner[j] != unassigned || p.HasFaced(order[j].id) {
				continue
			}
			partner[i], partner[j] = j, i
			if search(i + 1) {
				return true
			}
			partner[i], partner[j] = unassigned, unassigned
		}
		if byes > 0 && !p.HasBye() {
			byes--
			partner[i] = byeSlot
			if search(i + 1) {
				return true
			}
			byes++
			partner[i] = unassigned
		}
		return false
	}

	if !search(0) {
		return nil, &NoPairingError{
			Algorithm: AlgorithmExhaustive,
			Players:   n,
		}
	}

	a := make(Assignment, n)
	for i, j := range partner {
		if j == byeSlot {
			a[order[i].id] = Bye
		} else {
			a[order[i].id] = order[j].id
		}
	}
	return a, nil
}
