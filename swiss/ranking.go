/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"cmp"
	"slices"
)

// Compare orders players by rank: a negative result means a places ahead of
// b. The order is
//
//  1. active before dropped
//  2. points, descending
//  3. opponent match-win percentage, descending
//  4. game-win percentage, descending
//  5. opponent game-win percentage, descending
//  6. id, ascending
func Compare(a, b *Player) int {
	if a.dropped != b.dropped {
		if a.dropped {
			return 1
		}
		return -1
	}
	if c := cmp.Compare(b.points, a.points); c != 0 {
		return c
	}
	if c := cmp.Compare(b.opponentMatchWinPct, a.opponentMatchWinPct); c != 0 {
		return c
	}
	if c := cmp.Compare(b.gameWinPct, a.gameWinPct); c != 0 {
		return c
	}
	if c := cmp.Compare(b.opponentGameWinPct, a.opponentGameWinPct); c != 0 {
		return c
	}
	return cmp.Compare(a.id, b.id)
}

// Rank returns a copy of players sorted best first. The input is not
// modified.
func Rank(players []*Player) []*Player {
	ranked := slices.Clone(players)
	slices.SortStableFunc(ranked, Compare)
	return ranked
}

// activeByRank returns the non-dropped players, best first.
func activeByRank(players []*Player) []*Player {
	active := make([]*Player, 0, len(players))
	for _, p := range players {
		if !p.dropped {
			active = append(active, p)
		}
	}
	slices.SortStableFunc(active, Compare)
	return active
}
