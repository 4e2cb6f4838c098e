/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"testing"
)

func rankedIDs(players []*Player) []int {
	ids := make([]int, len(players))
	for i, p := range players {
		ids[i] = p.ID()
	}
	return ids
}

func TestRankByPoints(t *testing.T) {
	points := []int{1, 2, 0, 1}
	players := make([]*Player, len(points))
	for i, pts := range points {
		players[i] = NewPlayer(i, "")
		players[i].points = pts
	}

	got := rankedIDs(Rank(players))
	want := []int{1, 0, 3, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Rank() = %v; want %v", got, want)
		}
	}
	if players[0].ID() != 0 || players[1].ID() != 1 {
		t.Errorf("Rank() reordered its input")
	}
}

func TestRankTieBreaks(t *testing.T) {
	cases := []struct {
		name string
		a, b Player
	}{
		{
			name: "active before dropped",
			a:    Player{id: 5, points: 0},
			b:    Player{id: 1, points: 9, dropped: true},
		},
		{
			name: "points",
			a:    Player{id: 5, points: 6},
			b:    Player{id: 1, points: 3},
		},
		{
			name: "opponent match win",
			a:    Player{id: 5, points: 6, opponentMatchWinPct: 0.6},
			b:    Player{id: 1, points: 6, opponentMatchWinPct: 0.5},
		},
		{
			name: "game win",
			a:    Player{id: 5, points: 6, gameWinPct: 0.6},
			b:    Player{id: 1, points: 6, gameWinPct: 0.5},
		},
		{
			name: "opponent game win",
			a:    Player{id: 5, points: 6, opponentGameWinPct: 0.6},
			b:    Player{id: 1, points: 6, opponentGameWinPct: 0.5},
		},
		{
			name: "id",
			a:    Player{id: 1, points: 6},
			b:    Player{id: 5, points: 6},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Compare(&c.a, &c.b); got >= 0 {
				t.Errorf("Compare(a, b) = %d; want < 0", got)
			}
			if got := Compare(&c.b, &c.a); got <= 0 {
				t.Errorf("Compare(b, a) = %d; want > 0", got)
			}
		})
	}
}

func TestActiveByRankSkipsDropped(t *testing.T) {
	players := []*Player{NewPlayer(0, ""), NewPlayer(1, ""), NewPlayer(2, "")}
	players[1].Drop()

	got := rankedIDs(activeByRank(players))
	if len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("activeByRank() = %v; want [0 2]", got)
	}
}
