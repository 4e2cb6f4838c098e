/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type pairFunc func([]*Player) (Assignment, error)

var pairingAlgorithms = map[string]pairFunc{
	AlgorithmOptimal:    OptimalPairing,
	AlgorithmExhaustive: ExhaustivePairing,
}

// rosterWithPoints returns players 0..len(points)-1 holding the given
// points, with empty histories.
func rosterWithPoints(points ...int) []*Player {
	players := make([]*Player, len(points))
	for i, pts := range points {
		players[i] = NewPlayer(i, fmt.Sprintf("p%d", i))
		players[i].points = pts
	}
	return players
}

// meet records a finished game between a and b on both histories.
func meet(t *testing.T, a, b *Player) {
	t.Helper()
	m := mustMatch(t, 1, a.id, b.id, Result{Wins: 1})
	a.AddMatch(m)
	b.AddMatch(m.Reverse())
}

// playRound pairs the next round with the named algorithm, checks the
// assignment and applies randomly generated results.
func playRound(t *testing.T, tour *Tournament, algorithm string,
	rng *rand.Rand) Assignment {

	t.Helper()
	a, err := tour.Pair(algorithm)
	if err != nil {
		t.Fatalf("round %d: %v", tour.Round()+1, err)
	}
	if err := a.Validate(tour.Players()); err != nil {
		t.Fatalf("round %d: invalid assignment: %v", tour.Round()+1, err)
	}

	round := tour.Round() + 1
	var matches []Match
	for _, pair := range a.Pairs() {
		var r Result
		switch rng.Intn(5) {
		case 0:
			r = Result{Wins: 2, Losses: 1}
		case 1:
			r = Result{Wins: 1, Losses: 2}
		case 2:
			r = Result{Wins: 1, Draws: 1, Losses: 1}
		case 3:
			r = Result{Wins: 2}
		default:
			r = Result{Losses: 2}
		}
		matches = append(matches, mustMatch(t, round, pair[0], pair[1], r))
	}
	if id, ok := a.ByeID(); ok {
		matches = append(matches, NewByeMatch(round, id))
	}
	if err := tour.ApplyRound(matches); err != nil {
		t.Fatalf("round %d: ApplyRound: %v", round, err)
	}
	return a
}

func TestOptimalPairsSimilarScores(t *testing.T) {
	players := rosterWithPoints(9, 6, 3, 0)

	got, err := OptimalPairing(players)
	if err != nil {
		t.Fatalf("OptimalPairing: %v", err)
	}
	want := Assignment{0: 1, 1: 0, 2: 3, 3: 2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("OptimalPairing() mismatch (-want +got):\n%s", diff)
	}
}

func TestOptimalByeGoesToLowest(t *testing.T) {
	players := rosterWithPoints(12, 9, 6, 3, 0)

	got, err := OptimalPairing(players)
	if err != nil {
		t.Fatalf("OptimalPairing: %v", err)
	}
	want := Assignment{0: 1, 1: 0, 2: 3, 3: 2, 4: Bye}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("OptimalPairing() mismatch (-want +got):\n%s", diff)
	}

	// the lowest player already had its bye, so it moves up one place
	players[4].AddMatch(NewByeMatch(1, 4))
	got, err = OptimalPairing(players)
	if err != nil {
		t.Fatalf("OptimalPairing: %v", err)
	}
	want = Assignment{0: 1, 1: 0, 2: 4, 4: 2, 3: Bye}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("OptimalPairing() after bye mismatch (-want +got):\n%s", diff)
	}
}

func TestPairingAvoidsRematch(t *testing.T) {
	for name, pair := range pairingAlgorithms {
		t.Run(name, func(t *testing.T) {
			players := rosterWithPoints(9, 6, 3, 0)
			meet(t, players[0], players[1])
			meet(t, players[2], players[3])

			a, err := pair(players)
			if err != nil {
				t.Fatalf("%s: %v", name, err)
			}
			if err := a.Validate(players); err != nil {
				t.Errorf("%s: %v", name, err)
			}
			if a[0] == 1 || a[2] == 3 {
				t.Errorf("%s rematched players: %v", name, a)
			}
		})
	}
}

func TestExhaustiveFirstFeasible(t *testing.T) {
	players := rosterWithPoints(9, 6, 3, 0)
	meet(t, players[0], players[1])

	got, err := ExhaustivePairing(players)
	if err != nil {
		t.Fatalf("ExhaustivePairing: %v", err)
	}
	want := Assignment{0: 2, 2: 0, 1: 3, 3: 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExhaustivePairing() mismatch (-want +got):\n%s", diff)
	}
}

func TestExhaustiveByeBacktracks(t *testing.T) {
	players := rosterWithPoints(6, 3, 0)

	got, err := ExhaustivePairing(players)
	if err != nil {
		t.Fatalf("ExhaustivePairing: %v", err)
	}
	want := Assignment{0: 1, 1: 0, 2: Bye}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExhaustivePairing() mismatch (-want +got):\n%s", diff)
	}

	players[2].AddMatch(NewByeMatch(1, 2))
	got, err = ExhaustivePairing(players)
	if err != nil {
		t.Fatalf("ExhaustivePairing: %v", err)
	}
	want = Assignment{0: 2, 2: 0, 1: Bye}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExhaustivePairing() after bye mismatch (-want +got):\n%s", diff)
	}
}

func TestPairingInfeasible(t *testing.T) {
	cases := []struct {
		name    string
		players func(t *testing.T) []*Player
	}{
		{
			name: "only pair already met",
			players: func(t *testing.T) []*Player {
				players := rosterWithPoints(3, 0)
				meet(t, players[0], players[1])
				return players
			},
		},
		{
			name: "lone player already had bye",
			players: func(t *testing.T) []*Player {
				players := rosterWithPoints(3)
				players[0].AddMatch(NewByeMatch(1, 0))
				return players
			},
		},
	}
	for _, c := range cases {
		for name, pair := range pairingAlgorithms {
			t.Run(c.name+"/"+name, func(t *testing.T) {
				a, err := pair(c.players(t))
				if !errors.Is(err, ErrNoPairing) {
					t.Fatalf("err = %v, assignment %v; want %v", err, a,
						ErrNoPairing)
				}
				var npe *NoPairingError
				if !errors.As(err, &npe) || npe.Algorithm != name {
					t.Errorf("err = %#v; want *NoPairingError for %s", err, name)
				}
			})
		}
	}
}

func TestPairingEmptyAndDropped(t *testing.T) {
	for name, pair := range pairingAlgorithms {
		a, err := pair(nil)
		if err != nil || len(a) != 0 {
			t.Errorf("%s(nil) = %v, %v; want empty assignment", name, a, err)
		}

		players := rosterWithPoints(3, 3, 3)
		players[1].Drop()
		a, err = pair(players)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		want := Assignment{0: 2, 2: 0}
		if diff := cmp.Diff(want, a); diff != "" {
			t.Errorf("%s with dropped player mismatch (-want +got):\n%s",
				name, diff)
		}
	}
}

func TestOptimalPairingDeterministic(t *testing.T) {
	build := func() *Tournament {
		tour := newTestTournament(t, 64)
		rng := rand.New(rand.NewSource(7))
		for r := 0; r < 4; r++ {
			playRound(t, tour, AlgorithmOptimal, rng)
		}
		return tour
	}

	first, err := build().PairOptimal()
	if err != nil {
		t.Fatalf("PairOptimal: %v", err)
	}
	second, err := build().PairOptimal()
	if err != nil {
		t.Fatalf("PairOptimal: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("identical tournaments paired differently (-first +second):\n%s",
			diff)
	}
}

func TestPairingOddField(t *testing.T) {
	for name := range pairingAlgorithms {
		t.Run(name, func(t *testing.T) {
			tour := newTestTournament(t, 51)
			rng := rand.New(rand.NewSource(51))
			byes := make(map[int]bool)
			for r := 0; r < 10; r++ {
				a := playRound(t, tour, name, rng)
				id, ok := a.ByeID()
				if !ok {
					t.Fatalf("round %d: no bye with 51 players", r+1)
				}
				if byes[id] {
					t.Fatalf("round %d: player %d received a second bye",
						r+1, id)
				}
				byes[id] = true
			}
		})
	}
}

func TestPairingLargeTournament(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large tournament simulation in short mode")
	}

	const players = 2000
	const rounds = 20
	for name := range pairingAlgorithms {
		t.Run(name, func(t *testing.T) {
			tour := newTestTournament(t, players)
			rng := rand.New(rand.NewSource(2000))
			for r := 0; r < rounds; r++ {
				playRound(t, tour, name, rng)
			}
			if tour.Round() != rounds {
				t.Errorf("Round() = %d; want %d", tour.Round(), rounds)
			}
			for _, p := range tour.Players() {
				if p.RoundsCounted() != rounds {
					t.Errorf("player %d played %d rounds; want %d", p.ID(),
						p.RoundsCounted(), rounds)
				}
			}
		})
	}
}

func TestAssignmentValidate(t *testing.T) {
	players := rosterWithPoints(3, 3, 3, 3)
	meet(t, players[0], players[1])

	cases := []struct {
		name string
		a    Assignment
		ok   bool
	}{
		{"valid", Assignment{0: 2, 2: 0, 1: 3, 3: 1}, true},
		{"rematch", Assignment{0: 1, 1: 0, 2: 3, 3: 2}, false},
		{"asymmetric", Assignment{0: 2, 2: 1, 1: 3, 3: 1}, false},
		{"missing player", Assignment{0: 2, 2: 0}, false},
		{"bye in even field", Assignment{0: 2, 2: 0, 1: Bye, 3: Bye}, false},
		{"unknown player", Assignment{0: 2, 2: 0, 1: 3, 3: 1, 9: Bye}, false},
	}
	for _, c := range cases {
		err := c.a.Validate(players)
		if (err == nil) != c.ok {
			t.Errorf("%s: Validate() = %v; want ok=%v", c.name, err, c.ok)
		}
	}
}

func TestAssignmentPairs(t *testing.T) {
	a := Assignment{4: 1, 1: 4, 0: 3, 3: 0, 2: Bye}
	want := [][2]int{{0, 3}, {1, 4}}
	if diff := cmp.Diff(want, a.Pairs()); diff != "" {
		t.Errorf("Pairs() mismatch (-want +got):\n%s", diff)
	}
	if id, ok := a.ByeID(); !ok || id != 2 {
		t.Errorf("ByeID() = %d,%v; want 2,true", id, ok)
	}
}

func TestPairingRejectsNegativeIDs(t *testing.T) {
	for name, pair := range pairingAlgorithms {
		t.Run(name, func(t *testing.T) {
			players := []*Player{NewPlayer(-1, "neg"), NewPlayer(5, "five")}
			a, err := pair(players)
			if !errors.Is(err, ErrInvalidPlayerID) {
				t.Fatalf("err = %v; want %v", err, ErrInvalidPlayerID)
			}
			if a != nil {
				t.Errorf("assignment got %v; want nil", a)
			}

			// a withdrawn player is never paired, so its id cannot collide
			players[0].Drop()
			players = append(players, NewPlayer(0, "zero"))
			a, err = pair(players)
			if err != nil {
				t.Fatalf("with negative id dropped: %v", err)
			}
			if diff := cmp.Diff(Assignment{0: 5, 5: 0}, a); diff != "" {
				t.Errorf("assignment mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
