/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package uschess

import (
	"errors"
	"fmt"
	"log"

	"github.com/mikeb26/swisstd/swiss"
)

var ErrInconsistentCrossTable = errors.New("inconsistent cross table")

// Replay rebuilds a swiss.Tournament from every round of a cross table.
func Replay(xt *CrossTable) (*swiss.Tournament, error) {
	return ReplayRounds(xt, xt.NumRounds)
}

// ReplayRounds rebuilds a swiss.Tournament from the first rounds rounds of
// a cross table. Players get dense ids in cross table order. Each game is
// taken from the side with the lower pair number. Half-point byes and
// unplayed rounds record nothing, except that a player who never plays
// again is dropped in the first round they miss.
func ReplayRounds(xt *CrossTable, rounds int) (*swiss.Tournament, error) {
	if rounds < 0 || rounds > xt.NumRounds {
		return nil, fmt.Errorf("cannot replay %d rounds of %q; it has %d",
			rounds, xt.SectionName, xt.NumRounds)
	}

	t := swiss.NewTournament()
	ids := make(map[int]int, len(xt.PlayerEntries))
	lastPlayed := make([]int, len(xt.PlayerEntries))
	for i, e := range xt.PlayerEntries {
		if _, ok := ids[e.PairNum]; ok {
			return nil, fmt.Errorf("%w: pair number %d listed twice",
				ErrInconsistentCrossTable, e.PairNum)
		}
		ids[e.PairNum] = i
		if err := t.AddPlayer(swiss.NewPlayer(i, e.PlayerName)); err != nil {
			return nil, err
		}

		lastPlayed[i] = 0
		for r := len(e.Results); r > 0; r-- {
			if e.Results[r-1].Outcome != ResultUnplayedGame {
				lastPlayed[i] = r
				break
			}
		}
	}

	for r := 1; r <= rounds; r++ {
		var matches []swiss.Match
		for i, e := range xt.PlayerEntries {
			if r > lastPlayed[i] {
				if r == lastPlayed[i]+1 {
					matches = append(matches, swiss.NewDropMatch(r, i))
				}
				continue
			}
			m, ok, err := replayResult(r, i, e, ids)
			if err != nil {
				return nil, fmt.Errorf("round %d: %w", r, err)
			}
			if ok {
				matches = append(matches, m)
			}
		}
		if err := t.ApplyRound(matches); err != nil {
			return nil, fmt.Errorf("%w: round %d: %w", ErrInconsistentCrossTable,
				r, err)
		}
	}

	return t, nil
}

// replayResult converts player id's round r result into a match. ok is
// false when the round records nothing for this side.
func replayResult(r int, id int, e CrossTableEntry,
	ids map[int]int) (swiss.Match, bool, error) {

	res := e.Results[r-1]

	switch res.Outcome {
	case ResultFullBye:
		return swiss.NewByeMatch(r, id), true, nil
	case ResultHalfBye, ResultUnplayedGame:
		return swiss.Match{}, false, nil
	case ResultUnknown:
		log.Printf("uschess.replay: unknown result for %v in round %d",
			e.PlayerName, r)
		return swiss.Match{}, false, nil
	}

	oppID, known := ids[res.OpponentPairNum]
	if !known {
		switch res.Outcome {
		case ResultWinByForfeit:
			return swiss.NewByeMatch(r, id), true, nil
		case ResultLossByForfeit:
			return swiss.Match{}, false, nil
		default:
			return swiss.Match{}, false, fmt.Errorf(
				"%w: %v played unknown pair number %d",
				ErrInconsistentCrossTable, e.PlayerName, res.OpponentPairNum)
		}
	}
	if e.PairNum > res.OpponentPairNum {
		return swiss.Match{}, false, nil
	}

	var result swiss.Result
	switch res.Outcome {
	case ResultWin:
		result.Wins = 1
	case ResultLoss:
		result.Losses = 1
	case ResultDraw:
		result.Draws = 1
	case ResultWinByForfeit:
		result.OpponentWithdrew = true
	case ResultLossByForfeit:
		result.PlayerWithdrew = true
	}

	m, err := swiss.NewMatch(r, id, oppID, result)
	if err != nil {
		return swiss.Match{}, false, fmt.Errorf("%w: %v: %w",
			ErrInconsistentCrossTable, e.PlayerName, err)
	}
	return m, true, nil
}
