/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"strings"
	"time"

	"github.com/mikeb26/swisstd/internal/metrics"
	"github.com/mikeb26/swisstd/swiss"
	"golang.org/x/sync/errgroup"
)

// simRun is the outcome of one simulated event.
type simRun struct {
	tour   *swiss.Tournament
	output string
}

// runSimulations plays cfg.Runs independent events concurrently. Run i is
// seeded with cfg.Seed+i so results are reproducible.
func runSimulations(ctx context.Context, cfg scenarioConfig, m metrics.Metrics,
	verbose bool) ([]simRun, error) {

	runs := make([]simRun, cfg.Runs)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i := range runs {
		g.Go(func() error {
			tour, out, err := simulate(gctx, cfg, cfg.Seed+int64(i), m, verbose)
			if err != nil {
				return fmt.Errorf("run %d: %w", i+1, err)
			}
			runs[i] = simRun{tour: tour, output: out}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return runs, nil
}

// simulate plays one event: each round it applies scheduled drops, pairs
// the field, checks the assignment and applies random results.
func simulate(ctx context.Context, cfg scenarioConfig, seed int64,
	m metrics.Metrics, verbose bool) (*swiss.Tournament, string, error) {

	rng := rand.New(rand.NewSource(seed))
	tour := swiss.NewTournament()
	for id := 0; id < cfg.rosterSize(); id++ {
		if err := tour.AddPlayer(swiss.NewPlayer(id, cfg.playerName(id))); err != nil {
			return nil, "", err
		}
	}

	var sb strings.Builder
	for round := 1; round <= cfg.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}
		for _, id := range cfg.Drops[round] {
			if err := tour.Drop(id); err != nil {
				return nil, "", fmt.Errorf("round %d: %w", round, err)
			}
		}

		start := time.Now()
		a, err := tour.Pair(cfg.Algorithm)
		m.ObservePairingDuration(cfg.Algorithm, time.Since(start).Seconds())
		if err != nil {
			m.IncPairingFailures(cfg.Algorithm)
			return nil, "", fmt.Errorf("round %d: %w", round, err)
		}
		if err := a.Validate(tour.Players()); err != nil {
			return nil, "", fmt.Errorf("round %d: invalid pairing: %w", round,
				err)
		}
		if verbose {
			sb.WriteString(swiss.BuildPairingsOutput(tour, a))
		}

		matches, err := synthesizeResults(rng, round, a)
		if err != nil {
			return nil, "", fmt.Errorf("round %d: %w", round, err)
		}
		if err := tour.ApplyRound(matches); err != nil {
			return nil, "", fmt.Errorf("round %d: %w", round, err)
		}
		m.IncRoundsApplied()
	}
	sb.WriteString(swiss.BuildStandingsOutput(tour))

	return tour, sb.String(), nil
}

// synthesizeResults invents a best-of-three result for every pairing and a
// bye result for the bye. About one game in fifty is forfeited.
func synthesizeResults(rng *rand.Rand, round int,
	a swiss.Assignment) ([]swiss.Match, error) {

	var matches []swiss.Match
	for _, pair := range a.Pairs() {
		var r swiss.Result
		if rng.Intn(50) == 0 {
			r.OpponentWithdrew = true
		} else {
			for games := 0; games < 3 && r.Wins < 2 && r.Losses < 2; games++ {
				switch rng.Intn(7) {
				case 0:
					r.Draws++
				case 1, 2, 3:
					r.Wins++
				default:
					r.Losses++
				}
			}
		}
		m, err := swiss.NewMatch(round, pair[0], pair[1], r)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	if id, ok := a.ByeID(); ok {
		matches = append(matches, swiss.NewByeMatch(round, id))
	}

	return matches, nil
}
