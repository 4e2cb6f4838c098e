/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mikeb26/swisstd/swiss"
	"gopkg.in/yaml.v3"
)

const (
	maxPlayers = 100000
	maxRounds  = 64
	maxRuns    = 256
)

// scenarioConfig describes one simulated event. It can be loaded from a
// YAML file and overridden by command line flags.
type scenarioConfig struct {
	// Players names the roster; when empty NumPlayers anonymous players
	// are generated.
	Players    []string `yaml:"players"`
	NumPlayers int      `yaml:"num_players"`
	Rounds     int      `yaml:"rounds"`
	Seed       int64    `yaml:"seed"`
	Algorithm  string   `yaml:"algorithm"`
	Runs       int      `yaml:"runs"`
	// Drops lists, per round, the player ids that withdraw before that
	// round is paired.
	Drops map[int][]int `yaml:"drops"`
}

func defaultScenario() scenarioConfig {
	return scenarioConfig{
		NumPlayers: 32,
		Rounds:     5,
		Seed:       1,
		Algorithm:  swiss.AlgorithmOptimal,
		Runs:       1,
	}
}

// loadScenario reads a YAML scenario file on top of the defaults.
func loadScenario(path string) (scenarioConfig, error) {
	cfg := defaultScenario()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read scenario %v: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal scenario %v: %w", path, err)
	}

	return cfg, nil
}

// simulateFlags are the command line values that may override a scenario.
type simulateFlags struct {
	players   int
	rounds    int
	seed      int64
	algorithm string
	runs      int
}

// applyFlags copies every flag the user set explicitly onto cfg.
func applyFlags(cfg *scenarioConfig, fs *flag.FlagSet, f simulateFlags) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "players":
			cfg.NumPlayers = f.players
			cfg.Players = nil
		case "rounds":
			cfg.Rounds = f.rounds
		case "seed":
			cfg.Seed = f.seed
		case "algo":
			cfg.Algorithm = f.algorithm
		case "runs":
			cfg.Runs = f.runs
		}
	})
}

// validate enforces bounds on a scenario.
func (cfg *scenarioConfig) validate() error {
	n := cfg.rosterSize()
	if n < 1 || n > maxPlayers {
		return fmt.Errorf("players must be between 1 and %d; got %d",
			maxPlayers, n)
	}
	if cfg.Rounds < 1 || cfg.Rounds > maxRounds {
		return fmt.Errorf("rounds must be between 1 and %d; got %d", maxRounds,
			cfg.Rounds)
	}
	if cfg.Runs < 1 || cfg.Runs > maxRuns {
		return fmt.Errorf("runs must be between 1 and %d; got %d", maxRuns,
			cfg.Runs)
	}
	switch cfg.Algorithm {
	case swiss.AlgorithmOptimal, swiss.AlgorithmExhaustive:
	default:
		return fmt.Errorf("unknown algorithm %q", cfg.Algorithm)
	}
	for round, ids := range cfg.Drops {
		for _, id := range ids {
			if id < 0 || id >= n {
				return fmt.Errorf("round %d drops unknown player %d", round, id)
			}
		}
	}

	return nil
}

func (cfg *scenarioConfig) rosterSize() int {
	if len(cfg.Players) > 0 {
		return len(cfg.Players)
	}
	return cfg.NumPlayers
}

// playerName returns the display name of roster slot id.
func (cfg *scenarioConfig) playerName(id int) string {
	if id < len(cfg.Players) {
		return cfg.Players[id]
	}
	return fmt.Sprintf("Player %d", id+1)
}
