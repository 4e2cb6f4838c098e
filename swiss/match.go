/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"fmt"

	"github.com/google/uuid"
)

// Outcome classifies a Match from the point of view of its player.
type Outcome int

const (
	Loss Outcome = iota
	Draw
	Win
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Draw:
		return "draw"
	case Loss:
		return "loss"
	default:
		return "?"
	}
}

// Points awarded per outcome.
const (
	WinPoints  = 3
	DrawPoints = 1
	LossPoints = 0
)

type matchKind int

const (
	kindPlayed matchKind = iota
	kindBye
	kindDrop
)

// Result holds the game counts of one match as seen by the player, along
// with any withdrawal.
type Result struct {
	Wins   int
	Draws  int
	Losses int

	PlayerWithdrew   bool
	OpponentWithdrew bool
}

// Match is one player's record of one round. Values are immutable once
// constructed; use NewMatch, NewByeMatch or NewDropMatch.
type Match struct {
	id         uuid.UUID
	round      int
	playerID   int
	opponentID int
	result     Result
	kind       matchKind
}

// NewMatch records a round between two players. The player and opponent must
// differ and game counts may not be negative.
func NewMatch(round, playerID, opponentID int, r Result) (Match, error) {
	if playerID == opponentID {
		return Match{}, fmt.Errorf("%w: round %d player %d", ErrSelfPairing,
			round, playerID)
	}
	if r.Wins < 0 || r.Draws < 0 || r.Losses < 0 {
		return Match{}, fmt.Errorf("%w: round %d player %d: %d-%d-%d",
			ErrInvalidScore, round, playerID, r.Wins, r.Draws, r.Losses)
	}

	return Match{
		id:         uuid.New(),
		round:      round,
		playerID:   playerID,
		opponentID: opponentID,
		result:     r,
		kind:       kindPlayed,
	}, nil
}

// NewByeMatch records a round in which the player had no opponent. Byes are
// scored as wins.
func NewByeMatch(round, playerID int) Match {
	return Match{
		id:       uuid.New(),
		round:    round,
		playerID: playerID,
		kind:     kindBye,
	}
}

// NewDropMatch records a round for a player who has withdrawn from the
// event. It scores as a loss and is not counted as a round played.
func NewDropMatch(round, playerID int) Match {
	return Match{
		id:       uuid.New(),
		round:    round,
		playerID: playerID,
		result:   Result{PlayerWithdrew: true},
		kind:     kindDrop,
	}
}

// Reverse returns the opponent's view of the same match: roles and
// win/loss counts are swapped, draws are unchanged and the id is kept.
func (m Match) Reverse() Match {
	return Match{
		id:         m.id,
		round:      m.round,
		playerID:   m.opponentID,
		opponentID: m.playerID,
		result: Result{
			Wins:             m.result.Losses,
			Draws:            m.result.Draws,
			Losses:           m.result.Wins,
			PlayerWithdrew:   m.result.OpponentWithdrew,
			OpponentWithdrew: m.result.PlayerWithdrew,
		},
		kind: m.kind,
	}
}

func (m Match) ID() uuid.UUID { return m.id }
func (m Match) Round() int { return m.round }
func (m Match) PlayerID() int { return m.playerID }
func (m Match) Result() Result { return m.result }
func (m Match) IsBye() bool { return m.kind == kindBye }
func (m Match) IsDrop() bool { return m.kind == kindDrop }
func (m Match) HasOpponent() bool { return m.kind == kindPlayed }

// OpponentID returns the opponent's id; ok is false for byes and drop
// placeholders.
func (m Match) OpponentID() (id int, ok bool) {
	if m.kind != kindPlayed {
		return 0, false
	}
	return m.opponentID, true
}

// IsValid reports whether the match counts toward opponent strength
// statistics: both players showed up and there was an opponent.
func (m Match) IsValid() bool {
	return m.kind == kindPlayed && !m.result.PlayerWithdrew &&
		!m.result.OpponentWithdrew
}

// IsReversible reports whether the opponent should receive a mirrored copy
// of this match. Withdrawals still count as a game between two players.
func (m Match) IsReversible() bool {
	return m.kind == kindPlayed
}

func (m Match) Outcome() Outcome {
	r := m.result
	switch {
	case m.kind == kindBye:
		return Win
	case m.kind == kindDrop:
		return Loss
	case r.PlayerWithdrew && r.OpponentWithdrew:
		return Draw
	case r.PlayerWithdrew:
		return Loss
	case r.OpponentWithdrew:
		return Win
	case r.Wins > r.Losses:
		return Win
	case r.Wins == r.Losses:
		return Draw
	default:
		return Loss
	}
}

func (m Match) IsWin() bool { return m.Outcome() == Win }
func (m Match) IsDraw() bool { return m.Outcome() == Draw }
func (m Match) IsLoss() bool { return m.Outcome() == Loss }

// Points returns the match points earned: 3 for a win, 1 for a draw and 0
// for a loss.
func (m Match) Points() int {
	switch m.Outcome() {
	case Win:
		return WinPoints
	case Draw:
		return DrawPoints
	default:
		return LossPoints
	}
}

// GameWinFraction returns (3*wins + draws) / (3*games). ok is false when no
// games were recorded.
func (m Match) GameWinFraction() (frac float64, ok bool) {
	r := m.result
	games := r.Wins + r.Draws + r.Losses
	if games == 0 {
		return 0, false
	}
	return float64(3*r.Wins+r.Draws) / float64(3*games), true
}

func (m Match) String() string {
	switch m.kind {
	case kindBye:
		return fmt.Sprintf("R%d %d BYE", m.round, m.playerID)
	case kindDrop:
		return fmt.Sprintf("R%d %d DROP", m.round, m.playerID)
	}
	r := m.result
	s := fmt.Sprintf("R%d %d vs %d %d-%d-%d", m.round, m.playerID,
		m.opponentID, r.Wins, r.Draws, r.Losses)
	if r.PlayerWithdrew {
		s += " (withdrew)"
	}
	if r.OpponentWithdrew {
		s += " (opponent withdrew)"
	}
	return s
}
