/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

// minOpponentMatchWin is the floor applied to each opponent's match-win
// percentage when computing OMWP.
const minOpponentMatchWin = 1.0 / 3.0

// Player owns its match history and the tie-break statistics derived from
// it. Statistics are only changed by the Calculate* methods, each of which
// recomputes from the full history.
type Player struct {
	id      int
	name    string
	dropped bool

	points              int
	matchWinPct         float64
	opponentMatchWinPct float64
	gameWinPct          float64
	opponentGameWinPct  float64

	history []Match
}

func NewPlayer(id int, name string) *Player {
	return &Player{
		id:   id,
		name: name,
	}
}

func (p *Player) ID() int { return p.id }
func (p *Player) Name() string { return p.name }
func (p *Player) IsDropped() bool { return p.dropped }
func (p *Player) Points() int { return p.points }
func (p *Player) MatchWinPct() float64 { return p.matchWinPct }
func (p *Player) OpponentMatchWinPct() float64 { return p.opponentMatchWinPct }
func (p *Player) GameWinPct() float64 { return p.gameWinPct }
func (p *Player) OpponentGameWinPct() float64 { return p.opponentGameWinPct }

// History returns a copy of the player's matches in round order.
func (p *Player) History() []Match {
	return append([]Match(nil), p.history...)
}

// AddMatch appends m to the player's history. Statistics are not updated
// until the next recalculation.
func (p *Player) AddMatch(m Match) {
	p.history = append(p.history, m)
}

// Drop marks the player as withdrawn from the event.
func (p *Player) Drop() {
	p.dropped = true
}

// ResetStats zeroes points and every percentage ahead of a full
// recalculation.
func (p *Player) ResetStats() {
	p.points = 0
	p.matchWinPct = 0
	p.opponentMatchWinPct = 0
	p.gameWinPct = 0
	p.opponentGameWinPct = 0
}

// RoundsCounted returns the number of history entries that are not drop
// placeholders.
func (p *Player) RoundsCounted() int {
	count := 0
	for _, m := range p.history {
		if !m.IsDrop() {
			count++
		}
	}
	return count
}

func (p *Player) CalculatePoints() {
	p.points = 0
	for _, m := range p.history {
		p.points += m.Points()
	}
}

// CalculateMatchWinPct sets MWP to points / (3 * rounds counted), or 0 when
// no rounds have been counted. Points must be current.
func (p *Player) CalculateMatchWinPct() {
	rounds := p.RoundsCounted()
	if rounds == 0 {
		p.matchWinPct = 0
		return
	}
	p.matchWinPct = float64(p.points) / float64(WinPoints*rounds)
}

// CalculateOpponentMatchWinPct averages max(1/3, MWP) over the opponents of
// every valid match. mwp is a snapshot of all players' match-win
// percentages keyed by id; opponents missing from it count as 0 before the
// floor is applied.
func (p *Player) CalculateOpponentMatchWinPct(mwp map[int]float64) {
	sum := 0.0
	count := 0
	for _, m := range p.history {
		if !m.IsValid() {
			continue
		}
		oppID, _ := m.OpponentID()
		sum += max(minOpponentMatchWin, mwp[oppID])
		count++
	}
	p.opponentMatchWinPct = average(sum, count)
}

// CalculateGameWinPct averages the game-win fraction of every valid match.
// A valid match with no recorded games contributes 0, so GWP and OGWP
// always average over the same matches.
func (p *Player) CalculateGameWinPct() {
	sum := 0.0
	count := 0
	for _, m := range p.history {
		if !m.IsValid() {
			continue
		}
		if frac, ok := m.GameWinFraction(); ok {
			sum += frac
		}
		count++
	}
	p.gameWinPct = average(sum, count)
}

// CalculateOpponentGameWinPct averages the opponents' GWP over every valid
// match, using the gwp snapshot keyed by id.
func (p *Player) CalculateOpponentGameWinPct(gwp map[int]float64) {
	sum := 0.0
	count := 0
	for _, m := range p.history {
		if !m.IsValid() {
			continue
		}
		oppID, _ := m.OpponentID()
		sum += gwp[oppID]
		count++
	}
	p.opponentGameWinPct = average(sum, count)
}

// HasFaced reports whether the player has a match against id, including
// matches decided by withdrawal.
func (p *Player) HasFaced(id int) bool {
	for _, m := range p.history {
		if oppID, ok := m.OpponentID(); ok && oppID == id {
			return true
		}
	}
	return false
}

// HasBye reports whether the player has already received a bye.
func (p *Player) HasBye() bool {
	for _, m := range p.history {
		if m.IsBye() {
			return true
		}
	}
	return false
}

func average(sum float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
