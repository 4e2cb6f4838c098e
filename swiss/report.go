/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"fmt"
	"slices"
	"strings"
)

// PctToString formats a tie-break percentage the way standings print it.
func PctToString(pct float64) string {
	return fmt.Sprintf("%.2f%%", pct*100)
}

// BuildStandingsOutput formats the current standings into an aligned table.
// Players tied on every statistic but id share a place.
func BuildStandingsOutput(t *Tournament) string {
	var sb strings.Builder

	if t.Round() == 0 {
		sb.WriteString("Standings before Round 1:\n\n")
	} else {
		sb.WriteString(fmt.Sprintf("Standings after Round %v:\n\n", t.Round()))
	}

	headers := []string{"Place", "Name", "Pts", "MW%", "OMW%", "GW%", "OGW%"}
	var rows [][]string
	var prior *Player
	for idx, p := range t.Standings() {
		place := ""
		if prior == nil || !tiedForPlace(prior, p) {
			place = fmt.Sprintf("%v.", idx+1)
		}
		prior = p
		name := p.Name()
		if p.IsDropped() {
			name += " (withdrawn)"
		}
		rows = append(rows, []string{
			place,
			name,
			fmt.Sprintf("%d", p.Points()),
			PctToString(p.MatchWinPct()),
			PctToString(p.OpponentMatchWinPct()),
			PctToString(p.GameWinPct()),
			PctToString(p.OpponentGameWinPct()),
		})
	}

	writeTable(&sb, headers, rows)

	return sb.String()
}

func tiedForPlace(a, b *Player) bool {
	return a.dropped == b.dropped && a.points == b.points &&
		a.opponentMatchWinPct == b.opponentMatchWinPct &&
		a.gameWinPct == b.gameWinPct &&
		a.opponentGameWinPct == b.opponentGameWinPct
}

// BuildPairingsOutput formats an assignment for the next round. Boards are
// numbered by the standing of their better-placed player; the bye, if any,
// is listed last.
func BuildPairingsOutput(t *Tournament, a Assignment) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Round %v Pairings:\n\n", t.Round()+1))

	headers := []string{"Board", "Player", "Opponent"}
	var rows [][]string
	seated := make(map[int]bool)
	var byePlayer *Player
	board := 1
	for _, p := range t.Standings() {
		opp, ok := a[p.id]
		if !ok || seated[p.id] {
			continue
		}
		if opp == Bye {
			byePlayer = p
			continue
		}
		q, ok := t.Player(opp)
		if !ok {
			continue
		}
		seated[p.id] = true
		seated[q.id] = true
		rows = append(rows, []string{
			fmt.Sprintf("%d.", board),
			fmt.Sprintf("%s(%d)", p.Name(), p.Points()),
			fmt.Sprintf("%s(%d)", q.Name(), q.Points()),
		})
		board++
	}
	if byePlayer != nil {
		rows = append(rows, []string{
			"n/a",
			fmt.Sprintf("%s(%d)", byePlayer.Name(), byePlayer.Points()),
			"BYE",
		})
	}

	writeTable(&sb, headers, rows)

	return sb.String()
}

// writeTable writes left-aligned columns separated by two spaces.
func writeTable(sb *strings.Builder, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	writeRow := func(cells []string) {
		parts := slices.Clone(cells)
		for i := range parts {
			parts[i] = fmt.Sprintf("%-*s", widths[i], parts[i])
		}
		sb.WriteString(strings.TrimRight(strings.Join(parts, "  "), " "))
		sb.WriteString("\n")
	}

	writeRow(headers)
	for _, row := range rows {
		writeRow(row)
	}
	sb.WriteString("\n")
}
