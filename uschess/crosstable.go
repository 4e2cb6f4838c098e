/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package uschess

import (
	"fmt"
	"strings"

	"github.com/mikeb26/swisstd/internal"
)

// Result represents the outcome of a round.
type Result int

const (
	ResultWin Result = iota
	ResultLoss
	ResultDraw
	ResultFullBye
	ResultHalfBye
	ResultLossByForfeit
	ResultWinByForfeit
	ResultUnplayedGame
	ResultUnknown
)

// RoundResult holds the result of a single round for a player.
type RoundResult struct {
	OpponentPairNum int
	Outcome         Result
	Color           string
}

// CrossTableEntry holds the data for one player in the cross table.
type CrossTableEntry struct {
	PairNum          int
	PlayerName       string
	PlayerRatingPre  string
	PlayerRatingPost string
	TotalPoints      float64
	Results          []RoundResult
}

// CrossTable holds the full cross table data, one per section.
type CrossTable struct {
	SectionName   string
	NumRounds     int
	NumPlayers    int
	PlayerEntries []CrossTableEntry
}

// RatedEvent encapsulates a rated event and its cross tables, one per
// section, in section order.
type RatedEvent struct {
	Event       Event
	NumSections int

	CrossTables []*CrossTable
}

// Section returns the cross table whose name contains name, ignoring case.
// An empty name selects the only section of a single-section event.
func (ev *RatedEvent) Section(name string) (*CrossTable, error) {
	if name == "" {
		if len(ev.CrossTables) == 1 {
			return ev.CrossTables[0], nil
		}
		return nil, fmt.Errorf("event %v has %d sections; one must be named",
			ev.Event.ID, len(ev.CrossTables))
	}
	for _, xt := range ev.CrossTables {
		if strings.Contains(strings.ToUpper(xt.SectionName),
			strings.ToUpper(name)) {
			return xt, nil
		}
	}
	return nil, fmt.Errorf("section %q not found in event %v", name,
		ev.Event.ID)
}

// BuildCrossTableOutput formats a cross table the way ParseCrossTableHTML
// reads it back: one row per player, one cell per round.
func BuildCrossTableOutput(xt *CrossTable) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%v\n", xt.SectionName))

	headers := []string{"No", "Name", "Rating", "Pts"}
	for i := 1; i <= xt.NumRounds; i++ {
		headers = append(headers, fmt.Sprintf("R%d", i))
	}

	forfeitFound := false
	var rows [][]string
	for _, e := range xt.PlayerEntries {
		row := []string{
			fmt.Sprintf("%d.", e.PairNum),
			e.PlayerName,
			fmt.Sprintf("%v->%v", e.PlayerRatingPre, e.PlayerRatingPost),
			internal.ScoreToString(e.TotalPoints),
		}
		for _, res := range e.Results {
			row = append(row, res.cell())
			if res.Outcome == ResultWinByForfeit ||
				res.Outcome == ResultLossByForfeit {
				forfeitFound = true
			}
		}
		for len(row) < len(headers) {
			row = append(row, "")
		}
		rows = append(rows, row)
	}

	colWidths := make([]int, len(headers))
	for i, h := range headers {
		colWidths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(colWidths) && len(cell) > colWidths[i] {
				colWidths[i] = len(cell)
			}
		}
	}

	var fmtStrBuilder strings.Builder
	for _, w := range colWidths {
		fmtStrBuilder.WriteString(fmt.Sprintf("%%-%ds  ", w))
	}
	fmtStr := strings.TrimRight(fmtStrBuilder.String(), " ") + "\n"

	sb.WriteString(fmt.Sprintf(fmtStr, toAnySlice(headers)...))
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf(fmtStr, toAnySlice(row[:len(headers)])...))
	}
	if forfeitFound {
		sb.WriteString("* indicates game was decided by forfeit\n")
	}
	sb.WriteString("\n")

	return sb.String()
}

// cell renders one round result in cross table notation.
func (res RoundResult) cell() string {
	color := ""
	if res.Color != "" {
		color = fmt.Sprintf("(%c)", res.Color[0])
	}
	switch res.Outcome {
	case ResultWin:
		return fmt.Sprintf("W%d%v", res.OpponentPairNum, color)
	case ResultLoss:
		return fmt.Sprintf("L%d%v", res.OpponentPairNum, color)
	case ResultDraw:
		return fmt.Sprintf("D%d%v", res.OpponentPairNum, color)
	case ResultWinByForfeit:
		if res.OpponentPairNum > 0 {
			return fmt.Sprintf("W*%d", res.OpponentPairNum)
		}
		return "W*"
	case ResultLossByForfeit:
		if res.OpponentPairNum > 0 {
			return fmt.Sprintf("L*%d", res.OpponentPairNum)
		}
		return "L*"
	case ResultFullBye:
		return "BYE(1)"
	case ResultHalfBye:
		return "BYE(½)"
	case ResultUnplayedGame:
		return "BYE(0)"
	default:
		return "?"
	}
}

func toAnySlice[T any](slice []T) []any {
	result := make([]any, len(slice))
	for i, v := range slice {
		result[i] = v
	}
	return result
}
