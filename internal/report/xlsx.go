/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package report

import (
	"fmt"
	"io"

	"github.com/mikeb26/swisstd/swiss"
	"github.com/xuri/excelize/v2"
)

const standingsSheet = "Standings"

var standingsHeader = []any{"Place", "Name", "Pts", "MW%", "OMW%", "GW%",
	"OGW%", "Dropped"}

// WriteStandingsXLSX writes the tournament's standings as a one sheet
// workbook. Percentages are stored as fractions with a percent format.
func WriteStandingsXLSX(w io.Writer, t *swiss.Tournament) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()),
		standingsSheet); err != nil {
		return fmt.Errorf("report.xlsx: rename sheet: %w", err)
	}
	if err := f.SetSheetRow(standingsSheet, "A1", &standingsHeader); err != nil {
		return fmt.Errorf("report.xlsx: header: %w", err)
	}

	for idx, p := range t.Standings() {
		row := []any{
			idx + 1,
			p.Name(),
			p.Points(),
			p.MatchWinPct(),
			p.OpponentMatchWinPct(),
			p.GameWinPct(),
			p.OpponentGameWinPct(),
			p.IsDropped(),
		}
		axis, err := excelize.CoordinatesToCellName(1, idx+2)
		if err != nil {
			return fmt.Errorf("report.xlsx: row %d: %w", idx+2, err)
		}
		if err := f.SetSheetRow(standingsSheet, axis, &row); err != nil {
			return fmt.Errorf("report.xlsx: row %d: %w", idx+2, err)
		}
	}

	pctStyle, err := f.NewStyle(&excelize.Style{NumFmt: 10})
	if err != nil {
		return fmt.Errorf("report.xlsx: style: %w", err)
	}
	last := max(t.Len()+1, 2)
	if err := f.SetCellStyle(standingsSheet, "D2", fmt.Sprintf("G%d", last),
		pctStyle); err != nil {
		return fmt.Errorf("report.xlsx: style: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("report.xlsx: write: %w", err)
	}

	return nil
}
