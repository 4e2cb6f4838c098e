/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package uschess

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mikeb26/swisstd/internal"
)

var (
	gameCellRe = regexp.MustCompile(`^([WLD])(\*)?(\d+)?(?:\(([wbWB])\))?$`)
	byeCellRe  = regexp.MustCompile(`^BYE\((1|½|1/2|0\.5|0)\)$`)
	roundHdrRe = regexp.MustCompile(`^R(?:d|ound)?\s*(\d+)$`)
)

// ParseCrossTableHTML reads a saved cross table page. Each section is a
// <table> whose header row names the columns "No", "Name", "Rating", "Pts"
// and "R1".."Rn"; the optional <caption> names the section. Round cells use
// the notation BuildCrossTableOutput writes: W12(w), L3(b), D5, W*, L*7,
// BYE(1), BYE(½), BYE(0). An empty cell, "-" or "U" is an unplayed round.
func ParseCrossTableHTML(r io.Reader) (*RatedEvent, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	ev := &RatedEvent{
		Event: Event{Name: strings.TrimSpace(doc.Find("title").First().Text())},
	}

	var parseErr error
	doc.Find("table").EachWithBreak(func(i int, table *goquery.Selection) bool {
		xt, ok, err := parseCrossTableSection(table)
		if err != nil {
			parseErr = err
			return false
		}
		if !ok {
			return true
		}
		if xt.SectionName == "" {
			xt.SectionName = fmt.Sprintf("Section %d", len(ev.CrossTables)+1)
		}
		ev.CrossTables = append(ev.CrossTables, xt)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	if len(ev.CrossTables) == 0 {
		return nil, fmt.Errorf("no cross table found in page")
	}
	ev.NumSections = len(ev.CrossTables)

	return ev, nil
}

// xtColumns holds the column index of each known header, -1 when absent.
type xtColumns struct {
	pairNum, name, rating, points int
	rounds                        []int
}

// parseCrossTableSection returns ok == false for tables that are not cross
// tables, such as page layout tables.
func parseCrossTableSection(table *goquery.Selection) (*CrossTable, bool, error) {
	rows := table.Find("tr")
	header := rows.FilterFunction(func(_ int, row *goquery.Selection) bool {
		return row.Find("th").Length() > 0
	}).First()
	if header.Length() == 0 {
		return nil, false, nil
	}

	cols := xtColumns{pairNum: -1, name: -1, rating: -1, points: -1}
	header.Find("th").Each(func(i int, th *goquery.Selection) {
		text := strings.TrimSpace(th.Text())
		switch strings.ToLower(text) {
		case "no", "no.", "#", "pair":
			cols.pairNum = i
		case "name", "player":
			cols.name = i
		case "rating":
			cols.rating = i
		case "pts", "points", "total":
			cols.points = i
		default:
			if m := roundHdrRe.FindStringSubmatch(text); m != nil {
				cols.rounds = append(cols.rounds, i)
			}
		}
	})
	if cols.pairNum < 0 || cols.name < 0 {
		return nil, false, nil
	}

	xt := &CrossTable{
		SectionName: strings.TrimSpace(table.Find("caption").First().Text()),
		NumRounds:   len(cols.rounds),
	}

	var rowErr error
	rows.EachWithBreak(func(_ int, row *goquery.Selection) bool {
		tds := row.Find("td")
		if tds.Length() == 0 {
			return true
		}
		cell := func(idx int) string {
			if idx < 0 || idx >= tds.Length() {
				return ""
			}
			return strings.TrimSpace(tds.Eq(idx).Text())
		}

		pairNum, err := strconv.Atoi(strings.TrimSuffix(cell(cols.pairNum), "."))
		if err != nil {
			// footers and spacer rows
			return true
		}
		entry := CrossTableEntry{
			PairNum:    pairNum,
			PlayerName: internal.NormalizeName(cell(cols.name)),
		}
		entry.PlayerRatingPre, entry.PlayerRatingPost =
			parseRatingCell(cell(cols.rating))
		if txt := cell(cols.points); txt != "" {
			entry.TotalPoints, err = parseScore(txt)
			if err != nil {
				rowErr = fmt.Errorf("player %d: %w", pairNum, err)
				return false
			}
		}
		for rnd, idx := range cols.rounds {
			res, err := parseResultCell(cell(idx))
			if err != nil {
				rowErr = fmt.Errorf("player %d round %d: %w", pairNum, rnd+1,
					err)
				return false
			}
			entry.Results = append(entry.Results, res)
		}

		xt.PlayerEntries = append(xt.PlayerEntries, entry)
		return true
	})
	if rowErr != nil {
		return nil, false, fmt.Errorf("section %q: %w", xt.SectionName, rowErr)
	}
	xt.NumPlayers = len(xt.PlayerEntries)

	return xt, true, nil
}

// parseResultCell decodes one round cell.
func parseResultCell(s string) (RoundResult, error) {
	s = strings.TrimSpace(s)
	switch strings.ToUpper(s) {
	case "", "-", "U":
		return RoundResult{Outcome: ResultUnplayedGame}, nil
	case "H":
		return RoundResult{Outcome: ResultHalfBye}, nil
	case "B":
		return RoundResult{Outcome: ResultFullBye}, nil
	}

	if m := byeCellRe.FindStringSubmatch(s); m != nil {
		switch m[1] {
		case "1":
			return RoundResult{Outcome: ResultFullBye}, nil
		case "0":
			return RoundResult{Outcome: ResultUnplayedGame}, nil
		default:
			return RoundResult{Outcome: ResultHalfBye}, nil
		}
	}

	m := gameCellRe.FindStringSubmatch(s)
	if m == nil {
		return RoundResult{Outcome: ResultUnknown},
			fmt.Errorf("unrecognized result %q", s)
	}

	var res RoundResult
	if m[3] != "" {
		res.OpponentPairNum, _ = strconv.Atoi(m[3])
	}
	switch strings.ToLower(m[4]) {
	case "w":
		res.Color = "white"
	case "b":
		res.Color = "black"
	}

	forfeit := m[2] != ""
	switch {
	case m[1] == "W" && forfeit:
		res.Outcome = ResultWinByForfeit
	case m[1] == "L" && forfeit:
		res.Outcome = ResultLossByForfeit
	case forfeit:
		return RoundResult{Outcome: ResultUnknown},
			fmt.Errorf("draw cannot be a forfeit: %q", s)
	case res.OpponentPairNum == 0:
		return RoundResult{Outcome: ResultUnknown},
			fmt.Errorf("missing opponent in %q", s)
	case m[1] == "W":
		res.Outcome = ResultWin
	case m[1] == "L":
		res.Outcome = ResultLoss
	default:
		res.Outcome = ResultDraw
	}

	return res, nil
}

// parseScore accepts "2", "2.5", "2½" and "½".
func parseScore(s string) (float64, error) {
	half := 0.0
	if strings.HasSuffix(s, "½") {
		half = 0.5
		s = strings.TrimSuffix(s, "½")
		if s == "" {
			return half, nil
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad score %q: %w", s, err)
	}
	return v + half, nil
}

// parseRatingCell splits "1735->1751" into its pre and post event ratings.
func parseRatingCell(s string) (string, string) {
	pre, post, ok := strings.Cut(s, "->")
	if !ok {
		return strings.TrimSpace(s), ""
	}
	return strings.TrimSpace(pre), strings.TrimSpace(post)
}
