/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package uschess

import (
	"strings"
	"testing"
)

const testCrossTableHTML = `<html>
<head><title>Boylston Summer Swiss</title></head>
<body>
<table><tr><td>navigation</td></tr></table>
<table class="xtable">
  <caption>Open</caption>
  <tr><th>No</th><th>Name</th><th>Rating</th><th>Pts</th><th>R1</th><th>R2</th><th>R3</th></tr>
  <tr><td>1.</td><td>BEHR, RUFUS</td><td>1735->1751</td><td>2½</td><td>W3(w)</td><td>D2(b)</td><td>W*</td></tr>
  <tr><td>2.</td><td>ADA LOVELACE</td><td>1500->1510</td><td>2</td><td>BYE(1)</td><td>D1(w)</td><td>½</td></tr>
  <tr><td>3.</td><td>Alan Turing</td><td>1600</td><td>0</td><td>L1(b)</td><td>L*4</td><td>-</td></tr>
  <tr><td>4.</td><td>Grace Hopper</td><td>1400->1401</td><td>1</td><td>U</td><td>W*3</td><td>BYE(0)</td></tr>
  <tr><td colspan="7">* indicates game was decided by forfeit</td></tr>
</table>
</body>
</html>`

func TestParseCrossTableHTML(t *testing.T) {
	// the R3 cell for Ada is not valid notation
	_, err := ParseCrossTableHTML(strings.NewReader(testCrossTableHTML))
	if err == nil {
		t.Fatalf("ParseCrossTableHTML accepted a bad result cell")
	}

	page := strings.Replace(testCrossTableHTML, "<td>½</td>", "<td>BYE(½)</td>", 1)
	ev, err := ParseCrossTableHTML(strings.NewReader(page))
	if err != nil {
		t.Fatalf("ParseCrossTableHTML: %v", err)
	}
	if ev.Event.Name != "Boylston Summer Swiss" {
		t.Errorf("event name got %q", ev.Event.Name)
	}
	if ev.NumSections != 1 {
		t.Fatalf("sections got %d; want 1", ev.NumSections)
	}

	xt := ev.CrossTables[0]
	if xt.SectionName != "Open" || xt.NumRounds != 3 || xt.NumPlayers != 4 {
		t.Errorf("section got %q/%d rounds/%d players; want Open/3/4",
			xt.SectionName, xt.NumRounds, xt.NumPlayers)
	}

	rufus := xt.PlayerEntries[0]
	if rufus.PlayerName != "Rufus Behr" || rufus.TotalPoints != 2.5 {
		t.Errorf("entry 1 got %q with %v points", rufus.PlayerName,
			rufus.TotalPoints)
	}
	if rufus.PlayerRatingPre != "1735" || rufus.PlayerRatingPost != "1751" {
		t.Errorf("entry 1 ratings got %v->%v", rufus.PlayerRatingPre,
			rufus.PlayerRatingPost)
	}
	want := []RoundResult{
		{Outcome: ResultWin, OpponentPairNum: 3, Color: "white"},
		{Outcome: ResultDraw, OpponentPairNum: 2, Color: "black"},
		{Outcome: ResultWinByForfeit},
	}
	for i, w := range want {
		if rufus.Results[i] != w {
			t.Errorf("entry 1 round %d got %+v; want %+v", i+1,
				rufus.Results[i], w)
		}
	}

	turing := xt.PlayerEntries[2]
	if turing.PlayerRatingPre != "1600" || turing.PlayerRatingPost != "" {
		t.Errorf("entry 3 ratings got %q->%q", turing.PlayerRatingPre,
			turing.PlayerRatingPost)
	}
	if turing.Results[1] != (RoundResult{Outcome: ResultLossByForfeit,
		OpponentPairNum: 4}) {
		t.Errorf("entry 3 round 2 got %+v", turing.Results[1])
	}
	if turing.Results[2].Outcome != ResultUnplayedGame {
		t.Errorf("entry 3 round 3 got %+v", turing.Results[2])
	}
}

func TestParseCrossTableHTMLNoTable(t *testing.T) {
	page := `<html><body><table><tr><td>nothing</td></tr></table></body></html>`
	if _, err := ParseCrossTableHTML(strings.NewReader(page)); err == nil {
		t.Errorf("ParseCrossTableHTML succeeded without a cross table")
	}
}

func TestParseResultCell(t *testing.T) {
	cases := []struct {
		in      string
		want    RoundResult
		wantErr bool
	}{
		{in: "W12", want: RoundResult{Outcome: ResultWin, OpponentPairNum: 12}},
		{in: "L3(b)", want: RoundResult{Outcome: ResultLoss, OpponentPairNum: 3,
			Color: "black"}},
		{in: "D5(W)", want: RoundResult{Outcome: ResultDraw, OpponentPairNum: 5,
			Color: "white"}},
		{in: "W*", want: RoundResult{Outcome: ResultWinByForfeit}},
		{in: "L*7", want: RoundResult{Outcome: ResultLossByForfeit,
			OpponentPairNum: 7}},
		{in: "BYE(1)", want: RoundResult{Outcome: ResultFullBye}},
		{in: "BYE(½)", want: RoundResult{Outcome: ResultHalfBye}},
		{in: "BYE(1/2)", want: RoundResult{Outcome: ResultHalfBye}},
		{in: "BYE(0)", want: RoundResult{Outcome: ResultUnplayedGame}},
		{in: "", want: RoundResult{Outcome: ResultUnplayedGame}},
		{in: "H", want: RoundResult{Outcome: ResultHalfBye}},
		{in: "W", wantErr: true},
		{in: "D*3", wantErr: true},
		{in: "X4", wantErr: true},
	}
	for _, c := range cases {
		got, err := parseResultCell(c.in)
		if (err != nil) != c.wantErr {
			t.Errorf("parseResultCell(%q) err = %v; wantErr %v", c.in, err,
				c.wantErr)
			continue
		}
		if !c.wantErr && got != c.want {
			t.Errorf("parseResultCell(%q) got %+v; want %+v", c.in, got, c.want)
		}
	}
}

func TestParseScore(t *testing.T) {
	cases := map[string]float64{"0": 0, "½": 0.5, "2½": 2.5, "3.5": 3.5}
	for in, want := range cases {
		got, err := parseScore(in)
		if err != nil || got != want {
			t.Errorf("parseScore(%q) got %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := parseScore("two"); err == nil {
		t.Errorf("parseScore(two) succeeded; want error")
	}
}
