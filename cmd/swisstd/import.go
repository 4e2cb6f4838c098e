/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/mikeb26/swisstd/swiss"
	"github.com/mikeb26/swisstd/uschess"
)

// importOptions selects a cross table section and how much of it to replay.
type importOptions struct {
	eventID   int
	htmlPath  string
	section   string
	rounds    int // negative replays every round
	algorithm string
	xtable    bool
}

// importResult holds a replayed section and its rendered report.
type importResult struct {
	event   uschess.Event
	xt      *uschess.CrossTable
	tour    *swiss.Tournament
	report  string
	pairing swiss.Assignment
}

// loadEvent reads cross tables from a saved page or the ratings API.
func loadEvent(ctx context.Context, opts importOptions) (*uschess.RatedEvent, error) {
	if opts.htmlPath != "" {
		f, err := os.Open(opts.htmlPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return uschess.ParseCrossTableHTML(f)
	}
	if opts.eventID <= 0 {
		return nil, fmt.Errorf("either an event id or an html file is required")
	}
	client := uschess.NewClient(ctx)
	return client.FetchCrossTables(ctx, uschess.EventID(opts.eventID))
}

// importEvent replays the selected section and renders its standings
// followed by the pairing the engine would produce for the next round.
func importEvent(ev *uschess.RatedEvent, opts importOptions) (*importResult, error) {
	xt, err := ev.Section(opts.section)
	if err != nil {
		return nil, err
	}
	rounds := opts.rounds
	if rounds < 0 {
		rounds = xt.NumRounds
	}
	tour, err := uschess.ReplayRounds(xt, rounds)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", xt.SectionName, err)
	}

	res := &importResult{event: ev.Event, xt: xt, tour: tour}
	var sb strings.Builder
	if ev.Event.Name != "" {
		sb.WriteString(fmt.Sprintf("%v - %v\n\n", ev.Event.Name, xt.SectionName))
	}
	if opts.xtable {
		sb.WriteString(uschess.BuildCrossTableOutput(xt))
	}
	sb.WriteString(swiss.BuildStandingsOutput(tour))

	a, err := tour.Pair(opts.algorithm)
	switch {
	case errors.Is(err, swiss.ErrNoPairing):
		sb.WriteString(fmt.Sprintf("No legal pairing exists for round %d: %v\n",
			tour.Round()+1, err))
	case err != nil:
		return nil, err
	default:
		res.pairing = a
		sb.WriteString(swiss.BuildPairingsOutput(tour, a))
	}
	res.report = sb.String()

	return res, nil
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// archiveKey names the stored report for one section after a given round.
func (res *importResult) archiveKey() string {
	event := fmt.Sprintf("%d", res.event.ID)
	if res.event.ID == 0 {
		event = slugify(res.event.Name)
	}
	return fmt.Sprintf("%v/%v/round-%d.txt", event, slugify(res.xt.SectionName),
		res.tour.Round())
}

func slugify(s string) string {
	s = strings.Trim(slugRe.ReplaceAllString(strings.ToLower(s), "-"), "-")
	if s == "" {
		return "unnamed"
	}
	return s
}

func printEvents(w io.Writer, events []uschess.Event) {
	for _, ev := range events {
		date := "unknown date"
		if !ev.EndDate.IsZero() {
			date = ev.EndDate.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%v  %v (EventID:%d)\n", date, ev.Name, ev.ID)
	}
}

// printSections lists the sections of one event, indented under it.
func printSections(w io.Writer, sections []uschess.SectionSummary) {
	for _, s := range sections {
		status := "ok"
		if !s.Replayable() {
			status = fmt.Sprintf("cannot import: %v", s.Err)
		}
		fmt.Fprintf(w, "    %v: %d players, %d rounds (%v)\n", s.Name,
			s.Players, s.Rounds, status)
	}
}
