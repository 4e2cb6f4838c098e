/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package uschess

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"slices"
	"strconv"
	"time"

	"github.com/mikeb26/swisstd/internal"
)

type EventID int

type Event struct {
	EndDate time.Time
	Name    string
	ID      EventID
}

const eventsPageSize = 100

type apiAffiliateEvents struct {
	Items []struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		EndDate string `json:"endDate"`
	} `json:"items"`
	HasNextPage bool `json:"hasNextPage"`
}

// GetAffiliateEvents pages through the rated events of the given affiliate
// and returns them newest first, so an event id can be picked for import.
func (client *Client) GetAffiliateEvents(ctx context.Context,
	affiliateCode string) ([]Event, error) {

	var events []Event
	for offset := 0; ; offset += eventsPageSize {
		pageURL := fmt.Sprintf("%v/api/v1/affiliates/%v/events?offset=%d&pageSize=%d",
			client.apiBase, url.PathEscape(affiliateCode), offset, eventsPageSize)
		var page apiAffiliateEvents
		if err := client.getJSON(ctx, client.httpClient1day, pageURL,
			&page); err != nil {
			return nil, err
		}

		for _, item := range page.Items {
			id, err := strconv.Atoi(item.ID)
			if err != nil {
				log.Printf("uschess.events: skipping event with bad id %q", item.ID)
				continue
			}
			endDate, _ := internal.ParseDateOrZero(item.EndDate)
			events = append(events, Event{EndDate: endDate, Name: item.Name,
				ID: EventID(id)})
		}
		if !page.HasNextPage {
			break
		}
	}

	slices.SortStableFunc(events, func(a, b Event) int {
		return b.EndDate.Compare(a.EndDate)
	})

	return events, nil
}

// SectionSummary describes one section of a rated event. Err is set when
// the section's cross table cannot be replayed into a tournament.
type SectionSummary struct {
	Name    string
	Players int
	Rounds  int
	Err     error
}

func (s SectionSummary) Replayable() bool {
	return s.Err == nil
}

// Summarize replays every section of ev and reports which of them can be
// imported.
func (ev *RatedEvent) Summarize() []SectionSummary {
	summaries := make([]SectionSummary, 0, len(ev.CrossTables))
	for _, xt := range ev.CrossTables {
		s := SectionSummary{
			Name:    xt.SectionName,
			Players: xt.NumPlayers,
			Rounds:  xt.NumRounds,
		}
		_, s.Err = Replay(xt)
		summaries = append(summaries, s)
	}
	return summaries
}
