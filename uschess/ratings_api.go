/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package uschess

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/mikeb26/swisstd/internal"
	"golang.org/x/sync/errgroup"
)

// Only the fields that a replay or a rendered cross table needs are decoded.

type apiRatedEvent struct {
	Name     string `json:"name"`
	EndDate  string `json:"endDate"`
	Sections []struct {
		Number int    `json:"number"`
		Name   string `json:"name"`
	} `json:"sections"`
}

type apiStandings struct {
	Items []struct {
		Ordinal       int     `json:"ordinal"`
		FirstName     string  `json:"firstName"`
		LastName      string  `json:"lastName"`
		Score         float64 `json:"score"`
		RoundOutcomes []struct {
			RoundNumber     int    `json:"roundNumber"`
			Outcome         string `json:"outcome"`
			Color           string `json:"color"`
			OpponentOrdinal int    `json:"opponentOrdinal"`
		} `json:"roundOutcomes"`
		Ratings []apiRating `json:"ratings"`
	} `json:"items"`
}

type apiRating struct {
	PreRating    int    `json:"preRating"`
	PostRating   int    `json:"postRating"`
	RatingSystem string `json:"ratingSystem"`
}

// getJSON fetches url through hc and decodes the body into v.
func (client *Client) getJSON(ctx context.Context, hc *http.Client, url string,
	v any) error {

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("unable to create request: %w", err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("unable to fetch %v: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("HTTP %d fetching %v: %s", resp.StatusCode, url,
			string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to parse %v: %w", url, err)
	}

	return nil
}

// FetchCrossTables retrieves a RatedEvent with all sections' cross tables
// for the given event id. Sections are fetched concurrently; a section that
// cannot be fetched is skipped with a warning.
func (client *Client) FetchCrossTables(ctx context.Context,
	id EventID) (*RatedEvent, error) {

	eventURL := fmt.Sprintf("%v/api/v1/rated-events/%v", client.apiBase, id)
	var event apiRatedEvent
	// rated events are rarely (if ever) updated so 1 month cache is fine
	if err := client.getJSON(ctx, client.httpClient30day, eventURL,
		&event); err != nil {
		return nil, err
	}

	sections := make([]*CrossTable, len(event.Sections))
	g, gctx := errgroup.WithContext(ctx)
	for idx, section := range event.Sections {
		g.Go(func() error {
			var standings apiStandings
			url := fmt.Sprintf("%v/sections/%d/standings", eventURL,
				section.Number)
			err := client.getJSON(gctx, client.httpClient30day, url, &standings)
			if err != nil {
				log.Printf("uschess.fetch: warning: failed to fetch section %d: %v",
					section.Number, err)
				return nil
			}
			sections[idx] = standings.crossTable(section.Name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ev := &RatedEvent{Event: Event{Name: event.Name, ID: id}}
	for _, xt := range sections {
		if xt != nil {
			ev.CrossTables = append(ev.CrossTables, xt)
		}
	}
	ev.NumSections = len(ev.CrossTables)

	var err error
	ev.Event.EndDate, err = internal.ParseDateOrZero(event.EndDate)
	if err != nil {
		log.Printf("uschess.fetch: warning: unable to parse event end date %v: %v",
			event.EndDate, err)
	}

	return ev, nil
}

// crossTable converts one section's standings. Results are placed by round
// number, so a round the API omits for a player reads as unplayed.
func (standings *apiStandings) crossTable(sectionName string) *CrossTable {
	xt := &CrossTable{SectionName: fmt.Sprintf("Section %s", sectionName)}
	for _, item := range standings.Items {
		for _, o := range item.RoundOutcomes {
			xt.NumRounds = max(xt.NumRounds, o.RoundNumber)
		}
	}

	for _, item := range standings.Items {
		entry := CrossTableEntry{
			PairNum:     item.Ordinal,
			PlayerName:  internal.NormalizeName(item.FirstName + " " + item.LastName),
			TotalPoints: item.Score,
			Results:     make([]RoundResult, xt.NumRounds),
		}
		for i := range entry.Results {
			entry.Results[i].Outcome = ResultUnplayedGame
		}
		for _, o := range item.RoundOutcomes {
			if o.RoundNumber < 1 {
				continue
			}
			entry.Results[o.RoundNumber-1] = RoundResult{
				OpponentPairNum: o.OpponentOrdinal,
				Outcome:         convertOutcome(o.Outcome),
				Color:           convertColor(o.Color),
			}
		}
		if r, ok := regularRating(item.Ratings); ok {
			if r.PreRating > 0 {
				entry.PlayerRatingPre = strconv.Itoa(r.PreRating)
			}
			if r.PostRating > 0 {
				entry.PlayerRatingPost = strconv.Itoa(r.PostRating)
			}
		}
		xt.PlayerEntries = append(xt.PlayerEntries, entry)
	}
	xt.NumPlayers = len(xt.PlayerEntries)

	return xt
}

// regularRating prefers the regular (or dual) rating over quick and blitz.
func regularRating(ratings []apiRating) (apiRating, bool) {
	for _, r := range ratings {
		if r.RatingSystem == "R" || r.RatingSystem == "D" {
			return r, true
		}
	}
	if len(ratings) == 0 {
		return apiRating{}, false
	}
	return ratings[0], true
}

func convertOutcome(outcome string) Result {
	switch outcome {
	case "Win":
		return ResultWin
	case "Loss":
		return ResultLoss
	case "Draw":
		return ResultDraw
	case "ByeFull":
		return ResultFullBye
	case "ByeHalf":
		return ResultHalfBye
	case "LossByForfeit", "LossForfeit":
		return ResultLossByForfeit
	case "WinByForfeit", "WinForfeit":
		return ResultWinByForfeit
	case "Unplayed", "Unpaired":
		return ResultUnplayedGame
	default:
		return ResultUnknown
	}
}

func convertColor(color string) string {
	switch strings.ToLower(color) {
	case "white", "black":
		return strings.ToLower(color)
	default:
		return ""
	}
}
