/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mikeb26/swisstd/uschess"
)

// this program exists just to seed the http cache with the cross tables of
// every event an affiliate has rated, so that later imports are served
// from the cache

func main() {
	delay := flag.Duration("delay", 2*time.Second,
		"Pause between requests to avoid pegging uschess.org")
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "usage: %v [--delay 2s] <affiliate id>...\n",
			os.Args[0])
		os.Exit(1)
	}

	ctx := context.Background()
	client := uschess.NewClient(ctx)
	n := seedAffiliates(ctx, client, flag.Args(), *delay, os.Stdout)
	fmt.Printf("seeded %d events\n", n)
}

// seedAffiliates fetches the cross tables of every event listed for each
// affiliate and returns how many events were fetched.
func seedAffiliates(ctx context.Context, client *uschess.Client,
	affiliates []string, delay time.Duration, w io.Writer) int {

	seeded := 0
	for _, aff := range affiliates {
		events, err := client.GetAffiliateEvents(ctx, aff)
		if err != nil {
			// best effort
			fmt.Fprintf(w, "skipping affiliate %v: %v\n", aff, err)
			continue
		}
		for _, event := range events {
			_, err := client.FetchCrossTables(ctx, event.ID)
			time.Sleep(delay)
			if err != nil {
				// best effort
				continue
			}

			fmt.Fprintf(w, "seeded ev:%v\n", event.Name)
			seeded++
		}
	}

	return seeded
}
