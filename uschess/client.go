/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package uschess

import (
	"context"
	"net/http"
	"time"

	"github.com/mikeb26/swisstd/internal"
	"github.com/mikeb26/swisstd/internal/httpcache"
)

type Client struct {
	httpClient30day *http.Client
	httpClient1day  *http.Client
	apiBase         string
}

func NewClient(ctx context.Context) *Client {
	return &Client{
		httpClient30day: httpcache.NewCachedHttpClient(ctx, 30*24*time.Hour),
		httpClient1day:  httpcache.NewCachedHttpClient(ctx, 24*time.Hour),
		apiBase:         internal.RatingsAPIBase,
	}
}

// NewClientWithHTTP returns a Client that sends every request through hc to
// the ratings API rooted at apiBase.
func NewClientWithHTTP(hc *http.Client, apiBase string) *Client {
	return &Client{
		httpClient30day: hc,
		httpClient1day:  hc,
		apiBase:         apiBase,
	}
}
