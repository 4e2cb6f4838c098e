/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package httpcache

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/mikeb26/swisstd/internal"
	"github.com/mikeb26/swisstd/s3store"
)

// NewCachedHttpClient returns an http.Client that caches via S3-backed
// httpcache. If the bucket cannot be reached it falls back to an in-memory
// cache. It also enforces a client-side TTL by rewriting origin cache
// headers.
func NewCachedHttpClient(ctx context.Context, maxAge time.Duration) *http.Client {
	store := s3store.New(internal.WebCacheBucket, "s3cache", false, true)

	var cache httpcache.Cache
	if err := store.Init(ctx); err != nil {
		log.Printf("httpcache: warning failed to init S3 cache: %v; falling back to in-memory cache",
			err)
		cache = httpcache.NewMemoryCache()
	} else {
		cache = s3store.NewHTTPCache(ctx, store)
	}

	return NewClientWithCache(cache, http.DefaultTransport, maxAge)
}

// NewClientWithCache returns an http.Client that caches responses from rt
// in cache for maxAge regardless of what the origin asks for.
func NewClientWithCache(cache httpcache.Cache, rt http.RoundTripper,
	maxAge time.Duration) *http.Client {

	hc := httpcache.NewTransport(cache)
	// we have to inject our own header overrides here in order to override
	// server responses that might indicate caching shouldn't be done
	hc.Transport = &HeaderOverrideTransport{
		wrappedRT: rt,
		Response: func(resp *http.Response) error {
			resp.Header.Del("Pragma")
			resp.Header.Del("Expires")
			resp.Header.Del("Cache-Control")
			resp.Header.Set("Cache-Control",
				fmt.Sprintf("public, max-age=%d", int(maxAge/time.Second)))
			return nil
		},
	}

	return &http.Client{Transport: hc}
}

// HeaderOverrideTransport rewrites requests before and responses after the
// wrapped RoundTripper runs.
type HeaderOverrideTransport struct {
	Request  func(req *http.Request)
	Response func(resp *http.Response) error

	wrappedRT http.RoundTripper
}

func (t *HeaderOverrideTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so we don’t stomp on the caller’s original
	req2 := req.Clone(req.Context())
	if t.Request != nil {
		t.Request(req2)
	}

	resp, err := t.wrappedRT.RoundTrip(req2)
	if err != nil {
		return nil, err
	}

	if t.Response != nil {
		if err := t.Response(resp); err != nil {
			resp.Body.Close()
			return nil, err
		}
	}
	return resp, nil
}
