/* Copyright (c) 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 */
package s3store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gregjones/httpcache/test"
	"github.com/mikeb26/swisstd/internal"
)

func newTestStore(t *testing.T, gzip bool) *Store {
	t.Helper()
	store := New(internal.WebCacheBucket, "s3store-test", gzip, true)
	err := store.Init(context.Background())
	if err != nil {
		t.Skip(fmt.Sprintf("Skipping test due to lack of access to %v: %v",
			internal.WebCacheBucket, err))
	}
	return store
}

func TestHTTPCache(t *testing.T) {
	store := newTestStore(t, false)
	test.Cache(t, NewHTTPCache(context.Background(), store))
}

func TestHTTPCacheWithGzip(t *testing.T) {
	store := newTestStore(t, true)
	test.Cache(t, NewHTTPCache(context.Background(), store))
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, true)

	const key = "roundtrip/standings.txt"
	want := "Standings after Round 3:\n"
	if err := store.Put(ctx, key, []byte(want), "text/plain"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != want {
		t.Errorf("Get got %q; want %q", got, want)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete err = %v; want %v", err, ErrNotFound)
	}
}

func TestObjectKey(t *testing.T) {
	cases := []struct {
		prefix string
		gzip   bool
		key    string
		want   string
	}{
		{"s3cache", false, "abc", "/s3cache/abc"},
		{"s3cache", true, "abc", "/s3cache/abc.gz"},
		{"", false, "reports/r1.txt", "/reports/r1.txt"},
	}
	for _, c := range cases {
		s := New("bucket", c.prefix, c.gzip, false)
		if got := s.ObjectKey(c.key); got != c.want {
			t.Errorf("ObjectKey(%q) with prefix %q got %q; want %q", c.key,
				c.prefix, got, c.want)
		}
	}
}

func TestCacheKey(t *testing.T) {
	// md5("") is well known
	if got := CacheKey(""); got != "d41d8cd98f00b204e9800998ecf8427e" {
		t.Errorf("CacheKey(\"\") got %v", got)
	}
	if CacheKey("https://a/1") == CacheKey("https://a/2") {
		t.Errorf("distinct urls share a cache key")
	}
}
