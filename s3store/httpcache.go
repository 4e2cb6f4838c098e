/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright (c) 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 */
package s3store

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"io"
	"log"

	"github.com/gregjones/httpcache"
)

// HTTPCache adapts a Store to httpcache.Cache. Cache keys are hashed so
// that arbitrary URLs map onto flat object names. Failures are treated as
// cache misses.
type HTTPCache struct {
	store *Store

	// The context to specify when initiating s3 requests
	ctx context.Context
}

var _ httpcache.Cache = (*HTTPCache)(nil)

// NewHTTPCache returns an httpcache.Cache that stores responses in s.
func NewHTTPCache(ctx context.Context, s *Store) *HTTPCache {
	return &HTTPCache{store: s, ctx: ctx}
}

func (c *HTTPCache) Get(key string) ([]byte, bool) {
	data, err := c.store.Get(c.ctx, CacheKey(key))
	if err != nil {
		// a missing object just indicates a cache miss
		if c.store.logErrors && !errors.Is(err, ErrNotFound) {
			log.Printf("s3store.httpcache: get %v: %v", key, err)
		}
		return []byte{}, false
	}

	return data, true
}

// Set stores the provided data in the cache under the given key.
func (c *HTTPCache) Set(key string, data []byte) {
	_ = c.store.Put(c.ctx, CacheKey(key), data, "")
}

func (c *HTTPCache) Delete(key string) {
	_ = c.store.Delete(c.ctx, CacheKey(key))
}

// CacheKey returns the hashed object name used for an httpcache key.
func CacheKey(key string) string {
	h := md5.New()
	io.WriteString(h, key)
	return hex.EncodeToString(h.Sum(nil))
}
