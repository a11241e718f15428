package configstore

import (
	"sync"
	"sync/atomic"
	"time"
)

// authCache is a TTL-based in-memory cache for authenticated application
// contexts, mirroring the teacher's AuthCache stale-while-revalidate
// shape: sync.Map for lock-free reads, atomic.Bool to dedupe concurrent
// background refreshes.
type authCache struct {
	store sync.Map // map[string]*cacheEntry
	ttl   time.Duration
}

type cacheEntry struct {
	appCtx     *AppContext
	expiresAt  time.Time
	refreshing atomic.Bool
}

// cacheResult is the outcome of a cache lookup.
type cacheResult struct {
	AppContext   *AppContext
	Hit          bool
	NeedsRefresh bool
}

func newAuthCache(ttl time.Duration) *authCache {
	return &authCache{ttl: ttl}
}

func (c *authCache) Get(apiKey string) cacheResult {
	val, ok := c.store.Load(apiKey)
	if !ok {
		return cacheResult{}
	}
	entry := val.(*cacheEntry)
	if time.Now().Before(entry.expiresAt) {
		return cacheResult{AppContext: entry.appCtx, Hit: true}
	}
	needsRefresh := entry.refreshing.CompareAndSwap(false, true)
	return cacheResult{AppContext: entry.appCtx, Hit: true, NeedsRefresh: needsRefresh}
}

func (c *authCache) Set(apiKey string, appCtx *AppContext) {
	c.store.Store(apiKey, &cacheEntry{appCtx: appCtx, expiresAt: time.Now().Add(c.ttl)})
}

func (c *authCache) Delete(apiKey string) {
	c.store.Delete(apiKey)
}
