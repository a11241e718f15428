package configstore

import (
	"testing"
	"time"
)

func TestAuthCacheMissReturnsNoHit(t *testing.T) {
	c := newAuthCache(time.Minute)
	res := c.Get("nope")
	if res.Hit {
		t.Error("expected miss for unknown key")
	}
}

func TestAuthCacheFreshHitDoesNotRequestRefresh(t *testing.T) {
	c := newAuthCache(time.Minute)
	c.Set("k1", &AppContext{ApplicationID: "a1"})
	res := c.Get("k1")
	if !res.Hit || res.NeedsRefresh {
		t.Errorf("expected fresh hit without refresh, got %+v", res)
	}
	if res.AppContext.ApplicationID != "a1" {
		t.Errorf("expected a1, got %s", res.AppContext.ApplicationID)
	}
}

func TestAuthCacheStaleHitSignalsRefreshOnce(t *testing.T) {
	c := newAuthCache(time.Nanosecond)
	c.Set("k1", &AppContext{ApplicationID: "a1"})
	time.Sleep(time.Millisecond)

	first := c.Get("k1")
	if !first.Hit || !first.NeedsRefresh {
		t.Errorf("expected stale hit needing refresh, got %+v", first)
	}
	second := c.Get("k1")
	if !second.Hit || second.NeedsRefresh {
		t.Errorf("expected second stale read to not re-trigger refresh, got %+v", second)
	}
}

func TestAuthCacheDeleteRemovesEntry(t *testing.T) {
	c := newAuthCache(time.Minute)
	c.Set("k1", &AppContext{ApplicationID: "a1"})
	c.Delete("k1")
	if res := c.Get("k1"); res.Hit {
		t.Error("expected deleted entry to miss")
	}
}

func TestGenerateAPIKeyProducesVerifiableHash(t *testing.T) {
	fullKey, hash, prefix, err := GenerateAPIKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fullKey) < 10 || fullKey[:5] != "plsd_" {
		t.Errorf("expected plsd_-prefixed key, got %q", fullKey)
	}
	if prefix != fullKey[:9] {
		t.Errorf("expected prefix to be first 9 chars, got %q vs %q", prefix, fullKey[:9])
	}
	if hash == fullKey {
		t.Error("expected hash to differ from plaintext key")
	}
}
