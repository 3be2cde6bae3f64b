// Copyright 2025 Vantage Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cache

import (
	"sync"
	"time"

	"github.com/VictoriaMetrics/fastcache"
	"github.com/bytedance/sonic"
)

// LocalCacheConfig holds fastcache configuration.
type LocalCacheConfig struct {
	MaxBytes int // Maximum bytes for fastcache, default 16MB
}

// LocalCache is an in-process cache built on VictoriaMetrics fastcache.
// It fronts read-mostly lookups (plan catalog, company notify settings)
// so the hot request path does not hit MySQL for them.
type LocalCache struct {
	cache *fastcache.Cache
	ttls  sync.Map // map[string]time.Time
}

// NewLocalCache creates a new LocalCache instance.
func NewLocalCache(conf LocalCacheConfig) *LocalCache {
	maxBytes := conf.MaxBytes
	if maxBytes <= 0 {
		maxBytes = 16 * 1024 * 1024
	}
	return &LocalCache{
		cache: fastcache.New(maxBytes),
	}
}

// Get unmarshals the cached value for key into out.
// Returns false on miss or expiry.
func (lc *LocalCache) Get(key string, out any) bool {
	if exp, ok := lc.ttls.Load(key); ok {
		if time.Now().After(exp.(time.Time)) {
			lc.Del(key)
			return false
		}
	}
	value := lc.cache.Get(nil, []byte(key))
	if value == nil {
		return false
	}
	if err := sonic.Unmarshal(value, out); err != nil {
		return false
	}
	return true
}

// Set stores value under key with an optional TTL (0 means no expiry).
func (lc *LocalCache) Set(key string, value any, ttl time.Duration) error {
	data, err := sonic.Marshal(value)
	if err != nil {
		return err
	}
	lc.cache.Set([]byte(key), data)
	if ttl > 0 {
		lc.ttls.Store(key, time.Now().Add(ttl))
	} else {
		lc.ttls.Delete(key)
	}
	return nil
}

// Del removes the key from the cache.
func (lc *LocalCache) Del(key string) {
	lc.cache.Del([]byte(key))
	lc.ttls.Delete(key)
}

// Reset clears the whole cache.
func (lc *LocalCache) Reset() {
	lc.cache.Reset()
	lc.ttls.Range(func(k, _ any) bool {
		lc.ttls.Delete(k)
		return true
	})
}
