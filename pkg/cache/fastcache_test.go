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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type cachedPlan struct {
	PlanId string `json:"planId"`
	Name   string `json:"name"`
}

func TestLocalCacheSetGet(t *testing.T) {
	lc := NewLocalCache(LocalCacheConfig{})

	in := cachedPlan{PlanId: "plan-1", Name: "starter"}
	err := lc.Set("plan:plan-1", in, 0)
	assert.NoError(t, err)

	var out cachedPlan
	ok := lc.Get("plan:plan-1", &out)
	assert.True(t, ok)
	assert.Equal(t, in, out)
}

func TestLocalCacheMiss(t *testing.T) {
	lc := NewLocalCache(LocalCacheConfig{})

	var out cachedPlan
	assert.False(t, lc.Get("missing", &out))
}

func TestLocalCacheExpiry(t *testing.T) {
	lc := NewLocalCache(LocalCacheConfig{})

	assert.NoError(t, lc.Set("k", "v", 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	var out string
	assert.False(t, lc.Get("k", &out))
}

func TestLocalCacheDel(t *testing.T) {
	lc := NewLocalCache(LocalCacheConfig{})

	assert.NoError(t, lc.Set("k", "v", 0))
	lc.Del("k")

	var out string
	assert.False(t, lc.Get("k", &out))
}
