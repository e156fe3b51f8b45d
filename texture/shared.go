// SPDX-License-Identifier: GPL-2.0-or-later

package texture

import (
	"sync"
	"sync/atomic"
)

var (
	sharedOnce sync.Once
	shared     atomic.Pointer[Cache]

	// SharedInit builds the cache returned by Shared. Set it before the
	// first call to Shared. If it is nil, or returns nil, Shared falls back
	// to a cache without assets on a NullDevice.
	SharedInit func() *Cache
)

// Shared returns the process wide cache, building it on first use. Hosts
// that run more than one engine should hold their own Cache instead.
func Shared() *Cache {
	sharedOnce.Do(func() {
		var c *Cache
		if SharedInit != nil {
			c = SharedInit()
		}
		if c == nil {
			c = NewCache(nil, nil, nil)
		}
		shared.Store(c)
	})
	return shared.Load()
}

// PurgeShared releases the GPU objects of the shared cache if it was built.
func PurgeShared() {
	if c := shared.Load(); c != nil {
		c.PurgeAll()
	}
}
