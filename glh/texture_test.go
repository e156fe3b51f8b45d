// SPDX-License-Identifier: GPL-2.0-or-later

package glh

import (
	"fmt"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/mainthread/v2"

	"gotexcache/texture"
)

// uploadDevice keeps the GL free upload path out of the way and deletes
// through the real Device.
type uploadDevice struct {
	*Device
	next texture.TexID
}

func (d *uploadDevice) Upload(*image.NRGBA, texture.TexPref) (texture.TexID, error) {
	d.next++
	return d.next, nil
}

func TestPurgeOnRenderThread(t *testing.T) {
	var (
		mu      sync.Mutex
		deleted []uint32
	)
	dev := &uploadDevice{Device: &Device{deleteTexture: func(id uint32) {
		mu.Lock()
		deleted = append(deleted, id)
		mu.Unlock()
	}}}

	const n = 40
	done := make(chan struct{})
	go func() {
		defer close(done)
		mainthread.Run(func() {
			rt := RenderThread{}
			var c *texture.Cache
			rt.Call(func() {
				c = texture.NewCache(nil, dev, rt)
				for i := 0; i < n; i++ {
					c.Bitmap(image.NewNRGBA(image.Rect(0, 0, 2, 2)), "")
					c.Bitmap(image.NewNRGBA(image.Rect(0, 0, 2, 2)), fmt.Sprintf("bitmap%d", i))
				}
			})
			rt.Call(c.PurgeAll)
		})
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("purge on the render thread did not return")
	}
	mu.Lock()
	defer mu.Unlock()
	// the unkeyed bitmaps are not in the cache and are never purged
	if len(deleted) != n {
		t.Errorf("deleted %d textures, want %d", len(deleted), n)
	}
}
