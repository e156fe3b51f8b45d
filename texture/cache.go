// SPDX-License-Identifier: GPL-2.0-or-later

package texture

import (
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"gotexcache/conlog"
	qimage "gotexcache/image"
)

// AssetSource provides the raw bytes of image files.
type AssetSource interface {
	ReadFile(name string) ([]byte, error)
}

// Device is the GPU context textures are uploaded to.
type Device interface {
	Upload(img *image.NRGBA, flags TexPref) (TexID, error)
	Delete(id TexID)
}

// Scheduler runs work on the render thread.
type Scheduler interface {
	CallNonBlock(f func())
}

// Cache hands out one Texture per key and remembers the loaders to replay
// when the GPU context has to be rebuilt.
//
// PurgeAll releases GPU objects but keeps every entry mapped, so lookups
// after a purge return the old, now empty, handles until ReplayAll uploads
// them again.
type Cache struct {
	mu       sync.RWMutex
	textures map[string]*Texture

	assets AssetSource
	device Device
	sched  Scheduler
	replay replayList
}

// NewCache returns an empty cache. A nil assets finds nothing, a nil device
// is replaced by a NullDevice and a nil sched runs replays inline.
func NewCache(assets AssetSource, device Device, sched Scheduler) *Cache {
	if assets == nil {
		assets = noAssets{}
	}
	if device == nil {
		device = &NullDevice{}
	}
	if sched == nil {
		sched = inline{}
	}
	return &Cache{
		textures: make(map[string]*Texture, 10),
		assets:   assets,
		device:   device,
		sched:    sched,
	}
}

// Image returns the texture for the image file at path, loading it on the
// first request. Load failures are logged and leave the texture without GPU
// data. An empty path yields nil.
func (c *Cache) Image(path string) *Texture {
	t, _ := c.LoadImage(path)
	return t
}

// LoadImage is Image for callers that want to see the load error. A cached
// texture is returned together with the error of its last load.
func (c *Cache) LoadImage(path string) (*Texture, error) {
	if path == "" {
		conlog.Printf("TextureCache: path must not be empty\n")
		return nil, errors.Wrap(ErrInvalidArgument, "empty path")
	}
	if t, ok := c.Lookup(path); ok {
		return t, t.Err()
	}

	c.mu.Lock()
	if t, ok := c.textures[path]; ok {
		c.mu.Unlock()
		return t, t.Err()
	}
	t := NewTexture(path, defaultFlags)
	l := c.fileLoader(t, path)
	// Hold the texture until its first load finished so concurrent hits
	// do not observe a half loaded texture.
	t.mu.Lock()
	c.textures[path] = t
	c.mu.Unlock()

	err := c.firstLoad(t, l)
	return t, err
}

func (c *Cache) fileLoader(t *Texture, path string) *Loader {
	return NewLoader(t, c.device, func(t *Texture) (*image.NRGBA, error) {
		data, err := c.assets.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, errors.Wrap(ErrAssetNotFound, path)
			}
			return nil, errors.Wrapf(ErrAssetNotFound, "%s: %v", path, err)
		}
		img, err := qimage.Decode(path, data)
		if err != nil {
			return nil, errors.Wrapf(ErrDecode, "%v", err)
		}
		return img, nil
	})
}

// firstLoad expects t.mu to be held and releases it.
func (c *Cache) firstLoad(t *Texture, l *Loader) error {
	t.loader = l
	err := l.loadLocked()
	t.mu.Unlock()
	c.AddLoader(l)
	return err
}

// Bitmap returns a texture for an already decoded image. If key is not
// empty and already cached the cached texture is returned and img is
// ignored. Otherwise img is copied, so the caller may modify it afterwards,
// and the texture is cached under key unless key is empty. If img cannot be
// copied nothing is created and nil is returned.
func (c *Cache) Bitmap(img image.Image, key string) *Texture {
	t, _ := c.LoadBitmap(img, key)
	return t
}

// LoadBitmap is Bitmap for callers that want to see the error.
func (c *Cache) LoadBitmap(img image.Image, key string) (*Texture, error) {
	if key != "" {
		if t, ok := c.Lookup(key); ok {
			return t, t.Err()
		}
	}
	if img == nil {
		conlog.Printf("TextureCache: image must not be nil\n")
		return nil, errors.Wrap(ErrInvalidArgument, "nil image")
	}
	cp, err := qimage.Clone(img)
	if err != nil {
		conlog.Printf("Couldn't add Bitmap in TextureCache: %v\n", err)
		return nil, errors.Wrapf(ErrAllocation, "%v", err)
	}

	t := NewTexture(key, defaultFlags)
	l := NewLoader(t, c.device, func(*Texture) (*image.NRGBA, error) {
		// every upload gets its own copy, Pixels hands the last one out
		img, err := qimage.Clone(cp)
		if err != nil {
			return nil, errors.Wrapf(ErrAllocation, "%v", err)
		}
		return img, nil
	})
	if key != "" {
		c.mu.Lock()
		if o, ok := c.textures[key]; ok {
			// lost the race against another caller with the same key
			c.mu.Unlock()
			return o, o.Err()
		}
		t.mu.Lock()
		c.textures[key] = t
		c.mu.Unlock()
	} else {
		t.mu.Lock()
	}
	err = c.firstLoad(t, l)
	return t, err
}

// Lookup returns the texture cached under key without loading anything.
func (c *Cache) Lookup(key string) (*Texture, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.textures[key]
	return t, ok
}

// Len is the number of cached keys.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.textures)
}

// Keys returns the sorted keys of all cached textures.
func (c *Cache) Keys() []string {
	c.mu.RLock()
	keys := make([]string, 0, len(c.textures))
	for k := range c.textures {
		keys = append(keys, k)
	}
	c.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// PurgeAll releases the GPU object of every cached texture. The entries
// stay in the cache.
func (c *Cache) PurgeAll() {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, t := range c.textures {
		t.Release(c.device)
	}
}

// RemoveUnused would drop textures nobody else references. Those references
// are not tracked, so it does nothing.
func (c *Cache) RemoveUnused() {
}

// Remove drops every key that maps to t. The GPU object is not released.
func (c *Cache) Remove(t *Texture) {
	if t == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range c.textures {
		if v == t {
			delete(c.textures, k)
		}
	}
}

// RemoveKey drops the texture cached under key. The GPU object is not
// released.
func (c *Cache) RemoveKey(key string) {
	if key == "" {
		return
	}
	c.mu.Lock()
	delete(c.textures, key)
	c.mu.Unlock()
}

// Add caches a texture built elsewhere under the string form of its ID and
// returns that key. An entry with the same key is replaced.
func (c *Cache) Add(t *Texture) string {
	if t == nil {
		return ""
	}
	key := t.ID().String()
	c.mu.Lock()
	c.textures[key] = t
	c.mu.Unlock()
	return key
}

// AddLoader appends l to the replay list. Safe for concurrent use.
func (c *Cache) AddLoader(l *Loader) {
	if l == nil {
		return
	}
	c.replay.add(l)
}

// RemoveLoader drops the first occurrence of l from the replay list.
func (c *Cache) RemoveLoader(l *Loader) {
	if l == nil {
		return
	}
	c.replay.remove(l)
}

// Loaders is the number of loaders on the replay list.
func (c *Cache) Loaders() int {
	return c.replay.len()
}

// ReplayAll schedules one render thread task that runs every loader on the
// replay list in order. The list is not emptied. Loaders added while the
// task is pending are not part of this run.
func (c *Cache) ReplayAll() {
	loaders := c.replay.snapshot()
	if len(loaders) == 0 {
		return
	}
	c.sched.CallNonBlock(func() {
		for _, l := range loaders {
			l.Load()
		}
	})
}

// Usage reports the number of cached textures, the texels they hold on the
// GPU and the approximate size of those in megabytes.
func (c *Cache) Usage() (int, int, float32) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	texels := 0
	for _, t := range c.textures {
		texels += t.Texels()
	}
	mb := float32(texels) * (24 / 8) / (1000 * 1000)
	return len(c.textures), texels, mb
}

// Dump writes the pixels of every loaded texture into dir as lossless WebP.
// It keeps going after a failed write and returns the first error.
func (c *Cache) Dump(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, k := range c.Keys() {
		t, ok := c.Lookup(k)
		if !ok {
			continue
		}
		img := t.Pixels()
		if img == nil {
			continue
		}
		name := filepath.Join(dir, dumpName(k)+".webp")
		g.Go(func() error {
			if err := qimage.Write(name, img); err != nil {
				conlog.Printf("texdump: %v\n", err)
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

var dumpReplacer = strings.NewReplacer("/", "_", "\\", "_", ":", "_", "..", "_")

func dumpName(key string) string {
	return dumpReplacer.Replace(key)
}

type noAssets struct{}

func (noAssets) ReadFile(name string) ([]byte, error) {
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

type inline struct{}

func (inline) CallNonBlock(f func()) {
	f()
}

// NullDevice hands out increasing ids and keeps no pixels. It serves
// headless runs.
type NullDevice struct {
	next atomic.Uint32
}

func (d *NullDevice) Upload(img *image.NRGBA, _ TexPref) (TexID, error) {
	return TexID(d.next.Add(1)), nil
}

func (d *NullDevice) Delete(TexID) {}
