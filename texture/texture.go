// SPDX-License-Identifier: GPL-2.0-or-later

package texture

import (
	"image"
	"sync"

	"github.com/chewxy/math32"
	"github.com/google/uuid"
)

type TexPref uint32

const (
	TexPrefMipMap TexPref = 1 << iota
	TexPrefLinear
	TexPrefNearest
	TexPrefAlpha
	TexPrefPersist
	TexPrefNoPicMip
	TexPrefNone TexPref = 0

	defaultFlags = TexPrefMipMap | TexPrefAlpha
)

// TexID is the GPU side name of an uploaded texture.
type TexID uint32

// Texture is the handle handed out by the Cache. The pointer stays the same
// for the lifetime of the cache entry while the GPU object behind it may be
// uploaded, released and uploaded again.
type Texture struct {
	id    uuid.UUID
	name  string
	flags TexPref

	mu       sync.Mutex
	glID     TexID
	uploaded bool
	width    int32
	height   int32
	data     *image.NRGBA // pixels of the last successful load
	loader   *Loader
	err      error
}

// NewTexture returns an empty texture that is not known to any cache.
func NewTexture(name string, flags TexPref) *Texture {
	t := &Texture{
		id:    uuid.Must(uuid.NewV7()),
		name:  name,
		flags: flags,
	}
	if t.name == "" {
		t.name = t.id.String()
	}
	return t
}

func (t *Texture) ID() uuid.UUID {
	return t.id
}

func (t *Texture) Name() string {
	return t.name
}

func (t *Texture) Flags(f TexPref) bool {
	return t.flags&f != 0
}

func (t *Texture) Size() (int32, int32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.width, t.height
}

// GLID returns the GPU name and whether it currently refers to live data.
func (t *Texture) GLID() (TexID, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.glID, t.uploaded
}

func (t *Texture) Uploaded() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.uploaded
}

// Err reports the outcome of the last load, nil if it succeeded or no load
// ran yet.
func (t *Texture) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

func (t *Texture) Loader() *Loader {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loader
}

// Pixels returns the pixels of the last successful load or nil.
func (t *Texture) Pixels() *image.NRGBA {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.data
}

// Texels is the number of texels held on the GPU, mip levels included.
func (t *Texture) Texels() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.uploaded {
		return 0
	}
	return texels(t.width, t.height, t.Flags(TexPrefMipMap))
}

func texels(w, h int32, mipmap bool) int {
	if w <= 0 || h <= 0 {
		return 0
	}
	if !mipmap {
		return int(w) * int(h)
	}
	levels := int(math32.Floor(math32.Log2(float32(max(w, h))))) + 1
	n := 0
	for i := 0; i < levels; i++ {
		n += int(max(1, w>>i)) * int(max(1, h>>i))
	}
	return n
}

// Release frees the GPU object. The texture keeps its pixels and loader so
// a later load can upload it again.
func (t *Texture) Release(dev Device) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.releaseLocked(dev)
}

func (t *Texture) releaseLocked(dev Device) {
	if !t.uploaded {
		return
	}
	dev.Delete(t.glID)
	t.uploaded = false
}

func (t *Texture) uploadLocked(dev Device, img *image.NRGBA) error {
	t.releaseLocked(dev)
	id, err := dev.Upload(img, t.flags)
	if err != nil {
		return err
	}
	b := img.Bounds()
	t.glID = id
	t.uploaded = true
	t.width = int32(b.Dx())
	t.height = int32(b.Dy())
	t.data = img
	return nil
}
