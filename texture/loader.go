// SPDX-License-Identifier: GPL-2.0-or-later

package texture

import (
	"image"
	"sync"

	"github.com/pkg/errors"

	"gotexcache/conlog"
	"gotexcache/cvars"
	qimage "gotexcache/image"
)

// LoadFunc produces the pixels of a texture. It may be called many times.
type LoadFunc func(t *Texture) (*image.NRGBA, error)

// Loader decodes and uploads one texture. Running it again, for example
// after the GL context was lost, uploads the texture again.
type Loader struct {
	tex  *Texture
	dev  Device
	load LoadFunc
}

func NewLoader(t *Texture, dev Device, f LoadFunc) *Loader {
	return &Loader{tex: t, dev: dev, load: f}
}

func (l *Loader) Texture() *Texture {
	return l.tex
}

// Load runs the loader. Failures are logged and recorded on the texture.
func (l *Loader) Load() error {
	l.tex.mu.Lock()
	defer l.tex.mu.Unlock()
	return l.loadLocked()
}

func (l *Loader) loadLocked() error {
	t := l.tex
	t.err = l.run()
	if t.err != nil {
		conlog.Printf("Couldn't load texture %s: %v\n", t.name, t.err)
	}
	return t.err
}

func (l *Loader) run() error {
	img, err := l.load(l.tex)
	if err != nil {
		return err
	}
	img = fit(l.tex, img)
	if err := l.tex.uploadLocked(l.dev, img); err != nil {
		return errors.Wrapf(ErrUpload, "%s: %v", l.tex.name, err)
	}
	return nil
}

func fit(t *Texture, img *image.NRGBA) *image.NRGBA {
	var picmip uint
	if !t.Flags(TexPrefNoPicMip) {
		if pv := cvars.GlPicMip.Value(); pv > 0 {
			picmip = uint(pv)
		}
	}
	return qimage.Fit(img, int(cvars.GlMaxSize.Value()), picmip)
}

// replayList holds the loaders to run again when the GPU context comes
// back. Insertion order is replay order.
type replayList struct {
	mu      sync.Mutex
	loaders []*Loader
}

func (r *replayList) add(l *Loader) {
	r.mu.Lock()
	r.loaders = append(r.loaders, l)
	r.mu.Unlock()
}

// remove drops the first occurrence of l.
func (r *replayList) remove(l *Loader) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, o := range r.loaders {
		if o == l {
			r.loaders = append(r.loaders[:i:i], r.loaders[i+1:]...)
			return
		}
	}
}

func (r *replayList) snapshot() []*Loader {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := make([]*Loader, len(r.loaders))
	copy(s, r.loaders)
	return s
}

func (r *replayList) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.loaders)
}
