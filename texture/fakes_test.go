// SPDX-License-Identifier: GPL-2.0-or-later

package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"sync"
	"testing"

	"github.com/pkg/errors"
)

type fakeAssets struct {
	mu    sync.Mutex
	files map[string][]byte
	reads map[string]int
}

func newFakeAssets() *fakeAssets {
	return &fakeAssets{
		files: make(map[string][]byte),
		reads: make(map[string]int),
	}
}

func (a *fakeAssets) ReadFile(name string) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reads[name]++
	b, ok := a.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return b, nil
}

func (a *fakeAssets) readCount(name string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.reads[name]
}

type fakeDevice struct {
	mu      sync.Mutex
	next    TexID
	live    map[TexID]*image.NRGBA
	deleted []TexID
	uploads int
	fail    bool
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{live: make(map[TexID]*image.NRGBA)}
}

func (d *fakeDevice) Upload(img *image.NRGBA, _ TexPref) (TexID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fail {
		return 0, errors.New("out of video memory")
	}
	d.next++
	d.uploads++
	d.live[d.next] = img
	return d.next, nil
}

func (d *fakeDevice) Delete(id TexID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.live, id)
	d.deleted = append(d.deleted, id)
}

func (d *fakeDevice) uploadCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.uploads
}

func (d *fakeDevice) pixels(id TexID) *image.NRGBA {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.live[id]
}

// queue collects render thread work until run is called.
type queue struct {
	mu    sync.Mutex
	tasks []func()
}

func (q *queue) CallNonBlock(f func()) {
	q.mu.Lock()
	q.tasks = append(q.tasks, f)
	q.mu.Unlock()
}

func (q *queue) run() int {
	q.mu.Lock()
	tasks := q.tasks
	q.tasks = nil
	q.mu.Unlock()
	for _, f := range tasks {
		f()
	}
	return len(tasks)
}

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newTestCache(t *testing.T) (*Cache, *fakeAssets, *fakeDevice, *queue) {
	t.Helper()
	a := newFakeAssets()
	a.files["a.png"] = pngBytes(t, solid(4, 4, color.NRGBA{255, 0, 0, 255}))
	a.files["b.png"] = pngBytes(t, solid(8, 2, color.NRGBA{0, 255, 0, 255}))
	a.files["broken.png"] = []byte("this is no png")
	d := newFakeDevice()
	q := &queue{}
	return NewCache(a, d, q), a, d, q
}
