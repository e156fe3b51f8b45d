// SPDX-License-Identifier: GPL-2.0-or-later

// Package filesystem is the asset source. It layers plain directories and
// the pak archives found in them into one read only search path.
package filesystem

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gotexcache/filesystem/vfs"
	"gotexcache/pack"
)

// FS is safe for concurrent use. Rebinding directories while files are open
// keeps those files readable until they are closed.
type FS struct {
	mutex   sync.RWMutex
	baseDir string
	gameDir string
	search  vfs.Stack
	packs   []*pack.Pack
}

type packFileSystem struct {
	p *pack.Pack
}

type closer struct {
	*io.SectionReader
}

func (*closer) Close() error {
	return nil
}

type fileInfo struct {
	name string
	size int64
}

func (f *fileInfo) Name() string       { return f.name }
func (f *fileInfo) Size() int64        { return f.size }
func (f *fileInfo) Mode() fs.FileMode  { return 0o444 }
func (f *fileInfo) ModTime() time.Time { return time.Time{} }
func (f *fileInfo) IsDir() bool        { return false }
func (f *fileInfo) Sys() any           { return nil }

func (p packFileSystem) Open(path string) (io.ReadSeekCloser, error) {
	// inside a pack file there is no 'root'. all files are relative to '.'
	f, err := p.p.Open(strings.TrimPrefix(path, "/"))
	if err != nil {
		return nil, err
	}
	return &closer{f}, nil
}

func (p packFileSystem) Stat(path string) (os.FileInfo, error) {
	path = strings.TrimPrefix(path, "/")
	f, err := p.p.Open(path)
	if err != nil {
		return nil, err
	}
	return &fileInfo{
		name: filepath.Base(path),
		size: f.Size(),
	}, nil
}

func (p packFileSystem) String() string {
	return p.p.String()
}

func New() *FS {
	return &FS{}
}

func (f *FS) GameDir() string {
	f.mutex.RLock()
	defer f.mutex.RUnlock()
	return f.gameDir
}

func (f *FS) BaseDir() string {
	f.mutex.RLock()
	defer f.mutex.RUnlock()
	return f.baseDir
}

func (f *FS) String() string {
	f.mutex.RLock()
	defer f.mutex.RUnlock()
	return f.search.String()
}

// UseBaseDir makes dir/id1 the bottom of the search path.
func (f *FS) UseBaseDir(dir string) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.closePacks()
	f.baseDir = dir
	f.gameDir = filepath.Join(dir, "id1")
	f.search = vfs.Stack{}
	f.useDir(f.gameDir)
}

// UseGameDir layers the mod directory dir above id1.
func (f *FS) UseGameDir(dir string) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.closePacks()
	f.search = vfs.Stack{}
	f.useDir(filepath.Join(f.baseDir, "id1"))
	f.gameDir = filepath.Join(f.baseDir, dir)
	f.useDir(f.gameDir)
}

// useDir puts dir and then its pak0.pak, pak1.pak, ... on top of the
// search path, so higher numbered paks win.
func (f *FS) useDir(dir string) {
	f.search.Push(vfs.OS(dir))
	for i := 0; ; i++ {
		p, err := pack.NewPackReader(filepath.Join(dir, fmt.Sprintf("pak%d.pak", i)))
		if err != nil {
			break
		}
		f.packs = append(f.packs, p)
		f.search.Push(packFileSystem{p})
	}
}

func (f *FS) closePacks() {
	for _, p := range f.packs {
		p.Close()
	}
	f.packs = nil
}

// Close releases all open pak archives.
func (f *FS) Close() error {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.closePacks()
	f.search = nil
	return nil
}

func (f *FS) Stat(name string) (os.FileInfo, error) {
	f.mutex.RLock()
	defer f.mutex.RUnlock()
	return f.search.Stat(name)
}

func (f *FS) Open(name string) (io.ReadSeekCloser, error) {
	f.mutex.RLock()
	defer f.mutex.RUnlock()
	return f.search.Open(name)
}

func (f *FS) ReadFile(name string) ([]byte, error) {
	file, err := f.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

func isSep(c uint8) bool {
	return c == '/' || c == '\\'
}

func Ext(path string) string {
	for i := len(path) - 1; i >= 0 && !isSep(path[i]); i-- {
		if path[i] == '.' {
			return path[i:]
		}
	}
	return ""
}

func StripExt(path string) string {
	for i := len(path) - 1; i >= 0 && !isSep(path[i]); i-- {
		if path[i] == '.' {
			return path[:i]
		}
	}
	return path
}
