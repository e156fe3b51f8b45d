// SPDX-License-Identifier: GPL-2.0-or-later

// Package vfs defines an abstract read only file system and a search path
// made of several of them.
package vfs

import (
	"io"
	"os"
	pathpkg "path"
	"path/filepath"
)

type FileSystem interface {
	Open(name string) (io.ReadSeekCloser, error)
	Stat(path string) (os.FileInfo, error)
	String() string
}

// OS returns a FileSystem rooted at the given directory of the host.
func OS(root string) FileSystem {
	return osFS(root)
}

type osFS string

func (root osFS) resolve(path string) string {
	// clean against "/" so no path escapes the root
	return filepath.Join(string(root), filepath.FromSlash(pathpkg.Clean("/"+path)))
}

func (root osFS) String() string {
	return "os(" + string(root) + ")"
}

func (root osFS) Open(path string) (io.ReadSeekCloser, error) {
	f, err := os.Open(root.resolve(path))
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if fi.IsDir() {
		f.Close()
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return f, nil
}

func (root osFS) Stat(path string) (os.FileInfo, error) {
	return os.Stat(root.resolve(path))
}
