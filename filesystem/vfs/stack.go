// SPDX-License-Identifier: GPL-2.0-or-later

package vfs

import (
	"io"
	"os"
	pathpkg "path"
	"strings"
)

// Stack is a search path. Earlier file systems shadow later ones.
type Stack []FileSystem

// Push puts fs in front of all file systems already on the stack.
func (s *Stack) Push(fs FileSystem) {
	*s = append(Stack{fs}, *s...)
}

// Append puts fs behind all file systems already on the stack.
func (s *Stack) Append(fs FileSystem) {
	*s = append(*s, fs)
}

func (s Stack) String() string {
	names := make([]string, len(s))
	for i, fs := range s {
		names[i] = fs.String()
	}
	return "[" + strings.Join(names, " ") + "]"
}

func clean(path string) string {
	return pathpkg.Clean("/" + path)
}

func (s Stack) Open(path string) (io.ReadSeekCloser, error) {
	path = clean(path)
	var err error
	for _, fs := range s {
		r, err1 := fs.Open(path)
		if err1 == nil {
			return r, nil
		}
		// IsNotExist errors in overlay FSes can mask real errors in
		// the underlying FS, so ignore them if there is another error.
		if err == nil || os.IsNotExist(err) {
			err = err1
		}
	}
	if err == nil {
		err = &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return nil, err
}

func (s Stack) Stat(path string) (os.FileInfo, error) {
	path = clean(path)
	var err error
	for _, fs := range s {
		fi, err1 := fs.Stat(path)
		if err1 == nil {
			return fi, nil
		}
		if err == nil || os.IsNotExist(err) {
			err = err1
		}
	}
	if err == nil {
		err = &os.PathError{Op: "stat", Path: path, Err: os.ErrNotExist}
	}
	return nil, err
}
