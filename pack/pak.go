// SPDX-License-Identifier: GPL-2.0-or-later

// Package pack reads and writes id .pak archives.
package pack

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
)

type header struct {
	ID     [4]byte
	Offset int32
	Size   int32
}

type entry struct {
	Name   [56]byte
	Offset int32
	Size   int32
}

const entrySize = 64

var magic = []byte("PACK")

type Pack struct {
	f     *os.File
	files map[string]*qfile
	name  string
}

type qfile struct {
	offset int64
	size   int64
}

// Open returns a reader for the named entry or os.ErrNotExist.
func (p *Pack) Open(name string) (*io.SectionReader, error) {
	q, ok := p.files[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NewSectionReader(p.f, q.offset, q.size), nil
}

// Files returns the sorted entry names.
func (p *Pack) Files() []string {
	r := make([]string, 0, len(p.files))
	for n := range p.files {
		r = append(r, n)
	}
	sort.Strings(r)
	return r
}

func (p *Pack) String() string {
	return p.name
}

func (p *Pack) Close() error {
	return p.f.Close()
}

func (p *Pack) init() error {
	var h header
	if err := binary.Read(p.f, binary.LittleEndian, &h); err != nil {
		return errors.Wrap(err, "read header")
	}
	if !bytes.Equal(magic, h.ID[:]) {
		return errors.New("not a pack")
	}
	if h.Offset < 0 || h.Size < 0 || h.Size%entrySize != 0 {
		return errors.Errorf("bad directory %d/%d", h.Offset, h.Size)
	}
	if _, err := p.f.Seek(int64(h.Offset), io.SeekStart); err != nil {
		return errors.Wrap(err, "seek directory")
	}
	filenum := h.Size / entrySize
	p.files = make(map[string]*qfile, filenum)
	for i := int32(0); i < filenum; i++ {
		var e entry
		if err := binary.Read(p.f, binary.LittleEndian, &e); err != nil {
			return errors.Wrap(err, "read directory")
		}
		n := bytes.IndexByte(e.Name[:], 0)
		if n < 0 {
			n = len(e.Name)
		}
		name := string(e.Name[:n])
		if p.files[name] != nil {
			return errors.Errorf("files in pack are not unique: %s", name)
		}
		p.files[name] = &qfile{
			offset: int64(e.Offset),
			size:   int64(e.Size),
		}
	}
	return nil
}

func NewPackReader(name string) (*Pack, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	p := &Pack{f: f, name: name}
	if err := p.init(); err != nil {
		p.Close()
		return nil, errors.Wrap(err, name)
	}
	return p, nil
}

// Create writes files into a new archive at name. Entries are stored in
// name order.
func Create(name string, files map[string][]byte) error {
	names := make([]string, 0, len(files))
	for n := range files {
		if len(n) >= len(entry{}.Name) {
			return errors.Errorf("pack entry name too long: %s", n)
		}
		names = append(names, n)
	}
	sort.Strings(names)

	var data bytes.Buffer
	dir := make([]entry, 0, len(names))
	offset := int32(binary.Size(header{}))
	for _, n := range names {
		var e entry
		copy(e.Name[:], n)
		e.Offset = offset + int32(data.Len())
		e.Size = int32(len(files[n]))
		data.Write(files[n])
		dir = append(dir, e)
	}

	var h header
	copy(h.ID[:], magic)
	h.Offset = offset + int32(data.Len())
	h.Size = int32(len(dir) * entrySize)

	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := binary.Write(f, binary.LittleEndian, &h); err != nil {
		return err
	}
	if _, err := f.Write(data.Bytes()); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, dir); err != nil {
		return err
	}
	return f.Close()
}
