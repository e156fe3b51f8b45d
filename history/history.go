// SPDX-License-Identifier: GPL-2.0-or-later

// Package history keeps the console input lines across runs.
package history

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

const (
	// add a max size to prevent the file from growing indefinitely
	maxHistory = 32

	historyFilename = "history.txt"

	// message History { repeated string entries = 1; }
	entriesField protowire.Number = 1
)

type History struct {
	mu  sync.Mutex
	txt []string
}

func (h *History) Add(s string) {
	if s == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if n := len(h.txt); n > 0 && h.txt[n-1] == s {
		return
	}
	h.txt = append(h.txt, s)
}

// Lines returns a copy of the stored lines, oldest first.
func (h *History) Lines() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.txt...)
}

// Load reads the history file in dir. A missing file is an empty history.
func (h *History) Load(dir string) error {
	in, err := os.ReadFile(filepath.Join(dir, historyFilename))
	if err != nil {
		// assume no history file
		return nil
	}
	txt, err := unmarshal(in)
	if err != nil {
		return errors.Wrap(err, "failed to decode history")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.txt = txt
	return nil
}

// Save writes the newest lines to the history file in dir.
func (h *History) Save(dir string) error {
	h.mu.Lock()
	txt := h.txt
	if len(txt) > maxHistory {
		txt = txt[len(txt)-maxHistory:]
	}
	out := marshal(txt)
	h.mu.Unlock()
	if err := os.WriteFile(filepath.Join(dir, historyFilename), out, 0660); err != nil {
		return errors.Wrap(err, "failed to write history file")
	}
	return nil
}

func marshal(txt []string) []byte {
	var b []byte
	for _, s := range txt {
		b = protowire.AppendTag(b, entriesField, protowire.BytesType)
		b = protowire.AppendString(b, s)
	}
	return b
}

func unmarshal(b []byte) ([]string, error) {
	var txt []string
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		if num == entriesField && typ == protowire.BytesType {
			s, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			txt = append(txt, s)
			b = b[n:]
			continue
		}
		// unknown fields are skipped
		n = protowire.ConsumeFieldValue(num, typ, b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
	}
	return txt, nil
}
