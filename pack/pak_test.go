// SPDX-License-Identifier: GPL-2.0-or-later

package pack

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestPak(t *testing.T) {
	pakFile := filepath.Join(t.TempDir(), "pak0.pak")
	if err := Create(pakFile, map[string][]byte{
		"gfx/conback.tga": []byte("not really a tga"),
		"doc1.txt":        []byte("this is the first doc\r\n"),
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	p, err := NewPackReader(pakFile)
	if err != nil {
		t.Fatalf("could not open %s: %v", pakFile, err)
	}
	defer p.Close()
	if p.String() != pakFile {
		t.Errorf("pack String error: want %v got %v", pakFile, p.String())
	}
	if got := p.Files(); len(got) != 2 || got[0] != "doc1.txt" || got[1] != "gfx/conback.tga" {
		t.Errorf("Files() = %v", got)
	}
	f1, err := p.Open("doc1.txt")
	if err != nil {
		t.Fatalf("Open(doc1.txt): %v", err)
	}
	b1, err := io.ReadAll(f1)
	if err != nil {
		t.Fatalf("Could not read f1: %v", err)
	}
	if string(b1) != "this is the first doc\r\n" {
		t.Errorf("f1 contents is '%v'", string(b1))
	}
	if _, err := p.Open("missing.txt"); !os.IsNotExist(err) {
		t.Errorf("Open(missing.txt) err = %v, want not exist", err)
	}
}

func TestNotAPak(t *testing.T) {
	name := filepath.Join(t.TempDir(), "bogus.pak")
	if err := os.WriteFile(name, []byte("JUNKJUNKJUNKJUNK"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewPackReader(name); err == nil {
		t.Error("NewPackReader accepted a file without PACK magic")
	}
}
