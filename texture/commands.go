// SPDX-License-Identifier: GPL-2.0-or-later

package texture

import (
	"gotexcache/cmd"
	"gotexcache/conlog"
	"gotexcache/cvars"
)

// AddCommands registers the console commands that operate on c.
func (c *Cache) AddCommands(add func(string, cmd.QFunc) error) error {
	for _, e := range []struct {
		name string
		f    cmd.QFunc
	}{
		{"imagelist", c.imageList},
		{"texload", c.texLoad},
		{"texremove", c.texRemove},
		{"texpurge", func(cmd.Arguments) error {
			c.PurgeAll()
			return nil
		}},
		{"texreload", func(cmd.Arguments) error {
			c.ReplayAll()
			return nil
		}},
		{"texdump", c.texDump},
	} {
		if err := add(e.name, e.f); err != nil {
			return err
		}
	}
	return nil
}

func (c *Cache) imageList(_ cmd.Arguments) error {
	for _, k := range c.Keys() {
		t, ok := c.Lookup(k)
		if !ok {
			continue
		}
		w, h := t.Size()
		state := "   "
		if t.Uploaded() {
			state = "gpu"
		} else if t.Err() != nil {
			state = "err"
		}
		conlog.SafePrintf(" %s %4d x %4d %s\n", state, w, h, k)
	}
	n, texels, mb := c.Usage()
	conlog.Printf("%d textures %d pixels %.1f megabytes\n", n, texels, mb)
	return nil
}

func (c *Cache) texLoad(a cmd.Arguments) error {
	args := a.Args()
	if len(args) < 2 {
		conlog.Printf("texload <path> [path...] : load image files into the cache\n")
		return nil
	}
	for _, p := range args[1:] {
		if _, err := c.LoadImage(p.String()); err == nil {
			conlog.Printf("loaded %s\n", p.String())
		}
	}
	return nil
}

func (c *Cache) texRemove(a cmd.Arguments) error {
	args := a.Args()
	if len(args) < 2 {
		conlog.Printf("texremove <key> : forget a cached texture\n")
		return nil
	}
	for _, k := range args[1:] {
		if t, ok := c.Lookup(k.String()); ok {
			t.Release(c.device)
			c.RemoveLoader(t.Loader())
			c.RemoveKey(k.String())
		}
	}
	return nil
}

func (c *Cache) texDump(a cmd.Arguments) error {
	dir := cvars.TexDumpDir.String()
	if len(a.Args()) > 1 {
		dir = a.ArgumentString()
	}
	if err := c.Dump(dir); err != nil {
		return err
	}
	conlog.Printf("dumped %d textures to %s\n", c.Len(), dir)
	return nil
}
