// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"flag"
	"log"
	"os"
	"sync"
	"time"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/gopxl/mainthread/v2"

	"gotexcache/cmd"
	"gotexcache/commandline"
	"gotexcache/conlog"
	"gotexcache/cvars"
	"gotexcache/filesystem"
	"gotexcache/glh"
	"gotexcache/palette"
	"gotexcache/texture"
	"gotexcache/window"
)

func main() {
	flag.Parse()
	if commandline.ConsoleDebug() {
		f, err := os.OpenFile("qconsole.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("Couldn't open console log: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	fsys := filesystem.New()
	fsys.UseBaseDir(commandline.BaseDirectory())
	if g := commandline.Game(); g != "" {
		fsys.UseGameDir(g)
	}
	defer fsys.Close()
	log.Printf("search path: %v", fsys)
	if b, err := fsys.ReadFile("gfx/palette.lmp"); err == nil {
		if p, err := palette.Parse(b); err != nil {
			conlog.Printf("%v\n", err)
		} else {
			palette.Set(p)
		}
	}

	if commandline.Headless() {
		runHeadless(fsys)
		return
	}
	mainthread.Run(func() {
		runWindowed(fsys)
	})
}

func newCache(fsys *filesystem.FS, dev texture.Device, sched texture.Scheduler) *texture.Cache {
	c := texture.NewCache(fsys, dev, sched)
	texture.SharedInit = func() *texture.Cache { return c }
	cmd.Must(c.AddCommands(cmd.AddCommand))
	return c
}

func runHeadless(fsys *filesystem.FS) {
	c := newCache(fsys, nil, nil)
	var mu sync.Mutex
	con := newConsole(fsys, func(f func()) {
		mu.Lock()
		defer mu.Unlock()
		f()
	})
	con.loadHistory()
	defer con.saveHistory()
	con.execScript(commandline.Exec())
	done := make(chan struct{})
	go func() {
		con.readInput(os.Stdin)
		close(done)
	}()
	var lost <-chan time.Time
	if commandline.LoseContext() {
		tick := time.NewTicker(time.Duration(commandline.LoseContextInterval()) * time.Second)
		defer tick.Stop()
		lost = tick.C
	}
	frame := time.NewTicker(100 * time.Millisecond)
	defer frame.Stop()
	for {
		select {
		case <-done:
			return
		case <-lost:
			con.run(func() { loseContext(c) })
		case <-frame.C:
			con.run(con.frame)
		}
	}
}

func runWindowed(fsys *filesystem.FS) {
	width, height := int32(cvars.VidWidth.Value()), int32(cvars.VidHeight.Value())
	if w := commandline.Width(); w > 0 {
		width = int32(w)
	}
	if h := commandline.Height(); h > 0 {
		height = int32(h)
	}

	var (
		c    *texture.Cache
		quad *glh.QuadDrawer
		err  error
	)
	rt := glh.RenderThread{}
	rt.Call(func() {
		if err = window.Init("gotexcache", width, height, commandline.Fullscreen()); err != nil {
			return
		}
		dev := glh.NewDevice()
		log.Printf("GL_MAX_TEXTURE_SIZE %d", dev.MaxSize())
		c = newCache(fsys, dev, rt)
		quad, err = glh.NewQuadDrawer()
	})
	defer rt.Call(window.Shutdown)
	if err != nil {
		log.Printf("%+v", err)
		return
	}

	con := newConsole(fsys, rt.Call)
	con.loadHistory()
	defer con.saveHistory()
	con.execScript(commandline.Exec())
	go con.readInput(os.Stdin)

	var lost <-chan time.Time
	if commandline.LoseContext() {
		tick := time.NewTicker(time.Duration(commandline.LoseContextInterval()) * time.Second)
		defer tick.Stop()
		lost = tick.C
	}
	frame := time.NewTicker(time.Second / 60)
	defer frame.Stop()

	for {
		select {
		case <-lost:
			rt.Call(func() { loseContext(c) })
		case <-frame.C:
		}
		quit := false
		rt.Call(func() {
			quit = window.PollQuit()
			con.frame()
			drawFrame(c, quad)
		})
		if quit {
			return
		}
	}
}

// loseContext drops every GPU object and queues the re-upload the way a
// recreated GL context needs it.
func loseContext(c *texture.Cache) {
	conlog.Printf("context lost, reloading %d textures\n", c.Loaders())
	c.PurgeAll()
	c.ReplayAll()
}

func drawFrame(c *texture.Cache, quad *glh.QuadDrawer) {
	gl.ClearColor(0.1, 0.1, 0.1, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	keys := c.Keys()
	for i, k := range keys {
		t, ok := c.Lookup(k)
		if !ok {
			continue
		}
		x, y, w, h := glh.Grid(len(keys), i)
		quad.Draw(t, x, y, w, h)
	}
	window.EndRendering()
}
