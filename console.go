// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"bufio"
	"io"
	"log"
	"os"

	"gotexcache/alias"
	"gotexcache/cbuf"
	"gotexcache/cmd"
	"gotexcache/commandline"
	"gotexcache/conlog"
	"gotexcache/cvar"
	"gotexcache/history"
	"gotexcache/texture"
)

type console struct {
	assets texture.AssetSource
	// run executes f on the thread owning the cache device.
	run   func(f func())
	cb    cbuf.CommandBuffer
	local *cmd.Commands
	hist  history.History
}

func newConsole(assets texture.AssetSource, run func(func())) *console {
	c := &console{
		assets: assets,
		run:    run,
		local:  cmd.New(),
	}
	al := alias.New()
	cmd.Must(al.Register(c.local))
	cmd.Must(c.local.Add("exec", c.exec))
	cmd.Must(c.local.Add("history", c.printHistory))
	cmd.Must(c.local.Add("wait", func(cmd.Arguments) error {
		c.cb.Wait()
		return nil
	}))
	c.cb.SetCommandExecutors([]cbuf.Efunc{
		cbuf.Commands(c.local),
		func(_ *cbuf.CommandBuffer, a cmd.Arguments) (bool, error) {
			return cmd.Execute(a)
		},
		al.Execute(),
		func(_ *cbuf.CommandBuffer, a cmd.Arguments) (bool, error) {
			return cvar.Execute(a)
		},
	})
	return c
}

func (c *console) readInput(r io.Reader) {
	s := bufio.NewScanner(r)
	for s.Scan() {
		c.hist.Add(s.Text())
		c.execText(s.Text() + "\n")
	}
}

// execText queues text and runs it to the next wait on the device thread.
func (c *console) execText(text string) {
	c.cb.AddText(text)
	c.run(c.cb.Execute)
}

// frame continues commands delayed by wait.
func (c *console) frame() {
	if c.cb.Pending() {
		c.cb.Execute()
	}
}

// execScript runs a console script from the asset search path or, failing
// that, the OS file system.
func (c *console) execScript(name string) {
	if name == "" {
		return
	}
	text, ok := c.readScript(name)
	if !ok {
		return
	}
	c.execText(text)
}

func (c *console) readScript(name string) (string, bool) {
	b, err := c.assets.ReadFile(name)
	if err != nil {
		b, err = os.ReadFile(name)
	}
	if err != nil {
		conlog.Printf("couldn't exec %s\n", name)
		return "", false
	}
	return string(b), true
}

func (c *console) exec(a cmd.Arguments) error {
	args := a.Args()
	if len(args) != 2 {
		conlog.Printf("exec <filename> : execute a script file\n")
		return nil
	}
	if text, ok := c.readScript(args[1].String()); ok {
		conlog.Printf("execing %s\n", args[1].String())
		c.cb.InsertText(text)
	}
	return nil
}

func (c *console) printHistory(_ cmd.Arguments) error {
	for i, l := range c.hist.Lines() {
		conlog.SafePrintf("%3d %s\n", i, l)
	}
	return nil
}

func (c *console) loadHistory() {
	if err := c.hist.Load(commandline.BaseDirectory()); err != nil {
		log.Printf("%v", err)
	}
}

func (c *console) saveHistory() {
	if err := c.hist.Save(commandline.BaseDirectory()); err != nil {
		log.Printf("%v", err)
	}
}
