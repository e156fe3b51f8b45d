// SPDX-License-Identifier: GPL-2.0-or-later

// Package cbuf buffers console text and executes it one command at a time.
package cbuf

import (
	"log"
	"sync"

	"gotexcache/cmd"
	"gotexcache/conlog"
)

// Efunc tries to execute a command. It reports false if the command is not
// its own.
type Efunc func(*CommandBuffer, cmd.Arguments) (bool, error)

type CommandBuffer struct {
	mu        sync.Mutex
	buf       string
	wait      bool
	executors []Efunc
}

// SetCommandExecutors sets the executors asked in order for every command.
func (c *CommandBuffer) SetCommandExecutors(e []Efunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.executors = e
}

// Wait stops the current Execute after the running command. The rest of
// the buffer runs on the next call.
func (c *CommandBuffer) Wait() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.wait = true
}

func (c *CommandBuffer) AddText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buf += text
}

// InsertText puts text in front of the pending commands.
func (c *CommandBuffer) InsertText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buf = text + "\n" + c.buf
}

func (c *CommandBuffer) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.buf) != 0
}

func (c *CommandBuffer) Execute() {
	for {
		line, ok := c.next()
		if !ok {
			return
		}
		if err := c.execute(line); err != nil {
			conlog.Printf("%v\n", err)
		}
		c.mu.Lock()
		w := c.wait
		c.wait = false
		c.mu.Unlock()
		if w {
			return
		}
	}
}

// next cuts the first command from the buffer. Commands end at a newline
// or at a ';' outside of quotes.
func (c *CommandBuffer) next() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.buf) == 0 {
		return "", false
	}
	i := 0
	quote := false
LineLoop:
	for ; i < len(c.buf); i++ {
		switch c.buf[i] {
		case '"':
			quote = !quote
		case ';':
			if !quote {
				break LineLoop
			}
		case '\n':
			break LineLoop
		}
	}
	line := c.buf[:i]
	if i < len(c.buf) {
		i++
	}
	c.buf = c.buf[i:]
	return line, true
}

func (c *CommandBuffer) execute(s string) error {
	a := cmd.Parse(s)
	args := a.Args()
	if len(args) == 0 {
		return nil
	}
	c.mu.Lock()
	ex := c.executors
	c.mu.Unlock()
	for _, e := range ex {
		if ok, err := e(c, a); err != nil {
			return err
		} else if ok {
			return nil
		}
	}
	name := args[0].String()
	log.Printf("Unknown command \"%s\"", name)
	conlog.Printf("Unknown command \"%s\"\n", name)
	return nil
}

// Commands returns an executor for the commands registered in cmds.
func Commands(cmds *cmd.Commands) Efunc {
	return func(_ *CommandBuffer, a cmd.Arguments) (bool, error) {
		return cmds.Execute(a)
	}
}
