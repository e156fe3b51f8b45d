// SPDX-License-Identifier: GPL-2.0-or-later

package alias

import (
	"fmt"
	"testing"

	"gotexcache/cbuf"
	"gotexcache/cmd"
	"gotexcache/conlog"
)

func TestAliasRegister(t *testing.T) {
	al := New()
	cmds := cmd.New()
	if err := al.Register(cmds); err != nil {
		t.Fatal(err)
	}
	if err := al.Register(cmds); err == nil {
		t.Errorf("second Register succeeded")
	}
}

func TestExecuteAlias(t *testing.T) {
	al := New()
	cmds := cmd.New()
	if err := al.Register(cmds); err != nil {
		t.Fatal(err)
	}
	cb := cbuf.CommandBuffer{}
	worldCount := 0
	p := func(cb *cbuf.CommandBuffer, a cmd.Arguments) (bool, error) {
		if a.Full() != "world" {
			t.Errorf("Print() = %q, want %q", a.Full(), "world")
		} else {
			worldCount++
		}
		return true, nil
	}
	cb.SetCommandExecutors([]cbuf.Efunc{
		cbuf.Commands(cmds), // execute 'alias'
		al.Execute(),        // execute 'hello'
		p,                   // execute 'world'
	})

	cb.AddText("alias hello world\n")
	cb.Execute()
	cb.AddText("hello\n")
	cb.AddText("world\n")
	cb.Execute()
	if worldCount != 2 {
		// for 'hello' -> 'world' and 'world'
		t.Errorf("Executed 'world' %d times, want %d", worldCount, 2)
	}

	cb.AddText("unalias hello\nhello\n")
	cb.Execute()
	if worldCount != 2 {
		t.Errorf("removed alias still expanded")
	}
}

func TestPrintAlias(t *testing.T) {
	var pfout, spfout string
	conlog.SetPrintf(func(s string, a ...any) {
		pfout += fmt.Sprintf(s, a...)
	})
	conlog.SetSafePrintf(func(s string, a ...any) {
		spfout += fmt.Sprintf(s, a...)
	})
	defer conlog.SetPrintf(nil)
	defer conlog.SetSafePrintf(nil)
	al := New()
	cmds := cmd.New()
	if err := al.Register(cmds); err != nil {
		t.Fatal(err)
	}
	cb := cbuf.CommandBuffer{}
	cb.SetCommandExecutors([]cbuf.Efunc{
		cbuf.Commands(cmds),
		al.Execute(),
	})

	cb.AddText("alias hello world\n")
	cb.Execute()
	cb.AddText("alias\n")
	cb.Execute()
	if spfout != "  hello: world\n1 alias command(s)\n" {
		t.Errorf("%q", spfout)
	}
	cb.AddText("alias hello\n")
	cb.Execute()
	if pfout != "  hello: world\n" {
		t.Errorf("%q", pfout)
	}
}
