// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"errors"
	"testing"
)

func TestCommands(t *testing.T) {
	c := New()
	called := ""
	if err := c.Add("TexLoad", func(a Arguments) error {
		called = a.Argv(1).String()
		return nil
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := c.Add("texload", nil); err == nil {
		t.Error("Add accepted a duplicate name")
	}
	if !c.Exists("TEXLOAD") {
		t.Error("Exists is not case insensitive")
	}
	ok, err := c.Execute(Parse("texload a.png"))
	if !ok || err != nil {
		t.Fatalf("Execute=%v,%v", ok, err)
	}
	if called != "a.png" {
		t.Errorf("command got %q, want a.png", called)
	}
	if ok, _ := c.Execute(Parse("nope")); ok {
		t.Error("unknown command reported as executed")
	}
	if ok, _ := c.Execute(Parse("")); ok {
		t.Error("empty line reported as executed")
	}
}

func TestCommandError(t *testing.T) {
	c := New()
	want := errors.New("boom")
	Must(c.Add("fail", func(Arguments) error { return want }))
	ok, err := c.Execute(Parse("fail"))
	if ok || err != want {
		t.Errorf("Execute=%v,%v want false,%v", ok, err, want)
	}
	if l := c.List(); len(l) != 1 || l[0] != "fail" {
		t.Errorf("List()=%v", l)
	}
}
