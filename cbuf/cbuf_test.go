// SPDX-License-Identifier: GPL-2.0-or-later

package cbuf

import (
	"reflect"
	"testing"

	"gotexcache/cmd"
)

func recorder(got *[]string) Efunc {
	return func(cb *CommandBuffer, a cmd.Arguments) (bool, error) {
		if a.Args()[0].String() == "wait" {
			cb.Wait()
			return true, nil
		}
		*got = append(*got, a.Full())
		return true, nil
	}
}

func TestWait(t *testing.T) {
	c := CommandBuffer{}
	var got []string
	c.SetCommandExecutors([]Efunc{recorder(&got)})
	c.AddText("wait\n")
	c.AddText("test\n")
	c.AddText("test\n")
	c.AddText("wait\n")
	c.AddText("test\n")
	c.Execute()
	if len(got) != 0 {
		t.Errorf("runCount=%v, want %v", len(got), 0)
	}
	c.Execute()
	if len(got) != 2 {
		t.Errorf("runCount=%v, want %v", len(got), 2)
	}
	c.Execute()
	if len(got) != 3 {
		t.Errorf("runCount=%v, want %v", len(got), 3)
	}
	if c.Pending() {
		t.Errorf("buffer not empty")
	}
}

func TestSplit(t *testing.T) {
	c := CommandBuffer{}
	var got []string
	c.SetCommandExecutors([]Efunc{recorder(&got)})
	c.AddText(`texload a.png;texload "b;c.png"` + "\nimagelist")
	c.InsertText("texpurge")
	c.Execute()
	want := []string{"texpurge", "texload a.png", `texload "b;c.png"`, "imagelist"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExecutorOrder(t *testing.T) {
	c := CommandBuffer{}
	var first, second []string
	c.SetCommandExecutors([]Efunc{
		func(_ *CommandBuffer, a cmd.Arguments) (bool, error) {
			if a.Args()[0].String() != "mine" {
				return false, nil
			}
			first = append(first, a.Full())
			return true, nil
		},
		recorder(&second),
	})
	c.AddText("mine\nother\n")
	c.Execute()
	if len(first) != 1 || len(second) != 1 || second[0] != "other" {
		t.Errorf("first %q second %q", first, second)
	}
}
