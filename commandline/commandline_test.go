// SPDX-License-Identifier: GPL-2.0-or-later

package commandline

import (
	"flag"
	"testing"
)

func TestBoolInt(t *testing.T) {
	var flags flag.FlagSet
	flags.Init("test", flag.ContinueOnError)
	a := boolInt{false, 4}
	b := boolInt{false, 5}
	c := boolInt{true, 6}
	d := boolInt{false, 7}
	e := boolInt{false, 8}
	f := boolInt{true, 9}
	flags.Var(&a, "a", "usage")
	flags.Var(&b, "b", "usage")
	flags.Var(&c, "c", "usage")
	flags.Var(&d, "d", "usage")
	flags.Var(&e, "e", "usage")
	flags.Var(&f, "f", "usage")
	if err := flags.Parse([]string{"-a", "-b=3", "-e=true", "-f=false"}); err != nil {
		t.Error(err)
	}
	for _, tc := range []struct {
		name    string
		b       boolInt
		wantSet bool
		wantNum int
	}{
		{"a", a, true, 4},
		{"b", b, true, 3},
		{"c", c, true, 6},
		{"d", d, false, 7},
		{"e", e, true, 8},
		{"f", f, false, 9},
	} {
		if tc.b.set != tc.wantSet {
			t.Errorf("%s.set = %v", tc.name, tc.b.set)
		}
		if tc.b.num != tc.wantNum {
			t.Errorf("%s.num = %v", tc.name, tc.b.num)
		}
	}
}

func TestDefaults(t *testing.T) {
	if LoseContext() {
		t.Error("losecontext set by default")
	}
	if LoseContextInterval() != 10 {
		t.Errorf("LoseContextInterval() = %d, want 10", LoseContextInterval())
	}
	if BaseDirectory() != "." {
		t.Errorf("BaseDirectory() = %q", BaseDirectory())
	}
}
