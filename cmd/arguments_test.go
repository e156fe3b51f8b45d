// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import "testing"

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		in     string
		wantF  string
		wantAS string
		wantA  []QArg
	}{
		{
			in:     `texload gfx/conback.tga`,
			wantF:  `texload gfx/conback.tga`,
			wantAS: `gfx/conback.tga`,
			wantA:  []QArg{{"texload"}, {"gfx/conback.tga"}},
		},
		{
			in:     `set gl_max_size "1024"`,
			wantF:  `set gl_max_size "1024"`,
			wantAS: `gl_max_size "1024"`,
			wantA:  []QArg{{"set"}, {"gl_max_size"}, {"1024"}},
		},
		{
			in:     ` texdump  "out dir" `,
			wantF:  `texdump  "out dir"`,
			wantAS: `out dir`,
			wantA:  []QArg{{"texdump"}, {"out dir"}},
		},
		{
			in:     `imagelist // show everything`,
			wantF:  `imagelist // show everything`,
			wantAS: "",
			wantA:  []QArg{{"imagelist"}},
		},
		{
			in:     "",
			wantF:  "",
			wantAS: "",
			wantA:  []QArg{},
		},
	} {
		arg := Parse(tc.in)
		if tc.wantF != arg.Full() {
			t.Errorf("Parse(%q).Full()=%q, want %q", tc.in, arg.Full(), tc.wantF)
		}
		if tc.wantAS != arg.ArgumentString() {
			t.Errorf("Parse(%q).ArgumentString()=%q, want %q", tc.in, arg.ArgumentString(), tc.wantAS)
		}
		as := arg.Args()
		if len(tc.wantA) != len(as) {
			t.Fatalf("Parse(%q).Args() has len(%d), want %d", tc.in, len(as), len(tc.wantA))
		}
		for i := range tc.wantA {
			if tc.wantA[i] != as[i] {
				t.Errorf("Arg[%d]=%q, want %q", i, as[i], tc.wantA[i])
			}
		}
	}
}

func TestQArg(t *testing.T) {
	if v := (QArg{"12"}).Int(); v != 12 {
		t.Errorf("Int()=%d, want 12", v)
	}
	if v := (QArg{"x"}).Int(); v != 0 {
		t.Errorf("Int() of garbage=%d, want 0", v)
	}
	if v := (QArg{"0.5"}).Float32(); v != 0.5 {
		t.Errorf("Float32()=%v, want 0.5", v)
	}
	if !(QArg{"On"}).Bool() {
		t.Error("Bool() of On is false")
	}
}
