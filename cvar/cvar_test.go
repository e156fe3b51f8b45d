// SPDX-License-Identifier: GPL-2.0-or-later

package cvar

import (
	"testing"

	"gotexcache/cmd"
)

func TestRegister(t *testing.T) {
	cv, err := Register("test_register", "2.5", ARCHIVE)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if cv.Value() != 2.5 || cv.String() != "2.5" {
		t.Errorf("got %v/%q, want 2.5", cv.Value(), cv.String())
	}
	if !cv.Archive() {
		t.Error("ARCHIVE flag lost")
	}
	if _, err := Register("TEST_REGISTER", "1", NONE); err == nil {
		t.Error("duplicate register accepted")
	}
	if got, ok := Get("Test_Register"); !ok || got != cv {
		t.Error("Get is not case insensitive")
	}
}

func TestCallbackAndReset(t *testing.T) {
	cv := MustRegister("test_callback", "0", NONE)
	calls := 0
	cv.SetCallback(func(c *Cvar) {
		calls++
	})
	cv.SetValue(3)
	if cv.String() != "3" {
		t.Errorf("SetValue(3) stored %q", cv.String())
	}
	cv.Toggle()
	if cv.String() != "1" {
		t.Errorf("Toggle of 3 = %q, want 1", cv.String())
	}
	cv.Reset()
	if cv.Bool() {
		t.Error("Reset did not restore 0")
	}
	if calls != 3 {
		t.Errorf("callback ran %d times, want 3", calls)
	}
}

func TestROM(t *testing.T) {
	cv := MustRegister("test_rom", "7", ROM)
	cv.SetByString("8")
	if cv.Value() != 7 {
		t.Errorf("ROM cvar changed to %v", cv.Value())
	}
}

func TestExecute(t *testing.T) {
	cv := MustRegister("test_execute", "1", NONE)
	if ok, err := Execute(cmd.Parse("test_execute 64")); !ok || err != nil {
		t.Fatalf("Execute=%v,%v", ok, err)
	}
	if cv.Value() != 64 {
		t.Errorf("value=%v, want 64", cv.Value())
	}
	if ok, _ := Execute(cmd.Parse("no_such_cvar 1")); ok {
		t.Error("unknown cvar handled")
	}
	if ok, _ := cmd.Execute(cmd.Parse("set test_execute 32")); !ok {
		t.Fatal("set command not registered")
	}
	if cv.Value() != 32 {
		t.Errorf("set wrote %v, want 32", cv.Value())
	}
}
