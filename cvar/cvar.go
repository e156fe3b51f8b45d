// SPDX-License-Identifier: GPL-2.0-or-later

package cvar

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gotexcache/cmd"
	"gotexcache/conlog"
)

var (
	mu         sync.RWMutex
	cvarByName = make(map[string]*Cvar)
)

type flag uint64

const (
	// cvar flags bitfield
	NONE    flag = 0
	ARCHIVE flag = 1
	NOTIFY  flag = 1 << 1
	ROM     flag = 1 << 6
)

type CallbackFunc func(cv *Cvar)

// Cvar is a named console variable. The string value is the truth, the
// float value is derived from it. Values may be read from any goroutine.
type Cvar struct {
	mu       sync.RWMutex
	archive  bool
	notify   bool
	rom      bool
	user     bool
	callback CallbackFunc
	name     string

	stringValue  string
	value        float32
	defaultValue string
}

// All returns every registered cvar sorted by name.
func All() []*Cvar {
	mu.RLock()
	defer mu.RUnlock()
	r := make([]*Cvar, 0, len(cvarByName))
	for _, cv := range cvarByName {
		r = append(r, cv)
	}
	sort.Slice(r, func(i, j int) bool { return r[i].name < r[j].name })
	return r
}

func (cv *Cvar) Archive() bool {
	return cv.archive
}

func (cv *Cvar) Notify() bool {
	return cv.notify
}

func (cv *Cvar) UserDefined() bool {
	return cv.user
}

func (cv *Cvar) SetCallback(cb CallbackFunc) {
	cv.mu.Lock()
	cv.callback = cb
	cv.mu.Unlock()
}

func (cv *Cvar) SetByString(s string) {
	if cv.rom {
		return
	}
	cv.set(s)
}

func (cv *Cvar) set(s string) {
	pf, _ := strconv.ParseFloat(strings.TrimSpace(s), 32)
	cv.mu.Lock()
	cv.stringValue = s
	cv.value = float32(pf)
	cb := cv.callback
	cv.mu.Unlock()
	if cb != nil {
		cb(cv)
	}
	if cv.notify {
		conlog.Printf("\"%s\" changed to \"%s\"\n", cv.name, s)
	}
}

func (cv *Cvar) Reset() {
	cv.SetByString(cv.defaultValue)
}

func (cv *Cvar) String() string {
	cv.mu.RLock()
	defer cv.mu.RUnlock()
	return cv.stringValue
}

func (cv *Cvar) Name() string {
	return cv.name
}

func (cv *Cvar) Value() float32 {
	cv.mu.RLock()
	defer cv.mu.RUnlock()
	return cv.value
}

func (cv *Cvar) SetValue(value float32) {
	if float32(int(value)) == value {
		cv.SetByString(strconv.FormatInt(int64(value), 10))
	} else {
		cv.SetByString(strconv.FormatFloat(float64(value), 'f', -1, 32))
	}
}

func (cv *Cvar) Toggle() {
	if cv.String() == "1" {
		cv.SetByString("0")
	} else {
		cv.SetByString("1")
	}
}

func (cv *Cvar) Bool() bool {
	return cv.String() != "0"
}

func Get(name string) (*Cvar, bool) {
	mu.RLock()
	defer mu.RUnlock()
	cv, ok := cvarByName[strings.ToLower(name)]
	return cv, ok
}

func create(name, value string) *Cvar {
	cv := &Cvar{name: name, defaultValue: value}
	cv.set(value)
	cvarByName[strings.ToLower(name)] = cv
	return cv
}

func Register(name, value string, flags flag) (*Cvar, error) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := cvarByName[strings.ToLower(name)]; ok {
		return nil, fmt.Errorf("Can't register variable %s, already defined", name)
	}
	cv := create(name, value)
	cv.archive = flags&ARCHIVE != 0
	cv.notify = flags&NOTIFY != 0
	cv.rom = flags&ROM != 0
	return cv, nil
}

func MustRegister(n, v string, flag flag) *Cvar {
	cv, err := Register(n, v, flag)
	if err != nil {
		log.Panic(n)
	}
	return cv
}

// Execute handles a console line whose first word names a cvar: it shows
// the value or sets it.
func Execute(a cmd.Arguments) (bool, error) {
	args := a.Args()
	if len(args) == 0 {
		return false, nil
	}
	cv, ok := Get(args[0].String())
	if !ok {
		return false, nil
	}
	if len(args) == 1 {
		conlog.Printf("\"%s\" is \"%s\"\n", cv.Name(), cv.String())
		return true, nil
	}
	cv.SetByString(args[1].String())
	return true, nil
}

func init() {
	cmd.Must(cmd.AddCommand("cvarlist", list))
	cmd.Must(cmd.AddCommand("reset", reset))
	cmd.Must(cmd.AddCommand("resetall", resetAll))
	cmd.Must(cmd.AddCommand("set", set))
	cmd.Must(cmd.AddCommand("toggle", toggle))
}

func set(a cmd.Arguments) error {
	args := a.Args()[1:]
	if len(args) < 2 {
		conlog.Printf("set <cvar> <value>\n")
		return nil
	}
	if cmd.Exists(args[0].String()) {
		conlog.Printf("conflict with command\n")
		return nil
	}
	if cv, ok := Get(args[0].String()); ok {
		cv.SetByString(args[1].String())
		return nil
	}
	mu.Lock()
	cv := create(args[0].String(), args[1].String())
	cv.user = true
	mu.Unlock()
	return nil
}

func toggle(a cmd.Arguments) error {
	args := a.Args()[1:]
	if len(args) != 1 {
		conlog.Printf("toggle <cvar> : toggle cvar\n")
		return nil
	}
	arg := args[0].String()
	if cv, ok := Get(arg); ok {
		cv.Toggle()
	} else {
		log.Printf("toggle: Cvar not found %v", arg)
		conlog.Printf("toggle: variable %v not found\n", arg)
	}
	return nil
}

func reset(a cmd.Arguments) error {
	args := a.Args()[1:]
	if len(args) != 1 {
		conlog.Printf("reset <cvar> : reset cvar to default\n")
		return nil
	}
	arg := args[0].String()
	if cv, ok := Get(arg); ok {
		cv.Reset()
	} else {
		conlog.Printf("Cvar_Reset: variable %v not found\n", arg)
	}
	return nil
}

func resetAll(_ cmd.Arguments) error {
	for _, cv := range All() {
		cv.Reset()
	}
	return nil
}

func list(a cmd.Arguments) error {
	part := a.Argv(1).String()
	count := 0
	for _, v := range All() {
		if !strings.HasPrefix(v.Name(), part) {
			continue
		}
		archive := " "
		if v.Archive() {
			archive = "*"
		}
		conlog.SafePrintf("%s %s \"%s\"\n", archive, v.Name(), v.String())
		count++
	}
	conlog.SafePrintf("%v cvars\n", count)
	return nil
}
