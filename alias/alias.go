// SPDX-License-Identifier: GPL-2.0-or-later

// Package alias implements console aliases that expand to command text.
package alias

import (
	"sort"
	"strings"
	"sync"

	"gotexcache/cbuf"
	"gotexcache/cmd"
	"gotexcache/conlog"
)

type Aliases struct {
	mu      sync.RWMutex
	aliases map[string]string
}

func New() *Aliases {
	return &Aliases{aliases: make(map[string]string)}
}

// Register adds the alias, unalias and unaliasall commands to cmds.
func (al *Aliases) Register(cmds *cmd.Commands) error {
	if err := cmds.Add("alias", al.alias); err != nil {
		return err
	}
	if err := cmds.Add("unalias", al.unalias); err != nil {
		return err
	}
	return cmds.Add("unaliasall", al.unaliasAll)
}

func (al *Aliases) alias(a cmd.Arguments) error {
	args := a.Args()[1:]
	switch len(args) {
	case 0:
		al.list()
	case 1:
		if v, ok := al.Get(args[0].String()); ok {
			conlog.Printf("  %s: %s", args[0].String(), v)
		}
	default:
		parts := make([]string, 0, len(args)-1)
		for _, p := range args[1:] {
			parts = append(parts, p.String())
		}
		al.mu.Lock()
		// each alias value ends with a '\n'
		al.aliases[args[0].String()] = strings.TrimSpace(strings.Join(parts, " ")) + "\n"
		al.mu.Unlock()
	}
	return nil
}

func (al *Aliases) list() {
	al.mu.RLock()
	defer al.mu.RUnlock()
	if len(al.aliases) == 0 {
		conlog.SafePrintf("no alias commands found\n")
		return
	}
	names := make([]string, 0, len(al.aliases))
	for k := range al.aliases {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		conlog.SafePrintf("  %s: %s", k, al.aliases[k])
	}
	conlog.SafePrintf("%v alias command(s)\n", len(al.aliases))
}

func (al *Aliases) unalias(a cmd.Arguments) error {
	args := a.Args()[1:]
	if len(args) != 1 {
		conlog.Printf("unalias <name> : delete alias\n")
		return nil
	}
	name := args[0].String()
	al.mu.Lock()
	defer al.mu.Unlock()
	if _, ok := al.aliases[name]; ok {
		delete(al.aliases, name)
	} else {
		conlog.Printf("No alias named %s\n", name)
	}
	return nil
}

func (al *Aliases) unaliasAll(_ cmd.Arguments) error {
	al.mu.Lock()
	defer al.mu.Unlock()
	al.aliases = make(map[string]string)
	return nil
}

func (al *Aliases) Get(name string) (string, bool) {
	al.mu.RLock()
	defer al.mu.RUnlock()
	v, ok := al.aliases[name]
	return v, ok
}

// Execute returns an executor that expands aliases in front of the
// pending commands.
func (al *Aliases) Execute() cbuf.Efunc {
	return func(cb *cbuf.CommandBuffer, a cmd.Arguments) (bool, error) {
		args := a.Args()
		if len(args) == 0 {
			return false, nil
		}
		if v, ok := al.Get(args[0].String()); ok {
			cb.InsertText(v)
			return true, nil
		}
		return false, nil
	}
}
