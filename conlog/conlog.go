// SPDX-License-Identifier: GPL-2.0-or-later

// Package conlog is the process wide sink for messages meant for the user.
// The host installs its console printer, until then messages go to the
// standard logger.
package conlog

import (
	"log"
	"sync"
)

type printf func(string, ...interface{})

var (
	mu sync.RWMutex
	p  printf = log.Printf
	sp printf = log.Printf
)

// SetPrintf replaces the printer. A nil f restores the standard logger.
func SetPrintf(f func(string, ...interface{})) {
	mu.Lock()
	defer mu.Unlock()
	if f == nil {
		f = log.Printf
	}
	p = f
}

// SetSafePrintf replaces the printer used for messages that must not
// trigger a screen update.
func SetSafePrintf(f func(string, ...interface{})) {
	mu.Lock()
	defer mu.Unlock()
	if f == nil {
		f = log.Printf
	}
	sp = f
}

func Printf(format string, v ...interface{}) {
	mu.RLock()
	f := p
	mu.RUnlock()
	f(format, v...)
}

func SafePrintf(format string, v ...interface{}) {
	mu.RLock()
	f := sp
	mu.RUnlock()
	f(format, v...)
}
