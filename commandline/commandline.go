// SPDX-License-Identifier: GPL-2.0-or-later

package commandline

import (
	"flag"
	"fmt"
	"strconv"
)

var (
	conDebug   bool
	fullscreen bool
	window     bool
	headless   bool

	loseContext = boolInt{false, 10}

	height int
	width  int

	basedir string
	game    string
	exec    string
)

type boolInt struct {
	set bool
	num int
}

func (b *boolInt) IsBoolFlag() bool {
	// We can not support both "-flag" and "-flag 10"
	// This allows "-flag", and "-flag=10"
	// and also "-flag=true" and "-flag=false"
	// but not "-flag 10"
	return true
}

func (b *boolInt) Set(s string) error {
	v, err := strconv.ParseInt(s, 0, strconv.IntSize)
	if err != nil {
		v, err := strconv.ParseBool(s)
		b.set = v
		return err
	}
	b.set = true
	b.num = int(v)
	return nil
}

func (b *boolInt) String() string {
	return fmt.Sprintf("Set: %v, Num: %v", b.set, b.num)
}

func init() {
	flag.BoolVar(&conDebug, "condebug", false, "enable console debugging")
	flag.BoolVar(&fullscreen, "f", false, "")
	flag.BoolVar(&fullscreen, "fullscreen", false, "")
	flag.BoolVar(&window, "window", false, "")
	flag.BoolVar(&window, "w", false, "")
	flag.BoolVar(&headless, "headless", false, "run the console without a window or GL context")

	flag.Var(&loseContext, "losecontext", "drop and replay all textures, optional interval in seconds")

	flag.IntVar(&height, "height", -1, "window height, negative is unset")
	flag.IntVar(&width, "width", -1, "window width, negative is unset")

	flag.StringVar(&basedir, "basedir", ".", "directory holding id1 and mod dirs")
	flag.StringVar(&game, "game", "", "mod directory layered above id1")
	flag.StringVar(&exec, "exec", "", "console script run after startup")
}

func BaseDirectory() string {
	return basedir
}

func Game() string {
	return game
}

func Exec() string {
	return exec
}

func Height() int {
	return height
}

func Width() int {
	return width
}

func ConsoleDebug() bool {
	return conDebug
}

func Fullscreen() bool {
	return fullscreen && !window
}

func Headless() bool {
	return headless
}

func LoseContext() bool {
	return loseContext.set
}

// LoseContextInterval is the number of seconds between simulated context
// losses.
func LoseContextInterval() int {
	return loseContext.num
}
