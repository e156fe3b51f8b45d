// SPDX-License-Identifier: GPL-2.0-or-later

package glh

import (
	"github.com/gopxl/mainthread/v2"
)

// RenderThread schedules work on the thread that owns the GL context. It
// only works inside mainthread.Run.
type RenderThread struct{}

func (RenderThread) CallNonBlock(f func()) {
	mainthread.CallNonBlock(f)
}

// Call runs f on the render thread and waits for it.
func (RenderThread) Call(f func()) {
	mainthread.Call(f)
}
