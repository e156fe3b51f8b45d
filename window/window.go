// SPDX-License-Identifier: GPL-2.0-or-later

package window

import (
	"log"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/pkg/errors"
	"github.com/veandco/go-sdl2/sdl"

	"gotexcache/cvar"
	"gotexcache/cvars"
)

var (
	window  *sdl.Window
	context sdl.GLContext
)

func Get() *sdl.Window {
	return window
}

func Size() (int32, int32) {
	return window.GetSize()
}

func Shutdown() {
	if context != nil {
		sdl.GLDeleteContext(context)
		context = nil
	}
	if window != nil {
		window.Destroy()
		window = nil
	}
	sdl.Quit()
}

func Fullscreen() bool {
	return window.GetFlags()&sdl.WINDOW_FULLSCREEN != 0
}

func VSync() bool {
	i, _ := sdl.GLGetSwapInterval()
	return i == 1
}

// Init creates the window and its GL 4.6 core context. It must be called
// from the main thread.
func Init(title string, width, height int32, fullscreen bool) error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return errors.Wrap(err, "sdl init")
	}
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 6)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_DEBUG_FLAG)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_HIDDEN | sdl.WINDOW_RESIZABLE)
	w, err := sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, width, height, flags)
	if err != nil {
		// retry without the debug context
		sdl.GLSetAttribute(sdl.GL_CONTEXT_FLAGS, 0)
		w, err = sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, width, height, flags)
		if err != nil {
			return errors.Wrap(err, "Couldn't create window")
		}
	}
	window = w
	if fullscreen {
		if err := window.SetFullscreen(sdl.WINDOW_FULLSCREEN_DESKTOP); err != nil {
			log.Printf("Couldn't set fullscreen state mode: %v", err)
		}
	}
	window.Show()

	context, err = window.GLCreateContext()
	if err != nil {
		return errors.Wrap(err, "Couldn't create GL context")
	}
	if err := gl.Init(); err != nil {
		return errors.Wrap(err, "Couldn't init gl")
	}
	gl.DebugMessageCallback(debugCb, unsafe.Pointer(nil))
	setVSync(cvars.VidVSync)
	cvars.VidVSync.SetCallback(setVSync)
	return nil
}

func setVSync(cv *cvar.Cvar) {
	interval := 0
	if cv.Bool() {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		log.Printf("Couldn't set swap interval: %v", err)
	}
}

func debugCb(
	source uint32,
	gltype uint32,
	id uint32,
	severity uint32,
	length int32,
	message string,
	userParam unsafe.Pointer) {
	if severity == gl.DEBUG_SEVERITY_HIGH || cvars.Developer.Bool() {
		log.Printf("[GL_DEBUG] source %d gltype %d id %d severity %d length %d: %s", source, gltype, id, severity, length, message)
	}
}

// PollQuit drains pending SDL events and reports whether the user asked
// to close the window.
func PollQuit() bool {
	quit := false
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch ev := e.(type) {
		case *sdl.QuitEvent:
			quit = true
		case *sdl.WindowEvent:
			if ev.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				gl.Viewport(0, 0, ev.Data1, ev.Data2)
			}
		}
	}
	return quit
}

func EndRendering() {
	window.GLSwap()
}
