// SPDX-License-Identifier: GPL-2.0-or-later

package cvars

import (
	"gotexcache/cvar"
)

var (
	Developer  *cvar.Cvar
	GlMaxSize  *cvar.Cvar
	GlPicMip   *cvar.Cvar
	VidWidth   *cvar.Cvar
	VidHeight  *cvar.Cvar
	VidVSync   *cvar.Cvar
	TexDumpDir *cvar.Cvar
)

func init() {
	Developer = cvar.MustRegister("developer", "0", cvar.NONE)
	GlMaxSize = cvar.MustRegister("gl_max_size", "0", cvar.NONE)
	GlPicMip = cvar.MustRegister("gl_picmip", "0", cvar.NONE)
	VidWidth = cvar.MustRegister("vid_width", "800", cvar.ARCHIVE)
	VidHeight = cvar.MustRegister("vid_height", "600", cvar.ARCHIVE)
	VidVSync = cvar.MustRegister("vid_vsync", "1", cvar.ARCHIVE)
	TexDumpDir = cvar.MustRegister("texdump_dir", "texdump", cvar.ARCHIVE)
}
