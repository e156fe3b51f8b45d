// SPDX-License-Identifier: GPL-2.0-or-later

package texture

import (
	"github.com/pkg/errors"
)

// Load failures are wrapped around one of these. Test with errors.Is.
var (
	ErrAssetNotFound   = errors.New("asset not found")
	ErrDecode          = errors.New("decode failed")
	ErrAllocation      = errors.New("allocation failed")
	ErrUpload          = errors.New("upload failed")
	ErrInvalidArgument = errors.New("invalid argument")
)
