// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"errors"
)

// ErrMissingTitle marks a raw record that cannot become a Paper. The title
// is the only hard-required field because scoring depends on it; all other
// missing fields normalize to zero values.
var ErrMissingTitle = errors.New("record has no title")
