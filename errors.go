package surfaces

import (
	"errors"
	"fmt"
	"math"
)

// ErrBadResolution is wrapped by errors returned when a mesh is requested
// with a resolution below the minimum for its kind. No buffers are allocated
// when it is returned.
var ErrBadResolution = errors.New("bad mesh resolution")

// maxVertices is the largest vertex count addressable by uint32 indices.
const maxVertices = math.MaxUint32

func badResolution(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrBadResolution}, args...)...)
}
