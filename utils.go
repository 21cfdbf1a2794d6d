package surfaces

import "math"

const (
	pi  = math.Pi
	tau = 2 * pi
)
