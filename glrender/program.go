package glrender

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/all-core/gl"
)

// CurrentProgram returns the name of the program bound with glUseProgram.
func CurrentProgram() (uint32, error) {
	var id int32
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &id)
	if err := checkError("querying current program"); err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, errors.New("no program bound")
	}
	return uint32(id), nil
}

// UniformLocations returns the locations of the named uniforms in program.
// A uniform the program does not declare, or one optimized away by the
// shader compiler, is an error.
func UniformLocations(program uint32, names ...string) ([]int32, error) {
	locs := make([]int32, len(names))
	for i, name := range names {
		cname, err := glString(name)
		if err != nil {
			return nil, err
		}
		locs[i] = gl.GetUniformLocation(program, gl.Str(cname))
		if locs[i] < 0 {
			return nil, fmt.Errorf("uniform %q not found in program %d", name, program)
		}
	}
	return locs, checkError("querying uniform locations")
}

// glString returns name NUL terminated as gl.Str expects.
func glString(name string) (string, error) {
	name = strings.TrimSuffix(name, "\x00")
	if name == "" || strings.ContainsRune(name, 0) {
		return "", fmt.Errorf("invalid GL identifier %q", name)
	}
	return name + "\x00", nil
}
