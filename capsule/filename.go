// epson-rom-tools - https://github.com/NaturalTangent/epson-rom-tools
// filename.go - 8.3 file name handling
// Dual-licensed under MIT and Apache 2.0

package capsule

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
)

// fileName is a file name split into its 8.3 components, unpadded.
type fileName struct {
	name string // 1-8 characters
	typ  string // 1-3 characters
}

// splitFileName splits full into 8.3 components. The extension separator is
// the last dot, matching CP/M conventions.
func splitFileName(full string) (fileName, error) {
	pos := strings.LastIndexByte(full, '.')
	if pos < 0 {
		return fileName{}, errors.Wrapf(ErrInvalidFileName, "%s", full)
	}

	name, typ := full[:pos], full[pos+1:]
	if len(name) < 1 || len(name) > 8 || len(typ) < 1 || len(typ) > 3 {
		return fileName{}, errors.Wrapf(ErrInvalidFileName, "%s", full)
	}

	return fileName{name: name, typ: typ}, nil
}

func (fn fileName) String() string {
	return fn.name + "." + fn.typ
}

// padName returns the name component space-padded to 8 bytes.
func (fn fileName) padName() (b [8]byte) {
	padInto(b[:], fn.name)
	return b
}

// padType returns the type component space-padded to 3 bytes.
func (fn fileName) padType() (b [3]byte) {
	padInto(b[:], fn.typ)
	return b
}

func padInto(dst []byte, s string) {
	for i := range dst {
		dst[i] = ' '
	}
	copy(dst, s)
}

// trimPadding cuts a packed name component at the first space, as the
// original firmware tools do.
func trimPadding(b []byte) string {
	if pos := bytes.IndexByte(b, ' '); pos >= 0 {
		return string(b[:pos])
	}
	return string(b)
}
