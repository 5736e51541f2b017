// epson-rom-tools - https://github.com/NaturalTangent/epson-rom-tools
// errors.go - Error taxonomy for encode and decode failures
// Dual-licensed under MIT and Apache 2.0

package capsule

import "github.com/pkg/errors"

// All failures are terminal for the current encode or decode run; nothing is
// retried or repaired. Callers classify with errors.Is.
var (
	// ErrInvalidFileName reports a name that cannot be split into 8.3 form.
	ErrInvalidFileName = errors.New("input files must be 8.3")

	// ErrOutOfDirectorySpace reports that a file needed a directory slot
	// beyond the 31 available (slot 0 is the header).
	ErrOutOfDirectorySpace = errors.New("out of directory space")

	// ErrOutOfImageSpace reports that the directory plus file area would
	// exceed the capsule image size.
	ErrOutOfImageSpace = errors.New("out of ROM space")

	// ErrNotAValidRom reports a header whose magic or format byte does not
	// identify a supported capsule image.
	ErrNotAValidRom = errors.New("not a valid rom file")

	// ErrCorruptDirectory reports directory structure that cannot be
	// walked: a bad entry count, an allocation map pointing outside the
	// image, or a continuation extent with no file open.
	ErrCorruptDirectory = errors.New("corrupt directory")

	// ErrOutputFileConflict reports two directory chains deriving the same
	// output file name.
	ErrOutputFileConflict = errors.New("duplicate output file name")
)
