// epson-rom-tools - https://github.com/NaturalTangent/epson-rom-tools
// unpack.go - Image disassembly (decode path) and listing
// Dual-licensed under MIT and Apache 2.0

package capsule

import "github.com/pkg/errors"

// UnpackOptions controls decoding.
type UnpackOptions struct {
	// LenientHeader accepts an image when either header id byte matches,
	// reproducing the original firmware tool's check. The default rejects
	// when either the magic or the format byte is wrong; images produced
	// by Pack satisfy both readings.
	LenientHeader bool
}

// Unpack extracts the files stored in a capsule image, in directory order.
// A buffer of exactly ImageSize bytes is treated as a physical 256 kbit
// image and has its halves swapped back first; any other size is read as the
// logical layout directly. The input buffer is not modified.
func Unpack(image []byte, opts UnpackOptions) ([]File, error) {
	buf, hdr, err := openImage(image, opts)
	if err != nil {
		return nil, err
	}

	fileBase := int(hdr.DirEntries) * EntrySize

	var files []File
	seen := make(map[string]bool)
	cur := -1 // index into files of the open file

	for slot := 1; slot < int(hdr.DirEntries); slot++ {
		e := parseDirEntry(buf[slot*EntrySize:])
		if !e.valid() {
			continue
		}

		if e.Extent == 0 {
			name := e.fileName().String()
			if seen[name] {
				return nil, errors.Wrapf(ErrOutputFileConflict, "%s", name)
			}
			seen[name] = true
			files = append(files, File{Name: name})
			cur = len(files) - 1
		} else if cur < 0 {
			return nil, errors.Wrapf(ErrCorruptDirectory,
				"slot %d: extent %d with no open file", slot, e.Extent)
		}

		for _, id := range e.AllocationMap {
			if id == 0 {
				continue
			}
			start := fileBase + (int(id)-1)*BlockSize
			if start+BlockSize > len(buf) {
				return nil, errors.Wrapf(ErrCorruptDirectory,
					"slot %d: block %d beyond image end", slot, id)
			}
			files[cur].Data = append(files[cur].Data, buf[start:start+BlockSize]...)
		}
	}

	return files, nil
}

// FileInfo describes one file of a listed image.
type FileInfo struct {
	Name    string
	Extents int
	Blocks  int
	Size    int // bytes occupied in the file area
}

// Info describes a capsule image without extracting it.
type Info struct {
	RomName    string
	SystemName string
	Format     byte
	Capacity   byte
	Checksum   uint16
	DirEntries int
	Files      []FileInfo
}

// List parses a capsule image and reports its header and directory contents.
func List(image []byte, opts UnpackOptions) (*Info, error) {
	buf, hdr, err := openImage(image, opts)
	if err != nil {
		return nil, err
	}

	info := &Info{
		RomName:    trimPadding(hdr.RomName[:]),
		SystemName: string(hdr.SystemName[:]),
		Format:     hdr.Format,
		Capacity:   hdr.Capacity,
		Checksum:   hdr.Checksum,
		DirEntries: int(hdr.DirEntries),
	}

	cur := -1
	for slot := 1; slot < int(hdr.DirEntries); slot++ {
		e := parseDirEntry(buf[slot*EntrySize:])
		if !e.valid() {
			continue
		}

		if e.Extent == 0 {
			info.Files = append(info.Files, FileInfo{Name: e.fileName().String()})
			cur = len(info.Files) - 1
		} else if cur < 0 {
			return nil, errors.Wrapf(ErrCorruptDirectory,
				"slot %d: extent %d with no open file", slot, e.Extent)
		}

		fi := &info.Files[cur]
		fi.Extents++
		fi.Blocks += e.blocks()
		fi.Size += int(e.RecordCount) * RecordSize
	}

	return info, nil
}

// openImage undoes the physical half swap when the buffer is a full 256 kbit
// image, validates the header and returns the logical buffer.
func openImage(image []byte, opts UnpackOptions) ([]byte, RomHeader, error) {
	if len(image) < EntrySize {
		return nil, RomHeader{}, errors.Wrapf(ErrNotAValidRom, "%d bytes is too short", len(image))
	}

	buf := make([]byte, len(image))
	copy(buf, image)
	if len(buf) == ImageSize {
		swapHalves(buf)
	}

	hdr := parseHeader(buf)
	if opts.LenientHeader {
		if hdr.Magic != Magic && hdr.Format != FormatM {
			return nil, RomHeader{}, errors.Wrapf(ErrNotAValidRom,
				"id bytes %#02x %#02x", hdr.Magic, hdr.Format)
		}
	} else {
		if hdr.Magic != Magic {
			return nil, RomHeader{}, errors.Wrapf(ErrNotAValidRom, "magic byte %#02x", hdr.Magic)
		}
		if hdr.Format == FormatP {
			return nil, RomHeader{}, errors.Wrap(ErrNotAValidRom, "P format is not supported")
		}
		if hdr.Format != FormatM {
			return nil, RomHeader{}, errors.Wrapf(ErrNotAValidRom, "format byte %#02x", hdr.Format)
		}
	}

	de := int(hdr.DirEntries)
	if de < 1 || de > MaxDirEntries || de%4 != 0 {
		return nil, RomHeader{}, errors.Wrapf(ErrCorruptDirectory, "dir_entries %d", de)
	}
	if de*EntrySize > len(buf) {
		return nil, RomHeader{}, errors.Wrapf(ErrCorruptDirectory,
			"directory of %d slots beyond image end", de)
	}

	return buf, hdr, nil
}
