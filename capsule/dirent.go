// epson-rom-tools - https://github.com/NaturalTangent/epson-rom-tools
// dirent.go - Directory entry codec (slots 1..31)
// Dual-licensed under MIT and Apache 2.0

package capsule

import "encoding/binary"

// DirEntry is one 32-byte directory slot describing a single extent of a
// file: up to 16 blocks of 1 KiB each. Files larger than that chain across
// further entries with ascending Extent values and the same name and type.
// Layout:
//
//	0x00: validity (0x00=valid, 0xE5=invalid)
//	0x01-0x08: file name, space-padded
//	0x09-0x0B: file type, space-padded
//	0x0C: logical extent (0 = first extent of the file)
//	0x0D-0x0E: reserved, zero
//	0x0F: record count, 128-byte records covered by this extent
//	0x10-0x1F: allocation map of 1-based block IDs (0 = unused slot)
type DirEntry struct {
	Validity      byte
	Name          [8]byte
	Type          [3]byte
	Extent        byte
	Reserved      uint16
	RecordCount   byte
	AllocationMap [AllocationMapLen]byte
}

// parseDirEntry reads an entry from the first EntrySize bytes of b. Any byte
// pattern parses; callers must skip entries whose validity marker is not
// EntryValid.
func parseDirEntry(b []byte) DirEntry {
	e := DirEntry{
		Validity:    b[0],
		Extent:      b[12],
		Reserved:    binary.LittleEndian.Uint16(b[13:15]),
		RecordCount: b[15],
	}
	copy(e.Name[:], b[1:9])
	copy(e.Type[:], b[9:12])
	copy(e.AllocationMap[:], b[16:32])
	return e
}

// marshal writes the entry into the first EntrySize bytes of b.
func (e *DirEntry) marshal(b []byte) {
	b[0] = e.Validity
	copy(b[1:9], e.Name[:])
	copy(b[9:12], e.Type[:])
	b[12] = e.Extent
	binary.LittleEndian.PutUint16(b[13:15], e.Reserved)
	b[15] = e.RecordCount
	copy(b[16:32], e.AllocationMap[:])
}

func (e *DirEntry) valid() bool {
	return e.Validity == EntryValid
}

// fileName derives the unpadded 8.3 name of the entry.
func (e *DirEntry) fileName() fileName {
	return fileName{
		name: trimPadding(e.Name[:]),
		typ:  trimPadding(e.Type[:]),
	}
}

// blocks counts the allocated blocks of this extent.
func (e *DirEntry) blocks() int {
	n := 0
	for _, id := range e.AllocationMap {
		if id != 0 {
			n++
		}
	}
	return n
}
