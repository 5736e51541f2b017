// epson-rom-tools - https://github.com/NaturalTangent/epson-rom-tools
// header.go - ROM header codec (directory slot 0)
// Dual-licensed under MIT and Apache 2.0

package capsule

import "encoding/binary"

// RomHeader occupies directory slot 0 and shares its 32-byte packed size
// with DirEntry.
// Layout:
//
//	0x00: magic (0xE5)
//	0x01: format id (0x37=M, 0x50=P)
//	0x02: capacity code
//	0x03-0x04: checksum, little-endian length of the file area
//	0x05-0x07: system name ("H80")
//	0x08-0x15: ROM name, space-padded
//	0x16: directory entry count, a multiple of 4 including this slot
//	0x17: version tag ('V')
//	0x18-0x19: version digits
//	0x1A-0x1B: month digits
//	0x1C-0x1D: day digits
//	0x1E-0x1F: year digits
type RomHeader struct {
	Magic      byte
	Format     byte
	Capacity   byte
	Checksum   uint16
	SystemName [3]byte
	RomName    [14]byte
	DirEntries byte
	VersionTag byte
	Version    [2]byte
	Month      [2]byte
	Day        [2]byte
	Year       [2]byte
}

// Stamp values reproduce the original makerom output byte for byte.
const (
	stampVersionTag = 'V'
	stampVersion    = "10"
	stampMonth      = "11"
	stampDay        = "16"
	stampYear       = "20"
)

// newHeader builds a header for a 256 kbit M-format capsule. romName is
// truncated or space-padded to 14 bytes.
func newHeader(romName string) RomHeader {
	h := RomHeader{
		Magic:      Magic,
		Format:     FormatM,
		Capacity:   Capacity256kbit,
		VersionTag: stampVersionTag,
	}
	copy(h.SystemName[:], SystemName)
	padInto(h.RomName[:], romName)
	copy(h.Version[:], stampVersion)
	copy(h.Month[:], stampMonth)
	copy(h.Day[:], stampDay)
	copy(h.Year[:], stampYear)
	return h
}

// parseHeader reads a header from the first EntrySize bytes of b. Any byte
// pattern parses; validity is the caller's decision.
func parseHeader(b []byte) RomHeader {
	h := RomHeader{
		Magic:      b[0],
		Format:     b[1],
		Capacity:   b[2],
		Checksum:   binary.LittleEndian.Uint16(b[3:5]),
		DirEntries: b[22],
		VersionTag: b[23],
	}
	copy(h.SystemName[:], b[5:8])
	copy(h.RomName[:], b[8:22])
	copy(h.Version[:], b[24:26])
	copy(h.Month[:], b[26:28])
	copy(h.Day[:], b[28:30])
	copy(h.Year[:], b[30:32])
	return h
}

// marshal writes the header into the first EntrySize bytes of b.
func (h *RomHeader) marshal(b []byte) {
	b[0] = h.Magic
	b[1] = h.Format
	b[2] = h.Capacity
	binary.LittleEndian.PutUint16(b[3:5], h.Checksum)
	copy(b[5:8], h.SystemName[:])
	copy(b[8:22], h.RomName[:])
	b[22] = h.DirEntries
	b[23] = h.VersionTag
	copy(b[24:26], h.Version[:])
	copy(b[26:28], h.Month[:])
	copy(b[28:30], h.Day[:])
	copy(b[30:32], h.Year[:])
}
