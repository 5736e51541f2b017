// epson-rom-tools - https://github.com/NaturalTangent/epson-rom-tools
// capsule.go - Layout constants for the ROM capsule filesystem
// Dual-licensed under MIT and Apache 2.0

// Package capsule implements the filesystem format used by Epson PX-8
// (and PX-4 / EHT-10) ROM capsules: a fixed-size image holding a packed
// CP/M-like directory followed by a file area addressed in 1 KiB blocks.
//
// Reference documentation:
//   - PX-8 OS Reference Manual - chapter 15
//   - EHT-10 Development Tool User's Guide - Appendix 1
package capsule

const (
	// Magic is the first byte of a capsule header (slot 0 of the directory).
	Magic = 0xe5

	// Format identifiers, stored in the second header byte.
	FormatM = 0x37 // loaded into the TPA for execution (supported)
	FormatP = 0x50 // not supported

	// Capacity codes. Only 256 kbit (a 27C256 PROM, 32 KiB) is supported.
	Capacity64kbit   = 0x08
	Capacity128kbit  = 0x10
	Capacity256kbit  = 0x20
	Capacity512kbit  = 0x40 // not supported
	Capacity1024kbit = 0x80 // not supported

	// EntrySize is the packed size of a directory slot. The ROM header and
	// a directory entry are the same size; slot 0 always holds the header.
	EntrySize     = 32
	MaxDirEntries = 32 // including the header slot

	// File data is stored in 1 KiB blocks of eight 128-byte logical records.
	BlockSize       = 1024
	RecordSize      = 128
	RecordsPerBlock = BlockSize / RecordSize

	// AllocationMapLen is the number of block IDs per directory entry; a
	// file larger than 16 KiB continues in another entry (a new extent).
	AllocationMapLen = 16

	// ImageSize is the physical size of a 256 kbit capsule image. The two
	// 16 KiB halves of the physical image are swapped relative to the
	// logical layout (27C256 address line wiring).
	ImageSize = 0x8000

	// FillerByte fills the image beyond the directory and file area.
	FillerByte = 0xff

	// Directory slot validity markers.
	EntryValid   = 0x00
	EntryInvalid = 0xe5
)

// SystemName is the fixed 3-byte system tag written to every header.
const SystemName = "H80"
