// epson-rom-tools - https://github.com/NaturalTangent/epson-rom-tools
// pack_test.go - Unit tests for image assembly
// Dual-licensed under MIT and Apache 2.0

package capsule

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// logical undoes the physical half swap for inspection.
func logical(t *testing.T, image []byte) []byte {
	t.Helper()
	require.Equal(t, ImageSize, len(image))
	buf := make([]byte, len(image))
	copy(buf, image)
	swapHalves(buf)
	return buf
}

func TestPackSingleSmallFile(t *testing.T) {
	image, err := Pack("OUT.ROM", []File{{Name: "README.TXT", Data: []byte("hi")}})
	require.NoError(t, err)
	require.Equal(t, ImageSize, len(image))

	buf := logical(t, image)

	hdr := parseHeader(buf)
	assert.EqualValues(t, Magic, hdr.Magic)
	assert.EqualValues(t, FormatM, hdr.Format)
	assert.EqualValues(t, Capacity256kbit, hdr.Capacity)
	assert.EqualValues(t, 4, hdr.DirEntries)
	assert.EqualValues(t, 0x0400, hdr.Checksum)
	assert.Equal(t, "OUT.ROM       ", string(hdr.RomName[:]))
	assert.Equal(t, SystemName, string(hdr.SystemName[:]))

	e := parseDirEntry(buf[EntrySize:])
	assert.EqualValues(t, EntryValid, e.Validity)
	assert.Equal(t, "README  ", string(e.Name[:]))
	assert.Equal(t, "TXT", string(e.Type[:]))
	assert.EqualValues(t, 0, e.Extent)
	assert.EqualValues(t, RecordsPerBlock, e.RecordCount)
	assert.EqualValues(t, 1, e.AllocationMap[0])
	for i := 1; i < AllocationMapLen; i++ {
		assert.EqualValues(t, 0, e.AllocationMap[i])
	}

	// Slots 2 and 3 are within dir_entries but unused: every byte is the
	// invalid marker.
	assert.Equal(t, bytes.Repeat([]byte{EntryInvalid}, 2*EntrySize), buf[2*EntrySize:4*EntrySize])

	// File area: content then pad bytes carrying the byte-truncated pad
	// length, 1022 -> 0xFE.
	pad := BlockSize - 2
	fileArea := buf[4*EntrySize : 4*EntrySize+BlockSize]
	assert.Equal(t, []byte("hi"), fileArea[:2])
	assert.Equal(t, bytes.Repeat([]byte{byte(pad)}, pad), fileArea[2:])

	// Everything past the file area is filler.
	assert.Equal(t, bytes.Repeat([]byte{FillerByte}, ImageSize-4*EntrySize-BlockSize), buf[4*EntrySize+BlockSize:])
}

func TestPackEmptyFileList(t *testing.T) {
	image, err := Pack("EMPTY.ROM", nil)
	require.NoError(t, err)

	buf := logical(t, image)
	hdr := parseHeader(buf)
	assert.EqualValues(t, 4, hdr.DirEntries)
	assert.EqualValues(t, 0, hdr.Checksum)
	assert.Equal(t, bytes.Repeat([]byte{EntryInvalid}, 3*EntrySize), buf[EntrySize:4*EntrySize])
}

func TestPackZeroLengthFile(t *testing.T) {
	image, err := Pack("Z.ROM", []File{{Name: "EMPTY.DAT"}})
	require.NoError(t, err)

	buf := logical(t, image)
	e := parseDirEntry(buf[EntrySize:])
	assert.EqualValues(t, EntryValid, e.Validity)
	assert.EqualValues(t, 0, e.RecordCount)
	assert.Equal(t, 0, e.blocks())
}

func TestPackInvalidFileName(t *testing.T) {
	_, err := Pack("OUT.ROM", []File{{Name: "NODOT", Data: []byte{1}}})
	require.ErrorIs(t, err, ErrInvalidFileName)
}

func TestPackDirectoryRounding(t *testing.T) {
	// Five single-block files use slots 1..5 plus the header: 6 slots,
	// rounded up to 8.
	files := []File{
		{Name: "A.DAT", Data: []byte{1}},
		{Name: "B.DAT", Data: []byte{2}},
		{Name: "C.DAT", Data: []byte{3}},
		{Name: "D.DAT", Data: []byte{4}},
		{Name: "E.DAT", Data: []byte{5}},
	}
	image, err := Pack("OUT.ROM", files)
	require.NoError(t, err)

	hdr := parseHeader(logical(t, image))
	assert.EqualValues(t, 8, hdr.DirEntries)
}

func TestPackOutOfDirectorySpace(t *testing.T) {
	// Every file needs two slots; the 16th would need slot 32.
	var files []File
	for i := 0; i < 16; i++ {
		files = append(files, File{
			Name: string(rune('A'+i)) + ".BIN",
			Data: make([]byte, 17*BlockSize),
		})
	}
	_, err := Pack("OUT.ROM", files)
	require.ErrorIs(t, err, ErrOutOfDirectorySpace)
}

func TestPackOutOfImageSpace(t *testing.T) {
	// Two 16 KiB files fit the directory but not the image: the 128-byte
	// directory plus 32 KiB of data exceeds 32 KiB.
	files := []File{
		{Name: "A.BIN", Data: make([]byte, 16*BlockSize)},
		{Name: "B.BIN", Data: make([]byte, 16*BlockSize)},
	}
	_, err := Pack("OUT.ROM", files)
	require.ErrorIs(t, err, ErrOutOfImageSpace)
}

func TestPackTightFit(t *testing.T) {
	// 31 single-block files use all 32 directory slots and exactly fill
	// the image: 1 KiB of directory plus 31 KiB of data.
	var files []File
	for i := 0; i < 31; i++ {
		files = append(files, File{
			Name: string([]byte{'F', 'I', 'L', 'E', 'A' + byte(i)}) + ".DAT",
			Data: make([]byte, BlockSize),
		})
	}
	image, err := Pack("FULL.ROM", files)
	require.NoError(t, err)

	hdr := parseHeader(logical(t, image))
	assert.EqualValues(t, 32, hdr.DirEntries)
	assert.EqualValues(t, 31*BlockSize, hdr.Checksum)
}

func TestPackDeterministic(t *testing.T) {
	files := []File{
		{Name: "ONE.COM", Data: bytes.Repeat([]byte{0x5A}, 2000)},
		{Name: "TWO.COM", Data: bytes.Repeat([]byte{0xA5}, 300)},
	}
	first, err := Pack("SAME.ROM", files)
	require.NoError(t, err)
	second, err := Pack("SAME.ROM", files)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
