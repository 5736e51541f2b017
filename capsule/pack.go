// epson-rom-tools - https://github.com/NaturalTangent/epson-rom-tools
// pack.go - Image assembly (encode path)
// Dual-licensed under MIT and Apache 2.0

package capsule

import "github.com/pkg/errors"

// File is one file carried by a capsule: an 8.3 name such as "README.TXT"
// and its raw content. On decode the content is always a whole number of
// 1 KiB blocks, since the format does not record exact byte lengths.
type File struct {
	Name string
	Data []byte
}

// Pack assembles a 256 kbit M-format capsule image from files, in order.
// romName is embedded in the header, truncated to 14 bytes. The returned
// buffer is the physical image, ready to burn: the logical layout with the
// 16 KiB halves swapped.
func Pack(romName string, files []File) ([]byte, error) {
	a := newAllocator()
	for _, f := range files {
		fn, err := splitFileName(f.Name)
		if err != nil {
			return nil, err
		}
		if err := a.addFile(fn, f.Data); err != nil {
			return nil, err
		}
	}

	hdr := newHeader(romName)
	hdr.DirEntries = byte(roundDirEntries(a.usedSlots()))
	hdr.Checksum = uint16(len(a.fileArea))

	dirSize := int(hdr.DirEntries) * EntrySize
	if dirSize+len(a.fileArea) > ImageSize {
		return nil, errors.Wrapf(ErrOutOfImageSpace,
			"%d directory + %d file bytes exceed %d", dirSize, len(a.fileArea), ImageSize)
	}

	// The directory buffer starts as all-invalid slots: every byte 0xE5,
	// which doubles as the invalid marker.
	directory := make([]byte, MaxDirEntries*EntrySize)
	for i := range directory {
		directory[i] = EntryInvalid
	}
	hdr.marshal(directory)
	for i := range a.entries {
		a.entries[i].marshal(directory[(i+1)*EntrySize:])
	}

	image := make([]byte, ImageSize)
	for i := range image {
		image[i] = FillerByte
	}
	copy(image, directory[:dirSize])
	copy(image[dirSize:], a.fileArea)

	if hdr.Capacity == Capacity256kbit {
		swapHalves(image)
	}

	return image, nil
}
