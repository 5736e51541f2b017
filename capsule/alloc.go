// epson-rom-tools - https://github.com/NaturalTangent/epson-rom-tools
// alloc.go - Block allocation and extent chaining
// Dual-licensed under MIT and Apache 2.0

package capsule

import "github.com/pkg/errors"

// allocator owns the directory and file area of one image build. Block IDs
// are handed out from a single cursor starting at 1 and never reset, and
// directory slots are claimed sequentially from slot 1, so the layout is a
// deterministic function of file order.
type allocator struct {
	entries   []DirEntry // file slots in slot order; entries[i] lives in slot i+1
	nextBlock byte       // next 1 KiB block ID, 1-based
	fileArea  []byte
}

func newAllocator() *allocator {
	return &allocator{nextBlock: 1}
}

// usedSlots counts the claimed directory slots including the header slot.
func (a *allocator) usedSlots() int {
	return 1 + len(a.entries)
}

// claimSlot opens the next directory slot as extent number ext of fn.
func (a *allocator) claimSlot(fn fileName, ext byte) (*DirEntry, error) {
	if a.usedSlots() >= MaxDirEntries {
		return nil, errors.Wrapf(ErrOutOfDirectorySpace, "%s", fn)
	}
	a.entries = append(a.entries, DirEntry{
		Validity: EntryValid,
		Name:     fn.padName(),
		Type:     fn.padType(),
		Extent:   ext,
	})
	return &a.entries[len(a.entries)-1], nil
}

// addFile appends the content of one file to the file area, claiming
// directory slots and block IDs as it goes.
func (a *allocator) addFile(fn fileName, data []byte) error {
	padded := padToBlocks(data)

	var ext byte
	entry, err := a.claimSlot(fn, ext)
	if err != nil {
		return err
	}

	allocIndex := 0
	for off := 0; off < len(padded); off += BlockSize {
		if allocIndex >= AllocationMapLen {
			// Extent full; chain into the next directory slot.
			ext++
			entry, err = a.claimSlot(fn, ext)
			if err != nil {
				return err
			}
			allocIndex = 0
		}

		entry.RecordCount += RecordsPerBlock
		entry.AllocationMap[allocIndex] = a.nextBlock
		allocIndex++
		a.nextBlock++

		a.fileArea = append(a.fileArea, padded[off:off+BlockSize]...)
	}

	return nil
}

// padToBlocks rounds data up to a whole number of 1 KiB blocks. The pad
// bytes each carry the pad length truncated to a byte; this is the format's
// behavior, not zero fill.
func padToBlocks(data []byte) []byte {
	rem := len(data) % BlockSize
	if rem == 0 {
		return data
	}

	pad := BlockSize - rem
	padded := make([]byte, len(data)+pad)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(pad)
	}
	return padded
}

// roundDirEntries rounds a used slot count up to the multiple of 4 stored in
// the header's dir_entries field.
func roundDirEntries(used int) int {
	return (used + 3) &^ 3
}
