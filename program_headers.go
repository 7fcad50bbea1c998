package elf_inspect

// ProgramHeaderRef is a view of one program header (segment) entry.
type ProgramHeaderRef struct {
	recordView
}

// Type returns the segment type.
func (p ProgramHeaderRef) Type() Word {
	return p.wordAt(0, 0)
}

// Flags returns the segment's read/write/execute flags. The 64-bit
// layout moves this field up next to the type.
func (p ProgramHeaderRef) Flags() Word {
	return p.wordAt(24, 4)
}

// FileOffset returns the segment's offset in the file.
func (p ProgramHeaderRef) FileOffset() Xword {
	return p.xwordAt(4, 8)
}

// VirtualAddress returns the address the segment is mapped at.
func (p ProgramHeaderRef) VirtualAddress() Xword {
	return p.xwordAt(8, 16)
}

// PhysicalAddress returns the segment's physical address, on systems
// where that is meaningful.
func (p ProgramHeaderRef) PhysicalAddress() Xword {
	return p.xwordAt(12, 24)
}

// FileSize returns the number of bytes the segment occupies in the file.
func (p ProgramHeaderRef) FileSize() Xword {
	return p.xwordAt(16, 32)
}

// MemorySize returns the number of bytes the segment occupies in memory.
func (p ProgramHeaderRef) MemorySize() Xword {
	return p.xwordAt(20, 40)
}

// Align returns the segment's alignment requirement.
func (p ProgramHeaderRef) Align() Xword {
	return p.xwordAt(28, 48)
}

// ProgramHeadersRef is a view of the program header table.
type ProgramHeadersRef struct {
	sliceView
}

// Get returns a view of the entry at the given index.
func (p ProgramHeadersRef) Get(index int) (ProgramHeaderRef, error) {
	record, err := p.record(index)
	if err != nil {
		return ProgramHeaderRef{}, err
	}
	return ProgramHeaderRef{record}, nil
}
