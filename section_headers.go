package elf_inspect

// SectionHeaderRef is a view of one section header entry. It also
// remembers its index in the section header table, which the reader
// needs when resolving companion sections (a symbol table's extended
// index section names its owner by table index).
type SectionHeaderRef struct {
	recordView
	index Word
}

// Index returns the entry's position in the section header table.
func (s SectionHeaderRef) Index() Word {
	return s.index
}

// NameIndex returns the offset of the section's name in the
// section-name string table.
func (s SectionHeaderRef) NameIndex() Word {
	return s.wordAt(0, 0)
}

// Type returns the section type.
func (s SectionHeaderRef) Type() Word {
	return s.wordAt(4, 4)
}

// Flags returns the section flags.
func (s SectionHeaderRef) Flags() Xword {
	return s.xwordAt(8, 8)
}

// VirtualAddress returns the address the section is mapped at, or 0 if
// it isn't mapped.
func (s SectionHeaderRef) VirtualAddress() Xword {
	return s.xwordAt(12, 16)
}

// FileOffset returns the section's offset in the file.
func (s SectionHeaderRef) FileOffset() Xword {
	return s.xwordAt(16, 24)
}

// Size returns the section's size in bytes.
func (s SectionHeaderRef) Size() Xword {
	return s.xwordAt(20, 32)
}

// LinkedIndex returns the index of the section this one links to; what
// it means depends on the section type.
func (s SectionHeaderRef) LinkedIndex() Word {
	return s.wordAt(24, 40)
}

// Info returns the section's extra information field; what it means
// depends on the section type.
func (s SectionHeaderRef) Info() Word {
	return s.wordAt(28, 44)
}

// AddrAlign returns the section's address alignment requirement.
func (s SectionHeaderRef) AddrAlign() Xword {
	return s.xwordAt(32, 48)
}

// EntrySize returns the size of one entry for sections that hold a table
// of fixed-size records, or 0 otherwise.
func (s SectionHeaderRef) EntrySize() Xword {
	return s.xwordAt(36, 56)
}

// SectionHeadersRef is a view of the section header table.
type SectionHeadersRef struct {
	sliceView
}

// Get returns a view of the entry at the given index.
func (s SectionHeadersRef) Get(index int) (SectionHeaderRef, error) {
	record, err := s.record(index)
	if err != nil {
		return SectionHeaderRef{}, err
	}
	return SectionHeaderRef{record, Word(index)}, nil
}
