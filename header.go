package elf_inspect

// HeaderRef is a view of the file header. Apart from the identification
// bytes, which are returned raw, every field is byte-swapped per the tag
// and widened to its 64-bit analogue.
type HeaderRef struct {
	recordView
}

// Ident returns the 16 identification bytes, unswapped.
func (h HeaderRef) Ident() []byte {
	return h.raw[:IdentSize]
}

// Type returns the file type (relocatable, executable, shared, core).
func (h HeaderRef) Type() Half {
	return h.halfAt(16, 16)
}

// Machine returns the architecture the file targets.
func (h HeaderRef) Machine() Half {
	return h.halfAt(18, 18)
}

// Version returns the file version field.
func (h HeaderRef) Version() Word {
	return h.wordAt(20, 20)
}

// EntryPoint returns the virtual address execution starts at.
func (h HeaderRef) EntryPoint() Xword {
	return h.xwordAt(24, 24)
}

// ProgramHeaderOffset returns the file offset of the program header
// table, or 0 if the file has none.
func (h HeaderRef) ProgramHeaderOffset() Xword {
	return h.xwordAt(28, 32)
}

// SectionHeaderOffset returns the file offset of the section header
// table, or 0 if the file has none.
func (h HeaderRef) SectionHeaderOffset() Xword {
	return h.xwordAt(32, 40)
}

// Flags returns the processor-specific flags.
func (h HeaderRef) Flags() Word {
	return h.wordAt(36, 48)
}

// HeaderSize returns the size the header claims for itself.
func (h HeaderRef) HeaderSize() Half {
	return h.halfAt(40, 52)
}

// ProgramHeaderEntrySize returns the size of one program header entry.
func (h HeaderRef) ProgramHeaderEntrySize() Half {
	return h.halfAt(42, 54)
}

// ProgramHeaderEntries returns the number of program header entries.
func (h HeaderRef) ProgramHeaderEntries() Half {
	return h.halfAt(44, 56)
}

// SectionHeaderEntrySize returns the size of one section header entry.
func (h HeaderRef) SectionHeaderEntrySize() Half {
	return h.halfAt(46, 58)
}

// SectionHeaderEntries returns the in-header section count. A value of 0
// with a nonzero section header offset means the real count lives in
// section 0's size field; use Reader.NumSections for the resolved count.
func (h HeaderRef) SectionHeaderEntries() Half {
	return h.halfAt(48, 60)
}

// SectionNamesTable returns the in-header index of the section-name
// string table. The extended-index sentinel means the real index lives
// in section 0's link field; use Reader.SectionStringTableIndex for the
// resolved index.
func (h HeaderRef) SectionNamesTable() Half {
	return h.halfAt(50, 62)
}
