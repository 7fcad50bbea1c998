package elf_inspect

// RelEntryRef is a view of one relocation entry without an addend. The
// info field packs the symbol index and relocation type; the split
// differs between the classes (24/8 bits for 32-bit files, 32/32 for
// 64-bit files).
type RelEntryRef struct {
	recordView
}

// Offset returns the location the relocation applies to.
func (r RelEntryRef) Offset() Xword {
	return r.xwordAt(0, 0)
}

// Info returns the raw combined symbol-index/type field, widened.
func (r RelEntryRef) Info() Xword {
	return r.xwordAt(4, 8)
}

// SymbolIndex returns the index of the symbol the relocation refers to.
func (r RelEntryRef) SymbolIndex() Word {
	if r.format.Is64Bit() {
		return Word(r.Info() >> 32)
	}
	return Word(r.Info() >> 8)
}

// RelocationType returns the machine-specific relocation type.
func (r RelEntryRef) RelocationType() Word {
	if r.format.Is64Bit() {
		return Word(r.Info() & 0xffffffff)
	}
	return Word(r.Info() & 0xff)
}

// RelEntriesRef is a view of the entry array of a Rel section.
type RelEntriesRef struct {
	sliceView
}

// Get returns a view of the entry at the given index.
func (r RelEntriesRef) Get(index int) (RelEntryRef, error) {
	record, err := r.record(index)
	if err != nil {
		return RelEntryRef{}, err
	}
	return RelEntryRef{record}, nil
}

// RelaEntryRef is a view of one relocation entry with an explicit
// addend.
type RelaEntryRef struct {
	recordView
}

// Offset returns the location the relocation applies to.
func (r RelaEntryRef) Offset() Xword {
	return r.xwordAt(0, 0)
}

// Info returns the raw combined symbol-index/type field, widened.
func (r RelaEntryRef) Info() Xword {
	return r.xwordAt(4, 8)
}

// SymbolIndex returns the index of the symbol the relocation refers to.
func (r RelaEntryRef) SymbolIndex() Word {
	if r.format.Is64Bit() {
		return Word(r.Info() >> 32)
	}
	return Word(r.Info() >> 8)
}

// RelocationType returns the machine-specific relocation type.
func (r RelaEntryRef) RelocationType() Word {
	if r.format.Is64Bit() {
		return Word(r.Info() & 0xffffffff)
	}
	return Word(r.Info() & 0xff)
}

// Addend returns the signed addend, sign-extended for 32-bit files.
func (r RelaEntryRef) Addend() Sxword {
	return r.sxwordAt(8, 16)
}

// RelaEntriesRef is a view of the entry array of a Rela section.
type RelaEntriesRef struct {
	sliceView
}

// Get returns a view of the entry at the given index.
func (r RelaEntriesRef) Get(index int) (RelaEntryRef, error) {
	record, err := r.record(index)
	if err != nil {
		return RelaEntryRef{}, err
	}
	return RelaEntryRef{record}, nil
}

// RelTable is the payload of a relocation section without addends: the
// entries plus the symbol table the section's link field names.
type RelTable struct {
	symbols *SymbolTable
	entries RelEntriesRef
}

// Len returns the number of relocations in the table.
func (t *RelTable) Len() int {
	return t.entries.Len()
}

// Entries returns the raw entry view.
func (t *RelTable) Entries() RelEntriesRef {
	return t.entries
}

// Symbols returns the companion symbol table.
func (t *RelTable) Symbols() *SymbolTable {
	return t.symbols
}

func (t *RelTable) sectionData() {}

// RelaTable is the payload of a relocation section with addends.
type RelaTable struct {
	symbols *SymbolTable
	entries RelaEntriesRef
}

// Len returns the number of relocations in the table.
func (t *RelaTable) Len() int {
	return t.entries.Len()
}

// Entries returns the raw entry view.
func (t *RelaTable) Entries() RelaEntriesRef {
	return t.entries
}

// Symbols returns the companion symbol table.
func (t *RelaTable) Symbols() *SymbolTable {
	return t.symbols
}

func (t *RelaTable) sectionData() {}
