package elf_inspect

// SymbolEntryRef is a view of one raw symbol table entry. The 32- and
// 64-bit layouts order the fields differently; the accessors hide that.
type SymbolEntryRef struct {
	recordView
}

// NameIndex returns the offset of the symbol's name in the companion
// string table.
func (s SymbolEntryRef) NameIndex() Word {
	return s.wordAt(0, 0)
}

// Value returns the symbol's value, usually an address.
func (s SymbolEntryRef) Value() Xword {
	return s.xwordAt(4, 8)
}

// Size returns the symbol's size in bytes.
func (s SymbolEntryRef) Size() Xword {
	return s.xwordAt(8, 16)
}

// Info returns the packed binding and type field.
func (s SymbolEntryRef) Info() uint8 {
	return s.byteAt(12, 4)
}

// Other returns the field holding the symbol's visibility.
func (s SymbolEntryRef) Other() uint8 {
	return s.byteAt(13, 5)
}

// SectionIndexRaw returns the raw section index field, reserved
// sentinels included.
func (s SymbolEntryRef) SectionIndexRaw() Half {
	return s.halfAt(14, 6)
}

// SymbolEntriesRef is a view of the raw entry array of a symbol table.
type SymbolEntriesRef struct {
	sliceView
}

// Get returns a view of the entry at the given index.
func (s SymbolEntriesRef) Get(index int) (SymbolEntryRef, error) {
	record, err := s.record(index)
	if err != nil {
		return SymbolEntryRef{}, err
	}
	return SymbolEntryRef{record}, nil
}

// SectionIndex is a symbol's interpreted section index: either a normal
// index into the section header table (possibly recovered from an
// extended-index section; the undefined index 0 is a normal index) or
// one of the reserved sentinel values (absolute, common, OS- or
// processor-reserved).
type SectionIndex struct {
	value    Word
	reserved bool
}

// NormalSectionIndex returns a SectionIndex holding a real table index.
func NormalSectionIndex(index Word) SectionIndex {
	return SectionIndex{value: index}
}

// ReservedSectionIndex returns a SectionIndex holding a reserved
// sentinel.
func ReservedSectionIndex(value Half) SectionIndex {
	return SectionIndex{value: Word(value), reserved: true}
}

// Normal returns the table index and true if the index is a real one.
func (s SectionIndex) Normal() (Word, bool) {
	if s.reserved {
		return 0, false
	}
	return s.value, true
}

// Reserved returns the sentinel value and true if the index is reserved.
func (s SectionIndex) Reserved() (Half, bool) {
	if !s.reserved {
		return 0, false
	}
	return Half(s.value), true
}

// Symbol is one interpreted symbol table entry. Name borrows the
// companion string table's storage and is nil when the name offset has
// no terminated string.
type Symbol struct {
	Name    []byte
	Section SectionIndex
	Value   Xword
	Size    Xword
	Info    uint8
	Other   uint8
}

// Binding returns the symbol's binding (the high nibble of Info).
func (s *Symbol) Binding() uint8 {
	return (s.Info >> 4) & 0xf
}

// SymbolType returns the symbol's type (the low nibble of Info).
func (s *Symbol) SymbolType() uint8 {
	return s.Info & 0xf
}

// Visibility returns the symbol's visibility (the low two bits of
// Other).
func (s *Symbol) Visibility() uint8 {
	return s.Other & 3
}

// SymbolTable is the payload of a symbol-table section: the raw entries,
// the companion string table the entries name symbols in, and, when the
// file has one, the extended-section-index side table.
type SymbolTable struct {
	names   *StringTable
	entries SymbolEntriesRef
	shndx   *WordsRef
}

// Len returns the number of entries in the table.
func (t *SymbolTable) Len() int {
	return t.entries.Len()
}

// IsEmpty returns true if the table has no entries.
func (t *SymbolTable) IsEmpty() bool {
	return t.entries.Len() == 0
}

// Entries returns the raw entry view.
func (t *SymbolTable) Entries() SymbolEntriesRef {
	return t.entries
}

// Names returns the companion string table.
func (t *SymbolTable) Names() *StringTable {
	return t.names
}

// Get interprets the entry at the given index. A raw section index below
// the reserved range is a normal index; the extended sentinel is
// resolved through the side table (an error if the file has none); any
// other reserved value is passed through as-is.
func (t *SymbolTable) Get(index int) (Symbol, error) {
	entry, err := t.entries.Get(index)
	if err != nil {
		return Symbol{}, err
	}
	raw := entry.SectionIndexRaw()
	var section SectionIndex
	switch {
	case raw < SectionIndexLoReserve:
		section = NormalSectionIndex(Word(raw))
	case raw == SectionIndexExtended:
		if t.shndx == nil {
			return Symbol{}, &MessageError{
				Text: "no associated SYMTAB_SHNDX section for symbol",
			}
		}
		extended, err := t.shndx.Get(index)
		if err != nil {
			return Symbol{}, err
		}
		section = NormalSectionIndex(extended)
	default:
		section = ReservedSectionIndex(raw)
	}
	name, _ := t.names.GetString(entry.NameIndex())
	return Symbol{
		Name:    name,
		Section: section,
		Value:   entry.Value(),
		Size:    entry.Size(),
		Info:    entry.Info(),
		Other:   entry.Other(),
	}, nil
}

func (t *SymbolTable) sectionData() {}
