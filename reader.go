// Package elf_inspect reads ELF object, executable, and shared-library
// images without copying them. One set of operations covers all four
// file shapes (32- and 64-bit, little- and big-endian): every view into
// the image carries a format tag fixed when the file is opened, and the
// tag drives both the record layout and the byte order of every field
// read.
//
// Example usage, printing section names:
//
//	raw, e := os.ReadFile("/bin/bash")
//	// if e != nil {...}
//	reader, e := elf_inspect.Open(raw)
//	// if e != nil {...}
//	headers := reader.SectionHeaders()
//	for i := 0; i < headers.Len(); i++ {
//	    shdr, _ := headers.Get(i)
//	    fmt.Printf("Section %d: %s\n", i, reader.SectionName(shdr))
//	}
//
// A Reader is immutable after Open and all views borrow the caller's
// buffer, so views may be shared freely across goroutines as long as
// nobody writes the buffer.
package elf_inspect

import (
	"bytes"
	"math/bits"
)

// SectionData is the interpreted payload of a section. The concrete type
// depends on the section's type field: *StringTable, *SymbolTable,
// *RelTable, *RelaTable, *NoteTable, *DynamicTable, *WordTable,
// *Uninterpreted, or NoBits.
type SectionData interface {
	sectionData()
}

// NoBits is the payload of a section that has no bytes in the file
// (null sections and .bss-style no-bits sections).
type NoBits struct{}

func (NoBits) sectionData() {}

// Uninterpreted is the payload of a section this package has no typed
// interpretation for. Data borrows the image's storage.
type Uninterpreted struct {
	Data []byte
}

func (*Uninterpreted) sectionData() {}

// Section is one fully resolved section: its header view, its name
// (nil when the file has no section-name string table or the name
// offset isn't terminated), and its interpreted payload.
type Section struct {
	Header SectionHeaderRef
	Name   []byte
	Data   SectionData
}

var elfMagic = []byte{Mag0, Mag1, Mag2, Mag3}

// arrayInBounds reports whether an array of num elements of the given
// size starting at offset lies within a buffer of the given length. Any
// overflow in the arithmetic counts as out of bounds.
func arrayInBounds(length, offset, size, num uint64) bool {
	hi, total := bits.Mul64(size, num)
	if hi != 0 {
		return false
	}
	end, carry := bits.Add64(offset, total, 0)
	return carry == 0 && end <= length
}

// Reader provides access to one validated ELF image. It holds the raw
// buffer, the header view, and the pre-discovered indices of the unique
// symbol-table, dynamic-symbol-table, and dynamic sections (0 when the
// file has none). A Reader never writes the buffer, and the buffer must
// outlive every view derived from the Reader.
type Reader struct {
	data         []byte
	format       Format
	header       HeaderRef
	symtabIndex  Word
	dynsymIndex  Word
	dynamicIndex Word
}

// Open validates the byte buffer as an ELF image and returns a Reader
// over it. The buffer is borrowed, not copied. Validation covers the
// magic and identification bytes, the header fields, and the bounds of
// the program header table, the section header table, every segment,
// and every section that occupies file bytes.
func Open(data []byte) (*Reader, error) {
	if len(data) < ehdr32Size || !bytes.Equal(data[:4], elfMagic) {
		return nil, &NotElfFileError{}
	}
	if data[EIVersion] != VersionCurrent {
		return nil, &InvalidHeaderFieldError{
			Header: "ELF",
			Field:  "e_ident[EI_VERSION]",
			Value:  uint64(data[EIVersion]),
		}
	}
	format, err := formatFromIdent(data[EIClass], data[EIData])
	if err != nil {
		return nil, err
	}
	headerSize := ehdrShape.size(format)
	if len(data) < headerSize {
		return nil, &SizeMismatchError{Expected: headerSize, Actual: len(data)}
	}
	headerView, err := newRecordView(format, data[:headerSize], 0, ehdrShape)
	if err != nil {
		return nil, err
	}
	reader := &Reader{
		data:   data,
		format: format,
		header: HeaderRef{headerView},
	}
	if v := reader.header.Version(); v != VersionCurrent {
		return nil, &InvalidHeaderFieldError{
			Header: "ELF",
			Field:  "e_version",
			Value:  uint64(v),
		}
	}

	length := uint64(len(data))
	if entry := reader.header.EntryPoint(); entry > length {
		return nil, &NotContainedInFileError{
			What:  "ELF header field e_entry",
			Which: entry,
		}
	}

	if err := reader.validateProgramHeaders(length); err != nil {
		return nil, err
	}
	if err := reader.validateSectionHeaders(length); err != nil {
		return nil, err
	}
	return reader, nil
}

func (r *Reader) validateProgramHeaders(length uint64) error {
	phoff := r.header.ProgramHeaderOffset()
	if phoff == 0 {
		return nil
	}
	size := uint64(r.header.ProgramHeaderEntrySize())
	num := uint64(r.header.ProgramHeaderEntries())
	if !arrayInBounds(length, phoff, size, num) {
		return &NotContainedInFileError{What: "program headers", Which: phoff}
	}
	if int(size) != phdrShape.size(r.format) {
		return &InvalidHeaderFieldError{
			Header: "ELF",
			Field:  "e_phentsize",
			Value:  size,
		}
	}
	headers, err := r.programHeaders()
	if err != nil {
		return err
	}
	for i := 0; i < headers.Len(); i++ {
		phdr, err := headers.Get(i)
		if err != nil {
			return err
		}
		if !arrayInBounds(length, phdr.FileOffset(), phdr.FileSize(), 1) {
			return &NotContainedInFileError{What: "segment", Which: uint64(i)}
		}
	}
	return nil
}

func (r *Reader) validateSectionHeaders(length uint64) error {
	shoff := r.header.SectionHeaderOffset()
	if shoff == 0 {
		return nil
	}
	size := uint64(r.header.SectionHeaderEntrySize())
	shnum := r.header.SectionHeaderEntries()
	shstrndx := r.header.SectionNamesTable()

	if shnum >= SectionIndexLoReserve {
		return &InvalidHeaderFieldError{
			Header: "ELF",
			Field:  "e_shnum",
			Value:  uint64(shnum),
		}
	}
	if shstrndx >= SectionIndexLoReserve && shstrndx != SectionIndexExtended {
		return &InvalidHeaderFieldError{
			Header: "ELF",
			Field:  "e_shstrndx",
			Value:  uint64(shstrndx),
		}
	}
	if int(size) != shdrShape.size(r.format) {
		return &InvalidHeaderFieldError{
			Header: "ELF",
			Field:  "e_shentsize",
			Value:  size,
		}
	}

	// If the in-header count is 0 (resp. the string-table index is the
	// extended sentinel), section 0's size (resp. link) field holds the
	// real value, so section 0 itself must fit in the file.
	if shnum == 0 || shstrndx == SectionIndexExtended {
		if !arrayInBounds(length, shoff, size, 1) {
			return &NotContainedInFileError{What: "section headers", Which: shoff}
		}
		if _, err := newRecordView(r.format, r.data[shoff:shoff+size], shoff,
			shdrShape); err != nil {
			return err
		}
	}
	num := r.NumSections()
	if !arrayInBounds(length, shoff, size, uint64(num)) {
		return &NotContainedInFileError{
			What:  "section headers",
			Which: shoff + size*uint64(num),
		}
	}

	headers, err := r.sectionHeaders()
	if err != nil {
		return err
	}
	for i := 0; i < headers.Len(); i++ {
		shdr, err := headers.Get(i)
		if err != nil {
			return err
		}
		sectionType := shdr.Type()
		if sectionType != SectionTypeNoBits && sectionType != SectionTypeNull &&
			!arrayInBounds(length, shdr.FileOffset(), shdr.Size(), 1) {
			return &NotContainedInFileError{What: "section", Which: uint64(i)}
		}
		if link := shdr.LinkedIndex(); link >= num {
			return &InvalidHeaderFieldError{
				Header: "section",
				Field:  "sh_link",
				Value:  uint64(link),
			}
		}
		if shdr.Flags()&SectionFlagInfoLink != 0 {
			if info := shdr.Info(); info >= num {
				return &InvalidHeaderFieldError{
					Header: "section",
					Field:  "sh_info",
					Value:  uint64(info),
				}
			}
		}
		switch sectionType {
		case SectionTypeSymbolTable:
			if r.symtabIndex != Word(SectionIndexUndefined) {
				return &MultipleSectionsError{Section: "SYMTAB"}
			}
			r.symtabIndex = Word(i)
		case SectionTypeDynamicSyms:
			if r.dynsymIndex != Word(SectionIndexUndefined) {
				return &MultipleSectionsError{Section: "DYNSYM"}
			}
			r.dynsymIndex = Word(i)
		case SectionTypeDynamic:
			if r.dynamicIndex != Word(SectionIndexUndefined) {
				return &MultipleSectionsError{Section: "DYNAMIC"}
			}
			r.dynamicIndex = Word(i)
		}
	}
	return nil
}

// Format returns the tag every view derived from this Reader carries.
func (r *Reader) Format() Format {
	return r.format
}

// LittleEndian returns true if the image is little-endian.
func (r *Reader) LittleEndian() bool {
	return r.format.LittleEndian()
}

// Is64Bit returns true if the image is 64-bit.
func (r *Reader) Is64Bit() bool {
	return r.format.Is64Bit()
}

// Header returns the file header view.
func (r *Reader) Header() HeaderRef {
	return r.header
}

func (r *Reader) programHeaders() (ProgramHeadersRef, error) {
	phoff := r.header.ProgramHeaderOffset()
	entrySize := uint64(r.header.ProgramHeaderEntrySize())
	var num uint64
	if phoff != 0 {
		num = uint64(r.header.ProgramHeaderEntries())
	}
	raw := r.data[phoff : phoff+entrySize*num]
	view, err := newSliceView(r.format, raw, phoff, phdrShape)
	if err != nil {
		return ProgramHeadersRef{}, err
	}
	return ProgramHeadersRef{view}, nil
}

// ProgramHeaders returns the program header table view. The table is
// empty when the file has no program headers.
func (r *Reader) ProgramHeaders() ProgramHeadersRef {
	headers, _ := r.programHeaders()
	return headers
}

// SegmentData returns the bytes the segment occupies in the file, or nil
// for null segments. The slice borrows the image's storage.
func (r *Reader) SegmentData(phdr ProgramHeaderRef) []byte {
	if phdr.Type() == SegmentTypeNull {
		return nil
	}
	offset := phdr.FileOffset()
	return r.data[offset : offset+phdr.FileSize()]
}

// section0 returns the header of section 0. Only call when the file has
// sections.
func (r *Reader) section0() SectionHeaderRef {
	shoff := r.header.SectionHeaderOffset()
	entrySize := uint64(r.header.SectionHeaderEntrySize())
	view, _ := newRecordView(r.format, r.data[shoff:shoff+entrySize], shoff, shdrShape)
	return SectionHeaderRef{view, 0}
}

// NumSections returns the number of sections, resolving the extended
// convention: when the in-header count is 0 but the file has a section
// header table, section 0's size field holds the real count.
func (r *Reader) NumSections() Word {
	if r.header.SectionHeaderOffset() == 0 {
		return 0
	}
	if shnum := r.header.SectionHeaderEntries(); shnum > 0 {
		return Word(shnum)
	}
	return Word(r.section0().Size())
}

// SectionStringTableIndex returns the index of the section-name string
// table, resolving the extended convention: the extended sentinel in the
// header means section 0's link field holds the real index. The second
// result is false when the file has no section-name string table.
func (r *Reader) SectionStringTableIndex() (Word, bool) {
	shstrndx := r.header.SectionNamesTable()
	if shstrndx == SectionIndexUndefined {
		return 0, false
	}
	if shstrndx == SectionIndexExtended {
		return r.section0().LinkedIndex(), true
	}
	return Word(shstrndx), true
}

func (r *Reader) sectionHeaders() (SectionHeadersRef, error) {
	shoff := r.header.SectionHeaderOffset()
	entrySize := uint64(r.header.SectionHeaderEntrySize())
	num := uint64(r.NumSections())
	raw := r.data[shoff : shoff+entrySize*num]
	view, err := newSliceView(r.format, raw, shoff, shdrShape)
	if err != nil {
		return SectionHeadersRef{}, err
	}
	return SectionHeadersRef{view}, nil
}

// SectionHeaders returns the section header table view. The table is
// empty when the file has no sections.
func (r *Reader) SectionHeaders() SectionHeadersRef {
	headers, _ := r.sectionHeaders()
	return headers
}

// sectionStringTable returns the section-name string table, or nil when
// the file doesn't have one.
func (r *Reader) sectionStringTable() (*StringTable, error) {
	index, ok := r.SectionStringTableIndex()
	if !ok {
		return nil, nil
	}
	shdr, err := r.SectionHeaders().Get(int(index))
	if err != nil {
		return nil, err
	}
	if shdr.Type() != SectionTypeStringTable {
		return nil, &InvalidSectionTypeError{
			Expected: SectionTypeStringTable,
			Actual:   shdr.Type(),
		}
	}
	data, err := r.sectionData(shdr)
	if err != nil {
		return nil, err
	}
	return data.(*StringTable), nil
}

// SectionName resolves the section's name through the section-name
// string table. It returns an empty slice when the table is absent or
// the name offset isn't terminated.
func (r *Reader) SectionName(shdr SectionHeaderRef) []byte {
	strings, err := r.sectionStringTable()
	if err != nil || strings == nil {
		return []byte{}
	}
	name, ok := strings.GetString(shdr.NameIndex())
	if !ok {
		return []byte{}
	}
	return name
}

// sectionBytes returns the file bytes of a section that occupies some.
func (r *Reader) sectionBytes(shdr SectionHeaderRef) []byte {
	offset := shdr.FileOffset()
	return r.data[offset : offset+shdr.Size()]
}

// linkedStringTable resolves a section link that must name a string
// table. Any failure, including a wrong section type, reports the link
// as invalid.
func (r *Reader) linkedStringTable(index Word) (*StringTable, error) {
	// The type gate runs before interpretation so a symbol table whose
	// link points back at a symbol table (itself included) fails here
	// instead of recursing.
	shdr, err := r.SectionHeaders().Get(int(index))
	if err != nil || shdr.Type() != SectionTypeStringTable {
		return nil, &InvalidLinkedSectionError{Linked: index}
	}
	data, err := r.sectionData(shdr)
	if err != nil {
		return nil, &InvalidLinkedSectionError{Linked: index}
	}
	return data.(*StringTable), nil
}

// linkedSymbolTable resolves a section link that must name a symbol
// table (SYMTAB or DYNSYM).
func (r *Reader) linkedSymbolTable(index Word) (*SymbolTable, error) {
	shdr, err := r.SectionHeaders().Get(int(index))
	if err != nil {
		return nil, &InvalidLinkedSectionError{Linked: index}
	}
	if t := shdr.Type(); t != SectionTypeSymbolTable && t != SectionTypeDynamicSyms {
		return nil, &InvalidLinkedSectionError{Linked: index}
	}
	data, err := r.sectionData(shdr)
	if err != nil {
		return nil, &InvalidLinkedSectionError{Linked: index}
	}
	return data.(*SymbolTable), nil
}

// extendedIndexTable finds the SYMTAB_SHNDX section whose link field
// names the symbol table at ownerIndex, or nil if the file has none.
func (r *Reader) extendedIndexTable(ownerIndex Word) (*WordsRef, error) {
	headers := r.SectionHeaders()
	for i := 0; i < headers.Len(); i++ {
		shdr, err := headers.Get(i)
		if err != nil {
			return nil, err
		}
		if shdr.Type() != SectionTypeSymtabShndx ||
			shdr.LinkedIndex() != ownerIndex {
			continue
		}
		view, err := newSliceView(r.format, r.sectionBytes(shdr),
			shdr.FileOffset(), wordShape)
		if err != nil {
			return nil, err
		}
		return &WordsRef{view}, nil
	}
	return nil, nil
}

// sectionData interprets a section's contents per its type.
func (r *Reader) sectionData(shdr SectionHeaderRef) (SectionData, error) {
	sectionType := shdr.Type()
	if sectionType == SectionTypeNull || sectionType == SectionTypeNoBits {
		return NoBits{}, nil
	}
	raw := r.sectionBytes(shdr)
	offset := shdr.FileOffset()
	switch sectionType {
	case SectionTypeStringTable:
		return &StringTable{data: raw}, nil
	case SectionTypeSymbolTable, SectionTypeDynamicSyms:
		names, err := r.linkedStringTable(shdr.LinkedIndex())
		if err != nil {
			return nil, err
		}
		view, err := newSliceView(r.format, raw, offset, symShape)
		if err != nil {
			return nil, err
		}
		shndx, err := r.extendedIndexTable(shdr.Index())
		if err != nil {
			return nil, err
		}
		return &SymbolTable{
			names:   names,
			entries: SymbolEntriesRef{view},
			shndx:   shndx,
		}, nil
	case SectionTypeRel:
		symbols, err := r.linkedSymbolTable(shdr.LinkedIndex())
		if err != nil {
			return nil, err
		}
		view, err := newSliceView(r.format, raw, offset, relShape)
		if err != nil {
			return nil, err
		}
		return &RelTable{symbols: symbols, entries: RelEntriesRef{view}}, nil
	case SectionTypeRela:
		symbols, err := r.linkedSymbolTable(shdr.LinkedIndex())
		if err != nil {
			return nil, err
		}
		view, err := newSliceView(r.format, raw, offset, relaShape)
		if err != nil {
			return nil, err
		}
		return &RelaTable{symbols: symbols, entries: RelaEntriesRef{view}}, nil
	case SectionTypeNote:
		if _, err := newSliceView(r.format, raw, offset, noteWordShape); err != nil {
			return nil, err
		}
		return &NoteTable{format: r.format, data: raw}, nil
	case SectionTypeDynamic:
		strings, err := r.linkedStringTable(shdr.LinkedIndex())
		if err != nil {
			return nil, err
		}
		view, err := newSliceView(r.format, raw, offset, dynShape)
		if err != nil {
			return nil, err
		}
		return &DynamicTable{strings: strings, entries: DynamicEntriesRef{view}}, nil
	case SectionTypeHash, SectionTypeSymtabShndx:
		view, err := newSliceView(r.format, raw, offset, wordShape)
		if err != nil {
			return nil, err
		}
		return &WordTable{Words: WordsRef{view}}, nil
	}
	return &Uninterpreted{Data: raw}, nil
}

// GetSection resolves a section header into a full Section: the header,
// the section's name, and the interpreted payload.
func (r *Reader) GetSection(shdr SectionHeaderRef) (*Section, error) {
	strings, err := r.sectionStringTable()
	if err != nil {
		return nil, err
	}
	var name []byte
	if strings != nil {
		name, _ = strings.GetString(shdr.NameIndex())
	}
	data, err := r.sectionData(shdr)
	if err != nil {
		return nil, err
	}
	return &Section{Header: shdr, Name: name, Data: data}, nil
}

// SectionIter iterates over interpreted sections in file order.
// Interpretation errors are surfaced in-band: Next returns the error for
// the failing section and moves on, so a caller may keep iterating past
// a corrupt section or stop, as it prefers.
type SectionIter struct {
	reader  *Reader
	headers SectionHeadersRef
	next    int
	pred    func(SectionHeaderRef) bool
}

// Next returns the next section, or nil, nil when the iterator is
// exhausted. Calling Next after exhaustion keeps returning nil, nil.
func (it *SectionIter) Next() (*Section, error) {
	for it.next < it.headers.Len() {
		shdr, err := it.headers.Get(it.next)
		it.next++
		if err != nil {
			return nil, err
		}
		if it.pred != nil && !it.pred(shdr) {
			continue
		}
		return it.reader.GetSection(shdr)
	}
	return nil, nil
}

// Sections returns an iterator over all sections in file order.
func (r *Reader) Sections() *SectionIter {
	return &SectionIter{reader: r, headers: r.SectionHeaders()}
}

// SectionsMatching returns an iterator over the sections whose headers
// the predicate accepts. The predicate runs on the header view, before
// the section is interpreted.
func (r *Reader) SectionsMatching(pred func(SectionHeaderRef) bool) *SectionIter {
	return &SectionIter{reader: r, headers: r.SectionHeaders(), pred: pred}
}

func (r *Reader) uniqueSection(index Word) (*Section, error) {
	if index == Word(SectionIndexUndefined) {
		return nil, nil
	}
	shdr, err := r.SectionHeaders().Get(int(index))
	if err != nil {
		return nil, err
	}
	return r.GetSection(shdr)
}

// Symtab returns the file's symbol-table section, or nil, nil when it
// has none.
func (r *Reader) Symtab() (*Section, error) {
	return r.uniqueSection(r.symtabIndex)
}

// Dynsym returns the file's dynamic-symbol-table section, or nil, nil
// when it has none.
func (r *Reader) Dynsym() (*Section, error) {
	return r.uniqueSection(r.dynsymIndex)
}

// Dynamic returns the file's dynamic section, or nil, nil when it has
// none.
func (r *Reader) Dynamic() (*Section, error) {
	return r.uniqueSection(r.dynamicIndex)
}
