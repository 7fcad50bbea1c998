package elf_inspect

// NoteTable is the payload of a note section: a stream of
// variable-length {name, type, descriptor} records. Each record starts
// with three words (4 bytes each in 32-bit files, 8 in 64-bit files):
// the name size, the descriptor size, and the note type. The name and
// descriptor bytes follow, each padded up to the word size.
type NoteTable struct {
	format Format
	data   []byte
}

// Note is one record of a note section. Name is the record's name
// without its terminating null, or nil when the name size was zero.
// Desc is the raw descriptor bytes. Both borrow the image's storage.
type Note struct {
	Name []byte
	Desc []byte
	Type Xword
}

// Iter returns a forward-only iterator over the table's records.
func (t *NoteTable) Iter() *NoteIter {
	return &NoteIter{format: t.format, data: t.data}
}

func (t *NoteTable) sectionData() {}

// NoteIter walks a note stream. Iteration stops when the remaining bytes
// can't hold a complete record.
type NoteIter struct {
	format Format
	data   []byte
}

func (it *NoteIter) word(offset int) Xword {
	if it.format.Is64Bit() {
		return it.format.ByteOrder().Uint64(it.data[offset:])
	}
	return Xword(it.format.ByteOrder().Uint32(it.data[offset:]))
}

// Next returns the next record, or nil, false when the stream is
// exhausted.
func (it *NoteIter) Next() (*Note, bool) {
	size := wordSize
	if it.format.Is64Bit() {
		size = 8
	}
	mask := size - 1
	if len(it.data) < 3*size {
		return nil, false
	}
	nameSize := int(it.word(0))
	descSize := int(it.word(size))
	noteType := it.word(2 * size)
	if nameSize < 0 || descSize < 0 {
		return nil, false
	}
	offset := 3 * size
	total := offset + ((nameSize + mask) &^ mask) + ((descSize + mask) &^ mask)
	if total < offset || len(it.data) < total {
		return nil, false
	}
	// A zero name size means the record has no name at all; otherwise the
	// size counts a terminating null that isn't part of the name.
	var name []byte
	if nameSize > 0 {
		name = it.data[offset : offset+nameSize-1]
		offset += (nameSize + mask) &^ mask
	}
	var desc []byte
	if descSize > 0 {
		desc = it.data[offset : offset+descSize]
		offset += (descSize + mask) &^ mask
	}
	it.data = it.data[offset:]
	return &Note{Name: name, Desc: desc, Type: noteType}, true
}
