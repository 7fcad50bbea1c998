package elf_inspect

import "bytes"

// StringTable wraps the contents of a string-table section. Strings are
// referenced by byte offset; each runs from its offset to the next null
// byte.
type StringTable struct {
	data []byte
}

// GetString returns the null-terminated byte sequence starting at the
// given offset, without the terminator. It returns nil, false when the
// offset is past the end of the table or no terminator follows it. The
// returned slice borrows the table's storage.
func (t *StringTable) GetString(offset Word) ([]byte, bool) {
	if uint64(offset) >= uint64(len(t.data)) {
		return nil, false
	}
	end := bytes.IndexByte(t.data[offset:], 0)
	if end < 0 {
		return nil, false
	}
	return t.data[offset : int(offset)+end], true
}

// Size returns the table's size in bytes.
func (t *StringTable) Size() int {
	return len(t.data)
}

func (t *StringTable) sectionData() {}
