package elf_inspect

// WordsRef is a view of an array of 32-bit words. Hash sections and
// extended-section-index sections hold these in both file classes.
type WordsRef struct {
	sliceView
}

// Get returns the word at the given index, byte-swapped per the tag.
func (w WordsRef) Get(index int) (Word, error) {
	record, err := w.record(index)
	if err != nil {
		return 0, err
	}
	return record.format.ByteOrder().Uint32(record.raw), nil
}

// WordTable is the payload of a section whose contents are an array of
// words (hash tables, extended-section-index tables).
type WordTable struct {
	// Words is the section's contents as a tagged word slice.
	Words WordsRef
}

func (t *WordTable) sectionData() {}

// HashSymbolName computes the classic ELF hash of a symbol name, as used
// by hash-table sections to bucket symbols. The hash runs up to the
// first null byte, if any.
func HashSymbolName(name []byte) Word {
	var hash, highBits Word
	for _, c := range name {
		if c == 0 {
			break
		}
		hash = (hash << 4) + Word(c)
		highBits = hash & 0xf0000000
		if highBits != 0 {
			hash ^= highBits >> 24
		}
		hash &= ^highBits
	}
	return hash
}
