package elf_inspect

// DynamicEntryRef is a view of one dynamic-table entry: a tag and a
// value whose meaning (address or plain number) depends on the tag.
type DynamicEntryRef struct {
	recordView
}

// Tag returns the entry's tag, sign-extended for 32-bit files.
func (d DynamicEntryRef) Tag() Sxword {
	return d.sxwordAt(0, 0)
}

// Value returns the entry's value or address.
func (d DynamicEntryRef) Value() Xword {
	return d.xwordAt(4, 8)
}

// DynamicEntriesRef is a view of the entry array of a dynamic section.
type DynamicEntriesRef struct {
	sliceView
}

// Get returns a view of the entry at the given index.
func (d DynamicEntriesRef) Get(index int) (DynamicEntryRef, error) {
	record, err := d.record(index)
	if err != nil {
		return DynamicEntryRef{}, err
	}
	return DynamicEntryRef{record}, nil
}

// DynamicTable is the payload of a dynamic section: the entries plus the
// string table the section's link field names, which holds the strings
// tags like NEEDED and SONAME refer to. The entry array may extend past
// the terminating NULL tag, depending on the section size; callers
// should stop at the first NULL entry.
type DynamicTable struct {
	strings *StringTable
	entries DynamicEntriesRef
}

// Len returns the number of entries the section has room for.
func (t *DynamicTable) Len() int {
	return t.entries.Len()
}

// Entries returns the raw entry view.
func (t *DynamicTable) Entries() DynamicEntriesRef {
	return t.entries
}

// Strings returns the companion string table.
func (t *DynamicTable) Strings() *StringTable {
	return t.strings
}

func (t *DynamicTable) sectionData() {}
