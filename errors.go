package elf_inspect

// This file defines the error values the package reports. Every failure
// mode has its own type so callers can match on the cause with
// errors.As; the messages carry the offending header, field, and value.

import "fmt"

// NotElfFileError is reported when the buffer is too short to hold a
// file header or doesn't start with the ELF magic bytes.
type NotElfFileError struct{}

func (e *NotElfFileError) Error() string {
	return "not an ELF file"
}

// InvalidHeaderFieldError is reported when a header field holds a value
// the format forbids.
type InvalidHeaderFieldError struct {
	Header string
	Field  string
	Value  uint64
}

func (e *InvalidHeaderFieldError) Error() string {
	return fmt.Sprintf("invalid %s header field %s=%d", e.Header, e.Field,
		e.Value)
}

// SizeMismatchError is reported when a byte range that should hold
// exactly one record has the wrong length.
type SizeMismatchError struct {
	Expected int
	Actual   int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("size mismatch: expected=%d, actual=%d", e.Expected,
		e.Actual)
}

// AlignmentError is reported when a record's file offset is not aligned
// to the record's natural alignment.
type AlignmentError struct {
	Alignment int
	Address   int
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("alignment error: alignment=%d, address=%d",
		e.Alignment, e.Address)
}

// NotMultipleOfSizeError is reported when a byte range that should hold
// an array of records isn't a whole number of them.
type NotMultipleOfSizeError struct {
	Size   int
	Length int
}

func (e *NotMultipleOfSizeError) Error() string {
	return fmt.Sprintf("not a multiple of size: size=%d, length=%d", e.Size,
		e.Length)
}

// IndexOutOfBoundsError is reported on an out-of-range table lookup.
type IndexOutOfBoundsError struct {
	Index  int
	Length int
}

func (e *IndexOutOfBoundsError) Error() string {
	return fmt.Sprintf("index out of bounds: index=%d, length=%d", e.Index,
		e.Length)
}

// NotContainedInFileError is reported when a header places a structure
// (or part of one) past the end of the image.
type NotContainedInFileError struct {
	What  string
	Which uint64
}

func (e *NotContainedInFileError) Error() string {
	return fmt.Sprintf("%s %d not contained in file", e.What, e.Which)
}

// MultipleSectionsError is reported when a section type that must be
// unique appears more than once.
type MultipleSectionsError struct {
	Section string
}

func (e *MultipleSectionsError) Error() string {
	return fmt.Sprintf("multiple %s sections", e.Section)
}

// InvalidLinkedSectionError is reported when a section's link field
// names a section of the wrong type (or one that can't be interpreted).
type InvalidLinkedSectionError struct {
	Linked Word
}

func (e *InvalidLinkedSectionError) Error() string {
	return fmt.Sprintf("invalid linked section=%d", e.Linked)
}

// InvalidSectionTypeError is reported when a section named by an index
// field has a different type than the context requires.
type InvalidSectionTypeError struct {
	Expected Word
	Actual   Word
}

func (e *InvalidSectionTypeError) Error() string {
	return fmt.Sprintf("invalid section type: expected=%d, actual=%d",
		e.Expected, e.Actual)
}

// MessageError carries a failure that doesn't fit the structured kinds.
type MessageError struct {
	Text string
}

func (e *MessageError) Error() string {
	return e.Text
}
