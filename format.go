package elf_inspect

// This file implements the format tag and the machinery that turns raw
// byte ranges of the image into typed record views. A view is a borrowed
// window into the image plus the tag; every multi-byte field read goes
// through the tag's byte order, and 32-bit fields are widened to their
// 64-bit analogues, so code built on the views never branches on the
// file's class or encoding.

import "encoding/binary"

// Format identifies one of the four ELF file shapes. It is determined
// once from the identification bytes when a Reader opens an image and is
// carried, unchanged, by every view derived from that Reader.
type Format uint8

const (
	Elf32LE Format = iota
	Elf32BE
	Elf64LE
	Elf64BE
)

// Is64Bit returns true for the 64-bit formats.
func (f Format) Is64Bit() bool {
	return f == Elf64LE || f == Elf64BE
}

// LittleEndian returns true for the little-endian formats.
func (f Format) LittleEndian() bool {
	return f == Elf32LE || f == Elf64LE
}

// ByteOrder returns the byte order applied to every multi-byte field
// read through a view with this tag.
func (f Format) ByteOrder() binary.ByteOrder {
	if f.LittleEndian() {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

func (f Format) String() string {
	switch f {
	case Elf32LE:
		return "ELF32 little-endian"
	case Elf32BE:
		return "ELF32 big-endian"
	case Elf64LE:
		return "ELF64 little-endian"
	case Elf64BE:
		return "ELF64 big-endian"
	}
	return "unknown ELF format"
}

// formatFromIdent derives the tag from the class and data identification
// bytes, or reports which byte was invalid. A bad data byte is only
// blamed when the class byte itself is recognised.
func formatFromIdent(class, data uint8) (Format, error) {
	switch {
	case class == Class32 && data == Data2LSB:
		return Elf32LE, nil
	case class == Class32 && data == Data2MSB:
		return Elf32BE, nil
	case class == Class64 && data == Data2LSB:
		return Elf64LE, nil
	case class == Class64 && data == Data2MSB:
		return Elf64BE, nil
	case class == Class32 || class == Class64:
		return 0, &InvalidHeaderFieldError{
			Header: "ELF",
			Field:  "e_ident[EI_DATA]",
			Value:  uint64(data),
		}
	}
	return 0, &InvalidHeaderFieldError{
		Header: "ELF",
		Field:  "e_ident[EI_CLASS]",
		Value:  uint64(class),
	}
}

// recordShape describes one record layout pair: the byte size and
// natural alignment of the 32-bit and 64-bit variants.
type recordShape struct {
	size32  int
	size64  int
	align32 int
	align64 int
}

func (s recordShape) size(f Format) int {
	if f.Is64Bit() {
		return s.size64
	}
	return s.size32
}

func (s recordShape) alignment(f Format) int {
	if f.Is64Bit() {
		return s.align64
	}
	return s.align32
}

var (
	ehdrShape = recordShape{ehdr32Size, ehdr64Size, 4, 8}
	phdrShape = recordShape{phdr32Size, phdr64Size, 4, 8}
	shdrShape = recordShape{shdr32Size, shdr64Size, 4, 8}
	symShape  = recordShape{sym32Size, sym64Size, 4, 8}
	relShape  = recordShape{rel32Size, rel64Size, 4, 8}
	relaShape = recordShape{rela32Size, rela64Size, 4, 8}
	dynShape  = recordShape{dyn32Size, dyn64Size, 4, 8}

	// Word arrays (hash tables, extended section indices) hold 4-byte
	// words in both classes.
	wordShape = recordShape{wordSize, wordSize, 4, 4}

	// Note record header fields are 4-byte words in 32-bit files and
	// 8-byte words in 64-bit files.
	noteWordShape = recordShape{wordSize, 8, 4, 8}
)

// recordView is one record borrowed from the image. raw holds exactly
// the record's bytes; offset is the record's position in the image and
// only participates in alignment checking and error reporting.
type recordView struct {
	format Format
	raw    []byte
	offset uint64
}

// newRecordView checks that raw is exactly one record of the given shape
// and that its position in the image respects the record's natural
// alignment.
func newRecordView(f Format, raw []byte, offset uint64, shape recordShape) (recordView, error) {
	size := shape.size(f)
	if len(raw) != size {
		return recordView{}, &SizeMismatchError{Expected: size, Actual: len(raw)}
	}
	align := shape.alignment(f)
	if offset%uint64(align) != 0 {
		return recordView{}, &AlignmentError{Alignment: align, Address: int(offset)}
	}
	return recordView{format: f, raw: raw, offset: offset}, nil
}

// Format returns the view's tag.
func (v recordView) Format() Format {
	return v.format
}

// Field readers. Each picks the field offset for the view's class and
// applies the tag's byte order; the 32-bit variants widen.

func (v recordView) halfAt(off32, off64 int) Half {
	if v.format.Is64Bit() {
		return v.format.ByteOrder().Uint16(v.raw[off64:])
	}
	return v.format.ByteOrder().Uint16(v.raw[off32:])
}

func (v recordView) wordAt(off32, off64 int) Word {
	if v.format.Is64Bit() {
		return v.format.ByteOrder().Uint32(v.raw[off64:])
	}
	return v.format.ByteOrder().Uint32(v.raw[off32:])
}

// xwordAt reads a field that is a 32-bit word in the 32-bit layout and a
// 64-bit xword in the 64-bit layout, widened to 64 bits.
func (v recordView) xwordAt(off32, off64 int) Xword {
	if v.format.Is64Bit() {
		return v.format.ByteOrder().Uint64(v.raw[off64:])
	}
	return Xword(v.format.ByteOrder().Uint32(v.raw[off32:]))
}

// sxwordAt is xwordAt for signed fields; the 32-bit value is
// sign-extended.
func (v recordView) sxwordAt(off32, off64 int) Sxword {
	if v.format.Is64Bit() {
		return Sxword(v.format.ByteOrder().Uint64(v.raw[off64:]))
	}
	return Sxword(Sword(v.format.ByteOrder().Uint32(v.raw[off32:])))
}

func (v recordView) byteAt(off32, off64 int) uint8 {
	if v.format.Is64Bit() {
		return v.raw[off64]
	}
	return v.raw[off32]
}

// sliceView is an array of records borrowed from the image. Indexing
// yields a recordView on one element with the same tag.
type sliceView struct {
	format Format
	raw    []byte
	offset uint64
	shape  recordShape
}

// newSliceView checks that raw is a whole number of records of the given
// shape and that the array's position respects the record alignment.
func newSliceView(f Format, raw []byte, offset uint64, shape recordShape) (sliceView, error) {
	size := shape.size(f)
	if len(raw)%size != 0 {
		return sliceView{}, &NotMultipleOfSizeError{Size: size, Length: len(raw)}
	}
	align := shape.alignment(f)
	if offset%uint64(align) != 0 {
		return sliceView{}, &AlignmentError{Alignment: align, Address: int(offset)}
	}
	return sliceView{format: f, raw: raw, offset: offset, shape: shape}, nil
}

// Format returns the view's tag.
func (s sliceView) Format() Format {
	return s.format
}

// Len returns the number of records in the view.
func (s sliceView) Len() int {
	if size := s.shape.size(s.format); size > 0 {
		return len(s.raw) / size
	}
	return 0
}

// record returns the index'th element as a single-record view.
func (s sliceView) record(index int) (recordView, error) {
	n := s.Len()
	if index < 0 || index >= n {
		return recordView{}, &IndexOutOfBoundsError{Index: index, Length: n}
	}
	size := s.shape.size(s.format)
	start := index * size
	return recordView{
		format: s.format,
		raw:    s.raw[start : start+size],
		offset: s.offset + uint64(start),
	}, nil
}
