package main

// A compact little-endian ELF image builder for the dump tests. It lays
// out section bodies after the headers, generates the .shstrtab, and
// appends the section header table, returning a byte image the
// elf_inspect package accepts.

import (
	"encoding/binary"

	elf "github.com/elfinspect/elf_inspect"
)

type testSection struct {
	name      string
	typ       elf.Word
	flags     elf.Xword
	addr      elf.Xword
	link      elf.Word
	info      elf.Word
	addralign elf.Xword
	entsize   elf.Xword
	body      []byte
}

// testSegment describes a program header; its file extent comes from the
// section it points at.
type testSegment struct {
	typ     elf.Word
	flags   elf.Word
	section int
	vaddr   elf.Xword
	memsz   elf.Xword
	align   elf.Xword
}

func alignUp(offset, align int) int {
	return (offset + align - 1) &^ (align - 1)
}

func buildImage(is64 bool, fileType, machine elf.Half, segments []testSegment,
	sections []testSection) []byte {
	bo := binary.LittleEndian
	ehsize, phentsize, shentsize := 52, 32, 40
	if is64 {
		ehsize, phentsize, shentsize = 64, 56, 64
	}

	secs := make([]testSection, len(sections), len(sections)+1)
	copy(secs, sections)
	shstrndx := len(secs)
	secs = append(secs, testSection{
		name:      ".shstrtab",
		typ:       elf.SectionTypeStringTable,
		addralign: 1,
	})
	names := []byte{0}
	nameOffsets := map[string]elf.Word{"": 0}
	for _, s := range secs {
		if _, ok := nameOffsets[s.name]; !ok {
			nameOffsets[s.name] = elf.Word(len(names))
			names = append(names, s.name...)
			names = append(names, 0)
		}
	}
	secs[shstrndx].body = names

	offset := ehsize
	phoff := 0
	if len(segments) > 0 {
		phoff = alignUp(offset, 8)
		offset = phoff + phentsize*len(segments)
	}
	sectionOffsets := make([]int, len(secs))
	for i := range secs {
		offset = alignUp(offset, 8)
		sectionOffsets[i] = offset
		offset += len(secs[i].body)
	}
	shoff := alignUp(offset, 8)
	img := make([]byte, shoff+shentsize*len(secs))
	for i := range secs {
		copy(img[sectionOffsets[i]:], secs[i].body)
	}

	copy(img, []byte{0x7f, 'E', 'L', 'F'})
	if is64 {
		img[elf.EIClass] = elf.Class64
	} else {
		img[elf.EIClass] = elf.Class32
	}
	img[elf.EIData] = elf.Data2LSB
	img[elf.EIVersion] = elf.VersionCurrent

	bo.PutUint16(img[16:], fileType)
	bo.PutUint16(img[18:], machine)
	bo.PutUint32(img[20:], elf.VersionCurrent)
	if is64 {
		bo.PutUint64(img[32:], uint64(phoff))
		bo.PutUint64(img[40:], uint64(shoff))
		bo.PutUint16(img[52:], uint16(ehsize))
		bo.PutUint16(img[54:], uint16(phentsize))
		bo.PutUint16(img[56:], uint16(len(segments)))
		bo.PutUint16(img[58:], uint16(shentsize))
		bo.PutUint16(img[60:], uint16(len(secs)))
		bo.PutUint16(img[62:], uint16(shstrndx))
	} else {
		bo.PutUint32(img[28:], uint32(phoff))
		bo.PutUint32(img[32:], uint32(shoff))
		bo.PutUint16(img[40:], uint16(ehsize))
		bo.PutUint16(img[42:], uint16(phentsize))
		bo.PutUint16(img[44:], uint16(len(segments)))
		bo.PutUint16(img[46:], uint16(shentsize))
		bo.PutUint16(img[48:], uint16(len(secs)))
		bo.PutUint16(img[50:], uint16(shstrndx))
	}

	for i, p := range segments {
		off := uint64(sectionOffsets[p.section])
		filesz := uint64(len(secs[p.section].body))
		base := phoff + i*phentsize
		if is64 {
			bo.PutUint32(img[base:], p.typ)
			bo.PutUint32(img[base+4:], p.flags)
			bo.PutUint64(img[base+8:], off)
			bo.PutUint64(img[base+16:], p.vaddr)
			bo.PutUint64(img[base+32:], filesz)
			bo.PutUint64(img[base+40:], p.memsz)
			bo.PutUint64(img[base+48:], p.align)
		} else {
			bo.PutUint32(img[base:], p.typ)
			bo.PutUint32(img[base+4:], uint32(off))
			bo.PutUint32(img[base+8:], uint32(p.vaddr))
			bo.PutUint32(img[base+16:], uint32(filesz))
			bo.PutUint32(img[base+20:], uint32(p.memsz))
			bo.PutUint32(img[base+24:], p.flags)
			bo.PutUint32(img[base+28:], uint32(p.align))
		}
	}

	for i, s := range secs {
		sectionOffset := sectionOffsets[i]
		if s.typ == elf.SectionTypeNull {
			sectionOffset = 0
		}
		base := shoff + i*shentsize
		if is64 {
			bo.PutUint32(img[base:], nameOffsets[s.name])
			bo.PutUint32(img[base+4:], s.typ)
			bo.PutUint64(img[base+8:], s.flags)
			bo.PutUint64(img[base+16:], s.addr)
			bo.PutUint64(img[base+24:], uint64(sectionOffset))
			bo.PutUint64(img[base+32:], uint64(len(s.body)))
			bo.PutUint32(img[base+40:], s.link)
			bo.PutUint32(img[base+44:], s.info)
			bo.PutUint64(img[base+48:], s.addralign)
			bo.PutUint64(img[base+56:], s.entsize)
		} else {
			bo.PutUint32(img[base:], nameOffsets[s.name])
			bo.PutUint32(img[base+4:], s.typ)
			bo.PutUint32(img[base+8:], uint32(s.flags))
			bo.PutUint32(img[base+12:], uint32(s.addr))
			bo.PutUint32(img[base+16:], uint32(sectionOffset))
			bo.PutUint32(img[base+20:], uint32(len(s.body)))
			bo.PutUint32(img[base+24:], s.link)
			bo.PutUint32(img[base+28:], s.info)
			bo.PutUint32(img[base+32:], uint32(s.addralign))
			bo.PutUint32(img[base+36:], uint32(s.entsize))
		}
	}
	return img
}

// symbols64 encodes 64-bit little-endian symbol table entries given as
// {name, value, size, info, other, shndx} tuples.
func symbols64(entries ...[6]uint64) []byte {
	bo := binary.LittleEndian
	out := make([]byte, 24*len(entries))
	for i, e := range entries {
		base := i * 24
		// name, value, size, info, other, shndx
		bo.PutUint32(out[base:], uint32(e[0]))
		out[base+4] = uint8(e[3])
		out[base+5] = uint8(e[4])
		bo.PutUint16(out[base+6:], uint16(e[5]))
		bo.PutUint64(out[base+8:], e[1])
		bo.PutUint64(out[base+16:], e[2])
	}
	return out
}

func rela64(offset, info uint64, addend int64) []byte {
	bo := binary.LittleEndian
	out := make([]byte, 24)
	bo.PutUint64(out[0:], offset)
	bo.PutUint64(out[8:], info)
	bo.PutUint64(out[16:], uint64(addend))
	return out
}

func dyn64(entries ...[2]uint64) []byte {
	bo := binary.LittleEndian
	out := make([]byte, 16*len(entries))
	for i, e := range entries {
		bo.PutUint64(out[i*16:], e[0])
		bo.PutUint64(out[i*16+8:], e[1])
	}
	return out
}

func note32(name string, noteType uint32, desc []byte) []byte {
	bo := binary.LittleEndian
	nameSize := 0
	if name != "" {
		nameSize = len(name) + 1
	}
	out := make([]byte, 12)
	bo.PutUint32(out[0:], uint32(nameSize))
	bo.PutUint32(out[4:], uint32(len(desc)))
	bo.PutUint32(out[8:], noteType)
	if nameSize > 0 {
		out = append(out, name...)
		out = append(out, 0)
		for len(out)%4 != 0 {
			out = append(out, 0)
		}
	}
	out = append(out, desc...)
	for len(out)%4 != 0 {
		out = append(out, 0)
	}
	return out
}

// fixtureShared32 is a minimal 32-bit shared object: a null section, an
// 8-byte .text, and the generated .shstrtab.
func fixtureShared32() []byte {
	return buildImage(false, elf.TypeDyn, elf.Machine386, nil, []testSection{
		{},
		{
			name:      ".text",
			typ:       elf.SectionTypeProgBits,
			flags:     elf.SectionFlagAlloc | elf.SectionFlagExecInstr,
			addr:      0x1000,
			addralign: 4,
			body:      make([]byte, 8),
		},
	})
}

// fixtureInterp32 is a 32-bit executable with INTERP and LOAD segments
// over an .interp section.
func fixtureInterp32() []byte {
	interp := append([]byte("/lib/ld-linux.so.2"), 0)
	return buildImage(false, elf.TypeExec, elf.Machine386,
		[]testSegment{
			{
				typ:     elf.SegmentTypeInterp,
				flags:   elf.SegmentFlagRead,
				section: 1,
				align:   1,
			},
			{
				typ:     elf.SegmentTypeLoad,
				flags:   elf.SegmentFlagRead | elf.SegmentFlagExecute,
				section: 1,
				vaddr:   0x1000,
				memsz:   0x13,
				align:   0x1000,
			},
		},
		[]testSection{
			{},
			{
				name:      ".interp",
				typ:       elf.SectionTypeProgBits,
				flags:     elf.SectionFlagAlloc,
				addralign: 1,
				body:      interp,
			},
		})
}

// fixtureExec64 is a 64-bit executable with a symbol table, its string
// table, and one Rela relocation against printf.
func fixtureExec64() []byte {
	strtab := []byte("\x00foo\x00bar\x00printf\x00")
	symtab := symbols64(
		[6]uint64{0, 0, 0, 0, 0, 0},
		[6]uint64{1, 0x100, 0, 0x12, 0, 1},
		[6]uint64{5, 0x180, 4, 0x21, 2, uint64(elf.SectionIndexAbsolute)},
		[6]uint64{0, 0, 0, 0, 0, 0},
		[6]uint64{0, 0, 0, 0, 0, 0},
		[6]uint64{9, 0, 0, 0x12, 0, 0},
	)
	return buildImage(true, elf.TypeExec, elf.MachineX86_64, nil,
		[]testSection{
			{},
			{
				name:      ".text",
				typ:       elf.SectionTypeProgBits,
				flags:     elf.SectionFlagAlloc | elf.SectionFlagExecInstr,
				addr:      0x1000,
				addralign: 16,
				body:      make([]byte, 16),
			},
			{
				name:    ".symtab",
				typ:     elf.SectionTypeSymbolTable,
				link:    3,
				entsize: 24,
				body:    symtab,
			},
			{
				name:      ".strtab",
				typ:       elf.SectionTypeStringTable,
				addralign: 1,
				body:      strtab,
			},
			{
				name:    ".rela.text",
				typ:     elf.SectionTypeRela,
				flags:   elf.SectionFlagInfoLink,
				link:    2,
				info:    1,
				entsize: 24,
				body:    rela64(0x10, (5<<32)|2, -4),
			},
		})
}

// fixtureDynamic64 is a 64-bit shared object with a dynamic section
// linked to .dynstr.
func fixtureDynamic64() []byte {
	dynstr := []byte("\x00libc.so.6\x00")
	return buildImage(true, elf.TypeDyn, elf.MachineX86_64, nil,
		[]testSection{
			{},
			{
				name:      ".dynstr",
				typ:       elf.SectionTypeStringTable,
				addralign: 1,
				body:      dynstr,
			},
			{
				name:    ".dynamic",
				typ:     elf.SectionTypeDynamic,
				link:    1,
				entsize: 16,
				body: dyn64(
					[2]uint64{uint64(elf.DynTagNeeded), 1},
					[2]uint64{uint64(elf.DynTagStrSize), uint64(len(dynstr))},
					[2]uint64{uint64(elf.DynTagNull), 0},
				),
			},
		})
}

// fixtureNote32 is a 32-bit relocatable with one GNU-style note.
func fixtureNote32() []byte {
	desc := make([]byte, 20)
	return buildImage(false, elf.TypeRel, elf.Machine386, nil,
		[]testSection{
			{},
			{
				name:      ".note",
				typ:       elf.SectionTypeNote,
				addralign: 4,
				body:      note32("GNU", 3, desc),
			},
		})
}
