package elf_inspect

// In-memory ELF image builder for tests. It lays out section bodies,
// generates the section-name string table, and encodes the headers for
// whichever of the four formats a test asks for, so fixtures don't need
// binary blobs on disk.

// sectionSpec describes one section to place in a test image. The zero
// value is a null section. Body is the section's file contents; for
// no-bits sections leave Body nil and set Size.
type sectionSpec struct {
	name      string
	typ       Word
	flags     Xword
	addr      Xword
	link      Word
	info      Word
	addralign Xword
	entsize   Xword
	body      []byte
	size      Xword
}

// phdrSpec describes one program header. When section is >= 0 the
// segment's offset and file size are taken from that section's layout;
// otherwise the explicit fields are used.
type phdrSpec struct {
	typ     Word
	flags   Word
	section int
	off     Xword
	vaddr   Xword
	paddr   Xword
	filesz  Xword
	memsz   Xword
	align   Xword
}

// imageLayout reports where the builder placed everything, so tests can
// patch bytes or cross-check offsets.
type imageLayout struct {
	phoff          uint64
	shoff          uint64
	sectionOffsets []uint64
	shstrndx       int
}

type imageBuilder struct {
	format   Format
	fileType Half
	machine  Half
	entry    Xword
	phdrs    []phdrSpec
	sections []sectionSpec
}

func align8(offset uint64) uint64 {
	return (offset + 7) &^ 7
}

// build assembles the image. A .shstrtab section holding every section
// name is appended automatically and the header's string-table index
// points at it. Section counts or string-table indices that don't fit
// the 16-bit header fields are stored through section 0 per the extended
// conventions.
func (b *imageBuilder) build() ([]byte, imageLayout) {
	bo := b.format.ByteOrder()
	is64 := b.format.Is64Bit()
	ehsize := ehdrShape.size(b.format)
	phentsize := phdrShape.size(b.format)
	shentsize := shdrShape.size(b.format)

	secs := make([]sectionSpec, len(b.sections), len(b.sections)+1)
	copy(secs, b.sections)
	shstrndx := len(secs)
	secs = append(secs, sectionSpec{
		name:      ".shstrtab",
		typ:       SectionTypeStringTable,
		addralign: 1,
	})

	names := []byte{0}
	nameOffsets := map[string]Word{"": 0}
	for i := range secs {
		name := secs[i].name
		if _, ok := nameOffsets[name]; !ok {
			nameOffsets[name] = Word(len(names))
			names = append(names, name...)
			names = append(names, 0)
		}
	}
	secs[shstrndx].body = names

	offset := uint64(ehsize)
	var phoff uint64
	if len(b.phdrs) > 0 {
		phoff = align8(offset)
		offset = phoff + uint64(phentsize*len(b.phdrs))
	}
	sectionOffsets := make([]uint64, len(secs))
	for i := range secs {
		offset = align8(offset)
		sectionOffsets[i] = offset
		offset += uint64(len(secs[i].body))
	}
	shoff := align8(offset)
	total := shoff + uint64(shentsize*len(secs))

	img := make([]byte, total)
	for i := range secs {
		copy(img[sectionOffsets[i]:], secs[i].body)
	}

	// Identification bytes.
	img[EIMag0] = Mag0
	img[EIMag1] = Mag1
	img[EIMag2] = Mag2
	img[EIMag3] = Mag3
	if is64 {
		img[EIClass] = Class64
	} else {
		img[EIClass] = Class32
	}
	if b.format.LittleEndian() {
		img[EIData] = Data2LSB
	} else {
		img[EIData] = Data2MSB
	}
	img[EIVersion] = VersionCurrent

	eShnum := Half(len(secs))
	extendedCount := len(secs) >= int(SectionIndexLoReserve)
	if extendedCount {
		eShnum = 0
	}
	eShstrndx := Half(shstrndx)
	extendedStrndx := shstrndx >= int(SectionIndexLoReserve)
	if extendedStrndx {
		eShstrndx = SectionIndexExtended
	}

	// File header.
	bo.PutUint16(img[16:], b.fileType)
	bo.PutUint16(img[18:], b.machine)
	bo.PutUint32(img[20:], VersionCurrent)
	if is64 {
		bo.PutUint64(img[24:], b.entry)
		bo.PutUint64(img[32:], phoff)
		bo.PutUint64(img[40:], shoff)
		bo.PutUint32(img[48:], 0)
		bo.PutUint16(img[52:], Half(ehsize))
		bo.PutUint16(img[54:], Half(phentsize))
		bo.PutUint16(img[56:], Half(len(b.phdrs)))
		bo.PutUint16(img[58:], Half(shentsize))
		bo.PutUint16(img[60:], eShnum)
		bo.PutUint16(img[62:], eShstrndx)
	} else {
		bo.PutUint32(img[24:], Word(b.entry))
		bo.PutUint32(img[28:], Word(phoff))
		bo.PutUint32(img[32:], Word(shoff))
		bo.PutUint32(img[36:], 0)
		bo.PutUint16(img[40:], Half(ehsize))
		bo.PutUint16(img[42:], Half(phentsize))
		bo.PutUint16(img[44:], Half(len(b.phdrs)))
		bo.PutUint16(img[46:], Half(shentsize))
		bo.PutUint16(img[48:], eShnum)
		bo.PutUint16(img[50:], eShstrndx)
	}

	// Program headers.
	for i, p := range b.phdrs {
		off, filesz := p.off, p.filesz
		if p.section >= 0 {
			off = Xword(sectionOffsets[p.section])
			filesz = Xword(len(secs[p.section].body))
		}
		base := phoff + uint64(i*phentsize)
		if is64 {
			bo.PutUint32(img[base:], p.typ)
			bo.PutUint32(img[base+4:], p.flags)
			bo.PutUint64(img[base+8:], off)
			bo.PutUint64(img[base+16:], p.vaddr)
			bo.PutUint64(img[base+24:], p.paddr)
			bo.PutUint64(img[base+32:], filesz)
			bo.PutUint64(img[base+40:], p.memsz)
			bo.PutUint64(img[base+48:], p.align)
		} else {
			bo.PutUint32(img[base:], p.typ)
			bo.PutUint32(img[base+4:], Word(off))
			bo.PutUint32(img[base+8:], Word(p.vaddr))
			bo.PutUint32(img[base+12:], Word(p.paddr))
			bo.PutUint32(img[base+16:], Word(filesz))
			bo.PutUint32(img[base+20:], Word(p.memsz))
			bo.PutUint32(img[base+24:], p.flags)
			bo.PutUint32(img[base+28:], Word(p.align))
		}
	}

	// Section headers.
	for i, s := range secs {
		size := Xword(len(s.body))
		if s.body == nil {
			size = s.size
		}
		sectionOffset := sectionOffsets[i]
		if s.typ == SectionTypeNull {
			sectionOffset = 0
		}
		link := s.link
		if i == 0 {
			// Section 0 doubles as the overflow slot for the extended
			// count and string-table index conventions.
			if extendedCount {
				size = Xword(len(secs))
			}
			if extendedStrndx {
				link = Word(shstrndx)
			}
		}
		base := shoff + uint64(i*shentsize)
		if is64 {
			bo.PutUint32(img[base:], nameOffsets[s.name])
			bo.PutUint32(img[base+4:], s.typ)
			bo.PutUint64(img[base+8:], s.flags)
			bo.PutUint64(img[base+16:], s.addr)
			bo.PutUint64(img[base+24:], sectionOffset)
			bo.PutUint64(img[base+32:], size)
			bo.PutUint32(img[base+40:], link)
			bo.PutUint32(img[base+44:], s.info)
			bo.PutUint64(img[base+48:], s.addralign)
			bo.PutUint64(img[base+56:], s.entsize)
		} else {
			bo.PutUint32(img[base:], nameOffsets[s.name])
			bo.PutUint32(img[base+4:], s.typ)
			bo.PutUint32(img[base+8:], Word(s.flags))
			bo.PutUint32(img[base+12:], Word(s.addr))
			bo.PutUint32(img[base+16:], Word(sectionOffset))
			bo.PutUint32(img[base+20:], Word(size))
			bo.PutUint32(img[base+24:], link)
			bo.PutUint32(img[base+28:], s.info)
			bo.PutUint32(img[base+32:], Word(s.addralign))
			bo.PutUint32(img[base+36:], Word(s.entsize))
		}
	}
	return img, imageLayout{
		phoff:          phoff,
		shoff:          shoff,
		sectionOffsets: sectionOffsets,
		shstrndx:       shstrndx,
	}
}

// symbolSpec is the input for encodeSymbols.
type symbolSpec struct {
	name  Word
	value Xword
	size  Xword
	info  uint8
	other uint8
	shndx Half
}

// encodeSymbols encodes a symbol table body for the given format.
func encodeSymbols(f Format, symbols []symbolSpec) []byte {
	bo := f.ByteOrder()
	size := symShape.size(f)
	out := make([]byte, size*len(symbols))
	for i, s := range symbols {
		base := i * size
		if f.Is64Bit() {
			bo.PutUint32(out[base:], s.name)
			out[base+4] = s.info
			out[base+5] = s.other
			bo.PutUint16(out[base+6:], s.shndx)
			bo.PutUint64(out[base+8:], s.value)
			bo.PutUint64(out[base+16:], s.size)
		} else {
			bo.PutUint32(out[base:], s.name)
			bo.PutUint32(out[base+4:], Word(s.value))
			bo.PutUint32(out[base+8:], Word(s.size))
			out[base+12] = s.info
			out[base+13] = s.other
			bo.PutUint16(out[base+14:], s.shndx)
		}
	}
	return out
}

// relaSpec is the input for encodeRelas and encodeRels; encodeRels
// ignores the addend.
type relaSpec struct {
	offset Xword
	info   Xword
	addend Sxword
}

func encodeRelas(f Format, relas []relaSpec) []byte {
	bo := f.ByteOrder()
	size := relaShape.size(f)
	out := make([]byte, size*len(relas))
	for i, r := range relas {
		base := i * size
		if f.Is64Bit() {
			bo.PutUint64(out[base:], r.offset)
			bo.PutUint64(out[base+8:], r.info)
			bo.PutUint64(out[base+16:], uint64(r.addend))
		} else {
			bo.PutUint32(out[base:], Word(r.offset))
			bo.PutUint32(out[base+4:], Word(r.info))
			bo.PutUint32(out[base+8:], uint32(int32(r.addend)))
		}
	}
	return out
}

func encodeRels(f Format, rels []relaSpec) []byte {
	bo := f.ByteOrder()
	size := relShape.size(f)
	out := make([]byte, size*len(rels))
	for i, r := range rels {
		base := i * size
		if f.Is64Bit() {
			bo.PutUint64(out[base:], r.offset)
			bo.PutUint64(out[base+8:], r.info)
		} else {
			bo.PutUint32(out[base:], Word(r.offset))
			bo.PutUint32(out[base+4:], Word(r.info))
		}
	}
	return out
}

// encodeWords encodes an array of 32-bit words.
func encodeWords(f Format, words []Word) []byte {
	bo := f.ByteOrder()
	out := make([]byte, wordSize*len(words))
	for i, w := range words {
		bo.PutUint32(out[i*wordSize:], w)
	}
	return out
}

// encodeNotes encodes a stream of note records, padding each name and descriptor to
// the format's note word size. The name's terminating null is counted in
// the stored name size, matching what compilers emit.
type noteSpec struct {
	name     string
	noteType Xword
	desc     []byte
}

func encodeNotes(f Format, notes []noteSpec) []byte {
	size := wordSize
	if f.Is64Bit() {
		size = 8
	}
	bo := f.ByteOrder()
	putWord := func(out []byte, v Xword) []byte {
		if f.Is64Bit() {
			var buf [8]byte
			bo.PutUint64(buf[:], v)
			return append(out, buf[:]...)
		}
		var buf [4]byte
		bo.PutUint32(buf[:], Word(v))
		return append(out, buf[:]...)
	}
	pad := func(out []byte) []byte {
		for len(out)%size != 0 {
			out = append(out, 0)
		}
		return out
	}
	var out []byte
	for _, n := range notes {
		nameSize := 0
		if n.name != "" {
			nameSize = len(n.name) + 1
		}
		out = putWord(out, Xword(nameSize))
		out = putWord(out, Xword(len(n.desc)))
		out = putWord(out, n.noteType)
		if nameSize > 0 {
			out = append(out, n.name...)
			out = append(out, 0)
			out = pad(out)
		}
		out = append(out, n.desc...)
		out = pad(out)
	}
	return out
}

// encodeDynamic encodes a dynamic section body.
type dynSpec struct {
	tag   Sxword
	value Xword
}

func encodeDynamic(f Format, entries []dynSpec) []byte {
	bo := f.ByteOrder()
	size := dynShape.size(f)
	out := make([]byte, size*len(entries))
	for i, d := range entries {
		base := i * size
		if f.Is64Bit() {
			bo.PutUint64(out[base:], uint64(d.tag))
			bo.PutUint64(out[base+8:], d.value)
		} else {
			bo.PutUint32(out[base:], uint32(int32(d.tag)))
			bo.PutUint32(out[base+4:], Word(d.value))
		}
	}
	return out
}
