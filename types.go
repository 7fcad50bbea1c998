package elf_inspect

// Scalar types shared by the 32- and 64-bit ELF variants. The 32-bit
// address and offset fields are plain 32-bit unsigned integers; every
// accessor in this package widens them to the 64-bit analogue so callers
// never branch on the file class.
type (
	Half   = uint16
	Word   = uint32
	Sword  = int32
	Xword  = uint64
	Sxword = int64
)

// Number of identification bytes at the start of the file header.
const IdentSize = 16

// On-disk record sizes. These are load-bearing: a view is only formed
// over a byte range whose length matches the record size for the file's
// class, and e_phentsize/e_shentsize must equal them exactly.
//
// 32-bit layouts (offsets in bytes):
//
//	Ehdr: ident 0, type 16, machine 18, version 20, entry 24, phoff 28,
//	      shoff 32, flags 36, ehsize 40, phentsize 42, phnum 44,
//	      shentsize 46, shnum 48, shstrndx 50
//	Phdr: type 0, offset 4, vaddr 8, paddr 12, filesz 16, memsz 20,
//	      flags 24, align 28
//	Shdr: name 0, type 4, flags 8, addr 12, offset 16, size 20, link 24,
//	      info 28, addralign 32, entsize 36
//	Sym:  name 0, value 4, size 8, info 12, other 13, shndx 14
//	Rel:  offset 0, info 4          Rela: + addend 8
//	Dyn:  tag 0, val 4
//
// 64-bit layouts:
//
//	Ehdr: ident 0, type 16, machine 18, version 20, entry 24, phoff 32,
//	      shoff 40, flags 48, ehsize 52, phentsize 54, phnum 56,
//	      shentsize 58, shnum 60, shstrndx 62
//	Phdr: type 0, flags 4, offset 8, vaddr 16, paddr 24, filesz 32,
//	      memsz 40, align 48
//	Shdr: name 0, type 4, flags 8, addr 16, offset 24, size 32, link 40,
//	      info 44, addralign 48, entsize 56
//	Sym:  name 0, info 4, other 5, shndx 6, value 8, size 16
//	Rel:  offset 0, info 8          Rela: + addend 16
//	Dyn:  tag 0, val 8
const (
	ehdr32Size = 52
	ehdr64Size = 64
	phdr32Size = 32
	phdr64Size = 56
	shdr32Size = 40
	shdr64Size = 64
	sym32Size  = 16
	sym64Size  = 24
	rel32Size  = 8
	rel64Size  = 16
	rela32Size = 12
	rela64Size = 24
	dyn32Size  = 8
	dyn64Size  = 16
	wordSize   = 4
)
