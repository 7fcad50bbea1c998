package elf_inspect

// Relocation-type name tables for the i386 and x86-64 psABIs. Only the
// names are provided; evaluating relocations is out of scope for a
// read-only inspector.

var i386RelocationNames = map[Word]string{
	0:  "R_386_NONE",
	1:  "R_386_32",
	2:  "R_386_PC32",
	3:  "R_386_GOT32",
	4:  "R_386_PLT32",
	5:  "R_386_COPY",
	6:  "R_386_GLOB_DAT",
	7:  "R_386_JUMP_SLOT",
	8:  "R_386_RELATIVE",
	9:  "R_386_GOTOFF",
	10: "R_386_GOTPC",
	14: "R_386_TLS_TPOFF",
	15: "R_386_TLS_IE",
	16: "R_386_TLS_GOTIE",
	17: "R_386_TLS_LE",
	18: "R_386_TLS_GD",
	19: "R_386_TLS_LDM",
	20: "R_386_16",
	21: "R_386_PC16",
	22: "R_386_8",
	23: "R_386_PC8",
	24: "R_386_TLS_GD_32",
	25: "R_386_TLS_GD_PUSH",
	26: "R_386_TLS_GD_CALL",
	27: "R_386_TLS_GD_POP",
	28: "R_386_TLS_LDM_32",
	29: "R_386_TLS_LDM_PUSH",
	30: "R_386_TLS_LDM_CALL",
	31: "R_386_TLS_LDM_POP",
	32: "R_386_TLS_LDO_32",
	33: "R_386_TLS_IE_32",
	34: "R_386_TLS_LE_32",
	35: "R_386_TLS_DTPMOD32",
	36: "R_386_TLS_DTPOFF32",
	37: "R_386_TLS_TPOFF32",
	38: "R_386_SIZE32",
	39: "R_386_TLS_GOTDESC",
	40: "R_386_TLS_DESC_CALL",
	41: "R_386_TLS_DESC",
	42: "R_386_IRELATIVE",
}

// I386RelocationName returns the psABI name of an i386 relocation type,
// or "" if the type is unknown.
func I386RelocationName(relocationType Word) string {
	return i386RelocationNames[relocationType]
}

var x86_64RelocationNames = map[Word]string{
	0:  "R_X86_64_NONE",
	1:  "R_X86_64_64",
	2:  "R_X86_64_PC32",
	3:  "R_X86_64_GOT32",
	4:  "R_X86_64_PLT32",
	5:  "R_X86_64_COPY",
	6:  "R_X86_64_GLOB_DAT",
	7:  "R_X86_64_JUMP_SLOT",
	8:  "R_X86_64_RELATIVE",
	9:  "R_X86_64_GOTPCREL",
	10: "R_X86_64_32",
	11: "R_X86_64_32S",
	12: "R_X86_64_16",
	13: "R_X86_64_PC16",
	14: "R_X86_64_8",
	15: "R_X86_64_PC8",
	16: "R_X86_64_DTPMOD64",
	17: "R_X86_64_DTPOFF64",
	18: "R_X86_64_TPOFF64",
	19: "R_X86_64_TLSGD",
	20: "R_X86_64_TLSLD",
	21: "R_X86_64_DTPOFF32",
	22: "R_X86_64_GOTTPOFF",
	23: "R_X86_64_TPOFF32",
	24: "R_X86_64_PC64",
	25: "R_X86_64_GOTOFF64",
	26: "R_X86_64_GOTPC32",
	32: "R_X86_64_SIZE32",
	33: "R_X86_64_SIZE64",
	34: "R_X86_64_GOTPC32_TLSDESC",
	35: "R_X86_64_TLSDESC_CALL",
	36: "R_X86_64_TLSDESC",
	37: "R_X86_64_IRELATIVE",
}

// X86_64RelocationName returns the psABI name of an x86-64 relocation
// type, or "" if the type is unknown.
func X86_64RelocationName(relocationType Word) string {
	return x86_64RelocationNames[relocationType]
}
