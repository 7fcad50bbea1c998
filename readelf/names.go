package main

// Presentation-name helpers: turning raw field values into the short
// strings the dump output uses.

import (
	"fmt"

	elf "github.com/elfinspect/elf_inspect"
)

// sectionFlagString builds the Flg column for a section: one character
// per set flag, in the conventional order. The checked mask keeps the
// broad OS/processor masks from re-reporting bits a narrower flag
// already claimed; anything left over shows as 'x'.
func sectionFlagString(flags elf.Xword) string {
	s := make([]byte, 0, 15)
	var checked elf.Xword
	checkFlag := func(f elf.Xword, c byte) {
		if flags&f&^checked != 0 {
			s = append(s, c)
		}
		checked |= f
	}
	checkFlag(elf.SectionFlagWrite, 'W')
	checkFlag(elf.SectionFlagAlloc, 'A')
	checkFlag(elf.SectionFlagExecInstr, 'X')
	checkFlag(elf.SectionFlagMerge, 'M')
	checkFlag(elf.SectionFlagStrings, 'S')
	checkFlag(elf.SectionFlagInfoLink, 'I')
	checkFlag(elf.SectionFlagLinkOrder, 'L')
	checkFlag(elf.SectionFlagOSNonconforming, 'O')
	checkFlag(elf.SectionFlagGroup, 'G')
	checkFlag(elf.SectionFlagTLS, 'T')
	checkFlag(elf.SectionFlagCompressed, 'C')
	checkFlag(elf.SectionFlagMaskOS, 'o')
	checkFlag(elf.SectionFlagExcluded, 'E')
	checkFlag(elf.SectionFlagMaskProc, 'p')
	if flags&^checked != 0 {
		s = append(s, 'x')
	}
	return string(s)
}

// segmentFlagString builds the three-character Flg column for a segment:
// fixed R, W, E positions, space when the bit is clear.
func segmentFlagString(flags elf.Word) string {
	s := []byte{' ', ' ', ' '}
	if flags&elf.SegmentFlagRead != 0 {
		s[0] = 'R'
	}
	if flags&elf.SegmentFlagWrite != 0 {
		s[1] = 'W'
	}
	if flags&elf.SegmentFlagExecute != 0 {
		s[2] = 'E'
	}
	return string(s)
}

var fileTypeDescriptions = map[elf.Half]string{
	elf.TypeNone: "No file type",
	elf.TypeRel:  "Relocatable file",
	elf.TypeExec: "Executable file",
	elf.TypeDyn:  "Shared object file",
	elf.TypeCore: "Core file",
}

// fileTypeString renders a file type as "DYN (Shared object file)".
func fileTypeString(fileType elf.Half) string {
	name := elf.FileTypeName(fileType)
	if name == "" {
		return fmt.Sprintf("<unknown>: 0x%x", fileType)
	}
	return fmt.Sprintf("%s (%s)", name, fileTypeDescriptions[fileType])
}

func machineString(machine elf.Half) string {
	if name := elf.MachineName(machine); name != "" {
		return name
	}
	return fmt.Sprintf("<unknown>: 0x%x", machine)
}

func symbolTypeString(symbolType uint8) string {
	if name := elf.SymbolTypeName(symbolType); name != "" {
		return name
	}
	switch {
	case symbolType >= elf.SymbolTypeLoOS && symbolType <= elf.SymbolTypeHiOS:
		return "OS"
	case symbolType >= elf.SymbolTypeLoProc && symbolType <= elf.SymbolTypeHiProc:
		return "PROC"
	}
	return "UNKNOWN"
}

func symbolBindingString(binding uint8) string {
	if name := elf.SymbolBindingName(binding); name != "" {
		return name
	}
	switch {
	case binding >= elf.SymbolBindingLoOS && binding <= elf.SymbolBindingHiOS:
		return "OS"
	case binding >= elf.SymbolBindingLoProc && binding <= elf.SymbolBindingHiProc:
		return "PROC"
	}
	return "UNKNOWN"
}

func symbolVisibilityString(visibility uint8) string {
	return elf.SymbolVisibilityName(visibility)
}

// symbolIndexString renders a symbol's section index for the Ndx
// column: the bare number for normal indices, the conventional
// abbreviations for the well-known reserved values, and ?n? for the
// rest of the reserved range.
func symbolIndexString(index elf.SectionIndex) string {
	if n, ok := index.Normal(); ok {
		if n == elf.Word(elf.SectionIndexUndefined) {
			return "UND"
		}
		return fmt.Sprintf("%d", n)
	}
	reserved, _ := index.Reserved()
	switch reserved {
	case elf.SectionIndexAbsolute:
		return "ABS"
	case elf.SectionIndexCommon:
		return "COM"
	}
	return fmt.Sprintf("?%d?", reserved)
}

// relocationName returns the psABI name of a relocation type for the
// machines this tool knows the name tables of.
func relocationName(machine elf.Half, relocationType elf.Word) string {
	switch machine {
	case elf.Machine386:
		return elf.I386RelocationName(relocationType)
	case elf.MachineX86_64:
		return elf.X86_64RelocationName(relocationType)
	}
	return "<unimplemented>"
}
