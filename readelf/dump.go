package main

// The dump passes. Each one writes a self-contained block in the
// conventional readelf layout; errors from fallible reads bubble up so
// the caller can report the file as failed while keeping whatever output
// was already written.

import (
	"fmt"
	"io"

	elf "github.com/elfinspect/elf_inspect"
)

// hexWidth returns the digit count used for address-sized hex fields.
func hexWidth(r *elf.Reader) int {
	if r.Is64Bit() {
		return 16
	}
	return 8
}

func entryWord(n int) string {
	if n == 1 {
		return "entry"
	}
	return "entries"
}

func dumpFileHeader(w io.Writer, r *elf.Reader) {
	header := r.Header()
	ident := header.Ident()
	fmt.Fprintf(w, "ELF Header:\n")
	fmt.Fprintf(w, "  Magic:  ")
	for _, b := range ident {
		fmt.Fprintf(w, " %02x", b)
	}
	fmt.Fprintf(w, "\n")
	class := ident[elf.EIClass]
	className := elf.ClassName(class)
	if className == "" {
		className = fmt.Sprintf("<unknown: 0x%x>", class)
	}
	fmt.Fprintf(w, "  %-35s%s\n", "Class:", className)
	var dataName string
	switch ident[elf.EIData] {
	case elf.Data2LSB:
		dataName = "2's complement, little endian"
	case elf.Data2MSB:
		dataName = "2's complement, big endian"
	default:
		dataName = fmt.Sprintf("<unknown: 0x%x>", ident[elf.EIData])
	}
	fmt.Fprintf(w, "  %-35s%s\n", "Data:", dataName)
	identVersion := fmt.Sprintf("%d", ident[elf.EIVersion])
	if ident[elf.EIVersion] == elf.VersionCurrent {
		identVersion += " (current)"
	}
	fmt.Fprintf(w, "  %-35s%s\n", "Version:", identVersion)
	osabi := elf.OSABIName(ident[elf.EIOSABI])
	if osabi == "" {
		osabi = fmt.Sprintf("<unknown: 0x%x>", ident[elf.EIOSABI])
	}
	fmt.Fprintf(w, "  %-35s%s\n", "OS/ABI:", osabi)
	fmt.Fprintf(w, "  %-35s%d\n", "ABI Version:", ident[elf.EIABIVersion])
	fmt.Fprintf(w, "  %-35s%s\n", "Type:", fileTypeString(header.Type()))
	fmt.Fprintf(w, "  %-35s%s\n", "Machine:", machineString(header.Machine()))
	fmt.Fprintf(w, "  %-35s0x%x\n", "Version:", header.Version())
	fmt.Fprintf(w, "  %-35s0x%x\n", "Entry point address:", header.EntryPoint())
	fmt.Fprintf(w, "  %-35s%d (bytes into file)\n",
		"Start of program headers:", header.ProgramHeaderOffset())
	fmt.Fprintf(w, "  %-35s%d (bytes into file)\n",
		"Start of section headers:", header.SectionHeaderOffset())
	fmt.Fprintf(w, "  %-35s0x%x\n", "Flags:", header.Flags())
	fmt.Fprintf(w, "  %-35s%d (bytes)\n", "Size of this header:",
		header.HeaderSize())
	fmt.Fprintf(w, "  %-35s%d (bytes)\n", "Size of program headers:",
		header.ProgramHeaderEntrySize())
	fmt.Fprintf(w, "  %-35s%d\n", "Number of program headers:",
		header.ProgramHeaderEntries())
	fmt.Fprintf(w, "  %-35s%d (bytes)\n", "Size of section headers:",
		header.SectionHeaderEntrySize())
	fmt.Fprintf(w, "  %-35s%d\n", "Number of section headers:",
		header.SectionHeaderEntries())
	fmt.Fprintf(w, "  %-35s%d\n", "Section header string table index:",
		header.SectionNamesTable())
}

func dumpProgramHeaders(w io.Writer, r *elf.Reader) {
	header := r.Header()
	headers := r.ProgramHeaders()
	if headers.Len() == 0 {
		fmt.Fprintf(w, "\nThere are no program headers in this file.\n")
		return
	}
	fmt.Fprintf(w, "\nElf file type is %s\n", fileTypeString(header.Type()))
	fmt.Fprintf(w, "Entry point 0x%x\n", header.EntryPoint())
	fmt.Fprintf(w, "There are %d program headers, starting at offset %d\n",
		headers.Len(), header.ProgramHeaderOffset())
	fmt.Fprintf(w, "\nProgram Headers:\n")
	width := hexWidth(r)
	if r.Is64Bit() {
		fmt.Fprintf(w, "  Type           Offset             VirtAddr           "+
			"PhysAddr           FileSiz            MemSiz             Flg Align\n")
	} else {
		fmt.Fprintf(w, "  Type           Offset     VirtAddr   PhysAddr   "+
			"FileSiz    MemSiz     Flg Align\n")
	}
	for i := 0; i < headers.Len(); i++ {
		phdr, err := headers.Get(i)
		if err != nil {
			continue
		}
		typeName := elf.SegmentTypeName(phdr.Type())
		if typeName == "" {
			typeName = fmt.Sprintf("0x%x", phdr.Type())
		}
		fmt.Fprintf(w, "  %-14s 0x%0*x 0x%0*x 0x%0*x 0x%0*x 0x%0*x %s 0x%x\n",
			typeName, width, phdr.FileOffset(), width, phdr.VirtualAddress(),
			width, phdr.PhysicalAddress(), width, phdr.FileSize(),
			width, phdr.MemorySize(), segmentFlagString(phdr.Flags()),
			phdr.Align())
		if phdr.Type() == elf.SegmentTypeInterp {
			interp := r.SegmentData(phdr)
			if n := len(interp); n > 0 && interp[n-1] == 0 {
				interp = interp[:n-1]
			}
			fmt.Fprintf(w, "      [Requesting program interpreter: %s]\n",
				interp)
		}
	}
}

func dumpSections(w io.Writer, r *elf.Reader) {
	headers := r.SectionHeaders()
	fmt.Fprintf(w, "\nThere are %d section headers, starting at offset 0x%x:\n\n",
		headers.Len(), r.Header().SectionHeaderOffset())
	fmt.Fprintf(w, "Section Headers:\n")
	fmt.Fprintf(w, "  [Nr] %-17s %-15s %-8s %-6s %-6s ES Flg Lk Inf Al\n",
		"Name", "Type", "Addr", "Off", "Size")
	for i := 0; i < headers.Len(); i++ {
		shdr, err := headers.Get(i)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "  [%2d] %-17s %-15s %08x %06x %06x %02x %3s %2d %3d %2d\n",
			i, r.SectionName(shdr), elf.SectionTypeName(shdr.Type()),
			shdr.VirtualAddress(), shdr.FileOffset(), shdr.Size(),
			shdr.EntrySize(), sectionFlagString(shdr.Flags()),
			shdr.LinkedIndex(), shdr.Info(), shdr.AddrAlign())
	}
	fmt.Fprintf(w, `Key to Flags:
  W (write), A (alloc), X (execute), M (merge), S (strings), I (info),
  L (link order), O (extra OS processing required), G (group), T (TLS),
  C (compressed), x (unknown), o (OS specific), E (exclude),
  p (processor specific)
`)
}

// dumpSymbolTable prints one symbol table section.
func dumpSymbolTable(w io.Writer, r *elf.Reader, section *elf.Section) error {
	table, ok := section.Data.(*elf.SymbolTable)
	if !ok {
		return nil
	}
	width := hexWidth(r)
	fmt.Fprintf(w, "\nSymbol table '%s' contains %d %s:\n", section.Name,
		table.Len(), entryWord(table.Len()))
	if r.Is64Bit() {
		fmt.Fprintf(w, "   Num:    Value          Size Type    Bind   Vis      Ndx Name\n")
	} else {
		fmt.Fprintf(w, "   Num:    Value  Size Type    Bind   Vis      Ndx Name\n")
	}
	for i := 0; i < table.Len(); i++ {
		symbol, err := table.Get(i)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%6d: %0*x %5d %-7s %-6s %-8s %3s %s\n",
			i, width, symbol.Value, symbol.Size,
			symbolTypeString(symbol.SymbolType()),
			symbolBindingString(symbol.Binding()),
			symbolVisibilityString(symbol.Visibility()),
			symbolIndexString(symbol.Section), symbol.Name)
	}
	return nil
}

// dumpSymbols prints the dynamic symbol table followed by the full
// symbol table, whichever the file has.
func dumpSymbols(w io.Writer, r *elf.Reader) error {
	for _, lookup := range []func() (*elf.Section, error){r.Dynsym, r.Symtab} {
		section, err := lookup()
		if err != nil {
			return err
		}
		if section == nil {
			continue
		}
		if err := dumpSymbolTable(w, r, section); err != nil {
			return err
		}
	}
	return nil
}

func dumpDynamicSymbols(w io.Writer, r *elf.Reader) error {
	section, err := r.Dynsym()
	if err != nil {
		return err
	}
	if section == nil {
		return nil
	}
	return dumpSymbolTable(w, r, section)
}

func dumpRelocations(w io.Writer, r *elf.Reader) error {
	machine := r.Header().Machine()
	width := hexWidth(r)
	iter := r.SectionsMatching(func(shdr elf.SectionHeaderRef) bool {
		t := shdr.Type()
		return t == elf.SectionTypeRel || t == elf.SectionTypeRela
	})
	for {
		section, err := iter.Next()
		if err != nil {
			return err
		}
		if section == nil {
			return nil
		}
		switch table := section.Data.(type) {
		case *elf.RelTable:
			fmt.Fprintf(w, "\nRelocation section '%s' at offset 0x%x contains %d %s:\n",
				section.Name, section.Header.FileOffset(), table.Len(),
				entryWord(table.Len()))
			fmt.Fprintf(w, " %-*s %-*s %-20s %-*s %s\n", width, "Offset",
				width, "Info", "Type", width, "Sym. Value", "Sym. Name")
			for i := 0; i < table.Len(); i++ {
				entry, err := table.Entries().Get(i)
				if err != nil {
					return err
				}
				if err := dumpRelocation(w, width, machine, table.Symbols(),
					entry.Offset(), entry.Info(), entry.SymbolIndex(),
					entry.RelocationType(), 0, false); err != nil {
					return err
				}
			}
		case *elf.RelaTable:
			fmt.Fprintf(w, "\nRelocation section '%s' at offset 0x%x contains %d %s:\n",
				section.Name, section.Header.FileOffset(), table.Len(),
				entryWord(table.Len()))
			fmt.Fprintf(w, " %-*s %-*s %-20s %-*s %s\n", width, "Offset",
				width, "Info", "Type", width, "Sym. Value",
				"Sym. Name + Addend")
			for i := 0; i < table.Len(); i++ {
				entry, err := table.Entries().Get(i)
				if err != nil {
					return err
				}
				if err := dumpRelocation(w, width, machine, table.Symbols(),
					entry.Offset(), entry.Info(), entry.SymbolIndex(),
					entry.RelocationType(), entry.Addend(), true); err != nil {
					return err
				}
			}
		}
	}
}

func dumpRelocation(w io.Writer, width int, machine elf.Half,
	symbols *elf.SymbolTable, offset, info elf.Xword, symbolIndex elf.Word,
	relocationType elf.Word, addend elf.Sxword, explicit bool) error {
	symbol, err := symbols.Get(int(symbolIndex))
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%0*x  %0*x %-20s %0*x %s", width, offset, width, info,
		relocationName(machine, relocationType), width, symbol.Value,
		symbol.Name)
	if explicit {
		if addend < 0 {
			fmt.Fprintf(w, " - %d", -addend)
		} else {
			fmt.Fprintf(w, " + %d", addend)
		}
	}
	fmt.Fprintf(w, "\n")
	return nil
}

func dumpNotes(w io.Writer, r *elf.Reader) error {
	iter := r.SectionsMatching(func(shdr elf.SectionHeaderRef) bool {
		return shdr.Type() == elf.SectionTypeNote
	})
	for {
		section, err := iter.Next()
		if err != nil {
			return err
		}
		if section == nil {
			return nil
		}
		table, ok := section.Data.(*elf.NoteTable)
		if !ok {
			continue
		}
		fmt.Fprintf(w, "\nDisplaying notes found in: %s\n", section.Name)
		fmt.Fprintf(w, "  %-20s %-10s\t%s\n", "Owner", "Data size",
			"Description")
		notes := table.Iter()
		for {
			note, ok := notes.Next()
			if !ok {
				break
			}
			fmt.Fprintf(w, "  %-20s 0x%08x\t0x%08x\n", note.Name,
				len(note.Desc), note.Type)
		}
	}
}

func dumpDynamic(w io.Writer, r *elf.Reader) error {
	section, err := r.Dynamic()
	if err != nil {
		return err
	}
	if section == nil {
		fmt.Fprintf(w, "\nThere is no dynamic section in this file.\n")
		return nil
	}
	table, ok := section.Data.(*elf.DynamicTable)
	if !ok {
		return nil
	}
	width := hexWidth(r)
	// The entry array may have room past the terminating NULL tag; only
	// the entries up to and including it count.
	count := table.Len()
	for i := 0; i < table.Len(); i++ {
		entry, err := table.Entries().Get(i)
		if err != nil {
			return err
		}
		if entry.Tag() == elf.DynTagNull {
			count = i + 1
			break
		}
	}
	fmt.Fprintf(w, "\nDynamic section at offset 0x%x contains %d %s:\n",
		section.Header.FileOffset(), count, entryWord(count))
	fmt.Fprintf(w, "  %-*s %-28s %s\n", width+2, "Tag", "Type", "Name/Value")
	for i := 0; i < count; i++ {
		entry, err := table.Entries().Get(i)
		if err != nil {
			return err
		}
		tag := entry.Tag()
		tagName := elf.DynTagName(tag)
		if tagName == "" {
			tagName = fmt.Sprintf("<unknown>: 0x%x", uint64(tag))
		}
		fmt.Fprintf(w, " 0x%0*x %-28s %s\n", width, uint64(tag),
			"("+tagName+")", dynamicValueString(table, tag, entry.Value()))
	}
	return nil
}

// dynamicValueString renders a dynamic entry's value per its tag: string
// tags resolve through the linked string table, size tags print in
// bytes, everything else prints as hex.
func dynamicValueString(table *elf.DynamicTable, tag elf.Sxword, value elf.Xword) string {
	lookup := func() (string, bool) {
		s, ok := table.Strings().GetString(elf.Word(value))
		return string(s), ok
	}
	switch tag {
	case elf.DynTagNeeded:
		if s, ok := lookup(); ok {
			return fmt.Sprintf("Shared library: [%s]", s)
		}
	case elf.DynTagSoname:
		if s, ok := lookup(); ok {
			return fmt.Sprintf("Library soname: [%s]", s)
		}
	case elf.DynTagRpath:
		if s, ok := lookup(); ok {
			return fmt.Sprintf("Library rpath: [%s]", s)
		}
	case elf.DynTagRunpath:
		if s, ok := lookup(); ok {
			return fmt.Sprintf("Library runpath: [%s]", s)
		}
	case elf.DynTagPltRelSize, elf.DynTagRelaSize, elf.DynTagRelaEnt,
		elf.DynTagStrSize, elf.DynTagSymEnt, elf.DynTagRelSize,
		elf.DynTagRelEnt, elf.DynTagInitArraySz, elf.DynTagFiniArraySz:
		return fmt.Sprintf("%d (bytes)", value)
	case elf.DynTagPltRel:
		if name := elf.DynTagName(elf.Sxword(value)); name != "" {
			return name
		}
	}
	return fmt.Sprintf("0x%x", value)
}
