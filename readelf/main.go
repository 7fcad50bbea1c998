// The readelf command displays information about ELF format files: the
// file header, program headers, section headers, symbol tables,
// relocation tables, notes, and the dynamic section. It is a
// reimplementation of a subset of the classic readelf tool on top of the
// elf_inspect package.
//
// Example usage: readelf -h -S /bin/ls
package main

import (
	"fmt"
	"io"
	"os"

	elf "github.com/elfinspect/elf_inspect"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// options selects which dump passes run on each input file.
type options struct {
	fileHeader     bool
	programHeaders bool
	sections       bool
	symbols        bool
	dynSyms        bool
	relocs         bool
	notes          bool
	dynamic        bool
}

func (o *options) any() bool {
	return o.fileHeader || o.programHeaders || o.sections || o.symbols ||
		o.dynSyms || o.relocs || o.notes || o.dynamic
}

var errFilesFailed = errors.New("some files could not be processed")

func newRootCommand() *cobra.Command {
	var opts options
	var all, headers bool
	var segmentsAlias, sectionsAlias, symbolsAlias bool
	cmd := &cobra.Command{
		Use:           "readelf <elf-file>...",
		Short:         "Display information about the contents of ELF format files",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.programHeaders = opts.programHeaders || segmentsAlias
			opts.sections = opts.sections || sectionsAlias
			opts.symbols = opts.symbols || symbolsAlias
			if all {
				opts.fileHeader = true
				opts.programHeaders = true
				opts.sections = true
				opts.symbols = true
				opts.relocs = true
			}
			if headers {
				opts.fileHeader = true
				opts.programHeaders = true
				opts.sections = true
			}
			if !opts.any() {
				return errors.New("no information requested; try --help")
			}
			failed := false
			for _, path := range args {
				err := inspectFile(cmd.OutOrStdout(), path, len(args) > 1, &opts)
				if err != nil {
					logrus.Error(err)
					failed = true
				}
			}
			if failed {
				return errFilesFailed
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.SortFlags = false
	// Register --help without a shorthand up front so -h stays free for
	// --file-header, the way readelf spells it.
	flags.Bool("help", false, "Display this help message")
	flags.BoolVarP(&all, "all", "a", false,
		"Equivalent to: -h -l -S -s -r")
	flags.BoolVarP(&opts.fileHeader, "file-header", "h", false,
		"Display the ELF file header")
	flags.BoolVarP(&opts.programHeaders, "program-headers", "l", false,
		"Display the program headers")
	flags.BoolVar(&segmentsAlias, "segments", false,
		"An alias for --program-headers")
	flags.BoolVarP(&opts.sections, "sections", "S", false,
		"Display the sections' headers")
	flags.BoolVar(&sectionsAlias, "section-headers", false,
		"An alias for --sections")
	flags.BoolVarP(&headers, "headers", "e", false,
		"Equivalent to: -h -l -S")
	flags.BoolVarP(&opts.symbols, "syms", "s", false,
		"Display the symbol table")
	flags.BoolVar(&symbolsAlias, "symbols", false,
		"An alias for --syms")
	flags.BoolVar(&opts.dynSyms, "dyn-syms", false,
		"Display the dynamic symbol table")
	flags.BoolVarP(&opts.relocs, "relocs", "r", false,
		"Display the relocations (if present)")
	flags.BoolVarP(&opts.notes, "notes", "n", false,
		"Display the core notes (if present)")
	flags.BoolVarP(&opts.dynamic, "dynamic", "d", false,
		"Display the dynamic section (if present)")
	return cmd
}

// inspectFile runs the requested dump passes over one file. Output
// written before a failure is preserved.
func inspectFile(w io.Writer, path string, named bool, opts *options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}
	reader, err := elf.Open(data)
	if err != nil {
		return errors.Wrapf(err, "parsing %s", path)
	}
	if named {
		fmt.Fprintf(w, "\nFile: %s\n", path)
	}
	if opts.fileHeader {
		dumpFileHeader(w, reader)
	}
	if opts.programHeaders {
		dumpProgramHeaders(w, reader)
	}
	if opts.sections {
		dumpSections(w, reader)
	}
	if opts.dynamic {
		if err := dumpDynamic(w, reader); err != nil {
			return errors.Wrapf(err, "dumping dynamic section of %s", path)
		}
	}
	if opts.relocs {
		if err := dumpRelocations(w, reader); err != nil {
			return errors.Wrapf(err, "dumping relocations of %s", path)
		}
	}
	if opts.symbols {
		if err := dumpSymbols(w, reader); err != nil {
			return errors.Wrapf(err, "dumping symbols of %s", path)
		}
	} else if opts.dynSyms {
		if err := dumpDynamicSymbols(w, reader); err != nil {
			return errors.Wrapf(err, "dumping dynamic symbols of %s", path)
		}
	}
	if opts.notes {
		if err := dumpNotes(w, reader); err != nil {
			return errors.Wrapf(err, "dumping notes of %s", path)
		}
	}
	return nil
}

func main() {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if err := newRootCommand().Execute(); err != nil {
		if err != errFilesFailed {
			logrus.Error(err)
		}
		os.Exit(1)
	}
}
