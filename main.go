// Command tbfdump inspects a Tock Binary Format (TBF) v2 image: it prints
// the decoded header fields, a RISC-V disassembly of the code region, and a
// hex dump of any trailing data.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"moria.us/tbfdump/disasm"
	"moria.us/tbfdump/hexdump"
	"moria.us/tbfdump/tbf"
)

// A wrappedError is an error wrapped with a location for context.
type wrappedError struct {
	location string
	inner    error
}

func (e *wrappedError) Error() string {
	return fmt.Sprintf("%s: %v", e.location, e.inner)
}

func (e *wrappedError) Unwrap() error { return e.inner }

// wrapError returns an error wrapped with a location for context.
func wrapError(e error, loc string) error {
	if we, ok := e.(*wrappedError); ok {
		return &wrappedError{
			location: loc + ": " + we.location,
			inner:    we.inner,
		}
	}
	return &wrappedError{
		location: loc,
		inner:    e,
	}
}

var heading = color.New(color.FgCyan, color.Bold)

func mainE() error {
	var (
		cfgPath string
		verbose bool
	)
	flag.StringVar(&cfgPath, "config", "", "Options file (TOML)")
	flag.BoolVar(&verbose, "v", false, "Enable debug logging")
	flag.Parse()
	args := flag.Args()
	if len(args) != 1 {
		return fmt.Errorf("got %d arguments, expected 1", len(args))
	}
	input := args[0]

	opts := defaultOptions()
	if cfgPath != "" {
		var err error
		if opts, err = loadOptions(cfgPath); err != nil {
			return err
		}
	}
	switch opts.Color {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if !verbose {
		log = log.Level(zerolog.WarnLevel)
	}

	log.Debug().Str("file", input).Msg("inspecting image")
	img, err := tbf.Open(input)
	if err != nil {
		return wrapError(err, input)
	}
	log.Debug().
		Int("records", len(img.Records)).
		Uint32("total_size", img.Header.TotalSize).
		Int("code_bytes", len(img.Code)).
		Int("trailing_bytes", len(img.Trailing)).
		Msg("image parsed")

	w := bufio.NewWriter(os.Stdout)
	img.DumpText(w, "")

	if opts.Disassembly {
		w.WriteByte('\n')
		heading.Fprintln(w, "disassembly")
		s := disasm.NewRV32(img.Code, img.CodeAddr)
		for inst, ok := s.Next(); ok; inst, ok = s.Next() {
			fmt.Fprintf(w, "%08x %s\n", inst.PC, inst.Text)
		}
	}
	if opts.Hexdump {
		w.WriteByte('\n')
		heading.Fprintln(w, "trailing data")
		if err := hexdump.Dump(w, img.Trailing); err != nil {
			return err
		}
	}
	return w.Flush()
}

func main() {
	if err := mainE(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
