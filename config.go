package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// options controls which sections tbfdump renders and how.
type options struct {
	Disassembly bool
	Hexdump     bool
	Color       string // auto, always or never
}

func defaultOptions() options {
	return options{
		Disassembly: true,
		Hexdump:     true,
		Color:       "auto",
	}
}

type fileConfig struct {
	Output struct {
		Disassembly bool   `toml:"disassembly"`
		Hexdump     bool   `toml:"hexdump"`
		Color       string `toml:"color"`
	} `toml:"output"`
}

// loadOptions reads a TOML options file. Keys that are not present keep
// their defaults.
func loadOptions(path string) (options, error) {
	opts := defaultOptions()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return options{}, fmt.Errorf("load options: %w", err)
	}

	if meta.IsDefined("output", "disassembly") {
		opts.Disassembly = raw.Output.Disassembly
	}
	if meta.IsDefined("output", "hexdump") {
		opts.Hexdump = raw.Output.Hexdump
	}
	if meta.IsDefined("output", "color") {
		switch raw.Output.Color {
		case "auto", "always", "never":
			opts.Color = raw.Output.Color
		default:
			return options{}, fmt.Errorf("invalid color mode %q (want auto, always or never)", raw.Output.Color)
		}
	}
	return opts, nil
}
