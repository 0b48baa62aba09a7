// Package main implements a CHIP-8 ROM disassembler
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrogolib/buildinfo"

	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/insts"
	"github.com/sarchlab/c8sim/loader"
)

var (
	version = "0.1.0"
	commit  = ""
	date    = ""
)

type optionFlags struct {
	input  string
	output string

	quiet     bool
	noLabels  bool
	noOffsets bool
}

func main() {
	options := readArguments()

	if !options.quiet {
		printBanner()
	}

	if err := disasmFile(options); err != nil {
		fmt.Println(fmt.Errorf("disassembling failed: %w", err))
		os.Exit(1)
	}
}

func readArguments() optionFlags {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	options := optionFlags{}

	flags.StringVar(&options.output, "o", "", "name of the output file, default is stdout")
	flags.BoolVar(&options.quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&options.noLabels, "nolabels", false, "do not emit labels for jump and call targets")
	flags.BoolVar(&options.noOffsets, "nooffsets", false, "do not output addresses and raw words")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()

	if err != nil || len(args) == 0 {
		printBanner()
		fmt.Printf("usage: c8disasm [options] <file to disassemble>\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}
	options.input = args[0]

	return options
}

func printBanner() {
	fmt.Println("[--------------------------------------]")
	fmt.Println("[ c8disasm - CHIP-8 ROM disassembler   ]")
	fmt.Printf("[--------------------------------------]\n\n")
	fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
}

func disasmFile(options optionFlags) (err error) {
	prog, err := loader.Load(options.input)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if options.output != "" {
		f, createErr := os.Create(options.output)
		if createErr != nil {
			return fmt.Errorf("creating output file: %w", createErr)
		}
		defer func() {
			err = errors.Join(err, f.Close())
		}()
		w = f
	}

	bw := bufio.NewWriter(w)
	if err := disassemble(bw, prog.Data, listingOptions{
		labels:  !options.noLabels,
		offsets: !options.noOffsets,
	}); err != nil {
		return err
	}
	return bw.Flush()
}

type listingOptions struct {
	labels  bool
	offsets bool
}

// disassemble writes one line per program word, starting at 0x200. A
// trailing odd byte is emitted as data.
func disassemble(w io.Writer, data []byte, opts listingOptions) error {
	decoder := insts.NewDecoder()

	var targets map[uint16]bool
	if opts.labels {
		targets = branchTargets(decoder, data)
	}

	for off := 0; off+1 < len(data); off += 2 {
		addr := uint16(emu.ProgramStart + off)
		word := uint16(data[off])<<8 | uint16(data[off+1])
		inst := decoder.DecodeValue(word)

		if targets[addr] {
			if _, err := fmt.Fprintf(w, "L%03X:\n", addr); err != nil {
				return err
			}
		}

		text := inst.String()
		if opts.labels && targets[inst.NNN] && (inst.Op == insts.OpJP || inst.Op == insts.OpCALL) {
			text = fmt.Sprintf("%s L%03X", inst.Op, inst.NNN)
		}

		var err error
		if opts.offsets {
			_, err = fmt.Fprintf(w, "  0x%03X  %04X  %s\n", addr, word, text)
		} else {
			_, err = fmt.Fprintf(w, "  %s\n", text)
		}
		if err != nil {
			return err
		}
	}

	if len(data)%2 == 1 {
		addr := emu.ProgramStart + len(data) - 1
		last := data[len(data)-1]
		var err error
		if opts.offsets {
			_, err = fmt.Fprintf(w, "  0x%03X  %02X    DB $%02X\n", addr, last, last)
		} else {
			_, err = fmt.Fprintf(w, "  DB $%02X\n", last)
		}
		return err
	}

	return nil
}

// branchTargets collects JP and CALL destinations that fall inside the image.
func branchTargets(decoder *insts.Decoder, data []byte) map[uint16]bool {
	end := emu.ProgramStart + len(data)
	targets := make(map[uint16]bool)

	for off := 0; off+1 < len(data); off += 2 {
		inst := decoder.DecodeValue(uint16(data[off])<<8 | uint16(data[off+1]))
		if inst.Op != insts.OpJP && inst.Op != insts.OpCALL {
			continue
		}
		if int(inst.NNN) >= emu.ProgramStart && int(inst.NNN) < end {
			targets[inst.NNN] = true
		}
	}

	return targets
}
