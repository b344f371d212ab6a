// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/emulator"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: %v [options] <program>\n", os.Args[0])
	flag.PrintDefaults()
}

// assembleFile assembles the source file at path.
func assembleFile(asm *cpu.Assembler, path string) (prog *cpu.Program, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	prog, err = asm.Parse(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
	}

	return
}

func main() {
	var assemble bool
	var save bool
	var output string
	var verbose bool

	asm := &cpu.Assembler{}

	flag.Usage = usage
	flag.BoolVar(&assemble, "a", false, "Program is assembly source, not a binary image")
	flag.BoolVar(&save, "s", false, "Save program as an image, do not execute")
	flag.StringVar(&output, "o", "-", "Image output, with -s")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Func("D", "Predefine an assembler equate, NAME=VALUE", func(arg string) (err error) {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || len(name) == 0 {
			err = fmt.Errorf("%v: expected NAME=VALUE", arg)
			return
		}
		asm.Predefine(name, value)
		return
	})

	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	path := flag.Arg(0)

	var prog *cpu.Program
	var err error
	if assemble {
		asm.Verbose = verbose
		prog, err = assembleFile(asm, path)
	} else {
		prog, err = cpu.LoadImage(path)
	}
	if err != nil {
		log.Fatal(err)
	}

	if save {
		var ouf io.Writer = os.Stdout
		if output != "-" {
			file, err := os.Create(output)
			if err != nil {
				log.Fatalf("%v: %v", output, err)
			}
			defer file.Close()
			ouf = file
		}
		err = prog.WriteImage(ouf)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		return
	}

	emu := emulator.NewEmulator()
	emu.Program = prog
	emu.Verbose = verbose

	err = emu.Reset()
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}

	err = emu.Run()
	if err != nil {
		log.Fatal(err)
	}

	if verbose {
		log.Printf("%v: %d instructions\n%v", path, emu.Cpu.Ticks, emu.Cpu)
	}
}
