// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ezrec/gmc4/cpu"
	"github.com/ezrec/gmc4/emulator"
	gio "github.com/ezrec/gmc4/io"
	"github.com/ezrec/gmc4/mem"
)

func main() {
	var compile string
	var hexfile string
	var listing bool
	var save string
	var start string
	var autokey bool
	var verbose bool

	flag.StringVar(&compile, "c", "", ".asm file to assemble")
	flag.StringVar(&hexfile, "x", "", ".hex program file to load")
	flag.BoolVar(&listing, "l", false, "Print the assembled listing, do not execute")
	flag.StringVar(&save, "o", "", "Save memory as a .hex file, do not execute")
	flag.StringVar(&start, "a", "0", "Start address")
	flag.BoolVar(&autokey, "k", false, "Buffer a dummy key press for a program that starts with KA")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	addr, err := strconv.ParseUint(start, 0, 8)
	if err != nil || addr >= mem.Size {
		log.Fatalf("%v: invalid start address", start)
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Sounder = gio.Console{}

	// Assemble a new program.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		prog, err := emu.Assemble(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}

		if listing {
			fmt.Print(prog.Listing())
			return
		}
	}

	// Load a hex-text program file.
	if len(hexfile) != 0 {
		inf, err := os.Open(hexfile)
		if err != nil {
			log.Fatalf("%v: %v", hexfile, err)
		}
		defer inf.Close()

		values, err := gio.ReadProgram(inf)
		if err != nil {
			log.Fatalf("%v: %v", hexfile, err)
		}

		emu.Cpu.Mem.Load(values, 0)
	}

	if len(save) != 0 {
		end := mem.Size - 1
		if emu.Program != nil && emu.Program.Size() > 0 {
			end = emu.Program.Size() - 1
		}

		ouf, err := os.Create(save)
		if err != nil {
			log.Fatalf("%v: %v", save, err)
		}
		defer ouf.Close()

		if err := gio.WriteProgram(ouf, emu.Cpu.Mem, 0, end); err != nil {
			log.Fatalf("%v: %v", save, err)
		}
		return
	}

	enterRawTerm()
	defer exitRawTerm()

	emu.SelectMode(emulator.MODE_RUN, uint8(addr), autokey)

	var last cpu.Snapshot
	showPanel(emu.Cpu.Snapshot())

	for {
		drainKeys(emu)

		if !emu.Tick() {
			break
		}

		if snap := emu.Cpu.Snapshot(); snap != last {
			showPanel(snap)
			last = snap
		}

		// Pace the simulation near the original clock and keep the
		// stdin poll from spinning while suspended on KA.
		time.Sleep(time.Millisecond)
	}

	fmt.Print("\r\n")
}

// drainKeys delivers pending key presses from the raw terminal to the
// keypad. 'q' (or ^C) stops the machine; ^R is a soft reset.
func drainKeys(emu *emulator.Emulator) {
	var buf [16]byte

	n, _ := os.Stdin.Read(buf[:])
	for _, ch := range buf[:n] {
		switch ch {
		case 'q', 0x03:
			emu.Cpu.Halt()
		case 0x12:
			emu.Reset(false)
		default:
			if value, ok := keyValue(ch); ok {
				emu.Keypad.Press(value)
			}
		}
	}
}

// keyValue maps a terminal byte to a hexadecimal keypad value.
func keyValue(ch byte) (value uint8, ok bool) {
	switch {
	case ch >= '0' && ch <= '9':
		value, ok = ch-'0', true
	case ch >= 'a' && ch <= 'f':
		value, ok = ch-'a'+10, true
	case ch >= 'A' && ch <= 'F':
		value, ok = ch-'A'+10, true
	}

	return
}

// showPanel redraws the one-line front panel: the binary LEDs (6 down
// to 0), the 7-segment readout, and a key prompt while waiting.
func showPanel(snap cpu.Snapshot) {
	var leds strings.Builder
	for n := cpu.LED_COUNT - 1; n >= 0; n-- {
		if snap.Led[n] {
			leds.WriteByte('*')
		} else {
			leds.WriteByte('.')
		}
	}

	state := "    "
	switch {
	case snap.Waiting:
		state = "key?"
	case snap.Halted:
		state = "halt"
	}

	fmt.Printf("\r[%s] %X  %s", leds.String(), snap.Display, state)
}
