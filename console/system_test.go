package console

import (
	"context"
	"errors"
	"testing"

	"github.com/bwade/vcs2600/cpu6507"
)

// program assembles a tiny 4 KiB cartridge image with code starting at
// cpu6507.ResetPC (0x1000). The reset vector bytes also point there, though
// the CPU never reads them.
func program(code ...byte) [romSize]byte {
	var rom [romSize]byte
	copy(rom[:], code)
	rom[0x0FFC] = 0x00 // reset vector low  -> 0x1000
	rom[0x0FFD] = 0x10 // reset vector high
	return rom
}

func TestSystemStepLdxStx(t *testing.T) {
	// LDX #$05 ; STX $80
	sys := New(program(0xA2, 0x05, 0x86, 0x80))

	if err := sys.Step(); err != nil {
		t.Fatalf("LDX step: %v", err)
	}
	if err := sys.Step(); err != nil {
		t.Fatalf("STX step: %v", err)
	}

	v, err := sys.Bus.Read(0x80)
	if err != nil || v != 5 {
		t.Fatalf("RAM[0x80] = (%d, %v), want (5, nil)", v, err)
	}
	if sys.Clocks == 0 {
		t.Fatalf("Clocks not advanced")
	}
}

func TestSystemStepPropagatesFatalDecode(t *testing.T) {
	sys := New(program(0xFF))

	err := sys.Step()
	var ferr *cpu6507.FatalError
	if !errors.As(err, &ferr) || ferr.Kind != cpu6507.FatalDecode {
		t.Fatalf("want FatalDecode, got %v", err)
	}
}

func TestApplyJoystickFansOutToRiotAndTia(t *testing.T) {
	sys := New(program(0xEA)) // NOP

	sys.Apply(Event{Kind: InputStart, Button: Joystick1Button})
	v, err := sys.TIA.Read(0x0C) // INPT4
	if err != nil || v != 0x00 {
		t.Fatalf("INPT4 after press = (%d, %v), want (0x00, nil)", v, err)
	}

	sys.Apply(Event{Kind: InputEnd, Button: Joystick1Button})
	v, err = sys.TIA.Read(0x0C)
	if err != nil || v != 0x80 {
		t.Fatalf("INPT4 after release = (%d, %v), want (0x80, nil)", v, err)
	}

	sys.Apply(Event{Kind: InputStart, Button: Joystick1Up})
	v, err = sys.RIOT.Read(0x280) // SWCHA
	if err != nil || v&0x10 != 0 {
		t.Fatalf("SWCHA bit for Up not latched low: (%d, %v)", v, err)
	}
}

func TestRunStopsOnQuitEvent(t *testing.T) {
	sys := New(program(0xEA)) // NOP; the zero byte after it decodes as BRK
	events := make(chan Event, 1)
	events <- Event{Kind: Quit}

	if err := sys.Run(context.Background(), events); err != nil {
		t.Fatalf("Run after Quit: %v", err)
	}
}

func TestRunPropagatesFatalError(t *testing.T) {
	sys := New(program(0xFF))
	events := make(chan Event)

	err := sys.Run(context.Background(), events)
	var ferr *cpu6507.FatalError
	if !errors.As(err, &ferr) {
		t.Fatalf("want FatalError, got %v", err)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	sys := New(program(0xEA, 0x4C, 0x01, 0x10)) // NOP ; JMP $1001 (infinite loop)
	events := make(chan Event)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := sys.Run(ctx, events); err == nil {
		t.Fatalf("want context error, got nil")
	}
}
