// Package console wires the CPU, TIA, and RIOT together behind the
// address-decoded bus and drives the system loop that steps them in lock.
package console

import (
	"fmt"

	"github.com/bwade/vcs2600/cpu6507"
	"github.com/bwade/vcs2600/riot"
	"github.com/bwade/vcs2600/tia"
)

const (
	romSize = 4096
	ramSize = 128
)

// Bus routes every CPU memory access to ROM, RAM, the TIA, or the RIOT by
// matching bit patterns against the address, not by range. The mirror
// scheme on real hardware folds many addresses onto the same few
// registers; only the exact masks below reproduce that folding.
type Bus struct {
	rom  [romSize]byte
	ram  [ramSize]byte
	tia  *tia.TIA
	riot *riot.RIOT
}

// NewBus returns a Bus over a freshly loaded ROM image, a fresh TIA, and a
// fresh RIOT.
func NewBus(rom [romSize]byte, t *tia.TIA, r *riot.RIOT) *Bus {
	return &Bus{rom: rom, tia: t, riot: r}
}

// Read implements cpu6507.Bus.
func (b *Bus) Read(addr uint16) (uint8, error) {
	if addr&0x1000 != 0 {
		return b.rom[addr&0x0FFF], nil
	}
	if addr&0x1200 == 0 && addr&0x0080 != 0 {
		return b.ram[addr&0x7F], nil
	}
	if addr&0x1080 == 0 {
		v, err := b.tia.Read(addr & 0x0F)
		if err != nil {
			return 0, &cpu6507.FatalError{Kind: cpu6507.FatalUnimplemented, Msg: "TIA register read", Err: err}
		}
		return v, nil
	}
	if addr&0x1000 == 0 && addr&0x0480 != 0 {
		v, err := b.riot.Read(addr)
		if err != nil {
			return 0, &cpu6507.FatalError{Kind: cpu6507.FatalUnimplemented, Msg: "RIOT register read", Err: err}
		}
		return v, nil
	}
	return 0, &cpu6507.FatalError{Kind: cpu6507.FatalMemory, Msg: fmt.Sprintf("unmapped read at address 0x%04X", addr)}
}

// Write implements cpu6507.Bus.
func (b *Bus) Write(addr uint16, val uint8) error {
	if addr&0x1000 != 0 {
		return &cpu6507.FatalError{Kind: cpu6507.FatalMemory, Msg: fmt.Sprintf("assignment to program memory at 0x%04X", addr)}
	}
	if addr&0x1200 == 0 && addr&0x0080 != 0 {
		b.ram[addr&0x7F] = val
		return nil
	}
	if addr&0x1080 == 0 {
		if err := b.tia.Write(addr&0x3F, val); err != nil {
			return &cpu6507.FatalError{Kind: cpu6507.FatalUnimplemented, Msg: "TIA register write", Err: err}
		}
		return nil
	}
	if addr&0x1000 == 0 && addr&0x0294 != 0 {
		if err := b.riot.Write(addr&0x1F, val); err != nil {
			return &cpu6507.FatalError{Kind: cpu6507.FatalUnimplemented, Msg: "RIOT register write", Err: err}
		}
		return nil
	}
	return &cpu6507.FatalError{Kind: cpu6507.FatalMemory, Msg: fmt.Sprintf("unmapped write at address 0x%04X", addr)}
}
