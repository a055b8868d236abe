// Package cpu6507 implements the MOS Technology 6507, the restricted-pinout
// 6502 variant used as the Atari 2600's CPU.
//
// The CPU has no memory of its own. It interfaces with a Bus that routes
// reads and writes to RAM, ROM, and the TIA/RIOT registers and can itself
// fail fatally (a write to ROM, an address the decode masks don't cover).
package cpu6507

import (
	"fmt"
)

// Bus is the memory interface the CPU reads opcodes, operands, and data
// through. Implementations decide how an address resolves to ROM, RAM, or
// a peripheral register, and report an address-decode failure as an error
// rather than panicking.
type Bus interface {
	Read(addr uint16) (uint8, error)
	Write(addr uint16, val uint8) error
}

// CPU holds all 6507 register and flag state. It carries no memory of its
// own; every read or write passes through Bus.
type CPU struct {
	Bus Bus

	A, X, Y uint8
	SP      uint8
	PC      uint16

	N, V, B, D, I, Z, C bool
}

// ResetPC is where program execution begins. Unlike the full 6502, the
// 6507's reset vector isn't consulted: the cartridge is mapped so that
// execution always starts at the top of its 4 KiB image.
const ResetPC = 0x1000

// New returns a powered-on CPU: PC at ResetPC, every other register and
// flag zeroed.
func New(bus Bus) *CPU {
	return &CPU{Bus: bus, PC: ResetPC}
}

// fetch reads the byte at PC and advances PC by one.
func (c *CPU) fetch() (uint8, error) {
	b, err := c.Bus.Read(c.PC)
	if err != nil {
		return 0, err
	}
	c.PC++
	return b, nil
}

// fetch16 reads two bytes at PC (low byte first) and advances PC by two.
func (c *CPU) fetch16() (uint16, error) {
	lo, err := c.fetch()
	if err != nil {
		return 0, err
	}
	hi, err := c.fetch()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// Step fetches, decodes and executes one instruction, returning the number
// of CPU cycles it consumed. FatalDecode is returned for unrecognized
// opcodes; FatalUnimplemented for BRK/RTI; bus errors propagate as-is so
// the caller can classify them (FatalMemory in console's bus).
func (c *CPU) Step() (int, error) {
	opByte, err := c.fetch()
	if err != nil {
		return 0, err
	}

	op, ok := opcodes[opByte]
	if !ok {
		return 0, &FatalError{Kind: FatalDecode, Msg: fmt.Sprintf("unknown opcode 0x%02X at PC 0x%04X", opByte, c.PC-1)}
	}

	if op.Mnemonic == BRK || op.Mnemonic == RTI {
		return 0, &FatalError{Kind: FatalUnimplemented, Msg: fmt.Sprintf("%s is not implemented", op.Mnemonic)}
	}

	av, err := c.resolve(op.Mode)
	if err != nil {
		return 0, err
	}

	extra, err := op.Mnemonic.exec(c, av)
	if err != nil {
		return 0, err
	}

	cycles := op.Cycles + extra
	if op.PageCrossBonus && av.PageCrossed {
		cycles++
	}
	return cycles, nil
}

// pushByte writes val to the stack, which on the 2600 lives directly in
// the 128 bytes of RAM at 0x80-0xFF (addressed by SP, not the full 6502's
// page-1 convention: there's no separate stack page to mirror into), and
// decrements SP.
func (c *CPU) pushByte(val uint8) error {
	if err := c.Bus.Write(0x80|uint16(c.SP), val); err != nil {
		return err
	}
	c.SP--
	return nil
}

// pullByte increments SP and reads the byte it now points at.
func (c *CPU) pullByte() (uint8, error) {
	c.SP++
	return c.Bus.Read(0x80 | uint16(c.SP))
}

// flagsByte packs the flag bits into a status byte, with bit 5 (unused)
// forced to 1, as PHP requires.
func (c *CPU) flagsByte() uint8 {
	var p uint8
	if c.N {
		p |= 1 << 7
	}
	if c.V {
		p |= 1 << 6
	}
	p |= 1 << 5
	if c.B {
		p |= 1 << 4
	}
	if c.D {
		p |= 1 << 3
	}
	if c.I {
		p |= 1 << 2
	}
	if c.Z {
		p |= 1 << 1
	}
	if c.C {
		p |= 1 << 0
	}
	return p
}

// setFlagsByte unpacks a status byte (as pulled by PLP) into the CPU's
// flags, ignoring bit 5.
func (c *CPU) setFlagsByte(p uint8) {
	c.N = p&(1<<7) != 0
	c.V = p&(1<<6) != 0
	c.B = p&(1<<4) != 0
	c.D = p&(1<<3) != 0
	c.I = p&(1<<2) != 0
	c.Z = p&(1<<1) != 0
	c.C = p&(1<<0) != 0
}

func (c *CPU) String() string {
	return fmt.Sprintf(
		"A:%02X X:%02X Y:%02X SP:%02X PC:%04X  N:%t V:%t B:%t D:%t I:%t Z:%t C:%t",
		c.A, c.X, c.Y, c.SP, c.PC, c.N, c.V, c.B, c.D, c.I, c.Z, c.C,
	)
}
