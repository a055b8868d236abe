package console

import (
	"context"

	"github.com/bwade/vcs2600/cpu6507"
	"github.com/bwade/vcs2600/riot"
	"github.com/bwade/vcs2600/tia"
)

// System owns the CPU, bus, TIA, and RIOT exclusively and runs the
// fetch-decode-execute-tick-WSYNC loop that keeps their three clock
// domains phase-locked.
type System struct {
	CPU  *cpu6507.CPU
	Bus  *Bus
	TIA  *tia.TIA
	RIOT *riot.RIOT

	Clocks uint64
}

// New builds a System over a loaded 4 KiB ROM image.
func New(rom [romSize]byte) *System {
	t := tia.New()
	r := riot.New()
	bus := NewBus(rom, t, r)
	return &System{
		CPU:  cpu6507.New(bus),
		Bus:  bus,
		TIA:  t,
		RIOT: r,
	}
}

// Step runs exactly one instruction through the six-step loop: fetch,
// decode, execute, tick RIOT and TIA by the cycles spent, clear RIOT's
// just-reset latch, then honor any asserted WSYNC.
func (s *System) Step() error {
	cycles, err := s.CPU.Step()
	if err != nil {
		return err
	}

	s.tick(cycles)
	s.RIOT.ClearJustReset()

	if extra := s.TIA.Sync(); extra > 0 {
		s.tick(int(extra))
	}

	return nil
}

func (s *System) tick(cpuCycles int) {
	s.Clocks += uint64(cpuCycles)
	s.RIOT.Tick(cpuCycles)
	s.TIA.Tick(cpuCycles)
}

// Apply fans an input event out to RIOT (joystick directions) and TIA
// (the fire button). Quit and None are handled by the caller; Apply is a
// no-op for them.
func (s *System) Apply(ev Event) {
	switch ev.Kind {
	case InputStart:
		s.applyButton(ev.Button, true)
	case InputEnd:
		s.applyButton(ev.Button, false)
	}
}

func (s *System) applyButton(b Button, pressed bool) {
	switch b {
	case Joystick1Button:
		s.TIA.SetTriggerPressed(pressed)
	case Joystick1Up:
		s.setDirection(riot.Up, pressed)
	case Joystick1Down:
		s.setDirection(riot.Down, pressed)
	case Joystick1Left:
		s.setDirection(riot.Left, pressed)
	case Joystick1Right:
		s.setDirection(riot.Right, pressed)
	}
}

func (s *System) setDirection(dir riot.Direction, pressed bool) {
	if pressed {
		s.RIOT.InputStart(dir)
		return
	}
	s.RIOT.InputEnd(dir)
}

// Run steps the system until ctx is cancelled or an instruction returns a
// fatal error. events is polled once per iteration, non-blocking, so the
// host can deliver input between steps without stalling emulation; a Quit
// event ends the run cleanly (nil error).
func (s *System) Run(ctx context.Context, events <-chan Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if ev.Kind == Quit {
				return nil
			}
			s.Apply(ev)
		default:
		}

		if err := s.Step(); err != nil {
			return err
		}
	}
}
