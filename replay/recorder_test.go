package replay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bwade/vcs2600/console"
	"github.com/bwade/vcs2600/tia"
)

func TestRecorderRoundTripsThroughLoad(t *testing.T) {
	cartridgeDir := t.TempDir()
	cartridgePath := filepath.Join(cartridgeDir, "game.bin")
	if err := os.WriteFile(cartridgePath, make([]byte, 4096), 0o644); err != nil {
		t.Fatalf("writing fake cartridge: %v", err)
	}

	recDir := filepath.Join(t.TempDir(), "fixture")
	rec, err := NewRecorder(recDir, cartridgePath)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}

	events := []struct {
		ev     console.Event
		clocks uint64
	}{
		{console.Event{Kind: console.InputStart, Button: console.Joystick1Up}, 10},
		{console.Event{Kind: console.InputEnd, Button: console.Joystick1Up}, 40},
		{console.Event{Kind: console.Quit}, 100},
	}

	frame := &tia.Frame{}
	frame.Pix[0] = 0x7F

	for _, e := range events {
		if err := rec.Update(e.ev, e.clocks, frame); err != nil {
			t.Fatalf("Update(%v): %v", e.ev, err)
		}
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	steps, err := Load(filepath.Join(recDir, "recording.txt"))
	if err != nil {
		t.Fatalf("Load recorded file: %v", err)
	}
	if len(steps) != len(events) {
		t.Fatalf("len(steps) = %d, want %d", len(steps), len(events))
	}
	for i, e := range events {
		if steps[i].At != e.clocks || steps[i].Event != e.ev {
			t.Fatalf("step %d = %+v, want {%d %v}", i, steps[i], e.clocks, e.ev)
		}
	}

	screen, err := LoadScreen(filepath.Join(recDir, "screen.bin"))
	if err != nil {
		t.Fatalf("LoadScreen: %v", err)
	}
	if len(screen) != len(frame.Pix) || screen[0] != 0x7F {
		t.Fatalf("screen.bin mismatch: len=%d first=%02X", len(screen), screen[0])
	}

	if _, err := os.Stat(filepath.Join(recDir, "binary.bin")); err != nil {
		t.Fatalf("binary.bin not copied: %v", err)
	}
}

func TestRecorderUpdateIgnoresNoneEvent(t *testing.T) {
	cartridgeDir := t.TempDir()
	cartridgePath := filepath.Join(cartridgeDir, "game.bin")
	if err := os.WriteFile(cartridgePath, make([]byte, 4096), 0o644); err != nil {
		t.Fatalf("writing fake cartridge: %v", err)
	}

	recDir := filepath.Join(t.TempDir(), "fixture")
	rec, err := NewRecorder(recDir, cartridgePath)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	defer rec.Close()

	if err := rec.Update(console.Event{Kind: console.None}, 5, &tia.Frame{}); err != nil {
		t.Fatalf("Update(None): %v", err)
	}
	if err := rec.buf.Flush(); err != nil {
		t.Fatalf("flushing recording: %v", err)
	}

	info, err := os.Stat(filepath.Join(recDir, "recording.txt"))
	if err != nil {
		t.Fatalf("stat recording.txt: %v", err)
	}
	if info.Size() != 0 {
		t.Fatalf("recording.txt size = %d, want 0 after a None event", info.Size())
	}
}
