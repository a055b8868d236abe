// Package replay reads and writes the snapshot test format: a text file of
// "<clock_cycle> <event>" lines plus a companion screen.bin framebuffer
// dump, used to drive and verify a System run without a real host.
package replay

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bwade/vcs2600/console"
)

// Step is one recorded line: apply Event once system.Clocks reaches At.
type Step struct {
	At    uint64
	Event console.Event
}

// Load parses a recording file into an ordered list of steps.
func Load(path string) ([]Step, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't open recording %q: %w", path, err)
	}
	defer f.Close()

	var steps []Step
	sc := bufio.NewScanner(f)
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, " ", 2)
		if len(fields) != 2 {
			return nil, fmt.Errorf("recording %q line %d: want \"<clock> <event>\", got %q", path, lineNo, line)
		}
		clock, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("recording %q line %d: bad clock value %q: %w", path, lineNo, fields[0], err)
		}
		ev, err := parseEvent(fields[1])
		if err != nil {
			return nil, fmt.Errorf("recording %q line %d: %w", path, lineNo, err)
		}
		steps = append(steps, Step{At: clock, Event: ev})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading recording %q: %w", path, err)
	}
	return steps, nil
}

var eventNames = map[string]console.EventKind{
	"Quit": console.Quit,
}

var buttonNames = map[string]console.Button{
	"Joystick1Button": console.Joystick1Button,
	"Joystick1Up":     console.Joystick1Up,
	"Joystick1Down":   console.Joystick1Down,
	"Joystick1Left":   console.Joystick1Left,
	"Joystick1Right":  console.Joystick1Right,
}

// parseEvent understands the debug forms Recorder.Update writes:
// "Quit", "InputStart(<Button>)", "InputEnd(<Button>)".
func parseEvent(s string) (console.Event, error) {
	if kind, ok := eventNames[s]; ok {
		return console.Event{Kind: kind}, nil
	}

	for prefix, kind := range map[string]console.EventKind{
		"InputStart(": console.InputStart,
		"InputEnd(":   console.InputEnd,
	} {
		if !strings.HasPrefix(s, prefix) || !strings.HasSuffix(s, ")") {
			continue
		}
		name := s[len(prefix) : len(s)-1]
		b, ok := buttonNames[name]
		if !ok {
			return console.Event{}, fmt.Errorf("unrecognized button %q", name)
		}
		return console.Event{Kind: kind, Button: b}, nil
	}

	return console.Event{}, fmt.Errorf("unrecognized event %q", s)
}

// LoadScreen reads a companion screen.bin framebuffer dump.
func LoadScreen(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't read screen dump %q: %w", path, err)
	}
	return data, nil
}
