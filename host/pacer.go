// Package host provides the ebiten-backed window, key polling, and
// real-time pacing that let the core run as a playable program. None of it
// is imported by cpu6507, riot, tia, or console: the core only ever sees
// console.Event in and *tia.Frame out.
package host

import "time"

// nanosPerCycle is one CPU cycle at the NTSC 6507's 1.19 MHz clock.
const nanosPerCycle = 1e9 / 1193182.0

// Pacer throttles the emulation loop to real time by sleeping off the
// difference between wall-clock elapsed time and CPU cycles retired. A
// sleep invariably overshoots or undershoots its target, and that error
// has to be carried into the next pause rather than silently dropped, or
// the whole run gradually drifts out of real time.
type Pacer struct {
	last    time.Time
	runover time.Duration
	sleep   func(time.Duration)
	now     func() time.Time
}

// NewPacer returns a Pacer started at the current instant.
func NewPacer() *Pacer {
	return &Pacer{last: time.Now(), sleep: time.Sleep, now: time.Now}
}

// PauseFor blocks long enough that, combined with time already spent since
// the last call, approximately want has elapsed — compensating for
// previous calls' sleep error so drift doesn't accumulate across a long
// run.
func (p *Pacer) PauseFor(want time.Duration) {
	elapsed := p.now().Sub(p.last)

	if want < elapsed {
		p.runover += elapsed - want
	}

	actual := want - elapsed
	if actual < 0 {
		actual = 0
	}

	if p.runover < actual {
		shouldSleep := actual - p.runover
		before := p.now()
		p.sleep(shouldSleep)
		p.runover = p.now().Sub(before) - shouldSleep
	} else {
		p.runover -= actual
	}

	p.last = p.now()
}

// PauseForCycles is PauseFor in units of CPU cycles instead of wall time.
func (p *Pacer) PauseForCycles(cycles int) {
	p.PauseFor(time.Duration(float64(cycles) * nanosPerCycle))
}
