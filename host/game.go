package host

import (
	"errors"
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"github.com/bwade/vcs2600/console"
	"github.com/bwade/vcs2600/cpu6507"
	"github.com/bwade/vcs2600/tia"
)

// keys maps the joystick directions and fire button this console exposes to
// the ebiten keys that drive them.
var keys = []struct {
	key    ebiten.Key
	button console.Button
}{
	{ebiten.KeyUp, console.Joystick1Up},
	{ebiten.KeyDown, console.Joystick1Down},
	{ebiten.KeyLeft, console.Joystick1Left},
	{ebiten.KeyRight, console.Joystick1Right},
	{ebiten.KeySpace, console.Joystick1Button},
}

// Game adapts a console.System and its TIA framebuffer to ebiten.Game. It
// owns no emulation state of its own: Step is driven externally (by
// cmd/vcs2600's emulation goroutine), and Game only polls input and blits
// whatever frame the TIA last produced.
type Game struct {
	sys    *console.System
	events chan console.Event
	held   map[console.Button]bool
	canvas *ebiten.Image

	fatal  error
	clocks func() uint64
}

// NewGame wires a Game to sys. events should be the channel the emulation
// loop reads input from (sys.Run, or cmd/vcs2600's own loop); NewGame only
// sends into it, it never owns the System's loop.
func NewGame(sys *console.System, events chan console.Event) *Game {
	return &Game{
		sys:    sys,
		events: events,
		held:   make(map[console.Button]bool),
		canvas: ebiten.NewImage(tia.Width, tia.Height),
		clocks: func() uint64 { return sys.Clocks },
	}
}

// SetFatal records a fatal error surfaced by the emulation goroutine so
// Draw can overlay it instead of silently freezing on the last frame.
func (g *Game) SetFatal(err error) {
	g.fatal = err
}

// Update polls the keyboard once per ebiten tick and forwards any edges as
// console.Events; it never touches the CPU, TIA, or RIOT directly.
func (g *Game) Update() error {
	for _, k := range keys {
		pressed := ebiten.IsKeyPressed(k.key)
		if pressed == g.held[k.button] {
			continue
		}
		g.held[k.button] = pressed

		kind := console.InputEnd
		if pressed {
			kind = console.InputStart
		}
		select {
		case g.events <- console.Event{Kind: kind, Button: k.button}:
		default:
		}
	}

	if ebiten.IsWindowBeingClosed() {
		select {
		case g.events <- console.Event{Kind: console.Quit}:
		default:
		}
	}

	return nil
}

// Draw blits the TIA's current frame, scaled to the window, and overlays a
// cycle counter plus any fatal error message. The blit itself only
// refreshes while the beam is outside the visible rows (VBLANK/overscan);
// ebiten's own draw cadence runs independently of the emulation goroutine,
// so sampling the framebuffer mid-scan would tear a partially-painted
// frame onto the screen.
func (g *Game) Draw(screen *ebiten.Image) {
	if !g.sys.TIA.IsDrawing() {
		g.canvas.WritePixels(g.sys.TIA.Frame().Pix[:])
	}
	screen.DrawImage(g.canvas, nil)

	text.Draw(screen, g.statusLine(), basicfont.Face7x13, 4, tia.Height-6, color.White)
}

func (g *Game) statusLine() string {
	line := "cycles: " + strconv.FormatUint(g.clocks(), 10)
	if g.fatal == nil {
		return line
	}

	var ferr *cpu6507.FatalError
	if errors.As(g.fatal, &ferr) {
		return line + "  HALTED: " + ferr.Error()
	}
	return line + "  HALTED: " + g.fatal.Error()
}

// Layout returns the TIA's fixed resolution regardless of the requested
// outer size, so ebiten scales the display instead of letting the core
// reason about window dimensions.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return tia.Width, tia.Height
}
