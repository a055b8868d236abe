package console

// EventKind discriminates the closed set of input events a host can
// deliver between system-loop iterations.
type EventKind uint8

const (
	// None is the zero-value sentinel: no event.
	None EventKind = iota
	Quit
	InputStart
	InputEnd
)

// Button identifies which control an InputStart/InputEnd event concerns:
// the four joystick directions plus the fire button.
type Button uint8

const (
	Joystick1Button Button = iota
	Joystick1Up
	Joystick1Down
	Joystick1Left
	Joystick1Right
)

// Event is one input event delivered by the host between loop iterations.
// Kind == None/Quit carry no Button.
type Event struct {
	Kind   EventKind
	Button Button
}

func (b Button) String() string {
	switch b {
	case Joystick1Button:
		return "Joystick1Button"
	case Joystick1Up:
		return "Joystick1Up"
	case Joystick1Down:
		return "Joystick1Down"
	case Joystick1Left:
		return "Joystick1Left"
	case Joystick1Right:
		return "Joystick1Right"
	default:
		return "UnknownButton"
	}
}

// String renders the debug form a recording line stores: "Quit" for Quit,
// "InputStart(<Button>)"/"InputEnd(<Button>)" for the rest.
func (e Event) String() string {
	switch e.Kind {
	case Quit:
		return "Quit"
	case InputStart:
		return "InputStart(" + e.Button.String() + ")"
	case InputEnd:
		return "InputEnd(" + e.Button.String() + ")"
	default:
		return "None"
	}
}
