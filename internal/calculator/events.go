package calculator

import (
	"github.com/iwvelando/loan-calculator/pkg/constants"
	"go.uber.org/zap"
)

// EventKind identifies what happened on the hosting form.
type EventKind int

const (
	// EventLoad fires once when the form is first shown.
	EventLoad EventKind = iota
	// EventCalculate fires on the explicit calculate action.
	EventCalculate
	// EventInput fires on every modification of an input field.
	EventInput
	// EventKeyDown fires on a key press inside an input field.
	EventKeyDown
	// EventClear fires on the explicit clear action.
	EventClear
)

func (k EventKind) String() string {
	switch k {
	case EventLoad:
		return "load"
	case EventCalculate:
		return "calculate"
	case EventInput:
		return "input"
	case EventKeyDown:
		return "keydown"
	case EventClear:
		return "clear"
	default:
		return "unknown"
	}
}

// Event is a trigger raised by the hosting form. Field names the input field
// for EventInput and EventKeyDown; Key is the pressed key for EventKeyDown.
type Event struct {
	Kind  EventKind
	Field string
	Key   string
}

// IsInputField reports whether name is one of the three numeric input fields.
func IsInputField(name string) bool {
	switch name {
	case constants.FieldAmount, constants.FieldTerm, constants.FieldRate:
		return true
	}
	return false
}

// HandleEvent dispatches a form trigger. It returns true when the host should
// suppress the default effect of the event, which is the case for the
// activation key pressed in an input field.
func (a *Adapter) HandleEvent(ev Event) bool {
	a.logger.Debug("form event",
		zap.String("op", "calculator.HandleEvent"),
		zap.Stringer("kind", ev.Kind),
		zap.String("field", ev.Field),
	)

	switch ev.Kind {
	case EventLoad, EventCalculate:
		a.CalculateAndRender()
	case EventInput:
		if IsInputField(ev.Field) {
			a.CalculateAndRender()
		}
	case EventKeyDown:
		if IsInputField(ev.Field) && ev.Key == constants.ActivationKey {
			a.CalculateAndRender()
			return true
		}
	case EventClear:
		a.ResetAll()
	}
	return false
}

// ParseEventKind maps an event name as sent by a hosting surface onto an
// EventKind. It reports false for unknown names.
func ParseEventKind(name string) (EventKind, bool) {
	switch name {
	case "load":
		return EventLoad, true
	case "calculate", "click", "submit":
		return EventCalculate, true
	case "input", "change":
		return EventInput, true
	case "keydown":
		return EventKeyDown, true
	case "clear", "reset":
		return EventClear, true
	}
	return EventCalculate, false
}
