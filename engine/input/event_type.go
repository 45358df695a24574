// Package input aggregates raw pointer, wheel and pinch events into per-frame
// gesture movements for the camera controller.
package input

import "fmt"

// EventType is a camera gesture.
type EventType int

const (
	// LeftDrag is a drag with the primary mouse button held.
	LeftDrag EventType = iota
	// RightDrag is a drag with the secondary mouse button held.
	RightDrag
	// MiddleDrag is a drag with the middle mouse button held.
	MiddleDrag
	// Wheel is a mouse wheel scroll.
	Wheel
	// Pinch is a two-finger touch gesture.
	Pinch

	eventTypeCount
)

// Modifier is the keyboard modifier held while a gesture is performed.
type Modifier int

const (
	ModifierNone Modifier = iota
	ModifierShift
	ModifierCtrl
	ModifierAlt

	modifierCount
)

// EventKey identifies one gesture slot: an event type combined with a modifier.
type EventKey struct {
	Type     EventType
	Modifier Modifier
}

// Key returns the EventKey for t with no modifier.
func (t EventType) Key() EventKey {
	return EventKey{Type: t}
}

// With returns the EventKey for t combined with m.
func (t EventType) With(m Modifier) EventKey {
	return EventKey{Type: t, Modifier: m}
}

func (k EventKey) index() int {
	return int(k.Type)*int(modifierCount) + int(k.Modifier)
}

func (k EventKey) valid() bool {
	return k.Type >= 0 && k.Type < eventTypeCount && k.Modifier >= 0 && k.Modifier < modifierCount
}

func (t EventType) String() string {
	switch t {
	case LeftDrag:
		return "LeftDrag"
	case RightDrag:
		return "RightDrag"
	case MiddleDrag:
		return "MiddleDrag"
	case Wheel:
		return "Wheel"
	case Pinch:
		return "Pinch"
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

func (m Modifier) String() string {
	switch m {
	case ModifierNone:
		return "None"
	case ModifierShift:
		return "Shift"
	case ModifierCtrl:
		return "Ctrl"
	case ModifierAlt:
		return "Alt"
	}
	return fmt.Sprintf("Modifier(%d)", int(m))
}

func (k EventKey) String() string {
	if k.Modifier == ModifierNone {
		return k.Type.String()
	}
	return k.Type.String() + "+" + k.Modifier.String()
}

const keyCount = int(eventTypeCount) * int(modifierCount)
