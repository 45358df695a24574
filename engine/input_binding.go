package engine

import (
	"github.com/Carmen-Shannon/oxy-globe/engine/input"
	"github.com/Carmen-Shannon/oxy-globe/engine/window"
	"github.com/golang/geo/r2"
)

// defaultWheelDeltaPerNotch scales a scroll notch to the units the
// aggregator expects, matching a browser wheelDelta.
const defaultWheelDeltaPerNotch = 120.0

// eventTypeForButton maps a mouse button to its drag event.
func eventTypeForButton(button window.MouseButton) input.EventType {
	switch button {
	case window.MouseButtonRight:
		return input.RightDrag
	case window.MouseButtonMiddle:
		return input.MiddleDrag
	default:
		return input.LeftDrag
	}
}

// modifierFor picks the single modifier a gesture is bound with. Shift wins
// over Control, which wins over Alt.
func modifierFor(mods window.ModifierKeys) input.Modifier {
	switch {
	case mods.Has(window.ModShift):
		return input.ModifierShift
	case mods.Has(window.ModControl):
		return input.ModifierCtrl
	case mods.Has(window.ModAlt):
		return input.ModifierAlt
	default:
		return input.ModifierNone
	}
}

// bindInput forwards window pointer events to the aggregator of every active
// scene.
func (e *engine) bindInput() {
	e.window.SetMouseButtonCallback(func(button window.MouseButton, pressed bool, x, y float64, mods window.ModifierKeys) {
		position := r2.Point{X: x, Y: y}
		eventType := eventTypeForButton(button)
		e.forEachAggregator(func(a input.CameraEventAggregator) {
			if pressed {
				a.MouseDown(eventType, position, modifierFor(mods))
			} else {
				a.MouseUp(eventType, position)
			}
		})
	})

	e.window.SetMouseMoveCallback(func(x, y float64, mods window.ModifierKeys) {
		position := r2.Point{X: x, Y: y}
		e.forEachAggregator(func(a input.CameraEventAggregator) {
			a.MouseMove(position, modifierFor(mods))
		})
	})

	e.window.SetScrollCallback(func(delta float64, mods window.ModifierKeys) {
		e.forEachAggregator(func(a input.CameraEventAggregator) {
			a.WheelScroll(delta*e.wheelDeltaPerNotch, modifierFor(mods))
		})
	})
}

func (e *engine) forEachAggregator(fn func(a input.CameraEventAggregator)) {
	for _, s := range e.sortedScenes(true) {
		fn(s.Controller().Aggregator())
	}
}
