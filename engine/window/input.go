package window

import "github.com/Carmen-Shannon/oxy-globe/common"

// MouseButton identifies a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// ModifierKeys is a bit set of held keyboard modifiers.
type ModifierKeys uint8

const (
	ModShift ModifierKeys = 1 << iota
	ModControl
	ModAlt
)

// Has reports whether every modifier in m is held.
func (k ModifierKeys) Has(m ModifierKeys) bool {
	return k&m == m
}

// updateModifiers returns the modifier set after a key press or release.
// Keys other than Shift, Control and Alt leave the set unchanged.
//
// Parameters:
//   - current: modifiers held before the event
//   - keyCode: the virtual key code
//   - pressed: true for a press or repeat, false for a release
//
// Returns:
//   - ModifierKeys: modifiers held after the event
func updateModifiers(current ModifierKeys, keyCode int, pressed bool) ModifierKeys {
	var m ModifierKeys
	switch keyCode {
	case common.KeyLeftShift, common.KeyRightShift:
		m = ModShift
	case common.KeyLeftControl, common.KeyRightControl:
		m = ModControl
	case common.KeyLeftAlt, common.KeyRightAlt:
		m = ModAlt
	default:
		return current
	}
	if pressed {
		return current | m
	}
	return current &^ m
}
