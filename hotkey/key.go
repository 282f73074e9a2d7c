// Package hotkey tracks the push-to-talk trigger key: resolving the
// configured spec into a typed key, matching raw keyboard events against it,
// and listening for press/release edges on the platform input layer.
package hotkey

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidHotkey is returned by Resolve for specs that are neither a
// recognized named key nor a single character. Always fatal at startup.
var ErrInvalidHotkey = errors.New("invalid hotkey")

// Named identifies a recognized named key. Modifier keys exist in left and
// right physical variants; Matches folds them.
type Named uint8

const (
	NamedNone Named = iota
	CtrlLeft
	CtrlRight
	ShiftLeft
	ShiftRight
	AltLeft
	AltRight
	SuperLeft
	SuperRight
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
)

// Key is one keyboard key: either a named key or a single literal character.
// Exactly one of Named/Char is set.
type Key struct {
	Named Named
	Char  rune
}

var specNames = map[string]Named{
	"ctrl":   CtrlLeft,
	"shift":  ShiftLeft,
	"alt":    AltLeft,
	"cmd":    SuperLeft,
	"super":  SuperLeft,
	"option": AltLeft, // macOS alias
	"f1":     F1,
	"f2":     F2,
	"f3":     F3,
	"f4":     F4,
	"f5":     F5,
	"f6":     F6,
	"f7":     F7,
	"f8":     F8,
	"f9":     F9,
	"f10":    F10,
	"f11":    F11,
	"f12":    F12,
}

// Resolve turns a config spec like "ctrl", "f8", or "z" into a Key.
func Resolve(spec string) (Key, error) {
	trimmed := strings.TrimSpace(spec)
	if named, ok := specNames[strings.ToLower(trimmed)]; ok {
		return Key{Named: named}, nil
	}
	if utf8.RuneCountInString(trimmed) == 1 {
		r, _ := utf8.DecodeRuneInString(trimmed)
		return Key{Char: unicode.ToLower(r)}, nil
	}
	return Key{}, fmt.Errorf("%w: %q (use ctrl, alt, shift, cmd, f1-f12, or a single character)", ErrInvalidHotkey, spec)
}

// fold maps a right-side modifier variant onto its left-side sibling.
func (n Named) fold() Named {
	switch n {
	case CtrlRight:
		return CtrlLeft
	case ShiftRight:
		return ShiftLeft
	case AltRight:
		return AltLeft
	case SuperRight:
		return SuperLeft
	}
	return n
}

// Matches reports whether a raw key event refers to the resolved trigger.
// Named modifiers match regardless of left/right physical variant.
func Matches(event, resolved Key) bool {
	if resolved.Named != NamedNone {
		return event.Named.fold() == resolved.Named.fold()
	}
	return event.Named == NamedNone && event.Char != 0 && event.Char == resolved.Char
}

func (k Key) String() string {
	switch k.Named.fold() {
	case CtrlLeft:
		return "ctrl"
	case ShiftLeft:
		return "shift"
	case AltLeft:
		return "alt"
	case SuperLeft:
		return "cmd"
	case NamedNone:
		return string(k.Char)
	default:
		return fmt.Sprintf("f%d", int(k.Named-F1)+1)
	}
}
