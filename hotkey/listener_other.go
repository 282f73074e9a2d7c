//go:build !linux

package hotkey

import (
	"fmt"
	"sync"

	xhotkey "golang.design/x/hotkey"
)

// xListener registers the resolved trigger with the OS hotkey API and
// synthesizes press/release events for it. The API registers complete keys,
// not modifiers, so modifier-only triggers need the Linux build; use an
// F-key or character key here.
type xListener struct {
	key  Key
	hk   *xhotkey.Hotkey
	stop chan struct{}
	once sync.Once
}

func NewListener(k Key) Listener {
	return &xListener{key: k}
}

var xNamedKeys = map[Named]xhotkey.Key{
	F1: xhotkey.KeyF1, F2: xhotkey.KeyF2, F3: xhotkey.KeyF3,
	F4: xhotkey.KeyF4, F5: xhotkey.KeyF5, F6: xhotkey.KeyF6,
	F7: xhotkey.KeyF7, F8: xhotkey.KeyF8, F9: xhotkey.KeyF9,
	F10: xhotkey.KeyF10, F11: xhotkey.KeyF11, F12: xhotkey.KeyF12,
}

var xCharKeys = map[rune]xhotkey.Key{
	'a': xhotkey.KeyA, 'b': xhotkey.KeyB, 'c': xhotkey.KeyC,
	'd': xhotkey.KeyD, 'e': xhotkey.KeyE, 'f': xhotkey.KeyF,
	'g': xhotkey.KeyG, 'h': xhotkey.KeyH, 'i': xhotkey.KeyI,
	'j': xhotkey.KeyJ, 'k': xhotkey.KeyK, 'l': xhotkey.KeyL,
	'm': xhotkey.KeyM, 'n': xhotkey.KeyN, 'o': xhotkey.KeyO,
	'p': xhotkey.KeyP, 'q': xhotkey.KeyQ, 'r': xhotkey.KeyR,
	's': xhotkey.KeyS, 't': xhotkey.KeyT, 'u': xhotkey.KeyU,
	'v': xhotkey.KeyV, 'w': xhotkey.KeyW, 'x': xhotkey.KeyX,
	'y': xhotkey.KeyY, 'z': xhotkey.KeyZ,
	'0': xhotkey.Key0, '1': xhotkey.Key1, '2': xhotkey.Key2,
	'3': xhotkey.Key3, '4': xhotkey.Key4, '5': xhotkey.Key5,
	'6': xhotkey.Key6, '7': xhotkey.Key7, '8': xhotkey.Key8,
	'9': xhotkey.Key9,
	' ': xhotkey.KeySpace,
}

func platformKey(k Key) (xhotkey.Key, error) {
	if k.Named != NamedNone {
		if xk, ok := xNamedKeys[k.Named]; ok {
			return xk, nil
		}
		return 0, fmt.Errorf("hotkey %q: modifier-only triggers are not supported on this platform, use an F-key or a character key", k)
	}
	if xk, ok := xCharKeys[k.Char]; ok {
		return xk, nil
	}
	return 0, fmt.Errorf("hotkey %q: key not registrable on this platform", k)
}

func (l *xListener) Start(onPress, onRelease func(Key)) error {
	xk, err := platformKey(l.key)
	if err != nil {
		return err
	}

	l.hk = xhotkey.New(nil, xk)
	if err := l.hk.Register(); err != nil {
		return fmt.Errorf("registering hotkey: %w", err)
	}
	l.stop = make(chan struct{})

	go func() {
		for {
			select {
			case <-l.hk.Keydown():
				onPress(l.key)
			case <-l.hk.Keyup():
				onRelease(l.key)
			case <-l.stop:
				return
			}
		}
	}()
	return nil
}

func (l *xListener) Stop() {
	l.once.Do(func() {
		if l.stop != nil {
			close(l.stop)
		}
		if l.hk != nil {
			l.hk.Unregister()
		}
	})
}
