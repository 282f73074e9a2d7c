//go:build linux

package hotkey

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	evKey      = 1
	keyPress   = 1
	keyRelease = 0
)

const inputEventSize = 24

// evdev key codes from linux/input-event-codes.h, mapped onto our Key type.
var evdevKeys = map[uint16]Key{
	29:  {Named: CtrlLeft},
	97:  {Named: CtrlRight},
	42:  {Named: ShiftLeft},
	54:  {Named: ShiftRight},
	56:  {Named: AltLeft},
	100: {Named: AltRight},
	125: {Named: SuperLeft},
	126: {Named: SuperRight},
	59:  {Named: F1},
	60:  {Named: F2},
	61:  {Named: F3},
	62:  {Named: F4},
	63:  {Named: F5},
	64:  {Named: F6},
	65:  {Named: F7},
	66:  {Named: F8},
	67:  {Named: F9},
	68:  {Named: F10},
	87:  {Named: F11},
	88:  {Named: F12},

	2: {Char: '1'}, 3: {Char: '2'}, 4: {Char: '3'}, 5: {Char: '4'},
	6: {Char: '5'}, 7: {Char: '6'}, 8: {Char: '7'}, 9: {Char: '8'},
	10: {Char: '9'}, 11: {Char: '0'},

	16: {Char: 'q'}, 17: {Char: 'w'}, 18: {Char: 'e'}, 19: {Char: 'r'},
	20: {Char: 't'}, 21: {Char: 'y'}, 22: {Char: 'u'}, 23: {Char: 'i'},
	24: {Char: 'o'}, 25: {Char: 'p'},
	30: {Char: 'a'}, 31: {Char: 's'}, 32: {Char: 'd'}, 33: {Char: 'f'},
	34: {Char: 'g'}, 35: {Char: 'h'}, 36: {Char: 'j'}, 37: {Char: 'k'},
	38: {Char: 'l'},
	44: {Char: 'z'}, 45: {Char: 'x'}, 46: {Char: 'c'}, 47: {Char: 'v'},
	48: {Char: 'b'}, 49: {Char: 'n'}, 50: {Char: 'm'},

	57: {Char: ' '},
}

// linuxListener reads raw events from every evdev keyboard and reports
// mapped keys. Matching against the configured trigger happens upstream.
type linuxListener struct {
	files []*os.File
	stop  chan struct{}
	once  sync.Once
}

// NewListener returns the platform key listener. On Linux the trigger key is
// not needed for registration; all key events are delivered and filtered by
// the tracker.
func NewListener(_ Key) Listener {
	return &linuxListener{}
}

func (l *linuxListener) Start(onPress, onRelease func(Key)) error {
	keyboards, err := findKeyboards()
	if err != nil {
		return fmt.Errorf("finding keyboards: %w", err)
	}
	if len(keyboards) == 0 {
		return fmt.Errorf("no keyboard devices found (is user in 'input' group?)")
	}

	l.stop = make(chan struct{})

	for _, path := range keyboards {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		l.files = append(l.files, f)
		go l.readEvents(f, onPress, onRelease)
	}

	if len(l.files) == 0 {
		return fmt.Errorf("could not open any keyboard device (run: sudo usermod -aG input $USER, then re-login)")
	}

	return nil
}

func (l *linuxListener) readEvents(f *os.File, onPress, onRelease func(Key)) {
	buf := make([]byte, inputEventSize*16)

	for {
		select {
		case <-l.stop:
			return
		default:
		}

		n, err := f.Read(buf)
		if err != nil {
			return
		}

		for i := 0; i+inputEventSize <= n; i += inputEventSize {
			evType := binary.LittleEndian.Uint16(buf[i+16:])
			evCode := binary.LittleEndian.Uint16(buf[i+18:])
			evValue := int32(binary.LittleEndian.Uint32(buf[i+20:]))

			if evType != evKey {
				continue
			}
			key, ok := evdevKeys[evCode]
			if !ok {
				continue
			}

			// evValue 2 is a key-repeat, not a new press.
			switch evValue {
			case keyPress:
				onPress(key)
			case keyRelease:
				onRelease(key)
			}
		}
	}
}

func (l *linuxListener) Stop() {
	l.once.Do(func() {
		if l.stop != nil {
			close(l.stop)
		}
		for _, f := range l.files {
			f.Close()
		}
	})
}

func findKeyboards() ([]string, error) {
	entries, err := os.ReadDir("/dev/input")
	if err != nil {
		return nil, err
	}

	var keyboards []string
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "event") {
			continue
		}
		if isKeyboard(e.Name()) {
			keyboards = append(keyboards, filepath.Join("/dev/input", e.Name()))
		}
	}
	return keyboards, nil
}

func isKeyboard(eventName string) bool {
	capsPath := filepath.Join("/sys/class/input", eventName, "device", "capabilities", "key")
	data, err := os.ReadFile(capsPath)
	if err != nil {
		return false
	}
	caps := strings.TrimSpace(string(data))
	return len(caps) > 10
}
