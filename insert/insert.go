// Package insert delivers final text into the focused application: copy to
// the OS clipboard, then send a synthetic paste keystroke. When the
// keystroke layer can't initialize (missing permissions, unsupported
// desktop), insertion degrades to clipboard-only and the caller shows a
// notice.
package insert

import (
	"errors"
	"fmt"

	cb "github.com/atotto/clipboard"
)

// ErrPasteUnavailable means the text is on the clipboard but the paste
// keystroke could not be delivered.
var ErrPasteUnavailable = errors.New("paste keystroke unavailable")

type Inserter struct{}

func New() *Inserter {
	return &Inserter{}
}

// Insert copies text to the clipboard and pastes it into the focused window.
func (i *Inserter) Insert(text string) error {
	if err := cb.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	if err := sendPaste(); err != nil {
		return fmt.Errorf("%w: %v", ErrPasteUnavailable, err)
	}
	return nil
}
