package hotkey

// Listener delivers raw keyboard press/release events from the platform
// input layer. Callbacks run on the listener's own goroutine; they must
// signal and return, never block.
type Listener interface {
	// Start begins delivering events. Repeat events for a held key are
	// suppressed; each physical press yields exactly one onPress and its
	// release exactly one onRelease.
	Start(onPress, onRelease func(Key)) error
	Stop()
}
