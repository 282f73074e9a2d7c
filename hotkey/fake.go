package hotkey

// FakeListener drives the tracker from tests: Press/Release invoke the
// registered callbacks synchronously on the caller's goroutine.
type FakeListener struct {
	onPress   func(Key)
	onRelease func(Key)
}

func NewFake() *FakeListener {
	return &FakeListener{}
}

func (f *FakeListener) Start(onPress, onRelease func(Key)) error {
	f.onPress = onPress
	f.onRelease = onRelease
	return nil
}

func (f *FakeListener) Stop() {}

func (f *FakeListener) Press(k Key) {
	if f.onPress != nil {
		f.onPress(k)
	}
}

func (f *FakeListener) Release(k Key) {
	if f.onRelease != nil {
		f.onRelease(k)
	}
}
