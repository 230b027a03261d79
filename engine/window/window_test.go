package window

import "testing"

func TestBuilderOptions(t *testing.T) {
	w := &engineWindow{title: "x", width: 1280, height: 720}
	for _, opt := range []WindowBuilderOption{WithTitle("card"), WithWidth(800), WithHeight(0)} {
		opt(w)
	}
	if w.title != "card" || w.width != 800 || w.height != 720 {
		t.Errorf("got title %q size %dx%d, want card 800x720", w.title, w.width, w.height)
	}
}

func TestUncreatedWindow(t *testing.T) {
	w := &engineWindow{width: 800, height: 600, inputWidth: 400, inputHeight: 300}
	if w.IsRunning() {
		t.Error("uncreated window reports running")
	}
	if w.SurfaceDescriptor() != nil {
		t.Error("uncreated window returned a surface descriptor")
	}
	if err := w.Close(); err == nil {
		t.Error("Close() on an uncreated window should fail")
	}
	w.RequestClose()
	w.ProcessMessages()

	if iw, ih := w.InputSize(); iw != 400 || ih != 300 {
		t.Errorf("InputSize() = %v, %v", iw, ih)
	}
}

func TestPointerCallbackDetach(t *testing.T) {
	w := &engineWindow{}
	var calls int
	w.SetPointerMoveCallback(func(x, y float64) {
		calls++
		if x != 10 || y != 20 {
			t.Errorf("callback got %v, %v", x, y)
		}
	})
	w.pointerMoved(10, 20)
	w.SetPointerMoveCallback(nil)
	w.pointerMoved(30, 40)
	if calls != 1 {
		t.Errorf("callback ran %d times, want 1", calls)
	}
}
