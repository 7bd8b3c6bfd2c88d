package arbor

import (
	"errors"
	"testing"
)

func TestNewSceneHasRootLayerAndView(t *testing.T) {
	s := NewScene()
	if s.RootLayer() == nil {
		t.Fatal("RootLayer() = nil")
	}
	if !s.RootLayer().IsRoot() {
		t.Error("root layer IsRoot() = false")
	}
	if s.RootView() == nil {
		t.Fatal("RootView() = nil")
	}
	if !s.RootView().IsRoot() {
		t.Error("root view IsRoot() = false")
	}
	views := s.Views()
	if len(views) != 1 || views[0] != s.RootView() {
		t.Errorf("Views() = %v, want just the root view", views)
	}
}

func TestNewViewOnRootLayer(t *testing.T) {
	s := NewScene()
	if v := s.RootLayer().NewView(Vec2{100, 100}); v != nil {
		t.Error("NewView on root layer should return nil; the root view already covers it")
	}
}

func TestCloseRootView(t *testing.T) {
	s := NewScene()
	if err := s.RootView().Close(); !errors.Is(err, ErrRootView) {
		t.Errorf("Close root view = %v, want ErrRootView", err)
	}
	if s.RootView().Closed() {
		t.Error("root view reports closed")
	}
}

func TestViewOrderSublayersFirst(t *testing.T) {
	s := NewScene()
	a := s.RootLayer().NewLayer()
	b := s.RootLayer().NewLayer()
	deep := a.NewLayer()

	va := a.NewView(Vec2{10, 10})
	vb := b.NewView(Vec2{10, 10})
	vdeep := deep.NewView(Vec2{10, 10})

	// Post-order: a's subtree (deep before a), then b's, the root view last.
	want := []*View{vdeep, va, vb, s.RootView()}
	got := s.Views()
	if len(got) != len(want) {
		t.Fatalf("len(Views) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Views()[%d] wrong, order mismatch", i)
		}
	}
}

func TestCloseViewPrunesOrder(t *testing.T) {
	s := NewScene()
	l := s.RootLayer().NewLayer()
	v1 := l.NewView(Vec2{10, 10})
	v2 := l.NewView(Vec2{10, 10})

	if err := v1.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	for _, v := range s.Views() {
		if v == v1 {
			t.Error("closed view still in Views()")
		}
	}
	if err := v1.Close(); err != nil {
		t.Errorf("second Close = %v, want nil", err)
	}
	if v2.Closed() {
		t.Error("sibling view closed by accident")
	}
}

func TestLayerRemovalRefreshesViewOrder(t *testing.T) {
	s := NewScene()
	l := s.RootLayer().NewLayer()
	v := l.NewView(Vec2{10, 10})
	if err := l.Remove(); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	for _, got := range s.Views() {
		if got == v {
			t.Error("removed layer's view still in Views()")
		}
	}
}

func TestDebugModeToggle(t *testing.T) {
	s := NewScene()
	if s.DebugMode() {
		t.Error("DebugMode default = true, want false")
	}
	s.SetDebugMode(true)
	if !s.DebugMode() {
		t.Error("DebugMode after enable = false")
	}
	// A debug iteration must run cleanly on an empty scene.
	s.PhysicsIteration()
}
