package galaxy

import "testing"

func TestInteractionZoomConsumedOnce(t *testing.T) {
	in := NewInteraction()
	in.RequestZoom(ZoomIn)
	if _, zoom := in.Snapshot(); zoom != ZoomIn {
		t.Fatalf("zoom %s, expected in", zoom)
	}
	if _, zoom := in.Snapshot(); zoom != NoZoom {
		t.Fatalf("zoom %s not cleared after consumption", zoom)
	}
}

func TestInteractionZoomLatestWins(t *testing.T) {
	in := NewInteraction()
	in.RequestZoom(ZoomIn)
	in.RequestZoom(ZoomOut)
	if _, zoom := in.Snapshot(); zoom != ZoomOut {
		t.Fatalf("zoom %s, expected the later request to win", zoom)
	}
}

func TestInteractionPaused(t *testing.T) {
	in := NewInteraction()
	if paused, _ := in.Snapshot(); paused {
		t.Fatal("paused by default")
	}
	in.SetPaused(true)
	if paused, _ := in.Snapshot(); !paused {
		t.Fatal("pause flag not observed")
	}
	// The flag is level-triggered, not consumed.
	if paused, _ := in.Snapshot(); !paused {
		t.Fatal("pause flag was cleared by a snapshot")
	}
	in.SetPaused(false)
	if paused, _ := in.Snapshot(); paused {
		t.Fatal("resume not observed")
	}
}

func TestInteractionTargetIsCopied(t *testing.T) {
	in := NewInteraction()
	v := []float64{1, 2, 3}
	in.SetTarget(v)
	v[0] = 99
	if got := in.Target(); !vectorsEqual(got, []float64{1, 2, 3}) {
		t.Fatalf("target %+v aliases the caller's slice", got)
	}
}

func TestZoomDirectionString(t *testing.T) {
	if NoZoom.String() != "none" || ZoomIn.String() != "in" || ZoomOut.String() != "out" {
		t.Fatal("zoom direction names changed")
	}
	assertPanic(t, func() {
		_ = ZoomDirection(42).String()
	})
}
