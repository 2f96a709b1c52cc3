package sprout

import "testing"

func TestTickerRunsInRegistrationOrder(t *testing.T) {
	var tk Ticker
	var got []int
	tk.Register(AnimatorFunc(func(Snapshot) { got = append(got, 1) }))
	tk.Register(AnimatorFunc(func(Snapshot) { got = append(got, 2) }))
	tk.Tick(Snapshot{})
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("order = %v, want [1 2]", got)
	}
}

func TestTickerRemove(t *testing.T) {
	var tk Ticker
	calls := 0
	reg := tk.Register(AnimatorFunc(func(Snapshot) { calls++ }))
	tk.Tick(Snapshot{})
	reg.Remove()
	reg.Remove()
	tk.Tick(Snapshot{})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if tk.Len() != 0 {
		t.Errorf("Len = %d, want 0", tk.Len())
	}
}

func TestTickerSelfRemovalDoesNotSkipNext(t *testing.T) {
	var tk Ticker
	var reg Registration
	second := 0
	reg = tk.Register(AnimatorFunc(func(Snapshot) { reg.Remove() }))
	tk.Register(AnimatorFunc(func(Snapshot) { second++ }))
	tk.Tick(Snapshot{})
	if second != 1 {
		t.Errorf("second ran %d times, want 1", second)
	}
}

func TestZeroRegistrationRemove(t *testing.T) {
	Registration{}.Remove() // should not panic
}

func TestRequestFrameRunsOnce(t *testing.T) {
	var tk Ticker
	calls := 0
	tk.RequestFrame(func(Snapshot) { calls++ })
	tk.Tick(Snapshot{})
	tk.Tick(Snapshot{})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRequestFrameFromCallbackDefers(t *testing.T) {
	var tk Ticker
	var frames []uint64
	tk.RequestFrame(func(s Snapshot) {
		frames = append(frames, s.Frame)
		tk.RequestFrame(func(s Snapshot) { frames = append(frames, s.Frame) })
	})
	tk.Tick(Snapshot{Frame: 1})
	tk.Tick(Snapshot{Frame: 2})
	if len(frames) != 2 || frames[0] != 1 || frames[1] != 2 {
		t.Errorf("frames = %v, want [1 2]", frames)
	}
}
