package frame

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestStopFromCallback(t *testing.T) {
	l := New()

	var seen []uint64
	err := l.Run(context.Background(), func(f Frame) error {
		seen = append(seen, f.Index)
		if f.Index == 4 {
			l.Stop()
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// The frame that requested the stop completes, nothing after it runs.
	if len(seen) != 5 {
		t.Fatalf("ran %d frames, want 5", len(seen))
	}
	for i, idx := range seen {
		if idx != uint64(i) {
			t.Errorf("frame %d had index %d", i, idx)
		}
	}
	if l.Frames() != 5 {
		t.Errorf("Frames() = %d, want 5", l.Frames())
	}
}

func TestStopBeforeRun(t *testing.T) {
	l := New()
	l.Stop()
	l.Stop() // idempotent

	ran := false
	if err := l.Run(context.Background(), func(Frame) error {
		ran = true
		return nil
	}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if ran {
		t.Error("stopped loop should not run any frame")
	}
	if !l.Stopped() {
		t.Error("Stopped() = false after Stop")
	}
}

func TestFrameError(t *testing.T) {
	boom := errors.New("boom")
	err := New().Run(context.Background(), func(f Frame) error {
		if f.Index == 2 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want wrapped boom", err)
	}
}

func TestContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	n := 0
	err := New().Run(ctx, func(Frame) error {
		n++
		if n == 3 {
			cancel()
		}
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if n != 3 {
		t.Errorf("ran %d frames, want 3", n)
	}
}

func TestConcurrentStop(t *testing.T) {
	l := New()

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Stop()
		}()
	}
	wg.Wait()

	if !l.Stopped() {
		t.Fatal("expected Stopped() after concurrent Stop calls")
	}
	if err := l.Run(context.Background(), func(Frame) error {
		t.Fatal("frame ran after Stop")
		return nil
	}); err != nil {
		t.Errorf("Run() error = %v", err)
	}
}
