// Package frame provides the render loop: run a callback once per display refresh
// until explicitly stopped.
package frame

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/melonview/internal/logger"
)

// Frame describes one loop iteration.
type Frame struct {
	Index uint64        // 0 for the first frame
	Delta time.Duration // time since the previous frame started
	Since time.Duration // time since Run started
}

// Func draws one frame. Pacing comes from the callee (VSync buffer swap), the loop
// itself never sleeps.
type Func func(f Frame) error

// Loop is a cooperative, self-rescheduling frame loop. Each frame runs to completion
// before the next one is scheduled. It is not safe for concurrent use except for Stop.
type Loop struct {
	stop     chan struct{}
	stopOnce sync.Once
	frames   uint64
}

// New creates a loop that has not started.
func New() *Loop {
	return &Loop{stop: make(chan struct{})}
}

// Stop asks the loop to exit before scheduling another frame. Safe to call more than
// once, from any goroutine, and from within a frame callback.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// Stopped reports whether Stop has been called.
func (l *Loop) Stopped() bool {
	select {
	case <-l.stop:
		return true
	default:
		return false
	}
}

// Frames returns how many frames have completed.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// Run calls fn once per iteration until Stop is called, ctx is done, or fn fails.
// A stop requested during a frame takes effect before the next one starts.
func (l *Loop) Run(ctx context.Context, fn Func) error {
	start := time.Now()
	last := start

	fpsFrames := 0
	fpsTimer := start

	logger.Debug("frame loop started")
	for {
		if l.Stopped() {
			logger.Debug("frame loop stopped", zap.Uint64("frames", l.frames))
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		now := time.Now()
		f := Frame{Index: l.frames, Delta: now.Sub(last), Since: now.Sub(start)}
		last = now

		if err := fn(f); err != nil {
			return fmt.Errorf("frame %d: %w", f.Index, err)
		}
		l.frames++

		fpsFrames++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", fpsFrames), zap.Duration("dt", f.Delta))
			fpsFrames = 0
			fpsTimer = time.Now()
		}
	}
}
