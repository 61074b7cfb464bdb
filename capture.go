package scrollpdf

import (
	"context"
	"fmt"
	"image"
	"time"
)

// Frame is one captured raster still: its position in capture order,
// its pixels, and the fingerprint of its raw bytes. Frames are
// appended by the capture loop and never mutated afterwards.
type Frame struct {
	Index       int
	Image       *image.RGBA
	Fingerprint Fingerprint
}

// StopReason explains why the capture loop stopped.
type StopReason int

const (
	// StopNormal means two consecutive captures produced the same
	// fingerprint: the document stopped changing, which is the only
	// end-of-content signal available.
	StopNormal StopReason = iota

	// StopCapped means the frame cap was reached before the content
	// stopped changing.
	StopCapped

	// StopEmpty means the loop exited with no frames stored.
	StopEmpty
)

func (r StopReason) String() string {
	switch r {
	case StopNormal:
		return "end of content"
	case StopCapped:
		return "frame cap reached"
	case StopEmpty:
		return "no frames"
	default:
		return fmt.Sprintf("StopReason(%d)", int(r))
	}
}

// captureRun is the in-progress state of one capture loop: the window
// being photographed and the frames stored so far. Holding the
// previous fingerprint here, rather than in package state, keeps
// independent sessions (and tests) from interfering.
type captureRun struct {
	bounds Rect
	frames []Frame
	reason StopReason
}

// runCaptureLoop drives auto through home, capture and page-scroll
// until the content stops changing or cfg.maxFrames is reached. It
// returns the ordered, gapless frame sequence.
//
// The loop is strictly sequential: every automation call and settle
// delay is a blocking step, since each capture depends on the
// previous step's rendered state.
func runCaptureLoop(ctx context.Context, auto Automation, cfg sessionConfig) (*captureRun, error) {
	front, err := auto.FrontmostApp(ctx)
	if err != nil {
		return nil, err
	}
	if !cfg.target.matches(front) {
		return nil, fmt.Errorf("%w: want %q, have %q", ErrWrongForegroundApp, cfg.target.Name, front.Name)
	}

	bounds, err := auto.WindowBounds(ctx, front)
	if err != nil {
		return nil, err
	}
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: empty rectangle %dx%d", ErrBoundsUnavailable, bounds.Width, bounds.Height)
	}

	if err := auto.ScrollHome(ctx); err != nil {
		return nil, fmt.Errorf("%w: scroll home: %v", ErrCaptureFailed, err)
	}
	if err := settle(ctx, cfg.homeDelay); err != nil {
		return nil, err
	}

	run := &captureRun{bounds: bounds}
	for len(run.frames) < cfg.maxFrames {
		still, err := auto.CaptureRegion(ctx, bounds)
		if err != nil {
			return nil, err
		}

		fp := cfg.hasher(still.Pix)
		if n := len(run.frames); n > 0 && fp == run.frames[n-1].Fingerprint {
			// The repeat is discarded, not stored.
			run.reason = StopNormal
			return run, nil
		}
		run.frames = append(run.frames, Frame{
			Index:       len(run.frames),
			Image:       still,
			Fingerprint: fp,
		})

		if len(run.frames) == cfg.maxFrames {
			run.reason = StopCapped
			return run, nil
		}

		if err := auto.ScrollPage(ctx); err != nil {
			return nil, fmt.Errorf("%w: scroll page: %v", ErrCaptureFailed, err)
		}
		if err := settle(ctx, cfg.scrollDelay); err != nil {
			return nil, err
		}
	}

	run.reason = StopEmpty
	return run, ErrZeroFrames
}

// settle waits for a scroll animation to finish, honouring context
// cancellation.
func settle(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
