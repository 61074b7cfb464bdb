package scrollpdf

import (
	"context"
	"image"
)

// AppIdentity identifies the application owning the captured window.
type AppIdentity struct {
	// Name is the human-visible application or document name.
	Name string

	// ID is a platform identifier: a bundle identifier on macOS, a
	// page URL for the Chrome backend. May be empty.
	ID string
}

// matches reports whether a frontmost application satisfies a capture
// target. An empty target matches anything; otherwise Name and ID are
// each checked only when the target sets them.
func (target AppIdentity) matches(front AppIdentity) bool {
	if target == (AppIdentity{}) {
		return true
	}
	if target.Name != "" && target.Name != front.Name {
		return false
	}
	if target.ID != "" && target.ID != front.ID {
		return false
	}
	return true
}

// Rect is a window rectangle in logical screen coordinates.
type Rect struct {
	X, Y, Width, Height int
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// imageRect converts r to an image.Rectangle.
func (r Rect) imageRect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Automation is the platform capability a capture session consumes:
// application focus, window geometry, synthetic scroll input, and
// region screenshots. The capture loop depends only on this contract,
// so backends can be swapped per platform or faked in tests.
//
// Implementations are used strictly sequentially by a session; they do
// not need to be safe for concurrent use.
type Automation interface {
	// FrontmostApp returns the identity of the frontmost application,
	// or an error wrapping ErrNoFrontmostApp if none is resolvable.
	FrontmostApp(ctx context.Context) (AppIdentity, error)

	// WindowBounds returns the visible bounds of app's front window,
	// or an error wrapping ErrBoundsUnavailable.
	WindowBounds(ctx context.Context, app AppIdentity) (Rect, error)

	// ScrollPage advances the document by one page. It is
	// fire-and-forget: it may have no visible effect when the
	// document is already at its end, and that is not an error.
	ScrollPage(ctx context.Context) error

	// ScrollHome resets the document to its top.
	ScrollHome(ctx context.Context) error

	// CaptureRegion photographs the given screen region, or returns
	// an error wrapping ErrCaptureFailed.
	CaptureRegion(ctx context.Context, r Rect) (*image.RGBA, error)
}
