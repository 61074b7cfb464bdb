package scrollpdf

import "errors"

// Sentinel errors returned by the library. A failed session always
// carries exactly one of these in its error chain; all of them are
// terminal — the session is never retried, because the target has
// already been scrolled away from its starting position.
var (
	// ErrNoFrontmostApp is returned when no frontmost application can
	// be resolved.
	ErrNoFrontmostApp = errors.New("scrollpdf: no frontmost application")

	// ErrWrongForegroundApp is returned when the frontmost application
	// does not match the configured capture target.
	ErrWrongForegroundApp = errors.New("scrollpdf: frontmost application is not the capture target")

	// ErrBoundsUnavailable is returned when the target window's
	// geometry cannot be read.
	ErrBoundsUnavailable = errors.New("scrollpdf: window bounds unavailable")

	// ErrCaptureFailed is returned when a region capture or a scroll
	// input fails (denied screen-recording permission, I/O error,
	// dead automation backend).
	ErrCaptureFailed = errors.New("scrollpdf: capture failed")

	// ErrZeroFrames is returned when a session ends with no frames
	// stored.
	ErrZeroFrames = errors.New("scrollpdf: no frames captured")

	// ErrFrameEncode is returned when a captured frame cannot be
	// compressed. A missing page would desync the document's
	// cross-reference bookkeeping, so the whole session fails.
	ErrFrameEncode = errors.New("scrollpdf: frame encoding failed")

	// ErrAssembly is returned when the assembled PDF cannot be built
	// or published to its final location.
	ErrAssembly = errors.New("scrollpdf: PDF assembly failed")

	// ErrClosed is returned when using an automation backend after
	// its Close method has been called.
	ErrClosed = errors.New("scrollpdf: automation is closed")

	// ErrUnsupportedPlatform is returned by NewNativeAutomation on
	// platforms without native window automation support.
	ErrUnsupportedPlatform = errors.New("scrollpdf: native automation is not supported on this platform")
)
