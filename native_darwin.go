//go:build darwin

package scrollpdf

import (
	"context"
	"fmt"
	"image"
	"os/exec"
	"strconv"
	"strings"

	"github.com/kbinani/screenshot"
)

// macOS virtual key codes for the navigation keys System Events
// understands.
const (
	keyCodeHome     = 115
	keyCodePageDown = 121
)

// NativeAutomation implements [Automation] against the real desktop on
// macOS: System Events answers focus and geometry queries and delivers
// keystrokes, and pixels come from a direct display grab.
//
// Sending keystrokes requires Accessibility permission and capturing
// requires Screen Recording permission for the invoking process.
type NativeAutomation struct{}

// NewNativeAutomation returns an Automation for the local desktop. On
// platforms other than macOS it returns ErrUnsupportedPlatform.
func NewNativeAutomation() (*NativeAutomation, error) {
	return &NativeAutomation{}, nil
}

// FrontmostApp returns the frontmost application process.
func (a *NativeAutomation) FrontmostApp(ctx context.Context) (AppIdentity, error) {
	name, err := osascript(ctx,
		`tell application "System Events" to get name of first application process whose frontmost is true`)
	if err != nil || name == "" {
		return AppIdentity{}, fmt.Errorf("%w: %v", ErrNoFrontmostApp, err)
	}
	// Bundle identifier is best-effort; background-only helpers may
	// not report one.
	bundle, _ := osascript(ctx,
		`tell application "System Events" to get bundle identifier of first application process whose frontmost is true`)
	return AppIdentity{Name: name, ID: bundle}, nil
}

// WindowBounds returns the position and size of app's front window.
func (a *NativeAutomation) WindowBounds(ctx context.Context, app AppIdentity) (Rect, error) {
	out, err := osascript(ctx, fmt.Sprintf(
		`tell application "System Events" to get {position, size} of front window of application process %s`,
		appleScriptString(app.Name)))
	if err != nil {
		return Rect{}, fmt.Errorf("%w: %v", ErrBoundsUnavailable, err)
	}
	fields := strings.Split(out, ",")
	if len(fields) != 4 {
		return Rect{}, fmt.Errorf("%w: unexpected geometry %q", ErrBoundsUnavailable, out)
	}
	nums := make([]int, 4)
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return Rect{}, fmt.Errorf("%w: unexpected geometry %q", ErrBoundsUnavailable, out)
		}
		nums[i] = n
	}
	r := Rect{X: nums[0], Y: nums[1], Width: nums[2], Height: nums[3]}
	if r.Empty() {
		return Rect{}, fmt.Errorf("%w: empty window %dx%d", ErrBoundsUnavailable, r.Width, r.Height)
	}
	return r, nil
}

// ScrollPage presses Page Down.
func (a *NativeAutomation) ScrollPage(ctx context.Context) error {
	return keyCode(ctx, keyCodePageDown)
}

// ScrollHome presses Home.
func (a *NativeAutomation) ScrollHome(ctx context.Context) error {
	return keyCode(ctx, keyCodeHome)
}

// CaptureRegion grabs the given display region.
func (a *NativeAutomation) CaptureRegion(ctx context.Context, r Rect) (*image.RGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := screenshot.CaptureRect(r.imageRect())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCaptureFailed, err)
	}
	return img, nil
}

func keyCode(ctx context.Context, code int) error {
	_, err := osascript(ctx, fmt.Sprintf(
		`tell application "System Events" to key code %d`, code))
	if err != nil {
		return fmt.Errorf("sending key code %d: %w", code, err)
	}
	return nil
}

// osascript runs one AppleScript expression and returns its trimmed
// output.
func osascript(ctx context.Context, script string) (string, error) {
	out, err := exec.CommandContext(ctx, "osascript", "-e", script).Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("osascript: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// appleScriptString quotes s as an AppleScript string literal.
func appleScriptString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
