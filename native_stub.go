//go:build !darwin

package scrollpdf

import (
	"context"
	"image"
)

// NativeAutomation captures from the local desktop. It is only
// implemented on macOS; on other platforms every method returns
// ErrUnsupportedPlatform.
type NativeAutomation struct{}

// NewNativeAutomation returns ErrUnsupportedPlatform on this platform.
func NewNativeAutomation() (*NativeAutomation, error) {
	return nil, ErrUnsupportedPlatform
}

func (a *NativeAutomation) FrontmostApp(context.Context) (AppIdentity, error) {
	return AppIdentity{}, ErrUnsupportedPlatform
}

func (a *NativeAutomation) WindowBounds(context.Context, AppIdentity) (Rect, error) {
	return Rect{}, ErrUnsupportedPlatform
}

func (a *NativeAutomation) ScrollPage(context.Context) error {
	return ErrUnsupportedPlatform
}

func (a *NativeAutomation) ScrollHome(context.Context) error {
	return ErrUnsupportedPlatform
}

func (a *NativeAutomation) CaptureRegion(context.Context, Rect) (*image.RGBA, error) {
	return nil, ErrUnsupportedPlatform
}
