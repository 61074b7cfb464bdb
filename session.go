package scrollpdf

import (
	"context"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Capture runs one complete session against auto: scroll to top,
// photograph page by page until the content stops changing, and
// publish the frames as a single PDF under the configured output
// directory.
//
// The session owns a private working directory holding the raw frame
// files and the in-progress document; it is removed on every exit
// path, so a failure never leaves a partial artifact behind. The
// finished file is moved to <output_dir>/<prefix>_<timestamp>.pdf only
// after it is complete.
func Capture(ctx context.Context, auto Automation, opts ...Option) (*Result, error) {
	cfg := defaultSessionConfig()
	for _, o := range opts {
		o(&cfg)
	}

	res, err := run(ctx, auto, cfg)
	if err != nil {
		cfg.notifier.Notify(fmt.Sprintf("Capture failed: %v", err))
		return nil, err
	}
	cfg.notifier.Notify(fmt.Sprintf("Saved %d page(s) to %s", res.PageCount(), res.Path()))
	return res, nil
}

func run(ctx context.Context, auto Automation, cfg sessionConfig) (*Result, error) {
	workDir, err := os.MkdirTemp("", "scrollpdf-*")
	if err != nil {
		return nil, fmt.Errorf("scrollpdf: creating working area: %w", err)
	}
	defer os.RemoveAll(workDir)

	capture, err := runCaptureLoop(ctx, auto, cfg)
	if err != nil {
		return nil, err
	}
	if len(capture.frames) == 0 {
		return nil, ErrZeroFrames
	}

	encoded := make([]EncodedImage, len(capture.frames))
	for i, frame := range capture.frames {
		if err := writeFrameFile(workDir, frame); err != nil {
			return nil, err
		}
		enc, err := encodeFrame(frame.Image, cfg.jpegQuality)
		if err != nil {
			return nil, err
		}
		encoded[i] = enc
	}

	data, err := assemble(encoded, cfg.page.pointsPerPixel())
	if err != nil {
		return nil, err
	}

	scratch := filepath.Join(workDir, "out.pdf")
	if err := os.WriteFile(scratch, data, 0o644); err != nil {
		return nil, fmt.Errorf("%w: writing scratch file: %v", ErrAssembly, err)
	}

	if err := os.MkdirAll(cfg.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating output directory: %v", ErrAssembly, err)
	}
	final := filepath.Join(cfg.outputDir, fmt.Sprintf("%s_%s.pdf",
		cfg.prefix, time.Now().Format("20060102_150405")))
	if err := publish(scratch, final); err != nil {
		return nil, fmt.Errorf("%w: publishing %s: %v", ErrAssembly, final, err)
	}

	return &Result{data: data, path: final, pages: len(capture.frames)}, nil
}

// writeFrameFile stores one raw frame in the working area as a
// zero-padded, sequentially numbered PNG.
func writeFrameFile(workDir string, frame Frame) error {
	f, err := os.Create(filepath.Join(workDir, fmt.Sprintf("frame_%03d.png", frame.Index)))
	if err != nil {
		return fmt.Errorf("scrollpdf: writing frame file: %w", err)
	}
	if err := png.Encode(f, frame.Image); err != nil {
		f.Close()
		return fmt.Errorf("scrollpdf: writing frame file: %w", err)
	}
	return f.Close()
}

// publish moves the completed document into place. Rename is atomic on
// the same filesystem; when the output directory lives elsewhere the
// file is copied and the scratch copy removed.
func publish(scratch, final string) error {
	if err := os.Rename(scratch, final); err == nil {
		return nil
	}
	src, err := os.Open(scratch)
	if err != nil {
		return err
	}
	defer src.Close()
	dst, err := os.Create(final)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(final)
		return err
	}
	if err := dst.Close(); err != nil {
		os.Remove(final)
		return err
	}
	return os.Remove(scratch)
}
