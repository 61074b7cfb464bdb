// Package scrollpdf captures a scrolling document view as a multi-page PDF.
//
// A capture session repeatedly photographs a window region, paging the
// content down between shots, until two consecutive shots are identical
// (the end of the document) or a frame cap is reached. The captured
// frames are then assembled into a single PDF file, one page per frame,
// without any external PDF library.
//
// # Capturing
//
// Screen access goes through the [Automation] interface: query the
// frontmost application, read the target window's bounds, send
// scroll-home and scroll-page input, and photograph a screen region.
// Two implementations ship with the package:
//
//   - [ChromeAutomation] drives a document open in headless Chrome via
//     the DevTools protocol. It works anywhere Chrome runs and is the
//     backend used by the test suite.
//   - [NativeAutomation] (macOS) targets a real application window,
//     using System Events for focus, geometry and keystrokes and a
//     direct display grab for pixels.
//
// Run a session with [Capture]:
//
//	auto, err := scrollpdf.NewChromeAutomation()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer auto.Close()
//
//	if err := auto.Open(ctx, "https://example.com/long-article"); err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := scrollpdf.Capture(ctx, auto,
//	    scrollpdf.WithOutputDir("/tmp/captures"),
//	    scrollpdf.WithPrefix("article"),
//	)
//
// A [Result] reports the artifact path and page count and gives access
// to the PDF bytes:
//
//	res.Path()       // /tmp/captures/article_20260831_142501.pdf
//	res.PageCount()  // pages in the document
//	res.Bytes()      // the raw PDF
//
// Every failure mode carries one of the package's sentinel errors
// ([ErrWrongForegroundApp], [ErrBoundsUnavailable], [ErrCaptureFailed],
// [ErrZeroFrames], [ErrFrameEncode], [ErrAssembly]) in its chain, so
// callers can classify outcomes with [errors.Is]. No partial output
// file is ever left behind: the PDF is written to the session's
// private working directory and moved into place only on full success.
//
// # Inspecting output
//
// The pdf subpackage reads generated files back structurally (page
// count, page dimensions, cross-reference consistency); the scrollpdf
// CLI exposes it as the "info" command.
package scrollpdf
