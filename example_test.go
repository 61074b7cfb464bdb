package scrollpdf_test

import (
	"context"
	"fmt"
	"log"

	scrollpdf "github.com/porticus-lab/go-scroll-pdf"
)

func Example() {
	// Drive a document open in headless Chrome.
	auto, err := scrollpdf.NewChromeAutomation(scrollpdf.WithNoSandbox())
	if err != nil {
		log.Fatal(err)
	}
	defer auto.Close()

	ctx := context.Background()
	if err := auto.Open(ctx, "https://example.com/long-article"); err != nil {
		log.Fatal(err)
	}

	// Scroll-capture it into a timestamped PDF.
	res, err := scrollpdf.Capture(ctx, auto,
		scrollpdf.WithOutputDir("/tmp/captures"),
		scrollpdf.WithPrefix("article"),
	)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("saved %d pages to %s\n", res.PageCount(), res.Path())
}

func Example_nativeWindow() {
	// Capture a real application window on macOS. The frontmost
	// application must match the target or the session fails.
	auto, err := scrollpdf.NewNativeAutomation()
	if err != nil {
		log.Fatal(err)
	}

	res, err := scrollpdf.Capture(context.Background(), auto,
		scrollpdf.WithTarget(scrollpdf.AppIdentity{Name: "Safari"}),
		scrollpdf.WithOutputDir("/tmp/captures"),
		scrollpdf.WithPrefix("news"),
		scrollpdf.WithMaxFrames(40),
	)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(res.Path())
}
