// scrollpdf captures a scrolling document view as a multi-page PDF.
//
// Usage:
//
//	scrollpdf capture [options]
//	scrollpdf info <file.pdf>
//
// The capture command runs one session: scroll the target to its top,
// photograph it page by page until the content stops changing, and
// write the pages as a single PDF. It is intended to be bound to a
// hotkey; all knobs can live in a YAML config file so the binding
// stays argument-free.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	scrollpdf "github.com/porticus-lab/go-scroll-pdf"
	"github.com/porticus-lab/go-scroll-pdf/pdf"
	"gopkg.in/yaml.v3"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "capture":
		if err := runCapture(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "info":
		if err := runInfo(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`scrollpdf - save a scrolling document view as a PDF

Usage:
  scrollpdf capture [options]
  scrollpdf info <file.pdf>

Commands:
  capture   Scroll-capture the target and assemble a PDF
  info      Display document structure (version, pages, dimensions)

Capture options:
  -c <file>       YAML config file
  -backend <b>    Automation backend: chrome or native (default: native)
  -url <url>      Document to open (chrome backend)
  -target <app>   Required frontmost application name (native backend)
  -o <dir>        Output directory (default: current directory)
  -p <prefix>     Output file prefix (default: capture)
  -max <n>        Frame cap (default: 60)

Examples:
  scrollpdf capture -target Safari -o ~/Documents -p news
  scrollpdf capture -backend chrome -url https://example.com/article
  scrollpdf capture -c ~/.config/scrollpdf.yaml
  scrollpdf info news_20260831_142501.pdf
`)
}

// fileConfig is the YAML configuration accepted by -c. Flags given on
// the command line override file values.
type fileConfig struct {
	Backend       string  `yaml:"backend"`
	URL           string  `yaml:"url"`
	TargetApp     string  `yaml:"target_app"`
	OutputDir     string  `yaml:"output_dir"`
	Prefix        string  `yaml:"prefix"`
	MaxFrames     int     `yaml:"max_frames"`
	ScrollDelayMS int     `yaml:"scroll_delay_ms"`
	HomeDelayMS   int     `yaml:"home_delay_ms"`
	JPEGQuality   int     `yaml:"jpeg_quality"`
	DPI           float64 `yaml:"dpi"`
	NoSandbox     bool    `yaml:"no_sandbox"`
	AutoDownload  bool    `yaml:"auto_download"`
}

func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// runCapture implements the "capture" command.
func runCapture(args []string) error {
	var cfg fileConfig

	// First pass: find -c so flags can override the file.
	for i := 0; i < len(args); i++ {
		if args[i] == "-c" {
			if i+1 >= len(args) {
				return fmt.Errorf("-c requires an argument")
			}
			loaded, err := loadConfig(args[i+1])
			if err != nil {
				return err
			}
			cfg = loaded
		}
	}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-c":
			i++
		case "-backend":
			i++
			if i >= len(args) {
				return fmt.Errorf("-backend requires an argument")
			}
			cfg.Backend = args[i]
		case "-url":
			i++
			if i >= len(args) {
				return fmt.Errorf("-url requires an argument")
			}
			cfg.URL = args[i]
		case "-target":
			i++
			if i >= len(args) {
				return fmt.Errorf("-target requires an argument")
			}
			cfg.TargetApp = args[i]
		case "-o":
			i++
			if i >= len(args) {
				return fmt.Errorf("-o requires an argument")
			}
			cfg.OutputDir = args[i]
		case "-p":
			i++
			if i >= len(args) {
				return fmt.Errorf("-p requires an argument")
			}
			cfg.Prefix = args[i]
		case "-max":
			i++
			if i >= len(args) {
				return fmt.Errorf("-max requires an argument")
			}
			if _, err := fmt.Sscanf(args[i], "%d", &cfg.MaxFrames); err != nil {
				return fmt.Errorf("invalid -max value %q", args[i])
			}
		default:
			return fmt.Errorf("unknown option: %s", args[i])
		}
	}

	ctx := context.Background()
	auto, cleanup, err := newBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := []scrollpdf.Option{
		scrollpdf.WithNotifier(scrollpdf.WriterNotifier{W: os.Stderr}),
	}
	if cfg.TargetApp != "" && cfg.Backend != "chrome" {
		opts = append(opts, scrollpdf.WithTarget(scrollpdf.AppIdentity{Name: cfg.TargetApp}))
	}
	if cfg.OutputDir != "" {
		opts = append(opts, scrollpdf.WithOutputDir(cfg.OutputDir))
	}
	if cfg.Prefix != "" {
		opts = append(opts, scrollpdf.WithPrefix(cfg.Prefix))
	}
	if cfg.MaxFrames > 0 {
		opts = append(opts, scrollpdf.WithMaxFrames(cfg.MaxFrames))
	}
	if cfg.ScrollDelayMS > 0 {
		opts = append(opts, scrollpdf.WithScrollDelay(time.Duration(cfg.ScrollDelayMS)*time.Millisecond))
	}
	if cfg.HomeDelayMS > 0 {
		opts = append(opts, scrollpdf.WithHomeDelay(time.Duration(cfg.HomeDelayMS)*time.Millisecond))
	}
	if cfg.JPEGQuality > 0 {
		opts = append(opts, scrollpdf.WithJPEGQuality(cfg.JPEGQuality))
	}
	if cfg.DPI > 0 {
		opts = append(opts, scrollpdf.WithPage(scrollpdf.PageConfig{DPI: cfg.DPI}))
	}

	res, err := scrollpdf.Capture(ctx, auto, opts...)
	if err != nil {
		return err
	}
	fmt.Println(res.Path())
	return nil
}

// newBackend builds the requested automation backend.
func newBackend(ctx context.Context, cfg fileConfig) (scrollpdf.Automation, func(), error) {
	switch cfg.Backend {
	case "chrome":
		if cfg.URL == "" {
			return nil, nil, fmt.Errorf("the chrome backend needs -url")
		}
		var chromeOpts []scrollpdf.ChromeOption
		if cfg.NoSandbox {
			chromeOpts = append(chromeOpts, scrollpdf.WithNoSandbox())
		}
		if cfg.AutoDownload {
			chromeOpts = append(chromeOpts, scrollpdf.WithAutoDownload())
		}
		auto, err := scrollpdf.NewChromeAutomation(chromeOpts...)
		if err != nil {
			return nil, nil, err
		}
		if err := auto.Open(ctx, cfg.URL); err != nil {
			auto.Close()
			return nil, nil, err
		}
		return auto, func() { auto.Close() }, nil
	case "", "native":
		auto, err := scrollpdf.NewNativeAutomation()
		if err != nil {
			return nil, nil, err
		}
		return auto, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q (want chrome or native)", cfg.Backend)
	}
}

// runInfo implements the "info" command.
func runInfo(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no input file specified")
	}
	inputFile := args[0]

	doc, err := pdf.Open(inputFile)
	if err != nil {
		return fmt.Errorf("opening %s: %w", inputFile, err)
	}
	pages, err := doc.Pages()
	if err != nil {
		return fmt.Errorf("reading pages: %w", err)
	}

	fmt.Printf("File:    %s\n", inputFile)
	fmt.Printf("Version: PDF-%s\n", doc.Version())
	fmt.Printf("Pages:   %d\n", len(pages))

	if err := doc.Verify(); err != nil {
		fmt.Printf("Status:  %v\n", err)
	} else {
		fmt.Printf("Status:  cross-reference table consistent\n")
	}

	if len(pages) > 0 {
		fmt.Println()
		fmt.Println("Page dimensions:")
		for i, page := range pages {
			info := doc.GetPageInfo(page)
			fmt.Printf("  Page %d: %.0f x %.0f pt\n", i+1, info.Width, info.Height)
		}
	}
	return nil
}
