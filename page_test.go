package scrollpdf

import "testing"

func TestPageConfig_PointsPerPixel(t *testing.T) {
	tests := []struct {
		name string
		cfg  PageConfig
		want float64
	}{
		{"zero_value", PageConfig{}, 1},
		{"default", DefaultPageConfig(), 1},
		{"dpi_144", PageConfig{DPI: 144}, 0.5},
		{"dpi_36", PageConfig{DPI: 36}, 2},
		{"negative_dpi", PageConfig{DPI: -10}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.pointsPerPixel(); got != tt.want {
				t.Errorf("pointsPerPixel() = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestSessionOptions_Defaults(t *testing.T) {
	cfg := defaultSessionConfig()
	if cfg.maxFrames != 60 {
		t.Errorf("maxFrames = %d, want 60", cfg.maxFrames)
	}
	if cfg.jpegQuality != 85 {
		t.Errorf("jpegQuality = %d, want 85", cfg.jpegQuality)
	}
	if cfg.prefix != "capture" {
		t.Errorf("prefix = %q, want capture", cfg.prefix)
	}
}

func TestSessionOptions_IgnoreInvalid(t *testing.T) {
	cfg := defaultSessionConfig()
	for _, o := range []Option{
		WithMaxFrames(0),
		WithMaxFrames(-5),
		WithJPEGQuality(0),
		WithJPEGQuality(101),
		WithPrefix(""),
		WithOutputDir(""),
		WithHasher(nil),
		WithNotifier(nil),
	} {
		o(&cfg)
	}
	want := defaultSessionConfig()
	if cfg.maxFrames != want.maxFrames || cfg.jpegQuality != want.jpegQuality ||
		cfg.prefix != want.prefix || cfg.outputDir != want.outputDir {
		t.Error("invalid option values were not ignored")
	}
	if cfg.hasher == nil || cfg.notifier == nil {
		t.Error("nil hasher or notifier was accepted")
	}
}

func TestAppIdentity_Matches(t *testing.T) {
	front := AppIdentity{Name: "Safari", ID: "com.apple.Safari"}
	tests := []struct {
		name   string
		target AppIdentity
		want   bool
	}{
		{"zero_target_matches_anything", AppIdentity{}, true},
		{"name_only", AppIdentity{Name: "Safari"}, true},
		{"id_only", AppIdentity{ID: "com.apple.Safari"}, true},
		{"both", AppIdentity{Name: "Safari", ID: "com.apple.Safari"}, true},
		{"wrong_name", AppIdentity{Name: "Terminal"}, false},
		{"wrong_id", AppIdentity{Name: "Safari", ID: "com.example.other"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.target.matches(front); got != tt.want {
				t.Errorf("matches = %v, want %v", got, tt.want)
			}
		})
	}
}
