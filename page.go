package scrollpdf

// PageConfig controls how captured pixels map onto PDF page space.
//
// A zero PageConfig uses 1 PDF point per pixel, so a 1024x768 capture
// becomes a 1024x768pt page. Setting DPI instead derives the scale as
// 72/DPI: at DPI 144 the same capture becomes a 512x384pt page.
type PageConfig struct {
	// DPI is the assumed pixel density of the capture. Zero means
	// unspecified, which maps one pixel to one point (72 DPI).
	DPI float64
}

// DefaultPageConfig returns the default page geometry (1pt per pixel).
func DefaultPageConfig() PageConfig {
	return PageConfig{DPI: 72}
}

// pointsPerPixel returns the factor converting capture pixels to PDF
// points.
func (p PageConfig) pointsPerPixel() float64 {
	if p.DPI <= 0 {
		return 1
	}
	return 72 / p.DPI
}
