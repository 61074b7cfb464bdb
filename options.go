package scrollpdf

import "time"

// sessionConfig holds internal configuration for one capture session.
type sessionConfig struct {
	target      AppIdentity
	maxFrames   int
	scrollDelay time.Duration
	homeDelay   time.Duration
	jpegQuality int
	page        PageConfig
	outputDir   string
	prefix      string
	hasher      Hasher
	notifier    Notifier
}

func defaultSessionConfig() sessionConfig {
	return sessionConfig{
		maxFrames:   60,
		scrollDelay: 450 * time.Millisecond,
		homeDelay:   600 * time.Millisecond,
		jpegQuality: 85,
		outputDir:   ".",
		prefix:      "capture",
		hasher:      fnvFingerprint,
		notifier:    nopNotifier{},
	}
}

// Option configures a capture session.
type Option func(*sessionConfig)

// WithTarget restricts the session to the given application: if the
// frontmost application does not match at session start, the session
// fails with ErrWrongForegroundApp. The zero AppIdentity (the default)
// captures whatever is frontmost.
func WithTarget(app AppIdentity) Option {
	return func(c *sessionConfig) {
		c.target = app
	}
}

// WithMaxFrames sets the safety cap on captured frames. The cap bounds
// worst-case time and memory when the content never stops changing.
// Defaults to 60. Values below 1 are ignored.
func WithMaxFrames(n int) Option {
	return func(c *sessionConfig) {
		if n >= 1 {
			c.maxFrames = n
		}
	}
}

// WithScrollDelay sets the settle delay after each page-scroll input,
// allowing scroll animation and rendering to finish before the next
// capture. Defaults to 450ms.
func WithScrollDelay(d time.Duration) Option {
	return func(c *sessionConfig) {
		if d >= 0 {
			c.scrollDelay = d
		}
	}
}

// WithHomeDelay sets the settle delay after the initial scroll-home.
// Defaults to 600ms.
func WithHomeDelay(d time.Duration) Option {
	return func(c *sessionConfig) {
		if d >= 0 {
			c.homeDelay = d
		}
	}
}

// WithJPEGQuality sets the JPEG quality (1-100) used when embedding
// frames into the PDF. Defaults to 85.
func WithJPEGQuality(q int) Option {
	return func(c *sessionConfig) {
		if q >= 1 && q <= 100 {
			c.jpegQuality = q
		}
	}
}

// WithPage sets the page geometry configuration. See PageConfig.
func WithPage(p PageConfig) Option {
	return func(c *sessionConfig) {
		c.page = p
	}
}

// WithOutputDir sets the directory that receives the finished PDF.
// Defaults to the current directory. The directory is created if it
// does not exist.
func WithOutputDir(dir string) Option {
	return func(c *sessionConfig) {
		if dir != "" {
			c.outputDir = dir
		}
	}
}

// WithPrefix sets the output file name prefix. The artifact is named
// <prefix>_<YYYYMMDD_HHMMSS>.pdf. Defaults to "capture".
func WithPrefix(prefix string) Option {
	return func(c *sessionConfig) {
		if prefix != "" {
			c.prefix = prefix
		}
	}
}

// WithHasher replaces the frame fingerprint function. Any fast
// fixed-size digest works; it is only compared for equality between
// consecutive frames.
func WithHasher(h Hasher) Option {
	return func(c *sessionConfig) {
		if h != nil {
			c.hasher = h
		}
	}
}

// WithNotifier installs a sink that receives a short message when the
// session ends, on both success and failure.
func WithNotifier(n Notifier) Option {
	return func(c *sessionConfig) {
		if n != nil {
			c.notifier = n
		}
	}
}
