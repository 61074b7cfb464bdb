package scrollpdf

import (
	"bytes"
	"io"
	"os"
)

// Result holds a completed capture: the assembled PDF, the path it was
// published to, and the number of pages (equal to the number of frames
// stored by the capture loop).
//
// It is safe to call its methods multiple times — the underlying data
// is never modified.
type Result struct {
	data  []byte
	path  string
	pages int
}

// Path returns the location of the published PDF file.
func (r *Result) Path() string {
	return r.path
}

// PageCount returns the number of pages in the document.
func (r *Result) PageCount() int {
	return r.pages
}

// Bytes returns the raw PDF content.
func (r *Result) Bytes() []byte {
	return r.data
}

// Reader returns a [*bytes.Reader] over the PDF content, suitable for
// streaming to any API that accepts an [io.Reader].
func (r *Result) Reader() *bytes.Reader {
	return bytes.NewReader(r.data)
}

// WriteTo writes the full PDF content to w. It implements [io.WriterTo].
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.data)
	return int64(n), err
}

// WriteToFile writes an additional copy of the PDF to path.
func (r *Result) WriteToFile(path string, perm os.FileMode) error {
	return os.WriteFile(path, r.data, perm)
}

// Len returns the size of the PDF in bytes.
func (r *Result) Len() int {
	return len(r.data)
}
