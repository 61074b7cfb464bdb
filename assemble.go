package scrollpdf

import (
	"bytes"
	"fmt"
	"strconv"
)

// PDF object numbering. The catalog and pages tree get fixed numbers
// and each page i owns a contiguous triple, so every number 1..N is
// accounted for exactly once before any bytes are written. The
// cross-reference table depends on that.
const (
	objCatalog = 1
	objPages   = 2
)

func objImage(page int) int   { return 3 + 3*page }
func objContent(page int) int { return 4 + 3*page }
func objPage(page int) int    { return 5 + 3*page }

// objectWriter emits indirect PDF objects into a buffer and records
// the exact byte offset at which each one starts. Offsets are recorded
// as the bytes are written — image payloads can contain any byte
// value, so they can never be recovered by searching the output.
type objectWriter struct {
	buf     bytes.Buffer
	offsets map[int]int
	highest int
}

func newObjectWriter() *objectWriter {
	w := &objectWriter{offsets: make(map[int]int)}
	// Header: version line plus a binary comment line so transfer
	// tools treat the file as binary.
	w.buf.WriteString("%PDF-1.4\n")
	w.buf.Write([]byte{'%', 0xE2, 0xE3, 0xCF, 0xD3, '\n'})
	return w
}

// writeObject emits one indirect object with the given body.
func (w *objectWriter) writeObject(num int, body []byte) {
	w.offsets[num] = w.buf.Len()
	if num > w.highest {
		w.highest = num
	}
	fmt.Fprintf(&w.buf, "%d 0 obj\n", num)
	w.buf.Write(body)
	w.buf.WriteString("\nendobj\n")
}

// writeStreamObject emits an indirect stream object: dict must already
// contain an accurate /Length entry for stream.
func (w *objectWriter) writeStreamObject(num int, dict, stream []byte) {
	var body bytes.Buffer
	body.Write(dict)
	body.WriteString("\nstream\n")
	body.Write(stream)
	body.WriteString("\nendstream")
	w.writeObject(num, body.Bytes())
}

// finish emits the cross-reference table, trailer and end-of-file
// marker, and returns the completed document.
func (w *objectWriter) finish() []byte {
	xrefOffset := w.buf.Len()
	size := w.highest + 1

	fmt.Fprintf(&w.buf, "xref\n0 %d\n", size)
	// Object 0 heads the free list.
	w.buf.WriteString("0000000000 65535 f \n")
	for num := 1; num <= w.highest; num++ {
		fmt.Fprintf(&w.buf, "%010d 00000 n \n", w.offsets[num])
	}

	fmt.Fprintf(&w.buf, "trailer\n<< /Size %d /Root %d 0 R >>\n", size, objCatalog)
	fmt.Fprintf(&w.buf, "startxref\n%d\n%%%%EOF\n", xrefOffset)
	return w.buf.Bytes()
}

// assemble builds a complete PDF embedding one JPEG image per page, in
// input order. The output contains no clock or session bytes, so
// identical input produces byte-identical documents.
func assemble(images []EncodedImage, pointsPerPixel float64) ([]byte, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("%w: no pages", ErrAssembly)
	}

	w := newObjectWriter()

	w.writeObject(objCatalog, []byte(fmt.Sprintf(
		"<< /Type /Catalog /Pages %d 0 R >>", objPages)))

	var kids bytes.Buffer
	for i := range images {
		if i > 0 {
			kids.WriteByte(' ')
		}
		fmt.Fprintf(&kids, "%d 0 R", objPage(i))
	}
	w.writeObject(objPages, []byte(fmt.Sprintf(
		"<< /Type /Pages /Kids [%s] /Count %d >>", kids.Bytes(), len(images))))

	for i, img := range images {
		if len(img.Data) == 0 || img.Width <= 0 || img.Height <= 0 {
			return nil, fmt.Errorf("%w: page %d has no image data", ErrAssembly, i)
		}
		pw := points(float64(img.Width) * pointsPerPixel)
		ph := points(float64(img.Height) * pointsPerPixel)

		w.writeStreamObject(objImage(i), []byte(fmt.Sprintf(
			"<< /Type /XObject /Subtype /Image /Width %d /Height %d "+
				"/ColorSpace /DeviceRGB /BitsPerComponent 8 /Filter /DCTDecode /Length %d >>",
			img.Width, img.Height, len(img.Data))), img.Data)

		// Paint the image scaled to fill the page.
		content := []byte(fmt.Sprintf("q %s 0 0 %s 0 0 cm /Im Do Q", pw, ph))
		w.writeStreamObject(objContent(i), []byte(fmt.Sprintf(
			"<< /Length %d >>", len(content))), content)

		w.writeObject(objPage(i), []byte(fmt.Sprintf(
			"<< /Type /Page /Parent %d 0 R /MediaBox [0 0 %s %s] "+
				"/Resources << /XObject << /Im %d 0 R >> >> /Contents %d 0 R >>",
			objPages, pw, ph, objImage(i), objContent(i))))
	}

	return w.finish(), nil
}

// points formats a point value with the shortest exact decimal
// representation, keeping output stable across runs.
func points(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
