package scrollpdf

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/porticus-lab/go-scroll-pdf/pdf"
)

// encodeTestImages produces n distinct encoded frames of the given
// pixel dimensions.
func encodeTestImages(t *testing.T, n, w, h int) []EncodedImage {
	t.Helper()
	images := make([]EncodedImage, n)
	for i := range images {
		enc, err := encodeFrame(fillStill(byte(i+1), w, h), 85)
		if err != nil {
			t.Fatalf("encodeFrame: %v", err)
		}
		images[i] = enc
	}
	return images
}

func TestAssemble_PageCount(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7} {
		t.Run(fmt.Sprintf("%d_pages", n), func(t *testing.T) {
			data, err := assemble(encodeTestImages(t, n, 32, 24), 1)
			if err != nil {
				t.Fatalf("assemble: %v", err)
			}

			doc, err := pdf.Load(data)
			if err != nil {
				t.Fatalf("pdf.Load: %v", err)
			}
			pages, err := doc.Pages()
			if err != nil {
				t.Fatalf("Pages: %v", err)
			}
			if len(pages) != n {
				t.Errorf("page count = %d, want %d", len(pages), n)
			}
			if err := doc.Verify(); err != nil {
				t.Errorf("Verify: %v", err)
			}
		})
	}
}

func TestAssemble_Empty(t *testing.T) {
	_, err := assemble(nil, 1)
	if !errors.Is(err, ErrAssembly) {
		t.Fatalf("err = %v, want ErrAssembly", err)
	}
}

func TestAssemble_Deterministic(t *testing.T) {
	images := encodeTestImages(t, 3, 16, 16)

	a, err := assemble(images, 1)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	b, err := assemble(images, 1)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("identical input produced different documents")
	}
}

func TestAssemble_Header(t *testing.T) {
	data, err := assemble(encodeTestImages(t, 1, 8, 8), 1)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-1.4\n")) {
		t.Errorf("output does not start with a PDF 1.4 header")
	}
	if !bytes.HasSuffix(data, []byte("%%EOF\n")) {
		t.Errorf("output does not end with the end-of-file marker")
	}
}

func TestAssemble_PageDimensions(t *testing.T) {
	tests := []struct {
		name           string
		w, h           int
		pointsPerPixel float64
		wantW, wantH   float64
	}{
		{"one_point_per_pixel", 64, 48, 1, 64, 48},
		{"dpi_144", 64, 48, 0.5, 32, 24},
		{"dpi_36", 10, 20, 2, 20, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := assemble(encodeTestImages(t, 1, tt.w, tt.h), tt.pointsPerPixel)
			if err != nil {
				t.Fatalf("assemble: %v", err)
			}
			doc, err := pdf.Load(data)
			if err != nil {
				t.Fatalf("pdf.Load: %v", err)
			}
			pages, err := doc.Pages()
			if err != nil {
				t.Fatalf("Pages: %v", err)
			}
			info := doc.GetPageInfo(pages[0])
			if info.Width != tt.wantW || info.Height != tt.wantH {
				t.Errorf("page = %gx%g pt, want %gx%g", info.Width, info.Height, tt.wantW, tt.wantH)
			}
		})
	}
}

// TestAssemble_PageOrder checks that page i embeds exactly the i-th
// input payload, by following each page's XObject reference down to
// its stream bytes.
func TestAssemble_PageOrder(t *testing.T) {
	images := encodeTestImages(t, 4, 16, 12)
	data, err := assemble(images, 1)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	doc, err := pdf.Load(data)
	if err != nil {
		t.Fatalf("pdf.Load: %v", err)
	}
	pages, err := doc.Pages()
	if err != nil {
		t.Fatalf("Pages: %v", err)
	}

	seen := make(map[int]bool)
	for i, page := range pages {
		res, ok := page["Resources"]
		if !ok || res.Type != pdf.ObjDict {
			t.Fatalf("page %d: no resources dictionary", i)
		}
		xobj, ok := res.Dict["XObject"]
		if !ok || xobj.Type != pdf.ObjDict {
			t.Fatalf("page %d: no XObject dictionary", i)
		}
		ref, ok := xobj.Dict.GetRef("Im")
		if !ok {
			t.Fatalf("page %d: no /Im reference", i)
		}
		if seen[ref.Number] {
			t.Fatalf("page %d reuses image object %d", i, ref.Number)
		}
		seen[ref.Number] = true

		img, err := doc.Object(ref.Number)
		if err != nil {
			t.Fatalf("page %d: loading image object: %v", i, err)
		}
		if img.Type != pdf.ObjStream {
			t.Fatalf("page %d: image object is not a stream", i)
		}
		if filter, _ := img.Dict.GetName("Filter"); filter != "DCTDecode" {
			t.Errorf("page %d: filter = %q, want DCTDecode", i, filter)
		}
		if !bytes.Equal(img.Stream, images[i].Data) {
			t.Errorf("page %d embeds the wrong image payload", i)
		}
		if length, _ := img.Dict.GetInt("Length"); int(length) != len(images[i].Data) {
			t.Errorf("page %d: declared length %d, actual %d", i, length, len(images[i].Data))
		}
	}
}

// TestAssemble_XRefOffsets confirms every cross-reference entry points
// at the exact byte position of its object header.
func TestAssemble_XRefOffsets(t *testing.T) {
	data, err := assemble(encodeTestImages(t, 3, 20, 10), 1)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	doc, err := pdf.Load(data)
	if err != nil {
		t.Fatalf("pdf.Load: %v", err)
	}

	size, ok := doc.Trailer().GetInt("Size")
	if !ok {
		t.Fatal("trailer has no /Size")
	}
	// 2 fixed objects + 3 per page, plus the free-list head.
	if want := int64(1 + 2 + 3*3); size != want {
		t.Errorf("trailer /Size = %d, want %d", size, want)
	}

	for num := 1; num < int(size); num++ {
		entry, ok := doc.XRef(num)
		if !ok {
			t.Fatalf("object %d missing from xref", num)
		}
		header := []byte(fmt.Sprintf("%d 0 obj", num))
		if !bytes.HasPrefix(data[entry.Offset:], header) {
			t.Errorf("object %d: offset %d does not start its header", num, entry.Offset)
		}
	}
}
