package scrollpdf

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
)

// EncodedImage is the compressed, PDF-embeddable rendition of one
// Frame: a JPEG payload plus its pixel dimensions.
type EncodedImage struct {
	Data   []byte
	Width  int
	Height int
}

// encodeFrame compresses img to JPEG at the given quality. Encoding is
// deterministic for identical input, which keeps the assembled PDF
// byte-identical across runs on the same frames.
func encodeFrame(img *image.RGBA, quality int) (EncodedImage, error) {
	if img == nil || img.Bounds().Empty() {
		return EncodedImage{}, fmt.Errorf("%w: empty frame", ErrFrameEncode)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return EncodedImage{}, fmt.Errorf("%w: %v", ErrFrameEncode, err)
	}

	b := img.Bounds()
	return EncodedImage{
		Data:   buf.Bytes(),
		Width:  b.Dx(),
		Height: b.Dy(),
	}, nil
}
