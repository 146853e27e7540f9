package application

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/linskybing/projectsign/pkg/apperr"
)

const (
	MaxSignerNameLength = 200
	MinSignatureBytes   = 100
	MaxSignatureBytes   = 2 << 20
	minSignatureWidth   = 20
	minSignatureHeight  = 10
	maxSignatureWidth   = 2000
	maxSignatureHeight  = 1000
	minInkPixels        = 20
)

// ValidateSignerName trims and bounds the typed signer name.
func ValidateSignerName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperr.Validation("נא להזין שם מלא")
	}
	if utf8.RuneCountInString(name) > MaxSignerNameLength {
		return "", apperr.Validation("השם ארוך מדי")
	}
	return name, nil
}

// DecodeSignatureImage accepts raw base64 or a data URI and returns PNG bytes
// that contain an actual drawn signature.
func DecodeSignatureImage(data string) ([]byte, error) {
	data = strings.TrimSpace(data)
	if data == "" {
		return nil, apperr.Validation("נא לחתום על המסמך")
	}
	if strings.HasPrefix(data, "data:") {
		idx := strings.Index(data, ";base64,")
		if idx < 0 {
			return nil, apperr.Validation("invalid signature encoding")
		}
		data = data[idx+len(";base64,"):]
	}
	if base64.StdEncoding.DecodedLen(len(data)) > MaxSignatureBytes+3 {
		return nil, apperr.Validation("signature image is too large")
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, apperr.Validation("invalid signature encoding")
	}
	if len(raw) < MinSignatureBytes {
		return nil, apperr.Validation("נא לחתום על המסמך")
	}
	if len(raw) > MaxSignatureBytes {
		return nil, apperr.Validation("signature image is too large")
	}
	if !mimetype.Detect(raw).Is("image/png") {
		return nil, apperr.Validation("signature must be a PNG image")
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, apperr.Validation("signature must be a PNG image")
	}
	if cfg.Width < minSignatureWidth || cfg.Height < minSignatureHeight {
		return nil, apperr.Validation("signature image is too small")
	}
	// Dimensions come from the header; reject before allocating pixels.
	if cfg.Width > maxSignatureWidth || cfg.Height > maxSignatureHeight {
		return nil, apperr.Validation("signature image dimensions are too large")
	}

	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, apperr.Validation("signature must be a PNG image")
	}
	if countInk(img) < minInkPixels {
		return nil, apperr.Validation("נא לחתום על המסמך")
	}
	return raw, nil
}

// countInk counts visible pixels that differ from the top-left background pixel.
func countInk(img image.Image) int {
	b := img.Bounds()
	br, bg, bb, ba := img.At(b.Min.X, b.Min.Y).RGBA()
	n := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			if r != br || g != bg || bl != bb || a != ba {
				n++
				if n >= minInkPixels {
					return n
				}
			}
		}
	}
	return n
}
