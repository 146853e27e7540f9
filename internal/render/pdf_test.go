package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngDataURI(t *testing.T) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 80, 30))
	for x := 5; x < 75; x++ {
		img.Set(x, 15, color.Black)
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func sampleDocument(t *testing.T) Document {
	return Document{
		Title:       "Price Quote",
		Subtitle:    "Quote",
		ProjectName: "Kitchen",
		ContactName: "Dana Cohen",
		FormID:      "f-1",
		Version:     2,
		CreatedAt:   time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC),
		Table: &Table{
			Headers: []string{"Description", "Qty", "Unit", "Price", "Total"},
			Widths:  []float64{70, 20, 25, 32.5, 32.5},
			Rows:    [][]string{{"Tiles", "10", "m2", "100.00", "1000.00"}},
		},
		Sections: []Section{{
			Title:  "Totals",
			Fields: []Field{{Label: "Total", Value: "1170.00"}, {Label: "Notes", Value: ""}},
		}},
		Signature: &SignatureBlock{
			SignedBy:        "Dana Cohen",
			SignedAt:        time.Date(2025, 1, 3, 9, 30, 0, 0, time.UTC),
			SignerIP:        "203.0.113.7",
			Hash:            "abc123",
			IntegrityStatus: "valid",
			ImageDataURI:    pngDataURI(t),
		},
	}
}

func TestRenderProducesPDF(t *testing.T) {
	r := NewPDFRenderer("", time.Minute)
	out, err := r.Render(context.Background(), sampleDocument(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRenderWithoutSignature(t *testing.T) {
	doc := sampleDocument(t)
	doc.Signature = nil
	doc.Table = nil
	out, err := NewPDFRenderer("", 0).Render(context.Background(), doc)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRenderRejectsRemoteSignatureURL(t *testing.T) {
	doc := sampleDocument(t)
	doc.Signature.ImageDataURI = "https://storage.example.com/sig.png"
	_, err := NewPDFRenderer("", time.Minute).Render(context.Background(), doc)
	assert.ErrorContains(t, err, "data URI")
}

func TestRenderHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewPDFRenderer("", time.Minute).Render(ctx, sampleDocument(t))
	assert.Error(t, err)
}
