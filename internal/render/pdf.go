package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	pageMargin   = 15.0
	printWidth   = 210 - 2*pageMargin
	lineHeight   = 6.0
	labelWidth   = 55.0
	signatureW   = 60.0
	signatureH   = 25.0
	fontFamily   = "doc"
	coreFont     = "Helvetica"
	signatureImg = "signature"
)

var ErrRenderTimeout = errors.New("pdf rendering timed out")

// PDFRenderer renders Documents with go-pdf/fpdf.
type PDFRenderer struct {
	fontPath string
	timeout  time.Duration
}

// NewPDFRenderer returns a renderer. fontPath optionally points at a TTF with
// Hebrew glyphs; without it the core Helvetica font is used.
func NewPDFRenderer(fontPath string, timeout time.Duration) *PDFRenderer {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &PDFRenderer{fontPath: fontPath, timeout: timeout}
}

func (r *PDFRenderer) Render(ctx context.Context, doc Document) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	type result struct {
		out []byte
		err error
	}
	done := make(chan result, 1)
	go func() {
		out, err := r.render(doc)
		done <- result{out, err}
	}()

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrRenderTimeout
		}
		return nil, ctx.Err()
	case res := <-done:
		return res.out, res.err
	}
}

type writer struct {
	pdf  *fpdf.Fpdf
	font string
	tr   func(string) string
}

func (r *PDFRenderer) render(doc Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin+5)

	w := &writer{pdf: pdf, font: coreFont, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	if r.fontPath != "" {
		pdf.AddUTF8Font(fontFamily, "", r.fontPath)
		pdf.AddUTF8Font(fontFamily, "B", r.fontPath)
		w.font = fontFamily
		w.tr = func(s string) string { return s }
	}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(w.font, "", 7)
		pdf.SetTextColor(120, 120, 120)
		footer := fmt.Sprintf("ProjectSign | %s v%d | page %d", doc.FormID, doc.Version, pdf.PageNo())
		if doc.Signature != nil && doc.Signature.Hash != "" {
			footer += fmt.Sprintf(" | SHA-256 %s (%s)", doc.Signature.Hash, doc.Signature.IntegrityStatus)
		}
		pdf.CellFormat(0, 5, w.tr(footer), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	w.header(doc)
	if doc.Table != nil {
		w.table(*doc.Table)
	}
	for _, s := range doc.Sections {
		w.section(s)
	}
	if doc.Signature != nil {
		if err := w.signature(*doc.Signature); err != nil {
			return nil, err
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (w *writer) header(doc Document) {
	w.pdf.SetFont(w.font, "B", 18)
	w.pdf.CellFormat(0, 10, w.tr(doc.Title), "", 1, "L", false, 0, "")
	if doc.Subtitle != "" {
		w.pdf.SetFont(w.font, "", 11)
		w.pdf.CellFormat(0, 7, w.tr(doc.Subtitle), "", 1, "L", false, 0, "")
	}
	w.pdf.Ln(2)
	w.field(Field{Label: "Project", Value: doc.ProjectName})
	if doc.ContactName != "" {
		w.field(Field{Label: "Client", Value: doc.ContactName})
	}
	w.field(Field{Label: "Created", Value: doc.CreatedAt.Format("2006-01-02")})
	w.pdf.Ln(4)
}

func (w *writer) section(s Section) {
	if s.Title != "" {
		w.pdf.SetFont(w.font, "B", 12)
		w.pdf.SetFillColor(235, 240, 248)
		w.pdf.CellFormat(0, 8, w.tr(s.Title), "", 1, "L", true, 0, "")
		w.pdf.Ln(1)
	}
	for _, f := range s.Fields {
		w.field(f)
	}
	w.pdf.Ln(3)
}

func (w *writer) field(f Field) {
	w.pdf.SetFont(w.font, "B", 10)
	w.pdf.CellFormat(labelWidth, lineHeight, w.tr(f.Label), "", 0, "L", false, 0, "")
	w.pdf.SetFont(w.font, "", 10)
	value := f.Value
	if strings.TrimSpace(value) == "" {
		value = "-"
	}
	w.pdf.MultiCell(printWidth-labelWidth, lineHeight, w.tr(value), "", "L", false)
}

func (w *writer) table(t Table) {
	widths := t.Widths
	if len(widths) != len(t.Headers) {
		widths = make([]float64, len(t.Headers))
		for i := range widths {
			widths[i] = printWidth / float64(len(t.Headers))
		}
	}

	w.pdf.SetFont(w.font, "B", 10)
	w.pdf.SetFillColor(220, 220, 220)
	for i, h := range t.Headers {
		w.pdf.CellFormat(widths[i], 7, w.tr(h), "1", 0, "C", true, 0, "")
	}
	w.pdf.Ln(-1)

	w.pdf.SetFont(w.font, "", 9)
	for _, row := range t.Rows {
		for i := range t.Headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			w.pdf.CellFormat(widths[i], 7, w.tr(cell), "1", 0, "L", false, 0, "")
		}
		w.pdf.Ln(-1)
	}
	w.pdf.Ln(4)
}

func (w *writer) signature(sig SignatureBlock) error {
	w.pdf.SetFont(w.font, "B", 12)
	w.pdf.CellFormat(0, 8, "Signature", "B", 1, "L", false, 0, "")
	w.pdf.Ln(2)
	w.field(Field{Label: "Signed by", Value: sig.SignedBy})
	w.field(Field{Label: "Signed at", Value: sig.SignedAt.UTC().Format("2006-01-02 15:04 MST")})
	if sig.SignerIP != "" {
		w.field(Field{Label: "Signer IP", Value: sig.SignerIP})
	}
	w.field(Field{Label: "Integrity", Value: sig.IntegrityStatus})

	if sig.ImageDataURI == "" {
		return nil
	}
	img, err := decodeDataURI(sig.ImageDataURI)
	if err != nil {
		return err
	}
	opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	w.pdf.RegisterImageOptionsReader(signatureImg, opts, bytes.NewReader(img))
	w.pdf.Ln(2)
	w.pdf.ImageOptions(signatureImg, w.pdf.GetX(), w.pdf.GetY(), signatureW, signatureH, true, opts, 0, "")
	return nil
}

func decodeDataURI(uri string) ([]byte, error) {
	idx := strings.Index(uri, ";base64,")
	if !strings.HasPrefix(uri, "data:") || idx < 0 {
		return nil, errors.New("signature image must be a base64 data URI")
	}
	b, err := base64.StdEncoding.DecodeString(uri[idx+len(";base64,"):])
	if err != nil {
		return nil, fmt.Errorf("decode signature image: %w", err)
	}
	return b, nil
}
