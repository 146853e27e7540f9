package application

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/linskybing/projectsign/internal/config"
	"github.com/linskybing/projectsign/internal/domain/form"
	"github.com/linskybing/projectsign/internal/render"
	"github.com/linskybing/projectsign/internal/repository"
	"github.com/linskybing/projectsign/pkg/apperr"
)

// DocumentService exports forms as PDF.
type DocumentService struct {
	Repos    *repository.Repos
	blobs    BlobStore
	renderer DocumentRenderer
	timeout  time.Duration
}

func NewDocumentService(repos *repository.Repos, blobs BlobStore, renderer DocumentRenderer) *DocumentService {
	timeout := config.PDFRenderTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &DocumentService{
		Repos:    repos,
		blobs:    blobs,
		renderer: renderer,
		timeout:  timeout,
	}
}

// RenderPDF returns the PDF bytes and a download file name. The signature
// image is fetched here and handed to the renderer inline.
func (s *DocumentService) RenderPDF(ctx context.Context, userID uint, formID string) ([]byte, string, error) {
	f, err := loadOwnedForm(s.Repos, userID, formID)
	if err != nil {
		return nil, "", err
	}
	if s.renderer == nil {
		return nil, "", apperr.New(apperr.KindDependency, "pdf renderer is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	doc, err := BuildDocument(f)
	if err != nil {
		return nil, "", apperr.Wrap(apperr.KindInternal, "stored document is unreadable", err)
	}

	if doc.Signature != nil && f.SignaturePath != nil && s.blobs != nil {
		img, err := s.blobs.Get(ctx, *f.SignaturePath)
		if err != nil {
			return nil, "", apperr.Wrap(apperr.KindDependency, "failed to fetch signature image", err)
		}
		doc.Signature.ImageDataURI = "data:image/png;base64," + base64.StdEncoding.EncodeToString(img)
	}

	out, err := s.renderer.Render(ctx, doc)
	if err != nil {
		if errors.Is(err, render.ErrRenderTimeout) || errors.Is(err, context.DeadlineExceeded) {
			return nil, "", apperr.Wrap(apperr.KindDependency, "pdf rendering timed out", err)
		}
		return nil, "", apperr.Wrap(apperr.KindDependency, "pdf rendering failed", err)
	}
	return out, PDFFileName(f), nil
}

var unsafeFileChars = regexp.MustCompile(`[\\/:*?"<>|\s]+`)

// PDFFileName is "<type-slug>-<project>.pdf".
func PDFFileName(f form.Form) string {
	name := strings.Trim(unsafeFileChars.ReplaceAllString(f.Project.Name, "-"), "-")
	if name == "" {
		name = f.ID
	}
	return fmt.Sprintf("%s-%s.pdf", form.LabelOf(f.Type).Slug, name)
}

// BuildDocument lays a form out for rendering.
func BuildDocument(f form.Form) (render.Document, error) {
	payload, err := f.Payload()
	if err != nil {
		return render.Document{}, err
	}
	label := form.LabelOf(f.Type)
	doc := render.Document{
		Title:       label.English,
		Subtitle:    label.Title,
		ProjectName: f.Project.Name,
		ContactName: f.Project.ContactName(),
		FormID:      f.ID,
		Version:     f.Version,
		CreatedAt:   f.CreatedAt,
	}

	switch p := payload.(type) {
	case *form.QuotePayload:
		table := &render.Table{
			Headers: []string{"Description", "Qty", "Unit", "Unit price", "Total"},
			Widths:  []float64{70, 20, 25, 32.5, 32.5},
		}
		for _, it := range p.Items {
			table.Rows = append(table.Rows, []string{it.Description, num(it.Quantity), it.Unit, money(it.UnitPrice), money(it.Total)})
		}
		doc.Table = table
		doc.Sections = []render.Section{
			{Title: "Totals", Fields: []render.Field{
				{Label: "Subtotal", Value: money(p.Subtotal)},
				{Label: "VAT", Value: fmt.Sprintf("%s (%s%%)", money(p.VATAmount), num(p.VATRate*100))},
				{Label: "Total", Value: money(p.Total)},
				{Label: "Valid until", Value: p.ValidUntil},
			}},
			{Title: "Terms", Fields: []render.Field{
				{Label: "Payment terms", Value: deref(p.PaymentTerms)},
				{Label: "Warranty", Value: deref(p.WarrantyTerms)},
				{Label: "Notes", Value: deref(p.Notes)},
			}},
		}
	case *form.WorkApprovalPayload:
		doc.Sections = []render.Section{{Title: "Work details", Fields: []render.Field{
			{Label: "Site", Value: p.SiteName},
			{Label: "Quote reference", Value: deref(p.QuoteReference)},
			{Label: "Start date", Value: p.StartDate},
			{Label: "Work details", Value: p.WorkDetails},
			{Label: "Additions", Value: deref(p.Additions)},
			{Label: "Notes", Value: deref(p.Notes)},
			{Label: "Contact", Value: p.ContactName},
			{Label: "Contact phone", Value: p.ContactPhone},
			{Label: "Infrastructure declared", Value: yesNo(p.InfrastructureDeclaration)},
		}}}
	case *form.CompletionPayload:
		doc.Sections = []render.Section{
			{Title: "Work", Fields: []render.Field{
				{Label: "Site", Value: p.SiteName},
				{Label: "Order number", Value: deref(p.OrderNumber)},
				{Label: "Work date", Value: p.WorkDate},
			}},
			{Title: "Satisfaction (1-5)", Fields: []render.Field{
				{Label: "Overall", Value: strconv.Itoa(p.SatisfactionOverall)},
				{Label: "Site conduct", Value: strconv.Itoa(p.SiteConduct)},
				{Label: "Work quality", Value: strconv.Itoa(p.WorkQuality)},
				{Label: "Appearance", Value: strconv.Itoa(p.Appearance)},
				{Label: "Worker behavior", Value: strconv.Itoa(p.WorkerBehavior)},
				{Label: "Feedback", Value: deref(p.FeedbackNotes)},
				{Label: "Disclaimer accepted", Value: yesNo(p.LegalDisclaimerAccepted)},
			}},
		}
	case *form.PaymentPayload:
		doc.Sections = []render.Section{{Title: "Payment", Fields: []render.Field{
			{Label: "Amount due", Value: money(p.AmountDue)},
			{Label: "Amount paid", Value: money(p.AmountPaid)},
			{Label: "Method", Value: string(p.PaymentMethod)},
			{Label: "Reference", Value: deref(p.ReferenceNumber)},
			{Label: "Paid at", Value: p.PaidAt},
			{Label: "Receipt", Value: deref(p.ReceiptNumber)},
			{Label: "Remaining balance", Value: money(p.RemainingBalance)},
			{Label: "Notes", Value: deref(p.Notes)},
		}}}
	}

	if f.IsSigned() {
		sig := &render.SignatureBlock{
			SignedBy:        deref(f.SignedBy),
			SignedAt:        *f.SignedAt,
			SignerIP:        deref(f.SignerIP),
			IntegrityStatus: string(Integrity(f).Status),
		}
		if f.SignatureHash != nil {
			sig.Hash = *f.SignatureHash
		}
		doc.Signature = sig
	}
	return doc, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
