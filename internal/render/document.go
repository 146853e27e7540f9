// Package render produces PDF exports of forms.
package render

import "time"

type Field struct {
	Label string
	Value string
}

type Section struct {
	Title  string
	Fields []Field
}

// Table is rendered as a bordered grid; Widths are in millimetres and should
// sum to the printable width.
type Table struct {
	Headers []string
	Widths  []float64
	Rows    [][]string
}

// SignatureBlock describes the signed state printed at the end of a document.
// ImageDataURI must be a data URI; the renderer never fetches remote images.
type SignatureBlock struct {
	SignedBy        string
	SignedAt        time.Time
	SignerIP        string
	Hash            string
	IntegrityStatus string
	ImageDataURI    string
}

type Document struct {
	Title       string
	Subtitle    string
	ProjectName string
	ContactName string
	FormID      string
	Version     int
	CreatedAt   time.Time
	Table       *Table
	Sections    []Section
	Signature   *SignatureBlock
}
