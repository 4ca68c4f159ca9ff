// Package pdf provides page-level access to exam documents: extracted
// text plus the character positions and filled rectangles that the
// answer-key highlight detector needs.
package pdf

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// RGB is a fill color with components in [0,1].
type RGB struct {
	R, G, B float64
}

// Char is one positioned text character. Coordinates are PDF user
// space (y grows upward); Top > Bottom.
type Char struct {
	Text   string
	X0, X1 float64
	Top    float64
	Bottom float64
}

// Rect is a filled graphic rectangle with its fill color.
type Rect struct {
	X0, X1 float64
	Top    float64
	Bottom float64
	Fill   RGB
}

// Page holds everything extracted from a single page.
type Page struct {
	Number int
	Text   string
	Chars  []Char
	Rects  []Rect
}

// Document is the ordered page content of one PDF file.
type Document struct {
	Path  string
	Pages []Page
}

// Text joins all page text with newlines.
func (d *Document) Text() string {
	var sb strings.Builder
	for _, p := range d.Pages {
		if p.Text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// Open reads and parses a PDF file into per-page text and geometry.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, path)
}

// Read parses PDF content from r. The path is recorded for diagnostics
// only.
func Read(r io.ReadSeeker, path string) (*Document, error) {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(r, conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}

	doc := &Document{Path: path}
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		page := extractPage(ctx, pageNr)
		if page.Text == "" && len(page.Rects) == 0 {
			continue
		}
		doc.Pages = append(doc.Pages, page)
	}
	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("no text content found in PDF")
	}
	return doc, nil
}

// extractPage runs the content-stream interpreter over one page.
func extractPage(ctx *model.Context, pageNr int) Page {
	page := Page{Number: pageNr}
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil {
		return page
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return page
	}
	text, chars, rects := interpretContent(data)
	page.Text = text
	page.Chars = chars
	page.Rects = rects
	return page
}
