// Package extract turns fetched source documents into plain text for
// segmentation. PDFs are read page by page, HTML is reduced to its text with
// line structure kept, and everything is normalized to Unicode NFC.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"

	"github.com/chriscorrea/papertrend/internal/fetch"
)

// DefaultStartRatio skips the first half of a proceedings PDF, which usually
// holds the programme, committee lists and session tables.
const DefaultStartRatio = 0.5

// Kind is the detected format of a source document.
type Kind int

const (
	PlainText Kind = iota
	HTML
	PDF
)

func (k Kind) String() string {
	switch k {
	case PDF:
		return "pdf"
	case HTML:
		return "html"
	default:
		return "text"
	}
}

// Options control extraction.
type Options struct {
	StartRatio float64 // fraction of PDF pages to skip, in [0,1)
	IncludeAll bool    // keep the whole HTML page instead of the readability article
}

// blockSelector lists elements that end a line of text.
const blockSelector = "p, div, br, li, h1, h2, h3, h4, h5, h6, tr, td, th, dt, dd, pre, blockquote, section, article, header, footer, table, ul, ol"

// Detect picks the document format from the PDF magic, the HTTP content type,
// the file extension and finally content sniffing, in that order.
func Detect(res *fetch.Resource) Kind {
	if bytes.HasPrefix(res.Data, []byte("%PDF-")) || strings.Contains(res.ContentType, "application/pdf") {
		return PDF
	}
	if strings.Contains(res.ContentType, "html") {
		return HTML
	}
	switch strings.ToLower(filepath.Ext(res.Source)) {
	case ".pdf":
		return PDF
	case ".html", ".htm", ".xhtml":
		return HTML
	case ".txt", ".text", ".md":
		return PlainText
	}
	if strings.HasPrefix(http.DetectContentType(res.Data), "text/html") {
		return HTML
	}
	return PlainText
}

// Text extracts normalized plain text from a loaded resource.
func Text(res *fetch.Resource, opts Options) (string, error) {
	var (
		text string
		err  error
	)
	kind := Detect(res)
	switch kind {
	case PDF:
		text, err = FromPDF(res.Reader(), int64(len(res.Data)), opts.StartRatio)
	case HTML:
		var base *url.URL
		if fetch.IsURL(res.Source) {
			base, _ = url.Parse(res.Source) // nil is fine for readability
		}
		text, err = FromHTML(res.Reader(), opts.IncludeAll, base)
	default:
		text = string(bytes.ToValidUTF8(res.Data, []byte("�")))
	}
	if err != nil {
		return "", fmt.Errorf("failed to extract %s content: %w", kind, err)
	}

	text = Normalize(text)
	slog.Debug("extracted source", "source", res.Source, "kind", kind.String(), "bytes", len(res.Data), "chars", len([]rune(text)))
	return text, nil
}

// Normalize applies NFC so that composed and decomposed kana compare equal,
// and unifies line endings.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return norm.NFC.String(s)
}

// StartPage returns the first 1-based page to read for a document of
// numPages pages: max(1, floor(numPages*ratio)).
func StartPage(numPages int, ratio float64) int {
	if ratio < 0 || ratio >= 1 || math.IsNaN(ratio) {
		ratio = 0
	}
	start := int(math.Floor(float64(numPages) * ratio))
	if start < 1 {
		start = 1
	}
	return start
}

// FromPDF extracts page text from StartPage onward, one page per line group.
// Pages that fail to decode are skipped.
func FromPDF(r io.ReaderAt, size int64, startRatio float64) (text string, err error) {
	// the pdf reader panics on some malformed cross-reference tables
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("malformed PDF: %v", rec)
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	numPages := reader.NumPage()
	start := StartPage(numPages, startRatio)
	slog.Debug("reading PDF pages", "pages", numPages, "start", start)

	pages := make([]string, 0, numPages-start+1)
	for i := start; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			slog.Debug("skipping unreadable PDF page", "page", i, "error", err)
			continue
		}
		pages = append(pages, pageText)
	}
	return strings.Join(pages, "\n"), nil
}

// FromHTML returns the text of an HTML document. By default only the main
// article found by go-readability is kept; includeAll keeps the whole body.
func FromHTML(content io.Reader, includeAll bool, baseURL *url.URL) (string, error) {
	if includeAll {
		doc, err := goquery.NewDocumentFromReader(content)
		if err != nil {
			return "", fmt.Errorf("failed to parse HTML: %w", err)
		}
		return documentText(doc), nil
	}

	if baseURL == nil {
		baseURL = &url.URL{}
	}
	article, err := readability.FromReader(content, baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract main content: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return "", fmt.Errorf("failed to parse article HTML: %w", err)
	}
	return documentText(doc), nil
}

// documentText flattens a document to text, ending a line after each block
// element so the cleaner can still filter line by line.
func documentText(doc *goquery.Document) string {
	doc.Find("script, style, noscript, template").Remove()
	doc.Find(blockSelector).AfterHtml("\n")

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	lines := strings.Split(root.Text(), "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// Document is a source that is fetched and extracted on demand.
type Document struct {
	Source  string
	Options Options
}

// Name returns the source as given.
func (d Document) Name() string {
	return d.Source
}

// Text loads and extracts the document.
func (d Document) Text(ctx context.Context) (string, error) {
	res, err := fetch.Load(ctx, d.Source)
	if err != nil {
		return "", fmt.Errorf("failed to fetch content: %w", err)
	}
	return Text(res, d.Options)
}
