package jackpot

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document is a loaded page that can be queried by CSS selector.
type Document interface {
	// Texts returns the text content of every element matching selector.
	Texts(selector string) ([]string, error)
	// HTML returns the full page markup.
	HTML() (string, error)
}

// HTMLDocument is a Document over static markup.
type HTMLDocument struct {
	doc  *goquery.Document
	html string
}

// NewHTMLDocument parses markup read from r.
func NewHTMLDocument(r io.Reader) (*HTMLDocument, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read markup: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse markup: %w", err)
	}
	return &HTMLDocument{doc: doc, html: string(raw)}, nil
}

// ParseHTML is NewHTMLDocument for a string.
func ParseHTML(html string) (*HTMLDocument, error) {
	return NewHTMLDocument(strings.NewReader(html))
}

// Texts implements Document. A selector that does not compile matches nothing.
func (d *HTMLDocument) Texts(selector string) ([]string, error) {
	var texts []string
	d.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, s.Text())
	})
	return texts, nil
}

// HTML implements Document. It returns the markup as received.
func (d *HTMLDocument) HTML() (string, error) {
	return d.html, nil
}
