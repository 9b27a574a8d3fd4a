package htmlfetcher

import (
	"fmt"
	"io"

	"flathunter-service/internal/core/port"

	"github.com/PuerkitoBio/goquery"
)

// Document - разобранная страница поверх goquery
type Document struct {
	doc *goquery.Document
}

// ParseDocument разбирает HTML из r
func ParseDocument(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("htmlfetcher: failed to parse html: %w", err)
	}
	return &Document{doc: doc}, nil
}

func (d *Document) FindAll(selector string) []port.Element {
	return wrapSelection(d.doc.Find(selector))
}

type element struct {
	sel *goquery.Selection
}

func (e *element) Text() string {
	return e.sel.Text()
}

func (e *element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

func (e *element) FindAll(selector string) []port.Element {
	return wrapSelection(e.sel.Find(selector))
}

func wrapSelection(sel *goquery.Selection) []port.Element {
	elements := make([]port.Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		elements = append(elements, &element{sel: s})
	})
	return elements
}
