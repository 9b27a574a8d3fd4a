package port

import "context"

// Element - узел разобранной HTML-страницы
type Element interface {
	// Text возвращает текст узла и всех его потомков
	Text() string
	// Attr возвращает значение атрибута и признак его наличия
	Attr(name string) (string, bool)
	// FindAll ищет потомков по CSS-селектору
	FindAll(selector string) []Element
}

// Document - разобранная HTML-страница
type Document interface {
	FindAll(selector string) []Element
}

// DocumentFetcherPort загружает страницу и возвращает ее разобранный DOM.
type DocumentFetcherPort interface {
	Fetch(ctx context.Context, url string) (Document, error)
}
