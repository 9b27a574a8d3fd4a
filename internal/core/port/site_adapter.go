package port

import "flathunter-service/internal/core/domain"

// SiteAdapterPort - набор селекторов и правил разбора конкретного сайта.
// Алгоритм обхода страниц общий, адаптер знает только разметку.
type SiteAdapterPort interface {
	Name() string
	CanCrawl(url string) bool

	// PagedURL приводит поисковый URL к шаблону с номером страницы
	PagedURL(searchURL string) string
	// PageURL подставляет номер страницы в шаблон
	PageURL(template string, page int) string

	ResultCount(doc Document) (int, error)
	ExtractSummaries(doc Document) []domain.Expose
	ExtractDetails(doc Document) domain.ExposeDetails
	ExtractAddress(doc Document) domain.FieldResult[string]
}
